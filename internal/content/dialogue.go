package content

import (
	"context"

	"github.com/phrazzld/lingua-api/internal/generation"
)

const (
	// MaxDialogueQuestions caps the turns kept from a generated dialogue.
	MaxDialogueQuestions = 3

	dialogueOptions = 2
)

// DialogueOption is one reply the learner can pick.
type DialogueOption struct {
	Text        string `json:"text"`
	EnglishText string `json:"english_text"`
}

// DialogueQuestion is one AI turn and its candidate replies.
type DialogueQuestion struct {
	Question           string           `json:"question"`
	QuestionEnglish    string           `json:"question_english"`
	Options            []DialogueOption `json:"options"`
	CorrectOptionIndex int              `json:"correct_option_index"`
}

// Dialogue is a short multiple-choice conversation.
type Dialogue struct {
	Scenario  string             `json:"scenario"`
	Questions []DialogueQuestion `json:"questions"`
}

// GenerateDialogue builds a dialogue of at most MaxDialogueQuestions turns for
// scenario in languageCode. Malformed model output yields no questions.
func (s *Service) GenerateDialogue(ctx context.Context, scenario, languageCode string) (*Dialogue, error) {
	name, err := resolveLanguage(languageCode)
	if err != nil {
		return nil, err
	}
	if err := required("scenario", scenario); err != nil {
		return nil, err
	}

	text, err := s.generate(ctx, call{
		operation:   "dialogue",
		template:    "dialogue",
		model:       generation.ModelText,
		data:        promptData{Language: name, Code: languageCode, Scenario: scenario, Count: MaxDialogueQuestions},
		temperature: generation.Float32(0.7),
		topP:        generation.Float32(0.8),
	})
	if err != nil {
		return nil, err
	}

	empty := &Dialogue{Scenario: scenario, Questions: []DialogueQuestion{}}

	var raw struct {
		Scenario  string `json:"scenario"`
		Questions []struct {
			Question        string `json:"question"`
			QuestionEnglish string `json:"question_english"`
			Options         []struct {
				Text        string `json:"text"`
				EnglishText string `json:"english_text"`
			} `json:"options"`
			CorrectOptionIndex *int `json:"correct_option_index"`
		} `json:"questions"`
	}
	if !s.decode(ctx, "dialogue", text, &raw) {
		return empty, nil
	}

	dialogue := &Dialogue{Scenario: scenario, Questions: make([]DialogueQuestion, 0, MaxDialogueQuestions)}
	if raw.Scenario != "" {
		dialogue.Scenario = raw.Scenario
	}
	for _, q := range raw.Questions {
		if q.Question == "" || len(q.Options) != dialogueOptions ||
			q.CorrectOptionIndex == nil || *q.CorrectOptionIndex < 0 || *q.CorrectOptionIndex >= dialogueOptions {
			s.logger.WarnContext(ctx, "discarding malformed dialogue", "question", q.Question)
			return empty, nil
		}

		question := DialogueQuestion{
			Question:           q.Question,
			QuestionEnglish:    q.QuestionEnglish,
			CorrectOptionIndex: *q.CorrectOptionIndex,
		}
		if question.QuestionEnglish == "" {
			question.QuestionEnglish = q.Question
		}
		for _, opt := range q.Options {
			english := opt.EnglishText
			if english == "" {
				english = opt.Text
			}
			question.Options = append(question.Options, DialogueOption{Text: opt.Text, EnglishText: english})
		}
		dialogue.Questions = append(dialogue.Questions, question)
	}

	if len(dialogue.Questions) > MaxDialogueQuestions {
		dialogue.Questions = dialogue.Questions[:MaxDialogueQuestions]
	}
	return dialogue, nil
}
