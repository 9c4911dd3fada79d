package content

import (
	"context"
	"fmt"

	"github.com/phrazzld/lingua-api/internal/generation"
)

const (
	// ListeningQuestions is the exact number of questions in a practice set.
	ListeningQuestions = 5

	// ListeningOptions is the exact number of options per question.
	ListeningOptions = 4
)

// ListeningOption is one English translation choice.
type ListeningOption struct {
	Text string `json:"text"`
}

// ListeningQuestion is a target-language sentence with translation choices.
type ListeningQuestion struct {
	Question           string            `json:"question"`
	Options            []ListeningOption `json:"options"`
	CorrectOptionIndex int               `json:"correct_option_index"`
}

// ListeningPractice is a set of translation questions on a topic.
type ListeningPractice struct {
	Topic     string              `json:"topic"`
	Questions []ListeningQuestion `json:"questions"`
}

// GenerateListeningPractice creates exactly ListeningQuestions questions with
// ListeningOptions options each. Any other shape is rejected with
// generation.ErrInvalidResponse.
func (s *Service) GenerateListeningPractice(ctx context.Context, topic, languageCode string) (*ListeningPractice, error) {
	name, err := resolveLanguage(languageCode)
	if err != nil {
		return nil, err
	}
	if err := required("topic", topic); err != nil {
		return nil, err
	}

	text, err := s.generate(ctx, call{
		operation: "listening",
		template:  "listening",
		model:     generation.ModelText,
		data: promptData{
			Language: name,
			Code:     languageCode,
			Topic:    topic,
			Count:    ListeningQuestions,
			Options:  ListeningOptions,
		},
		temperature: generation.Float32(0.7),
		topP:        generation.Float32(0.8),
	})
	if err != nil {
		return nil, err
	}

	var raw struct {
		Topic     *string `json:"topic"`
		Questions []struct {
			Question           *string           `json:"question"`
			Options            []ListeningOption `json:"options"`
			CorrectOptionIndex *int              `json:"correct_option_index"`
		} `json:"questions"`
	}
	if err := generation.DecodeJSON(text, &raw); err != nil {
		return nil, fmt.Errorf("listening: %w", err)
	}

	if raw.Topic == nil {
		return nil, fmt.Errorf("listening: %w: missing topic", generation.ErrInvalidResponse)
	}
	if len(raw.Questions) != ListeningQuestions {
		return nil, fmt.Errorf("listening: %w: expected exactly %d questions, got %d",
			generation.ErrInvalidResponse, ListeningQuestions, len(raw.Questions))
	}

	practice := &ListeningPractice{Topic: *raw.Topic, Questions: make([]ListeningQuestion, 0, ListeningQuestions)}
	for i, q := range raw.Questions {
		switch {
		case len(q.Options) != ListeningOptions:
			return nil, fmt.Errorf("listening: %w: question %d has %d options, want %d",
				generation.ErrInvalidResponse, i+1, len(q.Options), ListeningOptions)
		case q.Question == nil || q.CorrectOptionIndex == nil:
			return nil, fmt.Errorf("listening: %w: question %d is missing a required field",
				generation.ErrInvalidResponse, i+1)
		case *q.CorrectOptionIndex < 0 || *q.CorrectOptionIndex >= ListeningOptions:
			return nil, fmt.Errorf("listening: %w: question %d has correct option %d out of range",
				generation.ErrInvalidResponse, i+1, *q.CorrectOptionIndex)
		}
		practice.Questions = append(practice.Questions, ListeningQuestion{
			Question:           *q.Question,
			Options:            q.Options,
			CorrectOptionIndex: *q.CorrectOptionIndex,
		})
	}
	return practice, nil
}
