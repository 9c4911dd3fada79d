package content

import (
	"context"
	"strings"

	"github.com/phrazzld/lingua-api/internal/generation"
)

// Writing ratings as requested from the model. The rating is passed through
// as returned; these are the values the prompt asks for.
const (
	RatingExcellent     = "excellent"
	RatingGood          = "good"
	RatingNeedToImprove = "need to improve"
)

// WritingPrompt is a one-line English writing task.
type WritingPrompt struct {
	Prompt string `json:"prompt"`
}

// WritingEvaluation is the model's assessment of a learner's answer.
type WritingEvaluation struct {
	Rating   string   `json:"rating"`
	Feedback []string `json:"feedback"`
}

var (
	defaultWritingFeedback  = []string{"Keep practicing!"}
	fallbackWritingFeedback = []string{"Response received. Keep practicing!", "Try to write more detailed responses."}
)

// GenerateWritingPrompt returns an English writing prompt for learners of
// languageCode.
func (s *Service) GenerateWritingPrompt(ctx context.Context, languageCode string) (*WritingPrompt, error) {
	name, err := resolveLanguage(languageCode)
	if err != nil {
		return nil, err
	}

	text, err := s.generate(ctx, call{
		operation: "writing_prompt",
		template:  "writing_prompt",
		model:     generation.ModelText,
		data:      promptData{Language: name, Code: languageCode},
	})
	if err != nil {
		return nil, err
	}
	return &WritingPrompt{Prompt: text}, nil
}

// EvaluateWriting rates answer, written in languageCode, against prompt.
func (s *Service) EvaluateWriting(
	ctx context.Context,
	prompt, answer, languageCode string,
) (*WritingEvaluation, error) {
	name, err := resolveLanguage(languageCode)
	if err != nil {
		return nil, err
	}
	if err := required("prompt", prompt); err != nil {
		return nil, err
	}
	if err := required("user_response", answer); err != nil {
		return nil, err
	}

	text, err := s.generate(ctx, call{
		operation: "writing_evaluate",
		template:  "writing_evaluate",
		model:     generation.ModelText,
		data:      promptData{Language: name, Code: languageCode, Prompt: prompt, Text: answer},
	})
	if err != nil {
		return nil, err
	}

	var raw struct {
		Rating   *string  `json:"rating"`
		Feedback []string `json:"feedback"`
	}
	if !s.decode(ctx, "writing_evaluate", text, &raw) {
		return &WritingEvaluation{
			Rating:   RatingGood,
			Feedback: append([]string(nil), fallbackWritingFeedback...),
		}, nil
	}

	eval := &WritingEvaluation{Rating: RatingGood, Feedback: raw.Feedback}
	if raw.Rating != nil {
		eval.Rating = strings.TrimSpace(*raw.Rating)
	}
	if raw.Feedback == nil {
		eval.Feedback = append([]string(nil), defaultWritingFeedback...)
	}
	return eval, nil
}
