package content

import (
	"context"

	"github.com/phrazzld/lingua-api/internal/generation"
)

// RoleplayScenario is an everyday situation with an opening question.
type RoleplayScenario struct {
	Scenario           string `json:"scenario"`
	QuestionInLanguage string `json:"question_in_language"`
	QuestionEnglish    string `json:"question_english"`
	Language           string `json:"language"`
}

// RoleplayAnswer is a learner's reply to a scenario question.
type RoleplayAnswer struct {
	Scenario           string
	QuestionInLanguage string
	QuestionEnglish    string
	Response           string
	Language           string
}

// RoleplayEvaluation is the model's verdict on a roleplay answer. Original
// and Better are only set when the answer needs improvement.
type RoleplayEvaluation struct {
	NeedsImprovement bool    `json:"needs_improvement"`
	Original         *string `json:"original"`
	Better           *string `json:"better"`
}

// GenerateRoleplayScenario creates a scenario whose question is in
// languageCode.
func (s *Service) GenerateRoleplayScenario(ctx context.Context, languageCode string) (*RoleplayScenario, error) {
	name, err := resolveLanguage(languageCode)
	if err != nil {
		return nil, err
	}

	text, err := s.generate(ctx, call{
		operation: "roleplay_scenario",
		template:  "roleplay_scenario",
		model:     generation.ModelText,
		data:      promptData{Language: name, Code: languageCode},
	})
	if err != nil {
		return nil, err
	}

	scenario := &RoleplayScenario{Language: languageCode}
	if !s.decode(ctx, "roleplay_scenario", text, scenario) {
		return &RoleplayScenario{
			Scenario:        "You are meeting a friend. They ask how you are doing.",
			QuestionEnglish: "How are you?",
			Language:        languageCode,
		}, nil
	}
	scenario.Language = languageCode
	return scenario, nil
}

// EvaluateRoleplay judges answer and suggests a better reply when needed.
// Unparseable output is treated as needing no improvement.
func (s *Service) EvaluateRoleplay(ctx context.Context, answer RoleplayAnswer) (*RoleplayEvaluation, error) {
	name, err := resolveLanguage(answer.Language)
	if err != nil {
		return nil, err
	}
	if err := required("user_response", answer.Response); err != nil {
		return nil, err
	}

	text, err := s.generate(ctx, call{
		operation: "roleplay_evaluate",
		template:  "roleplay_evaluate",
		model:     generation.ModelText,
		data: promptData{
			Language:           name,
			Code:               answer.Language,
			Scenario:           answer.Scenario,
			QuestionInLanguage: answer.QuestionInLanguage,
			QuestionEnglish:    answer.QuestionEnglish,
			Text:               answer.Response,
		},
	})
	if err != nil {
		return nil, err
	}

	eval := &RoleplayEvaluation{}
	if !s.decode(ctx, "roleplay_evaluate", text, eval) {
		return &RoleplayEvaluation{}, nil
	}
	return eval, nil
}
