package api

import "github.com/phrazzld/lingua-api/internal/language"

// StoryDefaultLanguage is the language used by story and listening requests
// that do not name one.
const StoryDefaultLanguage = "tl-PH"

// ConversationStartResponse is returned by POST /conversation/start.
type ConversationStartResponse struct {
	ConversationID string `json:"conversation_id"`
	AIMessage      string `json:"ai_message"`
}

// ConversationReplyRequest is the body of POST /conversation/reply.
// An empty user_message is accepted and treated as a mismatch.
type ConversationReplyRequest struct {
	ConversationID string `json:"conversation_id" validate:"required"`
	UserMessage    string `json:"user_message"`
	Language       string `json:"language"`
}

// ConversationReplyResponse is returned by POST /conversation/reply.
type ConversationReplyResponse struct {
	AIMessage         string `json:"ai_message"`
	ConversationEnded bool   `json:"conversation_ended"`
}

// WritingEvaluationRequest is the body of POST /writing/evaluate.
type WritingEvaluationRequest struct {
	Prompt       string `json:"prompt"        validate:"required"`
	UserResponse string `json:"user_response" validate:"required"`
	Language     string `json:"language"`
}

// FlashcardValidationRequest is the body of POST /flashcards/validate.
type FlashcardValidationRequest struct {
	Word         string `json:"word"          validate:"required"`
	UserResponse string `json:"user_response"`
}

// FlashcardValidationResponse reports whether the answer matched.
type FlashcardValidationResponse struct {
	Matches bool `json:"matches"`
}

// RoleplayEvaluationRequest is the body of POST /roleplay/evaluate-response.
type RoleplayEvaluationRequest struct {
	Scenario           string `json:"scenario"             validate:"required"`
	QuestionInLanguage string `json:"question_in_language" validate:"required"`
	QuestionEnglish    string `json:"question_english"`
	UserResponse       string `json:"user_response"        validate:"required"`
	Language           string `json:"language"`
}

// StoryRequest is the body of POST /story/generate-story.
type StoryRequest struct {
	Topic    string `json:"topic"    validate:"required"`
	Language string `json:"language"`
}

// DialogueRequest is the body of POST /dialogue/generate-dialogue.
type DialogueRequest struct {
	Scenario string `json:"scenario" validate:"required"`
	Language string `json:"language"`
}

// ListeningRequest is the body of POST /listening/generate-practice.
type ListeningRequest struct {
	Topic    string `json:"topic"    validate:"required"`
	Language string `json:"language"`
}

// SynthesizeRequest is the body of POST /synthesize. Both fields are required.
type SynthesizeRequest struct {
	Language string `json:"language" validate:"required"`
	Text     string `json:"text"     validate:"required"`
}

// LanguagesResponse is returned by GET /languages.
type LanguagesResponse struct {
	DefaultLanguage    string            `json:"default_language"`
	SupportedLanguages map[string]string `json:"supported_languages"`
	TotalLanguages     int               `json:"total_languages"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status         string `json:"status"`
	ActiveSessions int    `json:"active_sessions"`
	Database       string `json:"database,omitempty"`
}

// orDefault returns value, or fallback when value is empty.
func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func newLanguagesResponse() LanguagesResponse {
	supported := language.Supported()
	names := make(map[string]string, len(supported))
	for _, l := range supported {
		names[l.Code] = l.Name
	}
	return LanguagesResponse{
		DefaultLanguage:    language.Default,
		SupportedLanguages: names,
		TotalLanguages:     len(supported),
	}
}
