package api

import (
	"context"

	"github.com/phrazzld/lingua-api/internal/content"
	"github.com/phrazzld/lingua-api/internal/conversation"
	"github.com/phrazzld/lingua-api/internal/speech"
)

// ConversationService runs sequential conversation practice sessions.
// *conversation.Engine implements it.
type ConversationService interface {
	Start(ctx context.Context, lang string) (*conversation.StartResult, error)
	Reply(ctx context.Context, id, lang, text string) (*conversation.ReplyResult, error)
}

// ContentService generates practice material. *content.Service implements it.
type ContentService interface {
	GenerateWritingPrompt(ctx context.Context, lang string) (*content.WritingPrompt, error)
	EvaluateWriting(ctx context.Context, prompt, answer, lang string) (*content.WritingEvaluation, error)
	SearchWord(ctx context.Context, word, lang string) (*content.DictionaryEntry, error)
	DetectImage(ctx context.Context, image []byte, filename, lang string) (*content.DictionaryEntry, error)
	GenerateFlashcards(ctx context.Context, lang string) (*content.FlashcardSet, error)
	GenerateRoleplayScenario(ctx context.Context, lang string) (*content.RoleplayScenario, error)
	EvaluateRoleplay(ctx context.Context, answer content.RoleplayAnswer) (*content.RoleplayEvaluation, error)
	GenerateStory(ctx context.Context, topic, lang string) (*content.Story, error)
	GenerateDialogue(ctx context.Context, scenario, lang string) (*content.Dialogue, error)
	GenerateListeningPractice(ctx context.Context, topic, lang string) (*content.ListeningPractice, error)
}

// SpeechService converts between audio and text. *speech.Service implements it.
type SpeechService interface {
	Transcribe(ctx context.Context, data []byte, mimeType, lang string) (*speech.Transcription, error)
	Synthesize(ctx context.Context, text, lang string) (*speech.Synthesis, error)
}

var (
	_ ConversationService = (*conversation.Engine)(nil)
	_ ContentService      = (*content.Service)(nil)
	_ SpeechService       = (*speech.Service)(nil)
)
