package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/phrazzld/lingua-api/internal/conversation"
	"github.com/phrazzld/lingua-api/internal/generation"
)

// maxAvoidPhrases bounds how much session history is sent with a request.
const maxAvoidPhrases = 30

// PhraseEnricher generates new conversation practice phrases.
type PhraseEnricher struct {
	svc *Service
}

var _ conversation.Enricher = (*PhraseEnricher)(nil)

// NewPhraseEnricher returns an enricher backed by svc.
func NewPhraseEnricher(svc *Service) *PhraseEnricher {
	return &PhraseEnricher{svc: svc}
}

// EnrichPhrase asks the model for one phrase of kind in languageCode that
// differs from every phrase in avoid.
func (p *PhraseEnricher) EnrichPhrase(
	ctx context.Context,
	languageCode string,
	kind conversation.Kind,
	avoid []string,
) (string, error) {
	name, err := resolveLanguage(languageCode)
	if err != nil {
		return "", err
	}
	if len(avoid) > maxAvoidPhrases {
		avoid = avoid[len(avoid)-maxAvoidPhrases:]
	}

	text, err := p.svc.generate(ctx, call{
		operation:   "conversation_phrase",
		template:    "phrase",
		model:       generation.ModelText,
		data:        promptData{Language: name, Code: languageCode, Kind: kind.String(), Avoid: avoid},
		temperature: generation.Float32(0.9),
	})
	if err != nil {
		return "", err
	}

	phrase := cleanPhrase(text)
	if conversation.Normalize(phrase) == "" {
		return "", fmt.Errorf("conversation_phrase: %w: no phrase in output", generation.ErrInvalidResponse)
	}
	for _, used := range avoid {
		if conversation.Matches(phrase, used) {
			return "", fmt.Errorf("conversation_phrase: %w: model repeated %q", generation.ErrInvalidResponse, used)
		}
	}
	return phrase, nil
}

// cleanPhrase keeps the first non-empty line of text without list markers or
// wrapping quotes.
func cleanPhrase(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• ")
		line = strings.Trim(line, "\"'`“”")
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
