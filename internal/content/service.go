package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/lingua-api/internal/generation"
	"github.com/phrazzld/lingua-api/internal/language"
)

// Service produces learning content through a text generator. It holds no
// mutable state and is safe for concurrent use.
type Service struct {
	gen    generation.TextGenerator
	logger *slog.Logger
}

// NewService creates a Service backed by gen.
func NewService(gen generation.TextGenerator, logger *slog.Logger) (*Service, error) {
	if gen == nil {
		return nil, errors.New("text generator cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		gen:    gen,
		logger: logger.With("component", "content_service"),
	}, nil
}

// call describes one generation round trip.
type call struct {
	operation   string
	template    string
	model       string
	data        promptData
	media       []generation.Media
	temperature *float32
	topP        *float32
}

func (s *Service) generate(ctx context.Context, c call) (string, error) {
	prompt, err := renderPrompt(c.template, c.data)
	if err != nil {
		return "", err
	}

	text, err := s.gen.GenerateText(ctx, generation.Request{
		Model:       c.model,
		Prompt:      prompt,
		Media:       c.media,
		Temperature: c.temperature,
		TopP:        c.topP,
		Operation:   c.operation,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.operation, err)
	}
	return strings.TrimSpace(text), nil
}

// decode parses model JSON into v. A parse failure is logged and reported as
// false so callers can substitute their fallback.
func (s *Service) decode(ctx context.Context, operation, text string, v any) bool {
	if err := generation.DecodeJSON(text, v); err != nil {
		s.logger.WarnContext(ctx, "model returned unparseable output, using fallback",
			"operation", operation,
			"error", err)
		return false
	}
	return true
}

// resolveLanguage validates code and returns its display name.
func resolveLanguage(code string) (string, error) {
	if err := language.Validate(code); err != nil {
		return "", err
	}
	return language.NameOr(code, code), nil
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidInput, field)
	}
	return nil
}
