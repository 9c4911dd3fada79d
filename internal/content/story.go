package content

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/phrazzld/lingua-api/internal/generation"
)

// MaxStoryRunes caps each story text; longer text is cut and marked with "...".
const MaxStoryRunes = 800

// Story is a short story in the target language with its English translation.
type Story struct {
	Topic               string `json:"topic"`
	StoryTargetLanguage string `json:"story_target_language"`
	StoryEnglish        string `json:"story_english"`
	Language            string `json:"language"`
}

// GenerateStory writes a short single-paragraph story about topic in
// languageCode and translates it to English.
func (s *Service) GenerateStory(ctx context.Context, topic, languageCode string) (*Story, error) {
	name, err := resolveLanguage(languageCode)
	if err != nil {
		return nil, err
	}
	if err := required("topic", topic); err != nil {
		return nil, err
	}

	target, err := s.generate(ctx, call{
		operation:   "story",
		template:    "story",
		model:       generation.ModelText,
		data:        promptData{Language: name, Code: languageCode, Topic: topic},
		temperature: generation.Float32(0.8),
		topP:        generation.Float32(0.9),
	})
	if err != nil {
		return nil, err
	}
	target = singleParagraph(target)

	english, err := s.generate(ctx, call{
		operation:   "story_translate",
		template:    "story_translate",
		model:       generation.ModelText,
		data:        promptData{Language: name, Code: languageCode, Text: target},
		temperature: generation.Float32(0.3),
		topP:        generation.Float32(0.8),
	})
	if err != nil {
		return nil, err
	}

	return &Story{
		Topic:               topic,
		StoryTargetLanguage: truncateRunes(target, MaxStoryRunes),
		StoryEnglish:        truncateRunes(singleParagraph(english), MaxStoryRunes),
		Language:            languageCode,
	}, nil
}

// singleParagraph joins lines and collapses runs of spaces.
func singleParagraph(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func truncateRunes(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit]) + "..."
}
