package content

import (
	"context"
	"strings"

	"github.com/phrazzld/lingua-api/internal/generation"
)

// FlashcardCount is the number of cards requested per generation.
const FlashcardCount = 5

// Flashcard is a single vocabulary card.
type Flashcard struct {
	Syllables      string `json:"syllables"`
	Meaning        string `json:"meaning"`
	TopicName      string `json:"topic_name"`
	SubTopicName   string `json:"sub_topic_name"`
	Word           string `json:"word"`
	EnglishMeaning string `json:"english_meaning"`
}

// FlashcardSet is a generated batch of flashcards.
type FlashcardSet struct {
	Flashcards []Flashcard `json:"flashcards"`
	Language   string      `json:"language"`
}

// GenerateFlashcards returns up to FlashcardCount cards for languageCode. The
// set is empty when the model output cannot be parsed.
func (s *Service) GenerateFlashcards(ctx context.Context, languageCode string) (*FlashcardSet, error) {
	name, err := resolveLanguage(languageCode)
	if err != nil {
		return nil, err
	}

	text, err := s.generate(ctx, call{
		operation: "flashcards",
		template:  "flashcards",
		model:     generation.ModelText,
		data:      promptData{Language: name, Code: languageCode, Count: FlashcardCount},
	})
	if err != nil {
		return nil, err
	}

	set := &FlashcardSet{Flashcards: []Flashcard{}, Language: languageCode}
	var raw struct {
		Flashcards []Flashcard `json:"flashcards"`
	}
	if !s.decode(ctx, "flashcards", text, &raw) {
		return set, nil
	}
	if len(raw.Flashcards) > FlashcardCount {
		raw.Flashcards = raw.Flashcards[:FlashcardCount]
	}
	set.Flashcards = append(set.Flashcards, raw.Flashcards...)
	return set, nil
}

// ValidateFlashcard reports whether answer matches word, ignoring
// surrounding whitespace and letter case.
func ValidateFlashcard(word, answer string) bool {
	return strings.ToLower(strings.TrimSpace(word)) == strings.ToLower(strings.TrimSpace(answer))
}
