package content

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/phrazzld/lingua-api/internal/generation"
)

// NoWordsFound is the entry word reported when the model does not recognise
// the searched word.
const NoWordsFound = "No words found"

// DictionaryEntry describes one word in a target language.
type DictionaryEntry struct {
	Word               string   `json:"word"`
	Syllables          string   `json:"syllables"`
	Meanings           []string `json:"meanings"`
	EnglishSentence    string   `json:"english_sentence"`
	SentenceInLanguage string   `json:"sentence_in_language"`
	Language           string   `json:"language"`
}

// SearchWord looks up word in the dictionary for languageCode.
func (s *Service) SearchWord(ctx context.Context, word, languageCode string) (*DictionaryEntry, error) {
	name, err := resolveLanguage(languageCode)
	if err != nil {
		return nil, err
	}
	word = strings.TrimSpace(word)
	if err := required("word", word); err != nil {
		return nil, err
	}

	text, err := s.generate(ctx, call{
		operation: "dictionary_search",
		template:  "dictionary_search",
		model:     generation.ModelVision,
		data:      promptData{Language: name, Code: languageCode, Word: word, NotFound: NoWordsFound},
	})
	if err != nil {
		return nil, err
	}

	var raw struct {
		Word               *string   `json:"word"`
		Syllables          *string   `json:"syllables"`
		Meanings           *[]string `json:"meanings"`
		EnglishSentence    string    `json:"english_sentence"`
		SentenceInLanguage string    `json:"sentence_in_language"`
	}
	if !s.decode(ctx, "dictionary_search", text, &raw) {
		return &DictionaryEntry{
			Word:            word,
			Syllables:       word,
			Meanings:        []string{"Unable to find meaning"},
			EnglishSentence: "Please try again.",
			Language:        languageCode,
		}, nil
	}

	if raw.Word != nil && *raw.Word == NoWordsFound {
		return &DictionaryEntry{Word: NoWordsFound, Meanings: []string{}, Language: languageCode}, nil
	}

	entry := &DictionaryEntry{
		Word:               word,
		Syllables:          word,
		Meanings:           []string{"No meaning found"},
		EnglishSentence:    raw.EnglishSentence,
		SentenceInLanguage: raw.SentenceInLanguage,
		Language:           languageCode,
	}
	if raw.Word != nil {
		entry.Word = *raw.Word
	}
	if raw.Syllables != nil {
		entry.Syllables = *raw.Syllables
	}
	if raw.Meanings != nil {
		entry.Meanings = *raw.Meanings
	}
	return entry, nil
}

// DetectImage names the main object in image in languageCode and returns the
// dictionary entry for that word. filename selects the image MIME type.
func (s *Service) DetectImage(
	ctx context.Context,
	image []byte,
	filename, languageCode string,
) (*DictionaryEntry, error) {
	name, err := resolveLanguage(languageCode)
	if err != nil {
		return nil, err
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: image cannot be empty", ErrInvalidInput)
	}

	word, err := s.generate(ctx, call{
		operation: "dictionary_detect",
		template:  "dictionary_detect",
		model:     generation.ModelVision,
		data:      promptData{Language: name, Code: languageCode},
		media:     []generation.Media{{Data: image, MIMEType: ImageMIMEType(filename)}},
	})
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "detected object in image", "word", word, "language", languageCode)
	return s.SearchWord(ctx, word, languageCode)
}

// ImageMIMEType maps an image file name to its MIME type by extension,
// defaulting to JPEG.
func ImageMIMEType(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
