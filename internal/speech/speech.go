// Package speech transcribes learner recordings and reads text aloud using
// the generation backends.
package speech

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/phrazzld/lingua-api/internal/audio"
	"github.com/phrazzld/lingua-api/internal/generation"
	"github.com/phrazzld/lingua-api/internal/language"
)

// DefaultAudioMIMEType is assumed for uploads without a usable content type;
// browsers record WebM.
const DefaultAudioMIMEType = "audio/webm"

var (
	// ErrEmptyAudio is returned when a transcription request carries no audio.
	ErrEmptyAudio = errors.New("empty audio file")

	// ErrEmptyText is returned when a synthesis request has no text.
	ErrEmptyText = errors.New("text cannot be empty")
)

// Voice is a prebuilt synthesis voice.
type Voice struct {
	Name string
	Type string
}

// Voices are the prebuilt voices synthesis picks from.
var Voices = []Voice{
	{Name: "Puck", Type: "female"},
	{Name: "Charon", Type: "male"},
	{Name: "Kore", Type: "female"},
	{Name: "Fenrir", Type: "male"},
	{Name: "Aoede", Type: "female"},
}

// Transcription is the text recognised in a recording.
type Transcription struct {
	Text             string `json:"text"`
	Language         string `json:"language"`
	DetectedLanguage string `json:"detected_language"`
}

// Synthesis is spoken audio for a piece of text.
type Synthesis struct {
	AudioContent string `json:"audio_content"`
	MIMEType     string `json:"mime_type"`
	Voice        string `json:"voice"`
	VoiceName    string `json:"voice_name"`
	Language     string `json:"language"`
}

// Service handles both directions of speech.
type Service struct {
	transcriber generation.TextGenerator
	synthesizer generation.SpeechSynthesizer
	logger      *slog.Logger
	pickVoice   func() Voice
}

// NewService creates a speech service. transcriber handles speech-to-text and
// synthesizer text-to-speech.
func NewService(
	transcriber generation.TextGenerator,
	synthesizer generation.SpeechSynthesizer,
	logger *slog.Logger,
) (*Service, error) {
	if transcriber == nil {
		return nil, errors.New("transcriber cannot be nil")
	}
	if synthesizer == nil {
		return nil, errors.New("synthesizer cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		transcriber: transcriber,
		synthesizer: synthesizer,
		logger:      logger.With("component", "speech_service"),
		pickVoice:   func() Voice { return Voices[rand.IntN(len(Voices))] },
	}, nil
}

// Transcribe converts a recording in languageCode to text. An empty mimeType
// means DefaultAudioMIMEType.
func (s *Service) Transcribe(ctx context.Context, data []byte, mimeType, languageCode string) (*Transcription, error) {
	if err := language.Validate(languageCode); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyAudio
	}
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = DefaultAudioMIMEType
	}
	name := language.NameOr(languageCode, languageCode)

	text, err := s.transcriber.GenerateText(ctx, generation.Request{
		Model: generation.ModelAudio,
		Prompt: fmt.Sprintf(
			"Transcribe this audio in %s. Provide only the transcribed text without any additional commentary.",
			name),
		Media:     []generation.Media{{Data: data, MIMEType: mimeType}},
		Operation: "transcribe",
	})
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	s.logger.DebugContext(ctx, "transcribed audio",
		"language", languageCode,
		"audio_bytes", len(data),
		"mime_type", mimeType)

	return &Transcription{
		Text:             strings.TrimSpace(text),
		Language:         languageCode,
		DetectedLanguage: languageCode,
	}, nil
}

// Synthesize reads text aloud with a randomly chosen voice and returns the
// audio base64-encoded. Raw PCM from the backend is wrapped in WAV.
func (s *Service) Synthesize(ctx context.Context, text, languageCode string) (*Synthesis, error) {
	if err := language.Validate(languageCode); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	voice := s.pickVoice()
	out, err := s.synthesizer.SynthesizeSpeech(ctx, generation.SpeechRequest{Text: text, Voice: voice.Name})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}

	data, mimeType, err := audio.ToWAV(out.Data, out.MIMEType)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}

	s.logger.DebugContext(ctx, "synthesized speech",
		"language", languageCode,
		"voice", voice.Name,
		"audio_bytes", len(data))

	return &Synthesis{
		AudioContent: base64.StdEncoding.EncodeToString(data),
		MIMEType:     mimeType,
		Voice:        voice.Type,
		VoiceName:    voice.Name,
		Language:     languageCode,
	}, nil
}
