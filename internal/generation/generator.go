package generation

import "context"

// Model roles. The adapter maps each role to a configured model name.
const (
	ModelText   = "text"
	ModelVision = "vision"
	ModelSpeech = "speech"
	ModelAudio  = "audio"
)

// Media is inline binary input such as an uploaded image or recording.
type Media struct {
	Data     []byte
	MIMEType string
}

// Request is a single prompt round trip.
type Request struct {
	// Model is one of the Model* roles.
	Model string

	// Prompt is the user turn text.
	Prompt string

	// SystemInstruction, if set, is sent as the system prompt.
	SystemInstruction string

	// Media is attached after the prompt text.
	Media []Media

	// Temperature overrides the model default when non-nil.
	Temperature *float32

	// TopP overrides the model default when non-nil.
	TopP *float32

	// Operation names the calling feature for logs and metrics.
	Operation string
}

// SpeechRequest asks for spoken audio of Text.
type SpeechRequest struct {
	Text  string
	Voice string
}

// Audio is synthesized speech as returned by the service.
type Audio struct {
	Data     []byte
	MIMEType string
}

// TextGenerator produces text from a prompt.
type TextGenerator interface {
	// GenerateText performs one round trip and returns the model's text.
	// Errors wrap the sentinels in errors.go.
	GenerateText(ctx context.Context, req Request) (string, error)
}

// SpeechSynthesizer produces spoken audio.
type SpeechSynthesizer interface {
	SynthesizeSpeech(ctx context.Context, req SpeechRequest) (*Audio, error)
}

// Float32 returns a pointer to v, for Request sampling fields.
func Float32(v float32) *float32 {
	return &v
}
