package observability

import (
	"context"
	"time"

	"github.com/phrazzld/lingua-api/internal/generation"
)

// InstrumentedGenerator records metrics for every call to a text generator
// and speech synthesizer.
type InstrumentedGenerator struct {
	text    generation.TextGenerator
	speech  generation.SpeechSynthesizer
	metrics *Metrics
}

var (
	_ generation.TextGenerator     = (*InstrumentedGenerator)(nil)
	_ generation.SpeechSynthesizer = (*InstrumentedGenerator)(nil)
)

// Instrument wraps text and speech. Either may be nil if the caller only uses
// the other.
func (m *Metrics) Instrument(text generation.TextGenerator, speech generation.SpeechSynthesizer) *InstrumentedGenerator {
	return &InstrumentedGenerator{text: text, speech: speech, metrics: m}
}

// GenerateText implements generation.TextGenerator.
func (g *InstrumentedGenerator) GenerateText(ctx context.Context, req generation.Request) (string, error) {
	op := req.Operation
	if op == "" {
		op = "unnamed"
	}
	start := time.Now()
	text, err := g.text.GenerateText(ctx, req)
	g.observe(op, start, err)
	return text, err
}

// SynthesizeSpeech implements generation.SpeechSynthesizer.
func (g *InstrumentedGenerator) SynthesizeSpeech(
	ctx context.Context,
	req generation.SpeechRequest,
) (*generation.Audio, error) {
	start := time.Now()
	audio, err := g.speech.SynthesizeSpeech(ctx, req)
	g.observe("synthesize_speech", start, err)
	return audio, err
}

func (g *InstrumentedGenerator) observe(op string, start time.Time, err error) {
	g.metrics.GenerationRequests.WithLabelValues(op, Outcome(err)).Inc()
	g.metrics.GenerationLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
