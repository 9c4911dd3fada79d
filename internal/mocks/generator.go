package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/lingua-api/internal/generation"
)

// MockGenerator implements generation.TextGenerator and
// generation.SpeechSynthesizer for testing.
type MockGenerator struct {
	// GenerateTextFn overrides GenerateText when set.
	GenerateTextFn func(ctx context.Context, req generation.Request) (string, error)

	// SynthesizeSpeechFn overrides SynthesizeSpeech when set.
	SynthesizeSpeechFn func(ctx context.Context, req generation.SpeechRequest) (*generation.Audio, error)

	// Default response values
	Text  string
	Audio *generation.Audio
	Err   error

	mu             sync.Mutex
	requests       []generation.Request
	speechRequests []generation.SpeechRequest
}

var (
	_ generation.TextGenerator     = (*MockGenerator)(nil)
	_ generation.SpeechSynthesizer = (*MockGenerator)(nil)
)

// NewMockGeneratorWithError creates a MockGenerator that fails every call
// with err.
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}

// GenerateText records req and returns GenerateTextFn's result, or the
// default Text and Err.
func (m *MockGenerator) GenerateText(ctx context.Context, req generation.Request) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.GenerateTextFn != nil {
		return m.GenerateTextFn(ctx, req)
	}
	return m.Text, m.Err
}

// SynthesizeSpeech records req and returns SynthesizeSpeechFn's result, or
// the default Audio and Err.
func (m *MockGenerator) SynthesizeSpeech(ctx context.Context, req generation.SpeechRequest) (*generation.Audio, error) {
	m.mu.Lock()
	m.speechRequests = append(m.speechRequests, req)
	m.mu.Unlock()

	if m.SynthesizeSpeechFn != nil {
		return m.SynthesizeSpeechFn(ctx, req)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Audio, nil
}

// Calls returns how many times GenerateText was called.
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of every GenerateText request in call order.
func (m *MockGenerator) Requests() []generation.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generation.Request(nil), m.requests...)
}

// LastRequest returns the most recent GenerateText request, or the zero
// Request if there was none.
func (m *MockGenerator) LastRequest() generation.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return generation.Request{}
	}
	return m.requests[len(m.requests)-1]
}

// LastSpeechRequest returns the most recent SynthesizeSpeech request.
func (m *MockGenerator) LastSpeechRequest() generation.SpeechRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.speechRequests) == 0 {
		return generation.SpeechRequest{}
	}
	return m.speechRequests[len(m.speechRequests)-1]
}

// Reset clears the recorded calls.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
	m.speechRequests = nil
}
