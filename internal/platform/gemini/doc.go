// Package gemini implements the generation.TextGenerator and
// generation.SpeechSynthesizer interfaces on top of Google's Gemini API.
//
// This package is an infrastructure adapter: it translates generation.Request
// values into google.golang.org/genai calls and maps the SDK's responses and
// failures back onto the generation sentinel errors.
//
// Key behaviours:
//
// 1. Model routing:
//   - Requests name a model role (text, vision, audio, speech)
//   - The Client maps each role to a configured model name
//
// 2. Error Handling:
//   - Retries transient failures with exponential backoff and jitter
//   - Returns permanent failures (safety blocks, empty or malformed
//     responses, 4xx API errors) immediately
//   - Bounds every attempt with the configured request timeout
package gemini
