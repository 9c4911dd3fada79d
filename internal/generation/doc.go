// Package generation defines the boundary between the application and the
// external generative AI service (Gemini). Content collaborators build a
// Request and hand it to a TextGenerator or SpeechSynthesizer without knowing
// which vendor or SDK serves it.
package generation
