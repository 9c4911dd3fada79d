// Package content implements the generated learning material served next to
// conversation practice: writing prompts and evaluations, dictionary entries,
// flashcards, roleplay scenarios, stories, dialogues and listening practice.
//
// Every operation is a single round trip through a generation.TextGenerator
// using a prompt template embedded from prompts/. Model output is parsed into
// typed results; where the model returns malformed JSON, most operations fall
// back to a fixed result instead of failing. Listening practice is the
// exception and reports generation.ErrInvalidResponse.
//
// The package also provides PhraseEnricher, which lets the conversation engine
// draw fresh practice phrases once a session has used its whole phrase pool.
package content
