// Package mocks provides shared test doubles for interfaces used across the
// application.
//
// Inline fakes are fine for one-off cases. Reach for this package when the
// same collaborator is stubbed in several packages, so call tracking and
// defaults behave the same everywhere:
//
//	gen := &mocks.MockGenerator{Text: "Kumusta ka?"}
//	svc, err := speech.NewService(gen, gen, logger)
//	...
//	assert.Equal(t, 1, gen.Calls())
package mocks
