// Package conversation implements sequential conversation practice: a learner
// is shown a phrase in the target language and must reproduce it. A correct
// reply advances the session to a new phrase; an incorrect reply repeats the
// same one. Five correct replies complete a session.
//
// The package is organised leaves first:
//
//   - Normalize and Matches canonicalise text for comparison.
//   - PhrasePool holds the per-language question and statement phrases and
//     implements the weighted, no-repeat selection policy. A Deck is one
//     session's view of the pool and tracks which phrases are still unused.
//   - Session is a single learner's state machine (active, then ended).
//   - Store owns every live Session, hands out random identifiers and evicts
//     idle sessions.
//   - Engine validates requests and drives sessions through the Store. When a
//     session has exhausted its deck, the Engine can optionally ask an Enricher
//     (an external generative model) for a fresh phrase.
package conversation
