package conversation

import (
	"fmt"
	"sync"
	"time"
)

// MaxTurns is the number of correct replies that completes a session.
const MaxTurns = 5

// CompletionMessage is returned with the reply that completes a session.
var CompletionMessage = fmt.Sprintf("You've completed all %d prompts. Fantastic work!", MaxTurns)

// CorrectionMessage asks the learner to repeat the expected phrase.
func CorrectionMessage(expected string) string {
	return fmt.Sprintf("Please say %s again.", expected)
}

// Session is one learner's practice conversation. All transitions happen under
// the session mutex and either apply completely or not at all.
type Session struct {
	mu sync.Mutex

	id        string
	language  string
	createdAt time.Time

	turn     int
	expected Phrase
	asked    []Phrase
	ended    bool
	// version changes on every state transition.
	version uint64

	deck *Deck
}

func newSession(id, language string, deck *Deck, opening Phrase, now time.Time) *Session {
	deck.MarkUsed(opening.Text)
	return &Session{
		id:        id,
		language:  language,
		createdAt: now,
		expected:  opening,
		asked:     []Phrase{opening},
		deck:      deck,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Language returns the language fixed at session creation.
func (s *Session) Language() string { return s.language }

// Snapshot is a point-in-time copy of a session's state.
type Snapshot struct {
	ID        string
	Language  string
	CreatedAt time.Time
	Turn      int
	Expected  Phrase
	Asked     []Phrase
	Ended     bool
}

// Snapshot returns a consistent copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	asked := make([]Phrase, len(s.asked))
	copy(asked, s.asked)
	return Snapshot{
		ID:        s.id,
		Language:  s.language,
		CreatedAt: s.createdAt,
		Turn:      s.turn,
		Expected:  s.expected,
		Asked:     asked,
		Ended:     s.ended,
	}
}

// Outcome is the result of one reply.
type Outcome struct {
	// Message is the next phrase, the correction or the completion message.
	Message string
	Matched bool
	Ended   bool
	// Turn is the number of correct replies after this one.
	Turn int
}

// enrichment is returned by reply when the deck is exhausted and the caller
// is expected to supply a new phrase through commitEnriched.
type enrichment struct {
	version uint64
	kind    Kind
	avoid   []string
}

// Reply applies the learner's text using only the session's deck.
func (s *Session) Reply(text string) (Outcome, error) {
	out, _, err := s.reply(text, false)
	return out, err
}

func (s *Session) reply(text string, allowEnrichment bool) (Outcome, *enrichment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended {
		return Outcome{}, nil, ErrSessionEnded
	}

	if !Matches(text, s.expected.Text) {
		return Outcome{
			Message: CorrectionMessage(s.expected.Text),
			Turn:    s.turn,
		}, nil, nil
	}

	if s.turn+1 >= MaxTurns {
		s.turn++
		s.ended = true
		s.version++
		return Outcome{
			Message: CompletionMessage,
			Matched: true,
			Ended:   true,
			Turn:    s.turn,
		}, nil, nil
	}

	if allowEnrichment && s.deck.Exhausted() {
		avoid := make([]string, len(s.asked))
		for i, p := range s.asked {
			avoid[i] = p.Text
		}
		return Outcome{}, &enrichment{
			version: s.version,
			kind:    s.deck.DrawKind(),
			avoid:   avoid,
		}, nil
	}

	return s.advance(s.deck.Draw()), nil, nil
}

// commitEnriched advances the session with a generated phrase if nothing has
// changed since the enrichment was requested.
func (s *Session) commitEnriched(version uint64, next Phrase) (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended || s.version != version {
		return Outcome{}, false
	}
	s.deck.MarkUsed(next.Text)
	return s.advance(next), true
}

// advance must be called with s.mu held.
func (s *Session) advance(next Phrase) Outcome {
	s.turn++
	s.expected = next
	s.asked = append(s.asked, next)
	s.version++
	return Outcome{
		Message: next.Text,
		Matched: true,
		Turn:    s.turn,
	}
}
