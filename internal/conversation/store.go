package conversation

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EvictReason says why a session left the store.
type EvictReason string

const (
	EvictExpired  EvictReason = "expired"
	EvictCapacity EvictReason = "capacity"
	EvictShutdown EvictReason = "shutdown"
)

const (
	defaultTTL         = 30 * time.Minute
	defaultMaxSessions = 10000
)

// StoreConfig bounds how long and how many sessions are kept.
type StoreConfig struct {
	// TTL is the idle time after which a session is evicted.
	TTL time.Duration
	// MaxSessions caps live sessions; the least recently used one is evicted
	// to make room for a new session.
	MaxSessions int
}

type storeEntry struct {
	session    *Session
	lastActive time.Time
}

// Store owns every live session. The map and the recency list are guarded by
// a single mutex; session state is guarded by each session's own mutex.
type Store struct {
	mu          sync.Mutex
	entries     map[string]*list.Element
	recency     *list.List // front is most recently used
	ttl         time.Duration
	maxSessions int
	closed      bool
	stopJanitor context.CancelFunc
	janitorDone chan struct{}

	now     func() time.Time
	newID   func() string
	onEvict func(*Session, EvictReason)
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the random v4 UUID generator.
func WithIDGenerator(newID func() string) StoreOption {
	return func(s *Store) { s.newID = newID }
}

// WithEvictHook registers a function called after a session is evicted.
// The hook runs without the store lock held.
func WithEvictHook(hook func(*Session, EvictReason)) StoreOption {
	return func(s *Store) { s.onEvict = hook }
}

// NewStore creates an empty store. Zero config values fall back to a 30 minute
// TTL and 10000 sessions.
func NewStore(cfg StoreConfig, opts ...StoreOption) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = defaultMaxSessions
	}
	s := &Store{
		entries:     make(map[string]*list.Element),
		recency:     list.New(),
		ttl:         cfg.TTL,
		maxSessions: cfg.MaxSessions,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new session opening with the given phrase and returns it.
func (s *Store) Create(language string, deck *Deck, opening Phrase) (*Session, error) {
	var evicted []*Session

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrStoreClosed
	}

	id := s.newID()
	for {
		if _, taken := s.entries[id]; !taken {
			break
		}
		id = s.newID()
	}

	for s.recency.Len() >= s.maxSessions {
		oldest := s.recency.Back()
		evicted = append(evicted, s.removeLocked(oldest))
	}

	now := s.now()
	session := newSession(id, language, deck, opening, now)
	s.entries[id] = s.recency.PushFront(&storeEntry{session: session, lastActive: now})
	s.mu.Unlock()

	s.notify(evicted, EvictCapacity)
	return session, nil
}

// Get returns the session with id and marks it as recently used. Unknown and
// expired ids yield ErrNotFound.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	el, ok := s.entries[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}

	now := s.now()
	entry := el.Value.(*storeEntry)
	if now.Sub(entry.lastActive) >= s.ttl {
		expired := s.removeLocked(el)
		s.mu.Unlock()
		s.notify([]*Session{expired}, EvictExpired)
		return nil, ErrNotFound
	}

	entry.lastActive = now
	s.recency.MoveToFront(el)
	s.mu.Unlock()
	return entry.session, nil
}

// Len returns the number of sessions currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep evicts every session idle for longer than the TTL and returns how
// many were removed.
func (s *Store) Sweep() int {
	now := s.now()
	var expired []*Session

	s.mu.Lock()
	// The back of the list is the least recently used, so stop at the first
	// entry that is still fresh.
	for el := s.recency.Back(); el != nil; {
		entry := el.Value.(*storeEntry)
		if now.Sub(entry.lastActive) < s.ttl {
			break
		}
		prev := el.Prev()
		expired = append(expired, s.removeLocked(el))
		el = prev
	}
	s.mu.Unlock()

	s.notify(expired, EvictExpired)
	return len(expired)
}

// StartJanitor sweeps expired sessions every interval until ctx is done or
// the store is closed.
func (s *Store) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	s.mu.Lock()
	if s.closed || s.stopJanitor != nil {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.stopJanitor = cancel
	s.janitorDone = done
	s.mu.Unlock()

	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

// Close stops the janitor and releases every session. Create fails afterwards.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	stop, done := s.stopJanitor, s.janitorDone

	released := make([]*Session, 0, len(s.entries))
	for el := s.recency.Front(); el != nil; el = el.Next() {
		released = append(released, el.Value.(*storeEntry).session)
	}
	s.entries = make(map[string]*list.Element)
	s.recency.Init()
	s.mu.Unlock()

	if stop != nil {
		stop()
		<-done
	}
	s.notify(released, EvictShutdown)
}

// removeLocked must be called with s.mu held.
func (s *Store) removeLocked(el *list.Element) *Session {
	entry := s.recency.Remove(el).(*storeEntry)
	delete(s.entries, entry.session.id)
	return entry.session
}

func (s *Store) notify(sessions []*Session, reason EvictReason) {
	if s.onEvict == nil {
		return
	}
	for _, session := range sessions {
		s.onEvict(session, reason)
	}
}
