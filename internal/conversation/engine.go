package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/lingua-api/internal/events"
	"github.com/phrazzld/lingua-api/internal/language"
)

// maxCommitAttempts bounds how often an enriched reply is retried when the
// session changes while the phrase is being generated.
const maxCommitAttempts = 3

// Enricher generates a new practice phrase of the given kind in language that
// differs from the avoid list.
type Enricher interface {
	EnrichPhrase(ctx context.Context, language string, kind Kind, avoid []string) (string, error)
}

// StartResult is returned by Engine.Start.
type StartResult struct {
	ConversationID string
	Message        string
}

// ReplyResult is returned by Engine.Reply.
type ReplyResult struct {
	Message string
	Ended   bool
	Matched bool
	Turn    int
}

// Engine coordinates the phrase pool and the session store. It holds no
// per-session state of its own.
type Engine struct {
	store            *Store
	pool             *PhrasePool
	enricher         Enricher
	enrichTimeout    time.Duration
	emitter          events.EventEmitter
	logger           *slog.Logger
	openWithGreeting bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithEnricher enables phrase generation once a session has used every phrase
// in its language pool. Each call is bounded by timeout.
func WithEnricher(enricher Enricher, timeout time.Duration) EngineOption {
	return func(e *Engine) {
		e.enricher = enricher
		e.enrichTimeout = timeout
	}
}

// WithEmitter publishes session lifecycle events to emitter.
func WithEmitter(emitter events.EventEmitter) EngineOption {
	return func(e *Engine) { e.emitter = emitter }
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// WithGreetingOpening controls whether sessions open with the language's
// greeting when one is configured. It is on by default.
func WithGreetingOpening(enabled bool) EngineOption {
	return func(e *Engine) { e.openWithGreeting = enabled }
}

// NewEngine creates an engine over store and pool.
func NewEngine(store *Store, pool *PhrasePool, opts ...EngineOption) *Engine {
	e := &Engine{
		store:            store,
		pool:             pool,
		emitter:          events.NopEmitter{},
		logger:           slog.Default(),
		openWithGreeting: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "conversation_engine")
	return e
}

// Start opens a new session in lang and returns its id and opening phrase.
func (e *Engine) Start(ctx context.Context, lang string) (*StartResult, error) {
	if err := language.Validate(lang); err != nil {
		return nil, err
	}

	deck, err := e.pool.NewDeck(lang)
	if err != nil {
		return nil, err
	}

	opening, ok := Phrase{}, false
	if e.openWithGreeting {
		opening, ok = e.pool.Greeting(lang)
	}
	if !ok {
		opening = deck.Draw()
	}

	session, err := e.store.Create(lang, deck, opening)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	e.logger.DebugContext(ctx, "conversation started",
		"conversation_id", session.ID(),
		"language", lang)
	e.emit(ctx, events.ConversationStarted, session, 0)

	return &StartResult{
		ConversationID: session.ID(),
		Message:        opening.Text,
	}, nil
}

// Reply applies the learner's text to session id. The language is validated
// before the session is looked up. A session's language is fixed at Start; a
// different but supported language on a reply is ignored.
func (e *Engine) Reply(ctx context.Context, id, lang, text string) (*ReplyResult, error) {
	if err := language.Validate(lang); err != nil {
		return nil, err
	}

	session, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}
	if session.Language() != lang {
		e.logger.DebugContext(ctx, "reply language differs from session language",
			"conversation_id", id,
			"session_language", session.Language(),
			"request_language", lang)
	}

	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		out, pending, err := session.reply(text, e.enricher != nil)
		if err != nil {
			return nil, err
		}
		if pending == nil {
			return e.finish(ctx, session, out), nil
		}

		next, err := e.enrich(ctx, session.Language(), pending)
		if err != nil {
			e.logger.ErrorContext(ctx, "phrase enrichment failed",
				"conversation_id", id,
				"language", session.Language(),
				"error", err)
			return nil, err
		}

		if out, ok := session.commitEnriched(pending.version, next); ok {
			return e.finish(ctx, session, out), nil
		}
		e.logger.DebugContext(ctx, "session changed during enrichment, retrying",
			"conversation_id", id,
			"attempt", attempt+1)
	}

	return nil, fmt.Errorf("%w: %s", ErrSessionBusy, id)
}

func (e *Engine) enrich(ctx context.Context, lang string, pending *enrichment) (Phrase, error) {
	if e.enrichTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.enrichTimeout)
		defer cancel()
	}

	text, err := e.enricher.EnrichPhrase(ctx, lang, pending.kind, pending.avoid)
	if err != nil {
		return Phrase{}, fmt.Errorf("%w: %w", ErrEnrichmentFailed, err)
	}
	text = strings.TrimSpace(text)
	if Normalize(text) == "" {
		return Phrase{}, fmt.Errorf("%w: generator returned an empty phrase", ErrEnrichmentFailed)
	}
	return Phrase{Text: text, Kind: pending.kind}, nil
}

func (e *Engine) finish(ctx context.Context, session *Session, out Outcome) *ReplyResult {
	switch {
	case out.Ended:
		e.emit(ctx, events.ConversationCompleted, session, out.Turn)
	case out.Matched:
		e.emit(ctx, events.ConversationAdvanced, session, out.Turn)
	default:
		e.emit(ctx, events.ConversationMismatch, session, out.Turn)
	}

	return &ReplyResult{
		Message: out.Message,
		Ended:   out.Ended,
		Matched: out.Matched,
		Turn:    out.Turn,
	}
}

func (e *Engine) emit(ctx context.Context, eventType string, session *Session, turn int) {
	event := events.NewEvent(eventType, session.ID(), session.Language(), turn)
	if err := e.emitter.EmitEvent(ctx, event); err != nil {
		e.logger.WarnContext(ctx, "failed to emit conversation event",
			"event_type", eventType,
			"conversation_id", session.ID(),
			"error", err)
	}
}

// EvictionPublisher returns a store eviction hook that publishes a
// conversation.evicted event for each released session.
func EvictionPublisher(emitter events.EventEmitter, logger *slog.Logger) func(*Session, EvictReason) {
	if logger == nil {
		logger = slog.Default()
	}
	return func(session *Session, reason EvictReason) {
		snap := session.Snapshot()
		event := events.NewEvent(events.ConversationEvicted, snap.ID, snap.Language, snap.Turn).
			WithReason(string(reason))
		if err := emitter.EmitEvent(context.Background(), event); err != nil {
			logger.Warn("failed to emit eviction event",
				"conversation_id", snap.ID,
				"reason", reason,
				"error", err)
		}
	}
}
