package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Conversation lifecycle event types.
const (
	ConversationStarted   = "conversation.started"
	ConversationAdvanced  = "conversation.advanced"
	ConversationMismatch  = "conversation.mismatch"
	ConversationCompleted = "conversation.completed"
	ConversationEvicted   = "conversation.evicted"
)

// Event describes something that happened to a conversation session.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Conversation* constants
	Type string `json:"type"`

	// SessionID is the conversation the event belongs to
	SessionID string `json:"session_id"`

	// Language is the session's language code
	Language string `json:"language"`

	// Turn is the number of correct replies at the time of the event
	Turn int `json:"turn"`

	// Reason is set for evictions (expired, capacity, shutdown)
	Reason string `json:"reason,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewEvent creates an Event with a fresh id and the current time.
func NewEvent(eventType, sessionID, language string, turn int) *Event {
	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		SessionID: sessionID,
		Language:  language,
		Turn:      turn,
		CreatedAt: time.Now(),
	}
}

// WithReason sets the eviction reason and returns the event.
func (e *Event) WithReason(reason string) *Event {
	e.Reason = reason
	return e
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter defines an interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts an ordinary function to the EventHandler interface.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// NopEmitter discards every event.
type NopEmitter struct{}

// EmitEvent implements EventEmitter.
func (NopEmitter) EmitEvent(context.Context, *Event) error { return nil }
