package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxEvent represents an outbox event for the application layer
type OutboxEvent struct {
	ID        uuid.UUID       `json:"id"`
	Game      string          `json:"game"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	SentAt    *time.Time      `json:"sent_at,omitempty"`
}

// Envelope is the message body published for every outbox event
type Envelope struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	Game      string          `json:"game"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// EventPublisher delivers an outbox event to the message bus
type EventPublisher interface {
	Publish(ctx context.Context, event OutboxEvent) error
}

// NewEnvelope builds the published form of an event.
func NewEnvelope(event OutboxEvent) Envelope {
	return Envelope{
		EventID:   event.ID.String(),
		EventType: event.EventType,
		Game:      event.Game,
		Timestamp: event.CreatedAt.UTC(),
		Payload:   event.Payload,
	}
}
