package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mcdev12/minigames/go/internal/events"
	"github.com/mcdev12/minigames/go/internal/outbox"
)

// GameEvent is the message pushed to websocket clients
type GameEvent struct {
	ID        string          `json:"id"`
	Game      string          `json:"game"`
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// NewGameEvent converts a published envelope into a GameEvent.
func NewGameEvent(env outbox.Envelope) (*GameEvent, error) {
	if !events.IsKnownGame(env.Game) {
		return nil, fmt.Errorf("unknown game: %s", env.Game)
	}
	event := &GameEvent{
		ID:        env.EventID,
		Game:      env.Game,
		Type:      env.EventType,
		Timestamp: env.Timestamp,
		Data:      env.Payload,
	}
	// Clients get only payloads that decode into the type's struct.
	if _, err := ParseEventPayload(event); err != nil {
		return nil, err
	}
	return event, nil
}

// ParseEventPayload decodes the event data into its payload struct.
func ParseEventPayload(event *GameEvent) (any, error) {
	payload, err := payloadFor(event.Type)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(event.Data, payload); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", event.Type, err)
	}
	return payload, nil
}

func payloadFor(eventType string) (any, error) {
	switch eventType {
	case events.TypeSolutionFound:
		return &events.SolutionFoundPayload{}, nil
	case events.TypeGameReset:
		return &events.GameResetPayload{}, nil
	case events.TypeGamePlayed:
		return &events.GamePlayedPayload{}, nil
	case events.TypeAnswerSubmitted:
		return &events.AnswerSubmittedPayload{}, nil
	case events.TypeRouteSolved:
		return &events.RouteSolvedPayload{}, nil
	case events.TypeFlowSolved:
		return &events.FlowSolvedPayload{}, nil
	default:
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}
}
