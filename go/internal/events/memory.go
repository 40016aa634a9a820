package events

import (
	"context"
	"sync"
)

// Recorded is one event captured by MemoryRecorder
type Recorded struct {
	Game    string
	Type    string
	Payload any
}

// MemoryRecorder keeps events in memory. Tests use it in place of the outbox.
type MemoryRecorder struct {
	mu     sync.Mutex
	events []Recorded
}

// Record appends the event.
func (m *MemoryRecorder) Record(_ context.Context, game, eventType string, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, Recorded{Game: game, Type: eventType, Payload: payload})
	return nil
}

// Events returns a copy of everything recorded so far.
func (m *MemoryRecorder) Events() []Recorded {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Recorded, len(m.events))
	copy(out, m.events)
	return out
}

// Types returns the recorded event types in order.
func (m *MemoryRecorder) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.events))
	for i, e := range m.events {
		out[i] = e.Type
	}
	return out
}
