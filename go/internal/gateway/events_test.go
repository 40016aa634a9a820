package gateway

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/minigames/go/internal/events"
	"github.com/mcdev12/minigames/go/internal/outbox"
)

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []*GameEvent
}

func (r *recordingBroadcaster) Broadcast(event *GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func envelopeBytes(t *testing.T, game, eventType string, payload any) []byte {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	env, err := json.Marshal(outbox.Envelope{
		EventID:   "3b241101-e2bb-4255-8caf-4136c566a962",
		EventType: eventType,
		Game:      game,
		Timestamp: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Payload:   data,
	})
	require.NoError(t, err)
	return env
}

func TestDispatchBroadcastsKnownEvents(t *testing.T) {
	t.Parallel()

	b := &recordingBroadcaster{}
	data := envelopeBytes(t, events.GameTraffic, events.TypeFlowSolved, events.FlowSolvedPayload{ResultID: 9, MaxFlow: 21})

	require.NoError(t, dispatch(b, data))
	require.Len(t, b.events, 1)
	got := b.events[0]
	assert.Equal(t, events.GameTraffic, got.Game)
	assert.Equal(t, events.TypeFlowSolved, got.Type)

	payload, err := ParseEventPayload(got)
	require.NoError(t, err)
	flow, ok := payload.(*events.FlowSolvedPayload)
	require.True(t, ok)
	assert.Equal(t, 21, flow.MaxFlow)
}

func TestDispatchRejectsBadEnvelopes(t *testing.T) {
	t.Parallel()

	b := &recordingBroadcaster{}
	assert.Error(t, dispatch(b, []byte("not json")))
	assert.Error(t, dispatch(b, envelopeBytes(t, "chess", events.TypeGamePlayed, map[string]int{})))
	assert.Error(t, dispatch(b, envelopeBytes(t, events.GameQueens, "PickMade", map[string]int{})))
	assert.Error(t, dispatch(b, envelopeBytes(t, events.GameTraffic, events.TypeFlowSolved, "not an object")))
	assert.Empty(t, b.events)
}
