package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/minigames/go/internal/events"
)

type fakePublisher struct {
	mu        sync.Mutex
	failFirst int
	calls     int
	published []OutboxEvent
}

func (p *fakePublisher) Publish(_ context.Context, event OutboxEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.calls <= p.failFirst {
		return errors.New("nats unavailable")
	}
	p.published = append(p.published, event)
	return nil
}

func (p *fakePublisher) Published() []OutboxEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]OutboxEvent(nil), p.published...)
}

func recordN(t *testing.T, env *testEnv, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, env.app.Record(context.Background(), events.GameSnakeLadder, events.TypeGamePlayed,
			events.GamePlayedPayload{ResultID: int64(i + 1), PlayerName: "ada"}))
		env.clock.Advance(time.Millisecond)
	}
}

func TestRelayUnsentPublishesInOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	recordN(t, env, 3)

	pub := &fakePublisher{}
	metrics := NewMetrics(env.clock)
	r := newRelay(env.app, pub, metrics, RetryConfig{}, env.clock)

	sent, err := r.relayUnsent(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, sent)
	require.Len(t, pub.Published(), 3)
	assert.Equal(t, events.GameSnakeLadder, pub.Published()[0].Game)

	pending, err := env.app.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)

	snap := metrics.Snapshot()
	assert.EqualValues(t, 3, snap.EventsProcessed)
	assert.EqualValues(t, 1, snap.BatchesProcessed)
	assert.Equal(t, env.clock.Now(), snap.LastEventTime)

	// nothing left
	sent, err = r.relayUnsent(ctx, 10)
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestRelayRetriesThenSucceeds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	recordN(t, env, 1)

	pub := &fakePublisher{failFirst: 2}
	metrics := NewMetrics(env.clock)
	r := newRelay(env.app, pub, metrics, RetryConfig{MaxRetries: 3}, env.clock)

	sent, err := r.relayUnsent(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	snap := metrics.Snapshot()
	assert.EqualValues(t, 2, snap.PublishFailed)
	assert.EqualValues(t, 1, snap.PublishSucceeded)
}

func TestRelayLeavesEventUnsentAfterExhaustingRetries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	recordN(t, env, 1)

	pub := &fakePublisher{failFirst: 10}
	r := newRelay(env.app, pub, nil, RetryConfig{MaxRetries: 2}, env.clock)

	sent, err := r.relayUnsent(ctx, 10)
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Equal(t, 3, pub.calls)

	pending, err := env.app.PendingCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending)
}

func TestRelayByIDSkipsSentEvents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	recordN(t, env, 1)

	unsent, err := env.app.FetchUnsentEvents(ctx, 1)
	require.NoError(t, err)
	id := unsent[0].ID

	pub := &fakePublisher{}
	r := newRelay(env.app, pub, nil, RetryConfig{}, env.clock)

	require.NoError(t, r.relayByID(ctx, id))
	require.NoError(t, r.relayByID(ctx, id))
	assert.Len(t, pub.Published(), 1)
}

func TestWorkerProcessesOnStart(t *testing.T) {
	env := newTestEnv(t)
	recordN(t, env, 2)

	pub := &fakePublisher{}
	w := NewWorker(env.app, pub, nil, WorkerConfig{PollInterval: time.Minute, BatchSize: 10}, env.clock)

	require.NoError(t, w.Start(context.Background()))
	assert.Error(t, w.Start(context.Background()))
	assert.True(t, w.Running())

	require.Eventually(t, func() bool { return len(pub.Published()) == 2 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, w.Stop())
	assert.False(t, w.Running())
	assert.Error(t, w.Stop())
}
