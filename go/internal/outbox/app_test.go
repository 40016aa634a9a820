package outbox

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/minigames/go/internal/events"
	"github.com/mcdev12/minigames/go/internal/outbox/db"
	"github.com/mcdev12/minigames/go/internal/storage"
)

type testEnv struct {
	app   *App
	repo  *Repository
	clock *clockwork.FakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database := storage.OpenTemp(t)
	repo := NewRepository(db.New(database))
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	return &testEnv{app: NewApp(repo, clock), repo: repo, clock: clock}
}

func TestRecordValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assert.Error(t, env.app.Record(ctx, "chess", events.TypeGamePlayed, map[string]int{"a": 1}))
	assert.Error(t, env.app.Record(ctx, events.GameQueens, " ", map[string]int{"a": 1}))
	assert.Error(t, env.app.Record(ctx, events.GameQueens, events.TypeSolutionFound, nil))
	assert.Error(t, env.app.Record(ctx, events.GameQueens, events.TypeSolutionFound, make(chan int)))

	pending, err := env.app.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestRecordAndFetchUnsent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	payload := events.FlowSolvedPayload{ResultID: 4, PlayerName: "ada", MaxFlow: 23, SolvedAt: env.clock.Now()}
	require.NoError(t, env.app.Record(ctx, events.GameTraffic, events.TypeFlowSolved, payload))
	env.clock.Advance(time.Second)
	require.NoError(t, env.app.Record(ctx, events.GameQueens, events.TypeGameReset, events.GameResetPayload{Reason: "all found"}))

	unsent, err := env.app.FetchUnsentEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, unsent, 2)

	first := unsent[0]
	assert.Equal(t, events.GameTraffic, first.Game)
	assert.Equal(t, events.TypeFlowSolved, first.EventType)
	assert.Nil(t, first.SentAt)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), first.CreatedAt)

	var decoded events.FlowSolvedPayload
	require.NoError(t, json.Unmarshal(first.Payload, &decoded))
	assert.Equal(t, 23, decoded.MaxFlow)

	_, err = env.app.FetchUnsentEvents(ctx, 0)
	assert.Error(t, err)
}

func TestMarkSentAndGetByID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.app.Record(ctx, events.GameHanoi, events.TypeAnswerSubmitted, events.AnswerSubmittedPayload{GameRoundID: 1}))
	unsent, err := env.app.FetchUnsentEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, unsent, 1)
	id := unsent[0].ID

	got, err := env.app.GetEventByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, events.TypeAnswerSubmitted, got.EventType)

	require.NoError(t, env.app.MarkEventSent(ctx, id))

	_, err = env.app.GetEventByID(ctx, id)
	assert.ErrorIs(t, err, ErrEventNotFound)

	pending, err := env.app.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestPurgeBeforeKeepsUnsentAndRecent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, env.app.Record(ctx, events.GameTSP, events.TypeRouteSolved, events.RouteSolvedPayload{SessionID: int64(i)}))
	}
	unsent, err := env.app.FetchUnsentEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, unsent, 3)

	require.NoError(t, env.app.MarkEventSent(ctx, unsent[0].ID))
	env.clock.Advance(48 * time.Hour)
	require.NoError(t, env.app.MarkEventSent(ctx, unsent[1].ID))

	n, err := env.app.PurgeBefore(ctx, env.clock.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	pending, err := env.app.PendingCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending)
}
