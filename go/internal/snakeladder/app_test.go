package snakeladder

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/minigames/go/internal/apperr"
	"github.com/mcdev12/minigames/go/internal/events"
	"github.com/mcdev12/minigames/go/internal/snakeladder/db"
	"github.com/mcdev12/minigames/go/internal/storage"
)

type testEnv struct {
	app    *App
	events *events.MemoryRecorder
	clock  *clockwork.FakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database := storage.OpenTemp(t)
	recorder := &events.MemoryRecorder{}
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	app := NewApp(NewRepository(db.New(database)), recorder, clock, rand.New(rand.NewPCG(1, 2)))
	return &testEnv{app: app, events: recorder, clock: clock}
}

func TestPlayWithClientBoard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.app.Play(ctx, PlayRequest{
		PlayerName:   " ada ",
		BoardSize:    6,
		PlayerAnswer: 2,
		Ladders:      map[int]int{2: 35},
		Snakes:       map[int]int{20: 5},
	})
	require.NoError(t, err)
	assert.NotZero(t, result.ID)
	assert.Equal(t, "ada", result.PlayerName)
	assert.Equal(t, 2, result.CorrectAnswer)
	assert.True(t, result.Correct)
	assert.Equal(t, map[int]int{2: 35}, result.Ladders)
	assert.Equal(t, map[int]int{20: 5}, result.Snakes)

	require.Len(t, env.events.Events(), 1)
	payload := env.events.Events()[0].Payload.(events.GamePlayedPayload)
	assert.Equal(t, result.ID, payload.ResultID)
	assert.True(t, payload.Correct)
}

func TestPlayWithGeneratedBoard(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.app.Play(context.Background(), PlayRequest{PlayerName: "grace", BoardSize: 8, PlayerAnswer: 1})
	require.NoError(t, err)
	assert.Len(t, result.Ladders, 6)
	assert.Len(t, result.Snakes, 6)
	assert.Positive(t, result.CorrectAnswer)
	assert.Equal(t, result.CorrectAnswer == 1, result.Correct)
}

func TestPlayValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  PlayRequest
		want string
	}{
		{"blank name", PlayRequest{BoardSize: 6, PlayerAnswer: 3}, "Player name is required"},
		{"board too small", PlayRequest{PlayerName: "ada", BoardSize: 5, PlayerAnswer: 3}, "Board size must be between 6 and 12"},
		{"board too large", PlayRequest{PlayerName: "ada", BoardSize: 13, PlayerAnswer: 3}, "Board size must be between 6 and 12"},
		{"zero answer", PlayRequest{PlayerName: "ada", BoardSize: 6}, "Answer must be at least 1"},
		{"bad ladder", PlayRequest{PlayerName: "ada", BoardSize: 6, PlayerAnswer: 3, Ladders: map[int]int{20: 4}}, "Invalid ladder from 20 to 4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.app.Play(ctx, tt.req)
			require.ErrorIs(t, err, apperr.ErrInvalidArgument)
			assert.Equal(t, tt.want, apperr.Message(err))
		})
	}
	assert.Empty(t, env.events.Events())
}

func TestHistoryNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.app.Play(ctx, PlayRequest{PlayerName: "ada", BoardSize: 6, PlayerAnswer: 4, Ladders: map[int]int{}})
	require.NoError(t, err)
	env.clock.Advance(time.Minute)
	second, err := env.app.Play(ctx, PlayRequest{PlayerName: "grace", BoardSize: 6, PlayerAnswer: 6, Ladders: map[int]int{}})
	require.NoError(t, err)

	history, err := env.app.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, first.ID, history[1].ID)
	assert.False(t, history[1].Correct)
	assert.True(t, history[0].Correct)
	assert.True(t, history[0].CreatedAt.After(history[1].CreatedAt))
}
