package tsp

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
	"github.com/mcdev12/minigames/go/internal/storage"
	"github.com/mcdev12/minigames/go/internal/tsp/db"
)

type testEnv struct {
	app    *App
	repo   *Repository
	events *events.MemoryRecorder
	clock  *clockwork.FakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database := storage.OpenTemp(t)
	repo := NewRepository(db.New(database), database)
	recorder := &events.MemoryRecorder{}
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	app := NewApp(repo, recorder, clock, rand.New(rand.NewPCG(8, 13)))
	return &testEnv{app: app, repo: repo, events: recorder, clock: clock}
}

func otherCities(home string, n int) []string {
	var out []string
	for _, l := range CityLabels {
		if l != home && len(out) < n {
			out = append(out, l)
		}
	}
	return out
}

func TestStartCreatesSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.app.Start(ctx, StartRequest{PlayerName: "ada"})
	require.NoError(t, err)
	assert.NotZero(t, resp.SessionID)
	assert.Contains(t, CityLabels, resp.HomeCity)
	assert.Equal(t, CityLabels, resp.CityLabels)
	require.NoError(t, ValidateMatrix(resp.DistanceMatrix))

	session, err := env.repo.GetSession(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, resp.DistanceMatrix, session.DistanceMatrix)
	assert.Nil(t, session.SelectedCities)

	_, err = env.app.Start(ctx, StartRequest{PlayerName: " "})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestSelectCitiesStoresSelection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	start, err := env.app.Start(ctx, StartRequest{PlayerName: "ada"})
	require.NoError(t, err)

	picked := otherCities(start.HomeCity, 4)
	req := append([]string{start.HomeCity, picked[2]}, picked...)
	resp, err := env.app.SelectCities(ctx, SelectCitiesRequest{SessionID: start.SessionID, Cities: req})
	require.NoError(t, err)
	assert.Equal(t, picked, resp.SelectedCities)
	require.Len(t, resp.AlgorithmResults, 3)
	assert.Equal(t, AlgorithmBruteForce, resp.AlgorithmResults[0].AlgorithmName)
	assert.Equal(t, AlgorithmHeldKarp, resp.AlgorithmResults[1].AlgorithmName)
	assert.Equal(t, AlgorithmNearestNeighbor, resp.AlgorithmResults[2].AlgorithmName)
	assert.Equal(t, resp.AlgorithmResults[0].TotalDistance, resp.AlgorithmResults[1].TotalDistance)
	for _, r := range resp.AlgorithmResults {
		assert.Equal(t, start.HomeCity, r.Path[0])
		assert.Equal(t, start.HomeCity, r.Path[len(r.Path)-1])
	}

	session, err := env.repo.GetSession(ctx, start.SessionID)
	require.NoError(t, err)
	assert.Equal(t, picked, session.SelectedCities)
}

func TestSelectCitiesValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	start, err := env.app.Start(ctx, StartRequest{PlayerName: "ada"})
	require.NoError(t, err)

	_, err = env.app.SelectCities(ctx, SelectCitiesRequest{SessionID: start.SessionID, Cities: []string{"Z"}})
	require.ErrorIs(t, err, apperr.ErrInvalidArgument)
	assert.Equal(t, "Unknown city: Z", apperr.Message(err))

	_, err = env.app.SelectCities(ctx, SelectCitiesRequest{SessionID: start.SessionID, Cities: []string{start.HomeCity}})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = env.app.SelectCities(ctx, SelectCitiesRequest{SessionID: 404, Cities: []string{"A"}})
	require.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "Session not found: 404", apperr.Message(err))
}

func TestSolveAcceptsAnyOptimalTour(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	start, err := env.app.Start(ctx, StartRequest{PlayerName: "ada"})
	require.NoError(t, err)
	sel, err := env.app.SelectCities(ctx, SelectCitiesRequest{
		SessionID: start.SessionID,
		Cities:    otherCities(start.HomeCity, 5),
	})
	require.NoError(t, err)
	best := sel.AlgorithmResults[1]

	resp, err := env.app.Solve(ctx, SolveRequest{SessionID: start.SessionID, ProposedPath: best.Path, TimeTakenByUserMs: 1200})
	require.NoError(t, err)
	assert.True(t, resp.Correct)
	assert.Equal(t, "Correct route identified.", resp.Message)
	assert.Equal(t, best.TotalDistance, resp.SubmittedDistance)
	assert.Equal(t, best.TotalDistance, resp.OptimalDistance)

	reversed := make([]string, len(best.Path))
	for i, c := range best.Path {
		reversed[len(best.Path)-1-i] = c
	}
	resp, err = env.app.Solve(ctx, SolveRequest{SessionID: start.SessionID, ProposedPath: reversed})
	require.NoError(t, err)
	assert.True(t, resp.Correct, "the reverse of an optimal tour is optimal on a symmetric matrix")

	assert.Equal(t, []string{events.TypeRouteSolved, events.TypeRouteSolved}, env.events.Types())
}

func TestSolveRejectsSuboptimalAndOpenRoutes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	start, err := env.app.Start(ctx, StartRequest{PlayerName: "ada"})
	require.NoError(t, err)
	cities := otherCities(start.HomeCity, 3)

	open := append([]string{start.HomeCity}, cities...)
	resp, err := env.app.Solve(ctx, SolveRequest{SessionID: start.SessionID, ProposedPath: open})
	require.NoError(t, err)
	assert.False(t, resp.Correct)
	assert.Equal(t, "Submitted route is not optimal.", resp.Message)
	assert.Equal(t, start.HomeCity, resp.OptimalPath[0])
}

func TestSolveValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	start, err := env.app.Start(ctx, StartRequest{PlayerName: "ada"})
	require.NoError(t, err)
	cities := otherCities(start.HomeCity, 3)
	_, err = env.app.SelectCities(ctx, SelectCitiesRequest{SessionID: start.SessionID, Cities: cities})
	require.NoError(t, err)

	_, err = env.app.Solve(ctx, SolveRequest{SessionID: start.SessionID})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = env.app.Solve(ctx, SolveRequest{SessionID: start.SessionID, ProposedPath: []string{start.HomeCity, "Q", start.HomeCity}})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	wrongSet := []string{start.HomeCity, cities[0], start.HomeCity}
	_, err = env.app.Solve(ctx, SolveRequest{SessionID: start.SessionID, ProposedPath: wrongSet})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = env.app.Solve(ctx, SolveRequest{SessionID: 9999, ProposedPath: []string{"A"}})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPurgeBeforeDropsAbandonedSessions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	abandoned, err := env.app.Start(ctx, StartRequest{PlayerName: "ada"})
	require.NoError(t, err)

	played, err := env.app.Start(ctx, StartRequest{PlayerName: "grace"})
	require.NoError(t, err)
	sel, err := env.app.SelectCities(ctx, SelectCitiesRequest{SessionID: played.SessionID, Cities: otherCities(played.HomeCity, 2)})
	require.NoError(t, err)
	_, err = env.app.Solve(ctx, SolveRequest{SessionID: played.SessionID, ProposedPath: sel.AlgorithmResults[0].Path})
	require.NoError(t, err)

	env.clock.Advance(72 * time.Hour)
	n, err := env.repo.PurgeBefore(ctx, env.clock.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = env.repo.GetSession(ctx, abandoned.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = env.repo.GetSession(ctx, played.SessionID)
	assert.NoError(t, err)
}
