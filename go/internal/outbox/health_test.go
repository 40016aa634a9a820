package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRunner bool

func (s staticRunner) Running() bool { return bool(s) }

type failingPinger struct{}

func (failingPinger) PingContext(context.Context) error { return errors.New("connection refused") }

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)
	recordN(t, env, 2)

	metrics := NewMetrics(env.clock)
	checker := NewHealthChecker(env.app, pingerFunc(func(context.Context) error { return nil }), nil, staticRunner(true), metrics, env.clock, 0)
	mux := http.NewServeMux()
	checker.RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var status HealthStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.True(t, status.Healthy)
	assert.EqualValues(t, 2, status.PendingEvents)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "outbox_pending_events 2")
	assert.Contains(t, string(body), "outbox_healthy 1")
}

type pingerFunc func(context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthUnhealthy(t *testing.T) {
	env := newTestEnv(t)

	checker := NewHealthChecker(env.app, failingPinger{}, nil, staticRunner(false), NewMetrics(env.clock), env.clock, 0)
	status := checker.Check(context.Background())

	assert.False(t, status.Healthy)
	assert.False(t, status.DatabaseConnected)
	assert.False(t, status.RelayActive)
	assert.Len(t, status.Errors, 2)
}
