package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/minigames/go/internal/events"
	"github.com/mcdev12/minigames/go/internal/storage"
)

func TestSetupServicesWiresEnabledGames(t *testing.T) {
	database := storage.OpenTemp(t)
	cfg := defaultConfig()
	cfg.Games[events.GameTraffic] = GameConfig{Enabled: false, Port: 9090}

	services, err := setupServices(context.Background(), database, cfg, EnvConfig{EventsEnabled: true}, clockwork.NewFakeClock())
	require.NoError(t, err)
	assert.Len(t, services.Games, 4)
	assert.NotContains(t, services.Games, events.GameTraffic)

	// queens is seeded and served
	mux := http.NewServeMux()
	services.Games[events.GameQueens].RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/api/queens/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	removed := services.Janitor.Sweep(context.Background())
	assert.Contains(t, removed, "outbox")
	assert.Contains(t, removed, "tsp")
	assert.Contains(t, removed, "hanoi")
}

func TestProbe(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tower/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Tower of Hanoi service is running!"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	cfg := defaultConfig()
	for game := range cfg.Games {
		cfg.Games[game] = GameConfig{Enabled: false}
	}
	cfg.Games[events.GameHanoi] = GameConfig{Enabled: true, Port: port}
	require.NoError(t, probe(context.Background(), cfg, u.Hostname(), time.Second))

	cfg.Games[events.GameQueens] = GameConfig{Enabled: true, Port: port}
	assert.Error(t, probe(context.Background(), cfg, u.Hostname(), time.Second))
}
