package traffic

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/minigames/go/internal/httputil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	NewService(newTestEnv(t).app).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestServiceNewAndSolve(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/game/new")
	require.NoError(t, err)
	var network Network
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&network))
	resp.Body.Close()
	require.Len(t, network.Edges, len(topology))

	want, _ := EdmondsKarp(network.Matrix, source, sink)
	buf, err := json.Marshal(SolveRequest{Matrix: network.Matrix, Reported: want, Name: "ada"})
	require.NoError(t, err)
	resp, err = http.Post(srv.URL+"/api/game/solve", "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var solved SolveResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&solved))
	assert.True(t, solved.Correct)
	assert.Equal(t, want, solved.Dinic)

	resp, err = http.Get(srv.URL + "/api/game/results")
	require.NoError(t, err)
	defer resp.Body.Close()
	var results []PlayerResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))
	assert.Len(t, results, 1)
}

func TestServiceSolveRejectsBadMatrix(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/game/solve", "application/json", bytes.NewReader([]byte(`{"matrix":[[1]],"reported":1}`)))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Matrix must be 9x9", body.Message)
}

func TestServiceHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/game/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Traffic Simulation service is running!", string(body))
}
