package tsp

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	NewService(newTestEnv(t).app).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any, out any) int {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestServiceFullRound(t *testing.T) {
	srv := newTestServer(t)

	var start StartResponse
	require.Equal(t, http.StatusOK, postJSON(t, srv.URL+"/api/game/start", StartRequest{PlayerName: "ada"}, &start))
	require.Len(t, start.DistanceMatrix, 10)

	var sel SelectCitiesResponse
	require.Equal(t, http.StatusOK, postJSON(t, srv.URL+"/api/game/select-cities",
		SelectCitiesRequest{SessionID: start.SessionID, Cities: otherCities(start.HomeCity, 4)}, &sel))
	require.Len(t, sel.AlgorithmResults, 3)

	var solved map[string]any
	require.Equal(t, http.StatusOK, postJSON(t, srv.URL+"/api/game/solve",
		SolveRequest{SessionID: start.SessionID, ProposedPath: sel.AlgorithmResults[0].Path, TimeTakenByUserMs: 5000}, &solved))
	assert.Equal(t, true, solved["correct"])
	assert.Equal(t, "Correct route identified.", solved["message"])
	assert.Equal(t, "ada", solved["playerName"])
}

func TestServiceUnknownSessionIs404(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]string
	status := postJSON(t, srv.URL+"/api/game/solve", SolveRequest{SessionID: 77, ProposedPath: []string{"A"}}, &body)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Session not found: 77", body["message"])
}
