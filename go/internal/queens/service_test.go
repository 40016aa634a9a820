package queens

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
	env := newTestEnv(t)
	mux := http.NewServeMux()
	NewService(env.app).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestServiceSubmitAndStats(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/queens/submit", map[string]any{
		"playerName":     "ada",
		"queenPositions": []int{0, 4, 7, 5, 2, 6, 1, 3},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var submit SubmitResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&submit))
	assert.True(t, submit.Accepted)

	statsResp, err := http.Get(srv.URL + "/api/queens/stats")
	require.NoError(t, err)
	defer statsResp.Body.Close()
	require.Equal(t, http.StatusOK, statsResp.StatusCode)

	var stats map[string]any
	require.NoError(t, json.NewDecoder(statsResp.Body).Decode(&stats))
	assert.EqualValues(t, 92, stats["totalSolutions"])
	assert.EqualValues(t, 1, stats["foundSolutions"])
	assert.EqualValues(t, 91, stats["remainingSolutions"])
	assert.Contains(t, stats, "lastSequentialTime")
	assert.Nil(t, stats["lastThreadedTime"])
}

func TestServiceSubmitValidationIs400(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/queens/submit", map[string]any{
		"playerName":     "ada",
		"queenPositions": []int{0, 4, 7, 5, 2, 6, 1, -1},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Invalid solution - queens attack each other", body["message"])
}

func TestServiceSolveAndReset(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/queens/solve/threaded", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var solve SolveResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&solve))
	assert.Equal(t, AlgorithmThreaded, solve.AlgorithmType)
	assert.Equal(t, 92, solve.TotalSolutions)

	resp = postJSON(t, srv.URL+"/api/queens/solve/bogus", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/queens/reset", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var msg MessageResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&msg))
	assert.Equal(t, "Game reset successfully", msg.Message)
}

func TestServiceSolutionsShowDiscoveries(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/queens/submit", map[string]any{
		"playerName":     "ada",
		"queenPositions": []int{0, 4, 7, 5, 2, 6, 1, 3},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	listResp, err := http.Get(srv.URL + "/api/queens/solutions")
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var solutions []Solution
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&solutions))
	require.Len(t, solutions, TotalSolutions)

	found := 0
	for _, s := range solutions {
		assert.Equal(t, s.Board.Key(), s.Key)
		if s.Found {
			found++
			assert.Equal(t, "0,4,7,5,2,6,1,3", s.Key)
			assert.NotNil(t, s.FoundBy)
			assert.NotNil(t, s.FoundAt)
		}
	}
	assert.Equal(t, 1, found)
}
