package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "probe", r.Header.Get("X-Client"))
		var in map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"echo": in["name"]})
	}))
	t.Cleanup(srv.Close)

	c := NewBaseClient(srv.URL)
	c.SetHeader("X-Client", "probe")

	var out map[string]string
	require.NoError(t, c.PostJSON(context.Background(), "/echo", map[string]string{"name": "ada"}, &out))
	assert.Equal(t, "ada", out["echo"])
}

func TestStatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Session not found: 4"}`, http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	var out map[string]any
	err := NewBaseClient(srv.URL).GetJSON(context.Background(), "/x", &out)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "Session not found")
}

func TestGameClientHealth(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tower/health", r.URL.Path)
		w.Write([]byte("Tower of Hanoi service is running!"))
	}))
	t.Cleanup(srv.Close)

	text, err := NewGameClient(srv.URL+"/", "/api/tower").Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Tower of Hanoi service is running!", text)
}
