package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mcdev12/minigames/go/internal/events"
)

type fakeScoreboard struct {
	board *Scoreboard
	err   error
}

func (f fakeScoreboard) Scoreboard(context.Context) (*Scoreboard, error) {
	return f.board, f.err
}

var testBoard = &Scoreboard{
	Games: []GameTotals{
		{Game: events.GameQueens, Plays: 12, Solved: 7},
		{Game: events.GameTraffic, Plays: 3, Solved: 3},
	},
	GeneratedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
}

func newTestGateway(t *testing.T, reader ScoreboardReader) (*httptest.Server, *ConnectionManager) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cm := NewConnectionManager(DefaultConnectionConfig())
	go cm.Start(ctx)

	mux := http.NewServeMux()
	NewService(cm, nil, reader).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, cm
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/games" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebSocketFanOutByGame(t *testing.T) {
	srv, cm := newTestGateway(t, fakeScoreboard{board: testBoard})

	queensConn := dial(t, srv, "?game=queens")
	allConn := dial(t, srv, "")

	require.Eventually(t, func() bool { return cm.Stats().TotalConnections == 2 }, 2*time.Second, 10*time.Millisecond)

	cm.Broadcast(&GameEvent{ID: "1", Game: events.GameTraffic, Type: events.TypeFlowSolved, Data: json.RawMessage(`{}`)})
	cm.Broadcast(&GameEvent{ID: "2", Game: events.GameQueens, Type: events.TypeSolutionFound, Data: json.RawMessage(`{}`)})

	var got GameEvent
	require.NoError(t, queensConn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, queensConn.ReadJSON(&got))
	assert.Equal(t, "2", got.ID)

	require.NoError(t, allConn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, allConn.ReadJSON(&got))
	assert.Equal(t, "1", got.ID)
	require.NoError(t, allConn.ReadJSON(&got))
	assert.Equal(t, "2", got.ID)

	stats := cm.Stats()
	assert.Equal(t, 1, stats.ByGame["queens"])
	assert.Equal(t, 1, stats.ByGame["all"])
}

func TestWebSocketRejectsUnknownGame(t *testing.T) {
	srv, _ := newTestGateway(t, fakeScoreboard{board: testBoard})

	resp, err := http.Get(srv.URL + "/ws/games?game=chess")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestScoreboardJSON(t *testing.T) {
	srv, _ := newTestGateway(t, fakeScoreboard{board: testBoard})

	resp, err := http.Get(srv.URL + "/api/scoreboard")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var board Scoreboard
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&board))
	assert.Equal(t, testBoard.Games, board.Games)
}

func TestScoreboardRPC(t *testing.T) {
	srv, _ := newTestGateway(t, fakeScoreboard{board: testBoard})

	client := connect.NewClient[emptypb.Empty, structpb.Struct](http.DefaultClient, srv.URL+GetScoreboardProcedure)
	resp, err := client.CallUnary(context.Background(), connect.NewRequest(&emptypb.Empty{}))
	require.NoError(t, err)

	fields := resp.Msg.AsMap()
	assert.Equal(t, "2024-03-01T09:00:00Z", fields["generatedAt"])
	games, ok := fields["games"].([]any)
	require.True(t, ok)
	require.Len(t, games, 2)
	first := games[0].(map[string]any)
	assert.Equal(t, "queens", first["game"])
	assert.EqualValues(t, 7, first["solved"])
}

func TestScoreboardRPCError(t *testing.T) {
	srv, _ := newTestGateway(t, fakeScoreboard{err: errors.New("db down")})

	client := connect.NewClient[emptypb.Empty, structpb.Struct](http.DefaultClient, srv.URL+GetScoreboardProcedure)
	_, err := client.CallUnary(context.Background(), connect.NewRequest(&emptypb.Empty{}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInternal, connect.CodeOf(err))
}

func TestHealthWithoutConsumer(t *testing.T) {
	srv, _ := newTestGateway(t, fakeScoreboard{board: testBoard})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
