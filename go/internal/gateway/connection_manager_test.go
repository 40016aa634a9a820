package gateway

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mcdev12/minigames/go/internal/events"
)

func testConnection(cm *ConnectionManager, game string, buffer int) *Connection {
	return &Connection{
		ID:          game + "-conn",
		Game:        game,
		Send:        make(chan []byte, buffer),
		Manager:     cm,
		ConnectedAt: time.Now(),
	}
}

func TestBroadcastRacingUnregister(t *testing.T) {
	cm := NewConnectionManager(DefaultConnectionConfig())
	event := &GameEvent{ID: "e1", Game: events.GameHanoi, Type: events.TypeAnswerSubmitted, Data: []byte(`{}`)}

	for i := 0; i < 2000; i++ {
		game := events.GameHanoi
		if i%2 == 0 {
			game = allGames
		}
		conn := testConnection(cm, game, 1)
		cm.registerConnection(conn)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			cm.handleBroadcast(event)
		}()
		go func() {
			defer wg.Done()
			cm.unregisterConnection(conn)
		}()
		wg.Wait()
	}

	assert.Equal(t, 0, cm.Stats().TotalConnections)
}

func TestBroadcastReachesGameAndAllSubscribers(t *testing.T) {
	cm := NewConnectionManager(DefaultConnectionConfig())
	hanoi := testConnection(cm, events.GameHanoi, 1)
	all := testConnection(cm, allGames, 1)
	tsp := testConnection(cm, events.GameTSP, 1)
	for _, c := range []*Connection{hanoi, all, tsp} {
		cm.registerConnection(c)
	}

	cm.handleBroadcast(&GameEvent{ID: "e1", Game: events.GameHanoi, Type: events.TypeAnswerSubmitted, Data: []byte(`{}`)})

	assert.Len(t, hanoi.Send, 1)
	assert.Len(t, all.Send, 1)
	assert.Empty(t, tsp.Send)
}
