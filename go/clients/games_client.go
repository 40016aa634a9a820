package clients

import (
	"context"
	"fmt"
	"strings"
)

// GameClient talks to one mini-game listener
type GameClient struct {
	*BaseClient
	prefix string
}

// NewGameClient targets baseURL (for example http://localhost:8081) with the game's URL prefix.
func NewGameClient(baseURL, prefix string) *GameClient {
	return &GameClient{
		BaseClient: NewBaseClient(strings.TrimRight(baseURL, "/")),
		prefix:     prefix,
	}
}

// Health returns the health text of the game.
func (c *GameClient) Health(ctx context.Context) (string, error) {
	body, err := c.Get(ctx, c.prefix+"/health")
	if err != nil {
		return "", fmt.Errorf("health check %s: %w", c.prefix, err)
	}
	return strings.TrimSpace(string(body)), nil
}
