package db

import (
	"encoding/json"
	"time"
)

type SnakeGameResult struct {
	ID             int64
	PlayerName     string
	BoardSize      int32
	CorrectAnswer  int32
	PlayerAnswer   int32
	IsCorrect      bool
	BfsTimeNs      int64
	DijkstraTimeNs int64
	Board          json.RawMessage
	CreatedAt      time.Time
}
