package snakeladder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mcdev12/minigames/go/internal/snakeladder/db"
)

// Repository implements snake and ladder data access
type Repository struct {
	queries *db.Queries
}

// NewRepository creates a new snake and ladder repository
func NewRepository(queries *db.Queries) *Repository {
	return &Repository{
		queries: queries,
	}
}

type storedBoard struct {
	Snakes  map[int]int `json:"snakes"`
	Ladders map[int]int `json:"ladders"`
}

// CreateGameResult persists a judged round together with its board
func (r *Repository) CreateGameResult(ctx context.Context, result GameResult) (*GameResult, error) {
	board, err := json.Marshal(storedBoard{Snakes: result.Snakes, Ladders: result.Ladders})
	if err != nil {
		return nil, fmt.Errorf("failed to encode board: %w", err)
	}

	id, err := r.queries.CreateGameResult(ctx, db.CreateGameResultParams{
		PlayerName:     result.PlayerName,
		BoardSize:      int32(result.BoardSize),
		CorrectAnswer:  int32(result.CorrectAnswer),
		PlayerAnswer:   int32(result.PlayerAnswer),
		IsCorrect:      result.Correct,
		BfsTimeNs:      result.BFSTime,
		DijkstraTimeNs: result.DijkstraTime,
		Board:          board,
		CreatedAt:      result.CreatedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game result: %w", err)
	}

	result.ID = id
	return &result, nil
}

// ListGameResults returns every result, newest first
func (r *Repository) ListGameResults(ctx context.Context) ([]GameResult, error) {
	rows, err := r.queries.ListGameResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list game results: %w", err)
	}

	results := make([]GameResult, 0, len(rows))
	for _, row := range rows {
		result, err := r.dbGameResultToModel(row)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (r *Repository) dbGameResultToModel(row db.SnakeGameResult) (GameResult, error) {
	var board storedBoard
	if err := json.Unmarshal(row.Board, &board); err != nil {
		return GameResult{}, fmt.Errorf("failed to decode board for result %d: %w", row.ID, err)
	}
	return GameResult{
		ID:            row.ID,
		PlayerName:    row.PlayerName,
		BoardSize:     int(row.BoardSize),
		CorrectAnswer: int(row.CorrectAnswer),
		PlayerAnswer:  int(row.PlayerAnswer),
		Correct:       row.IsCorrect,
		BFSTime:       row.BfsTimeNs,
		DijkstraTime:  row.DijkstraTimeNs,
		CreatedAt:     row.CreatedAt.UTC(),
		Snakes:        board.Snakes,
		Ladders:       board.Ladders,
	}, nil
}
