package db

import (
	"context"
	"encoding/json"
	"time"
)

const createGameResult = `-- name: CreateGameResult :one
INSERT INTO snake_game_results (
    player_name, board_size, correct_answer, player_answer, is_correct,
    bfs_time_ns, dijkstra_time_ns, board, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id
`

type CreateGameResultParams struct {
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

func (q *Queries) CreateGameResult(ctx context.Context, arg CreateGameResultParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createGameResult,
		arg.PlayerName,
		arg.BoardSize,
		arg.CorrectAnswer,
		arg.PlayerAnswer,
		arg.IsCorrect,
		arg.BfsTimeNs,
		arg.DijkstraTimeNs,
		[]byte(arg.Board),
		arg.CreatedAt,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const listGameResults = `-- name: ListGameResults :many
SELECT id, player_name, board_size, correct_answer, player_answer, is_correct,
       bfs_time_ns, dijkstra_time_ns, board, created_at
FROM snake_game_results
ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListGameResults(ctx context.Context) ([]SnakeGameResult, error) {
	rows, err := q.db.QueryContext(ctx, listGameResults)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SnakeGameResult
	for rows.Next() {
		var i SnakeGameResult
		if err := rows.Scan(
			&i.ID,
			&i.PlayerName,
			&i.BoardSize,
			&i.CorrectAnswer,
			&i.PlayerAnswer,
			&i.IsCorrect,
			&i.BfsTimeNs,
			&i.DijkstraTimeNs,
			&i.Board,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
