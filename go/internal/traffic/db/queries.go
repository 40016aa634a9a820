package db

import (
	"context"
	"time"
)

const createPlayerResult = `-- name: CreatePlayerResult :one
INSERT INTO traffic_player_results (
    player_name, reported_max_flow, correct_max_flow, is_correct, ek_nanos, dinic_nanos, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`

type CreatePlayerResultParams struct {
	PlayerName      string
	ReportedMaxFlow int32
	CorrectMaxFlow  int32
	IsCorrect       bool
	EkNanos         int64
	DinicNanos      int64
	CreatedAt       time.Time
}

func (q *Queries) CreatePlayerResult(ctx context.Context, arg CreatePlayerResultParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createPlayerResult,
		arg.PlayerName,
		arg.ReportedMaxFlow,
		arg.CorrectMaxFlow,
		arg.IsCorrect,
		arg.EkNanos,
		arg.DinicNanos,
		arg.CreatedAt,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const listRecentCorrectResults = `-- name: ListRecentCorrectResults :many
SELECT id, player_name, reported_max_flow, correct_max_flow, is_correct, ek_nanos, dinic_nanos, created_at
FROM traffic_player_results
WHERE is_correct = TRUE
ORDER BY created_at DESC, id DESC
LIMIT $1
`

func (q *Queries) ListRecentCorrectResults(ctx context.Context, limit int32) ([]TrafficPlayerResult, error) {
	rows, err := q.db.QueryContext(ctx, listRecentCorrectResults, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TrafficPlayerResult
	for rows.Next() {
		var i TrafficPlayerResult
		if err := rows.Scan(
			&i.ID,
			&i.PlayerName,
			&i.ReportedMaxFlow,
			&i.CorrectMaxFlow,
			&i.IsCorrect,
			&i.EkNanos,
			&i.DinicNanos,
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
