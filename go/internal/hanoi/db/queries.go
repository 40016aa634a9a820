package db

import (
	"context"
	"time"
)

const createAlgorithmPerformance = `-- name: CreateAlgorithmPerformance :one
INSERT INTO hanoi_algorithm_performance (
    game_round_id, algorithm_name, number_of_disks, number_of_pegs,
    minimum_moves, execution_time_nanos, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`

type CreateAlgorithmPerformanceParams struct {
	GameRoundID        int64
	AlgorithmName      string
	NumberOfDisks      int32
	NumberOfPegs       int32
	MinimumMoves       int32
	ExecutionTimeNanos int64
	CreatedAt          time.Time
}

func (q *Queries) CreateAlgorithmPerformance(ctx context.Context, arg CreateAlgorithmPerformanceParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createAlgorithmPerformance,
		arg.GameRoundID,
		arg.AlgorithmName,
		arg.NumberOfDisks,
		arg.NumberOfPegs,
		arg.MinimumMoves,
		arg.ExecutionTimeNanos,
		arg.CreatedAt,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const createGameRound = `-- name: CreateGameRound :one
INSERT INTO hanoi_game_rounds (
    number_of_disks, number_of_pegs, correct_minimum_moves, correct_move_sequence, created_at
) VALUES ($1, $2, $3, $4, $5)
RETURNING id
`

type CreateGameRoundParams struct {
	NumberOfDisks       int32
	NumberOfPegs        int32
	CorrectMinimumMoves int32
	CorrectMoveSequence string
	CreatedAt           time.Time
}

func (q *Queries) CreateGameRound(ctx context.Context, arg CreateGameRoundParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createGameRound,
		arg.NumberOfDisks,
		arg.NumberOfPegs,
		arg.CorrectMinimumMoves,
		arg.CorrectMoveSequence,
		arg.CreatedAt,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const createPlayerAnswer = `-- name: CreatePlayerAnswer :one
INSERT INTO hanoi_player_answers (
    game_round_id, player_name, player_minimum_moves, player_move_sequence, is_correct, created_at
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`

type CreatePlayerAnswerParams struct {
	GameRoundID        int64
	PlayerName         string
	PlayerMinimumMoves int32
	PlayerMoveSequence string
	IsCorrect          bool
	CreatedAt          time.Time
}

func (q *Queries) CreatePlayerAnswer(ctx context.Context, arg CreatePlayerAnswerParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createPlayerAnswer,
		arg.GameRoundID,
		arg.PlayerName,
		arg.PlayerMinimumMoves,
		arg.PlayerMoveSequence,
		arg.IsCorrect,
		arg.CreatedAt,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const deleteUnansweredRoundsBefore = `-- name: DeleteUnansweredRoundsBefore :execrows
DELETE FROM hanoi_game_rounds
WHERE created_at < $1
  AND NOT EXISTS (
    SELECT 1 FROM hanoi_player_answers a WHERE a.game_round_id = hanoi_game_rounds.id
  )
`

func (q *Queries) DeleteUnansweredRoundsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteUnansweredRoundsBefore, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getGameRound = `-- name: GetGameRound :one
SELECT id, number_of_disks, number_of_pegs, correct_minimum_moves, correct_move_sequence, created_at
FROM hanoi_game_rounds
WHERE id = $1
`

func (q *Queries) GetGameRound(ctx context.Context, id int64) (HanoiGameRound, error) {
	row := q.db.QueryRowContext(ctx, getGameRound, id)
	var i HanoiGameRound
	err := row.Scan(
		&i.ID,
		&i.NumberOfDisks,
		&i.NumberOfPegs,
		&i.CorrectMinimumMoves,
		&i.CorrectMoveSequence,
		&i.CreatedAt,
	)
	return i, err
}

const listAlgorithmPerformance = `-- name: ListAlgorithmPerformance :many
SELECT id, game_round_id, algorithm_name, number_of_disks, number_of_pegs,
       minimum_moves, execution_time_nanos, created_at
FROM hanoi_algorithm_performance
ORDER BY algorithm_name, id
`

func (q *Queries) ListAlgorithmPerformance(ctx context.Context) ([]HanoiAlgorithmPerformance, error) {
	rows, err := q.db.QueryContext(ctx, listAlgorithmPerformance)
	if err != nil {
		return nil, err
	}
	return scanPerformanceRows(rows)
}

const listAlgorithmPerformanceByName = `-- name: ListAlgorithmPerformanceByName :many
SELECT id, game_round_id, algorithm_name, number_of_disks, number_of_pegs,
       minimum_moves, execution_time_nanos, created_at
FROM hanoi_algorithm_performance
WHERE algorithm_name = $1
ORDER BY id
`

func (q *Queries) ListAlgorithmPerformanceByName(ctx context.Context, algorithmName string) ([]HanoiAlgorithmPerformance, error) {
	rows, err := q.db.QueryContext(ctx, listAlgorithmPerformanceByName, algorithmName)
	if err != nil {
		return nil, err
	}
	return scanPerformanceRows(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Close() error
	Err() error
}

func scanPerformanceRows(rows rowScanner) ([]HanoiAlgorithmPerformance, error) {
	defer rows.Close()
	var items []HanoiAlgorithmPerformance
	for rows.Next() {
		var i HanoiAlgorithmPerformance
		if err := rows.Scan(
			&i.ID,
			&i.GameRoundID,
			&i.AlgorithmName,
			&i.NumberOfDisks,
			&i.NumberOfPegs,
			&i.MinimumMoves,
			&i.ExecutionTimeNanos,
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
