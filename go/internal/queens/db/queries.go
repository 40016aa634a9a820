package db

import (
	"context"
	"database/sql"
	"time"
)

const countFoundSolutions = `-- name: CountFoundSolutions :one
SELECT COUNT(*) FROM queens_solutions WHERE is_found = TRUE
`

func (q *Queries) CountFoundSolutions(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countFoundSolutions)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countPlayers = `-- name: CountPlayers :one
SELECT COUNT(*) FROM queens_players
`

func (q *Queries) CountPlayers(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countPlayers)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countSolutions = `-- name: CountSolutions :one
SELECT COUNT(*) FROM queens_solutions
`

func (q *Queries) CountSolutions(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countSolutions)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createAlgorithmPerformance = `-- name: CreateAlgorithmPerformance :one
INSERT INTO queens_algorithm_performance (algorithm_type, execution_time_ms, total_solutions_found, executed_at)
VALUES ($1, $2, $3, $4)
RETURNING id
`

type CreateAlgorithmPerformanceParams struct {
	AlgorithmType       string
	ExecutionTimeMs     int64
	TotalSolutionsFound int32
	ExecutedAt          time.Time
}

func (q *Queries) CreateAlgorithmPerformance(ctx context.Context, arg CreateAlgorithmPerformanceParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createAlgorithmPerformance,
		arg.AlgorithmType,
		arg.ExecutionTimeMs,
		arg.TotalSolutionsFound,
		arg.ExecutedAt,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const createSubmission = `-- name: CreateSubmission :exec
INSERT INTO queens_submissions (player_id, solution_id, submitted_at)
VALUES ($1, $2, $3)
`

type CreateSubmissionParams struct {
	PlayerID    int64
	SolutionID  int64
	SubmittedAt time.Time
}

func (q *Queries) CreateSubmission(ctx context.Context, arg CreateSubmissionParams) error {
	_, err := q.db.ExecContext(ctx, createSubmission, arg.PlayerID, arg.SolutionID, arg.SubmittedAt)
	return err
}

const getLatestAlgorithmPerformance = `-- name: GetLatestAlgorithmPerformance :one
SELECT id, algorithm_type, execution_time_ms, total_solutions_found, executed_at
FROM queens_algorithm_performance
WHERE algorithm_type = $1
ORDER BY executed_at DESC, id DESC
LIMIT 1
`

func (q *Queries) GetLatestAlgorithmPerformance(ctx context.Context, algorithmType string) (QueensAlgorithmPerformance, error) {
	row := q.db.QueryRowContext(ctx, getLatestAlgorithmPerformance, algorithmType)
	var i QueensAlgorithmPerformance
	err := row.Scan(
		&i.ID,
		&i.AlgorithmType,
		&i.ExecutionTimeMs,
		&i.TotalSolutionsFound,
		&i.ExecutedAt,
	)
	return i, err
}

const getSolutionByData = `-- name: GetSolutionByData :one
SELECT id, solution_data, is_found, found_by, found_at
FROM queens_solutions
WHERE solution_data = $1
`

func (q *Queries) GetSolutionByData(ctx context.Context, solutionData string) (QueensSolution, error) {
	row := q.db.QueryRowContext(ctx, getSolutionByData, solutionData)
	var i QueensSolution
	err := row.Scan(
		&i.ID,
		&i.SolutionData,
		&i.IsFound,
		&i.FoundBy,
		&i.FoundAt,
	)
	return i, err
}

const insertSolution = `-- name: InsertSolution :execrows
INSERT INTO queens_solutions (solution_data, is_found)
VALUES ($1, FALSE)
ON CONFLICT (solution_data) DO NOTHING
`

func (q *Queries) InsertSolution(ctx context.Context, solutionData string) (int64, error) {
	result, err := q.db.ExecContext(ctx, insertSolution, solutionData)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listSolutions = `-- name: ListSolutions :many
SELECT id, solution_data, is_found, found_by, found_at
FROM queens_solutions
ORDER BY id
`

func (q *Queries) ListSolutions(ctx context.Context) ([]QueensSolution, error) {
	rows, err := q.db.QueryContext(ctx, listSolutions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []QueensSolution
	for rows.Next() {
		var i QueensSolution
		if err := rows.Scan(
			&i.ID,
			&i.SolutionData,
			&i.IsFound,
			&i.FoundBy,
			&i.FoundAt,
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

const markSolutionFound = `-- name: MarkSolutionFound :execrows
UPDATE queens_solutions
SET is_found = TRUE, found_by = $2, found_at = $3
WHERE id = $1 AND is_found = FALSE
`

type MarkSolutionFoundParams struct {
	ID      int64
	FoundBy sql.NullInt64
	FoundAt sql.NullTime
}

func (q *Queries) MarkSolutionFound(ctx context.Context, arg MarkSolutionFoundParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, markSolutionFound, arg.ID, arg.FoundBy, arg.FoundAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const resetSolutions = `-- name: ResetSolutions :exec
UPDATE queens_solutions
SET is_found = FALSE, found_by = NULL, found_at = NULL
`

func (q *Queries) ResetSolutions(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, resetSolutions)
	return err
}

const upsertPlayer = `-- name: UpsertPlayer :one
INSERT INTO queens_players (name, created_at)
VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id, name
`

type UpsertPlayerParams struct {
	Name      string
	CreatedAt time.Time
}

type UpsertPlayerRow struct {
	ID   int64
	Name string
}

func (q *Queries) UpsertPlayer(ctx context.Context, arg UpsertPlayerParams) (UpsertPlayerRow, error) {
	row := q.db.QueryRowContext(ctx, upsertPlayer, arg.Name, arg.CreatedAt)
	var i UpsertPlayerRow
	err := row.Scan(&i.ID, &i.Name)
	return i, err
}
