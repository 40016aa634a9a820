package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sqlc-dev/pqtype"
)

const createAlgorithmTimeLog = `-- name: CreateAlgorithmTimeLog :exec
INSERT INTO tsp_algorithm_time_logs (session_id, algorithm_name, time_taken_ns, created_at)
VALUES ($1, $2, $3, $4)
`

type CreateAlgorithmTimeLogParams struct {
	SessionID     int64
	AlgorithmName string
	TimeTakenNs   int64
	CreatedAt     time.Time
}

func (q *Queries) CreateAlgorithmTimeLog(ctx context.Context, arg CreateAlgorithmTimeLogParams) error {
	_, err := q.db.ExecContext(ctx, createAlgorithmTimeLog,
		arg.SessionID,
		arg.AlgorithmName,
		arg.TimeTakenNs,
		arg.CreatedAt,
	)
	return err
}

const createGameResult = `-- name: CreateGameResult :one
INSERT INTO tsp_game_results (
    session_id, cities_selected, calculated_path, total_distance, time_taken_by_user_ms, created_at
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`

type CreateGameResultParams struct {
	SessionID         int64
	CitiesSelected    json.RawMessage
	CalculatedPath    string
	TotalDistance     int32
	TimeTakenByUserMs int64
	CreatedAt         time.Time
}

func (q *Queries) CreateGameResult(ctx context.Context, arg CreateGameResultParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createGameResult,
		arg.SessionID,
		[]byte(arg.CitiesSelected),
		arg.CalculatedPath,
		arg.TotalDistance,
		arg.TimeTakenByUserMs,
		arg.CreatedAt,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const createGameSession = `-- name: CreateGameSession :one
INSERT INTO tsp_game_sessions (player_name, home_city, distance_matrix, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id
`

type CreateGameSessionParams struct {
	PlayerName     string
	HomeCity       string
	DistanceMatrix json.RawMessage
	CreatedAt      time.Time
}

func (q *Queries) CreateGameSession(ctx context.Context, arg CreateGameSessionParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createGameSession,
		arg.PlayerName,
		arg.HomeCity,
		[]byte(arg.DistanceMatrix),
		arg.CreatedAt,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const deleteAbandonedSessionsBefore = `-- name: DeleteAbandonedSessionsBefore :execrows
DELETE FROM tsp_game_sessions
WHERE created_at < $1
  AND NOT EXISTS (
    SELECT 1 FROM tsp_game_results r WHERE r.session_id = tsp_game_sessions.id
  )
`

func (q *Queries) DeleteAbandonedSessionsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteAbandonedSessionsBefore, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getGameSession = `-- name: GetGameSession :one
SELECT id, player_name, home_city, distance_matrix, selected_cities, created_at
FROM tsp_game_sessions
WHERE id = $1
`

func (q *Queries) GetGameSession(ctx context.Context, id int64) (TspGameSession, error) {
	row := q.db.QueryRowContext(ctx, getGameSession, id)
	var i TspGameSession
	err := row.Scan(
		&i.ID,
		&i.PlayerName,
		&i.HomeCity,
		&i.DistanceMatrix,
		&i.SelectedCities,
		&i.CreatedAt,
	)
	return i, err
}

const updateSelectedCities = `-- name: UpdateSelectedCities :execrows
UPDATE tsp_game_sessions
SET selected_cities = $2
WHERE id = $1
`

type UpdateSelectedCitiesParams struct {
	ID             int64
	SelectedCities pqtype.NullRawMessage
}

func (q *Queries) UpdateSelectedCities(ctx context.Context, arg UpdateSelectedCitiesParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateSelectedCities, arg.ID, arg.SelectedCities)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
