package tsp

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sqlc-dev/pqtype"

	"github.com/mcdev12/minigames/go/internal/sqlutil"
	"github.com/mcdev12/minigames/go/internal/tsp/db"
)

// ErrSessionNotFound is returned when a session id does not exist
var ErrSessionNotFound = errors.New("session not found")

// Repository implements traveling salesman data access
type Repository struct {
	queries *db.Queries
	sqlDB   *sql.DB
}

// NewRepository creates a new tsp repository
func NewRepository(queries *db.Queries, sqlDB *sql.DB) *Repository {
	return &Repository{
		queries: queries,
		sqlDB:   sqlDB,
	}
}

// CreateSession stores a new session with its matrix
func (r *Repository) CreateSession(ctx context.Context, session Session) (*Session, error) {
	matrix, err := json.Marshal(session.DistanceMatrix)
	if err != nil {
		return nil, fmt.Errorf("failed to encode distance matrix: %w", err)
	}

	id, err := r.queries.CreateGameSession(ctx, db.CreateGameSessionParams{
		PlayerName:     session.PlayerName,
		HomeCity:       session.HomeCity,
		DistanceMatrix: matrix,
		CreatedAt:      session.CreatedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	session.ID = id
	return &session, nil
}

// GetSession returns ErrSessionNotFound when id is unknown
func (r *Repository) GetSession(ctx context.Context, id int64) (*Session, error) {
	row, err := r.queries.GetGameSession(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session := &Session{
		ID:         row.ID,
		PlayerName: row.PlayerName,
		HomeCity:   row.HomeCity,
		CreatedAt:  row.CreatedAt.UTC(),
	}
	if err := json.Unmarshal(row.DistanceMatrix, &session.DistanceMatrix); err != nil {
		return nil, fmt.Errorf("failed to decode distance matrix for session %d: %w", id, err)
	}
	if row.SelectedCities.Valid {
		if err := json.Unmarshal(row.SelectedCities.RawMessage, &session.SelectedCities); err != nil {
			return nil, fmt.Errorf("failed to decode selected cities for session %d: %w", id, err)
		}
	}
	return session, nil
}

// SaveSelection stores the selected cities and the algorithm timings in one transaction.
func (r *Repository) SaveSelection(ctx context.Context, sessionID int64, cities []string, logs []AlgorithmTimeLog) error {
	selected, err := json.Marshal(cities)
	if err != nil {
		return fmt.Errorf("failed to encode selected cities: %w", err)
	}

	return sqlutil.Run(ctx, r.sqlDB, r.queries.WithTx, func(q *db.Queries) error {
		n, err := q.UpdateSelectedCities(ctx, db.UpdateSelectedCitiesParams{
			ID:             sessionID,
			SelectedCities: pqtype.NullRawMessage{RawMessage: selected, Valid: true},
		})
		if err != nil {
			return fmt.Errorf("failed to update selected cities: %w", err)
		}
		if n == 0 {
			return ErrSessionNotFound
		}

		for _, l := range logs {
			if err := q.CreateAlgorithmTimeLog(ctx, db.CreateAlgorithmTimeLogParams{
				SessionID:     sessionID,
				AlgorithmName: l.AlgorithmName,
				TimeTakenNs:   l.TimeTakenNs,
				CreatedAt:     l.CreatedAt.UTC(),
			}); err != nil {
				return fmt.Errorf("failed to create algorithm time log: %w", err)
			}
		}
		return nil
	})
}

// CreateGameResult stores a correct route
func (r *Repository) CreateGameResult(ctx context.Context, result GameResult) (*GameResult, error) {
	cities, err := json.Marshal(result.CitiesSelected)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cities: %w", err)
	}

	id, err := r.queries.CreateGameResult(ctx, db.CreateGameResultParams{
		SessionID:         result.SessionID,
		CitiesSelected:    cities,
		CalculatedPath:    result.CalculatedPath,
		TotalDistance:     int32(result.TotalDistance),
		TimeTakenByUserMs: result.TimeTakenByUserMs,
		CreatedAt:         result.CreatedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game result: %w", err)
	}

	result.ID = id
	return &result, nil
}

// PurgeBefore deletes sessions created before cutoff that never produced a result.
func (r *Repository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := r.queries.DeleteAbandonedSessionsBefore(ctx, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge tsp sessions: %w", err)
	}
	return n, nil
}
