package queens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mcdev12/minigames/go/internal/queens/db"
	"github.com/mcdev12/minigames/go/internal/sqlutil"
)

// Repository implements eight queens data access
type Repository struct {
	queries *db.Queries
	sqlDB   *sql.DB
}

// NewRepository creates a new queens repository
func NewRepository(queries *db.Queries, sqlDB *sql.DB) *Repository {
	return &Repository{
		queries: queries,
		sqlDB:   sqlDB,
	}
}

// CountSolutions returns how many canonical solutions are stored
func (r *Repository) CountSolutions(ctx context.Context) (int, error) {
	n, err := r.queries.CountSolutions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count solutions: %w", err)
	}
	return int(n), nil
}

// CountFoundSolutions returns how many solutions are found in the current cycle
func (r *Repository) CountFoundSolutions(ctx context.Context) (int, error) {
	n, err := r.queries.CountFoundSolutions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count found solutions: %w", err)
	}
	return int(n), nil
}

// CountPlayers returns how many distinct players have submitted
func (r *Repository) CountPlayers(ctx context.Context) (int, error) {
	n, err := r.queries.CountPlayers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return int(n), nil
}

// InsertSolutions stores boards in one transaction, skipping ones already present.
func (r *Repository) InsertSolutions(ctx context.Context, boards []Board) (int, error) {
	inserted := 0
	err := sqlutil.Run(ctx, r.sqlDB, r.queries.WithTx, func(q *db.Queries) error {
		for _, b := range boards {
			n, err := q.InsertSolution(ctx, b.Key())
			if err != nil {
				return fmt.Errorf("failed to insert solution %s: %w", b.Key(), err)
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// ListSolutions returns every stored solution in insertion order
func (r *Repository) ListSolutions(ctx context.Context) ([]Solution, error) {
	rows, err := r.queries.ListSolutions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list solutions: %w", err)
	}

	result := make([]Solution, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.dbSolutionToModel(row))
	}
	return result, nil
}

// RecordDiscovery marks the solution identified by key as found by playerName.
// The player upsert, the flag update, the submission row and the end-of-cycle
// reset all happen in one transaction.
func (r *Repository) RecordDiscovery(ctx context.Context, playerName, key string, at time.Time) (*Discovery, error) {
	var discovery Discovery
	err := sqlutil.Run(ctx, r.sqlDB, r.queries.WithTx, func(q *db.Queries) error {
		solution, err := q.GetSolutionByData(ctx, key)
		if errors.Is(err, sql.ErrNoRows) {
			discovery.Status = DiscoveryUnknown
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get solution: %w", err)
		}

		player, err := q.UpsertPlayer(ctx, db.UpsertPlayerParams{Name: playerName, CreatedAt: at.UTC()})
		if err != nil {
			return fmt.Errorf("failed to upsert player: %w", err)
		}

		updated, err := q.MarkSolutionFound(ctx, db.MarkSolutionFoundParams{
			ID:      solution.ID,
			FoundBy: sqlutil.ToSqlInt64(&player.ID),
			FoundAt: sqlutil.ToSqlTime(&at),
		})
		if err != nil {
			return fmt.Errorf("failed to mark solution found: %w", err)
		}

		found, err := q.CountFoundSolutions(ctx)
		if err != nil {
			return fmt.Errorf("failed to count found solutions: %w", err)
		}
		discovery.FoundCount = int(found)

		if updated == 0 {
			discovery.Status = DiscoveryDuplicate
			return nil
		}

		if err := q.CreateSubmission(ctx, db.CreateSubmissionParams{
			PlayerID:    player.ID,
			SolutionID:  solution.ID,
			SubmittedAt: at.UTC(),
		}); err != nil {
			return fmt.Errorf("failed to create submission: %w", err)
		}
		discovery.Status = DiscoveryAccepted

		if discovery.FoundCount >= TotalSolutions {
			if err := q.ResetSolutions(ctx); err != nil {
				return fmt.Errorf("failed to reset solutions: %w", err)
			}
			discovery.FoundCount = 0
			discovery.Reset = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &discovery, nil
}

// ResetSolutions clears every found flag
func (r *Repository) ResetSolutions(ctx context.Context) error {
	if err := r.queries.ResetSolutions(ctx); err != nil {
		return fmt.Errorf("failed to reset solutions: %w", err)
	}
	return nil
}

// CreateAlgorithmPerformance persists one solver run
func (r *Repository) CreateAlgorithmPerformance(ctx context.Context, perf AlgorithmPerformance) (*AlgorithmPerformance, error) {
	id, err := r.queries.CreateAlgorithmPerformance(ctx, db.CreateAlgorithmPerformanceParams{
		AlgorithmType:       string(perf.AlgorithmType),
		ExecutionTimeMs:     perf.ExecutionTimeMs,
		TotalSolutionsFound: int32(perf.TotalSolutionsFound),
		ExecutedAt:          perf.ExecutedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create algorithm performance: %w", err)
	}

	perf.ID = id
	return &perf, nil
}

// GetLatestAlgorithmPerformance returns the most recent run of algorithm, or nil when it never ran.
func (r *Repository) GetLatestAlgorithmPerformance(ctx context.Context, algorithm AlgorithmType) (*AlgorithmPerformance, error) {
	row, err := r.queries.GetLatestAlgorithmPerformance(ctx, string(algorithm))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest algorithm performance: %w", err)
	}

	return &AlgorithmPerformance{
		ID:                  row.ID,
		AlgorithmType:       AlgorithmType(row.AlgorithmType),
		ExecutionTimeMs:     row.ExecutionTimeMs,
		TotalSolutionsFound: int(row.TotalSolutionsFound),
		ExecutedAt:          row.ExecutedAt,
	}, nil
}

func (r *Repository) dbSolutionToModel(row db.QueensSolution) Solution {
	board, _ := ParseBoard(row.SolutionData)
	return Solution{
		ID:      row.ID,
		Board:   board,
		Key:     row.SolutionData,
		Found:   row.IsFound,
		FoundBy: sqlutil.FromSqlInt64(row.FoundBy),
		FoundAt: sqlutil.FromSqlTime(row.FoundAt),
	}
}
