package hanoi

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mcdev12/minigames/go/internal/hanoi/db"
	"github.com/mcdev12/minigames/go/internal/sqlutil"
)

// ErrRoundNotFound is returned when a round id does not exist
var ErrRoundNotFound = errors.New("game round not found")

// Repository implements tower of hanoi data access
type Repository struct {
	queries *db.Queries
	sqlDB   *sql.DB
}

// NewRepository creates a new hanoi repository
func NewRepository(queries *db.Queries, sqlDB *sql.DB) *Repository {
	return &Repository{
		queries: queries,
		sqlDB:   sqlDB,
	}
}

// CreateRound stores a round and its algorithm runs in one transaction.
func (r *Repository) CreateRound(ctx context.Context, round GameRound, runs []AlgorithmPerformance) (*GameRound, error) {
	err := sqlutil.Run(ctx, r.sqlDB, r.queries.WithTx, func(q *db.Queries) error {
		id, err := q.CreateGameRound(ctx, db.CreateGameRoundParams{
			NumberOfDisks:       int32(round.NumberOfDisks),
			NumberOfPegs:        int32(round.NumberOfPegs),
			CorrectMinimumMoves: int32(round.CorrectMinimumMoves),
			CorrectMoveSequence: round.CorrectMoveSequence,
			CreatedAt:           round.CreatedAt.UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to create game round: %w", err)
		}
		round.ID = id

		for _, run := range runs {
			if _, err := q.CreateAlgorithmPerformance(ctx, db.CreateAlgorithmPerformanceParams{
				GameRoundID:        id,
				AlgorithmName:      run.AlgorithmName,
				NumberOfDisks:      int32(run.NumberOfDisks),
				NumberOfPegs:       int32(run.NumberOfPegs),
				MinimumMoves:       int32(run.MinimumMoves),
				ExecutionTimeNanos: run.ExecutionTimeNanos,
				CreatedAt:          run.CreatedAt.UTC(),
			}); err != nil {
				return fmt.Errorf("failed to create algorithm performance: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &round, nil
}

// GetRound returns ErrRoundNotFound when id is unknown
func (r *Repository) GetRound(ctx context.Context, id int64) (*GameRound, error) {
	row, err := r.queries.GetGameRound(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoundNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game round: %w", err)
	}

	return &GameRound{
		ID:                  row.ID,
		NumberOfDisks:       int(row.NumberOfDisks),
		NumberOfPegs:        int(row.NumberOfPegs),
		CorrectMinimumMoves: int(row.CorrectMinimumMoves),
		CorrectMoveSequence: row.CorrectMoveSequence,
		CreatedAt:           row.CreatedAt.UTC(),
	}, nil
}

// CreatePlayerAnswer stores a player's answer
func (r *Repository) CreatePlayerAnswer(ctx context.Context, answer PlayerAnswer) (*PlayerAnswer, error) {
	id, err := r.queries.CreatePlayerAnswer(ctx, db.CreatePlayerAnswerParams{
		GameRoundID:        answer.GameRoundID,
		PlayerName:         answer.PlayerName,
		PlayerMinimumMoves: int32(answer.PlayerMinimumMoves),
		PlayerMoveSequence: answer.PlayerMoveSequence,
		IsCorrect:          answer.IsCorrect,
		CreatedAt:          answer.CreatedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create player answer: %w", err)
	}

	answer.ID = id
	return &answer, nil
}

// ListPerformance returns every run ordered by algorithm name then id
func (r *Repository) ListPerformance(ctx context.Context) ([]AlgorithmPerformance, error) {
	rows, err := r.queries.ListAlgorithmPerformance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list algorithm performance: %w", err)
	}
	return r.dbPerformanceToModels(rows), nil
}

// ListPerformanceByAlgorithm returns every run of one algorithm
func (r *Repository) ListPerformanceByAlgorithm(ctx context.Context, name string) ([]AlgorithmPerformance, error) {
	rows, err := r.queries.ListAlgorithmPerformanceByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list algorithm performance for %s: %w", name, err)
	}
	return r.dbPerformanceToModels(rows), nil
}

// PurgeBefore deletes rounds created before cutoff that never received an answer.
func (r *Repository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := r.queries.DeleteUnansweredRoundsBefore(ctx, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge hanoi rounds: %w", err)
	}
	return n, nil
}

func (r *Repository) dbPerformanceToModels(rows []db.HanoiAlgorithmPerformance) []AlgorithmPerformance {
	result := make([]AlgorithmPerformance, len(rows))
	for i, row := range rows {
		result[i] = AlgorithmPerformance{
			ID:                 row.ID,
			GameRoundID:        row.GameRoundID,
			AlgorithmName:      row.AlgorithmName,
			NumberOfDisks:      int(row.NumberOfDisks),
			NumberOfPegs:       int(row.NumberOfPegs),
			MinimumMoves:       int(row.MinimumMoves),
			ExecutionTimeNanos: row.ExecutionTimeNanos,
			CreatedAt:          row.CreatedAt.UTC(),
		}
	}
	return result
}
