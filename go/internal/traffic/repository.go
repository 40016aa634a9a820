package traffic

import (
	"context"
	"fmt"

	"github.com/mcdev12/minigames/go/internal/traffic/db"
)

// Repository implements traffic simulation data access
type Repository struct {
	queries *db.Queries
}

// NewRepository creates a new traffic repository
func NewRepository(queries *db.Queries) *Repository {
	return &Repository{
		queries: queries,
	}
}

// CreatePlayerResult stores a result
func (r *Repository) CreatePlayerResult(ctx context.Context, result PlayerResult) (*PlayerResult, error) {
	id, err := r.queries.CreatePlayerResult(ctx, db.CreatePlayerResultParams{
		PlayerName:      result.PlayerName,
		ReportedMaxFlow: int32(result.ReportedMaxFlow),
		CorrectMaxFlow:  int32(result.CorrectMaxFlow),
		IsCorrect:       result.IsCorrect,
		EkNanos:         result.EKNanos,
		DinicNanos:      result.DinicNanos,
		CreatedAt:       result.CreatedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create player result: %w", err)
	}

	result.ID = id
	return &result, nil
}

// ListRecentCorrectResults returns up to limit correct results, newest first
func (r *Repository) ListRecentCorrectResults(ctx context.Context, limit int) ([]PlayerResult, error) {
	rows, err := r.queries.ListRecentCorrectResults(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list player results: %w", err)
	}

	results := make([]PlayerResult, len(rows))
	for i, row := range rows {
		results[i] = PlayerResult{
			ID:              row.ID,
			PlayerName:      row.PlayerName,
			ReportedMaxFlow: int(row.ReportedMaxFlow),
			CorrectMaxFlow:  int(row.CorrectMaxFlow),
			IsCorrect:       row.IsCorrect,
			EKNanos:         row.EkNanos,
			DinicNanos:      row.DinicNanos,
			CreatedAt:       row.CreatedAt.UTC(),
		}
	}
	return results, nil
}
