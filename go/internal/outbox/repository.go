package outbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/minigames/go/internal/outbox/db"
	"github.com/mcdev12/minigames/go/internal/sqlutil"
)

// ErrEventNotFound is returned when an event is missing or already sent
var ErrEventNotFound = errors.New("outbox event not found or already sent")

type Repository struct {
	queries *db.Queries
}

func NewRepository(queries *db.Queries) *Repository {
	return &Repository{
		queries: queries,
	}
}

func (r *Repository) InsertOutboxEvent(ctx context.Context, event OutboxEvent) error {
	err := r.queries.InsertOutboxEvent(ctx, db.InsertOutboxEventParams{
		ID:        event.ID,
		Game:      event.Game,
		EventType: event.EventType,
		Payload:   event.Payload,
		CreatedAt: event.CreatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to insert %s outbox event: %w", event.EventType, err)
	}
	return nil
}

func (r *Repository) FetchUnsentOutbox(ctx context.Context, limit int32) ([]OutboxEvent, error) {
	rows, err := r.queries.FetchUnsentOutbox(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}

	events := make([]OutboxEvent, len(rows))
	for i, row := range rows {
		events[i] = toEvent(row)
	}
	return events, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	err := r.queries.MarkOutboxSent(ctx, db.MarkOutboxSentParams{ID: id, SentAt: sentAt.UTC()})
	if err != nil {
		return fmt.Errorf("failed to mark outbox event as sent: %w", err)
	}
	return nil
}

func (r *Repository) FetchOutboxByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error) {
	row, err := r.queries.FetchOutboxByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to fetch outbox event by ID: %w", err)
	}

	event := toEvent(row)
	return &event, nil
}

func (r *Repository) CountPending(ctx context.Context) (int64, error) {
	count, err := r.queries.CountPendingOutbox(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending outbox events: %w", err)
	}
	return count, nil
}

// PurgeBefore deletes events that were sent before cutoff.
func (r *Repository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := r.queries.DeleteSentOutboxBefore(ctx, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge sent outbox events: %w", err)
	}
	return n, nil
}

func toEvent(row db.GameOutbox) OutboxEvent {
	return OutboxEvent{
		ID:        row.ID,
		Game:      row.Game,
		EventType: row.EventType,
		Payload:   row.Payload,
		CreatedAt: row.CreatedAt.UTC(),
		SentAt:    sqlutil.FromSqlTime(row.SentAt),
	}
}
