package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const insertOutboxEvent = `-- name: InsertOutboxEvent :exec
INSERT INTO game_outbox (id, game, event_type, payload, created_at)
VALUES ($1, $2, $3, $4, $5)
`

type InsertOutboxEventParams struct {
	ID        uuid.UUID
	Game      string
	EventType string
	Payload   json.RawMessage
	CreatedAt time.Time
}

func (q *Queries) InsertOutboxEvent(ctx context.Context, arg InsertOutboxEventParams) error {
	_, err := q.db.ExecContext(ctx, insertOutboxEvent,
		arg.ID,
		arg.Game,
		arg.EventType,
		[]byte(arg.Payload),
		arg.CreatedAt,
	)
	return err
}

const fetchUnsentOutbox = `-- name: FetchUnsentOutbox :many
SELECT id, game, event_type, payload, created_at, sent_at
FROM game_outbox
WHERE sent_at IS NULL
ORDER BY created_at, id
LIMIT $1
`

func (q *Queries) FetchUnsentOutbox(ctx context.Context, limit int32) ([]GameOutbox, error) {
	rows, err := q.db.QueryContext(ctx, fetchUnsentOutbox, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GameOutbox
	for rows.Next() {
		var i GameOutbox
		if err := rows.Scan(
			&i.ID,
			&i.Game,
			&i.EventType,
			&i.Payload,
			&i.CreatedAt,
			&i.SentAt,
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

const fetchOutboxByID = `-- name: FetchOutboxByID :one
SELECT id, game, event_type, payload, created_at, sent_at
FROM game_outbox
WHERE id = $1 AND sent_at IS NULL
`

func (q *Queries) FetchOutboxByID(ctx context.Context, id uuid.UUID) (GameOutbox, error) {
	row := q.db.QueryRowContext(ctx, fetchOutboxByID, id)
	var i GameOutbox
	err := row.Scan(
		&i.ID,
		&i.Game,
		&i.EventType,
		&i.Payload,
		&i.CreatedAt,
		&i.SentAt,
	)
	return i, err
}

const markOutboxSent = `-- name: MarkOutboxSent :exec
UPDATE game_outbox SET sent_at = $2 WHERE id = $1 AND sent_at IS NULL
`

type MarkOutboxSentParams struct {
	ID     uuid.UUID
	SentAt time.Time
}

func (q *Queries) MarkOutboxSent(ctx context.Context, arg MarkOutboxSentParams) error {
	_, err := q.db.ExecContext(ctx, markOutboxSent, arg.ID, arg.SentAt)
	return err
}

const countPendingOutbox = `-- name: CountPendingOutbox :one
SELECT COUNT(*) FROM game_outbox WHERE sent_at IS NULL
`

func (q *Queries) CountPendingOutbox(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countPendingOutbox)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteSentOutboxBefore = `-- name: DeleteSentOutboxBefore :execrows
DELETE FROM game_outbox WHERE sent_at IS NOT NULL AND sent_at < $1
`

func (q *Queries) DeleteSentOutboxBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteSentOutboxBefore, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
