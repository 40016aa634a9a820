package outbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// RetryConfig controls publish retries. Attempt n waits n*Delay.
type RetryConfig struct {
	MaxRetries int
	Delay      time.Duration
}

// relay publishes stored events and marks them sent. Listener and Worker share it.
type relay struct {
	app       *App
	publisher EventPublisher
	metrics   *Metrics
	retry     RetryConfig
	clock     clockwork.Clock
}

func newRelay(app *App, publisher EventPublisher, metrics *Metrics, retry RetryConfig, clock clockwork.Clock) *relay {
	if metrics == nil {
		metrics = NewMetrics(clock)
	}
	return &relay{
		app:       app,
		publisher: publisher,
		metrics:   metrics,
		retry:     retry,
		clock:     clock,
	}
}

// relayByID publishes one notified event. Already sent events are skipped.
func (r *relay) relayByID(ctx context.Context, id uuid.UUID) error {
	event, err := r.app.GetEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			log.Debug().Str("event_id", id.String()).Msg("notified event already sent")
			return nil
		}
		return err
	}

	if err := r.publishAndMark(ctx, *event); err != nil {
		return err
	}

	log.Info().Str("event_id", id.String()).Msg("published and marked event as sent")
	return nil
}

// relayUnsent publishes a batch of unsent events and returns how many went out.
func (r *relay) relayUnsent(ctx context.Context, batchSize int32) (int, error) {
	start := r.clock.Now()

	unsent, err := r.app.FetchUnsentEvents(ctx, batchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, event := range unsent {
		if err := r.publishAndMark(ctx, event); err != nil {
			log.Error().
				Err(err).
				Str("event_id", event.ID.String()).
				Str("event_type", event.EventType).
				Msg("failed to publish event")
			continue
		}
		sent++
	}

	if len(unsent) > 0 {
		r.metrics.RecordBatchProcessed(sent, r.clock.Since(start))
		log.Info().
			Int("total", len(unsent)).
			Int("successful", sent).
			Msg("processed outbox events")
	}
	return sent, nil
}

func (r *relay) publishAndMark(ctx context.Context, event OutboxEvent) error {
	if err := r.publishWithRetry(ctx, event); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	if err := r.app.MarkEventSent(ctx, event.ID); err != nil {
		return err
	}
	r.metrics.RecordEventProcessed(event.EventType)
	return nil
}

// publishWithRetry attempts to publish with a linearly growing delay between attempts.
func (r *relay) publishWithRetry(ctx context.Context, event OutboxEvent) error {
	var lastErr error

	for attempt := 0; attempt <= r.retry.MaxRetries; attempt++ {
		if attempt > 0 && r.retry.Delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-r.clock.After(r.retry.Delay * time.Duration(attempt)):
			}
		}

		if err := r.publisher.Publish(ctx, event); err != nil {
			lastErr = err
			r.metrics.RecordPublishAttempt(false)
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("event_id", event.ID.String()).
				Msg("failed to publish, retrying")
			continue
		}

		r.metrics.RecordPublishAttempt(true)
		if attempt > 0 {
			log.Info().
				Int("attempt", attempt+1).
				Str("event_id", event.ID.String()).
				Msg("publish succeeded after retry")
		}
		return nil
	}

	return fmt.Errorf("publish failed after %d attempts: %w", r.retry.MaxRetries+1, lastErr)
}
