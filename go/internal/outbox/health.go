package outbox

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go"

	"github.com/mcdev12/minigames/go/internal/httputil"
)

const highPendingThreshold = 1000

type HealthStatus struct {
	Healthy           bool      `json:"healthy"`
	LastEventTime     time.Time `json:"last_event_time"`
	EventsProcessed   uint64    `json:"events_processed"`
	PublishFailures   uint64    `json:"publish_failures"`
	PendingEvents     int64     `json:"pending_events"`
	DatabaseConnected bool      `json:"database_connected"`
	NATSConnected     bool      `json:"nats_connected"`
	RelayActive       bool      `json:"relay_active"`
	Errors            []string  `json:"errors"`
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Runner is satisfied by Listener and Worker.
type Runner interface {
	Running() bool
}

type HealthChecker struct {
	app       *App
	db        Pinger
	natsConn  *nats.Conn
	runner    Runner
	metrics   *Metrics
	clock     clockwork.Clock
	threshold time.Duration // How long without events before unhealthy
}

// NewHealthChecker builds a checker. natsConn may be nil when events are only logged.
func NewHealthChecker(app *App, db Pinger, natsConn *nats.Conn, runner Runner, metrics *Metrics, clock clockwork.Clock, threshold time.Duration) *HealthChecker {
	return &HealthChecker{
		app:       app,
		db:        db,
		natsConn:  natsConn,
		runner:    runner,
		metrics:   metrics,
		clock:     clock,
		threshold: threshold,
	}
}

func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	snap := h.metrics.Snapshot()
	status := HealthStatus{
		Healthy:         true,
		EventsProcessed: snap.EventsProcessed,
		PublishFailures: snap.PublishFailed,
		LastEventTime:   snap.LastEventTime,
		Errors:          []string{},
	}

	if err := h.db.PingContext(ctx); err != nil {
		status.Healthy = false
		status.Errors = append(status.Errors, fmt.Sprintf("database ping failed: %v", err))
	} else {
		status.DatabaseConnected = true
	}

	if h.natsConn != nil {
		status.NATSConnected = h.natsConn.IsConnected()
		if !status.NATSConnected {
			status.Healthy = false
			status.Errors = append(status.Errors, "NATS disconnected")
		}
	}

	status.RelayActive = h.runner.Running()
	if !status.RelayActive {
		status.Healthy = false
		status.Errors = append(status.Errors, "relay not active")
	}

	if status.DatabaseConnected {
		pending, err := h.app.PendingCount(ctx)
		if err != nil {
			status.Errors = append(status.Errors, fmt.Sprintf("failed to count pending events: %v", err))
		} else {
			status.PendingEvents = pending
			if pending > highPendingThreshold {
				status.Errors = append(status.Errors, fmt.Sprintf("high pending event count: %d", pending))
			}
		}
	}

	// Stalled only matters while something is waiting.
	if status.PendingEvents > 0 && !status.LastEventTime.IsZero() {
		since := h.clock.Since(status.LastEventTime)
		if since > h.threshold {
			status.Healthy = false
			status.Errors = append(status.Errors, fmt.Sprintf("no events processed for %s", since))
		}
	}

	return status
}

// RegisterRoutes mounts /health and /metrics.
func (h *HealthChecker) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.serveHealth)
	mux.HandleFunc("GET /metrics", h.serveMetrics)
}

func (h *HealthChecker) serveHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := h.Check(ctx)
	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, code, status)
}

func (h *HealthChecker) serveMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, h.export(ctx))
}

func (h *HealthChecker) export(ctx context.Context) string {
	status := h.Check(ctx)
	snap := h.metrics.Snapshot()

	var lastEvent int64
	if !status.LastEventTime.IsZero() {
		lastEvent = status.LastEventTime.Unix()
	}

	return fmt.Sprintf(`# HELP outbox_healthy Whether the outbox relay is healthy
# TYPE outbox_healthy gauge
outbox_healthy %d

# HELP outbox_events_processed_total Total number of events published and marked sent
# TYPE outbox_events_processed_total counter
outbox_events_processed_total %d

# HELP outbox_publish_failures_total Total number of failed publish attempts
# TYPE outbox_publish_failures_total counter
outbox_publish_failures_total %d

# HELP outbox_batches_total Total number of non-empty batches relayed
# TYPE outbox_batches_total counter
outbox_batches_total %d

# HELP outbox_pending_events Current number of pending events
# TYPE outbox_pending_events gauge
outbox_pending_events %d

# HELP outbox_database_connected Whether the database is reachable
# TYPE outbox_database_connected gauge
outbox_database_connected %d

# HELP outbox_nats_connected Whether NATS is connected
# TYPE outbox_nats_connected gauge
outbox_nats_connected %d

# HELP outbox_relay_active Whether the listener or worker is running
# TYPE outbox_relay_active gauge
outbox_relay_active %d

# HELP outbox_last_event_timestamp Unix timestamp of last processed event
# TYPE outbox_last_event_timestamp gauge
outbox_last_event_timestamp %d
`,
		boolGauge(status.Healthy),
		status.EventsProcessed,
		status.PublishFailures,
		snap.BatchesProcessed,
		status.PendingEvents,
		boolGauge(status.DatabaseConnected),
		boolGauge(status.NATSConnected),
		boolGauge(status.RelayActive),
		lastEvent,
	)
}

func boolGauge(b bool) int {
	if b {
		return 1
	}
	return 0
}
