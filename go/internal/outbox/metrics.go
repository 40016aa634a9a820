package outbox

import (
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

// Metrics collects relay counters. All methods are safe for concurrent use.
type Metrics struct {
	clock clockwork.Clock

	eventsProcessed   atomic.Uint64
	publishSucceeded  atomic.Uint64
	publishFailed     atomic.Uint64
	batchesProcessed  atomic.Uint64
	lastBatchNanos    atomic.Int64
	lastEventUnixNano atomic.Int64
}

func NewMetrics(clock clockwork.Clock) *Metrics {
	return &Metrics{clock: clock}
}

func (m *Metrics) RecordEventProcessed(eventType string) {
	m.eventsProcessed.Add(1)
	m.lastEventUnixNano.Store(m.clock.Now().UnixNano())
}

func (m *Metrics) RecordPublishAttempt(success bool) {
	if success {
		m.publishSucceeded.Add(1)
		return
	}
	m.publishFailed.Add(1)
}

func (m *Metrics) RecordBatchProcessed(count int, duration time.Duration) {
	m.batchesProcessed.Add(1)
	m.lastBatchNanos.Store(duration.Nanoseconds())
}

// MetricsSnapshot is a point-in-time copy of the counters
type MetricsSnapshot struct {
	EventsProcessed  uint64
	PublishSucceeded uint64
	PublishFailed    uint64
	BatchesProcessed uint64
	LastBatch        time.Duration
	LastEventTime    time.Time
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		EventsProcessed:  m.eventsProcessed.Load(),
		PublishSucceeded: m.publishSucceeded.Load(),
		PublishFailed:    m.publishFailed.Load(),
		BatchesProcessed: m.batchesProcessed.Load(),
		LastBatch:        time.Duration(m.lastBatchNanos.Load()),
	}
	if ns := m.lastEventUnixNano.Load(); ns != 0 {
		s.LastEventTime = time.Unix(0, ns).UTC()
	}
	return s
}
