package janitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	mu      sync.Mutex
	cutoffs []time.Time
	n       int64
	err     error
}

func (f *fakePurger) PurgeBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, cutoff)
	return f.n, f.err
}

func (f *fakePurger) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cutoffs)
}

func TestSweepUsesRetentionCutoff(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 8, 9, 0, 0, 0, time.UTC))
	s := NewSweeper(Config{Retention: 24 * time.Hour, Interval: time.Hour}, clock)

	tsp := &fakePurger{n: 3}
	broken := &fakePurger{err: errors.New("locked")}
	outbox := &fakePurger{n: 0}
	s.Register("tsp", tsp)
	s.Register("broken", broken)
	s.Register("outbox", outbox)

	removed := s.Sweep(context.Background())
	assert.Equal(t, map[string]int64{"tsp": 3, "outbox": 0}, removed)
	require.Len(t, tsp.cutoffs, 1)
	assert.Equal(t, time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC), tsp.cutoffs[0])
	assert.Equal(t, 1, outbox.calls())
}

func TestRunSweepsOnEveryTick(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	s := NewSweeper(Config{Retention: time.Hour, Interval: time.Minute}, clock)
	p := &fakePurger{}
	s.Register("p", p)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return p.calls() == 1 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Minute)
	require.Eventually(t, func() bool { return p.calls() == 2 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestRunRejectsZeroInterval(t *testing.T) {
	t.Parallel()

	s := NewSweeper(Config{Retention: time.Hour}, clockwork.NewFakeClock())
	assert.Error(t, s.Run(context.Background()))
}
