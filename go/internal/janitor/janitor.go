// Package janitor deletes stale rows on a schedule.
package janitor

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Purger deletes rows older than cutoff and returns how many went
type Purger interface {
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Config struct {
	Retention time.Duration
	Interval  time.Duration
}

func DefaultConfig() Config {
	return Config{
		Retention: 7 * 24 * time.Hour,
		Interval:  time.Hour,
	}
}

type namedPurger struct {
	name   string
	purger Purger
}

// Sweeper runs every registered purger on each tick
type Sweeper struct {
	cfg     Config
	clock   clockwork.Clock
	purgers []namedPurger
}

func NewSweeper(cfg Config, clock clockwork.Clock) *Sweeper {
	return &Sweeper{cfg: cfg, clock: clock}
}

// Register adds a purger. Not safe to call after Run has started.
func (s *Sweeper) Register(name string, p Purger) {
	s.purgers = append(s.purgers, namedPurger{name: name, purger: p})
}

// Run sweeps once immediately and then on every interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	if s.cfg.Interval <= 0 {
		return fmt.Errorf("sweep interval must be positive")
	}

	log.Info().
		Dur("interval", s.cfg.Interval).
		Dur("retention", s.cfg.Retention).
		Int("purgers", len(s.purgers)).
		Msg("janitor started")

	ticker := s.clock.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("janitor stopped")
			return nil
		case <-ticker.Chan():
			s.Sweep(ctx)
		}
	}
}

// Sweep runs each purger with cutoff now-retention. A failing purger does not stop the others.
func (s *Sweeper) Sweep(ctx context.Context) map[string]int64 {
	cutoff := s.clock.Now().Add(-s.cfg.Retention).UTC()
	removed := make(map[string]int64, len(s.purgers))

	for _, p := range s.purgers {
		n, err := p.purger.PurgeBefore(ctx, cutoff)
		if err != nil {
			log.Error().Err(err).Str("purger", p.name).Msg("purge failed")
			continue
		}
		removed[p.name] = n
		if n > 0 {
			log.Info().
				Str("purger", p.name).
				Int64("removed", n).
				Time("cutoff", cutoff).
				Msg("purged stale rows")
		}
	}
	return removed
}
