package main

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/minigames/go/internal/events"
	"github.com/mcdev12/minigames/go/internal/hanoi"
	hanoidb "github.com/mcdev12/minigames/go/internal/hanoi/db"
	"github.com/mcdev12/minigames/go/internal/janitor"
	"github.com/mcdev12/minigames/go/internal/outbox"
	outboxdb "github.com/mcdev12/minigames/go/internal/outbox/db"
	"github.com/mcdev12/minigames/go/internal/queens"
	queensdb "github.com/mcdev12/minigames/go/internal/queens/db"
	"github.com/mcdev12/minigames/go/internal/snakeladder"
	snakedb "github.com/mcdev12/minigames/go/internal/snakeladder/db"
	"github.com/mcdev12/minigames/go/internal/traffic"
	trafficdb "github.com/mcdev12/minigames/go/internal/traffic/db"
	"github.com/mcdev12/minigames/go/internal/tsp"
	tspdb "github.com/mcdev12/minigames/go/internal/tsp/db"
)

// EventRecorder is implemented by outbox.App
type EventRecorder interface {
	Record(ctx context.Context, game, eventType string, payload any) error
}

// RouteRegistrar is implemented by every game's Service
type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

// Services holds the wired game services keyed by game
type Services struct {
	Games   map[string]RouteRegistrar
	Outbox  *outbox.App
	Janitor *janitor.Sweeper
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func setupServices(ctx context.Context, database *sql.DB, cfg *Config, envCfg EnvConfig, clock clockwork.Clock) (*Services, error) {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Service layer

	outboxApp := outbox.NewApp(outbox.NewRepository(outboxdb.New(database)), clock)
	var recorder EventRecorder
	if envCfg.EventsEnabled {
		recorder = outboxApp
	}

	services := &Services{
		Games:   make(map[string]RouteRegistrar),
		Outbox:  outboxApp,
		Janitor: janitor.NewSweeper(janitor.Config{Retention: cfg.Janitor.Retention, Interval: cfg.Janitor.Interval}, clock),
	}
	services.Janitor.Register("outbox", outboxApp)

	for _, game := range cfg.enabledGames() {
		switch game {
		case events.GameQueens:
			repo := queens.NewRepository(queensdb.New(database), database)
			app := queens.NewApp(repo, recorder, clock)
			if err := app.EnsureSolutions(ctx); err != nil {
				return nil, fmt.Errorf("failed to seed queens solutions: %w", err)
			}
			services.Games[game] = queens.NewService(app)

		case events.GameSnakeLadder:
			repo := snakeladder.NewRepository(snakedb.New(database))
			app := snakeladder.NewApp(repo, recorder, clock, newRand())
			services.Games[game] = snakeladder.NewService(app)

		case events.GameHanoi:
			repo := hanoi.NewRepository(hanoidb.New(database), database)
			app := hanoi.NewApp(repo, recorder, clock, newRand())
			services.Games[game] = hanoi.NewService(app)
			services.Janitor.Register("hanoi", repo)

		case events.GameTSP:
			repo := tsp.NewRepository(tspdb.New(database), database)
			app := tsp.NewApp(repo, recorder, clock, newRand())
			services.Games[game] = tsp.NewService(app)
			services.Janitor.Register("tsp", repo)

		case events.GameTraffic:
			repo := traffic.NewRepository(trafficdb.New(database))
			app := traffic.NewApp(repo, recorder, clock, newRand())
			services.Games[game] = traffic.NewService(app)
		}
	}

	return services, nil
}
