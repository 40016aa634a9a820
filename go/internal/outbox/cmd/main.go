package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mcdev12/minigames/go/internal/dbconfig"
	"github.com/mcdev12/minigames/go/internal/httputil"
	"github.com/mcdev12/minigames/go/internal/outbox"
	outboxdb "github.com/mcdev12/minigames/go/internal/outbox/db"
	"github.com/mcdev12/minigames/go/internal/storage"
)

type config struct {
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	Publisher        string        `env:"PUBLISHER" envDefault:"jetstream"`
	NATSURL          string        `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	HTTPPort         string        `env:"OUTBOX_HTTP_PORT" envDefault:"8090"`
	FallbackInterval time.Duration `env:"FALLBACK_INTERVAL" envDefault:"30s"`
	PollInterval     time.Duration `env:"POLL_INTERVAL" envDefault:"5s"`
	StallThreshold   time.Duration `env:"STALL_THRESHOLD" envDefault:"5m"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("parse config")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbCfg := dbconfig.NewConfigFromEnv()
	database, err := storage.Open(ctx, dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer database.Close()

	clock := clockwork.NewRealClock()
	app := outbox.NewApp(outbox.NewRepository(outboxdb.New(database)), clock)
	metrics := outbox.NewMetrics(clock)

	var (
		publisher outbox.EventPublisher = outbox.NewLogPublisher()
		natsConn  *nats.Conn
	)
	if cfg.Publisher == "jetstream" {
		jsCfg := outbox.DefaultJetStreamConfig()
		jsCfg.URL = cfg.NATSURL
		js, err := outbox.NewJetStreamPublisher(ctx, jsCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("create JetStream publisher")
		}
		defer func() {
			if err := js.Close(); err != nil {
				log.Error().Err(err).Msg("close publisher")
			}
		}()
		publisher = js
		natsConn = js.Conn()
	}

	g, gctx := errgroup.WithContext(ctx)

	// LISTEN/NOTIFY needs Postgres; sqlite falls back to polling.
	var runner outbox.Runner
	if dbCfg.Driver == dbconfig.DriverPostgres {
		lcfg := outbox.DefaultListenerConfig()
		lcfg.DatabaseURL = dbCfg.DSN()
		lcfg.FallbackInterval = cfg.FallbackInterval
		listener, err := outbox.NewListener(app, publisher, metrics, lcfg, clock)
		if err != nil {
			log.Fatal().Err(err).Msg("create outbox listener")
		}
		runner = listener
		g.Go(func() error {
			log.Info().Msg("starting realtime listener")
			return listener.Start(gctx)
		})
	} else {
		wcfg := outbox.DefaultWorkerConfig()
		wcfg.PollInterval = cfg.PollInterval
		worker := outbox.NewWorker(app, publisher, metrics, wcfg, clock)
		if err := worker.Start(gctx); err != nil {
			log.Fatal().Err(err).Msg("start outbox worker")
		}
		runner = worker
		g.Go(func() error {
			<-gctx.Done()
			if worker.Running() {
				return worker.Stop()
			}
			return nil
		})
	}

	mux := http.NewServeMux()
	outbox.NewHealthChecker(app, database, natsConn, runner, metrics, clock, cfg.StallThreshold).RegisterRoutes(mux)
	srv := httputil.NewServer(":"+cfg.HTTPPort, mux)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("outbox health server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("outbox relay exited unexpectedly")
		return
	}
	log.Info().Msg("graceful shutdown complete")
}
