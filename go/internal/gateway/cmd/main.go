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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mcdev12/minigames/go/internal/dbconfig"
	"github.com/mcdev12/minigames/go/internal/gateway"
	"github.com/mcdev12/minigames/go/internal/httputil"
)

type config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Port     string `env:"GATEWAY_PORT" envDefault:"8095"`
	NATSURL  string `env:"NATS_URL" envDefault:"nats://localhost:4222"`
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

	// The scoreboard reads Postgres directly through pgx.
	dbCfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, dbCfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create database pool")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	log.Info().
		Str("database", dbCfg.Redacted()).
		Str("nats_url", cfg.NATSURL).
		Str("port", cfg.Port).
		Msg("starting games gateway")

	cm := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())

	jsCfg := gateway.DefaultJetStreamConsumerConfig()
	jsCfg.URL = cfg.NATSURL
	consumer, err := gateway.NewEventConsumer(ctx, cm, jsCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event consumer")
	}

	svc := gateway.NewService(cm, consumer, gateway.NewPgxScoreboard(pool, clockwork.NewRealClock()))
	mux := http.NewServeMux()
	svc.RegisterRoutes(mux)
	srv := httputil.NewServer(":"+cfg.Port, mux)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return svc.Start(gctx)
	})
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("gateway listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("gateway exited unexpectedly")
		return
	}
	log.Info().Msg("gateway stopped")
}
