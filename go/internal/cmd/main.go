package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mcdev12/minigames/go/clients"
	"github.com/mcdev12/minigames/go/internal/dbconfig"
	"github.com/mcdev12/minigames/go/internal/events"
	"github.com/mcdev12/minigames/go/internal/storage"
)

var gamePrefixes = map[string]string{
	events.GameQueens:      "/api/queens",
	events.GameSnakeLadder: "/api/snake",
	events.GameHanoi:       "/api/tower",
	events.GameTSP:         "/api/game",
	events.GameTraffic:     "/api/game",
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "minigames",
		Short:        "Backends for the mini-game frontends",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newProbeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run every enabled game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			envCfg, err := loadEnv()
			if err != nil {
				return err
			}
			cfg, err := loadConfig(envCfg.ConfigPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			database, err := storage.Open(ctx, dbconfig.NewConfigFromEnv())
			if err != nil {
				return err
			}
			defer database.Close()

			services, err := setupServices(ctx, database, cfg, envCfg, clockwork.NewRealClock())
			if err != nil {
				return err
			}

			log.Info().Strs("games", cfg.enabledGames()).Msg("starting game servers")
			if err := runServers(ctx, cfg, services); err != nil {
				return err
			}
			log.Info().Msg("graceful shutdown complete")
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadEnv(); err != nil {
				return err
			}
			// Open runs pending migrations.
			database, err := storage.Open(cmd.Context(), dbconfig.NewConfigFromEnv())
			if err != nil {
				return err
			}
			return database.Close()
		},
	}
}

func newProbeCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Call the health endpoint of every enabled game",
		RunE: func(cmd *cobra.Command, args []string) error {
			envCfg, err := loadEnv()
			if err != nil {
				return err
			}
			cfg, err := loadConfig(envCfg.ConfigPath)
			if err != nil {
				return err
			}
			return probe(cmd.Context(), cfg, envCfg.ProbeHost, timeout)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "per-game request timeout")
	return cmd
}

func probe(ctx context.Context, cfg *Config, host string, timeout time.Duration) error {
	failed := 0
	for _, game := range cfg.enabledGames() {
		client := clients.NewGameClient(fmt.Sprintf("http://%s:%d", host, cfg.Games[game].Port), gamePrefixes[game])
		client.SetTimeout(timeout)

		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		text, err := client.Health(reqCtx)
		cancel()
		if err != nil {
			failed++
			log.Error().Err(err).Str("game", game).Msg("probe failed")
			continue
		}
		log.Info().Str("game", game).Str("status", text).Msg("probe ok")
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d games unhealthy", failed, len(cfg.enabledGames()))
	}
	return nil
}
