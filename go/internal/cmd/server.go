package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mcdev12/minigames/go/internal/httputil"
)

const shutdownTimeout = 10 * time.Second

func setupServers(cfg *Config, services *Services) map[string]*http.Server {
	servers := make(map[string]*http.Server, len(services.Games))
	for game, svc := range services.Games {
		mux := http.NewServeMux()
		svc.RegisterRoutes(mux)
		servers[game] = httputil.NewServer(fmt.Sprintf(":%d", cfg.Games[game].Port), mux)
	}
	return servers
}

// runServers serves every game and the janitor until ctx is cancelled or one of them fails.
func runServers(ctx context.Context, cfg *Config, services *Services) error {
	g, gctx := errgroup.WithContext(ctx)

	for game, srv := range setupServers(cfg, services) {
		g.Go(func() error {
			log.Info().Str("game", game).Str("addr", srv.Addr).Msg("game server listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("%s server: %w", game, err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("%s shutdown: %w", game, err)
			}
			log.Info().Str("game", game).Msg("game server stopped")
			return nil
		})
	}

	if cfg.Janitor.Enabled {
		g.Go(func() error {
			return services.Janitor.Run(gctx)
		})
	}

	return g.Wait()
}
