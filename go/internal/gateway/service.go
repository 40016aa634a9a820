package gateway

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/minigames/go/internal/httputil"
)

// Consumer feeds the connection manager from the message bus
type Consumer interface {
	Start(ctx context.Context) error
	Stop() error
	Connected() bool
}

// Service wires the websocket feed, the event consumer and the scoreboard
type Service struct {
	connectionManager *ConnectionManager
	wsHandler         *WebSocketHandler
	consumer          Consumer
	scoreboard        ScoreboardReader
}

// NewService creates the gateway. consumer may be nil when no bus is configured.
func NewService(cm *ConnectionManager, consumer Consumer, scoreboard ScoreboardReader) *Service {
	return &Service{
		connectionManager: cm,
		wsHandler:         NewWebSocketHandler(cm),
		consumer:          consumer,
		scoreboard:        scoreboard,
	}
}

// Start runs the connection manager and the consumer until ctx is cancelled
func (s *Service) Start(ctx context.Context) error {
	log.Info().Msg("starting games gateway service")

	go s.connectionManager.Start(ctx)

	if s.consumer != nil {
		go func() {
			if err := s.consumer.Start(ctx); err != nil {
				log.Error().Err(err).Msg("event consumer failed")
			}
		}()
	}

	<-ctx.Done()

	log.Info().Msg("games gateway service shutting down")
	return s.Stop()
}

// Stop shuts the consumer down
func (s *Service) Stop() error {
	if s.consumer != nil {
		if err := s.consumer.Stop(); err != nil {
			log.Error().Err(err).Msg("failed to stop event consumer")
		}
	}
	log.Info().Msg("games gateway service stopped")
	return nil
}

// RegisterRoutes mounts websocket, scoreboard, RPC and health routes
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.wsHandler.RegisterRoutes(mux)
	mux.HandleFunc("GET /api/scoreboard", s.handleScoreboard)
	mux.Handle(NewScoreboardHandler(s.scoreboard))
	mux.HandleFunc("GET /health", s.handleHealth)
	log.Info().Msg("games gateway routes registered")
}

func (s *Service) handleScoreboard(w http.ResponseWriter, r *http.Request) {
	board, err := s.scoreboard.Scoreboard(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, board)
}

type healthResponse struct {
	Status        string          `json:"status"`
	NATSConnected bool            `json:"nats_connected"`
	Connections   ConnectionStats `json:"connections"`
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:      "ok",
		Connections: s.connectionManager.Stats(),
	}
	code := http.StatusOK
	if s.consumer != nil {
		resp.NATSConnected = s.consumer.Connected()
		if !resp.NATSConnected {
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}
	httputil.WriteJSON(w, code, resp)
}
