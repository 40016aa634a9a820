package traffic

import (
	"context"
	"net/http"

	"github.com/mcdev12/minigames/go/internal/httputil"
)

// TrafficApp defines what the service layer needs from the traffic application
type TrafficApp interface {
	NewGame() Network
	Solve(ctx context.Context, req SolveRequest) (*SolveResponse, error)
	RecentResults(ctx context.Context) ([]PlayerResult, error)
}

// Service exposes the traffic simulation HTTP API
type Service struct {
	app TrafficApp
}

// NewService creates a new traffic HTTP service
func NewService(app TrafficApp) *Service {
	return &Service{
		app: app,
	}
}

// RegisterRoutes mounts the handlers under /api/game
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/game/new", s.handleNew)
	mux.HandleFunc("POST /api/game/solve", s.handleSolve)
	mux.HandleFunc("GET /api/game/results", s.handleResults)
	mux.HandleFunc("GET /api/game/health", s.handleHealth)
}

func (s *Service) handleNew(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, s.app.NewGame())
}

func (s *Service) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	resp, err := s.app.Solve(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (s *Service) handleResults(w http.ResponseWriter, r *http.Request) {
	results, err := s.app.RecentResults(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, results)
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteText(w, http.StatusOK, "Traffic Simulation service is running!")
}
