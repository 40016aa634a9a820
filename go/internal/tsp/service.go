package tsp

import (
	"context"
	"net/http"

	"github.com/mcdev12/minigames/go/internal/httputil"
)

// TSPApp defines what the service layer needs from the tsp application
type TSPApp interface {
	Start(ctx context.Context, req StartRequest) (*StartResponse, error)
	SelectCities(ctx context.Context, req SelectCitiesRequest) (*SelectCitiesResponse, error)
	Solve(ctx context.Context, req SolveRequest) (*SolveResponse, error)
}

// Service exposes the traveling salesman HTTP API
type Service struct {
	app TSPApp
}

// NewService creates a new tsp HTTP service
func NewService(app TSPApp) *Service {
	return &Service{
		app: app,
	}
}

// RegisterRoutes mounts the handlers under /api/game
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/game/start", s.handleStart)
	mux.HandleFunc("POST /api/game/select-cities", s.handleSelectCities)
	mux.HandleFunc("POST /api/game/solve", s.handleSolve)
	mux.HandleFunc("GET /api/game/health", s.handleHealth)
}

func (s *Service) handleStart(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	resp, err := s.app.Start(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (s *Service) handleSelectCities(w http.ResponseWriter, r *http.Request) {
	var req SelectCitiesRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	resp, err := s.app.SelectCities(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
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

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteText(w, http.StatusOK, "Traveling Salesman service is running!")
}
