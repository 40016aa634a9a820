package hanoi

import (
	"context"
	"net/http"

	"github.com/mcdev12/minigames/go/internal/httputil"
)

// HanoiApp defines what the service layer needs from the hanoi application
type HanoiApp interface {
	Start(ctx context.Context, req StartRequest) (*StartResponse, error)
	SubmitAnswer(ctx context.Context, req SubmitAnswerRequest) (*SubmitAnswerResponse, error)
	PerformanceStats(ctx context.Context) ([]PerformanceStats, error)
	PerformanceStatsFor(ctx context.Context, name string) (*PerformanceStats, error)
}

// Service exposes the tower of hanoi HTTP API
type Service struct {
	app HanoiApp
}

// NewService creates a new hanoi HTTP service
func NewService(app HanoiApp) *Service {
	return &Service{
		app: app,
	}
}

// RegisterRoutes mounts the handlers under /api/tower
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/tower/start", s.handleStart)
	mux.HandleFunc("POST /api/tower/submit-answer", s.handleSubmitAnswer)
	mux.HandleFunc("GET /api/tower/performance/stats", s.handlePerformanceStats)
	mux.HandleFunc("GET /api/tower/performance/stats/{algorithmName}", s.handlePerformanceStatsFor)
	mux.HandleFunc("GET /api/tower/health", s.handleHealth)
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
	httputil.WriteJSON(w, http.StatusCreated, resp)
}

func (s *Service) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswerRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	resp, err := s.app.SubmitAnswer(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (s *Service) handlePerformanceStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.app.PerformanceStats(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

func (s *Service) handlePerformanceStatsFor(w http.ResponseWriter, r *http.Request) {
	stats, err := s.app.PerformanceStatsFor(r.Context(), r.PathValue("algorithmName"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteText(w, http.StatusOK, "Tower of Hanoi service is running!")
}
