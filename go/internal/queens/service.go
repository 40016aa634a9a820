package queens

import (
	"context"
	"net/http"

	"github.com/mcdev12/minigames/go/internal/httputil"
)

// QueensApp defines what the service layer needs from the queens application
type QueensApp interface {
	Solve(ctx context.Context, algorithm string) (*SolveResponse, error)
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error)
	Stats(ctx context.Context) (*Stats, error)
	Solutions(ctx context.Context) ([]Solution, error)
	Reset(ctx context.Context) error
}

// Service exposes the eight queens HTTP API
type Service struct {
	app QueensApp
}

// NewService creates a new queens HTTP service
func NewService(app QueensApp) *Service {
	return &Service{
		app: app,
	}
}

// RegisterRoutes mounts the handlers under /api/queens
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/queens/solve/{algorithm}", s.handleSolve)
	mux.HandleFunc("POST /api/queens/submit", s.handleSubmit)
	mux.HandleFunc("GET /api/queens/stats", s.handleStats)
	mux.HandleFunc("GET /api/queens/solutions", s.handleSolutions)
	mux.HandleFunc("POST /api/queens/reset", s.handleReset)
	mux.HandleFunc("GET /api/queens/health", s.handleHealth)
}

func (s *Service) handleSolve(w http.ResponseWriter, r *http.Request) {
	resp, err := s.app.Solve(r.Context(), r.PathValue("algorithm"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (s *Service) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	resp, err := s.app.Submit(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (s *Service) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.app.Stats(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

func (s *Service) handleSolutions(w http.ResponseWriter, r *http.Request) {
	solutions, err := s.app.Solutions(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, solutions)
}

func (s *Service) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Reset(r.Context()); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Game reset successfully"})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteText(w, http.StatusOK, "Eight Queens service is running!")
}
