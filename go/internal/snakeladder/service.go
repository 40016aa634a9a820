package snakeladder

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mcdev12/minigames/go/internal/apperr"
	"github.com/mcdev12/minigames/go/internal/httputil"
)

// SnakeLadderApp defines what the service layer needs from the application
type SnakeLadderApp interface {
	NewBoard(size int) (*Board, error)
	Play(ctx context.Context, req PlayRequest) (*GameResult, error)
	History(ctx context.Context) ([]GameResult, error)
}

// Service exposes the snake and ladder HTTP API
type Service struct {
	app SnakeLadderApp
}

// NewService creates a new snake and ladder HTTP service
func NewService(app SnakeLadderApp) *Service {
	return &Service{
		app: app,
	}
}

// RegisterRoutes mounts the handlers under /api/snake
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/snake/play", s.handlePlay)
	mux.HandleFunc("GET /api/snake/history", s.handleHistory)
	mux.HandleFunc("GET /api/snake/board", s.handleBoard)
	mux.HandleFunc("GET /api/snake/health", s.handleHealth)
}

func (s *Service) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	result, err := s.app.Play(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (s *Service) handleHistory(w http.ResponseWriter, r *http.Request) {
	results, err := s.app.History(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, results)
}

func (s *Service) handleBoard(w http.ResponseWriter, r *http.Request) {
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil {
		httputil.WriteError(w, r, apperr.Invalid("Board size must be a number"))
		return
	}

	board, err := s.app.NewBoard(size)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, board)
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteText(w, http.StatusOK, "Snake and Ladder service is running!")
}
