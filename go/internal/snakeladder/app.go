package snakeladder

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/minigames/go/internal/apperr"
	"github.com/mcdev12/minigames/go/internal/events"
)

// SnakeLadderRepository defines what the app layer needs from the repository
type SnakeLadderRepository interface {
	CreateGameResult(ctx context.Context, result GameResult) (*GameResult, error)
	ListGameResults(ctx context.Context) ([]GameResult, error)
}

// EventRecorder stores game events for later publication
type EventRecorder interface {
	Record(ctx context.Context, game, eventType string, payload any) error
}

// App handles snake and ladder business logic
type App struct {
	repo   SnakeLadderRepository
	events EventRecorder
	clock  clockwork.Clock

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewApp creates a new snake and ladder App
func NewApp(repo SnakeLadderRepository, recorder EventRecorder, clock clockwork.Clock, rng *rand.Rand) *App {
	return &App{
		repo:   repo,
		events: recorder,
		clock:  clock,
		rng:    rng,
	}
}

// NewBoard generates a playable board of the given size.
func (a *App) NewBoard(size int) (*Board, error) {
	if err := validateBoardSize(size); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	board, err := a.generate(size)
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// Play judges a player's minimum-throws guess and stores the round.
func (a *App) Play(ctx context.Context, req PlayRequest) (*GameResult, error) {
	if err := a.validatePlayRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var (
		board Board
		err   error
	)
	if req.Snakes != nil || req.Ladders != nil {
		board, err = NewBoard(req.BoardSize, req.Ladders, req.Snakes)
		if err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}
	} else {
		board, err = a.generate(req.BoardSize)
		if err != nil {
			return nil, err
		}
	}

	start := a.clock.Now()
	bfs := MinThrowsBFS(board)
	bfsTime := a.clock.Since(start)

	start = a.clock.Now()
	dijkstra := MinThrowsDijkstra(board)
	dijkstraTime := a.clock.Since(start)

	log.Info().
		Int("board_size", board.Size).
		Int("bfs", bfs).
		Dur("bfs_elapsed", bfsTime).
		Int("dijkstra", dijkstra).
		Dur("dijkstra_elapsed", dijkstraTime).
		Msg("snake and ladder board solved")

	correctAnswer := min(bfs, dijkstra)
	if correctAnswer < 0 {
		return nil, fmt.Errorf("validation failed: %w", apperr.Invalid("The final cell cannot be reached on this board"))
	}

	result, err := a.repo.CreateGameResult(ctx, GameResult{
		PlayerName:    strings.TrimSpace(req.PlayerName),
		BoardSize:     board.Size,
		CorrectAnswer: correctAnswer,
		PlayerAnswer:  req.PlayerAnswer,
		Correct:       req.PlayerAnswer == correctAnswer,
		BFSTime:       bfsTime.Nanoseconds(),
		DijkstraTime:  dijkstraTime.Nanoseconds(),
		CreatedAt:     a.clock.Now().UTC(),
		Snakes:        board.Snakes,
		Ladders:       board.Ladders,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save game result: %w", err)
	}

	if a.events != nil {
		if err := a.events.Record(ctx, events.GameSnakeLadder, events.TypeGamePlayed, events.GamePlayedPayload{
			ResultID:      result.ID,
			PlayerName:    result.PlayerName,
			BoardSize:     result.BoardSize,
			CorrectAnswer: result.CorrectAnswer,
			PlayerAnswer:  result.PlayerAnswer,
			Correct:       result.Correct,
			PlayedAt:      result.CreatedAt,
		}); err != nil {
			log.Error().Err(err).Int64("result_id", result.ID).Msg("failed to record snake and ladder event")
		}
	}

	return result, nil
}

// History returns every stored round, newest first.
func (a *App) History(ctx context.Context) ([]GameResult, error) {
	results, err := a.repo.ListGameResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	return results, nil
}

// generate draws boards until one has a reachable final cell.
func (a *App) generate(size int) (Board, error) {
	a.rngMu.Lock()
	defer a.rngMu.Unlock()

	for {
		board, err := GenerateBoard(size, a.rng)
		if err != nil {
			return Board{}, fmt.Errorf("failed to generate board: %w", err)
		}
		if MinThrowsBFS(board) > 0 {
			return board, nil
		}
	}
}

func (a *App) validatePlayRequest(req PlayRequest) error {
	if strings.TrimSpace(req.PlayerName) == "" {
		return apperr.Invalid("Player name is required")
	}
	if err := validateBoardSize(req.BoardSize); err != nil {
		return err
	}
	if req.PlayerAnswer < 1 {
		return apperr.Invalid("Answer must be at least 1")
	}
	return nil
}

func validateBoardSize(size int) error {
	if size < MinBoardSize || size > MaxBoardSize {
		return apperr.Invalid("Board size must be between %d and %d", MinBoardSize, MaxBoardSize)
	}
	return nil
}
