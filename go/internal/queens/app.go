package queens

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/minigames/go/internal/apperr"
	"github.com/mcdev12/minigames/go/internal/events"
)

// QueensRepository defines what the app layer needs from the repository
type QueensRepository interface {
	CountSolutions(ctx context.Context) (int, error)
	CountFoundSolutions(ctx context.Context) (int, error)
	CountPlayers(ctx context.Context) (int, error)
	InsertSolutions(ctx context.Context, boards []Board) (int, error)
	ListSolutions(ctx context.Context) ([]Solution, error)
	RecordDiscovery(ctx context.Context, playerName, key string, at time.Time) (*Discovery, error)
	ResetSolutions(ctx context.Context) error
	CreateAlgorithmPerformance(ctx context.Context, perf AlgorithmPerformance) (*AlgorithmPerformance, error)
	GetLatestAlgorithmPerformance(ctx context.Context, algorithm AlgorithmType) (*AlgorithmPerformance, error)
}

// EventRecorder stores game events for later publication
type EventRecorder interface {
	Record(ctx context.Context, game, eventType string, payload any) error
}

// App handles eight queens business logic
type App struct {
	repo   QueensRepository
	events EventRecorder
	clock  clockwork.Clock
}

// NewApp creates a new queens App
func NewApp(repo QueensRepository, recorder EventRecorder, clock clockwork.Clock) *App {
	return &App{
		repo:   repo,
		events: recorder,
		clock:  clock,
	}
}

// EnsureSolutions seeds the canonical solutions when none are stored yet.
func (a *App) EnsureSolutions(ctx context.Context) error {
	count, err := a.repo.CountSolutions(ctx)
	if err != nil {
		return fmt.Errorf("failed to check solutions: %w", err)
	}
	if count > 0 {
		log.Debug().Int("solutions", count).Msg("queens solutions already seeded")
		return nil
	}

	inserted, err := a.repo.InsertSolutions(ctx, SolveSequential())
	if err != nil {
		return fmt.Errorf("failed to seed solutions: %w", err)
	}

	log.Info().Int("inserted", inserted).Msg("seeded queens solutions")
	return nil
}

// Solve runs the named solver, times it and records the run.
func (a *App) Solve(ctx context.Context, algorithm string) (*SolveResponse, error) {
	algorithmType := AlgorithmType(strings.ToUpper(strings.TrimSpace(algorithm)))

	start := a.clock.Now()
	var (
		solutions []Board
		message   string
		err       error
	)
	switch algorithmType {
	case AlgorithmSequential:
		solutions = SolveSequential()
		message = "Sequential algorithm completed successfully"
	case AlgorithmThreaded:
		solutions, err = SolveThreaded(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to run threaded solver: %w", err)
		}
		message = "Threaded algorithm completed successfully"
	default:
		return nil, fmt.Errorf("validation failed: %w", apperr.Invalid("Unknown algorithm type: %s", algorithm))
	}
	elapsed := a.clock.Since(start)

	perf, err := a.repo.CreateAlgorithmPerformance(ctx, AlgorithmPerformance{
		AlgorithmType:       algorithmType,
		ExecutionTimeMs:     elapsed.Milliseconds(),
		TotalSolutionsFound: len(solutions),
		ExecutedAt:          a.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record %s run: %w", algorithmType, err)
	}

	log.Info().
		Str("algorithm", string(algorithmType)).
		Int("solutions", len(solutions)).
		Dur("elapsed", elapsed).
		Msg("queens solver finished")

	return &SolveResponse{
		AlgorithmType:   perf.AlgorithmType,
		ExecutionTimeMs: perf.ExecutionTimeMs,
		TotalSolutions:  perf.TotalSolutionsFound,
		Message:         message,
	}, nil
}

// Submit checks a player's board and records it when it is a new discovery.
func (a *App) Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	if err := a.validateSubmitRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var board Board
	copy(board[:], req.QueenPositions)
	playerName := strings.TrimSpace(req.PlayerName)
	now := a.clock.Now().UTC()

	discovery, err := a.repo.RecordDiscovery(ctx, playerName, board.Key(), now)
	if err != nil {
		return nil, fmt.Errorf("failed to record submission: %w", err)
	}

	resp := &SubmitResponse{
		FoundCount:     discovery.FoundCount,
		TotalSolutions: TotalSolutions,
	}

	switch discovery.Status {
	case DiscoveryUnknown:
		resp.Message = "This is not a valid 8-queens solution"
		return resp, nil
	case DiscoveryDuplicate:
		resp.Message = "This solution was already discovered! Try to find a different one."
		return resp, nil
	}

	resp.Accepted = true
	if discovery.Reset {
		resp.Message = "Congratulations! You found the last solution! Game has been reset."
	} else {
		resp.Message = "New solution accepted! Well done!"
	}

	log.Info().
		Str("player", playerName).
		Str("solution", board.Key()).
		Int("found_count", discovery.FoundCount).
		Bool("reset", discovery.Reset).
		Msg("queens solution accepted")

	a.record(ctx, events.TypeSolutionFound, events.SolutionFoundPayload{
		PlayerName: playerName,
		Solution:   board.Key(),
		FoundCount: discovery.FoundCount,
		FoundAt:    now,
	})
	if discovery.Reset {
		a.record(ctx, events.TypeGameReset, events.GameResetPayload{
			Reason:  "all solutions found",
			ResetAt: now,
		})
	}

	return resp, nil
}

// Solutions lists the canonical solutions with their discovery state.
func (a *App) Solutions(ctx context.Context) ([]Solution, error) {
	solutions, err := a.repo.ListSolutions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list solutions: %w", err)
	}
	return solutions, nil
}

// Stats reports progress through the current discovery cycle.
func (a *App) Stats(ctx context.Context) (*Stats, error) {
	found, err := a.repo.CountFoundSolutions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	players, err := a.repo.CountPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	stats := &Stats{
		TotalSolutions:     TotalSolutions,
		FoundSolutions:     found,
		RemainingSolutions: TotalSolutions - found,
		TotalPlayers:       players,
	}

	if stats.LastSequentialTime, err = a.lastRunMillis(ctx, AlgorithmSequential); err != nil {
		return nil, err
	}
	if stats.LastThreadedTime, err = a.lastRunMillis(ctx, AlgorithmThreaded); err != nil {
		return nil, err
	}
	return stats, nil
}

// Reset clears every found flag.
func (a *App) Reset(ctx context.Context) error {
	if err := a.repo.ResetSolutions(ctx); err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}

	log.Info().Msg("queens game reset")
	a.record(ctx, events.TypeGameReset, events.GameResetPayload{
		Reason:  "manual reset",
		ResetAt: a.clock.Now().UTC(),
	})
	return nil
}

func (a *App) lastRunMillis(ctx context.Context, algorithm AlgorithmType) (*int64, error) {
	perf, err := a.repo.GetLatestAlgorithmPerformance(ctx, algorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to get last %s run: %w", algorithm, err)
	}
	if perf == nil {
		return nil, nil
	}
	ms := perf.ExecutionTimeMs
	return &ms, nil
}

// record emits an event; failures are logged since the submission is already committed.
func (a *App) record(ctx context.Context, eventType string, payload any) {
	if a.events == nil {
		return
	}
	if err := a.events.Record(ctx, events.GameQueens, eventType, payload); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to record queens event")
	}
}

func (a *App) validateSubmitRequest(req SubmitRequest) error {
	if strings.TrimSpace(req.PlayerName) == "" {
		return apperr.Invalid("Player name is required")
	}
	if len(req.QueenPositions) != BoardSize {
		return apperr.Invalid("Must provide exactly 8 queen positions")
	}
	if !IsValidSolution(req.QueenPositions) {
		return apperr.Invalid("Invalid solution - queens attack each other")
	}
	return nil
}
