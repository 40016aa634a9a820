package hanoi

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/minigames/go/internal/apperr"
	"github.com/mcdev12/minigames/go/internal/events"
)

// HanoiRepository defines what the app layer needs from the repository
type HanoiRepository interface {
	CreateRound(ctx context.Context, round GameRound, runs []AlgorithmPerformance) (*GameRound, error)
	GetRound(ctx context.Context, id int64) (*GameRound, error)
	CreatePlayerAnswer(ctx context.Context, answer PlayerAnswer) (*PlayerAnswer, error)
	ListPerformance(ctx context.Context) ([]AlgorithmPerformance, error)
	ListPerformanceByAlgorithm(ctx context.Context, name string) ([]AlgorithmPerformance, error)
}

// EventRecorder stores game events for later publication
type EventRecorder interface {
	Record(ctx context.Context, game, eventType string, payload any) error
}

// App handles tower of hanoi business logic
type App struct {
	repo   HanoiRepository
	events EventRecorder
	clock  clockwork.Clock

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewApp creates a new hanoi App
func NewApp(repo HanoiRepository, recorder EventRecorder, clock clockwork.Clock, rng *rand.Rand) *App {
	return &App{
		repo:   repo,
		events: recorder,
		clock:  clock,
		rng:    rng,
	}
}

// Start draws a disk count, races both algorithms for the peg count and stores the round.
func (a *App) Start(ctx context.Context, req StartRequest) (*StartResponse, error) {
	if req.NumberOfPegs != 3 && req.NumberOfPegs != 4 {
		return nil, fmt.Errorf("validation failed: %w", apperr.Invalid("Number of pegs must be 3 or 4"))
	}

	a.rngMu.Lock()
	disks := MinDisks + a.rng.IntN(MaxDisks-MinDisks+1)
	a.rngMu.Unlock()

	now := a.clock.Now().UTC()
	solvers := SolversFor(req.NumberOfPegs)
	var results [2]AlgorithmResult
	runs := make([]AlgorithmPerformance, 0, len(solvers))

	for i, solver := range solvers {
		start := a.clock.Now()
		moves := solver.Solve(disks)
		elapsed := a.clock.Since(start)

		results[i] = AlgorithmResult{
			AlgorithmName:       solver.Name,
			MinimumMoves:        len(moves),
			ExecutionTimeNanos:  elapsed.Nanoseconds(),
			ExecutionTimeMillis: toMillis(elapsed.Nanoseconds()),
			MoveSequence:        FormatMoves(moves),
		}
		runs = append(runs, AlgorithmPerformance{
			AlgorithmName:      solver.Name,
			NumberOfDisks:      disks,
			NumberOfPegs:       req.NumberOfPegs,
			MinimumMoves:       len(moves),
			ExecutionTimeNanos: elapsed.Nanoseconds(),
			CreatedAt:          now,
		})

		log.Info().
			Str("algorithm", solver.Name).
			Int("disks", disks).
			Int("moves", len(moves)).
			Dur("elapsed", elapsed).
			Msg("hanoi algorithm finished")
	}

	round, err := a.repo.CreateRound(ctx, GameRound{
		NumberOfDisks:       disks,
		NumberOfPegs:        req.NumberOfPegs,
		CorrectMinimumMoves: results[0].MinimumMoves,
		CorrectMoveSequence: results[0].MoveSequence,
		CreatedAt:           now,
	}, runs)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	return &StartResponse{
		GameRoundID:      round.ID,
		NumberOfDisks:    round.NumberOfDisks,
		NumberOfPegs:     round.NumberOfPegs,
		Message:          "Game started! Try to solve the puzzle.",
		Algorithm1Result: results[0],
		Algorithm2Result: results[1],
	}, nil
}

// SubmitAnswer judges a player's move count and sequence against the round.
func (a *App) SubmitAnswer(ctx context.Context, req SubmitAnswerRequest) (*SubmitAnswerResponse, error) {
	if err := a.validateSubmitAnswerRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	round, err := a.repo.GetRound(ctx, *req.GameRoundID)
	if errors.Is(err, ErrRoundNotFound) {
		return nil, apperr.NotFound("Game round not found with ID: %d", *req.GameRoundID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game round: %w", err)
	}

	playerName := strings.TrimSpace(req.PlayerName)
	countCorrect := req.PlayerMinimumMoves == round.CorrectMinimumMoves
	sequenceValid := a.isValidSequence(round, req.PlayerMinimumMoves, req.PlayerMoveSequence)

	resp := &SubmitAnswerResponse{
		PlayerName:          playerName,
		CorrectMinimumMoves: round.CorrectMinimumMoves,
		CorrectMoveSequence: round.CorrectMoveSequence,
		PlayerMinimumMoves:  req.PlayerMinimumMoves,
		PlayerMoveSequence:  req.PlayerMoveSequence,
	}
	switch {
	case countCorrect && sequenceValid:
		resp.Result = ResultWin
		resp.IsCorrect = true
		resp.Message = "Congratulations! You solved it correctly!"
	case countCorrect:
		resp.Result = ResultDraw
		resp.Message = "Correct number of moves, but check your sequence!"
	default:
		resp.Result = ResultLose
		resp.Message = "Incorrect answer. Try again!"
	}

	now := a.clock.Now().UTC()
	if resp.IsCorrect {
		if _, err := a.repo.CreatePlayerAnswer(ctx, PlayerAnswer{
			GameRoundID:        round.ID,
			PlayerName:         playerName,
			PlayerMinimumMoves: req.PlayerMinimumMoves,
			PlayerMoveSequence: req.PlayerMoveSequence,
			IsCorrect:          true,
			CreatedAt:          now,
		}); err != nil {
			return nil, fmt.Errorf("failed to save answer: %w", err)
		}
	}

	log.Info().
		Int64("round_id", round.ID).
		Str("player", playerName).
		Str("result", string(resp.Result)).
		Msg("hanoi answer judged")

	if a.events != nil {
		if err := a.events.Record(ctx, events.GameHanoi, events.TypeAnswerSubmitted, events.AnswerSubmittedPayload{
			GameRoundID:   round.ID,
			PlayerName:    playerName,
			Result:        string(resp.Result),
			NumberOfDisks: round.NumberOfDisks,
			NumberOfPegs:  round.NumberOfPegs,
			SubmittedAt:   now,
		}); err != nil {
			log.Error().Err(err).Int64("round_id", round.ID).Msg("failed to record hanoi event")
		}
	}

	return resp, nil
}

// PerformanceStats returns one aggregate per algorithm name.
func (a *App) PerformanceStats(ctx context.Context) ([]PerformanceStats, error) {
	runs, err := a.repo.ListPerformance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get performance stats: %w", err)
	}

	var (
		stats []PerformanceStats
		group []AlgorithmPerformance
	)
	for i, run := range runs {
		group = append(group, run)
		if i == len(runs)-1 || runs[i+1].AlgorithmName != run.AlgorithmName {
			stats = append(stats, aggregate(group))
			group = nil
		}
	}
	if stats == nil {
		stats = []PerformanceStats{}
	}
	return stats, nil
}

// PerformanceStatsFor aggregates a single algorithm.
func (a *App) PerformanceStatsFor(ctx context.Context, name string) (*PerformanceStats, error) {
	runs, err := a.repo.ListPerformanceByAlgorithm(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get performance stats: %w", err)
	}
	if len(runs) == 0 {
		return nil, apperr.NotFound("No performance records found for algorithm: %s", name)
	}

	stats := aggregate(runs)
	return &stats, nil
}

func aggregate(runs []AlgorithmPerformance) PerformanceStats {
	stats := PerformanceStats{
		AlgorithmName: runs[0].AlgorithmName,
		NumberOfPegs:  runs[0].NumberOfPegs,
		Records:       make([]PerformanceRecord, 0, len(runs)),
	}

	var total int64
	for i, run := range runs {
		stats.Records = append(stats.Records, PerformanceRecord{
			GameRoundID:         run.GameRoundID,
			NumberOfDisks:       run.NumberOfDisks,
			MinimumMoves:        run.MinimumMoves,
			ExecutionTimeNanos:  run.ExecutionTimeNanos,
			ExecutionTimeMillis: toMillis(run.ExecutionTimeNanos),
		})
		total += run.ExecutionTimeNanos
		if i == 0 || run.ExecutionTimeNanos < stats.MinExecutionTimeNanos {
			stats.MinExecutionTimeNanos = run.ExecutionTimeNanos
		}
		if run.ExecutionTimeNanos > stats.MaxExecutionTimeNanos {
			stats.MaxExecutionTimeNanos = run.ExecutionTimeNanos
		}
	}
	stats.AverageExecutionTimeMillis = toMillis(total) / float64(len(runs))
	return stats
}

func (a *App) isValidSequence(round *GameRound, claimed int, sequence string) bool {
	moves, ok := ParseMoves(sequence, round.NumberOfPegs)
	if !ok || len(moves) != claimed {
		return false
	}
	return Simulate(round.NumberOfDisks, round.NumberOfPegs, Destination(round.NumberOfPegs), moves)
}

func (a *App) validateSubmitAnswerRequest(req SubmitAnswerRequest) error {
	switch {
	case req.GameRoundID == nil:
		return apperr.Invalid("Game round ID is required")
	case strings.TrimSpace(req.PlayerName) == "":
		return apperr.Invalid("Player name is required")
	case req.PlayerMinimumMoves < 1:
		return apperr.Invalid("Number of moves must be at least 1")
	case strings.TrimSpace(req.PlayerMoveSequence) == "":
		return apperr.Invalid("Move sequence is required")
	}
	return nil
}

func toMillis(nanos int64) float64 {
	return float64(nanos) / float64(time.Millisecond)
}
