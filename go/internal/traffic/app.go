package traffic

import (
	"context"
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

const recentResultsLimit = 20

// TrafficRepository defines what the app layer needs from the repository
type TrafficRepository interface {
	CreatePlayerResult(ctx context.Context, result PlayerResult) (*PlayerResult, error)
	ListRecentCorrectResults(ctx context.Context, limit int) ([]PlayerResult, error)
}

// EventRecorder stores game events for later publication
type EventRecorder interface {
	Record(ctx context.Context, game, eventType string, payload any) error
}

// App handles traffic simulation business logic
type App struct {
	repo   TrafficRepository
	events EventRecorder
	clock  clockwork.Clock

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewApp creates a new traffic App
func NewApp(repo TrafficRepository, recorder EventRecorder, clock clockwork.Clock, rng *rand.Rand) *App {
	return &App{
		repo:   repo,
		events: recorder,
		clock:  clock,
		rng:    rng,
	}
}

// NewGame generates a network with fresh capacities.
func (a *App) NewGame() Network {
	a.rngMu.Lock()
	defer a.rngMu.Unlock()
	return GenerateNetwork(a.rng)
}

// Solve runs both max flow algorithms on the matrix and judges the report.
func (a *App) Solve(ctx context.Context, req SolveRequest) (*SolveResponse, error) {
	if err := validateMatrix(req.Matrix); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	start := a.clock.Now()
	ek, flow := EdmondsKarp(req.Matrix, source, sink)
	ekTime := a.clock.Since(start)

	start = a.clock.Now()
	dinic := Dinic(req.Matrix, source, sink)
	dinicTime := a.clock.Since(start)

	log.Info().
		Int("edmonds_karp", ek).
		Dur("ek_elapsed", ekTime).
		Int("dinic", dinic).
		Dur("dinic_elapsed", dinicTime).
		Msg("traffic max flow computed")

	resp := &SolveResponse{
		EdmondsKarp: ek,
		Dinic:       dinic,
		EKTimeMs:    toMillis(ekTime),
		DinicTimeMs: toMillis(dinicTime),
		Reported:    req.Reported,
		Correct:     req.Reported == ek,
		FlowEdges:   flowEdges(req.Matrix, flow),
	}

	name := strings.TrimSpace(req.Name)
	if resp.Correct && name != "" {
		result, err := a.repo.CreatePlayerResult(ctx, PlayerResult{
			PlayerName:      name,
			ReportedMaxFlow: req.Reported,
			CorrectMaxFlow:  ek,
			IsCorrect:       true,
			EKNanos:         ekTime.Nanoseconds(),
			DinicNanos:      dinicTime.Nanoseconds(),
			CreatedAt:       a.clock.Now().UTC(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to save result: %w", err)
		}

		if a.events != nil {
			if err := a.events.Record(ctx, events.GameTraffic, events.TypeFlowSolved, events.FlowSolvedPayload{
				ResultID:   result.ID,
				PlayerName: result.PlayerName,
				MaxFlow:    ek,
				SolvedAt:   result.CreatedAt,
			}); err != nil {
				log.Error().Err(err).Int64("result_id", result.ID).Msg("failed to record traffic event")
			}
		}
	}

	return resp, nil
}

// RecentResults returns the latest correct answers.
func (a *App) RecentResults(ctx context.Context) ([]PlayerResult, error) {
	results, err := a.repo.ListRecentCorrectResults(ctx, recentResultsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get results: %w", err)
	}
	return results, nil
}

func validateMatrix(m [][]int) error {
	if len(m) != len(Nodes) {
		return apperr.Invalid("Matrix must be %dx%d", len(Nodes), len(Nodes))
	}
	for _, row := range m {
		if len(row) != len(Nodes) {
			return apperr.Invalid("Matrix must be %dx%d", len(Nodes), len(Nodes))
		}
		for _, c := range row {
			if c < 0 {
				return apperr.Invalid("Capacities must be non-negative")
			}
			if c > MaxSubmittedCapacity {
				return apperr.Invalid("Capacities must be at most %d", MaxSubmittedCapacity)
			}
		}
	}
	return nil
}

func flowEdges(capacity, flow [][]int) []FlowEdge {
	edges := []FlowEdge{}
	for i := range capacity {
		for j := range capacity[i] {
			if capacity[i][j] > 0 && flow[i][j] > 0 {
				edges = append(edges, FlowEdge{From: Nodes[i], To: Nodes[j], Flow: flow[i][j]})
			}
		}
	}
	return edges
}

func toMillis(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / float64(time.Millisecond)
}
