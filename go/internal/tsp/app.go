package tsp

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/minigames/go/internal/apperr"
	"github.com/mcdev12/minigames/go/internal/events"
)

// TSPRepository defines what the app layer needs from the repository
type TSPRepository interface {
	CreateSession(ctx context.Context, session Session) (*Session, error)
	GetSession(ctx context.Context, id int64) (*Session, error)
	SaveSelection(ctx context.Context, sessionID int64, cities []string, logs []AlgorithmTimeLog) error
	CreateGameResult(ctx context.Context, result GameResult) (*GameResult, error)
}

// EventRecorder stores game events for later publication
type EventRecorder interface {
	Record(ctx context.Context, game, eventType string, payload any) error
}

// App handles traveling salesman business logic
type App struct {
	repo   TSPRepository
	events EventRecorder
	clock  clockwork.Clock

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewApp creates a new tsp App
func NewApp(repo TSPRepository, recorder EventRecorder, clock clockwork.Clock, rng *rand.Rand) *App {
	return &App{
		repo:   repo,
		events: recorder,
		clock:  clock,
		rng:    rng,
	}
}

// Start opens a session with a random home city and distance matrix.
func (a *App) Start(ctx context.Context, req StartRequest) (*StartResponse, error) {
	playerName := strings.TrimSpace(req.PlayerName)
	if playerName == "" {
		return nil, fmt.Errorf("validation failed: %w", apperr.Invalid("Player name is required"))
	}

	a.rngMu.Lock()
	matrix := GenerateMatrix(a.rng)
	home := CityLabels[a.rng.IntN(len(CityLabels))]
	a.rngMu.Unlock()

	session, err := a.repo.CreateSession(ctx, Session{
		PlayerName:     playerName,
		HomeCity:       home,
		DistanceMatrix: matrix,
		CreatedAt:      a.clock.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	log.Info().Int64("session_id", session.ID).Str("player", playerName).Str("home", home).Msg("tsp session started")

	return &StartResponse{
		SessionID:      session.ID,
		PlayerName:     session.PlayerName,
		HomeCity:       session.HomeCity,
		CityLabels:     CityLabels,
		DistanceMatrix: session.DistanceMatrix,
	}, nil
}

// SelectCities stores the cities the route must visit and runs every algorithm over them.
func (a *App) SelectCities(ctx context.Context, req SelectCitiesRequest) (*SelectCitiesResponse, error) {
	session, err := a.getSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	home, _ := CityIndex(session.HomeCity)

	visit, err := resolveCities(req.Cities, home)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if len(visit) == 0 {
		return nil, fmt.Errorf("validation failed: %w", apperr.Invalid("Select at least one city other than the home city"))
	}

	now := a.clock.Now().UTC()
	results := make([]AlgorithmResult, 0, len(Algorithms))
	logs := make([]AlgorithmTimeLog, 0, len(Algorithms))
	for _, alg := range Algorithms {
		start := a.clock.Now()
		route := alg.Solve(session.DistanceMatrix, home, visit)
		elapsed := a.clock.Since(start)

		ms := float64(elapsed.Nanoseconds()) / float64(time.Millisecond)
		log.Info().
			Int64("session_id", session.ID).
			Str("algorithm", alg.Name).
			Int("cities", len(visit)).
			Str("time_ms", fmt.Sprintf("%.4f", ms)).
			Msg("tsp algorithm finished")

		results = append(results, AlgorithmResult{
			AlgorithmName: alg.Name,
			Path:          route.Labels(),
			TotalDistance: route.Distance,
			TimeMs:        ms,
		})
		logs = append(logs, AlgorithmTimeLog{
			SessionID:     session.ID,
			AlgorithmName: alg.Name,
			TimeTakenNs:   elapsed.Nanoseconds(),
			CreatedAt:     now,
		})
	}

	selected := labels(visit)
	if err := a.repo.SaveSelection(ctx, session.ID, selected, logs); err != nil {
		return nil, fmt.Errorf("failed to save selection: %w", err)
	}

	return &SelectCitiesResponse{
		SessionID:        session.ID,
		HomeCity:         session.HomeCity,
		SelectedCities:   selected,
		AlgorithmResults: results,
	}, nil
}

// Solve judges a proposed route against the best tour the algorithms find.
func (a *App) Solve(ctx context.Context, req SolveRequest) (*SolveResponse, error) {
	if len(req.ProposedPath) == 0 {
		return nil, fmt.Errorf("validation failed: %w", apperr.Invalid("Proposed path is required"))
	}
	if req.TimeTakenByUserMs < 0 {
		return nil, fmt.Errorf("validation failed: %w", apperr.Invalid("Time taken must not be negative"))
	}

	session, err := a.getSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	home, _ := CityIndex(session.HomeCity)

	path := make([]int, len(req.ProposedPath))
	for i, label := range req.ProposedPath {
		idx, ok := CityIndex(strings.ToUpper(strings.TrimSpace(label)))
		if !ok {
			return nil, fmt.Errorf("validation failed: %w", apperr.Invalid("Unknown city: %s", label))
		}
		path[i] = idx
	}

	visit := visitSet(path, home)
	if session.SelectedCities != nil && !slices.Equal(labels(visit), session.SelectedCities) {
		return nil, fmt.Errorf("validation failed: %w",
			apperr.Invalid("Proposed path must visit exactly the selected cities: %s", strings.Join(session.SelectedCities, ", ")))
	}

	var optimal Route
	for i, alg := range Algorithms {
		route := alg.Solve(session.DistanceMatrix, home, visit)
		if i == 0 || route.Distance < optimal.Distance {
			optimal = route
		}
	}

	submitted := PathDistance(session.DistanceMatrix, path)
	correct := isClosedTour(path, home, visit) && submitted == optimal.Distance

	resp := &SolveResponse{
		SessionID:         session.ID,
		PlayerName:        session.PlayerName,
		HomeCity:          session.HomeCity,
		Correct:           correct,
		SubmittedDistance: submitted,
		OptimalDistance:   optimal.Distance,
		OptimalPath:       optimal.Labels(),
		Message:           "Submitted route is not optimal.",
	}

	now := a.clock.Now().UTC()
	if correct {
		resp.Message = "Correct route identified."
		submittedRoute := Route{Path: path, Distance: submitted}
		if _, err := a.repo.CreateGameResult(ctx, GameResult{
			SessionID:         session.ID,
			CitiesSelected:    labels(visit),
			CalculatedPath:    submittedRoute.String(),
			TotalDistance:     submitted,
			TimeTakenByUserMs: req.TimeTakenByUserMs,
			CreatedAt:         now,
		}); err != nil {
			return nil, fmt.Errorf("failed to save result: %w", err)
		}
	}

	log.Info().
		Int64("session_id", session.ID).
		Bool("correct", correct).
		Int("submitted", submitted).
		Int("optimal", optimal.Distance).
		Msg("tsp route judged")

	if a.events != nil {
		if err := a.events.Record(ctx, events.GameTSP, events.TypeRouteSolved, events.RouteSolvedPayload{
			SessionID:         session.ID,
			PlayerName:        session.PlayerName,
			Correct:           correct,
			SubmittedDistance: submitted,
			OptimalDistance:   optimal.Distance,
			SolvedAt:          now,
		}); err != nil {
			log.Error().Err(err).Int64("session_id", session.ID).Msg("failed to record tsp event")
		}
	}

	return resp, nil
}

func (a *App) getSession(ctx context.Context, id int64) (*Session, error) {
	session, err := a.repo.GetSession(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, apperr.NotFound("Session not found: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if err := ValidateMatrix(session.DistanceMatrix); err != nil {
		return nil, fmt.Errorf("session %d has a corrupt distance matrix: %v", id, err)
	}
	return session, nil
}

// resolveCities maps labels to indices, dropping home and duplicates, sorted by label.
func resolveCities(cities []string, home int) ([]int, error) {
	seen := make(map[int]bool, len(cities))
	var out []int
	for _, label := range cities {
		idx, ok := CityIndex(strings.ToUpper(strings.TrimSpace(label)))
		if !ok {
			return nil, apperr.Invalid("Unknown city: %s", label)
		}
		if idx == home || seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, idx)
	}
	slices.Sort(out)
	return out, nil
}

// visitSet is every city on path other than home, deduplicated and sorted.
func visitSet(path []int, home int) []int {
	seen := make(map[int]bool, len(path))
	var out []int
	for _, c := range path {
		if c == home || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// isClosedTour reports whether path leaves home, visits each city once and returns.
func isClosedTour(path []int, home int, visit []int) bool {
	if len(path) != len(visit)+2 || path[0] != home || path[len(path)-1] != home {
		return false
	}
	inner := slices.Clone(path[1 : len(path)-1])
	slices.Sort(inner)
	return slices.Equal(inner, visit)
}

func labels(idx []int) []string {
	out := make([]string, len(idx))
	for i, c := range idx {
		out[i] = CityLabels[c]
	}
	return out
}
