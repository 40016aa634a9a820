package tsp

import "time"

// Session is one player's game: a home city, a distance matrix and optionally the chosen cities
type Session struct {
	ID             int64
	PlayerName     string
	HomeCity       string
	DistanceMatrix [][]int
	SelectedCities []string
	CreatedAt      time.Time
}

// GameResult is a stored correct route
type GameResult struct {
	ID                int64
	SessionID         int64
	CitiesSelected    []string
	CalculatedPath    string
	TotalDistance     int
	TimeTakenByUserMs int64
	CreatedAt         time.Time
}

// AlgorithmTimeLog is one timed algorithm run for a session
type AlgorithmTimeLog struct {
	SessionID     int64
	AlgorithmName string
	TimeTakenNs   int64
	CreatedAt     time.Time
}
