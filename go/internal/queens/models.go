package queens

import (
	"strconv"
	"strings"
	"time"
)

// BoardSize is the number of rows and columns on the board.
const BoardSize = 8

// TotalSolutions is the number of distinct eight queens solutions.
const TotalSolutions = 92

// AlgorithmType names a solver variant
type AlgorithmType string

const (
	AlgorithmSequential AlgorithmType = "SEQUENTIAL"
	AlgorithmThreaded   AlgorithmType = "THREADED"
)

// Board holds one queen per column; the value is the queen's row.
type Board [BoardSize]int

// Key returns the canonical storage form, e.g. "0,4,7,5,2,6,1,3".
func (b Board) Key() string {
	parts := make([]string, len(b))
	for i, row := range b {
		parts[i] = strconv.Itoa(row)
	}
	return strings.Join(parts, ",")
}

// ParseBoard is the inverse of Board.Key.
func ParseBoard(key string) (Board, bool) {
	var b Board
	parts := strings.Split(key, ",")
	if len(parts) != BoardSize {
		return b, false
	}
	for i, p := range parts {
		row, err := strconv.Atoi(p)
		if err != nil {
			return b, false
		}
		b[i] = row
	}
	return b, true
}

// Solution is a canonical solution and its discovery state for the current cycle
type Solution struct {
	ID      int64      `json:"id"`
	Board   Board      `json:"board"`
	Key     string     `json:"key"`
	Found   bool       `json:"found"`
	FoundBy *int64     `json:"foundBy,omitempty"`
	FoundAt *time.Time `json:"foundAt,omitempty"`
}

// AlgorithmPerformance is one timed solver run
type AlgorithmPerformance struct {
	ID                  int64         `json:"id"`
	AlgorithmType       AlgorithmType `json:"algorithmType"`
	ExecutionTimeMs     int64         `json:"executionTimeMs"`
	TotalSolutionsFound int           `json:"totalSolutionsFound"`
	ExecutedAt          time.Time     `json:"executedAt"`
}

// DiscoveryStatus is the outcome of recording a submitted solution
type DiscoveryStatus int

const (
	DiscoveryUnknown DiscoveryStatus = iota
	DiscoveryDuplicate
	DiscoveryAccepted
)

// Discovery reports what happened to a submitted solution.
type Discovery struct {
	Status     DiscoveryStatus
	FoundCount int
	Reset      bool
}

// Stats summarises progress through the current cycle
type Stats struct {
	TotalSolutions     int    `json:"totalSolutions"`
	FoundSolutions     int    `json:"foundSolutions"`
	RemainingSolutions int    `json:"remainingSolutions"`
	TotalPlayers       int    `json:"totalPlayers"`
	LastSequentialTime *int64 `json:"lastSequentialTime"`
	LastThreadedTime   *int64 `json:"lastThreadedTime"`
}
