package hanoi

import "time"

const (
	MinDisks = 5
	MaxDisks = 10
)

// Result is the verdict for a submitted answer
type Result string

const (
	ResultWin  Result = "WIN"
	ResultDraw Result = "DRAW"
	ResultLose Result = "LOSE"
)

// GameRound is one generated puzzle and its reference answer
type GameRound struct {
	ID                  int64
	NumberOfDisks       int
	NumberOfPegs        int
	CorrectMinimumMoves int
	CorrectMoveSequence string
	CreatedAt           time.Time
}

// AlgorithmPerformance is one timed algorithm run for a round
type AlgorithmPerformance struct {
	ID                 int64
	GameRoundID        int64
	AlgorithmName      string
	NumberOfDisks      int
	NumberOfPegs       int
	MinimumMoves       int
	ExecutionTimeNanos int64
	CreatedAt          time.Time
}

// PlayerAnswer is a stored winning submission
type PlayerAnswer struct {
	ID                 int64
	GameRoundID        int64
	PlayerName         string
	PlayerMinimumMoves int
	PlayerMoveSequence string
	IsCorrect          bool
	CreatedAt          time.Time
}
