package db

import (
	"time"
)

type HanoiAlgorithmPerformance struct {
	ID                 int64
	GameRoundID        int64
	AlgorithmName      string
	NumberOfDisks      int32
	NumberOfPegs       int32
	MinimumMoves       int32
	ExecutionTimeNanos int64
	CreatedAt          time.Time
}

type HanoiGameRound struct {
	ID                  int64
	NumberOfDisks       int32
	NumberOfPegs        int32
	CorrectMinimumMoves int32
	CorrectMoveSequence string
	CreatedAt           time.Time
}

type HanoiPlayerAnswer struct {
	ID                 int64
	GameRoundID        int64
	PlayerName         string
	PlayerMinimumMoves int32
	PlayerMoveSequence string
	IsCorrect          bool
	CreatedAt          time.Time
}
