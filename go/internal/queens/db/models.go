package db

import (
	"database/sql"
	"time"
)

type QueensAlgorithmPerformance struct {
	ID                  int64
	AlgorithmType       string
	ExecutionTimeMs     int64
	TotalSolutionsFound int32
	ExecutedAt          time.Time
}

type QueensPlayer struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

type QueensSolution struct {
	ID           int64
	SolutionData string
	IsFound      bool
	FoundBy      sql.NullInt64
	FoundAt      sql.NullTime
}

type QueensSubmission struct {
	ID          int64
	PlayerID    int64
	SolutionID  int64
	SubmittedAt time.Time
}
