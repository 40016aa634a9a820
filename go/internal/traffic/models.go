package traffic

import "time"

// PlayerResult is a stored correct max flow answer
type PlayerResult struct {
	ID              int64     `json:"id"`
	PlayerName      string    `json:"playerName"`
	ReportedMaxFlow int       `json:"reportedMaxFlow"`
	CorrectMaxFlow  int       `json:"correctMaxFlow"`
	IsCorrect       bool      `json:"isCorrect"`
	EKNanos         int64     `json:"ekNanos"`
	DinicNanos      int64     `json:"dinicNanos"`
	CreatedAt       time.Time `json:"createdAt"`
}
