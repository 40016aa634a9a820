package db

import (
	"time"
)

type TrafficPlayerResult struct {
	ID              int64
	PlayerName      string
	ReportedMaxFlow int32
	CorrectMaxFlow  int32
	IsCorrect       bool
	EkNanos         int64
	DinicNanos      int64
	CreatedAt       time.Time
}
