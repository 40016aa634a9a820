package db

import (
	"encoding/json"
	"time"

	"github.com/sqlc-dev/pqtype"
)

type TspAlgorithmTimeLog struct {
	ID            int64
	SessionID     int64
	AlgorithmName string
	TimeTakenNs   int64
	CreatedAt     time.Time
}

type TspGameResult struct {
	ID                int64
	SessionID         int64
	CitiesSelected    json.RawMessage
	CalculatedPath    string
	TotalDistance     int32
	TimeTakenByUserMs int64
	CreatedAt         time.Time
}

type TspGameSession struct {
	ID             int64
	PlayerName     string
	HomeCity       string
	DistanceMatrix json.RawMessage
	SelectedCities pqtype.NullRawMessage
	CreatedAt      time.Time
}
