package hanoi

// StartRequest opens a new round
type StartRequest struct {
	NumberOfPegs int `json:"numberOfPegs"`
}

// AlgorithmResult is one algorithm's answer for a round
type AlgorithmResult struct {
	AlgorithmName       string  `json:"algorithmName"`
	MinimumMoves        int     `json:"minimumMoves"`
	ExecutionTimeNanos  int64   `json:"executionTimeNanos"`
	ExecutionTimeMillis float64 `json:"executionTimeMillis"`
	MoveSequence        string  `json:"moveSequence"`
}

// StartResponse describes a new round
type StartResponse struct {
	GameRoundID      int64           `json:"gameRoundId"`
	NumberOfDisks    int             `json:"numberOfDisks"`
	NumberOfPegs     int             `json:"numberOfPegs"`
	Message          string          `json:"message"`
	Algorithm1Result AlgorithmResult `json:"algorithm1Result"`
	Algorithm2Result AlgorithmResult `json:"algorithm2Result"`
}

// SubmitAnswerRequest is a player's answer for a round. GameRoundID is a
// pointer so a missing id can be told apart from zero.
type SubmitAnswerRequest struct {
	GameRoundID        *int64 `json:"gameRoundId"`
	PlayerName         string `json:"playerName"`
	PlayerMinimumMoves int    `json:"playerMinimumMoves"`
	PlayerMoveSequence string `json:"playerMoveSequence"`
}

// SubmitAnswerResponse is the verdict on a player's answer
type SubmitAnswerResponse struct {
	PlayerName          string `json:"playerName"`
	IsCorrect           bool   `json:"isCorrect"`
	Result              Result `json:"result"`
	Message             string `json:"message"`
	CorrectMinimumMoves int    `json:"correctMinimumMoves"`
	CorrectMoveSequence string `json:"correctMoveSequence"`
	PlayerMinimumMoves  int    `json:"playerMinimumMoves"`
	PlayerMoveSequence  string `json:"playerMoveSequence"`
}

// PerformanceRecord is one run inside PerformanceStats
type PerformanceRecord struct {
	GameRoundID         int64   `json:"gameRoundId"`
	NumberOfDisks       int     `json:"numberOfDisks"`
	MinimumMoves        int     `json:"minimumMoves"`
	ExecutionTimeNanos  int64   `json:"executionTimeNanos"`
	ExecutionTimeMillis float64 `json:"executionTimeMillis"`
}

// PerformanceStats aggregates every run of one algorithm
type PerformanceStats struct {
	AlgorithmName              string              `json:"algorithmName"`
	NumberOfPegs               int                 `json:"numberOfPegs"`
	Records                    []PerformanceRecord `json:"records"`
	AverageExecutionTimeMillis float64             `json:"averageExecutionTimeMillis"`
	MinExecutionTimeNanos      int64               `json:"minExecutionTimeNanos"`
	MaxExecutionTimeNanos      int64               `json:"maxExecutionTimeNanos"`
}
