package queens

// SubmitRequest is a player's proposed solution
type SubmitRequest struct {
	PlayerName     string `json:"playerName"`
	QueenPositions []int  `json:"queenPositions"`
}

// SubmitResponse reports whether the solution counted
type SubmitResponse struct {
	Accepted       bool   `json:"accepted"`
	Message        string `json:"message"`
	FoundCount     int    `json:"foundCount"`
	TotalSolutions int    `json:"totalSolutions"`
}

// SolveResponse describes one solver run
type SolveResponse struct {
	AlgorithmType   AlgorithmType `json:"algorithmType"`
	ExecutionTimeMs int64         `json:"executionTimeMs"`
	TotalSolutions  int           `json:"totalSolutions"`
	Message         string        `json:"message"`
}

// MessageResponse carries a single status line
type MessageResponse struct {
	Message string `json:"message"`
}
