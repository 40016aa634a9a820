package events

import (
	"time"
)

// Game keys used in outbox rows, subjects and websocket subscriptions
const (
	GameQueens      = "queens"
	GameSnakeLadder = "snakeladder"
	GameHanoi       = "hanoi"
	GameTSP         = "tsp"
	GameTraffic     = "traffic"
)

// Games lists every game key in display order.
var Games = []string{GameQueens, GameSnakeLadder, GameHanoi, GameTSP, GameTraffic}

// Event types emitted by the games
const (
	TypeSolutionFound   = "SolutionFound"
	TypeGameReset       = "GameReset"
	TypeGamePlayed      = "GamePlayed"
	TypeAnswerSubmitted = "AnswerSubmitted"
	TypeRouteSolved     = "RouteSolved"
	TypeFlowSolved      = "FlowSolved"
)

// IsKnownGame reports whether game is one of the game keys.
func IsKnownGame(game string) bool {
	for _, g := range Games {
		if g == game {
			return true
		}
	}
	return false
}

// SolutionFoundPayload is emitted when a player discovers a new eight queens solution
type SolutionFoundPayload struct {
	PlayerName string    `json:"player_name"`
	Solution   string    `json:"solution"`
	FoundCount int       `json:"found_count"`
	FoundAt    time.Time `json:"found_at"`
}

// GameResetPayload is emitted when a game clears its progress
type GameResetPayload struct {
	Reason  string    `json:"reason"`
	ResetAt time.Time `json:"reset_at"`
}

// GamePlayedPayload is emitted after a snake and ladder round
type GamePlayedPayload struct {
	ResultID      int64     `json:"result_id"`
	PlayerName    string    `json:"player_name"`
	BoardSize     int       `json:"board_size"`
	CorrectAnswer int       `json:"correct_answer"`
	PlayerAnswer  int       `json:"player_answer"`
	Correct       bool      `json:"correct"`
	PlayedAt      time.Time `json:"played_at"`
}

// AnswerSubmittedPayload is emitted after a tower of hanoi answer is judged
type AnswerSubmittedPayload struct {
	GameRoundID   int64     `json:"game_round_id"`
	PlayerName    string    `json:"player_name"`
	Result        string    `json:"result"`
	NumberOfDisks int       `json:"number_of_disks"`
	NumberOfPegs  int       `json:"number_of_pegs"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// RouteSolvedPayload is emitted after a traveling salesman route is judged
type RouteSolvedPayload struct {
	SessionID         int64     `json:"session_id"`
	PlayerName        string    `json:"player_name"`
	Correct           bool      `json:"correct"`
	SubmittedDistance int       `json:"submitted_distance"`
	OptimalDistance   int       `json:"optimal_distance"`
	SolvedAt          time.Time `json:"solved_at"`
}

// FlowSolvedPayload is emitted when a player reports the correct max flow
type FlowSolvedPayload struct {
	ResultID   int64     `json:"result_id"`
	PlayerName string    `json:"player_name"`
	MaxFlow    int       `json:"max_flow"`
	SolvedAt   time.Time `json:"solved_at"`
}
