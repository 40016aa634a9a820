package snakeladder

import "time"

const (
	MinBoardSize = 6
	MaxBoardSize = 12
	diceFaces    = 6
)

// Board is an N x N board numbered 1..N² with snakes and ladders keyed by start cell.
type Board struct {
	Size      int         `json:"size"`
	FinalCell int         `json:"finalCell"`
	Ladders   map[int]int `json:"ladders"`
	Snakes    map[int]int `json:"snakes"`
}

// jump returns where a token resting on cell ends up.
func (b Board) jump(cell int) int {
	if end, ok := b.Ladders[cell]; ok {
		return end
	}
	if end, ok := b.Snakes[cell]; ok {
		return end
	}
	return cell
}

// GameResult is one judged round
type GameResult struct {
	ID            int64       `json:"id"`
	PlayerName    string      `json:"playerName"`
	BoardSize     int         `json:"boardSize"`
	CorrectAnswer int         `json:"correctAnswer"`
	PlayerAnswer  int         `json:"playerAnswer"`
	Correct       bool        `json:"correct"`
	BFSTime       int64       `json:"bfsTime"`
	DijkstraTime  int64       `json:"dijkstraTime"`
	CreatedAt     time.Time   `json:"createdAt"`
	Snakes        map[int]int `json:"snakes"`
	Ladders       map[int]int `json:"ladders"`
}
