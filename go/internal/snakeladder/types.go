package snakeladder

// PlayRequest is a player's guess for a board. Snakes and Ladders are
// optional; when both are omitted the server generates the board.
type PlayRequest struct {
	PlayerName   string      `json:"playerName"`
	BoardSize    int         `json:"boardSize"`
	PlayerAnswer int         `json:"playerAnswer"`
	Snakes       map[int]int `json:"snakes,omitempty"`
	Ladders      map[int]int `json:"ladders,omitempty"`
}
