package hanoi

import (
	"fmt"
	"strings"
)

// Move transfers the top disk between two pegs labelled 'A'..'D'.
type Move struct {
	From byte
	To   byte
}

func (m Move) String() string {
	return fmt.Sprintf("%c->%c", m.From, m.To)
}

// FormatMoves renders moves as "A->C, A->B, ...".
func FormatMoves(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, ", ")
}

// ParseMoves reads a comma separated sequence. Every move must name two
// different pegs among the first numberOfPegs letters.
func ParseMoves(sequence string, numberOfPegs int) ([]Move, bool) {
	sequence = strings.TrimSpace(sequence)
	if sequence == "" {
		return nil, false
	}

	last := byte('A' + numberOfPegs - 1)
	var moves []Move
	for _, raw := range strings.Split(sequence, ",") {
		token := strings.ToUpper(strings.TrimSpace(raw))
		if len(token) != 4 || token[1:3] != "->" {
			return nil, false
		}
		m := Move{From: token[0], To: token[3]}
		if m.From < 'A' || m.From > last || m.To < 'A' || m.To > last || m.From == m.To {
			return nil, false
		}
		moves = append(moves, m)
	}
	return moves, true
}

// Simulate replays moves from all disks stacked on peg A and reports whether
// every move is legal and all disks finish on dest.
func Simulate(disks, numberOfPegs int, dest byte, moves []Move) bool {
	pegs := make(map[byte][]int, numberOfPegs)
	for d := disks; d >= 1; d-- {
		pegs['A'] = append(pegs['A'], d)
	}

	for _, m := range moves {
		from := pegs[m.From]
		if len(from) == 0 {
			return false
		}
		disk := from[len(from)-1]
		to := pegs[m.To]
		if len(to) > 0 && to[len(to)-1] < disk {
			return false
		}
		pegs[m.From] = from[:len(from)-1]
		pegs[m.To] = append(to, disk)
	}
	return len(pegs[dest]) == disks
}
