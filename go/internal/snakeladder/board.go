package snakeladder

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/mcdev12/minigames/go/internal/apperr"
)

const maxPlacementAttempts = 10000

var errPlacement = errors.New("could not place jumps")

// GenerateBoard places size-2 ladders and size-2 snakes at random.
func GenerateBoard(size int, rng *rand.Rand) (Board, error) {
	final := size * size
	b := Board{
		Size:      size,
		FinalCell: final,
		Ladders:   make(map[int]int, size-2),
		Snakes:    make(map[int]int, size-2),
	}
	starts := make(map[int]bool)
	ends := make(map[int]bool)

	place := func(pick func() (int, int, bool), into map[int]int) error {
		for attempts := 0; len(into) < size-2; attempts++ {
			if attempts >= maxPlacementAttempts {
				return errPlacement
			}
			start, end, ok := pick()
			if !ok || starts[start] || ends[start] || starts[end] {
				continue
			}
			into[start] = end
			starts[start] = true
			ends[end] = true
		}
		return nil
	}

	ladder := func() (int, int, bool) {
		start := 2 + rng.IntN(final-2)
		end := start + rng.IntN(size) + 3
		return start, end, end < final
	}
	snake := func() (int, int, bool) {
		start := 10 + rng.IntN(final-10)
		end := start - (rng.IntN(size) + 3)
		return start, end, end > 1
	}

	if err := place(ladder, b.Ladders); err != nil {
		return Board{}, fmt.Errorf("failed to place ladders: %w", err)
	}
	if err := place(snake, b.Snakes); err != nil {
		return Board{}, fmt.Errorf("failed to place snakes: %w", err)
	}
	return b, nil
}

// NewBoard validates a client supplied layout.
func NewBoard(size int, ladders, snakes map[int]int) (Board, error) {
	final := size * size
	b := Board{Size: size, FinalCell: final, Ladders: ladders, Snakes: snakes}
	if b.Ladders == nil {
		b.Ladders = map[int]int{}
	}
	if b.Snakes == nil {
		b.Snakes = map[int]int{}
	}

	for start, end := range b.Ladders {
		if start < 2 || start >= final || end <= start || end > final {
			return Board{}, apperr.Invalid("Invalid ladder from %d to %d", start, end)
		}
	}
	for start, end := range b.Snakes {
		if start < 2 || start >= final || end >= start || end < 1 {
			return Board{}, apperr.Invalid("Invalid snake from %d to %d", start, end)
		}
		if _, clash := b.Ladders[start]; clash {
			return Board{}, apperr.Invalid("Cell %d starts both a snake and a ladder", start)
		}
	}
	for _, jumps := range []map[int]int{b.Ladders, b.Snakes} {
		for start, end := range jumps {
			if b.jump(end) != end {
				return Board{}, apperr.Invalid("Jump from %d ends on another jump at %d", start, end)
			}
		}
	}
	return b, nil
}
