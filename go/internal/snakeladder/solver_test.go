package snakeladder

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/minigames/go/internal/apperr"
)

func emptyBoard(size int) Board {
	return Board{Size: size, FinalCell: size * size, Ladders: map[int]int{}, Snakes: map[int]int{}}
}

func TestMinThrowsPlainBoard(t *testing.T) {
	b := emptyBoard(6)
	// 35 cells to cover at six per throw
	assert.Equal(t, 6, MinThrowsBFS(b))
	assert.Equal(t, 6, MinThrowsDijkstra(b))
}

func TestMinThrowsUsesLadder(t *testing.T) {
	b := emptyBoard(6)
	b.Ladders[2] = 35
	assert.Equal(t, 2, MinThrowsBFS(b))
	assert.Equal(t, 2, MinThrowsDijkstra(b))
}

func TestMinThrowsAvoidsSnakes(t *testing.T) {
	b := emptyBoard(6)
	for cell := 31; cell <= 35; cell++ {
		b.Snakes[cell] = 2
	}
	// only an exact landing on 36 from 30 escapes, so the token must reach 30 first
	assert.Equal(t, 6, MinThrowsBFS(b))
	assert.Equal(t, 6, MinThrowsDijkstra(b))
}

func TestMinThrowsUnreachable(t *testing.T) {
	b := emptyBoard(6)
	for cell := 2; cell <= 7; cell++ {
		b.Snakes[cell] = 1
	}
	assert.Equal(t, -1, MinThrowsBFS(b))
	assert.Equal(t, -1, MinThrowsDijkstra(b))
}

func TestGenerateBoardRules(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for size := MinBoardSize; size <= MaxBoardSize; size++ {
		b, err := GenerateBoard(size, rng)
		require.NoError(t, err)
		require.Len(t, b.Ladders, size-2)
		require.Len(t, b.Snakes, size-2)

		final := size * size
		for start, end := range b.Ladders {
			assert.GreaterOrEqual(t, start, 2)
			assert.Less(t, end, final)
			assert.Greater(t, end, start)
			_, isSnake := b.Snakes[start]
			assert.False(t, isSnake)
		}
		for start, end := range b.Snakes {
			assert.GreaterOrEqual(t, start, 10)
			assert.Less(t, start, final)
			assert.Greater(t, end, 1)
			assert.Less(t, end, start)
		}
		for _, jumps := range []map[int]int{b.Ladders, b.Snakes} {
			for _, end := range jumps {
				assert.Equal(t, end, b.jump(end), "jump ends on another jump start")
			}
		}

		assert.Equal(t, MinThrowsBFS(b), MinThrowsDijkstra(b))
	}
}

func TestNewBoardRejectsBadLayouts(t *testing.T) {
	tests := []struct {
		name    string
		ladders map[int]int
		snakes  map[int]int
	}{
		{"ladder going down", map[int]int{10: 5}, nil},
		{"snake going up", nil, map[int]int{10: 20}},
		{"jump on final cell", nil, map[int]int{36: 3}},
		{"shared start", map[int]int{10: 20}, map[int]int{10: 3}},
		{"chained jump", map[int]int{4: 12}, map[int]int{12: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoard(6, tt.ladders, tt.snakes)
			assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
		})
	}

	b, err := NewBoard(6, map[int]int{3: 22}, map[int]int{30: 4})
	require.NoError(t, err)
	assert.Equal(t, 36, b.FinalCell)
}
