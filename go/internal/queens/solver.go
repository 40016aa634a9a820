package queens

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// SolveSequential enumerates every solution by backtracking column by column.
func SolveSequential() []Board {
	var (
		board     Board
		solutions []Board
	)
	placeFrom(&board, 0, &solutions)
	return solutions
}

// SolveThreaded fixes the first column's row in its own goroutine and
// merges the partial results in row order, so the output matches SolveSequential.
func SolveThreaded(ctx context.Context) ([]Board, error) {
	partials := make([][]Board, BoardSize)
	g, ctx := errgroup.WithContext(ctx)

	for row := 0; row < BoardSize; row++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var board Board
			board[0] = row
			var found []Board
			placeFrom(&board, 1, &found)
			partials[row] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	solutions := make([]Board, 0, TotalSolutions)
	for _, found := range partials {
		solutions = append(solutions, found...)
	}
	return solutions, nil
}

func placeFrom(board *Board, col int, out *[]Board) {
	if col == BoardSize {
		*out = append(*out, *board)
		return
	}
	for row := 0; row < BoardSize; row++ {
		if isSafe(board, col, row) {
			board[col] = row
			placeFrom(board, col+1, out)
		}
	}
}

// isSafe checks row and diagonal conflicts against columns before col.
func isSafe(board *Board, col, row int) bool {
	for c := 0; c < col; c++ {
		r := board[c]
		if r == row || abs(r-row) == col-c {
			return false
		}
	}
	return true
}

// IsValidSolution reports whether positions places eight non-attacking queens.
func IsValidSolution(positions []int) bool {
	if len(positions) != BoardSize {
		return false
	}
	for c, r := range positions {
		if r < 0 || r >= BoardSize {
			return false
		}
		for prev := 0; prev < c; prev++ {
			pr := positions[prev]
			if pr == r || abs(pr-r) == c-prev {
				return false
			}
		}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
