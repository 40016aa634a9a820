package hanoi

// Algorithm names as reported to players and stored with performance records
const (
	AlgorithmRecursive3    = "3-Peg Recursive"
	AlgorithmIterative3    = "3-Peg Iterative"
	AlgorithmFrameStewart4 = "4-Peg Frame-Stewart"
	AlgorithmOptimized4    = "4-Peg Optimized"
)

// Solver produces a full move sequence for n disks.
type Solver struct {
	Name  string
	Pegs  int
	Solve func(n int) []Move
}

// SolversFor returns the two algorithms raced for a round with the given peg count.
func SolversFor(pegs int) [2]Solver {
	if pegs == 4 {
		return [2]Solver{
			{Name: AlgorithmFrameStewart4, Pegs: 4, Solve: FrameStewart4},
			{Name: AlgorithmOptimized4, Pegs: 4, Solve: Optimized4},
		}
	}
	return [2]Solver{
		{Name: AlgorithmRecursive3, Pegs: 3, Solve: Recursive3},
		{Name: AlgorithmIterative3, Pegs: 3, Solve: Iterative3},
	}
}

// Destination is the target peg for a round: C with three pegs, D with four.
func Destination(pegs int) byte {
	return byte('A' + pegs - 1)
}

// Recursive3 moves n disks from A to C.
func Recursive3(n int) []Move {
	moves := make([]Move, 0, (1<<n)-1)
	var rec func(n int, from, to, via byte)
	rec = func(n int, from, to, via byte) {
		if n == 0 {
			return
		}
		rec(n-1, from, via, to)
		moves = append(moves, Move{From: from, To: to})
		rec(n-1, via, to, from)
	}
	rec(n, 'A', 'C', 'B')
	return moves
}

// Iterative3 cycles through the three peg pairs, always making the one legal
// move between the pair. Odd n cycles A-C, A-B, B-C; even n cycles A-B, A-C, B-C.
func Iterative3(n int) []Move {
	stacks := map[byte][]int{'A': {}, 'B': {}, 'C': {}}
	for d := n; d >= 1; d-- {
		stacks['A'] = append(stacks['A'], d)
	}

	pairs := [3][2]byte{{'A', 'C'}, {'A', 'B'}, {'B', 'C'}}
	if n%2 == 0 {
		pairs = [3][2]byte{{'A', 'B'}, {'A', 'C'}, {'B', 'C'}}
	}

	total := (1 << n) - 1
	moves := make([]Move, 0, total)
	for i := 0; i < total; i++ {
		x, y := pairs[i%3][0], pairs[i%3][1]
		m := legalMove(stacks, x, y)
		src, dst := stacks[m.From], stacks[m.To]
		stacks[m.To] = append(dst, src[len(src)-1])
		stacks[m.From] = src[:len(src)-1]
		moves = append(moves, m)
	}
	return moves
}

func legalMove(stacks map[byte][]int, x, y byte) Move {
	sx, sy := stacks[x], stacks[y]
	switch {
	case len(sx) == 0:
		return Move{From: y, To: x}
	case len(sy) == 0:
		return Move{From: x, To: y}
	case sx[len(sx)-1] < sy[len(sy)-1]:
		return Move{From: x, To: y}
	default:
		return Move{From: y, To: x}
	}
}

// FrameStewartMoves returns the minimum four-peg move count for n disks and
// the split k that achieves it.
func FrameStewartMoves(n int) (moves []int, split []int) {
	moves = make([]int, n+1)
	split = make([]int, n+1)
	if n >= 1 {
		moves[1] = 1
	}
	for i := 2; i <= n; i++ {
		best := -1
		for k := 1; k < i; k++ {
			cost := 2*moves[k] + (1 << (i - k)) - 1
			if best < 0 || cost < best {
				best = cost
				split[i] = k
			}
		}
		moves[i] = best
	}
	return moves, split
}

// FrameStewart4 moves n disks from A to D: the top k go to an intermediate peg
// with all four pegs, the remaining n-k go to D with three, then the k follow.
func FrameStewart4(n int) []Move {
	counts, split := FrameStewartMoves(n)
	moves := make([]Move, 0, counts[n])

	var three func(n int, from, to, via byte)
	three = func(n int, from, to, via byte) {
		if n == 0 {
			return
		}
		three(n-1, from, via, to)
		moves = append(moves, Move{From: from, To: to})
		three(n-1, via, to, from)
	}

	var four func(n int, from, to, via1, via2 byte)
	four = func(n int, from, to, via1, via2 byte) {
		switch n {
		case 0:
			return
		case 1:
			moves = append(moves, Move{From: from, To: to})
			return
		}
		k := split[n]
		four(k, from, via1, via2, to)
		three(n-k, from, to, via2)
		four(k, via1, to, from, via2)
	}

	four(n, 'A', 'D', 'B', 'C')
	return moves
}

// Optimized4 parks n-2 disks on a spare peg with four pegs, moves the two
// largest through the other spare, then brings the n-2 back on top.
func Optimized4(n int) []Move {
	var moves []Move
	var rec func(n int, from, to, via1, via2 byte)
	rec = func(n int, from, to, via1, via2 byte) {
		switch {
		case n <= 0:
			return
		case n == 1:
			moves = append(moves, Move{From: from, To: to})
			return
		}
		rec(n-2, from, via1, via2, to)
		moves = append(moves,
			Move{From: from, To: via2},
			Move{From: from, To: to},
			Move{From: via2, To: to},
		)
		rec(n-2, via1, to, from, via2)
	}
	rec(n, 'A', 'D', 'B', 'C')
	return moves
}
