package tsp

import (
	"math"
	"strings"
)

// Algorithm names reported to players and stored with timing logs
const (
	AlgorithmBruteForce      = "BRUTE_FORCE"
	AlgorithmHeldKarp        = "HELD_KARP"
	AlgorithmNearestNeighbor = "NEAREST_NEIGHBOR"
)

// Route is a closed tour as matrix indices, starting and ending at home.
type Route struct {
	Path     []int
	Distance int
}

// Labels converts the path to city labels.
func (r Route) Labels() []string {
	out := make([]string, len(r.Path))
	for i, c := range r.Path {
		out[i] = CityLabels[c]
	}
	return out
}

// String renders the path as "A -> C -> A".
func (r Route) String() string {
	return strings.Join(r.Labels(), " -> ")
}

// Algorithm solves a tour from home through every city in visit.
type Algorithm struct {
	Name  string
	Solve func(m [][]int, home int, visit []int) Route
}

// Algorithms lists the three solvers in reporting order.
var Algorithms = []Algorithm{
	{Name: AlgorithmBruteForce, Solve: BruteForce},
	{Name: AlgorithmHeldKarp, Solve: HeldKarp},
	{Name: AlgorithmNearestNeighbor, Solve: NearestNeighbor},
}

// PathDistance sums consecutive edges along path.
func PathDistance(m [][]int, path []int) int {
	total := 0
	for i := 1; i < len(path); i++ {
		total += m[path[i-1]][path[i]]
	}
	return total
}

// BruteForce tries every ordering of visit.
func BruteForce(m [][]int, home int, visit []int) Route {
	order := append([]int(nil), visit...)
	best := Route{Distance: math.MaxInt}

	var permute func(k int)
	permute = func(k int) {
		if k == len(order) {
			path := closedPath(home, order)
			if d := PathDistance(m, path); d < best.Distance {
				best = Route{Path: path, Distance: d}
			}
			return
		}
		for i := k; i < len(order); i++ {
			order[k], order[i] = order[i], order[k]
			permute(k + 1)
			order[k], order[i] = order[i], order[k]
		}
	}
	permute(0)
	return best
}

// HeldKarp runs the bitmask dynamic program over subsets of visit and
// rebuilds the tour from parent pointers.
func HeldKarp(m [][]int, home int, visit []int) Route {
	n := len(visit)
	if n == 0 {
		return Route{Path: []int{home, home}}
	}

	full := 1 << n
	cost := make([][]int, full)
	parent := make([][]int, full)
	for mask := range cost {
		cost[mask] = make([]int, n)
		parent[mask] = make([]int, n)
		for j := range cost[mask] {
			cost[mask][j] = math.MaxInt
			parent[mask][j] = -1
		}
	}
	for j := 0; j < n; j++ {
		cost[1<<j][j] = m[home][visit[j]]
	}

	for mask := 1; mask < full; mask++ {
		for j := 0; j < n; j++ {
			if mask&(1<<j) == 0 || cost[mask][j] == math.MaxInt {
				continue
			}
			for k := 0; k < n; k++ {
				if mask&(1<<k) != 0 {
					continue
				}
				next := mask | 1<<k
				if c := cost[mask][j] + m[visit[j]][visit[k]]; c < cost[next][k] {
					cost[next][k] = c
					parent[next][k] = j
				}
			}
		}
	}

	last, best := -1, math.MaxInt
	for j := 0; j < n; j++ {
		if c := cost[full-1][j] + m[visit[j]][home]; c < best {
			best, last = c, j
		}
	}

	order := make([]int, 0, n)
	for mask, j := full-1, last; j >= 0; {
		order = append(order, visit[j])
		prev := parent[mask][j]
		mask &^= 1 << j
		j = prev
	}
	for i, k := 0, len(order)-1; i < k; i, k = i+1, k-1 {
		order[i], order[k] = order[k], order[i]
	}
	return Route{Path: closedPath(home, order), Distance: best}
}

// NearestNeighbor greedily visits the closest remaining city, preferring the
// lower label on ties.
func NearestNeighbor(m [][]int, home int, visit []int) Route {
	remaining := make(map[int]bool, len(visit))
	for _, c := range visit {
		remaining[c] = true
	}

	order := make([]int, 0, len(visit))
	current := home
	for len(remaining) > 0 {
		next := -1
		for c := range m {
			if !remaining[c] {
				continue
			}
			if next == -1 || m[current][c] < m[current][next] {
				next = c
			}
		}
		order = append(order, next)
		delete(remaining, next)
		current = next
	}

	path := closedPath(home, order)
	return Route{Path: path, Distance: PathDistance(m, path)}
}

func closedPath(home int, order []int) []int {
	path := make([]int, 0, len(order)+2)
	path = append(path, home)
	path = append(path, order...)
	return append(path, home)
}
