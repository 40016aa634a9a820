package traffic

import "math"

// EdmondsKarp computes the maximum flow from s to t with BFS augmenting paths
// on a residual matrix. It also returns the flow on every original edge.
func EdmondsKarp(capacity [][]int, s, t int) (int, [][]int) {
	n := len(capacity)
	residual := cloneMatrix(capacity)
	parent := make([]int, n)
	total := 0

	for bfsPath(residual, s, t, parent) {
		bottleneck := math.MaxInt
		for v := t; v != s; v = parent[v] {
			bottleneck = min(bottleneck, residual[parent[v]][v])
		}
		for v := t; v != s; v = parent[v] {
			u := parent[v]
			residual[u][v] -= bottleneck
			residual[v][u] += bottleneck
		}
		total += bottleneck
	}

	flow := make([][]int, n)
	for i := range flow {
		flow[i] = make([]int, n)
		for j := range flow[i] {
			if capacity[i][j] > 0 {
				flow[i][j] = max(0, capacity[i][j]-residual[i][j])
			}
		}
	}
	return total, flow
}

func bfsPath(residual [][]int, s, t int, parent []int) bool {
	for i := range parent {
		parent[i] = -1
	}
	parent[s] = s
	queue := []int{s}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for v, c := range residual[u] {
			if c > 0 && parent[v] == -1 {
				parent[v] = u
				if v == t {
					return true
				}
				queue = append(queue, v)
			}
		}
	}
	return false
}

// Dinic computes the maximum flow from s to t by building BFS level graphs
// and pushing blocking flows along them.
func Dinic(capacity [][]int, s, t int) int {
	n := len(capacity)
	residual := cloneMatrix(capacity)
	level := make([]int, n)
	next := make([]int, n)
	total := 0

	buildLevels := func() bool {
		for i := range level {
			level[i] = -1
		}
		level[s] = 0
		queue := []int{s}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for v, c := range residual[u] {
				if c > 0 && level[v] < 0 {
					level[v] = level[u] + 1
					queue = append(queue, v)
				}
			}
		}
		return level[t] >= 0
	}

	var push func(u, limit int) int
	push = func(u, limit int) int {
		if u == t {
			return limit
		}
		for ; next[u] < n; next[u]++ {
			v := next[u]
			if residual[u][v] <= 0 || level[v] != level[u]+1 {
				continue
			}
			if pushed := push(v, min(limit, residual[u][v])); pushed > 0 {
				residual[u][v] -= pushed
				residual[v][u] += pushed
				return pushed
			}
		}
		return 0
	}

	for buildLevels() {
		for i := range next {
			next[i] = 0
		}
		for {
			pushed := push(s, math.MaxInt)
			if pushed == 0 {
				break
			}
			total += pushed
		}
	}
	return total
}

func cloneMatrix(m [][]int) [][]int {
	out := make([][]int, len(m))
	for i, row := range m {
		out[i] = append([]int(nil), row...)
	}
	return out
}
