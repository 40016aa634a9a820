package snakeladder

import (
	"container/heap"
	"math"
)

// MinThrowsBFS returns the fewest dice throws from cell 1 to the final cell,
// or -1 when the final cell cannot be reached.
func MinThrowsBFS(b Board) int {
	dist := make([]int, b.FinalCell+1)
	for i := range dist {
		dist[i] = -1
	}
	dist[1] = 0
	queue := []int{1}

	for len(queue) > 0 {
		cell := queue[0]
		queue = queue[1:]
		if cell == b.FinalCell {
			return dist[cell]
		}
		for face := 1; face <= diceFaces; face++ {
			next := cell + face
			if next > b.FinalCell {
				break
			}
			next = b.jump(next)
			if dist[next] == -1 {
				dist[next] = dist[cell] + 1
				queue = append(queue, next)
			}
		}
	}
	return dist[b.FinalCell]
}

// MinThrowsDijkstra computes the same answer as MinThrowsBFS with a priority queue.
func MinThrowsDijkstra(b Board) int {
	dist := make([]int, b.FinalCell+1)
	for i := range dist {
		dist[i] = math.MaxInt
	}
	dist[1] = 0
	pq := &cellQueue{{cell: 1, throws: 0}}

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(cellItem)
		if cur.throws > dist[cur.cell] {
			continue
		}
		if cur.cell == b.FinalCell {
			return cur.throws
		}
		for face := 1; face <= diceFaces; face++ {
			next := cur.cell + face
			if next > b.FinalCell {
				break
			}
			next = b.jump(next)
			if cur.throws+1 < dist[next] {
				dist[next] = cur.throws + 1
				heap.Push(pq, cellItem{cell: next, throws: cur.throws + 1})
			}
		}
	}
	return -1
}

type cellItem struct {
	cell   int
	throws int
}

type cellQueue []cellItem

func (q cellQueue) Len() int { return len(q) }
func (q cellQueue) Less(i, j int) bool {
	if q[i].throws == q[j].throws {
		return q[i].cell > q[j].cell
	}
	return q[i].throws < q[j].throws
}
func (q cellQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *cellQueue) Push(x any)   { *q = append(*q, x.(cellItem)) }
func (q *cellQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
