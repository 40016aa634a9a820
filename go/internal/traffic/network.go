package traffic

import "math/rand/v2"

const (
	minCapacity = 5
	maxCapacity = 15
)

// MaxSubmittedCapacity bounds client-supplied capacities so flow sums stay in range.
const MaxSubmittedCapacity = 1_000_000

// Nodes lists the junctions in matrix order. A is the source and T the sink.
var Nodes = []string{"A", "B", "C", "D", "E", "F", "G", "H", "T"}

const (
	source = 0
	sink   = 8
)

// topology is the fixed road layout as node index pairs.
var topology = [][2]int{
	{0, 1}, {0, 2}, {0, 3}, // A->B, A->C, A->D
	{1, 4}, {1, 5}, // B->E, B->F
	{2, 4}, {2, 5}, // C->E, C->F
	{3, 5},         // D->F
	{4, 6}, {4, 7}, // E->G, E->H
	{5, 7},         // F->H
	{6, 8}, {7, 8}, // G->T, H->T
}

// Edge is one road with its capacity
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Cap  int    `json:"cap"`
}

// FlowEdge is one road carrying flow in a maximum flow
type FlowEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Flow int    `json:"flow"`
}

// Network is a generated road network
type Network struct {
	Edges  []Edge  `json:"edges"`
	Matrix [][]int `json:"matrix"`
}

// GenerateNetwork assigns random capacities in [5, 15] to the fixed topology.
func GenerateNetwork(rng *rand.Rand) Network {
	matrix := make([][]int, len(Nodes))
	for i := range matrix {
		matrix[i] = make([]int, len(Nodes))
	}

	edges := make([]Edge, 0, len(topology))
	for _, e := range topology {
		c := minCapacity + rng.IntN(maxCapacity-minCapacity+1)
		matrix[e[0]][e[1]] = c
		edges = append(edges, Edge{From: Nodes[e[0]], To: Nodes[e[1]], Cap: c})
	}
	return Network{Edges: edges, Matrix: matrix}
}
