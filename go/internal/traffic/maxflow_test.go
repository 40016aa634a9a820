package traffic

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformNetwork(capacity int) [][]int {
	m := make([][]int, len(Nodes))
	for i := range m {
		m[i] = make([]int, len(Nodes))
	}
	for _, e := range topology {
		m[e[0]][e[1]] = capacity
	}
	return m
}

func TestMaxFlowUniform(t *testing.T) {
	t.Parallel()

	m := uniformNetwork(10)

	ek, flow := EdmondsKarp(m, source, sink)
	assert.Equal(t, 20, ek)
	assert.Equal(t, 20, Dinic(m, source, sink))

	// conservation at every inner node
	for v := 1; v < len(Nodes)-1; v++ {
		in, out := 0, 0
		for u := range Nodes {
			in += flow[u][v]
			out += flow[v][u]
		}
		assert.Equal(t, in, out, "node %s", Nodes[v])
	}
	assert.Equal(t, 10, flow[6][8])
	assert.Equal(t, 10, flow[7][8])
}

func TestMaxFlowBottleneck(t *testing.T) {
	t.Parallel()

	m := uniformNetwork(10)
	m[0][1], m[0][2], m[0][3] = 1, 2, 0

	ek, _ := EdmondsKarp(m, source, sink)
	assert.Equal(t, 3, ek)
	assert.Equal(t, 3, Dinic(m, source, sink))
}

func TestMaxFlowDisconnected(t *testing.T) {
	t.Parallel()

	m := uniformNetwork(0)
	ek, flow := EdmondsKarp(m, source, sink)
	assert.Zero(t, ek)
	assert.Zero(t, Dinic(m, source, sink))
	for _, row := range flow {
		for _, f := range row {
			assert.Zero(t, f)
		}
	}
}

func TestMaxFlowDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	m := uniformNetwork(7)
	want := uniformNetwork(7)
	EdmondsKarp(m, source, sink)
	Dinic(m, source, sink)
	assert.Equal(t, want, m)
}

func TestAlgorithmsAgreeOnGeneratedNetworks(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(21, 4))
	for i := 0; i < 50; i++ {
		network := GenerateNetwork(rng)
		require.Len(t, network.Edges, len(topology))
		for _, e := range network.Edges {
			assert.GreaterOrEqual(t, e.Cap, minCapacity)
			assert.LessOrEqual(t, e.Cap, maxCapacity)
		}

		ek, _ := EdmondsKarp(network.Matrix, source, sink)
		assert.Equal(t, ek, Dinic(network.Matrix, source, sink))
	}
}
