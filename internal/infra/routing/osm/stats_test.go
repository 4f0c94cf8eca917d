package osm

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunusemre274/World-Car/internal/infra/routing/graph"
)

// twoIslands builds a graph with a 3-node connected cluster and an
// isolated 2-node pair.
func twoIslands() *graph.Graph {
	g := graph.New()
	g.AddNode(1, orb.Point{29.00, 41.00})
	g.AddNode(2, orb.Point{29.01, 41.00})
	g.AddNode(3, orb.Point{29.02, 41.00})
	g.AddNode(10, orb.Point{30.00, 42.00})
	g.AddNode(11, orb.Point{30.01, 42.00})

	g.AddEdge(1, 2, 100)
	g.AddEdge(2, 1, 100)
	g.AddEdge(2, 3, 200)
	g.AddEdge(3, 2, 200)
	g.AddEdge(10, 11, 50)
	g.AddEdge(11, 10, 50)

	return g
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(twoIslands())

	assert.Equal(t, 5, stats.Nodes)
	assert.Equal(t, 6, stats.Edges)
	assert.InDelta(t, 700, stats.TotalLengthM, 1e-9)
	assert.InDelta(t, 700.0/6, stats.AvgEdgeLengthM, 1e-9)
	assert.Equal(t, 50.0, stats.MinEdgeLengthM)
	assert.Equal(t, 200.0, stats.MaxEdgeLengthM)
	assert.Equal(t, 2, stats.Components)
	assert.Equal(t, 3, stats.LargestComponentSize)
	assert.InDelta(t, 6.0/5, stats.AvgDegree, 1e-9)
}

func TestComputeStats_EmptyGraph(t *testing.T) {
	stats := ComputeStats(graph.New())

	assert.Zero(t, stats.Nodes)
	assert.Zero(t, stats.Edges)
	assert.Zero(t, stats.MinEdgeLengthM)
	assert.Zero(t, stats.Components)
}

func TestComputeStats_OneWayCountsAsConnected(t *testing.T) {
	// a one-way chain is still a single weak component
	g := graph.New()
	g.AddNode(1, orb.Point{29.00, 41.00})
	g.AddNode(2, orb.Point{29.01, 41.00})
	g.AddEdge(1, 2, 100)

	stats := ComputeStats(g)
	assert.Equal(t, 1, stats.Components)
	assert.Equal(t, 2, stats.LargestComponentSize)
}

func TestLargestComponent(t *testing.T) {
	trimmed := LargestComponent(twoIslands())

	assert.Equal(t, 3, trimmed.NumNodes())
	assert.Equal(t, 4, trimmed.NumEdges())

	// original node IDs survive
	assert.True(t, trimmed.HasNode(1))
	assert.True(t, trimmed.HasNode(3))
	assert.False(t, trimmed.HasNode(10))

	weight, ok := trimmed.MinEdgeWeight(2, 3)
	require.True(t, ok)
	assert.Equal(t, 200.0, weight)
}

func TestLargestComponent_DropsCrossEdges(t *testing.T) {
	g := twoIslands()
	// dangling edge from the kept cluster into the dropped one
	g.AddEdge(3, 10, 999)

	trimmed := LargestComponent(g)

	// the extra edge merges the islands into one component
	assert.Equal(t, 5, trimmed.NumNodes())
	assert.Equal(t, 7, trimmed.NumEdges())
}

func TestRoutableHighwayTags(t *testing.T) {
	tags := RoutableHighwayTags()

	assert.Contains(t, tags, "motorway")
	assert.Contains(t, tags, "residential")
	assert.NotContains(t, tags, "footway")

	// stable ordering
	assert.IsNonDecreasing(t, tags)
}
