package spatial

import (
	"fmt"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunusemre274/World-Car/internal/infra/routing/graph"
)

func testGraph() *graph.Graph {
	g := graph.New()
	g.AddNode(1, orb.Point{29.0298, 40.9856})
	g.AddNode(2, orb.Point{29.0408, 40.9638})
	g.AddNode(3, orb.Point{29.0500, 40.9900})
	g.AddNode(4, orb.Point{29.1000, 41.0200})

	return g
}

func TestGridIndex_NearestExactHit(t *testing.T) {
	idx := NewGridIndex(testGraph(), 1.0)

	result, err := idx.Nearest(40.9856, 29.0298)
	require.NoError(t, err)

	assert.Equal(t, graph.NodeID(1), result.Node)
	assert.InDelta(t, 0, result.Distance, 0.01)
}

func TestGridIndex_NearestPicksClosest(t *testing.T) {
	idx := NewGridIndex(testGraph(), 1.0)

	// slightly north-east of node 3
	result, err := idx.Nearest(40.9910, 29.0510)
	require.NoError(t, err)

	assert.Equal(t, graph.NodeID(3), result.Node)
	assert.Less(t, result.Distance, 200.0)
}

func TestGridIndex_NearestFarQuery(t *testing.T) {
	idx := NewGridIndex(testGraph(), 1.0)

	// query many cells away still resolves via ring expansion
	result, err := idx.Nearest(41.2000, 29.3000)
	require.NoError(t, err)

	assert.Equal(t, graph.NodeID(4), result.Node)
}

func TestGridIndex_NearestMatchesBruteForce(t *testing.T) {
	g := graph.New()
	id := graph.NodeID(0)
	var positions []orb.Point
	for row := 0; row < 10; row++ {
		for col := 0; col < 10; col++ {
			id++
			p := orb.Point{29.0 + float64(col)*0.007, 41.0 + float64(row)*0.005}
			g.AddNode(id, p)
			positions = append(positions, p)
		}
	}

	idx := NewGridIndex(g, 0.3)

	queries := []orb.Point{
		{29.0301, 41.0122},
		{29.0650, 41.0449},
		{28.9999, 40.9999},
		{29.0703, 41.0001},
	}
	for _, q := range queries {
		t.Run(fmt.Sprintf("%v", q), func(t *testing.T) {
			result, err := idx.Nearest(q[1], q[0])
			require.NoError(t, err)

			best := math.MaxFloat64
			for _, p := range positions {
				if d := graph.Haversine(q, p); d < best {
					best = d
				}
			}
			assert.InDelta(t, best, result.Distance, 1e-6)
		})
	}
}

func TestGridIndex_NearestWithin(t *testing.T) {
	idx := NewGridIndex(testGraph(), 1.0)

	result, err := idx.NearestWithin(40.9856, 29.0298, 100)
	require.NoError(t, err)
	assert.Equal(t, graph.NodeID(1), result.Node)

	// far away from every node
	result, err = idx.NearestWithin(40.0, 28.0, 500)
	assert.ErrorIs(t, err, ErrSnapDistanceExceeded)
	require.NotNil(t, result, "snap distance error still reports the nearest node")
	assert.Greater(t, result.Distance, 500.0)
}

func TestGridIndex_Empty(t *testing.T) {
	idx := NewGridIndex(graph.New(), 1.0)

	_, err := idx.Nearest(41.0, 29.0)
	assert.ErrorIs(t, err, ErrEmptyIndex)
}

func TestGridIndex_SingleNode(t *testing.T) {
	g := graph.New()
	g.AddNode(7, orb.Point{29.0, 41.0})

	idx := NewGridIndex(g, 1.0)
	assert.Equal(t, 1, idx.Size())

	result, err := idx.Nearest(41.5, 29.5)
	require.NoError(t, err)
	assert.Equal(t, graph.NodeID(7), result.Node)
}
