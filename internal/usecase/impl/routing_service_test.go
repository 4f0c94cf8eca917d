package impl

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunusemre274/World-Car/config"
	"github.com/yunusemre274/World-Car/internal/infra/routing/graph"
	"github.com/yunusemre274/World-Car/internal/infra/routing/spatial"
	"github.com/yunusemre274/World-Car/internal/usecase"
)

// kadikoyGraph is a small bidirectional chain through Kadikoy with
// physically accurate edge weights.
func kadikoyGraph() *graph.Graph {
	g := graph.New()

	positions := map[graph.NodeID]orb.Point{
		1: {29.0298, 40.9856},
		2: {29.0330, 40.9800},
		3: {29.0370, 40.9720},
		4: {29.0408, 40.9638},
	}
	for id, pos := range positions {
		g.AddNode(id, pos)
	}

	connect := func(a, b graph.NodeID) {
		w := graph.Haversine(positions[a], positions[b])
		g.AddEdge(a, b, w)
		g.AddEdge(b, a, w)
	}
	connect(1, 2)
	connect(2, 3)
	connect(3, 4)

	return g
}

func newTestService(t *testing.T) usecase.RoutingUsecase {
	t.Helper()

	g := kadikoyGraph()
	index := spatial.NewGridIndex(g, 1.0)
	cfg := &config.RoutingConfig{
		Algorithm:             "astar",
		HeuristicWeight:       1.5,
		MaxSnapDistanceMeters: 500,
	}

	return NewRoutingService(cfg, g, index, nil)
}

func TestRoutingService_ComputeRoute(t *testing.T) {
	service := newTestService(t)
	require.True(t, service.IsReady())

	result, err := service.ComputeRoute(context.Background(),
		usecase.Coordinate{Lat: 40.9856, Lng: 29.0298},
		usecase.Coordinate{Lat: 40.9638, Lng: 29.0408},
		usecase.RouteOptions{},
	)
	require.NoError(t, err)

	assert.Equal(t, "astar", result.Algorithm)
	assert.Equal(t, []int64{1, 2, 3, 4}, result.Path)
	assert.Len(t, result.Coordinates, 4)
	assert.Positive(t, result.DistanceM)
	assert.Positive(t, result.VisitedCount)
	assert.Equal(t, int64(1), result.SnappedSource.ID)
	assert.Equal(t, int64(4), result.SnappedTarget.ID)
	assert.Less(t, result.SnappedSource.SnapDistance, 1.0)
}

func TestRoutingService_ComputeRoute_ExplicitDijkstra(t *testing.T) {
	service := newTestService(t)

	result, err := service.ComputeRoute(context.Background(),
		usecase.Coordinate{Lat: 40.9856, Lng: 29.0298},
		usecase.Coordinate{Lat: 40.9638, Lng: 29.0408},
		usecase.RouteOptions{Algorithm: "dijkstra"},
	)
	require.NoError(t, err)

	assert.Equal(t, "dijkstra", result.Algorithm)
	assert.Zero(t, result.HeuristicWeight)
}

func TestRoutingService_ComputeRoute_SamePoint(t *testing.T) {
	service := newTestService(t)

	result, err := service.ComputeRoute(context.Background(),
		usecase.Coordinate{Lat: 40.9856, Lng: 29.0298},
		usecase.Coordinate{Lat: 40.9856, Lng: 29.0298},
		usecase.RouteOptions{},
	)
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, result.Path)
	assert.Zero(t, result.DistanceM)
}

func TestRoutingService_ComputeRoute_InvalidCoordinates(t *testing.T) {
	service := newTestService(t)

	_, err := service.ComputeRoute(context.Background(),
		usecase.Coordinate{Lat: 91, Lng: 29.0298},
		usecase.Coordinate{Lat: 40.9638, Lng: 29.0408},
		usecase.RouteOptions{},
	)
	assert.ErrorIs(t, err, usecase.ErrInvalidCoordinates)
}

func TestRoutingService_ComputeRoute_SnapFailure(t *testing.T) {
	service := newTestService(t)

	_, err := service.ComputeRoute(context.Background(),
		usecase.Coordinate{Lat: 48.8566, Lng: 2.3522},
		usecase.Coordinate{Lat: 40.9638, Lng: 29.0408},
		usecase.RouteOptions{},
	)
	assert.ErrorIs(t, err, spatial.ErrSnapDistanceExceeded)
}

func TestRoutingService_ComputeRoute_UnknownAlgorithm(t *testing.T) {
	service := newTestService(t)

	_, err := service.ComputeRoute(context.Background(),
		usecase.Coordinate{Lat: 40.9856, Lng: 29.0298},
		usecase.Coordinate{Lat: 40.9638, Lng: 29.0408},
		usecase.RouteOptions{Algorithm: "bellman-ford"},
	)
	assert.ErrorIs(t, err, usecase.ErrUnknownAlgorithm)
}

func TestRoutingService_NotReady(t *testing.T) {
	service := NewRoutingService(&config.RoutingConfig{}, nil, nil, nil)

	assert.False(t, service.IsReady())

	_, err := service.ComputeRoute(context.Background(),
		usecase.Coordinate{Lat: 40.9856, Lng: 29.0298},
		usecase.Coordinate{Lat: 40.9638, Lng: 29.0408},
		usecase.RouteOptions{},
	)
	assert.ErrorIs(t, err, usecase.ErrNotReady)

	_, err = service.CompareAlgorithms(context.Background(),
		usecase.Coordinate{Lat: 40.9856, Lng: 29.0298},
		usecase.Coordinate{Lat: 40.9638, Lng: 29.0408},
	)
	assert.ErrorIs(t, err, usecase.ErrNotReady)
}

func TestRoutingService_CompareAlgorithms(t *testing.T) {
	service := newTestService(t)

	result, err := service.CompareAlgorithms(context.Background(),
		usecase.Coordinate{Lat: 40.9856, Lng: 29.0298},
		usecase.Coordinate{Lat: 40.9638, Lng: 29.0408},
	)
	require.NoError(t, err)
	require.Len(t, result.Runs, 3)

	assert.Equal(t, "dijkstra", result.Runs[0].Algorithm)
	assert.Equal(t, "astar", result.Runs[1].Algorithm)
	assert.Equal(t, "weighted-astar", result.Runs[2].Algorithm)
	assert.Equal(t, 1.5, result.Runs[2].HeuristicWeight)

	// Dijkstra and admissible A* must agree on path weight
	assert.InDelta(t, result.Runs[0].DistanceM, result.Runs[1].DistanceM, 1e-9)

	for _, run := range result.Runs {
		assert.Positive(t, run.VisitedCount)
	}
}

func TestRoutingService_GraphStats(t *testing.T) {
	service := newTestService(t)

	stats := service.GraphStats()
	assert.Equal(t, 4, stats.Nodes)
	assert.Equal(t, 6, stats.Edges)
	assert.Equal(t, 1, stats.Components)
}
