package impl

import (
	"context"
	"log/slog"
	"sync"

	"github.com/yunusemre274/World-Car/config"
	"github.com/yunusemre274/World-Car/internal/errors"
	"github.com/yunusemre274/World-Car/internal/infra/routing/graph"
	"github.com/yunusemre274/World-Car/internal/infra/routing/osm"
	"github.com/yunusemre274/World-Car/internal/infra/routing/search"
	"github.com/yunusemre274/World-Car/internal/infra/routing/spatial"
	"github.com/yunusemre274/World-Car/internal/usecase"
)

const (
	// fallback defaults to keep routing functional when config is missing/invalid
	defaultSnapDistanceMeters = 500.0
	defaultHeuristicWeight    = 1.5

	algorithmDijkstra      = "dijkstra"
	algorithmAStar         = "astar"
	algorithmWeightedAStar = "weighted-astar"
)

// routingService implements the RoutingUsecase interface on top of the
// in-memory road network, grid snapping and the path search.
type routingService struct {
	network *graph.Graph
	index   *spatial.GridIndex
	logger  *slog.Logger

	defaultAlgorithm string
	heuristicWeight  float64
	maxSnapDistanceM float64

	statsOnce sync.Once
	stats     osm.Stats
}

// NewRoutingService creates a routing service over a loaded graph.
func NewRoutingService(cfg *config.RoutingConfig, network *graph.Graph, index *spatial.GridIndex, logger *slog.Logger) usecase.RoutingUsecase {
	if logger == nil {
		logger = slog.Default()
	}

	snapDistance := cfg.MaxSnapDistanceMeters
	if snapDistance <= 0 {
		snapDistance = defaultSnapDistanceMeters
	}

	weight := cfg.HeuristicWeight
	if weight <= 0 {
		weight = defaultHeuristicWeight
	}

	algorithm := cfg.Algorithm
	if algorithm == "" {
		algorithm = algorithmAStar
	}

	return &routingService{
		network:          network,
		index:            index,
		logger:           logger,
		defaultAlgorithm: algorithm,
		heuristicWeight:  weight,
		maxSnapDistanceM: snapDistance,
	}
}

func (s *routingService) IsReady() bool {
	return s.network != nil && s.network.NumNodes() > 0 && s.index != nil
}

func (s *routingService) GraphStats() osm.Stats {
	s.statsOnce.Do(func() {
		if s.network != nil {
			s.stats = osm.ComputeStats(s.network)
		}
	})

	return s.stats
}

func (s *routingService) ComputeRoute(ctx context.Context, source, target usecase.Coordinate, opts usecase.RouteOptions) (*usecase.RouteResult, error) {
	if !s.IsReady() {
		return nil, errors.WithStack(usecase.ErrNotReady)
	}

	weight, algorithm, err := s.resolveAlgorithm(opts)
	if err != nil {
		return nil, err
	}

	srcNode, dstNode, err := s.snapEndpoints(source, target)
	if err != nil {
		return nil, err
	}

	s.logger.Info("computing route",
		slog.String("algorithm", algorithm),
		slog.Float64("heuristic_weight", weight),
		slog.Int64("source_node", int64(srcNode.ID)),
		slog.Int64("target_node", int64(dstNode.ID)),
	)

	result, err := search.FindPath(s.network, graph.NodeID(srcNode.ID), graph.NodeID(dstNode.ID), weight)
	if err != nil {
		return nil, err
	}

	if ctx.Err() != nil {
		return nil, errors.Wrap(ctx.Err(), "route computation canceled")
	}

	return &usecase.RouteResult{
		Source:          source,
		Target:          target,
		SnappedSource:   *srcNode,
		SnappedTarget:   *dstNode,
		Algorithm:       algorithm,
		HeuristicWeight: weight,
		Path:            nodeIDs(result.Path),
		Coordinates:     s.pathCoordinates(result.Path),
		DistanceM:       result.Distance,
		VisitedCount:    result.VisitedCount,
		ComputationTime: result.Duration,
	}, nil
}

func (s *routingService) CompareAlgorithms(ctx context.Context, source, target usecase.Coordinate) (*usecase.ComparisonResult, error) {
	if !s.IsReady() {
		return nil, errors.WithStack(usecase.ErrNotReady)
	}

	srcNode, dstNode, err := s.snapEndpoints(source, target)
	if err != nil {
		return nil, err
	}

	runs := []struct {
		name   string
		weight float64
	}{
		{algorithmDijkstra, 0},
		{algorithmAStar, 1},
		{algorithmWeightedAStar, s.heuristicWeight},
	}

	comparison := &usecase.ComparisonResult{Source: source, Target: target}
	for _, run := range runs {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), "comparison canceled")
		}

		result, runErr := search.FindPath(s.network, graph.NodeID(srcNode.ID), graph.NodeID(dstNode.ID), run.weight)
		if runErr != nil {
			return nil, runErr
		}

		comparison.Runs = append(comparison.Runs, usecase.AlgorithmRun{
			Algorithm:       run.name,
			HeuristicWeight: run.weight,
			DistanceM:       result.Distance,
			VisitedCount:    result.VisitedCount,
			ComputationTime: result.Duration,
		})
	}

	return comparison, nil
}

// resolveAlgorithm maps an algorithm name to its heuristic weight.
func (s *routingService) resolveAlgorithm(opts usecase.RouteOptions) (float64, string, error) {
	algorithm := opts.Algorithm
	if algorithm == "" {
		algorithm = s.defaultAlgorithm
	}

	switch algorithm {
	case algorithmDijkstra:
		return 0, algorithm, nil
	case algorithmAStar:
		return 1, algorithm, nil
	case algorithmWeightedAStar:
		weight := opts.HeuristicWeight
		if weight <= 0 {
			weight = s.heuristicWeight
		}

		return weight, algorithm, nil
	default:
		return 0, "", errors.Wrapf(usecase.ErrUnknownAlgorithm, "algorithm %q", algorithm)
	}
}

func (s *routingService) snapEndpoints(source, target usecase.Coordinate) (*usecase.NodeInfo, *usecase.NodeInfo, error) {
	if !validCoordinate(source) || !validCoordinate(target) {
		return nil, nil, errors.WithStack(usecase.ErrInvalidCoordinates)
	}

	srcNode, err := s.snap(source)
	if err != nil {
		return nil, nil, errors.Wrap(err, "snap source")
	}

	dstNode, err := s.snap(target)
	if err != nil {
		return nil, nil, errors.Wrap(err, "snap target")
	}

	return srcNode, dstNode, nil
}

func (s *routingService) snap(coord usecase.Coordinate) (*usecase.NodeInfo, error) {
	result, err := s.index.NearestWithin(coord.Lat, coord.Lng, s.maxSnapDistanceM)
	if err != nil {
		return nil, err
	}

	return &usecase.NodeInfo{
		ID:           int64(result.Node),
		Location:     usecase.Coordinate{Lat: result.Position[1], Lng: result.Position[0]},
		SnapDistance: result.Distance,
	}, nil
}

func (s *routingService) pathCoordinates(path []graph.NodeID) []usecase.Coordinate {
	coords := make([]usecase.Coordinate, 0, len(path))
	for _, id := range path {
		if pos, ok := s.network.Position(id); ok {
			coords = append(coords, usecase.Coordinate{Lat: pos[1], Lng: pos[0]})
		}
	}

	return coords
}

func nodeIDs(path []graph.NodeID) []int64 {
	ids := make([]int64, len(path))
	for i, id := range path {
		ids[i] = int64(id)
	}

	return ids
}

func validCoordinate(c usecase.Coordinate) bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}
