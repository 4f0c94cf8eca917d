package usecase

import (
	"context"
	"time"

	"github.com/yunusemre274/World-Car/internal/errors"
	"github.com/yunusemre274/World-Car/internal/infra/routing/osm"
)

// ErrInvalidCoordinates is returned when a latitude or longitude is out
// of range.
var ErrInvalidCoordinates = errors.New("usecase: coordinates out of valid range")

// ErrNotReady is returned when the road network has not been loaded.
var ErrNotReady = errors.New("usecase: routing engine not ready")

// ErrUnknownAlgorithm is returned for an unrecognized algorithm name.
var ErrUnknownAlgorithm = errors.New("usecase: unknown routing algorithm")

// Coordinate represents a geographic coordinate
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NodeInfo describes a snapped road network node.
type NodeInfo struct {
	ID           int64      `json:"id"`
	Location     Coordinate `json:"location"`
	SnapDistance float64    `json:"snap_distance_m"` // meters from the query coordinate
}

// RouteOptions selects the search behavior for one request.
type RouteOptions struct {
	// Algorithm is "dijkstra", "astar" or "weighted-astar". Empty uses
	// the configured default.
	Algorithm string

	// HeuristicWeight overrides the configured weight for
	// weighted-astar when positive.
	HeuristicWeight float64
}

// RouteResult represents the result of a routing calculation.
type RouteResult struct {
	Source          Coordinate    `json:"source"`
	Target          Coordinate    `json:"target"`
	SnappedSource   NodeInfo      `json:"snapped_source"`
	SnappedTarget   NodeInfo      `json:"snapped_target"`
	Algorithm       string        `json:"algorithm"`
	HeuristicWeight float64       `json:"heuristic_weight"`
	Path            []int64       `json:"path"`        // node IDs, source to target
	Coordinates     []Coordinate  `json:"coordinates"` // positions along the path
	DistanceM       float64       `json:"distance_m"`
	VisitedCount    int           `json:"visited_count"`
	ComputationTime time.Duration `json:"computation_time"`
}

// AlgorithmRun is one row of an algorithm comparison.
type AlgorithmRun struct {
	Algorithm       string        `json:"algorithm"`
	HeuristicWeight float64       `json:"heuristic_weight"`
	DistanceM       float64       `json:"distance_m"`
	VisitedCount    int           `json:"visited_count"`
	ComputationTime time.Duration `json:"computation_time"`
}

// ComparisonResult reports Dijkstra, A* and weighted A* side by side on
// the same endpoint pair.
type ComparisonResult struct {
	Source Coordinate     `json:"source"`
	Target Coordinate     `json:"target"`
	Runs   []AlgorithmRun `json:"runs"`
}

// RoutingUsecase defines the routing engine use cases.
type RoutingUsecase interface {
	// ComputeRoute snaps both coordinates to the road network and runs
	// the configured shortest path search between them.
	ComputeRoute(ctx context.Context, source, target Coordinate, opts RouteOptions) (*RouteResult, error)

	// CompareAlgorithms runs Dijkstra, A* and weighted A* on the same
	// snapped endpoints and reports visited counts and distances.
	CompareAlgorithms(ctx context.Context, source, target Coordinate) (*ComparisonResult, error)

	// GraphStats returns statistics of the loaded road network.
	GraphStats() osm.Stats

	// IsReady returns whether the road network is loaded.
	IsReady() bool
}
