// Package search implements shortest path search over a road network
// graph: classic priority-queue label setting with an optional
// great-circle heuristic. A heuristic weight of 0 gives Dijkstra
// behavior, 1 gives admissible A*, above 1 trades optimality for fewer
// expansions. The Stepper variant exposes the same search one node
// expansion at a time for visualization.
package search

import (
	"container/heap"
	"time"

	"github.com/paulmach/orb"

	"github.com/yunusemre274/World-Car/internal/errors"
	"github.com/yunusemre274/World-Car/internal/infra/routing/graph"
)

// ErrNodeNotFound is returned when the source or target identifier is
// absent from the graph.
var ErrNodeNotFound = errors.New("search: node not found in graph")

// ErrNoPathExists is returned when the frontier empties before reaching
// the target. A legitimate outcome on disconnected or one-way graphs.
var ErrNoPathExists = errors.New("search: no path exists between nodes")

// ErrInvalidHeuristicWeight is returned for negative heuristic weights.
var ErrInvalidHeuristicWeight = errors.New("search: heuristic weight must be >= 0")

// PathResult is the outcome of a successful search.
type PathResult struct {
	Path         []graph.NodeID // ordered, source to target inclusive
	Distance     float64        // total path weight in meters
	VisitedCount int            // number of finalized nodes
	Duration     time.Duration  // wall-clock search time, informational
}

// FindPath computes the minimum-weight path from source to target.
// The graph is not mutated; all search state is private to the call, so
// concurrent searches may share one graph.
func FindPath(g *graph.Graph, source, target graph.NodeID, heuristicWeight float64) (*PathResult, error) {
	start := time.Now()

	st, err := newSearchState(g, source, target, heuristicWeight)
	if err != nil {
		return nil, err
	}

	for {
		if _, ok := st.advance(); !ok {
			break
		}
	}

	if !st.found {
		return nil, errors.WithStack(ErrNoPathExists)
	}

	return st.result(time.Since(start)), nil
}

// searchState holds the per-invocation state of one search. Both
// FindPath and Stepper drive the same advance loop, so the stepwise
// exploration order always matches the one-shot run.
type searchState struct {
	graph           *graph.Graph
	source, target  graph.NodeID
	heuristicWeight float64
	targetPos       orb.Point

	dist     map[graph.NodeID]float64
	prev     map[graph.NodeID]graph.NodeID
	visited  map[graph.NodeID]bool
	frontier frontierQueue
	seq      int64

	visitedCount int
	done         bool
	found        bool
}

func newSearchState(g *graph.Graph, source, target graph.NodeID, heuristicWeight float64) (*searchState, error) {
	if heuristicWeight < 0 {
		return nil, errors.WithStack(ErrInvalidHeuristicWeight)
	}
	if !g.HasNode(source) || !g.HasNode(target) {
		return nil, errors.WithStack(ErrNodeNotFound)
	}

	targetPos, _ := g.Position(target)

	st := &searchState{
		graph:           g,
		source:          source,
		target:          target,
		heuristicWeight: heuristicWeight,
		targetPos:       targetPos,
		dist:            map[graph.NodeID]float64{source: 0},
		prev:            make(map[graph.NodeID]graph.NodeID),
		visited:         make(map[graph.NodeID]bool),
		frontier:        make(frontierQueue, 0),
	}

	heap.Init(&st.frontier)
	st.push(source, 0)

	return st, nil
}

// push queues node with the given cost-from-source.
func (st *searchState) push(node graph.NodeID, g float64) {
	st.seq++
	heap.Push(&st.frontier, &frontierItem{
		node: node,
		g:    g,
		f:    g + st.heuristicWeight*st.heuristic(node),
		seq:  st.seq,
	})
}

// heuristic estimates the remaining cost from node to the target in
// meters. Great-circle distance never overestimates road distance, so
// the search stays optimal for weights up to 1.
func (st *searchState) heuristic(node graph.NodeID) float64 {
	pos, ok := st.graph.Position(node)
	if !ok {
		return 0
	}

	return graph.Haversine(pos, st.targetPos)
}

// advance finalizes the next node and relaxes its outgoing edges.
// It returns the finalized node, or ok=false once the search has
// terminated (target reached or frontier exhausted).
func (st *searchState) advance() (graph.NodeID, bool) {
	if st.done {
		return 0, false
	}

	for st.frontier.Len() > 0 {
		item := heap.Pop(&st.frontier).(*frontierItem)
		current := item.node

		// Stale entry from before a cheaper path was found.
		if st.visited[current] {
			continue
		}
		st.visited[current] = true
		st.visitedCount++

		if current == st.target {
			st.done = true
			st.found = true

			return current, true
		}

		st.relaxEdges(current)

		return current, true
	}

	st.done = true

	return 0, false
}

func (st *searchState) relaxEdges(current graph.NodeID) {
	base := st.dist[current]
	for _, edge := range st.graph.Outgoing(current) {
		if st.visited[edge.To] {
			continue
		}

		tentative := base + edge.Weight
		known, ok := st.dist[edge.To]
		if ok && tentative >= known {
			continue
		}

		st.dist[edge.To] = tentative
		st.prev[edge.To] = current
		st.push(edge.To, tentative)
	}
}

// result builds the PathResult after a successful search.
func (st *searchState) result(elapsed time.Duration) *PathResult {
	return &PathResult{
		Path:         st.reconstructPath(st.target),
		Distance:     st.dist[st.target],
		VisitedCount: st.visitedCount,
		Duration:     elapsed,
	}
}

// reconstructPath follows predecessor links backward from node and
// reverses the result.
func (st *searchState) reconstructPath(node graph.NodeID) []graph.NodeID {
	path := []graph.NodeID{node}
	for node != st.source {
		p, ok := st.prev[node]
		if !ok {
			break
		}
		path = append(path, p)
		node = p
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

// frontierNodes returns the distinct unfinalized nodes currently queued.
func (st *searchState) frontierNodes() []graph.NodeID {
	seen := make(map[graph.NodeID]bool, st.frontier.Len())
	nodes := make([]graph.NodeID, 0, st.frontier.Len())
	for _, item := range st.frontier {
		if st.visited[item.node] || seen[item.node] {
			continue
		}
		seen[item.node] = true
		nodes = append(nodes, item.node)
	}

	return nodes
}
