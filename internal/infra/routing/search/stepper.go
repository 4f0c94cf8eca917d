package search

import (
	"time"

	"github.com/yunusemre274/World-Car/internal/errors"
	"github.com/yunusemre274/World-Car/internal/infra/routing/graph"
)

// StepSnapshot is the state of the search after one node expansion.
// All maps and slices are copies; a consumer may hold or mutate them
// without affecting the search.
type StepSnapshot struct {
	Current   graph.NodeID             // node finalized by this step
	Visited   map[graph.NodeID]bool    // finalized nodes so far
	Frontier  []graph.NodeID           // discovered, not yet finalized
	Costs     map[graph.NodeID]float64 // best-known cost from source
	Path      []graph.NodeID           // best-known path source -> Current
	StepIndex int                      // 1-based expansion counter
	Done      bool                     // search terminated with this step
	Found     bool                     // target reached
	Result    *PathResult              // set on the terminal successful step
}

// Stepper runs the same search as FindPath but yields one snapshot per
// node expansion, on demand. The sequence is finite and non-restartable;
// a consumer stops it simply by not calling Step again. No background
// work happens between calls.
type Stepper struct {
	state *searchState
	start time.Time
	steps int
	last  *StepSnapshot
}

// NewStepper validates the endpoints and prepares a stepwise search.
// Apart from pacing, the exploration order is identical to FindPath on
// the same inputs.
func NewStepper(g *graph.Graph, source, target graph.NodeID, heuristicWeight float64) (*Stepper, error) {
	st, err := newSearchState(g, source, target, heuristicWeight)
	if err != nil {
		return nil, err
	}

	return &Stepper{state: st, start: time.Now()}, nil
}

// Step advances the search by one node expansion. On the terminal
// successful step the snapshot carries the full PathResult; when the
// frontier empties without reaching the target, Step returns the final
// snapshot together with ErrNoPathExists. Calling Step after
// termination returns the terminal snapshot again.
func (s *Stepper) Step() (*StepSnapshot, error) {
	if s.last != nil && s.last.Done {
		if !s.last.Found {
			return s.last, errors.WithStack(ErrNoPathExists)
		}

		return s.last, nil
	}

	current, ok := s.state.advance()
	if !ok {
		snap := s.snapshot(current)
		snap.Path = nil
		snap.Done = true
		s.last = snap

		return snap, errors.WithStack(ErrNoPathExists)
	}

	s.steps++
	snap := s.snapshot(current)
	if s.state.done && s.state.found {
		snap.Done = true
		snap.Found = true
		snap.Result = s.state.result(time.Since(s.start))
	}
	s.last = snap

	return snap, nil
}

// Done reports whether the search has terminated.
func (s *Stepper) Done() bool {
	return s.last != nil && s.last.Done
}

func (s *Stepper) snapshot(current graph.NodeID) *StepSnapshot {
	visited := make(map[graph.NodeID]bool, len(s.state.visited))
	for id := range s.state.visited {
		visited[id] = true
	}

	costs := make(map[graph.NodeID]float64, len(s.state.dist))
	for id, g := range s.state.dist {
		costs[id] = g
	}

	return &StepSnapshot{
		Current:   current,
		Visited:   visited,
		Frontier:  s.state.frontierNodes(),
		Costs:     costs,
		Path:      s.state.reconstructPath(current),
		StepIndex: s.steps,
	}
}
