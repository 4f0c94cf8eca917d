package search

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunusemre274/World-Car/internal/infra/routing/graph"
)

func runToCompletion(t *testing.T, s *Stepper) []*StepSnapshot {
	t.Helper()

	var snaps []*StepSnapshot
	for {
		snap, err := s.Step()
		require.NoError(t, err)
		snaps = append(snaps, snap)
		if snap.Done {
			return snaps
		}
	}
}

func TestStepper_MatchesFindPath(t *testing.T) {
	g := lineGraph()

	oneShot, err := FindPath(g, 1, 4, 1)
	require.NoError(t, err)

	stepper, err := NewStepper(g, 1, 4, 1)
	require.NoError(t, err)

	snaps := runToCompletion(t, stepper)
	last := snaps[len(snaps)-1]

	require.True(t, last.Found)
	require.NotNil(t, last.Result)
	assert.Equal(t, oneShot.Path, last.Result.Path)
	assert.InDelta(t, oneShot.Distance, last.Result.Distance, 1e-9)
	assert.Equal(t, oneShot.VisitedCount, last.Result.VisitedCount)
	assert.Equal(t, oneShot.VisitedCount, len(snaps))
}

func TestStepper_SnapshotsAreConsistent(t *testing.T) {
	g := lineGraph()

	stepper, err := NewStepper(g, 1, 4, 0)
	require.NoError(t, err)

	prevVisited := 0
	for i, snap := range runToCompletion(t, stepper) {
		assert.Equal(t, i+1, snap.StepIndex)

		// visited set only grows, one node per step
		assert.Len(t, snap.Visited, prevVisited+1)
		prevVisited = len(snap.Visited)

		assert.True(t, snap.Visited[snap.Current], "current node must be finalized")

		// frontier never contains finalized nodes
		for _, node := range snap.Frontier {
			assert.False(t, snap.Visited[node])
		}

		// the reported path leads from the source to the current node
		require.NotEmpty(t, snap.Path)
		assert.Equal(t, graph.NodeID(1), snap.Path[0])
		assert.Equal(t, snap.Current, snap.Path[len(snap.Path)-1])

		// every path node has a known cost
		for _, node := range snap.Path {
			assert.Contains(t, snap.Costs, node)
		}
	}
}

func TestStepper_FirstStepIsSource(t *testing.T) {
	g := lineGraph()

	stepper, err := NewStepper(g, 1, 4, 1)
	require.NoError(t, err)

	snap, err := stepper.Step()
	require.NoError(t, err)

	assert.Equal(t, graph.NodeID(1), snap.Current)
	assert.Equal(t, []graph.NodeID{1}, snap.Path)
	assert.Zero(t, snap.Costs[1])
	assert.False(t, snap.Done)
}

func TestStepper_TerminalStepCarriesResult(t *testing.T) {
	g := lineGraph()

	stepper, err := NewStepper(g, 1, 4, 1)
	require.NoError(t, err)

	snaps := runToCompletion(t, stepper)
	last := snaps[len(snaps)-1]

	assert.True(t, last.Done)
	assert.True(t, last.Found)
	assert.Equal(t, graph.NodeID(4), last.Current)
	require.NotNil(t, last.Result)
	assert.Equal(t, graph.NodeID(4), last.Result.Path[len(last.Result.Path)-1])

	// only the terminal step carries a result
	for _, snap := range snaps[:len(snaps)-1] {
		assert.Nil(t, snap.Result)
		assert.False(t, snap.Done)
	}
}

func TestStepper_IdempotentAfterDone(t *testing.T) {
	g := lineGraph()

	stepper, err := NewStepper(g, 1, 2, 1)
	require.NoError(t, err)

	runToCompletion(t, stepper)
	require.True(t, stepper.Done())

	again, err := stepper.Step()
	require.NoError(t, err)
	assert.True(t, again.Done)
	assert.True(t, again.Found)
}

func TestStepper_NoPathExists(t *testing.T) {
	g := graph.New()
	g.AddNode(1, orb.Point{29.00, 41.00})
	g.AddNode(2, orb.Point{29.01, 41.00})

	stepper, err := NewStepper(g, 1, 2, 1)
	require.NoError(t, err)

	// the source itself is still expanded
	snap, err := stepper.Step()
	require.NoError(t, err)
	assert.False(t, snap.Done)

	snap, err = stepper.Step()
	assert.ErrorIs(t, err, ErrNoPathExists)
	assert.True(t, snap.Done)
	assert.False(t, snap.Found)
	assert.Empty(t, snap.Path)

	// repeated calls keep reporting the failure
	_, err = stepper.Step()
	assert.ErrorIs(t, err, ErrNoPathExists)
}

func TestStepper_SnapshotsAreCopies(t *testing.T) {
	g := lineGraph()

	stepper, err := NewStepper(g, 1, 4, 1)
	require.NoError(t, err)

	first, err := stepper.Step()
	require.NoError(t, err)

	// mutating a snapshot must not disturb the search
	first.Visited[99] = true
	first.Costs[99] = -1

	second, err := stepper.Step()
	require.NoError(t, err)
	assert.NotContains(t, second.Visited, graph.NodeID(99))
	assert.NotContains(t, second.Costs, graph.NodeID(99))
}

func TestStepper_InvalidInputs(t *testing.T) {
	g := lineGraph()

	_, err := NewStepper(g, 1, 99, 1)
	assert.ErrorIs(t, err, ErrNodeNotFound)

	_, err = NewStepper(g, 1, 4, -1)
	assert.ErrorIs(t, err, ErrInvalidHeuristicWeight)
}
