package search

import (
	"github.com/yunusemre274/World-Car/internal/infra/routing/graph"
)

// frontierItem is a single entry in the open set. Nodes may be queued
// more than once before being finalized; stale entries are discarded on
// pop instead of reprioritized in place (lazy deletion).
type frontierItem struct {
	node graph.NodeID
	g    float64 // best-known cost from source at push time
	f    float64 // g + weighted heuristic estimate to target
	seq  int64   // insertion order, breaks f ties
}

// frontierQueue implements heap.Interface ordered by f. Entries with
// equal f pop in insertion order, which keeps the exploration order of
// a search reproducible between runs on the same inputs.
type frontierQueue []*frontierItem

func (q frontierQueue) Len() int { return len(q) }

func (q frontierQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}

	return q[i].seq < q[j].seq
}

func (q frontierQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *frontierQueue) Push(x any) {
	*q = append(*q, x.(*frontierItem))
}

func (q *frontierQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]

	return item
}
