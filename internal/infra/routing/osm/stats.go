package osm

import (
	"math"

	"github.com/yunusemre274/World-Car/internal/infra/routing/graph"
)

// Stats summarizes a road network graph.
type Stats struct {
	Nodes                int     `json:"nodes"`
	Edges                int     `json:"edges"`
	TotalLengthM         float64 `json:"total_length_m"`
	AvgEdgeLengthM       float64 `json:"avg_edge_length_m"`
	MinEdgeLengthM       float64 `json:"min_edge_length_m"`
	MaxEdgeLengthM       float64 `json:"max_edge_length_m"`
	Components           int     `json:"components"`
	LargestComponentSize int     `json:"largest_component_size"`
	AvgDegree            float64 `json:"avg_degree"`
}

// ComputeStats calculates node, edge, length and connectivity metrics.
// Connectivity is computed on the undirected skeleton, matching the
// weakly connected component count of a directed network.
func ComputeStats(g *graph.Graph) Stats {
	stats := Stats{
		Nodes:          g.NumNodes(),
		Edges:          g.NumEdges(),
		MinEdgeLengthM: math.MaxFloat64,
	}

	for _, edges := range g.Edges {
		for _, edge := range edges {
			stats.TotalLengthM += edge.Weight
			stats.MinEdgeLengthM = math.Min(stats.MinEdgeLengthM, edge.Weight)
			stats.MaxEdgeLengthM = math.Max(stats.MaxEdgeLengthM, edge.Weight)
		}
	}

	if stats.Edges > 0 {
		stats.AvgEdgeLengthM = stats.TotalLengthM / float64(stats.Edges)
	} else {
		stats.MinEdgeLengthM = 0
	}
	if stats.Nodes > 0 {
		stats.AvgDegree = float64(stats.Edges) / float64(stats.Nodes)
	}

	components := weakComponents(g)
	stats.Components = len(components)
	for _, comp := range components {
		if len(comp) > stats.LargestComponentSize {
			stats.LargestComponentSize = len(comp)
		}
	}

	return stats
}

// LargestComponent returns a copy of g containing only the largest
// weakly connected component. Edges keep their original weights and
// node IDs are preserved.
func LargestComponent(g *graph.Graph) *graph.Graph {
	components := weakComponents(g)

	var largest []graph.NodeID
	for _, comp := range components {
		if len(comp) > len(largest) {
			largest = comp
		}
	}

	keep := make(map[graph.NodeID]bool, len(largest))
	for _, id := range largest {
		keep[id] = true
	}

	out := graph.New()
	for _, id := range largest {
		if pos, ok := g.Position(id); ok {
			out.AddNode(id, pos)
		}
	}
	for from, edges := range g.Edges {
		if !keep[from] {
			continue
		}
		for _, edge := range edges {
			if keep[edge.To] {
				out.AddEdge(from, edge.To, edge.Weight)
			}
		}
	}

	return out
}

// weakComponents groups nodes into weakly connected components via
// iterative DFS over the undirected adjacency.
func weakComponents(g *graph.Graph) [][]graph.NodeID {
	undirected := make(map[graph.NodeID][]graph.NodeID, g.NumNodes())
	for from, edges := range g.Edges {
		for _, edge := range edges {
			undirected[from] = append(undirected[from], edge.To)
			undirected[edge.To] = append(undirected[edge.To], from)
		}
	}

	seen := make(map[graph.NodeID]bool, g.NumNodes())
	var components [][]graph.NodeID

	for id := range g.Nodes {
		if seen[id] {
			continue
		}

		var comp []graph.NodeID
		stack := []graph.NodeID{id}
		seen[id] = true
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, n)
			for _, next := range undirected[n] {
				if !seen[next] {
					seen[next] = true
					stack = append(stack, next)
				}
			}
		}

		components = append(components, comp)
	}

	return components
}
