// Package graph holds the in-memory road network model shared by the
// search, snapping and rendering layers. A Graph is built once by a
// loader or converter and treated as read-only afterwards, so it may be
// shared across concurrent searches.
package graph

import (
	"math"
	"strconv"

	"github.com/paulmach/orb"
)

// NodeID uniquely identifies a node within a graph.
type NodeID int64

// Edge is a directed connection to another node. Weight is the physical
// length of the road segment in meters. Parallel edges between the same
// pair of nodes are allowed; they represent distinct road segments.
type Edge struct {
	To     NodeID
	Weight float64
}

// Graph maps every node to its geographic position and outgoing edges.
type Graph struct {
	Nodes map[NodeID]orb.Point
	Edges map[NodeID][]Edge

	nodeIdx  int64
	pointMap map[string]NodeID // "lat,lng" to NodeID for deduplication
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		Nodes:    make(map[NodeID]orb.Point),
		Edges:    make(map[NodeID][]Edge),
		pointMap: make(map[string]NodeID),
	}
}

// AddNode registers a node with an explicit ID, replacing any previous
// position. Loaders use this when node IDs come from an external source.
func (g *Graph) AddNode(id NodeID, point orb.Point) {
	g.Nodes[id] = point
	g.pointMap[pointKey(point)] = id
	if int64(id) > g.nodeIdx {
		g.nodeIdx = int64(id)
	}
}

// AddEdge appends a directed edge. Negative weights are ignored since
// the search assumes non-negative costs.
func (g *Graph) AddEdge(from, to NodeID, weight float64) {
	if weight < 0 {
		return
	}
	g.Edges[from] = append(g.Edges[from], Edge{To: to, Weight: weight})
}

// AddSegment adds a road polyline to the graph: one node per point, one
// directed edge per consecutive pair weighted by haversine length, and
// the reverse edges unless the segment is one-way.
func (g *Graph) AddSegment(points []orb.Point, oneWay bool) {
	if len(points) < 2 {
		return
	}

	prev := g.getOrCreateNode(points[0])
	for i := 1; i < len(points); i++ {
		curr := g.getOrCreateNode(points[i])

		dist := Haversine(points[i-1], points[i])
		g.Edges[prev] = append(g.Edges[prev], Edge{To: curr, Weight: dist})
		if !oneWay {
			g.Edges[curr] = append(g.Edges[curr], Edge{To: prev, Weight: dist})
		}

		prev = curr
	}
}

// getOrCreateNode returns the node at point, allocating a fresh ID when
// the point has not been seen before.
func (g *Graph) getOrCreateNode(point orb.Point) NodeID {
	key := pointKey(point)
	if id, exists := g.pointMap[key]; exists {
		return id
	}

	g.nodeIdx++
	id := NodeID(g.nodeIdx)
	g.Nodes[id] = point
	g.pointMap[key] = id

	return id
}

// HasNode reports whether id exists in the graph.
func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.Nodes[id]

	return ok
}

// Position returns the geographic position of a node.
func (g *Graph) Position(id NodeID) (orb.Point, bool) {
	p, ok := g.Nodes[id]

	return p, ok
}

// Outgoing returns the outgoing edges of a node. The returned slice is
// owned by the graph and must not be mutated.
func (g *Graph) Outgoing(id NodeID) []Edge {
	return g.Edges[id]
}

// MinEdgeWeight returns the smallest weight among parallel edges from u
// to v, or false when no such edge exists. Path weight validation uses
// this because the search always takes the cheapest parallel edge.
func (g *Graph) MinEdgeWeight(u, v NodeID) (float64, bool) {
	best := math.MaxFloat64
	found := false
	for _, e := range g.Edges[u] {
		if e.To == v && e.Weight < best {
			best = e.Weight
			found = true
		}
	}

	return best, found
}

// NumNodes returns the node count.
func (g *Graph) NumNodes() int {
	return len(g.Nodes)
}

// NumEdges returns the total directed edge count.
func (g *Graph) NumEdges() int {
	total := 0
	for _, edges := range g.Edges {
		total += len(edges)
	}

	return total
}

// Bound returns the bounding box of all node positions.
func (g *Graph) Bound() orb.Bound {
	bound := orb.Bound{Min: orb.Point{180, 90}, Max: orb.Point{-180, -90}}
	for _, p := range g.Nodes {
		bound = bound.Extend(p)
	}

	return bound
}

// pointKey creates a string key for a point rounded to ~1m precision.
func pointKey(p orb.Point) string {
	lat := math.Round(p[1]*100000) / 100000
	lng := math.Round(p[0]*100000) / 100000

	return formatFloat(lat) + "," + formatFloat(lng)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 5, 64)
}

// Haversine calculates the great circle distance between two points in meters.
func Haversine(p1, p2 orb.Point) float64 {
	const earthRadiusM = 6371000.0

	lat1Rad := p1[1] * math.Pi / 180
	lng1Rad := p1[0] * math.Pi / 180
	lat2Rad := p2[1] * math.Pi / 180
	lng2Rad := p2[0] * math.Pi / 180

	deltaLat := lat2Rad - lat1Rad
	deltaLng := lng2Rad - lng1Rad

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}
