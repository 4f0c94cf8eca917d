// Package spatial provides nearest-neighbor lookup over road network
// nodes, used to snap GPS coordinates onto the graph. Nodes are bucketed
// into a fixed grid and queries search expanding rings of cells.
package spatial

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/yunusemre274/World-Car/internal/errors"
	"github.com/yunusemre274/World-Car/internal/infra/routing/graph"
)

// ErrSnapDistanceExceeded is returned when a coordinate is too far from
// the road network.
var ErrSnapDistanceExceeded = errors.New("spatial: coordinate too far from road network")

// ErrEmptyIndex is returned when the index holds no nodes.
var ErrEmptyIndex = errors.New("spatial: index is empty")

// SnapResult describes the nearest graph node to a query coordinate.
type SnapResult struct {
	Node     graph.NodeID
	Position orb.Point
	Distance float64 // meters from the query coordinate
}

type gridKey struct {
	latCell int
	lngCell int
}

type indexedNode struct {
	id  graph.NodeID
	pos orb.Point
}

// GridIndex buckets node positions into fixed-size cells and answers
// nearest queries by searching expanding rings of cells around the
// query point.
type GridIndex struct {
	nodes       []indexedNode
	grid        map[gridKey][]int
	cellSizeLat float64
	cellSizeLng float64
	minLat      float64
	maxLat      float64
	minLng      float64
	maxLng      float64
}

// NewGridIndex builds an index over every node of g. cellSizeKm sets
// the grid granularity; ~1km works well for urban road networks.
func NewGridIndex(g *graph.Graph, cellSizeKm float64) *GridIndex {
	if cellSizeKm <= 0 {
		cellSizeKm = 1.0
	}

	// 1 degree latitude is ~111 km; longitude shrinks with cos(lat),
	// ~0.75 at mid latitudes is close enough for cell sizing.
	idx := &GridIndex{
		grid:        make(map[gridKey][]int),
		cellSizeLat: cellSizeKm / 111.0,
		cellSizeLng: cellSizeKm / 83.0,
	}

	idx.build(g)

	return idx
}

func (idx *GridIndex) build(g *graph.Graph) {
	if g.NumNodes() == 0 {
		return
	}

	idx.nodes = make([]indexedNode, 0, g.NumNodes())
	first := true
	for id, pos := range g.Nodes {
		lat, lng := pos[1], pos[0]
		if first {
			idx.minLat, idx.maxLat = lat, lat
			idx.minLng, idx.maxLng = lng, lng
			first = false
		}
		idx.minLat = math.Min(idx.minLat, lat)
		idx.maxLat = math.Max(idx.maxLat, lat)
		idx.minLng = math.Min(idx.minLng, lng)
		idx.maxLng = math.Max(idx.maxLng, lng)

		idx.nodes = append(idx.nodes, indexedNode{id: id, pos: pos})
	}

	for i, node := range idx.nodes {
		key := idx.gridKeyFor(node.pos[1], node.pos[0])
		idx.grid[key] = append(idx.grid[key], i)
	}
}

// Size returns the number of indexed nodes.
func (idx *GridIndex) Size() int {
	return len(idx.nodes)
}

// Nearest finds the node closest to (lat, lng).
func (idx *GridIndex) Nearest(lat, lng float64) (*SnapResult, error) {
	if len(idx.nodes) == 0 {
		return nil, errors.WithStack(ErrEmptyIndex)
	}

	key := idx.gridKeyFor(lat, lng)

	bestIdx := -1
	bestDistSq := math.MaxFloat64

	for ring := 0; ring <= idx.maxSearchRing(); ring++ {
		found := idx.searchRing(lat, lng, key, ring, &bestIdx, &bestDistSq)

		// Once a hit exists, stop as soon as the next ring cannot hold
		// a closer point.
		if found && ring > 0 && idx.minDistanceToRingSq(ring+1) >= bestDistSq {
			break
		}
	}

	if bestIdx < 0 {
		return nil, errors.WithStack(ErrEmptyIndex)
	}

	node := idx.nodes[bestIdx]
	query := orb.Point{lng, lat}

	return &SnapResult{
		Node:     node.id,
		Position: node.pos,
		Distance: graph.Haversine(query, node.pos),
	}, nil
}

// NearestWithin behaves like Nearest but rejects matches farther than
// maxMeters with ErrSnapDistanceExceeded. The result is still returned
// alongside the error so callers can report how far off the query was.
func (idx *GridIndex) NearestWithin(lat, lng, maxMeters float64) (*SnapResult, error) {
	result, err := idx.Nearest(lat, lng)
	if err != nil {
		return nil, err
	}

	if result.Distance > maxMeters {
		return result, errors.WithStack(ErrSnapDistanceExceeded)
	}

	return result, nil
}

func (idx *GridIndex) gridKeyFor(lat, lng float64) gridKey {
	return gridKey{
		latCell: int(math.Floor((lat - idx.minLat) / idx.cellSizeLat)),
		lngCell: int(math.Floor((lng - idx.minLng) / idx.cellSizeLng)),
	}
}

func (idx *GridIndex) searchRing(lat, lng float64, center gridKey, ring int, bestIdx *int, bestDistSq *float64) bool {
	if ring == 0 {
		return idx.searchCell(lat, lng, center, bestIdx, bestDistSq)
	}

	found := false
	for dLat := -ring; dLat <= ring; dLat++ {
		for dLng := -ring; dLng <= ring; dLng++ {
			// Only the perimeter of this ring.
			if abs(dLat) != ring && abs(dLng) != ring {
				continue
			}

			key := gridKey{latCell: center.latCell + dLat, lngCell: center.lngCell + dLng}
			if idx.searchCell(lat, lng, key, bestIdx, bestDistSq) {
				found = true
			}
		}
	}

	return found
}

func (idx *GridIndex) searchCell(lat, lng float64, key gridKey, bestIdx *int, bestDistSq *float64) bool {
	indices, exists := idx.grid[key]
	if !exists {
		return false
	}

	found := false
	for _, i := range indices {
		node := idx.nodes[i]
		distSq := squaredDistance(lat, lng, node.pos[1], node.pos[0])
		if distSq < *bestDistSq {
			*bestDistSq = distSq
			*bestIdx = i
			found = true
		}
	}

	return found
}

func (idx *GridIndex) maxSearchRing() int {
	latCells := int(math.Ceil((idx.maxLat - idx.minLat) / idx.cellSizeLat))
	lngCells := int(math.Ceil((idx.maxLng - idx.minLng) / idx.cellSizeLng))

	return max(latCells, lngCells) + 1
}

func (idx *GridIndex) minDistanceToRingSq(ring int) float64 {
	latDist := float64(ring-1) * idx.cellSizeLat
	lngDist := float64(ring-1) * idx.cellSizeLng

	return latDist*latDist + lngDist*lngDist
}

// squaredDistance compares candidates in degree space; the real
// haversine distance is only computed for the winner.
func squaredDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := lat2 - lat1
	dLng := lng2 - lng1

	return dLat*dLat + dLng*dLng
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
