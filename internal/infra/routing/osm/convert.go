// Package osm converts raw OpenStreetMap PBF extracts into the road
// network graph used by the routing layers. Only ways carrying a
// routable highway tag become edges; everything else in the extract is
// skipped.
package osm

import (
	"context"
	"os"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"github.com/yunusemre274/World-Car/internal/errors"
	"github.com/yunusemre274/World-Car/internal/infra/routing/graph"
)

// routableHighways lists the highway classes that become edges, the
// usual drive network profile.
var routableHighways = map[string]bool{
	"motorway":       true,
	"motorway_link":  true,
	"trunk":          true,
	"trunk_link":     true,
	"primary":        true,
	"primary_link":   true,
	"secondary":      true,
	"secondary_link": true,
	"tertiary":       true,
	"tertiary_link":  true,
	"residential":    true,
	"unclassified":   true,
	"service":        true,
	"living_street":  true,
}

// RoutableHighwayTags returns the highway classes kept during
// conversion, sorted for stable output.
func RoutableHighwayTags() []string {
	tags := make([]string, 0, len(routableHighways))
	for tag := range routableHighways {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return tags
}

// ConverterConfig holds conversion options.
type ConverterConfig struct {
	// KeepLargestComponent drops nodes outside the largest weakly
	// connected component, so snapped endpoints are mutually reachable.
	KeepLargestComponent bool
}

// Converter reads a PBF extract and produces a graph.
type Converter struct {
	config ConverterConfig
}

// NewConverter creates a converter with the given options.
func NewConverter(config ConverterConfig) *Converter {
	return &Converter{config: config}
}

// roadWay is a routable way retained from the first scan pass.
type roadWay struct {
	nodes    []osm.NodeID
	oneWay   bool
	reversed bool
}

// Convert builds a graph from the PBF file at path. The file is scanned
// twice: first to find the ways that qualify as roads, then to resolve
// the coordinates of the nodes those ways reference.
func (c *Converter) Convert(ctx context.Context, path string) (*graph.Graph, error) {
	ways, needed, err := c.scanWays(ctx, path)
	if err != nil {
		return nil, errors.Wrap(err, "scan ways")
	}
	if len(ways) == 0 {
		return nil, errors.Errorf("no routable ways found in %s", path)
	}

	positions, err := c.scanNodes(ctx, path, needed)
	if err != nil {
		return nil, errors.Wrap(err, "scan nodes")
	}

	g := c.buildGraph(ways, positions)
	if c.config.KeepLargestComponent {
		g = LargestComponent(g)
	}

	return g, nil
}

func (c *Converter) scanWays(ctx context.Context, path string) ([]roadWay, map[osm.NodeID]bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}
	defer file.Close()

	scanner := osmpbf.New(ctx, file, 3)
	defer scanner.Close()
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	var ways []roadWay
	needed := make(map[osm.NodeID]bool)

	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok || len(way.Nodes) < 2 {
			continue
		}
		if !routableHighways[way.Tags.Find("highway")] {
			continue
		}

		rw := roadWay{nodes: make([]osm.NodeID, 0, len(way.Nodes))}
		for _, wn := range way.Nodes {
			rw.nodes = append(rw.nodes, wn.ID)
			needed[wn.ID] = true
		}

		switch way.Tags.Find("oneway") {
		case "yes", "true", "1":
			rw.oneWay = true
		case "-1":
			rw.oneWay = true
			rw.reversed = true
		default:
			// Roundabouts are implicitly one-way.
			if way.Tags.Find("junction") == "roundabout" {
				rw.oneWay = true
			}
		}

		ways = append(ways, rw)
	}

	return ways, needed, errors.WithStack(scanner.Err())
}

func (c *Converter) scanNodes(ctx context.Context, path string, needed map[osm.NodeID]bool) (map[osm.NodeID]orb.Point, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer file.Close()

	scanner := osmpbf.New(ctx, file, 3)
	defer scanner.Close()
	scanner.SkipWays = true
	scanner.SkipRelations = true

	positions := make(map[osm.NodeID]orb.Point, len(needed))
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok || !needed[node.ID] {
			continue
		}
		positions[node.ID] = orb.Point{node.Lon, node.Lat}
	}

	return positions, errors.WithStack(scanner.Err())
}

func (c *Converter) buildGraph(ways []roadWay, positions map[osm.NodeID]orb.Point) *graph.Graph {
	g := graph.New()

	for _, way := range ways {
		ids := way.nodes
		if way.reversed {
			ids = reverse(ids)
		}

		for i := 1; i < len(ids); i++ {
			fromPos, okFrom := positions[ids[i-1]]
			toPos, okTo := positions[ids[i]]
			if !okFrom || !okTo {
				// Extract boundaries can truncate ways.
				continue
			}

			from := graph.NodeID(ids[i-1])
			to := graph.NodeID(ids[i])
			g.AddNode(from, fromPos)
			g.AddNode(to, toPos)

			weight := graph.Haversine(fromPos, toPos)
			g.AddEdge(from, to, weight)
			if !way.oneWay {
				g.AddEdge(to, from, weight)
			}
		}
	}

	return g
}

func reverse(ids []osm.NodeID) []osm.NodeID {
	out := make([]osm.NodeID, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}

	return out
}
