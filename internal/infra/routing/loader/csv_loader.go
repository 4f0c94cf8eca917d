// Package loader persists prepared road network graphs as CSV files so
// a converted network can be reloaded without touching the raw OSM
// extract again. The layout is one nodes.csv, one edges.csv and an
// optional metadata.json per data directory.
package loader

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/paulmach/orb"

	"github.com/yunusemre274/World-Car/internal/errors"
	"github.com/yunusemre274/World-Car/internal/infra/routing/graph"
)

const (
	nodesFile = "nodes.csv"
	edgesFile = "edges.csv"
)

// CSVLoader handles loading and saving of graph data in a directory.
type CSVLoader struct {
	dataDir string
}

// NewCSVLoader creates a loader for the given data directory.
func NewCSVLoader(dataDir string) *CSVLoader {
	return &CSVLoader{dataDir: dataDir}
}

// Load reads nodes.csv and edges.csv into a graph.
func (l *CSVLoader) Load() (*graph.Graph, error) {
	g := graph.New()

	if err := l.loadNodes(g); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := l.loadEdges(g); err != nil {
		return nil, errors.WithStack(err)
	}

	return g, nil
}

// loadNodes reads the node table.
// Expected CSV format: id,lat,lng
func (l *CSVLoader) loadNodes(g *graph.Graph) error {
	path := filepath.Join(l.dataDir, nodesFile)
	file, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Skip header row
	if _, err := reader.Read(); err != nil {
		return errors.WithStack(err)
	}

	lineNum := 1
	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return errors.WithStack(readErr)
		}
		lineNum++

		if len(record) < 3 {
			return errors.Errorf("invalid %s format at line %d: expected 3 columns, got %d", nodesFile, lineNum, len(record))
		}

		id, lat, lng, parseErr := parseNode(record)
		if parseErr != nil {
			return errors.Wrapf(parseErr, "parse %s line %d", nodesFile, lineNum)
		}

		g.AddNode(id, orb.Point{lng, lat})
	}

	return nil
}

// loadEdges reads the edge table.
// Expected CSV format: from,to,weight
func (l *CSVLoader) loadEdges(g *graph.Graph) error {
	path := filepath.Join(l.dataDir, edgesFile)
	file, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	if _, err := reader.Read(); err != nil {
		return errors.WithStack(err)
	}

	lineNum := 1
	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return errors.WithStack(readErr)
		}
		lineNum++

		if len(record) < 3 {
			return errors.Errorf("invalid %s format at line %d: expected 3 columns, got %d", edgesFile, lineNum, len(record))
		}

		from, to, weight, parseErr := parseEdge(record)
		if parseErr != nil {
			return errors.Wrapf(parseErr, "parse %s line %d", edgesFile, lineNum)
		}
		if !g.HasNode(from) || !g.HasNode(to) {
			return errors.Errorf("%s line %d references unknown node", edgesFile, lineNum)
		}

		g.AddEdge(from, to, weight)
	}

	return nil
}

// Save writes the graph back out as nodes.csv and edges.csv, creating
// the data directory when missing.
func (l *CSVLoader) Save(g *graph.Graph) error {
	if err := os.MkdirAll(l.dataDir, 0o755); err != nil {
		return errors.Wrap(err, "create data directory")
	}

	if err := l.saveNodes(g); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(l.saveEdges(g))
}

func (l *CSVLoader) saveNodes(g *graph.Graph) error {
	file, err := os.Create(filepath.Join(l.dataDir, nodesFile))
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"id", "lat", "lng"}); err != nil {
		return errors.WithStack(err)
	}

	for id, pos := range g.Nodes {
		record := []string{
			strconv.FormatInt(int64(id), 10),
			strconv.FormatFloat(pos[1], 'f', -1, 64),
			strconv.FormatFloat(pos[0], 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return errors.WithStack(err)
		}
	}

	return errors.WithStack(writer.Error())
}

func (l *CSVLoader) saveEdges(g *graph.Graph) error {
	file, err := os.Create(filepath.Join(l.dataDir, edgesFile))
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"from", "to", "weight"}); err != nil {
		return errors.WithStack(err)
	}

	for from, edges := range g.Edges {
		for _, edge := range edges {
			record := []string{
				strconv.FormatInt(int64(from), 10),
				strconv.FormatInt(int64(edge.To), 10),
				strconv.FormatFloat(edge.Weight, 'f', -1, 64),
			}
			if err := writer.Write(record); err != nil {
				return errors.WithStack(err)
			}
		}
	}

	return errors.WithStack(writer.Error())
}

// Exists reports whether the data directory holds a saved graph.
func (l *CSVLoader) Exists() bool {
	for _, name := range []string{nodesFile, edgesFile} {
		if _, err := os.Stat(filepath.Join(l.dataDir, name)); err != nil {
			return false
		}
	}

	return true
}

func parseNode(record []string) (graph.NodeID, float64, float64, error) {
	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return 0, 0, 0, errors.WithStack(err)
	}

	lat, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return 0, 0, 0, errors.WithStack(err)
	}

	lng, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return 0, 0, 0, errors.WithStack(err)
	}

	return graph.NodeID(id), lat, lng, nil
}

func parseEdge(record []string) (graph.NodeID, graph.NodeID, float64, error) {
	from, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return 0, 0, 0, errors.WithStack(err)
	}

	to, err := strconv.ParseInt(record[1], 10, 64)
	if err != nil {
		return 0, 0, 0, errors.WithStack(err)
	}

	weight, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return 0, 0, 0, errors.WithStack(err)
	}

	return graph.NodeID(from), graph.NodeID(to), weight, nil
}
