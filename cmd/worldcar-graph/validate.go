package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yunusemre274/World-Car/internal/errors"
	"github.com/yunusemre274/World-Car/internal/infra/routing/loader"
)

func runValidate(dir string) error {
	fmt.Printf("Validating graph data in directory: %s\n", dir)

	if err := validateGraphData(dir); err != nil {
		return errors.Wrap(err, "validation failed")
	}

	fmt.Println("Validation passed!")

	return nil
}

func validateGraphData(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return errors.Errorf("directory does not exist: %s", dir)
	}

	requiredFiles := []string{
		"metadata.json",
		"nodes.csv",
		"edges.csv",
	}

	fmt.Println("Checking required files...")
	for _, filename := range requiredFiles {
		filePath := filepath.Join(dir, filename)
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			return errors.Errorf("required file missing: %s", filename)
		}
		fmt.Printf("  ok %s\n", filename)
	}

	fmt.Println("\nValidating metadata...")
	metadata, err := loader.LoadMetadata(dir)
	if err != nil {
		return errors.Wrap(err, "failed to load metadata")
	}

	if err := metadata.Validate(); err != nil {
		return err
	}

	fmt.Printf("  Version:   %s\n", metadata.Version)
	fmt.Printf("  Source:    %s (%s)\n", metadata.Source.Filename, formatBytes(metadata.Source.SizeBytes))
	fmt.Printf("  Generated: %s\n", metadata.Processing.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Println("\nLoading graph...")
	g, err := loader.NewCSVLoader(dir).Load()
	if err != nil {
		return errors.Wrap(err, "failed to load graph")
	}

	if int64(g.NumNodes()) != metadata.Output.NodesCount {
		return errors.Errorf("node count mismatch: csv has %d, metadata says %d",
			g.NumNodes(), metadata.Output.NodesCount)
	}
	if int64(g.NumEdges()) != metadata.Output.EdgesCount {
		return errors.Errorf("edge count mismatch: csv has %d, metadata says %d",
			g.NumEdges(), metadata.Output.EdgesCount)
	}

	fmt.Printf("  Nodes: %d\n", g.NumNodes())
	fmt.Printf("  Edges: %d\n", g.NumEdges())

	return nil
}
