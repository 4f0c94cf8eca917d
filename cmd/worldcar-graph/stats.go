package main

import (
	"fmt"
	"time"

	"github.com/yunusemre274/World-Car/internal/errors"
	"github.com/yunusemre274/World-Car/internal/infra/routing/loader"
	"github.com/yunusemre274/World-Car/internal/infra/routing/osm"
)

func runStats(dir string) error {
	g, err := loader.NewCSVLoader(dir).Load()
	if err != nil {
		return errors.Wrap(err, "failed to load graph")
	}

	stats := osm.ComputeStats(g)

	fmt.Printf("Road network statistics for %s\n\n", dir)
	fmt.Printf("Nodes:                  %d\n", stats.Nodes)
	fmt.Printf("Edges:                  %d\n", stats.Edges)
	fmt.Printf("Total length:           %.1f km\n", stats.TotalLengthM/1000)
	fmt.Printf("Average edge length:    %.1f m\n", stats.AvgEdgeLengthM)
	fmt.Printf("Shortest edge:          %.1f m\n", stats.MinEdgeLengthM)
	fmt.Printf("Longest edge:           %.1f m\n", stats.MaxEdgeLengthM)
	fmt.Printf("Average degree:         %.2f\n", stats.AvgDegree)
	fmt.Printf("Connected components:   %d\n", stats.Components)
	fmt.Printf("Largest component:      %d nodes\n", stats.LargestComponentSize)

	if metadata, err := loader.LoadMetadata(dir); err == nil {
		fmt.Printf("\nSource: %s (%s), generated %s ago\n",
			metadata.Source.Filename,
			metadata.Source.Region,
			metadata.Age().Round(time.Second),
		)
	}

	return nil
}
