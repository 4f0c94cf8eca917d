package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yunusemre274/World-Car/internal/errors"
	"github.com/yunusemre274/World-Car/internal/infra/routing/loader"
	"github.com/yunusemre274/World-Car/internal/infra/routing/osm"
)

func runConvert(ctx context.Context, input, output, region string, keepLargest bool) error {
	fmt.Printf("Converting OSM data from %s to %s\n", input, output)
	fmt.Printf("Region: %s\n", region)
	fmt.Printf("Keep largest component: %v\n", keepLargest)
	fmt.Println()

	info, err := os.Stat(input)
	if os.IsNotExist(err) {
		return errors.Errorf("input file does not exist: %s", input)
	} else if err != nil {
		return errors.Wrap(err, "failed to stat input file")
	}

	if err := os.MkdirAll(output, 0o755); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}

	startTime := time.Now()

	converter := osm.NewConverter(osm.ConverterConfig{KeepLargestComponent: keepLargest})
	g, err := converter.Convert(ctx, input)
	if err != nil {
		return errors.Wrap(err, "conversion failed")
	}

	fmt.Printf("Converted in %s: %d nodes, %d edges\n",
		time.Since(startTime).Round(time.Millisecond), g.NumNodes(), g.NumEdges())

	csvLoader := loader.NewCSVLoader(output)
	if err := csvLoader.Save(g); err != nil {
		return errors.Wrap(err, "failed to write graph CSV files")
	}

	if err := writeMetadata(input, output, region, info.Size(), g.NumNodes(), g.NumEdges()); err != nil {
		return errors.Wrap(err, "failed to generate metadata")
	}

	fmt.Println("Conversion completed successfully!")

	return nil
}

func writeMetadata(input, output, region string, sizeBytes int64, nodes, edges int) error {
	sum, err := fileSHA256(input)
	if err != nil {
		return err
	}

	url := ""
	if regionConfig, ok := GetRegionConfig(region); ok {
		url = regionConfig.URL
	}

	metadata := &loader.GraphMetadata{
		Version: "1.0",
		Source: loader.SourceInfo{
			Region:    region,
			URL:       url,
			Filename:  filepath.Base(input),
			SizeBytes: sizeBytes,
			SHA256:    sum,
		},
		Processing: loader.ProcessingInfo{
			GeneratedAt:  time.Now().UTC(),
			NetworkType:  "drive",
			TagsIncluded: osm.RoutableHighwayTags(),
		},
		Output: loader.OutputInfo{
			NodesCount: int64(nodes),
			EdgesCount: int64(edges),
		},
	}

	return metadata.Write(output)
}
