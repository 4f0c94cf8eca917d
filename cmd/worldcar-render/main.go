package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/yunusemre274/World-Car/config"
	"github.com/yunusemre274/World-Car/internal/errors"
	"github.com/yunusemre274/World-Car/internal/infra/render"
	"github.com/yunusemre274/World-Car/internal/infra/routing/graph"
	"github.com/yunusemre274/World-Car/internal/infra/routing/loader"
	"github.com/yunusemre274/World-Car/internal/infra/routing/search"
	"github.com/yunusemre274/World-Car/internal/infra/routing/spatial"
)

// Renders a computed route, or the step-by-step progress of the
// search, as PNG images from a prepared graph directory.

func main() {
	dataDir := flag.String("data", "./data/graph", "Directory containing graph CSV files")
	startLat := flag.Float64("start-lat", 0, "Starting latitude")
	startLon := flag.Float64("start-lon", 0, "Starting longitude")
	endLat := flag.Float64("end-lat", 0, "Ending latitude")
	endLon := flag.Float64("end-lon", 0, "Ending longitude")
	weight := flag.Float64("weight", 1.0, "Heuristic weight (0 = Dijkstra, 1 = A*)")
	out := flag.String("out", "route.png", "Output PNG path (route mode)")
	steps := flag.Bool("steps", false, "Render one frame per search step instead of the final route")
	stepsDir := flag.String("steps-dir", "./frames", "Output directory for step frames")
	every := flag.Int("every", 25, "Render every Nth step frame")
	width := flag.Int("width", 1280, "Image width in pixels")
	height := flag.Int("height", 720, "Image height in pixels")
	flag.Parse()

	if err := run(*dataDir, *startLat, *startLon, *endLat, *endLon, *weight,
		*out, *steps, *stepsDir, *every, *width, *height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(dataDir string, startLat, startLon, endLat, endLon, weight float64,
	out string, steps bool, stepsDir string, every, width, height int) error {
	g, err := loader.NewCSVLoader(dataDir).Load()
	if err != nil {
		return errors.Wrap(err, "failed to load graph")
	}

	fmt.Printf("Loaded graph: %d nodes, %d edges\n", g.NumNodes(), g.NumEdges())

	index := spatial.NewGridIndex(g, 0)

	source, err := snap(index, startLat, startLon, "start")
	if err != nil {
		return err
	}

	target, err := snap(index, endLat, endLon, "end")
	if err != nil {
		return err
	}

	renderer := render.NewRenderer(&config.RenderConfig{Width: width, Height: height})

	if steps {
		return renderSteps(renderer, g, source, target, weight, stepsDir, every)
	}

	return renderRoute(renderer, g, source, target, weight, out)
}

func snap(index *spatial.GridIndex, lat, lon float64, label string) (graph.NodeID, error) {
	result, err := index.Nearest(lat, lon)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to snap %s point", label)
	}

	fmt.Printf("Snapped %s (%.5f, %.5f) to node %d, %.1f m away\n",
		label, lat, lon, result.Node, result.Distance)

	return result.Node, nil
}

func renderRoute(renderer *render.Renderer, g *graph.Graph, source, target graph.NodeID, weight float64, out string) error {
	result, err := search.FindPath(g, source, target, weight)
	if err != nil {
		return errors.Wrap(err, "path search failed")
	}

	fmt.Printf("Found path: %d nodes, %.1f m, %d nodes visited in %s\n",
		len(result.Path), result.Distance, result.VisitedCount, result.Duration)

	if err := renderer.SavePNG(out, renderer.RenderRoute(g, result.Path)); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", out)

	return nil
}

func renderSteps(renderer *render.Renderer, g *graph.Graph, source, target graph.NodeID, weight float64, dir string, every int) error {
	stepper, err := search.NewStepper(g, source, target, weight)
	if err != nil {
		return errors.Wrap(err, "failed to start search")
	}

	frames, err := renderer.RenderSteps(g, stepper, dir, every)
	if err != nil && !errors.Is(err, search.ErrNoPathExists) {
		return errors.Wrap(err, "failed to render step frames")
	}

	fmt.Printf("Wrote %d frames to %s\n", frames, dir)
	if errors.Is(err, search.ErrNoPathExists) {
		fmt.Println("No path exists between the snapped points")
	}

	return nil
}
