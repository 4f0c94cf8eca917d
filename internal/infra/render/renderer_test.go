package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunusemre274/World-Car/config"
	"github.com/yunusemre274/World-Car/internal/infra/routing/graph"
	"github.com/yunusemre274/World-Car/internal/infra/routing/search"
)

func chainGraph() *graph.Graph {
	g := graph.New()

	positions := map[graph.NodeID]orb.Point{
		1: {29.000, 41.000},
		2: {29.010, 41.004},
		3: {29.020, 41.008},
	}
	for id, pos := range positions {
		g.AddNode(id, pos)
	}

	connect := func(a, b graph.NodeID) {
		w := graph.Haversine(positions[a], positions[b])
		g.AddEdge(a, b, w)
		g.AddEdge(b, a, w)
	}
	connect(1, 2)
	connect(2, 3)

	return g
}

func TestRenderer_RenderRoute(t *testing.T) {
	renderer := NewRenderer(&config.RenderConfig{Width: 320, Height: 240})
	g := chainGraph()

	result, err := search.FindPath(g, 1, 3, 1)
	require.NoError(t, err)

	img := renderer.RenderRoute(g, result.Path)
	bounds := img.Bounds()
	assert.Equal(t, 320, bounds.Dx())
	assert.Equal(t, 240, bounds.Dy())
}

func TestRenderer_RenderSteps(t *testing.T) {
	renderer := NewRenderer(&config.RenderConfig{Width: 160, Height: 120})
	g := chainGraph()

	stepper, err := search.NewStepper(g, 1, 3, 1)
	require.NoError(t, err)

	dir := t.TempDir()
	frames, err := renderer.RenderSteps(g, stepper, dir, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, frames)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	for _, entry := range entries {
		assert.Equal(t, ".png", filepath.Ext(entry.Name()))
	}
}

func TestRenderer_SavePNG(t *testing.T) {
	renderer := NewRenderer(nil)
	g := chainGraph()

	path := filepath.Join(t.TempDir(), "nested", "network.png")
	require.NoError(t, renderer.SavePNG(path, renderer.RenderNetwork(g)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
