package render

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/yunusemre274/World-Car/config"
	"github.com/yunusemre274/World-Car/internal/errors"
	"github.com/yunusemre274/World-Car/internal/infra/routing/graph"
	"github.com/yunusemre274/World-Car/internal/infra/routing/search"
)

// Palette matching the interactive visualizer: faint network, gray
// visited set, yellow frontier, red current node, green final path.
var (
	colorBackground = hexColor("#ffffff")
	colorNetwork    = hexColor("#d0d0d0")
	colorVisited    = hexColor("#9e9e9e")
	colorFrontier   = hexColor("#ffeb3b")
	colorCurrent    = hexColor("#ff1744")
	colorPath       = hexColor("#2196f3")
	colorFinalPath  = hexColor("#00c853")
	colorSource     = hexColor("#00e676")
	colorTarget     = hexColor("#ff9100")
)

// Renderer draws a road network and search progress to PNG images.
type Renderer struct {
	width  int
	height int
	margin float64
}

// NewRenderer creates a renderer from the render config section.
func NewRenderer(cfg *config.RenderConfig) *Renderer {
	width, height, margin := 1280, 720, 0.05
	if cfg != nil {
		if cfg.Width > 0 {
			width = cfg.Width
		}
		if cfg.Height > 0 {
			height = cfg.Height
		}
		if cfg.Margin > 0 {
			margin = cfg.Margin
		}
	}

	return &Renderer{width: width, height: height, margin: margin}
}

// RenderNetwork draws every edge of the graph.
func (r *Renderer) RenderNetwork(g *graph.Graph) image.Image {
	dc, camera := r.newContext(g)
	r.drawNetwork(dc, camera, g)

	return dc.Image()
}

// RenderRoute draws the network with a computed path highlighted and
// the endpoints marked.
func (r *Renderer) RenderRoute(g *graph.Graph, path []graph.NodeID) image.Image {
	dc, camera := r.newContext(g)
	r.drawNetwork(dc, camera, g)
	r.drawPath(dc, camera, g, path, colorFinalPath, 3.0)
	r.drawEndpoints(dc, camera, g, path)

	return dc.Image()
}

// RenderStep draws a single search snapshot over the network.
func (r *Renderer) RenderStep(g *graph.Graph, snap *search.StepSnapshot) image.Image {
	dc, camera := r.newContext(g)
	r.drawNetwork(dc, camera, g)

	dc.SetColor(colorVisited)
	for node := range snap.Visited {
		r.drawNode(dc, camera, g, node, 2.0)
	}

	dc.SetColor(colorFrontier)
	for _, node := range snap.Frontier {
		r.drawNode(dc, camera, g, node, 2.5)
	}

	pathColor := colorPath
	if snap.Done && snap.Found {
		pathColor = colorFinalPath
	}
	r.drawPath(dc, camera, g, snap.Path, pathColor, 3.0)

	dc.SetColor(colorCurrent)
	r.drawNode(dc, camera, g, snap.Current, 4.0)

	return dc.Image()
}

// RenderSteps runs a stepper to completion and writes one PNG frame
// per `every` steps (plus the terminal frame) into outDir.
func (r *Renderer) RenderSteps(g *graph.Graph, stepper *search.Stepper, outDir string, every int) (int, error) {
	if every < 1 {
		every = 1
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, errors.Wrap(err, "create frame directory")
	}

	frames := 0
	for {
		snap, err := stepper.Step()
		if err != nil && !errors.Is(err, search.ErrNoPathExists) {
			return frames, err
		}

		if snap.Done || snap.StepIndex%every == 0 {
			name := filepath.Join(outDir, fmt.Sprintf("step_%05d.png", snap.StepIndex))
			if saveErr := gg.SavePNG(name, r.RenderStep(g, snap)); saveErr != nil {
				return frames, errors.Wrapf(saveErr, "write frame %s", name)
			}
			frames++
		}

		if snap.Done {
			if err != nil {
				return frames, err
			}

			return frames, nil
		}
	}
}

// SavePNG writes an image to disk.
func (r *Renderer) SavePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}

	return errors.Wrap(gg.SavePNG(path, img), "write png")
}

func (r *Renderer) newContext(g *graph.Graph) (*gg.Context, *Camera) {
	dc := gg.NewContext(r.width, r.height)
	dc.SetColor(colorBackground)
	dc.Clear()

	camera := NewCamera(r.width, r.height)
	camera.FitToBounds(g.Bound(), r.margin)

	return dc, camera
}

func (r *Renderer) drawNetwork(dc *gg.Context, camera *Camera, g *graph.Graph) {
	dc.SetColor(colorNetwork)
	dc.SetLineWidth(1.0)

	for node, pos := range g.Nodes {
		x1, y1 := camera.WorldToScreen(pos)
		for _, edge := range g.Edges[node] {
			toPos, ok := g.Position(edge.To)
			if !ok {
				continue
			}

			x2, y2 := camera.WorldToScreen(toPos)
			dc.DrawLine(x1, y1, x2, y2)
		}
	}
	dc.Stroke()
}

func (r *Renderer) drawPath(dc *gg.Context, camera *Camera, g *graph.Graph, path []graph.NodeID, c color.Color, lineWidth float64) {
	if len(path) < 2 {
		return
	}

	dc.SetColor(c)
	dc.SetLineWidth(lineWidth)

	first, ok := g.Position(path[0])
	if !ok {
		return
	}
	dc.MoveTo(camera.WorldToScreen(first))

	for _, node := range path[1:] {
		pos, ok := g.Position(node)
		if !ok {
			continue
		}
		dc.LineTo(camera.WorldToScreen(pos))
	}
	dc.Stroke()
}

func (r *Renderer) drawEndpoints(dc *gg.Context, camera *Camera, g *graph.Graph, path []graph.NodeID) {
	if len(path) == 0 {
		return
	}

	dc.SetColor(colorSource)
	r.drawNode(dc, camera, g, path[0], 6.0)

	dc.SetColor(colorTarget)
	r.drawNode(dc, camera, g, path[len(path)-1], 6.0)
}

func (r *Renderer) drawNode(dc *gg.Context, camera *Camera, g *graph.Graph, node graph.NodeID, radius float64) {
	pos, ok := g.Position(node)
	if !ok {
		return
	}

	x, y := camera.WorldToScreen(pos)
	dc.DrawCircle(x, y, radius)
	dc.Fill()
}

func hexColor(s string) color.RGBA {
	var r, g, b uint8
	fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b)

	return color.RGBA{R: r, G: g, B: b, A: 255}
}
