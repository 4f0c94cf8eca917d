package render

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamera_WorldToScreenRoundTrip(t *testing.T) {
	camera := NewCamera(1280, 720)
	camera.FitToBounds(orb.Bound{
		Min: orb.Point{29.00, 40.95},
		Max: orb.Point{29.10, 41.00},
	}, 0.1)

	p := orb.Point{29.04, 40.97}
	x, y := camera.WorldToScreen(p)
	back := camera.ScreenToWorld(x, y)

	assert.InDelta(t, p[0], back[0], 1e-9)
	assert.InDelta(t, p[1], back[1], 1e-9)
}

func TestCamera_FitToBoundsCenters(t *testing.T) {
	camera := NewCamera(1000, 500)
	bound := orb.Bound{
		Min: orb.Point{29.00, 40.90},
		Max: orb.Point{29.20, 41.00},
	}
	camera.FitToBounds(bound, 0)

	// the bound center lands on the screen center
	x, y := camera.WorldToScreen(bound.Center())
	assert.InDelta(t, 500, x, 1e-6)
	assert.InDelta(t, 250, y, 1e-6)

	// every corner stays on screen
	for _, corner := range []orb.Point{
		bound.Min,
		bound.Max,
		{bound.Min[0], bound.Max[1]},
		{bound.Max[0], bound.Min[1]},
	} {
		cx, cy := camera.WorldToScreen(corner)
		assert.GreaterOrEqual(t, cx, -1e-6)
		assert.LessOrEqual(t, cx, 1000+1e-6)
		assert.GreaterOrEqual(t, cy, -1e-6)
		assert.LessOrEqual(t, cy, 500+1e-6)
	}
}

func TestCamera_NorthIsUp(t *testing.T) {
	camera := NewCamera(800, 600)
	camera.FitToBounds(orb.Bound{
		Min: orb.Point{29.0, 40.0},
		Max: orb.Point{30.0, 41.0},
	}, 0)

	_, southY := camera.WorldToScreen(orb.Point{29.5, 40.2})
	_, northY := camera.WorldToScreen(orb.Point{29.5, 40.8})

	// larger latitude means smaller screen Y
	assert.Less(t, northY, southY)
}

func TestCamera_ZoomAtKeepsAnchor(t *testing.T) {
	camera := NewCamera(800, 600)
	camera.SetZoom(1000)

	anchorScreenX, anchorScreenY := 200.0, 150.0
	before := camera.ScreenToWorld(anchorScreenX, anchorScreenY)

	camera.ZoomAt(anchorScreenX, anchorScreenY, 0.5)

	after := camera.ScreenToWorld(anchorScreenX, anchorScreenY)
	assert.InDelta(t, before[0], after[0], 1e-9)
	assert.InDelta(t, before[1], after[1], 1e-9)
	assert.InDelta(t, 1500, camera.Zoom(), 1e-9)
}

func TestCamera_ZoomClamped(t *testing.T) {
	camera := NewCamera(800, 600)

	camera.SetZoom(0.001)
	assert.Equal(t, minZoom, camera.Zoom())

	camera.SetZoom(1e9)
	assert.Equal(t, maxZoom, camera.Zoom())
}

func TestCamera_Pan(t *testing.T) {
	camera := NewCamera(800, 600)
	camera.SetZoom(100)

	origin := camera.ScreenToWorld(400, 300)
	camera.Pan(50, 0)
	moved := camera.ScreenToWorld(400, 300)

	// panning right shifts the view west
	assert.Less(t, moved[0], origin[0])
	assert.InDelta(t, origin[1], moved[1], 1e-9)
}

func TestCamera_OnScreen(t *testing.T) {
	camera := NewCamera(800, 600)
	bound := orb.Bound{
		Min: orb.Point{29.0, 40.0},
		Max: orb.Point{30.0, 41.0},
	}
	camera.FitToBounds(bound, 0.1)

	assert.True(t, camera.OnScreen(bound.Center()))
	assert.False(t, camera.OnScreen(orb.Point{50.0, 10.0}))

	visible := camera.VisibleBounds()
	require.False(t, visible.IsEmpty())
	assert.True(t, visible.Contains(bound.Center()))
}
