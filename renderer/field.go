// Package renderer draws simulation frames with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/isoballs/camera"
	"github.com/pthm-cable/isoballs/field"
	"github.com/pthm-cable/isoballs/sim"
)

// Palette holds the colours of the field layers.
type Palette struct {
	Contour  rl.Color
	Grid     rl.Color
	Sample   rl.Color
	Source   rl.Color
	Selected rl.Color
}

// DefaultPalette returns the default field colours.
func DefaultPalette() Palette {
	return Palette{
		Contour:  rl.Color{R: 0, G: 255, B: 0, A: 255},
		Grid:     rl.Color{R: 70, G: 70, B: 70, A: 255},
		Sample:   rl.Color{R: 200, G: 200, B: 200, A: 255},
		Source:   rl.Color{R: 255, G: 0, B: 0, A: 255},
		Selected: rl.Color{R: 255, G: 200, B: 0, A: 255},
	}
}

// sampleMarker is the side of the square drawn at an inside vertex, in
// screen pixels.
const sampleMarker = 4

// FieldRenderer draws frames into the camera viewport. It implements
// sim.Renderer.
type FieldRenderer struct {
	cam        *camera.Camera
	background *BackgroundRenderer
	grid       *GridLayer

	Palette      Palette
	SegmentWidth float32
}

// NewFieldRenderer creates a renderer drawing through cam.
func NewFieldRenderer(cam *camera.Camera) *FieldRenderer {
	p := DefaultPalette()
	return &FieldRenderer{
		cam:          cam,
		background:   NewBackgroundRenderer(0, 0, 0),
		grid:         NewGridLayer(cam.WorldW, cam.WorldH, p.Grid),
		Palette:      p,
		SegmentWidth: 1.5,
	}
}

// Init allocates GPU resources (must be called after the raylib window is
// created).
func (r *FieldRenderer) Init() {
	r.grid.Init()
}

// DrawFrame draws one frame: background, cached grid, sample markers,
// contour and, while frozen, the source circles.
func (r *FieldRenderer) DrawFrame(f *sim.Frame) {
	if f.Has(sim.EventGridRedraw) {
		r.grid.Redraw(f.Grid, f.Flags.ShowGrid)
	}

	rl.BeginScissorMode(0, 0, int32(r.cam.ViewportW), int32(r.cam.ViewportH))
	defer rl.EndScissorMode()

	r.background.Draw(r.cam)
	r.grid.Draw(r.cam)

	if f.Flags.ShowSamples {
		r.drawSamples(f)
	}
	r.drawSegments(f)
	if !f.Flags.Animate || f.Selected >= 0 {
		r.drawSources(f)
	}
}

func (r *FieldRenderer) drawSamples(f *sim.Frame) {
	if f.Samples == nil {
		return
	}
	half := float32(sampleMarker) / 2
	for row := 0; row < f.Samples.Rows; row++ {
		for col := 0; col < f.Samples.Cols; col++ {
			if f.Samples.At(row, col) < field.Threshold {
				continue
			}
			p := f.Grid.Vertex(row, col)
			if !r.cam.IsVisible(p.X, p.Y, 1) {
				continue
			}
			s := r.toScreen(p)
			rl.DrawRectangleV(rl.Vector2{X: s.X - half, Y: s.Y - half}, rl.Vector2{X: sampleMarker, Y: sampleMarker}, r.Palette.Sample)
		}
	}
}

func (r *FieldRenderer) drawSegments(f *sim.Frame) {
	for _, seg := range f.Segments {
		rl.DrawLineEx(r.toScreen(seg.Begin), r.toScreen(seg.End), r.SegmentWidth, r.Palette.Contour)
	}
}

// drawSources outlines every source while frozen, and the picked one
// while dragging.
func (r *FieldRenderer) drawSources(f *sim.Frame) {
	sx, _ := r.cam.Scale()
	for i, src := range f.Sources {
		color := r.Palette.Source
		if i == f.Selected {
			color = r.Palette.Selected
		} else if f.Flags.Animate {
			continue
		}
		c := r.toScreen(src.Centre)
		rl.DrawCircleLines(int32(c.X), int32(c.Y), float32(src.Radius*sx), color)
	}
}

func (r *FieldRenderer) toScreen(p r2.Vec) rl.Vector2 {
	x, y := r.cam.WorldToScreen(p.X, p.Y)
	return rl.Vector2{X: float32(x), Y: float32(y)}
}

// Unload frees resources.
func (r *FieldRenderer) Unload() {
	r.grid.Unload()
}
