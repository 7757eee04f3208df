package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/isoballs/camera"
	"github.com/pthm-cable/isoballs/field"
	"github.com/pthm-cable/isoballs/sim"
)

// Styles for the layers, drawn back to front.
var (
	styleGrid    = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	styleSamples = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleSources = tcell.StyleDefault.Foreground(tcell.ColorRed)
	stylePicked  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleContour = tcell.StyleDefault.Foreground(tcell.ColorLime)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// TermRenderer draws frames as braille dots. The bottom row is a status
// line. It implements sim.Renderer.
type TermRenderer struct {
	screen tcell.Screen
	cam    *camera.Camera

	grid    *Canvas // cached, rebuilt on grid redraw
	samples *Canvas
	sources *Canvas
	picked  *Canvas
	contour *Canvas

	gridValid bool
	showGrid  bool
}

// NewTermRenderer creates a renderer filling screen with the domain.
func NewTermRenderer(screen tcell.Screen, domainW, domainH float64) *TermRenderer {
	r := &TermRenderer{
		screen:  screen,
		grid:    NewCanvas(0, 0),
		samples: NewCanvas(0, 0),
		sources: NewCanvas(0, 0),
		picked:  NewCanvas(0, 0),
		contour: NewCanvas(0, 0),
	}
	cols, rows := r.fieldCells()
	r.cam = camera.NewStretched(float64(cols*dotsX), float64(rows*dotsY), domainW, domainH)
	r.Resize()
	return r
}

// fieldCells returns the terminal cells available to the field.
func (r *TermRenderer) fieldCells() (cols, rows int) {
	w, h := r.screen.Size()
	return max(w, 1), max(h-1, 1)
}

// Resize refits the canvases and camera to the screen.
func (r *TermRenderer) Resize() {
	cols, rows := r.fieldCells()
	for _, c := range []*Canvas{r.grid, r.samples, r.sources, r.picked, r.contour} {
		c.Resize(cols, rows)
	}
	r.cam.Resize(float64(cols*dotsX), float64(rows*dotsY))
	r.gridValid = false
}

// Camera returns the dot-space camera.
func (r *TermRenderer) Camera() *camera.Camera {
	return r.cam
}

// CellToWorld maps a terminal cell to the domain point under its centre.
func (r *TermRenderer) CellToWorld(col, row int) r2.Vec {
	x, y := r.cam.ScreenToWorld(float64(col*dotsX)+dotsX/2.0, float64(row*dotsY)+dotsY/2.0)
	return r2.Vec{X: x, Y: y}
}

func (r *TermRenderer) toDots(p r2.Vec) (x, y float64) {
	return r.cam.WorldToScreen(p.X, p.Y)
}

// DrawFrame draws one frame and shows it.
func (r *TermRenderer) DrawFrame(f *sim.Frame) {
	if f.Has(sim.EventGridRedraw) || !r.gridValid {
		r.redrawGrid(f)
	}

	r.samples.Clear()
	if f.Flags.ShowSamples && f.Samples != nil {
		for row := 0; row < f.Samples.Rows; row++ {
			for col := 0; col < f.Samples.Cols; col++ {
				if f.Samples.At(row, col) < field.Threshold {
					continue
				}
				x, y := r.toDots(f.Grid.Vertex(row, col))
				r.samples.Set(int(x), int(y))
			}
		}
	}

	r.sources.Clear()
	r.picked.Clear()
	sx, sy := r.cam.Scale()
	for i, src := range f.Sources {
		canvas := r.sources
		if i == f.Selected {
			canvas = r.picked
		} else if f.Flags.Animate {
			continue
		}
		x, y := r.toDots(src.Centre)
		canvas.Circle(x, y, src.Radius*sx, src.Radius*sy)
	}

	r.contour.Clear()
	for _, seg := range f.Segments {
		x0, y0 := r.toDots(seg.Begin)
		x1, y1 := r.toDots(seg.End)
		r.contour.Line(x0, y0, x1, y1)
	}

	r.screen.Clear()
	if r.showGrid {
		r.grid.Flush(r.screen, styleGrid)
	}
	r.samples.Flush(r.screen, styleSamples)
	r.sources.Flush(r.screen, styleSources)
	r.picked.Flush(r.screen, stylePicked)
	r.contour.Flush(r.screen, styleContour)
	r.drawStatus(f)
	r.screen.Show()
}

// redrawGrid rebuilds the cached grid layer.
func (r *TermRenderer) redrawGrid(f *sim.Frame) {
	r.showGrid = f.Flags.ShowGrid
	r.gridValid = true
	r.grid.Clear()
	if !r.showGrid {
		return
	}

	xs, ys := f.Grid.Lines()
	top, bottom := ys[0], ys[len(ys)-1]
	left, right := xs[0], xs[len(xs)-1]
	for _, x := range xs {
		x0, y0 := r.toDots(r2.Vec{X: x, Y: top})
		x1, y1 := r.toDots(r2.Vec{X: x, Y: bottom})
		r.grid.Line(x0, y0, x1, y1)
	}
	for _, y := range ys {
		x0, y0 := r.toDots(r2.Vec{X: left, Y: y})
		x1, y1 := r.toDots(r2.Vec{X: right, Y: y})
		r.grid.Line(x0, y0, x1, y1)
	}
}

func (r *TermRenderer) drawStatus(f *sim.Frame) {
	mode := "blocky"
	if f.Flags.Interpolate {
		mode = "interp"
	}
	anim := "run"
	if !f.Flags.Animate {
		anim = "frozen"
	}
	status := fmt.Sprintf(" %3.0f fps | %s (%3.0f%%) | %s | saddle %s | %s | %d segs | i s g c space +/- q ",
		f.FPS, f.Grid.Label(), f.Resolution, mode, f.Flags.Saddle, anim, len(f.Segments))

	w, h := r.screen.Size()
	row := h - 1
	col := 0
	for _, ch := range status {
		if col >= w {
			break
		}
		r.screen.SetContent(col, row, ch, nil, styleStatus)
		col++
	}
	for ; col < w; col++ {
		r.screen.SetContent(col, row, ' ', nil, styleStatus)
	}
}
