package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/isoballs/contour"
	"github.com/pthm-cable/isoballs/sim"
)

// Controls is the state the panel edits.
type Controls interface {
	SetResolution(percent float64)
	SetInterpolate(on bool)
	SetShowSamples(on bool)
	SetShowGrid(on bool)
	SetAnimate(on bool)
	SetSaddleStrategy(strategy contour.SaddleStrategy)
}

// PanelData holds per-frame values shown in the panel.
type PanelData struct {
	Frame          *sim.Frame
	Sources        int
	InsideFraction float64
}

// ControlsPanel renders the right-side panel: the resolution slider, the
// view toggles, frame stats and the key legend.
type ControlsPanel struct {
	renderer *Renderer
	bindings *Bindings
	x, y     int32
	width    int32
	height   int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width, height int32, bindings *Bindings) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		bindings: bindings,
		x:        x,
		y:        y,
		width:    width,
		height:   height,
		visible:  true,
	}
}

// SetBounds moves and resizes the panel.
func (c *ControlsPanel) SetBounds(x, y, width, height int32) {
	c.x, c.y, c.width, c.height = x, y, width, height
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Width returns the horizontal space the panel takes, 0 when hidden.
func (c *ControlsPanel) Width() int32 {
	if !c.visible {
		return 0
	}
	return c.width
}

// Draw renders the panel and applies widget changes to ctl.
func (c *ControlsPanel) Draw(ctl Controls, data PanelData) {
	if !c.visible || data.Frame == nil {
		return
	}

	r := c.renderer
	t := r.Theme
	f := data.Frame
	inner := c.width - t.Padding*2
	x := c.x + t.Padding

	r.DrawPanel(c.x, c.y, c.width, c.height)
	y := c.y + t.Padding

	rl.DrawText("isoballs", x, y, 18, rl.White)
	y += t.LineHeight + 8

	// Resolution slider with the grid size to its right
	y = r.DrawSectionHeader(x, y, "Resolution")
	labelWidth := rl.MeasureText(f.Grid.Label(), t.FontSize) + 8
	newRes := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(inner - labelWidth), Height: float32(t.WidgetHeight)},
		"", f.Grid.Label(),
		float32(f.Resolution), 0, 100,
	)
	if float64(newRes) != f.Resolution {
		ctl.SetResolution(float64(newRes))
	}
	y += t.WidgetHeight + 4
	y = r.DrawLabelValue(x, y, "Cell size", fmt.Sprintf("%.2f", f.Grid.CellSize))
	y = r.DrawSpacer(y, 6)

	// Toggles
	y = r.DrawSectionHeader(x, y, "Display")
	flags := f.Flags
	if on := c.checkBox(x, y, "Interpolate", flags.Interpolate); on != flags.Interpolate {
		ctl.SetInterpolate(on)
	}
	y += t.WidgetHeight + 4
	if on := c.checkBox(x, y, "Show samples", flags.ShowSamples); on != flags.ShowSamples {
		ctl.SetShowSamples(on)
	}
	y += t.WidgetHeight + 4
	if on := c.checkBox(x, y, "Show grid", flags.ShowGrid); on != flags.ShowGrid {
		ctl.SetShowGrid(on)
	}
	y += t.WidgetHeight + 4
	if on := c.checkBox(x, y, "Animate", flags.Animate); on != flags.Animate {
		ctl.SetAnimate(on)
	}
	y += t.WidgetHeight + 4
	centre := flags.Saddle == contour.SaddleCenterSample
	if on := c.checkBox(x, y, "Centre saddles", centre); on != centre {
		if on {
			ctl.SetSaddleStrategy(contour.SaddleCenterSample)
		} else {
			ctl.SetSaddleStrategy(contour.SaddleFixedBothDiagonals)
		}
	}
	y += t.WidgetHeight + 8

	// Frame stats
	y = r.DrawSectionHeader(x, y, "Frame")
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%.0f", f.FPS))
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d", f.Tick))
	y = r.DrawLabelValue(x, y, "Sources", fmt.Sprintf("%d", data.Sources))
	y = r.DrawLabelValue(x, y, "Segments", fmt.Sprintf("%d", f.Stats.Segments))
	y = r.DrawLabelValue(x, y, "Saddles", fmt.Sprintf("%d", f.Stats.SaddleCells))
	y = r.DrawBar(x, y, "Inside", float32(data.InsideFraction), inner)
	y = r.DrawSpacer(y, 6)

	// Key legend
	if c.bindings == nil {
		return
	}
	for _, cat := range c.bindings.Categories() {
		y = r.DrawSectionHeader(x, y, categoryLabel(cat))
		for _, b := range c.bindings.ByCategory(cat) {
			y = r.DrawKeyHint(x, y, b.Name, b.KeyLabel, inner)
		}
		y += 4
	}
}

func (c *ControlsPanel) checkBox(x, y int32, text string, checked bool) bool {
	size := float32(c.renderer.Theme.WidgetHeight)
	return gui.CheckBox(rl.Rectangle{X: float32(x), Y: float32(y), Width: size, Height: size}, text, checked)
}
