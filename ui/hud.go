package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/isoballs/telemetry"
)

// HUDData holds the data for the status overlay drawn over the field.
type HUDData struct {
	Animate      bool
	Dragging     bool
	Zoom         float64
	Message      string // transient notice, e.g. a saved snapshot path
}

// HUD renders the status line over the field viewport.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	y := int32(10)
	if !data.Animate {
		rl.DrawText("FROZEN", 10, y, 16, rl.Yellow)
		y += 20
	}
	if data.Dragging {
		rl.DrawText("dragging", 10, y, 14, rl.LightGray)
		y += 18
	}
	if data.Zoom > 1.001 {
		rl.DrawText(fmt.Sprintf("zoom %.1fx", data.Zoom), 10, y, 14, rl.LightGray)
		y += 18
	}
	if data.Message != "" {
		rl.DrawText(data.Message, 10, y, 14, rl.SkyBlue)
	}
}

// DrawControls renders the mouse legend at the bottom of the viewport.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase frame timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	width := int32(230)
	height := int32(40 + 14*len(telemetry.Phases))
	r.DrawPanel(p.x, p.y, width, height)

	x := p.x + r.Theme.Padding
	y := p.y + 6

	rl.DrawText("Frame Phases", x, y, 14, rl.White)
	y += 18

	rl.DrawText(fmt.Sprintf("Tick: %s  (%.0f/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond), x, y, 12, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases {
		avg := stats.PhaseAvg[phase]
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-9s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
