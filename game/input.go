package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/isoballs/config"
	"github.com/pthm-cable/isoballs/telemetry"
	"github.com/pthm-cable/isoballs/ui"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	for _, action := range g.bindings.Pressed() {
		g.applyAction(action)
	}

	g.handleCameraInput()
	g.handlePointer()
}

// applyAction runs a key-bound action.
func (g *Game) applyAction(action ui.Action) {
	switch action {
	case ui.ActionInterpolate:
		g.state.ToggleInterpolate()
	case ui.ActionSamples:
		g.state.ToggleShowSamples()
	case ui.ActionGrid:
		g.state.ToggleShowGrid()
	case ui.ActionAnimate:
		g.state.ToggleAnimate()
	case ui.ActionSaddle:
		g.state.ToggleSaddleStrategy()
		g.notify(fmt.Sprintf("saddles: %s", g.state.Flags().Saddle))
	case ui.ActionDeselect:
		g.state.Deselect()
	case ui.ActionSnapshot:
		g.SaveSnapshot()
	case ui.ActionPerf:
		g.showPerf = !g.showPerf
	case ui.ActionPanel:
		g.controls.Toggle()
		g.layout()
	}
}

// handlePointer translates the mouse into domain coordinates and forwards
// it to the state. Presses over the controls panel are ignored.
func (g *Game) handlePointer() {
	mouse := rl.GetMousePosition()
	sx, sy := float64(mouse.X), float64(mouse.Y)
	wx, wy := g.camera.ScreenToWorld(sx, sy)
	pt := r2.Vec{X: wx, Y: wy}
	inViewport := sx < g.camera.ViewportW

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && inViewport {
		g.state.PointerDown(pt)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) && g.state.Controller().Dragging() {
		g.state.PointerMove(pt)
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		g.state.PointerUp()
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) && inViewport && g.camera.InWorld(wx, wy) {
		g.toggleSourceAt(pt)
	}
}

// toggleSourceAt removes the first source under pt, or adds a new one
// there when there is none.
func (g *Game) toggleSourceAt(pt r2.Vec) {
	reg := g.state.Registry()
	if e, ok := reg.HitTest(pt); ok {
		idx := reg.Index(e)
		if g.state.RemoveSourceAt(pt) {
			g.recordEvent(telemetry.NewSourceRemovedEvent(g.Tick(), idx, pt))
			slog.Debug("source removed", "x", pt.X, "y", pt.Y, "count", reg.Len())
		}
		return
	}
	e := g.state.AddSource(config.SourceConfig{X: pt.X, Y: pt.Y, Radius: NewSourceRadius})
	g.recordEvent(telemetry.NewSourceAddedEvent(g.Tick(), reg.Index(e), pt, NewSourceRadius))
	slog.Debug("source added", "x", pt.X, "y", pt.Y, "count", reg.Len())
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.layout()
}

// layout sizes the viewport and the panel to the window.
func (g *Game) layout() {
	panel := float64(g.controls.Width())
	g.camera.Resize(g.screenWidth-panel, g.screenHeight)
	g.controls.SetBounds(int32(g.screenWidth-g.panelWidth), 0, int32(g.panelWidth), int32(g.screenHeight))
	g.perfPanel.SetPosition(10, int32(g.screenHeight)-130)
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	if g.camera == nil {
		return
	}

	// Arrow key panning
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(PanSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-PanSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, PanSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -PanSpeed)
	}

	// Zoom controls: mouse wheel or +/- keys
	if wheelMove := rl.GetMouseWheelMove(); wheelMove != 0 {
		g.camera.ZoomBy(1 + float64(wheelMove)*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(ZoomStep)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(1 / ZoomStep)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
