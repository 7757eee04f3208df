// Package game wires the simulation state to the raylib frontend and the
// telemetry outputs.
package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/isoballs/camera"
	"github.com/pthm-cable/isoballs/config"
	"github.com/pthm-cable/isoballs/renderer"
	"github.com/pthm-cable/isoballs/sim"
	"github.com/pthm-cable/isoballs/telemetry"
	"github.com/pthm-cable/isoballs/ui"
)

// Options configures a Game.
type Options struct {
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	SnapshotDir    string
	Headless       bool
	Dt             float64 // fixed step in seconds for headless runs
}

// Game holds the complete frontend state.
type Game struct {
	state *sim.State

	// Rendering (nil in headless mode)
	camera    *camera.Camera
	renderer  *renderer.FieldRenderer
	controls  *ui.ControlsPanel
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	bindings  *ui.Bindings
	showPerf  bool

	// Telemetry
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool
	snapshotDir   string
	events        []telemetry.Event
	prevSelected  int

	headless bool
	dt       float64

	insideFraction float64
	message        string
	messageUntil   float64

	screenWidth, screenHeight float64
	panelWidth                float64
}

// NewGameWithOptions creates a game from the global config. In graphical
// mode the raylib window must already be open.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	dt := opts.Dt
	if dt <= 0 {
		dt = 1.0 / float64(cfg.Screen.TargetFPS)
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		state:        sim.New(cfg),
		collector:    telemetry.NewCollector(statsWindow, dt),
		logStats:     opts.LogStats,
		snapshotDir:  opts.SnapshotDir,
		headless:     opts.Headless,
		dt:           dt,
		prevSelected: -1,
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	} else if om != nil {
		g.outputManager = om
		if err := om.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
		slog.Info("writing telemetry", "dir", om.Dir())
	}
	if g.snapshotDir == "" {
		g.snapshotDir = opts.OutputDir
	}

	if opts.Headless {
		return g
	}

	g.screenWidth = float64(rl.GetScreenWidth())
	g.screenHeight = float64(rl.GetScreenHeight())
	g.panelWidth = float64(cfg.Screen.PanelWidth)

	g.bindings = ui.NewBindings()
	g.camera = camera.New(g.screenWidth-g.panelWidth, g.screenHeight, cfg.Domain.Width, cfg.Domain.Height)
	g.renderer = renderer.NewFieldRenderer(g.camera)
	g.renderer.Init()
	g.controls = ui.NewControlsPanel(int32(g.screenWidth-g.panelWidth), 0, int32(g.panelWidth), int32(g.screenHeight), g.bindings)
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(10, int32(g.screenHeight)-130)

	return g
}

// Update processes input for the next frame.
func (g *Game) Update() {
	g.handleInput()
}

// Draw runs one frame of the pipeline and draws it with the UI on top.
func (g *Game) Draw() {
	elapsed := float64(rl.GetFrameTime())

	rl.BeginDrawing()

	f := g.state.Step(elapsed, g.renderer)
	g.state.Perf().RecordFrame()
	g.afterFrame(f)

	g.drawUI(f)

	rl.EndDrawing()
}

// drawUI draws the HUD, the perf panel and the controls panel.
func (g *Game) drawUI(f *sim.Frame) {
	message := ""
	if rl.GetTime() < g.messageUntil {
		message = g.message
	}
	g.hud.Draw(ui.HUDData{
		Animate:  f.Flags.Animate,
		Dragging: g.state.Controller().Dragging(),
		Zoom:     g.camera.Zoom,
		Message:  message,
	})
	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)

	if g.showPerf {
		g.perfPanel.Draw(g.state.Perf().Stats())
	}

	// The panel edits the state after the frame is drawn; changes show up on
	// the next tick.
	g.controls.Draw(g.state, ui.PanelData{
		Frame:          f,
		Sources:        g.state.Registry().Len(),
		InsideFraction: g.insideFraction,
	})
}

// UpdateHeadless runs one fixed-step tick without graphics.
func (g *Game) UpdateHeadless() {
	f := g.state.Tick(g.dt)
	g.afterFrame(f)
}

// afterFrame feeds the frame to telemetry.
func (g *Game) afterFrame(f *sim.Frame) {
	g.recordFrame(f)
	g.flushTelemetry(f)
}

// notify shows a transient HUD message.
func (g *Game) notify(msg string) {
	if g.headless {
		return
	}
	g.message = msg
	g.messageUntil = rl.GetTime() + MessageSeconds
}

// State returns the simulation state.
func (g *Game) State() *sim.State {
	return g.state
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.state.TickCount()
}

// Unload frees resources and closes output files.
func (g *Game) Unload() {
	if g.renderer != nil {
		g.renderer.Unload()
	}
	g.writeEvents()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
