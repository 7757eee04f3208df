// Package sim owns the simulation state and runs the per-frame pipeline:
// physics, resample, contour extraction and hand-off to a renderer.
package sim

import (
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/isoballs/config"
	"github.com/pthm-cable/isoballs/contour"
	"github.com/pthm-cable/isoballs/systems"
	"github.com/pthm-cable/isoballs/telemetry"
)

// State is one independent simulation instance. It is driven from a single
// goroutine: pointer input, toggles and Tick must not run concurrently.
type State struct {
	world      *ecs.World
	registry   *Registry
	physics    *systems.PhysicsSystem
	controller *Controller

	grid      systems.Grid
	sampler   *systems.Sampler
	extractor *contour.Extractor

	cellMax, cellMin float64
	resolution       float64
	flags            Flags

	segments []contour.Segment
	frame    Frame
	pending  []Event

	perf    *telemetry.PerfCollector
	tick    int32
	simTime float64
}

// New creates a state from cfg. Sources are created in declaration order.
func New(cfg *config.Config) *State {
	world := ecs.NewWorld()
	registry := NewRegistry(world)
	for _, sc := range cfg.Sources {
		registry.AddConfig(sc)
	}

	mode := contour.ModeBlocky
	if cfg.Derived.Interpolate {
		mode = contour.ModeInterpolated
	}
	saddle := contour.SaddleFixedBothDiagonals
	if cfg.Derived.CenterSaddle {
		saddle = contour.SaddleCenterSample
	}
	extractor := contour.NewExtractor(mode, saddle)
	extractor.Epsilon = cfg.Contour.Epsilon
	// The registry's model pointer is stable, so the centre sampler always
	// sees the current snapshot.
	extractor.CenterFunc = registry.Snapshot().Evaluate

	s := &State{
		world:      world,
		registry:   registry,
		physics:    systems.NewPhysicsSystem(world, systems.Bounds{Width: cfg.Domain.Width, Height: cfg.Domain.Height}),
		controller: NewController(registry),
		grid:       systems.NewGrid(cfg.Domain.Width, cfg.Domain.Height, cfg.Domain.Offset, cfg.Grid.CellSize),
		sampler:    systems.NewSampler(cfg.Grid.Workers),
		extractor:  extractor,
		cellMax:    cfg.Grid.CellMax,
		cellMin:    cfg.Grid.CellMin,
		resolution: cfg.Derived.Resolution,
		flags: Flags{
			Interpolate: mode == contour.ModeInterpolated,
			ShowSamples: cfg.View.ShowSamples,
			ShowGrid:    cfg.View.ShowGrid,
			Animate:     cfg.View.Animate,
			Saddle:      saddle,
		},
		perf: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
	}
	s.emit(EventGridRedraw)

	return s
}

// Tick runs one frame of the pipeline without rendering and returns the
// frame. elapsed is the time in seconds since the previous tick.
func (s *State) Tick(elapsed float64) *Frame {
	f := s.advance(elapsed)
	s.perf.EndTick()
	return f
}

// Step runs one frame and hands it to r.
func (s *State) Step(elapsed float64, r Renderer) *Frame {
	f := s.advance(elapsed)
	s.perf.StartPhase(telemetry.PhaseRender)
	r.DrawFrame(f)
	s.perf.EndTick()
	return f
}

// advance runs physics, resample and extraction. Each stage completes
// before the next starts.
func (s *State) advance(elapsed float64) *Frame {
	s.perf.StartTick()
	s.tick++
	s.simTime += elapsed

	s.perf.StartPhase(telemetry.PhasePhysics)
	if s.flags.Animate {
		excluded, ok := s.controller.Excluded()
		s.physics.Update(elapsed, excluded, ok)
	}
	model := s.registry.Snapshot()

	s.perf.StartPhase(telemetry.PhaseResample)
	buf := s.sampler.Resample(s.grid, model)

	s.perf.StartPhase(telemetry.PhaseContour)
	s.segments = s.extractor.Extract(s.grid, buf, s.segments[:0])

	fps := 0.0
	if elapsed > 0 {
		fps = math.Round(1 / elapsed)
	}

	selected := -1
	if e, ok := s.controller.Excluded(); ok {
		selected = s.registry.Index(e)
	}

	s.frame = Frame{
		Tick:       s.tick,
		Elapsed:    elapsed,
		FPS:        fps,
		Segments:   s.segments,
		Stats:      s.extractor.Last,
		Grid:       s.grid,
		Samples:    buf,
		Sources:    model.Sources,
		Selected:   selected,
		Flags:      s.flags,
		Resolution: s.resolution,
		Events:     append(s.frame.Events[:0], s.pending...),
	}
	s.pending = s.pending[:0]

	return &s.frame
}

func (s *State) emit(e Event) {
	s.pending = append(s.pending, e)
}

// SetResolution sets the grid resolution as a percentage in [0,100].
// Out-of-range values are clamped. The grid dimensions change at once;
// the sample buffer is reallocated on the next tick.
func (s *State) SetResolution(percent float64) {
	percent = math.Max(0, math.Min(100, percent))
	if percent == s.resolution {
		return
	}
	s.resolution = percent
	s.grid.SetCellSize(systems.CellSizeForResolution(percent, s.cellMax, s.cellMin))

	slog.Debug("resolution changed",
		"percent", percent,
		"cell_size", s.grid.CellSize,
		"grid", s.grid.Label(),
	)
	s.emit(EventResolution)
	s.emit(EventGridRedraw)
}

// Resolution returns the current resolution percentage.
func (s *State) Resolution() float64 {
	return s.resolution
}

// SetInterpolate switches between interpolated and blocky contours.
func (s *State) SetInterpolate(on bool) {
	s.flags.Interpolate = on
	if on {
		s.extractor.Mode = contour.ModeInterpolated
	} else {
		s.extractor.Mode = contour.ModeBlocky
	}
}

// SetShowSamples toggles the sample overlay.
func (s *State) SetShowSamples(on bool) {
	s.flags.ShowSamples = on
}

// SetShowGrid toggles the grid overlay and requests a grid redraw.
func (s *State) SetShowGrid(on bool) {
	if s.flags.ShowGrid == on {
		return
	}
	s.flags.ShowGrid = on
	s.emit(EventGridRedraw)
}

// SetAnimate freezes or resumes the physics.
func (s *State) SetAnimate(on bool) {
	s.flags.Animate = on
}

// SetSaddleStrategy selects how ambiguous cells are resolved.
func (s *State) SetSaddleStrategy(strategy contour.SaddleStrategy) {
	s.flags.Saddle = strategy
	s.extractor.Saddle = strategy
}

// ToggleInterpolate flips interpolated rendering.
func (s *State) ToggleInterpolate() { s.SetInterpolate(!s.flags.Interpolate) }

// ToggleShowSamples flips the sample overlay.
func (s *State) ToggleShowSamples() { s.SetShowSamples(!s.flags.ShowSamples) }

// ToggleShowGrid flips the grid overlay.
func (s *State) ToggleShowGrid() { s.SetShowGrid(!s.flags.ShowGrid) }

// ToggleAnimate flips the physics.
func (s *State) ToggleAnimate() { s.SetAnimate(!s.flags.Animate) }

// ToggleSaddleStrategy cycles between the two saddle strategies.
func (s *State) ToggleSaddleStrategy() {
	if s.flags.Saddle == contour.SaddleFixedBothDiagonals {
		s.SetSaddleStrategy(contour.SaddleCenterSample)
	} else {
		s.SetSaddleStrategy(contour.SaddleFixedBothDiagonals)
	}
}

// Flags returns the current view toggles.
func (s *State) Flags() Flags {
	return s.flags
}

// PointerDown forwards a press in domain coordinates to the controller.
func (s *State) PointerDown(pt r2.Vec) bool {
	if !s.controller.PointerDown(pt) {
		return false
	}
	e, _ := s.controller.Excluded()
	slog.Debug("source picked", "index", s.registry.Index(e), "x", pt.X, "y", pt.Y)
	s.emit(EventPick)
	return true
}

// PointerMove forwards a move in domain coordinates to the controller.
func (s *State) PointerMove(pt r2.Vec) bool {
	return s.controller.PointerMove(pt)
}

// PointerUp releases the picked source, if any.
func (s *State) PointerUp() {
	if !s.controller.Dragging() {
		return
	}
	s.controller.PointerUp()
	s.emit(EventRelease)
}

// Deselect drops the selection without a pointer up.
func (s *State) Deselect() {
	s.PointerUp()
}

// Controller returns the interaction controller.
func (s *State) Controller() *Controller {
	return s.controller
}

// AddSource adds a source after the existing ones.
func (s *State) AddSource(sc config.SourceConfig) ecs.Entity {
	return s.registry.AddConfig(sc)
}

// RemoveSourceAt removes the first source containing pt.
// A picked source is released first.
func (s *State) RemoveSourceAt(pt r2.Vec) bool {
	e, ok := s.registry.HitTest(pt)
	if !ok {
		return false
	}
	if picked, active := s.controller.Excluded(); active && picked == e {
		s.PointerUp()
	}
	return s.registry.Remove(e)
}

// Registry returns the source registry.
func (s *State) Registry() *Registry {
	return s.registry
}

// Grid returns the current sampling grid.
func (s *State) Grid() systems.Grid {
	return s.grid
}

// Sampler returns the grid sampler.
func (s *State) Sampler() *systems.Sampler {
	return s.sampler
}

// Perf returns the per-phase timing collector.
func (s *State) Perf() *telemetry.PerfCollector {
	return s.perf
}

// TickCount returns the number of ticks run so far.
func (s *State) TickCount() int32 {
	return s.tick
}

// Snapshot captures the current sources for a later restart.
func (s *State) Snapshot() *telemetry.Snapshot {
	return &telemetry.Snapshot{
		Version:      telemetry.SnapshotVersion,
		DomainWidth:  s.grid.DomainWidth,
		DomainHeight: s.grid.DomainHeight,
		CellSize:     s.grid.CellSize,
		Tick:         s.tick,
		SimTime:      s.simTime,
		Sources:      s.registry.Configs(),
	}
}
