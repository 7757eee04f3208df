package sim

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/isoballs/config"
	"github.com/pthm-cable/isoballs/contour"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Sources = []config.SourceConfig{
		{X: 180, Y: 200, Radius: 70, VX: 80, VY: 40},
		{X: 260, Y: 200, Radius: 50, VX: -80, VY: 80},
		{X: 400, Y: 300, Radius: 30, VX: -160, VY: 160},
	}
	return cfg
}

type recordingRenderer struct {
	frames int
	last   *Frame
}

func (r *recordingRenderer) DrawFrame(f *Frame) {
	r.frames++
	r.last = f
}

func TestEndToEndZeroElapsed(t *testing.T) {
	cfg := testConfig(t)
	s := New(cfg)

	f := s.Tick(0)

	if f.Grid.Cols != 59 || f.Grid.Rows != 45 {
		t.Fatalf("grid = %dx%d, want 59x45", f.Grid.Cols, f.Grid.Rows)
	}

	// Sample buffer matches the formula applied at every vertex
	want := make([]float64, 0, f.Grid.Len())
	for row := 0; row < f.Grid.Rows; row++ {
		for col := 0; col < f.Grid.Cols; col++ {
			x := cfg.Domain.Offset + float64(col)*cfg.Grid.CellSize
			y := cfg.Domain.Offset + float64(row)*cfg.Grid.CellSize
			var v float64
			for _, sc := range cfg.Sources {
				dx, dy := sc.X-x, sc.Y-y
				v += sc.Radius * sc.Radius / (dx*dx + dy*dy)
			}
			want = append(want, v)
		}
	}
	if diff := cmp.Diff(want, f.Samples.Data, cmpopts.EquateApprox(1e-12, 0)); diff != "" {
		t.Errorf("sample buffer mismatch (-formula +sampled):\n%s", diff)
	}

	// Sources did not drift
	for i, src := range f.Sources {
		sc := cfg.Sources[i]
		if src.Centre != (r2.Vec{X: sc.X, Y: sc.Y}) {
			t.Errorf("source %d moved to %v with zero elapsed", i, src.Centre)
		}
	}

	if len(f.Segments) == 0 {
		t.Fatal("no contour segments")
	}
	for _, seg := range f.Segments {
		for _, p := range []r2.Vec{seg.Begin, seg.End} {
			if p.X < 0 || p.X > cfg.Domain.Width || p.Y < 0 || p.Y > cfg.Domain.Height {
				t.Errorf("segment endpoint %v outside the domain", p)
			}
		}
	}
	if f.Stats.Segments != len(f.Segments) {
		t.Errorf("Stats.Segments = %d, want %d", f.Stats.Segments, len(f.Segments))
	}
	if !f.Has(EventGridRedraw) {
		t.Error("first frame did not request a grid redraw")
	}
}

func TestTickEventsAreDrained(t *testing.T) {
	s := New(testConfig(t))

	if f := s.Tick(0); !f.Has(EventGridRedraw) {
		t.Fatal("missing start-up grid redraw")
	}
	if f := s.Tick(0); len(f.Events) != 0 {
		t.Errorf("second frame events = %v, want none", f.Events)
	}
}

func TestTickAdvancesPhysics(t *testing.T) {
	s := New(testConfig(t))

	f := s.Tick(0.5)
	want := []r2.Vec{{X: 220, Y: 220}, {X: 220, Y: 240}, {X: 320, Y: 380}}
	for i, src := range f.Sources {
		if src.Centre != want[i] {
			t.Errorf("source %d at %v, want %v", i, src.Centre, want[i])
		}
	}
	if f.FPS != 2 {
		t.Errorf("FPS = %v, want 2", f.FPS)
	}
}

func TestFrozenStateDoesNotMove(t *testing.T) {
	s := New(testConfig(t))
	s.SetAnimate(false)

	f := s.Tick(1)
	if f.Sources[0].Centre != (r2.Vec{X: 180, Y: 200}) {
		t.Errorf("frozen source moved to %v", f.Sources[0].Centre)
	}
	if f.Flags.Animate {
		t.Error("frame reports animation on")
	}
}

func TestDraggedSourceExcludedFromPhysics(t *testing.T) {
	s := New(testConfig(t))

	if !s.PointerDown(r2.Vec{X: 215, Y: 200}) {
		t.Fatal("PointerDown missed")
	}
	s.PointerMove(r2.Vec{X: 225, Y: 210})

	f := s.Tick(1)
	if f.Selected != 0 {
		t.Errorf("Selected = %d, want 0", f.Selected)
	}
	if !f.Has(EventPick) {
		t.Error("pick event missing")
	}
	if f.Sources[0].Centre != (r2.Vec{X: 190, Y: 210}) {
		t.Errorf("dragged source at %v, want (190, 210)", f.Sources[0].Centre)
	}
	if f.Sources[1].Centre != (r2.Vec{X: 180, Y: 280}) {
		t.Errorf("free source at %v, want (180, 280)", f.Sources[1].Centre)
	}

	s.PointerUp()
	f = s.Tick(0)
	if f.Selected != -1 || !f.Has(EventRelease) {
		t.Errorf("after release Selected = %d, events = %v", f.Selected, f.Events)
	}
}

func TestDraggedSourceStillClampedToWalls(t *testing.T) {
	s := New(testConfig(t))

	s.PointerDown(r2.Vec{X: 400, Y: 300})
	s.PointerMove(r2.Vec{X: 400, Y: 470})

	f := s.Tick(0)
	if f.Sources[2].Centre.Y != 450 {
		t.Errorf("dragged source y = %v, want clamped 450", f.Sources[2].Centre.Y)
	}
}

func TestSetResolution(t *testing.T) {
	s := New(testConfig(t))
	s.Tick(0)
	reallocs := s.Sampler().Reallocations()

	s.SetResolution(0)
	if g := s.Grid(); g.CellSize != 50 || g.Cols != 14 || g.Rows != 11 {
		t.Errorf("resolution 0 grid = %s cell %v", g.Label(), g.CellSize)
	}
	// Reallocation waits for the next tick
	if s.Sampler().Reallocations() != reallocs {
		t.Error("buffer reallocated before the next tick")
	}

	f := s.Tick(0)
	if s.Sampler().Reallocations() != reallocs+1 {
		t.Errorf("reallocations = %d, want %d", s.Sampler().Reallocations(), reallocs+1)
	}
	if !f.Has(EventResolution) || !f.Has(EventGridRedraw) {
		t.Errorf("resolution change events = %v", f.Events)
	}
	if len(f.Samples.Data) != 14*11 {
		t.Errorf("buffer has %d samples, want %d", len(f.Samples.Data), 14*11)
	}

	s.SetResolution(250)
	if s.Resolution() != 100 || s.Grid().CellSize != 2 {
		t.Errorf("clamped resolution = %v cell %v", s.Resolution(), s.Grid().CellSize)
	}
}

func TestToggles(t *testing.T) {
	s := New(testConfig(t))
	s.Tick(0)

	s.ToggleShowSamples()
	s.ToggleInterpolate()
	s.ToggleSaddleStrategy()
	f := s.Tick(0)

	want := Flags{
		Interpolate: false,
		ShowSamples: true,
		ShowGrid:    false,
		Animate:     true,
		Saddle:      contour.SaddleCenterSample,
	}
	if f.Flags != want {
		t.Errorf("flags = %+v, want %+v", f.Flags, want)
	}
	if len(f.Events) != 0 {
		t.Errorf("non-grid toggles emitted %v", f.Events)
	}

	s.ToggleShowGrid()
	if f := s.Tick(0); !f.Has(EventGridRedraw) {
		t.Error("grid toggle did not request a redraw")
	}
}

func TestModesAgreeOnActiveCells(t *testing.T) {
	s := New(testConfig(t))
	interpolated := s.Tick(0).Stats

	s.SetInterpolate(false)
	blocky := s.Tick(0).Stats

	if interpolated != blocky {
		t.Errorf("stats differ between modes: %+v vs %+v", interpolated, blocky)
	}
}

func TestStepRenders(t *testing.T) {
	s := New(testConfig(t))
	r := &recordingRenderer{}

	f := s.Step(1.0/60, r)

	if r.frames != 1 || r.last != f {
		t.Errorf("renderer saw %d frames", r.frames)
	}
	if s.TickCount() != 1 {
		t.Errorf("TickCount() = %d, want 1", s.TickCount())
	}
	if _, ok := s.Perf().Stats().PhaseAvg["render"]; !ok {
		t.Error("render phase not timed")
	}
}

func TestRemoveSourceAtReleasesPick(t *testing.T) {
	s := New(testConfig(t))

	s.PointerDown(r2.Vec{X: 400, Y: 300})
	if !s.RemoveSourceAt(r2.Vec{X: 400, Y: 300}) {
		t.Fatal("RemoveSourceAt missed")
	}
	if s.Controller().Dragging() {
		t.Error("removed source still picked")
	}

	f := s.Tick(0)
	if len(f.Sources) != 2 {
		t.Errorf("%d sources after removal, want 2", len(f.Sources))
	}

	s.AddSource(config.SourceConfig{X: 500, Y: 100, Radius: 20})
	if f := s.Tick(0); len(f.Sources) != 3 || f.Sources[2].Centre.X != 500 {
		t.Errorf("added source not appended: %+v", f.Sources)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := New(testConfig(t))
	s.Tick(0.5)

	snap := s.Snapshot()
	if snap.Tick != 1 || snap.SimTime != 0.5 {
		t.Errorf("snapshot tick/time = %d/%v", snap.Tick, snap.SimTime)
	}

	cfg := testConfig(t)
	if err := snap.Apply(cfg); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	restored := New(cfg).Tick(0)

	if diff := cmp.Diff(s.Tick(0).Sources, restored.Sources); diff != "" {
		t.Errorf("restored sources differ:\n%s", diff)
	}
}
