package telemetry

import (
	"math"
	"testing"
)

func TestCollectorWindowTicks(t *testing.T) {
	tests := []struct {
		window, dt float64
		want       int32
	}{
		{5, 1.0 / 60, 300},
		{1, 0.5, 2},
		{0.001, 1, 1},
		{5, 0, 1},
	}

	for _, tt := range tests {
		c := NewCollector(tt.window, tt.dt)
		if got := c.WindowDurationTicks(); got != tt.want {
			t.Errorf("NewCollector(%v, %v) window = %d ticks, want %d", tt.window, tt.dt, got, tt.want)
		}
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1, 0.25)

	frames := []FrameRecord{
		{Segments: 10, ActiveCells: 9, SaddleCells: 0, Field: FieldSummary{Min: 0.2, Max: 4, InsideFraction: 0.1}},
		{Segments: 20, ActiveCells: 18, SaddleCells: 2, Field: FieldSummary{Min: 0.1, Max: 3, InsideFraction: 0.2}},
		{Segments: 30, ActiveCells: 27, SaddleCells: 1, Field: FieldSummary{Min: 0.3, Max: 9, InsideFraction: 0.3}},
		{Segments: 40, ActiveCells: 38, SaddleCells: 1, Field: FieldSummary{Min: 0.4, Max: 2, InsideFraction: 0.4}},
	}
	for i, f := range frames {
		if c.ShouldFlush(int32(i)) {
			t.Fatalf("ShouldFlush(%d) = true before window end", i)
		}
		c.Record(f, 0.25)
	}
	c.RecordPick()
	c.RecordResolutionChange()
	c.RecordResolutionChange()

	if !c.ShouldFlush(4) {
		t.Fatal("ShouldFlush(4) = false at window end")
	}
	stats := c.Flush(4, 59, 45, 11)

	if stats.Frames != 4 {
		t.Errorf("Frames = %d, want 4", stats.Frames)
	}
	if math.Abs(stats.SimTimeSec-1) > 1e-12 {
		t.Errorf("SimTimeSec = %v, want 1", stats.SimTimeSec)
	}
	if stats.SegmentsMean != 25 {
		t.Errorf("SegmentsMean = %v, want 25", stats.SegmentsMean)
	}
	if stats.ActiveCellsMean != 23 {
		t.Errorf("ActiveCellsMean = %v, want 23", stats.ActiveCellsMean)
	}
	if stats.SaddleCellsMean != 1 || stats.SaddleCellsMax != 2 {
		t.Errorf("saddles mean/max = %v/%d, want 1/2", stats.SaddleCellsMean, stats.SaddleCellsMax)
	}
	if math.Abs(stats.InsideFraction-0.25) > 1e-12 {
		t.Errorf("InsideFraction = %v, want 0.25", stats.InsideFraction)
	}
	if stats.FieldMin != 0.1 || stats.FieldMax != 9 {
		t.Errorf("field range = [%v, %v], want [0.1, 9]", stats.FieldMin, stats.FieldMax)
	}
	if stats.Picks != 1 || stats.ResolutionChanges != 2 {
		t.Errorf("picks/resolution changes = %d/%d, want 1/2", stats.Picks, stats.ResolutionChanges)
	}
	if stats.Cols != 59 || stats.Rows != 45 || stats.CellSize != 11 {
		t.Errorf("grid = %dx%d cell %v", stats.Cols, stats.Rows, stats.CellSize)
	}

	// Counters reset, window restarts at the flush tick
	if c.ShouldFlush(7) {
		t.Error("ShouldFlush(7) = true, window restarted at 4")
	}
	next := c.Flush(8, 59, 45, 11)
	if next.Frames != 0 || next.Picks != 0 || next.WindowStartTick != 4 {
		t.Errorf("second window = %+v", next)
	}
}
