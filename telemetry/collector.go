package telemetry

// FrameRecord is the per-frame input to the Collector.
type FrameRecord struct {
	Segments    int
	ActiveCells int
	SaddleCells int
	Field       FieldSummary
}

// Collector accumulates frame records within time windows and produces
// WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32
	simTime         float64

	// Per-frame samples for the current window
	segments    []float64
	activeCells float64
	saddleCells float64
	saddleMax   int
	inside      float64
	fieldMin    float64
	fieldMax    float64

	// Event counters for current window
	picks             int
	resolutionChanges int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float64) *Collector {
	ticksPerWindow := int32(1)
	if dt > 0 {
		ticksPerWindow = int32(windowDurationSec / dt)
	}
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	c := &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
	c.reset(0)
	return c
}

// Record adds one frame to the current window.
func (c *Collector) Record(f FrameRecord, elapsed float64) {
	c.simTime += elapsed
	c.segments = append(c.segments, float64(f.Segments))
	c.activeCells += float64(f.ActiveCells)
	c.saddleCells += float64(f.SaddleCells)
	if f.SaddleCells > c.saddleMax {
		c.saddleMax = f.SaddleCells
	}
	c.inside += f.Field.InsideFraction

	if len(c.segments) == 1 || f.Field.Min < c.fieldMin {
		c.fieldMin = f.Field.Min
	}
	if len(c.segments) == 1 || f.Field.Max > c.fieldMax {
		c.fieldMax = f.Field.Max
	}
}

// RecordPick records a source being picked up.
func (c *Collector) RecordPick() {
	c.picks++
}

// RecordResolutionChange records a grid resolution change.
func (c *Collector) RecordResolutionChange() {
	c.resolutionChanges++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// cols, rows and cellSize describe the grid at the end of the window.
func (c *Collector) Flush(currentTick int32, cols, rows int, cellSize float64) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      c.simTime,
		Frames:          len(c.segments),

		Cols:     cols,
		Rows:     rows,
		CellSize: cellSize,

		SaddleCellsMax: c.saddleMax,
		FieldMin:       c.fieldMin,
		FieldMax:       c.fieldMax,

		Picks:             c.picks,
		ResolutionChanges: c.resolutionChanges,
	}

	if n := float64(len(c.segments)); n > 0 {
		stats.SegmentsMean, stats.SegmentsP10, stats.SegmentsP50, stats.SegmentsP90 = ComputeDistribution(c.segments)
		stats.ActiveCellsMean = c.activeCells / n
		stats.SaddleCellsMean = c.saddleCells / n
		stats.InsideFraction = c.inside / n
	}

	c.reset(currentTick)
	return stats
}

// reset clears the per-window state. Simulation time carries over.
func (c *Collector) reset(tick int32) {
	c.windowStartTick = tick
	c.segments = c.segments[:0]
	c.activeCells = 0
	c.saddleCells = 0
	c.saddleMax = 0
	c.inside = 0
	c.fieldMin = 0
	c.fieldMax = 0
	c.picks = 0
	c.resolutionChanges = 0
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
