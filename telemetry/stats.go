package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// WindowStats holds aggregated contour statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Frames          int     `csv:"frames"`

	// Grid at window end
	Cols     int     `csv:"cols"`
	Rows     int     `csv:"rows"`
	CellSize float64 `csv:"cell_size"`

	// Segments emitted per frame
	SegmentsMean float64 `csv:"segments_mean"`
	SegmentsP10  float64 `csv:"segments_p10"`
	SegmentsP50  float64 `csv:"segments_p50"`
	SegmentsP90  float64 `csv:"segments_p90"`

	// Cell classification
	ActiveCellsMean float64 `csv:"active_cells_mean"`
	SaddleCellsMean float64 `csv:"saddle_cells_mean"`
	SaddleCellsMax  int     `csv:"saddle_cells_max"`

	// Field samples
	InsideFraction float64 `csv:"inside_fraction"` // Mean share of samples >= 1
	FieldMin       float64 `csv:"field_min"`       // Lowest sample seen in the window
	FieldMax       float64 `csv:"field_max"`       // Highest finite sample seen in the window

	// Interaction
	Picks             int `csv:"picks"`
	ResolutionChanges int `csv:"resolution_changes"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean and percentiles from values.
func ComputeDistribution(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = floats.Sum(values) / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// FieldSummary describes one frame's sample buffer.
type FieldSummary struct {
	Min            float64
	Max            float64 // largest finite sample
	InsideFraction float64
}

// SummarizeField computes the extremes and the inside share of samples.
// Infinite samples (a vertex on a source centre) count as inside but are
// left out of Max.
func SummarizeField(samples []float64) FieldSummary {
	if len(samples) == 0 {
		return FieldSummary{}
	}

	summary := FieldSummary{Min: floats.Min(samples)}

	inside := 0
	maxFinite := math.Inf(-1)
	for _, v := range samples {
		if v >= 1 {
			inside++
		}
		if !math.IsInf(v, 1) && v > maxFinite {
			maxFinite = v
		}
	}
	if math.IsInf(maxFinite, -1) {
		maxFinite = floats.Max(samples)
	}
	summary.Max = maxFinite
	summary.InsideFraction = float64(inside) / float64(len(samples))

	return summary
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("frames", s.Frames),
		slog.Int("cols", s.Cols),
		slog.Int("rows", s.Rows),
		slog.Float64("cell_size", s.CellSize),
		slog.Float64("segments_mean", s.SegmentsMean),
		slog.Float64("segments_p10", s.SegmentsP10),
		slog.Float64("segments_p50", s.SegmentsP50),
		slog.Float64("segments_p90", s.SegmentsP90),
		slog.Float64("active_cells_mean", s.ActiveCellsMean),
		slog.Float64("saddle_cells_mean", s.SaddleCellsMean),
		slog.Int("saddle_cells_max", s.SaddleCellsMax),
		slog.Float64("inside_fraction", s.InsideFraction),
		slog.Float64("field_min", s.FieldMin),
		slog.Float64("field_max", s.FieldMax),
		slog.Int("picks", s.Picks),
		slog.Int("resolution_changes", s.ResolutionChanges),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"frames", s.Frames,
		"grid", [2]int{s.Cols, s.Rows},
		"segments_mean", s.SegmentsMean,
		"segments_p90", s.SegmentsP90,
		"saddle_cells_mean", s.SaddleCellsMean,
		"saddle_cells_max", s.SaddleCellsMax,
		"inside_fraction", s.InsideFraction,
		"field_min", s.FieldMin,
		"field_max", s.FieldMax,
		"picks", s.Picks,
		"resolution_changes", s.ResolutionChanges,
	)
}
