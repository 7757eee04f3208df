// Package contour extracts the level-1 iso-contour of a sampled field with
// marching squares.
//
// Corners of a cell are named clockwise from the top-left:
//
//	a ---- b
//	|      |
//	d ---- c
//
// A corner is "in" when its sample is >= 1. The configuration code sets
// bit 1 for a, 2 for b, 4 for c and 8 for d.
package contour

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/isoballs/field"
	"github.com/pthm-cable/isoballs/systems"
)

// DefaultEpsilon guards the inverse lerp against equal edge samples.
const DefaultEpsilon = 1e-9

// Mode selects how segment endpoints are placed on a cell edge.
type Mode uint8

const (
	// ModeInterpolated places endpoints at the linear crossing of level 1.
	ModeInterpolated Mode = iota
	// ModeBlocky places endpoints at edge midpoints.
	ModeBlocky
)

func (m Mode) String() string {
	switch m {
	case ModeInterpolated:
		return "interpolated"
	case ModeBlocky:
		return "blocky"
	default:
		return "unknown"
	}
}

// SaddleStrategy resolves the two ambiguous configurations 5 and 10.
type SaddleStrategy uint8

const (
	// SaddleFixedBothDiagonals always joins the two in-corners through the
	// cell and cuts off the two out-corners.
	SaddleFixedBothDiagonals SaddleStrategy = iota
	// SaddleCenterSample decides from the field value at the cell centre:
	// >= 1 joins the in-corners, < 1 cuts each in-corner off on its own.
	SaddleCenterSample
)

func (s SaddleStrategy) String() string {
	switch s {
	case SaddleFixedBothDiagonals:
		return "fixed"
	case SaddleCenterSample:
		return "center"
	default:
		return "unknown"
	}
}

// Config is the 4-bit marching squares configuration of a cell.
type Config uint8

// Corner bits.
const (
	BitA Config = 1 << iota // top-left
	BitB                    // top-right
	BitC                    // bottom-right
	BitD                    // bottom-left
)

// Saddle reports whether c is one of the two ambiguous configurations.
func (c Config) Saddle() bool {
	return c == 5 || c == 10
}

// Uniform reports whether every corner is on the same side of the level.
func (c Config) Uniform() bool {
	return c == 0 || c == 15
}

// Segment is one straight piece of the contour.
type Segment struct {
	Begin, End r2.Vec
}

// Corners holds the samples of a cell in a, b, c, d order.
type Corners [4]float64

// Classify returns the configuration code of a cell.
func Classify(s Corners) Config {
	var c Config
	if field.Inside(s[0]) {
		c |= BitA
	}
	if field.Inside(s[1]) {
		c |= BitB
	}
	if field.Inside(s[2]) {
		c |= BitC
	}
	if field.Inside(s[3]) {
		c |= BitD
	}
	return c
}

// InverseLerp returns where level 1 falls between s1 and s2 as a fraction
// in [0,1]. Samples closer than eps give 0.5. An infinite sample is treated
// as the limit of a very large one.
func InverseLerp(s1, s2, eps float64) float64 {
	inf1, inf2 := math.IsInf(s1, 1), math.IsInf(s2, 1)
	switch {
	case inf1 && inf2:
		return 0.5
	case inf1:
		return 1
	case inf2:
		return 0
	}

	d := s2 - s1
	if math.Abs(d) < eps {
		return 0.5
	}
	t := (field.Threshold - s1) / d
	if t < 0 || math.IsNaN(t) {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// edge identifies a side of the cell. Each edge runs between two corners in
// a fixed direction: top a->b, right b->c, bottom d->c, left a->d.
type edge uint8

const (
	edgeTop edge = iota
	edgeRight
	edgeBottom
	edgeLeft
)

// edgeCorners maps an edge to its (from, to) corner indices.
var edgeCorners = [4][2]int{
	edgeTop:    {0, 1},
	edgeRight:  {1, 2},
	edgeBottom: {3, 2},
	edgeLeft:   {0, 3},
}

// cornerOffsets are the corner positions in units of the cell size.
var cornerOffsets = [4]r2.Vec{
	{X: 0, Y: 0},
	{X: 1, Y: 0},
	{X: 1, Y: 1},
	{X: 0, Y: 1},
}

// caseTable lists, per configuration, the edge pairs joined by a segment.
// Complementary configurations share a row. Saddles hold the fixed policy.
var caseTable = [16][][2]edge{
	0:  nil,
	1:  {{edgeTop, edgeLeft}},
	2:  {{edgeTop, edgeRight}},
	3:  {{edgeLeft, edgeRight}},
	4:  {{edgeRight, edgeBottom}},
	5:  {{edgeTop, edgeRight}, {edgeLeft, edgeBottom}},
	6:  {{edgeTop, edgeBottom}},
	7:  {{edgeLeft, edgeBottom}},
	8:  {{edgeLeft, edgeBottom}},
	9:  {{edgeTop, edgeBottom}},
	10: {{edgeTop, edgeLeft}, {edgeRight, edgeBottom}},
	11: {{edgeRight, edgeBottom}},
	12: {{edgeLeft, edgeRight}},
	13: {{edgeTop, edgeRight}},
	14: {{edgeTop, edgeLeft}},
	15: nil,
}

// Stats describes the most recent extraction.
type Stats struct {
	ActiveCells int // cells that emitted at least one segment
	SaddleCells int
	Segments    int
}

// Extractor turns a sample buffer into contour segments.
type Extractor struct {
	Mode    Mode
	Saddle  SaddleStrategy
	Epsilon float64

	// CenterFunc evaluates the field at a cell centre for SaddleCenterSample.
	// When nil the mean of the four corners is used.
	CenterFunc func(p r2.Vec) float64

	Last Stats
}

// NewExtractor creates an extractor with the default epsilon.
func NewExtractor(mode Mode, saddle SaddleStrategy) *Extractor {
	return &Extractor{
		Mode:    mode,
		Saddle:  saddle,
		Epsilon: DefaultEpsilon,
	}
}

// Extract appends the segments of every cell of g to dst and returns it.
// buf must have been sampled on g.
func (e *Extractor) Extract(g systems.Grid, buf *systems.SampleBuffer, dst []Segment) []Segment {
	e.Last = Stats{}
	start := len(dst)

	cols := buf.Cols
	data := buf.Data
	for row := 0; row < buf.Rows-1; row++ {
		for col := 0; col < cols-1; col++ {
			idx := row*cols + col
			s := Corners{data[idx], data[idx+1], data[idx+cols+1], data[idx+cols]}
			cfg := Classify(s)
			if cfg.Uniform() {
				continue
			}

			e.Last.ActiveCells++
			if cfg.Saddle() {
				e.Last.SaddleCells++
			}
			dst = e.Cell(dst, cfg, s, g.Vertex(row, col), g.CellSize)
		}
	}

	e.Last.Segments = len(dst) - start
	return dst
}

// Cell appends the segments of a single cell with top-left corner origin.
func (e *Extractor) Cell(dst []Segment, cfg Config, s Corners, origin r2.Vec, cell float64) []Segment {
	pairs := caseTable[cfg&15]
	if cfg.Saddle() && e.Saddle == SaddleCenterSample && !e.centreInside(s, origin, cell) {
		// Swap to the other saddle's segments: each in-corner is cut off.
		pairs = caseTable[cfg^15]
	}

	for _, p := range pairs {
		dst = append(dst, Segment{
			Begin: e.crossing(p[0], s, origin, cell),
			End:   e.crossing(p[1], s, origin, cell),
		})
	}
	return dst
}

// CellSegments returns the segments for one cell with the given mode and
// saddle strategy. Saddle centres are decided from the corner mean.
func CellSegments(mode Mode, saddle SaddleStrategy, s Corners, origin r2.Vec, cell float64) []Segment {
	e := Extractor{Mode: mode, Saddle: saddle, Epsilon: DefaultEpsilon}
	return e.Cell(nil, Classify(s), s, origin, cell)
}

func (e *Extractor) centreInside(s Corners, origin r2.Vec, cell float64) bool {
	if e.CenterFunc != nil {
		return field.Inside(e.CenterFunc(r2.Add(origin, r2.Vec{X: cell / 2, Y: cell / 2})))
	}
	return field.Inside((s[0] + s[1] + s[2] + s[3]) / 4)
}

// crossing returns the point where the contour crosses edge ed.
func (e *Extractor) crossing(ed edge, s Corners, origin r2.Vec, cell float64) r2.Vec {
	from, to := edgeCorners[ed][0], edgeCorners[ed][1]

	t := 0.5
	if e.Mode == ModeInterpolated {
		eps := e.Epsilon
		if eps <= 0 {
			eps = DefaultEpsilon
		}
		t = InverseLerp(s[from], s[to], eps)
	}

	p0 := r2.Add(origin, r2.Scale(cell, cornerOffsets[from]))
	p1 := r2.Add(origin, r2.Scale(cell, cornerOffsets[to]))
	return r2.Add(p0, r2.Scale(t, r2.Sub(p1, p0)))
}
