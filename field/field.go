// Package field defines the metaball scalar field: a sum of inverse-square
// contributions from circular sources.
package field

import "gonum.org/v1/gonum/spatial/r2"

// Threshold is the iso level traced by the contour extractor.
// A value >= Threshold is inside the surface.
const Threshold = 1.0

// Source is a circular influence source.
type Source struct {
	Centre   r2.Vec
	Radius   float64
	Velocity r2.Vec
}

// Contains reports whether pt lies strictly inside the source's disk.
func (s Source) Contains(pt r2.Vec) bool {
	return r2.Norm2(r2.Sub(s.Centre, pt)) < s.Radius*s.Radius
}

// Model is the scalar field defined by a set of sources.
// Source order does not affect field values.
type Model struct {
	Sources []Source
}

// Evaluate returns the field value at p: the sum over sources of
// radius² / |p - centre|². At a centre the result is +Inf, which still
// compares as inside.
func (m *Model) Evaluate(p r2.Vec) float64 {
	var value float64
	for i := range m.Sources {
		s := &m.Sources[i]
		d2 := r2.Norm2(r2.Sub(s.Centre, p))
		value += s.Radius * s.Radius / d2
	}
	return value
}

// Inside reports whether p is on or inside the iso-contour.
func (m *Model) Inside(p r2.Vec) bool {
	return Inside(m.Evaluate(p))
}

// Inside reports whether a field value is at or above Threshold.
func Inside(v float64) bool {
	return v >= Threshold
}
