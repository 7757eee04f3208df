package systems

import (
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"
)

// minBandRows is the smallest band handed to a resample worker.
// Below this, single-threaded is faster due to goroutine overhead.
const minBandRows = 8

// Evaluator is anything that yields a scalar at a domain position.
type Evaluator interface {
	Evaluate(p r2.Vec) float64
}

// SampleBuffer holds one field sample per grid vertex, row-major.
type SampleBuffer struct {
	Cols, Rows int
	Data       []float64
}

// At returns the sample at vertex (row, col).
func (b *SampleBuffer) At(row, col int) float64 {
	return b.Data[row*b.Cols+col]
}

// Sampler evaluates a field at every grid vertex, reusing its buffer
// between calls.
type Sampler struct {
	// Workers > 1 splits the rows into bands evaluated concurrently.
	// Resample still returns only after every band has been written.
	Workers int

	buf      SampleBuffer
	reallocs int
}

// NewSampler creates a sampler using the given number of workers.
func NewSampler(workers int) *Sampler {
	if workers < 1 {
		workers = 1
	}
	return &Sampler{Workers: workers}
}

// Resample evaluates f at every vertex of g. The buffer is reallocated only
// when the vertex count differs from the previous call. The returned buffer
// is owned by the sampler and overwritten by the next call.
func (s *Sampler) Resample(g Grid, f Evaluator) *SampleBuffer {
	total := g.Len()
	if s.buf.Data == nil || len(s.buf.Data) != total {
		s.buf.Data = make([]float64, total)
		s.reallocs++
	}
	s.buf.Cols = g.Cols
	s.buf.Rows = g.Rows

	bands := s.Workers
	if maxBands := g.Rows / minBandRows; bands > maxBands {
		bands = maxBands
	}
	if bands <= 1 {
		s.sampleRows(g, f, 0, g.Rows)
		return &s.buf
	}

	var eg errgroup.Group
	eg.SetLimit(s.Workers)
	per := (g.Rows + bands - 1) / bands
	for start := 0; start < g.Rows; start += per {
		end := min(start+per, g.Rows)
		eg.Go(func() error {
			s.sampleRows(g, f, start, end)
			return nil
		})
	}
	// Wait orders every band write before the caller reads the buffer
	_ = eg.Wait()

	return &s.buf
}

// sampleRows fills rows [start, end) of the buffer.
func (s *Sampler) sampleRows(g Grid, f Evaluator, start, end int) {
	data := s.buf.Data
	for row := start; row < end; row++ {
		base := row * g.Cols
		for col := 0; col < g.Cols; col++ {
			data[base+col] = f.Evaluate(g.Vertex(row, col))
		}
	}
}

// Buffer returns the most recently sampled buffer.
func (s *Sampler) Buffer() *SampleBuffer {
	return &s.buf
}

// Reallocations returns how many times the buffer storage was allocated.
func (s *Sampler) Reallocations() int {
	return s.reallocs
}
