package systems

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Grid is a uniform lattice of sample vertices over a rectangular domain.
// Cols and Rows count vertices, not cells.
type Grid struct {
	DomainWidth, DomainHeight float64
	Offset                    float64 // Inset of vertex (0,0) from the domain corner
	CellSize                  float64
	Cols, Rows                int
}

// NewGrid creates a grid over a width x height domain.
func NewGrid(width, height, offset, cellSize float64) Grid {
	g := Grid{
		DomainWidth:  width,
		DomainHeight: height,
		Offset:       offset,
	}
	g.SetCellSize(cellSize)
	return g
}

// SetCellSize changes the cell size and recomputes the vertex counts.
func (g *Grid) SetCellSize(cellSize float64) {
	g.CellSize = cellSize
	g.Cols = VertexCount(g.DomainWidth, g.Offset, cellSize)
	g.Rows = VertexCount(g.DomainHeight, g.Offset, cellSize)
}

// VertexCount returns the number of vertices needed along an axis of the
// given extent: ceil((extent - 2*offset) / cellSize) + 1.
func VertexCount(extent, offset, cellSize float64) int {
	return int(math.Ceil((extent-2*offset)/cellSize)) + 1
}

// Len returns the number of vertices.
func (g Grid) Len() int {
	return g.Cols * g.Rows
}

// CellCounts returns the number of cells along each axis.
func (g Grid) CellCounts() (cols, rows int) {
	return g.Cols - 1, g.Rows - 1
}

// Vertex returns the domain position of vertex (row, col).
func (g Grid) Vertex(row, col int) r2.Vec {
	return r2.Vec{
		X: g.Offset + float64(col)*g.CellSize,
		Y: g.Offset + float64(row)*g.CellSize,
	}
}

// VertexAt returns the domain position of the vertex at a row-major index.
func (g Grid) VertexAt(idx int) r2.Vec {
	return g.Vertex(idx/g.Cols, idx%g.Cols)
}

// Label returns the "cols × rows" resolution text.
func (g Grid) Label() string {
	return fmt.Sprintf("%d × %d", g.Cols, g.Rows)
}

// Lines returns the x positions of the vertical grid lines and the y
// positions of the horizontal ones that fall inside the inset domain.
func (g Grid) Lines() (xs, ys []float64) {
	total := 2 * g.Offset
	nx := int(math.Floor((g.DomainWidth - total) / g.CellSize))
	ny := int(math.Floor((g.DomainHeight - total) / g.CellSize))

	xs = make([]float64, 0, nx+1)
	for i := 0; i <= nx; i++ {
		xs = append(xs, g.Offset+float64(i)*g.CellSize)
	}
	ys = make([]float64, 0, ny+1)
	for j := 0; j <= ny; j++ {
		ys = append(ys, g.Offset+float64(j)*g.CellSize)
	}
	return xs, ys
}

// CellSizeForResolution maps a resolution percentage in [0,100] to a cell
// size between maxCell (0%) and minCell (100%). Out-of-range percentages are
// clamped.
func CellSizeForResolution(percent, maxCell, minCell float64) float64 {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	p := percent / 100
	return maxCell*(1-p) + minCell*p
}
