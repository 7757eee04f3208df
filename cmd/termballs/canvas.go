package main

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// Braille cells are 2 dots wide and 4 dots high.
const (
	dotsX = 2
	dotsY = 4

	brailleBase = 0x2800
)

// brailleBits maps a dot position inside a cell to its bit, indexed [y][x].
var brailleBits = [dotsY][dotsX]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a dot raster drawn to the terminal as braille characters.
type Canvas struct {
	cols, rows int    // terminal cells
	bits       []rune // one braille bit set per cell
}

// NewCanvas creates a canvas covering cols × rows terminal cells.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize changes the canvas size and clears it.
func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	c.bits = make([]rune, c.cols*c.rows)
}

// Size returns the canvas size in dots.
func (c *Canvas) Size() (w, h int) {
	return c.cols * dotsX, c.rows * dotsY
}

// Clear unsets every dot.
func (c *Canvas) Clear() {
	clear(c.bits)
}

// CopyFrom replaces the dots with those of src, which must have the same
// size.
func (c *Canvas) CopyFrom(src *Canvas) {
	copy(c.bits, src.bits)
}

// Set turns on the dot at (x, y). Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	cx, cy := x/dotsX, y/dotsY
	if cx >= c.cols || cy >= c.rows {
		return
	}
	c.bits[cy*c.cols+cx] |= brailleBits[y%dotsY][x%dotsX]
}

// Dot reports whether the dot at (x, y) is on.
func (c *Canvas) Dot(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	cx, cy := x/dotsX, y/dotsY
	if cx >= c.cols || cy >= c.rows {
		return false
	}
	return c.bits[cy*c.cols+cx]&brailleBits[y%dotsY][x%dotsX] != 0
}

// Line draws a straight line between two points in dot coordinates.
func (c *Canvas) Line(x0, y0, x1, y1 float64) {
	steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if steps == 0 {
		c.Set(int(math.Floor(x0)), int(math.Floor(y0)))
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.Set(int(math.Floor(x0+(x1-x0)*t)), int(math.Floor(y0+(y1-y0)*t)))
	}
}

// Circle draws a circle outline in dot coordinates. rx and ry may differ
// when the axes are scaled independently.
func (c *Canvas) Circle(cx, cy, rx, ry float64) {
	n := int(math.Ceil(2 * math.Pi * math.Max(rx, ry)))
	n = max(n, 8)
	px, py := cx+rx, cy
	for i := 1; i <= n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		x, y := cx+rx*math.Cos(a), cy+ry*math.Sin(a)
		c.Line(px, py, x, y)
		px, py = x, y
	}
}

// Rune returns the braille character for a terminal cell, or a space when
// the cell has no dots.
func (c *Canvas) Rune(col, row int) rune {
	b := c.bits[row*c.cols+col]
	if b == 0 {
		return ' '
	}
	return brailleBase + b
}

// Flush writes the non-empty cells to screen with style. Empty cells are
// left untouched so layers can be drawn on top of each other.
func (c *Canvas) Flush(screen tcell.Screen, style tcell.Style) {
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			if c.bits[row*c.cols+col] == 0 {
				continue
			}
			screen.SetContent(col, row, c.Rune(col, row), nil, style)
		}
	}
}
