// Marching squares case preview - one cell with adjustable corner samples,
// drawn with every mode and saddle strategy side by side.
//
// Usage: go run ./cmd/casepreview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/isoballs/contour"
	"github.com/pthm-cable/isoballs/field"
)

const (
	windowWidth  = 1000
	windowHeight = 620
	viewSize     = 240
	viewGap      = 30
	panelX       = 2*viewSize + 3*viewGap
	panelWidth   = windowWidth - panelX - 20
	sampleMax    = 2.0
)

// view is one of the four previews.
type view struct {
	title  string
	mode   contour.Mode
	saddle contour.SaddleStrategy
}

var views = []view{
	{"interpolated / fixed", contour.ModeInterpolated, contour.SaddleFixedBothDiagonals},
	{"interpolated / centre", contour.ModeInterpolated, contour.SaddleCenterSample},
	{"blocky / fixed", contour.ModeBlocky, contour.SaddleFixedBothDiagonals},
	{"blocky / centre", contour.ModeBlocky, contour.SaddleCenterSample},
}

var cornerNames = [4]string{"a (top-left)", "b (top-right)", "c (bottom-right)", "d (bottom-left)"}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Marching Squares Case Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	corners := contour.Corners{1.4, 0.6, 1.4, 0.6}

	for !rl.WindowShouldClose() {
		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		// Previews in a 2x2 layout
		for i, v := range views {
			x := float32(viewGap + (i%2)*(viewSize+viewGap))
			y := float32(viewGap + (i/2)*(viewSize+viewGap+10))
			drawView(v, corners, x, y)
		}

		y := float32(viewGap)
		rl.DrawText("Corner samples", panelX, int32(y), 20, rl.LightGray)
		y += 35

		for i := range corners {
			rl.DrawText(cornerNames[i], panelX, int32(y), 14, rl.Gray)
			y += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: y, Width: panelWidth - 70, Height: 20},
				"0", "2",
				float32(corners[i]), 0, sampleMax,
			)
			rl.DrawText(fmt.Sprintf("%.2f", corners[i]), int32(panelX+panelWidth-60), int32(y+2), 16, rl.LightGray)
			corners[i] = float64(v)
			y += 35
		}
		code := contour.Classify(corners)

		// Case buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 120, Height: 30}, "Prev case") {
			corners = cornersFor((code + 15) & 15)
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: y, Width: 120, Height: 30}, "Next case") {
			corners = cornersFor((code + 1) & 15)
		}
		y += 50

		rl.DrawText(fmt.Sprintf("Configuration: %d (%04b)", code, uint8(code)), panelX, int32(y), 18, rl.LightGray)
		y += 24
		kind := "regular"
		switch {
		case code.Uniform():
			kind = "uniform, no segments"
		case code.Saddle():
			kind = "saddle"
		}
		rl.DrawText(kind, panelX, int32(y), 16, rl.Gray)
		y += 22
		mean := (corners[0] + corners[1] + corners[2] + corners[3]) / 4
		rl.DrawText(fmt.Sprintf("Corner mean: %.3f (%s)", mean, inOut(mean)), panelX, int32(y), 16, rl.Gray)

		rl.DrawText("Bit 1=a 2=b 4=c 8=d, set when sample >= 1", panelX, windowHeight-30, 12, rl.DarkGray)

		rl.EndDrawing()
	}
}

// drawView draws the cell at (x, y) with its corner states and segments.
func drawView(v view, s contour.Corners, x, y float32) {
	rl.DrawText(v.title, int32(x), int32(y)-20, 14, rl.LightGray)
	rl.DrawRectangleLines(int32(x), int32(y), viewSize, viewSize, rl.DarkGray)

	for i, off := range [4]r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}} {
		color := rl.DarkGray
		if field.Inside(s[i]) {
			color = rl.LightGray
		}
		rl.DrawCircleV(rl.Vector2{X: x + float32(off.X)*viewSize, Y: y + float32(off.Y)*viewSize}, 6, color)
	}

	segs := contour.CellSegments(v.mode, v.saddle, s, r2.Vec{X: float64(x), Y: float64(y)}, viewSize)
	for _, seg := range segs {
		rl.DrawLineEx(
			rl.Vector2{X: float32(seg.Begin.X), Y: float32(seg.Begin.Y)},
			rl.Vector2{X: float32(seg.End.X), Y: float32(seg.End.Y)},
			3, rl.Green,
		)
	}
}

// cornersFor returns samples that classify as code.
func cornersFor(code contour.Config) contour.Corners {
	var s contour.Corners
	for i := range s {
		if code&(1<<i) != 0 {
			s[i] = 1.5
		} else {
			s[i] = 0.5
		}
	}
	return s
}

func inOut(v float64) string {
	if field.Inside(v) {
		return "in"
	}
	return "out"
}
