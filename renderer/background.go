package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/isoballs/camera"
)

// BackgroundRenderer clears the viewport and fills the domain rectangle.
type BackgroundRenderer struct {
	clearColor  rl.Color
	domainColor rl.Color
	borderColor rl.Color
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(baseR, baseG, baseB uint8) *BackgroundRenderer {
	return &BackgroundRenderer{
		clearColor:  rl.Color{R: 12, G: 12, B: 14, A: 255},
		domainColor: rl.Color{R: baseR, G: baseG, B: baseB, A: 255},
		borderColor: rl.Color{R: 60, G: 70, B: 80, A: 255},
	}
}

// Draw fills the letterbox and the visible part of the domain.
func (b *BackgroundRenderer) Draw(cam *camera.Camera) {
	rl.ClearBackground(b.clearColor)

	rect := domainRect(cam)
	rl.DrawRectangleRec(rect, b.domainColor)
	rl.DrawRectangleLinesEx(rect, 1, b.borderColor)
}

// domainRect returns the screen rectangle covered by the whole domain.
func domainRect(cam *camera.Camera) rl.Rectangle {
	x0, y0 := cam.WorldToScreen(0, 0)
	x1, y1 := cam.WorldToScreen(cam.WorldW, cam.WorldH)
	return rl.Rectangle{
		X:      float32(x0),
		Y:      float32(y0),
		Width:  float32(x1 - x0),
		Height: float32(y1 - y0),
	}
}
