package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/isoballs/camera"
	"github.com/pthm-cable/isoballs/systems"
)

// gridSupersample is the texture pixels per domain unit.
const gridSupersample = 2

// GridLayer caches the grid overlay in a render texture in domain space.
// It is repainted only when the grid changes, and stretched onto the
// viewport every frame.
type GridLayer struct {
	target rl.RenderTexture2D
	width  int32
	height int32
	color  rl.Color

	initialized bool
	visible     bool
}

// NewGridLayer creates a grid layer for a domain of the given size.
func NewGridLayer(domainW, domainH float64, color rl.Color) *GridLayer {
	return &GridLayer{
		width:  int32(domainW * gridSupersample),
		height: int32(domainH * gridSupersample),
		color:  color,
	}
}

// Init allocates the render texture (must be called after the raylib window
// is created).
func (g *GridLayer) Init() {
	if g.initialized {
		return
	}
	g.target = rl.LoadRenderTexture(g.width, g.height)
	g.initialized = true
}

// Redraw repaints the cached layer. When visible is false the layer is
// cleared and Draw becomes a no-op.
func (g *GridLayer) Redraw(grid systems.Grid, visible bool) {
	if !g.initialized {
		g.Init()
	}
	g.visible = visible

	rl.BeginTextureMode(g.target)
	rl.ClearBackground(rl.Blank)
	if visible {
		xs, ys := grid.Lines()
		for _, x := range xs {
			px := float32(x * gridSupersample)
			rl.DrawLineV(rl.Vector2{X: px, Y: 0}, rl.Vector2{X: px, Y: float32(g.height)}, g.color)
		}
		for _, y := range ys {
			py := float32(y * gridSupersample)
			rl.DrawLineV(rl.Vector2{X: 0, Y: py}, rl.Vector2{X: float32(g.width), Y: py}, g.color)
		}
	}
	rl.EndTextureMode()
}

// Draw blits the cached layer onto the domain rectangle.
func (g *GridLayer) Draw(cam *camera.Camera) {
	if !g.initialized || !g.visible {
		return
	}
	// Render textures are stored bottom-up, hence the negative height.
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(g.width), Height: -float32(g.height)}
	rl.DrawTexturePro(g.target.Texture, src, domainRect(cam), rl.Vector2{}, 0, rl.White)
}

// Unload frees resources.
func (g *GridLayer) Unload() {
	if g.initialized {
		rl.UnloadRenderTexture(g.target)
		g.initialized = false
	}
}
