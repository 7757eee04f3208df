package game

// Interaction constants
const (
	NewSourceRadius = 40.0 // radius of a source added with the right mouse button
	PanSpeed        = 8.0  // screen pixels per frame at zoom 1
	ZoomStep        = 1.25
	MessageSeconds  = 3.0 // how long HUD notices stay up
)

// controlsLegend is drawn along the bottom of the viewport.
const controlsLegend = "LMB drag source | RMB add/remove | wheel zoom | arrows pan | Home reset | F11 fullscreen"
