package sim

import (
	"slices"

	"github.com/pthm-cable/isoballs/contour"
	"github.com/pthm-cable/isoballs/field"
	"github.com/pthm-cable/isoballs/systems"
)

// Event is a notification emitted by the state for frontends.
type Event uint8

const (
	// EventGridRedraw asks the renderer to repaint its cached grid layer.
	// Emitted at start-up, on grid toggle and on resolution change.
	EventGridRedraw Event = iota + 1
	// EventResolution reports a grid resolution change.
	EventResolution
	// EventPick reports a source being picked up.
	EventPick
	// EventRelease reports the picked source being let go.
	EventRelease
)

func (e Event) String() string {
	switch e {
	case EventGridRedraw:
		return "grid_redraw"
	case EventResolution:
		return "resolution"
	case EventPick:
		return "pick"
	case EventRelease:
		return "release"
	default:
		return "unknown"
	}
}

// Flags are the user-facing view toggles.
type Flags struct {
	Interpolate bool
	ShowSamples bool
	ShowGrid    bool
	Animate     bool
	Saddle      contour.SaddleStrategy
}

// Frame is everything a renderer needs to draw one tick.
// Slices and the sample buffer are owned by the State and are only valid
// until the next tick.
type Frame struct {
	Tick    int32
	Elapsed float64 // seconds since the previous tick
	FPS     float64

	Segments []contour.Segment
	Stats    contour.Stats
	Grid     systems.Grid
	Samples  *systems.SampleBuffer

	Sources  []field.Source
	Selected int // index into Sources, -1 when idle

	Flags      Flags
	Resolution float64 // slider percentage [0,100]
	Events     []Event
}

// Has reports whether e was emitted since the previous frame.
func (f *Frame) Has(e Event) bool {
	return slices.Contains(f.Events, e)
}

// Renderer draws frames. Implementations own their drawing surface.
type Renderer interface {
	DrawFrame(f *Frame)
}
