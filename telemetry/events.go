// Package telemetry collects contour statistics per time window, frame
// timing, interaction events and source snapshots.
package telemetry

import "gonum.org/v1/gonum/spatial/r2"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventPick EventType = iota
	EventRelease
	EventResolution
	EventSourceAdded
	EventSourceRemoved
)

func (t EventType) String() string {
	switch t {
	case EventPick:
		return "pick"
	case EventRelease:
		return "release"
	case EventResolution:
		return "resolution"
	case EventSourceAdded:
		return "source_added"
	case EventSourceRemoved:
		return "source_removed"
	default:
		return "unknown"
	}
}

// MarshalCSV writes the event type by name.
func (t EventType) MarshalCSV() (string, error) {
	return t.String(), nil
}

// Event represents a single user interaction.
type Event struct {
	Tick   int32     `csv:"tick"`
	Type   EventType `csv:"type"`
	Source int       `csv:"source"` // registry index, -1 when not about a source

	// Optional fields depending on event type
	X     float64 `csv:"x"`
	Y     float64 `csv:"y"`
	Value float64 `csv:"value"` // resolution percent
}

// NewPickEvent creates a pick event at the pointer position.
func NewPickEvent(tick int32, source int, at r2.Vec) Event {
	return Event{Type: EventPick, Tick: tick, Source: source, X: at.X, Y: at.Y}
}

// NewReleaseEvent creates a release event with the source's final centre.
func NewReleaseEvent(tick int32, source int, centre r2.Vec) Event {
	return Event{Type: EventRelease, Tick: tick, Source: source, X: centre.X, Y: centre.Y}
}

// NewResolutionEvent creates a resolution change event.
func NewResolutionEvent(tick int32, percent float64) Event {
	return Event{Type: EventResolution, Tick: tick, Source: -1, Value: percent}
}

// NewSourceAddedEvent creates an event for a source added at centre.
func NewSourceAddedEvent(tick int32, source int, centre r2.Vec, radius float64) Event {
	return Event{Type: EventSourceAdded, Tick: tick, Source: source, X: centre.X, Y: centre.Y, Value: radius}
}

// NewSourceRemovedEvent creates an event for a removed source. source is
// the index it had before removal.
func NewSourceRemovedEvent(tick int32, source int, at r2.Vec) Event {
	return Event{Type: EventSourceRemoved, Tick: tick, Source: source, X: at.X, Y: at.Y}
}
