package components

import "github.com/pthm-cable/isoballs/config"

// Body holds the influence radius of a source.
type Body struct {
	Radius float64
}

// FromSourceConfig returns the components for a declared source.
func FromSourceConfig(sc config.SourceConfig) (Position, Velocity, Body) {
	return Position{X: sc.X, Y: sc.Y},
		Velocity{X: sc.VX, Y: sc.VY},
		Body{Radius: sc.Radius}
}
