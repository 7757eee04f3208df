// Package systems contains the per-frame systems that move sources and
// sample the field.
package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/isoballs/components"
)

// Wall normals for the four sides of the domain.
var (
	normalLeft   = r2.Vec{X: 1, Y: 0}
	normalRight  = r2.Vec{X: -1, Y: 0}
	normalTop    = r2.Vec{X: 0, Y: 1}
	normalBottom = r2.Vec{X: 0, Y: -1}
)

// Bounds represents the simulation bounds [0,Width]x[0,Height].
type Bounds struct {
	Width, Height float64
}

// PhysicsSystem integrates source positions and bounces them off the walls.
type PhysicsSystem struct {
	filter *ecs.Filter3[components.Position, components.Velocity, components.Body]
	bounds Bounds
}

// NewPhysicsSystem creates a new physics system.
func NewPhysicsSystem(w *ecs.World, bounds Bounds) *PhysicsSystem {
	return &PhysicsSystem{
		filter: ecs.NewFilter3[components.Position, components.Velocity, components.Body](w),
		bounds: bounds,
	}
}

// Bounds returns the walls the system collides against.
func (s *PhysicsSystem) Bounds() Bounds {
	return s.bounds
}

// Update advances every source by velocity*elapsed, except excluded when
// hasExcluded is set, then resolves wall collisions for all sources.
// The excluded source is still clamped: collision is positional.
func (s *PhysicsSystem) Update(elapsed float64, excluded ecs.Entity, hasExcluded bool) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, body := query.Get()

		if !hasExcluded || query.Entity() != excluded {
			pos.X += vel.X * elapsed
			pos.Y += vel.Y * elapsed
		}

		ResolveWalls(pos, vel, body.Radius, s.bounds)
	}
}

// ResolveWalls clamps a circle of the given radius inside bounds and reflects
// its velocity off any wall it crossed. The x and y axes are handled
// independently so a corner hit reflects both components.
// Returns true if any wall was hit.
func ResolveWalls(pos *components.Position, vel *components.Velocity, radius float64, b Bounds) bool {
	hit := false

	if pos.X < radius {
		pos.X = radius
		vel.Set(Reflect(vel.Vec(), normalLeft))
		hit = true
	} else if pos.X+radius > b.Width {
		pos.X = b.Width - radius
		vel.Set(Reflect(vel.Vec(), normalRight))
		hit = true
	}

	if pos.Y < radius {
		pos.Y = radius
		vel.Set(Reflect(vel.Vec(), normalTop))
		hit = true
	} else if pos.Y+radius > b.Height {
		pos.Y = b.Height - radius
		vel.Set(Reflect(vel.Vec(), normalBottom))
		hit = true
	}

	return hit
}

// Reflect mirrors v about the plane with unit normal n: v - 2(v·n)n.
// The result has the same length as v.
func Reflect(v, n r2.Vec) r2.Vec {
	return r2.Sub(v, r2.Scale(2*r2.Dot(v, n), n))
}
