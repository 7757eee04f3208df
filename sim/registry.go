package sim

import (
	"slices"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/isoballs/components"
	"github.com/pthm-cable/isoballs/config"
	"github.com/pthm-cable/isoballs/field"
)

// Registry owns the source entities and remembers the order they were
// declared in. Hit testing and snapshots follow that order.
type Registry struct {
	world   *ecs.World
	mapper  *ecs.Map3[components.Position, components.Velocity, components.Body]
	posMap  *ecs.Map1[components.Position]
	velMap  *ecs.Map1[components.Velocity]
	bodyMap *ecs.Map1[components.Body]

	entities []ecs.Entity
	model    field.Model
}

// NewRegistry creates an empty registry on w.
func NewRegistry(w *ecs.World) *Registry {
	return &Registry{
		world:   w,
		mapper:  ecs.NewMap3[components.Position, components.Velocity, components.Body](w),
		posMap:  ecs.NewMap1[components.Position](w),
		velMap:  ecs.NewMap1[components.Velocity](w),
		bodyMap: ecs.NewMap1[components.Body](w),
	}
}

// Add creates an entity for src and appends it to the roster.
func (r *Registry) Add(src field.Source) ecs.Entity {
	pos := components.Position{X: src.Centre.X, Y: src.Centre.Y}
	vel := components.Velocity{X: src.Velocity.X, Y: src.Velocity.Y}
	body := components.Body{Radius: src.Radius}
	return r.add(&pos, &vel, &body)
}

// AddConfig creates an entity for a configured source.
func (r *Registry) AddConfig(sc config.SourceConfig) ecs.Entity {
	pos, vel, body := components.FromSourceConfig(sc)
	return r.add(&pos, &vel, &body)
}

func (r *Registry) add(pos *components.Position, vel *components.Velocity, body *components.Body) ecs.Entity {
	e := r.mapper.NewEntity(pos, vel, body)
	r.entities = append(r.entities, e)
	return e
}

// Remove deletes e from the world and the roster.
// Returns false if e is not a live source.
func (r *Registry) Remove(e ecs.Entity) bool {
	idx := r.Index(e)
	if idx < 0 {
		return false
	}
	r.world.RemoveEntity(e)
	r.entities = slices.Delete(r.entities, idx, idx+1)
	return true
}

// Len returns the number of sources.
func (r *Registry) Len() int {
	return len(r.entities)
}

// Entities returns the roster in declaration order. The slice is owned by
// the registry.
func (r *Registry) Entities() []ecs.Entity {
	return r.entities
}

// Index returns the roster position of e, or -1.
func (r *Registry) Index(e ecs.Entity) int {
	if !r.world.Alive(e) {
		return -1
	}
	return slices.Index(r.entities, e)
}

// Position returns the mutable position of e, or nil if e is gone.
func (r *Registry) Position(e ecs.Entity) *components.Position {
	if !r.world.Alive(e) {
		return nil
	}
	return r.posMap.Get(e)
}

// Source returns the current state of e.
func (r *Registry) Source(e ecs.Entity) (field.Source, bool) {
	if !r.world.Alive(e) {
		return field.Source{}, false
	}
	return r.source(e), true
}

func (r *Registry) source(e ecs.Entity) field.Source {
	return field.Source{
		Centre:   r.posMap.Get(e).Vec(),
		Radius:   r.bodyMap.Get(e).Radius,
		Velocity: r.velMap.Get(e).Vec(),
	}
}

// Snapshot copies the current source state into the registry's field model
// and returns it. The model is reused across calls.
func (r *Registry) Snapshot() *field.Model {
	r.model.Sources = r.model.Sources[:0]
	for _, e := range r.entities {
		r.model.Sources = append(r.model.Sources, r.source(e))
	}
	return &r.model
}

// HitTest returns the first source, in declaration order, whose disk
// strictly contains pt.
func (r *Registry) HitTest(pt r2.Vec) (ecs.Entity, bool) {
	for _, e := range r.entities {
		if r.source(e).Contains(pt) {
			return e, true
		}
	}
	return ecs.Entity{}, false
}

// Configs returns the sources in declaration order as configuration.
func (r *Registry) Configs() []config.SourceConfig {
	out := make([]config.SourceConfig, 0, len(r.entities))
	for _, e := range r.entities {
		s := r.source(e)
		out = append(out, config.SourceConfig{
			X:      s.Centre.X,
			Y:      s.Centre.Y,
			Radius: s.Radius,
			VX:     s.Velocity.X,
			VY:     s.Velocity.Y,
		})
	}
	return out
}
