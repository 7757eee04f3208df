package sim

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// Selection is the controller's transient grip on a source. Entity is a
// handle into the registry; it never owns the source.
type Selection struct {
	Entity      ecs.Entity
	Active      bool
	LastPointer r2.Vec
}

// Controller maps pointer input in domain coordinates to picking and
// dragging sources.
//
// States are Idle and Dragging. A pointer down inside a source starts a
// drag, moves translate the source by the pointer delta, and a pointer up
// or an explicit Deselect returns to Idle.
type Controller struct {
	reg *Registry
	sel Selection
}

// NewController creates an idle controller over reg.
func NewController(reg *Registry) *Controller {
	return &Controller{reg: reg}
}

// PointerDown picks the first source containing pt.
// A press that misses every source leaves the state unchanged.
func (c *Controller) PointerDown(pt r2.Vec) bool {
	e, ok := c.reg.HitTest(pt)
	if !ok {
		return false
	}
	c.sel = Selection{Entity: e, Active: true, LastPointer: pt}
	return true
}

// PointerMove drags the picked source by the pointer delta.
// Returns false when idle.
func (c *Controller) PointerMove(pt r2.Vec) bool {
	if !c.sel.Active {
		return false
	}

	pos := c.reg.Position(c.sel.Entity)
	if pos == nil {
		// Source was removed under the pointer
		c.Deselect()
		return false
	}

	pos.Set(r2.Add(pos.Vec(), r2.Sub(pt, c.sel.LastPointer)))
	c.sel.LastPointer = pt
	return true
}

// PointerUp releases the picked source.
func (c *Controller) PointerUp() {
	c.Deselect()
}

// Deselect returns to Idle. Used when pointer capture is lost.
func (c *Controller) Deselect() {
	c.sel = Selection{}
}

// Dragging reports whether a source is picked.
func (c *Controller) Dragging() bool {
	return c.sel.Active
}

// Excluded returns the source the physics step must not integrate.
func (c *Controller) Excluded() (ecs.Entity, bool) {
	return c.sel.Entity, c.sel.Active
}

// Selection returns the current selection.
func (c *Controller) Selection() Selection {
	return c.sel
}
