package sim

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestControllerDrag(t *testing.T) {
	r := newTestRegistry(t)
	c := NewController(r)
	first := r.Entities()[0]

	if c.Dragging() {
		t.Fatal("new controller is dragging")
	}
	if c.PointerMove(r2.Vec{X: 10, Y: 10}) {
		t.Error("PointerMove while idle reported a drag")
	}

	if !c.PointerDown(r2.Vec{X: 200, Y: 210}) {
		t.Fatal("PointerDown inside first source missed")
	}
	if e, ok := c.Excluded(); !ok || e != first {
		t.Fatalf("Excluded() = %v, %v; want first source", e, ok)
	}

	c.PointerMove(r2.Vec{X: 205, Y: 200})
	c.PointerMove(r2.Vec{X: 215, Y: 190})

	pos := r.Position(first)
	if pos.X != 195 || pos.Y != 180 {
		t.Errorf("dragged source at (%v, %v), want (195, 180)", pos.X, pos.Y)
	}
	if sel := c.Selection(); sel.LastPointer != (r2.Vec{X: 215, Y: 190}) {
		t.Errorf("LastPointer = %v", sel.LastPointer)
	}

	c.PointerUp()
	if c.Dragging() {
		t.Error("still dragging after PointerUp")
	}
	if _, ok := c.Excluded(); ok {
		t.Error("Excluded() reports a source after PointerUp")
	}

	// Idle moves leave the source alone
	c.PointerMove(r2.Vec{X: 0, Y: 0})
	if pos := r.Position(first); pos.X != 195 || pos.Y != 180 {
		t.Errorf("idle move changed source to (%v, %v)", pos.X, pos.Y)
	}
}

func TestControllerMissKeepsState(t *testing.T) {
	r := newTestRegistry(t)
	c := NewController(r)

	if c.PointerDown(r2.Vec{X: 600, Y: 50}) {
		t.Fatal("PointerDown in empty space picked a source")
	}
	if c.Dragging() {
		t.Error("miss started a drag")
	}

	c.PointerDown(r2.Vec{X: 260, Y: 200})
	// A lost pointer up followed by a miss keeps the drag until Deselect
	c.PointerDown(r2.Vec{X: 600, Y: 50})
	if !c.Dragging() {
		t.Error("miss dropped the current drag")
	}
	c.Deselect()
	if c.Dragging() {
		t.Error("Deselect did not return to idle")
	}
}

func TestControllerSourceRemovedWhileDragging(t *testing.T) {
	r := newTestRegistry(t)
	c := NewController(r)

	c.PointerDown(r2.Vec{X: 400, Y: 300})
	e, _ := c.Excluded()
	r.Remove(e)

	if c.PointerMove(r2.Vec{X: 410, Y: 300}) {
		t.Error("PointerMove dragged a removed source")
	}
	if c.Dragging() {
		t.Error("controller still dragging a removed source")
	}
}
