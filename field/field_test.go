package field

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestEvaluateAtRadius(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		at     r2.Vec
	}{
		{"unit radius on x axis", 1, r2.Vec{X: 1}},
		{"radius 70 on y axis", 70, r2.Vec{Y: -70}},
		{"radius 50 diagonal", 50, r2.Vec{X: 30, Y: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Model{Sources: []Source{{Radius: tt.radius}}}
			got := m.Evaluate(tt.at)
			if got != 1.0 {
				t.Errorf("Evaluate(%v) = %v, want exactly 1", tt.at, got)
			}
			if !m.Inside(tt.at) {
				t.Errorf("point on the boundary should count as inside")
			}
		})
	}
}

func TestEvaluateSumsSources(t *testing.T) {
	m := Model{Sources: []Source{
		{Centre: r2.Vec{X: 0, Y: 0}, Radius: 2},
		{Centre: r2.Vec{X: 10, Y: 0}, Radius: 3},
	}}
	p := r2.Vec{X: 4, Y: 0}

	// 4/16 + 9/36
	want := 0.25 + 0.25
	if got := m.Evaluate(p); math.Abs(got-want) > 1e-12 {
		t.Errorf("Evaluate = %v, want %v", got, want)
	}

	// Order must not matter
	m.Sources[0], m.Sources[1] = m.Sources[1], m.Sources[0]
	if got := m.Evaluate(p); math.Abs(got-want) > 1e-12 {
		t.Errorf("Evaluate after reorder = %v, want %v", got, want)
	}
}

func TestEvaluateAtCentreIsInside(t *testing.T) {
	m := Model{Sources: []Source{{Centre: r2.Vec{X: 5, Y: 5}, Radius: 1}}}
	v := m.Evaluate(r2.Vec{X: 5, Y: 5})
	if !math.IsInf(v, 1) {
		t.Errorf("Evaluate at centre = %v, want +Inf", v)
	}
	if !Inside(v) {
		t.Error("+Inf must classify as inside")
	}
}

func TestEvaluateEmptyModel(t *testing.T) {
	var m Model
	if got := m.Evaluate(r2.Vec{X: 1, Y: 1}); got != 0 {
		t.Errorf("empty model Evaluate = %v, want 0", got)
	}
}

func TestSourceContains(t *testing.T) {
	s := Source{Centre: r2.Vec{X: 10, Y: 10}, Radius: 5}
	tests := []struct {
		pt   r2.Vec
		want bool
	}{
		{r2.Vec{X: 10, Y: 10}, true},
		{r2.Vec{X: 14, Y: 10}, true},
		{r2.Vec{X: 15, Y: 10}, false}, // boundary is outside the pick disk
		{r2.Vec{X: 20, Y: 20}, false},
	}
	for _, tt := range tests {
		if got := s.Contains(tt.pt); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.pt, got, tt.want)
		}
	}
}
