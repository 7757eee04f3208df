package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(660, 520, 640, 480)

	// Should be centered on world
	if cam.X != 320 || cam.Y != 240 {
		t.Errorf("expected camera at (320, 240), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}

	// Uniform fit uses the tighter axis
	sx, sy := cam.Scale()
	if sx != sy || math.Abs(sx-660.0/640) > 1e-12 {
		t.Errorf("scale = (%v, %v), want uniform %v", sx, sy, 660.0/640)
	}
}

func TestWorldCornersLetterboxed(t *testing.T) {
	// 2:1 viewport, 4:3 world: height limits, margins left and right
	cam := New(1000, 480, 640, 480)

	sx, sy := cam.WorldToScreen(0, 0)
	if math.Abs(sx-180) > 1e-9 || math.Abs(sy) > 1e-9 {
		t.Errorf("world origin at (%v, %v), want (180, 0)", sx, sy)
	}
	sx, sy = cam.WorldToScreen(640, 480)
	if math.Abs(sx-820) > 1e-9 || math.Abs(sy-480) > 1e-9 {
		t.Errorf("world far corner at (%v, %v), want (820, 480)", sx, sy)
	}

	// Left margin is outside the world
	wx, wy := cam.ScreenToWorld(10, 240)
	if cam.InWorld(wx, wy) {
		t.Errorf("margin point maps inside the world at (%v, %v)", wx, wy)
	}
}

func TestStretchedFillsViewport(t *testing.T) {
	cam := NewStretched(80, 24, 640, 480)

	sx, sy := cam.WorldToScreen(640, 480)
	if math.Abs(sx-80) > 1e-9 || math.Abs(sy-24) > 1e-9 {
		t.Errorf("far corner at (%v, %v), want (80, 24)", sx, sy)
	}

	kx, ky := cam.Scale()
	if kx == ky {
		t.Error("stretched camera has uniform scale")
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cams := map[string]*Camera{
		"fit":     New(900, 520, 640, 480),
		"stretch": NewStretched(120, 40, 640, 480),
	}

	testCases := []struct{ sx, sy float64 }{
		{450, 260},
		{100, 100},
		{60, 10},
	}

	for name, cam := range cams {
		for _, tc := range testCases {
			wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
			sx, sy := cam.WorldToScreen(wx, wy)
			if math.Abs(sx-tc.sx) > 1e-9 || math.Abs(sy-tc.sy) > 1e-9 {
				t.Errorf("%s roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
					name, tc.sx, tc.sy, wx, wy, sx, sy)
			}
		}
	}
}

func TestPanClampedToWorld(t *testing.T) {
	cam := New(640, 480, 640, 480)

	// Whole world visible: panning has no effect
	cam.Pan(100, 100)
	if cam.X != 320 || cam.Y != 240 {
		t.Errorf("pan at zoom 1 moved camera to (%f, %f)", cam.X, cam.Y)
	}

	cam.SetZoom(2)
	cam.Pan(-10000, -10000)
	minX, minY, _, _ := cam.VisibleWorldBounds()
	if math.Abs(minX) > 1e-9 || math.Abs(minY) > 1e-9 {
		t.Errorf("view escaped the world: min (%f, %f)", minX, minY)
	}

	cam.Pan(10000, 10000)
	_, _, maxX, maxY := cam.VisibleWorldBounds()
	if math.Abs(maxX-640) > 1e-9 || math.Abs(maxY-480) > 1e-9 {
		t.Errorf("view escaped the world: max (%f, %f)", maxX, maxY)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(640, 480, 640, 480)

	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to max %f, got %f", cam.MaxZoom, cam.Zoom)
	}

	cam.SetZoom(0.1)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to min %f, got %f", cam.MinZoom, cam.Zoom)
	}

	cam.SetZoom(2)
	cam.ZoomBy(1.5)
	if math.Abs(cam.Zoom-3) > 1e-9 {
		t.Errorf("ZoomBy(1.5) from 2 = %f, want 3", cam.Zoom)
	}
}

func TestResizeRefits(t *testing.T) {
	cam := New(640, 480, 640, 480)
	cam.Resize(1280, 960)

	sx, sy := cam.WorldToScreen(640, 480)
	if math.Abs(sx-1280) > 1e-9 || math.Abs(sy-960) > 1e-9 {
		t.Errorf("after resize far corner at (%v, %v), want (1280, 960)", sx, sy)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(640, 480, 640, 480)
	cam.SetZoom(4)
	cam.Pan(-10000, -10000)

	// View covers [0,160]x[0,120]
	tests := []struct {
		x, y, r float64
		want    bool
	}{
		{80, 60, 1, true},
		{170, 60, 5, false},
		{170, 60, 20, true},
		{600, 400, 30, false},
	}

	for _, tt := range tests {
		if got := cam.IsVisible(tt.x, tt.y, tt.r); got != tt.want {
			t.Errorf("IsVisible(%v, %v, %v) = %v, want %v", tt.x, tt.y, tt.r, got, tt.want)
		}
	}
}

func TestReset(t *testing.T) {
	cam := New(640, 480, 640, 480)
	cam.SetZoom(3)
	cam.Pan(50, 50)

	cam.Reset()

	if cam.X != 320 || cam.Y != 240 || cam.Zoom != 1 {
		t.Errorf("after reset camera at (%f, %f) zoom %f", cam.X, cam.Y, cam.Zoom)
	}
}
