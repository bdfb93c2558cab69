package tactile

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func newTestCamera() *Camera {
	return NewCamera(Rect{Width: 400, Height: 300})
}

func screenOf(c *Camera, p Vec2) Vec2 {
	x, y := c.WorldToScreen(p.X, p.Y)
	return Vec2{x, y}
}

func worldOf(c *Camera, p Vec2) Vec2 {
	x, y := c.ScreenToWorld(p.X, p.Y)
	return Vec2{x, y}
}

func TestCameraStartsAsIdentity(t *testing.T) {
	c := newTestCamera()
	if c.X != 200 || c.Y != 150 || c.Zoom != 1 {
		t.Fatalf("camera = (%v,%v) zoom %v", c.X, c.Y, c.Zoom)
	}
	for _, p := range []Vec2{{0, 0}, {10, 20}, {399, 299}} {
		if got := screenOf(c, p); !vecApprox(got, p, 1e-9) {
			t.Errorf("WorldToScreen(%v) = %v", p, got)
		}
		if got := worldOf(c, p); !vecApprox(got, p, 1e-9) {
			t.Errorf("ScreenToWorld(%v) = %v", p, got)
		}
	}
}

func TestCameraPanBy(t *testing.T) {
	c := newTestCamera()
	c.PanBy(Vec2{10, 5})
	if got := screenOf(c, Vec2{}); !vecApprox(got, Vec2{10, 5}, 1e-9) {
		t.Errorf("origin on screen = %v, want (10,5)", got)
	}
}

func TestCameraZoomAboutKeepsPoint(t *testing.T) {
	c := newTestCamera()
	c.PanBy(Vec2{-30, 12})
	screen := Vec2{100, 50}
	world := worldOf(c, screen)

	c.ZoomAbout(screen, 2)

	if c.Zoom != 2 {
		t.Errorf("Zoom = %v, want 2", c.Zoom)
	}
	if got := screenOf(c, world); !vecApprox(got, screen, 1e-9) {
		t.Errorf("zoom anchor moved to %v, want %v", got, screen)
	}
}

func TestCameraZoomLimits(t *testing.T) {
	tests := []struct {
		name   string
		factor float64
		want   float64
	}{
		{"in past max", 10, 4},
		{"out past min", 0.01, 0.25},
		{"within", 1.5, 1.5},
		{"zero ignored", 0, 1},
		{"negative ignored", -2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCamera()
			c.MinZoom, c.MaxZoom = 0.25, 4
			c.ZoomAbout(Vec2{200, 150}, tt.factor)
			if c.Zoom != tt.want {
				t.Errorf("Zoom = %v, want %v", c.Zoom, tt.want)
			}
		})
	}
}

func TestCameraScrollTo(t *testing.T) {
	c := newTestCamera()
	c.ScrollTo(50, 60, 1, ease.Linear)
	if !c.Scrolling() {
		t.Fatal("ScrollTo did not start a scroll")
	}
	c.update(0.5)
	if !c.Scrolling() {
		t.Fatal("scroll finished halfway")
	}
	if c.X >= 200 || c.X <= 50 {
		t.Errorf("halfway X = %v", c.X)
	}
	c.update(0.6)
	if c.Scrolling() {
		t.Error("scroll still running after its duration")
	}
	if c.X != 50 || c.Y != 60 {
		t.Errorf("camera at (%v,%v), want (50,60)", c.X, c.Y)
	}
}

func TestCameraPanCancelsScroll(t *testing.T) {
	c := newTestCamera()
	c.ScrollTo(0, 0, 1, ease.Linear)
	c.PanBy(Vec2{1, 0})
	if c.Scrolling() {
		t.Error("PanBy should cancel the scroll")
	}
}

func TestCameraBounds(t *testing.T) {
	c := newTestCamera()
	c.SetBounds(Rect{Width: 800, Height: 600})
	c.PanBy(Vec2{100, 100})
	if c.X != 200 || c.Y != 150 {
		t.Errorf("camera at (%v,%v), want clamped to (200,150)", c.X, c.Y)
	}
	c.PanBy(Vec2{-1000, -1000})
	if c.X != 600 || c.Y != 450 {
		t.Errorf("camera at (%v,%v), want clamped to (600,450)", c.X, c.Y)
	}

	c.SetBounds(Rect{Width: 100, Height: 100})
	c.ClampToBounds()
	if c.X != 50 || c.Y != 50 {
		t.Errorf("small bounds: camera at (%v,%v), want centered (50,50)", c.X, c.Y)
	}

	c.ClearBounds()
	c.PanBy(Vec2{-1000, 0})
	if c.X != 1050 {
		t.Errorf("unbounded X = %v, want 1050", c.X)
	}
}

func TestCameraVisibleBounds(t *testing.T) {
	c := newTestCamera()
	c.ZoomAbout(Vec2{200, 150}, 2)
	got := c.VisibleBounds()
	want := Rect{X: 100, Y: 75, Width: 200, Height: 150}
	if !approxEqual(got.X, want.X, 1e-9) || !approxEqual(got.Y, want.Y, 1e-9) ||
		!approxEqual(got.Width, want.Width, 1e-9) || !approxEqual(got.Height, want.Height, 1e-9) {
		t.Errorf("VisibleBounds = %+v, want %+v", got, want)
	}
}

func TestShouldCull(t *testing.T) {
	view := Rect{Width: 400, Height: 300}
	identity := [6]float64{1, 0, 0, 1, 0, 0}
	offscreen := [6]float64{1, 0, 0, 1, 500, 0}

	sprite := NewSprite("s", 10, 10, ColorWhite)
	if shouldCull(sprite, identity, view) {
		t.Error("visible sprite culled")
	}
	if !shouldCull(sprite, offscreen, view) {
		t.Error("offscreen sprite not culled")
	}
	if shouldCull(NewContainer("c"), offscreen, view) {
		t.Error("containers are never culled")
	}
}
