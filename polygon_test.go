package tactile

import (
	"math"
	"testing"
)

func TestPolygonIntersectsWith(t *testing.T) {
	square := func(x, y, rot float64) Polygon {
		return NewRectPolygon(Vec2{x, y}, 10, 10, rot)
	}
	tests := []struct {
		name        string
		a, b        Polygon
		want        bool
		wantOverlap float64
	}{
		{"half overlap", square(0, 0, 0), square(5, 0, 0), true, 5},
		{"contained", square(0, 0, 0), NewRectPolygon(Vec2{}, 4, 4, 0), true, 4},
		{"touching edges", square(0, 0, 0), square(10, 0, 0), false, 0},
		{"separated", square(0, 0, 0), square(20, 0, 0), false, 0},
		{"diagonal gap", square(0, 0, 0), square(11, 11, 0), false, 0},
		{"rotated corner", square(0, 0, math.Pi/4), square(12, 0, 0), true, 5*math.Sqrt2 - 7},
		{"rotated clear", square(0, 0, math.Pi/4), square(13, 0, 0), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, ok := tt.a.IntersectsWith(tt.b)
			if ok != tt.want {
				t.Fatalf("IntersectsWith = %v, want %v", ok, tt.want)
			}
			if ok && !approxEqual(in.Overlap, tt.wantOverlap, 1e-9) {
				t.Errorf("Overlap = %v, want %v", in.Overlap, tt.wantOverlap)
			}
			if ok && !approxEqual(in.Axis.Len(), 1, 1e-9) {
				t.Errorf("Axis %v is not a unit vector", in.Axis)
			}
		})
	}
}

func TestPolygonIntersectsIsSymmetric(t *testing.T) {
	a := NewRectPolygon(Vec2{0, 0}, 30, 10, 0.3)
	b := NewRectPolygon(Vec2{12, 4}, 10, 10, -0.7)
	ab, okAB := a.IntersectsWith(b)
	ba, okBA := b.IntersectsWith(a)
	if okAB != okBA {
		t.Fatalf("a∩b = %v but b∩a = %v", okAB, okBA)
	}
	if !approxEqual(ab.Overlap, ba.Overlap, 1e-9) {
		t.Errorf("overlap %v vs %v", ab.Overlap, ba.Overlap)
	}
}

func TestPolygonDegenerate(t *testing.T) {
	line := Polygon{Points: []Vec2{{0, 0}, {10, 0}}}
	sq := NewRectPolygon(Vec2{}, 10, 10, 0)
	if _, ok := line.IntersectsWith(sq); ok {
		t.Error("two-point polygon should not intersect")
	}
	if _, ok := sq.IntersectsWith(Polygon{}); ok {
		t.Error("empty polygon should not intersect")
	}
	if line.ContainsPoint(Vec2{5, 0}) {
		t.Error("two-point polygon should contain nothing")
	}
}

func TestPolygonMovesWithCenter(t *testing.T) {
	p := NewRectPolygon(Vec2{}, 10, 10, 0)
	q := NewRectPolygon(Vec2{30, 0}, 10, 10, 0)
	if _, ok := p.IntersectsWith(q); ok {
		t.Fatal("should start apart")
	}
	p.Center = Vec2{25, 0}
	if _, ok := p.IntersectsWith(q); !ok {
		t.Error("should overlap after moving the center")
	}
}

func TestPolygonContainsPoint(t *testing.T) {
	flat := NewRectPolygon(Vec2{50, 50}, 20, 10, 0)
	upright := NewRectPolygon(Vec2{50, 50}, 20, 10, math.Pi/2)
	tests := []struct {
		name string
		p    Polygon
		pt   Vec2
		want bool
	}{
		{"center", flat, Vec2{50, 50}, true},
		{"inside", flat, Vec2{55, 54}, true},
		{"right of", flat, Vec2{61, 50}, false},
		{"below", flat, Vec2{50, 56}, false},
		{"rotated inside", upright, Vec2{50, 59}, true},
		{"rotated outside", upright, Vec2{59, 50}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.ContainsPoint(tt.pt); got != tt.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.pt, got, tt.want)
			}
			if got := tt.p.Contains(tt.pt.X, tt.pt.Y); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.pt, got, tt.want)
			}
		})
	}
}

func TestPolygonBounds(t *testing.T) {
	b := NewRectPolygon(Vec2{0, 0}, 20, 10, math.Pi/2).Bounds()
	if !approxEqual(b.Width, 10, 1e-9) || !approxEqual(b.Height, 20, 1e-9) {
		t.Errorf("rotated bounds = %v, want 10x20", b)
	}
	if !approxEqual(b.X, -5, 1e-9) || !approxEqual(b.Y, -10, 1e-9) {
		t.Errorf("rotated bounds origin = (%v,%v), want (-5,-10)", b.X, b.Y)
	}
}

func TestRectPolygon(t *testing.T) {
	p := Rect{X: 0, Y: 0, Width: 100, Height: 50}.Polygon()
	if p.Center != (Vec2{50, 25}) {
		t.Errorf("Center = %v", p.Center)
	}
	pts := p.AbsolutePoints()
	if pts[0] != (Vec2{0, 0}) || pts[2] != (Vec2{100, 50}) {
		t.Errorf("AbsolutePoints = %v", pts)
	}
}

func TestRectContainsAndIntersects(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	if !r.Contains(10, 30) {
		t.Error("edge point should be inside")
	}
	if r.Contains(31, 20) {
		t.Error("point right of rect should be outside")
	}
	if !r.Intersects(Rect{X: 30, Y: 10, Width: 5, Height: 5}) {
		t.Error("edge-sharing rects intersect")
	}
	if r.Intersects(Rect{X: 40, Y: 40, Width: 5, Height: 5}) {
		t.Error("distant rects do not intersect")
	}
}
