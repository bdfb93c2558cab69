package tactile

import "math"

// Polygon is a convex polygon whose Points are stored relative to Center.
// Moving a polygon only touches Center.
type Polygon struct {
	Center Vec2
	Points []Vec2
}

// Intersection describes the minimum translation between two overlapping
// polygons: the smallest projected Overlap and the unit Axis it was found on.
type Intersection struct {
	Overlap float64
	Axis    Vec2
}

// NewRectPolygon returns a w×h rectangle centered at center and rotated by
// rotation radians around it.
func NewRectPolygon(center Vec2, w, h, rotation float64) Polygon {
	hw, hh := w/2, h/2
	corners := []Vec2{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	if rotation != 0 {
		for i := range corners {
			corners[i] = corners[i].Rotate(rotation)
		}
	}
	return Polygon{Center: center, Points: corners}
}

// AbsolutePoints returns the polygon's vertices in the containing space.
func (p Polygon) AbsolutePoints() []Vec2 {
	out := make([]Vec2, len(p.Points))
	for i, pt := range p.Points {
		out[i] = pt.Add(p.Center)
	}
	return out
}

// Bounds returns the axis-aligned bounding rectangle of the polygon.
func (p Polygon) Bounds() Rect {
	if len(p.Points) == 0 {
		return Rect{X: p.Center.X, Y: p.Center.Y}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pt := range p.Points {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return Rect{X: p.Center.X + minX, Y: p.Center.Y + minY, Width: maxX - minX, Height: maxY - minY}
}

// axes returns the unit normals of every non-degenerate edge.
func (p Polygon) axes() []Vec2 {
	n := len(p.Points)
	out := make([]Vec2, 0, n)
	for i := 0; i < n; i++ {
		edge := p.Points[(i+1)%n].Sub(p.Points[i])
		normal := Vec2{-edge.Y, edge.X}.Normalize()
		if normal == (Vec2{}) {
			continue
		}
		out = append(out, normal)
	}
	return out
}

// projection is the [min, max] interval of a polygon projected on an axis.
type projection struct {
	min, max float64
}

func (p Polygon) project(axis Vec2) projection {
	pr := projection{min: math.Inf(1), max: math.Inf(-1)}
	for _, pt := range p.Points {
		d := pt.Add(p.Center).Dot(axis)
		pr.min = math.Min(pr.min, d)
		pr.max = math.Max(pr.max, d)
	}
	return pr
}

// overlaps is strict: intervals that only share an endpoint do not overlap.
func (a projection) overlaps(b projection) bool {
	return a.max > b.min && b.max > a.min
}

func (a projection) overlap(b projection) float64 {
	return math.Min(a.max, b.max) - math.Max(a.min, b.min)
}

// IntersectsWith runs the separating axis test over the edge normals of both
// polygons. It returns false as soon as one axis separates them. Polygons
// that merely touch are not intersecting. On overlap the returned
// Intersection holds the smallest overlap and its axis.
func (p Polygon) IntersectsWith(other Polygon) (Intersection, bool) {
	if len(p.Points) < 3 || len(other.Points) < 3 {
		return Intersection{}, false
	}
	axes := append(p.axes(), other.axes()...)
	if len(axes) == 0 {
		return Intersection{}, false
	}
	result := Intersection{Overlap: math.MaxFloat64}
	for _, axis := range axes {
		pa := p.project(axis)
		pb := other.project(axis)
		if !pa.overlaps(pb) {
			return Intersection{}, false
		}
		if o := pa.overlap(pb); o < result.Overlap {
			result.Overlap = o
			result.Axis = axis
		}
	}
	return result, true
}

// ContainsPoint reports whether pt lies inside the polygon using the
// even-odd ray casting rule.
func (p Polygon) ContainsPoint(pt Vec2) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	x, y := pt.X-p.Center.X, pt.Y-p.Center.Y
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := p.Points[i], p.Points[j]
		if (pi.Y > y) != (pj.Y > y) &&
			x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

// Contains makes a Polygon usable as a node HitShape (local coordinates).
func (p Polygon) Contains(x, y float64) bool {
	return p.ContainsPoint(Vec2{x, y})
}
