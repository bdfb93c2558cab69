package tactile

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts c to a premultiplied color.RGBA for image.Fill.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for points, deltas, velocities, and directions
// throughout the API. Which coordinate space a Vec2 lives in (screen,
// surface-local, node-local) is defined by the function that produced it.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Polygon returns the rectangle as an axis-aligned convex polygon.
func (r Rect) Polygon() Polygon {
	return NewRectPolygon(r.Center(), r.Width, r.Height, 0)
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeSprite                    // renders a solid rect or a custom image
)

// TransformType identifies the lifecycle phase a TransformEvent reports.
type TransformType uint8

const (
	TransformStart  TransformType = iota // a gesture began on the scatter
	TransformUpdate                      // position, scale or rotation changed
	TransformEnd                         // the last pointer left the scatter
	TransformZoom                        // a mouse wheel zoom or rotate step
)

// String returns the lowercase name of the transform type.
func (t TransformType) String() string {
	switch t {
	case TransformStart:
		return "start"
	case TransformUpdate:
		return "update"
	case TransformEnd:
		return "end"
	case TransformZoom:
		return "zoom"
	default:
		return "unknown"
	}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// MouseButtons is a bitmask of currently held mouse buttons, one bit per
// MouseButton.
type MouseButtons uint8

// Has reports whether b is held.
func (m MouseButtons) Has(b MouseButton) bool {
	return m&(1<<b) != 0
}

// ButtonMask returns the single-bit mask for b.
func ButtonMask(b MouseButton) MouseButtons {
	return 1 << b
}

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Claim reports whether an event was consumed by a handler. It replaces
// stamping a marker onto the shared event: nested surfaces check the returned
// Claim before forwarding the event further.
type Claim uint8

const (
	Unclaimed Claim = iota // nobody handled the event
	Claimed                // a target handled the event exclusively
)
