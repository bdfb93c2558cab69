package tactile

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Scatter defaults.
const (
	DefaultMinScale            = 0.1
	DefaultMaxScale            = 1.0
	DefaultOverdoScaling       = 1.5
	DefaultThrowVisibility     = 44.0
	DefaultCollision           = 0.5
	DefaultMouseZoomFactor     = 1.1
	DefaultScaleBounceDelay    = 100 * time.Millisecond
	DefaultScaleBounceDuration = 250 * time.Millisecond

	wheelRotateStep = 5 * math.Pi / 180
	// visibilitySlack absorbs rounding in the SAT overlap of a scatter
	// that is exactly as wide as its visibility.
	visibilitySlack = 1e-9
)

// Errors returned by NewScatter.
var (
	ErrConflictingRotation = errors.New("both Rotation and RotationDegrees are set")
	ErrNoContainer         = errors.New("scatter needs a container")
	ErrNoSize              = errors.New("scatter needs a positive width and height")
)

// Container is the space a scatter lives and bounces in.
type Container interface {
	// Bounds returns the container's extent in its own coordinates.
	Bounds() Rect
	// Polygon returns Bounds as a polygon.
	Polygon() Polygon
	// MapPositionToPoint projects a screen position into container
	// coordinates.
	MapPositionToPoint(global Vec2) Vec2
	// Frames returns the scheduler driving throws and bounce-backs.
	Frames() *Frames
}

// Visual is the rendered object a scatter moves. Position is the object's
// center; scale and rotation apply about it. *Node implements Visual.
type Visual interface {
	SetPosition(x, y float64)
	SetScale(sx, sy float64)
	SetRotation(r float64)
	BringToFront()
}

// ScatterConfig configures a new Scatter. Zero values take the defaults; the
// boolean switches are phrased so that false is the common setting.
type ScatterConfig struct {
	Name string

	// X and Y are the center of the scatter in container coordinates.
	X, Y float64
	// Width and Height are the unscaled size. Both are required.
	Width, Height float64

	// Scale is the initial scale (default 1).
	Scale float64
	// Rotation is the initial rotation in radians. Mutually exclusive with
	// RotationDegrees.
	Rotation *float64
	// RotationDegrees is the initial rotation in degrees.
	RotationDegrees *float64

	MinScale      float64 // default 0.1
	MaxScale      float64 // default 1.0
	OverdoScaling float64 // default 1.5

	// ThrowVisibility is the polygon overlap with the container below which
	// the scatter is pushed back in (default 44).
	ThrowVisibility float64
	// ThrowDamping is the fraction of velocity kept per frame (default 0.95).
	ThrowDamping float64
	// Collision is the velocity factor applied on an axis after bouncing off
	// a container edge (default 0.5).
	Collision float64
	// MouseZoomFactor is the zoom applied per wheel step (default 1.1).
	MouseZoomFactor float64
	// MaxRotation limits the rotation applied by a single move, in radians.
	// Zero means no limit.
	MaxRotation float64

	ScaleBounceDelay    time.Duration // default 100ms
	ScaleBounceDuration time.Duration // default 250ms

	NoTranslate    bool
	NoScale        bool
	NoRotate       bool
	LockX          bool
	LockY          bool
	NoAutoThrow    bool
	NoBringToFront bool
	Resizable      bool

	EntityID uint32
}

func (c ScatterConfig) withDefaults() ScatterConfig {
	if c.Scale == 0 {
		c.Scale = 1
	}
	if c.MinScale <= 0 {
		c.MinScale = DefaultMinScale
	}
	if c.MaxScale <= 0 {
		c.MaxScale = DefaultMaxScale
	}
	if c.OverdoScaling <= 0 {
		c.OverdoScaling = DefaultOverdoScaling
	}
	if c.ThrowVisibility <= 0 {
		c.ThrowVisibility = DefaultThrowVisibility
	}
	if c.ThrowDamping <= 0 {
		c.ThrowDamping = DefaultThrowDamping
	}
	if c.Collision <= 0 {
		c.Collision = DefaultCollision
	}
	if c.MouseZoomFactor <= 0 {
		c.MouseZoomFactor = DefaultMouseZoomFactor
	}
	if c.ScaleBounceDelay <= 0 {
		c.ScaleBounceDelay = DefaultScaleBounceDelay
	}
	if c.ScaleBounceDuration <= 0 {
		c.ScaleBounceDuration = DefaultScaleBounceDuration
	}
	return c
}

// Scatter is a pannable, zoomable, rotatable object that can be thrown and
// bounces back into its container. It is a Target: a Mapper drives it with
// the pointers that went down on it.
//
// The exported switches may be flipped at any time, including during a
// gesture.
type Scatter struct {
	Name     string
	EntityID uint32

	Translatable     bool
	Scalable         bool
	Rotatable        bool
	MovableX         bool
	MovableY         bool
	Resizable        bool
	AutoBringToFront bool

	MinScale        float64
	MaxScale        float64
	OverdoScaling   float64
	ThrowVisibility float64
	Collision       float64
	MouseZoomFactor float64
	MaxRotation     float64

	ScaleBounceDelay    time.Duration
	ScaleBounceDuration time.Duration

	// StartGesture gates new gestures. Nil accepts every gesture.
	StartGesture func() bool
	// OnTap is called for every lifted pointer classified as a tap; p is
	// where it lifted, in container coordinates.
	OnTap func(ev *Event, pts *Points, p Vec2)
	// OnLongPress is called for every lifted pointer classified as a long
	// press.
	OnLongPress func(ev *Event, pts *Points, p Vec2)
	// OnResize is called with the scaled size of a Resizable scatter
	// whenever its scale changes.
	OnResize func(w, h float64)
	// OnThrowFinished is called when the scatter comes to rest after a
	// gesture, thrown or not.
	OnThrowFinished func()

	container Container
	visual    Visual
	throw     Thrower
	handlers  transformRegistry
	store     EntityStore
	bounce    scaleBounce

	pos      Vec2
	scale    float64
	rotation float64
	width    float64
	height   float64

	dragging   bool
	zoomAnchor *Vec2
	debug      bool
}

// NewScatter creates a scatter in container that moves visual. The visual
// is brought to the configured position, scale and rotation immediately.
func NewScatter(container Container, visual Visual, cfg ScatterConfig) (*Scatter, error) {
	if cfg.Rotation != nil && cfg.RotationDegrees != nil {
		return nil, fmt.Errorf("tactile: new scatter %q: %w", cfg.Name, ErrConflictingRotation)
	}
	if container == nil {
		return nil, fmt.Errorf("tactile: new scatter %q: %w", cfg.Name, ErrNoContainer)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("tactile: new scatter %q: %w", cfg.Name, ErrNoSize)
	}
	cfg = cfg.withDefaults()

	var clock Clock
	if f := container.Frames(); f != nil {
		clock = f.Clock()
	}

	s := &Scatter{
		Name:                cfg.Name,
		EntityID:            cfg.EntityID,
		Translatable:        !cfg.NoTranslate,
		Scalable:            !cfg.NoScale,
		Rotatable:           !cfg.NoRotate,
		MovableX:            !cfg.LockX,
		MovableY:            !cfg.LockY,
		Resizable:           cfg.Resizable,
		AutoBringToFront:    !cfg.NoBringToFront,
		MinScale:            cfg.MinScale,
		MaxScale:            cfg.MaxScale,
		OverdoScaling:       cfg.OverdoScaling,
		ThrowVisibility:     cfg.ThrowVisibility,
		Collision:           cfg.Collision,
		MouseZoomFactor:     cfg.MouseZoomFactor,
		MaxRotation:         cfg.MaxRotation,
		ScaleBounceDelay:    cfg.ScaleBounceDelay,
		ScaleBounceDuration: cfg.ScaleBounceDuration,
		container:           container,
		visual:              visual,
		throw:               NewThrower(clock),
		pos:                 Vec2{cfg.X, cfg.Y},
		scale:               cfg.Scale,
		width:               cfg.Width,
		height:              cfg.Height,
	}
	s.throw.Damping = cfg.ThrowDamping
	s.throw.AutoThrow = !cfg.NoAutoThrow
	switch {
	case cfg.Rotation != nil:
		s.rotation = *cfg.Rotation
	case cfg.RotationDegrees != nil:
		s.rotation = DegToRad(*cfg.RotationDegrees)
	}
	s.sync()
	return s, nil
}

// Position returns the scatter's center in container coordinates.
func (s *Scatter) Position() Vec2 { return s.pos }

// Scale returns the current scale.
func (s *Scatter) Scale() float64 { return s.scale }

// Rotation returns the current rotation in radians.
func (s *Scatter) Rotation() float64 { return s.rotation }

// RotationDegrees returns the current rotation in degrees.
func (s *Scatter) RotationDegrees() float64 { return RadToDeg(s.rotation) }

// Size returns the unscaled width and height.
func (s *Scatter) Size() (w, h float64) { return s.width, s.height }

// Center returns the scatter's center. It coincides with Position.
func (s *Scatter) Center() Vec2 { return s.pos }

// RotationOrigin returns the pivot that rotation and scale apply about.
func (s *Scatter) RotationOrigin() Vec2 { return s.pos }

// Polygon returns the scatter's outline in container coordinates.
func (s *Scatter) Polygon() Polygon {
	return NewRectPolygon(s.pos, s.width*s.scale, s.height*s.scale, s.rotation)
}

// Bounds returns the axis-aligned bounding box of Polygon.
func (s *Scatter) Bounds() Rect {
	return s.Polygon().Bounds()
}

// Visual returns the object the scatter moves.
func (s *Scatter) Visual() Visual { return s.visual }

// Container returns the scatter's container.
func (s *Scatter) Container() Container { return s.container }

// Dragging reports whether a gesture is in progress.
func (s *Scatter) Dragging() bool { return s.dragging }

// Throwing reports whether the scatter is coasting after a throw.
func (s *Scatter) Throwing() bool { return s.throw.Throwing() }

// Thrower exposes the scatter's throw state.
func (s *Scatter) Thrower() *Thrower { return &s.throw }

// SetDebug enables throw diagnostics on stderr.
func (s *Scatter) SetDebug(enabled bool) {
	s.debug = enabled
	s.throw.debug = enabled
}

// SetPosition moves the center to p without emitting an event.
func (s *Scatter) SetPosition(p Vec2) {
	s.pos = p
	s.sync()
}

// SetScale sets the scale without emitting an event.
func (s *Scatter) SetScale(scale float64) {
	s.scale = scale
	s.resized()
	s.sync()
}

// SetRotation sets the rotation in radians without emitting an event.
func (s *Scatter) SetRotation(r float64) {
	s.rotation = r
	s.sync()
}

// sync pushes the transform to the visual.
func (s *Scatter) sync() {
	if s.visual == nil {
		return
	}
	s.visual.SetPosition(s.pos.X, s.pos.Y)
	s.visual.SetScale(s.scale, s.scale)
	s.visual.SetRotation(s.rotation)
}

func (s *Scatter) resized() {
	if s.Resizable && s.OnResize != nil {
		s.OnResize(s.width*s.scale, s.height*s.scale)
	}
}

// move displaces the center by d, honoring the per-axis locks.
func (s *Scatter) move(d Vec2) Vec2 {
	if !s.MovableX {
		d.X = 0
	}
	if !s.MovableY {
		d.Y = 0
	}
	s.pos = s.pos.Add(d)
	return d
}

// calculateScale applies zoom to the current scale within the overdo range
// and returns the new scale with the zoom actually achieved.
func (s *Scatter) calculateScale(zoom float64) (scale, achieved float64) {
	scale = s.scale * zoom
	lo := s.MinScale / s.OverdoScaling
	hi := s.MaxScale * s.OverdoScaling
	if scale < lo {
		scale = lo
		zoom = scale / s.scale
	}
	if scale > hi {
		scale = hi
		zoom = scale / s.scale
	}
	return scale, zoom
}

// Transform translates, zooms and rotates the scatter so that anchor stays
// fixed on screen while the translation is added on top. Disabled
// capabilities zero their component. The new scale is clamped to the
// overdo range.
func (s *Scatter) Transform(translate Vec2, zoom, rotate float64, anchor Vec2) {
	if !s.Translatable {
		translate = Vec2{}
	}
	if !s.Rotatable {
		rotate = 0
	}
	if !s.Scalable {
		zoom = 1
	}

	if zoom == 1 && rotate == 0 {
		moved := s.move(translate)
		s.sync()
		s.emit(TransformUpdate, moved, 0, anchor)
		return
	}

	origin := s.RotationOrigin()
	beta := PointAngle(origin, anchor)
	distance := origin.Dist(anchor)
	newScale, achieved := s.calculateScale(zoom)
	newOrigin := Arc(anchor, beta+rotate, distance*achieved)
	offset := s.move(translate.Add(newOrigin.Sub(origin)))

	changed := newScale != s.scale
	s.scale = newScale
	s.rotation += rotate
	if changed {
		s.resized()
	}
	s.sync()
	s.emit(TransformUpdate, offset, rotate, anchor)
}

// BringToFront raises the visual above its siblings.
func (s *Scatter) BringToFront() {
	if s.visual != nil {
		s.visual.BringToFront()
	}
}

// Capture accepts every contact; the surface decides what to track.
func (s *Scatter) Capture(*Event) bool { return true }

// OnStart begins a gesture: the scatter is raised, any throw or scale
// bounce is stopped and velocity sampling restarts.
func (s *Scatter) OnStart(ev *Event, pts *Points) {
	if s.StartGesture != nil && !s.StartGesture() {
		return
	}
	about := s.pos
	if d, ok := pts.Delta(); ok {
		about = d.About
	}
	s.dragging = true
	if s.AutoBringToFront {
		s.BringToFront()
	}
	s.Kill()
	s.throw.ObserveVelocity()
	s.emit(TransformStart, Vec2{}, 0, about)
}

// OnMove applies the gesture delta of pts.
func (s *Scatter) OnMove(ev *Event, pts *Points) {
	if !s.dragging {
		return
	}
	d, ok := pts.Delta()
	if !ok {
		return
	}
	s.throw.AddVelocity(d.Translate())
	rotate := d.Rotate
	if s.MaxRotation > 0 {
		rotate = math.Max(-s.MaxRotation, math.Min(s.MaxRotation, rotate))
	}
	s.Transform(d.Translate(), d.Zoom, rotate, d.About)
	if d.Zoom != 1 {
		about := d.About
		s.zoomAnchor = &about
	}
}

// OnEnd finishes the gesture once every pointer on the scatter has lifted,
// starting the throw. Lifted pointers classified as taps or long presses
// fire their hooks.
func (s *Scatter) OnEnd(ev *Event, pts *Points) {
	if s.dragging && pts.IsFinished() {
		s.dragging = false
		about := s.pos
		if keys := pts.EndedKeys(); len(keys) > 0 {
			about, _ = pts.Ended(keys[len(keys)-1])
		}
		s.emit(TransformEnd, Vec2{}, 0, about)
		s.throw.Start(s, s.container.Frames())
		// OnStart cancelled any bounce in flight.
		anchor := about
		if s.zoomAnchor != nil {
			anchor = *s.zoomAnchor
			s.zoomAnchor = nil
		}
		s.checkScaling(anchor)
	}
	for _, key := range pts.EndedKeys() {
		p, _ := pts.Ended(key)
		switch {
		case pts.IsTap(key):
			if s.OnTap != nil {
				s.OnTap(ev, pts, p)
			}
		case pts.IsLongPress(key):
			if s.OnLongPress != nil {
				s.OnLongPress(ev, pts, p)
			}
		}
	}
}

// OnMouseWheel zooms about the cursor, or rotates by 5° with Shift held.
// Scrolling up zooms in. A scale beyond [MinScale, MaxScale] springs back
// afterwards. The wheel is left unclaimed when the scatter cannot scale or
// rotate, so the surface can use it.
func (s *Scatter) OnMouseWheel(ev *Event) Claim {
	if ev.WheelY == 0 {
		return Unclaimed
	}
	rotating := ev.Modifiers&ModShift != 0
	if rotating && !s.Rotatable || !rotating && !s.Scalable {
		return Unclaimed
	}
	up := ev.WheelY > 0
	anchor := s.container.MapPositionToPoint(ev.Position())
	if rotating {
		rotate := -wheelRotateStep
		if up {
			rotate = wheelRotateStep
		}
		s.Transform(Vec2{}, 1, rotate, anchor)
		s.emit(TransformZoom, Vec2{}, rotate, anchor)
	} else {
		zoom := 1 / s.MouseZoomFactor
		if up {
			zoom = s.MouseZoomFactor
		}
		s.Transform(Vec2{}, zoom, 0, anchor)
		s.emit(TransformZoom, Vec2{}, 0, anchor)
	}
	s.checkScaling(anchor)
	return Claimed
}

// Kill stops a running throw and a pending scale bounce.
func (s *Scatter) Kill() {
	s.throw.Kill()
	s.cancelBounce()
}

// NextVelocity keeps the scatter on stage: a scatter that is not visible
// enough is pushed back and loses speed on the axes where its center left
// the container. Otherwise the velocity is plainly damped.
func (s *Scatter) NextVelocity(v Vec2) Vec2 {
	if !s.bouncing() {
		return s.throw.dampen(v)
	}
	return s.keepOnStage(v)
}

// keepOnStage reflects v on every axis where the center lies beyond a
// container edge, scaled by Collision there and by the throw damping
// elsewhere.
func (s *Scatter) keepOnStage(v Vec2) Vec2 {
	b := s.container.Bounds()
	out := s.throw.dampen(v)
	if s.pos.X < b.X || s.pos.X > b.X+b.Width {
		out.X = -v.X * s.Collision
	}
	if s.pos.Y < b.Y || s.pos.Y > b.Y+b.Height {
		out.Y = -v.Y * s.Collision
	}
	if !s.MovableX {
		out.X = 0
	}
	if !s.MovableY {
		out.Y = 0
	}
	return out
}

// visibility returns the overlap the scatter needs to count as on stage.
// A scatter narrower than ThrowVisibility only has to be fully inside.
func (s *Scatter) visibility() float64 {
	return math.Min(s.ThrowVisibility, math.Min(s.width*s.scale, s.height*s.scale))
}

// visibleEnough reports whether poly overlaps stage by at least the
// scatter's visibility.
func (s *Scatter) visibleEnough(poly Polygon, stage Polygon) bool {
	in, ok := poly.IntersectsWith(stage)
	return ok && in.Overlap >= s.visibility()-visibilitySlack
}

// pushOnStage walks poly toward the stage center in unit steps, along the
// axes the scatter may move on, until it is visible enough. It reports
// whether poly ended up visible enough.
func (s *Scatter) pushOnStage(poly *Polygon, stage Polygon) bool {
	dir := stage.Center.Sub(poly.Center)
	if !s.MovableX {
		dir.X = 0
	}
	if !s.MovableY {
		dir.Y = 0
	}
	step := dir.Normalize()
	if step == (Vec2{}) {
		return false
	}
	limit := int(math.Ceil(dir.Len())) + 1
	for i := 0; i < limit; i++ {
		if s.visibleEnough(*poly, stage) {
			return true
		}
		poly.Center = poly.Center.Add(step)
	}
	return s.visibleEnough(*poly, stage)
}

// bouncing pushes the scatter back on stage when it is not visible enough.
// It reports whether a push was needed. A scatter that cannot get back on
// stage along its movable axes is left where it is.
func (s *Scatter) bouncing() bool {
	stage := s.container.Polygon()
	poly := s.Polygon()
	if s.visibleEnough(poly, stage) {
		return false
	}
	start := poly.Center
	if s.pushOnStage(&poly, stage) {
		s.move(poly.Center.Sub(start))
		s.sync()
	}
	return true
}

// Outside reports whether the scatter is not visible enough in its
// container and can still be pushed back. A scatter held off stage by a
// locked axis is not outside.
func (s *Scatter) Outside() bool {
	stage := s.container.Polygon()
	poly := s.Polygon()
	if s.visibleEnough(poly, stage) {
		return false
	}
	return s.pushOnStage(&poly, stage)
}

// ThrowMove moves the scatter by one throw step.
func (s *Scatter) ThrowMove(d Vec2) {
	moved := s.move(d)
	s.sync()
	s.emit(TransformUpdate, moved, 0, s.pos)
}

// ThrowFinished is called when the throw has ended.
func (s *Scatter) ThrowFinished() {
	if s.OnThrowFinished != nil {
		s.OnThrowFinished()
	}
}

// Static interface checks.
var (
	_ Target       = (*Scatter)(nil)
	_ WheelHandler = (*Scatter)(nil)
	_ Throwable    = (*Scatter)(nil)
)
