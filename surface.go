package tactile

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration. When set on a
// Surface, every scatter transform event is forwarded to it.
type EntityStore interface {
	EmitEvent(event TransformEvent)
}

// InputSource delivers normalized host events once per frame.
type InputSource interface {
	// Capabilities reports which input families the source can produce.
	Capabilities() Capabilities
	// Poll appends the events of family api that happened since the
	// previous poll to dst.
	Poll(api InputAPI, now time.Time, dst []Event) []Event
}

// SurfaceConfig configures a Surface. Zero values take their defaults.
type SurfaceConfig struct {
	// Width and Height are the surface size in pixels (default 640×480).
	// Scatters bounce back into this rectangle.
	Width, Height float64
	// Interaction configures tap and long-press classification.
	Interaction InteractionConfig
	// Clock drives timestamps and the frame scheduler (default SystemClock).
	Clock Clock
	// Source is polled for input on each Update. Nil means input only
	// arrives through HandleEvent and the Inject methods.
	Source InputSource
	// API forces an input family. APINone picks the best one the source
	// offers, or the pointer family without a source.
	API InputAPI
	// PanView lets drags and pinches on empty space pan and zoom the
	// camera, and the wheel zoom it.
	PanView bool
	// MinZoom and MaxZoom bound the camera zoom (defaults 0.25 and 4).
	MinZoom, MaxZoom float64
	// MouseZoomFactor is the view zoom per wheel step (default 1.1).
	MouseZoomFactor float64
}

const (
	defaultSurfaceWidth  = 640
	defaultSurfaceHeight = 480
	defaultMinViewZoom   = 0.25
	defaultMaxViewZoom   = 4
)

// Surface owns a node tree, the scatters living in it and the single Mapper
// that routes every pointer to the scatter it went down on. Scatter
// coordinates are surface coordinates; the camera maps them to the screen.
type Surface struct {
	// PanView enables panning and zooming the camera from empty space.
	PanView bool
	// CaptureFunc, when set, decides which contacts are tracked at all.
	CaptureFunc func(ev *Event) bool
	// ScreenshotDir is where Screenshot writes (default "screenshots").
	ScreenshotDir string
	// MouseZoomFactor is the view zoom per wheel step.
	MouseZoomFactor float64

	root        *Node
	camera      *Camera
	clock       Clock
	frames      *Frames
	interaction *Interaction
	mapper      *Mapper
	scatters    map[*Node]*Scatter
	source      InputSource
	store       EntityStore
	debug       bool
	width       float64
	height      float64

	injectQueue     [][]Event
	screenshotQueue []string
	testRunner      *TestRunner
	eventBuf        []Event
	hitBuf          []*Node
	lastUpdate      time.Time
	stats           renderStats
}

// NewSurface creates a surface with an empty root container.
func NewSurface(cfg SurfaceConfig) *Surface {
	if cfg.Width <= 0 {
		cfg.Width = defaultSurfaceWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultSurfaceHeight
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock
	}
	if cfg.MinZoom <= 0 {
		cfg.MinZoom = defaultMinViewZoom
	}
	if cfg.MaxZoom <= 0 {
		cfg.MaxZoom = defaultMaxViewZoom
	}
	if cfg.MouseZoomFactor <= 0 {
		cfg.MouseZoomFactor = DefaultMouseZoomFactor
	}
	api := cfg.API
	if api == APINone {
		caps := AllCapabilities
		if cfg.Source != nil {
			caps = cfg.Source.Capabilities()
		}
		api = SelectAPI(caps)
	}

	s := &Surface{
		PanView:         cfg.PanView,
		MouseZoomFactor: cfg.MouseZoomFactor,
		root:            NewContainer("root"),
		camera:          NewCamera(Rect{Width: cfg.Width, Height: cfg.Height}),
		clock:           cfg.Clock,
		frames:          NewFrames(cfg.Clock),
		scatters:        make(map[*Node]*Scatter),
		source:          cfg.Source,
		width:           cfg.Width,
		height:          cfg.Height,
	}
	s.camera.MinZoom = cfg.MinZoom
	s.camera.MaxZoom = cfg.MaxZoom
	s.interaction = NewInteraction(cfg.Interaction, cfg.Clock)
	s.mapper = NewMapper(api, s.interaction, s)
	if pc, ok := cfg.Source.(PointerCapturer); ok {
		s.mapper.SetPointerCapturer(pc)
	}
	return s
}

// Root returns the surface's root container node.
func (s *Surface) Root() *Node { return s.root }

// Camera returns the surface's view.
func (s *Surface) Camera() *Camera { return s.camera }

// Clock returns the surface's clock.
func (s *Surface) Clock() Clock { return s.clock }

// Frames returns the scheduler ticked at the end of every Update.
func (s *Surface) Frames() *Frames { return s.frames }

// Interaction returns the session shared by every scatter on the surface.
func (s *Surface) Interaction() *Interaction { return s.interaction }

// Mapper returns the surface's target router.
func (s *Surface) Mapper() *Mapper { return s.mapper }

// Size returns the surface size.
func (s *Surface) Size() (w, h float64) { return s.width, s.height }

// AddScatter makes node a scatter. node is added to the root if it has no
// parent yet. Zero Width, Height and Name in cfg are taken from the node.
// The node's pivot is moved to its center.
func (s *Surface) AddScatter(node *Node, cfg ScatterConfig) (*Scatter, error) {
	if cfg.Width == 0 {
		cfg.Width = node.Width
	}
	if cfg.Height == 0 {
		cfg.Height = node.Height
	}
	if cfg.Name == "" {
		cfg.Name = node.Name
	}
	if cfg.EntityID == 0 {
		cfg.EntityID = node.EntityID
	}
	sc, err := NewScatter(s, node, cfg)
	if err != nil {
		return nil, err
	}
	node.SetPivot(cfg.Width/2, cfg.Height/2)
	if node.Parent == nil {
		s.root.AddChild(node)
	}
	sc.store = s.store
	sc.SetDebug(s.debug)
	s.scatters[node] = sc
	if s.debug {
		debugCheckTreeDepth(node)
		debugCheckChildCount(node.Parent)
	}
	return sc, nil
}

// RemoveScatter stops sc and detaches its node from the tree.
func (s *Surface) RemoveScatter(sc *Scatter) {
	for n, c := range s.scatters {
		if c == sc {
			sc.Kill()
			delete(s.scatters, n)
			n.RemoveFromParent()
			return
		}
	}
}

// ScatterOf returns the scatter driving node, or nil.
func (s *Surface) ScatterOf(node *Node) *Scatter {
	return s.scatters[node]
}

// NumScatters returns the number of scatters on the surface.
func (s *Surface) NumScatters() int {
	return len(s.scatters)
}

// --- Container ---

// Bounds returns the surface rectangle in surface coordinates.
func (s *Surface) Bounds() Rect {
	return Rect{Width: s.width, Height: s.height}
}

// Polygon returns Bounds as a polygon.
func (s *Surface) Polygon() Polygon {
	return s.Bounds().Polygon()
}

// MapPositionToPoint converts a screen position to surface coordinates.
func (s *Surface) MapPositionToPoint(global Vec2) Vec2 {
	x, y := s.camera.ScreenToWorld(global.X, global.Y)
	return Vec2{x, y}
}

// --- MapperTarget ---

// Capture consults CaptureFunc, accepting everything when it is nil.
func (s *Surface) Capture(ev *Event) bool {
	if s.CaptureFunc != nil {
		return s.CaptureFunc(ev)
	}
	return true
}

// FindTarget returns the scatter owning the topmost node under local. With
// PanView on, empty space resolves to the surface itself.
func (s *Surface) FindTarget(_ *Event, local, _ Vec2) Target {
	updateWorldTransform(s.root, identityTransform, 1, false)
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])
	for n := hitTestNodes(s.hitBuf, local.X, local.Y); n != nil; n = n.Parent {
		if sc, ok := s.scatters[n]; ok {
			return sc
		}
	}
	if s.PanView {
		return s
	}
	return nil
}

// --- Target: background pan and zoom ---

// OnStart stops a running camera scroll.
func (s *Surface) OnStart(*Event, *Points) {
	s.camera.scrollTween = nil
}

// OnMove pans the camera with the drag and zooms it with the pinch.
func (s *Surface) OnMove(_ *Event, pts *Points) {
	d, ok := pts.Delta()
	if !ok {
		return
	}
	if d.Zoom != 1 {
		sx, sy := s.camera.WorldToScreen(d.About.X, d.About.Y)
		s.camera.ZoomAbout(Vec2{sx, sy}, d.Zoom)
	}
	s.camera.PanBy(d.Translate())
}

// OnEnd does nothing; the view stays where the gesture left it.
func (s *Surface) OnEnd(*Event, *Points) {}

// OnMouseWheel zooms the camera about the cursor when PanView is on.
func (s *Surface) OnMouseWheel(ev *Event) Claim {
	if !s.PanView || ev.WheelY == 0 {
		return Unclaimed
	}
	factor := 1 / s.MouseZoomFactor
	if ev.WheelY > 0 {
		factor = s.MouseZoomFactor
	}
	s.camera.ZoomAbout(ev.Position(), factor)
	return Claimed
}

// HandleEvent routes one host event through the surface's mapper.
func (s *Surface) HandleEvent(ev *Event) Claim {
	return s.mapper.HandleEvent(ev)
}

// Update processes this frame's input, advances the camera and runs the
// frame scheduler. Injected events take precedence over the input source.
func (s *Surface) Update() {
	now := s.clock.Now()
	var dt float32
	if s.lastUpdate.IsZero() {
		dt = float32(1.0 / float64(ebiten.TPS()))
	} else {
		dt = float32(now.Sub(s.lastUpdate).Seconds())
	}
	s.lastUpdate = now

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if !s.processInjectedInput() && s.source != nil {
		s.eventBuf = s.source.Poll(s.mapper.API(), now, s.eventBuf[:0])
		for i := range s.eventBuf {
			s.HandleEvent(&s.eventBuf[i])
		}
	}
	s.camera.update(dt)
	s.frames.Tick()
}

// Draw renders the node tree through the camera.
func (s *Surface) Draw(screen *ebiten.Image) {
	updateWorldTransform(s.root, identityTransform, 1, false)
	view := s.camera.computeViewMatrix()
	s.stats = renderStats{}
	drawNode(screen, s.root, view, s.camera.Viewport, &s.stats)
	if s.debug {
		s.drawDebugOverlay(screen)
	}
	s.flushScreenshots(screen)
}

// SetEntityStore sets the optional ECS bridge for every current and future
// scatter.
func (s *Surface) SetEntityStore(store EntityStore) {
	s.store = store
	for _, sc := range s.scatters {
		sc.store = store
	}
}

// SetDebugMode enables or disables debug mode. When enabled, crowded
// interactions, capped throws and oversized trees are reported on stderr
// and Draw prints an overlay.
func (s *Surface) SetDebugMode(enabled bool) {
	s.debug = enabled
	s.mapper.SetDebug(enabled)
	for _, sc := range s.scatters {
		sc.SetDebug(enabled)
	}
}

// Static interface checks.
var (
	_ MapperTarget = (*Surface)(nil)
	_ Container    = (*Surface)(nil)
	_ Target       = (*Surface)(nil)
	_ WheelHandler = (*Surface)(nil)
)
