package tactile

// MapperTarget is the surface that owns a Mapper. It decides which contacts
// are tracked, resolves hit targets and defines the local coordinate space
// the targets see.
type MapperTarget interface {
	Capture(ev *Event) bool
	// FindTarget returns the target under the contact, or nil. local is
	// global projected through MapPositionToPoint.
	FindTarget(ev *Event, local, global Vec2) Target
	MapPositionToPoint(global Vec2) Vec2
}

var (
	startAspects = []Aspect{AspectCurrent, AspectPrevious, AspectStart}
	moveAspects  = []Aspect{AspectCurrent, AspectPrevious}
	endAspects   = []Aspect{AspectEnded}
)

// Mapper is a Delegate that routes every pointer to the target under it
// when the pointer went down. Each target sees only its own pointers, in
// the host's local coordinate space.
type Mapper struct {
	*Delegate
	host MapperTarget
}

// NewMapper creates a mapper listening to api, feeding ia and resolving
// targets through host.
func NewMapper(api InputAPI, ia *Interaction, host MapperTarget) *Mapper {
	m := &Mapper{
		Delegate: &Delegate{
			api:         api,
			interaction: ia,
			capture:     host.Capture,
		},
		host: host,
	}
	m.phases = m
	return m
}

// Host returns the surface the mapper resolves targets through.
func (m *Mapper) Host() MapperTarget {
	return m.host
}

func (m *Mapper) interactionStarted(ev *Event, key string, pt Vec2) {
	local := m.host.MapPositionToPoint(pt)
	if t := m.host.FindTarget(ev, local, pt); t != nil {
		m.interaction.AddTarget(key, t)
	}
}

func (m *Mapper) onStart(ev *Event, pts []KeyedPoint) {
	for _, mp := range m.interaction.MapInteraction(pts, startAspects, m.host.MapPositionToPoint) {
		mp.Target.OnStart(ev, mp.Points)
	}
}

func (m *Mapper) onMove(ev *Event, pts []KeyedPoint) {
	for _, mp := range m.interaction.MapInteraction(pts, moveAspects, m.host.MapPositionToPoint) {
		mp.Target.OnMove(ev, mp.Points)
		mp.Points.UpdatePrevious()
	}
	m.interaction.UpdatePrevious()
}

func (m *Mapper) onEnd(ev *Event, pts []KeyedPoint) {
	ia := m.interaction
	for _, mp := range ia.MapInteraction(pts, endAspects, m.host.MapPositionToPoint) {
		mp.Target.OnEnd(ev, mp.Points)
	}
	for _, kp := range pts {
		if t := ia.Target(kp.Key); t != nil {
			if sub := ia.Sub(t); sub != nil {
				sub.Finish(kp.Key)
			}
			ia.RemoveTarget(kp.Key)
		}
		ia.Finish(kp.Key)
	}
}

// onWheel offers the wheel event to the target under the cursor first, then
// to the host itself when the target has no wheel handler or leaves the
// event unclaimed.
func (m *Mapper) onWheel(ev *Event) Claim {
	global := ev.Position()
	local := m.host.MapPositionToPoint(global)
	target := m.host.FindTarget(ev, local, global)
	if wh, ok := target.(WheelHandler); ok {
		claim := wh.OnMouseWheel(ev)
		if claim == Claimed || any(target) == any(m.host) {
			return claim
		}
	}
	if wh, ok := m.host.(WheelHandler); ok {
		return wh.OnMouseWheel(ev)
	}
	return Unclaimed
}
