package tactile

// Target receives the gesture lifecycle of the pointers assigned to it. The
// Points passed in hold only this target's pointers, in the target's
// coordinate space.
type Target interface {
	OnStart(ev *Event, pts *Points)
	OnMove(ev *Event, pts *Points)
	OnEnd(ev *Event, pts *Points)
}

// WheelHandler is implemented by targets that react to the mouse wheel.
// Returning Claimed stops the event from reaching enclosing surfaces.
type WheelHandler interface {
	OnMouseWheel(ev *Event) Claim
}

// DelegateTarget is a Target that also decides which contacts it tracks.
type DelegateTarget interface {
	Target
	// Capture is asked once per down event. Returning false drops the
	// contact: it is never tracked and its later events are ignored.
	Capture(ev *Event) bool
}

// PointerCapturer is implemented by hosts that can route every event of a
// pointer to one receiver until released, so drags keep working after the
// pointer leaves the surface.
type PointerCapturer interface {
	CapturePointer(id int)
	ReleasePointer(id int)
}

// phaseHandler receives the normalized phases. The Delegate is its own
// handler; a Mapper replaces it to route per target.
type phaseHandler interface {
	interactionStarted(ev *Event, key string, pt Vec2)
	onStart(ev *Event, pts []KeyedPoint)
	onMove(ev *Event, pts []KeyedPoint)
	onEnd(ev *Event, pts []KeyedPoint)
	onWheel(ev *Event) Claim
}

// Delegate turns raw events of one input family into keyed point updates on
// an Interaction and calls OnStart, OnMove and OnEnd on a single target.
type Delegate struct {
	api         InputAPI
	interaction *Interaction
	target      Target
	capture     func(ev *Event) bool
	capturer    PointerCapturer
	phases      phaseHandler
	debug       bool
}

// NewDelegate creates a delegate listening to api and feeding ia. Events from
// any other family are ignored.
func NewDelegate(api InputAPI, ia *Interaction, target DelegateTarget) *Delegate {
	d := &Delegate{
		api:         api,
		interaction: ia,
		target:      target,
		capture:     target.Capture,
	}
	d.phases = d
	return d
}

// API returns the input family the delegate listens to.
func (d *Delegate) API() InputAPI {
	return d.api
}

// Interaction returns the session the delegate feeds.
func (d *Delegate) Interaction() *Interaction {
	return d.interaction
}

// SetPointerCapturer installs the host used to capture and release pointers
// on the pointer API. Nil disables capture.
func (d *Delegate) SetPointerCapturer(pc PointerCapturer) {
	d.capturer = pc
}

// SetDebug enables the contact count warning.
func (d *Delegate) SetDebug(enabled bool) {
	d.debug = enabled
}

// HandleEvent feeds one raw event through the pipeline. Wheel events are
// routed to the wheel handler whatever their family. The result reports
// whether a handler consumed the event.
func (d *Delegate) HandleEvent(ev *Event) Claim {
	if ev == nil {
		return Unclaimed
	}
	if ev.Kind == EventWheel {
		return d.phases.onWheel(ev)
	}
	if ev.API != d.api {
		return Unclaimed
	}
	var handled bool
	switch d.api {
	case APIPointer:
		handled = d.handlePointer(ev)
	case APITouch:
		handled = d.handleTouch(ev)
	case APIMouse:
		handled = d.handleMouse(ev)
	}
	if handled {
		return Claimed
	}
	return Unclaimed
}

func (d *Delegate) handlePointer(ev *Event) bool {
	switch ev.Kind {
	case EventDown:
		if !d.capture(ev) {
			return false
		}
		if d.capturer != nil {
			d.capturer.CapturePointer(ev.PointerID)
		}
		return d.start(ev, ExtractPoints(ev))
	case EventMove:
		if ev.PointerType != PointerTouch && ev.Buttons == 0 {
			return false
		}
		return d.move(ev, ExtractPoints(ev))
	case EventUp, EventCancel:
		handled := d.end(ev, ExtractPoints(ev))
		if d.capturer != nil {
			d.capturer.ReleasePointer(ev.PointerID)
		}
		return handled
	case EventLeave:
		if !ev.OnElement {
			return false
		}
		return d.end(ev, ExtractPoints(ev))
	}
	return false
}

func (d *Delegate) handleTouch(ev *Event) bool {
	var handled bool
	switch ev.Kind {
	case EventDown:
		if !d.capture(ev) {
			return false
		}
		for _, t := range ev.ChangedTouches {
			handled = d.start(ev, []KeyedPoint{touchPoint(t)}) || handled
		}
	case EventMove:
		seen := make(map[int]bool, len(ev.ChangedTouches)+len(ev.TargetTouches))
		for _, list := range [2][]Touch{ev.ChangedTouches, ev.TargetTouches} {
			for _, t := range list {
				if seen[t.ID] {
					continue
				}
				seen[t.ID] = true
				handled = d.move(ev, []KeyedPoint{touchPoint(t)}) || handled
			}
		}
	case EventUp, EventCancel:
		for _, t := range ev.ChangedTouches {
			handled = d.end(ev, []KeyedPoint{touchPoint(t)}) || handled
		}
	}
	return handled
}

func (d *Delegate) handleMouse(ev *Event) bool {
	switch ev.Kind {
	case EventDown:
		if !d.capture(ev) {
			return false
		}
		return d.start(ev, ExtractPoints(ev))
	case EventMove:
		if ev.Buttons == 0 {
			return false
		}
		return d.move(ev, ExtractPoints(ev))
	case EventUp:
		return d.end(ev, ExtractPoints(ev))
	case EventLeave:
		if !ev.OnElement {
			return false
		}
		return d.end(ev, ExtractPoints(ev))
	}
	return false
}

// start registers new contacts and dispatches the start phase.
func (d *Delegate) start(ev *Event, pts []KeyedPoint) bool {
	if len(pts) == 0 {
		return false
	}
	ia := d.interaction
	for _, kp := range pts {
		if ia.Update(kp.Key, kp.Point) {
			d.phases.interactionStarted(ev, kp.Key, kp.Point)
		}
	}
	if d.debug && ia.Len() > ia.LogInteractionsAbove {
		debugf("warning: %d simultaneous interactions (threshold %d)", ia.Len(), ia.LogInteractionsAbove)
	}
	d.phases.onStart(ev, pts)
	return true
}

// move updates contacts that are already active and dispatches the move
// phase. Unknown keys are dropped, so a contact rejected at capture time
// stays untracked.
func (d *Delegate) move(ev *Event, pts []KeyedPoint) bool {
	ia := d.interaction
	var active []KeyedPoint
	for _, kp := range pts {
		if _, ok := ia.Current(kp.Key); !ok {
			continue
		}
		ia.Update(kp.Key, kp.Point)
		active = append(active, kp)
	}
	if len(active) == 0 {
		return false
	}
	d.phases.onMove(ev, active)
	return true
}

// end stops contacts that are active and dispatches the end phase.
func (d *Delegate) end(ev *Event, pts []KeyedPoint) bool {
	ia := d.interaction
	var ended []KeyedPoint
	for _, kp := range pts {
		if _, ok := ia.Current(kp.Key); !ok {
			continue
		}
		ia.Stop(kp.Key, kp.Point)
		ended = append(ended, kp)
	}
	if len(ended) == 0 {
		return false
	}
	d.phases.onEnd(ev, ended)
	return true
}

func (d *Delegate) interactionStarted(*Event, string, Vec2) {}

func (d *Delegate) onStart(ev *Event, _ []KeyedPoint) {
	d.target.OnStart(ev, &d.interaction.Points)
}

func (d *Delegate) onMove(ev *Event, _ []KeyedPoint) {
	d.target.OnMove(ev, &d.interaction.Points)
	d.interaction.UpdatePrevious()
}

func (d *Delegate) onEnd(ev *Event, pts []KeyedPoint) {
	d.target.OnEnd(ev, &d.interaction.Points)
	for _, kp := range pts {
		d.interaction.Finish(kp.Key)
	}
}

func (d *Delegate) onWheel(ev *Event) Claim {
	if wh, ok := d.target.(WheelHandler); ok {
		return wh.OnMouseWheel(ev)
	}
	return Unclaimed
}
