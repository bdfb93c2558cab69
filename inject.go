package tactile

import "math"

// injectContact is one synthetic pointer in screen coordinates.
type injectContact struct {
	id   int
	x, y float64
}

// syntheticEvents builds the events one frame of contacts produces in the
// mapper's input family. A lone contact looks like a mouse with the left
// button held; several contacts look like touches.
func (s *Surface) syntheticEvents(kind EventKind, contacts []injectContact) []Event {
	left := ButtonMask(MouseButtonLeft)
	switch s.mapper.API() {
	case APIPointer:
		out := make([]Event, 0, len(contacts))
		for _, c := range contacts {
			ev := Event{API: APIPointer, Kind: kind, X: c.x, Y: c.y, PointerID: c.id}
			if len(contacts) == 1 {
				ev.PointerType = PointerMouse
				ev.Buttons = left
			} else {
				ev.PointerType = PointerTouch
			}
			out = append(out, ev)
		}
		return out
	case APITouch:
		touches := make([]Touch, len(contacts))
		for i, c := range contacts {
			touches[i] = Touch{ID: c.id, X: c.x, Y: c.y}
		}
		ev := Event{API: APITouch, Kind: kind, ChangedTouches: touches}
		if kind == EventMove {
			ev.TargetTouches = touches
		}
		return []Event{ev}
	case APIMouse:
		if len(contacts) == 0 {
			return nil
		}
		c := contacts[0]
		return []Event{{API: APIMouse, Kind: kind, X: c.x, Y: c.y, Buttons: left}}
	}
	return nil
}

func (s *Surface) injectFrame(kind EventKind, contacts ...injectContact) {
	s.injectQueue = append(s.injectQueue, s.syntheticEvents(kind, contacts))
}

// InjectEvents queues raw events to be handled together on one future frame.
func (s *Surface) InjectEvents(events ...Event) {
	s.injectQueue = append(s.injectQueue, events)
}

// InjectPress queues a single-pointer press at the given screen
// coordinates. Each queued frame is consumed by one Update.
func (s *Surface) InjectPress(x, y float64) {
	s.injectFrame(EventDown, injectContact{id: 1, x: x, y: y})
}

// InjectMove queues a single-pointer move with the button held.
func (s *Surface) InjectMove(x, y float64) {
	s.injectFrame(EventMove, injectContact{id: 1, x: x, y: y})
}

// InjectRelease queues a single-pointer release.
func (s *Surface) InjectRelease(x, y float64) {
	s.injectFrame(EventUp, injectContact{id: 1, x: x, y: y})
}

// InjectTap queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (s *Surface) InjectTap(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). Minimum frames is 2 (press + release).
func (s *Surface) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectPinch queues a two-finger gesture centered on (cx, cy). The fingers
// start fromDist apart along angle fromAngle (radians) and end toDist apart
// along toAngle, interpolated over frames-2 move frames.
func (s *Surface) InjectPinch(cx, cy, fromDist, toDist, fromAngle, toAngle float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	pair := func(dist, angle float64) (injectContact, injectContact) {
		dx, dy := math.Cos(angle)*dist/2, math.Sin(angle)*dist/2
		return injectContact{id: 1, x: cx - dx, y: cy - dy}, injectContact{id: 2, x: cx + dx, y: cy + dy}
	}
	a, b := pair(fromDist, fromAngle)
	s.injectFrame(EventDown, a, b)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		a, b = pair(fromDist+(toDist-fromDist)*t, fromAngle+(toAngle-fromAngle)*t)
		s.injectFrame(EventMove, a, b)
	}
	a, b = pair(toDist, toAngle)
	s.injectFrame(EventUp, a, b)
}

// InjectWheel queues a wheel event at the given screen coordinates. Positive
// dy scrolls up.
func (s *Surface) InjectWheel(x, y, dy float64, mods KeyModifiers) {
	s.InjectEvents(Event{API: s.mapper.API(), Kind: EventWheel, X: x, Y: y, WheelY: dy, Modifiers: mods})
}

// PendingInjections returns the number of queued frames.
func (s *Surface) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput handles the oldest queued frame. Returns true if a
// frame was consumed, in which case polled input is skipped.
func (s *Surface) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	batch := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue[len(s.injectQueue)-1] = nil
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	now := s.clock.Now()
	for i := range batch {
		if batch[i].Time.IsZero() {
			batch[i].Time = now
		}
		s.HandleEvent(&batch[i])
	}
	return true
}
