package tactile

import "time"

// KeyedPoint pairs a pointer key with a position.
type KeyedPoint struct {
	Key   string
	Point Vec2
}

// Aspect names one of the four position maps a Points tracker keeps per key.
type Aspect uint8

const (
	AspectCurrent  Aspect = iota // latest observed position
	AspectPrevious               // position at the end of the previous move batch
	AspectStart                  // position when the contact began
	AspectEnded                  // position when the contact lifted
)

// String returns the lowercase aspect name.
func (a Aspect) String() string {
	switch a {
	case AspectCurrent:
		return "current"
	case AspectPrevious:
		return "previous"
	case AspectStart:
		return "start"
	case AspectEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Delta is the aggregate motion between the previous and current snapshot of
// a Points tracker: a translation (X, Y), a zoom ratio and a rotation in
// radians, all about the point About.
type Delta struct {
	X, Y     float64
	Zoom     float64
	Rotate   float64
	About    Vec2
	Distance float64 // current distance of the pinch pair; 0 for one pointer
}

// Translate returns the translation part of the delta.
func (d Delta) Translate() Vec2 {
	return Vec2{d.X, d.Y}
}

// Points tracks the positions of active pointer contacts by key.
//
// A key is created by Update, refreshed by every move, moved to the ended map
// by Stop and erased from every map by Finish. Keys iterate in the order they
// were first seen.
type Points struct {
	order    []string
	current  map[string]Vec2
	previous map[string]Vec2
	start    map[string]Vec2
	ended    map[string]Vec2
	started  map[string]time.Time

	// owner supplies tap/long-press thresholds and the clock. Nil for a
	// standalone tracker, which then uses the defaults.
	owner *Interaction
}

// NewPoints returns an empty standalone tracker using the default tap and
// long-press thresholds and the system clock.
func NewPoints() *Points {
	p := &Points{}
	p.init(nil)
	return p
}

func (p *Points) init(owner *Interaction) {
	p.owner = owner
	p.current = make(map[string]Vec2)
	p.previous = make(map[string]Vec2)
	p.start = make(map[string]Vec2)
	p.ended = make(map[string]Vec2)
	p.started = make(map[string]time.Time)
}

func (p *Points) now() time.Time {
	if p.owner != nil && p.owner.clock != nil {
		return p.owner.clock.Now()
	}
	return SystemClock.Now()
}

func (p *Points) addKey(key string) {
	for _, k := range p.order {
		if k == key {
			return
		}
	}
	p.order = append(p.order, key)
}

func (p *Points) removeKey(key string) {
	for i, k := range p.order {
		if k == key {
			copy(p.order[i:], p.order[i+1:])
			p.order[len(p.order)-1] = ""
			p.order = p.order[:len(p.order)-1]
			return
		}
	}
}

// Update sets the current position of key. The first time a key is seen its
// start and previous positions are seeded with pt and its start time is
// stamped; Update then returns true.
func (p *Points) Update(key string, pt Vec2) bool {
	p.current[key] = pt
	if _, seen := p.start[key]; seen {
		return false
	}
	p.start[key] = pt
	p.previous[key] = pt
	p.started[key] = p.now()
	p.addKey(key)
	return true
}

// UpdatePrevious copies every current position into previous. Call it once
// per move batch, after all deltas for the batch have been consumed.
func (p *Points) UpdatePrevious() {
	for k, v := range p.current {
		p.previous[k] = v
	}
}

// Stop marks key as lifted at pt. The key leaves current and previous but
// keeps its start data so taps and long presses can still be classified.
func (p *Points) Stop(key string, pt Vec2) {
	if _, ok := p.current[key]; !ok {
		return
	}
	delete(p.current, key)
	delete(p.previous, key)
	p.ended[key] = pt
}

// Finish erases key from every map. Finishing an unknown key is a no-op.
func (p *Points) Finish(key string) {
	delete(p.current, key)
	delete(p.previous, key)
	delete(p.start, key)
	delete(p.ended, key)
	delete(p.started, key)
	p.removeKey(key)
}

// set writes pt into one aspect of key. Used by Interaction.MapInteraction
// to project the session's points into a target's sub-tracker.
func (p *Points) set(a Aspect, key string, pt Vec2, started time.Time) {
	p.addKey(key)
	switch a {
	case AspectCurrent:
		p.current[key] = pt
	case AspectPrevious:
		p.previous[key] = pt
	case AspectStart:
		p.start[key] = pt
		p.started[key] = started
	case AspectEnded:
		delete(p.current, key)
		delete(p.previous, key)
		p.ended[key] = pt
	}
}

func (p *Points) aspect(a Aspect) map[string]Vec2 {
	switch a {
	case AspectCurrent:
		return p.current
	case AspectPrevious:
		return p.previous
	case AspectStart:
		return p.start
	case AspectEnded:
		return p.ended
	default:
		return nil
	}
}

// Current returns the current position of key.
func (p *Points) Current(key string) (Vec2, bool) {
	v, ok := p.current[key]
	return v, ok
}

// Previous returns the previous-batch position of key.
func (p *Points) Previous(key string) (Vec2, bool) {
	v, ok := p.previous[key]
	return v, ok
}

// Start returns the position where key began.
func (p *Points) Start(key string) (Vec2, bool) {
	v, ok := p.start[key]
	return v, ok
}

// Ended returns the position where key lifted, if it has stopped.
func (p *Points) Ended(key string) (Vec2, bool) {
	v, ok := p.ended[key]
	return v, ok
}

// StartTime returns when key began.
func (p *Points) StartTime(key string) (time.Time, bool) {
	t, ok := p.started[key]
	return t, ok
}

// Keys returns the active keys in the order they were first seen.
func (p *Points) Keys() []string {
	out := make([]string, 0, len(p.current))
	for _, k := range p.order {
		if _, ok := p.current[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// EndedKeys returns the stopped-but-not-finished keys in first-seen order.
func (p *Points) EndedKeys() []string {
	out := make([]string, 0, len(p.ended))
	for _, k := range p.order {
		if _, ok := p.ended[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// Len returns the number of active keys.
func (p *Points) Len() int {
	return len(p.current)
}

// IsFinished reports whether no key is active.
func (p *Points) IsFinished() bool {
	return len(p.current) == 0
}

// Moved returns how far key moved since the previous batch.
func (p *Points) Moved(key string) Vec2 {
	c, ok := p.current[key]
	if !ok {
		return Vec2{}
	}
	prev, ok := p.previous[key]
	if !ok {
		return Vec2{}
	}
	return c.Sub(prev)
}

// Move returns the mean of the current positions minus the mean of the
// previous positions: the aggregate pan of all active keys.
func (p *Points) Move() Vec2 {
	var cur, prev []Vec2
	for _, k := range p.order {
		if c, ok := p.current[k]; ok {
			cur = append(cur, c)
		}
		if v, ok := p.previous[k]; ok {
			prev = append(prev, v)
		}
	}
	return Mean(cur...).Sub(Mean(prev...))
}

// Delta computes the motion between the previous and current snapshot. With
// one key it is a pure translation. With more, the two keys farthest apart
// define the pinch: midpoint motion, distance ratio and angle change. The
// second result is false when no key has both a current and a previous
// position.
func (p *Points) Delta() (Delta, bool) {
	var keys []string
	for _, k := range p.order {
		_, hasCur := p.current[k]
		_, hasPrev := p.previous[k]
		if hasCur && hasPrev {
			keys = append(keys, k)
		}
	}
	switch len(keys) {
	case 0:
		return Delta{}, false
	case 1:
		c := p.current[keys[0]]
		d := c.Sub(p.previous[keys[0]])
		return Delta{X: d.X, Y: d.Y, Zoom: 1, About: c}, true
	}

	k1, k2 := p.farthest(keys)
	c1, c2 := p.current[k1], p.current[k2]
	p1, p2 := p.previous[k1], p.previous[k2]

	d1 := c1.Sub(p1)
	d2 := c2.Sub(p2)

	zoom := 1.0
	prevDist := p1.Dist(p2)
	curDist := c1.Dist(c2)
	if prevDist != 0 && curDist != 0 {
		zoom = curDist / prevDist
	}
	rotate := AngleDiff(PointAngle(c1, c2), PointAngle(p1, p2))

	return Delta{
		X:        (d1.X + d2.X) / 2,
		Y:        (d1.Y + d2.Y) / 2,
		Zoom:     zoom,
		Rotate:   rotate,
		About:    Mean(c1, c2),
		Distance: curDist,
	}, true
}

// farthest returns the pair of keys whose current points are farthest apart.
// Ties keep the first pair found.
func (p *Points) farthest(keys []string) (string, string) {
	best := -1.0
	var a, b string
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			d := p.current[keys[i]].Dist(p.current[keys[j]])
			if d > best {
				best = d
				a, b = keys[i], keys[j]
			}
		}
	}
	return a, b
}

func (p *Points) thresholds() (tapDistance float64, longPress time.Duration) {
	if p.owner != nil {
		return p.owner.TapDistance, p.owner.LongPressTime
	}
	return DefaultTapDistance, DefaultLongPressTime
}

// lowMovement reports whether key has both a start and an ended point less
// than the tap distance apart, and returns the time since it started.
func (p *Points) lowMovement(key string) (time.Duration, bool) {
	start, ok := p.start[key]
	if !ok {
		return 0, false
	}
	end, ok := p.ended[key]
	if !ok {
		return 0, false
	}
	tapDistance, _ := p.thresholds()
	if start.Dist(end) >= tapDistance {
		return 0, false
	}
	return p.now().Sub(p.started[key]), true
}

// IsTap reports whether key ended close to where it started and within the
// long-press time. A contact that moved the tap distance or more is a drag:
// neither a tap nor a long press.
func (p *Points) IsTap(key string) bool {
	elapsed, ok := p.lowMovement(key)
	if !ok {
		return false
	}
	_, longPress := p.thresholds()
	return elapsed <= longPress
}

// IsLongPress reports whether key ended close to where it started after more
// than the long-press time.
func (p *Points) IsLongPress(key string) bool {
	elapsed, ok := p.lowMovement(key)
	if !ok {
		return false
	}
	_, longPress := p.thresholds()
	return elapsed > longPress
}

// IsAnyTap reports whether any ended key is a tap.
func (p *Points) IsAnyTap() bool {
	for k := range p.ended {
		if p.IsTap(k) {
			return true
		}
	}
	return false
}

// IsAnyLongPress reports whether any ended key is a long press.
func (p *Points) IsAnyLongPress() bool {
	for k := range p.ended {
		if p.IsLongPress(k) {
			return true
		}
	}
	return false
}
