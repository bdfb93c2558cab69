package tactile

import "time"

const (
	// DefaultTapDistance is the maximum movement in pixels for a tap or long press.
	DefaultTapDistance = 10.0
	// DefaultLongPressTime separates taps from long presses.
	DefaultLongPressTime = 500 * time.Millisecond
	// DefaultLogInteractionsAbove is the simultaneous contact count above
	// which debug mode logs a warning.
	DefaultLogInteractionsAbove = 12
)

// InteractionConfig holds the classification thresholds of an Interaction.
// Zero fields take their defaults.
type InteractionConfig struct {
	// TapDistance is the movement limit for taps and long presses (default 10 px).
	TapDistance float64
	// LongPressTime is the hold duration after which a low-movement contact
	// counts as a long press instead of a tap (default 500ms).
	LongPressTime time.Duration
	// LogInteractionsAbove triggers a debug warning when more contacts than
	// this are active at once (default 12).
	LogInteractionsAbove int
}

func (c InteractionConfig) withDefaults() InteractionConfig {
	if c.TapDistance <= 0 {
		c.TapDistance = DefaultTapDistance
	}
	if c.LongPressTime <= 0 {
		c.LongPressTime = DefaultLongPressTime
	}
	if c.LogInteractionsAbove <= 0 {
		c.LogInteractionsAbove = DefaultLogInteractionsAbove
	}
	return c
}

// Mapped pairs a target with the private tracker holding only its pointers.
type Mapped struct {
	Target Target
	Points *Points
}

// Interaction is the session-wide tracker shared by every target on a
// surface. On top of Points it assigns each key to a target and keeps one
// sub-tracker per target restricted to the keys assigned to it. Several keys
// may share one target (two fingers on one scatter).
type Interaction struct {
	Points

	TapDistance          float64
	LongPressTime        time.Duration
	LogInteractionsAbove int

	clock   Clock
	targets map[string]Target
	subs    map[Target]*Points
}

// NewInteraction creates an empty session. A nil clock uses SystemClock.
func NewInteraction(cfg InteractionConfig, clock Clock) *Interaction {
	cfg = cfg.withDefaults()
	if clock == nil {
		clock = SystemClock
	}
	ia := &Interaction{
		TapDistance:          cfg.TapDistance,
		LongPressTime:        cfg.LongPressTime,
		LogInteractionsAbove: cfg.LogInteractionsAbove,
		clock:                clock,
		targets:              make(map[string]Target),
		subs:                 make(map[Target]*Points),
	}
	ia.Points.init(ia)
	return ia
}

// AddTarget assigns target to key, creating the target's sub-tracker on
// first use.
func (ia *Interaction) AddTarget(key string, target Target) {
	ia.targets[key] = target
	if _, ok := ia.subs[target]; !ok {
		sub := &Points{}
		sub.init(ia)
		ia.subs[target] = sub
	}
}

// RemoveTarget unassigns key. The target's sub-tracker is dropped only when
// no other key still maps to the same target.
func (ia *Interaction) RemoveTarget(key string) {
	target, ok := ia.targets[key]
	if !ok {
		return
	}
	delete(ia.targets, key)
	for _, t := range ia.targets {
		if t == target {
			return
		}
	}
	delete(ia.subs, target)
}

// Target returns the target assigned to key, or nil.
func (ia *Interaction) Target(key string) Target {
	return ia.targets[key]
}

// Sub returns the sub-tracker of target, or nil if it has none.
func (ia *Interaction) Sub(target Target) *Points {
	return ia.subs[target]
}

// NumTargets returns the number of distinct targets with live sub-trackers.
func (ia *Interaction) NumTargets() int {
	return len(ia.subs)
}

// MapInteraction projects the session's positions into the sub-trackers of
// the targets owning the keys in points. For each such key and each aspect,
// the session's point for that aspect is passed through fn and written into
// the target's sub-tracker. The affected targets are returned in the order
// their keys first appear in points.
func (ia *Interaction) MapInteraction(points []KeyedPoint, aspects []Aspect, fn func(Vec2) Vec2) []Mapped {
	var out []Mapped
	for _, kp := range points {
		target, ok := ia.targets[kp.Key]
		if !ok {
			continue
		}
		sub := ia.subs[target]
		seen := false
		for _, m := range out {
			if m.Target == target {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, Mapped{Target: target, Points: sub})
		}
		for _, a := range aspects {
			src, ok := ia.aspect(a)[kp.Key]
			if !ok {
				continue
			}
			if fn != nil {
				src = fn(src)
			}
			sub.set(a, kp.Key, src, ia.started[kp.Key])
		}
	}
	return out
}
