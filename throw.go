package tactile

import "time"

const (
	// DefaultThrowDamping is the per-frame velocity decay of a thrown body.
	DefaultThrowDamping = 0.95
	// DefaultVelocityBuffer is how many velocity samples are kept.
	DefaultVelocityBuffer = 5
	// DefaultVelocityWindow is the trailing time span averaged at release.
	DefaultVelocityWindow = 30 * time.Millisecond

	throwStopSpeed = 0.01
)

// VelocitySample is one recorded drag step. DT is the time since the
// previous sample in milliseconds.
type VelocitySample struct {
	Time   time.Time
	DT     float64
	DX, DY float64
}

// Throwable is a body that can coast after release. The Thrower asks it for
// the damped velocity each frame and moves it.
type Throwable interface {
	// NextVelocity returns the velocity for the coming frame. Containment
	// and bouncing go here.
	NextVelocity(v Vec2) Vec2
	// ThrowMove displaces the body by d.
	ThrowMove(d Vec2)
	// Outside reports whether the body lies outside its container, which
	// keeps the throw running after it has slowed down.
	Outside() bool
	// ThrowFinished is called once the body comes to rest, or at release
	// when there was no velocity at all.
	ThrowFinished()
}

// Thrower samples drag velocity and runs the inertial throw after release.
// The zero value is not usable; create one with NewThrower.
type Thrower struct {
	// Damping is the fraction of velocity kept per frame.
	Damping float64
	// AutoThrow runs the throw on the frame scheduler after Start. When
	// false, Start only applies the first damping step.
	AutoThrow bool
	// Buffer is the number of velocity samples kept.
	Buffer int
	// Window is the time span averaged by MeanVelocity.
	Window time.Duration

	clock     Clock
	samples   []VelocitySample
	lastTime  time.Time
	lastFrame time.Time
	velocity  *Vec2
	handle    FrameHandle
	debug     bool
}

// NewThrower returns a thrower with default damping, buffer and window that
// reads time from clock. A nil clock uses SystemClock.
func NewThrower(clock Clock) Thrower {
	if clock == nil {
		clock = SystemClock
	}
	return Thrower{
		Damping:   DefaultThrowDamping,
		AutoThrow: true,
		Buffer:    DefaultVelocityBuffer,
		Window:    DefaultVelocityWindow,
		clock:     clock,
	}
}

// ObserveVelocity starts a new sampling run. Call it when a drag begins.
func (t *Thrower) ObserveVelocity() {
	t.lastTime = t.clock.Now()
	t.samples = t.samples[:0]
}

// AddVelocity records a drag step of delta, evicting the oldest samples
// beyond Buffer.
func (t *Thrower) AddVelocity(delta Vec2) {
	now := t.clock.Now()
	dt := millis(now.Sub(t.lastTime))
	t.lastTime = now
	t.samples = append(t.samples, VelocitySample{Time: now, DT: dt, DX: delta.X, DY: delta.Y})
	buffer := t.Buffer
	if buffer <= 0 {
		buffer = DefaultVelocityBuffer
	}
	if n := len(t.samples) - buffer; n > 0 {
		copy(t.samples, t.samples[n:])
		t.samples = t.samples[:buffer]
	}
}

// Samples returns the recorded velocity samples, oldest first.
func (t *Thrower) Samples() []VelocitySample {
	return t.samples
}

// MeanVelocity averages the per-sample velocities, in pixels per
// millisecond, over the trailing Window. A zero sample stamped now is added
// first so that a pointer resting before release throws less. The oldest
// sample is never counted since its DT reaches back to the start of the
// observation. Samples with no elapsed time are skipped.
func (t *Thrower) MeanVelocity() Vec2 {
	t.AddVelocity(Vec2{})
	window := millis(t.Window)
	var sum Vec2
	var elapsed float64
	count := 0
	for i := len(t.samples) - 1; i > 0; i-- {
		s := t.samples[i]
		if s.DT <= 0 {
			continue
		}
		elapsed += s.DT
		sum = sum.Add(Vec2{s.DX / s.DT, s.DY / s.DT})
		count++
		if elapsed > window {
			break
		}
	}
	if count == 0 {
		return Vec2{}
	}
	return sum.Scale(1 / float64(count))
}

// Velocity returns the current throw velocity. The second result is false
// when no throw is running.
func (t *Thrower) Velocity() (Vec2, bool) {
	if t.velocity == nil {
		return Vec2{}, false
	}
	return *t.velocity, true
}

// Throwing reports whether a throw is in progress.
func (t *Thrower) Throwing() bool {
	return t.velocity != nil
}

// Start releases body with the mean drag velocity. Without velocity the body
// is finished immediately. Otherwise one damping step is applied and, with
// AutoThrow, the throw continues on frames.
func (t *Thrower) Start(body Throwable, frames *Frames) {
	t.handle.Cancel()
	v := t.MeanVelocity()
	if v == (Vec2{}) {
		t.velocity = nil
		body.ThrowFinished()
		return
	}
	v = body.NextVelocity(v)
	t.velocity = &v
	t.lastFrame = t.clock.Now()
	if t.AutoThrow && frames != nil {
		t.handle = frames.Request(func(now time.Time) bool {
			return t.Step(body, now)
		})
	}
}

// Step advances the throw to now. The body's next velocity is never allowed
// to exceed the current speed: a larger one is scaled back uniformly. It
// returns true while the body is still moving or still outside its
// container; on false the throw is over and ThrowFinished has been called.
func (t *Thrower) Step(body Throwable, now time.Time) bool {
	if t.velocity == nil {
		return false
	}
	dt := millis(now.Sub(t.lastFrame))
	t.lastFrame = now

	prev := *t.velocity
	next := body.NextVelocity(prev)
	prevLen, nextLen := prev.Len(), next.Len()
	if nextLen > prevLen {
		factor := nextLen / prevLen
		next = next.Scale(1 / factor)
		if t.debug {
			debugf("throw accelerated from %.4f to %.4f px/ms, capped", prevLen, nextLen)
		}
	}
	t.velocity = &next
	body.ThrowMove(next.Scale(dt))

	if t.velocity == nil {
		// Killed from inside ThrowMove.
		return false
	}
	if next.Len() > throwStopSpeed || body.Outside() {
		return true
	}
	t.velocity = nil
	body.ThrowFinished()
	return false
}

// Kill stops a running throw without calling ThrowFinished.
func (t *Thrower) Kill() {
	t.velocity = nil
	t.handle.Cancel()
	t.handle = FrameHandle{}
}

// dampen applies the plain per-frame damping to v.
func (t *Thrower) dampen(v Vec2) Vec2 {
	return v.Scale(t.Damping)
}
