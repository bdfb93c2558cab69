package tactile

import "time"

// FrameFunc is called once per Frames.Tick with the tick time. Returning true
// requests another frame; returning false ends the loop.
type FrameFunc func(now time.Time) bool

type frameEntry struct {
	fn        FrameFunc
	timer     func()
	due       time.Time
	cancelled bool
}

// FrameHandle identifies a pending frame callback or timer.
// The zero FrameHandle is valid and cancels nothing.
type FrameHandle struct {
	entry *frameEntry
}

// Cancel stops the callback from running again. Safe to call more than once
// and from inside the callback itself.
func (h FrameHandle) Cancel() {
	if h.entry != nil {
		h.entry.cancelled = true
	}
}

// Active reports whether the callback is still scheduled.
func (h FrameHandle) Active() bool {
	return h.entry != nil && !h.entry.cancelled
}

// Frames is the single owned scheduler for everything that would otherwise
// chain animation-frame or timeout callbacks. All callbacks run on the caller
// of Tick, so no locking is needed.
type Frames struct {
	clock  Clock
	frames []*frameEntry
	timers []*frameEntry
	buf    []*frameEntry
}

// NewFrames creates a scheduler reading time from clock. A nil clock uses
// SystemClock.
func NewFrames(clock Clock) *Frames {
	if clock == nil {
		clock = SystemClock
	}
	return &Frames{clock: clock}
}

// Now returns the scheduler clock's current time.
func (f *Frames) Now() time.Time {
	return f.clock.Now()
}

// Clock returns the scheduler's clock.
func (f *Frames) Clock() Clock {
	return f.clock
}

// Request schedules fn for the next Tick.
func (f *Frames) Request(fn FrameFunc) FrameHandle {
	e := &frameEntry{fn: fn}
	f.frames = append(f.frames, e)
	return FrameHandle{entry: e}
}

// After schedules fn to run on the first Tick at or after d from now.
func (f *Frames) After(d time.Duration, fn func()) FrameHandle {
	e := &frameEntry{timer: fn, due: f.clock.Now().Add(d)}
	f.timers = append(f.timers, e)
	return FrameHandle{entry: e}
}

// Pending returns the number of live frame callbacks and timers.
func (f *Frames) Pending() int {
	n := 0
	for _, e := range f.frames {
		if !e.cancelled {
			n++
		}
	}
	for _, e := range f.timers {
		if !e.cancelled {
			n++
		}
	}
	return n
}

// Tick runs due timers, then every frame callback that was requested before
// this Tick. Callbacks requested during the tick run on the next one.
func (f *Frames) Tick() {
	now := f.clock.Now()

	if len(f.timers) > 0 {
		due := f.buf[:0]
		kept := f.timers[:0]
		for _, e := range f.timers {
			switch {
			case e.cancelled:
			case !now.Before(e.due):
				due = append(due, e)
			default:
				kept = append(kept, e)
			}
		}
		for i := len(kept); i < len(f.timers); i++ {
			f.timers[i] = nil
		}
		f.timers = kept
		for _, e := range due {
			if e.cancelled {
				continue
			}
			e.cancelled = true
			e.timer()
		}
		f.buf = due[:0]
	}

	if len(f.frames) == 0 {
		return
	}
	run := f.frames
	f.frames = nil
	for _, e := range run {
		if e.cancelled {
			continue
		}
		if e.fn(now) && !e.cancelled {
			f.frames = append(f.frames, e)
		} else {
			e.cancelled = true
		}
	}
}
