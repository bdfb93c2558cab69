package tactile

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFramesRequestRunsUntilFalse(t *testing.T) {
	clock := NewManualClock(testEpoch)
	f := NewFrames(clock)
	runs := 0
	f.Request(func(time.Time) bool {
		runs++
		return runs < 3
	})
	for i := 0; i < 5; i++ {
		f.Tick()
	}
	if runs != 3 {
		t.Errorf("runs = %d, want 3", runs)
	}
	if f.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", f.Pending())
	}
}

func TestFramesPassTickTime(t *testing.T) {
	clock := NewManualClock(testEpoch)
	f := NewFrames(clock)
	var got time.Time
	f.Request(func(now time.Time) bool {
		got = now
		return false
	})
	clock.Advance(16 * time.Millisecond)
	f.Tick()
	if want := testEpoch.Add(16 * time.Millisecond); !got.Equal(want) {
		t.Errorf("now = %v, want %v", got, want)
	}
}

func TestFramesRequestDuringTickRunsNextTick(t *testing.T) {
	f := NewFrames(NewManualClock(testEpoch))
	var order []string
	f.Request(func(time.Time) bool {
		order = append(order, "outer")
		f.Request(func(time.Time) bool {
			order = append(order, "inner")
			return false
		})
		return false
	})
	f.Tick()
	if diff := cmp.Diff([]string{"outer"}, order); diff != "" {
		t.Fatalf("first tick (-want +got):\n%s", diff)
	}
	f.Tick()
	if diff := cmp.Diff([]string{"outer", "inner"}, order); diff != "" {
		t.Errorf("second tick (-want +got):\n%s", diff)
	}
}

func TestFramesCancel(t *testing.T) {
	f := NewFrames(NewManualClock(testEpoch))
	runs := 0
	h := f.Request(func(time.Time) bool {
		runs++
		return true
	})
	f.Tick()
	if !h.Active() {
		t.Fatal("handle inactive while scheduled")
	}
	h.Cancel()
	h.Cancel()
	f.Tick()
	if runs != 1 || h.Active() {
		t.Errorf("runs = %d, active = %v after Cancel", runs, h.Active())
	}

	var zero FrameHandle
	zero.Cancel()
	if zero.Active() {
		t.Error("zero handle reports active")
	}
}

func TestFramesCancelFromInside(t *testing.T) {
	f := NewFrames(NewManualClock(testEpoch))
	runs := 0
	var h FrameHandle
	h = f.Request(func(time.Time) bool {
		runs++
		h.Cancel()
		return true
	})
	f.Tick()
	f.Tick()
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
}

func TestFramesAfter(t *testing.T) {
	clock := NewManualClock(testEpoch)
	f := NewFrames(clock)
	fired := 0
	f.After(100*time.Millisecond, func() { fired++ })

	clock.Advance(99 * time.Millisecond)
	f.Tick()
	if fired != 0 {
		t.Fatal("timer fired early")
	}
	clock.Advance(time.Millisecond)
	f.Tick()
	f.Tick()
	if fired != 1 {
		t.Errorf("fired = %d, want exactly 1", fired)
	}
	if f.Pending() != 0 {
		t.Errorf("Pending = %d after timer fired", f.Pending())
	}
}

func TestFramesAfterCancelled(t *testing.T) {
	clock := NewManualClock(testEpoch)
	f := NewFrames(clock)
	fired := false
	h := f.After(time.Millisecond, func() { fired = true })
	h.Cancel()
	clock.Advance(time.Second)
	f.Tick()
	if fired {
		t.Error("cancelled timer fired")
	}
}

func TestFramesTimerSchedulesFrame(t *testing.T) {
	clock := NewManualClock(testEpoch)
	f := NewFrames(clock)
	frames := 0
	f.After(0, func() {
		f.Request(func(time.Time) bool {
			frames++
			return false
		})
	})
	// Timers run before frames within one tick.
	f.Tick()
	if frames != 1 {
		t.Errorf("frames = %d, want 1 in the same tick", frames)
	}
}

func TestManualClock(t *testing.T) {
	c := NewManualClock(testEpoch)
	c.Advance(time.Second)
	if !c.Now().Equal(testEpoch.Add(time.Second)) {
		t.Errorf("Now = %v", c.Now())
	}
	c.Set(testEpoch)
	if !c.Now().Equal(testEpoch) {
		t.Errorf("Set: Now = %v", c.Now())
	}
	if NewFrames(nil).Clock() != SystemClock {
		t.Error("nil clock should fall back to SystemClock")
	}
}
