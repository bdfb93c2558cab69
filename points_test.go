package tactile

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestInteraction() (*Interaction, *ManualClock) {
	clock := NewManualClock(testEpoch)
	return NewInteraction(InteractionConfig{}, clock), clock
}

func TestPointsDeltaEmpty(t *testing.T) {
	p := NewPoints()
	if _, ok := p.Delta(); ok {
		t.Error("Delta on empty tracker should report false")
	}
}

func TestPointsDeltaSinglePointer(t *testing.T) {
	p := NewPoints()
	if !p.Update("a", Vec2{0, 0}) {
		t.Fatal("first Update should report a new key")
	}
	if p.Update("a", Vec2{5, 3}) {
		t.Fatal("second Update should not report a new key")
	}
	d, ok := p.Delta()
	if !ok {
		t.Fatal("Delta reported no motion")
	}
	want := Delta{X: 5, Y: 3, Zoom: 1, About: Vec2{5, 3}}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("Delta mismatch (-want +got):\n%s", diff)
	}

	p.UpdatePrevious()
	d, _ = p.Delta()
	if d.X != 0 || d.Y != 0 {
		t.Errorf("after UpdatePrevious delta = (%v,%v), want 0", d.X, d.Y)
	}
}

func TestPointsDeltaPinchZoom(t *testing.T) {
	p := NewPoints()
	p.Update("a", Vec2{0, 0})
	p.Update("b", Vec2{10, 0})
	p.Update("a", Vec2{-5, 0})
	p.Update("b", Vec2{15, 0})

	d, ok := p.Delta()
	if !ok {
		t.Fatal("no delta")
	}
	if !approxEqual(d.Zoom, 2, epsilon) {
		t.Errorf("Zoom = %v, want 2", d.Zoom)
	}
	if !approxEqual(d.X, 0, epsilon) || !approxEqual(d.Y, 0, epsilon) {
		t.Errorf("translate = (%v,%v), want 0", d.X, d.Y)
	}
	if !approxEqual(d.Rotate, 0, epsilon) {
		t.Errorf("Rotate = %v, want 0", d.Rotate)
	}
	if d.About != (Vec2{5, 0}) {
		t.Errorf("About = %v, want (5,0)", d.About)
	}
	if d.Distance != 20 {
		t.Errorf("Distance = %v, want 20", d.Distance)
	}
}

func TestPointsDeltaRotation(t *testing.T) {
	p := NewPoints()
	p.Update("a", Vec2{-5, 0})
	p.Update("b", Vec2{5, 0})
	p.Update("a", Vec2{0, -5})
	p.Update("b", Vec2{0, 5})

	d, _ := p.Delta()
	if !approxEqual(d.Rotate, math.Pi/2, 1e-9) {
		t.Errorf("Rotate = %v, want π/2", d.Rotate)
	}
	if !approxEqual(d.Zoom, 1, epsilon) {
		t.Errorf("Zoom = %v, want 1", d.Zoom)
	}
}

func TestPointsDeltaUsesFarthestPair(t *testing.T) {
	p := NewPoints()
	p.Update("a", Vec2{0, 0})
	p.Update("near", Vec2{1, 0})
	p.Update("c", Vec2{10, 0})
	// Only the near pointer moves: the a-c pinch is unchanged.
	p.Update("near", Vec2{1, 3})

	d, _ := p.Delta()
	if d.X != 0 || d.Y != 0 || d.Zoom != 1 {
		t.Errorf("Delta = %+v, want the a-c pair unchanged", d)
	}
	if d.About != (Vec2{5, 0}) {
		t.Errorf("About = %v, want (5,0)", d.About)
	}
}

func TestPointsDeltaCoincidentPointers(t *testing.T) {
	p := NewPoints()
	p.Update("a", Vec2{3, 3})
	p.Update("b", Vec2{3, 3})
	p.Update("a", Vec2{4, 3})
	d, ok := p.Delta()
	if !ok {
		t.Fatal("no delta")
	}
	if d.Zoom != 1 {
		t.Errorf("Zoom = %v, want 1 when the previous distance is zero", d.Zoom)
	}
}

func TestPointsLifecycle(t *testing.T) {
	p := NewPoints()
	p.Update("a", Vec2{1, 1})
	p.Update("b", Vec2{2, 2})
	if diff := cmp.Diff([]string{"a", "b"}, p.Keys()); diff != "" {
		t.Errorf("Keys (-want +got):\n%s", diff)
	}

	p.Stop("a", Vec2{3, 3})
	if p.Len() != 1 || p.IsFinished() {
		t.Fatalf("Len = %d after one Stop", p.Len())
	}
	if _, ok := p.Current("a"); ok {
		t.Error("stopped key still current")
	}
	if e, ok := p.Ended("a"); !ok || e != (Vec2{3, 3}) {
		t.Errorf("Ended = %v, %v", e, ok)
	}
	if s, ok := p.Start("a"); !ok || s != (Vec2{1, 1}) {
		t.Errorf("Start kept = %v, %v", s, ok)
	}
	if diff := cmp.Diff([]string{"a"}, p.EndedKeys()); diff != "" {
		t.Errorf("EndedKeys (-want +got):\n%s", diff)
	}

	// Stopping an unknown or already stopped key is a no-op.
	p.Stop("a", Vec2{9, 9})
	p.Stop("zzz", Vec2{9, 9})
	if e, _ := p.Ended("a"); e != (Vec2{3, 3}) {
		t.Errorf("second Stop overwrote ended point: %v", e)
	}

	p.Finish("a")
	p.Finish("a")
	p.Finish("unknown")
	if _, ok := p.Start("a"); ok {
		t.Error("Finish left start data")
	}
	if len(p.EndedKeys()) != 0 {
		t.Errorf("EndedKeys = %v after Finish", p.EndedKeys())
	}

	p.Stop("b", Vec2{2, 2})
	p.Finish("b")
	if !p.IsFinished() || len(p.Keys()) != 0 {
		t.Error("tracker should be empty")
	}

	// A finished key starts fresh.
	if !p.Update("a", Vec2{7, 7}) {
		t.Error("re-used key should count as new")
	}
}

func TestPointsMoveAndMoved(t *testing.T) {
	p := NewPoints()
	p.Update("a", Vec2{0, 0})
	p.Update("b", Vec2{10, 0})
	p.Update("a", Vec2{4, 2})
	if got := p.Moved("a"); got != (Vec2{4, 2}) {
		t.Errorf("Moved(a) = %v", got)
	}
	if got := p.Moved("missing"); got != (Vec2{}) {
		t.Errorf("Moved(missing) = %v", got)
	}
	if got := p.Move(); got != (Vec2{2, 1}) {
		t.Errorf("Move = %v, want (2,1)", got)
	}
}

func TestPointsTapClassification(t *testing.T) {
	tests := []struct {
		name      string
		hold      time.Duration
		end       Vec2
		tap, long bool
	}{
		{"quick tap", 100 * time.Millisecond, Vec2{3, 0}, true, false},
		{"tap at threshold", DefaultLongPressTime, Vec2{0, 0}, true, false},
		{"long press", 600 * time.Millisecond, Vec2{2, 2}, false, true},
		{"drag", 100 * time.Millisecond, Vec2{20, 0}, false, false},
		{"slow drag", time.Second, Vec2{10, 0}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ia, clock := newTestInteraction()
			ia.Update("m", Vec2{0, 0})
			clock.Advance(tt.hold)
			ia.Stop("m", tt.end)
			if got := ia.IsTap("m"); got != tt.tap {
				t.Errorf("IsTap = %v, want %v", got, tt.tap)
			}
			if got := ia.IsLongPress("m"); got != tt.long {
				t.Errorf("IsLongPress = %v, want %v", got, tt.long)
			}
			if got := ia.IsAnyTap(); got != tt.tap {
				t.Errorf("IsAnyTap = %v, want %v", got, tt.tap)
			}
			if got := ia.IsAnyLongPress(); got != tt.long {
				t.Errorf("IsAnyLongPress = %v, want %v", got, tt.long)
			}
		})
	}
}

func TestPointsTapNeedsEnd(t *testing.T) {
	ia, _ := newTestInteraction()
	ia.Update("m", Vec2{0, 0})
	if ia.IsTap("m") || ia.IsLongPress("m") {
		t.Error("an active pointer is neither a tap nor a long press")
	}
}

func TestAspectString(t *testing.T) {
	for a, want := range map[Aspect]string{
		AspectCurrent:  "current",
		AspectPrevious: "previous",
		AspectStart:    "start",
		AspectEnded:    "ended",
		Aspect(99):     "unknown",
	} {
		if got := a.String(); got != want {
			t.Errorf("Aspect(%d).String() = %q, want %q", a, got, want)
		}
	}
}
