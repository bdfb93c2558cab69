package tactile

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

// captureStderr returns what fn wrote to os.Stderr.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w
	defer func() { os.Stderr = old }()

	fn()

	_ = w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

func TestDebugTreeDepthWarning(t *testing.T) {
	s, _ := newTestSurface(SurfaceConfig{})
	s.SetDebugMode(true)

	current := s.Root()
	for i := 0; i < debugMaxTreeDepth+3; i++ {
		child := NewContainer(fmt.Sprintf("depth_%d", i))
		current.AddChild(child)
		current = child
	}
	leaf := NewSprite("deep", 10, 10, ColorWhite)
	current.AddChild(leaf)

	out := captureStderr(t, func() {
		if _, err := s.AddScatter(leaf, ScatterConfig{X: 50, Y: 50}); err != nil {
			t.Error(err)
		}
	})
	if !strings.Contains(out, "[tactile] warning: tree depth") || !strings.Contains(out, `"deep"`) {
		t.Errorf("expected tree depth warning, got: %q", out)
	}
}

func TestDebugChildCountWarning(t *testing.T) {
	s, _ := newTestSurface(SurfaceConfig{})
	s.SetDebugMode(true)

	parent := NewContainer("crowded")
	s.Root().AddChild(parent)
	for i := 0; i < debugMaxChildCount; i++ {
		parent.AddChild(NewContainer(fmt.Sprintf("c_%d", i)))
	}
	card := NewSprite("card", 10, 10, ColorWhite)
	parent.AddChild(card)

	out := captureStderr(t, func() {
		if _, err := s.AddScatter(card, ScatterConfig{X: 50, Y: 50}); err != nil {
			t.Error(err)
		}
	})
	if !strings.Contains(out, `warning: node "crowded" has 1001 children`) {
		t.Errorf("expected child count warning, got: %q", out)
	}
}

func TestReleaseModeIsQuiet(t *testing.T) {
	s, _ := newTestSurface(SurfaceConfig{})
	current := s.Root()
	for i := 0; i < debugMaxTreeDepth+3; i++ {
		child := NewContainer("c")
		current.AddChild(child)
		current = child
	}
	leaf := NewSprite("deep", 10, 10, ColorWhite)
	current.AddChild(leaf)

	out := captureStderr(t, func() {
		_, _ = s.AddScatter(leaf, ScatterConfig{X: 50, Y: 50})
	})
	if out != "" {
		t.Errorf("release mode wrote %q", out)
	}
}

func TestDebugSimultaneousInteractions(t *testing.T) {
	ia, _ := newTestInteraction()
	ia.LogInteractionsAbove = 2
	d := NewDelegate(APIPointer, ia, &recorder{})
	d.SetDebug(true)

	out := captureStderr(t, func() {
		for id := 1; id <= 3; id++ {
			d.HandleEvent(pointerEvent(EventDown, id, float64(id), 0))
		}
	})
	if strings.Count(out, "3 simultaneous interactions (threshold 2)") != 1 {
		t.Errorf("expected one crowding warning, got: %q", out)
	}
}

func TestDebugThrowAcceleration(t *testing.T) {
	clock := NewManualClock(testEpoch)
	th := primedThrower(clock)
	th.AutoThrow = false
	th.debug = true
	body := &fakeBody{next: func(v Vec2) Vec2 { return v.Scale(2) }}

	out := captureStderr(t, func() {
		th.Start(body, nil)
		clock.Advance(10 * time.Millisecond)
		th.Step(body, clock.Now())
	})
	if !strings.Contains(out, "throw accelerated from 4.0000 to 8.0000 px/ms, capped") {
		t.Errorf("expected acceleration notice, got: %q", out)
	}
}

func TestSetDebugModePropagates(t *testing.T) {
	s, _ := newTestSurface(SurfaceConfig{})
	_, sc := addCard(t, s, 200, 150)

	s.SetDebugMode(true)
	if !sc.debug || !sc.Thrower().debug || !s.Mapper().debug {
		t.Error("debug mode did not reach the scatter, thrower and mapper")
	}
	_, later := addCard(t, s, 100, 100)
	if !later.debug {
		t.Error("scatter added in debug mode is not in debug mode")
	}
	s.SetDebugMode(false)
	if sc.debug || later.debug {
		t.Error("debug mode not switched off")
	}
}

func TestDebugOverlayText(t *testing.T) {
	s, _ := newTestSurface(SurfaceConfig{})
	addCard(t, s, 200, 150)
	s.Camera().ZoomAbout(Vec2{200, 150}, 2)

	text := s.debugOverlayText(60, 59.5)
	for _, want := range []string{"FPS: 60.0", "TPS: 59.5", "pointers: 0", "scatters: 1", "zoom: 2.00"} {
		if !strings.Contains(text, want) {
			t.Errorf("overlay %q lacks %q", text, want)
		}
	}
}
