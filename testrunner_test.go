package tactile

import (
	"strings"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "tap", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "pinch", "x": 50, "y": 60, "fromDist": 20, "toDist": 80, "frames": 6},
			{"action": "wheel", "x": 5, "y": 6, "dy": -1, "shift": true}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if st := runner.steps[0]; st.Action != "screenshot" || st.Label != "initial" {
		t.Errorf("step 0 = %+v", st)
	}
	if st := runner.steps[1]; st.Action != "tap" || st.X != 100 || st.Y != 200 {
		t.Errorf("step 1 = %+v", st)
	}
	if st := runner.steps[3]; st.FromDist != 20 || st.ToDist != 80 || st.Frames != 6 {
		t.Errorf("step 3 = %+v", st)
	}
	if st := runner.steps[4]; st.DY != -1 || !st.Shift {
		t.Errorf("step 4 = %+v", st)
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"invalid json", `not json`, "parse test script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "click"}]}`, `unknown action "click"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestRunnerStepTap(t *testing.T) {
	s, _ := newTestSurface(SurfaceConfig{})
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "tap", "x": 50, "y": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	runner.step(s)
	if s.PendingInjections() != 2 {
		t.Fatalf("expected 2 queued frames, got %d", s.PendingInjections())
	}
	if runner.Done() {
		t.Error("runner should not be done while injections are pending")
	}

	s.processInjectedInput()
	s.processInjectedInput()
	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done once the queue drained")
	}
}

func TestRunnerStepWait(t *testing.T) {
	s, _ := newTestSurface(SurfaceConfig{})
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "done"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	for frame := 1; frame <= 3; frame++ {
		runner.step(s)
		if runner.Done() {
			t.Fatalf("done during wait frame %d", frame)
		}
	}
	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after the screenshot step")
	}
	if got := s.PendingScreenshots(); len(got) != 1 || got[0] != "done" {
		t.Errorf("screenshots = %v, want [done]", got)
	}
}

func TestRunnerStepWheel(t *testing.T) {
	s, _ := newTestSurface(SurfaceConfig{})
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "wheel", "x": 5, "y": 6, "dy": 1, "shift": true}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(s)
	if s.PendingInjections() != 1 {
		t.Fatalf("queued %d frames, want 1", s.PendingInjections())
	}
	ev := s.injectQueue[0][0]
	if ev.Kind != EventWheel || ev.WheelY != 1 || ev.Modifiers != ModShift || ev.Position() != (Vec2{5, 6}) {
		t.Errorf("wheel event = %+v", ev)
	}
}

func TestRunnerDrivesSurface(t *testing.T) {
	s, clock := newTestSurface(SurfaceConfig{})
	_, sc := addCard(t, s, 200, 150)
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "drag", "fromX": 200, "fromY": 150, "toX": 200, "toY": 100, "frames": 3},
		{"action": "wait", "frames": 2}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	for i := 0; i < 20 && !runner.Done(); i++ {
		runFrames(s, clock, 1)
	}
	if !runner.Done() {
		t.Fatal("runner never finished")
	}
	if want := (Vec2{200, 125}); sc.Position() != want {
		t.Errorf("position = %v, want %v", sc.Position(), want)
	}
}

func TestRunnerDone(t *testing.T) {
	s, _ := newTestSurface(SurfaceConfig{})
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "screenshot", "label": "only"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if runner.Done() {
		t.Error("runner should not be done before any steps")
	}
	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after a single screenshot step")
	}
	runner.step(s)
	if len(s.PendingScreenshots()) != 1 {
		t.Error("a finished runner kept stepping")
	}
}
