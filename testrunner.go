package tactile

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action    string  `json:"action"`
	Label     string  `json:"label,omitempty"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	FromX     float64 `json:"fromX,omitempty"`
	FromY     float64 `json:"fromY,omitempty"`
	ToX       float64 `json:"toX,omitempty"`
	ToY       float64 `json:"toY,omitempty"`
	FromDist  float64 `json:"fromDist,omitempty"`
	ToDist    float64 `json:"toDist,omitempty"`
	FromAngle float64 `json:"fromAngle,omitempty"`
	ToAngle   float64 `json:"toAngle,omitempty"`
	DY        float64 `json:"dy,omitempty"`
	Shift     bool    `json:"shift,omitempty"`
	Frames    int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"tap":        true,
	"drag":       true,
	"pinch":      true,
	"wheel":      true,
	"wait":       true,
	"screenshot": true,
}

// TestRunner sequences injected gestures across frames for automated
// testing and demos. Attach to a Surface via SetTestRunner.
//
// Actions: tap (x, y), drag (fromX, fromY, toX, toY, frames), pinch (x, y,
// fromDist, toDist, fromAngle, toAngle, frames), wheel (x, y, dy, shift)
// wait (frames) and screenshot (label).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Surface via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the surface. The runner's step
// method is called from Surface.Update before input is processed.
func (s *Surface) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Surface.Update.
func (r *TestRunner) step(s *Surface) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "tap":
		s.InjectTap(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pinch":
		s.InjectPinch(st.X, st.Y, st.FromDist, st.ToDist, st.FromAngle, st.ToAngle, st.Frames)
	case "wheel":
		var mods KeyModifiers
		if st.Shift {
			mods = ModShift
		}
		s.InjectWheel(st.X, st.Y, st.DY, mods)
	case "screenshot":
		s.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
