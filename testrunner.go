package perimeter

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Menu   string  `json:"menu,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"tap": true, "press": true, "move": true, "release": true,
	"longpress": true, "drag": true, "wait": true,
	"toggle": true, "reconfigure": true,
}

// TestRunner sequences injected input and menu commands across frames for
// scripted demos and automated testing. Attach to a Scene via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner.
//
//	{"steps": [
//	  {"action": "longpress", "x": 100, "y": 100, "frames": 40},
//	  {"action": "move", "x": 40, "y": 100},
//	  {"action": "release", "x": 40, "y": 100},
//	  {"action": "wait", "frames": 30},
//	  {"action": "toggle", "menu": "main"}
//	]}
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

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called each frame before input processing.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame.
func (r *TestRunner) step(s *Scene) {
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
	case "press":
		s.InjectPress(st.X, st.Y)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "release":
		s.InjectRelease(st.X, st.Y)
	case "longpress":
		s.InjectLongPress(st.X, st.Y, max(1, st.Frames))
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(2, st.Frames))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "toggle":
		if m := r.menu(s, st.Menu); m != nil {
			m.Toggle()
		}
	case "reconfigure":
		if m := r.menu(s, st.Menu); m != nil {
			m.Reconfigure()
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

// menu resolves a step's menu name; empty means the first attached menu.
func (r *TestRunner) menu(s *Scene, name string) *Menu {
	if name == "" {
		if len(s.menus) == 0 {
			return nil
		}
		return s.menus[0]
	}
	m := s.Menu(name)
	if m == nil {
		debugLogf("test script: no menu named %q", name)
	}
	return m
}
