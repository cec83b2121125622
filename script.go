package alder

import (
	"encoding/json"
	"fmt"

	"github.com/tanema/gween/ease"
)

// scriptStep represents a single action in an interaction script.
type scriptStep struct {
	Action string   `json:"action"`
	X      float64  `json:"x,omitempty"`
	Y      float64  `json:"y,omitempty"`
	FromX  float64  `json:"fromX,omitempty"`
	FromY  float64  `json:"fromY,omitempty"`
	ToX    float64  `json:"toX,omitempty"`
	ToY    float64  `json:"toY,omitempty"`
	Frames int      `json:"frames,omitempty"`
	Zoom   float64  `json:"zoom,omitempty"`
	IDs    []string `json:"ids,omitempty"`
}

// interactionScript is the top-level JSON structure for a script.
type interactionScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences scripted interactions across frames: pointer input
// through the inject queue, camera scrolls and zooms, and selection changes.
// Attach to a graph via Graph.RunScript; each Update plays at most one step,
// and steps that enqueue pointer input hold the script until the queue
// drains.
//
// Supported actions: "press", "move", "release" and "click" (x, y), "drag"
// (fromX, fromY, toX, toY, frames), "wait" (frames), "scroll" (x, y), "zoom"
// (zoom, x, y), "select" (ids), and "stop" (destroys the graph, ending a
// Run loop).
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON interaction script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script interactionScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse interaction script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse interaction script: no steps")
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether every step has been played.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Remaining returns the number of steps not yet played.
func (r *ScriptRunner) Remaining() int {
	return len(r.steps) - r.cursor
}

// step advances the script by one frame. Called from Graph.Update.
func (r *ScriptRunner) step(g *Graph) {
	if r.done {
		return
	}
	// Let pending injections drain before advancing.
	if len(g.injected) > 0 {
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
	case "press":
		g.InjectPress(st.X, st.Y)
	case "move":
		g.InjectMove(st.X, st.Y)
	case "release":
		g.InjectRelease(st.X, st.Y)
	case "click":
		g.InjectClick(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		g.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "scroll":
		g.camera.ScrollTo(st.X, st.Y, float32(g.settings.ScrollDuration), ease.OutQuad)
	case "zoom":
		g.camera.ZoomAt(st.Zoom, st.X, st.Y)
	case "select":
		g.selection.Replace(st.IDs...)
	case "stop":
		g.Destroy()
	default:
		warnf("script: unknown action %q", st.Action)
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(g.injected) == 0 {
		r.done = true
	}
}
