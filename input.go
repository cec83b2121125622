package alder

import "github.com/hajimehoshi/ebiten/v2"

// pointerState tracks the primary pointer between frames so press and
// release edges can be derived from level state.
type pointerState struct {
	down  bool
	lastX float64
	lastY float64
}

// injectedInput is one synthetic pointer sample, in screen coordinates,
// matching what real mouse input produces.
type injectedInput struct {
	x, y    float64
	pressed bool
}

// processInput feeds one frame of pointer input into the drag controller.
// Injected input takes precedence; the real mouse is read only when the
// queue is empty, so scripted interaction is deterministic regardless of
// where the host's cursor sits.
func (g *Graph) processInput() {
	if g.processInjectedInput() {
		return
	}
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	g.processPointer(float64(mx), float64(my), pressed)
}

// processInjectedInput pops one queued event and feeds it through the same
// state machine as real input. Returns true when an event was consumed.
func (g *Graph) processInjectedInput() bool {
	if len(g.injected) == 0 {
		return false
	}
	evt := g.injected[0]
	copy(g.injected, g.injected[1:])
	g.injected = g.injected[:len(g.injected)-1]
	g.processPointer(evt.x, evt.y, evt.pressed)
	return true
}

// processPointer runs the pointer state machine: press and release edges map
// to drag Begin/End, held samples to Move.
func (g *Graph) processPointer(x, y float64, pressed bool) {
	ps := &g.pointer
	switch {
	case pressed && !ps.down:
		ps.down = true
		g.drag.Begin(x, y)
	case !pressed && ps.down:
		ps.down = false
		g.drag.End(x, y)
	case pressed:
		g.drag.Move(x, y)
	}
	ps.lastX, ps.lastY = x, y
}

// --- Injection ---

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next Update; one queued event is consumed per
// frame.
func (g *Graph) InjectPress(x, y float64) {
	g.injected = append(g.injected, injectedInput{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use between
// InjectPress and InjectRelease to simulate a drag.
func (g *Graph) InjectMove(x, y float64) {
	g.injected = append(g.injected, injectedInput{x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (g *Graph) InjectRelease(x, y float64) {
	g.injected = append(g.injected, injectedInput{x: x, y: y})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (g *Graph) InjectClick(x, y float64) {
	g.InjectPress(x, y)
	g.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves, and release at (toX, toY). The sequence consumes
// frames frames; the minimum is 2 (press plus release).
func (g *Graph) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	g.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		g.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	g.InjectRelease(toX, toY)
}

// InjectedPending returns the number of queued synthetic events.
func (g *Graph) InjectedPending() int { return len(g.injected) }
