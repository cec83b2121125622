package alder

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Context carries the graph services every component in a layer's tree can
// reach. The owning layer hands it to the root at attach time and adoption
// propagates it to every descendant.
type Context struct {
	Graph     *Graph
	Layer     *Layer
	Bus       *Emitter[GraphEvent]
	Scheduler *Scheduler
	Camera    *Camera
	Selection *Selection
	Settings  *Settings
}

// Surface returns the owning layer's surface, or nil while detached.
func (ctx *Context) Surface() *Surface {
	if ctx.Layer == nil {
		return nil
	}
	return ctx.Layer.Surface()
}

// EventSink is the interface for optional ECS integration. When set on a
// Graph, every bus event is forwarded to the sink after its local handlers
// ran.
type EventSink interface {
	EmitGraphEvent(event GraphEvent, args []any)
}

// Graph is the top-level object that owns the event bus, the scheduler, the
// camera, interaction state, and the layer stack. The host drives it from an
// ebiten game loop (see Run) or any equivalent Update/Draw/Layout cadence.
type Graph struct {
	settings Settings

	bus       *Emitter[GraphEvent]
	sched     *Scheduler
	camera    *Camera
	drag      *DragController
	selection *Selection

	layers         []*Layer
	maintainRemove func()

	pointer  pointerState
	injected []injectedInput

	script *ScriptRunner
	sink   EventSink

	width, height int
	stats         frameStats
	debug         bool
	destroyed     bool
}

// NewGraph creates a graph with default settings.
func NewGraph() *Graph {
	return NewGraphWithSettings(DefaultSettings())
}

// NewGraphWithSettings creates a graph with the given settings. The graph
// keeps its own copy; later mutations through Settings() are observed live
// by the camera, the drag controller, and bus maintenance.
func NewGraphWithSettings(settings Settings) *Graph {
	g := &Graph{settings: settings}
	g.bus = NewEmitter[GraphEvent]()
	g.sched = NewScheduler()
	g.camera = newCamera(g.bus, g.sched, &g.settings)
	g.selection = newSelection(g.bus)
	g.drag = newDragController(g.bus, g.sched, g.camera, &g.settings)
	g.maintainRemove = g.sched.Add(UpdaterFunc(func(dt float64) {
		g.bus.Maintain(g.settings.maintenanceBudget())
	}), PriorityLowest)
	return g
}

// Bus returns the graph's event bus.
func (g *Graph) Bus() *Emitter[GraphEvent] { return g.bus }

// Scheduler returns the graph's priority scheduler.
func (g *Graph) Scheduler() *Scheduler { return g.sched }

// Camera returns the graph's camera.
func (g *Graph) Camera() *Camera { return g.camera }

// Drag returns the graph's drag controller.
func (g *Graph) Drag() *DragController { return g.drag }

// Selection returns the graph's selection set.
func (g *Graph) Selection() *Selection { return g.selection }

// Settings returns the live settings. Mutations take effect on the next
// operation that reads them; use SetTheme to change colors so listeners are
// notified.
func (g *Graph) Settings() *Settings { return &g.settings }

// Theme returns the current theme.
func (g *Graph) Theme() Theme { return g.settings.Theme }

// SetTheme replaces the theme and emits EventThemeChange so components can
// arm themselves for a repaint.
func (g *Graph) SetTheme(theme Theme) {
	g.settings.Theme = theme
	g.bus.Emit(EventThemeChange, theme)
}

// SetEventSink sets the optional ECS bridge. Pass nil to disconnect.
func (g *Graph) SetEventSink(sink EventSink) {
	g.sink = sink
	if sink == nil {
		g.bus.Tap = nil
		return
	}
	g.bus.Tap = func(event GraphEvent, args []any) {
		sink.EmitGraphEvent(event, args)
	}
}

// SetDebugMode enables or disables debug mode. When enabled, mutating an
// unmounted component panics, tree depth and child count warnings are
// printed, and per-frame timing stats are logged to stderr.
func (g *Graph) SetDebugMode(enabled bool) {
	g.debug = enabled
	globalDebug = enabled
}

// Destroyed reports whether Destroy has run.
func (g *Graph) Destroyed() bool { return g.destroyed }

// --- Layers ---

// AddLayer appends a layer and attaches it to a screen-bound surface. The
// build function runs immediately to mount the layer's tree; the surface's
// Target is bound to the real screen on every Draw.
func (g *Graph) AddLayer(name string, build func(*Context) TreeNode) *Layer {
	ctx := &Context{
		Graph:     g,
		Bus:       g.bus,
		Scheduler: g.sched,
		Camera:    g.camera,
		Selection: g.selection,
		Settings:  &g.settings,
	}
	l := newLayer(ctx, name, build)
	s := NewSurface(nil, g.width, g.height)
	s.screen = true
	l.Attach(s)
	g.layers = append(g.layers, l)
	return l
}

// RemoveLayer detaches the layer, unmounting its tree, and removes it from
// the stack. Unknown layers are ignored.
func (g *Graph) RemoveLayer(l *Layer) {
	for i, cur := range g.layers {
		if cur == l {
			g.layers = append(g.layers[:i], g.layers[i+1:]...)
			l.Detach()
			return
		}
	}
}

// Layers returns the layer stack in draw order. The returned slice MUST NOT
// be mutated.
func (g *Graph) Layers() []*Layer { return g.layers }

// --- Frame loop ---

// Update advances one tick: the active script steps, pointer input feeds the
// drag controller, and the scheduler runs every registered entry in priority
// order. Layer trees iterate in Draw, where their surfaces are bound.
func (g *Graph) Update() {
	if g.destroyed {
		return
	}
	var t0 time.Time
	if g.debug {
		t0 = time.Now()
	}

	if g.script != nil {
		g.script.step(g)
		if g.script.Done() {
			g.script = nil
		}
	}
	g.processInput()
	if g.debug {
		g.stats.inputTime = time.Since(t0)
		t0 = time.Now()
	}

	g.sched.Tick(1.0 / float64(ebiten.TPS()))
	if g.debug {
		g.stats.tickTime = time.Since(t0)
	}
}

// Draw fills the screen with the theme background, binds each screen-bound
// layer surface, and iterates the layer trees in stack order. A panicking
// subtree is reported and skipped; it does not stop the layers above it.
func (g *Graph) Draw(screen *ebiten.Image) {
	if g.destroyed {
		return
	}
	var t0 time.Time
	if g.debug {
		t0 = time.Now()
	}

	screen.Fill(g.settings.Theme.Background.toRGBA())
	for _, l := range g.layers {
		if s := l.Surface(); s != nil && s.screen {
			s.Target = screen
		}
		g.iterateLayer(l)
	}

	if g.debug {
		g.stats.iterateTime = time.Since(t0)
		g.stats.layerCount = len(g.layers)
		g.debugLog(g.stats)
	}
}

func (g *Graph) iterateLayer(l *Layer) {
	defer func() {
		if r := recover(); r != nil {
			warnf("layer %q panicked during iterate: %v", l.Name(), r)
		}
	}()
	l.Iterate()
}

// Layout records the drawable size, resizes the camera viewport, and resizes
// every screen-bound layer surface. It is shaped to sit directly behind
// ebiten.Game.Layout.
func (g *Graph) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	g.camera.SetViewport(float64(outsideWidth), float64(outsideHeight))
	for _, l := range g.layers {
		if s := l.Surface(); s != nil && s.screen {
			s.W, s.H = outsideWidth, outsideHeight
		}
	}
	return outsideWidth, outsideHeight
}

// --- Scripts ---

// RunScript starts r on the next Update. A script already in progress is
// replaced with a warning.
func (g *Graph) RunScript(r *ScriptRunner) {
	if g.script != nil && !g.script.Done() {
		warnf("script replaced while %d steps remained", g.script.Remaining())
	}
	g.script = r
}

// ScriptRunning reports whether a script still has steps to play.
func (g *Graph) ScriptRunning() bool {
	return g.script != nil && !g.script.Done()
}

// --- Teardown ---

// Destroy permanently shuts the graph down: an in-flight drag is force-ended,
// layers detach and unmount their trees, camera motion stops, and finally
// the bus is destroyed. Update and Draw become no-ops. Destroy is
// idempotent.
func (g *Graph) Destroy() {
	if g.destroyed {
		return
	}
	g.destroyed = true

	g.drag.ForceEnd()
	for _, l := range g.layers {
		l.Detach()
	}
	g.layers = nil
	g.camera.StopScroll()
	g.camera.StopAutoPan()
	if g.maintainRemove != nil {
		g.maintainRemove()
		g.maintainRemove = nil
	}
	g.script = nil
	g.bus.Destroy()
}
