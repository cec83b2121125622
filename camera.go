package alder

import "github.com/tanema/gween/ease"

// Camera is the viewport of a Graph: a world-space origin, a zoom factor,
// and the viewport size in screen pixels. Screen and world coordinates
// relate as screen = (world - origin) * zoom.
//
// Every change emits EventCameraChange on the graph bus with the new
// CameraState, so components redraw against the fresh viewport without
// polling.
type Camera struct {
	x, y      float64
	zoom      float64
	viewportW float64
	viewportH float64

	bus      *Emitter[GraphEvent]
	sched    *Scheduler
	settings *Settings

	scroll       *Animation
	panVX, panVY float64
	panRemove    func()
}

func newCamera(bus *Emitter[GraphEvent], sched *Scheduler, settings *Settings) *Camera {
	return &Camera{
		zoom:     1,
		bus:      bus,
		sched:    sched,
		settings: settings,
	}
}

// State returns the current camera state.
func (c *Camera) State() CameraState {
	return CameraState{
		X:              c.x,
		Y:              c.y,
		Zoom:           c.zoom,
		ViewportWidth:  c.viewportW,
		ViewportHeight: c.viewportH,
	}
}

// Position returns the world coordinates of the viewport origin.
func (c *Camera) Position() (x, y float64) {
	return c.x, c.y
}

// Zoom returns the current zoom factor.
func (c *Camera) Zoom() float64 {
	return c.zoom
}

// SetPosition moves the viewport origin to (x, y) in world space.
func (c *Camera) SetPosition(x, y float64) {
	if c.x == x && c.y == y {
		return
	}
	c.x = x
	c.y = y
	c.emitChange()
}

// MoveBy shifts the viewport origin by (dx, dy) in world space.
func (c *Camera) MoveBy(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	c.x += dx
	c.y += dy
	c.emitChange()
}

// SetZoom sets the zoom factor, clamped to the configured range.
func (c *Camera) SetZoom(zoom float64) {
	zoom = c.clampZoom(zoom)
	if zoom == c.zoom {
		return
	}
	c.zoom = zoom
	c.emitChange()
}

// ZoomAt sets the zoom factor while keeping the world point under the
// screen position (sx, sy) stationary, the behavior wanted when zooming at
// the cursor.
func (c *Camera) ZoomAt(zoom, sx, sy float64) {
	zoom = c.clampZoom(zoom)
	if zoom == c.zoom {
		return
	}
	c.x += sx/c.zoom - sx/zoom
	c.y += sy/c.zoom - sy/zoom
	c.zoom = zoom
	c.emitChange()
}

func (c *Camera) clampZoom(zoom float64) float64 {
	if min := c.settings.MinZoom; min > 0 && zoom < min {
		zoom = min
	}
	if max := c.settings.MaxZoom; max > 0 && zoom > max {
		zoom = max
	}
	return zoom
}

// SetViewport records the viewport size in screen pixels. The driver calls
// this from Layout.
func (c *Camera) SetViewport(w, h float64) {
	if c.viewportW == w && c.viewportH == h {
		return
	}
	c.viewportW = w
	c.viewportH = h
	c.emitChange()
}

// Viewport returns the viewport size in screen pixels.
func (c *Camera) Viewport() (w, h float64) {
	return c.viewportW, c.viewportH
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return (wx - c.x) * c.zoom, (wy - c.y) * c.zoom
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return c.x + sx/c.zoom, c.y + sy/c.zoom
}

// VisibleBounds returns the world-space rectangle currently covered by the
// viewport.
func (c *Camera) VisibleBounds() Rect {
	return Rect{
		X:      c.x,
		Y:      c.y,
		Width:  c.viewportW / c.zoom,
		Height: c.viewportH / c.zoom,
	}
}

// --- Animated scroll ---

// ScrollTo animates the viewport origin to (x, y) over duration seconds.
// A scroll started while another runs supersedes it. Each animation step
// moves the camera through SetPosition, so change events fire along the way.
func (c *Camera) ScrollTo(x, y float64, duration float32, fn ease.TweenFunc) {
	c.StopScroll()
	fromX, fromY := c.x, c.y
	dx, dy := x-fromX, y-fromY
	// A single eased 0..1 channel drives both axes so they stay in phase.
	scroll := StartAnimation(c.sched, PriorityHighest, duration, fn, Channel{
		From: 0,
		To:   1,
		Apply: func(t float64) {
			c.SetPosition(fromX+dx*t, fromY+dy*t)
		},
	})
	c.scroll = scroll
	scroll.OnDone = func() {
		if c.scroll == scroll {
			c.scroll = nil
		}
	}
}

// Scrolling reports whether a ScrollTo animation is running.
func (c *Camera) Scrolling() bool {
	return c.scroll != nil && !c.scroll.Done
}

// StopScroll cancels a running scroll animation, leaving the camera where
// it is.
func (c *Camera) StopScroll() {
	if c.scroll != nil {
		c.scroll.Stop()
		c.scroll = nil
	}
}

// --- Auto-pan ---

// AutoPan starts (or retargets) continuous panning at (vx, vy) world units
// per second. The pan runs as a PriorityHighest scheduler entry so dependent
// work later in the same tick observes the already-moved camera. A zero
// velocity stops panning.
func (c *Camera) AutoPan(vx, vy float64) {
	if vx == 0 && vy == 0 {
		c.StopAutoPan()
		return
	}
	c.panVX, c.panVY = vx, vy
	if c.panRemove == nil {
		c.panRemove = c.sched.Add(UpdaterFunc(c.panStep), PriorityHighest)
	}
}

func (c *Camera) panStep(dt float64) {
	c.MoveBy(c.panVX*dt, c.panVY*dt)
}

// AutoPanning reports whether an auto-pan is active.
func (c *Camera) AutoPanning() bool {
	return c.panRemove != nil
}

// StopAutoPan stops continuous panning.
func (c *Camera) StopAutoPan() {
	if c.panRemove != nil {
		c.panRemove()
		c.panRemove = nil
	}
	c.panVX, c.panVY = 0, 0
}

func (c *Camera) emitChange() {
	if c.bus != nil {
		c.bus.Emit(EventCameraChange, c.State())
	}
}
