package alder

import "math"

// DragController turns raw pointer input into the graph's drag lifecycle.
// The input bridge feeds it Begin/Move/End in screen coordinates; consumers
// listen on the bus for EventClick, EventDragStart, EventDragMove, and
// EventDragEnd.
//
// A press is not yet a drag: movement must leave the configured dead zone
// first. A press released inside the dead zone emits EventClick instead.
// While a drag runs, the controller auto-pans the camera when the pointer
// enters the viewport edge band, and a scheduler entry synthesizes drag-move
// events for camera motion under a stationary pointer so dragged payloads
// track the world.
type DragController struct {
	bus      *Emitter[GraphEvent]
	sched    *Scheduler
	camera   *Camera
	settings *Settings

	active         bool
	dragging       bool
	startX, startY float64
	lastX, lastY   float64

	// World position under the pointer at the last sync, for detecting
	// camera motion beneath a still pointer.
	worldX, worldY float64
	remove         func()
}

func newDragController(bus *Emitter[GraphEvent], sched *Scheduler, camera *Camera, settings *Settings) *DragController {
	return &DragController{
		bus:      bus,
		sched:    sched,
		camera:   camera,
		settings: settings,
	}
}

// Active reports whether a press cycle is in progress.
func (d *DragController) Active() bool { return d.active }

// Dragging reports whether movement has left the dead zone.
func (d *DragController) Dragging() bool { return d.dragging }

// Begin starts a press cycle at (x, y). Beginning while a cycle is already
// active is a caller error: a warning is printed and the call is ignored,
// leaving the running cycle untouched.
func (d *DragController) Begin(x, y float64) {
	if d.active {
		warnf("drag: Begin ignored, a drag cycle is already active")
		return
	}
	d.active = true
	d.dragging = false
	d.startX, d.startY = x, y
	d.lastX, d.lastY = x, y
}

// Move feeds pointer motion into the active cycle. Outside a cycle it is a
// no-op. The call that first leaves the dead zone emits EventDragStart
// followed by the first EventDragMove.
func (d *DragController) Move(x, y float64) {
	if !d.active || (x == d.lastX && y == d.lastY) {
		return
	}
	if !d.dragging {
		dx, dy := x-d.startX, y-d.startY
		if math.Sqrt(dx*dx+dy*dy) > d.settings.DragDeadZone {
			d.startDrag(x, y)
		}
	}
	if d.dragging {
		d.bus.Emit(EventDragMove, DragState{
			StartX: d.startX, StartY: d.startY,
			X: x, Y: y,
			DeltaX: x - d.lastX, DeltaY: y - d.lastY,
		})
		d.worldX, d.worldY = d.camera.ScreenToWorld(x, y)
		d.updateAutoPan(x, y)
	}
	d.lastX, d.lastY = x, y
}

func (d *DragController) startDrag(x, y float64) {
	d.dragging = true
	d.worldX, d.worldY = d.camera.ScreenToWorld(x, y)
	d.remove = d.sched.Add(UpdaterFunc(d.syncStep), PriorityHigh)
	d.bus.Emit(EventDragStart, DragState{
		StartX: d.startX, StartY: d.startY,
		X: x, Y: y,
		DeltaX: x - d.startX, DeltaY: y - d.startY,
	})
}

// End finishes the cycle at (x, y). A cycle that never left the dead zone
// emits EventClick; otherwise EventDragEnd fires. Outside a cycle End is a
// no-op.
func (d *DragController) End(x, y float64) {
	d.finish(x, y, false)
}

// ForceEnd aborts the cycle from unrelated teardown (graph destruction,
// window focus loss). It runs the same cleanup path as End but never emits
// a click, and a drag in progress ends with the Forced payload flag set.
func (d *DragController) ForceEnd() {
	d.finish(d.lastX, d.lastY, true)
}

func (d *DragController) finish(x, y float64, forced bool) {
	if !d.active {
		return
	}
	wasDragging := d.dragging
	startX, startY := d.startX, d.startY
	lastX, lastY := d.lastX, d.lastY

	// Reset before emitting so an end handler can begin a fresh cycle.
	if d.remove != nil {
		d.remove()
		d.remove = nil
	}
	d.camera.StopAutoPan()
	d.active = false
	d.dragging = false

	if wasDragging {
		d.bus.Emit(EventDragEnd, DragState{
			StartX: startX, StartY: startY,
			X: x, Y: y,
			DeltaX: x - lastX, DeltaY: y - lastY,
			Forced: forced,
		})
	} else if !forced {
		d.bus.Emit(EventClick, DragState{
			StartX: startX, StartY: startY,
			X: x, Y: y,
		})
	}
}

// syncStep runs every tick while dragging. When camera motion (auto-pan, an
// animated scroll, a zoom) shifted the world under the still pointer, it
// emits a synthetic drag-move whose delta is the shift scaled to screen
// units, so handlers convert every drag delta the same way: divide by zoom.
func (d *DragController) syncStep(dt float64) {
	wx, wy := d.camera.ScreenToWorld(d.lastX, d.lastY)
	dx, dy := wx-d.worldX, wy-d.worldY
	if dx == 0 && dy == 0 {
		return
	}
	d.worldX, d.worldY = wx, wy
	zoom := d.camera.Zoom()
	d.bus.Emit(EventDragMove, DragState{
		StartX: d.startX, StartY: d.startY,
		X: d.lastX, Y: d.lastY,
		DeltaX: dx * zoom, DeltaY: dy * zoom,
		Synthetic: true,
	})
}

// updateAutoPan starts, retargets, or stops camera auto-panning based on how
// close the pointer is to the viewport edges. Without a laid-out viewport
// there is no edge band, so nothing pans.
func (d *DragController) updateAutoPan(x, y float64) {
	w, h := d.camera.Viewport()
	if w <= 0 || h <= 0 {
		return
	}
	margin := d.settings.AutoPanMargin
	speed := d.settings.AutoPanSpeed

	var vx, vy float64
	switch {
	case x < margin:
		vx = -speed
	case x > w-margin:
		vx = speed
	}
	switch {
	case y < margin:
		vy = -speed
	case y > h-margin:
		vy = speed
	}
	d.camera.AutoPan(vx, vy)
}
