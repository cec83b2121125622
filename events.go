package alder

// GraphEvent identifies a kind of graph-level event on the shared bus.
// Components and application code subscribe through Context.Bus.
type GraphEvent string

const (
	EventCameraChange    GraphEvent = "camera-change"    // camera position, zoom, or viewport changed
	EventThemeChange     GraphEvent = "theme-change"     // active theme replaced
	EventSelectionChange GraphEvent = "selection-change" // selection set mutated
	EventClick           GraphEvent = "click"            // press and release without leaving the dead zone
	EventDragStart       GraphEvent = "drag-start"       // movement exceeded the drag dead zone
	EventDragMove        GraphEvent = "drag-move"        // pointer moved (or camera moved under it) while dragging
	EventDragEnd         GraphEvent = "drag-end"         // drag finished, normally or by force
)

// CameraState is the payload of EventCameraChange and the value reported by
// Camera.State.
type CameraState struct {
	X, Y           float64
	Zoom           float64
	ViewportWidth  float64
	ViewportHeight float64
}

// DragState is the payload of EventClick, EventDragStart, EventDragMove, and
// EventDragEnd. Positions and deltas are in screen pixels; divide a delta by
// the camera zoom to move a world-space payload. Synthetic moves already
// scale camera motion to screen units, so the conversion is the same for
// every drag-move.
type DragState struct {
	StartX, StartY float64
	X, Y           float64
	DeltaX, DeltaY float64

	// Synthetic marks moves synthesized from camera motion while the
	// pointer itself is stationary.
	Synthetic bool
	// Forced marks a drag-end produced by ForceEnd rather than a pointer
	// release.
	Forced bool
}

// SelectionState is the payload of EventSelectionChange. All three slices
// are sorted and owned by the receiver.
type SelectionState struct {
	Added   []string
	Removed []string
	Current []string
}
