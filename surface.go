package alder

import "github.com/hajimehoshi/ebiten/v2"

// Surface is the drawing target a layer renders into. A surface belongs to
// at most one layer at a time; Layer.Attach claims it and Layer.Detach
// releases it.
type Surface struct {
	// Target is the image the layer's render hooks draw into. For layers
	// added through Graph.AddLayer it is rebound to the screen every frame,
	// so it is nil until the first Draw.
	Target *ebiten.Image
	// W and H are the drawable size in screen pixels, kept in sync with the
	// window by Graph.Layout.
	W, H int

	owner *Layer
	// screen marks surfaces created by Graph.AddLayer; Draw rebinds their
	// Target to the real screen each frame and Layout resizes them.
	screen bool
}

// NewSurface wraps target as a surface of the given size. Pass a nil target
// for a surface that is bound to a real image later.
func NewSurface(target *ebiten.Image, w, h int) *Surface {
	return &Surface{Target: target, W: w, H: h}
}

// Owner returns the layer this surface is attached to, or nil.
func (s *Surface) Owner() *Layer { return s.owner }
