package alder

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

type fpsProps struct {
	X, Y int
}

type fpsState struct {
	text string
	last time.Time
}

// NewFPSOverlay creates a component that prints the current FPS and TPS onto
// its layer's surface. The text refreshes every ~0.5 seconds; the component
// leaves ShouldRender armed so it repaints every frame over the cleared
// screen. Mount it on its own layer above the content:
//
//	g.AddLayer("fps", func(ctx *alder.Context) alder.TreeNode {
//		return alder.NewFPSOverlay()
//	})
func NewFPSOverlay() TreeNode {
	return NewComponent("fps-overlay", fpsProps{X: 8, Y: 8}, Hooks[fpsProps, fpsState]{
		WillIterate: func(c *Component[fpsProps, fpsState]) {
			if time.Since(c.State().last) < 500*time.Millisecond {
				return
			}
			text := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
			c.SetState(func(s *fpsState) {
				s.text = text
				s.last = time.Now()
			})
		},
		Render: func(c *Component[fpsProps, fpsState]) {
			ctx := c.Context()
			if ctx == nil {
				return
			}
			s := ctx.Surface()
			if s == nil || s.Target == nil {
				return
			}
			ebitenutil.DebugPrintAt(s.Target, c.State().text, c.Props().X, c.Props().Y)
		},
	})
}
