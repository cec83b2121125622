// Stress spawns ten thousand block components and moves every one of them
// each tick through the batched props path, so each frame commits ten
// thousand single-slot batches before rendering. Drag to pan, zoom with the
// mouse wheel, and watch the FPS overlay to gauge throughput on your
// machine. No external assets are required.
package main

import (
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/alder"
)

const (
	windowTitle = "Alder — 10k Block Stress"
	showFPS     = true
	screenW     = 1280
	screenH     = 720
	blockCount  = 10000
	worldW      = 4000.0
	worldH      = 3000.0
	blockSize   = 10.0
	maxSpeed    = 120.0
)

type fieldProps struct{}

type fieldState struct{}

type blockProps struct {
	x, y float64
	tint alder.Color
}

type blockState struct{}

// mover pairs a block component with its velocity and bounces it around the
// world bounds.
type mover struct {
	c      *alder.Component[blockProps, blockState]
	vx, vy float64
}

func (m *mover) step(dt float64) {
	p := m.c.Props()
	x := p.x + m.vx*dt
	y := p.y + m.vy*dt

	if x < 0 || x+blockSize > worldW {
		m.vx = -m.vx
		x = p.x
	}
	if y < 0 || y+blockSize > worldH {
		m.vy = -m.vy
		y = p.y
	}

	m.c.SetProps(func(bp *blockProps) {
		bp.x = x
		bp.y = y
	})
}

func main() {
	graph := alder.NewGraph()
	cam := graph.Camera()

	var movers []*mover

	graph.AddLayer("field", func(ctx *alder.Context) alder.TreeNode {
		return alder.NewComponent("field", fieldProps{}, alder.Hooks[fieldProps, fieldState]{
			Children: func(c *alder.Component[fieldProps, fieldState]) []alder.TreeNode {
				nodes := make([]alder.TreeNode, 0, blockCount)
				for i := 0; i < blockCount; i++ {
					m := newMover(ctx)
					movers = append(movers, m)
					nodes = append(nodes, m.c)
				}
				return nodes
			},
		})
	})

	// Advance every block once per tick.
	graph.Scheduler().Add(alder.UpdaterFunc(func(dt float64) {
		for _, m := range movers {
			m.step(dt)
		}
	}), alder.PriorityMedium)

	// Drag pans, wheel zooms, same as the basic example.
	graph.Bus().On(alder.EventDragMove, func(args ...any) {
		d := args[0].(alder.DragState)
		if d.Synthetic {
			return
		}
		cam.MoveBy(-d.DeltaX/cam.Zoom(), -d.DeltaY/cam.Zoom())
	})
	graph.Scheduler().Add(alder.UpdaterFunc(func(dt float64) {
		_, wheelY := ebiten.Wheel()
		if wheelY == 0 {
			return
		}
		mx, my := ebiten.CursorPosition()
		cam.ZoomAt(cam.Zoom()*(1+wheelY*0.1), float64(mx), float64(my))
	}), alder.PriorityHighest)

	cam.SetPosition((worldW-screenW)/2, (worldH-screenH)/2)

	if err := alder.Run(graph, alder.RunConfig{
		Title:   windowTitle,
		Width:   screenW,
		Height:  screenH,
		ShowFPS: showFPS,
	}); err != nil {
		log.Fatal(err)
	}
}

// newMover creates one block component at a random position with a random
// velocity and tint.
func newMover(ctx *alder.Context) *mover {
	props := blockProps{
		x: rand.Float64() * (worldW - blockSize),
		y: rand.Float64() * (worldH - blockSize),
		tint: alder.Color{
			R: 0.3 + rand.Float64()*0.7,
			G: 0.3 + rand.Float64()*0.7,
			B: 0.3 + rand.Float64()*0.7,
			A: 1,
		},
	}
	c := alder.NewComponent("block", props, alder.Hooks[blockProps, blockState]{
		Render: func(c *alder.Component[blockProps, blockState]) {
			target := ctx.Surface().Target
			if target == nil {
				return
			}
			p := c.Props()
			cam := ctx.Camera
			world := alder.Rect{X: p.x, Y: p.y, Width: blockSize, Height: blockSize}
			if !world.Intersects(cam.VisibleBounds()) {
				return
			}
			zoom := cam.Zoom()
			sx, sy := cam.WorldToScreen(p.x, p.y)
			alder.FillRect(target, alder.Rect{
				X: sx, Y: sy,
				Width:  blockSize * zoom,
				Height: blockSize * zoom,
			}, p.tint)
		},
	})
	return &mover{
		c:  c,
		vx: (rand.Float64()*2 - 1) * maxSpeed,
		vy: (rand.Float64()*2 - 1) * maxSpeed,
	}
}
