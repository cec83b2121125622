package alder

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// game adapts a Graph to the ebiten.Game interface.
type game struct {
	graph *Graph
}

func (gm *game) Update() error {
	if gm.graph.Destroyed() {
		return ebiten.Termination
	}
	gm.graph.Update()
	return nil
}

func (gm *game) Draw(screen *ebiten.Image) {
	gm.graph.Draw(screen)
}

func (gm *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return gm.graph.Layout(outsideWidth, outsideHeight)
}

// Run opens a resizable window and drives the graph until the window closes
// or the graph is destroyed. For full control over the game loop, implement
// ebiten.Game yourself and call Graph.Update, Graph.Draw, and Graph.Layout
// directly.
func Run(graph *Graph, cfg RunConfig) error {
	if cfg.Title == "" {
		cfg.Title = "alder"
	}
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if cfg.ShowFPS {
		graph.AddLayer("fps", func(ctx *Context) TreeNode {
			return NewFPSOverlay()
		})
	}
	return ebiten.RunGame(&game{graph: graph})
}
