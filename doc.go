// Package alder is a retained-mode diagram engine for [Ebitengine].
//
// Alder provides the component lifecycle, priority scheduler, event bus,
// camera, drag interaction, and selection model that a node-link diagram
// editor needs. Drawing stays in the application's hands: components paint
// onto their layer's surface from their Render hook, using whatever ebiten
// calls they like.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	graph := alder.NewGraph()
//	graph.AddLayer("blocks", func(ctx *alder.Context) alder.TreeNode {
//		return newBlocksRoot(ctx)
//	})
//	alder.Run(graph, alder.RunConfig{
//		Title: "My Editor", Width: 1280, Height: 720,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Graph.Update], [Graph.Draw], and [Graph.Layout] directly.
//
// # Components
//
// Every tree node is a [Component] with typed props, typed state, and a set
// of lifecycle [Hooks]. Mutations go through [Component.SetProps] and
// [Component.SetState], which stage into a single pending buffer per slot
// and commit at the start of the next update cycle; the change hooks run
// once per batch, just before the commit lands. A component re-renders
// while its ShouldRender flag is armed and rebuilds its child list when
// ShouldUpdateChildren is set; there is no diffing, so the Children hook
// returns fresh nodes each time.
//
//	blocks := alder.NewComponent("blocks", blocksProps{}, alder.Hooks[blocksProps, blocksState]{
//		Render: func(c *alder.Component[blocksProps, blocksState]) {
//			// paint onto c.Context().Surface().Target
//		},
//	})
//
// # Key features
//
// Alder includes a camera with animated scroll, zoom about a point, and
// drag-edge auto-panning; a drag lifecycle with a dead zone and synthesized
// moves while the camera slides under a still pointer; a selection set with
// delta events; YAML settings and themes; scripted interaction playback for
// automated testing; tweens (via [gween]); and ECS integration (via the
// [Donburi] adapter in alder/ecs).
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package alder
