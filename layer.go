package alder

import "fmt"

// Layer binds a component tree to a drawing surface. The tree is built by
// the layer's build function when a surface is attached and unmounted when
// it detaches, exactly once per attach/detach pair. Layers are created
// through Graph.AddLayer, which wires the context and a screen-bound
// surface.
//
// Misattachment is a configuration error, not a recoverable condition:
// attaching a nil surface, attaching while already attached to a different
// surface, or claiming a surface another layer owns all panic. Re-attaching
// the current surface is an idempotent no-op.
type Layer struct {
	name  string
	build func(*Context) TreeNode
	ctx   *Context

	root    TreeNode
	surface *Surface
}

func newLayer(ctx *Context, name string, build func(*Context) TreeNode) *Layer {
	l := &Layer{name: name, build: build, ctx: ctx}
	if ctx != nil {
		ctx.Layer = l
	}
	return l
}

// Name returns the layer name given to Graph.AddLayer.
func (l *Layer) Name() string { return l.name }

// Root returns the layer's root node, or nil while detached.
func (l *Layer) Root() TreeNode { return l.root }

// Surface returns the attached surface, or nil.
func (l *Layer) Surface() *Surface { return l.surface }

// Attached reports whether the layer currently has a surface.
func (l *Layer) Attached() bool { return l.surface != nil }

// Attach claims s and builds the layer's tree. Each successful Attach mounts
// a fresh root; a layer detached and re-attached does not revive its old
// tree.
func (l *Layer) Attach(s *Surface) {
	if s == nil {
		panic(fmt.Sprintf("alder: layer %q: Attach(nil)", l.name))
	}
	if l.surface == s {
		return
	}
	if l.surface != nil {
		panic(fmt.Sprintf("alder: layer %q is already attached; Detach first", l.name))
	}
	if s.owner != nil {
		panic(fmt.Sprintf("alder: surface is already owned by layer %q", s.owner.name))
	}
	s.owner = l
	l.surface = s
	if l.build != nil {
		l.root = l.build(l.ctx)
		if l.root != nil {
			l.root.bind(nil, l.ctx)
		}
	}
}

// Detach releases the surface and unmounts the tree. Detaching a detached
// layer is a no-op.
func (l *Layer) Detach() {
	if l.surface == nil {
		return
	}
	l.surface.owner = nil
	l.surface = nil
	if l.root != nil {
		l.root.Unmount()
		l.root = nil
	}
}

// Iterate runs one update cycle over the layer's tree. A detached layer is
// skipped.
func (l *Layer) Iterate() {
	if l.surface == nil || l.root == nil {
		return
	}
	IterateTree(l.root)
}
