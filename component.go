package alder

import "fmt"

// --- ID counter ---

// componentIDCounter is a plain counter (no atomic — alder is single-threaded).
var componentIDCounter uint32

func nextComponentID() uint32 {
	componentIDCounter++
	return componentIDCounter
}

// --- TreeNode ---

// TreeNode is the type-erased view of a component held by parents, layers,
// and traversal helpers. Concrete nodes are always *Component instantiations;
// the unexported methods keep the lifecycle contract inside the package.
type TreeNode interface {
	// Iterate runs one update cycle and reports whether the subtree below
	// this node should be iterated too.
	Iterate() bool
	// ChildNodes returns the current child list. The returned slice MUST
	// NOT be mutated by the caller. Slots may be nil for children that
	// unmounted outside a recomputation; they are skipped during traversal
	// and dropped at the next recomputation.
	ChildNodes() []TreeNode
	// Unmount permanently removes the node and its subtree from the tree.
	Unmount()
	// IsUnmounted reports whether Unmount has run.
	IsUnmounted() bool
	// Context returns the tree services handed down from the owning layer.
	Context() *Context
	// Parent returns the owning node, or nil for a root.
	Parent() TreeNode

	bind(parent TreeNode, ctx *Context)
	removeChild(child TreeNode)
	nodeName() string
}

// IterateTree runs one update cycle over the subtree rooted at n, depth
// first. A node's children are visited only when its Iterate reports that
// the subtree is live. Nil nodes and nil child slots are skipped.
func IterateTree(n TreeNode) {
	if n == nil || !n.Iterate() {
		return
	}
	children := n.ChildNodes()
	for i := 0; i < len(children); i++ {
		if children[i] != nil {
			IterateTree(children[i])
		}
	}
}

// --- Hooks ---

// Hooks is the set of lifecycle callbacks a component is built from. Every
// field is optional; a nil hook is skipped. Hooks receive the component
// itself, so closures do not need to capture it.
//
// Per update cycle the engine calls, in order: PropsChanged/StateChanged
// (only when a batch is pending), WillIterate, then either
// WillRender/Render/DidRender or WillNotRender, then (only when a child
// recomputation is due) WillUpdateChildren, Children, DidUpdateChildren,
// and finally DidIterate.
type Hooks[P, S any] struct {
	// PropsChanged runs just before a pending props batch commits. The
	// component still reports the old props; next carries the merged
	// values about to be applied.
	PropsChanged func(c *Component[P, S], next P)
	// StateChanged is the state counterpart of PropsChanged. Props commit
	// first, so state hooks already see the new props.
	StateChanged func(c *Component[P, S], next S)

	WillIterate   func(c *Component[P, S])
	WillRender    func(c *Component[P, S])
	Render        func(c *Component[P, S])
	DidRender     func(c *Component[P, S])
	WillNotRender func(c *Component[P, S])

	WillUpdateChildren func(c *Component[P, S])
	// Children produces the full child list for this component. There is
	// no diffing: every recomputation unmounts all current children and
	// mounts the returned nodes, which must be freshly constructed and
	// parentless.
	Children          func(c *Component[P, S]) []TreeNode
	DidUpdateChildren func(c *Component[P, S])

	DidIterate func(c *Component[P, S])
	// Unmount runs once while the component is being removed, before its
	// registered disposers.
	Unmount func(c *Component[P, S])
}

// --- Component ---

// Component is a render-tree node with typed props and state. Props flow in
// from the owner; state is private to the component. Both are mutated through
// single-slot batches (SetProps, SetState) that commit at the start of the
// next update cycle, never mid-cycle.
//
// The Should* flags are plain fields on purpose: hooks flip them directly to
// steer the current and future cycles, the same way scene-graph nodes expose
// Visible and Renderable knobs.
type Component[P, S any] struct {
	// Identity
	ID   uint32
	Name string

	// ShouldRender gates the render phase of the next cycle. Staging a
	// mutation arms it; hooks may veto by clearing it before the render
	// phase runs.
	ShouldRender bool
	// ShouldRenderChildren is returned from Iterate to tell the driver
	// whether to descend into this component's subtree.
	ShouldRenderChildren bool
	// ShouldUpdateChildren requests a one-shot child recomputation. The
	// engine clears it at the start of the children phase, so a hook that
	// sets it during that phase schedules another recomputation rather
	// than extending the current one.
	ShouldUpdateChildren bool

	hooks Hooks[P, S]

	props        P
	state        S
	pendingProps *P
	pendingState *S

	// Hierarchy
	parent   TreeNode
	children []TreeNode
	ctx      *Context

	firstIterate        bool
	firstRender         bool
	firstUpdateChildren bool
	unmounted           bool
	disposers           []func()
}

// NewComponent creates a mounted component with the given initial props.
// State starts as the zero value of S. All Should* flags and first-cycle
// markers start true, so the first Iterate renders and computes children
// unconditionally.
func NewComponent[P, S any](name string, props P, hooks Hooks[P, S]) *Component[P, S] {
	return &Component[P, S]{
		ID:                   nextComponentID(),
		Name:                 name,
		ShouldRender:         true,
		ShouldRenderChildren: true,
		ShouldUpdateChildren: true,
		hooks:                hooks,
		props:                props,
		firstIterate:         true,
		firstRender:          true,
		firstUpdateChildren:  true,
	}
}

// Props returns the committed props. Pending batches are not visible here
// until they commit at the start of the next cycle.
func (c *Component[P, S]) Props() P { return c.props }

// State returns the committed state.
func (c *Component[P, S]) State() S { return c.state }

// SetProps stages a props mutation. apply receives the pending buffer, which
// starts as a copy of the committed props, so callers only touch the fields
// they mean to change. Repeated calls in the same batch window apply to the
// same buffer, last write wins; only the call that opens the buffer arms
// ShouldRender. Ignored after unmount.
func (c *Component[P, S]) SetProps(apply func(*P)) {
	if apply == nil {
		return
	}
	if c.unmounted {
		if globalDebug {
			debugCheckUnmounted(c, "SetProps")
		}
		return
	}
	if c.pendingProps == nil {
		next := c.props
		c.pendingProps = &next
		c.ShouldRender = true
	}
	apply(c.pendingProps)
}

// SetState stages a state mutation with the same batching rules as SetProps.
func (c *Component[P, S]) SetState(apply func(*S)) {
	if apply == nil {
		return
	}
	if c.unmounted {
		if globalDebug {
			debugCheckUnmounted(c, "SetState")
		}
		return
	}
	if c.pendingState == nil {
		next := c.state
		c.pendingState = &next
		c.ShouldRender = true
	}
	apply(c.pendingState)
}

// checkData commits pending batches: props first, then state. The change
// hooks run before their commit, exactly once per batch regardless of how
// many Set calls fed it. The buffer stays live while the hook runs, so a
// Set call made inside the hook folds into the same commit.
func (c *Component[P, S]) checkData() {
	if c.pendingProps != nil {
		if c.hooks.PropsChanged != nil {
			c.hooks.PropsChanged(c, *c.pendingProps)
		}
		c.props = *c.pendingProps
		c.pendingProps = nil
	}
	if c.pendingState != nil {
		if c.hooks.StateChanged != nil {
			c.hooks.StateChanged(c, *c.pendingState)
		}
		c.state = *c.pendingState
		c.pendingState = nil
	}
}

// FirstIterate reports whether the component has not yet completed an update
// cycle. True throughout the whole first Iterate, including DidIterate.
func (c *Component[P, S]) FirstIterate() bool { return c.firstIterate }

// FirstRender reports whether the component has not yet completed a render
// phase. Unlike FirstIterate this stays true across cycles that skip
// rendering.
func (c *Component[P, S]) FirstRender() bool { return c.firstRender }

// FirstUpdateChildren reports whether the component has not yet completed a
// child recomputation.
func (c *Component[P, S]) FirstUpdateChildren() bool { return c.firstUpdateChildren }

// Context returns the tree services this component was mounted with, or nil
// for a node not yet adopted into a layer's tree.
func (c *Component[P, S]) Context() *Context { return c.ctx }

// Parent returns the owning node, or nil for a root.
func (c *Component[P, S]) Parent() TreeNode { return c.parent }

// ChildNodes returns the child list. The returned slice MUST NOT be mutated
// by the caller and may contain nil slots (see TreeNode.ChildNodes).
func (c *Component[P, S]) ChildNodes() []TreeNode { return c.children }

// NumChildren returns the number of live children, skipping cleared slots.
func (c *Component[P, S]) NumChildren() int {
	n := 0
	for _, child := range c.children {
		if child != nil {
			n++
		}
	}
	return n
}

// --- Update cycle ---

// Iterate runs one update cycle: commit pending batches, run the render
// phase if requested, recompute children if requested, and report whether
// the driver should descend into the subtree. Calling Iterate on an
// unmounted component is a no-op that reports false.
func (c *Component[P, S]) Iterate() bool {
	if c.unmounted {
		return false
	}
	c.checkData()
	if c.hooks.WillIterate != nil {
		c.hooks.WillIterate(c)
	}

	if c.ShouldRender {
		if c.hooks.WillRender != nil {
			c.hooks.WillRender(c)
		}
		if c.hooks.Render != nil {
			c.hooks.Render(c)
		}
		if c.hooks.DidRender != nil {
			c.hooks.DidRender(c)
		}
		c.firstRender = false
	} else if c.hooks.WillNotRender != nil {
		c.hooks.WillNotRender(c)
	}

	if c.ShouldUpdateChildren {
		// Clear before the hooks run: setting the flag from inside this
		// phase requests a fresh recomputation next cycle.
		c.ShouldUpdateChildren = false
		if c.hooks.WillUpdateChildren != nil {
			c.hooks.WillUpdateChildren(c)
		}
		c.updateChildren()
		if c.hooks.DidUpdateChildren != nil {
			c.hooks.DidUpdateChildren(c)
		}
		c.firstUpdateChildren = false
	}

	if c.hooks.DidIterate != nil {
		c.hooks.DidIterate(c)
	}
	c.firstIterate = false
	return c.ShouldRenderChildren
}

// updateChildren replaces the whole child list: every current child is
// unmounted and every node returned by the Children hook is adopted. There
// is deliberately no diffing, so the hook must return fresh nodes each time.
func (c *Component[P, S]) updateChildren() {
	var next []TreeNode
	if c.hooks.Children != nil {
		next = c.hooks.Children(c)
	}

	old := c.children
	c.children = nil
	for _, child := range old {
		if child != nil {
			child.Unmount()
		}
	}

	for _, child := range next {
		if child == nil {
			panic(fmt.Sprintf("alder: children of %q contain a nil node", c.Name))
		}
		if child.IsUnmounted() {
			panic(fmt.Sprintf("alder: children of %q contain an unmounted node %q", c.Name, child.nodeName()))
		}
		if child.Parent() != nil {
			panic(fmt.Sprintf("alder: children of %q contain node %q which already has a parent", c.Name, child.nodeName()))
		}
		if isAncestorNode(child, c) {
			panic(fmt.Sprintf("alder: children of %q would create a cycle", c.Name))
		}
		child.bind(c, c.ctx)
	}
	c.children = next
	if globalDebug {
		debugCheckChildCount(c.Name, len(c.children))
		if len(c.children) > 0 {
			// Siblings share a depth; checking one covers the batch.
			debugCheckTreeDepth(c.children[0])
		}
	}
}

// --- Unmount ---

// Unmount permanently removes the component: children are unmounted first,
// then the Unmount hook runs, then disposers run in reverse registration
// order, and finally the component detaches from its parent. All further
// operations on the component are no-ops. Unmount is idempotent.
func (c *Component[P, S]) Unmount() {
	if c.unmounted {
		return
	}
	c.unmounted = true

	old := c.children
	c.children = nil
	for _, child := range old {
		if child != nil {
			child.Unmount()
		}
	}

	if c.hooks.Unmount != nil {
		c.hooks.Unmount(c)
	}
	for i := len(c.disposers) - 1; i >= 0; i-- {
		c.disposers[i]()
	}
	c.disposers = nil

	if c.parent != nil {
		c.parent.removeChild(c)
		c.parent = nil
	}
	c.pendingProps = nil
	c.pendingState = nil
	c.hooks = Hooks[P, S]{}
	c.ctx = nil
}

// IsUnmounted reports whether Unmount has run.
func (c *Component[P, S]) IsUnmounted() bool { return c.unmounted }

// OnUnmount registers fn to run during Unmount, typically to release
// subscriptions and scheduler entries. Disposers run in reverse registration
// order. Registering on an already-unmounted component runs fn immediately.
func (c *Component[P, S]) OnUnmount(fn func()) {
	if fn == nil {
		return
	}
	if c.unmounted {
		fn()
		return
	}
	c.disposers = append(c.disposers, fn)
}

// --- sealed TreeNode methods ---

func (c *Component[P, S]) bind(parent TreeNode, ctx *Context) {
	c.parent = parent
	c.ctx = ctx
}

// removeChild clears the child's slot without splicing, so traversal
// snapshots stay valid when a node unmounts mid-iteration. The hole is
// dropped at the next recomputation.
func (c *Component[P, S]) removeChild(child TreeNode) {
	for i, cur := range c.children {
		if cur == child {
			c.children[i] = nil
			return
		}
	}
}

func (c *Component[P, S]) nodeName() string { return c.Name }

// --- Helpers ---

// isAncestorNode reports whether candidate is node or an ancestor of node.
func isAncestorNode(candidate, node TreeNode) bool {
	for p := node; p != nil; p = p.Parent() {
		if p == candidate {
			return true
		}
	}
	return false
}
