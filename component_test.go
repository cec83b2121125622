package alder

import "testing"

type testProps struct {
	Label string
	Count int
}

type testState struct {
	Clicks int
	Open   bool
}

type testComponent = Component[testProps, testState]

func TestNewComponentDefaults(t *testing.T) {
	c := NewComponent("blocks", testProps{Label: "a"}, Hooks[testProps, testState]{})
	if c.ID == 0 {
		t.Error("ID should be assigned")
	}
	if c.Name != "blocks" {
		t.Errorf("Name = %q, want %q", c.Name, "blocks")
	}
	if !c.ShouldRender || !c.ShouldRenderChildren || !c.ShouldUpdateChildren {
		t.Error("all Should* flags should start true")
	}
	if !c.FirstIterate() || !c.FirstRender() || !c.FirstUpdateChildren() {
		t.Error("all first-cycle markers should start true")
	}
	if c.Props().Label != "a" {
		t.Errorf("Props().Label = %q, want %q", c.Props().Label, "a")
	}
	if c.State() != (testState{}) {
		t.Errorf("State() = %+v, want zero value", c.State())
	}
	if c.IsUnmounted() {
		t.Error("new component should not be unmounted")
	}
}

func TestSetPropsBatchesIntoOneCommit(t *testing.T) {
	changed := 0
	var seen testProps
	c := NewComponent("c", testProps{Label: "old", Count: 1}, Hooks[testProps, testState]{
		PropsChanged: func(c *testComponent, next testProps) {
			changed++
			seen = next
			// The component still reports the old props mid-hook.
			if c.Props().Label != "old" {
				t.Errorf("Props() during hook = %q, want %q", c.Props().Label, "old")
			}
		},
	})

	c.SetProps(func(p *testProps) { p.Label = "new" })
	c.SetProps(func(p *testProps) { p.Count = 7 })

	// Nothing commits until the next cycle.
	if c.Props().Label != "old" || c.Props().Count != 1 {
		t.Fatalf("Props() = %+v before Iterate, want unchanged", c.Props())
	}

	c.Iterate()

	if changed != 1 {
		t.Errorf("PropsChanged ran %d times, want 1", changed)
	}
	if seen.Label != "new" || seen.Count != 7 {
		t.Errorf("hook saw %+v, want merged {new 7}", seen)
	}
	if c.Props().Label != "new" || c.Props().Count != 7 {
		t.Errorf("Props() = %+v after Iterate, want {new 7}", c.Props())
	}

	// A second cycle with no staged batch runs no change hook.
	c.Iterate()
	if changed != 1 {
		t.Errorf("PropsChanged ran %d times after idle cycle, want 1", changed)
	}
}

func TestSetPropsLastWriteWins(t *testing.T) {
	c := NewComponent("c", testProps{}, Hooks[testProps, testState]{})
	c.SetProps(func(p *testProps) { p.Count = 1 })
	c.SetProps(func(p *testProps) { p.Count = 2 })
	c.Iterate()
	if c.Props().Count != 2 {
		t.Errorf("Count = %d, want 2", c.Props().Count)
	}
}

func TestPropsCommitBeforeState(t *testing.T) {
	var order []string
	c := NewComponent("c", testProps{}, Hooks[testProps, testState]{
		PropsChanged: func(c *testComponent, next testProps) {
			order = append(order, "props")
		},
		StateChanged: func(c *testComponent, next testState) {
			order = append(order, "state")
			// Props committed first, so the state hook sees them.
			if c.Props().Count != 5 {
				t.Errorf("Props().Count during StateChanged = %d, want 5", c.Props().Count)
			}
		},
	})

	c.SetState(func(s *testState) { s.Clicks = 1 })
	c.SetProps(func(p *testProps) { p.Count = 5 })
	c.Iterate()

	if len(order) != 2 || order[0] != "props" || order[1] != "state" {
		t.Errorf("order = %v, want [props state]", order)
	}
}

func TestSetDuringChangeHookFoldsIntoCommit(t *testing.T) {
	changed := 0
	c := NewComponent("c", testProps{}, Hooks[testProps, testState]{
		PropsChanged: func(c *testComponent, next testProps) {
			changed++
			if next.Label == "outer" {
				c.SetProps(func(p *testProps) { p.Count = 9 })
			}
		},
	})

	c.SetProps(func(p *testProps) { p.Label = "outer" })
	c.Iterate()

	// The inner SetProps landed in the same commit and did not re-run the hook.
	if changed != 1 {
		t.Errorf("PropsChanged ran %d times, want 1", changed)
	}
	if c.Props().Label != "outer" || c.Props().Count != 9 {
		t.Errorf("Props() = %+v, want {outer 9}", c.Props())
	}
}

func TestHookOrderFullCycle(t *testing.T) {
	var order []string
	record := func(name string) func(*testComponent) {
		return func(*testComponent) { order = append(order, name) }
	}
	c := NewComponent("c", testProps{}, Hooks[testProps, testState]{
		PropsChanged:       func(*testComponent, testProps) { order = append(order, "props-changed") },
		StateChanged:       func(*testComponent, testState) { order = append(order, "state-changed") },
		WillIterate:        record("will-iterate"),
		WillRender:         record("will-render"),
		Render:             record("render"),
		DidRender:          record("did-render"),
		WillUpdateChildren: record("will-update-children"),
		Children: func(c *testComponent) []TreeNode {
			order = append(order, "children")
			return nil
		},
		DidUpdateChildren: record("did-update-children"),
		DidIterate:        record("did-iterate"),
	})

	c.SetProps(func(p *testProps) { p.Count = 1 })
	c.SetState(func(s *testState) { s.Clicks = 1 })
	c.Iterate()

	want := []string{
		"props-changed", "state-changed",
		"will-iterate",
		"will-render", "render", "did-render",
		"will-update-children", "children", "did-update-children",
		"did-iterate",
	}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order[%d] = %q, want %q (full: %v)", i, order[i], want[i], order)
		}
	}
}

func TestRenderVeto(t *testing.T) {
	var order []string
	c := NewComponent("c", testProps{}, Hooks[testProps, testState]{
		WillIterate: func(c *testComponent) {
			order = append(order, "will-iterate")
			c.ShouldRender = false
		},
		WillRender:    func(*testComponent) { order = append(order, "will-render") },
		Render:        func(*testComponent) { order = append(order, "render") },
		DidRender:     func(*testComponent) { order = append(order, "did-render") },
		WillNotRender: func(*testComponent) { order = append(order, "will-not-render") },
	})

	c.Iterate()
	if len(order) != 2 || order[0] != "will-iterate" || order[1] != "will-not-render" {
		t.Errorf("order = %v, want [will-iterate will-not-render]", order)
	}
	// A skipped render leaves the first-render marker set.
	if !c.FirstRender() {
		t.Error("FirstRender should stay true while rendering is vetoed")
	}

	// Staging a mutation re-arms rendering.
	c.SetProps(func(p *testProps) { p.Count = 1 })
	if !c.ShouldRender {
		t.Error("SetProps should re-arm ShouldRender")
	}
}

func TestRenderRepeatsWhileArmed(t *testing.T) {
	renders := 0
	c := NewComponent("c", testProps{}, Hooks[testProps, testState]{
		Render: func(*testComponent) { renders++ },
	})

	// ShouldRender is not auto-cleared: the component redraws every cycle
	// until a hook clears the flag.
	c.Iterate()
	c.Iterate()
	c.Iterate()
	if renders != 3 {
		t.Errorf("renders = %d, want 3", renders)
	}
}

func TestIterateReturnsShouldRenderChildren(t *testing.T) {
	c := NewComponent("c", testProps{}, Hooks[testProps, testState]{})
	if !c.Iterate() {
		t.Error("Iterate should report true by default")
	}
	c.ShouldRenderChildren = false
	if c.Iterate() {
		t.Error("Iterate should report false after the flag is cleared")
	}
}

func TestFirstIterateLifetime(t *testing.T) {
	var during []bool
	c := NewComponent("c", testProps{}, Hooks[testProps, testState]{
		WillIterate: func(c *testComponent) { during = append(during, c.FirstIterate()) },
		DidIterate:  func(c *testComponent) { during = append(during, c.FirstIterate()) },
	})

	c.Iterate()
	// The marker holds through the whole first cycle, including DidIterate.
	if len(during) != 2 || !during[0] || !during[1] {
		t.Errorf("first cycle observations = %v, want [true true]", during)
	}
	if c.FirstIterate() {
		t.Error("FirstIterate should be false after the first cycle")
	}

	during = during[:0]
	c.Iterate()
	if len(during) != 2 || during[0] || during[1] {
		t.Errorf("second cycle observations = %v, want [false false]", during)
	}
}

func TestFirstRenderClearsOnlyOnRender(t *testing.T) {
	c := NewComponent("c", testProps{}, Hooks[testProps, testState]{
		DidRender: func(c *testComponent) {
			if !c.FirstRender() {
				t.Error("FirstRender should still be true during the first render phase")
			}
		},
	})
	c.ShouldRender = false
	c.Iterate()
	if !c.FirstRender() {
		t.Fatal("FirstRender should survive a skipped render")
	}
	c.ShouldRender = true
	c.Iterate()
	if c.FirstRender() {
		t.Error("FirstRender should be false after the first completed render")
	}
}

func TestChildRecomputationIsEdgeTriggered(t *testing.T) {
	computes := 0
	c := NewComponent("c", testProps{}, Hooks[testProps, testState]{
		Children: func(c *testComponent) []TreeNode {
			computes++
			return nil
		},
	})

	c.Iterate() // initial recomputation (flag starts true)
	c.Iterate()
	c.Iterate()
	if computes != 1 {
		t.Fatalf("computes = %d after idle cycles, want 1", computes)
	}

	// Mutations alone do not recompute children.
	c.SetProps(func(p *testProps) { p.Count = 1 })
	c.Iterate()
	if computes != 1 {
		t.Fatalf("computes = %d after props-only cycle, want 1", computes)
	}

	c.ShouldUpdateChildren = true
	c.Iterate()
	if computes != 2 {
		t.Errorf("computes = %d after explicit request, want 2", computes)
	}
}

func TestChildRequestDuringChildrenPhase(t *testing.T) {
	computes := 0
	c := NewComponent("c", testProps{}, Hooks[testProps, testState]{
		Children: func(c *testComponent) []TreeNode {
			computes++
			if computes == 1 {
				// The flag was cleared before this hook ran, so setting it
				// schedules a second recomputation for the next cycle.
				c.ShouldUpdateChildren = true
			}
			return nil
		},
	})

	c.Iterate()
	if computes != 1 {
		t.Fatalf("computes = %d after first cycle, want 1", computes)
	}
	c.Iterate()
	if computes != 2 {
		t.Errorf("computes = %d after second cycle, want 2", computes)
	}
	c.Iterate()
	if computes != 2 {
		t.Errorf("computes = %d after third cycle, want 2 (request must not persist)", computes)
	}
}

func newLeaf(name string, onUnmount func()) *Component[testProps, testState] {
	return NewComponent(name, testProps{}, Hooks[testProps, testState]{
		Unmount: func(*testComponent) {
			if onUnmount != nil {
				onUnmount()
			}
		},
	})
}

func TestChildRecomputationReplacesAllChildren(t *testing.T) {
	var unmounted []string
	generation := 0
	c := NewComponent("parent", testProps{}, Hooks[testProps, testState]{
		Children: func(c *testComponent) []TreeNode {
			generation++
			a := newLeaf("a", func() { unmounted = append(unmounted, "a") })
			b := newLeaf("b", func() { unmounted = append(unmounted, "b") })
			if generation == 1 {
				return []TreeNode{a, b}
			}
			return []TreeNode{a}
		},
	})

	c.Iterate()
	first := c.ChildNodes()
	if len(first) != 2 {
		t.Fatalf("children = %d, want 2", len(first))
	}
	if first[0].Parent() != TreeNode(c) {
		t.Error("adopted child should have the parent set")
	}

	// A recomputation unmounts every old child; no diffing keeps any alive.
	c.ShouldUpdateChildren = true
	c.Iterate()

	if len(unmounted) != 2 {
		t.Fatalf("unmounted = %v, want both old children", unmounted)
	}
	if !first[0].IsUnmounted() || !first[1].IsUnmounted() {
		t.Error("old children should be unmounted")
	}
	second := c.ChildNodes()
	if len(second) != 1 || second[0].IsUnmounted() {
		t.Fatalf("new generation = %d live children, want 1", len(second))
	}
}

func TestChildrenAdoptionPanics(t *testing.T) {
	tests := []struct {
		name     string
		children func(parent *testComponent) []TreeNode
	}{
		{
			name: "nil child",
			children: func(*testComponent) []TreeNode {
				return []TreeNode{nil}
			},
		},
		{
			name: "unmounted child",
			children: func(*testComponent) []TreeNode {
				leaf := newLeaf("dead", nil)
				leaf.Unmount()
				return []TreeNode{leaf}
			},
		},
		{
			name: "already parented child",
			children: func(*testComponent) []TreeNode {
				leaf := newLeaf("shared", nil)
				other := NewComponent("other", testProps{}, Hooks[testProps, testState]{
					Children: func(*testComponent) []TreeNode { return []TreeNode{leaf} },
				})
				other.Iterate()
				return []TreeNode{leaf}
			},
		},
		{
			name: "duplicate child",
			children: func(*testComponent) []TreeNode {
				leaf := newLeaf("twice", nil)
				return []TreeNode{leaf, leaf}
			},
		},
		{
			name: "self as child",
			children: func(parent *testComponent) []TreeNode {
				return []TreeNode{parent}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("expected panic")
				}
			}()
			c := NewComponent("parent", testProps{}, Hooks[testProps, testState]{})
			c.hooks.Children = func(*testComponent) []TreeNode { return tt.children(c) }
			c.Iterate()
		})
	}
}

func TestUnmountDepthFirst(t *testing.T) {
	var order []string
	grandchild := newLeaf("grandchild", nil)
	grandchild.hooks.Unmount = func(*testComponent) { order = append(order, "grandchild") }
	child := NewComponent("child", testProps{}, Hooks[testProps, testState]{
		Children: func(*testComponent) []TreeNode { return []TreeNode{grandchild} },
		Unmount:  func(*testComponent) { order = append(order, "child") },
	})
	parent := NewComponent("parent", testProps{}, Hooks[testProps, testState]{
		Children: func(*testComponent) []TreeNode { return []TreeNode{child} },
		Unmount:  func(*testComponent) { order = append(order, "parent") },
	})

	// One pass mounts the whole chain: the parent's children phase runs
	// before the traversal descends, so each level is in place in time.
	IterateTree(parent)

	parent.Unmount()

	want := []string{"grandchild", "child", "parent"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
	if !grandchild.IsUnmounted() || !child.IsUnmounted() || !parent.IsUnmounted() {
		t.Error("whole subtree should be unmounted")
	}
}

func TestUnmountIdempotent(t *testing.T) {
	count := 0
	c := newLeaf("c", func() { count++ })
	c.Unmount()
	c.Unmount()
	if count != 1 {
		t.Errorf("unmount hook ran %d times, want 1", count)
	}
}

func TestUnmountDisposersRunInReverse(t *testing.T) {
	var order []string
	c := NewComponent("c", testProps{}, Hooks[testProps, testState]{
		Unmount: func(*testComponent) { order = append(order, "hook") },
	})
	c.OnUnmount(func() { order = append(order, "a") })
	c.OnUnmount(func() { order = append(order, "b") })
	c.OnUnmount(func() { order = append(order, "c") })

	c.Unmount()

	want := []string{"hook", "c", "b", "a"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestOnUnmountAfterUnmountRunsImmediately(t *testing.T) {
	c := newLeaf("c", nil)
	c.Unmount()
	ran := false
	c.OnUnmount(func() { ran = true })
	if !ran {
		t.Error("disposer registered after unmount should run immediately")
	}
}

func TestMutationAfterUnmountIgnored(t *testing.T) {
	hooks := 0
	c := NewComponent("c", testProps{Label: "kept"}, Hooks[testProps, testState]{
		PropsChanged: func(*testComponent, testProps) { hooks++ },
		Render:       func(*testComponent) { hooks++ },
	})
	c.Unmount()

	c.SetProps(func(p *testProps) { p.Label = "dropped" })
	c.SetState(func(s *testState) { s.Clicks = 1 })
	if c.Iterate() {
		t.Error("Iterate on an unmounted component should report false")
	}
	if hooks != 0 {
		t.Errorf("hooks ran %d times after unmount, want 0", hooks)
	}
	if c.Props().Label != "kept" {
		t.Errorf("Props().Label = %q, want %q", c.Props().Label, "kept")
	}
}

func TestUnmountDetachesFromParent(t *testing.T) {
	leaf := newLeaf("leaf", nil)
	parent := NewComponent("parent", testProps{}, Hooks[testProps, testState]{
		Children: func(*testComponent) []TreeNode { return []TreeNode{leaf} },
	})
	parent.Iterate()
	if parent.NumChildren() != 1 {
		t.Fatalf("NumChildren = %d, want 1", parent.NumChildren())
	}

	leaf.Unmount()

	// The slot is cleared, not spliced; live count drops immediately.
	if parent.NumChildren() != 0 {
		t.Errorf("NumChildren = %d after child unmount, want 0", parent.NumChildren())
	}
	if len(parent.ChildNodes()) != 1 || parent.ChildNodes()[0] != nil {
		t.Error("unmounted child should leave a nil slot until the next recomputation")
	}

	// The next recomputation drops the hole.
	parent.hooks.Children = func(*testComponent) []TreeNode { return nil }
	parent.ShouldUpdateChildren = true
	parent.Iterate()
	if len(parent.ChildNodes()) != 0 {
		t.Errorf("children = %d after recomputation, want 0", len(parent.ChildNodes()))
	}
}

func TestUnmountSiblingDuringIteration(t *testing.T) {
	var iterated []string
	var b *Component[testProps, testState]
	mk := func(name string, render func(c *testComponent)) *Component[testProps, testState] {
		return NewComponent(name, testProps{}, Hooks[testProps, testState]{
			Render: func(c *testComponent) {
				iterated = append(iterated, name)
				if render != nil {
					render(c)
				}
			},
		})
	}
	a := mk("a", func(*testComponent) { b.Unmount() })
	b = mk("b", nil)
	cc := mk("c", nil)
	parent := NewComponent("parent", testProps{}, Hooks[testProps, testState]{
		Children: func(*testComponent) []TreeNode { return []TreeNode{a, b, cc} },
	})

	IterateTree(parent) // mounts a, b, c
	iterated = iterated[:0]

	// a unmounts b mid-traversal: b's slot is skipped, c still runs.
	IterateTree(parent)
	if len(iterated) != 2 || iterated[0] != "a" || iterated[1] != "c" {
		t.Errorf("iterated = %v, want [a c]", iterated)
	}
	if !b.IsUnmounted() {
		t.Error("b should be unmounted")
	}
}

func TestIterateTreeRespectsShouldRenderChildren(t *testing.T) {
	childRan := false
	child := NewComponent("child", testProps{}, Hooks[testProps, testState]{
		Render: func(*testComponent) { childRan = true },
	})
	parent := NewComponent("parent", testProps{}, Hooks[testProps, testState]{
		Children: func(*testComponent) []TreeNode { return []TreeNode{child} },
	})
	parent.ShouldRenderChildren = false

	IterateTree(parent)
	if childRan {
		t.Error("child should not iterate when the parent gates its subtree")
	}
	// The child was still mounted; lifting the gate resumes iteration.
	parent.ShouldRenderChildren = true
	IterateTree(parent)
	if !childRan {
		t.Error("child should iterate once the gate lifts")
	}
}

func TestContextPropagatesToChildren(t *testing.T) {
	ctx := &Context{}
	leaf := newLeaf("leaf", nil)
	parent := NewComponent("parent", testProps{}, Hooks[testProps, testState]{
		Children: func(*testComponent) []TreeNode { return []TreeNode{leaf} },
	})
	parent.bind(nil, ctx)
	parent.Iterate()

	if leaf.Context() != ctx {
		t.Error("adopted child should inherit the parent's context")
	}
}
