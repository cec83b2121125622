package alder

import (
	"fmt"
	"os"
	"time"
)

// globalDebug mirrors the debug mode of the most recently configured Graph.
// Free functions and generic component code consult it for cheap validation
// that would be too noisy to run unconditionally.
var globalDebug bool

// warnf prints a caller-contract warning to stderr. Warnings report ignored
// misuse (re-entrant ticks, re-entrant drag begins); they never interrupt
// the frame.
func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[alder] warning: "+format+"\n", args...)
}

// frameStats holds per-frame timing metrics. Only populated when Graph.debug
// is true.
type frameStats struct {
	inputTime   time.Duration
	tickTime    time.Duration
	iterateTime time.Duration
	layerCount  int
}

// debugLog prints frame timing stats to stderr.
func (g *Graph) debugLog(stats frameStats) {
	if !g.debug {
		return
	}
	total := stats.inputTime + stats.tickTime + stats.iterateTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[alder] input: %v | tick: %v | iterate: %v | total: %v\n",
		stats.inputTime, stats.tickTime, stats.iterateTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[alder] layers: %d | scheduler entries: %d\n",
		stats.layerCount, g.sched.Len())
}

// debugCheckUnmounted panics with a descriptive message when an unmounted
// component is mutated. Only called when debug mode is on; in release mode
// the mutation is silently ignored per the batching contract.
func debugCheckUnmounted(n TreeNode, op string) {
	if n.IsUnmounted() {
		panic(fmt.Sprintf("alder debug: %s on unmounted component %q", op, n.nodeName()))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n TreeNode) {
	depth := 0
	for p := n; p != nil; p = p.Parent() {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[alder] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.nodeName())
	}
}

// debugCheckChildCount warns on stderr if a recomputation produced more than
// 1000 children for one component.
const debugMaxChildCount = 1000

func debugCheckChildCount(name string, count int) {
	if count > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[alder] warning: component %q has %d children (threshold %d)\n",
			name, count, debugMaxChildCount)
	}
}
