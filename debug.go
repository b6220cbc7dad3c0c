package perimeter

import (
	"fmt"
	"os"
)

// globalDebug mirrors the most recently set Scene debug flag so that node and
// menu operations (which may lack a Scene pointer) can check it cheaply. Only
// valid with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// debugLogf prints a diagnostic line to stderr when debug mode is on.
func debugLogf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[perimeter] "+format+"\n", args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode; in release mode callers
// skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("perimeter debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogf("warning: tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.Name)
	}
}

// debugFrameStats holds per-frame counters. Only populated when Scene.debug is
// true.
type debugFrameStats struct {
	nodes      int
	shapes     int
	animating  int
	hitTargets int
}

// debugLog prints frame stats to stderr.
func (s *Scene) debugLog(stats debugFrameStats) {
	if !s.debug {
		return
	}
	debugLogf("nodes: %d | shapes: %d | animating menus: %d | hit targets: %d",
		stats.nodes, stats.shapes, stats.animating, stats.hitTargets)
}
