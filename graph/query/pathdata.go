// Package query implements the constrained breadth-first pathfinding engine:
// the BFS loop, its per-path bookkeeping, and the ordered filter pipeline
// that turns a raw graph walk into the set of valid module-interface-to-
// module-interface paths.
package query

import (
	gg "github.com/atopile/pathgraph/types/graph"
)

// PathStackElement records one hierarchy-boundary crossing a path made: the
// interface pair and node types on either side of a Parent/NamedParent edge,
// the local name the crossing used, and whether it went up (child->parent)
// or down (parent->child).
type PathStackElement struct {
	ParentType *gg.TypeInfo
	ChildType  *gg.TypeInfo
	ParentGIF  *gg.Interface
	ChildGIF   *gg.Interface
	Name       string
	Up         bool
}

// UnresolvedStackElement is one entry of a path's unresolved hierarchy
// stack: a crossing that has not yet been matched by an opposite crossing,
// tagged with whether it opened a split (a down-crossing through a parent
// with more than one module-interface child).
type UnresolvedStackElement struct {
	Elem  PathStackElement
	Split bool
}

// PathData is the mutable, per-path state a BFS search accumulates as it
// extends a path one edge at a time. It is shared copy-on-write between a
// BFSPath and its children: a path that hasn't diverged from its parent
// shares the same *PathData, and forks its own copy whenever it mutates it
// through BFSPath.MutableData.
type PathData struct {
	UnresolvedStack []UnresolvedStackElement
	SplitStack      []PathStackElement
	NotComplete     bool
}

// Clone returns a deep-enough copy of d: new backing slices, so appending to
// the clone never aliases the original's.
func (d *PathData) Clone() *PathData {
	cp := &PathData{NotComplete: d.NotComplete}
	if d.UnresolvedStack != nil {
		cp.UnresolvedStack = make([]UnresolvedStackElement, len(d.UnresolvedStack))
		copy(cp.UnresolvedStack, d.UnresolvedStack)
	}
	if d.SplitStack != nil {
		cp.SplitStack = make([]PathStackElement, len(d.SplitStack))
		copy(cp.SplitStack, d.SplitStack)
	}
	return cp
}
