package graph

import "strings"

// PathEdge is one consecutive pair of a Path, paired with the link that
// joins them.
type PathEdge struct {
	From *Interface
	To   *Interface
	Link Link
}

// Path is an immutable, ordered sequence of interfaces describing one
// traversal of the graph. It carries no search state of its own — BFSPath
// in graph/query wraps a Path with the mutable, per-search bookkeeping a
// live BFS needs.
type Path struct {
	ifaces []*Interface
}

// NewPath builds a Path from an ordered interface sequence.
func NewPath(ifaces ...*Interface) Path {
	cp := make([]*Interface, len(ifaces))
	copy(cp, ifaces)
	return Path{ifaces: cp}
}

// Len returns the number of interfaces in the path.
func (p Path) Len() int { return len(p.ifaces) }

// At returns the interface at position idx.
func (p Path) At(idx int) *Interface { return p.ifaces[idx] }

// First returns the path's first interface, or nil if the path is empty.
func (p Path) First() *Interface {
	if len(p.ifaces) == 0 {
		return nil
	}
	return p.ifaces[0]
}

// Last returns the path's last interface, or nil if the path is empty.
func (p Path) Last() *Interface {
	if len(p.ifaces) == 0 {
		return nil
	}
	return p.ifaces[len(p.ifaces)-1]
}

// WithAppended returns a new Path with next appended; the receiver is left
// unmodified.
func (p Path) WithAppended(next *Interface) Path {
	cp := make([]*Interface, len(p.ifaces)+1)
	copy(cp, p.ifaces)
	cp[len(p.ifaces)] = next
	return Path{ifaces: cp}
}

// WithoutLast returns a new Path with its last element removed.
func (p Path) WithoutLast() Path {
	if len(p.ifaces) == 0 {
		return p
	}
	return Path{ifaces: p.ifaces[:len(p.ifaces)-1]}
}

// Index returns the position of target in the path, if present.
func (p Path) Index(target *Interface) (int, bool) {
	for idx, iface := range p.ifaces {
		if iface == target {
			return idx, true
		}
	}
	return 0, false
}

// Contains reports whether target appears anywhere in the path.
func (p Path) Contains(target *Interface) bool {
	_, ok := p.Index(target)
	return ok
}

// Edges returns every consecutive pair of the path as a PathEdge, with the
// link that was actually traversed between them.
func (p Path) Edges() []PathEdge {
	if len(p.ifaces) < 2 {
		return nil
	}
	out := make([]PathEdge, 0, len(p.ifaces)-1)
	for idx := 0; idx < len(p.ifaces)-1; idx++ {
		from, to := p.ifaces[idx], p.ifaces[idx+1]
		link, _ := from.IsConnectedTo(to)
		out = append(out, PathEdge{From: from, To: to, Link: link})
	}
	return out
}

// LastEdge returns the path's final PathEdge, if it has at least two
// interfaces.
func (p Path) LastEdge() (PathEdge, bool) {
	edges := p.Edges()
	if len(edges) == 0 {
		return PathEdge{}, false
	}
	return edges[len(edges)-1], true
}

// LastTriEdge returns the path's final three interfaces (one, two, three, in
// traversal order), used by the dead-end-split filter to detect a
// child->parent->child bounce.
func (p Path) LastTriEdge() (one, two, three *Interface, ok bool) {
	n := len(p.ifaces)
	if n < 3 {
		return nil, nil, nil, false
	}
	return p.ifaces[n-3], p.ifaces[n-2], p.ifaces[n-1], true
}

// StartsWith reports whether p's first other.Len() interfaces are, in
// order, identical (by identity) to other's.
func (p Path) StartsWith(other Path) bool {
	if other.Len() > p.Len() {
		return false
	}
	for idx := 0; idx < other.Len(); idx++ {
		if p.ifaces[idx] != other.ifaces[idx] {
			return false
		}
	}
	return true
}

// Equal reports whether two paths contain the same interfaces, in the same
// order, by identity.
func (p Path) Equal(other Path) bool {
	if len(p.ifaces) != len(other.ifaces) {
		return false
	}
	for idx := range p.ifaces {
		if p.ifaces[idx] != other.ifaces[idx] {
			return false
		}
	}
	return true
}

func (p Path) String() string {
	parts := make([]string, len(p.ifaces))
	for idx, iface := range p.ifaces {
		parts[idx] = iface.String()
	}
	return strings.Join(parts, " -> ")
}
