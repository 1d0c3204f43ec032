package graph

import "fmt"

// InterfaceKind discriminates the fixed set of interface variants the engine
// understands. Variants outside this set are modeled as KindOpaque: the
// engine still lets a host connect, traverse, and look them up, but never
// interprets their semantics (no hierarchy, no reference resolution).
type InterfaceKind int

const (
	// KindSelf is the one interface identifying its owning Node.
	KindSelf InterfaceKind = iota
	// KindHierarchical is one side of a parent/child edge; IsParent
	// distinguishes which side.
	KindHierarchical
	// KindReference points at another node's Self interface once bound.
	KindReference
	// KindModuleConnection is a domain-specific connection point between
	// module interfaces.
	KindModuleConnection
	// KindOpaque is any host-domain variant the engine does not interpret.
	KindOpaque
)

func (k InterfaceKind) String() string {
	switch k {
	case KindSelf:
		return "Self"
	case KindHierarchical:
		return "Hierarchical"
	case KindReference:
		return "Reference"
	case KindModuleConnection:
		return "ModuleConnection"
	case KindOpaque:
		return "Opaque"
	default:
		return "Unknown"
	}
}

// Interface is a single vertex of the connectivity graph. Every Interface is
// created detached, owning a singleton Graph of its own, until it is
// connected to something — at which point Connect merges the two owning
// graphs rather than the interfaces themselves.
type Interface struct {
	kind      InterfaceKind
	isParent  bool
	opaqueTag string
	boundSelf *Interface

	node   *Node
	name   string
	graph  *Graph
	vIndex int
}

func newInterface(kind InterfaceKind) *Interface {
	i := &Interface{kind: kind}
	g := NewGraph()
	g.hold(i)
	return i
}

// NewSelfInterface returns a new, detached Self interface.
func NewSelfInterface() *Interface { return newInterface(KindSelf) }

// NewHierarchicalInterface returns a new, detached Hierarchical interface;
// isParent selects which side of a future Parent/NamedParent edge it plays.
func NewHierarchicalInterface(isParent bool) *Interface {
	i := newInterface(KindHierarchical)
	i.isParent = isParent
	return i
}

// NewReferenceInterface returns a new, detached Reference interface, unbound
// until connected to a Self interface via a Pointer link.
func NewReferenceInterface() *Interface { return newInterface(KindReference) }

// NewModuleConnectionInterface returns a new, detached ModuleConnection
// interface.
func NewModuleConnectionInterface() *Interface { return newInterface(KindModuleConnection) }

// NewOpaqueInterface returns a new, detached interface in a host-domain
// variant the engine does not interpret, tagged with a caller-chosen
// discriminator for the host's own use.
func NewOpaqueInterface(tag string) *Interface {
	i := newInterface(KindOpaque)
	i.opaqueTag = tag
	return i
}

// Kind returns the interface's variant.
func (i *Interface) Kind() InterfaceKind { return i.kind }

// IsParent reports whether this is the parent side of a Hierarchical
// interface; always false for non-Hierarchical interfaces.
func (i *Interface) IsParent() bool { return i.kind == KindHierarchical && i.isParent }

// OpaqueTag returns the host-supplied discriminator for a KindOpaque
// interface, or "" otherwise.
func (i *Interface) OpaqueTag() string { return i.opaqueTag }

// Node returns the owning Node, or nil if this interface was never part of
// a Node's triad (a standalone interface created for a test, say).
func (i *Interface) Node() *Node { return i.node }

// Name returns the interface's local name within its node.
func (i *Interface) Name() string { return i.name }

// SetName sets the interface's local name within its node.
func (i *Interface) SetName(name string) { i.name = name }

// Graph returns the graph this interface currently belongs to. The pointer
// changes across a merge, so callers must not cache it across a Connect.
func (i *Interface) Graph() *Graph { return i.graph }

// VIndex returns this interface's dense index within its current graph's
// vertex ordering, used by the BFS engine to size its visited bitsets.
func (i *Interface) VIndex() int { return i.vIndex }

func (i *Interface) String() string {
	if i.node != nil {
		return fmt.Sprintf("%s.%s", i.node.Repr(), i.name)
	}
	return fmt.Sprintf("<detached %s>.%s", i.kind, i.name)
}

// Connect installs an unconditional Direct link from i to other. It is
// shorthand for ConnectWith(other, NewDirectLink()).
func (i *Interface) Connect(other *Interface) error {
	return i.ConnectWith(other, NewDirectLink())
}

// ConnectWith installs the caller-supplied link between i and other. The
// link must not already be installed elsewhere. SetConnections runs first —
// a Parent/NamedParent orientation mismatch or a rejected conditional filter
// fails here before any graph state changes — and only then is the edge
// inserted via AddEdge, which may merge i's and other's graphs and fails
// with LinkExistsError if the two are already directly connected.
func (i *Interface) ConnectWith(other *Interface, link Link) error {
	if i == other {
		return fatal(fmt.Errorf("cannot connect an interface to itself"), "ConnectWith", "self-connection")
	}
	if link.IsSetUp() {
		return fatal(ErrLinkAlreadySetUp, "ConnectWith", "link already installed elsewhere")
	}
	if err := link.SetConnections(i, other); err != nil {
		return err
	}
	return AddEdge(link)
}

// ConnectMany installs a fresh clone of link between i and each of others.
// link itself must not be installed and must be cloneable.
func (i *Interface) ConnectMany(others []*Interface, link Link) error {
	if link.IsSetUp() {
		return fatal(ErrLinkAlreadySetUp, "ConnectMany", "link already installed elsewhere")
	}
	if !link.Cloneable() {
		return invalid(ErrNotCloneable, "ConnectMany", link.DebugName())
	}
	for _, other := range others {
		clone, err := link.CloneIfAllowed()
		if err != nil {
			return err
		}
		if err := i.ConnectWith(other, clone); err != nil {
			return err
		}
	}
	return nil
}

// Neighbors returns every interface directly reachable from i in one hop.
func (i *Interface) Neighbors() map[*Interface]struct{} {
	return i.graph.ConnectedNeighbors(i)
}

// Edges returns every link incident to i, keyed by the neighbor it connects to.
func (i *Interface) Edges() map[*Interface]Link {
	return i.graph.GetEdges(i)
}

// IsConnectedTo reports whether i and other are joined by a direct edge.
func (i *Interface) IsConnectedTo(other *Interface) (Link, bool) {
	return i.graph.IsConnected(i, other)
}

// ConnectedNodes returns the distinct nodes reachable from i via a Direct
// edge whose type matches one of ofTypes (or any type, if ofTypes is empty).
func (i *Interface) ConnectedNodes(ofTypes []*TypeInfo) []*Node {
	var out []*Node
	seen := make(map[*Node]struct{})
	for to, link := range i.Edges() {
		if _, ok := link.(*DirectLink); !ok {
			continue
		}
		n := to.Node()
		if n == nil {
			continue
		}
		t, err := n.GetType()
		if err != nil || !t.IsSubtypeOfAny(ofTypes) {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// GetLinksByType returns every edge from i whose installed link has dynamic
// type T, keyed by the neighbor on the other end. It is exposed for hosts
// building debuggers or visualizers; the module itself does not call it.
func GetLinksByType[T Link](i *Interface) map[*Interface]T {
	out := make(map[*Interface]T)
	for to, link := range i.Edges() {
		if t, ok := link.(T); ok {
			out[to] = t
		}
	}
	return out
}

// BindReference installs a Pointer link from a Reference interface to
// target, which must be a Self interface. It is the only supported way to
// resolve a Reference.
func (i *Interface) BindReference(target *Interface) error {
	if i.kind != KindReference {
		return fatal(ErrInvalidParentChild, "BindReference", "not a reference interface")
	}
	if err := i.ConnectWith(target, NewPointerLink()); err != nil {
		return err
	}
	i.boundSelf = target
	return nil
}

// ResolveReference returns the Self interface a Reference interface is bound
// to, or ErrReferenceUnbound if BindReference has not been called.
func (i *Interface) ResolveReference() (*Interface, error) {
	if i.kind != KindReference {
		return nil, fatal(ErrInvalidParentChild, "ResolveReference", "not a reference interface")
	}
	if i.boundSelf == nil {
		return nil, invalid(ErrReferenceUnbound, "ResolveReference", "")
	}
	return i.boundSelf, nil
}

// IsUplink reports whether a->b is an edge from a child Hierarchical
// interface to its parent — both endpoints hierarchical, a the child side
// and b the parent side.
func IsUplink(a, b *Interface) bool {
	return a.Kind() == KindHierarchical && b.Kind() == KindHierarchical && !a.isParent && b.isParent
}

// IsDownlink reports whether a->b is an edge from a parent Hierarchical
// interface to one of its children.
func IsDownlink(a, b *Interface) bool {
	return a.Kind() == KindHierarchical && b.Kind() == KindHierarchical && a.isParent && !b.isParent
}

// ChildEdge is one entry of Hierarchical.GetChildren: the child-side
// interface, its owning node, and its local name if the link was a
// NamedParent.
type ChildEdge struct {
	ChildGIF *Interface
	Node     *Node
	Name     string
}

// GetChildren returns every child reached from a parent-side Hierarchical
// interface via a Parent or NamedParent link. It fails if i is not a
// parent-side Hierarchical interface.
func (i *Interface) GetChildren() ([]ChildEdge, error) {
	if i.kind != KindHierarchical || !i.isParent {
		return nil, fatal(ErrNotHierarchical, "GetChildren", "not a parent-side hierarchical interface")
	}
	var out []ChildEdge
	for to, link := range i.Edges() {
		pl, ok := link.(ParentLinked)
		if !ok {
			continue
		}
		parent, child := pl.ParentChild()
		if parent != i {
			continue
		}
		out = append(out, ChildEdge{ChildGIF: to, Node: child.Node(), Name: pl.ChildName()})
	}
	return out, nil
}

// GetParentEdge returns the parent-side node, the local name this
// interface's owner was given (if any), and whether a parent link exists.
// It fails if i is not a child-side Hierarchical interface.
func (i *Interface) GetParentEdge() (*Node, string, bool, error) {
	if i.kind != KindHierarchical || i.isParent {
		return nil, "", false, fatal(ErrNotHierarchical, "GetParentEdge", "not a child-side hierarchical interface")
	}
	for _, link := range i.Edges() {
		pl, ok := link.(ParentLinked)
		if !ok {
			continue
		}
		parent, child := pl.ParentChild()
		if child != i {
			continue
		}
		return parent.Node(), pl.ChildName(), true, nil
	}
	return nil, "", false, nil
}

// DisconnectParent removes i's Parent/NamedParent edge, if any. It fails if
// i is not a child-side Hierarchical interface; it is a no-op (returns false,
// nil) if i has no parent link to remove.
func (i *Interface) DisconnectParent() (bool, error) {
	if i.kind != KindHierarchical || i.isParent {
		return false, fatal(ErrNotHierarchical, "DisconnectParent", "not a child-side hierarchical interface")
	}
	for _, link := range i.Edges() {
		pl, ok := link.(ParentLinked)
		if !ok {
			continue
		}
		_, child := pl.ParentChild()
		if child != i {
			continue
		}
		if err := RemoveEdge(link); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// ParentChildFromEdge looks up the parent/child orientation and local name
// of the link installed between from and to, if any and if it is a
// Parent/NamedParent link. Used by the pathfinder's hierarchy-stack
// construction, which only has raw graph edges to work from.
func ParentChildFromEdge(from, to *Interface) (parent, child *Interface, name string, ok bool) {
	link, exists := from.IsConnectedTo(to)
	if !exists {
		return nil, nil, "", false
	}
	pl, ok2 := link.(ParentLinked)
	if !ok2 {
		return nil, nil, "", false
	}
	p, c := pl.ParentChild()
	return p, c, pl.ChildName(), true
}
