package graph

import (
	"fmt"
	"sort"
	"sync/atomic"
)

var nodeIDCounter uint64

// Node is a domain object built from a fixed triad of interfaces — self,
// children, parent — wired together with Sibling links at construction.
// Everything the pathfinder walks is actually interfaces; Node is the
// higher-level handle a host attaches its own type information and name to.
type Node struct {
	id       uint64
	self     *Interface
	children *Interface
	parent   *Interface

	typeInfo                   *TypeInfo
	noIncludeParentsInFullName bool
}

// NewNode creates a detached node: a fresh self/children/parent triad wired
// together by Sibling links, which merge the three into one graph of their
// own until Connect calls merge it with the rest of a design, so a BFS from
// any one of the three can always reach the other two.
func NewNode() *Node {
	n := &Node{
		id:       atomic.AddUint64(&nodeIDCounter, 1),
		self:     NewSelfInterface(),
		children: NewHierarchicalInterface(true),
		parent:   NewHierarchicalInterface(false),
	}
	n.self.node = n
	n.children.node = n
	n.parent.node = n
	n.self.SetName("self")
	n.children.SetName("children")
	n.parent.SetName("parent")

	// Sibling-link the triad so a BFS starting from any one of the three
	// can always reach the other two without a special case.
	mustConnect(n.children, n.self, NewSiblingLink())
	mustConnect(n.parent, n.self, NewSiblingLink())

	return n
}

func mustConnect(from, to *Interface, link Link) {
	if err := from.ConnectWith(to, link); err != nil {
		panic(fmt.Sprintf("pathgraph: triad wiring invariant violated: %v", err))
	}
}

// Self returns the node's Self interface.
func (n *Node) Self() *Interface { return n.self }

// Children returns the node's parent-side Hierarchical interface, the one
// its children attach to.
func (n *Node) Children() *Interface { return n.children }

// Parent returns the node's child-side Hierarchical interface, the one it
// attaches to its own parent with.
func (n *Node) Parent() *Interface { return n.parent }

// Adopt attaches iface to this node under name, sibling-linking it to the
// node's self interface exactly the way NewNode wires its own triad. It is
// how a host attaches a ModuleConnection interface, a Reference interface,
// or any opaque domain variant to a node after construction — the triad
// itself (self/children/parent) is wired automatically, everything else a
// node owns goes through Adopt.
func (n *Node) Adopt(iface *Interface, name string) error {
	if iface.node != nil {
		return fatal(ErrLinkAlreadySetUp, "Adopt", "interface already belongs to a node")
	}
	iface.node = n
	iface.SetName(name)
	return n.self.ConnectWith(iface, NewSiblingLink())
}

// AssignHandle binds this node's type information, once. A second call
// fails with ErrHandleAlreadyAssigned, since a node's type is fixed at
// construction in every caller this engine expects.
func (n *Node) AssignHandle(t *TypeInfo) error {
	if n.typeInfo != nil {
		return fatal(ErrHandleAlreadyAssigned, "AssignHandle", "")
	}
	n.typeInfo = t
	return nil
}

// GetType returns the node's assigned type, or ErrNoTypeAssigned if
// AssignHandle has not been called yet.
func (n *Node) GetType() (*TypeInfo, error) {
	if n.typeInfo == nil {
		return nil, invalid(ErrNoTypeAssigned, "GetType", "")
	}
	return n.typeInfo, nil
}

// GetTypeName returns the assigned type's display name, or a synthesized
// placeholder if no handle has been assigned yet.
func (n *Node) GetTypeName() string {
	if n.typeInfo == nil {
		return fmt.Sprintf("<untyped:%d>", n.id)
	}
	return n.typeInfo.Name()
}

// GetParent returns the node one hierarchy level up, the local name it was
// given there, and whether a parent link exists at all.
func (n *Node) GetParent() (*Node, string, bool) {
	parentNode, name, ok, err := n.parent.GetParentEdge()
	if err != nil || !ok {
		return nil, "", false
	}
	return parentNode, name, true
}

// GetParentForce is GetParent but returns ErrNodeNoParent instead of ok=false.
func (n *Node) GetParentForce() (*Node, string, error) {
	parentNode, name, ok := n.GetParent()
	if !ok {
		return nil, "", invalid(ErrNodeNoParent, "GetParentForce", "")
	}
	return parentNode, name, nil
}

// GetRootID returns a stable, printable identifier for this node, usable as
// a root id regardless of whether the node actually has no parent. Derived
// from a monotonically increasing id handed out at construction, rather
// than pointer identity, since Go gives no stable printable value for that.
func (n *Node) GetRootID() string {
	return fmt.Sprintf("root-%d", n.id)
}

// GetName returns this node's local name (the name its parent link gave it),
// or an error unless acceptNoParent is true and the node has no parent.
func (n *Node) GetName(acceptNoParent bool) (string, error) {
	_, name, ok := n.GetParent()
	if !ok {
		if acceptNoParent {
			return "", nil
		}
		return "", invalid(ErrNodeNoParent, "GetName", "")
	}
	return name, nil
}

// HierarchyEntry is one level of Node.GetHierarchy: a node paired with the
// local name it was given by its parent.
type HierarchyEntry struct {
	Node *Node
	Name string
}

// GetHierarchy returns the chain of nodes from the root down to and
// including n, each paired with its local name (the root's name is "").
func (n *Node) GetHierarchy() []HierarchyEntry {
	var chain []HierarchyEntry
	cur := n
	for {
		parentNode, name, ok := cur.GetParent()
		chain = append(chain, HierarchyEntry{Node: cur, Name: name})
		if !ok {
			break
		}
		cur = parentNode
	}
	// chain was built leaf-to-root; reverse it root-to-leaf.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// SetNoIncludeParentsInFullName excludes this node's ancestors from
// GetFullName, treating n as if it were its own root for naming purposes.
func (n *Node) SetNoIncludeParentsInFullName(v bool) { n.noIncludeParentsInFullName = v }

// GetFullName returns the node's dot-joined path from its root (or from
// itself, if SetNoIncludeParentsInFullName was set), optionally suffixed
// with "|TypeName".
func (n *Node) GetFullName(withType bool) string {
	var names []string
	if n.noIncludeParentsInFullName {
		name, _ := n.GetName(true)
		if name != "" {
			names = []string{name}
		}
	} else {
		for _, entry := range n.GetHierarchy() {
			if entry.Name != "" {
				names = append(names, entry.Name)
			}
		}
	}
	full := joinDots(names)
	if withType {
		return full + "|" + n.GetTypeName()
	}
	return full
}

func joinDots(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "."
		}
		out += p
	}
	return out
}

// Repr returns a debug string of the form "<full.dotted.path|TypeName>",
// used in log lines and test failure messages.
func (n *Node) Repr() string {
	return fmt.Sprintf("<%s|%s>", n.GetFullName(false), n.GetTypeName())
}

func (n *Node) String() string { return n.Repr() }

// GetChildren returns this node's children, optionally restricted to a
// direct/all toggle, a set of accepted types, and a caller filter, sorted by
// local name when sort is true. includeRoot prepends n itself to the result
// when n's own type (and the filter, if given) also match.
func (n *Node) GetChildren(directOnly bool, ofTypes []*TypeInfo, includeRoot bool, filter func(*Node) bool, sortByName bool) []*Node {
	var out []*Node
	seen := make(map[*Node]struct{})

	if includeRoot {
		t, terr := n.GetType()
		if terr == nil && t.IsSubtypeOfAny(ofTypes) && (filter == nil || filter(n)) {
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}

	var walk func(node *Node)
	walk = func(node *Node) {
		edges, err := node.children.GetChildren()
		if err != nil {
			return
		}
		for _, e := range edges {
			child := e.Node
			if child == nil {
				continue
			}
			if _, dup := seen[child]; !dup {
				t, terr := child.GetType()
				typeOK := terr == nil && t.IsSubtypeOfAny(ofTypes)
				filterOK := filter == nil || filter(child)
				if typeOK && filterOK {
					seen[child] = struct{}{}
					out = append(out, child)
				}
			}
			if !directOnly {
				walk(child)
			}
		}
	}
	walk(n)

	if sortByName {
		sort.Slice(out, func(i, j int) bool {
			ni, _ := out[i].GetName(true)
			nj, _ := out[j].GetName(true)
			return ni < nj
		})
	}
	return out
}

// BFSNode runs an unconstrained BFS from this node's Self interface,
// returning the set of distinct nodes reached; predicate receives each
// discovered path (as interfaces) and returns false to stop expanding it.
func (n *Node) BFSNode(predicate func(path []*Interface) bool) map[*Node]struct{} {
	visited := n.self.Graph().BFSVisit([]*Interface{n.self}, predicate)
	out := make(map[*Node]struct{})
	for iface := range visited {
		if node := iface.Node(); node != nil {
			out[node] = struct{}{}
		}
	}
	return out
}
