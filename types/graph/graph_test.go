package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandle struct {
	id       string
	supers   []string
	isModule bool
	name     string
}

func (h fakeHandle) TypeID() string         { return h.id }
func (h fakeHandle) SuperTypeIDs() []string { return h.supers }
func (h fakeHandle) IsModuleInterface() bool { return h.isModule }
func (h fakeHandle) TypeName() string       { return h.name }

func moduleHandle(id string) fakeHandle {
	return fakeHandle{id: id, isModule: true, name: id}
}

func newTypedNode(t *testing.T, id string) *Node {
	t.Helper()
	n := NewNode()
	require.NoError(t, n.AssignHandle(NewTypeInfo(moduleHandle(id))))
	return n
}

func TestTypeInfo_IsSubtypeOf(t *testing.T) {
	base := NewTypeInfo(fakeHandle{id: "base", name: "Base"})
	derived := NewTypeInfo(fakeHandle{id: "derived", supers: []string{"base"}, name: "Derived"})
	unrelated := NewTypeInfo(fakeHandle{id: "unrelated", name: "Unrelated"})

	assert.True(t, derived.IsSubtypeOf(base))
	assert.True(t, derived.IsSubtypeOf(derived))
	assert.False(t, base.IsSubtypeOf(derived))
	assert.False(t, unrelated.IsSubtypeOf(base))
	assert.True(t, derived.IsSubtypeOfAny(nil))
	assert.True(t, derived.IsSubtypeOfAny([]*TypeInfo{unrelated, base}))
	assert.False(t, unrelated.IsSubtypeOfAny([]*TypeInfo{base}))
}

func TestNode_Triad(t *testing.T) {
	n := NewNode()
	assert.Same(t, n, n.Self().Node())
	assert.Same(t, n, n.Children().Node())
	assert.Same(t, n, n.Parent().Node())

	_, ok := n.Self().IsConnectedTo(n.Children())
	assert.True(t, ok)
	_, ok = n.Self().IsConnectedTo(n.Parent())
	assert.True(t, ok)
}

func TestNode_AssignHandle_OnlyOnce(t *testing.T) {
	n := NewNode()
	require.NoError(t, n.AssignHandle(NewTypeInfo(moduleHandle("a"))))
	err := n.AssignHandle(NewTypeInfo(moduleHandle("b")))
	assert.ErrorIs(t, err, ErrHandleAlreadyAssigned)
}

func TestNode_ParentChild_NamedParent(t *testing.T) {
	parent := newTypedNode(t, "parent")
	child := newTypedNode(t, "child")

	require.NoError(t, parent.Children().ConnectWith(child.Parent(), NewNamedParentLink("c0")))

	name, err := child.GetName(false)
	require.NoError(t, err)
	assert.Equal(t, "c0", name)

	got, _, ok := child.GetParent()
	require.True(t, ok)
	assert.Same(t, parent, got)

	children, err := parent.Children().GetChildren()
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "c0", children[0].Name)
	assert.Same(t, child, children[0].Node)
}

func TestInterface_Connect_LinkExists(t *testing.T) {
	a := newTypedNode(t, "a")
	b := newTypedNode(t, "b")

	require.NoError(t, a.Self().Connect(b.Self()))

	err := a.Self().Connect(b.Self())
	var existsErr *LinkExistsError
	require.ErrorAs(t, err, &existsErr)
}

func TestInterface_ConnectWith_WrongOrientation(t *testing.T) {
	a := NewHierarchicalInterface(true)
	b := NewHierarchicalInterface(true) // both parent-side: invalid
	err := a.ConnectWith(b, NewParentLink())
	assert.ErrorIs(t, err, ErrInvalidParentChild)
}

func TestInterface_IsConnectedTo_Symmetric(t *testing.T) {
	a := newTypedNode(t, "a")
	b := newTypedNode(t, "b")
	require.NoError(t, a.Self().Connect(b.Self()))

	linkAB, okAB := a.Self().IsConnectedTo(b.Self())
	linkBA, okBA := b.Self().IsConnectedTo(a.Self())
	require.True(t, okAB)
	require.True(t, okBA)
	assert.Same(t, linkAB, linkBA)
}

func TestGraph_MergeOnConnect_PreservesCounts(t *testing.T) {
	a := newTypedNode(t, "a")
	b := newTypedNode(t, "b")

	aCount := a.Self().Graph().NodeCount()
	bCount := b.Self().Graph().NodeCount()
	aEdges := a.Self().Graph().EdgeCount()
	bEdges := b.Self().Graph().EdgeCount()

	require.NoError(t, a.Self().Connect(b.Self()))

	merged := a.Self().Graph()
	assert.Same(t, merged, b.Self().Graph())
	assert.Equal(t, aCount+bCount, merged.NodeCount())
	assert.Equal(t, aEdges+bEdges+1, merged.EdgeCount())
}

func TestGraph_Invalidated_AfterMerge(t *testing.T) {
	a := newTypedNode(t, "a")
	b := newTypedNode(t, "b")
	drained := b.Self().Graph()

	require.NoError(t, a.Self().Connect(b.Self()))

	assert.NotSame(t, drained, b.Self().Graph())
	assert.True(t, drained.invalidated)
}

func TestPath_Edges(t *testing.T) {
	a := newTypedNode(t, "a")
	b := newTypedNode(t, "b")
	c := newTypedNode(t, "c")
	require.NoError(t, a.Self().Connect(b.Self()))
	require.NoError(t, b.Self().Connect(c.Self()))

	p := NewPath(a.Self(), b.Self(), c.Self())
	edges := p.Edges()
	require.Len(t, edges, p.Len()-1)
	for _, e := range edges {
		link, ok := e.From.IsConnectedTo(e.To)
		require.True(t, ok)
		assert.True(t, link.Equal(e.Link))
	}
}

func TestDirectConditionalLink_RejectsAtInstall(t *testing.T) {
	a := newTypedNode(t, "a")
	b := newTypedNode(t, "b")

	link := NewDirectShallowLink(func(from, to *Interface) bool { return false })
	err := a.Self().ConnectWith(b.Self(), link)
	assert.ErrorIs(t, err, ErrLinkFiltered)
}

func TestDirectDerivedLink_Equal_SameWitnessPath(t *testing.T) {
	a := newTypedNode(t, "a")
	b := newTypedNode(t, "b")
	require.NoError(t, a.Self().Connect(b.Self()))

	witness := NewPath(a.Self(), b.Self())
	d1 := NewDirectDerivedLink(witness)
	d2 := NewDirectDerivedLink(witness)
	d3 := NewDirectDerivedLink(NewPath(b.Self(), a.Self()))

	assert.True(t, d1.Equal(d2))
	assert.False(t, d1.Equal(d3))
}

func TestIsUplinkDownlink(t *testing.T) {
	parent := newTypedNode(t, "p")
	child := newTypedNode(t, "c")
	require.NoError(t, parent.Children().ConnectWith(child.Parent(), NewParentLink()))

	assert.True(t, IsDownlink(parent.Children(), child.Parent()))
	assert.True(t, IsUplink(child.Parent(), parent.Children()))
	assert.False(t, IsUplink(parent.Children(), child.Parent()))
}

func TestNode_GetChildren_IncludeRoot(t *testing.T) {
	parent := newTypedNode(t, "parent")
	child := newTypedNode(t, "child")
	require.NoError(t, parent.Children().ConnectWith(child.Parent(), NewNamedParentLink("c0")))

	withoutRoot := parent.GetChildren(true, nil, false, nil, true)
	require.Len(t, withoutRoot, 1)
	assert.Same(t, child, withoutRoot[0])

	withRoot := parent.GetChildren(true, nil, true, nil, true)
	require.Len(t, withRoot, 2)
	assert.Same(t, parent, withRoot[0])
	assert.Same(t, child, withRoot[1])

	parentType, err := parent.GetType()
	require.NoError(t, err)
	excluded := parent.GetChildren(true, []*TypeInfo{parentType}, true, func(n *Node) bool { return n != parent }, true)
	assert.Len(t, excluded, 0)
}

func TestGraph_BFSVisit_ReachesEveryConnectedInterface(t *testing.T) {
	a := newTypedNode(t, "a")
	b := newTypedNode(t, "b")
	c := newTypedNode(t, "c")
	require.NoError(t, a.Self().Connect(b.Self()))
	require.NoError(t, b.Self().Connect(c.Self()))

	visited := a.Self().Graph().BFSVisit([]*Interface{a.Self()}, func(path []*Interface) bool { return true })

	assert.Contains(t, visited, a.Self())
	assert.Contains(t, visited, b.Self())
	assert.Contains(t, visited, c.Self())
}

func TestGraph_BFSVisit_PredicateStopsExpansion(t *testing.T) {
	a := newTypedNode(t, "a")
	b := newTypedNode(t, "b")
	c := newTypedNode(t, "c")
	require.NoError(t, a.Self().Connect(b.Self()))
	require.NoError(t, b.Self().Connect(c.Self()))

	visited := a.Self().Graph().BFSVisit([]*Interface{a.Self()}, func(path []*Interface) bool {
		return path[len(path)-1] != b.Self()
	})

	assert.Contains(t, visited, a.Self())
	assert.Contains(t, visited, b.Self())
	assert.NotContains(t, visited, c.Self())
}

func TestNode_BFSNode_ReturnsDistinctNodes(t *testing.T) {
	a := newTypedNode(t, "a")
	b := newTypedNode(t, "b")
	c := newTypedNode(t, "c")
	require.NoError(t, a.Self().Connect(b.Self()))
	require.NoError(t, b.Self().Connect(c.Self()))

	nodes := a.BFSNode(func(path []*Interface) bool { return true })

	assert.Contains(t, nodes, a)
	assert.Contains(t, nodes, b)
	assert.Contains(t, nodes, c)
	assert.Len(t, nodes, 3)
}

func TestGraph_NodeProjection(t *testing.T) {
	a := newTypedNode(t, "a")
	b := newTypedNode(t, "b")
	require.NoError(t, a.Self().Connect(b.Self()))

	projection := a.Self().Graph().NodeProjection()
	assert.Contains(t, projection, a)
	assert.Contains(t, projection, b)
	assert.Len(t, projection, 2)
}

func TestGraph_NodesByNames(t *testing.T) {
	parent := newTypedNode(t, "parent")
	child := newTypedNode(t, "child")
	require.NoError(t, parent.Children().ConnectWith(child.Parent(), NewNamedParentLink("c0")))

	found := parent.Self().Graph().NodesByNames(map[string]struct{}{"c0": {}, "missing": {}})
	require.Len(t, found, 1)
	assert.Same(t, child, found["c0"])
}

func TestInterface_DisconnectParent(t *testing.T) {
	parent := newTypedNode(t, "parent")
	child := newTypedNode(t, "child")
	require.NoError(t, parent.Children().ConnectWith(child.Parent(), NewNamedParentLink("c0")))

	removed, err := child.Parent().DisconnectParent()
	require.NoError(t, err)
	assert.True(t, removed)

	_, _, ok := child.GetParent()
	assert.False(t, ok)

	removedAgain, err := child.Parent().DisconnectParent()
	require.NoError(t, err)
	assert.False(t, removedAgain)
}

func TestInterface_DisconnectParent_WrongSide(t *testing.T) {
	parent := newTypedNode(t, "parent")
	_, err := parent.Children().DisconnectParent()
	assert.ErrorIs(t, err, ErrNotHierarchical)
}

func TestNode_Adopt(t *testing.T) {
	n := newTypedNode(t, "n")
	mc := NewModuleConnectionInterface()
	require.NoError(t, n.Adopt(mc, "mc"))
	assert.Same(t, n, mc.Node())
	assert.Equal(t, "mc", mc.Name())

	err := n.Adopt(mc, "mc-again")
	assert.ErrorIs(t, err, ErrLinkAlreadySetUp)
}
