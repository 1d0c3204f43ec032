package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atopile/pathgraph/config"
	gg "github.com/atopile/pathgraph/types/graph"
)

type fakeHandle struct {
	id     string
	supers []string
	module bool
}

func (h fakeHandle) TypeID() string          { return h.id }
func (h fakeHandle) SuperTypeIDs() []string  { return h.supers }
func (h fakeHandle) IsModuleInterface() bool { return h.module }
func (h fakeHandle) TypeName() string        { return h.id }

var moduleType = gg.NewTypeInfo(fakeHandle{id: "Module", module: true})

func newModuleNode(t *testing.T) *gg.Node {
	t.Helper()
	n := gg.NewNode()
	require.NoError(t, n.AssignHandle(moduleType))
	return n
}

// withMC adopts a named ModuleConnection interface onto n.
func withMC(t *testing.T, n *gg.Node, name string) *gg.Interface {
	t.Helper()
	mc := gg.NewModuleConnectionInterface()
	require.NoError(t, n.Adopt(mc, name))
	return mc
}

func newFinder(t *testing.T) *PathFinder {
	t.Helper()
	return NewPathFinder(config.DefaultEngineConfig(), nil, nil)
}

func TestFindPaths_SingleDirectLink(t *testing.T) {
	a := newModuleNode(t)
	b := newModuleNode(t)
	aMC := withMC(t, a, "mc")
	bMC := withMC(t, b, "mc")
	require.NoError(t, aMC.Connect(bMC))

	paths, _, err := newFinder(t).FindPaths(a.Self(), []*gg.Interface{b.Self()})
	require.NoError(t, err)
	require.Len(t, paths, 1)

	p := paths[0].Path()
	require.Equal(t, 4, p.Len())
	assert.Same(t, a.Self(), p.At(0))
	assert.Same(t, aMC, p.At(1))
	assert.Same(t, bMC, p.At(2))
	assert.Same(t, b.Self(), p.At(3))
}

func TestFindPaths_HierarchyDownUp(t *testing.T) {
	parent := newModuleNode(t)
	c1 := newModuleNode(t)
	c2 := newModuleNode(t)
	require.NoError(t, parent.Children().ConnectWith(c1.Parent(), gg.NewNamedParentLink("c1")))
	require.NoError(t, parent.Children().ConnectWith(c2.Parent(), gg.NewNamedParentLink("c2")))

	c1MC := withMC(t, c1, "mc")
	c2MC := withMC(t, c2, "mc")
	require.NoError(t, c1MC.Connect(c2MC))

	paths, _, err := newFinder(t).FindPaths(c1.Self(), []*gg.Interface{c2.Self()})
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, 1.0, paths[0].Confidence)
}

// TestFindPaths_ChainOfThreeSameType_ReturnsBothLengths exercises a chain of
// three same-typed nodes A-B-C: FindPaths must return both the short A->B
// path and the longer A->B->C path, since a validity-filter success at B
// must not stop the search from continuing on to C.
func TestFindPaths_ChainOfThreeSameType_ReturnsBothLengths(t *testing.T) {
	a := newModuleNode(t)
	b := newModuleNode(t)
	c := newModuleNode(t)

	aOut := withMC(t, a, "out")
	bIn := withMC(t, b, "in")
	bOut := withMC(t, b, "out")
	cIn := withMC(t, c, "in")

	require.NoError(t, aOut.Connect(bIn))
	require.NoError(t, bOut.Connect(cIn))

	paths, _, err := newFinder(t).FindPaths(a.Self(), []*gg.Interface{b.Self(), c.Self()})
	require.NoError(t, err)
	require.Len(t, paths, 2)

	var lengths []int
	for _, p := range paths {
		lengths = append(lengths, p.Path().Len())
	}
	assert.ElementsMatch(t, []int{4, 7}, lengths)
}

func TestFindPaths_SplitJoinOfTwo_BothWired(t *testing.T) {
	x := newModuleNode(t)
	y1 := newModuleNode(t)
	y2 := newModuleNode(t)
	z := newModuleNode(t)

	require.NoError(t, x.Children().ConnectWith(y1.Parent(), gg.NewNamedParentLink("y1")))
	require.NoError(t, x.Children().ConnectWith(y2.Parent(), gg.NewNamedParentLink("y2")))

	y1MC := withMC(t, y1, "mc")
	y2MC := withMC(t, y2, "mc")
	zMC1 := gg.NewModuleConnectionInterface()
	zMC2 := gg.NewModuleConnectionInterface()
	require.NoError(t, z.Adopt(zMC1, "mc1"))
	require.NoError(t, z.Adopt(zMC2, "mc2"))
	require.NoError(t, y1MC.Connect(zMC1))
	require.NoError(t, y2MC.Connect(zMC2))

	paths, _, err := newFinder(t).FindPaths(x.Self(), []*gg.Interface{z.Self()})
	require.NoError(t, err)
	require.Len(t, paths, 2)
	for _, p := range paths {
		assert.Equal(t, 1.0, p.Confidence)
		assert.False(t, p.Data().NotComplete)
		assert.Empty(t, p.Data().UnresolvedStack)
	}
}

func TestFindPaths_SplitNotJoined_ReturnsNothing(t *testing.T) {
	x := newModuleNode(t)
	y1 := newModuleNode(t)
	y2 := newModuleNode(t)
	z := newModuleNode(t)

	require.NoError(t, x.Children().ConnectWith(y1.Parent(), gg.NewNamedParentLink("y1")))
	require.NoError(t, x.Children().ConnectWith(y2.Parent(), gg.NewNamedParentLink("y2")))

	y1MC := withMC(t, y1, "mc")
	_ = withMC(t, y2, "mc") // y2 stays unwired: its branch never completes the split
	zMC := withMC(t, z, "mc")
	require.NoError(t, y1MC.Connect(zMC))

	paths, _, err := newFinder(t).FindPaths(x.Self(), []*gg.Interface{z.Self()})
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestFindPaths_ConditionalLinkBlocks(t *testing.T) {
	m := newModuleNode(t)
	n := newModuleNode(t)
	mMC := withMC(t, m, "mc")
	nMC := withMC(t, n, "mc")

	// SetConnections only ever evaluates the filter against bare endpoints
	// (Path == nil), so installation succeeds; the link blocks once the
	// pathfinder re-runs it against a discovered path.
	blocking := gg.NewDirectConditionalLink(func(ctx gg.FilterContext) gg.FilterResult {
		if ctx.Path == nil {
			return gg.FilterPass
		}
		return gg.FilterFailRecoverable
	}, false)

	require.NoError(t, mMC.ConnectWith(nMC, blocking))

	paths, _, err := newFinder(t).FindPaths(m.Self(), []*gg.Interface{n.Self()})
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestFindPaths_RejectsNonModuleInterfaceSource(t *testing.T) {
	n := gg.NewNode()
	require.NoError(t, n.AssignHandle(gg.NewTypeInfo(fakeHandle{id: "NotAModule", module: false})))

	_, _, err := newFinder(t).FindPaths(n.Self(), nil)
	assert.ErrorIs(t, err, gg.ErrInvalidSourceOrDestination)
}

func TestSplitKey_StableForSamePrefix(t *testing.T) {
	a := newModuleNode(t)
	b := newModuleNode(t)
	require.NoError(t, a.Children().ConnectWith(b.Parent(), gg.NewNamedParentLink("b")))

	prefix := gg.NewPath(a.Self(), a.Children())
	k1 := SplitKey(a.Children(), prefix)
	k2 := SplitKey(a.Children(), prefix)
	assert.Equal(t, k1, k2)

	other := gg.NewPath(a.Self())
	assert.NotEqual(t, k1, SplitKey(a.Children(), other))
}
