package query

import (
	"math"

	gg "github.com/atopile/pathgraph/types/graph"
)

// Filter is one stage of the pathfinder pipeline: a named predicate over a
// BFSPath, tagged as a discovery filter (decides whether to keep expanding
// this path at all) or a validity filter (decides whether a path that
// reached a destination counts as a result), with its own Counter.
type Filter struct {
	Name      string
	Discovery bool
	Hide      bool
	Counter   Counter
	fn        func(pf *PathFinder, p *BFSPath) bool
}

func newFilter(name string, discovery, hide bool, fn func(pf *PathFinder, p *BFSPath) bool) *Filter {
	return &Filter{
		Name:      name,
		Discovery: discovery,
		Hide:      hide,
		Counter:   Counter{Name: name, Discovery: discovery, Hide: hide},
		fn:        fn,
	}
}

// defaultFilters builds the ordered ten-stage pipeline: six discovery
// filters that gate whether a path is worth extending further, followed by
// four validity filters that gate whether a path that reached a destination
// is actually returned.
func defaultFilters() []*Filter {
	return []*Filter{
		newFilter("count", true, true, filterCount),
		newFilter("node_type", true, false, filterNodeType),
		newFilter("gif_type", true, false, filterGIFType),
		newFilter("dead_end_split", true, false, filterDeadEndSplit),
		newFilter("conditional_link", true, false, filterConditionalLink),
		newFilter("build_stack_and_handle_splits", true, false, filterBuildStackAndHandleSplits),
		newFilter("end_in_self_gif", false, false, filterEndInSelfGIF),
		newFilter("same_end_type", false, false, filterSameEndType),
		newFilter("stack", false, false, filterStack),
		newFilter("valid_split_branch", false, false, filterValidSplitBranch),
	}
}

// filterCount is the hidden path-budget check: once the search's total path
// count crosses the absolute limit, it tells the BFS loop to stop
// discovering any further paths at all.
func filterCount(pf *PathFinder, p *BFSPath) bool {
	pf.pathCount++
	if pf.pathCount > pf.limits.Absolute {
		p.Stop = true
		return false
	}
	return true
}

// filterNodeType keeps only paths whose last interface's owning node is
// module-interface typed — the engine only ever searches between module
// interfaces.
func filterNodeType(pf *PathFinder, p *BFSPath) bool {
	last := p.Last()
	node := last.Node()
	if node == nil {
		return false
	}
	t, err := node.GetType()
	return err == nil && t.IsModuleInterface()
}

// filterGIFType keeps only paths that currently sit on a Self, Hierarchical,
// or ModuleConnection interface — the three variants the hierarchy-stack and
// split logic know how to reason about.
func filterGIFType(pf *PathFinder, p *BFSPath) bool {
	switch p.Last().Kind() {
	case gg.KindSelf, gg.KindHierarchical, gg.KindModuleConnection:
		return true
	default:
		return false
	}
}

// filterDeadEndSplit rejects a path whose last three interfaces bounce
// child->parent->child: having just come up into a parent, immediately
// going back down is never a useful branch for this search.
func filterDeadEndSplit(pf *PathFinder, p *BFSPath) bool {
	one, two, three, ok := p.Path().LastTriEdge()
	if !ok {
		return true
	}
	if one.Kind() != gg.KindHierarchical || two.Kind() != gg.KindHierarchical || three.Kind() != gg.KindHierarchical {
		return true
	}
	if !one.IsParent() && two.IsParent() && !three.IsParent() {
		return false
	}
	return true
}

// conditionalLink is satisfied by both DirectConditionalLink and
// DirectDerivedLink (which promotes both methods from its embedded
// DirectConditionalLink), letting filterConditionalLink treat them alike.
type conditionalLink interface {
	RunFilter(gg.FilterContext) gg.FilterResult
	OnlyFirstInPath() bool
}

// filterConditionalLink re-evaluates every DirectConditional (and
// DirectDerived, which is built from one or more DirectConditionals) link
// along the path against the path as a whole, honoring each link's
// only-first-in-path restriction.
func filterConditionalLink(pf *PathFinder, p *BFSPath) bool {
	path := p.Path()
	edges := path.Edges()
	for idx, e := range edges {
		cl, ok := e.Link.(conditionalLink)
		if !ok {
			continue
		}
		isLastEdge := idx == len(edges)-1
		if cl.OnlyFirstInPath() && idx != 0 {
			continue
		}
		if !cl.OnlyFirstInPath() && !isLastEdge {
			// Re-evaluated incrementally: only the newly added edge needs
			// checking on each extension, earlier edges already passed.
			continue
		}
		ctx := gg.FilterContext{From: e.From, To: e.To, Path: &path}
		if cl.RunFilter(ctx) != gg.FilterPass {
			return false
		}
	}
	return true
}

// filterEndInSelfGIF is a validity filter: a path only counts as reaching a
// destination if it ends on that destination's Self interface.
func filterEndInSelfGIF(pf *PathFinder, p *BFSPath) bool {
	return p.Last().Kind() == gg.KindSelf
}

// filterSameEndType is a validity filter requiring the path's destination
// node to have the exact same type as its source node.
func filterSameEndType(pf *PathFinder, p *BFSPath) bool {
	first, last := p.Path().First(), p.Last()
	fn, ln := first.Node(), last.Node()
	if fn == nil || ln == nil {
		return false
	}
	ft, ferr := fn.GetType()
	lt, lerr := ln.GetType()
	return ferr == nil && lerr == nil && ft.Equal(lt)
}

// filterStack is a validity filter: a path is only complete once every
// hierarchy crossing it made has been matched by its opposite crossing.
func filterStack(pf *PathFinder, p *BFSPath) bool {
	return len(p.Data().UnresolvedStack) == 0
}

// filterBuildStackAndHandleSplits is the core discovery filter: it folds the
// path's latest hierarchy crossing onto its unresolved stack, discounts
// confidence for every still-open split, enforces the no-new-weak/no-weak
// budgets, and — when a down-crossing opens a genuine split (a parent with
// more than one module-interface child) — hibernates the path against a
// SplitState until every sibling branch has reported in.
func filterBuildStackAndHandleSplits(pf *PathFinder, p *BFSPath) bool {
	edge, ok := p.Path().LastEdge()
	if !ok {
		return true
	}
	parent, child, name, isHierEdge := gg.ParentChildFromEdge(edge.From, edge.To)
	if !isHierEdge {
		return true
	}

	up := gg.IsUplink(edge.From, edge.To)
	down := gg.IsDownlink(edge.From, edge.To)
	if !up && !down {
		return true
	}

	parentNode, childNode := parent.Node(), child.Node()
	if parentNode == nil || childNode == nil {
		return true
	}
	parentType, _ := parentNode.GetType()
	childType, _ := childNode.GetType()

	elem := PathStackElement{
		ParentType: parentType,
		ChildType:  childType,
		ParentGIF:  parent,
		ChildGIF:   child,
		Name:       name,
		Up:         up,
	}

	data := p.MutableData()

	if len(data.SplitStack) > 0 && pf.pathCount > pf.limits.NoWeak {
		return false
	}

	splitGrowth := extendFoldStack(data, elem)

	p.Confidence *= math.Pow(0.5, float64(splitGrowth))

	if splitGrowth > 0 && pf.pathCount > pf.limits.NoNewWeak {
		return false
	}

	if splitGrowth == 0 {
		return true
	}

	data.NotComplete = true

	splitPoint := elem.ParentGIF
	key := SplitKey(splitPoint, p.Path().WithoutLast())

	state, exists := pf.splits[key]
	if !exists {
		var err error
		state, err = NewSplitState(p, splitPoint)
		if err != nil {
			return false
		}
		pf.splits[key] = state
	}

	if state.Waiting {
		// Someone is already waiting on a sibling; let this one through
		// without hibernating so it can report its own suffix.
		return true
	}

	state.Hibernate(elem.ChildGIF, p)
	return true
}

// extendFoldStack folds elem onto data.UnresolvedStack: if it cancels the
// stack's top (an opposite crossing at the same parent/name), it pops;
// otherwise it pushes, marking the push a split if this is a down-crossing
// through a parent with more than one module-interface child that the
// current split_stack hasn't already covered. It returns the net growth in
// split count this fold produced (0 or 1).
func extendFoldStack(data *PathData, elem PathStackElement) int {
	if n := len(data.UnresolvedStack); n > 0 {
		top := data.UnresolvedStack[n-1]
		if top.Elem.ParentGIF == elem.ParentGIF && top.Elem.Name == elem.Name && top.Elem.Up != elem.Up {
			data.UnresolvedStack = data.UnresolvedStack[:n-1]
			return 0
		}
	}

	multiChild := false
	if children, err := GetSplitChildren(elem.ParentGIF); err == nil {
		multiChild = len(children) > 1
	}

	inSameSplit := false
	for _, s := range data.SplitStack {
		if s.ParentGIF == elem.ParentGIF && s.Name == elem.Name {
			inSameSplit = true
			break
		}
	}

	split := !elem.Up && multiChild && !inSameSplit

	data.UnresolvedStack = append(data.UnresolvedStack, UnresolvedStackElement{Elem: elem, Split: split})
	if split {
		data.SplitStack = append(data.SplitStack, elem)
		return 1
	}
	return 0
}

// filterValidSplitBranch is the final validity filter: it reconciles a
// completed path against every split on its split_stack, reverse-innermost
// first. A branch that completes a SplitState's coverage promotes every one
// of that split's collected suffix paths to strong (confidence 1.0,
// split_stack cleared, no longer incomplete); one that doesn't wakes a
// waiting sibling, or, if none is waiting, marks the split Waiting. Either
// way that incomplete branch is not returned as a result.
func filterValidSplitBranch(pf *PathFinder, p *BFSPath) bool {
	data := p.Data()
	if len(data.SplitStack) == 0 {
		return true
	}

	for i := len(data.SplitStack) - 1; i >= 0; i-- {
		elem := data.SplitStack[i]
		key := SplitKey(elem.ParentGIF, pathPrefixTo(p.Path(), elem))
		state, ok := pf.splits[key]
		if !ok {
			continue
		}

		complete := state.RecordSuffix(elem.ChildGIF, p)
		if !complete {
			if !state.WakeOneWaiting(elem.ChildGIF) {
				state.Waiting = true
			}
			return false
		}
		state.Complete = true
	}

	for _, p2 := range pf.splits[SplitKey(data.SplitStack[0].ParentGIF, pathPrefixTo(p.Path(), data.SplitStack[0]))].AllSuffixPaths() {
		d2 := p2.MutableData()
		d2.NotComplete = false
		d2.SplitStack = nil
		p2.Hibernated = false
		p2.Confidence = 1.0
		p2.WakeSignal = true
		p2.StrongSignal = true
		if p2 != p {
			pf.promote("valid_split_branch")
		}
	}
	return true
}

// pathPrefixTo rebuilds the split prefix a SplitState was created with: the
// path up to and including elem's parent interface.
func pathPrefixTo(p gg.Path, elem PathStackElement) gg.Path {
	if idx, ok := p.Index(elem.ParentGIF); ok {
		return gg.NewPath(sliceUpTo(p, idx+1)...)
	}
	return p
}

func sliceUpTo(p gg.Path, n int) []*gg.Interface {
	out := make([]*gg.Interface, 0, n)
	for i := 0; i < n && i < p.Len(); i++ {
		out = append(out, p.At(i))
	}
	return out
}
