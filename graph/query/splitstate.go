package query

import (
	"fmt"
	"strings"

	gg "github.com/atopile/pathgraph/types/graph"
)

// SplitState tracks one down-crossing's children as the BFS explores each of
// them independently: which children have produced a suffix that reaches the
// path's eventual target, which weak paths are hibernated waiting for a
// sibling, and whether every child has reported in, at which point the whole
// split resolves to strong.
type SplitState struct {
	SplitPrefix gg.Path
	children    []*gg.Interface

	suffixCompletePaths map[*gg.Interface][]*BFSPath
	waitPaths           map[*gg.Interface][]*BFSPath

	Waiting  bool
	Complete bool
}

// NewSplitState builds a fresh SplitState for the split discovered at p: the
// prefix is p's path with its last (the just-taken, splitting) edge removed,
// and the children are every module-interface-typed direct child reachable
// from splitPoint.
func NewSplitState(p *BFSPath, splitPoint *gg.Interface) (*SplitState, error) {
	children, err := GetSplitChildren(splitPoint)
	if err != nil {
		return nil, err
	}
	s := &SplitState{
		SplitPrefix:         p.Path().WithoutLast(),
		children:            children,
		suffixCompletePaths: make(map[*gg.Interface][]*BFSPath, len(children)),
		waitPaths:           make(map[*gg.Interface][]*BFSPath, len(children)),
	}
	for _, c := range children {
		s.suffixCompletePaths[c] = nil
		s.waitPaths[c] = nil
	}
	return s, nil
}

// GetSplitChildren returns the parent-side interface of every direct,
// module-interface-typed child of splitPoint's owning node — the candidate
// branches a down-crossing through splitPoint must eventually cover.
func GetSplitChildren(splitPoint *gg.Interface) ([]*gg.Interface, error) {
	edges, err := splitPoint.GetChildren()
	if err != nil {
		return nil, err
	}
	var out []*gg.Interface
	for _, e := range edges {
		if e.Node == nil {
			continue
		}
		t, terr := e.Node.GetType()
		if terr != nil || !t.IsModuleInterface() {
			continue
		}
		out = append(out, e.ChildGIF)
	}
	return out, nil
}

// SplitKey builds a stable lookup key for a (splitPoint, prefix) pair.
// Path values aren't comparable in Go (they wrap a slice), so the filter
// pipeline indexes open splits by this string instead of the path itself.
func SplitKey(splitPoint *gg.Interface, prefix gg.Path) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%p|", splitPoint)
	for i := 0; i < prefix.Len(); i++ {
		fmt.Fprintf(&b, "%p,", prefix.At(i))
	}
	return b.String()
}

// RecordSuffix records that child produced a path whose suffix (the part
// past the split) ends at p. It returns true if every child now has at
// least one suffix ending at the same interface, meaning the split is
// resolved.
func (s *SplitState) RecordSuffix(child *gg.Interface, p *BFSPath) bool {
	s.suffixCompletePaths[child] = append(s.suffixCompletePaths[child], p)
	return s.allChildrenReachSameEnd(p.Last())
}

func (s *SplitState) allChildrenReachSameEnd(end *gg.Interface) bool {
	for _, c := range s.children {
		found := false
		for _, sp := range s.suffixCompletePaths[c] {
			if sp.Last() == end {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Hibernate parks p as a waiting path for child, to be woken once another
// child's branch needs company.
func (s *SplitState) Hibernate(child *gg.Interface, p *BFSPath) {
	p.Hibernated = true
	s.waitPaths[child] = append(s.waitPaths[child], p)
}

// WakeOneWaiting wakes the most recently hibernated path for any child other
// than skip that still has one waiting, signalling it to resume discovery.
// It returns false if no other child has a waiting path, in which case the
// split should mark itself Waiting instead.
func (s *SplitState) WakeOneWaiting(skip *gg.Interface) bool {
	for _, c := range s.children {
		if c == skip {
			continue
		}
		queue := s.waitPaths[c]
		if len(queue) == 0 {
			continue
		}
		last := queue[len(queue)-1]
		s.waitPaths[c] = queue[:len(queue)-1]
		last.Hibernated = false
		last.WakeSignal = true
		return true
	}
	return false
}

// AllSuffixPaths returns every suffix path recorded for every child,
// flattened — the set promoted to strong once the split fully resolves.
func (s *SplitState) AllSuffixPaths() []*BFSPath {
	var out []*BFSPath
	for _, c := range s.children {
		out = append(out, s.suffixCompletePaths[c]...)
	}
	return out
}
