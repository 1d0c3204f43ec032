package query

import gg "github.com/atopile/pathgraph/types/graph"

// BFSPath is a graph.Path plus the mutable, per-search state a live BFS
// needs to decide whether to keep extending it: a confidence weight for weak
// (not-yet-resolved-split) paths, the flags the filter pipeline and the BFS
// loop communicate through, and a copy-on-write handle to the shared
// PathData every filter reads and writes.
//
// graph.Path itself stays immutable and search-agnostic on purpose — many
// independent BFS runs can share the same underlying graph.Path values
// without treading on each other's bookkeeping.
type BFSPath struct {
	path gg.Path
	data *PathData

	// Confidence is 1.0 for a strong (fully resolved) path and < 1.0 for a
	// weak path still waiting on sibling split branches to complete.
	Confidence float64

	Filtered     bool
	Hibernated   bool
	Stop         bool
	WakeSignal   bool
	StrongSignal bool
}

// NewBFSPath starts a fresh, strong, unfiltered BFSPath at start.
func NewBFSPath(start *gg.Interface) *BFSPath {
	return &BFSPath{
		path:       gg.NewPath(start),
		data:       &PathData{},
		Confidence: 1.0,
	}
}

// Path returns the underlying immutable path.
func (p *BFSPath) Path() gg.Path { return p.path }

// Data returns the path's current PathData view. Callers that are about to
// mutate it should go through MutableData instead.
func (p *BFSPath) Data() *PathData { return p.data }

// MutableData returns a PathData this BFSPath exclusively owns. It forks a
// private copy on every call, whether or not the current data is shared.
func (p *BFSPath) MutableData() *PathData {
	p.data = p.data.Clone()
	return p.data
}

// Last returns the path's final interface.
func (p *BFSPath) Last() *gg.Interface { return p.path.Last() }

// Extend returns a new BFSPath one edge longer than p, sharing p's PathData
// (copy-on-write) and inheriting p's confidence as the starting point for
// the filter pipeline to adjust. The flags are not inherited; they start
// cleared.
func (p *BFSPath) Extend(next *gg.Interface) *BFSPath {
	return &BFSPath{
		path:       p.path.WithAppended(next),
		data:       p.data,
		Confidence: p.Confidence,
	}
}

// IsWeak reports whether this path is still waiting on a split to resolve.
func (p *BFSPath) IsWeak() bool { return p.Confidence < 1.0 }
