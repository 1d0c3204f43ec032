package query

import (
	"log/slog"
	"time"

	"github.com/atopile/pathgraph/config"
	pgerrors "github.com/atopile/pathgraph/errors"
	"github.com/atopile/pathgraph/pkg/graphinterfaces"
	gg "github.com/atopile/pathgraph/types/graph"
)

// PathFinder runs one constrained breadth-first search between a source and
// a destination interface: a FIFO queue of BFSPaths, each extension passed
// through the ordered filter pipeline, with the split/join bookkeeping
// hibernating and waking weak branches until every one resolves or the
// search's budgets cut it off.
type PathFinder struct {
	limits  config.PathLimits
	measure bool
	logger  *slog.Logger
	observer graphinterfaces.PathObserver

	filters []*Filter
	splits  map[string]*SplitState

	pathCount int
}

// NewPathFinder builds a PathFinder from cfg, with logger and observer
// optional (nil is a valid, silent no-op for both).
func NewPathFinder(cfg config.EngineConfig, logger *slog.Logger, observer graphinterfaces.PathObserver) *PathFinder {
	return &PathFinder{
		limits:   cfg.Limits,
		measure:  cfg.IndividualMeasurement,
		logger:   logger,
		observer: observer,
		filters:  defaultFilters(),
		splits:   make(map[string]*SplitState),
	}
}

// Counters returns a snapshot of every filter's accumulated Counter, in
// pipeline order, excluding hidden ones (the count filter).
func (pf *PathFinder) Counters() []Counter {
	out := make([]Counter, 0, len(pf.filters))
	for _, f := range pf.filters {
		if f.Hide {
			continue
		}
		out = append(out, f.Counter)
	}
	return out
}

// FindPaths searches the graph reachable from src for every path that ends
// at a Self interface of the same node type as src, subject to the filter
// pipeline and the configured path-count budgets. src and every dst must be
// backed by a ModuleInterface-typed node or FindPaths fails fatally before
// any search runs; dsts themselves do not otherwise narrow the search — a
// path is accepted by the same-end-type validity filter regardless of which
// particular dst it happens to land on. It returns every strong path found;
// weak paths whose splits never resolved are dropped rather than returned
// half-joined, plus the filter counters accumulated over the run. The
// one-element start path [src] is never itself a result. The path budget,
// split states and filter counters start from zero on every call.
func (pf *PathFinder) FindPaths(src *gg.Interface, dsts []*gg.Interface) ([]*BFSPath, []Counter, error) {
	if err := (config.EngineConfig{Limits: pf.limits}).Validate(); err != nil {
		return nil, nil, err
	}
	if err := requireModuleInterface(src); err != nil {
		return nil, nil, err
	}
	for _, dst := range dsts {
		if err := requireModuleInterface(dst); err != nil {
			return nil, nil, err
		}
	}

	pf.pathCount = 0
	pf.splits = make(map[string]*SplitState)
	for _, f := range pf.filters {
		f.Counter = Counter{Name: f.Name, Discovery: f.Discovery, Hide: f.Hide}
	}

	start := time.Now()

	// visited/weakVisited are sized from the search graph's vertex count and
	// indexed by Interface.VIndex(); graphs must not be mutated during a
	// search, so this sizing stays valid for the whole run.
	visited := make([]bool, src.Graph().NodeCount())
	weakVisited := make([]bool, len(visited))

	queue := []*BFSPath{NewBFSPath(src)}
	var complete []*BFSPath
	var waitingHibernated []*BFSPath

	stopped := false

	for len(queue) > 0 && !stopped {
		cur := queue[0]
		queue = queue[1:]

		if cur.Stop {
			stopped = true
			break
		}
		if cur.Hibernated {
			waitingHibernated = append(waitingHibernated, cur)
			continue
		}

		ok := pf.runDiscoveryFilters(cur)
		if cur.Stop {
			stopped = true
		}
		if !ok {
			continue
		}

		// cur survived discovery: mark its visited bits regardless of
		// whether it is about to hibernate or get expanded, matching the
		// weak/strong marking rule applied uniformly to every non-filtered,
		// non-stopped path.
		lastIdx := cur.Last().VIndex()
		weakVisited[lastIdx] = true
		if cur.StrongSignal {
			p := cur.Path()
			for i := 0; i < p.Len(); i++ {
				visited[p.At(i).VIndex()] = true
			}
		} else if cur.Confidence == 1.0 {
			visited[lastIdx] = true
		}

		if cur.Hibernated {
			waitingHibernated = append(waitingHibernated, cur)
			continue
		}

		// A validity-filter outcome only decides whether cur is captured as
		// a result; it never stops cur from being extended further (e.g. a
		// same-typed A-B-C chain must still discover both the A-B and the
		// longer A-B-C path). The start path alone is not a connection.
		if cur.Path().Len() > 1 && pf.runValidityFilters(cur) {
			complete = append(complete, cur)
		}

		pf.wakeHibernated(&waitingHibernated, &queue)

		for next := range cur.Last().Neighbors() {
			idx := next.VIndex()
			if visited[idx] {
				continue
			}
			if weakVisited[idx] && cur.Path().Contains(next) {
				continue
			}
			queue = append(queue, cur.Extend(next))
		}
	}

	// Anything still hibernated when the queue drains never found a sibling
	// to complete its split: those branches stay weak and incomplete
	// forever, so they are dropped rather than returned half-resolved.
	incomplete := len(waitingHibernated)
	for _, p := range waitingHibernated {
		if p.WakeSignal {
			incomplete--
		}
	}

	elapsed := time.Since(start)
	if pf.observer != nil {
		pf.observer.RunFinished(len(complete), incomplete, elapsed)
	}
	if pf.logger != nil {
		pf.logger.Debug("pathfinder run finished",
			"found", len(complete), "incomplete", incomplete, "elapsed", elapsed)
	}

	return complete, pf.Counters(), nil
}

// wakeHibernated requeues every hibernated path that has received a wake
// signal since it was parked, clearing waitingHibernated of them.
func (pf *PathFinder) wakeHibernated(waiting *[]*BFSPath, queue *[]*BFSPath) {
	remaining := (*waiting)[:0]
	for _, p := range *waiting {
		if p.WakeSignal && !p.Hibernated {
			p.WakeSignal = false
			*queue = append(*queue, p)
			continue
		}
		remaining = append(remaining, p)
	}
	*waiting = remaining
}

// runDiscoveryFilters runs the six discovery-stage filters in order,
// stopping at the first failure.
func (pf *PathFinder) runDiscoveryFilters(p *BFSPath) bool {
	for _, f := range pf.filters {
		if !f.Discovery {
			continue
		}
		if !pf.run(f, p) {
			return false
		}
		if p.Stop {
			return false
		}
	}
	return true
}

// runValidityFilters runs the four validity-stage filters in order, stopping
// at the first failure. A path that passes every one of them is a genuine
// result.
func (pf *PathFinder) runValidityFilters(p *BFSPath) bool {
	for _, f := range pf.filters {
		if f.Discovery {
			continue
		}
		if !pf.run(f, p) {
			return false
		}
	}
	return true
}

func (pf *PathFinder) run(f *Filter, p *BFSPath) bool {
	var elapsed time.Duration
	if pf.measure {
		s := time.Now()
		passed := f.fn(pf, p)
		elapsed = time.Since(s)
		f.Counter.Record(passed, elapsed)
		if pf.observer != nil {
			pf.observer.FilterExecuted(f.Name, passed, f.Discovery, elapsed)
		}
		return passed
	}
	passed := f.fn(pf, p)
	f.Counter.Record(passed, 0)
	if pf.observer != nil {
		pf.observer.FilterExecuted(f.Name, passed, f.Discovery, 0)
	}
	return passed
}

// promote records a weak-to-strong transition against the named filter's
// Counter and notifies the observer, if any.
func (pf *PathFinder) promote(filterName string) {
	for _, f := range pf.filters {
		if f.Name == filterName {
			f.Counter.RecordPromotion()
			break
		}
	}
	if pf.observer != nil {
		pf.observer.WeakPromoted(filterName)
	}
}

// requireModuleInterface fails fatally unless i is backed by a node whose
// assigned type is (or subtypes) ModuleInterface.
func requireModuleInterface(i *gg.Interface) error {
	node := i.Node()
	if node == nil {
		return pgerrors.WrapFatal(gg.ErrInvalidSourceOrDestination, "query", "FindPaths", "interface has no owning node")
	}
	t, err := node.GetType()
	if err != nil || !t.IsModuleInterface() {
		return pgerrors.WrapFatal(gg.ErrInvalidSourceOrDestination, "query", "FindPaths", node.Repr())
	}
	return nil
}
