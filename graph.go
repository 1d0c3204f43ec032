package pathgraph

import (
	"log/slog"

	"github.com/atopile/pathgraph/config"
	"github.com/atopile/pathgraph/graph/query"
	"github.com/atopile/pathgraph/pkg/graphinterfaces"
	gg "github.com/atopile/pathgraph/types/graph"
)

// Re-exported types a host builds a design graph out of.
type (
	Graph     = gg.Graph
	Node      = gg.Node
	Interface = gg.Interface
	TypeInfo  = gg.TypeInfo
	Path      = gg.Path
	BFSPath   = query.BFSPath
	Counter   = query.Counter

	EngineConfig = config.EngineConfig
	PathLimits   = config.PathLimits

	TypeHandle   = graphinterfaces.TypeHandle
	PathObserver = graphinterfaces.PathObserver
)

// NewGraph returns a new, empty graph. Freshly constructed interfaces start
// in their own singleton graph; NewGraph is for hosts building fixtures or
// debugging tools that need an explicit empty one.
func NewGraph() *Graph { return gg.NewGraph() }

// NewNode returns a detached node: a fresh self/children/parent triad.
func NewNode() *Node { return gg.NewNode() }

// NewInterface returns a new, detached interface of the requested kind.
// isParent only matters for kind == gg.KindHierarchical; opaqueTag only for
// kind == gg.KindOpaque.
func NewInterface(kind gg.InterfaceKind, isParent bool, opaqueTag string) *Interface {
	switch kind {
	case gg.KindSelf:
		return gg.NewSelfInterface()
	case gg.KindHierarchical:
		return gg.NewHierarchicalInterface(isParent)
	case gg.KindReference:
		return gg.NewReferenceInterface()
	case gg.KindModuleConnection:
		return gg.NewModuleConnectionInterface()
	default:
		return gg.NewOpaqueInterface(opaqueTag)
	}
}

// NewTypeInfo builds a TypeInfo from a host-supplied type handle, the only
// way a Node's AssignHandle is given something to bind.
func NewTypeInfo(handle TypeHandle) *TypeInfo { return gg.NewTypeInfo(handle) }

// Finder wraps a query.PathFinder behind the facade's own names, built once
// per EngineConfig/logger/observer combination and reused across however
// many FindPaths calls a host needs to make.
type Finder struct {
	inner *query.PathFinder
}

// NewFinder builds a Finder. logger and observer are both optional.
func NewFinder(cfg EngineConfig, logger *slog.Logger, observer PathObserver) *Finder {
	return &Finder{inner: query.NewPathFinder(cfg, logger, observer)}
}

// FindPaths runs one constrained BFS from src.Self to every Self interface
// reachable that shares src's node type, validating src and dsts are all
// ModuleInterface-typed first. See query.PathFinder.FindPaths for the full
// contract.
func (f *Finder) FindPaths(src *Interface, dsts []*Interface) ([]*BFSPath, []Counter, error) {
	return f.inner.FindPaths(src, dsts)
}

// FindPaths is a convenience wrapper for a single ad-hoc search under
// config.DefaultEngineConfig(), with no logging or metrics — equivalent to
// NewFinder(config.DefaultEngineConfig(), nil, nil).FindPaths(src, dsts).
func FindPaths(src *Interface, dsts []*Interface) ([]*BFSPath, []Counter, error) {
	return NewFinder(config.DefaultEngineConfig(), nil, nil).FindPaths(src, dsts)
}

// DefaultEngineConfig returns the engine's default path-count budgets.
func DefaultEngineConfig() EngineConfig { return config.DefaultEngineConfig() }
