// Package pathgraph implements a typed hierarchical graph and a constrained
// breadth-first path-finding engine for discovering valid connection paths
// between module interfaces.
//
// # Scope
//
// The engine is three layers, leaves first:
//
//	types/graph   TypeInfo, Interface (and its variants), Link (and its
//	              variants), Node, Graph, Path — the data model and its
//	              invariants (bidirectional edges, the self/children/parent
//	              triad per node, graph merging on cross-graph connect).
//	graph/query   BFSPath, the BFS visit loop, Counter, SplitState, and the
//	              ten-stage PathFinder filter pipeline built on top of it.
//	(this package) NewGraph, NewNode, NewInterface, NewTypeInfo, Finder,
//	              FindPaths — the facade a host embeds the engine with.
//
// A host builds nodes, wires their interfaces with links, then calls
// FindPaths(src, dsts). The PathFinder drives BFS from src.Self; every
// visited path runs through the filter pipeline; paths that reach a Self
// interface of the same node type as src, with an empty unresolved
// hierarchy stack and every split branch covered, are returned strong.
//
// What is deliberately out of scope: persistence, distribution, concurrent
// mutation of a single graph during a search, visualization, and type
// inference over the node-type lattice — the engine consumes a host-supplied
// subtype relation (graphinterfaces.TypeHandle) rather than computing one.
//
// # Packages
//
//   - types/graph: the data model.
//   - graph/query: the BFS engine and filter pipeline.
//   - config: EngineConfig, the explicit PathLimits and per-run measurement
//     switch a caller passes into FindPaths.
//   - metric: Prometheus registration, plus PathFinderObserver, an optional
//     graphinterfaces.PathObserver a caller can wire into a Finder.
//   - errors: the three-class (Transient/Invalid/Fatal) error classification
//     shared across the engine.
//   - pkg/graphinterfaces: the two small contracts (TypeHandle, PathObserver)
//     that let types/graph and graph/query stay decoupled from any specific
//     host type registry or metrics backend.
//   - pkg/worker: a generic worker pool, used by cmd/pathbench to fan out
//     independent FindPaths calls over independently built graphs.
//   - cmd/pathbench: a benchmarking CLI that builds synthetic hierarchies
//     and reports path counts and search timings.
package pathgraph
