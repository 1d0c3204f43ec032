package graph

// GraphEdge is one installed connection, exposed read-only for traversal
// callers that need the link alongside its endpoints.
type GraphEdge struct {
	From *Interface
	To   *Interface
	Link Link
}

// Graph is the owner of a connected set of interfaces: it holds the
// authoritative edge list and the forward/simple adjacency caches the BFS
// engine walks. Every interface belongs to exactly one Graph at a time;
// connecting two interfaces in different graphs merges the smaller into the
// larger, re-indexing the drained side's interfaces and marking the drained
// Graph invalidated so any further use of it is a programmer error, not a
// silent no-op.
type Graph struct {
	order       []*Interface
	interfaces  map[*Interface]struct{}
	edges       []GraphEdge
	adjacency   map[*Interface]map[*Interface]Link
	simple      map[*Interface]map[*Interface]struct{}
	invalidated bool
}

// NewGraph returns a new, empty graph. Interface constructors call this
// internally to give every freshly created interface its own singleton
// graph; hosts building test fixtures or debugging tools may also call it
// directly.
func NewGraph() *Graph {
	return &Graph{
		interfaces: make(map[*Interface]struct{}),
		adjacency:  make(map[*Interface]map[*Interface]Link),
		simple:     make(map[*Interface]map[*Interface]struct{}),
	}
}

func (g *Graph) hold(i *Interface) {
	i.graph = g
	i.vIndex = len(g.order)
	g.order = append(g.order, i)
	g.interfaces[i] = struct{}{}
}

func (g *Graph) checkValid() error {
	if g.invalidated {
		return fatal(ErrGraphInvalidated, "checkValid", "graph was drained by a merge")
	}
	return nil
}

// NodeCount returns the number of interfaces (graph vertices) this graph
// owns. In this model a domain Node is a triad of interfaces, so NodeCount
// is the BFS vertex count, not the count of Node objects — that is
// NodeProjection's job.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of installed edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// AllEdges returns every installed edge, each appearing once regardless of
// traversal direction.
func (g *Graph) AllEdges() []GraphEdge {
	out := make([]GraphEdge, len(g.edges))
	copy(out, g.edges)
	return out
}

// VertexAt returns the interface holding vertex index idx, or nil when idx
// is out of range.
func (g *Graph) VertexAt(idx int) *Interface {
	if idx < 0 || idx >= len(g.order) {
		return nil
	}
	return g.order[idx]
}

// GetEdges returns every link incident to from, keyed by the neighbor on the
// other end.
func (g *Graph) GetEdges(from *Interface) map[*Interface]Link {
	m := g.adjacency[from]
	out := make(map[*Interface]Link, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// IsConnected reports whether from and to are joined by a direct edge, and
// returns the link installed between them.
func (g *Graph) IsConnected(from, to *Interface) (Link, bool) {
	m, ok := g.adjacency[from]
	if !ok {
		return nil, false
	}
	l, ok := m[to]
	return l, ok
}

// ConnectedNeighbors returns the simple adjacency set of from: every
// interface reachable in one hop, with no link information.
func (g *Graph) ConnectedNeighbors(from *Interface) map[*Interface]struct{} {
	m := g.simple[from]
	out := make(map[*Interface]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}

func (g *Graph) insertEdge(from, to *Interface, link Link) {
	g.edges = append(g.edges, GraphEdge{From: from, To: to, Link: link})

	if g.adjacency[from] == nil {
		g.adjacency[from] = make(map[*Interface]Link)
	}
	if g.adjacency[to] == nil {
		g.adjacency[to] = make(map[*Interface]Link)
	}
	g.adjacency[from][to] = link
	g.adjacency[to][from] = link

	if g.simple[from] == nil {
		g.simple[from] = make(map[*Interface]struct{})
	}
	if g.simple[to] == nil {
		g.simple[to] = make(map[*Interface]struct{})
	}
	g.simple[from][to] = struct{}{}
	g.simple[to][from] = struct{}{}
}

func (g *Graph) removeEdgeEntry(from, to *Interface) {
	delete(g.adjacency[from], to)
	delete(g.adjacency[to], from)
	delete(g.simple[from], to)
	delete(g.simple[to], from)
	for i, e := range g.edges {
		if (e.From == from && e.To == to) || (e.From == to && e.To == from) {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)
			break
		}
	}
}

// AddEdge installs an already-set-up link into the graph owning its
// endpoints, merging the endpoints' graphs first if they differ. It fails
// with LinkExistsError if the endpoints are already directly connected.
func AddEdge(link Link) error {
	from, to := link.Connections()
	if from == nil || to == nil {
		return fatal(ErrLinkNotSetUp, "AddEdge", "link has no installed endpoints")
	}
	if err := from.graph.checkValid(); err != nil {
		return err
	}
	if err := to.graph.checkValid(); err != nil {
		return err
	}

	sink := mergeGraphs(from.graph, to.graph)

	if existing, ok := sink.adjacency[from][to]; ok {
		return invalid(&LinkExistsError{Existing: existing, New: link}, "AddEdge", "duplicate connection")
	}

	sink.insertEdge(from, to, link)
	return nil
}

// RemoveEdge removes a previously installed link. It fails if the cached
// link at that position differs from the one supplied, since that would
// silently discard state the caller didn't ask to discard.
func RemoveEdge(link Link) error {
	from, to := link.Connections()
	if from == nil || to == nil {
		return fatal(ErrLinkNotSetUp, "RemoveEdge", "link has no installed endpoints")
	}
	g := from.graph
	if err := g.checkValid(); err != nil {
		return err
	}
	cached, ok := g.adjacency[from][to]
	if !ok {
		return invalid(ErrLinkNotSetUp, "RemoveEdge", "no such edge")
	}
	if !cached.Equal(link) {
		return fatal(ErrLinkNotSetUp, "RemoveEdge", "cached link differs from the one supplied")
	}
	g.removeEdgeEntry(from, to)
	return nil
}

// mergeGraphs drains the smaller of a and b into the larger (by interface
// count), re-indexing the drained interfaces' vIndex and graph pointer, and
// returns the surviving graph. If a and b are already the same graph it is
// returned unchanged.
func mergeGraphs(a, b *Graph) *Graph {
	if a == b {
		return a
	}
	sink, drained := a, b
	if len(b.order) > len(a.order) {
		sink, drained = b, a
	}

	for _, iface := range drained.order {
		iface.graph = sink
		iface.vIndex = len(sink.order)
		sink.order = append(sink.order, iface)
		sink.interfaces[iface] = struct{}{}
	}

	sink.edges = append(sink.edges, drained.edges...)

	for from, neighbors := range drained.adjacency {
		if sink.adjacency[from] == nil {
			sink.adjacency[from] = make(map[*Interface]Link, len(neighbors))
		}
		for to, link := range neighbors {
			sink.adjacency[from][to] = link
		}
	}
	for from, neighbors := range drained.simple {
		if sink.simple[from] == nil {
			sink.simple[from] = make(map[*Interface]struct{}, len(neighbors))
		}
		for to := range neighbors {
			sink.simple[from][to] = struct{}{}
		}
	}

	drained.invalidated = true
	drained.order = nil
	drained.interfaces = nil
	drained.adjacency = nil
	drained.simple = nil
	drained.edges = nil

	return sink
}

// NodeProjection returns every distinct Node owning an interface in this
// graph.
func (g *Graph) NodeProjection() map[*Node]struct{} {
	out := make(map[*Node]struct{})
	for iface := range g.interfaces {
		if n := iface.Node(); n != nil {
			out[n] = struct{}{}
		}
	}
	return out
}

// NodesByNames returns every Node in the graph whose full dotted name is a
// key of names, alongside the matched name.
func (g *Graph) NodesByNames(names map[string]struct{}) map[string]*Node {
	out := make(map[string]*Node, len(names))
	for n := range g.NodeProjection() {
		full := n.GetFullName(false)
		if _, ok := names[full]; ok {
			out[full] = n
		}
	}
	return out
}

// BFSVisit runs an unconstrained breadth-first traversal from starts,
// calling visit once per discovered path (as an ordered interface slice);
// visit returns false to stop expanding that particular path further. It is
// the plain graph-level traversal Node.BFSNode builds on; the constrained
// pathfinding engine in graph/query reimplements this loop itself so it can
// track per-path state BFSVisit has no notion of.
func (g *Graph) BFSVisit(starts []*Interface, visit func(path []*Interface) bool) map[*Interface]struct{} {
	visited := make(map[*Interface]struct{})
	seen := make(map[*Interface]struct{})
	queue := make([][]*Interface, 0, len(starts))
	for _, s := range starts {
		queue = append(queue, []*Interface{s})
		seen[s] = struct{}{}
	}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]
		last := path[len(path)-1]

		if !visit(path) {
			visited[last] = struct{}{}
			continue
		}
		visited[last] = struct{}{}

		for neighbor := range g.simple[last] {
			if _, ok := seen[neighbor]; ok {
				continue
			}
			seen[neighbor] = struct{}{}
			next := make([]*Interface, len(path)+1)
			copy(next, path)
			next[len(path)] = neighbor
			queue = append(queue, next)
		}
	}
	return visited
}
