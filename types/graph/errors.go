package graph

import (
	"fmt"

	pgerrors "github.com/atopile/pathgraph/errors"
)

// LinkExistsError is returned when connecting two interfaces that are
// already directly connected by a different link.
type LinkExistsError struct {
	Existing Link
	New      Link
}

func (e *LinkExistsError) Error() string {
	return fmt.Sprintf("link already exists: %s (attempted to install %s)", e.Existing.DebugName(), e.New.DebugName())
}

// Sentinel errors for the remaining fatal/invalid conditions of the model.
// Each is wrapped with errors.WrapFatal/WrapInvalid at the call site so a
// host can use errors.IsFatal/errors.IsInvalid without inspecting strings.
var (
	// ErrLinkFiltered is returned when a conditional link's filter rejects
	// the endpoints offered to it at install time.
	ErrLinkFiltered = fmt.Errorf("link rejected by its filter")

	// ErrInvalidParentChild is returned when a Parent/NamedParent link is
	// installed between two interfaces that are not exactly one parent and
	// one child Hierarchical interface.
	ErrInvalidParentChild = fmt.Errorf("parent link requires one parent and one child hierarchical interface")

	// ErrLinkNotSetUp is returned when a link's endpoints are queried, or
	// an edge is inserted, before SetConnections has been called.
	ErrLinkNotSetUp = fmt.Errorf("link has no connections installed yet")

	// ErrLinkAlreadySetUp is returned by Connect/ConnectWith when the
	// caller-supplied link object has already been installed elsewhere.
	ErrLinkAlreadySetUp = fmt.Errorf("link is already set up between a different pair of interfaces")

	// ErrNodeNoParent is returned by Node.GetParentForce when the node has
	// no parent link installed.
	ErrNodeNoParent = fmt.Errorf("node has no parent")

	// ErrReferenceUnbound is returned when a Reference interface is used
	// before it has been connected to a Self interface via a Pointer link.
	ErrReferenceUnbound = fmt.Errorf("reference interface is not bound to a self interface")

	// ErrInvalidSourceOrDestination is returned by FindPaths-adjacent
	// validation when the source or destination interface is not backed by
	// a ModuleInterface-typed node.
	ErrInvalidSourceOrDestination = fmt.Errorf("source and destination must be module-interface typed")

	// ErrGraphInvalidated is returned by AddEdge and RemoveEdge on a Graph
	// that has been drained by a merge into another graph.
	ErrGraphInvalidated = fmt.Errorf("graph has been invalidated by a merge")

	// ErrNotCloneable is returned by ConnectMany and CloneIfAllowed when the
	// link variant does not support cloning.
	ErrNotCloneable = fmt.Errorf("link variant is not cloneable")

	// ErrHandleAlreadyAssigned is returned by Node.AssignHandle when a
	// handle has already been bound to the node.
	ErrHandleAlreadyAssigned = fmt.Errorf("node already has a type handle assigned")

	// ErrNoTypeAssigned is returned by Node.GetType before AssignHandle has
	// been called.
	ErrNoTypeAssigned = fmt.Errorf("node has no type handle assigned")

	// ErrNotHierarchical is returned by Hierarchical-only operations
	// invoked on a non-hierarchical or wrongly-oriented interface.
	ErrNotHierarchical = fmt.Errorf("interface is not a hierarchical interface of the required orientation")
)

func fatal(err error, method, action string) error {
	return pgerrors.WrapFatal(err, "graph", method, action)
}

func invalid(err error, method, action string) error {
	return pgerrors.WrapInvalid(err, "graph", method, action)
}
