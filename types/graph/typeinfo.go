package graph

import "github.com/atopile/pathgraph/pkg/graphinterfaces"

// TypeInfo is a precomputed, hashed view of a host type's position in the
// node-type lattice: a supertype id set built once at registration so every
// later subtype test is an O(1) map lookup instead of a lattice walk.
// Building the node-type lattice itself is out of scope; TypeInfo only
// caches what a graphinterfaces.TypeHandle already reports about it.
type TypeInfo struct {
	id                string
	superIDs          map[string]struct{}
	isModuleInterface bool
	name              string
}

// NewTypeInfo builds a TypeInfo from a host-supplied type handle.
func NewTypeInfo(handle graphinterfaces.TypeHandle) *TypeInfo {
	supers := handle.SuperTypeIDs()
	set := make(map[string]struct{}, len(supers))
	for _, id := range supers {
		set[id] = struct{}{}
	}
	return &TypeInfo{
		id:                handle.TypeID(),
		superIDs:          set,
		isModuleInterface: handle.IsModuleInterface(),
		name:              handle.TypeName(),
	}
}

// ID returns the type's own identifier.
func (t *TypeInfo) ID() string { return t.id }

// Name returns the type's display name.
func (t *TypeInfo) Name() string { return t.name }

// IsModuleInterface reports whether this type is, or subtypes, the
// distinguished ModuleInterface type the pathfinder searches between.
func (t *TypeInfo) IsModuleInterface() bool { return t.isModuleInterface }

// IsSubtypeOf reports whether t is the same type as other, or has other as
// one of its transitive supertypes.
func (t *TypeInfo) IsSubtypeOf(other *TypeInfo) bool {
	if t == nil || other == nil {
		return false
	}
	if t.id == other.id {
		return true
	}
	_, ok := t.superIDs[other.id]
	return ok
}

// IsSubtypeOfAny reports whether t is a subtype of any member of others. An
// empty others list matches everything, mirroring an unconstrained type
// filter in a query.
func (t *TypeInfo) IsSubtypeOfAny(others []*TypeInfo) bool {
	if len(others) == 0 {
		return true
	}
	for _, o := range others {
		if t.IsSubtypeOf(o) {
			return true
		}
	}
	return false
}

// Equal reports whether two TypeInfo values describe the same exact type.
func (t *TypeInfo) Equal(other *TypeInfo) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.id == other.id
}
