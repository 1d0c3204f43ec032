package main

import (
	"fmt"

	pathgraph "github.com/atopile/pathgraph"
	gg "github.com/atopile/pathgraph/types/graph"
)

// benchType is the minimal graphinterfaces.TypeHandle this benchmark needs:
// a flat lattice with a single distinguished ModuleInterface type, since the
// engine's node-type lattice is explicitly out of scope (spec.md §1
// Non-goals).
type benchType struct {
	id                string
	name              string
	isModuleInterface bool
}

func (t benchType) TypeID() string         { return t.id }
func (t benchType) SuperTypeIDs() []string { return nil }
func (t benchType) IsModuleInterface() bool { return t.isModuleInterface }
func (t benchType) TypeName() string        { return t.name }

var moduleType = pathgraph.NewTypeInfo(benchType{id: "module", name: "Module", isModuleInterface: true})

// buildFanoutGraph builds a balanced hierarchy, branching children deep at
// each of depth levels under a single root, every node typed ModuleInterface
// so the BFS can cross between hierarchy levels freely, then wires every
// leaf's ModuleConnection interface into its neighbors in a ring so the
// search actually has paths to find between any two leaves.
func buildFanoutGraph(depth, branching int) (src *gg.Interface, dsts []*gg.Interface, err error) {
	root := gg.NewNode()
	if err := root.AssignHandle(moduleType); err != nil {
		return nil, nil, err
	}

	var leaves []*gg.Node
	var build func(parent *gg.Node, level int) error
	build = func(parent *gg.Node, level int) error {
		if level == depth {
			leaves = append(leaves, parent)
			return nil
		}
		for i := 0; i < branching; i++ {
			child := gg.NewNode()
			if err := child.AssignHandle(moduleType); err != nil {
				return err
			}
			name := fmt.Sprintf("c%d", i)
			if err := parent.Children().ConnectWith(child.Parent(), gg.NewNamedParentLink(name)); err != nil {
				return err
			}
			if err := build(child, level+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := build(root, 0); err != nil {
		return nil, nil, err
	}

	mcs := make([]*gg.Interface, len(leaves))
	for i, leaf := range leaves {
		mc := gg.NewModuleConnectionInterface()
		if err := leaf.Adopt(mc, "mc"); err != nil {
			return nil, nil, err
		}
		mcs[i] = mc
	}
	for i := range mcs {
		next := (i + 1) % len(mcs)
		if next == i {
			break
		}
		if err := mcs[i].Connect(mcs[next]); err != nil {
			return nil, nil, err
		}
	}

	dsts = make([]*gg.Interface, len(leaves))
	for i, leaf := range leaves {
		dsts[i] = leaf.Self()
	}
	return leaves[0].Self(), dsts, nil
}
