package models

import "fmt"

// TreeData is the serializable shape of a Tree: a flat node list plus
// the ordered root list and the ID counter. The persistence layer wraps
// this in its on-disk document; the tree itself never touches files.
type TreeData struct {
	NextID NodeID   `yaml:"next_id"`
	Roots  []NodeID `yaml:"roots,flow"`
	Nodes  []Node   `yaml:"nodes"`
}

// Data exports the tree. Nodes are listed in ascending ID order so the
// output is deterministic; structural order lives in Roots and each
// node's Children.
func (t *Tree) Data() TreeData {
	data := TreeData{
		NextID: t.nextID,
		Roots:  append([]NodeID(nil), t.roots...),
	}
	var max NodeID
	for id := range t.nodes {
		if id > max {
			max = id
		}
	}
	for id := NodeID(1); id <= max; id++ {
		if node, ok := t.nodes[id]; ok {
			data.Nodes = append(data.Nodes, node.clone())
		}
	}
	return data
}

// NewTreeFromData rebuilds a tree, verifying the structural invariants
// a well-formed document must satisfy: unique IDs, mutually consistent
// parent/children links, an accurate root list, and no cycles. A
// document that fails any check is rejected whole.
func NewTreeFromData(data TreeData) (*Tree, error) {
	t := NewTree()

	var max NodeID
	for i := range data.Nodes {
		n := data.Nodes[i]
		if n.ID == NoNode {
			return nil, fmt.Errorf("load tree: node %q has no id", n.Title)
		}
		if _, exists := t.nodes[n.ID]; exists {
			return nil, fmt.Errorf("load tree: duplicate node id %d", n.ID)
		}
		c := n.clone()
		t.nodes[n.ID] = &c
		if n.ID > max {
			max = n.ID
		}
	}

	for _, n := range t.nodes {
		if n.Parent != NoNode {
			if _, ok := t.nodes[n.Parent]; !ok {
				return nil, fmt.Errorf("load tree: node %d references missing parent %d", n.ID, n.Parent)
			}
		}
		for _, child := range n.Children {
			cn, ok := t.nodes[child]
			if !ok {
				return nil, fmt.Errorf("load tree: node %d references missing child %d", n.ID, child)
			}
			if cn.Parent != n.ID {
				return nil, fmt.Errorf("load tree: node %d lists child %d whose parent is %d", n.ID, child, cn.Parent)
			}
		}
	}

	for _, root := range data.Roots {
		n, ok := t.nodes[root]
		if !ok {
			return nil, fmt.Errorf("load tree: missing root %d", root)
		}
		if !n.IsRoot() {
			return nil, fmt.Errorf("load tree: root %d has parent %d", root, n.Parent)
		}
	}
	t.roots = append([]NodeID(nil), data.Roots...)

	// Consistent links plus full reachability from the roots rules out
	// both cycles and orphaned subtrees.
	var reached []NodeID
	for _, root := range t.roots {
		t.collect(root, &reached)
	}
	if len(reached) != len(t.nodes) {
		return nil, fmt.Errorf("load tree: %d nodes unreachable from roots", len(t.nodes)-len(reached))
	}

	t.nextID = data.NextID
	if t.nextID <= max {
		// Never hand out an ID that is already in use.
		t.nextID = max + 1
	}
	return t, nil
}
