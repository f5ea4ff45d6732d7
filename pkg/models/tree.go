package models

import (
	"fmt"
	"time"
)

// Tree owns every Node and is the sole way to mutate one. All
// relationships are plain IDs into the node map, which keeps cycle
// detection a simple graph walk and makes cascading deletes atomic
// from the caller's point of view: every mutating operation either
// fully succeeds or returns an error with the tree unchanged.
type Tree struct {
	nodes  map[NodeID]*Node
	roots  []NodeID
	nextID NodeID

	now func() time.Time
}

// Row is one line of the display-ordered flattening of the tree.
type Row struct {
	Depth int
	ID    NodeID
}

// NewTree returns an empty tree. ID assignment starts at 1.
func NewTree() *Tree {
	return &Tree{
		nodes:  make(map[NodeID]*Node),
		nextID: 1,
		now:    time.Now,
	}
}

// Add creates a new active node under parent (NoNode for a root),
// appending it to the parent's children so it displays last among its
// siblings. Returns the fresh ID.
func (t *Tree) Add(parent NodeID, title, content string) (NodeID, error) {
	if parent != NoNode {
		if _, ok := t.nodes[parent]; !ok {
			return NoNode, fmt.Errorf("add %q under %d: %w", title, parent, ErrParentNotFound)
		}
	}

	id := t.nextID
	t.nextID++

	t.nodes[id] = &Node{
		ID:        id,
		Title:     title,
		Content:   content,
		Status:    StatusActive,
		CreatedAt: t.now(),
		Parent:    parent,
	}
	t.attach(id, parent)
	return id, nil
}

// Move detaches id from its current parent and reattaches it under
// newParent (NoNode for root level), appending it at the end of the new
// sibling list. Rejects moves that would make a node its own ancestor.
func (t *Tree) Move(id, newParent NodeID) error {
	node, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("move %d: %w", id, ErrNodeNotFound)
	}
	if newParent != NoNode {
		if _, ok := t.nodes[newParent]; !ok {
			return fmt.Errorf("move %d under %d: %w", id, newParent, ErrParentNotFound)
		}
		// Walk from the proposed parent up to the root. Finding id on
		// that path means newParent is id itself or one of its
		// descendants, which would break acyclicity.
		for cur := newParent; cur != NoNode; cur = t.nodes[cur].Parent {
			if cur == id {
				return fmt.Errorf("move %d under %d: %w", id, newParent, ErrCycleDetected)
			}
		}
	}

	t.detach(id)
	node.Parent = newParent
	t.attach(id, newParent)
	return nil
}

// Delete removes id and its entire subtree. Returns the removed IDs in
// display (preorder) order, for caller-side bookkeeping such as
// clearing a selection that pointed into the subtree. Hard delete: no
// tombstones, and the IDs are never reassigned.
func (t *Tree) Delete(id NodeID) ([]NodeID, error) {
	if _, ok := t.nodes[id]; !ok {
		return nil, fmt.Errorf("delete %d: %w", id, ErrNodeNotFound)
	}

	var removed []NodeID
	t.collect(id, &removed)
	t.detach(id)
	for _, rid := range removed {
		delete(t.nodes, rid)
	}
	return removed, nil
}

// MarkFailed sets the node's status to Failed. It does not touch the
// node's children: the "failure voids sub-goals" policy belongs to the
// interaction layer, which composes this with Delete.
func (t *Tree) MarkFailed(id NodeID) error {
	node, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("mark failed %d: %w", id, ErrNodeNotFound)
	}
	node.Status = StatusFailed
	return nil
}

// Reactivate restores a failed node to Active.
func (t *Tree) Reactivate(id NodeID) error {
	node, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("reactivate %d: %w", id, ErrNodeNotFound)
	}
	node.Status = StatusActive
	return nil
}

// SetTitle replaces the node's title.
func (t *Tree) SetTitle(id NodeID, title string) error {
	node, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("set title %d: %w", id, ErrNodeNotFound)
	}
	node.Title = title
	return nil
}

// SetContent replaces the node's free-form content.
func (t *Tree) SetContent(id NodeID, content string) error {
	node, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("set content %d: %w", id, ErrNodeNotFound)
	}
	node.Content = content
	return nil
}

// SetStreak updates the advisory consecutive-success counter.
func (t *Tree) SetStreak(id NodeID, streak int) error {
	node, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("set streak %d: %w", id, ErrNodeNotFound)
	}
	node.Streak = streak
	return nil
}

// Get returns a copy of the node, so callers never hold an aliased
// reference into the tree.
func (t *Tree) Get(id NodeID) (Node, bool) {
	node, ok := t.nodes[id]
	if !ok {
		return Node{}, false
	}
	return node.clone(), true
}

// ChildrenOf returns the node's direct children in display order.
func (t *Tree) ChildrenOf(id NodeID) ([]NodeID, error) {
	node, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("children of %d: %w", id, ErrNodeNotFound)
	}
	return append([]NodeID(nil), node.Children...), nil
}

// Roots returns the root IDs in display order.
func (t *Tree) Roots() []NodeID {
	return append([]NodeID(nil), t.roots...)
}

// AncestorsOf returns the chain of ancestors ordered root first,
// immediate parent last. A root has no ancestors.
func (t *Tree) AncestorsOf(id NodeID) ([]NodeID, error) {
	node, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("ancestors of %d: %w", id, ErrNodeNotFound)
	}
	var chain []NodeID
	for cur := node.Parent; cur != NoNode; cur = t.nodes[cur].Parent {
		chain = append([]NodeID{cur}, chain...)
	}
	return chain, nil
}

// DepthOf returns the node's depth; roots are at depth 0.
func (t *Tree) DepthOf(id NodeID) (int, error) {
	ancestors, err := t.AncestorsOf(id)
	if err != nil {
		return 0, err
	}
	return len(ancestors), nil
}

// Descendants returns every node in id's subtree, excluding id itself,
// in display order.
func (t *Tree) Descendants(id NodeID) ([]NodeID, error) {
	if _, ok := t.nodes[id]; !ok {
		return nil, fmt.Errorf("descendants of %d: %w", id, ErrNodeNotFound)
	}
	var all []NodeID
	t.collect(id, &all)
	return all[1:], nil
}

// Len reports the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Flatten produces the display list: a preorder walk of every root's
// subtree, each row tagged with its depth.
func (t *Tree) Flatten() []Row {
	var rows []Row
	var walk func(id NodeID, depth int)
	walk = func(id NodeID, depth int) {
		rows = append(rows, Row{Depth: depth, ID: id})
		for _, child := range t.nodes[id].Children {
			walk(child, depth+1)
		}
	}
	for _, root := range t.roots {
		walk(root, 0)
	}
	return rows
}

// collect appends id and its whole subtree to out in preorder.
func (t *Tree) collect(id NodeID, out *[]NodeID) {
	*out = append(*out, id)
	for _, child := range t.nodes[id].Children {
		t.collect(child, out)
	}
}

// attach appends id to its parent's child list, or to the root list.
// The node's Parent field must already be set.
func (t *Tree) attach(id, parent NodeID) {
	if parent == NoNode {
		t.roots = append(t.roots, id)
		return
	}
	p := t.nodes[parent]
	p.Children = append(p.Children, id)
}

// detach removes id from its parent's child list or the root list,
// leaving the node itself in place.
func (t *Tree) detach(id NodeID) {
	node := t.nodes[id]
	if node.IsRoot() {
		t.roots = removeID(t.roots, id)
		return
	}
	p := t.nodes[node.Parent]
	p.Children = removeID(p.Children, id)
}

func removeID(ids []NodeID, id NodeID) []NodeID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
