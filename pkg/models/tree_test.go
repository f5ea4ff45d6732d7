package models

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// buildTree constructs:
//
//	1 root
//	├── 2 child
//	│   └── 4 grandchild
//	└── 3 child
//	5 root
func buildTree(t *testing.T) *Tree {
	t.Helper()
	tree := NewTree()
	ids := []struct {
		parent NodeID
		title  string
	}{
		{NoNode, "root"},
		{1, "child a"},
		{1, "child b"},
		{2, "grandchild"},
		{NoNode, "second root"},
	}
	for i, entry := range ids {
		id, err := tree.Add(entry.parent, entry.title, "")
		if err != nil {
			t.Fatalf("Add(%q) failed: %v", entry.title, err)
		}
		if id != NodeID(i+1) {
			t.Fatalf("expected id %d, got %d", i+1, id)
		}
	}
	return tree
}

func TestAddAssignsFreshActiveNode(t *testing.T) {
	tree := NewTree()
	id, err := tree.Add(NoNode, "Read", "30 min")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	node, ok := tree.Get(id)
	if !ok {
		t.Fatalf("Get(%d) did not find the added node", id)
	}
	if node.Title != "Read" || node.Content != "30 min" {
		t.Errorf("expected title/content Read/30 min, got %q/%q", node.Title, node.Content)
	}
	if node.Status != StatusActive {
		t.Errorf("expected new node to be active, got %q", node.Status)
	}
	if node.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if roots := tree.Roots(); !reflect.DeepEqual(roots, []NodeID{id}) {
		t.Errorf("expected roots [%d], got %v", id, roots)
	}
}

func TestAddUnknownParent(t *testing.T) {
	tree := NewTree()
	if _, err := tree.Add(42, "orphan", ""); !errors.Is(err, ErrParentNotFound) {
		t.Errorf("expected ErrParentNotFound, got %v", err)
	}
	if tree.Len() != 0 {
		t.Errorf("failed add must leave the tree empty, got %d nodes", tree.Len())
	}
}

func TestDeleteCascadesExactly(t *testing.T) {
	tree := buildTree(t)

	removed, err := tree.Delete(2)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !reflect.DeepEqual(removed, []NodeID{2, 4}) {
		t.Errorf("expected removed [2 4], got %v", removed)
	}
	if tree.Len() != 3 {
		t.Errorf("expected 3 remaining nodes, got %d", tree.Len())
	}
	for _, id := range []NodeID{1, 3, 5} {
		if _, ok := tree.Get(id); !ok {
			t.Errorf("node %d outside the subtree must survive", id)
		}
	}
	children, err := tree.ChildrenOf(1)
	if err != nil {
		t.Fatalf("ChildrenOf failed: %v", err)
	}
	if !reflect.DeepEqual(children, []NodeID{3}) {
		t.Errorf("expected node 1 children [3], got %v", children)
	}
}

func TestDeleteRootCascades(t *testing.T) {
	tree := buildTree(t)

	removed, err := tree.Delete(1)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !reflect.DeepEqual(removed, []NodeID{1, 2, 4, 3}) {
		t.Errorf("expected preorder [1 2 4 3], got %v", removed)
	}
	if !reflect.DeepEqual(tree.Roots(), []NodeID{5}) {
		t.Errorf("expected roots [5], got %v", tree.Roots())
	}
}

func TestDeleteUnknown(t *testing.T) {
	tree := buildTree(t)
	before := tree.Data()

	if _, err := tree.Delete(99); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
	if !reflect.DeepEqual(tree.Data(), before) {
		t.Error("failed delete must leave the tree unchanged")
	}
}

func TestIDsNeverReused(t *testing.T) {
	tree := buildTree(t)
	if _, err := tree.Delete(5); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	id, err := tree.Add(NoNode, "new root", "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id != 6 {
		t.Errorf("expected fresh id 6 after deleting node 5, got %d", id)
	}
}

func TestMoveAppendsUnderNewParent(t *testing.T) {
	tree := buildTree(t)

	if err := tree.Move(5, 3); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	node, _ := tree.Get(5)
	if node.Parent != 3 {
		t.Errorf("expected parent 3, got %d", node.Parent)
	}
	children, _ := tree.ChildrenOf(3)
	if !reflect.DeepEqual(children, []NodeID{5}) {
		t.Errorf("expected node 3 children [5], got %v", children)
	}
	if !reflect.DeepEqual(tree.Roots(), []NodeID{1}) {
		t.Errorf("expected roots [1], got %v", tree.Roots())
	}
}

func TestMoveToRootLevel(t *testing.T) {
	tree := buildTree(t)

	if err := tree.Move(4, NoNode); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if !reflect.DeepEqual(tree.Roots(), []NodeID{1, 5, 4}) {
		t.Errorf("expected roots [1 5 4], got %v", tree.Roots())
	}
	children, _ := tree.ChildrenOf(2)
	if len(children) != 0 {
		t.Errorf("expected node 2 to have no children, got %v", children)
	}
}

func TestMoveRejectsCycles(t *testing.T) {
	tree := buildTree(t)
	before := tree.Data()

	tests := []struct {
		name      string
		id        NodeID
		newParent NodeID
	}{
		{"under itself", 1, 1},
		{"under its child", 1, 2},
		{"under its grandchild", 1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tree.Move(tt.id, tt.newParent)
			if !errors.Is(err, ErrCycleDetected) {
				t.Errorf("expected ErrCycleDetected, got %v", err)
			}
			if !reflect.DeepEqual(tree.Data(), before) {
				t.Error("rejected move must leave the tree unchanged")
			}
		})
	}
}

func TestMoveUnknownNodes(t *testing.T) {
	tree := buildTree(t)

	if err := tree.Move(99, 1); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
	if err := tree.Move(1, 99); !errors.Is(err, ErrParentNotFound) {
		t.Errorf("expected ErrParentNotFound, got %v", err)
	}
}

func TestMarkFailedLeavesChildrenToCaller(t *testing.T) {
	tree := buildTree(t)

	if err := tree.MarkFailed(1); err != nil {
		t.Fatalf("MarkFailed failed: %v", err)
	}
	node, _ := tree.Get(1)
	if node.Status != StatusFailed {
		t.Errorf("expected status failed, got %q", node.Status)
	}
	// The store primitive must not touch the subtree; the cascading
	// policy is the interaction layer's job.
	if tree.Len() != 5 {
		t.Errorf("expected all 5 nodes to remain, got %d", tree.Len())
	}
	for _, id := range []NodeID{2, 3, 4} {
		child, _ := tree.Get(id)
		if child.Status != StatusActive {
			t.Errorf("node %d must stay active, got %q", id, child.Status)
		}
	}
}

func TestReactivate(t *testing.T) {
	tree := buildTree(t)
	if err := tree.MarkFailed(3); err != nil {
		t.Fatalf("MarkFailed failed: %v", err)
	}
	if err := tree.Reactivate(3); err != nil {
		t.Fatalf("Reactivate failed: %v", err)
	}
	node, _ := tree.Get(3)
	if node.Status != StatusActive {
		t.Errorf("expected status active, got %q", node.Status)
	}
}

func TestSetTitleAndContent(t *testing.T) {
	tree := buildTree(t)

	if err := tree.SetTitle(2, "renamed"); err != nil {
		t.Fatalf("SetTitle failed: %v", err)
	}
	if err := tree.SetContent(2, "new rule"); err != nil {
		t.Fatalf("SetContent failed: %v", err)
	}
	node, _ := tree.Get(2)
	if node.Title != "renamed" || node.Content != "new rule" {
		t.Errorf("expected renamed/new rule, got %q/%q", node.Title, node.Content)
	}

	if err := tree.SetTitle(99, "x"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestAncestorsAndDepth(t *testing.T) {
	tree := buildTree(t)

	ancestors, err := tree.AncestorsOf(4)
	if err != nil {
		t.Fatalf("AncestorsOf failed: %v", err)
	}
	if !reflect.DeepEqual(ancestors, []NodeID{1, 2}) {
		t.Errorf("expected ancestors [1 2], got %v", ancestors)
	}

	for id, want := range map[NodeID]int{1: 0, 2: 1, 4: 2, 5: 0} {
		depth, err := tree.DepthOf(id)
		if err != nil {
			t.Fatalf("DepthOf(%d) failed: %v", id, err)
		}
		if depth != want {
			t.Errorf("DepthOf(%d) = %d, want %d", id, depth, want)
		}
	}
}

func TestFlattenPreorder(t *testing.T) {
	tree := buildTree(t)

	want := []Row{
		{Depth: 0, ID: 1},
		{Depth: 1, ID: 2},
		{Depth: 2, ID: 4},
		{Depth: 1, ID: 3},
		{Depth: 0, ID: 5},
	}
	if got := tree.Flatten(); !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten() = %v, want %v", got, want)
	}
}

func TestDescendants(t *testing.T) {
	tree := buildTree(t)

	got, err := tree.Descendants(1)
	if err != nil {
		t.Fatalf("Descendants failed: %v", err)
	}
	if !reflect.DeepEqual(got, []NodeID{2, 4, 3}) {
		t.Errorf("expected descendants [2 4 3], got %v", got)
	}

	got, err = tree.Descendants(5)
	if err != nil {
		t.Fatalf("Descendants failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected leaf to have no descendants, got %v", got)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	tree := buildTree(t)

	node, _ := tree.Get(1)
	node.Title = "mutated"
	node.Children[0] = 99

	fresh, _ := tree.Get(1)
	if fresh.Title != "root" {
		t.Error("mutating a Get result must not affect the store")
	}
	if fresh.Children[0] != 2 {
		t.Error("mutating a Get result's children must not affect the store")
	}
}

func TestDaysActive(t *testing.T) {
	now := time.Now()
	node := Node{CreatedAt: now.Add(-5 * 24 * time.Hour)}
	if got := node.DaysActive(now); got != 5 {
		t.Errorf("DaysActive = %d, want 5", got)
	}
	future := Node{CreatedAt: now.Add(time.Hour)}
	if got := future.DaysActive(now); got != 0 {
		t.Errorf("DaysActive for a future timestamp = %d, want 0", got)
	}
}
