package tui

import "github.com/rhizome-dev/rhizome/pkg/models"

// State is the interaction state machine: the current mode, the tree
// selection, and a transient footer message. It owns the tree for the
// life of the process; every mutation flows through dispatch, one
// intent at a time, so the store can never be observed mid-workflow.
type State struct {
	tree     *models.Tree
	selected models.NodeID // NoNode when the tree is empty
	mode     mode
	message  string
}

// NewState wraps a loaded tree, selecting the first visible node.
func NewState(tree *models.Tree) *State {
	s := &State{tree: tree, mode: browsing{}}
	if rows := tree.Flatten(); len(rows) > 0 {
		s.selected = rows[0].ID
	}
	return s
}

// Tree exposes the store for persistence on exit.
func (s *State) Tree() *models.Tree {
	return s.tree
}

// Message returns the transient footer message, if any.
func (s *State) Message() string {
	return s.message
}

// Selected returns the current selection (NoNode if the tree is empty).
func (s *State) Selected() models.NodeID {
	return s.selected
}

// selectionIndex locates id in the display list, -1 if absent.
func (s *State) selectionIndex(rows []models.Row, id models.NodeID) int {
	for i, row := range rows {
		if row.ID == id {
			return i
		}
	}
	return -1
}

// moveSelection shifts the browsing selection by delta display rows,
// clamped to the list.
func (s *State) moveSelection(delta int) {
	rows := s.tree.Flatten()
	if len(rows) == 0 {
		s.selected = models.NoNode
		return
	}
	idx := s.selectionIndex(rows, s.selected)
	if idx < 0 {
		s.selected = rows[0].ID
		return
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(rows) {
		idx = len(rows) - 1
	}
	s.selected = rows[idx].ID
}

// moveCursor shifts a move-target cursor by delta over the candidate
// parents: the root slot first, then every node in display order.
func (s *State) moveCursor(cursor models.NodeID, delta int) models.NodeID {
	candidates := []models.NodeID{models.NoNode}
	for _, row := range s.tree.Flatten() {
		candidates = append(candidates, row.ID)
	}
	idx := 0
	for i, id := range candidates {
		if id == cursor {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(candidates) {
		idx = len(candidates) - 1
	}
	return candidates[idx]
}

// fallbackSelection picks where the selection should land once id and
// its subtree are gone: the previous sibling, else the next sibling,
// else the parent, else NoNode (caller falls back to the first root).
func (s *State) fallbackSelection(id models.NodeID) models.NodeID {
	node, ok := s.tree.Get(id)
	if !ok {
		return models.NoNode
	}
	var siblings []models.NodeID
	if node.IsRoot() {
		siblings = s.tree.Roots()
	} else if children, err := s.tree.ChildrenOf(node.Parent); err == nil {
		siblings = children
	}
	for i, sib := range siblings {
		if sib != id {
			continue
		}
		if i > 0 {
			return siblings[i-1]
		}
		if i+1 < len(siblings) {
			return siblings[i+1]
		}
		break
	}
	return node.Parent
}

func containsNode(ids []models.NodeID, id models.NodeID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
