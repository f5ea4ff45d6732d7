package tui

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/rhizome-dev/rhizome/pkg/models"
)

// dispatch advances the state machine by one intent and reports
// whether the program should terminate. It is total: an intent that
// means nothing in the current mode is ignored, and store errors
// degrade to a footer message — they never escape, and they never
// leave a half-applied mutation behind.
func (s *State) dispatch(in intent) bool {
	s.message = ""

	switch m := s.mode.(type) {
	case browsing:
		return s.dispatchBrowsing(in)
	case enteringTitle:
		s.dispatchEnteringTitle(m, in)
	case enteringContent:
		s.dispatchEnteringContent(m, in)
	case editingContent:
		s.dispatchEditingContent(m, in)
	case editingTitle:
		s.dispatchEditingTitle(m, in)
	case selectingMoveTarget:
		s.dispatchSelectingMoveTarget(m, in)
	case confirmingDelete:
		s.dispatchConfirmingDelete(m, in)
	case confirmingFailure:
		s.dispatchConfirmingFailure(m, in)
	}
	return false
}

func (s *State) dispatchBrowsing(in intent) bool {
	switch in.kind {
	case intentQuit:
		return true
	case intentMoveSelectionUp:
		s.moveSelection(-1)
	case intentMoveSelectionDown:
		s.moveSelection(1)
	case intentStartAdd:
		s.mode = enteringTitle{parent: s.selected}
	case intentStartEdit:
		if node, ok := s.tree.Get(s.selected); ok {
			s.mode = editingContent{target: node.ID, buffer: node.Content}
		}
	case intentStartRename:
		if node, ok := s.tree.Get(s.selected); ok {
			s.mode = editingTitle{target: node.ID, buffer: node.Title}
		}
	case intentStartMove:
		if s.selected != models.NoNode {
			s.mode = selectingMoveTarget{target: s.selected, cursor: s.selected}
		}
	case intentStartDelete:
		if s.selected != models.NoNode {
			s.mode = confirmingDelete{target: s.selected}
		}
	case intentStartMarkFailed:
		node, ok := s.tree.Get(s.selected)
		if !ok {
			break
		}
		if node.Status == models.StatusFailed {
			// A failed policy toggles straight back to active.
			if err := s.tree.Reactivate(node.ID); err != nil {
				s.message = err.Error()
				break
			}
			s.message = "Policy restored to active"
			break
		}
		s.mode = confirmingFailure{target: node.ID}
	case intentCopyContent:
		node, ok := s.tree.Get(s.selected)
		if !ok {
			break
		}
		if err := clipboard.WriteAll(node.Content); err != nil {
			s.message = fmt.Sprintf("Copy failed: %v", err)
			break
		}
		s.message = "Content copied to clipboard"
	}
	return false
}

func (s *State) dispatchEnteringTitle(m enteringTitle, in intent) {
	switch in.kind {
	case intentConfirm:
		// Title is required; an empty confirm is a no-op.
		if m.buffer != "" {
			s.mode = enteringContent{parent: m.parent, title: m.buffer}
		}
	case intentCancel:
		s.mode = browsing{}
	case intentInputChar:
		m.buffer += string(in.ch)
		s.mode = m
	case intentBackspace:
		m.buffer = trimLastRune(m.buffer)
		s.mode = m
	}
}

func (s *State) dispatchEnteringContent(m enteringContent, in intent) {
	switch in.kind {
	case intentConfirm, intentToggleContentSkip:
		// Content is optional; skip commits with an empty body.
		content := m.buffer
		if in.kind == intentToggleContentSkip {
			content = ""
		}
		id, err := s.tree.Add(m.parent, m.title, content)
		if err != nil {
			s.message = err.Error()
			s.mode = browsing{}
			return
		}
		s.selected = id
		s.mode = browsing{}
		s.message = "Policy added"
	case intentCancel:
		s.mode = browsing{}
	case intentInputChar:
		m.buffer += string(in.ch)
		s.mode = m
	case intentBackspace:
		m.buffer = trimLastRune(m.buffer)
		s.mode = m
	}
}

func (s *State) dispatchEditingContent(m editingContent, in intent) {
	switch in.kind {
	case intentConfirm:
		if err := s.tree.SetContent(m.target, m.buffer); err != nil {
			s.message = err.Error()
		} else {
			s.message = "Content updated"
		}
		s.mode = browsing{}
	case intentCancel:
		s.mode = browsing{}
	case intentInputChar:
		m.buffer += string(in.ch)
		s.mode = m
	case intentBackspace:
		m.buffer = trimLastRune(m.buffer)
		s.mode = m
	}
}

func (s *State) dispatchEditingTitle(m editingTitle, in intent) {
	switch in.kind {
	case intentConfirm:
		if m.buffer == "" {
			return
		}
		if err := s.tree.SetTitle(m.target, m.buffer); err != nil {
			s.message = err.Error()
		} else {
			s.message = "Policy renamed"
		}
		s.mode = browsing{}
	case intentCancel:
		s.mode = browsing{}
	case intentInputChar:
		m.buffer += string(in.ch)
		s.mode = m
	case intentBackspace:
		m.buffer = trimLastRune(m.buffer)
		s.mode = m
	}
}

func (s *State) dispatchSelectingMoveTarget(m selectingMoveTarget, in intent) {
	switch in.kind {
	case intentMoveSelectionUp:
		m.cursor = s.moveCursor(m.cursor, -1)
		s.mode = m
	case intentMoveSelectionDown:
		m.cursor = s.moveCursor(m.cursor, 1)
		s.mode = m
	case intentConfirm:
		err := s.tree.Move(m.target, m.cursor)
		switch {
		case errors.Is(err, models.ErrCycleDetected):
			// Surface the rejection and let the user pick again.
			s.message = "Cannot move a policy into its own subtree"
		case err != nil:
			s.message = err.Error()
			s.mode = browsing{}
		default:
			s.selected = m.target
			s.mode = browsing{}
			s.message = "Policy moved"
		}
	case intentCancel:
		s.mode = browsing{}
	}
}

func (s *State) dispatchConfirmingDelete(m confirmingDelete, in intent) {
	switch in.kind {
	case intentConfirm:
		fallback := s.fallbackSelection(m.target)
		removed, err := s.tree.Delete(m.target)
		s.mode = browsing{}
		if err != nil {
			s.message = err.Error()
			return
		}
		if containsNode(removed, s.selected) {
			s.selected = fallback
		}
		if s.selected == models.NoNode {
			if roots := s.tree.Roots(); len(roots) > 0 {
				s.selected = roots[0]
			}
		}
		s.message = fmt.Sprintf("Deleted %d policies", len(removed))
	case intentCancel:
		s.mode = browsing{}
	}
}

func (s *State) dispatchConfirmingFailure(m confirmingFailure, in intent) {
	switch in.kind {
	case intentConfirm:
		s.mode = browsing{}
		if err := s.tree.MarkFailed(m.target); err != nil {
			s.message = err.Error()
			return
		}
		// Failure voids the sub-goals: delete every child of the
		// now-failed node. This policy composes the two store
		// primitives here rather than living inside the store.
		children, err := s.tree.ChildrenOf(m.target)
		if err != nil {
			s.message = err.Error()
			return
		}
		voided := 0
		for _, child := range children {
			removed, err := s.tree.Delete(child)
			if err != nil {
				s.message = err.Error()
				return
			}
			voided += len(removed)
		}
		s.selected = m.target
		s.message = fmt.Sprintf("Policy failed, %d sub-policies voided", voided)
	case intentCancel:
		s.mode = browsing{}
	}
}

func trimLastRune(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(runes[:len(runes)-1])
}
