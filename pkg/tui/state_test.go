package tui

import (
	"testing"

	"github.com/rhizome-dev/rhizome/pkg/models"
)

func TestNewStateSelectsFirstRow(t *testing.T) {
	s := newTestState(t)
	if s.Selected() != 1 {
		t.Errorf("expected first display row selected, got %d", s.Selected())
	}

	empty := NewState(models.NewTree())
	if empty.Selected() != models.NoNode {
		t.Errorf("expected no selection on an empty tree, got %d", empty.Selected())
	}
}

func TestMoveSelectionWalksDisplayOrder(t *testing.T) {
	s := newTestState(t)

	// Display order is 1, 2, 4, 3, 5.
	want := []models.NodeID{2, 4, 3, 5, 5}
	for i, id := range want {
		s.dispatch(intent{kind: intentMoveSelectionDown})
		if s.selected != id {
			t.Errorf("step %d: expected selection %d, got %d", i, id, s.selected)
		}
	}
	s.dispatch(intent{kind: intentMoveSelectionUp})
	if s.selected != 3 {
		t.Errorf("expected selection 3 going back up, got %d", s.selected)
	}
}

func TestMoveSelectionClampsAtTop(t *testing.T) {
	s := newTestState(t)
	s.dispatch(intent{kind: intentMoveSelectionUp})
	if s.selected != 1 {
		t.Errorf("expected selection clamped at first row, got %d", s.selected)
	}
}

func TestMoveSelectionOnEmptyTree(t *testing.T) {
	s := NewState(models.NewTree())
	s.dispatch(intent{kind: intentMoveSelectionDown})
	s.dispatch(intent{kind: intentMoveSelectionUp})
	if s.selected != models.NoNode {
		t.Errorf("expected no selection, got %d", s.selected)
	}
}

func TestFallbackSelection(t *testing.T) {
	s := newTestState(t)

	tests := []struct {
		name string
		id   models.NodeID
		want models.NodeID
	}{
		{"first child falls to next sibling", 2, 3},
		{"second child falls to previous sibling", 3, 2},
		{"only child falls to parent", 4, 2},
		{"second root falls to first root", 5, 1},
		{"first root falls to second root", 1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.fallbackSelection(tt.id); got != tt.want {
				t.Errorf("fallbackSelection(%d) = %d, want %d", tt.id, got, tt.want)
			}
		})
	}
}
