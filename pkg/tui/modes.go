package tui

import "github.com/rhizome-dev/rhizome/pkg/models"

// mode is the modal state of the UI. Exactly one variant is active at a
// time and each carries only the transient data that mode needs, so
// leaving a mode cannot leave stray input behind: an edit buffer cannot
// outlive the edit.
type mode interface {
	isMode()
}

// browsing is the resting state: navigating the tree.
type browsing struct{}

// enteringTitle is the first step of adding a node. parent is the
// prospective parent (NoNode for a new root); nothing is written to the
// store until the whole flow confirms.
type enteringTitle struct {
	parent models.NodeID
	buffer string
}

// enteringContent is the second step of adding a node, carrying the
// title captured in the first step.
type enteringContent struct {
	parent models.NodeID
	title  string
	buffer string
}

// editingContent rewrites the content of an existing node.
type editingContent struct {
	target models.NodeID
	buffer string
}

// editingTitle renames an existing node.
type editingTitle struct {
	target models.NodeID
	buffer string
}

// selectingMoveTarget picks a new parent for target. cursor is the
// candidate parent under consideration; NoNode means the root slot.
type selectingMoveTarget struct {
	target models.NodeID
	cursor models.NodeID
}

// confirmingDelete awaits a yes/no for a cascading delete.
type confirmingDelete struct {
	target models.NodeID
}

// confirmingFailure awaits a yes/no for marking target failed, which
// also voids (deletes) its sub-policies.
type confirmingFailure struct {
	target models.NodeID
}

func (browsing) isMode()            {}
func (enteringTitle) isMode()       {}
func (enteringContent) isMode()     {}
func (editingContent) isMode()      {}
func (editingTitle) isMode()        {}
func (selectingMoveTarget) isMode() {}
func (confirmingDelete) isMode()    {}
func (confirmingFailure) isMode()   {}
