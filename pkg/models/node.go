package models

import "time"

// NodeID identifies a node within a tree. IDs come from a monotonically
// increasing counter and are never reused, so a stale ID held by the UI
// resolves to "not found" instead of silently naming a different node.
// The zero value means "no node"; a node with Parent == NoNode is a root.
type NodeID uint64

// NoNode is the absent NodeID.
const NoNode NodeID = 0

// Status is the lifecycle state of a policy node.
type Status string

const (
	StatusActive Status = "active"
	StatusFailed Status = "failed"
)

// Node is a single policy entry. Relationships are stored as IDs, never
// as direct references; the owning Tree is the only component allowed
// to mutate a Node.
type Node struct {
	ID        NodeID    `yaml:"id"`
	Title     string    `yaml:"title"`
	Content   string    `yaml:"content,omitempty"`
	Status    Status    `yaml:"status"`
	CreatedAt time.Time `yaml:"created_at"`
	Streak    int       `yaml:"streak"`
	Parent    NodeID    `yaml:"parent,omitempty"`
	Children  []NodeID  `yaml:"children,flow,omitempty"`
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool {
	return n.Parent == NoNode
}

// DaysActive reports how many whole days the node has existed at the
// given instant. Never negative.
func (n *Node) DaysActive(now time.Time) int {
	days := int(now.Sub(n.CreatedAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// clone returns a copy of the node with its own children slice.
func (n *Node) clone() Node {
	c := *n
	if n.Children != nil {
		c.Children = append([]NodeID(nil), n.Children...)
	}
	return c
}
