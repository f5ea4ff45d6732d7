package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/rhizome-dev/rhizome/pkg/models"
)

// Rendering is a pure mapping from a State snapshot to strings; no
// function here mutates the tree or the mode.

const cursorBlock = "█"

func renderHeader() string {
	return headerStyle.Render("rhizome · policy tree")
}

// renderTreeLines produces one line per visible row. In move mode a
// synthetic "top level" slot is prepended and the cursor is highlighted
// instead of the selection.
func renderTreeLines(s *State, now time.Time) []string {
	rows := s.tree.Flatten()
	mv, moving := s.mode.(selectingMoveTarget)

	var lines []string
	if moving {
		slot := "⌂ top level"
		if mv.cursor == models.NoNode {
			slot = cursorRowStyle.Render("→ " + slot)
		} else {
			slot = hintStyle.Render("  " + slot)
		}
		lines = append(lines, slot)
	}

	if len(rows) == 0 {
		lines = append(lines, hintStyle.Render("No policies yet. Press 'a' to add the first one."))
		return lines
	}

	for _, row := range rows {
		node, ok := s.tree.Get(row.ID)
		if !ok {
			continue
		}

		glyph := "●"
		rowStyle := activeRowStyle
		if node.Status == models.StatusFailed {
			glyph = "✗"
			rowStyle = failedRowStyle
		}

		indent := strings.Repeat("  ", row.Depth)
		prefix := ""
		if row.Depth > 0 {
			prefix = "└ "
		}
		meta := fmt.Sprintf(" · %dd", node.DaysActive(now))
		if node.Streak > 0 {
			meta += fmt.Sprintf(" · streak %d", node.Streak)
		}
		line := fmt.Sprintf("%s%s%s %s%s", indent, prefix, glyph, node.Title, meta)

		switch {
		case moving && mv.cursor == row.ID:
			line = cursorRowStyle.Render("→ " + line)
		case moving && mv.target == row.ID:
			line = hintStyle.Render("  " + line + "  (moving)")
		case !moving && s.selected == row.ID:
			line = selectedRowStyle.Render("  " + line)
		default:
			line = rowStyle.Render("  " + line)
		}
		lines = append(lines, line)
	}
	return lines
}

// renderDetails shows the selected node's full record, content wrapped
// to the pane width.
func renderDetails(s *State, width int, now time.Time) string {
	node, ok := s.tree.Get(s.selected)
	if !ok {
		return hintStyle.Render("Nothing selected")
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(node.Title))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(fmt.Sprintf(
		"created %s · %d days active · streak %d · %s",
		node.CreatedAt.Format("2006-01-02"),
		node.DaysActive(now),
		node.Streak,
		node.Status,
	)))
	b.WriteString("\n")
	content := node.Content
	if content == "" {
		content = hintStyle.Render("(no rule text)")
	} else {
		content = normalStyle.Render(wordwrap.String(content, max(width-4, 20)))
	}
	b.WriteString(content)
	return b.String()
}

// renderFooter is the per-mode help line, joined with any transient
// message from the last dispatch.
func renderFooter(s *State) string {
	var help string
	switch s.mode.(type) {
	case browsing:
		help = "a add · e edit · r rename · m move · d delete · f fail/restore · y copy · ↑/↓ navigate · q quit"
	case enteringTitle:
		help = "enter continue · esc cancel"
	case enteringContent:
		help = "enter save · tab skip content · esc cancel"
	case editingContent, editingTitle:
		help = "enter save · esc cancel"
	case selectingMoveTarget:
		help = "↑/↓ choose new parent · enter/m confirm · esc cancel"
	case confirmingDelete, confirmingFailure:
		help = "y confirm · n cancel"
	}

	line := hintStyle.Render(help)
	if s.message != "" {
		line = lipgloss.JoinHorizontal(lipgloss.Top, line, "  ", messageStyle.Render(s.message))
	}
	return line
}

// renderDialog returns the modal overlay for input and confirmation
// modes, or "" while browsing or picking a move target.
func renderDialog(s *State) string {
	switch m := s.mode.(type) {
	case enteringTitle:
		return dialogStyle.Render(inputBox("New policy", "Title", m.buffer, "title is required"))
	case enteringContent:
		return dialogStyle.Render(inputBox(
			fmt.Sprintf("New policy · %s", m.title),
			"Rule (optional)", m.buffer, "enter to save, tab to skip"))
	case editingContent:
		return dialogStyle.Render(inputBox("Edit rule", "Rule", m.buffer, "enter to save"))
	case editingTitle:
		return dialogStyle.Render(inputBox("Rename policy", "Title", m.buffer, "title is required"))
	case confirmingDelete:
		title, extra := confirmSubject(s, m.target)
		return dangerDialogStyle.Render(fmt.Sprintf(
			"%s\n\nDelete %q%s?\nThis removes the whole subtree and cannot be undone.",
			labelStyle.Render("Confirm delete"), title, extra))
	case confirmingFailure:
		title, extra := confirmSubject(s, m.target)
		return dangerDialogStyle.Render(fmt.Sprintf(
			"%s\n\nMark %q as failed%s?\nIts sub-policies are voided and deleted.",
			labelStyle.Render("Confirm failure"), title, extra))
	}
	return ""
}

func inputBox(title, label, value, hint string) string {
	return fmt.Sprintf("%s\n\n%s: %s%s\n%s",
		labelStyle.Render(title),
		label,
		value,
		cursorBlock,
		hintStyle.Render(hint),
	)
}

// confirmSubject names the node under confirmation and how many
// descendants ride along.
func confirmSubject(s *State, id models.NodeID) (title string, extra string) {
	node, ok := s.tree.Get(id)
	if !ok {
		return "unknown", ""
	}
	descendants, err := s.tree.Descendants(id)
	if err == nil && len(descendants) > 0 {
		extra = fmt.Sprintf(" and %d sub-policies", len(descendants))
	}
	return node.Title, extra
}
