package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// intentKind enumerates everything the state machine can be asked to
// do. The set is closed: dispatch is a total function over it and
// simply ignores intents that are meaningless in the current mode.
type intentKind int

const (
	intentQuit intentKind = iota
	intentMoveSelectionUp
	intentMoveSelectionDown
	intentStartAdd
	intentStartEdit
	intentStartRename
	intentStartMove
	intentStartDelete
	intentStartMarkFailed
	intentConfirm
	intentCancel
	intentBackspace
	intentInputChar
	intentToggleContentSkip
	intentCopyContent
)

// intent pairs a kind with its payload; only intentInputChar carries
// one.
type intent struct {
	kind intentKind
	ch   rune
}

// keyMap defines the key bindings, grouped by the mode families that
// interpret them. Bindings double as help text.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Add    key.Binding
	Edit   key.Binding
	Rename key.Binding
	Move   key.Binding
	Delete key.Binding
	Fail   key.Binding
	Copy   key.Binding
	Quit   key.Binding

	Confirm key.Binding
	Cancel  key.Binding
	Skip    key.Binding

	Yes key.Binding
	No  key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	Move: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "move"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Fail: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "fail/restore"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy content"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Skip: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "skip content"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n", "no"),
	),
}

// mapKey translates a raw key press into intents, given the current
// mode: the same key means different things in different modes, and an
// unmapped key produces nothing. A pasted chunk of text fans out into
// one InputChar intent per rune.
func mapKey(m mode, msg tea.KeyMsg) []intent {
	switch m.(type) {
	case browsing:
		switch {
		case key.Matches(msg, keys.Up):
			return one(intentMoveSelectionUp)
		case key.Matches(msg, keys.Down):
			return one(intentMoveSelectionDown)
		case key.Matches(msg, keys.Add):
			return one(intentStartAdd)
		case key.Matches(msg, keys.Edit):
			return one(intentStartEdit)
		case key.Matches(msg, keys.Rename):
			return one(intentStartRename)
		case key.Matches(msg, keys.Move):
			return one(intentStartMove)
		case key.Matches(msg, keys.Delete):
			return one(intentStartDelete)
		case key.Matches(msg, keys.Fail):
			return one(intentStartMarkFailed)
		case key.Matches(msg, keys.Copy):
			return one(intentCopyContent)
		case key.Matches(msg, keys.Quit):
			return one(intentQuit)
		}

	case enteringTitle, enteringContent, editingContent, editingTitle:
		switch msg.Type {
		case tea.KeyEscape:
			return one(intentCancel)
		case tea.KeyEnter:
			return one(intentConfirm)
		case tea.KeyBackspace:
			return one(intentBackspace)
		case tea.KeyTab:
			return one(intentToggleContentSkip)
		case tea.KeySpace:
			return []intent{{kind: intentInputChar, ch: ' '}}
		case tea.KeyRunes:
			intents := make([]intent, 0, len(msg.Runes))
			for _, r := range msg.Runes {
				intents = append(intents, intent{kind: intentInputChar, ch: r})
			}
			return intents
		}

	case selectingMoveTarget:
		switch {
		case key.Matches(msg, keys.Up):
			return one(intentMoveSelectionUp)
		case key.Matches(msg, keys.Down):
			return one(intentMoveSelectionDown)
		case key.Matches(msg, keys.Confirm), key.Matches(msg, keys.Move):
			return one(intentConfirm)
		case key.Matches(msg, keys.Cancel):
			return one(intentCancel)
		}

	case confirmingDelete, confirmingFailure:
		switch {
		case key.Matches(msg, keys.Yes):
			return one(intentConfirm)
		case key.Matches(msg, keys.No):
			return one(intentCancel)
		}
	}
	return nil
}

func one(kind intentKind) []intent {
	return []intent{{kind: kind}}
}
