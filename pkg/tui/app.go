package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rhizome-dev/rhizome/pkg/models"
)

// App is the bubbletea model wrapping the interaction state machine.
// Update translates raw keys into intents and feeds them to dispatch,
// one at a time; View renders the resulting snapshot. The tree pane
// lives in a viewport so deep trees scroll with the selection.
type App struct {
	state    *State
	treePane viewport.Model

	width  int
	height int
	ready  bool
}

// NewApp wraps a loaded tree.
func NewApp(tree *models.Tree) *App {
	return &App{
		state:    NewState(tree),
		treePane: viewport.New(0, 0),
	}
}

// Tree exposes the store so main can persist it after the program
// exits.
func (a *App) Tree() *models.Tree {
	return a.state.Tree()
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.treePane.Width = msg.Width - 4
		a.treePane.Height = a.treePaneHeight()
		a.ready = true

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			// Ctrl+C quits from anywhere; 'q' is honored only while
			// browsing so a sub-mode cannot be abandoned by accident.
			return a, tea.Quit
		}
		for _, in := range mapKey(a.state.mode, msg) {
			if a.state.dispatch(in) {
				return a, tea.Quit
			}
		}
	}
	return a, nil
}

func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}
	now := time.Now()

	lines := renderTreeLines(a.state, now)
	a.treePane.Height = a.treePaneHeight()
	a.treePane.SetContent(strings.Join(lines, "\n"))
	a.scrollToFocus(lines)

	sections := []string{
		renderHeader(),
		paneStyle.Width(a.width - 2).Render(a.treePane.View()),
	}
	if dialog := renderDialog(a.state); dialog != "" {
		sections = append(sections, lipgloss.Place(a.width, lipgloss.Height(dialog)+1,
			lipgloss.Center, lipgloss.Top, dialog))
	} else {
		sections = append(sections, paneStyle.Width(a.width-2).Render(
			renderDetails(a.state, a.width-2, now)))
	}
	sections = append(sections, renderFooter(a.state))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// treePaneHeight leaves room for the header, the details/dialog area,
// and the footer.
func (a *App) treePaneHeight() int {
	h := a.height - 10
	if h < 3 {
		h = 3
	}
	return h
}

// scrollToFocus keeps the focused row (selection, or move cursor)
// inside the viewport.
func (a *App) scrollToFocus(lines []string) {
	focus := a.focusedLine()
	if focus < 0 || len(lines) == 0 {
		return
	}
	if focus < a.treePane.YOffset {
		a.treePane.SetYOffset(focus)
	} else if focus >= a.treePane.YOffset+a.treePane.Height {
		a.treePane.SetYOffset(focus - a.treePane.Height + 1)
	}
}

// focusedLine returns the index of the focused row within the rendered
// tree lines, accounting for the synthetic root slot in move mode.
func (a *App) focusedLine() int {
	rows := a.state.tree.Flatten()
	if mv, ok := a.state.mode.(selectingMoveTarget); ok {
		if mv.cursor == models.NoNode {
			return 0
		}
		return a.state.selectionIndex(rows, mv.cursor) + 1
	}
	return a.state.selectionIndex(rows, a.state.selected)
}
