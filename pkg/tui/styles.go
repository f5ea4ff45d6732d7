package tui

import "github.com/charmbracelet/lipgloss"

// Color constants
const (
	colorActive   = "170" // Purple for the selection and focused borders
	colorInactive = "240" // Gray for inactive borders
	colorNormal   = "245" // Light gray for normal text
	colorDim      = "241" // Dimmer gray for hints
	colorWarning  = "214" // Orange for warnings and move cursors
	colorDanger   = "196" // Red for failed policies and destructive prompts
	colorSuccess  = "28"  // Green for active policies
	colorSelected = "236" // Dark gray selection background
	colorWhite    = "255"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorActive)).
			Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorInactive)).
			Padding(0, 1)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorActive)).
			Padding(0, 2)

	dangerDialogStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(colorDanger)).
				Padding(0, 2)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(colorActive)).
				Background(lipgloss.Color(colorSelected)).
				Bold(true)

	activeRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSuccess))

	failedRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorDanger))

	cursorRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWarning)).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorWarning))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorNormal))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorDim))

	messageStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)
)
