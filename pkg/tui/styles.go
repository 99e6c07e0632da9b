package tui

import (
	"github.com/charmbracelet/lipgloss/v2"
)

// Styles controls how the calendar grid and the day panel are drawn.
type Styles struct {
	Header   lipgloss.Style
	Outside  lipgloss.Style
	Empty    lipgloss.Style
	Busy     lipgloss.Style
	Conflict lipgloss.Style
	Today    lipgloss.Style
	Cursor   lipgloss.Style
	Picked   lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
}

// DefaultStyles returns the palette used by the calendar UI.
func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		Outside:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Busy:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		Conflict: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Today:    lipgloss.NewStyle().Underline(true),
		Cursor:   lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
		Picked:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}
