package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the console styles bound to one output renderer
type Styles struct {
	Title     lipgloss.Style
	Status    lipgloss.Style
	Warn      lipgloss.Style
	Error     lipgloss.Style
	Info      lipgloss.Style
	Box       lipgloss.Style
	Highlight lipgloss.Style
}

// NewStyles creates styles for w; color is dropped when w is not a terminal
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary)),

		Status: r.NewStyle().
			Foreground(lipgloss.Color(colorSuccess)),

		Warn: r.NewStyle().
			Foreground(lipgloss.Color(colorWarn)),

		Error: r.NewStyle().
			Foreground(lipgloss.Color(colorError)),

		Info: r.NewStyle().
			Foreground(lipgloss.Color(colorInfo)),

		Box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(0, 1),

		Highlight: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorHighlight)).
			Background(lipgloss.Color(colorPrimary)).
			Padding(0, 1),
	}
}
