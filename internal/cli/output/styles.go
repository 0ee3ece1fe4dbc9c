package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by commands.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Path    lipgloss.Style
	ID      lipgloss.Style
}

// NewStyles builds the styles for renderer's color profile.
func NewStyles(renderer *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Header2: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		Bold:    renderer.NewStyle().Bold(true),
		Muted:   renderer.NewStyle().Foreground(lipgloss.Color("245")),
		Success: renderer.NewStyle().Foreground(lipgloss.Color("42")),
		Warning: renderer.NewStyle().Foreground(lipgloss.Color("214")),
		Error:   renderer.NewStyle().Foreground(lipgloss.Color("196")),
		Info:    renderer.NewStyle().Foreground(lipgloss.Color("81")),
		Path:    renderer.NewStyle().Underline(true),
		ID:      renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("141")),
	}
}
