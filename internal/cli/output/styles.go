package output

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/sqlaide/pkg/core"
)

// Styles holds the lipgloss styles used by commands.
type Styles struct {
	Header  lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
}

// NewStyles builds styles bound to a lipgloss renderer.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		Success: r.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Info:    r.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

// Consequence returns the style for a lint consequence.
func (s *Styles) Consequence(c core.Consequence) lipgloss.Style {
	switch {
	case c.IsFatal():
		return s.Error
	case c == core.WarningDDL || c == core.WarningDML || c == core.WarningDQL:
		return s.Warning
	case c == core.ConventionDDL || c == core.ConventionDML || c == core.ConventionDQL:
		return s.Info
	default:
		return s.Muted
	}
}
