package theme

import (
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/medtrack/pkg/glyph"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Title    lipgloss.Style
	Date     lipgloss.Style
	Section  lipgloss.Style
	Faint    lipgloss.Style
	Selected lipgloss.Style
	Modal    lipgloss.Style
	Danger   lipgloss.Style
	Footer   FooterTheme
}

// FooterTheme groups styles used by the bottom status/command bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	faint := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Date:     faint.Italic(true),
		Section:  lipgloss.NewStyle().Bold(true).Underline(true),
		Faint:    faint,
		Selected: lipgloss.NewStyle().Reverse(true),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("212")).
			Padding(1, 2),
		Danger: lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true),
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
		},
	}
}

// Swatch renders an icon in its palette color.
func Swatch(icon glyph.Icon, c glyph.Color) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(icon.String())
}
