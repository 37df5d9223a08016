package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style of the review screen.
type Theme struct {
	Title       lipgloss.Style
	Amount      lipgloss.Style
	Selected    lipgloss.Style
	Normal      lipgloss.Style
	Muted       lipgloss.Style
	Keywords    lipgloss.Style
	Box         lipgloss.Style
	Primary     lipgloss.Color
	MutedColor  lipgloss.Color
	BorderColor lipgloss.Color
}

// DefaultTheme is the default theme.
var DefaultTheme = newTheme()

func newTheme() Theme {
	primary := lipgloss.Color("#2EB872")
	muted := lipgloss.Color("#737373")
	border := lipgloss.Color("#404040")

	return Theme{
		Primary:     primary,
		MutedColor:  muted,
		BorderColor: border,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#fafafa")).
			MarginBottom(1),
		Amount: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f59e0b")),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Normal: lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle().
			Foreground(muted),
		Keywords: lipgloss.NewStyle().
			Italic(true).
			Foreground(muted),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2),
	}
}
