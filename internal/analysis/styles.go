package analysis

import (
	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all styling definitions for analysis report formatting.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Subtle   lipgloss.Style
	Normal   lipgloss.Style

	CategoryBox lipgloss.Style
	Count       lipgloss.Style
	Amount      lipgloss.Style
	Bar         lipgloss.Style
}

// NewStyles creates a new Styles instance with default styling.
func NewStyles() *Styles {
	return &Styles{
		Title:    cli.TitleStyle,
		Subtitle: cli.SubtitleStyle,
		Success:  cli.SuccessStyle,
		Warning:  cli.WarningStyle,
		Subtle:   cli.SubtleStyle,
		Normal:   lipgloss.NewStyle(),

		CategoryBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cli.SubtleColor).
			Padding(0, 1),
		Count: lipgloss.NewStyle().
			Bold(true).
			Foreground(cli.PrimaryColor),
		Amount: lipgloss.NewStyle().
			Foreground(cli.SuccessColor),
		Bar: lipgloss.NewStyle().
			Foreground(cli.PrimaryColor),
	}
}
