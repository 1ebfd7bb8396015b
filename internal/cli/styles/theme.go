// Package styles provides reusable lipgloss-based TUI components.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme holds lipgloss colors and styles for the CLI.
type Theme struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color

	Error   lipgloss.Color
	Warning lipgloss.Color
	Success lipgloss.Color

	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Normal       lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	ErrorStyle   lipgloss.Style
	SuccessStyle lipgloss.Style

	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style

	Badge lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	Box       lipgloss.Style
	BoxHeader lipgloss.Style
}

// NewTheme creates the default dark theme.
func NewTheme() *Theme {
	t := &Theme{
		Background: lipgloss.Color("#0a0a0b"),
		Surface:    lipgloss.Color("#1a1a1b"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#909090"),
		Accent:     lipgloss.Color("#7aa2f7"),
		Border:     lipgloss.Color("#333333"),

		Error:   lipgloss.Color("#ef4444"),
		Warning: lipgloss.Color("#f59e0b"),
		Success: lipgloss.Color("#4ade80"),
	}

	t.Title = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.Subtitle = lipgloss.NewStyle().Foreground(t.Muted)
	t.Normal = lipgloss.NewStyle().Foreground(t.Text)
	t.Subtle = lipgloss.NewStyle().Foreground(t.Muted)
	t.Highlight = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
	t.SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)

	t.ListItem = lipgloss.NewStyle().PaddingLeft(2)
	t.ListItemSelected = lipgloss.NewStyle().
		PaddingLeft(0).
		Bold(true).
		Foreground(t.Accent)

	t.Badge = lipgloss.NewStyle().
		Padding(0, 1).
		Background(t.Surface).
		Foreground(t.Accent)

	t.HelpKey = lipgloss.NewStyle().Bold(true).Foreground(t.Text)
	t.HelpDesc = lipgloss.NewStyle().Foreground(t.Muted)

	t.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 2)
	t.BoxHeader = lipgloss.NewStyle().Bold(true).Foreground(t.Accent).MarginBottom(1)

	return t
}
