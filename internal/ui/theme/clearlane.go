package theme

import (
	"github.com/charmbracelet/lipgloss"

	"poolwatch/internal/platform/crowd"
)

func color(c crowd.Color) lipgloss.Color { return lipgloss.Color(string(c)) }

var (
	Base      = color(crowd.BgBase)
	Surface   = color(crowd.BgSurface)
	Muted     = color(crowd.BgMuted)
	Border    = color(crowd.Border)
	Text      = color(crowd.TextPrimary)
	Secondary = color(crowd.TextSecondary)
	Faint     = color(crowd.TextMuted)
	Primary   = color(crowd.Primary)
	Accent    = color(crowd.PrimaryLight)
	Danger    = color(crowd.ColorFull)

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Background(Surface).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Primary)

	Title  = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Dim    = lipgloss.NewStyle().Foreground(Faint)
	Label  = lipgloss.NewStyle().Foreground(Secondary)
	Hot    = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	Error  = lipgloss.NewStyle().Foreground(Danger).Bold(true)
	Header = lipgloss.NewStyle().Background(Primary).Foreground(Surface).Bold(true)
)

// LevelStyle colours text by crowd level.
func LevelStyle(level crowd.Level) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(color(level.Color())).Bold(true)
}

// LevelBlock is a solid cell in the level's colour, used by the heatmap.
func LevelBlock(level crowd.Level) lipgloss.Style {
	return lipgloss.NewStyle().Background(color(level.Color())).Foreground(Text)
}
