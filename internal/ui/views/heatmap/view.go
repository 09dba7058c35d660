package heatmap

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	analyticsdto "poolwatch/internal/modules/analytics/dto"
	"poolwatch/internal/platform/crowd"
	"poolwatch/internal/ui/theme"
)

const cellWidth = 4

// Model draws a weekday by hour grid coloured by crowd level.
type Model struct {
	viewport viewport.Model
	spinner  spinner.Model
	data     *analyticsdto.HeatmapOutput
	err      error
	loading  bool
	width    int
	height   int
}

func New() Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)
	return Model{viewport: viewport.New(0, 0), spinner: sp}
}

// SetLoading marks a fetch in flight and returns the spinner tick.
func (m *Model) SetLoading() tea.Cmd {
	m.loading = true
	return m.spinner.Tick
}

func (m *Model) SetHeatmap(data analyticsdto.HeatmapOutput, err error) {
	m.loading = false
	m.err = err
	if err == nil {
		m.data = &data
	}
	m.viewport.SetContent(m.render())
	m.viewport.GotoTop()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height
		m.viewport.SetContent(m.render())
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading heatmap…")
	}
	return m.viewport.View()
}

func (m Model) render() string {
	if m.err != nil {
		return theme.Error.Render("Heatmap unavailable: " + m.err.Error())
	}
	if m.data == nil {
		return theme.Dim.Render("Select a pool on the Pools tab to see its heatmap.")
	}
	return Render(*m.data)
}

// Render draws the grid with a legend. Empty slots are left blank.
func Render(h analyticsdto.HeatmapOutput) string {
	var sb strings.Builder
	name := h.PoolName
	if name == "" {
		name = fmt.Sprintf("Pool %d", h.PoolID)
	}
	sb.WriteString(theme.Title.Render(name+" · average visitors by hour") + "\n\n")
	if len(h.Hours) == 0 {
		sb.WriteString(theme.Dim.Render("No readings yet."))
		return sb.String()
	}

	sb.WriteString(strings.Repeat(" ", 5))
	for _, hour := range h.Hours {
		sb.WriteString(theme.Label.Render(fmt.Sprintf("%*d", cellWidth, hour)))
	}
	sb.WriteString("\n")
	for _, row := range h.Rows {
		sb.WriteString(theme.Label.Render(fmt.Sprintf("%-5s", abbreviate(row.Weekday))))
		for _, cell := range row.Cells {
			if cell == nil {
				sb.WriteString(strings.Repeat(" ", cellWidth))
				continue
			}
			text := fmt.Sprintf("%*.0f", cellWidth, cell.Value)
			sb.WriteString(theme.LevelBlock(crowd.Level(cell.Level)).Render(text))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	for _, level := range crowd.Levels {
		sb.WriteString(theme.LevelBlock(level).Render("  ") + " " + string(level) + "  ")
	}
	sb.WriteString(theme.Dim.Render(fmt.Sprintf("\nrange %.0f to %.0f", h.MinValue, h.MaxValue)))
	return sb.String()
}

func abbreviate(day string) string {
	if len(day) > 3 {
		return day[:3]
	}
	return day
}
