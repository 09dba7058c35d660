package report

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	analyticsdto "poolwatch/internal/modules/analytics/dto"
	"poolwatch/internal/ui/theme"
)

// Model shows a markdown report, re-rendered whenever the width changes so
// tables wrap to the terminal.
type Model struct {
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	markdown string
	err      error
	loading  bool
	width    int
	height   int
}

func New() Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)
	r, _ := glamour.NewTermRenderer(glamour.WithStylePath("light"), glamour.WithWordWrap(0))
	return Model{viewport: viewport.New(0, 0), spinner: sp, renderer: r}
}

func (m *Model) SetLoading() tea.Cmd {
	m.loading = true
	return m.spinner.Tick
}

// SetReport keeps the markdown source and renders it locally, since the
// pre-rendered text was wrapped for a different width.
func (m *Model) SetReport(out analyticsdto.ReportOutput, err error) {
	m.loading = false
	m.err = err
	if err == nil {
		m.markdown = out.Markdown
	}
	m.viewport.SetContent(m.renderContent())
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
		if r, err := glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(m.width),
		); err == nil {
			m.renderer = r
		}
		m.viewport.SetContent(m.renderContent())
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
			m.spinner.View()+" Building report…")
	}
	return m.viewport.View()
}

func (m Model) renderContent() string {
	if m.err != nil {
		return theme.Error.Render("Report unavailable: " + m.err.Error())
	}
	if m.markdown == "" {
		return theme.Dim.Render("Select a pool on the Pools tab to see its report.")
	}
	if m.renderer == nil {
		return m.markdown
	}
	out, err := m.renderer.Render(m.markdown)
	if err != nil {
		return m.markdown
	}
	return out
}
