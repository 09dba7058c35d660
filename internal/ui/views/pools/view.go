package pools

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	poolsdto "poolwatch/internal/modules/pools/dto"
	"poolwatch/internal/platform/crowd"
	"poolwatch/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────

// SelectMsg is emitted when the cursor moves to another pool.
type SelectMsg struct{ ID int }

// ─── list item ───────────────────────────────────────────────────────────────

type poolItem struct {
	pool    poolsdto.PoolOutput
	count   *int
	ceiling float64
}

func (i poolItem) Title() string { return i.pool.Name }

func (i poolItem) Description() string {
	if !i.pool.IsActive {
		return theme.Dim.Render("inactive")
	}
	if i.count == nil {
		return theme.Dim.Render("no readings yet")
	}
	level := crowd.LevelFromCount(float64(*i.count), i.ceiling)
	return theme.LevelStyle(level).Render(fmt.Sprintf("● %d visitors · %s", *i.count, level))
}

func (i poolItem) FilterValue() string { return i.pool.Name }

// ─── model ───────────────────────────────────────────────────────────────────

// Model lists the registry's pools and shows the selected one. It holds no
// registry state of its own beyond the last snapshot it was given.
type Model struct {
	list     list.Model
	detail   viewport.Model
	spinner  spinner.Model
	registry poolsdto.RegistryOutput
	current  *poolsdto.CurrentReadingOutput
	ceiling  float64
	width    int
	height   int
}

func New(ceiling float64) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Primary).BorderForeground(theme.Primary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.BorderForeground(theme.Primary)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Pools"
	l.Styles.Title = theme.Header
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Text).Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return Model{list: l, detail: vp, spinner: sp, ceiling: ceiling}
}

func (m Model) Init() tea.Cmd { return m.spinner.Tick }

// SetRegistry replaces the displayed snapshot and keeps the cursor on the
// registry's selected pool.
func (m *Model) SetRegistry(r poolsdto.RegistryOutput) tea.Cmd {
	m.registry = r
	latest := make(map[int]int, len(r.LatestVisitors))
	for _, l := range r.LatestVisitors {
		latest[l.PoolID] = l.VisitorCount
	}
	items := make([]list.Item, len(r.Pools))
	for i, p := range r.Pools {
		item := poolItem{pool: p, ceiling: m.ceiling}
		if count, ok := latest[p.ID]; ok {
			item.count = &count
		} else if p.LatestVisitorCount != nil {
			item.count = p.LatestVisitorCount
		}
		items[i] = item
	}
	cmd := m.list.SetItems(items)
	if r.SelectedPoolID != nil {
		for i, p := range r.Pools {
			if p.ID == *r.SelectedPoolID {
				m.list.Select(i)
				break
			}
		}
	}
	if m.current != nil && (r.SelectedPoolID == nil || m.current.PoolID != *r.SelectedPoolID) {
		m.current = nil
	}
	m.detail.SetContent(m.renderDetail())
	return cmd
}

func (m *Model) SetCurrent(reading poolsdto.CurrentReadingOutput) {
	m.current = &reading
	m.detail.SetContent(m.renderDetail())
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	case spinner.TickMsg:
		if m.registry.Loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	prev := m.list.Index()
	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	if m.list.Index() != prev {
		if item, ok := m.list.SelectedItem().(poolItem); ok {
			id := item.pool.ID
			cmds = append(cmds, func() tea.Msg { return SelectMsg{ID: id} })
		}
	}

	var vCmd tea.Cmd
	m.detail, vCmd = m.detail.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.registry.Loading && len(m.registry.Pools) == 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading pools…")
	}
	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := theme.Pane.Width(detailW - 2).Height(m.height - 2).Padding(0).Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m Model) selected() *poolsdto.PoolOutput {
	if m.registry.SelectedPoolID == nil {
		return nil
	}
	for i := range m.registry.Pools {
		if m.registry.Pools[i].ID == *m.registry.SelectedPoolID {
			return &m.registry.Pools[i]
		}
	}
	return nil
}

func (m Model) renderDetail() string {
	var sb strings.Builder
	if m.registry.Error != "" {
		sb.WriteString(theme.Error.Render(m.registry.Error) + "\n\n")
	}
	p := m.selected()
	if p == nil {
		sb.WriteString(theme.Dim.Render("Select a pool to see details"))
		return sb.String()
	}
	sb.WriteString(theme.Title.Render(p.Name) + "\n\n")
	row := func(label, value string) {
		sb.WriteString(theme.Label.Render(fmt.Sprintf("%-10s", label)) + value + "\n")
	}
	row("url", p.URL)
	row("element", p.ElementID)
	row("schedule", fmt.Sprintf("%s-%s every %d min (%s)", p.ScrapeStartTime, p.ScrapeEndTime, p.ScrapeIntervalMinutes, p.Timezone))
	row("active", fmt.Sprintf("%t", p.IsActive))
	row("records", fmt.Sprintf("%d", p.TotalRecords))
	if p.LatestReadingTime != nil {
		row("last scan", p.LatestReadingTime.Format("2006-01-02 15:04"))
	}

	sb.WriteString("\n" + theme.Title.Render("Now") + "\n")
	switch {
	case m.current == nil:
		sb.WriteString(theme.Dim.Render("loading current reading…") + "\n")
	case m.current.VisitorCount == nil:
		msg := m.current.Message
		if msg == "" {
			msg = "no data"
		}
		sb.WriteString(theme.Dim.Render(msg) + "\n")
	default:
		count := *m.current.VisitorCount
		level := crowd.LevelFromCount(float64(count), m.ceiling)
		bar := crowdBar(crowd.Ratio(float64(count), m.ceiling), 24)
		sb.WriteString(theme.LevelStyle(level).Render(fmt.Sprintf("%d visitors  %s", count, strings.ToUpper(string(level)))) + "\n")
		sb.WriteString(theme.LevelStyle(level).Render(bar) + "\n")
		if m.current.Timestamp != nil {
			sb.WriteString(theme.Dim.Render("as of "+m.current.Timestamp.Format("15:04")) + "\n")
		}
	}
	return sb.String()
}

func crowdBar(ratio float64, width int) string {
	filled := int(ratio*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
