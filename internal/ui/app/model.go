package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	analyticsdto "poolwatch/internal/modules/analytics/dto"
	authdto "poolwatch/internal/modules/auth/dto"
	poolsdto "poolwatch/internal/modules/pools/dto"
	"poolwatch/internal/platform/observable"
	"poolwatch/internal/selectors"
	"poolwatch/internal/ui/components"
	"poolwatch/internal/ui/theme"
	heatmapview "poolwatch/internal/ui/views/heatmap"
	loginview "poolwatch/internal/ui/views/login"
	poolsview "poolwatch/internal/ui/views/pools"
	reportview "poolwatch/internal/ui/views/report"
)

const requestTimeout = 30 * time.Second

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.

type authPort interface {
	Initialize(ctx context.Context) authdto.SessionOutput
	Login(ctx context.Context, username, password string) (authdto.SessionOutput, bool)
	Register(ctx context.Context, email, username, password string) (authdto.SessionOutput, bool)
	Logout(ctx context.Context) authdto.SessionOutput
	State() observable.Readable[authdto.SessionOutput]
}

type poolsPort interface {
	Refresh(ctx context.Context) poolsdto.RegistryOutput
	Current(ctx context.Context, id int) (poolsdto.CurrentReadingOutput, error)
	Select(id int)
	Scrape(ctx context.Context, id int) (poolsdto.ScrapeOutput, error)
	ScrapeAll(ctx context.Context) ([]poolsdto.ScrapeOutput, error)
	State() observable.Readable[poolsdto.RegistryOutput]
}

type analyticsPort interface {
	Heatmap(ctx context.Context, poolID int) (analyticsdto.HeatmapOutput, error)
	Report(ctx context.Context, poolID int) (analyticsdto.ReportOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabPools tabID = iota
	tabHeatmap
	tabReport
	tabCount
)

var tabLabels = [tabCount]string{"Pools", "Heatmap", "Report"}

// ─── async messages ──────────────────────────────────────────────────────────

// storeChangedMsg carries fresh snapshots of both stores.
type storeChangedMsg struct {
	session  authdto.SessionOutput
	registry poolsdto.RegistryOutput
}

type sessionDoneMsg struct {
	session authdto.SessionOutput
	ok      bool
}

type currentLoadedMsg struct {
	reading poolsdto.CurrentReadingOutput
	err     error
}

type heatmapLoadedMsg struct {
	data analyticsdto.HeatmapOutput
	err  error
}

type reportLoadedMsg struct {
	out analyticsdto.ReportOutput
	err error
}

type scrapeDoneMsg struct {
	results []poolsdto.ScrapeOutput
	err     error
}

type statusMsg string

// ─── store feed ──────────────────────────────────────────────────────────────

// feed turns store notifications into a wake-up signal. Snapshots are read
// when the signal is consumed, so bursts of updates collapse into one
// message carrying the latest state.
type feed struct {
	signal chan struct{}
	once   sync.Once
	unsubs []func()
}

func newFeed() *feed {
	return &feed{signal: make(chan struct{}, 1)}
}

func watch[T any](f *feed, r observable.Readable[T]) {
	f.unsubs = append(f.unsubs, r.Subscribe(func(T) { f.notify() }))
}

func (f *feed) notify() {
	select {
	case f.signal <- struct{}{}:
	default:
	}
}

func (f *feed) close() {
	f.once.Do(func() {
		for _, unsub := range f.unsubs {
			unsub()
		}
	})
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Refresh key.Binding
	Scrape  key.Binding
	Logout  key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Scrape:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "scrape selected (admin)")),
		Logout:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "sign out")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Refresh, k.Scrape},
		{k.Logout, k.Help, k.Palette, k.Quit},
	}
}

var paletteCommands = []components.Command{
	{Name: "pool:select", Usage: "pool:select <id>"},
	{Name: "pool:scrape", Usage: "pool:scrape", Admin: true},
	{Name: "pool:scrape-all", Usage: "pool:scrape-all", Admin: true},
	{Name: "refresh", Usage: "refresh"},
	{Name: "heatmap", Usage: "heatmap"},
	{Name: "report", Usage: "report"},
	{Name: "logout", Usage: "logout"},
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It shows the sign-in form until the
// session is authenticated, then routes between the dashboard tabs. Session
// and registry state live in the stores behind the ports; the model only
// keeps the last snapshot it was sent.
type Model struct {
	auth      authPort
	pools     poolsPort
	analytics analyticsPort

	feed      *feed
	signedIn  observable.Readable[bool]
	admin     observable.Readable[bool]
	canScrape observable.Readable[bool]

	session  authdto.SessionOutput
	registry poolsdto.RegistryOutput

	loginView   loginview.Model
	poolsView   poolsview.Model
	heatmapView heatmapview.Model
	reportView  reportview.Model

	heatmapPool int
	reportPool  int
	currentPool int

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(auth authPort, pools poolsPort, analytics analyticsPort, ceiling float64) Model {
	session := auth.State()
	registry := pools.State()
	f := newFeed()
	watch(f, session)
	watch(f, registry)
	return Model{
		auth:        auth,
		pools:       pools,
		analytics:   analytics,
		feed:        f,
		signedIn:    selectors.IsAuthenticated(session),
		admin:       selectors.IsAdmin(session),
		canScrape:   selectors.CanScrape(session, registry),
		session:     session.Get(),
		registry:    registry.Get(),
		loginView:   loginview.New(),
		poolsView:   poolsview.New(ceiling),
		heatmapView: heatmapview.New(),
		reportView:  reportview.New(),
		activeTab:   tabPools,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(paletteCommands),
		status:      "ready",
	}
}

// Close detaches the model from the stores.
func (m Model) Close() {
	m.feed.close()
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loginView.Init(),
		m.poolsView.Init(),
		m.listenCmd(),
		m.initializeCmd(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case storeChangedMsg:
		return m.applySnapshot(msg)

	case sessionDoneMsg:
		m.loginView.SetBusy(false)
		if !msg.ok {
			m.loginView.SetError(msg.session.Error)
			return m, nil
		}
		m.loginView.Reset()
		if msg.session.User != nil {
			m.status = "signed in as " + msg.session.User.Username
		}
		return m, nil

	case loginview.SubmitMsg:
		return m, m.signInCmd(msg)

	case poolsview.SelectMsg:
		m.pools.Select(msg.ID)
		return m, nil

	case currentLoadedMsg:
		if msg.err != nil {
			m.status = "current reading: " + msg.err.Error()
		} else if msg.reading.PoolID == m.currentPool {
			m.poolsView.SetCurrent(msg.reading)
		}
		return m, nil

	case heatmapLoadedMsg:
		m.heatmapView.SetHeatmap(msg.data, msg.err)
		return m, nil

	case reportLoadedMsg:
		m.reportView.SetReport(msg.out, msg.err)
		return m, nil

	case scrapeDoneMsg:
		m.status = describeScrape(msg)
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if !m.signedIn.Get() {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			break
		}
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the pool list while its filter is open.
		if m.activeTab == tabPools && m.poolsView.Filtering() {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			return m.switchTab((m.activeTab + 1) % tabCount)
		case msg.String() == "shift+tab":
			return m.switchTab((m.activeTab + tabCount - 1) % tabCount)
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			return m, m.palette.Open(m.admin.Get())
		case key.Matches(msg, m.keys.Refresh):
			return m, m.refreshCmd()
		case key.Matches(msg, m.keys.Scrape):
			return m.scrapeSelected()
		case key.Matches(msg, m.keys.Logout):
			return m, m.logoutCmd()
		}
	}

	// Propagate the message to the visible view.
	var viewCmd tea.Cmd
	switch {
	case !m.signedIn.Get():
		m.loginView, viewCmd = m.loginView.Update(msg)
	case m.activeTab == tabPools:
		m.poolsView, viewCmd = m.poolsView.Update(msg)
	case m.activeTab == tabHeatmap:
		m.heatmapView, viewCmd = m.heatmapView.Update(msg)
	case m.activeTab == tabReport:
		m.reportView, viewCmd = m.reportView.Update(msg)
	}
	cmds = append(cmds, viewCmd)
	return m, tea.Batch(cmds...)
}

// applySnapshot pushes new store state into the views and starts the loads
// that a sign-in or a new selection implies.
func (m Model) applySnapshot(msg storeChangedMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.listenCmd()}
	wasSignedIn := m.session.User != nil
	m.session = msg.session
	m.registry = msg.registry

	if m.session.User == nil {
		if wasSignedIn {
			m.heatmapPool, m.reportPool, m.currentPool = 0, 0, 0
			m.activeTab = tabPools
			m.status = "signed out"
		}
		if m.session.Error != "" {
			m.loginView.SetError(m.session.Error)
		}
		return m, tea.Batch(cmds...)
	}
	if !wasSignedIn {
		cmds = append(cmds, m.refreshCmd())
	}

	cmds = append(cmds, m.poolsView.SetRegistry(m.registry))
	if m.registry.SelectedPoolID == nil && len(m.registry.Pools) > 0 {
		m.pools.Select(m.registry.Pools[0].ID)
		return m, tea.Batch(cmds...)
	}
	if id := m.selectedID(); id != 0 && id != m.currentPool {
		m.currentPool = id
		cmds = append(cmds, m.currentCmd(id))
		cmds = append(cmds, m.loadActiveTab())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) switchTab(tab tabID) (tea.Model, tea.Cmd) {
	m.activeTab = tab
	return m, m.loadActiveTab()
}

// loadActiveTab fetches analytics for the selected pool when the visible tab
// is showing another pool's data.
func (m *Model) loadActiveTab() tea.Cmd {
	id := m.selectedID()
	if id == 0 {
		return nil
	}
	switch m.activeTab {
	case tabHeatmap:
		if m.heatmapPool != id {
			m.heatmapPool = id
			return tea.Batch(m.heatmapView.SetLoading(), m.heatmapCmd(id))
		}
	case tabReport:
		if m.reportPool != id {
			m.reportPool = id
			return tea.Batch(m.reportView.SetLoading(), m.reportCmd(id))
		}
	}
	return nil
}

func (m Model) scrapeSelected() (tea.Model, tea.Cmd) {
	if !m.canScrape.Get() {
		if !m.admin.Get() {
			m.status = "scraping needs an admin account"
		} else {
			m.status = "no pool selected"
		}
		return m, nil
	}
	m.status = "scrape requested"
	return m, m.scrapeCmd(m.selectedID())
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if !m.signedIn.Get() {
		return m.loginView.View()
	}
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabPools:
		return m.poolsView.View()
	case tabHeatmap:
		return m.heatmapView.View()
	case tabReport:
		return m.reportView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Dim.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := theme.Title.Render("poolwatch") + "  " + strings.Join(parts, theme.Dim.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Muted).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.session.User != nil {
		user := "● " + m.session.User.Username
		if m.session.User.IsSuperuser {
			user += " (admin)"
		}
		left = theme.Hot.Render(user) + "  " + left
	}
	if m.registry.Error != "" {
		left += "  " + theme.Error.Render(m.registry.Error)
	}
	right := theme.Dim.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Muted).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(msg components.PaletteSubmitMsg) (tea.Model, tea.Cmd) {
	switch msg.Command {
	case "pool:select":
		if len(msg.Args) != 1 {
			m.status = "usage: pool:select <id>"
			return m, nil
		}
		id, err := strconv.Atoi(msg.Args[0])
		if err != nil || !m.hasPool(id) {
			m.status = "unknown pool: " + msg.Args[0]
			return m, nil
		}
		m.pools.Select(id)
		return m, nil

	case "pool:scrape":
		return m.scrapeSelected()

	case "pool:scrape-all":
		if !m.admin.Get() {
			m.status = "scraping needs an admin account"
			return m, nil
		}
		m.status = "scraping all pools"
		return m, m.scrapeAllCmd()

	case "refresh":
		return m, m.refreshCmd()

	case "heatmap":
		return m.switchTab(tabHeatmap)

	case "report":
		return m.switchTab(tabReport)

	case "logout":
		return m, m.logoutCmd()
	}
	m.status = "unknown command: " + msg.Command
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) selectedID() int {
	if m.registry.SelectedPoolID == nil || !m.hasPool(*m.registry.SelectedPoolID) {
		return 0
	}
	return *m.registry.SelectedPoolID
}

func (m Model) hasPool(id int) bool {
	for _, p := range m.registry.Pools {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (m *Model) propagateSize() {
	m.loginView, _ = m.loginView.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.poolsView, _ = m.poolsView.Update(sz)
	m.heatmapView, _ = m.heatmapView.Update(sz)
	m.reportView, _ = m.reportView.Update(sz)
}

func describeScrape(msg scrapeDoneMsg) string {
	if msg.err != nil {
		return "scrape failed: " + msg.err.Error()
	}
	failed := 0
	for _, r := range msg.results {
		if r.Error != "" {
			failed++
		}
	}
	if len(msg.results) == 1 {
		r := msg.results[0]
		if r.Error != "" {
			return "scrape failed: " + r.Error
		}
		return fmt.Sprintf("scrape queued for pool %d (task %s)", r.PoolID, r.TaskID)
	}
	return fmt.Sprintf("scrape queued for %d pools, %d failed", len(msg.results)-failed, failed)
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) listenCmd() tea.Cmd {
	f := m.feed
	session := m.auth.State()
	registry := m.pools.State()
	return func() tea.Msg {
		<-f.signal
		return storeChangedMsg{session: session.Get(), registry: registry.Get()}
	}
}

func (m Model) initializeCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		session := m.auth.Initialize(ctx)
		return sessionDoneMsg{session: session, ok: session.User != nil}
	}
}

func (m Model) signInCmd(submit loginview.SubmitMsg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		var (
			session authdto.SessionOutput
			ok      bool
		)
		if submit.Register {
			session, ok = m.auth.Register(ctx, submit.Email, submit.Username, submit.Password)
		} else {
			session, ok = m.auth.Login(ctx, submit.Username, submit.Password)
		}
		return sessionDoneMsg{session: session, ok: ok}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		m.auth.Logout(ctx)
		return nil
	}
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		registry := m.pools.Refresh(ctx)
		if registry.Error != "" {
			return statusMsg("refresh failed: " + registry.Error)
		}
		return statusMsg(fmt.Sprintf("refreshed %d pools at %s", len(registry.Pools), time.Now().Format("15:04:05")))
	}
}

func (m Model) currentCmd(id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		reading, err := m.pools.Current(ctx, id)
		return currentLoadedMsg{reading: reading, err: err}
	}
}

func (m Model) heatmapCmd(id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		data, err := m.analytics.Heatmap(ctx, id)
		return heatmapLoadedMsg{data: data, err: err}
	}
}

func (m Model) reportCmd(id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		out, err := m.analytics.Report(ctx, id)
		return reportLoadedMsg{out: out, err: err}
	}
}

func (m Model) scrapeCmd(id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		out, err := m.pools.Scrape(ctx, id)
		if err != nil {
			return scrapeDoneMsg{err: err}
		}
		return scrapeDoneMsg{results: []poolsdto.ScrapeOutput{out}}
	}
}

func (m Model) scrapeAllCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*requestTimeout)
		defer cancel()
		results, err := m.pools.ScrapeAll(ctx)
		return scrapeDoneMsg{results: results, err: err}
	}
}
