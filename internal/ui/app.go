package ui

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/five82/storefront/internal/api"
	"github.com/five82/storefront/internal/fetch"
	"github.com/five82/storefront/internal/location"
	"github.com/five82/storefront/internal/logtail"
	"github.com/five82/storefront/internal/prefs"
	"github.com/five82/storefront/internal/query"
	"github.com/five82/storefront/internal/session"
)

// Actions are the backend operations the console can trigger.
// *fetch.Orchestrator implements it.
type Actions interface {
	Go(ctx context.Context, req fetch.Request)
	AddToCart(ctx context.Context, p api.Product, quantity int) error
	ChangeQuantity(ctx context.Context, productID int64, increase bool) error
	RemoveFromCart(ctx context.Context, productID int64) error
	LoadCart(ctx context.Context) error
	PushCart(ctx context.Context) error
	CompleteCheckout()
	LoadAnalytics(ctx context.Context) error
}

// KeywordBuffer receives search edits; *debounce.Buffer implements it.
type KeywordBuffer interface {
	Set(text string)
	Text() string
}

// Access reports what the signed-in role may open.
type Access interface {
	Role() session.Role
	Privileged() bool
	Dashboard() bool
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Stores    fetch.Stores
	Location  *location.Location
	Keyword   KeywordBuffer
	Actions   Actions
	Session   Access
	Refresh   time.Duration
	ThemeName string
	PrefsPath string
	LogFile   string
}

// logLines is how much of the console log the log view keeps.
const logLines = 200

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	stores    fetch.Stores
	loc       *location.Location
	keyword   KeywordBuffer
	actions   Actions
	access    Access
	refresh   time.Duration
	prefsPath string
	logFile   string

	keys    keyMap
	help    help.Model
	theme   Theme
	spinner spinner.Model
	input   textinput.Model
	logView viewport.Model

	width    int
	height   int
	ready    bool
	showHelp bool
	showLogs bool

	snap     snapshot
	selected int
	flash    string
}

// New creates the Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	refresh := opts.Refresh
	if refresh <= 0 {
		refresh = 250 * time.Millisecond
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.Prompt = "search: "
	input.Placeholder = "keyword"
	input.CharLimit = 64
	if opts.Keyword != nil {
		input.SetValue(opts.Keyword.Text())
	}

	m := Model{
		ctx:       ctx,
		stores:    opts.Stores,
		loc:       opts.Location,
		keyword:   opts.Keyword,
		actions:   opts.Actions,
		access:    opts.Session,
		refresh:   refresh,
		prefsPath: prefsPath,
		logFile:   opts.LogFile,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     GetTheme(opts.ThemeName),
		spinner:   spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		input:     input,
		logView:   viewport.New(80, 20),
	}
	m.snap = takeSnapshot(m.stores, m.loc)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.refresh),
		m.spinner.Tick,
		fetchSnapshotCmd(m.stores, m.loc),
	}
	if cmd := m.enterCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logView.Width = msg.Width
		m.logView.Height = max(msg.Height-3, 1)
		m.ready = true
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{fetchSnapshotCmd(m.stores, m.loc), tickCmd(m.refresh)}
		if m.showLogs {
			cmds = append(cmds, refreshLogsCmd(m.logFile))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.applySnapshot(snapshot(msg))
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.flash = fmt.Sprintf("%s: %s", msg.op, api.UserMessage(msg.err))
		} else {
			m.flash = ""
		}
		m.applySnapshot(takeSnapshot(m.stores, m.loc))
		return m, nil

	case logsMsg:
		m.setLogContent(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	if m.showLogs {
		b.WriteString(m.logView.View())
	} else {
		b.WriteString(m.renderContent())
	}
	return b.String()
}

func (m *Model) applySnapshot(s snapshot) {
	m.snap = s
	if rows := s.rows(); m.selected >= rows {
		m.selected = max(rows-1, 0)
	}
	if !m.input.Focused() && m.keyword != nil {
		if text := m.keyword.Text(); text != m.input.Value() {
			m.input.SetValue(text)
		}
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.input.Focused() {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil
	case key.Matches(msg, m.keys.Logs):
		m.showLogs = !m.showLogs
		if m.showLogs {
			return m, refreshLogsCmd(m.logFile)
		}
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.showLogs = false
		return m, nil
	case key.Matches(msg, m.keys.Views):
		idx := int(msg.String()[0] - '1')
		paths := navPaths()
		if idx >= 0 && idx < len(paths) {
			return m.navigate(paths[idx])
		}
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		return m.navigate(m.nextPath())
	}

	if m.showLogs {
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}
	if m.snap.onCart() {
		return m.handleCartKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Escape):
		m.input.Blur()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before && m.keyword != nil {
		m.keyword.Set(v)
	}
	return m, cmd
}

// handleListKey processes keys for the list views.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.moveSelection(msg) {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextPage):
		m.changePage(1)
		m.snap = takeSnapshot(m.stores, m.loc)
		return m, nil
	case key.Matches(msg, m.keys.PrevPage):
		m.changePage(-1)
		m.snap = takeSnapshot(m.stores, m.loc)
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		if req, ok := fetch.RequestFor(m.loc.Current(), m.roles()); ok && m.actions != nil {
			m.actions.Go(m.ctx, req)
		}
		return m, nil
	case key.Matches(msg, m.keys.Analytics):
		if m.access == nil || !m.access.Privileged() {
			return m, nil
		}
		return m, m.run("load analytics", m.actionFunc(func(a Actions, ctx context.Context) error { return a.LoadAnalytics(ctx) }))
	}

	if !m.snap.filterable() {
		return m, nil
	}
	values := m.loc.Values()
	switch {
	case key.Matches(msg, m.keys.ToggleSort):
		m.loc.SetParams(query.ToggleSort(values))
	case key.Matches(msg, m.keys.CycleCategory):
		m.loc.SetParams(query.WithCategory(values, m.nextCategory(values.Get(query.ParamCategory))))
	case key.Matches(msg, m.keys.ClearFilters):
		m.loc.SetParams(query.ClearFilters())
	case key.Matches(msg, m.keys.Search):
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.AddToCart):
		items := m.snap.products.Items
		if m.selected < len(items) {
			p := items[m.selected]
			return m, m.run("add to cart", m.actionFunc(func(a Actions, ctx context.Context) error { return a.AddToCart(ctx, p, 1) }))
		}
	}
	m.snap = takeSnapshot(m.stores, m.loc)
	return m, nil
}

// handleCartKey processes keys for the cart view.
func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.moveSelection(msg) {
		return m, nil
	}

	items := m.snap.cart.Items
	var id int64
	if m.selected < len(items) {
		id = items[m.selected].ProductID
	}

	switch {
	case key.Matches(msg, m.keys.Reload):
		return m, m.run("load cart", m.actionFunc(func(a Actions, ctx context.Context) error { return a.LoadCart(ctx) }))
	case key.Matches(msg, m.keys.PushCart):
		return m, m.run("upload cart", m.actionFunc(func(a Actions, ctx context.Context) error { return a.PushCart(ctx) }))
	case key.Matches(msg, m.keys.Checkout):
		if m.actions != nil {
			m.actions.CompleteCheckout()
			m.snap = takeSnapshot(m.stores, m.loc)
			m.selected = 0
		}
		return m, nil
	}
	if id == 0 {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Increase):
		return m, m.run("increase quantity", m.actionFunc(func(a Actions, ctx context.Context) error { return a.ChangeQuantity(ctx, id, true) }))
	case key.Matches(msg, m.keys.Decrease):
		return m, m.run("decrease quantity", m.actionFunc(func(a Actions, ctx context.Context) error { return a.ChangeQuantity(ctx, id, false) }))
	case key.Matches(msg, m.keys.Remove):
		return m, m.run("remove from cart", m.actionFunc(func(a Actions, ctx context.Context) error { return a.RemoveFromCart(ctx, id) }))
	}
	return m, nil
}

func (m *Model) moveSelection(msg tea.KeyMsg) bool {
	rows := m.snap.rows()
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selected < rows-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = max(rows-1, 0)
	default:
		return false
	}
	return true
}

// changePage moves the current list by delta pages, staying inside the
// range the last response reported.
func (m *Model) changePage(delta int) {
	if !m.snap.hasView {
		return
	}
	values := m.loc.Values()
	next := query.Parse(values, m.snap.view.Domain).PageNumber + delta
	if next < 0 {
		return
	}
	meta := m.snap.meta()
	if delta > 0 && (meta.LastPage || (meta.TotalPages > 0 && next >= meta.TotalPages)) {
		return
	}
	m.loc.SetParams(query.WithPage(values, next+1))
	m.selected = 0
}

// nextCategory cycles all → each loaded category → all.
func (m Model) nextCategory(current string) string {
	names := []string{"all"}
	for _, c := range m.snap.categories.Items {
		names = append(names, c.CategoryName)
	}
	if current == "" {
		current = "all"
	}
	for i, n := range names {
		if n == current {
			return names[(i+1)%len(names)]
		}
	}
	return "all"
}

// navPaths lists the views reachable with the number keys.
func navPaths() []string {
	paths := make([]string, 0, len(fetch.Views)+1)
	for _, v := range fetch.Views {
		paths = append(paths, v.Path)
	}
	return append(paths, cartPath)
}

func (m Model) nextPath() string {
	paths := navPaths()
	cur := 0
	for i, p := range paths {
		if p == m.snap.location.Path {
			cur = i
		}
	}
	for i := 1; i <= len(paths); i++ {
		p := paths[(cur+i)%len(paths)]
		if m.allowed(p) {
			return p
		}
	}
	return paths[cur]
}

// allowed reports whether the session may open path. Sellers reach the
// product and order panels; categories and sellers are admin only.
func (m Model) allowed(path string) bool {
	if !strings.HasPrefix(path, "/admin") {
		return true
	}
	if m.access == nil {
		return false
	}
	v, _ := fetch.ViewFor(path)
	switch v.Domain {
	case query.DomainCategories, query.DomainSellers:
		return m.access.Privileged()
	}
	return m.access.Dashboard()
}

func (m Model) navigate(path string) (tea.Model, tea.Cmd) {
	if path == m.snap.location.Path {
		return m, nil
	}
	if !m.allowed(path) {
		m.flash = "not available to " + string(m.role())
		return m, nil
	}
	m.loc.Navigate(path, url.Values{})
	m.snap = takeSnapshot(m.stores, m.loc)
	m.selected = 0
	m.flash = ""
	m.savePrefs()
	return m, m.enterCmd()
}

// enterCmd loads what a view needs besides its own list: the cart, or the
// categories behind the storefront filter.
func (m Model) enterCmd() tea.Cmd {
	if m.actions == nil {
		return nil
	}
	if m.snap.onCart() {
		return m.run("load cart", m.actionFunc(func(a Actions, ctx context.Context) error { return a.LoadCart(ctx) }))
	}
	if m.snap.filterable() {
		ctx, actions := m.ctx, m.actions
		return func() tea.Msg {
			actions.Go(ctx, fetch.Request{Domain: query.DomainCategories})
			return nil
		}
	}
	return nil
}

func (m Model) roles() fetch.RoleSource {
	if m.access == nil {
		return nil
	}
	return m.access
}

func (m Model) role() session.Role {
	if m.access == nil {
		return session.RoleUser
	}
	return m.access.Role()
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, LastPath: m.snap.location.Path})
}

func (m Model) actionFunc(fn func(Actions, context.Context) error) func(context.Context) error {
	actions := m.actions
	return func(ctx context.Context) error { return fn(actions, ctx) }
}

// run executes fn off the event loop and reports the result as an actionMsg.
func (m Model) run(op string, fn func(context.Context) error) tea.Cmd {
	if m.actions == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return actionMsg{op: op, err: fn(ctx)}
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg snapshot

type actionMsg struct {
	op  string
	err error
}

type logsMsg struct {
	entries []logtail.Entry
	err     error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(stores fetch.Stores, loc *location.Location) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(takeSnapshot(stores, loc))
	}
}

func refreshLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		entries, err := logtail.Tail(path, logLines)
		return logsMsg{entries: entries, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
