package ui

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/five82/storefront/internal/api"
	"github.com/five82/storefront/internal/fetch"
	"github.com/five82/storefront/internal/location"
	"github.com/five82/storefront/internal/prefs"
	"github.com/five82/storefront/internal/query"
	"github.com/five82/storefront/internal/session"
	"github.com/five82/storefront/internal/state"
)

type fakeKeyword struct {
	mu   sync.Mutex
	text string
	sets []string
}

func (k *fakeKeyword) Set(text string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.text = text
	k.sets = append(k.sets, text)
}

func (k *fakeKeyword) Text() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.text
}

type fakeActions struct {
	mu        sync.Mutex
	requests  []fetch.Request
	added     []int64
	changes   []string
	removed   []int64
	loads     int
	pushes    int
	checkouts int
	analytics int
	err       error
}

func (a *fakeActions) record(f func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	f()
}

func (a *fakeActions) Go(_ context.Context, req fetch.Request) {
	a.record(func() { a.requests = append(a.requests, req) })
}

func (a *fakeActions) AddToCart(_ context.Context, p api.Product, _ int) error {
	a.record(func() { a.added = append(a.added, p.ProductID) })
	return a.err
}

func (a *fakeActions) ChangeQuantity(_ context.Context, productID int64, increase bool) error {
	op := "-"
	if increase {
		op = "+"
	}
	a.record(func() { a.changes = append(a.changes, op+id(productID)) })
	return a.err
}

func (a *fakeActions) RemoveFromCart(_ context.Context, productID int64) error {
	a.record(func() { a.removed = append(a.removed, productID) })
	return a.err
}

func (a *fakeActions) LoadCart(context.Context) error {
	a.record(func() { a.loads++ })
	return a.err
}

func (a *fakeActions) PushCart(context.Context) error {
	a.record(func() { a.pushes++ })
	return a.err
}

func (a *fakeActions) CompleteCheckout() { a.record(func() { a.checkouts++ }) }

func (a *fakeActions) LoadAnalytics(context.Context) error {
	a.record(func() { a.analytics++ })
	return a.err
}

type harness struct {
	model   Model
	loc     *location.Location
	stores  fetch.Stores
	keyword *fakeKeyword
	actions *fakeActions
	prefs   string
}

func newHarness(t *testing.T, path string, role session.Role) *harness {
	t.Helper()
	h := &harness{
		loc:     location.New(path),
		stores:  fetch.NewStores(),
		keyword: &fakeKeyword{},
		actions: &fakeActions{},
		prefs:   filepath.Join(t.TempDir(), "prefs.toml"),
	}
	h.model = New(Options{
		Stores:    h.stores,
		Location:  h.loc,
		Keyword:   h.keyword,
		Actions:   h.actions,
		Session:   session.New(role),
		PrefsPath: h.prefs,
	})
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

func (h *harness) press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = h.send(keyMsg(k))
	}
	return cmd
}

// exec runs cmd and feeds its message back into the model.
func (h *harness) exec(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if msg := cmd(); msg != nil {
		h.send(msg)
	}
}

func (h *harness) refresh() {
	h.send(snapshotMsg(takeSnapshot(h.stores, h.loc)))
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestPagingRewritesLocation(t *testing.T) {
	h := newHarness(t, "/products", session.RoleUser)
	h.stores.Lists.Products.Replace(nil, state.PaginationMeta{PageNumber: 0, TotalPages: 3})
	h.refresh()

	h.press("n")
	if got := h.loc.Values().Get(query.ParamPage); got != "2" {
		t.Fatalf("page = %q, want 2", got)
	}
	h.press("n")
	if got := h.loc.Values().Get(query.ParamPage); got != "3" {
		t.Fatalf("page = %q, want 3", got)
	}
	h.press("n")
	if got := h.loc.Values().Get(query.ParamPage); got != "3" {
		t.Fatalf("page = %q, want to stay on the last page", got)
	}
	h.press("p", "p", "p")
	if got := h.loc.Values().Get(query.ParamPage); got != "1" {
		t.Fatalf("page = %q, want 1", got)
	}
}

func TestPagingStopsAtLastPage(t *testing.T) {
	h := newHarness(t, "/admin/orders", session.RoleAdmin)
	h.stores.Lists.Orders.Replace(nil, state.PaginationMeta{LastPage: true})
	h.refresh()

	before := h.loc.Current().Navigations
	h.press("n")
	if got := h.loc.Current().Navigations; got != before {
		t.Fatalf("navigations = %d, want %d", got, before)
	}
}

func TestSortCategoryAndClear(t *testing.T) {
	h := newHarness(t, "/products", session.RoleUser)
	h.stores.Lists.Categories.Replace([]api.Category{{CategoryID: 1, CategoryName: "Lamps"}, {CategoryID: 2, CategoryName: "Desks"}}, state.PaginationMeta{})
	h.refresh()

	h.press("s")
	if got := h.loc.Values().Get(query.ParamSort); got != query.SortDesc {
		t.Fatalf("sortby = %q, want desc", got)
	}
	h.press("s")
	if got := h.loc.Values().Get(query.ParamSort); got != query.SortAsc {
		t.Fatalf("sortby = %q, want asc", got)
	}

	wants := []string{"Lamps", "Desks", ""}
	for _, want := range wants {
		h.press("c")
		if got := h.loc.Values().Get(query.ParamCategory); got != want {
			t.Fatalf("category = %q, want %q", got, want)
		}
	}

	h.press("c", "x")
	if got := h.loc.Values(); len(got) != 0 {
		t.Fatalf("values after clear = %v, want none", got)
	}
}

func TestFiltersIgnoredOnDashboardViews(t *testing.T) {
	h := newHarness(t, "/admin/products", session.RoleSeller)
	before := h.loc.Current().Navigations
	h.press("s", "c", "x")
	if got := h.loc.Current().Navigations; got != before {
		t.Fatalf("navigations = %d, want %d", got, before)
	}
}

func TestSearchInputFeedsKeywordBuffer(t *testing.T) {
	h := newHarness(t, "/products", session.RoleUser)

	h.press("/")
	if !h.model.input.Focused() {
		t.Fatalf("input not focused after /")
	}
	h.press("l", "a", "n")
	if got := strings.Join(h.keyword.sets, ","); got != "l,la,lan" {
		t.Fatalf("keyword sets = %q, want l,la,lan", got)
	}
	if h.loc.Values().Get(query.ParamKeyword) != "" {
		t.Fatalf("keystrokes navigated before the buffer committed")
	}

	// Keys typed into the input are not commands.
	if h.loc.Values().Get(query.ParamSort) != "" {
		t.Fatalf("typing changed sort")
	}
	h.press("enter")
	if h.model.input.Focused() {
		t.Fatalf("input still focused after enter")
	}
}

func TestExternalKeywordShowsInInput(t *testing.T) {
	h := newHarness(t, "/products", session.RoleUser)
	h.keyword.text = "desk"
	h.refresh()
	if got := h.model.input.Value(); got != "desk" {
		t.Fatalf("input = %q, want desk", got)
	}
}

func TestViewSwitchingRespectsRole(t *testing.T) {
	tests := []struct {
		role session.Role
		key  string
		want string
	}{
		{session.RoleUser, "2", "/products"},
		{session.RoleSeller, "2", "/admin/products"},
		{session.RoleSeller, "3", "/products"},
		{session.RoleSeller, "4", "/admin/orders"},
		{session.RoleAdmin, "5", "/admin/sellers"},
		{session.RoleUser, "6", cartPath},
	}
	for _, tt := range tests {
		h := newHarness(t, "/products", tt.role)
		h.press(tt.key)
		if got := h.loc.Current().Path; got != tt.want {
			t.Fatalf("%s pressing %s: path = %q, want %q", tt.role, tt.key, got, tt.want)
		}
	}
}

func TestTabSkipsForbiddenViews(t *testing.T) {
	h := newHarness(t, "/products", session.RoleUser)
	h.press("tab")
	if got := h.loc.Current().Path; got != cartPath {
		t.Fatalf("path = %q, want %s", got, cartPath)
	}
	h.press("tab")
	if got := h.loc.Current().Path; got != "/products" {
		t.Fatalf("path = %q, want /products", got)
	}
}

func TestNavigationSavesPrefsAndLoadsCart(t *testing.T) {
	h := newHarness(t, "/products", session.RoleUser)
	h.exec(h.press("6"))

	if h.actions.loads != 1 {
		t.Fatalf("cart loads = %d, want 1", h.actions.loads)
	}
	if got := prefs.Load(h.prefs).LastPath; got != cartPath {
		t.Fatalf("saved LastPath = %q, want %s", got, cartPath)
	}

	h.press("T")
	if got := prefs.Load(h.prefs).Theme; got != "Kanagawa" {
		t.Fatalf("saved Theme = %q, want Kanagawa", got)
	}
}

func TestEnteringStorefrontLoadsCategories(t *testing.T) {
	h := newHarness(t, cartPath, session.RoleUser)
	h.exec(h.press("1"))
	if len(h.actions.requests) != 1 || h.actions.requests[0].Domain != query.DomainCategories {
		t.Fatalf("requests = %+v, want one categories request", h.actions.requests)
	}
}

func TestAddSelectedProduct(t *testing.T) {
	h := newHarness(t, "/products", session.RoleUser)
	h.stores.Lists.Products.Replace([]api.Product{
		{ProductID: 10, ProductName: "Lamp", Quantity: 3},
		{ProductID: 11, ProductName: "Desk", Quantity: 1},
	}, state.PaginationMeta{TotalPages: 1})
	h.refresh()

	h.press("j")
	h.exec(h.press("a"))
	if len(h.actions.added) != 1 || h.actions.added[0] != 11 {
		t.Fatalf("added = %v, want [11]", h.actions.added)
	}
	if h.model.flash != "" {
		t.Fatalf("flash = %q, want empty", h.model.flash)
	}

	h.actions.err = errors.New("out of stock")
	h.exec(h.press("a"))
	if !strings.Contains(h.model.flash, "out of stock") {
		t.Fatalf("flash = %q, want the failure", h.model.flash)
	}
}

func TestCartKeys(t *testing.T) {
	h := newHarness(t, cartPath, session.RoleUser)
	_ = h.stores.Cart.Upsert(state.CartItem{ProductID: 7, Quantity: 2, UnitPrice: decimal.NewFromInt(5)})
	h.refresh()

	h.exec(h.press("+"))
	h.exec(h.press("-"))
	h.exec(h.press("d"))
	h.exec(h.press("u"))
	h.press("o")

	if got := strings.Join(h.actions.changes, ","); got != "+7,-7" {
		t.Fatalf("changes = %q, want +7,-7", got)
	}
	if len(h.actions.removed) != 1 || h.actions.removed[0] != 7 {
		t.Fatalf("removed = %v, want [7]", h.actions.removed)
	}
	if h.actions.pushes != 1 || h.actions.checkouts != 1 {
		t.Fatalf("pushes/checkouts = %d/%d, want 1/1", h.actions.pushes, h.actions.checkouts)
	}
}

func TestAnalyticsIsAdminOnly(t *testing.T) {
	h := newHarness(t, "/admin/orders", session.RoleSeller)
	h.exec(h.press("A"))
	if h.actions.analytics != 0 {
		t.Fatalf("seller loaded analytics")
	}

	h = newHarness(t, "/admin/orders", session.RoleAdmin)
	h.exec(h.press("A"))
	if h.actions.analytics != 1 {
		t.Fatalf("analytics loads = %d, want 1", h.actions.analytics)
	}
}

func TestReloadIssuesCurrentRequest(t *testing.T) {
	h := newHarness(t, "/admin/orders", session.RoleAdmin)
	h.press("r")
	if len(h.actions.requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(h.actions.requests))
	}
	req := h.actions.requests[0]
	if req.Domain != query.DomainOrders || !req.Privileged {
		t.Fatalf("request = %+v, want privileged orders", req)
	}
}

func TestViewRendersListAndStatus(t *testing.T) {
	h := newHarness(t, "/products", session.RoleUser)
	h.stores.Lists.Products.Replace([]api.Product{{ProductID: 1, ProductName: "Reading Lamp", SpecialPrice: decimal.RequireFromString("17.5")}}, state.PaginationMeta{TotalPages: 2, TotalElements: 11})
	h.stores.Status.Dispatch(state.StatusAction{Kind: state.Failed, Message: "backend down"})
	h.refresh()

	out := h.model.View()
	for _, want := range []string{"Reading Lamp", "17.50", "page 1 of 2", "backend down", "search:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("View() missing %q:\n%s", want, out)
		}
	}
}

func TestLogView(t *testing.T) {
	h := newHarness(t, "/products", session.RoleUser)
	cmd := h.press("L")
	if !h.model.showLogs || cmd == nil {
		t.Fatalf("log view not opened")
	}
	h.send(logsMsg{})
	if !strings.Contains(h.model.View(), "No log entries") {
		t.Fatalf("empty log view missing placeholder")
	}
	h.press("esc")
	if h.model.showLogs {
		t.Fatalf("esc did not close the log view")
	}
}
