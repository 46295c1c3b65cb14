package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tinytelemetry/gatepass/internal/model"
	"github.com/tinytelemetry/gatepass/internal/nav"
	"github.com/tinytelemetry/gatepass/internal/page"

	tea "github.com/charmbracelet/bubbletea"
)

func defaultPage(t *testing.T) *page.Snapshot {
	t.Helper()
	snap, err := page.Default()
	if err != nil {
		t.Fatalf("default page: %v", err)
	}
	return snap
}

func newTestDashboard(t *testing.T, store model.KeyValueStore, location string) *DashboardModel {
	t.Helper()
	fixed := time.Date(2026, 3, 2, 15, 4, 5, 0, time.UTC)
	m := NewDashboardModel(Options{
		Store:    store,
		Page:     defaultPage(t),
		Location: location,
		Now:      func() time.Time { return fixed },
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m *DashboardModel, s string) {
	for _, r := range s {
		m.Update(runes(string(r)))
	}
}

func activeIndices(m *DashboardModel) []int {
	var out []int
	for i, on := range m.active {
		if on {
			out = append(out, i)
		}
	}
	return out
}

func TestLoad_PathMatchActivatesAndPersists(t *testing.T) {
	t.Parallel()

	store := model.NewMemoryStore()
	m := newTestDashboard(t, store, "/dashboard/admin/manage_users?tab=2")

	if got := activeIndices(m); len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected only entry 1 active, got %v", got)
	}
	if m.sidebarCursor != 1 {
		t.Fatalf("expected cursor on active entry, got %d", m.sidebarCursor)
	}
	v, ok, _ := store.Get(model.KeyActiveMenu)
	if !ok || v != "manage_users" {
		t.Fatalf("expected stored preference manage_users, got %q (present=%v)", v, ok)
	}
}

func TestLoad_UnknownLocationUsesStoredPreference(t *testing.T) {
	t.Parallel()

	store := model.NewMemoryStore()
	if err := store.Set(model.KeyActiveMenu, "reports"); err != nil {
		t.Fatal(err)
	}
	m := newTestDashboard(t, store, "/somewhere/else")

	if got := activeIndices(m); len(got) != 1 || got[0] != 4 {
		t.Fatalf("expected reports entry active, got %v", got)
	}
}

func TestLoad_StalePreferenceFallsBackToFirst(t *testing.T) {
	t.Parallel()

	store := model.NewMemoryStore()
	_ = store.Set(model.KeyActiveMenu, "gone")
	m := newTestDashboard(t, store, "/elsewhere")

	if got := activeIndices(m); len(got) != 1 || got[0] != 0 {
		t.Fatalf("expected first entry active, got %v", got)
	}
	if v, _, _ := store.Get(model.KeyActiveMenu); v != "dashboard" {
		t.Fatalf("expected stale preference replaced, got %q", v)
	}
}

func TestEnterSelectsEntryAndNavigates(t *testing.T) {
	t.Parallel()

	store := model.NewMemoryStore()
	m := newTestDashboard(t, store, "/dashboard/admin/")

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if loc := m.Location(); loc != "/dashboard/admin/manage_application" {
		t.Fatalf("unexpected location %q", loc)
	}
	if got := activeIndices(m); len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected entry 2 active, got %v", got)
	}
	if v, _, _ := store.Get(model.KeyActiveMenu); v != "manage_application" {
		t.Fatalf("expected preference manage_application, got %q", v)
	}
}

func TestSelectEntryWithoutMenuClearsPreference(t *testing.T) {
	t.Parallel()

	store := model.NewMemoryStore()
	m := newTestDashboard(t, store, "/dashboard/admin/")

	logout := len(m.entries) - 1
	m.selectEntry(logout)

	if _, ok, _ := store.Get(model.KeyActiveMenu); ok {
		t.Fatal("expected preference removed after selecting an entry without a menu id")
	}
	if got := activeIndices(m); len(got) != 1 || got[0] != logout {
		t.Fatalf("expected logout entry active by path, got %v", got)
	}
}

func TestToggleCollapsedPersistsAndRestores(t *testing.T) {
	t.Parallel()

	store := model.NewMemoryStore()
	m := newTestDashboard(t, store, "/dashboard/admin/")

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	if !m.collapsed {
		t.Fatal("expected sidebar collapsed")
	}
	if m.currentSidebarWidth() != collapsedSidebarWidth {
		t.Fatalf("expected collapsed width, got %d", m.currentSidebarWidth())
	}
	if v, _, _ := store.Get(model.KeySidebarState); v != model.SidebarCollapsed {
		t.Fatalf("expected collapsed state stored, got %q", v)
	}

	restored := newTestDashboard(t, store, "/dashboard/admin/")
	if !restored.collapsed {
		t.Fatal("expected collapse state restored on load")
	}

	restored.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	if v, _, _ := store.Get(model.KeySidebarState); v != model.SidebarExpanded {
		t.Fatalf("expected expanded state stored, got %q", v)
	}
}

func TestMobileOverlay(t *testing.T) {
	t.Parallel()

	m := newTestDashboard(t, nil, "/dashboard/admin/")
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})

	if m.sidebarVisible() {
		t.Fatal("expected sidebar hidden on a narrow terminal")
	}

	m.Update(runes("m"))
	if !m.mobileActive || !m.sidebarVisible() {
		t.Fatal("expected overlay open after m")
	}

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.mobileActive {
		t.Fatal("expected overlay closed when growing past the breakpoint")
	}

	m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	m.Update(runes("m"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.mobileActive {
		t.Fatal("expected overlay closed after selecting an entry")
	}
}

func TestMobileMenuIgnoredOnWideTerminal(t *testing.T) {
	t.Parallel()

	m := newTestDashboard(t, nil, "/dashboard/admin/")
	m.Update(runes("m"))
	if m.mobileActive {
		t.Fatal("overlay should not open above the breakpoint")
	}
}

func TestSearchFiltersAsYouType(t *testing.T) {
	t.Parallel()

	m := newTestDashboard(t, nil, "/dashboard/admin/")
	m.Update(runes("/"))
	if !m.searchActive {
		t.Fatal("expected search focused")
	}

	typeText(m, "smi")
	if got := m.userList.VisibleCount(); got != 1 {
		t.Fatalf("expected 1 visible row for smi, got %d", got)
	}
	if !m.lastResult.MatchFound || m.noResultsVisible() {
		t.Fatal("expected a match and no banner")
	}

	typeText(m, "zzz")
	if got := m.userList.VisibleCount(); got != 0 {
		t.Fatalf("expected no visible rows, got %d", got)
	}
	if !m.noResultsVisible() {
		t.Fatal("expected no-results banner")
	}

	for range 6 {
		m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	if m.searchInput.Value() != "" {
		t.Fatalf("expected empty query, got %q", m.searchInput.Value())
	}
	// "s" matched every row on the way down; the empty query leaves that as is.
	if got := m.userList.VisibleCount(); got != 5 {
		t.Fatalf("expected 5 visible rows, got %d", got)
	}
	if !m.noResultsVisible() {
		t.Fatal("expected banner shown for an empty query")
	}
}

func TestSearchEscapeKeepsQuery(t *testing.T) {
	t.Parallel()

	m := newTestDashboard(t, nil, "/dashboard/admin/")
	m.Update(runes("/"))
	typeText(m, "bob")
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.searchActive {
		t.Fatal("expected search blurred")
	}
	if m.searchInput.Value() != "bob" {
		t.Fatalf("expected query kept, got %q", m.searchInput.Value())
	}
	if m.activeSection != SectionUsers {
		t.Fatalf("expected user list focused, got %v", m.activeSection)
	}
	if got := m.userList.VisibleCount(); got != 1 {
		t.Fatalf("expected 1 visible row, got %d", got)
	}
}

func TestSearchInertWithoutFilterElements(t *testing.T) {
	t.Parallel()

	snap, err := page.Parse([]byte(`
sidebar:
  - label: Home
    href: /home
    menu: home
users:
  - name: Alice Smith
`))
	if err != nil {
		t.Fatal(err)
	}
	m := NewDashboardModel(Options{Page: snap, Location: "/home"})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.filterEnabled() {
		t.Fatal("expected filter disabled without a search input")
	}
	m.Update(runes("/"))
	if m.searchActive {
		t.Fatal("search should not focus when inert")
	}
	if !strings.Contains(m.View(), "Alice Smith") {
		t.Fatal("expected user rows rendered unfiltered")
	}
}

func TestEmptySidebarLeavesPreferenceAlone(t *testing.T) {
	t.Parallel()

	store := model.NewMemoryStore()
	_ = store.Set(model.KeyActiveMenu, "reports")
	m := NewDashboardModel(Options{Store: store, Page: &page.Snapshot{}, Location: "/x"})

	if len(m.active) != 0 || m.hasSidebar() {
		t.Fatal("expected no sidebar")
	}
	if v, _, _ := store.Get(model.KeyActiveMenu); v != "reports" {
		t.Fatalf("preference should be untouched, got %q", v)
	}
}

func TestPageChangedReloadsAtCurrentLocation(t *testing.T) {
	t.Parallel()

	reloaded, err := page.Parse([]byte(`
sidebar:
  - label: Home
    href: /home
    menu: home
  - label: Reports
    href: /dashboard/admin/admin_reports/
    menu: reports
`))
	if err != nil {
		t.Fatal(err)
	}

	m := NewDashboardModel(Options{
		Page:     defaultPage(t),
		Location: "/dashboard/admin/admin_reports",
		Reload:   func() (*page.Snapshot, error) { return reloaded, nil },
	})
	m.Update(PageChangedMsg{})

	if len(m.entries) != 2 {
		t.Fatalf("expected reloaded entries, got %d", len(m.entries))
	}
	if got := activeIndices(m); len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected reports active after reload, got %v", got)
	}
}

func TestReloadErrorShownThenCleared(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewDashboardModel(Options{
		Page:   defaultPage(t),
		Reload: func() (*page.Snapshot, error) { return nil, errors.New("page: bad yaml") },
		Now:    func() time.Time { return now },
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Update(PageChangedMsg{})

	if !strings.Contains(m.View(), "page: bad yaml") {
		t.Fatal("expected error on the status line")
	}

	m.Update(ClockTickMsg(now.Add(errorDisplayDuration + time.Second)))
	if m.lastError != "" {
		t.Fatalf("expected stale error cleared, got %q", m.lastError)
	}
}

func TestSelectionFirstActivatesOneDuplicate(t *testing.T) {
	t.Parallel()

	snap, err := page.Parse([]byte(`
sidebar:
  - label: A
    href: /same
    menu: a
  - label: B
    href: /same/
    menu: b
`))
	if err != nil {
		t.Fatal(err)
	}
	all := NewDashboardModel(Options{Page: snap, Location: "/same"})
	if got := activeIndices(all); len(got) != 2 {
		t.Fatalf("expected both duplicates active, got %v", got)
	}

	first := NewDashboardModel(Options{Page: snap, Location: "/same", Selection: nav.SelectionFirst})
	if got := activeIndices(first); len(got) != 1 || got[0] != 0 {
		t.Fatalf("expected only the first duplicate active, got %v", got)
	}
}

func TestView(t *testing.T) {
	t.Parallel()

	m := NewDashboardModel(Options{Page: &page.Snapshot{}})
	if got := m.View(); got != "Initializing dashboard..." {
		t.Fatalf("unexpected view before sizing: %q", got)
	}

	m = newTestDashboard(t, nil, "/dashboard/admin/manage_users/")
	out := m.View()
	for _, want := range []string{"Vehicle Pass Office", "Paid Clients", "Location: /dashboard/admin/manage_users", "Manage Users", "Monday, March 2, 2026, 03:04:05 PM"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected view to contain %q", want)
		}
	}

	m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	if !strings.HasPrefix(m.View(), "Terminal too small") {
		t.Fatal("expected too-small message")
	}
}

func TestHelpModalOpensAndCloses(t *testing.T) {
	t.Parallel()

	m := newTestDashboard(t, nil, "/dashboard/admin/")
	m.Update(runes("?"))
	if !m.HasModal() {
		t.Fatal("expected help modal")
	}
	if !strings.Contains(m.View(), "Help") {
		t.Fatal("expected help view")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.HasModal() {
		t.Fatal("expected help modal closed")
	}
}

func TestFormatClock(t *testing.T) {
	t.Parallel()

	got := formatClock(time.Date(2026, 10, 16, 9, 5, 7, 0, time.UTC))
	if got != "Friday, October 16, 2026, 09:05:07 AM" {
		t.Fatalf("unexpected clock %q", got)
	}
}

func leftClick(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestMouseClickOnSidebarRows(t *testing.T) {
	t.Parallel()

	store := model.NewMemoryStore()
	m := newTestDashboard(t, store, "/dashboard/admin/manage_users/")

	// Border, heading and blank rows select nothing.
	for _, y := range []int{0, 1, 2} {
		m.Update(leftClick(3, y))
		if loc := m.Location(); loc != "/dashboard/admin/manage_users/" {
			t.Fatalf("click at row %d navigated to %q", y, loc)
		}
		if v, _, _ := store.Get(model.KeyActiveMenu); v != "manage_users" {
			t.Fatalf("click at row %d overwrote the preference with %q", y, v)
		}
	}

	// Entry i is drawn at row 3+i.
	lines := strings.Split(m.View(), "\n")
	if !strings.Contains(lines[7], "Reports") {
		t.Fatalf("expected Reports on row 7, got %q", lines[7])
	}
	m.Update(leftClick(3, 7))
	if loc := m.Location(); loc != "/dashboard/admin/admin_reports" {
		t.Fatalf("unexpected location %q", loc)
	}
	if v, _, _ := store.Get(model.KeyActiveMenu); v != "reports" {
		t.Fatalf("expected preference reports, got %q", v)
	}
}

func TestMouseClickOutsideSidebarFocusesUsers(t *testing.T) {
	t.Parallel()

	m := newTestDashboard(t, nil, "/dashboard/admin/")
	m.Update(leftClick(60, 20))
	if m.activeSection != SectionUsers {
		t.Fatalf("expected user list focused, got %v", m.activeSection)
	}
	if m.Location() != "/dashboard/admin/" {
		t.Fatalf("location changed to %q", m.Location())
	}
}

func longUserPage(n int) *page.Snapshot {
	users := make([]page.User, n)
	for i := range users {
		users[i] = page.User{
			Name:  fmt.Sprintf("User %02d", i),
			Email: fmt.Sprintf("user%02d@example.edu", i),
			Role:  "Student",
		}
	}
	return &page.Snapshot{
		Title:     "Vehicle Pass Office",
		Sidebar:   []page.SidebarItem{{Label: "Dashboard", Href: "/dashboard/admin/", Menu: "dashboard"}},
		Search:    &page.Search{},
		Users:     &users,
		NoResults: &page.NoResults{Text: "No users found"},
	}
}

func TestNoResultsBannerShownWithLongList(t *testing.T) {
	t.Parallel()

	m := NewDashboardModel(Options{Page: longUserPage(60), Location: "/dashboard/admin/"})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	m.Update(runes("/"))
	typeText(m, "e")
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	if got := m.userList.VisibleCount(); got != 60 {
		t.Fatalf("expected 60 visible rows, got %d", got)
	}
	if !m.noResultsVisible() {
		t.Fatal("expected no-results state for the empty query")
	}
	if !strings.Contains(m.View(), "No users found") {
		t.Fatal("expected the banner rendered above an overflowing list")
	}
}

func TestUserCursorScrollsIntoView(t *testing.T) {
	t.Parallel()

	m := NewDashboardModel(Options{Page: longUserPage(60), Location: "/dashboard/admin/"})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.activeSection != SectionUsers {
		t.Fatalf("expected user list focused, got %v", m.activeSection)
	}
	for range 50 {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.userCursor != 50 {
		t.Fatalf("expected cursor at 50, got %d", m.userCursor)
	}
	out := m.View()
	if !strings.Contains(out, "User 50") {
		t.Fatal("expected the cursor row rendered")
	}
	if strings.Contains(out, "User 00") {
		t.Fatal("expected the window scrolled past the first row")
	}
}

func TestRowWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n, cursor, capacity int
		start, end          int
	}{
		{n: 5, cursor: 0, capacity: 10, start: 0, end: 5},
		{n: 60, cursor: 0, capacity: 10, start: 0, end: 10},
		{n: 60, cursor: 9, capacity: 10, start: 0, end: 10},
		{n: 60, cursor: 10, capacity: 10, start: 1, end: 11},
		{n: 60, cursor: 59, capacity: 10, start: 50, end: 60},
		{n: 60, cursor: 80, capacity: 10, start: 50, end: 60},
		{n: 60, cursor: 3, capacity: 0, start: 0, end: 0},
	}
	for _, tt := range tests {
		start, end := rowWindow(tt.n, tt.cursor, tt.capacity)
		if start != tt.start || end != tt.end {
			t.Fatalf("rowWindow(%d, %d, %d) = [%d, %d), want [%d, %d)",
				tt.n, tt.cursor, tt.capacity, start, end, tt.start, tt.end)
		}
	}
}

func TestTrendChartRendersFilledLine(t *testing.T) {
	t.Parallel()

	c := NewTrendChart()
	out := c.Render(94, 11)
	for _, want := range []string{"Paid Clients", "Min: 10 | Max: 50", "░"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected chart to contain %q", want)
		}
	}

	if got := c.valueAt(0.5); got != 12.5 {
		t.Fatalf("valueAt(0.5) = %v, want 12.5", got)
	}
	if got := c.valueAt(11); got != 50 {
		t.Fatalf("valueAt(11) = %v, want 50", got)
	}
	if got := c.monthLabel(0, 2.2); got != "Mar" {
		t.Fatalf("monthLabel(2.2) = %q, want Mar", got)
	}
	if got := c.monthLabel(0, 12); got != "" {
		t.Fatalf("monthLabel(12) = %q, want empty", got)
	}
}
