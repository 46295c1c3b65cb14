package tui

import (
	"log"
	"strings"
	"time"

	"github.com/tinytelemetry/gatepass/internal/filter"
	"github.com/tinytelemetry/gatepass/internal/model"
	"github.com/tinytelemetry/gatepass/internal/nav"
	"github.com/tinytelemetry/gatepass/internal/page"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Section represents different dashboard sections
type Section int

const (
	SectionSidebar Section = iota // sidebar navigation
	SectionUsers                  // user list
	SectionSearch                 // search input has focus
)

// SidebarState holds sidebar navigation and collapse state.
type SidebarState struct {
	entries       []nav.Entry
	active        []bool // one flag per entry, rewritten in full on every resolution
	sidebarCursor int
	collapsed     bool // desktop collapse, persisted under sidebarState
	mobileActive  bool // overlay open on narrow terminals
}

// SearchState holds the search input and the live filter over the user list.
type SearchState struct {
	searchInput  textinput.Model
	searchActive bool         // input has focus
	userList     *filter.List // nil when the page lacks a filter element
	lastResult   filter.Result
	userCursor   int
}

// ModalStackState holds the modal stack; the topmost modal takes all input.
type ModalStackState struct {
	modalStack []Modal
}

// Options configures a DashboardModel.
type Options struct {
	Store            model.KeyValueStore
	Page             *page.Snapshot
	Reload           func() (*page.Snapshot, error) // re-reads the page; nil disables reloads
	PageChanges      <-chan struct{}                // page file rewrites
	Location         string
	Selection        nav.SelectionMode
	MobileBreakpoint int
	ClockInterval    time.Duration
	Now              func() time.Time
}

// DashboardModel represents the main TUI model.
// Sub-state is organized into embedded structs for readability.
type DashboardModel struct {
	SidebarState
	SearchState
	ModalStackState

	activeSection Section

	// Window dimensions
	width  int
	height int

	keys KeyMap
	help help.Model

	snapshot    *page.Snapshot
	reload      func() (*page.Snapshot, error)
	pageChanges <-chan struct{}

	machine *nav.Machine
	store   model.KeyValueStore

	mobileBreakpoint int
	clockInterval    time.Duration
	now              func() time.Time
	clock            time.Time

	chart *TrendChart

	// Last store/page error for status line display (auto-clears after 30s).
	lastError   string
	lastErrorAt time.Time
}

// ClockTickMsg drives the header clock.
type ClockTickMsg time.Time

// PageChangedMsg reports that the page file was rewritten.
type PageChangedMsg struct{}

const errorDisplayDuration = 30 * time.Second

// NewDashboardModel creates the dashboard and runs the first page load.
func NewDashboardModel(opts Options) *DashboardModel {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search users..."
	searchInput.CharLimit = 200

	if opts.MobileBreakpoint <= 0 {
		opts.MobileBreakpoint = model.DefaultMobileBreakpoint
	}
	if opts.ClockInterval <= 0 {
		opts.ClockInterval = model.DefaultClockInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Page == nil {
		opts.Page = &page.Snapshot{}
	}
	if opts.Store == nil {
		opts.Store = model.NewMemoryStore()
	}

	m := &DashboardModel{
		SearchState: SearchState{
			searchInput: searchInput,
		},
		activeSection:    SectionSidebar,
		keys:             DefaultKeyMap(),
		help:             help.New(),
		reload:           opts.Reload,
		pageChanges:      opts.PageChanges,
		store:            opts.Store,
		machine:          nav.NewMachine(opts.Store, nil, opts.Selection),
		mobileBreakpoint: opts.MobileBreakpoint,
		clockInterval:    opts.ClockInterval,
		now:              opts.Now,
		clock:            opts.Now(),
		chart:            NewTrendChart(),
	}

	m.loadPage(opts.Page, opts.Location)
	return m
}

// Init starts the clock and, when configured, the page watcher.
func (m *DashboardModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.clockTickCmd()}
	if m.pageChanges != nil {
		cmds = append(cmds, waitForPageChange(m.pageChanges))
	}
	return tea.Batch(cmds...)
}

func (m *DashboardModel) clockTickCmd() tea.Cmd {
	return tea.Tick(m.clockInterval, func(t time.Time) tea.Msg {
		return ClockTickMsg(t)
	})
}

func waitForPageChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return PageChangedMsg{}
	}
}

// loadPage is the page-load event: read the snapshot, resolve the active menu
// for location, restore the sidebar collapse state and wire the filter.
func (m *DashboardModel) loadPage(snap *page.Snapshot, location string) {
	m.snapshot = snap
	m.entries = snap.Entries()
	m.machine.SetEntries(m.entries)

	if len(m.entries) == 0 {
		log.Printf("sidebar: no sidebar entries found")
	}

	res, err := m.machine.Load(location)
	if err != nil {
		m.setError(err)
	}
	m.applyResolution(res)
	m.restoreSidebarState()
	m.resetFilter()
}

// applyResolution clears every active flag, then sets the resolved ones.
func (m *DashboardModel) applyResolution(res nav.Resolution) {
	m.active = res.Flags(len(m.entries))
	if len(res.Active) > 0 {
		m.sidebarCursor = res.Active[0]
	}
	m.clampSidebarCursor()
}

func (m *DashboardModel) restoreSidebarState() {
	m.collapsed = false
	if len(m.entries) == 0 {
		return
	}
	v, ok, err := m.store.Get(model.KeySidebarState)
	if err != nil {
		m.setError(err)
		return
	}
	m.collapsed = ok && v == model.SidebarCollapsed
}

// resetFilter wires the live filter for the current page, or leaves it inert
// when an element it needs is missing.
func (m *DashboardModel) resetFilter() {
	m.searchActive = false
	m.searchInput.Blur()
	m.searchInput.SetValue("")
	m.lastResult = filter.Result{}
	m.userCursor = 0
	if m.activeSection == SectionSearch {
		m.activeSection = SectionSidebar
	}

	if missing := m.snapshot.MissingFilterElements(); len(missing) > 0 {
		log.Printf("filter: %s not found", strings.Join(missing, ", "))
		m.userList = nil
		return
	}
	if m.snapshot.Search.Placeholder != "" {
		m.searchInput.Placeholder = m.snapshot.Search.Placeholder
	}
	m.userList = filter.NewList(m.snapshot.InfoTexts())
}

// filterEnabled reports whether the search box is wired.
func (m *DashboardModel) filterEnabled() bool {
	return m.userList != nil
}

// onSearchKeystroke runs one filter pass for the input's current value.
func (m *DashboardModel) onSearchKeystroke() {
	if m.userList == nil {
		return
	}
	m.lastResult = m.userList.OnKeystroke(m.searchInput.Value())
	m.clampUserCursor()
}

// reloadPage re-reads the page and runs the load event again at the current
// location.
func (m *DashboardModel) reloadPage() {
	if m.reload == nil {
		return
	}
	snap, err := m.reload()
	if err != nil {
		m.setError(err)
		return
	}
	m.loadPage(snap, m.machine.Location())
}

// Location returns the current page location.
func (m *DashboardModel) Location() string {
	return m.machine.Location()
}

// isNarrow reports whether the terminal is at or below the mobile breakpoint.
func (m *DashboardModel) isNarrow() bool {
	return m.width > 0 && m.width <= m.mobileBreakpoint
}

func (m *DashboardModel) setError(err error) {
	if err == nil {
		return
	}
	log.Printf("dashboard: %v", err)
	m.lastError = err.Error()
	m.lastErrorAt = m.now()
}

func (m *DashboardModel) clearStaleError(now time.Time) {
	if m.lastError != "" && now.Sub(m.lastErrorAt) > errorDisplayDuration {
		m.lastError = ""
	}
}

// PushModal pushes a modal onto the stack. Deduplicates by ID.
func (m *DashboardModel) PushModal(modal Modal) {
	for _, existing := range m.modalStack {
		if existing.ID() == modal.ID() {
			return
		}
	}
	m.modalStack = append(m.modalStack, modal)
}

// PopModal removes the topmost modal from the stack.
func (m *DashboardModel) PopModal() {
	if len(m.modalStack) > 0 {
		m.modalStack = m.modalStack[:len(m.modalStack)-1]
	}
}

// TopModal returns the topmost modal, or nil if the stack is empty.
func (m *DashboardModel) TopModal() Modal {
	if len(m.modalStack) == 0 {
		return nil
	}
	return m.modalStack[len(m.modalStack)-1]
}

// HasModal returns true if any modal is on the stack.
func (m *DashboardModel) HasModal() bool {
	return len(m.modalStack) > 0
}

// DashboardPage adapts DashboardModel to the Page interface.
type DashboardPage struct {
	Model *DashboardModel
}

// NewDashboardPage wraps a DashboardModel as a Page.
func NewDashboardPage(m *DashboardModel) *DashboardPage {
	return &DashboardPage{Model: m}
}

func (p *DashboardPage) ID() string { return "dashboard" }

func (p *DashboardPage) Init() tea.Cmd {
	return p.Model.Init()
}

func (p *DashboardPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	_, cmd := p.Model.Update(msg)
	return cmd, nil
}

func (p *DashboardPage) View(width, height int) string {
	p.Model.width = width
	p.Model.height = height
	return p.Model.View()
}
