package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouseEvent(msg)

	case ClockTickMsg:
		m.clock = time.Time(msg)
		m.clearStaleError(m.clock)
		return m, m.clockTickCmd()

	case PageChangedMsg:
		m.reloadPage()
		if m.pageChanges != nil {
			return m, waitForPageChange(m.pageChanges)
		}
		return m, nil
	}

	return m, nil
}

// handleResize tracks the terminal size. Growing past the mobile breakpoint
// closes the sidebar overlay.
func (m *DashboardModel) handleResize(width, height int) {
	m.width = width
	m.height = height
	if !m.isNarrow() {
		m.closeMobileMenu()
	}
	m.help.Width = width
}

// handleKeyPress routes a key to the top modal, the focused input, or the
// dashboard bindings, in that order.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if modal := m.TopModal(); modal != nil {
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		pop, cmd := modal.Update(msg)
		if pop {
			m.PopModal()
		}
		return m, cmd
	}

	for _, entry := range inlineHandlers {
		if entry.isActive(m) {
			if handled, cmd := entry.handler.HandleKey(m, msg); handled {
				return m, cmd
			}
			break
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.PushModal(NewHelpModal(m.keys, m.help))
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.mobileActive {
			m.closeMobileMenu()
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleSidebar):
		m.toggleCollapsed()
		return m, nil

	case key.Matches(msg, m.keys.MobileMenu):
		m.toggleMobileMenu()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		return m, m.focusSearch()

	case key.Matches(msg, m.keys.NextSection), key.Matches(msg, m.keys.PrevSection):
		m.cycleSection()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if m.activeSection == SectionSidebar && m.sidebarVisible() {
			m.selectEntry(m.sidebarCursor)
		}
		return m, nil
	}

	return m, nil
}

// cycleSection toggles focus between the sidebar and the user list. Hidden
// or unwired sections are skipped.
func (m *DashboardModel) cycleSection() {
	switch m.activeSection {
	case SectionSidebar:
		if m.filterEnabled() {
			m.activeSection = SectionUsers
		}
	default:
		if m.sidebarVisible() {
			m.activeSection = SectionSidebar
		}
	}
}

func (m *DashboardModel) moveSelection(delta int) {
	switch m.activeSection {
	case SectionSidebar:
		if m.sidebarVisible() {
			m.moveSidebarCursor(delta)
		}
	case SectionUsers:
		m.moveUserCursor(delta)
	}
}

// handleMouseEvent processes mouse interactions
func (m *DashboardModel) handleMouseEvent(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if modal := m.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			m.PopModal()
		}
		return m, cmd
	}

	for _, entry := range inlineHandlers {
		if entry.isActive(m) {
			if handled, cmd := entry.handler.HandleMouse(m, msg); handled {
				return m, cmd
			}
			break
		}
	}

	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		return m.handleMouseClick(msg.X, msg.Y)
	case tea.MouseButtonWheelUp:
		m.moveSelection(-1)
	case tea.MouseButtonWheelDown:
		m.moveSelection(1)
	}
	return m, nil
}

// handleMouseClick selects a sidebar entry when the click lands on one;
// anywhere else it focuses the user list and closes the overlay.
func (m *DashboardModel) handleMouseClick(x, y int) (tea.Model, tea.Cmd) {
	if m.width <= 0 || m.height <= 0 {
		return m, nil
	}

	if w := m.currentSidebarWidth(); w > 0 && x < w {
		m.activeSection = SectionSidebar
		if idx, ok := m.sidebarEntryAtMouseRow(y); ok {
			m.sidebarCursor = idx
			m.selectEntry(idx)
		}
		return m, nil
	}

	if m.mobileActive {
		m.closeMobileMenu()
		return m, nil
	}
	if m.filterEnabled() {
		m.activeSection = SectionUsers
	}
	return m, nil
}
