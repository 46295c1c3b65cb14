package tui

import tea "github.com/charmbracelet/bubbletea"

type searchInputHandler struct{}

// HandleKey feeds keys to the search input. Every key that reaches the input
// is one keystroke for the live filter; no debouncing.
func (h searchInputHandler) HandleKey(m *DashboardModel, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return true, tea.Quit
	case "escape", "esc", "enter", "tab":
		// The query and the row visibility stay as they are.
		m.searchActive = false
		m.searchInput.Blur()
		m.activeSection = SectionUsers
		return true, nil
	default:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.onSearchKeystroke()
		return true, cmd
	}
}

func (h searchInputHandler) HandleMouse(_ *DashboardModel, _ tea.MouseMsg) (bool, tea.Cmd) {
	return true, nil // swallow mouse events during search input
}

// focusSearch moves focus to the search input when the filter is wired.
func (m *DashboardModel) focusSearch() tea.Cmd {
	if !m.filterEnabled() {
		return nil
	}
	m.searchActive = true
	m.activeSection = SectionSearch
	if m.isNarrow() {
		m.closeMobileMenu()
	}
	return m.searchInput.Focus()
}
