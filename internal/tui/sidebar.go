package tui

import (
	"fmt"
	"strings"

	"github.com/tinytelemetry/gatepass/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	sidebarWidth          = 26
	collapsedSidebarWidth = 7
	sidebarHeaderRows     = 2 // "Menu" + blank line
)

// hasSidebar reports whether the page has any sidebar entries.
func (m *DashboardModel) hasSidebar() bool {
	return len(m.entries) > 0
}

// sidebarVisible reports whether the sidebar occupies screen space.
func (m *DashboardModel) sidebarVisible() bool {
	if !m.hasSidebar() {
		return false
	}
	if m.isNarrow() {
		return m.mobileActive
	}
	return true
}

// currentSidebarWidth returns the width the sidebar takes, or 0 when hidden.
func (m *DashboardModel) currentSidebarWidth() int {
	if !m.sidebarVisible() {
		return 0
	}
	if m.collapsed && !m.isNarrow() {
		return collapsedSidebarWidth
	}
	return sidebarWidth
}

func (m *DashboardModel) clampSidebarCursor() {
	if len(m.entries) == 0 {
		m.sidebarCursor = 0
		return
	}
	if m.sidebarCursor < 0 {
		m.sidebarCursor = 0
	}
	if m.sidebarCursor >= len(m.entries) {
		m.sidebarCursor = len(m.entries) - 1
	}
}

func (m *DashboardModel) moveSidebarCursor(delta int) {
	m.sidebarCursor += delta
	m.clampSidebarCursor()
}

// selectEntry is a click on entry idx: persist it as the preference, then
// navigate to its link, which is a fresh page load at that location.
func (m *DashboardModel) selectEntry(idx int) {
	if idx < 0 || idx >= len(m.entries) {
		return
	}
	if m.isNarrow() {
		m.mobileActive = false
	}
	res, err := m.machine.Select(idx)
	if err != nil {
		m.setError(err)
		return
	}
	m.applyResolution(res)
	m.resetFilter()
}

// toggleCollapsed flips the desktop sidebar between collapsed and expanded
// and persists the choice.
func (m *DashboardModel) toggleCollapsed() {
	if !m.hasSidebar() {
		return
	}
	m.collapsed = !m.collapsed
	state := model.SidebarExpanded
	if m.collapsed {
		state = model.SidebarCollapsed
	}
	if err := m.store.Set(model.KeySidebarState, state); err != nil {
		m.setError(err)
	}
}

// toggleMobileMenu opens or closes the sidebar overlay on narrow terminals.
func (m *DashboardModel) toggleMobileMenu() {
	if !m.hasSidebar() || !m.isNarrow() {
		return
	}
	m.mobileActive = !m.mobileActive
	if m.mobileActive {
		m.activeSection = SectionSidebar
	}
}

// closeMobileMenu hides the overlay.
func (m *DashboardModel) closeMobileMenu() {
	m.mobileActive = false
}

func (m *DashboardModel) sidebarLabel(idx int, width int) string {
	e := m.entries[idx]
	marker := "  "
	if m.active[idx] {
		marker = "> "
	}

	text := e.Label
	if m.collapsed && !m.isNarrow() {
		text = e.MenuID
		if text == "" {
			text = e.Label
		}
	}
	if text == "" {
		text = e.LinkPath
	}

	label := marker + text
	if width > 3 {
		label = ansi.Truncate(label, width, "~")
	}
	return label
}

// buildSidebarLines renders one line per row and maps rendered rows to entry
// indices for mouse hit-testing.
func (m *DashboardModel) buildSidebarLines(width int) ([]string, map[int]int) {
	rowToEntry := make(map[int]int, len(m.entries))
	lines := make([]string, 0, len(m.entries)+sidebarHeaderRows)

	heading := "Menu"
	if m.collapsed && !m.isNarrow() {
		heading = "≡"
	}
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render(heading), "")

	for i := range m.entries {
		label := m.sidebarLabel(i, width)
		switch {
		case m.activeSection == SectionSidebar && m.sidebarCursor == i:
			label = cursorEntryStyle.Render(label)
		case m.active[i]:
			label = activeEntryStyle.Render(label)
		}
		rowToEntry[len(lines)] = i
		lines = append(lines, label)
	}

	return lines, rowToEntry
}

// sidebarEntryAtMouseRow maps a screen row to an entry. The sidebar is drawn
// from the top of the screen, so its border takes row 0 and content row r
// sits at y = r+1. Heading and blank rows map to nothing.
func (m *DashboardModel) sidebarEntryAtMouseRow(y int) (int, bool) {
	_, rowToEntry := m.buildSidebarLines(m.currentSidebarWidth() - 4)
	idx, ok := rowToEntry[y-1]
	return idx, ok
}

// renderSidebar renders the navigation entries in the left sidebar.
func (m *DashboardModel) renderSidebar(height int) string {
	m.clampSidebarCursor()

	width := m.currentSidebarWidth()
	style := lipgloss.NewStyle().
		Width(width-2).
		Height(height).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Padding(0, 1)

	if m.activeSection == SectionSidebar {
		style = style.BorderForeground(ColorBlue)
	}

	lines, _ := m.buildSidebarLines(width - 4)
	return style.Render(strings.Join(lines, "\n"))
}

// activeMenuSummary names the active entries for the status line.
func (m *DashboardModel) activeMenuSummary() string {
	var names []string
	for i, on := range m.active {
		if !on {
			continue
		}
		name := m.entries[i].Label
		if name == "" {
			name = m.entries[i].MenuID
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return ""
	}
	return fmt.Sprintf("[%s]", strings.Join(names, ", "))
}
