package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	minWidth  = 40
	minHeight = 16
)

// contentWidth returns the width available for main content, accounting for sidebar.
func (m *DashboardModel) contentWidth() int {
	return max(m.width-m.currentSidebarWidth(), 20)
}

// layoutHeights splits the content column between the chart, the search box
// and the user list.
func (m *DashboardModel) layoutHeights(contentWidth int) (chartHeight, searchHeight, usersHeight int) {
	const headerHeight = 2
	const statusLineHeight = 1
	usable := m.height - headerHeight - statusLineHeight

	chartHeight = m.chart.ContentLines(contentWidth) + 3
	if m.filterEnabled() {
		searchHeight = 3
	}
	usersHeight = usable - chartHeight - searchHeight
	if !m.snapshot.HasUserList() {
		chartHeight += usersHeight
		usersHeight = 0
		return
	}
	if usersHeight < 4 {
		// Give the user list room before the chart.
		chartHeight = max(chartHeight-(4-usersHeight), 5)
		usersHeight = usable - chartHeight - searchHeight
	}
	return
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Initializing dashboard..."
	}

	// If a modal is on the stack, render it full-screen.
	if modal := m.TopModal(); modal != nil {
		return modal.View(m.width, m.height)
	}

	return m.renderDashboard()
}

// renderDashboard renders the main dashboard layout
func (m *DashboardModel) renderDashboard() string {
	if m.height < minHeight || m.width < minWidth {
		return fmt.Sprintf("Terminal too small. Resize to at least %dx%d.", minWidth, minHeight)
	}

	bodyHeight := m.height - 1
	statusLine := m.renderStatusLine()

	if m.isNarrow() && m.mobileActive && m.hasSidebar() {
		// The overlay covers the content column.
		sidebar := m.renderSidebar(bodyHeight - 2)
		rest := lipgloss.NewStyle().
			Width(max(m.width-sidebarWidth, 0)).
			Height(bodyHeight).
			Foreground(ColorGray).
			Render(" esc: close menu")
		return lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, sidebar, rest),
			statusLine,
		)
	}

	contentWidth := m.contentWidth()
	content := m.renderContent(contentWidth)

	if m.sidebarVisible() {
		sidebar := m.renderSidebar(bodyHeight - 2)
		content = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, statusLine)
}

func (m *DashboardModel) renderContent(width int) string {
	chartHeight, searchHeight, usersHeight := m.layoutHeights(width)

	parts := []string{m.renderHeader(width)}
	parts = append(parts, m.chart.Render(width, chartHeight))
	if searchHeight > 0 {
		parts = append(parts, m.renderSearchBar(width))
	}
	if usersHeight > 0 {
		parts = append(parts, m.renderUserList(width, usersHeight))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderHeader renders the page title with the clock on the first row and
// the location with the active menu on the second.
func (m *DashboardModel) renderHeader(width int) string {
	title := m.snapshot.Title
	if title == "" {
		title = "Dashboard"
	}
	if m.snapshot.Subtitle != "" {
		title += " · " + m.snapshot.Subtitle
	}
	clock := formatClock(m.clock)

	left := chartTitleStyle.Render(title)
	right := helpStyle.Render(clock)
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	first := left + strings.Repeat(" ", max(gap, 1)) + right
	if gap < 1 {
		first = ansi.Truncate(left, width, "…")
	}

	second := "Location: " + m.machine.Location()
	if summary := m.activeMenuSummary(); summary != "" {
		second += "  Active: " + summary
	}
	if m.isNarrow() && m.hasSidebar() {
		second += "  (m: menu)"
	}
	second = helpStyle.Render(ansi.Truncate(second, width, "…"))

	return lipgloss.JoinVertical(lipgloss.Left, first, second)
}

// renderStatusLine renders the bottom line: the last error when one is
// recent, otherwise the short help.
func (m *DashboardModel) renderStatusLine() string {
	if m.lastError != "" {
		msg := ansi.Truncate("Error: "+m.lastError, m.width, "…")
		return lipgloss.NewStyle().Foreground(ColorRed).Render(msg)
	}
	h := m.help
	h.ShowAll = false
	h.Width = m.width
	return h.View(m.keys)
}
