package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// visibleUserIndices returns the indices of rows the filter currently shows.
func (m *DashboardModel) visibleUserIndices() []int {
	if m.userList == nil {
		return nil
	}
	var out []int
	for i, row := range m.userList.Rows() {
		if row.Visible {
			out = append(out, i)
		}
	}
	return out
}

func (m *DashboardModel) clampUserCursor() {
	n := len(m.visibleUserIndices())
	if m.userCursor >= n {
		m.userCursor = n - 1
	}
	if m.userCursor < 0 {
		m.userCursor = 0
	}
}

func (m *DashboardModel) moveUserCursor(delta int) {
	m.userCursor += delta
	m.clampUserCursor()
}

// noResultsVisible mirrors the banner's display state after the last pass.
func (m *DashboardModel) noResultsVisible() bool {
	return m.userList != nil && m.lastResult.NoResults
}

// renderSearchBar renders the search input box.
func (m *DashboardModel) renderSearchBar(width int) string {
	style := sectionStyle.Width(width - 2)
	if m.activeSection == SectionSearch {
		style = activeSectionStyle.Width(width - 2)
	}
	m.searchInput.Width = max(width-8, 10)
	return style.Render(m.searchInput.View())
}

// rowWindow returns the slice [start, end) of n rows that fits in capacity
// lines and keeps cursor in view.
func rowWindow(n, cursor, capacity int) (start, end int) {
	if capacity <= 0 || n == 0 {
		return 0, 0
	}
	if n <= capacity {
		return 0, n
	}
	cursor = min(max(cursor, 0), n-1)
	start = max(cursor-capacity+1, 0)
	return start, start + capacity
}

// renderUserList renders the no-results banner, when shown, above the
// visible rows. The banner keeps its line however many rows are visible.
func (m *DashboardModel) renderUserList(width, height int) string {
	style := sectionStyle.Width(width - 2).Height(max(height-2, 1))
	if m.activeSection == SectionUsers {
		style = activeSectionStyle.Width(width - 2).Height(max(height-2, 1))
	}

	innerWidth := width - 4
	users := m.snapshot.UserRows()

	// Without a wired filter every row stays as the page delivered it.
	indices := m.visibleUserIndices()
	if m.userList == nil {
		indices = make([]int, len(users))
		for i := range users {
			indices[i] = i
		}
	}
	title := chartTitleStyle.Render(fmt.Sprintf("Users (%d/%d)", len(indices), len(users)))
	lines := []string{title}

	if m.noResultsVisible() {
		text := m.snapshot.NoResults.Text
		if text == "" {
			text = "No results"
		}
		lines = append(lines, noResultsStyle.Render(text))
	}

	capacity := max(height-2, 1) - len(lines)
	start, end := rowWindow(len(indices), m.userCursor, capacity)
	for pos := start; pos < end; pos++ {
		u := users[indices[pos]]
		line := fmt.Sprintf("%-18s %-28s %-9s %s", u.Name, u.Email, u.Role, u.Plate)
		line = ansi.Truncate(line, innerWidth, "…")
		if m.activeSection == SectionUsers && pos == m.userCursor {
			line = cursorEntryStyle.Render(line)
		}
		lines = append(lines, line)
	}

	return style.Render(lipgloss.NewStyle().MaxWidth(innerWidth).Render(strings.Join(lines, "\n")))
}
