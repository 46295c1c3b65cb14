package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const helpModalMaxWidth = 72

var helpNotes = []string{
	"The active menu follows the page location. When the",
	"location is not in the menu, the last chosen entry is used.",
	"Search filters the user list as you type.",
}

// HelpModal lists every key binding in a scrollable box.
type HelpModal struct {
	keys     KeyMap
	help     help.Model
	viewport viewport.Model
}

// NewHelpModal builds the modal from the dashboard's bindings.
func NewHelpModal(keys KeyMap, h help.Model) *HelpModal {
	h.ShowAll = true
	return &HelpModal{keys: keys, help: h, viewport: viewport.New(helpModalMaxWidth, 20)}
}

func (h *HelpModal) ID() string { return "help" }

// Update scrolls on up/down and the wheel; help, quit or escape close it.
func (h *HelpModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, h.keys.Help, h.keys.Quit, h.keys.Escape):
			return true, nil
		case key.Matches(msg, h.keys.Up):
			h.viewport.ScrollUp(1)
			return false, nil
		case key.Matches(msg, h.keys.Down):
			h.viewport.ScrollDown(1)
			return false, nil
		}
		var cmd tea.Cmd
		h.viewport, cmd = h.viewport.Update(msg)
		return false, cmd

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return false, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			h.viewport.ScrollUp(1)
		case tea.MouseButtonWheelDown:
			h.viewport.ScrollDown(1)
		}
	}
	return false, nil
}

// View centers the modal in a width x height screen.
func (h *HelpModal) View(width, height int) string {
	modalWidth := min(width-4, helpModalMaxWidth)
	contentWidth := modalWidth - 4

	h.viewport.Width = contentWidth
	h.viewport.Height = max(height-8, 3)
	h.help.Width = contentWidth

	body := []string{h.help.View(h.keys), ""}
	for _, note := range helpNotes {
		body = append(body, helpStyle.Render(note))
	}
	h.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, body...))

	title := lipgloss.NewStyle().Width(contentWidth).Foreground(ColorBlue).Bold(true).Render("Help")
	footer := helpStyle.Render("↑/↓/Wheel: Scroll | ?/ESC: Close")

	box := lipgloss.NewStyle().
		Width(modalWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, h.viewport.View(), footer))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
