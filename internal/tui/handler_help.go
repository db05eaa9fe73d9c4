package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// HelpModal lists the key bindings.
type HelpModal struct {
	viewport           viewport.Model
	reverseScrollWheel bool
	renderView         func(vp *viewport.Model, width, height int) string
}

func NewHelpModal(m *DashboardModel) *HelpModal {
	return &HelpModal{
		viewport:           viewport.New(80, 20),
		reverseScrollWheel: m.reverseScrollWheel,
		renderView: func(vp *viewport.Model, width, height int) string {
			return m.renderHelpModal(vp, width, height)
		},
	}
}

func (h *HelpModal) ID() string { return "help" }

func (h *HelpModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			h.viewport.ScrollUp(1)
			return false, nil
		case "down", "j":
			h.viewport.ScrollDown(1)
			return false, nil
		case "?", "h", "q", "escape", "esc":
			return true, nil
		case "ctrl+c":
			return true, tea.Quit
		}
		var cmd tea.Cmd
		h.viewport, cmd = h.viewport.Update(msg)
		return false, cmd

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return false, nil
		}
		up := msg.Button == tea.MouseButtonWheelUp
		down := msg.Button == tea.MouseButtonWheelDown
		if h.reverseScrollWheel {
			up, down = down, up
		}
		switch {
		case up:
			h.viewport.ScrollUp(1)
		case down:
			h.viewport.ScrollDown(1)
		}
	}
	return false, nil
}

func (h *HelpModal) View(width, height int) string {
	return h.renderView(&h.viewport, width, height)
}
