package chat

import (
	"github.com/adamavenir/ghostpanel/internal/types"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if handled, cmd := m.handlePanelKeys(msg); handled {
		return cmd
	}
	switch msg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyCtrlR:
		return m.emitCmd(types.EventChatUpdated)
	case tea.KeyTab:
		m.togglePanel()
		return nil
	case tea.KeyPgUp, tea.KeyHome:
		if m.nearTop() {
			m.loadOlderMessages()
		}
	case tea.KeyRunes:
		if msg.String() == "q" {
			return tea.Quit
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// handlePanelKeys handles selection and navigation while the overview is open.
func (m *Model) handlePanelKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	if !m.panelOpen() {
		return false, nil
	}
	switch msg.String() {
	case "esc":
		m.panel.Hide()
		m.resize()
		return true, nil
	case "up", "k":
		m.moveSelection(-1)
		return true, nil
	case "down", "j":
		m.moveSelection(1)
		return true, nil
	case "enter":
		if entry, ok := m.selectedEntry(); ok {
			m.navigateTo(entry.ID)
		}
		return true, nil
	case "s", "e":
		entry, ok := m.selectedEntry()
		if !ok {
			return true, nil
		}
		if msg.String() == "s" {
			m.navigateTo(entry.Range.Start)
		} else {
			m.navigateTo(entry.Range.End)
		}
		return true, nil
	}
	return false, nil
}

func (m *Model) togglePanel() {
	if m.panel == nil {
		return
	}
	if _, err := m.panel.Toggle(m.ctx); err != nil {
		m.status = err.Error()
	}
	m.resize()
}

func (m *Model) navigateTo(id int) {
	if m.panel == nil {
		return
	}
	m.panel.Navigate(m, id)
}
