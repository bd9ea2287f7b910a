package chat

import tea "github.com/charmbracelet/bubbletea"

func (m *Model) handleMouseMsg(msg tea.MouseMsg) tea.Cmd {
	if msg.Shift {
		return nil
	}
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.handleMouseClick(msg)
		return nil
	}
	isWheelUp := msg.Button == tea.MouseButtonWheelUp
	isWheelDown := msg.Button == tea.MouseButtonWheelDown
	if (isWheelUp || isWheelDown) && m.panelOpen() && m.zoneManager.Get(zonePanel).InBounds(msg) {
		if isWheelUp {
			m.moveSelection(-1)
		} else {
			m.moveSelection(1)
		}
		return nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	if isWheelUp && m.nearTop() {
		m.loadOlderMessages()
	}
	return cmd
}

func (m *Model) handleMouseClick(msg tea.MouseMsg) {
	if m.panel == nil {
		return
	}
	if m.zoneManager.Get(zoneTrigger).InBounds(msg) {
		m.togglePanel()
		return
	}
	if m.panelOpen() {
		for idx, entry := range m.view.Entries() {
			switch {
			case m.zoneManager.Get(entryStartZone(idx)).InBounds(msg):
				m.panelIndex = idx
				m.navigateTo(entry.Range.Start)
				return
			case m.zoneManager.Get(entryEndZone(idx)).InBounds(msg):
				m.panelIndex = idx
				m.navigateTo(entry.Range.End)
				return
			case m.zoneManager.Get(entryZone(idx)).InBounds(msg):
				m.panelIndex = idx
				m.navigateTo(entry.ID)
				return
			}
		}
	}
	insidePanel := m.zoneManager.Get(zonePanel).InBounds(msg)
	insideTrigger := m.zoneManager.Get(zoneTrigger).InBounds(msg)
	wasOpen := m.panelOpen()
	m.panel.HandleClick(insidePanel, insideTrigger)
	if wasOpen && !m.panelOpen() {
		m.resize()
	}
}
