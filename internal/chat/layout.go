package chat

const (
	hiddenPanelWidth = 44
	triggerHeight    = 1
	toastHeight      = 1
	statusHeight     = 1
)

func (m *Model) panelOpen() bool {
	return m.panel != nil && m.panel.IsOpen()
}

func (m *Model) panelWidth() int {
	if !m.panelOpen() {
		return 0
	}
	if m.width > 0 && m.width < hiddenPanelWidth*2 {
		return m.width / 2
	}
	return hiddenPanelWidth
}

func (m *Model) mainWidth() int {
	if m.width == 0 {
		return 0
	}
	width := m.width - m.panelWidth()
	if width < 1 {
		width = 1
	}
	return width
}

func (m *Model) bodyHeight() int {
	height := m.height - triggerHeight - toastHeight - statusHeight
	if height < 1 {
		height = 1
	}
	return height
}

func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	atBottom := m.atBottom()
	m.viewport.Width = m.mainWidth()
	m.viewport.Height = m.bodyHeight()
	m.refreshViewport(atBottom)
}
