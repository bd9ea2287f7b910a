package chat

import (
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) refreshViewport(scrollToBottom bool) {
	content, offsets := m.renderMessages()
	// Keep content taller than the viewport so the first line is never cut
	// off by the renderer.
	contentHeight := lipgloss.Height(content)
	if contentHeight > 0 && contentHeight <= m.viewport.Height {
		content = "\n" + content
		for id := range offsets {
			offsets[id]++
		}
	}
	m.lineOffsets = offsets
	m.viewport.SetContent(content)
	if scrollToBottom {
		m.viewport.GotoBottom()
		return
	}
	if m.viewport.Height <= 0 {
		return
	}
	maxOffset := lipgloss.Height(content) - m.viewport.Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.viewport.YOffset > maxOffset {
		m.viewport.SetYOffset(maxOffset)
	}
}

func (m *Model) nearTop() bool {
	return m.viewport.YOffset <= 5
}

// atBottom returns true if the viewport is scrolled to (or near) the bottom
func (m *Model) atBottom() bool {
	if m.viewport.Height <= 0 {
		return true
	}
	maxOffset := m.viewport.TotalLineCount() - m.viewport.Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	return m.viewport.YOffset >= maxOffset-3
}

func (m *Model) hasMore() bool {
	return m.renderFrom > 0
}

// loadOlderMessages extends the rendered window by one page, keeping the
// message under the cursor in place.
func (m *Model) loadOlderMessages() {
	if !m.hasMore() {
		return
	}
	prevHeight := m.viewport.TotalLineCount()
	m.renderFrom -= m.lastLimit
	if m.renderFrom < 0 {
		m.renderFrom = 0
	}
	m.refreshViewport(false)
	delta := m.viewport.TotalLineCount() - prevHeight
	if delta > 0 {
		m.viewport.SetYOffset(m.viewport.YOffset + delta)
	}
}
