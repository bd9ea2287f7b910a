package chat

import (
	"time"

	"github.com/adamavenir/ghostpanel/internal/badge"
	"github.com/adamavenir/ghostpanel/internal/panel"
	tea "github.com/charmbracelet/bubbletea"
)

// Badge operations arrive from the animation goroutine, so they are
// forwarded into the program loop rather than applied directly.

func (m *Model) SetCount(value string) {
	m.send(badgeFrameMsg{count: &value})
}

func (m *Model) AddAnimation(anim badge.Animation) {
	m.send(badgeFrameMsg{add: anim})
}

func (m *Model) RemoveAnimation(anim badge.Animation) {
	m.send(badgeFrameMsg{remove: anim})
}

// The remaining sink and viewport methods run inside Update.

func (m *Model) RenderPanel(view panel.View) {
	m.view = view
	m.clampPanelSelection()
}

func (m *Model) RenderTitle(title string) {
	m.title = title
}

func (m *Model) Notify(n panel.Notification) {
	m.toast = &n
	m.toastSeq++
	seq := m.toastSeq
	m.queueCmd(tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	}))
	if m.desktop {
		m.queueCmd(desktopNotifyCmd(n))
	}
}

// Reveal centres message id in the viewport when it is rendered.
func (m *Model) Reveal(id int) bool {
	if id < m.renderFrom || id >= len(m.messages) {
		return false
	}
	offset, ok := m.lineOffsets[id]
	if !ok {
		return false
	}
	target := offset - m.viewport.Height/2
	if target < 0 {
		target = 0
	}
	m.viewport.SetYOffset(target)
	return true
}

func (m *Model) Highlight(id int, d time.Duration) {
	m.highlightID = id
	m.highlightSeq++
	seq := m.highlightSeq
	offset := m.viewport.YOffset
	m.refreshViewport(false)
	m.viewport.SetYOffset(offset)
	m.queueCmd(tea.Tick(d, func(time.Time) tea.Msg {
		return highlightExpiredMsg{seq: seq}
	}))
}

func (m *Model) ScrollToTop() {
	m.viewport.GotoTop()
}
