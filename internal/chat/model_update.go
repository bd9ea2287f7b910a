package chat

import (
	"time"

	"github.com/adamavenir/ghostpanel/internal/badge"
	"github.com/adamavenir/ghostpanel/internal/types"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const toastDuration = 4 * time.Second

// hostEventMsg carries a host event from the bus into the program loop.
type hostEventMsg struct {
	event types.EventType
}

// transcriptChangedMsg is sent by the file watcher after a debounced change.
type transcriptChangedMsg struct{}

// badgeFrameMsg is one badge render operation from the animation goroutine.
type badgeFrameMsg struct {
	count  *string
	add    badge.Animation
	remove badge.Animation
}

type highlightExpiredMsg struct {
	seq int
}

type toastExpiredMsg struct {
	seq int
}

type errMsg struct {
	err error
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	case tea.KeyMsg:
		cmd = m.handleKeyMsg(msg)
	case tea.MouseMsg:
		cmd = m.handleMouseMsg(msg)
	case hostEventMsg:
		cmd = m.handleHostEventMsg(msg)
	case transcriptChangedMsg:
		m.refreshTranscript("watch")
	case badgeFrameMsg:
		m.handleBadgeFrameMsg(msg)
	case highlightExpiredMsg:
		if msg.seq == m.highlightSeq {
			m.highlightID = -1
			m.refreshViewport(false)
		}
	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
	case errMsg:
		return m.handleErrMsg(msg)
	}
	return m, tea.Batch(cmd, m.flushCmds())
}

func (m *Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.resize()
	return m, nil
}

func (m *Model) handleHostEventMsg(msg hostEventMsg) tea.Cmd {
	m.refreshTranscript(string(msg.event))
	if msg.event == types.EventAppReady {
		m.startWatcher()
	}
	return nil
}

// refreshTranscript reloads the snapshot and recomputes the overview.
func (m *Model) refreshTranscript(reason string) {
	wasAtBottom := m.atBottom()
	if err := m.reload(); err != nil {
		m.log.Warn("transcript reload failed", zap.String("reason", reason), zap.Error(err))
		m.status = err.Error()
		return
	}
	m.log.Debug("transcript reloaded", zap.String("reason", reason), zap.Int("messages", len(m.messages)))
	if m.panel != nil {
		if _, err := m.panel.UpdateCounter(m.ctx); err != nil {
			m.status = err.Error()
		}
	}
	m.refreshViewport(wasAtBottom)
}

func (m *Model) handleBadgeFrameMsg(msg badgeFrameMsg) {
	if msg.count != nil {
		m.badgeCount = *msg.count
	}
	if msg.add != "" {
		m.badgeAnims[msg.add] = true
	}
	if msg.remove != "" {
		delete(m.badgeAnims, msg.remove)
	}
}

func (m *Model) handleErrMsg(msg errMsg) (tea.Model, tea.Cmd) {
	m.status = msg.err.Error()
	m.log.Warn("command failed", zap.Error(msg.err))
	return m, nil
}

// queueCmd defers a command produced inside a sink or viewport callback
// until the current Update returns.
func (m *Model) queueCmd(cmd tea.Cmd) {
	if cmd != nil {
		m.pendingCmds = append(m.pendingCmds, cmd)
	}
}

func (m *Model) flushCmds() tea.Cmd {
	if len(m.pendingCmds) == 0 {
		return nil
	}
	cmds := m.pendingCmds
	m.pendingCmds = nil
	return tea.Batch(cmds...)
}
