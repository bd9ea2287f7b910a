package chat

import (
	"errors"

	"github.com/adamavenir/ghostpanel/internal/types"
	"github.com/adamavenir/ghostpanel/internal/watcher"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Init announces readiness on the bus; the app_ready handler computes the
// first overview and starts the file watcher.
func (m *Model) Init() tea.Cmd {
	return m.emitCmd(types.EventAppReady)
}

func (m *Model) emitCmd(event types.EventType) tea.Cmd {
	bus := m.bus
	return func() tea.Msg {
		if err := bus.Emit(event); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (m *Model) startWatcher() {
	if m.watcher != nil || m.watchDir == "" {
		return
	}
	w, err := watcher.New(watcher.Options{
		Dir:      m.watchDir,
		Pattern:  m.pattern,
		Debounce: m.debounce,
		Logger:   m.log,
		OnChange: func() { m.send(transcriptChangedMsg{}) },
	})
	if err != nil {
		if errors.Is(err, watcher.ErrContainerMissing) {
			m.log.Warn("transcript container not found, watching host events only", zap.String("dir", m.watchDir))
			return
		}
		m.log.Warn("file watcher unavailable", zap.Error(err))
		return
	}
	w.Start(m.ctx)
	m.watcher = w
}

func (m *Model) Close() {
	m.cancel()
	if m.watcher != nil {
		_ = m.watcher.Close()
	}
	if m.panel != nil {
		m.panel.Close()
	}
	m.zoneManager.Close()
}
