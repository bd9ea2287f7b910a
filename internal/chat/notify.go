package chat

import (
	"strings"

	"github.com/adamavenir/ghostpanel/internal/core"
	"github.com/adamavenir/ghostpanel/internal/panel"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
)

var beeepNotify = beeep.Notify

// desktopNotifyCmd mirrors a toast as an OS notification.
func desktopNotifyCmd(n panel.Notification) tea.Cmd {
	title := n.Title
	if title == "" {
		title = core.AppName
	}
	body := truncateNotification(n.Text, 100)
	return func() tea.Msg {
		if err := beeepNotify(title, body, ""); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func truncateNotification(s string, maxLen int) string {
	// Collapse whitespace for notification
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
