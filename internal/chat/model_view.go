package chat

import (
	"fmt"
	"strings"

	"github.com/adamavenir/ghostpanel/internal/badge"
	"github.com/adamavenir/ghostpanel/internal/panel"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	zoneTrigger = "trigger"
	zonePanel   = "panel"
)

func (m *Model) View() string {
	statusLine := lipgloss.NewStyle().Foreground(statusColor).Render(m.statusLine())

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTrigger(),
		m.viewport.View(),
		m.renderToast(),
		statusLine,
	)

	output := main
	if m.panelOpen() {
		if overview := m.renderHiddenPanel(); overview != "" {
			output = lipgloss.JoinHorizontal(lipgloss.Top, main, m.zoneManager.Mark(zonePanel, overview))
		}
	}
	return m.zoneManager.Scan(output)
}

// renderTrigger draws the panel toggle with its animated counter badge.
func (m *Model) renderTrigger() string {
	if m.panel == nil {
		return lipgloss.NewStyle().Foreground(metaColor).Render(m.chatName)
	}
	style := lipgloss.NewStyle().Foreground(hiddenColor).Bold(true)
	if m.panelOpen() {
		style = style.Underline(true)
	}
	trigger := style.Render("👻 " + m.title)
	if b := m.renderBadge(); b != "" {
		trigger += " " + b
	}
	trigger = m.zoneManager.Mark(zoneTrigger, trigger)
	return alignStatusLine(trigger, lipgloss.NewStyle().Foreground(metaColor).Render(m.chatName), m.mainWidth())
}

func (m *Model) renderBadge() string {
	if m.badgeCount == "" || (m.badgeCount == "0" && !m.badgeAnims[badge.AnimationOut]) {
		return ""
	}
	style := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	bg := badgeRestColor
	switch {
	case m.badgeAnims[badge.AnimationOut]:
		bg = badgeColors[badge.AnimationOut]
		style = style.Bold(false).Faint(true)
	case m.badgeAnims[badge.AnimationBounce]:
		bg = badgeColors[badge.AnimationBounce]
		style = style.Reverse(true)
	case m.badgeAnims[badge.AnimationIn]:
		bg = badgeColors[badge.AnimationIn]
	}
	return style.Background(bg).Foreground(contrastTextColor(bg)).Render(m.badgeCount)
}

func (m *Model) renderToast() string {
	if m.toast == nil {
		return ""
	}
	color := infoColor
	if m.toast.Level == panel.LevelSuccess {
		color = successColor
	}
	text := m.toast.Text
	if width := m.mainWidth(); width > 0 {
		text = ansi.Truncate(text, width, "…")
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func (m *Model) statusLine() string {
	right := "q quit"
	if m.panel != nil {
		right = "tab overview · " + right
	}
	left := fmt.Sprintf("%d messages", len(m.messages))
	if m.hasMore() {
		left = fmt.Sprintf("%d of %d messages", len(m.messages)-m.renderFrom, len(m.messages))
	}
	if m.status != "" {
		left = fmt.Sprintf("%s · %s", m.status, left)
	}
	return alignStatusLine(left, right, m.mainWidth())
}

func alignStatusLine(left, right string, width int) string {
	if width <= 0 || right == "" {
		return left
	}
	leftWidth := ansi.StringWidth(left)
	rightWidth := ansi.StringWidth(right)
	if leftWidth+rightWidth+1 > width {
		return left
	}
	spaces := width - leftWidth - rightWidth
	return left + strings.Repeat(" ", spaces) + right
}
