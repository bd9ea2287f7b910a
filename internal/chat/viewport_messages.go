package chat

import (
	"fmt"
	"strings"

	"github.com/adamavenir/ghostpanel/internal/core"
	"github.com/adamavenir/ghostpanel/internal/types"
	"github.com/charmbracelet/lipgloss"
)

// renderMessages renders the loaded window of the transcript and returns the
// starting line of each rendered message.
func (m *Model) renderMessages() (string, map[int]int) {
	offsets := make(map[int]int, len(m.messages)-m.renderFrom)
	if len(m.messages) == 0 {
		return lipgloss.NewStyle().Foreground(metaColor).Render("No messages yet."), offsets
	}

	width := m.mainWidth()
	var chunks []string
	line := 0
	if m.hasMore() {
		hint := fmt.Sprintf("↑ %d earlier messages · PgUp to load", m.renderFrom)
		chunks = append(chunks, lipgloss.NewStyle().Foreground(metaColor).Italic(true).Render(hint))
		line++
	}
	for i := m.renderFrom; i < len(m.messages); i++ {
		if len(chunks) > 0 {
			chunks = append(chunks, "")
			line++
		}
		offsets[i] = line
		chunk := m.formatMessage(m.messages[i], width)
		chunks = append(chunks, chunk)
		line += lipgloss.Height(chunk)
	}
	return strings.Join(chunks, "\n"), offsets
}

func (m *Model) formatMessage(msg types.Message, width int) string {
	nameStyle := lipgloss.NewStyle().Foreground(colorForAuthor(msg.Name)).Bold(true)
	if msg.IsUser {
		nameStyle = nameStyle.Foreground(userColor)
	}
	meta := lipgloss.NewStyle().Foreground(metaColor)

	header := meta.Render(fmt.Sprintf("#%d", msg.Index)) + " " + nameStyle.Render(displayName(msg))
	switch {
	case core.IsSystemInstruction(msg):
		header += " " + meta.Render("· narrator")
	case msg.IsHidden:
		header += " " + lipgloss.NewStyle().Foreground(hiddenColor).Render("· 👻 hidden")
	}

	bodyStyle := lipgloss.NewStyle()
	if width > 2 {
		bodyStyle = bodyStyle.Width(width - 2)
	}
	if msg.IsHidden && !core.IsSystemInstruction(msg) {
		bodyStyle = bodyStyle.Faint(true)
	}
	body := bodyStyle.Render(msg.Text)

	block := header + "\n" + body
	if msg.Index == m.highlightID {
		block = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(highlightColor).
			Render(block)
	}
	return block
}

func displayName(msg types.Message) string {
	if msg.Name == "" {
		return "unknown"
	}
	return msg.Name
}
