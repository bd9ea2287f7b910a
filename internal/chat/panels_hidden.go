package chat

import (
	"fmt"
	"strings"

	"github.com/adamavenir/ghostpanel/internal/panel"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const detailLines = 3

type panelLine struct {
	text  string
	entry int // -1 for headers and padding
}

func entryZone(idx int) string {
	return fmt.Sprintf("entry-%d", idx)
}

func entryStartZone(idx int) string {
	return fmt.Sprintf("entry-%d-start", idx)
}

func entryEndZone(idx int) string {
	return fmt.Sprintf("entry-%d-end", idx)
}

func (m *Model) renderHiddenPanel() string {
	width := m.panelWidth()
	if width <= 0 {
		return ""
	}
	inner := width - 2
	if inner < 4 {
		inner = 4
	}

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true)
	itemStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	previewStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("236")).Bold(true)
	buttonStyle := lipgloss.NewStyle().Foreground(hiddenColor)

	var lines []panelLine
	entryIdx := 0
	for _, section := range []panel.Section{m.view.Hidden, m.view.Boundaries} {
		header := " " + section.Header + " "
		if section.Header == panel.HiddenHeader {
			header = fmt.Sprintf(" %s (%d) ", section.Header, m.view.TotalCount)
		}
		lines = append(lines, panelLine{text: headerStyle.Render(header), entry: -1})
		if len(section.Entries) == 0 {
			lines = append(lines, panelLine{text: itemStyle.Render(" " + section.Empty), entry: -1})
		}
		for _, entry := range section.Entries {
			style := itemStyle
			if entryIdx == m.panelIndex {
				style = selectedStyle
			}
			label := " " + entry.Label()
			if entry.Author != "" {
				label += " · " + entry.Author
			}
			if entry.Age != "" {
				label += " · " + entry.Age
			}
			row := style.Render(ansi.Truncate(label, inner, "…"))
			lines = append(lines, panelLine{text: m.zoneManager.Mark(entryZone(entryIdx), row), entry: entryIdx})

			if entry.Kind == panel.EntryRange {
				buttons := "   " + m.zoneManager.Mark(entryStartZone(entryIdx), buttonStyle.Render("[start]")) +
					" " + m.zoneManager.Mark(entryEndZone(entryIdx), buttonStyle.Render("[end]"))
				lines = append(lines, panelLine{text: buttons, entry: entryIdx})
			} else if entry.Preview != "" {
				preview := previewStyle.Render("   " + ansi.Truncate(entry.Preview, inner-3, "…"))
				lines = append(lines, panelLine{text: preview, entry: entryIdx})
			}
			entryIdx++
		}
		lines = append(lines, panelLine{entry: -1})
	}

	footer := m.panelFooter(inner)
	visibleHeight := m.height - len(footer)
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	visible := m.visiblePanelLines(lines, visibleHeight)

	out := make([]string, 0, m.height)
	for _, line := range visible {
		out = append(out, line.text)
	}
	for len(out) < visibleHeight {
		out = append(out, "")
	}
	out = append(out, footer...)

	return lipgloss.NewStyle().
		Width(width-1).
		Height(m.height).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("238")).
		Render(strings.Join(out, "\n"))
}

// visiblePanelLines scrolls the panel so the selected entry stays in view.
func (m *Model) visiblePanelLines(lines []panelLine, height int) []panelLine {
	first, last := -1, -1
	for i, line := range lines {
		if line.entry == m.panelIndex {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first >= 0 {
		if first < m.panelOffset {
			m.panelOffset = first
		}
		if last >= m.panelOffset+height {
			m.panelOffset = last - height + 1
		}
	}
	maxOffset := len(lines) - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.panelOffset > maxOffset {
		m.panelOffset = maxOffset
	}
	if m.panelOffset < 0 {
		m.panelOffset = 0
	}
	end := m.panelOffset + height
	if end > len(lines) {
		end = len(lines)
	}
	return lines[m.panelOffset:end]
}

// panelFooter shows the full text of the selected entry and the key hints.
func (m *Model) panelFooter(width int) []string {
	hint := lipgloss.NewStyle().Foreground(metaColor).Render(" enter go · s/e ends · esc close")
	entry, ok := m.selectedEntry()
	if !ok || entry.Full == "" {
		return []string{hint}
	}
	wrapped := strings.Split(lipgloss.NewStyle().Width(width).Render(entry.Full), "\n")
	if len(wrapped) > detailLines {
		wrapped = wrapped[:detailLines]
		wrapped[detailLines-1] = ansi.Truncate(wrapped[detailLines-1], width-1, "") + "…"
	}
	footer := make([]string, 0, len(wrapped)+1)
	for _, line := range wrapped {
		footer = append(footer, lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Render(" "+line))
	}
	return append(footer, hint)
}

func (m *Model) selectedEntry() (panel.Entry, bool) {
	entries := m.view.Entries()
	if m.panelIndex < 0 || m.panelIndex >= len(entries) {
		return panel.Entry{}, false
	}
	return entries[m.panelIndex], true
}

func (m *Model) moveSelection(delta int) {
	m.panelIndex += delta
	m.clampPanelSelection()
}

func (m *Model) clampPanelSelection() {
	count := len(m.view.Entries())
	if m.panelIndex >= count {
		m.panelIndex = count - 1
	}
	if m.panelIndex < 0 {
		m.panelIndex = 0
	}
}
