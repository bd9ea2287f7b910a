package command

import (
	"fmt"
	"strings"

	"github.com/adamavenir/ghostpanel/internal/panel"
	"github.com/adamavenir/ghostpanel/internal/types"
)

// FormatView renders the overview panel as plain text.
func FormatView(view panel.View) string {
	var b strings.Builder
	for i, section := range []panel.Section{view.Hidden, view.Boundaries} {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(section.Header)
		b.WriteString("\n")
		if len(section.Entries) == 0 {
			fmt.Fprintf(&b, "  %s\n", section.Empty)
			continue
		}
		for _, entry := range section.Entries {
			b.WriteString("  ")
			b.WriteString(formatEntry(entry))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func formatEntry(entry panel.Entry) string {
	line := entry.Label()
	var meta []string
	if entry.Author != "" {
		meta = append(meta, entry.Author)
	}
	if entry.Age != "" {
		meta = append(meta, entry.Age)
	}
	if len(meta) > 0 {
		line += " (" + strings.Join(meta, ", ") + ")"
	}
	if entry.Preview != "" {
		line += ": " + entry.Preview
	}
	return line
}

// formatRanges renders ranges compactly: "#1-#2, #4".
func formatRanges(ranges []types.Range) string {
	if len(ranges) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(ranges))
	for _, r := range ranges {
		if r.Single() {
			parts = append(parts, fmt.Sprintf("#%d", r.Start))
			continue
		}
		parts = append(parts, fmt.Sprintf("#%d-#%d", r.Start, r.End))
	}
	return strings.Join(parts, ", ")
}

func formatIDs(ids []int) string {
	if len(ids) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("#%d", id))
	}
	return strings.Join(parts, ", ")
}
