package panel

import (
	"strconv"
	"time"

	"github.com/adamavenir/ghostpanel/internal/core"
	"github.com/adamavenir/ghostpanel/internal/types"
	"github.com/dustin/go-humanize"
)

const (
	HiddenHeader   = "Hidden Messages"
	BoundaryHeader = "Boundary Messages"
	HiddenEmpty    = "No hidden messages"
	BoundaryEmpty  = "No boundary messages"
)

// EntryKind distinguishes single-message entries from ranges.
type EntryKind int

const (
	EntrySingle EntryKind = iota
	EntryRange
)

// Entry is one navigable row of the overview panel.
type Entry struct {
	Kind  EntryKind
	ID    int
	Range types.Range
	// Preview is the truncated message text; Full is shown on hover.
	Preview string
	Full    string
	Author  string
	Age     string
}

// Label is the row text: "#12" or "Messages #3 - #7".
func (e Entry) Label() string {
	if e.Kind == EntryRange {
		return "Messages #" + strconv.Itoa(e.Range.Start) + " - #" + strconv.Itoa(e.Range.End)
	}
	return "#" + strconv.Itoa(e.ID)
}

// Targets returns the message ids this entry can navigate to.
func (e Entry) Targets() []int {
	if e.Kind == EntryRange {
		return []int{e.Range.Start, e.Range.End}
	}
	return []int{e.ID}
}

// Section is a titled list with a placeholder for the empty state.
type Section struct {
	Header  string
	Empty   string
	Entries []Entry
}

// View is the rendered content of the overview panel.
type View struct {
	Hidden     Section
	Boundaries Section
	TotalCount int
}

// Entries returns all entries in display order.
func (v View) Entries() []Entry {
	entries := make([]Entry, 0, len(v.Hidden.Entries)+len(v.Boundaries.Entries))
	entries = append(entries, v.Hidden.Entries...)
	return append(entries, v.Boundaries.Entries...)
}

// BuildView renders panel content from a snapshot and its classification.
func BuildView(messages []types.Message, data types.HiddenData, now time.Time) View {
	view := View{
		Hidden:     Section{Header: HiddenHeader, Empty: HiddenEmpty},
		Boundaries: Section{Header: BoundaryHeader, Empty: BoundaryEmpty},
		TotalCount: data.TotalCount,
	}

	for _, r := range core.GroupIntoRanges(data.HiddenMessages) {
		if r.Single() {
			view.Hidden.Entries = append(view.Hidden.Entries, singleEntry(messages, r.Start, now))
			continue
		}
		view.Hidden.Entries = append(view.Hidden.Entries, Entry{Kind: EntryRange, ID: r.Start, Range: r})
	}
	for _, id := range data.Boundaries {
		view.Boundaries.Entries = append(view.Boundaries.Entries, singleEntry(messages, id, now))
	}
	return view
}

func singleEntry(messages []types.Message, id int, now time.Time) Entry {
	entry := Entry{Kind: EntrySingle, ID: id, Range: types.Range{Start: id, End: id}}
	if id < 0 || id >= len(messages) {
		return entry
	}
	msg := messages[id]
	entry.Preview = core.Preview(msg.Text)
	entry.Full = msg.Text
	entry.Author = msg.Name
	entry.Age = formatSendDate(msg.SendDate, now)
	return entry
}

var sendDateLayouts = []string{
	"January 2, 2006 3:04pm",
	"January 2, 2006 3:04 pm",
	"Jan 2, 2006 3:04pm",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// formatSendDate renders a host send_date relative to now, or "" when it
// cannot be parsed.
func formatSendDate(raw string, now time.Time) string {
	if raw == "" {
		return ""
	}
	if millis, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return humanize.RelTime(time.UnixMilli(millis), now, "ago", "from now")
	}
	for _, layout := range sendDateLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return humanize.RelTime(parsed, now, "ago", "from now")
		}
	}
	return ""
}
