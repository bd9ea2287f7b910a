package core

import (
	"strconv"

	"github.com/adamavenir/ghostpanel/internal/types"
)

const (
	instructionAuthor = "Instruction"
	narratorType      = "narrator"
	previewLength     = 50
)

// IsSystemInstruction reports whether msg is a hidden narrator instruction.
// These are excluded from the hidden count.
func IsSystemInstruction(msg types.Message) bool {
	return msg.IsHidden && msg.Name == instructionAuthor && msg.ExtraType == narratorType
}

// ComputeHiddenData classifies a transcript snapshot in one pass.
//
// Boundaries are detected from the raw hidden flag, so a run made only of
// system instructions still produces a boundary after it.
func ComputeHiddenData(messages []types.Message) types.HiddenData {
	hidden := []int{}
	boundaries := []int{}
	lastWasHidden := false

	for i, msg := range messages {
		isHidden := msg.IsHidden
		if isHidden && !IsSystemInstruction(msg) {
			hidden = append(hidden, i)
		}
		if !isHidden && lastWasHidden {
			boundaries = append(boundaries, i)
		}
		lastWasHidden = isHidden
	}

	return types.HiddenData{
		HiddenMessages: hidden,
		Boundaries:     boundaries,
		TotalCount:     len(hidden),
	}
}

// GroupIntoRanges collapses sorted, duplicate-free ids into maximal runs.
func GroupIntoRanges(ids []int) []types.Range {
	ranges := []types.Range{}
	if len(ids) == 0 {
		return ranges
	}

	current := types.Range{Start: ids[0], End: ids[0]}
	for _, id := range ids[1:] {
		if id == current.End+1 {
			current.End = id
			continue
		}
		ranges = append(ranges, current)
		current = types.Range{Start: id, End: id}
	}
	return append(ranges, current)
}

// FlattenRanges expands ranges back into individual ids.
func FlattenRanges(ranges []types.Range) []int {
	ids := []int{}
	for _, r := range ranges {
		for id := r.Start; id <= r.End; id++ {
			ids = append(ids, id)
		}
	}
	return ids
}

// BadgeValue is the label shown on the trigger badge.
func BadgeValue(data types.HiddenData) string {
	return strconv.Itoa(data.TotalCount)
}

// TriggerTitle is the hover title of the trigger control.
func TriggerTitle(count int) string {
	if count > 0 {
		return "Hidden Messages: " + strconv.Itoa(count)
	}
	return "Hidden Messages Overview"
}

// Preview truncates text to the panel preview length.
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}
	return string(runes[:previewLength]) + "..."
}
