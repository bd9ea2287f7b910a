package chat

import (
	"hash/fnv"
	"strconv"

	"github.com/adamavenir/ghostpanel/internal/badge"
	"github.com/charmbracelet/lipgloss"
)

var (
	metaColor      = lipgloss.Color("245")
	userColor      = lipgloss.Color("231")
	hiddenColor    = lipgloss.Color("141")
	highlightColor = lipgloss.Color("220")
	statusColor    = lipgloss.Color("241")
	successColor   = lipgloss.Color("42")
	infoColor      = lipgloss.Color("75")
)

var badgeRestColor = lipgloss.Color("99")

// badgeColors stand in for the keyframe animations while they run.
var badgeColors = map[badge.Animation]lipgloss.Color{
	badge.AnimationIn:     lipgloss.Color("141"),
	badge.AnimationOut:    lipgloss.Color("240"),
	badge.AnimationBounce: lipgloss.Color("213"),
}

var authorPalette = []lipgloss.Color{
	lipgloss.Color("111"),
	lipgloss.Color("157"),
	lipgloss.Color("216"),
	lipgloss.Color("36"),
	lipgloss.Color("183"),
	lipgloss.Color("230"),
}

func colorForAuthor(name string) lipgloss.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return authorPalette[h.Sum32()%uint32(len(authorPalette))]
}

// contrastTextColor picks black or white text for a 256-colour background.
func contrastTextColor(bg lipgloss.Color) lipgloss.Color {
	code, err := strconv.Atoi(string(bg))
	if err != nil {
		return lipgloss.Color("231")
	}
	r, g, b := ansi256ToRGB(code)
	if 0.299*float64(r)+0.587*float64(g)+0.114*float64(b) > 128 {
		return lipgloss.Color("16")
	}
	return lipgloss.Color("231")
}

func ansi256ToRGB(code int) (int, int, int) {
	switch {
	case code >= 16 && code <= 231:
		level := func(v int) int {
			if v == 0 {
				return 0
			}
			return 55 + v*40
		}
		idx := code - 16
		return level(idx / 36), level(idx % 36 / 6), level(idx % 6)
	case code >= 232 && code <= 255:
		gray := 8 + (code-232)*10
		return gray, gray, gray
	case code == 7 || code == 15:
		return 255, 255, 255
	case code == 0:
		return 0, 0, 0
	default:
		return 128, 128, 128
	}
}
