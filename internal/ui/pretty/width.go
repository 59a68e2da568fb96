package pretty

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// DisplayWidth returns the number of terminal cells s occupies.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most width cells, ending it with Ellipsis when
// anything was cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, Ellipsis)
}

// TruncateLeft shortens s to at most width cells by dropping its start.
// Paths keep their most specific part this way.
func TruncateLeft(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(s) <= width {
		return s
	}

	target := width - DisplayWidth(Ellipsis)
	runes := []rune(s)
	current := 0
	i := len(runes)
	for i > 0 {
		w := runewidth.RuneWidth(runes[i-1])
		if current+w > target {
			break
		}
		current += w
		i--
	}
	return Ellipsis + string(runes[i:])
}

// PadRight pads s with spaces to width cells. Call it before styling.
func PadRight(s string, width int) string {
	if gap := width - DisplayWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// PadLeft pads s with leading spaces to width cells. Call it before styling.
func PadLeft(s string, width int) string {
	if gap := width - DisplayWidth(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

// SingleLine replaces line breaks and tabs with spaces.
func SingleLine(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return ' '
		default:
			return r
		}
	}, s)
}
