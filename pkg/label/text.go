package label

import "strings"

// ellipsis is appended to truncated text. A single rune keeps the width
// math simple.
const ellipsis = "…"

// wrapText word-wraps text to the given width using the canvas's font
// metrics. A word longer than the width gets its own line rather than
// being split. Always returns at least one line.
func wrapText(c Canvas, text string, maxWidth float64, f Font) []string {
	words := strings.Fields(text)
	var lines []string
	var cur []string

	for _, w := range words {
		candidate := strings.Join(append(cur, w), " ")
		if c.TextWidth(candidate, f) <= maxWidth {
			cur = append(cur, w)
		} else {
			if len(cur) > 0 {
				lines = append(lines, strings.Join(cur, " "))
			}
			cur = []string{w}
		}
	}
	if len(cur) > 0 {
		lines = append(lines, strings.Join(cur, " "))
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// ellipsize truncates text to fit maxWidth, appending a visible ellipsis.
// Binary search over the rune count finds the longest prefix that fits.
func ellipsize(c Canvas, text string, maxWidth float64, f Font) string {
	if c.TextWidth(text, f) <= maxWidth {
		return text
	}

	runes := []rune(text)
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi) / 2
		if c.TextWidth(string(runes[:mid])+ellipsis, f) <= maxWidth {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	cut := lo - 1
	if cut < 0 {
		cut = 0
	}
	return string(runes[:cut]) + ellipsis
}
