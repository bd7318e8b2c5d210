package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// fitWidth forces s to exactly width columns, ANSI-aware, truncating with
// an ellipsis or padding with spaces. Keeps pane joins stable.
func fitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := xansi.StringWidth(s)
	if w > width {
		if width == 1 {
			return xansi.Cut(s, 0, 1)
		}
		s = xansi.Cut(s, 0, width-1) + "…"
		w = xansi.StringWidth(s)
	}
	if w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// normalizePane forces s to width columns by height lines so horizontal
// joins of the board and grid panes line up.
func normalizePane(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = fitWidth(lines[i], width)
	}
	return strings.Join(lines, "\n")
}
