package tui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdMu sync.Mutex
	// Renderers are cached by style and wrap width; creating one with
	// WithAutoStyle probes the terminal and can block, so the style is
	// resolved once from the environment instead.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// renderMarkdown renders task notes for the detail pane. On any renderer
// failure the raw markdown is shown rather than nothing.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := markdownStyle()
	key := fmt.Sprintf("%s:%d", style, width)

	mdMu.Lock()
	r := mdRenderers[key]
	mdMu.Unlock()

	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdMu.Lock()
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// markdownStyle keeps glamour aligned with the TUI theme so notes never
// render with a dark palette on a light terminal.
func markdownStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("NEKOTICK_TUI_MD_STYLE"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("NEKOTICK_TUI_THEME"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
