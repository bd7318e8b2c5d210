package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette. The board must stay readable on light and dark terminals, so
// everything routes through lipgloss.AdaptiveColor and "faint" styling is
// reserved for dark backgrounds (faint on light terminals goes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      = ac("240", "243")
	colorSurfaceFg  = ac("235", "252")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")
	colorAccent     = ac("27", "62") // blue
	colorDragBg     = ac("#d7e3fc", "#1f2a44")
	colorGridLine   = ac("253", "237")
	colorTodayFg    = ac("166", "214") // orange

	// Section accents: bullet and header color per board section.
	colorTodo      = ac("33", "75")   // blue
	colorScheduled = ac("130", "179") // amber
	colorCompleted = ac("28", "71")   // green
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleSelected() lipgloss.Style {
	return lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg)
}

func styleDivider() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Underline(true)
}

// applyColorProfilePreference pins Lip Gloss's color profile before the
// program starts. termenv.EnvColorProfile honors CLICOLOR, which is meant
// for piped CLI output and can strip a TUI of color, so only NO_COLOR is
// honored here.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection. Terminals that
// don't report their background make AdaptiveColor guess wrong, so the
// user can force a side:
//
//	NEKOTICK_TUI_THEME=light|dark|auto
//	NEKOTICK_TUI_DARKBG=true|false
//	COLORFGBG ("fg;bg") as a last heuristic
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("NEKOTICK_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("NEKOTICK_TUI_DARKBG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			lipgloss.SetHasDarkBackground(b)
			return
		}
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
