package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The board must stay readable on light and dark terminals. Colors are
// lipgloss.AdaptiveColor pairs; "faint" is only used on dark backgrounds.

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
	colorMuted     = ac("240", "243")
	colorSurfaceFg = ac("235", "252")

	colorCardBg = ac("254", "237")
	colorCardFg = ac("235", "255")
	// Empty drop zones.
	colorSlotBg = ac("252", "235")
	colorSlotFg = ac("245", "240")

	colorAccent   = ac("27", "62")
	colorAccentFg = ac("255", "255")

	colorCorrectBg   = ac("151", "22")
	colorCorrectFg   = ac("22", "157")
	colorIncorrectBg = ac("224", "52")
	colorIncorrectFg = ac("124", "217")
	colorPendingBg   = ac("230", "58")
	colorPendingFg   = ac("94", "229")

	colorBorder = ac("250", "243")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
}

func styleCard(w int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(w).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(colorCardFg).
		Background(colorCardBg)
}

func styleSlot(w int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(w).
		Align(lipgloss.Center).
		Foreground(colorSlotFg).
		Background(colorSlotBg)
}

func styleHighlight(w int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(w).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(colorAccentFg).
		Background(colorAccent)
}

func styleGhost(w int) lipgloss.Style {
	return styleHighlight(w).Underline(true)
}

func styleCorrect(w int) lipgloss.Style {
	return styleCard(w).Foreground(colorCorrectFg).Background(colorCorrectBg)
}

func styleIncorrect(w int) lipgloss.Style {
	return styleCard(w).Foreground(colorIncorrectFg).Background(colorIncorrectBg)
}

func stylePending(w int) lipgloss.Style {
	return styleCard(w).Foreground(colorPendingFg).Background(colorPendingBg)
}

func styleFixed(w int) lipgloss.Style {
	return lipgloss.NewStyle().Width(w).Align(lipgloss.Center).Foreground(colorSurfaceFg)
}

func styleButton(enabled bool) lipgloss.Style {
	st := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	if !enabled {
		return faintIfDark(st.Foreground(colorMuted).Background(colorSlotBg))
	}
	return st.Foreground(colorAccentFg).Background(colorAccent)
}

func styleSelector(current bool) lipgloss.Style {
	st := lipgloss.NewStyle().Padding(0, 1)
	if current {
		return st.Bold(true).Foreground(colorAccentFg).Background(colorAccent)
	}
	return st.Foreground(colorSurfaceFg).Background(colorSlotBg)
}

func styleBank() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder)
}

func styleModal() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// termenv.EnvColorProfile also honors CLICOLOR, which can disable colors in
// a TUI by accident; only NO_COLOR is honored here.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// xterm.js behind the web bridge reports TERM=xterm-256color; trust the
	// env when it claims more than the detector found.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && profile != termenv.TrueColor {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection.
//
// Priority:
// 1) MATCHGAMES_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("15;0" = fg;bg)
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("MATCHGAMES_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
