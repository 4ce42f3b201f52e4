package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive program. Cell-motion mouse reporting delivers
// press, motion-while-pressed and release events; focus reporting lets a
// lost window focus cancel a drag.
func Run(opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()
	applyGlyphPreference(opts.Glyphs)

	m, err := newAppModel(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	).Run()
	return err
}
