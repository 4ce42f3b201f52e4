package tui

import (
	"fmt"
	"io"
	"strings"

	"matchgames/internal/game"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// pickerItem is one game on the start screen.
type pickerItem struct {
	kind  game.Kind
	title string
	desc  string
}

func (i pickerItem) Title() string       { return i.title }
func (i pickerItem) Description() string { return i.desc }
func (i pickerItem) FilterValue() string { return i.title }

func pickerItems(c *game.Catalog) []list.Item {
	return []list.Item{
		pickerItem{
			kind:  game.KindFraction,
			title: "Fractions, Decimals & Percents",
			desc:  fmt.Sprintf("levels 1-%d", len(c.Fraction.Levels)),
		},
		pickerItem{
			kind:  game.KindTimes,
			title: "Multiplication Tables",
			desc:  fmt.Sprintf("tables %d-%d", c.Times.Min, c.Times.Max),
		},
	}
}

type compactItemDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	desc     lipgloss.Style
}

func newCompactItemDelegate() compactItemDelegate {
	return compactItemDelegate{
		normal: lipgloss.NewStyle().Foreground(colorSurfaceFg),
		selected: lipgloss.NewStyle().
			Foreground(colorAccentFg).
			Background(colorAccent).
			Bold(true),
		desc: styleMuted(),
	}
}

func (d compactItemDelegate) Height() int  { return 1 }
func (d compactItemDelegate) Spacing() int { return 0 }
func (d compactItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d compactItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		return
	}

	style := d.normal
	if index == m.Index() {
		style = d.selected
	}

	title, desc := fmt.Sprint(item), ""
	if it, ok := item.(pickerItem); ok {
		title, desc = it.title, it.desc
	}

	line := " " + title + " "
	if desc != "" {
		line += " " + desc
	}
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}
	fmt.Fprint(w, style.Render(line))
}

func newPicker(c *game.Catalog) list.Model {
	l := list.New(pickerItems(c), newCompactItemDelegate(), 0, 0)
	l.Title = "Games"
	// The app draws its own heading and help line.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetKeys("q")
	return l
}
