package tui

import (
	"strings"

	"matchgames/internal/game"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.view == viewPicker {
		return m.viewPicker()
	}
	if m.resizing {
		msg := styleMuted().Render("Resizing…")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
	}
	return m.viewBoard()
}

func (m appModel) viewPicker() string {
	c := newCanvas(m.width, m.height)
	c.put(1, 0, styleTitle().Render("Match Games"))
	c.put(1, 1, styleMuted().Render("Pick a game with the arrows and press enter, or click it."))
	c.put(0, pickerTop, m.picker.View())
	if m.notice != "" {
		c.put(1, m.height-2, m.notice)
	}
	c.put(1, m.height-1, styleMuted().Render("enter start • q quit"))
	return c.String()
}

// viewBoard is a pure function of the snapshot, the frame and the drag
// session.
func (m appModel) viewBoard() string {
	f := m.frame
	s := m.snap
	c := newCanvas(m.width, m.height)
	if s.Board == nil {
		return c.String()
	}

	title := styleTitle().Render(f.titleText(s)) + "  " + styleMuted().Render(m.match.Progress())
	c.put(1, f.titleY, title)
	c.put(1, f.instrY, f.instr)
	c.put(1, f.hintY, styleMuted().Render(s.Board.Hint))

	if f.selectText != "" {
		c.put(0, f.controlsY, styleMuted().Render(f.selectText))
	}
	for _, b := range f.buttons {
		st := styleButton(b.enabled)
		if b.kind == buttonSelect {
			st = styleSelector(b.current)
		}
		c.put(b.rect.X, b.rect.Y, st.Render(b.label))
	}

	target, _ := m.session.Target()
	for _, t := range f.texts {
		st := styleFixed(t.rect.W)
		switch {
		case t.header:
			st = styleMuted().Bold(true).Width(t.rect.W).Align(lipgloss.Center)
		case t.row >= 0 && t.row < len(f.boardRows) && s.RowCorrect(f.boardRows[t.row]):
			st = styleCorrect(t.rect.W)
		}
		c.put(t.rect.X, t.rect.Y, st.Render(t.text))
	}
	for _, sl := range f.slots {
		if sl.filled && sl.zoneID != m.dragSourceZone() {
			continue
		}
		w := sl.rect.W
		fill := strings.Repeat(glyphSlot(), max(w-2, 1))
		st := styleSlot(w)
		if sl.zoneID == target {
			st = styleHighlight(w)
		}
		c.put(sl.rect.X, sl.rect.Y, st.Render(fill))
	}

	c.put(f.bank.X, f.bank.Y, styleBank().
		Width(max(f.bank.W-2, 0)).
		Height(max(f.bank.H-2, 0)).
		Render(" "+styleMuted().Render(f.bankLabel)))

	for _, ch := range f.chips {
		if m.session.Active() && ch.item.ID == m.session.ItemID() {
			if ch.inBank {
				c.put(ch.rect.X, ch.rect.Y, styleSlot(ch.rect.W).Render(""))
			}
			continue
		}
		x := ch.rect.X
		st := m.chipStyle(ch)
		if ch.item.ID == m.flashItemID {
			st = styleIncorrect(ch.rect.W)
			if m.flashStep < len(shakeOffsets) {
				x += shakeOffsets[m.flashStep]
			}
		}
		c.put(x, ch.rect.Y, st.Render(m.chipText(ch)))
	}

	c.put(1, f.scoreY, styleMuted().Render(m.scoreLine()))
	if m.notice != "" {
		c.put(1, f.noticeY, m.notice)
	}
	c.put(1, f.helpY, m.help.View(m.keys))

	if m.session.Active() {
		g := m.session.Ghost()
		if it, ok := m.match.Round().Item(m.session.ItemID()); ok {
			c.put(g.X, g.Y, styleGhost(g.W).Render(it.Value))
		}
	}

	if f.modal != nil {
		c.put(f.modal.rect.X, f.modal.rect.Y, f.modal.body)
	}
	return c.String()
}

func (f frame) titleText(s game.Snapshot) string {
	if s.Completed() {
		return s.Board.Title + "  " + glyphCheck()
	}
	return s.Board.Title
}

// dragSourceZone is the zone the dragged item was lifted from, if any. It
// renders as an empty slot while the drag lasts.
func (m appModel) dragSourceZone() string {
	if !m.session.Active() {
		return ""
	}
	return m.snap.Location(m.session.ItemID()).ZoneID
}

func (m appModel) chipStyle(ch chip) lipgloss.Style {
	w := ch.rect.W
	if ch.inBank {
		return styleCard(w)
	}
	zoneID := m.snap.Location(ch.item.ID).ZoneID
	switch m.snap.Verdict(zoneID) {
	case game.VerdictCorrect:
		return styleCorrect(w)
	case game.VerdictIncorrect:
		return styleIncorrect(w)
	case game.VerdictPending:
		return stylePending(w)
	}
	return styleCard(w)
}

func (m appModel) chipText(ch chip) string {
	text := ch.item.Value
	if ch.inBank {
		return text
	}
	zoneID := m.snap.Location(ch.item.ID).ZoneID
	switch m.snap.Verdict(zoneID) {
	case game.VerdictCorrect:
		if xansi.StringWidth(text)+2 <= ch.rect.W {
			return text + " " + glyphCheck()
		}
	case game.VerdictIncorrect:
		if xansi.StringWidth(text)+2 <= ch.rect.W {
			return text + " " + glyphCross()
		}
	}
	return text
}
