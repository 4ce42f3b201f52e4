package tui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"matchgames/internal/dnd"
	"matchgames/internal/game"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

func (m appModel) Init() tea.Cmd {
	return tea.SetWindowTitle("Match Games")
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.picker.SetSize(msg.Width, max(msg.Height-pickerTop-2, 1))
		m.cancelDrag("resize")
		m.relayout()
		// Don't show the resize overlay on startup; only after we've seen an initial size.
		if !m.seenWindowSize {
			m.seenWindowSize = true
			m.resizing = false
			return m, nil
		}
		m.resizing = true
		m.resizeSeq++
		seq := m.resizeSeq
		return m, tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg { return resizeDoneMsg{seq: seq} })

	case resizeDoneMsg:
		if msg.seq == m.resizeSeq {
			m.resizing = false
		}
		return m, nil

	case frameMsg:
		if msg.seq != m.frameSeq {
			return m, nil
		}
		if p, ok := m.gate.Flush(); ok && m.session.Active() {
			m.session.Move(p, m.index)
		}
		return m, nil

	case flashMsg:
		if msg.seq != m.flashSeq || m.flashItemID == "" {
			return m, nil
		}
		m.flashStep = msg.step + 1
		if m.flashStep >= len(shakeOffsets) {
			m.flashItemID = ""
			m.flashStep = 0
			return m, nil
		}
		return m, flashTick(msg.seq, m.flashStep)

	case noticeDoneMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case tea.BlurMsg:
		m.cancelDrag("focus lost")
		return m, nil

	case tea.FocusMsg:
		return m, nil

	case tea.KeyMsg:
		if m.view == viewPicker {
			return m.updatePickerKey(msg)
		}
		return m.updateGameKey(msg)

	case tea.MouseMsg:
		if m.view == viewPicker {
			return m.updatePickerMouse(msg)
		}
		return m.updateGameMouse(msg)
	}

	if m.view == viewPicker {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updatePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "enter", " ":
		return m.startSelected()
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m appModel) updatePickerMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	idx := msg.Y - pickerTop
	if idx < 0 || idx >= len(m.picker.Items()) {
		return m, nil
	}
	m.picker.Select(idx)
	return m.startSelected()
}

func (m appModel) startSelected() (tea.Model, tea.Cmd) {
	it, ok := m.picker.SelectedItem().(pickerItem)
	if !ok {
		return m, nil
	}
	if err := m.startMatch(Start{Game: it.kind}); err != nil {
		m.log.WithError(err).Error("start match")
		return m, m.setNotice(err.Error())
	}
	return m, nil
}

func (m appModel) updateGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.session.Active() {
			m.cancelDrag("escape")
			return m, nil
		}
		m.view = viewPicker
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		return m.reset()

	case key.Matches(msg, m.keys.Next):
		return m.next()

	case key.Matches(msg, m.keys.Select):
		n, err := strconv.Atoi(msg.String())
		if err != nil {
			return m, nil
		}
		return m.selectLevel(n)
	}
	return m, nil
}

func (m appModel) updateGameMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.resizing || m.match == nil {
		return m, nil
	}
	p := dnd.Point{X: msg.X, Y: msg.Y}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.pointerDown(p)
	case tea.MouseActionMotion:
		return m.pointerMove(p)
	case tea.MouseActionRelease:
		return m.pointerUp(p)
	}
	return m, nil
}

func (m appModel) pointerDown(p dnd.Point) (tea.Model, tea.Cmd) {
	if m.session.Active() {
		return m, nil
	}
	if b, ok := m.frame.buttonAt(p); ok {
		return m.pressButton(b)
	}
	if m.frame.modal != nil {
		return m, nil
	}
	c, ok := m.frame.chipAt(p)
	if !ok || !m.snap.Draggable(c.item.ID) {
		return m, nil
	}
	if err := m.session.Begin(c.item.ID, c.rect, p); err != nil {
		m.logger().WithError(err).Debug("drag not started")
		return m, nil
	}
	m.gate.Reset()
	m.logger().WithField("item", c.item.ID).Debug("drag started")
	return m, nil
}

// pointerMove only records the pointer; the session sees it on the next frame.
func (m appModel) pointerMove(p dnd.Point) (tea.Model, tea.Cmd) {
	if !m.session.Active() {
		return m, nil
	}
	if !m.gate.Offer(p) {
		return m, nil
	}
	m.frameSeq++
	seq := m.frameSeq
	return m, tea.Tick(m.frameInterval, func(time.Time) tea.Msg { return frameMsg{seq: seq} })
}

func (m appModel) pointerUp(p dnd.Point) (tea.Model, tea.Cmd) {
	if !m.session.Active() {
		return m, nil
	}
	m.gate.Reset()
	m.frameSeq++
	drop := m.session.End(p, m.index, m.frame.bank)
	return m.applyDrop(drop)
}

func (m *appModel) cancelDrag(reason string) {
	id, ok := m.session.Cancel()
	if !ok {
		return
	}
	m.gate.Reset()
	m.frameSeq++
	m.logger().WithFields(logrus.Fields{"item": id, "reason": reason}).Debug("drag cancelled")
}

func (m appModel) applyDrop(d dnd.Drop) (tea.Model, tea.Cmd) {
	round := m.match.Round()
	var (
		evs []game.Event
		err error
	)
	switch d.Kind {
	case dnd.DropZone:
		evs, err = round.Place(d.ItemID, d.ZoneID)
	case dnd.DropBank:
		evs, err = round.ReturnToBank(d.ItemID)
	default:
		m.logger().WithField("item", d.ItemID).Debug("dropped outside targets")
		return m, nil
	}
	if err != nil {
		m.logger().WithError(err).WithFields(logrus.Fields{"item": d.ItemID, "zone": d.ZoneID}).Warn("drop failed")
		return m, m.setNotice(err.Error())
	}
	return m.commit(evs)
}

// commit hands committer events to the journal, the match and the screen.
func (m appModel) commit(evs []game.Event) (tea.Model, tea.Cmd) {
	if len(evs) == 0 {
		return m, nil
	}
	m.record(evs)
	m.match.Observe(evs)

	var cmds []tea.Cmd
	for _, ev := range evs {
		entry := m.logger().WithFields(logrus.Fields{
			"event": string(ev.Kind),
			"item":  ev.ItemID,
			"zone":  ev.ZoneID,
		})
		switch ev.Kind {
		case game.EventRejected:
			entry.WithField("reason", ev.Reason).Info("placement rejected")
			cmds = append(cmds, m.flash(ev.ItemID), m.setNotice("Not a match ("+ev.Reason+"). Try again!"))
		case game.EventCompleted:
			entry.Info("round completed")
			m.roundsDone++
			cmds = append(cmds, m.setNotice("Round complete! Press n or click "+m.match.NextLabel()+"."))
		default:
			entry.Debug("committed")
		}
	}
	if m.journal != nil {
		if sum, err := m.journal.Summary(m.ctx); err == nil {
			m.roundsDone = sum.RoundsCompleted
		}
	}
	m.snap = m.match.Round().Snapshot()
	m.relayout()
	return m, tea.Batch(cmds...)
}

func (m appModel) pressButton(b button) (tea.Model, tea.Cmd) {
	if !b.enabled {
		return m, nil
	}
	switch b.kind {
	case buttonReset:
		return m.reset()
	case buttonNext:
		return m.next()
	case buttonSelect:
		return m.selectLevel(b.value)
	}
	return m, nil
}

func (m appModel) reset() (tea.Model, tea.Cmd) {
	if m.match == nil {
		return m, nil
	}
	m.cancelDrag("reset")
	return m.commit(m.match.Round().Reset())
}

func (m appModel) next() (tea.Model, tea.Cmd) {
	if m.match == nil {
		return m, nil
	}
	m.cancelDrag("next")
	notice, err := m.match.Next()
	if err != nil {
		if errors.Is(err, game.ErrRoundNotCompleted) {
			return m, m.setNotice("Finish the round first.")
		}
		m.logger().WithError(err).Error("advance failed")
		return m, m.setNotice(err.Error())
	}
	m.roundChanged()
	m.logger().Info("advanced")
	if strings.TrimSpace(notice) != "" {
		return m, m.setNotice(notice)
	}
	return m, nil
}

func (m appModel) selectLevel(n int) (tea.Model, tea.Cmd) {
	if m.match == nil {
		return m, nil
	}
	m.cancelDrag("level change")
	if err := m.match.Select(n); err != nil {
		return m, m.setNotice(err.Error())
	}
	m.roundChanged()
	return m, nil
}

func (m *appModel) flash(itemID string) tea.Cmd {
	m.flashItemID = itemID
	m.flashStep = 0
	m.flashSeq++
	return flashTick(m.flashSeq, 0)
}

func flashTick(seq, step int) tea.Cmd {
	return tea.Tick(flashStepInterval, func(time.Time) tea.Msg { return flashMsg{seq: seq, step: step} })
}

func (m *appModel) setNotice(s string) tea.Cmd {
	m.notice = s
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeTimeout, func(time.Time) tea.Msg { return noticeDoneMsg{seq: seq} })
}
