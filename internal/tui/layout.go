package tui

import (
	"strconv"
	"strings"

	"matchgames/internal/dnd"
	"matchgames/internal/game"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	minCardW = 7
	cellGap  = 2
	gridGap  = 6
	rowStep  = 2
	boardX   = 2
	bankGap  = 4
)

// chrome is the text around the board that the layout needs to measure.
type chrome struct {
	title        string
	progress     string
	instructions string // rendered markdown
	hint         string
	selectLabel  string
	selectors    []int
	current      int
	nextLabel    string
	congrats     string // rendered markdown; non-empty shows the modal
}

type placedText struct {
	text   string
	rect   dnd.Rect
	row    int
	header bool
}

type slot struct {
	zoneID string
	rect   dnd.Rect
	row    int
	filled bool
}

type chip struct {
	item   game.Item
	rect   dnd.Rect
	inBank bool
}

type buttonKind int

const (
	buttonReset buttonKind = iota
	buttonNext
	buttonSelect
)

type button struct {
	kind    buttonKind
	label   string
	value   int
	enabled bool
	current bool
	rect    dnd.Rect
}

type modalBox struct {
	body   string
	rect   dnd.Rect
	button button
}

// frame is the geometry of one board screen, in terminal cells from the
// top-left corner. It is rebuilt after every commit and resize, and it is
// the drop-target source for the hit-test index.
type frame struct {
	width, height int
	cardW         int

	titleY    int
	instr     string
	instrY    int
	hintY     int
	controlsY int

	texts   []placedText
	slots   []slot
	chips   []chip
	buttons []button

	bank       dnd.Rect
	bankLabel  string
	scoreY     int
	noticeY    int
	helpY      int
	boardRows  []game.Row
	modal      *modalBox
	selectText string
}

func (f frame) DropTargets() []dnd.Target {
	out := make([]dnd.Target, 0, len(f.slots))
	for _, s := range f.slots {
		out = append(out, dnd.Target{ID: s.zoneID, Rect: s.rect, Filled: s.filled})
	}
	return out
}

// chipAt returns the topmost chip under p.
func (f frame) chipAt(p dnd.Point) (chip, bool) {
	for i := len(f.chips) - 1; i >= 0; i-- {
		if f.chips[i].rect.Contains(p) {
			return f.chips[i], true
		}
	}
	return chip{}, false
}

func (f frame) chipFor(itemID string) (chip, bool) {
	for _, c := range f.chips {
		if c.item.ID == itemID {
			return c, true
		}
	}
	return chip{}, false
}

func (f frame) slotFor(zoneID string) (slot, bool) {
	for _, s := range f.slots {
		if s.zoneID == zoneID {
			return s, true
		}
	}
	return slot{}, false
}

// buttonAt only sees the modal's button while the modal is open.
func (f frame) buttonAt(p dnd.Point) (button, bool) {
	if f.modal != nil {
		if f.modal.button.rect.Contains(p) {
			return f.modal.button, true
		}
		return button{}, false
	}
	for _, b := range f.buttons {
		if b.rect.Contains(p) {
			return b, true
		}
	}
	return button{}, false
}

func cardWidth(b *game.Board) int {
	w := 0
	for _, it := range b.Items {
		w = max(w, xansi.StringWidth(it.Value))
	}
	return max(w+2, minCardW)
}

// columnWidths sizes each cell position across all rows.
func columnWidths(b *game.Board, cardW int) []int {
	var widths []int
	grow := func(j, w int) {
		for len(widths) <= j {
			widths = append(widths, 0)
		}
		widths[j] = max(widths[j], w)
	}
	for j, h := range b.Header {
		grow(j, xansi.StringWidth(h))
	}
	for _, row := range b.Rows {
		for j, c := range row.Cells {
			if c.ZoneID != "" {
				grow(j, cardW)
				continue
			}
			grow(j, xansi.StringWidth(c.Text))
		}
	}
	if len(b.Header) > 0 {
		// Tables with headers keep every column card-sized.
		for j := range widths {
			widths[j] = max(widths[j], cardW)
		}
	}
	return widths
}

func gridColumns(b *game.Board) int {
	if b.Kind == game.KindTimes {
		return 2
	}
	return 1
}

func layoutFrame(s game.Snapshot, ch chrome, width, height int) frame {
	f := frame{width: width, height: height}
	if s.Board == nil || width <= 0 || height <= 0 {
		return f
	}
	b := s.Board
	f.cardW = cardWidth(b)
	f.boardRows = b.Rows

	y := 0
	f.titleY = y
	y++
	if ch.instructions != "" {
		f.instr = ch.instructions
		f.instrY = y
		y += lipgloss.Height(ch.instructions)
	}
	f.hintY = y
	y += 2

	f.controlsY = y
	x := 0
	if ch.selectLabel != "" {
		f.selectText = ch.selectLabel
		x += xansi.StringWidth(ch.selectLabel) + 1
	}
	for _, n := range ch.selectors {
		label := strconv.Itoa(n)
		w := xansi.StringWidth(label) + 2
		f.buttons = append(f.buttons, button{
			kind:    buttonSelect,
			label:   label,
			value:   n,
			enabled: true,
			current: n == ch.current,
			rect:    dnd.Rect{X: x, Y: y, W: w, H: 1},
		})
		x += w + 1
	}
	x += 3
	completed := s.Completed()
	for _, bt := range []button{
		{kind: buttonReset, label: "Reset", enabled: true},
		{kind: buttonNext, label: ch.nextLabel, enabled: completed},
	} {
		w := xansi.StringWidth(bt.label) + 2
		bt.rect = dnd.Rect{X: x, Y: y, W: w, H: 1}
		f.buttons = append(f.buttons, bt)
		x += w + 2
	}
	y += 2

	widths := columnWidths(b, f.cardW)
	rowW := 0
	for j, w := range widths {
		rowW += w
		if j > 0 {
			rowW += cellGap
		}
	}
	cols := gridColumns(b)
	boardW := cols*rowW + (cols-1)*gridGap
	boardTop := y

	if len(b.Header) > 0 {
		for gc := 0; gc < cols; gc++ {
			cx := boardX + gc*(rowW+gridGap)
			for j, h := range b.Header {
				f.texts = append(f.texts, placedText{
					text:   h,
					rect:   dnd.Rect{X: cx, Y: y, W: widths[j], H: 1},
					row:    -1,
					header: true,
				})
				cx += widths[j] + cellGap
			}
		}
		y += 2
	}

	rowsY := y
	gridRows := (len(b.Rows) + cols - 1) / cols
	for k, row := range b.Rows {
		if row.Blank {
			continue
		}
		gc, gr := k%cols, k/cols
		cx := boardX + gc*(rowW+gridGap)
		cy := rowsY + gr*rowStep
		for j, c := range row.Cells {
			r := dnd.Rect{X: cx, Y: cy, W: widths[j], H: 1}
			cx += widths[j] + cellGap
			if c.ZoneID == "" {
				f.texts = append(f.texts, placedText{text: c.Text, rect: r, row: k})
				continue
			}
			occ, filled := s.Occupant(c.ZoneID)
			f.slots = append(f.slots, slot{zoneID: c.ZoneID, rect: r, row: k, filled: filled})
			if filled {
				f.chips = append(f.chips, chip{item: occ, rect: r})
			}
		}
	}
	boardBottom := rowsY + max(gridRows*rowStep-1, 0)

	bankItems := s.BankItems()
	bankX, bankY := boardX, boardBottom+1
	bankW := width - bankX - 2
	if side := boardX + boardW + bankGap; width-side-2 >= 2*(f.cardW+1)+4 {
		bankX, bankY = side, boardTop
		bankW = min(width-side-2, 6*(f.cardW+1)+3)
	}
	innerX := bankX + 2
	perLine := max(1, (bankW-4+1)/(f.cardW+1))
	for i, it := range bankItems {
		f.chips = append(f.chips, chip{
			item:   it,
			inBank: true,
			rect: dnd.Rect{
				X: innerX + (i%perLine)*(f.cardW+1),
				Y: bankY + 3 + (i/perLine)*rowStep,
				W: f.cardW,
				H: 1,
			},
		})
	}
	innerH := 1
	if n := len(bankItems); n > 0 {
		lines := (n + perLine - 1) / perLine
		innerH += 1 + lines*rowStep - 1
		f.bankLabel = "Answers (" + strconv.Itoa(n) + ")"
	} else {
		f.bankLabel = "All answers placed"
	}
	f.bank = dnd.Rect{X: bankX, Y: bankY, W: bankW, H: innerH + 2}

	bottom := max(boardBottom, f.bank.Y+f.bank.H)
	f.scoreY = bottom + 1
	f.noticeY = max(height-2, f.scoreY+1)
	f.helpY = f.noticeY + 1

	if ch.congrats != "" {
		f.modal = layoutModal(ch.congrats, ch.nextLabel, width, height)
	}
	return f
}

func layoutModal(body, label string, width, height int) *modalBox {
	bt := button{kind: buttonNext, label: label, enabled: true}
	btn := styleButton(true).Render(label)
	content := body + "\n\n" + btn
	box := styleModal().Render(content)
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	x := max((width-w)/2, 0)
	y := max((height-h)/2, 0)
	// Border (1) + vertical padding (1), then the body and one blank line.
	bt.rect = dnd.Rect{
		X: x + 1 + 2,
		Y: y + 1 + 1 + lipgloss.Height(body) + 1,
		W: xansi.StringWidth(label) + 2,
		H: 1,
	}
	return &modalBox{body: box, rect: dnd.Rect{X: x, Y: y, W: w, H: h}, button: bt}
}

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and
// height lines tall.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i, ln := range lines {
		w := xansi.StringWidth(ln)
		if w > width {
			switch {
			case width <= 0:
				ln = ""
			case width == 1:
				ln = xansi.Cut(ln, 0, 1)
			default:
				ln = xansi.Cut(ln, 0, width-1) + "…"
			}
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}
