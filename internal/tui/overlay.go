package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

const sgrReset = "\x1b[0m"

// canvas is a fixed-size screen that rendered blocks are stamped onto at
// absolute cell positions. Later stamps cover earlier ones, which is how the
// drag ghost and the modal float above the board.
type canvas struct {
	w, h  int
	lines []string
}

func newCanvas(w, h int) *canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &canvas{w: w, h: h, lines: make([]string, h)}
	blank := strings.Repeat(" ", w)
	for i := range c.lines {
		c.lines[i] = blank
	}
	return c
}

// put stamps block with its top-left corner at (x, y). Parts outside the
// canvas are clipped.
func (c *canvas) put(x, y int, block string) {
	if block == "" {
		return
	}
	for i, bl := range strings.Split(block, "\n") {
		yy := y + i
		if yy < 0 || yy >= c.h {
			continue
		}
		c.lines[yy] = splice(c.lines[yy], c.w, x, bl)
	}
}

// splice replaces the cells of line starting at column x with seg.
func splice(line string, width, x int, seg string) string {
	segW := xansi.StringWidth(seg)
	if x < 0 {
		seg = xansi.Cut(seg, -x, segW)
		segW += x
		x = 0
	}
	if segW <= 0 || x >= width {
		return line
	}
	if x+segW > width {
		seg = xansi.Cut(seg, 0, width-x)
		segW = width - x
	}

	left := xansi.Cut(line, 0, x)
	right := xansi.Cut(line, x+segW, width)
	var b strings.Builder
	b.WriteString(left)
	if strings.Contains(left, "\x1b") {
		b.WriteString(sgrReset)
	}
	b.WriteString(seg)
	if strings.Contains(seg, "\x1b") {
		b.WriteString(sgrReset)
	}
	b.WriteString(right)
	return b.String()
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}
