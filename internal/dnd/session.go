package dnd

import "errors"

var (
	ErrDragActive = errors.New("dnd: a drag is already in progress")
	ErrNotOnItem  = errors.New("dnd: pointer is not on the item")
	ErrNoItem     = errors.New("dnd: missing item id")
)

// DropKind says what a finished gesture asks the game to do.
type DropKind int

const (
	// DropNone: released away from any zone and outside the bank; nothing changes.
	DropNone DropKind = iota
	// DropZone: released over a highlighted zone; attempt placement.
	DropZone
	// DropBank: released inside the bank area; return the item to the bank.
	DropBank
)

func (k DropKind) String() string {
	switch k {
	case DropZone:
		return "zone"
	case DropBank:
		return "bank"
	default:
		return "none"
	}
}

// Drop is the outcome of a released or cancelled drag.
type Drop struct {
	Kind   DropKind
	ItemID string
	ZoneID string
	At     Point
}

// Session tracks at most one in-progress pointer drag.
//
// The zero value is an idle session.
type Session struct {
	active  bool
	itemID  string
	source  Rect
	offset  Point
	pointer Point
	target  string
}

func (s *Session) Active() bool { return s.active }

func (s *Session) ItemID() string { return s.itemID }

func (s *Session) Pointer() Point { return s.pointer }

// Source is the rectangle the dragged item occupied when the drag began.
func (s *Session) Source() Rect { return s.source }

// Target returns the highlighted zone, if any.
func (s *Session) Target() (string, bool) {
	return s.target, s.target != ""
}

// Ghost is where the dragged visual should be drawn: the source rectangle
// moved so the grab offset stays under the pointer.
func (s *Session) Ghost() Rect {
	if !s.active {
		return Rect{}
	}
	return s.source.At(s.pointer.Sub(s.offset))
}

// Begin starts a drag of itemID, grabbed at p inside src.
func (s *Session) Begin(itemID string, src Rect, p Point) error {
	if s.active {
		return ErrDragActive
	}
	if itemID == "" {
		return ErrNoItem
	}
	if !src.Contains(p) {
		return ErrNotOnItem
	}
	*s = Session{
		active:  true,
		itemID:  itemID,
		source:  src,
		offset:  p.Sub(src.Origin()),
		pointer: p,
	}
	return nil
}

// Move records a new pointer position and re-runs the hit test.
// It reports whether the highlighted zone changed.
func (s *Session) Move(p Point, ix *Index) bool {
	if !s.active {
		return false
	}
	s.pointer = p
	next := ""
	if z, ok := ix.HitTest(p); ok {
		next = z.ID
	}
	changed := next != s.target
	s.target = next
	return changed
}

// End finishes the drag at p and resets the session.
//
// p is applied as a final move first, so the decision always uses the
// release position even when intermediate moves were throttled.
func (s *Session) End(p Point, ix *Index, bank Rect) Drop {
	if !s.active {
		return Drop{Kind: DropNone, At: p}
	}
	s.Move(p, ix)
	d := Drop{Kind: DropNone, ItemID: s.itemID, At: p}
	switch {
	case s.target != "":
		d.Kind = DropZone
		d.ZoneID = s.target
	case bank.Contains(p):
		d.Kind = DropBank
	}
	*s = Session{}
	return d
}

// Cancel aborts the drag without a drop decision.
func (s *Session) Cancel() (string, bool) {
	if !s.active {
		return "", false
	}
	id := s.itemID
	*s = Session{}
	return id, true
}

// FrameGate coalesces pointer moves so at most one is applied per frame.
type FrameGate struct {
	pending   Point
	has       bool
	scheduled bool
}

// Offer records p as the latest move. It returns true when the caller must
// schedule a frame; false when one is already pending.
func (g *FrameGate) Offer(p Point) bool {
	g.pending = p
	g.has = true
	if g.scheduled {
		return false
	}
	g.scheduled = true
	return true
}

// Flush is called when the frame fires. It returns the latest move, if any,
// and allows the next Offer to schedule another frame.
func (g *FrameGate) Flush() (Point, bool) {
	p, ok := g.pending, g.has
	g.has = false
	g.scheduled = false
	return p, ok
}

func (g *FrameGate) Scheduled() bool { return g.scheduled }

func (g *FrameGate) Reset() { *g = FrameGate{} }
