package game

// Snapshot is an immutable copy of a round's state for rendering.
type Snapshot struct {
	Board     *Board
	Counts    Counts
	Phase     Phase
	locations map[string]Location
	occupants map[string]string
	verdicts  map[string]Verdict
	draggable map[string]bool
	items     map[string]Item
}

// Snapshot copies the current state. The board is shared and must be
// treated as read-only.
func (r *Round) Snapshot() Snapshot {
	s := Snapshot{
		Board:     &r.board,
		Counts:    r.state.counts,
		Phase:     r.state.phase,
		locations: make(map[string]Location, len(r.state.locations)),
		occupants: make(map[string]string, len(r.state.occupants)),
		verdicts:  make(map[string]Verdict, len(r.state.verdicts)),
		draggable: make(map[string]bool, len(r.items)),
		items:     r.items,
	}
	for k, v := range r.state.locations {
		s.locations[k] = v
		s.draggable[k] = r.CanDrag(k)
	}
	for k, v := range r.state.occupants {
		s.occupants[k] = v
	}
	for k, v := range r.state.verdicts {
		s.verdicts[k] = v
	}
	return s
}

func (s Snapshot) Completed() bool { return s.Phase == PhaseCompleted }

func (s Snapshot) Location(itemID string) Location { return s.locations[itemID] }

func (s Snapshot) Draggable(itemID string) bool { return s.draggable[itemID] }

func (s Snapshot) Verdict(zoneID string) Verdict { return s.verdicts[zoneID] }

// Occupant returns the item sitting in zoneID.
func (s Snapshot) Occupant(zoneID string) (Item, bool) {
	id, ok := s.occupants[zoneID]
	if !ok {
		return Item{}, false
	}
	return s.items[id], true
}

// BankItems lists the items currently in the bank, in board order.
func (s Snapshot) BankItems() []Item {
	if s.Board == nil {
		return nil
	}
	var out []Item
	for _, it := range s.Board.Items {
		if s.locations[it.ID].InBank() {
			out = append(out, it)
		}
	}
	return out
}

// RowCorrect reports whether every zone of a board row is graded correct.
func (s Snapshot) RowCorrect(row Row) bool {
	n := 0
	for _, c := range row.Cells {
		if c.ZoneID == "" {
			continue
		}
		n++
		if s.verdicts[c.ZoneID] != VerdictCorrect {
			return false
		}
	}
	return n > 0
}
