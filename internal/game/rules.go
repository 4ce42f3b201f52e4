package game

// Rules decide what a placement means for one game mode.
type Rules interface {
	// Draggable reports whether an item at loc may start a drag.
	Draggable(loc Location) bool
	// Admit checks a proposed placement. A non-empty reason rejects it.
	Admit(it Item, z Zone) (reason string)
	// Grade computes the verdict of every zone given the current occupants
	// (zone id -> item).
	Grade(b *Board, occupants map[string]Item) map[string]Verdict
}

// ExactRules grade each zone on its own: the item type must match the
// zone's column and the value must equal the expected value.
//
// Fraction levels 1-3 and the times tables use it. Locked is set for the
// times tables, where a matched product stays put.
type ExactRules struct {
	Locked bool
}

func (r ExactRules) Draggable(loc Location) bool {
	return loc.InBank() || !r.Locked
}

func (r ExactRules) Admit(it Item, z Zone) string {
	if z.Column != "" && it.Type != z.Column {
		return "wrong type"
	}
	if it.Value != z.Expected {
		return "wrong value"
	}
	return ""
}

func (r ExactRules) Grade(b *Board, occupants map[string]Item) map[string]Verdict {
	out := make(map[string]Verdict, len(b.Zones))
	for _, z := range b.Zones {
		it, ok := occupants[z.ID]
		switch {
		case !ok:
			out[z.ID] = VerdictEmpty
		case r.Admit(it, z) == "":
			out[z.ID] = VerdictCorrect
		default:
			out[z.ID] = VerdictIncorrect
		}
	}
	return out
}

// RowRules accept any item in any zone and grade whole rows: once every
// zone of a row is filled, the row is correct iff all its items share one
// equivalence group. The row the items land in does not matter.
type RowRules struct{}

func (RowRules) Draggable(Location) bool { return true }

func (RowRules) Admit(Item, Zone) string { return "" }

func (RowRules) Grade(b *Board, occupants map[string]Item) map[string]Verdict {
	out := make(map[string]Verdict, len(b.Zones))
	rows := map[int][]Zone{}
	var order []int
	for _, z := range b.Zones {
		if _, seen := rows[z.Row]; !seen {
			order = append(order, z.Row)
		}
		rows[z.Row] = append(rows[z.Row], z)
	}
	for _, row := range order {
		zones := rows[row]
		var items []Item
		for _, z := range zones {
			it, ok := occupants[z.ID]
			if !ok {
				out[z.ID] = VerdictEmpty
				continue
			}
			out[z.ID] = VerdictPending
			items = append(items, it)
		}
		if len(items) != len(zones) {
			continue
		}
		v := VerdictCorrect
		for _, it := range items[1:] {
			if it.Group != items[0].Group {
				v = VerdictIncorrect
				break
			}
		}
		for _, z := range zones {
			out[z.ID] = v
		}
	}
	return out
}
