package game

import (
	"fmt"
	"strings"
)

// State is the mutable state of one round. Only Round mutates it.
type State struct {
	locations map[string]Location // item id -> location
	occupants map[string]string   // zone id -> item id
	verdicts  map[string]Verdict
	counts    Counts
	phase     Phase
}

// Round is the placement committer for one board.
type Round struct {
	board Board
	rules Rules
	items map[string]Item
	zones map[string]Zone
	state State
}

// NewRound validates b and starts an empty round with every item in the bank.
func NewRound(b Board, rules Rules) (*Round, error) {
	if rules == nil {
		return nil, ConfigError{What: "round", Reason: "missing rules"}
	}
	if len(b.Zones) == 0 {
		return nil, ErrNoZones
	}
	r := &Round{
		board: b,
		rules: rules,
		items: make(map[string]Item, len(b.Items)),
		zones: make(map[string]Zone, len(b.Zones)),
	}
	for _, it := range b.Items {
		if strings.TrimSpace(it.ID) == "" {
			return nil, ConfigError{What: "board", Reason: "item without id"}
		}
		if _, dup := r.items[it.ID]; dup {
			return nil, ConfigError{What: "board", Reason: "duplicate item " + it.ID}
		}
		r.items[it.ID] = it
	}
	for _, z := range b.Zones {
		if strings.TrimSpace(z.ID) == "" {
			return nil, ConfigError{What: "board", Reason: "zone without id"}
		}
		if _, dup := r.zones[z.ID]; dup {
			return nil, ConfigError{What: "board", Reason: "duplicate zone " + z.ID}
		}
		r.zones[z.ID] = z
	}
	if len(b.Items) < len(b.Zones) {
		return nil, ConfigError{What: "board", Reason: fmt.Sprintf("%d items cannot fill %d zones", len(b.Items), len(b.Zones))}
	}
	r.clear()
	return r, nil
}

func (r *Round) clear() {
	rejected := r.state.counts.Rejected
	r.state = State{
		locations: make(map[string]Location, len(r.items)),
		occupants: make(map[string]string, len(r.zones)),
	}
	for id := range r.items {
		r.state.locations[id] = Bank
	}
	r.state.counts.Rejected = rejected
	r.regrade()
}

func (r *Round) Board() *Board { return &r.board }

func (r *Round) Completed() bool { return r.state.phase == PhaseCompleted }

func (r *Round) Counts() Counts { return r.state.counts }

func (r *Round) Phase() Phase { return r.state.phase }

// Item looks up an item by id.
func (r *Round) Item(id string) (Item, bool) {
	it, ok := r.items[id]
	return it, ok
}

// Location returns where an item is.
func (r *Round) Location(itemID string) (Location, bool) {
	loc, ok := r.state.locations[itemID]
	return loc, ok
}

// CanDrag reports whether a drag may start on itemID.
func (r *Round) CanDrag(itemID string) bool {
	if r.Completed() {
		return false
	}
	loc, ok := r.state.locations[itemID]
	if !ok {
		return false
	}
	return r.rules.Draggable(loc)
}

// Place attempts to put itemID into zoneID.
//
// A rule mismatch is not an error: it yields a single EventRejected and
// leaves the state untouched apart from the rejected counter. Errors are
// reserved for calls that make no sense (unknown ids, finished round).
func (r *Round) Place(itemID, zoneID string) ([]Event, error) {
	if r.Completed() {
		return nil, ErrRoundCompleted
	}
	it, ok := r.items[itemID]
	if !ok {
		return nil, NotFoundError{Kind: "item", ID: itemID}
	}
	z, ok := r.zones[zoneID]
	if !ok {
		return nil, NotFoundError{Kind: "zone", ID: zoneID}
	}
	from := r.state.locations[itemID]
	if !r.rules.Draggable(from) {
		return nil, fmt.Errorf("place %s: %w", itemID, ErrNotDraggable)
	}
	if from.ZoneID == zoneID {
		return nil, nil
	}

	reason := ""
	if occ, filled := r.state.occupants[zoneID]; filled && occ != itemID {
		reason = "zone occupied"
	} else {
		reason = r.rules.Admit(it, z)
	}
	if reason != "" {
		r.state.counts.Rejected++
		return []Event{{
			Kind:     EventRejected,
			ItemID:   itemID,
			Value:    it.Value,
			ZoneID:   zoneID,
			FromZone: from.ZoneID,
			Reason:   reason,
			Counts:   r.state.counts,
		}}, nil
	}

	if !from.InBank() {
		delete(r.state.occupants, from.ZoneID)
	}
	r.state.occupants[zoneID] = itemID
	r.state.locations[itemID] = Location{ZoneID: zoneID}
	r.regrade()

	evs := []Event{{
		Kind:     EventPlaced,
		ItemID:   itemID,
		Value:    it.Value,
		ZoneID:   zoneID,
		FromZone: from.ZoneID,
		Counts:   r.state.counts,
	}}
	return r.maybeComplete(evs), nil
}

// ReturnToBank moves itemID out of its zone. Items already in the bank are
// left alone and produce no events.
func (r *Round) ReturnToBank(itemID string) ([]Event, error) {
	if r.Completed() {
		return nil, ErrRoundCompleted
	}
	it, ok := r.items[itemID]
	if !ok {
		return nil, NotFoundError{Kind: "item", ID: itemID}
	}
	from := r.state.locations[itemID]
	if from.InBank() {
		return nil, nil
	}
	if !r.rules.Draggable(from) {
		return nil, fmt.Errorf("return %s: %w", itemID, ErrNotDraggable)
	}
	delete(r.state.occupants, from.ZoneID)
	r.state.locations[itemID] = Bank
	r.regrade()
	return []Event{{
		Kind:     EventReturned,
		ItemID:   itemID,
		Value:    it.Value,
		FromZone: from.ZoneID,
		Counts:   r.state.counts,
	}}, nil
}

// Reset sends every item back to the bank. The rejected counter survives:
// it counts attempts for the whole round.
func (r *Round) Reset() []Event {
	r.clear()
	return []Event{{Kind: EventReset, Counts: r.state.counts}}
}

func (r *Round) maybeComplete(evs []Event) []Event {
	if r.state.phase != PhaseAllCorrect {
		return evs
	}
	r.state.phase = PhaseCompleted
	return append(evs, Event{Kind: EventCompleted, Counts: r.state.counts})
}

func (r *Round) regrade() {
	occ := make(map[string]Item, len(r.state.occupants))
	for zid, iid := range r.state.occupants {
		occ[zid] = r.items[iid]
	}
	r.state.verdicts = r.rules.Grade(&r.board, occ)

	c := Counts{Total: len(r.zones), Rejected: r.state.counts.Rejected}
	for zid := range r.zones {
		if _, filled := r.state.occupants[zid]; filled {
			c.Filled++
		}
		switch r.state.verdicts[zid] {
		case VerdictCorrect:
			c.Correct++
		case VerdictIncorrect:
			c.Incorrect++
		}
	}
	r.state.counts = c

	switch {
	case c.Filled == 0:
		r.state.phase = PhaseEmpty
	case c.Filled < c.Total:
		r.state.phase = PhasePartial
	case c.Correct == c.Total:
		r.state.phase = PhaseAllCorrect
	default:
		r.state.phase = PhaseFilledWithErrors
	}
}
