package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := DefaultCatalog()
	require.NoError(t, err)
	return c
}

func fractionRound(t *testing.T, level int) *Round {
	t.Helper()
	b, rules, err := FractionBoard(mustCatalog(t), level, 1, nil)
	require.NoError(t, err)
	r, err := NewRound(b, rules)
	require.NoError(t, err)
	return r
}

// itemByValue finds the card showing v with type typ.
func itemByValue(t *testing.T, r *Round, typ ItemType, v string) Item {
	t.Helper()
	for _, it := range r.Board().Items {
		if it.Type == typ && it.Value == v {
			return it
		}
	}
	t.Fatalf("no %s card %q", typ, v)
	return Item{}
}

// assertSingleLocation checks that every item is in exactly one place and
// every zone holds at most one item.
func assertSingleLocation(t *testing.T, r *Round) {
	t.Helper()
	snap := r.Snapshot()
	seenInZone := map[string]int{}
	for _, it := range r.Board().Items {
		loc := snap.Location(it.ID)
		if loc.InBank() {
			continue
		}
		seenInZone[it.ID]++
		occ, ok := snap.Occupant(loc.ZoneID)
		require.True(t, ok, "zone %s of %s has no occupant", loc.ZoneID, it.ID)
		assert.Equal(t, it.ID, occ.ID)
	}
	for _, z := range r.Board().Zones {
		occ, ok := snap.Occupant(z.ID)
		if !ok {
			continue
		}
		assert.Equal(t, z.ID, snap.Location(occ.ID).ZoneID)
	}
	for id, n := range seenInZone {
		assert.Equal(t, 1, n, "item %s", id)
	}
}

func TestPlace_ExactMatchIsCorrect(t *testing.T) {
	t.Parallel()

	r := fractionRound(t, 1)
	half := itemByValue(t, r, TypeDecimal, "0.5")

	evs, err := r.Place(half.ID, "r0-decimal")
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, EventPlaced, evs[0].Kind)

	snap := r.Snapshot()
	assert.Equal(t, VerdictCorrect, snap.Verdict("r0-decimal"))
	assert.Equal(t, Location{ZoneID: "r0-decimal"}, snap.Location(half.ID))
	assert.Equal(t, 1, snap.Counts.Filled)
	assert.Equal(t, 1, snap.Counts.Correct)
	assert.Equal(t, PhasePartial, snap.Phase)
	assertSingleLocation(t, r)
}

func TestPlace_MismatchIsRejectedAndLeavesItemUnplaced(t *testing.T) {
	t.Parallel()

	r := fractionRound(t, 1)
	quarter := itemByValue(t, r, TypeDecimal, "0.25")
	before := r.Snapshot()

	evs, err := r.Place(quarter.ID, "r0-decimal")
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, EventRejected, evs[0].Kind)
	assert.Equal(t, "wrong value", evs[0].Reason)

	after := r.Snapshot()
	assert.True(t, after.Location(quarter.ID).InBank())
	_, filled := after.Occupant("r0-decimal")
	assert.False(t, filled)
	assert.Equal(t, VerdictEmpty, after.Verdict("r0-decimal"))
	assert.Equal(t, before.Counts.Filled, after.Counts.Filled)
	assert.Equal(t, 1, after.Counts.Rejected)
	assert.Equal(t, PhaseEmpty, after.Phase)
}

func TestPlace_WrongTypeIsRejected(t *testing.T) {
	t.Parallel()

	r := fractionRound(t, 1)
	pct := itemByValue(t, r, TypePercent, "50%")
	evs, err := r.Place(pct.ID, "r0-decimal")
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, "wrong type", evs[0].Reason)
}

func TestReturnToBank_ClearsZone(t *testing.T) {
	t.Parallel()

	r := fractionRound(t, 1)
	half := itemByValue(t, r, TypeDecimal, "0.5")
	_, err := r.Place(half.ID, "r0-decimal")
	require.NoError(t, err)

	evs, err := r.ReturnToBank(half.ID)
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, EventReturned, evs[0].Kind)
	assert.Equal(t, "r0-decimal", evs[0].FromZone)

	snap := r.Snapshot()
	_, filled := snap.Occupant("r0-decimal")
	assert.False(t, filled)
	assert.Equal(t, VerdictEmpty, snap.Verdict("r0-decimal"))
	assert.Equal(t, 0, snap.Counts.Filled)
	assert.True(t, snap.Location(half.ID).InBank())

	evs, err = r.ReturnToBank(half.ID)
	require.NoError(t, err)
	assert.Empty(t, evs, "bank to bank is a no-op")
}

func TestPlace_MoveBetweenZonesFreesOldZone(t *testing.T) {
	t.Parallel()

	r := fractionRound(t, 4)
	it := r.Board().Items[0]
	_, err := r.Place(it.ID, "r0-fraction")
	require.NoError(t, err)
	evs, err := r.Place(it.ID, "r1-decimal")
	require.NoError(t, err)
	require.NotEmpty(t, evs)
	assert.Equal(t, "r0-fraction", evs[0].FromZone)

	snap := r.Snapshot()
	_, filled := snap.Occupant("r0-fraction")
	assert.False(t, filled)
	assert.Equal(t, 1, snap.Counts.Filled)
	assertSingleLocation(t, r)
}

func TestPlace_OccupiedZoneIsRejected(t *testing.T) {
	t.Parallel()

	r := fractionRound(t, 4)
	a, b := r.Board().Items[0], r.Board().Items[1]
	_, err := r.Place(a.ID, "r0-fraction")
	require.NoError(t, err)
	evs, err := r.Place(b.ID, "r0-fraction")
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, EventRejected, evs[0].Kind)
	assert.Equal(t, "zone occupied", evs[0].Reason)
	assertSingleLocation(t, r)
}

func TestPlace_UnknownIDs(t *testing.T) {
	t.Parallel()

	r := fractionRound(t, 1)
	_, err := r.Place("nope", "r0-decimal")
	var nf NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "item", nf.Kind)

	_, err = r.Place(r.Board().Items[0].ID, "nope")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "zone", nf.Kind)
}

func solveExact(t *testing.T, r *Round) []Event {
	t.Helper()
	var all []Event
	for _, z := range r.Board().Zones {
		var pick Item
		for _, it := range r.Board().Items {
			if it.Value == z.Expected && (z.Column == "" || it.Type == z.Column) {
				pick = it
			}
		}
		require.NotEmpty(t, pick.ID, "no card for %s", z.ID)
		evs, err := r.Place(pick.ID, z.ID)
		require.NoError(t, err)
		all = append(all, evs...)
	}
	return all
}

func TestRound_CompletesWhenAllZonesCorrect(t *testing.T) {
	t.Parallel()

	r := fractionRound(t, 2)
	evs := solveExact(t, r)
	last := evs[len(evs)-1]
	assert.Equal(t, EventCompleted, last.Kind)
	assert.True(t, r.Completed())
	assert.Equal(t, r.Counts().Total, r.Counts().Correct)

	_, err := r.Place(r.Board().Items[0].ID, r.Board().Zones[0].ID)
	assert.ErrorIs(t, err, ErrRoundCompleted)
	_, err = r.ReturnToBank(r.Board().Items[0].ID)
	assert.ErrorIs(t, err, ErrRoundCompleted)
	assert.False(t, r.CanDrag(r.Board().Items[0].ID))
}

func TestMixedRows_GradedAsGroups(t *testing.T) {
	t.Parallel()

	c := mustCatalog(t)
	r := fractionRound(t, 4)
	byValue := map[string]Item{}
	for _, it := range r.Board().Items {
		byValue[it.Value] = it
	}

	// Row 0 holds a consistent triple, but from the 1/4 row: still correct.
	place := func(v, zone string) {
		evs, err := r.Place(byValue[v].ID, zone)
		require.NoError(t, err)
		require.NotEmpty(t, evs)
		require.Equal(t, EventPlaced, evs[0].Kind, "place %s into %s", v, zone)
	}
	place("1/4", "r0-fraction")
	place("0.25", "r0-decimal")
	snap := r.Snapshot()
	assert.Equal(t, VerdictPending, snap.Verdict("r0-fraction"))
	assert.Equal(t, 0, snap.Counts.Correct)
	assert.Equal(t, 0, snap.Counts.Incorrect)

	place("25%", "r0-percent")
	snap = r.Snapshot()
	assert.Equal(t, VerdictCorrect, snap.Verdict("r0-percent"))
	assert.True(t, snap.RowCorrect(r.Board().Rows[0]))
	assert.Equal(t, 3, snap.Counts.Correct)

	// Row 1: a mixed-up triple is incorrect.
	place("1/2", "r1-fraction")
	place("0.75", "r1-decimal")
	place("50%", "r1-percent")
	snap = r.Snapshot()
	assert.Equal(t, VerdictIncorrect, snap.Verdict("r1-decimal"))
	assert.Equal(t, 3, snap.Counts.Incorrect)
	assert.False(t, snap.RowCorrect(r.Board().Rows[1]))

	// Fill the rest consistently, except keep row 1 wrong: filled but not complete.
	used := map[string]bool{"1/4": true, "1/2": true}
	row := 2
	for _, eq := range c.Fraction.Rows {
		if used[eq.Fraction] || eq.Fraction == "3/4" {
			continue
		}
		place(eq.Fraction, fractionZoneID(row, TypeFraction))
		place(eq.Decimal, fractionZoneID(row, TypeDecimal))
		place(eq.Percent, fractionZoneID(row, TypePercent))
		row++
	}
	// The leftover 3/4 triple needs one more row; row 7 is the last one.
	place("3/4", fractionZoneID(row, TypeFraction))
	place("0.5", fractionZoneID(row, TypeDecimal))
	place("75%", fractionZoneID(row, TypePercent))

	snap = r.Snapshot()
	assert.Equal(t, snap.Counts.Total, snap.Counts.Filled)
	assert.Equal(t, PhaseFilledWithErrors, snap.Phase)
	assert.False(t, r.Completed())

	// Swap the two decimals through the bank to fix both rows.
	_, err := r.ReturnToBank(byValue["0.75"].ID)
	require.NoError(t, err)
	place("0.5", "r1-decimal")
	evs, err := r.Place(byValue["0.75"].ID, fractionZoneID(row, TypeDecimal))
	require.NoError(t, err)
	require.Len(t, evs, 2)
	assert.Equal(t, EventCompleted, evs[1].Kind)
	assert.True(t, r.Completed())
	assertSingleLocation(t, r)
}

func TestTimes_PlacedProductsAreLocked(t *testing.T) {
	t.Parallel()

	b, rules, err := TimesBoard(mustCatalog(t), 4, 0, nil)
	require.NoError(t, err)
	r, err := NewRound(b, rules)
	require.NoError(t, err)

	evs, err := r.Place("ans-12", "eq-3")
	require.NoError(t, err)
	require.Equal(t, EventPlaced, evs[0].Kind)
	assert.False(t, r.CanDrag("ans-12"))

	_, err = r.ReturnToBank("ans-12")
	assert.ErrorIs(t, err, ErrNotDraggable)

	evs, err = r.Place("ans-8", "eq-3")
	require.NoError(t, err)
	assert.Equal(t, EventRejected, evs[0].Kind)

	evs, err = r.Place("ans-16", "eq-1")
	require.NoError(t, err)
	assert.Equal(t, "wrong value", evs[0].Reason)
}

func TestCompletion_IffAllFilledAndCorrect(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 7))
	c := mustCatalog(t)
	for iter := 0; iter < 50; iter++ {
		b, rules, err := FractionBoard(c, 4, 2, rng)
		require.NoError(t, err)
		r, err := NewRound(b, rules)
		require.NoError(t, err)
		for step := 0; step < 60 && !r.Completed(); step++ {
			it := b.Items[rng.IntN(len(b.Items))]
			if rng.IntN(4) == 0 {
				_, err = r.ReturnToBank(it.ID)
			} else {
				_, err = r.Place(it.ID, b.Zones[rng.IntN(len(b.Zones))].ID)
			}
			require.NoError(t, err)
			assertSingleLocation(t, r)

			cnt := r.Counts()
			allGood := cnt.Filled == cnt.Total && cnt.Correct == cnt.Total
			assert.Equal(t, allGood, r.Completed())
		}
	}
}

func TestReset_KeepsRejectedCounter(t *testing.T) {
	t.Parallel()

	r := fractionRound(t, 1)
	half := itemByValue(t, r, TypeDecimal, "0.5")
	quarter := itemByValue(t, r, TypeDecimal, "0.25")
	_, _ = r.Place(half.ID, "r0-decimal")
	_, _ = r.Place(quarter.ID, "r2-decimal")

	evs := r.Reset()
	require.Len(t, evs, 1)
	assert.Equal(t, EventReset, evs[0].Kind)
	assert.Equal(t, 0, r.Counts().Filled)
	assert.Equal(t, 1, r.Counts().Rejected)
	assert.Len(t, r.Snapshot().BankItems(), len(r.Board().Items))
}

func TestNewRound_ConfigErrors(t *testing.T) {
	t.Parallel()

	_, err := NewRound(Board{}, ExactRules{})
	assert.ErrorIs(t, err, ErrNoZones)

	_, err = NewRound(Board{Zones: []Zone{{ID: "z"}}}, ExactRules{})
	var ce ConfigError
	assert.ErrorAs(t, err, &ce)

	_, err = NewRound(Board{
		Zones: []Zone{{ID: "z"}},
		Items: []Item{{ID: "a"}, {ID: "a"}},
	}, ExactRules{})
	assert.ErrorAs(t, err, &ce)

	_, err = NewRound(Board{Zones: []Zone{{ID: "z"}}, Items: []Item{{ID: "a"}}}, nil)
	assert.ErrorAs(t, err, &ce)
}
