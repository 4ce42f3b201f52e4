package dnd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBoard() (*Index, Rect) {
	ix := NewIndex(TargetList{
		{ID: "z1", Rect: Rect{X: 20, Y: 10, W: 10, H: 3}},
		{ID: "z2", Rect: Rect{X: 31, Y: 10, W: 10, H: 3}},
	})
	bank := Rect{X: 0, Y: 0, W: 60, H: 6}
	return ix, bank
}

func TestSession_BeginCapturesOffsetAndGhost(t *testing.T) {
	t.Parallel()

	var s Session
	src := Rect{X: 4, Y: 1, W: 10, H: 3}
	require.NoError(t, s.Begin("card-1", src, Point{X: 6, Y: 2}))
	assert.True(t, s.Active())
	assert.Equal(t, "card-1", s.ItemID())
	assert.Equal(t, src, s.Ghost(), "ghost starts on top of the source")

	ix, _ := testBoard()
	s.Move(Point{X: 30, Y: 20}, ix)
	assert.Equal(t, Rect{X: 28, Y: 19, W: 10, H: 3}, s.Ghost())
}

func TestSession_BeginRejectsBadInput(t *testing.T) {
	t.Parallel()

	var s Session
	src := Rect{X: 0, Y: 0, W: 4, H: 2}
	assert.ErrorIs(t, s.Begin("", src, Point{}), ErrNoItem)
	assert.ErrorIs(t, s.Begin("a", src, Point{X: 9, Y: 9}), ErrNotOnItem)
	require.NoError(t, s.Begin("a", src, Point{X: 1, Y: 1}))
	assert.ErrorIs(t, s.Begin("b", src, Point{X: 1, Y: 1}), ErrDragActive)
	assert.Equal(t, "a", s.ItemID())
}

func TestSession_MoveHighlightsAndClears(t *testing.T) {
	t.Parallel()

	ix, _ := testBoard()
	var s Session
	require.NoError(t, s.Begin("a", Rect{W: 4, H: 2}, Point{X: 1, Y: 1}))

	assert.True(t, s.Move(Point{X: 22, Y: 11}, ix))
	id, ok := s.Target()
	require.True(t, ok)
	assert.Equal(t, "z1", id)

	assert.False(t, s.Move(Point{X: 23, Y: 11}, ix), "same zone is not a change")

	assert.True(t, s.Move(Point{X: 35, Y: 11}, ix))
	id, _ = s.Target()
	assert.Equal(t, "z2", id)

	assert.True(t, s.Move(Point{X: 50, Y: 30}, ix))
	_, ok = s.Target()
	assert.False(t, ok)
}

func TestSession_EndDecisions(t *testing.T) {
	t.Parallel()

	ix, bank := testBoard()
	cases := []struct {
		name    string
		release Point
		kind    DropKind
		zone    string
	}{
		{"over zone", Point{X: 25, Y: 11}, DropZone, "z1"},
		{"over bank", Point{X: 3, Y: 3}, DropBank, ""},
		{"nowhere", Point{X: 70, Y: 30}, DropNone, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var s Session
			require.NoError(t, s.Begin("card", Rect{X: 1, Y: 1, W: 4, H: 2}, Point{X: 2, Y: 2}))
			d := s.End(tc.release, ix, bank)
			assert.Equal(t, tc.kind, d.Kind)
			assert.Equal(t, tc.zone, d.ZoneID)
			assert.Equal(t, "card", d.ItemID)
			assert.False(t, s.Active())
		})
	}
}

func TestSession_EndUsesReleasePointNotStaleHighlight(t *testing.T) {
	t.Parallel()

	ix, bank := testBoard()
	var s Session
	require.NoError(t, s.Begin("card", Rect{X: 1, Y: 1, W: 4, H: 2}, Point{X: 2, Y: 2}))
	s.Move(Point{X: 22, Y: 11}, ix) // highlight z1

	// The final pointer position lands on z2 before any frame applied it.
	d := s.End(Point{X: 33, Y: 11}, ix, bank)
	assert.Equal(t, DropZone, d.Kind)
	assert.Equal(t, "z2", d.ZoneID)
}

func TestSession_CancelAndIdleEnd(t *testing.T) {
	t.Parallel()

	ix, bank := testBoard()
	var s Session
	_, ok := s.Cancel()
	assert.False(t, ok)

	d := s.End(Point{X: 25, Y: 11}, ix, bank)
	assert.Equal(t, DropNone, d.Kind, "idle session never drops")

	require.NoError(t, s.Begin("card", Rect{X: 1, Y: 1, W: 4, H: 2}, Point{X: 2, Y: 2}))
	s.Move(Point{X: 25, Y: 11}, ix)
	id, ok := s.Cancel()
	require.True(t, ok)
	assert.Equal(t, "card", id)
	assert.False(t, s.Active())
	_, hasTarget := s.Target()
	assert.False(t, hasTarget)
	assert.Equal(t, Rect{}, s.Ghost())
}

func TestFrameGate_CoalescesMoves(t *testing.T) {
	t.Parallel()

	var g FrameGate
	assert.True(t, g.Offer(Point{X: 1, Y: 1}), "first move schedules a frame")
	assert.False(t, g.Offer(Point{X: 2, Y: 2}))
	assert.False(t, g.Offer(Point{X: 3, Y: 3}))
	assert.True(t, g.Scheduled())

	p, ok := g.Flush()
	require.True(t, ok)
	assert.Equal(t, Point{X: 3, Y: 3}, p, "only the latest move survives")
	assert.False(t, g.Scheduled())

	_, ok = g.Flush()
	assert.False(t, ok, "nothing pending after a flush")

	assert.True(t, g.Offer(Point{X: 4, Y: 4}))
	g.Reset()
	_, ok = g.Flush()
	assert.False(t, ok)
}
