package dnd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectContains_HalfOpen(t *testing.T) {
	t.Parallel()

	r := Rect{X: 2, Y: 3, W: 4, H: 2}
	cases := []struct {
		p    Point
		want bool
	}{
		{Point{2, 3}, true},
		{Point{5, 4}, true},
		{Point{6, 4}, false},
		{Point{5, 5}, false},
		{Point{1, 3}, false},
		{Point{2, 2}, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, r.Contains(tc.p), "point %+v", tc.p)
	}
	assert.False(t, Rect{X: 0, Y: 0, W: 0, H: 3}.Contains(Point{0, 0}))
}

func TestIndex_SkipsFilledAndEmptyTargets(t *testing.T) {
	t.Parallel()

	ix := NewIndex(TargetList{
		{ID: "a", Rect: Rect{X: 0, Y: 0, W: 4, H: 3}},
		{ID: "b", Rect: Rect{X: 5, Y: 0, W: 4, H: 3}, Filled: true},
		{ID: "c", Rect: Rect{X: 10, Y: 0, W: 0, H: 3}},
		{ID: "", Rect: Rect{X: 15, Y: 0, W: 4, H: 3}},
	})
	require.Equal(t, 1, ix.Len())
	assert.Equal(t, "a", ix.Zones()[0].ID)

	_, ok := ix.HitTest(Point{6, 1})
	assert.False(t, ok, "filled zone must not be hit")
}

func TestIndex_Rebuild_ReplacesZones(t *testing.T) {
	t.Parallel()

	ix := NewIndex(TargetList{{ID: "a", Rect: Rect{W: 2, H: 2}}})
	ix.Rebuild(TargetList{{ID: "b", Rect: Rect{X: 10, W: 2, H: 2}}})

	_, ok := ix.HitTest(Point{0, 0})
	assert.False(t, ok)
	z, ok := ix.HitTest(Point{10, 1})
	require.True(t, ok)
	assert.Equal(t, "b", z.ID)

	ix.Rebuild(nil)
	assert.Equal(t, 0, ix.Len())
}

func TestHitTest_NearestCenterWins(t *testing.T) {
	t.Parallel()

	// Two overlapping zones. Point (3,1) is closer to the center of "right".
	ix := NewIndex(TargetList{
		{ID: "left", Rect: Rect{X: 0, Y: 0, W: 4, H: 2}},  // center (2,1)
		{ID: "right", Rect: Rect{X: 2, Y: 0, W: 4, H: 2}}, // center (4,1)
	})

	z, ok := ix.HitTest(Point{X: 3, Y: 1})
	require.True(t, ok)
	// Distances: left 1.0, right 1.0 -> tie keeps index order.
	assert.Equal(t, "left", z.ID)

	z, ok = ix.HitTest(Point{X: 4, Y: 1})
	require.True(t, ok)
	assert.Equal(t, "right", z.ID)

	z, ok = ix.HitTest(Point{X: 2, Y: 0})
	require.True(t, ok)
	assert.Equal(t, "left", z.ID)
}

func TestHitTest_NestedZonePrefersCloserCenter(t *testing.T) {
	t.Parallel()

	ix := NewIndex(TargetList{
		{ID: "outer", Rect: Rect{X: 0, Y: 0, W: 20, H: 10}}, // center (10,5)
		{ID: "inner", Rect: Rect{X: 1, Y: 1, W: 4, H: 2}},   // center (3,2)
	})
	z, ok := ix.HitTest(Point{X: 2, Y: 2})
	require.True(t, ok)
	assert.Equal(t, "inner", z.ID)

	z, ok = ix.HitTest(Point{X: 9, Y: 5})
	require.True(t, ok)
	assert.Equal(t, "outer", z.ID)
}

func TestHitTest_NilIndex(t *testing.T) {
	t.Parallel()

	var ix *Index
	_, ok := ix.HitTest(Point{})
	assert.False(t, ok)
	assert.Equal(t, 0, ix.Len())
}
