package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeRound(t *testing.T, m Match) {
	t.Helper()
	r := m.Round()
	if m.Kind() == KindFraction {
		if lvl, _ := m.Labels(); lvl == 4 {
			completeMixed(t, r)
			return
		}
	}
	m.Observe(solveExact(t, r))
	require.True(t, r.Completed())
}

func completeMixed(t *testing.T, r *Round) {
	t.Helper()
	groups := map[string][]Item{}
	var order []string
	for _, it := range r.Board().Items {
		if _, ok := groups[it.Group]; !ok {
			order = append(order, it.Group)
		}
		groups[it.Group] = append(groups[it.Group], it)
	}
	for row, g := range order {
		for i, it := range groups[g] {
			col := fractionColumns[i]
			_, err := r.Place(it.ID, fractionZoneID(row, col))
			require.NoError(t, err)
		}
	}
	require.True(t, r.Completed())
}

func TestFractionMatch_Progression(t *testing.T) {
	t.Parallel()

	c := mustCatalog(t)
	m, err := NewFractionMatch(c, 1, 1, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	_, err = m.Next()
	assert.ErrorIs(t, err, ErrRoundNotCompleted)

	type step struct{ level, round int }
	var seen []step
	labels := []string{}
	for i := 0; i < 9; i++ {
		lvl, rnd := m.Labels()
		seen = append(seen, step{lvl, rnd})
		completeRound(t, m)
		labels = append(labels, m.NextLabel())
		_, err := m.Next()
		require.NoError(t, err)
	}
	assert.Equal(t, []step{
		{1, 1}, {1, 2}, {2, 1}, {2, 2}, {3, 1}, {3, 2}, {4, 1}, {4, 2}, {4, 1},
	}, seen)
	assert.Equal(t, "Next Round", labels[0])
	assert.Equal(t, "Next Level", labels[1])
	assert.Equal(t, "Practice Again", labels[7])
}

func TestFractionMatch_NextLevelNotice(t *testing.T) {
	t.Parallel()

	m, err := NewFractionMatch(mustCatalog(t), 1, 2, rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)
	completeRound(t, m)
	notice, err := m.Next()
	require.NoError(t, err)
	assert.Contains(t, notice, "Level 1 completed")
	assert.Contains(t, notice, "Level 2")
}

func TestFractionMatch_SelectAndBadInput(t *testing.T) {
	t.Parallel()

	c := mustCatalog(t)
	m, err := NewFractionMatch(c, 2, 2, nil)
	require.NoError(t, err)
	require.NoError(t, m.Select(3))
	lvl, rnd := m.Labels()
	assert.Equal(t, 3, lvl)
	assert.Equal(t, 1, rnd)

	assert.Error(t, m.Select(9))
	_, err = NewFractionMatch(c, 1, 5, nil)
	assert.Error(t, err)
	_, err = NewFractionMatch(c, 0, 1, nil)
	assert.Error(t, err)
}

func TestFractionBoard_RoundOneOrderedRoundTwoShuffled(t *testing.T) {
	t.Parallel()

	c := mustCatalog(t)
	b1, _, err := FractionBoard(c, 1, 1, rand.New(rand.NewPCG(9, 9)))
	require.NoError(t, err)
	require.Len(t, b1.Items, 16)
	assert.Equal(t, "0.5", b1.Items[0].Value)
	assert.Equal(t, TypeDecimal, b1.Items[0].Type)
	assert.Equal(t, TypePercent, b1.Items[8].Type)
	assert.Len(t, b1.Zones, 16)
	assert.Equal(t, "1/2", b1.Rows[0].Cells[0].Text)

	b2, _, err := FractionBoard(c, 1, 2, rand.New(rand.NewPCG(9, 9)))
	require.NoError(t, err)
	assert.ElementsMatch(t, b1.Items, b2.Items)
	assert.NotEqual(t, b1.Items, b2.Items)

	b4, rules, err := FractionBoard(c, 4, 1, nil)
	require.NoError(t, err)
	assert.IsType(t, RowRules{}, rules)
	assert.Len(t, b4.Zones, 24)
	for _, z := range b4.Zones {
		assert.Empty(t, z.Expected)
	}
}

func TestTimesMatch_UnlockAndMastery(t *testing.T) {
	t.Parallel()

	c := mustCatalog(t)
	m, err := NewTimesMatch(c, 8, rand.New(rand.NewPCG(5, 6)))
	require.NoError(t, err)
	assert.Equal(t, "Play Again", m.NextLabel())
	first := append([]Item(nil), m.Round().Board().Items...)
	assert.Equal(t, "8", first[0].Value)

	completeRound(t, m)
	assert.Equal(t, 1, m.Completions())
	assert.False(t, m.Unlocked())
	_, err = m.Next()
	require.NoError(t, err)
	assert.Equal(t, 8, m.Table())
	assert.ElementsMatch(t, first, m.Round().Board().Items)

	completeRound(t, m)
	assert.True(t, m.Unlocked())
	assert.Equal(t, "Next Level", m.NextLabel())
	_, err = m.Next()
	require.NoError(t, err)
	assert.Equal(t, 9, m.Table())
	assert.Equal(t, 0, m.Completions())

	completeRound(t, m)
	_, _ = m.Next()
	completeRound(t, m)
	assert.Equal(t, "Table Complete", m.NextLabel())
	assert.Empty(t, m.Congratulations())
	_, err = m.Next()
	require.NoError(t, err)
	assert.Contains(t, m.Congratulations(), "Multiplication Tables 2–9")
	assert.Equal(t, "Practice Again", m.NextLabel())

	_, err = m.Next()
	require.NoError(t, err)
	assert.Empty(t, m.Congratulations())
	assert.Equal(t, 9, m.Table())
	assert.False(t, m.Round().Completed())
}

func TestTimesBoard_ThreePadsGrid(t *testing.T) {
	t.Parallel()

	b, _, err := TimesBoard(mustCatalog(t), 3, 0, nil)
	require.NoError(t, err)
	require.Len(t, b.Rows, 4)
	assert.True(t, b.Rows[3].Blank)
	assert.Len(t, b.Zones, 3)

	_, _, err = TimesBoard(mustCatalog(t), 10, 0, nil)
	var nf NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestParseCatalog_Validation(t *testing.T) {
	t.Parallel()

	_, err := ParseCatalog([]byte("fraction: {}\ntimes: {min: 2, max: 9, completions: 2}\n"))
	var ce ConfigError
	require.ErrorAs(t, err, &ce)

	_, err = ParseCatalog([]byte(":::"))
	assert.Error(t, err)
}
