package game

import (
	"fmt"
	"math/rand/v2"
)

// Match drives a sequence of rounds: it owns the current Round and the
// level/round progression around it.
type Match interface {
	Kind() Kind
	Round() *Round
	// Progress is a short scoreboard label, e.g. "Round 1/2".
	Progress() string
	// NextLabel is the caption of the "next" control.
	NextLabel() string
	// Next advances after a completed round. The returned notice, if any,
	// is meant for the player ("Level 1 completed! ...").
	Next() (string, error)
	// Select jumps to a level (fraction) or table (times), starting fresh.
	Select(n int) error
	// Congratulations is non-empty once the final goal is reached.
	Congratulations() string
	// Observe lets the match react to committer events.
	Observe(evs []Event)
	// Labels identifies the current round for logs and the journal.
	Labels() (level, round int)
}

// FractionMatch is the fraction / decimal / percent table progression:
// levels 1..N with Rounds rounds each; the last level loops.
type FractionMatch struct {
	cat   *Catalog
	rng   *rand.Rand
	level int
	round int
	cur   *Round
}

func NewFractionMatch(c *Catalog, level, round int, rng *rand.Rand) (*FractionMatch, error) {
	if round < 1 || round > c.Fraction.Rounds {
		return nil, NotFoundError{Kind: "fraction round", ID: fmt.Sprint(round)}
	}
	m := &FractionMatch{cat: c, rng: rng}
	if err := m.start(level, round); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *FractionMatch) start(level, round int) error {
	b, rules, err := FractionBoard(m.cat, level, round, m.rng)
	if err != nil {
		return err
	}
	r, err := NewRound(b, rules)
	if err != nil {
		return err
	}
	m.level, m.round, m.cur = level, round, r
	return nil
}

func (m *FractionMatch) Kind() Kind { return KindFraction }

func (m *FractionMatch) Round() *Round { return m.cur }

func (m *FractionMatch) Labels() (int, int) { return m.level, m.round }

func (m *FractionMatch) Levels() int { return len(m.cat.Fraction.Levels) }

func (m *FractionMatch) Progress() string {
	return fmt.Sprintf("Round %d/%d", m.round, m.cat.Fraction.Rounds)
}

func (m *FractionMatch) lastLevel() bool { return m.level == len(m.cat.Fraction.Levels) }

func (m *FractionMatch) lastRound() bool { return m.round >= m.cat.Fraction.Rounds }

func (m *FractionMatch) NextLabel() string {
	switch {
	case !m.lastRound():
		return "Next Round"
	case m.lastLevel():
		return "Practice Again"
	default:
		return "Next Level"
	}
}

func (m *FractionMatch) Next() (string, error) {
	if !m.cur.Completed() {
		return "", ErrRoundNotCompleted
	}
	switch {
	case !m.lastRound():
		return "", m.start(m.level, m.round+1)
	case m.lastLevel():
		return "", m.start(m.level, 1)
	default:
		next := m.level + 1
		cfg, err := m.cat.FractionLevel(next)
		if err != nil {
			return "", err
		}
		notice := fmt.Sprintf("Level %d completed! Moving to Level %d: %s.", m.level, next, cfg.Description)
		return notice, m.start(next, 1)
	}
}

func (m *FractionMatch) Select(level int) error {
	if level == m.level {
		return nil
	}
	return m.start(level, 1)
}

func (m *FractionMatch) Congratulations() string { return "" }

func (m *FractionMatch) Observe([]Event) {}

// TimesMatch is the multiplication table progression: each table must be
// completed Completions times before the next one unlocks; finishing the
// last table shows the congratulations.
type TimesMatch struct {
	cat         *Catalog
	rng         *rand.Rand
	table       int
	completions int
	mastered    bool
	cur         *Round
}

func NewTimesMatch(c *Catalog, table int, rng *rand.Rand) (*TimesMatch, error) {
	m := &TimesMatch{cat: c, rng: rng}
	if err := m.start(table); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *TimesMatch) start(table int) error {
	completions := m.completions
	if table != m.table {
		completions = 0
	}
	b, rules, err := TimesBoard(m.cat, table, completions, m.rng)
	if err != nil {
		return err
	}
	r, err := NewRound(b, rules)
	if err != nil {
		return err
	}
	m.table, m.completions, m.cur = table, completions, r
	return nil
}

func (m *TimesMatch) Kind() Kind { return KindTimes }

func (m *TimesMatch) Round() *Round { return m.cur }

func (m *TimesMatch) Labels() (int, int) { return m.table, m.completions + 1 }

func (m *TimesMatch) Table() int { return m.table }

func (m *TimesMatch) Completions() int { return m.completions }

func (m *TimesMatch) Unlocked() bool { return m.completions >= m.cat.Times.Completions }

func (m *TimesMatch) Progress() string {
	return fmt.Sprintf("Complete %d times to unlock next level (%d/%d)",
		m.cat.Times.Completions, min(m.completions, m.cat.Times.Completions), m.cat.Times.Completions)
}

func (m *TimesMatch) NextLabel() string {
	switch {
	case m.mastered:
		return "Practice Again"
	case !m.Unlocked():
		return "Play Again"
	case m.table >= m.cat.Times.Max:
		return "Table Complete"
	default:
		return "Next Level"
	}
}

func (m *TimesMatch) Observe(evs []Event) {
	for _, ev := range evs {
		if ev.Kind == EventCompleted {
			m.completions++
		}
	}
}

func (m *TimesMatch) Next() (string, error) {
	if !m.cur.Completed() {
		return "", ErrRoundNotCompleted
	}
	switch {
	case m.mastered:
		m.mastered = false
		return "", m.start(m.table)
	case !m.Unlocked():
		return "", m.start(m.table)
	case m.table >= m.cat.Times.Max:
		m.mastered = true
		return "", nil
	default:
		return "", m.start(m.table + 1)
	}
}

func (m *TimesMatch) Select(table int) error {
	if table == m.table {
		return nil
	}
	m.mastered = false
	return m.start(table)
}

func (m *TimesMatch) Congratulations() string {
	if !m.mastered {
		return ""
	}
	return m.cat.Times.Congratulations
}
