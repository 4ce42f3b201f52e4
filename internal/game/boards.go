package game

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

var fractionColumns = []ItemType{TypeFraction, TypeDecimal, TypePercent}

// FractionBoard builds the table for a level and round. Round 1 lists the
// bank by answer type then row; later rounds shuffle it with rng.
func FractionBoard(c *Catalog, level, round int, rng *rand.Rand) (Board, Rules, error) {
	cfg, err := c.FractionLevel(level)
	if err != nil {
		return Board{}, nil, err
	}
	b := Board{
		Kind:         KindFraction,
		Title:        fmt.Sprintf("Level %d: %s", cfg.Level, cfg.Description),
		Instructions: cfg.Instructions,
		Hint:         cfg.Hint,
	}
	for _, col := range fractionColumns {
		b.Header = append(b.Header, col.Label())
	}

	answer := map[ItemType]bool{}
	for _, a := range cfg.Answers {
		answer[a] = true
	}
	for i, row := range c.Fraction.Rows {
		var cells []Cell
		for _, col := range fractionColumns {
			if !answer[col] {
				cells = append(cells, Cell{Text: row.Value(col), Type: col})
				continue
			}
			z := Zone{
				ID:     fractionZoneID(i, col),
				Row:    i,
				Column: col,
			}
			if !cfg.Mixed() {
				z.Expected = row.Value(col)
			}
			b.Zones = append(b.Zones, z)
			cells = append(cells, Cell{ZoneID: z.ID, Type: col})
		}
		b.Rows = append(b.Rows, Row{Cells: cells})
	}

	for _, t := range cfg.Answers {
		for i, row := range c.Fraction.Rows {
			b.Items = append(b.Items, Item{
				ID:    fmt.Sprintf("card-%s-%d", t, i),
				Value: row.Value(t),
				Type:  t,
				Group: row.Fraction,
			})
		}
	}
	if round > 1 && rng != nil {
		rng.Shuffle(len(b.Items), func(i, j int) { b.Items[i], b.Items[j] = b.Items[j], b.Items[i] })
	}

	var rules Rules = ExactRules{}
	if cfg.Mixed() {
		// Mixed mode: any card in any cell, no per-cell column check.
		for i := range b.Zones {
			b.Zones[i].Column = ""
		}
		rules = RowRules{}
	}
	return b, rules, nil
}

func fractionZoneID(row int, col ItemType) string {
	return fmt.Sprintf("r%d-%s", row, col)
}

// TimesBoard builds the equations 1×n … n×n for table n. The first
// presentation lists answers in order; once the table has been completed
// the bank is shuffled.
func TimesBoard(c *Catalog, table, completions int, rng *rand.Rand) (Board, Rules, error) {
	if !c.HasTable(table) {
		return Board{}, nil, NotFoundError{Kind: "times table", ID: strconv.Itoa(table)}
	}
	b := Board{
		Kind:         KindTimes,
		Title:        fmt.Sprintf("Multiplication by %d", table),
		Instructions: c.Times.Instructions,
		Hint:         c.Times.Hint,
	}
	for i := 1; i <= table; i++ {
		product := strconv.Itoa(i * table)
		z := Zone{
			ID:       fmt.Sprintf("eq-%d", i),
			Row:      i - 1,
			Column:   TypeProduct,
			Expected: product,
		}
		b.Zones = append(b.Zones, z)
		b.Rows = append(b.Rows, Row{Cells: []Cell{
			{Text: strconv.Itoa(i)},
			{Text: fmt.Sprintf("× %d =", table)},
			{ZoneID: z.ID, Type: TypeProduct},
		}})
		b.Items = append(b.Items, Item{
			ID:    "ans-" + product,
			Value: product,
			Type:  TypeProduct,
			Group: product,
		})
	}
	// Three equations leave a hole in the two-column grid.
	if table == 3 {
		b.Rows = append(b.Rows, Row{Blank: true})
	}
	if completions > 0 && rng != nil {
		rng.Shuffle(len(b.Items), func(i, j int) { b.Items[i], b.Items[j] = b.Items[j], b.Items[i] })
	}
	return b, ExactRules{Locked: true}, nil
}
