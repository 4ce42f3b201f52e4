package cli

import (
	"fmt"
	"strings"

	"matchgames/internal/game"

	"github.com/spf13/cobra"
)

type levelView struct {
	Game        game.Kind       `json:"game"`
	Level       int             `json:"level"`
	Description string          `json:"description"`
	Fixed       game.ItemType   `json:"fixed,omitempty"`
	Answers     []game.ItemType `json:"answers,omitempty"`
	Rounds      int             `json:"rounds"`
}

func newLevelsCmd(app *App) *cobra.Command {
	var showRows bool

	cmd := &cobra.Command{
		Use:   "levels",
		Short: "List fraction levels and multiplication tables",
		Example: strings.TrimSpace(`
matchgames levels
matchgames levels --rows --format edn
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(cmd, app)
			if err != nil {
				return err
			}
			out := map[string]any{
				"data": catalogLevels(cat),
				"_hints": []string{
					"matchgames fraction --level <n>",
					"matchgames times --table <n>",
				},
			}
			if showRows {
				out["rows"] = cat.Fraction.Rows
			}
			return writeOut(cmd, app, out)
		},
	}

	cmd.Flags().BoolVar(&showRows, "rows", false, "Include the fraction/decimal/percent rows")
	return cmd
}

func catalogLevels(cat *game.Catalog) []levelView {
	out := make([]levelView, 0, len(cat.Fraction.Levels)+cat.Times.Max-cat.Times.Min+1)
	for _, l := range cat.Fraction.Levels {
		out = append(out, levelView{
			Game:        game.KindFraction,
			Level:       l.Level,
			Description: l.Description,
			Fixed:       l.Fixed,
			Answers:     l.Answers,
			Rounds:      cat.Fraction.Rounds,
		})
	}
	for n := cat.Times.Min; n <= cat.Times.Max; n++ {
		out = append(out, levelView{
			Game:        game.KindTimes,
			Level:       n,
			Description: fmt.Sprintf("Multiplication table of %d", n),
			Rounds:      cat.Times.Completions,
		})
	}
	return out
}
