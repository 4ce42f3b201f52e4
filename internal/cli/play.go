package cli

import (
	"strings"

	"matchgames/internal/game"
	"matchgames/internal/tui"

	"github.com/spf13/cobra"
)

func newFractionCmd(app *App) *cobra.Command {
	var level, round int

	cmd := &cobra.Command{
		Use:   "fraction",
		Short: "Match fractions, decimals and percents",
		Long: strings.TrimSpace(`
Fill the table so every row holds one fraction with its decimal and percent.

Levels 1-3 fix one column and ask for the other two. Level 4 mixes every
value into the bank and grades each row by its three values.
`),
		Example: strings.TrimSpace(`
matchgames fraction
matchgames fraction --level 4 --round 2
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(cmd, app)
			if err != nil {
				return err
			}
			if _, err := cat.FractionLevel(level); err != nil {
				err = errFlagRange("level", level, 1, len(cat.Fraction.Levels))
				app.logger().WithError(err).Error("start fraction")
				return writeErr(cmd, err)
			}
			if round < 1 || round > cat.Fraction.Rounds {
				err := errFlagRange("round", round, 1, cat.Fraction.Rounds)
				app.logger().WithError(err).Error("start fraction")
				return writeErr(cmd, err)
			}
			return runGame(cmd, app, cat, tui.Start{Game: game.KindFraction, Level: level, Round: round})
		},
	}

	cmd.Flags().IntVar(&level, "level", 1, "Level (1-4)")
	cmd.Flags().IntVar(&round, "round", 1, "Round within the level")
	return cmd
}

func newTimesCmd(app *App) *cobra.Command {
	var table int

	cmd := &cobra.Command{
		Use:   "times",
		Short: "Match products to multiplication equations",
		Long: strings.TrimSpace(`
Drag each product onto its equation. Finishing a table twice unlocks the next
one; the last table ends with a congratulations screen.
`),
		Example: strings.TrimSpace(`
matchgames times
matchgames times --table 7
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(cmd, app)
			if err != nil {
				return err
			}
			if table == 0 {
				table = cat.Times.Min
			}
			if !cat.HasTable(table) {
				err := errFlagRange("table", table, cat.Times.Min, cat.Times.Max)
				app.logger().WithError(err).Error("start times")
				return writeErr(cmd, err)
			}
			return runGame(cmd, app, cat, tui.Start{Game: game.KindTimes, Level: table})
		},
	}

	cmd.Flags().IntVar(&table, "table", 0, "Multiplication table (2-9, default: first)")
	return cmd
}
