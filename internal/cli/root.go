package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"matchgames/internal/config"
	"matchgames/internal/format"
	"matchgames/internal/game"
	"matchgames/internal/journal"
	"matchgames/internal/logging"
	"matchgames/internal/tui"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type App struct {
	Format     string
	PrettyJSON bool
	Seed       uint64
	Summary    bool
	LogPath    string
	Glyphs     string
	FPS        int
	Debug      bool

	cfg      config.Config
	cfgErr   error
	log      *logrus.Logger
	closeLog func() error
}

// runTUI is swapped out in tests so commands can run without a terminal.
var runTUI = tui.Run

func NewRootCmd() *cobra.Command {
	app := &App{}
	app.cfg, app.cfgErr = config.Load()
	if app.cfgErr != nil {
		app.cfg = config.Defaults()
	}

	cmd := &cobra.Command{
		Use:          "matchgames",
		Short:        "Drag-and-drop matching games for the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Pick a game
  matchgames

  # Fraction / decimal / percent table
  matchgames fraction --level 2

  # Multiplication table (shortcut for: matchgames times --table 7)
  matchgames 7

  # Play in the browser
  matchgames webtui --addr 127.0.0.1:3334
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => game picker.
			if cmd.HasSubCommands() && len(args) == 0 {
				cat, err := loadCatalog(cmd, app)
				if err != nil {
					return err
				}
				return runGame(cmd, app, cat, tui.Start{})
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if app.cfgErr != nil {
			return writeErr(cmd, app.cfgErr)
		}
		cfg := app.cfg
		cfg.Format = app.Format
		cfg.Seed = app.Seed
		cfg.LogPath = app.LogPath
		cfg.Glyphs = app.Glyphs
		cfg.FPS = app.FPS
		if err := cfg.Validate(); err != nil {
			return writeErr(cmd, err)
		}
		app.cfg = cfg
		app.Format = cfg.Format

		log, closeLog, err := logging.New(cfg.LogPath, app.Debug)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.log, app.closeLog = log, closeLog
		app.log.WithField("command", cmd.CommandPath()).Debug("start")
		return nil
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.closeLog == nil {
			return nil
		}
		return app.closeLog()
	}

	cmd.PersistentFlags().StringVar(&app.Format, "format", app.cfg.Format, "Output format (json|edn)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().Uint64Var(&app.Seed, "seed", app.cfg.Seed, "Shuffle seed (0 = random)")
	cmd.PersistentFlags().BoolVar(&app.Summary, "summary", false, "Print the session summary on exit")
	cmd.PersistentFlags().StringVar(&app.LogPath, "log", app.cfg.LogPath, "Append structured logs to this file")
	cmd.PersistentFlags().StringVar(&app.Glyphs, "glyphs", app.cfg.Glyphs, "Board glyphs (unicode|ascii)")
	cmd.PersistentFlags().IntVar(&app.FPS, "fps", app.cfg.FPS, "Drag repaint rate")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", envOr("MATCHGAMES_DEBUG", "") != "", "Log at debug level")

	cmd.AddCommand(newFractionCmd(app))
	cmd.AddCommand(newTimesCmd(app))
	cmd.AddCommand(newLevelsCmd(app))
	cmd.AddCommand(newWebTUICmd(app))

	return cmd
}

func loadCatalog(cmd *cobra.Command, app *App) (*game.Catalog, error) {
	cat, err := game.DefaultCatalog()
	if err != nil {
		app.logger().WithError(err).Error("load catalog")
		return nil, writeErr(cmd, err)
	}
	return cat, nil
}

// runGame opens a session journal, runs the TUI until the player quits and
// optionally prints what the journal saw.
func runGame(cmd *cobra.Command, app *App, cat *game.Catalog, start tui.Start) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log := app.logger().WithFields(logrus.Fields{
		"game":  string(start.Game),
		"level": start.Level,
		"round": start.Round,
	})

	j, err := journal.Open(ctx)
	if err != nil {
		log.WithError(err).Error("open journal")
		return writeErr(cmd, err)
	}
	defer j.Close()

	err = runTUI(tui.Options{
		Catalog:       cat,
		Start:         start,
		Seed:          app.cfg.Seed,
		FrameInterval: app.cfg.FrameInterval(),
		Glyphs:        app.cfg.Glyphs,
		Journal:       j,
		Log:           app.logger(),
		Context:       ctx,
	})
	if err != nil {
		log.WithError(err).Error("game aborted")
		return writeErr(cmd, err)
	}
	log.WithField("session", j.SessionID()).Info("session finished")

	if !app.Summary {
		return nil
	}
	sum, err := j.Summary(ctx)
	if err != nil {
		return writeErr(cmd, err)
	}
	recent, err := j.Recent(ctx, 20)
	if err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{
		"data": map[string]any{
			"summary": sum,
			"recent":  recent,
		},
	})
}

func (app *App) logger() *logrus.Logger {
	if app.log == nil {
		return logging.Discard()
	}
	return app.log
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
