package cli

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"matchgames/internal/webtui"

	"github.com/spf13/cobra"
)

func newWebTUICmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "webtui",
		Short: "Play the games in a browser (PTY + WebSocket)",
		Long: strings.TrimSpace(`
Serve the terminal games to a browser through a server-side PTY and xterm.js.

Notes:
- No auth; bind to localhost unless you trust the network.
- Each browser tab starts its own game process on the server.
`),
		Example: strings.TrimSpace(`
matchgames webtui
matchgames --glyphs ascii webtui --addr :3334
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(cmd, app)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = app.cfg.Addr
			}

			srv, err := webtui.NewServer(webtui.ServerConfig{
				Addr:    strings.TrimSpace(addr),
				Catalog: cat,
				Args:    childArgs(app),
				Log:     app.logger(),
			})
			if err != nil {
				app.logger().WithError(err).Error("start webtui")
				return writeErr(cmd, err)
			}

			listenAddr := srv.Addr()
			if listenAddr == "" {
				return writeErr(cmd, errors.New("webtui: missing --addr"))
			}

			_ = writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"addr":      listenAddr,
					"glyphs":    app.cfg.Glyphs,
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
				"_hints": []string{
					"open http://" + listenAddr,
				},
			})

			fmt.Fprintf(cmd.ErrOrStderr(), "matchgames webtui running at http://%s\n", listenAddr)
			app.logger().WithField("addr", listenAddr).Info("webtui listening")
			return http.ListenAndServe(listenAddr, srv.Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:3334", "Bind address (host:port or :port)")
	return cmd
}

// childArgs carries the persistent settings that shape a game over to the
// processes spawned for browser tabs.
func childArgs(app *App) []string {
	args := []string{"--glyphs", app.cfg.Glyphs, "--fps", strconv.Itoa(app.cfg.FPS)}
	if app.cfg.Seed != 0 {
		args = append(args, "--seed", strconv.FormatUint(app.cfg.Seed, 10))
	}
	if app.cfg.LogPath != "" {
		args = append(args, "--log", app.cfg.LogPath)
	}
	if app.Debug {
		args = append(args, "--debug")
	}
	return args
}
