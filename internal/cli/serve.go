package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostpanel/internal/httpserver"
	"github.com/ksyq12/vhostpanel/internal/logger"
	"github.com/ksyq12/vhostpanel/internal/platform"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web control panel",
	Long: `Serve the browser panel until interrupted.

The panel has no login. Bind it to localhost or put it behind an
authenticating proxy.

Examples:
  vhostpanel serve
  vhostpanel serve --addr 127.0.0.1:8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")

	rootCmd.AddCommand(serveCmd)
}

// newPanel wires the site repository, installer, log reader and stats
// collector behind the HTTP front end.
func newPanel() (*httpserver.Server, string, error) {
	cfg, repo, err := openSites()
	if err != nil {
		return nil, "", err
	}
	if err := cfg.RequireSecret(); err != nil {
		return nil, "", err
	}
	installer, err := newInstaller(cfg)
	if err != nil {
		return nil, "", err
	}

	srv, err := httpserver.New(httpserver.Deps{
		Sites: repo,
		Certs: installer,
		Logs:  newLogReader(cfg),
		Stats: deps.StatsCollector,
	}, cfg.SecretKey, cfg.PanelName)
	if err != nil {
		return nil, "", err
	}

	addr := cfg.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	logger.InfoFields("panel configured", logger.Fields{
		"mode":      cfg.Mode,
		"platform":  platform.Platform(),
		"available": cfg.Paths.Available,
		"enabled":   cfg.Paths.Enabled,
		"web_root":  cfg.Paths.WebRoot,
	})
	return srv, addr, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	srv, addr, err := newPanel()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx, addr)
}
