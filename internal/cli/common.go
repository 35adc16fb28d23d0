package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostpanel/internal/config"
	"github.com/ksyq12/vhostpanel/internal/logger"
	"github.com/ksyq12/vhostpanel/internal/logs"
	"github.com/ksyq12/vhostpanel/internal/output"
	"github.com/ksyq12/vhostpanel/internal/site"
	"github.com/ksyq12/vhostpanel/internal/ssl"
)

// loadConfig resolves the configuration from --config, dotenv and environment
func loadConfig() (*config.Config, error) {
	cfg, err := deps.ConfigLoader.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Verbose {
		logger.SetLevel(logger.LevelDebug)
	}
	return cfg, nil
}

// openSites loads config and returns the site repository over it
func openSites() (*config.Config, *site.Repository, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.EnsureDirs(); err != nil {
		return nil, nil, err
	}

	repo, err := site.Open(cfg, deps.Executor)
	if err != nil {
		return nil, nil, err
	}
	return cfg, repo, nil
}

// newInstaller builds the certbot installer described by cfg
func newInstaller(cfg *config.Config) (*ssl.Installer, error) {
	argv, err := cfg.CertbotArgv()
	if err != nil {
		return nil, err
	}
	return ssl.NewInstaller(argv,
		ssl.WithExecutor(deps.Executor),
		ssl.WithTimeout(cfg.CertbotTimeout),
	), nil
}

func newLogReader(cfg *config.Config) *logs.Reader {
	return logs.NewReader(cfg.Paths.Logs, cfg.IsProduction(), cfg.LogLines)
}

// commandContext returns the context of cmd, or Background when the run
// function is called directly.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd == nil || cmd.Context() == nil {
		return context.Background()
	}
	return cmd.Context()
}

// outputResult handles JSON or human-readable output
func outputResult(data interface{}, successMsg string, args ...interface{}) error {
	if jsonOutput {
		return output.JSON(data)
	}
	output.Success(successMsg, args...)
	return nil
}

// CommandResult represents a common result structure for CLI commands
type CommandResult struct {
	Success bool   `json:"success"`
	Domain  string `json:"domain"`
	Action  string `json:"action,omitempty"`
	Message string `json:"message,omitempty"`
	Changed bool   `json:"changed"`
	Reload  string `json:"reload,omitempty"`
}

// newSiteResult converts a site.Result for output
func newSiteResult(res site.Result) CommandResult {
	out := CommandResult{
		Success: true,
		Domain:  res.Domain,
		Action:  res.Action,
		Message: res.Message,
		Changed: res.Changed,
	}
	if res.Reload != nil {
		out.Reload = "ok"
		if !res.Reload.OK {
			out.Reload = "failed"
		}
	}
	return out
}

// reportSiteResult prints the outcome of a site mutation, including a
// reload failure that did not abort it.
func reportSiteResult(res site.Result) error {
	if jsonOutput {
		return output.JSON(newSiteResult(res))
	}
	if res.Changed {
		output.Success("%s: %s", res.Domain, res.Message)
	} else {
		output.Info("%s: %s", res.Domain, res.Message)
	}
	if res.ReloadFailed() {
		output.Warn("Web server reload failed: %v", res.Reload.Err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
