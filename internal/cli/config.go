package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostpanel/internal/config"
	"github.com/ksyq12/vhostpanel/internal/output"
)

var (
	configInitForce bool
	configInitMode  string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after merging the config file, .env and the
environment. The secret key is masked.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the defaults of a mode",
	Long: `Write a config file with the defaults of the given mode.

Examples:
  vhostpanel config init
  vhostpanel config init --mode production --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing file")
	configInitCmd.Flags().StringVar(&configInitMode, "mode", config.ModeDevelopment, "Mode defaults to write (development or production)")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func maskSecret(secret string) string {
	if secret == "" {
		return "(unset)"
	}
	return fmt.Sprintf("(%d characters)", len(secret))
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	shown := *cfg
	shown.SecretKey = maskSecret(cfg.SecretKey)
	if jsonOutput {
		return output.JSON(shown)
	}

	output.KeyValue([][2]string{
		{"Mode", shown.Mode},
		{"Listen address", shown.Addr},
		{"Secret key", shown.SecretKey},
		{"Sites available", shown.Paths.Available},
		{"Sites enabled", shown.Paths.Enabled},
		{"Logs", shown.Paths.Logs},
		{"Web root", shown.Paths.WebRoot},
		{"Reload command", shown.ReloadCommand},
		{"Certbot command", shown.CertbotCommand},
		{"Reload timeout", shown.ReloadTimeout.String()},
		{"Certbot timeout", shown.CertbotTimeout.String()},
		{"Strict reload", yesNo(shown.StrictReload)},
		{"Log lines", fmt.Sprintf("%d", shown.LogLines)},
	})
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if configInitMode != config.ModeDevelopment && configInitMode != config.ModeProduction {
		return fmt.Errorf("unknown mode %q (want %s or %s)", configInitMode, config.ModeDevelopment, config.ModeProduction)
	}

	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.New(configInitMode, "")
	if err := cfg.Save(path); err != nil {
		return err
	}

	return outputResult(map[string]interface{}{
		"success": true,
		"path":    path,
		"mode":    cfg.Mode,
	}, "Wrote %s", path)
}
