package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostpanel/internal/logger"
)

var (
	configPath string
	jsonOutput bool
	verbose    bool
	version    = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vhostpanel",
	Short: "Apache virtual host control panel",
	Long: `vhostpanel manages Apache virtual hosts on a single machine.

Run "vhostpanel serve" for the browser panel, or use the subcommands to
create, enable, disable and delete sites, install certificates and read
logs from the terminal. Without APP_MODE=production every path lives in a
local sandbox directory and no system command is touched.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	cobra.OnInitialize(func() {
		logger.Init(verbose)
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ~/.config/vhostpanel/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
}
