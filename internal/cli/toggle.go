package cli

import (
	"github.com/spf13/cobra"
)

var enableCmd = &cobra.Command{
	Use:   "enable <domain>",
	Short: "Enable a site",
	Long: `Enable a site by linking its definition into sites-enabled, then reload
Apache. Enabling an enabled site changes nothing and skips the reload.

Examples:
  vhostpanel enable example.com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToggle(cmd, args[0], true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <domain>",
	Short: "Disable a site",
	Long: `Disable a site by removing its entry from sites-enabled, then reload
Apache. The definition in sites-available is kept.

Examples:
  vhostpanel disable example.com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToggle(cmd, args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}

func runToggle(cmd *cobra.Command, domainName string, enable bool) error {
	_, repo, err := openSites()
	if err != nil {
		return err
	}

	res, err := repo.Toggle(commandContext(cmd), domainName, enable)
	if err != nil {
		return err
	}
	return reportSiteResult(res)
}
