package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostpanel/internal/output"
)

var createEmail string

var createCmd = &cobra.Command{
	Use:     "create <domain>",
	Aliases: []string{"add"},
	Short:   "Create a site",
	Long: `Create a site: its document root with a placeholder page and an Apache
definition in sites-available. The new site starts disabled.

Examples:
  vhostpanel create example.com --email admin@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createEmail, "email", "e", "", "ServerAdmin email address (required)")
	_ = createCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	_, repo, err := openSites()
	if err != nil {
		return err
	}

	res, err := repo.Create(commandContext(cmd), args[0], createEmail)
	if err != nil {
		return err
	}
	if err := reportSiteResult(res); err != nil {
		return err
	}
	if !jsonOutput {
		root, _ := repo.DocumentRoot(res.Domain)
		output.Info("Document root: %s", root)
	}
	return nil
}
