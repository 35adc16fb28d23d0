package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostpanel/internal/domain"
	"github.com/ksyq12/vhostpanel/internal/input"
	"github.com/ksyq12/vhostpanel/internal/output"
)

var forceDelete bool

var deleteCmd = &cobra.Command{
	Use:     "delete <domain>",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete a site",
	Long: `Delete a site: its sites-enabled entry, its definition and its whole
document root. This cannot be undone.

Examples:
  vhostpanel delete example.com
  vhostpanel rm example.com --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&forceDelete, "force", "f", false, "Delete without confirmation")

	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	domainName := args[0]

	// Reject bad names before asking anything
	if err := domain.Validate(domainName); err != nil {
		return err
	}

	_, repo, err := openSites()
	if err != nil {
		return err
	}

	if !forceDelete {
		output.Prompt("Delete %s and its document root? [y/N]: ", domainName)
		if !input.Confirm(deps.StdinReader) {
			output.Info("Deletion cancelled")
			return nil
		}
	}

	res, err := repo.Delete(commandContext(cmd), domainName)
	if err != nil {
		return err
	}
	return reportSiteResult(res)
}
