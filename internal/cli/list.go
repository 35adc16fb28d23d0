package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostpanel/internal/output"
	"github.com/ksyq12/vhostpanel/internal/site"
)

var listCmd = &cobra.Command{
	Use:     "list [domain]",
	Aliases: []string{"ls"},
	Short:   "List all sites",
	Long: `List every site definition in sites-available with its enabled state,
or only the named site.

Examples:
  vhostpanel list
  vhostpanel ls --json
  vhostpanel list example.com`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	_, repo, err := openSites()
	if err != nil {
		return err
	}

	var sites []site.Site
	if len(args) == 1 {
		s, err := repo.Get(args[0])
		if err != nil {
			return err
		}
		sites = []site.Site{s}
	} else if sites, err = repo.List(); err != nil {
		return err
	}

	if jsonOutput {
		if sites == nil {
			sites = []site.Site{}
		}
		return output.JSON(sites)
	}

	if len(sites) == 0 {
		output.Info("No domains yet")
		return nil
	}

	rows := make([][]string, 0, len(sites))
	for _, s := range sites {
		rows = append(rows, []string{s.Domain, s.File, yesNo(s.Enabled)})
	}
	output.Table([]string{"DOMAIN", "FILE", "ENABLED"}, rows)
	return nil
}
