package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostpanel/internal/logs"
	"github.com/ksyq12/vhostpanel/internal/output"
)

var (
	logsAccess bool
	logsError  bool
	logsLines  int
)

var logsCmd = &cobra.Command{
	Use:   "logs [access|error]",
	Short: "Show the tail of the web server logs",
	Long: `Show the last lines of the Apache access and error logs.

By default, shows both logs. Name a kind, or use --access or --error, to
show only one.

Examples:
  vhostpanel logs
  vhostpanel logs error -n 100
  vhostpanel logs --access`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().BoolVar(&logsAccess, "access", false, "Show access log only")
	logsCmd.Flags().BoolVar(&logsError, "error", false, "Show error log only")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 0, "Number of lines to show (default from config)")

	rootCmd.AddCommand(logsCmd)
}

type logTail struct {
	Kind  logs.Kind `json:"kind"`
	Path  string    `json:"path"`
	Lines []string  `json:"lines"`
}

func selectedKinds() []logs.Kind {
	switch {
	case logsAccess && !logsError:
		return []logs.Kind{logs.Access}
	case logsError && !logsAccess:
		return []logs.Kind{logs.Error}
	default:
		return logs.Kinds
	}
}

func runLogs(cmd *cobra.Command, args []string) error {
	kinds := selectedKinds()
	if len(args) == 1 {
		kind, err := logs.ParseKind(args[0])
		if err != nil {
			return err
		}
		kinds = []logs.Kind{kind}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reader := newLogReader(cfg)

	tails := make([]logTail, 0, len(kinds))
	for _, kind := range kinds {
		tails = append(tails, logTail{
			Kind:  kind,
			Path:  reader.Path(kind),
			Lines: reader.Read(kind, logsLines),
		})
	}

	if jsonOutput {
		return output.JSON(tails)
	}

	for i, t := range tails {
		if i > 0 {
			output.Print("")
		}
		output.Section("%s log (%s)", t.Kind, t.Path)
		for _, line := range t.Lines {
			output.Print("%s", line)
		}
	}
	return nil
}
