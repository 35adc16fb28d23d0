package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostpanel/internal/output"
	"github.com/ksyq12/vhostpanel/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show host CPU, memory, disk and uptime",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	snap, err := deps.StatsCollector.Snapshot(commandContext(cmd))
	if snap == nil {
		return fmt.Errorf("failed to read system stats: %w", err)
	}

	if jsonOutput {
		return output.JSON(snap)
	}
	if err != nil {
		output.Warn("Some stats are unavailable: %v", err)
	}
	output.KeyValue(statsPairs(snap))
	return nil
}

func statsPairs(s *stats.Snapshot) [][2]string {
	return [][2]string{
		{"OS", s.System.OS},
		{"Hostname", s.System.Hostname},
		{"Uptime", s.System.Uptime},
		{"CPU", fmt.Sprintf("%.2f%% of %d cores", s.CPU.Percent, s.CPU.Count)},
		{"Memory", fmt.Sprintf("%.2f / %.2f GB (%.2f%%)", s.Memory.Used, s.Memory.Total, s.Memory.Percent)},
		{"Disk", fmt.Sprintf("%.2f / %.2f GB (%.2f%%)", s.Disk.Used, s.Disk.Total, s.Disk.Percent)},
	}
}
