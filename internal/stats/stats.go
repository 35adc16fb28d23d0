// Package stats takes point-in-time snapshots of host CPU, memory, disk and
// uptime for the dashboard.
package stats

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/ksyq12/vhostpanel/internal/logger"
)

const gib = 1024 * 1024 * 1024

// CPU holds utilization sampled over the collector interval.
type CPU struct {
	Percent float64 `json:"percent"`
	Count   int     `json:"count"`
}

// Usage holds totals in GB rounded to two decimals.
type Usage struct {
	Total   float64 `json:"total"`
	Used    float64 `json:"used"`
	Percent float64 `json:"percent"`
}

// System identifies the host.
type System struct {
	OS       string `json:"os"`
	Hostname string `json:"hostname"`
	Uptime   string `json:"uptime"`
}

// Snapshot is a single read of the host counters.
type Snapshot struct {
	CPU    CPU    `json:"cpu"`
	Memory Usage  `json:"memory"`
	Disk   Usage  `json:"disk"`
	System System `json:"system"`
}

// Collector produces snapshots.
type Collector interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// Sources are the OS reads behind a SystemCollector.
type Sources struct {
	CPUPercent func(ctx context.Context, interval time.Duration) (float64, error)
	CPUCount   func(ctx context.Context) (int, error)
	Memory     func(ctx context.Context) (total, used uint64, percent float64, err error)
	Disk       func(ctx context.Context, path string) (total, used uint64, percent float64, err error)
	Host       func(ctx context.Context) (*host.InfoStat, error)
	BootTime   func(ctx context.Context) (uint64, error)
	Now        func() time.Time
}

// SystemCollector reads host counters through gopsutil.
type SystemCollector struct {
	interval time.Duration
	diskPath string
	src      Sources
}

// Option configures a SystemCollector
type Option func(*SystemCollector)

// WithInterval sets the CPU sampling window
func WithInterval(d time.Duration) Option {
	return func(c *SystemCollector) {
		c.interval = d
	}
}

// WithDiskPath sets the volume reported as disk usage
func WithDiskPath(path string) Option {
	return func(c *SystemCollector) {
		if path != "" {
			c.diskPath = path
		}
	}
}

// WithSources replaces the OS reads (for testing)
func WithSources(src Sources) Option {
	return func(c *SystemCollector) {
		c.src = src
	}
}

// NewCollector creates a collector sampling CPU for one second on the root volume.
func NewCollector(opts ...Option) *SystemCollector {
	c := &SystemCollector{
		interval: time.Second,
		diskPath: "/",
		src:      gopsutilSources(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func gopsutilSources() Sources {
	return Sources{
		CPUPercent: func(ctx context.Context, interval time.Duration) (float64, error) {
			pcts, err := cpu.PercentWithContext(ctx, interval, false)
			if err != nil {
				return 0, err
			}
			if len(pcts) == 0 {
				return 0, errors.New("no cpu samples")
			}
			return pcts[0], nil
		},
		CPUCount: func(ctx context.Context) (int, error) {
			return cpu.CountsWithContext(ctx, true)
		},
		Memory: func(ctx context.Context) (uint64, uint64, float64, error) {
			vm, err := mem.VirtualMemoryWithContext(ctx)
			if err != nil {
				return 0, 0, 0, err
			}
			return vm.Total, vm.Used, vm.UsedPercent, nil
		},
		Disk: func(ctx context.Context, path string) (uint64, uint64, float64, error) {
			du, err := disk.UsageWithContext(ctx, path)
			if err != nil {
				return 0, 0, 0, err
			}
			return du.Total, du.Used, du.UsedPercent, nil
		},
		Host:     host.InfoWithContext,
		BootTime: host.BootTimeWithContext,
		Now:      time.Now,
	}
}

// Snapshot reads every counter. A failing read leaves its section zeroed and
// is reported in the joined error; the rest of the snapshot is still returned.
func (c *SystemCollector) Snapshot(ctx context.Context) (*Snapshot, error) {
	var (
		s    Snapshot
		errs []error
	)

	if pct, err := c.src.CPUPercent(ctx, c.interval); err != nil {
		errs = append(errs, fmt.Errorf("cpu percent: %w", err))
	} else {
		s.CPU.Percent = round2(pct)
	}
	if n, err := c.src.CPUCount(ctx); err != nil {
		errs = append(errs, fmt.Errorf("cpu count: %w", err))
	} else {
		s.CPU.Count = n
	}

	if total, used, pct, err := c.src.Memory(ctx); err != nil {
		errs = append(errs, fmt.Errorf("memory: %w", err))
	} else {
		s.Memory = usage(total, used, pct)
	}

	if total, used, pct, err := c.src.Disk(ctx, c.diskPath); err != nil {
		errs = append(errs, fmt.Errorf("disk %s: %w", c.diskPath, err))
	} else {
		s.Disk = usage(total, used, pct)
	}

	if info, err := c.src.Host(ctx); err != nil {
		errs = append(errs, fmt.Errorf("host info: %w", err))
	} else {
		s.System.OS = osName(info)
		s.System.Hostname = info.Hostname
	}

	if boot, err := c.src.BootTime(ctx); err != nil {
		errs = append(errs, fmt.Errorf("boot time: %w", err))
	} else {
		secs := c.src.Now().Unix() - int64(boot)
		s.System.Uptime = FormatUptime(time.Duration(secs) * time.Second)
	}

	err := errors.Join(errs...)
	if err != nil {
		logger.WarnFields("incomplete stats snapshot", logger.Fields{"error": err.Error()})
	}
	return &s, err
}

func usage(total, used uint64, pct float64) Usage {
	return Usage{
		Total:   round2(float64(total) / gib),
		Used:    round2(float64(used) / gib),
		Percent: round2(pct),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

var systemNames = map[string]string{
	"linux":   "Linux",
	"darwin":  "Darwin",
	"windows": "Windows",
	"freebsd": "FreeBSD",
}

// osName renders "<system> <release>", e.g. "Linux 6.1.0-18-amd64".
func osName(info *host.InfoStat) string {
	goos := info.OS
	if goos == "" {
		goos = runtime.GOOS
	}
	name, ok := systemNames[goos]
	if !ok && goos != "" {
		name = strings.ToUpper(goos[:1]) + goos[1:]
	}

	release := info.KernelVersion
	if release == "" {
		release = info.PlatformVersion
	}
	return strings.TrimSpace(name + " " + release)
}

// FormatUptime renders d as "H:MM:SS", prefixed by "N day(s), " past a day.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	days := secs / 86400
	secs %= 86400
	clock := fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)

	switch days {
	case 0:
		return clock
	case 1:
		return "1 day, " + clock
	default:
		return fmt.Sprintf("%d days, %s", days, clock)
	}
}
