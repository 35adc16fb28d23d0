package cli

import (
	"github.com/ksyq12/vhostpanel/internal/config"
	"github.com/ksyq12/vhostpanel/internal/executor"
	"github.com/ksyq12/vhostpanel/internal/input"
	"github.com/ksyq12/vhostpanel/internal/stats"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	ConfigLoader   ConfigLoader
	Executor       executor.CommandExecutor
	StdinReader    input.Reader
	StatsCollector stats.Collector
}

// ConfigLoader resolves the configuration for a command
type ConfigLoader interface {
	Load(path string) (*config.Config, error)
}

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	ConfigLoader:   &realConfigLoader{},
	Executor:       executor.NewSystemExecutor(),
	StdinReader:    input.NewStdinReader(),
	StatsCollector: stats.NewCollector(),
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// GetDeps returns the current dependencies (for testing)
func GetDeps() *Dependencies {
	return deps
}

type realConfigLoader struct{}

func (r *realConfigLoader) Load(path string) (*config.Config, error) {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return config.Load(path)
}
