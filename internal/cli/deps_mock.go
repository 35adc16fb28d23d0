package cli

import (
	"context"
	"errors"

	"github.com/ksyq12/vhostpanel/internal/config"
	"github.com/ksyq12/vhostpanel/internal/executor"
	"github.com/ksyq12/vhostpanel/internal/input"
	"github.com/ksyq12/vhostpanel/internal/stats"
)

// MockConfigLoader is a test double for ConfigLoader
type MockConfigLoader struct {
	Cfg       *config.Config
	LoadErr   error
	LoadCalls []string
}

func (m *MockConfigLoader) Load(path string) (*config.Config, error) {
	m.LoadCalls = append(m.LoadCalls, path)
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Cfg == nil {
		return nil, errors.New("mock config not set")
	}
	return m.Cfg, nil
}

// MockStatsCollector is a test double for stats.Collector
type MockStatsCollector struct {
	Snap *stats.Snapshot
	Err  error
}

func (m *MockStatsCollector) Snapshot(ctx context.Context) (*stats.Snapshot, error) {
	if m.Snap == nil {
		return &stats.Snapshot{}, m.Err
	}
	return m.Snap, m.Err
}

// MockDependenciesBuilder helps create mock dependencies for tests
type MockDependenciesBuilder struct {
	deps *Dependencies
}

// NewMockDeps creates a builder whose config is a development sandbox rooted
// at sandboxDir and whose commands never leave the process.
func NewMockDeps(sandboxDir string) *MockDependenciesBuilder {
	return &MockDependenciesBuilder{
		deps: &Dependencies{
			ConfigLoader:   &MockConfigLoader{Cfg: config.New(config.ModeDevelopment, sandboxDir)},
			Executor:       &executor.MockExecutor{},
			StdinReader:    input.NewAnswers("y\n"),
			StatsCollector: &MockStatsCollector{},
		},
	}
}

// WithConfig sets the config for the mock
func (b *MockDependenciesBuilder) WithConfig(cfg *config.Config) *MockDependenciesBuilder {
	b.deps.ConfigLoader = &MockConfigLoader{Cfg: cfg}
	return b
}

// WithConfigLoader sets a custom config loader
func (b *MockDependenciesBuilder) WithConfigLoader(loader ConfigLoader) *MockDependenciesBuilder {
	b.deps.ConfigLoader = loader
	return b
}

// WithExecutor sets the command executor
func (b *MockDependenciesBuilder) WithExecutor(exec executor.CommandExecutor) *MockDependenciesBuilder {
	b.deps.Executor = exec
	return b
}

// WithStdinInput sets the answers read from stdin
func (b *MockDependenciesBuilder) WithStdinInput(lines ...string) *MockDependenciesBuilder {
	b.deps.StdinReader = input.NewAnswers(lines...)
	return b
}

// WithStats sets the snapshot returned by the stats collector
func (b *MockDependenciesBuilder) WithStats(snap *stats.Snapshot, err error) *MockDependenciesBuilder {
	b.deps.StatsCollector = &MockStatsCollector{Snap: snap, Err: err}
	return b
}

// Build returns the configured Dependencies
func (b *MockDependenciesBuilder) Build() *Dependencies {
	return b.deps
}
