package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"

	"github.com/ksyq12/vhostpanel/internal/config"
	"github.com/ksyq12/vhostpanel/internal/executor"
	"github.com/ksyq12/vhostpanel/internal/logger"
	"github.com/ksyq12/vhostpanel/internal/output"
)

func init() {
	color.NoColor = true
}

// sandbox is a development config rooted in a temp dir with commands mocked out
type sandbox struct {
	dir  string
	cfg  *config.Config
	exec *executor.MockExecutor
	out  *bytes.Buffer
}

func newSandbox(t *testing.T) *sandbox {
	t.Helper()

	dir := t.TempDir()
	sb := &sandbox{
		dir:  dir,
		cfg:  config.New(config.ModeDevelopment, dir),
		exec: &executor.MockExecutor{},
		out:  &bytes.Buffer{},
	}

	oldDeps := deps
	deps = NewMockDeps(dir).WithConfig(sb.cfg).WithExecutor(sb.exec).Build()
	output.SetWriter(sb.out)
	logger.SetOutput(io.Discard)

	t.Cleanup(func() {
		deps = oldDeps
		output.SetWriter(nil)
		logger.SetOutput(nil)
		jsonOutput = false
		configPath = ""
		createEmail = ""
		forceDelete = false
		sslEmail = ""
		logsAccess, logsError, logsLines = false, false, 0
		serveAddr = ""
		configInitForce, configInitMode = false, config.ModeDevelopment
	})
	return sb
}

func (sb *sandbox) available(domain string) string {
	return filepath.Join(sb.cfg.Paths.Available, domain+".conf")
}

func (sb *sandbox) enabled(domain string) string {
	return filepath.Join(sb.cfg.Paths.Enabled, domain+".conf")
}

func (sb *sandbox) docRoot(domain string) string {
	return filepath.Join(sb.cfg.Paths.WebRoot, domain)
}

func (sb *sandbox) create(t *testing.T, domain string) {
	t.Helper()
	createEmail = "admin@" + domain
	if err := runCreate(nil, []string{domain}); err != nil {
		t.Fatalf("create %s: %v", domain, err)
	}
	sb.out.Reset()
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
