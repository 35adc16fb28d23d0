package driver

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ksyq12/vhostpanel/internal/domain"
	panelerrors "github.com/ksyq12/vhostpanel/internal/errors"
	"github.com/ksyq12/vhostpanel/internal/executor"
	"github.com/ksyq12/vhostpanel/internal/logger"
)

const confSuffix = ".conf"

// reservedFiles ship with Apache and are never listed as managed sites.
var reservedFiles = map[string]bool{
	"000-default.conf": true,
	"default-ssl.conf": true,
}

// ApacheDriver implements the Driver interface for Apache2
type ApacheDriver struct {
	paths      Paths
	reloadArgv []string
	linker     Linker
	exec       executor.CommandExecutor
}

// Option configures an ApacheDriver
type Option func(*ApacheDriver)

// WithLinker sets how enabled-store entries are created
func WithLinker(l Linker) Option {
	return func(a *ApacheDriver) {
		a.linker = l
	}
}

// WithExecutor sets the command executor (for testing)
func WithExecutor(exec executor.CommandExecutor) Option {
	return func(a *ApacheDriver) {
		a.exec = exec
	}
}

// NewApache creates an Apache driver over the given stores.
// reloadArgv is run without a shell on every Reload.
func NewApache(paths Paths, reloadArgv []string, opts ...Option) *ApacheDriver {
	a := &ApacheDriver{
		paths:      paths,
		reloadArgv: reloadArgv,
		linker:     SymlinkLinker{},
		exec:       executor.NewSystemExecutor(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the driver name
func (a *ApacheDriver) Name() string {
	return "apache"
}

// Paths returns the config paths
func (a *ApacheDriver) Paths() Paths {
	return a.paths
}

// configFileName returns the config file name with .conf extension
func configFileName(domainName string) string {
	return domainName + confSuffix
}

// availablePath resolves the definition path and confirms it stays in the available store.
func (a *ApacheDriver) availablePath(domainName string) (string, error) {
	return domain.Within(a.paths.Available, configFileName(domainName))
}

// enabledPath resolves the activation entry and confirms it stays in the enabled store.
func (a *ApacheDriver) enabledPath(domainName string) (string, error) {
	return domain.Within(a.paths.Enabled, configFileName(domainName))
}

// Write writes a definition file to sites-available
func (a *ApacheDriver) Write(domainName, content string) error {
	configPath, err := a.availablePath(domainName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(a.paths.Available, 0755); err != nil {
		return panelerrors.Wrap(panelerrors.ErrCodeIO, "failed to create sites-available directory", err)
	}

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return panelerrors.WrapDomain(panelerrors.ErrCodeIO, domainName, "failed to write config file", err)
	}

	return nil
}

// Remove deletes a definition file from sites-available
func (a *ApacheDriver) Remove(domainName string) (bool, error) {
	configPath, err := a.availablePath(domainName)
	if err != nil {
		return false, err
	}

	if err := os.Remove(configPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, panelerrors.WrapDomain(panelerrors.ErrCodeIO, domainName, "failed to remove config file", err)
	}

	return true, nil
}

// Enable activates a vhost by linking it into sites-enabled
func (a *ApacheDriver) Enable(domainName string) (bool, error) {
	source, err := a.availablePath(domainName)
	if err != nil {
		return false, err
	}
	target, err := a.enabledPath(domainName)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(source); err != nil {
		if os.IsNotExist(err) {
			return false, panelerrors.NotFound(domainName)
		}
		return false, panelerrors.WrapDomain(panelerrors.ErrCodeIO, domainName, "failed to check config file", err)
	}

	if _, err := os.Lstat(target); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, panelerrors.WrapDomain(panelerrors.ErrCodeIO, domainName, "failed to check vhost status", err)
	}

	if err := os.MkdirAll(a.paths.Enabled, 0755); err != nil {
		return false, panelerrors.Wrap(panelerrors.ErrCodeIO, "failed to create sites-enabled directory", err)
	}

	if err := a.linker.Link(source, target); err != nil {
		return false, panelerrors.WrapDomain(panelerrors.ErrCodeIO, domainName, "failed to enable vhost", err)
	}

	return true, nil
}

// Disable deactivates a vhost by removing its sites-enabled entry
func (a *ApacheDriver) Disable(domainName string) (bool, error) {
	target, err := a.enabledPath(domainName)
	if err != nil {
		return false, err
	}

	info, err := os.Lstat(target)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, panelerrors.WrapDomain(panelerrors.ErrCodeIO, domainName, "failed to check vhost status", err)
	}

	if info.IsDir() {
		return false, panelerrors.WrapDomain(panelerrors.ErrCodeIO, domainName, "refusing to remove enabled entry",
			fmt.Errorf("%s is a directory", target))
	}

	if err := os.Remove(target); err != nil {
		return false, panelerrors.WrapDomain(panelerrors.ErrCodeIO, domainName, "failed to disable vhost", err)
	}

	return true, nil
}

// List returns all managed definitions in sites-available.
// A missing directory yields an empty list.
func (a *ApacheDriver) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(a.paths.Available)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, panelerrors.Wrap(panelerrors.ErrCodeIO, "failed to read sites-available", err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, confSuffix) || reservedFiles[name] {
			continue
		}

		domainName := strings.TrimSuffix(name, confSuffix)
		enabled, err := a.IsEnabled(domainName)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			Domain:  domainName,
			File:    name,
			Enabled: enabled,
		})
	}

	logger.DebugFields("scanned sites-available", logger.Fields{"dir": a.paths.Available, "sites": len(entries)})
	return entries, nil
}

// Exists checks if the definition file is present
func (a *ApacheDriver) Exists(domainName string) (bool, error) {
	configPath, err := a.availablePath(domainName)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, panelerrors.WrapDomain(panelerrors.ErrCodeIO, domainName, "failed to check config file", err)
	}
	return true, nil
}

// IsEnabled checks if a vhost is enabled.
// A dangling symlink still counts: the entry is what Apache will try to load.
func (a *ApacheDriver) IsEnabled(domainName string) (bool, error) {
	target, err := a.enabledPath(domainName)
	if err != nil {
		return false, err
	}
	_, err = os.Lstat(target)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, panelerrors.WrapDomain(panelerrors.ErrCodeIO, domainName, "failed to check vhost status", err)
	}
	return true, nil
}

// Reload runs the configured reload command
func (a *ApacheDriver) Reload(ctx context.Context) error {
	if len(a.reloadArgv) == 0 {
		return panelerrors.Wrap(panelerrors.ErrCodeReload, "no reload command configured", nil)
	}

	logger.DebugFields("reloading web server", logger.Fields{"argv": strings.Join(a.reloadArgv, " ")})
	res, err := a.exec.Execute(ctx, a.reloadArgv[0], a.reloadArgv[1:]...)
	if err != nil {
		return panelerrors.Wrap(panelerrors.ErrCodeReload, "failed to run reload command", err)
	}
	if res.ExitCode != 0 {
		return panelerrors.Wrap(panelerrors.ErrCodeReload, "reload command failed",
			fmt.Errorf("exit status %d: %s", res.ExitCode, res.Combined()))
	}
	return nil
}
