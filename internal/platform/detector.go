// Package platform provides platform-specific Apache layout detection and
// file-system capability probes.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ApacheLayout contains the production paths and reload command for an Apache install.
type ApacheLayout struct {
	Name          string
	Available     string
	Enabled       string
	LogDir        string
	WebRoot       string
	ReloadCommand string
}

var (
	debianLayout = ApacheLayout{
		Name:          "debian",
		Available:     "/etc/apache2/sites-available",
		Enabled:       "/etc/apache2/sites-enabled",
		LogDir:        "/var/log/apache2",
		WebRoot:       "/var/www/html",
		ReloadCommand: "sudo systemctl reload apache2",
	}

	rhelLayout = ApacheLayout{
		Name:          "rhel",
		Available:     "/etc/httpd/sites-available",
		Enabled:       "/etc/httpd/sites-enabled",
		LogDir:        "/var/log/httpd",
		WebRoot:       "/var/www/html",
		ReloadCommand: "sudo systemctl reload httpd",
	}
)

// DetectApacheLayout returns the Apache layout of the running host.
// Debian/Ubuntu is preferred and is also the fallback when neither is found.
func DetectApacheLayout() ApacheLayout {
	return detectApacheLayout(pathExists)
}

func detectApacheLayout(exists func(string) bool) ApacheLayout {
	if exists("/etc/apache2") {
		return debianLayout
	}
	if exists("/etc/httpd") {
		return rhelLayout
	}
	return debianLayout
}

// SupportsSymlink reports whether symbolic links can be created under dir.
// An empty dir probes the system temp directory. The probe leaves nothing behind.
func SupportsSymlink(dir string) bool {
	if dir == "" {
		dir = os.TempDir()
	}

	probeDir, err := os.MkdirTemp(dir, ".symlink-probe-")
	if err != nil {
		return false
	}
	defer func() {
		_ = os.RemoveAll(probeDir)
	}()

	target := filepath.Join(probeDir, "target")
	if err := os.WriteFile(target, nil, 0644); err != nil {
		return false
	}

	return os.Symlink(target, filepath.Join(probeDir, "link")) == nil
}

// pathExists checks if a path exists on the filesystem.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Platform returns a string describing the current platform.
func Platform() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}
