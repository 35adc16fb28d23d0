package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	panelerrors "github.com/ksyq12/vhostpanel/internal/errors"
	"github.com/ksyq12/vhostpanel/internal/executor"
)

var testReloadArgv = []string{"sudo", "systemctl", "reload", "apache2"}

func newTestDriver(t *testing.T, opts ...Option) (*ApacheDriver, string, string) {
	t.Helper()
	tempDir := t.TempDir()
	availableDir := filepath.Join(tempDir, "sites-available")
	enabledDir := filepath.Join(tempDir, "sites-enabled")

	if err := os.MkdirAll(availableDir, 0755); err != nil {
		t.Fatalf("failed to create sites-available: %v", err)
	}
	if err := os.MkdirAll(enabledDir, 0755); err != nil {
		t.Fatalf("failed to create sites-enabled: %v", err)
	}

	drv := NewApache(Paths{Available: availableDir, Enabled: enabledDir}, testReloadArgv, opts...)
	return drv, availableDir, enabledDir
}

func TestApacheDriver(t *testing.T) {
	drv, availableDir, enabledDir := newTestDriver(t)
	domain := "test.example.com"

	t.Run("Name", func(t *testing.T) {
		if drv.Name() != "apache" {
			t.Errorf("expected apache, got %s", drv.Name())
		}
	})

	t.Run("Paths", func(t *testing.T) {
		paths := drv.Paths()
		if paths.Available != availableDir {
			t.Errorf("expected %s, got %s", availableDir, paths.Available)
		}
		if paths.Enabled != enabledDir {
			t.Errorf("expected %s, got %s", enabledDir, paths.Enabled)
		}
	})

	t.Run("Write", func(t *testing.T) {
		configContent := "<VirtualHost *:80>\n    ServerName test.example.com\n</VirtualHost>"

		if err := drv.Write(domain, configContent); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		content, err := os.ReadFile(filepath.Join(availableDir, domain+".conf"))
		if err != nil {
			t.Fatalf("failed to read config: %v", err)
		}
		if string(content) != configContent {
			t.Errorf("config content mismatch")
		}
	})

	t.Run("List", func(t *testing.T) {
		entries, err := drv.List()
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		want := Entry{Domain: domain, File: domain + ".conf", Enabled: false}
		if entries[0] != want {
			t.Errorf("expected %+v, got %+v", want, entries[0])
		}
	})

	t.Run("Enable", func(t *testing.T) {
		changed, err := drv.Enable(domain)
		if err != nil {
			t.Fatalf("Enable failed: %v", err)
		}
		if !changed {
			t.Error("expected first Enable to report a change")
		}

		info, err := os.Lstat(filepath.Join(enabledDir, domain+".conf"))
		if err != nil {
			t.Fatalf("symlink not found: %v", err)
		}
		if info.Mode()&os.ModeSymlink == 0 {
			t.Error("expected symlink, got regular file")
		}
	})

	t.Run("EnableAgain", func(t *testing.T) {
		changed, err := drv.Enable(domain)
		if err != nil {
			t.Fatalf("Enable failed: %v", err)
		}
		if changed {
			t.Error("expected second Enable to report no change")
		}
	})

	t.Run("IsEnabled", func(t *testing.T) {
		enabled, err := drv.IsEnabled(domain)
		if err != nil {
			t.Fatalf("IsEnabled failed: %v", err)
		}
		if !enabled {
			t.Error("expected enabled to be true")
		}

		enabled, err = drv.IsEnabled("nonexistent.example.com")
		if err != nil {
			t.Fatalf("IsEnabled failed: %v", err)
		}
		if enabled {
			t.Error("expected enabled to be false for nonexistent domain")
		}
	})

	t.Run("Disable", func(t *testing.T) {
		changed, err := drv.Disable(domain)
		if err != nil {
			t.Fatalf("Disable failed: %v", err)
		}
		if !changed {
			t.Error("expected Disable to report a change")
		}
		if _, err := os.Lstat(filepath.Join(enabledDir, domain+".conf")); !os.IsNotExist(err) {
			t.Error("symlink should have been removed")
		}
	})

	t.Run("DisableAgain", func(t *testing.T) {
		changed, err := drv.Disable(domain)
		if err != nil {
			t.Fatalf("Disable failed: %v", err)
		}
		if changed {
			t.Error("expected second Disable to report no change")
		}
	})

	t.Run("Remove", func(t *testing.T) {
		removed, err := drv.Remove(domain)
		if err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if !removed {
			t.Error("expected Remove to report removal")
		}
		if _, err := os.Stat(filepath.Join(availableDir, domain+".conf")); !os.IsNotExist(err) {
			t.Error("config file should have been removed")
		}
	})

	t.Run("RemoveNonexistent", func(t *testing.T) {
		removed, err := drv.Remove("nonexistent.example.com")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if removed {
			t.Error("nothing should have been removed")
		}
	})
}

func TestApacheDriverEnableMissingDefinition(t *testing.T) {
	drv, _, enabledDir := newTestDriver(t)

	_, err := drv.Enable("missing.example.com")
	if !errors.Is(err, panelerrors.ErrSiteNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if _, err := os.Lstat(filepath.Join(enabledDir, "missing.example.com.conf")); !os.IsNotExist(err) {
		t.Error("no entry should be created for a missing definition")
	}
}

func TestApacheDriverCopyLinker(t *testing.T) {
	drv, availableDir, enabledDir := newTestDriver(t, WithLinker(CopyLinker{}))

	if err := os.WriteFile(filepath.Join(availableDir, "copy.example.com.conf"), []byte("config"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := drv.Enable("copy.example.com"); err != nil {
		t.Fatalf("Enable failed: %v", err)
	}

	target := filepath.Join(enabledDir, "copy.example.com.conf")
	info, err := os.Lstat(target)
	if err != nil {
		t.Fatalf("entry not found: %v", err)
	}
	if !info.Mode().IsRegular() {
		t.Error("expected regular file copy")
	}

	changed, err := drv.Disable("copy.example.com")
	if err != nil || !changed {
		t.Fatalf("Disable = %v, %v", changed, err)
	}
	if _, err := os.Lstat(target); !os.IsNotExist(err) {
		t.Error("copy should have been removed")
	}
}

func TestApacheDriverDisableRefusesDirectory(t *testing.T) {
	drv, _, enabledDir := newTestDriver(t)

	dirEntry := filepath.Join(enabledDir, "odd.example.com.conf")
	if err := os.MkdirAll(dirEntry, 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := drv.Disable("odd.example.com"); err == nil {
		t.Fatal("expected error for directory entry")
	}
	if _, err := os.Stat(dirEntry); err != nil {
		t.Error("directory entry should be left in place")
	}
}

func TestApacheDriverRejectsEscapingNames(t *testing.T) {
	drv, _, _ := newTestDriver(t)

	if err := drv.Write("../evil", "config"); !errors.Is(err, panelerrors.ErrPathTraversal) {
		t.Errorf("Write: expected traversal error, got %v", err)
	}
	if _, err := drv.Enable("../../evil"); !errors.Is(err, panelerrors.ErrPathTraversal) {
		t.Errorf("Enable: expected traversal error, got %v", err)
	}
}

func TestApacheDriverListFiltersCorrectly(t *testing.T) {
	drv, availableDir, enabledDir := newTestDriver(t)

	os.WriteFile(filepath.Join(availableDir, "example.com.conf"), []byte("config"), 0644)
	os.WriteFile(filepath.Join(availableDir, "test.org.conf"), []byte("config"), 0644)
	os.WriteFile(filepath.Join(availableDir, "000-default.conf"), []byte("config"), 0644) // reserved
	os.WriteFile(filepath.Join(availableDir, "default-ssl.conf"), []byte("config"), 0644) // reserved
	os.WriteFile(filepath.Join(availableDir, ".hidden.conf"), []byte("config"), 0644)     // hidden file
	os.WriteFile(filepath.Join(availableDir, "noextension"), []byte("config"), 0644)      // no .conf
	os.MkdirAll(filepath.Join(availableDir, "directory.conf"), 0755)                      // directory
	os.Symlink(filepath.Join(availableDir, "test.org.conf"), filepath.Join(enabledDir, "test.org.conf"))

	entries, err := drv.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(entries), entries)
	}

	got := map[string]bool{}
	for _, e := range entries {
		got[e.Domain] = e.Enabled
	}
	if enabled, ok := got["example.com"]; !ok || enabled {
		t.Errorf("example.com should be listed as disabled: %v", entries)
	}
	if enabled, ok := got["test.org"]; !ok || !enabled {
		t.Errorf("test.org should be listed as enabled: %v", entries)
	}
}

func TestApacheDriverListMissingDirectory(t *testing.T) {
	drv := NewApache(Paths{
		Available: filepath.Join(t.TempDir(), "absent"),
		Enabled:   filepath.Join(t.TempDir(), "absent-enabled"),
	}, testReloadArgv)

	entries, err := drv.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty list, got %v", entries)
	}
}

func TestApacheDriver_Reload(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mock := &executor.MockExecutor{}
		drv, _, _ := newTestDriver(t, WithExecutor(mock))

		if err := drv.Reload(context.Background()); err != nil {
			t.Errorf("Reload should succeed: %v", err)
		}

		if len(mock.Calls) != 1 {
			t.Fatalf("expected 1 call, got %d", len(mock.Calls))
		}
		call := mock.Calls[0]
		if call.Name != "sudo" || len(call.Args) != 3 || call.Args[2] != "apache2" {
			t.Errorf("expected sudo systemctl reload apache2, got %s %v", call.Name, call.Args)
		}
	})

	t.Run("non-zero exit", func(t *testing.T) {
		mock := &executor.MockExecutor{
			ExecuteFunc: func(name string, args ...string) (executor.Result, error) {
				return executor.Result{Stderr: "Job for apache2.service failed", ExitCode: 1}, nil
			},
		}
		drv, _, _ := newTestDriver(t, WithExecutor(mock))

		err := drv.Reload(context.Background())
		if !errors.Is(err, panelerrors.ErrReloadFailed) {
			t.Errorf("expected reload error, got %v", err)
		}
	})

	t.Run("launch failure", func(t *testing.T) {
		mock := &executor.MockExecutor{
			ExecuteFunc: func(name string, args ...string) (executor.Result, error) {
				return executor.Result{ExitCode: -1}, errors.New("executable file not found")
			},
		}
		drv, _, _ := newTestDriver(t, WithExecutor(mock))

		if err := drv.Reload(context.Background()); err == nil {
			t.Error("Reload should fail when the command cannot start")
		}
	})

	t.Run("no command", func(t *testing.T) {
		drv := NewApache(Paths{Available: t.TempDir(), Enabled: t.TempDir()}, nil)
		if err := drv.Reload(context.Background()); err == nil {
			t.Error("Reload should fail without a command")
		}
	})
}
