package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	panelerrors "github.com/ksyq12/vhostpanel/internal/errors"
)

var panelEnvVars = []string{
	"APP_MODE", "SECRET_KEY", "PANEL_ADDR", "PANEL_SANDBOX_DIR",
	"PANEL_SITES_AVAILABLE", "PANEL_SITES_ENABLED", "PANEL_LOG_DIR", "PANEL_WEB_ROOT",
	"PANEL_RELOAD_CMD", "PANEL_CERTBOT_CMD", "PANEL_RELOAD_TIMEOUT", "PANEL_CERTBOT_TIMEOUT",
	"PANEL_STRICT_RELOAD", "PANEL_LOG_LINES", "PANEL_VERBOSE", "PANEL_NAME",
}

// clearEnv blanks every variable Load reads; empty values are ignored by the parser.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range panelEnvVars {
		t.Setenv(k, "")
	}
}

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestNew(t *testing.T) {
	t.Run("development", func(t *testing.T) {
		sandbox := t.TempDir()
		cfg := New(ModeDevelopment, sandbox)

		if cfg.IsProduction() {
			t.Error("development config reports production")
		}
		if cfg.Paths.Available != filepath.Join(sandbox, "sites-available") {
			t.Errorf("unexpected available path %s", cfg.Paths.Available)
		}
		if cfg.Paths.WebRoot != filepath.Join(sandbox, "www") {
			t.Errorf("unexpected web root %s", cfg.Paths.WebRoot)
		}
		if !strings.HasPrefix(cfg.ReloadCommand, "echo") || !strings.HasPrefix(cfg.CertbotCommand, "echo") {
			t.Error("development commands should be simulated")
		}
		if cfg.LogLines != 50 {
			t.Errorf("expected 50 log lines, got %d", cfg.LogLines)
		}
		if err := cfg.RequireSecret(); err != nil {
			t.Errorf("development secret should be usable: %v", err)
		}
	})

	t.Run("unknown mode falls back to development", func(t *testing.T) {
		cfg := New("", "")
		if cfg.Mode != ModeDevelopment {
			t.Errorf("expected development, got %s", cfg.Mode)
		}
		if !filepath.IsAbs(cfg.SandboxDir) {
			t.Errorf("sandbox dir should be absolute, got %s", cfg.SandboxDir)
		}
	})

	t.Run("production", func(t *testing.T) {
		cfg := New(ModeProduction, "")
		if !cfg.IsProduction() {
			t.Error("expected production")
		}
		if cfg.CertbotCommand != "sudo certbot --apache" {
			t.Errorf("unexpected certbot command %q", cfg.CertbotCommand)
		}
		if cfg.SecretKey != "" {
			t.Error("production must not ship a default secret")
		}
		if err := cfg.RequireSecret(); err == nil {
			t.Error("expected missing secret to be rejected")
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		clearEnv(t)
		sandbox := t.TempDir()
		t.Setenv("PANEL_SANDBOX_DIR", sandbox)

		cfg, err := Load(filepath.Join(sandbox, "nope.yaml"), noEnvFile(t))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Mode != ModeDevelopment {
			t.Errorf("expected development mode, got %s", cfg.Mode)
		}
		if cfg.Paths.Enabled != filepath.Join(sandbox, "sites-enabled") {
			t.Errorf("unexpected enabled path %s", cfg.Paths.Enabled)
		}
		if cfg.PanelName != "vhostpanel" {
			t.Errorf("panel name = %q, want vhostpanel", cfg.PanelName)
		}
	})

	t.Run("yaml overrides defaults", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := `
mode: development
sandbox_dir: ` + dir + `
addr: 127.0.0.1:9000
certbot_timeout: 90s
strict_reload: true
paths:
  web_root: ` + filepath.Join(dir, "public") + `
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(path, noEnvFile(t))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Addr != "127.0.0.1:9000" {
			t.Errorf("addr = %s", cfg.Addr)
		}
		if cfg.CertbotTimeout != 90*time.Second {
			t.Errorf("certbot timeout = %v", cfg.CertbotTimeout)
		}
		if !cfg.StrictReload {
			t.Error("strict_reload should be true")
		}
		if cfg.Paths.WebRoot != filepath.Join(dir, "public") {
			t.Errorf("web root = %s", cfg.Paths.WebRoot)
		}
		// Not set in the file, so the sandbox default stays.
		if cfg.Paths.Available != filepath.Join(dir, "sites-available") {
			t.Errorf("available = %s", cfg.Paths.Available)
		}
	})

	t.Run("environment overrides yaml", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(path, []byte("addr: :7000\nlog_lines: 10\n"), 0644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("PANEL_SANDBOX_DIR", dir)
		t.Setenv("PANEL_ADDR", ":8081")
		t.Setenv("PANEL_RELOAD_CMD", "apache2ctl graceful")
		t.Setenv("PANEL_NAME", "Acme Hosting")

		cfg, err := Load(path, noEnvFile(t))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Addr != ":8081" {
			t.Errorf("addr = %s, want :8081", cfg.Addr)
		}
		if cfg.LogLines != 10 {
			t.Errorf("log lines = %d, want 10", cfg.LogLines)
		}
		if cfg.PanelName != "Acme Hosting" {
			t.Errorf("panel name = %q", cfg.PanelName)
		}
		argv, err := cfg.ReloadArgv()
		if err != nil {
			t.Fatal(err)
		}
		if len(argv) != 2 || argv[0] != "apache2ctl" || argv[1] != "graceful" {
			t.Errorf("reload argv = %v", argv)
		}
	})

	t.Run("dotenv file", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		envFile := filepath.Join(dir, ".env")
		if err := os.WriteFile(envFile, []byte("PANEL_SANDBOX_DIR="+dir+"\nPANEL_LOG_LINES=25\n"), 0644); err != nil {
			t.Fatal(err)
		}
		// godotenv sets real process variables; blank them again afterwards.
		t.Cleanup(func() {
			os.Unsetenv("PANEL_LOG_LINES")
			os.Unsetenv("PANEL_SANDBOX_DIR")
		})
		os.Unsetenv("PANEL_LOG_LINES")
		os.Unsetenv("PANEL_SANDBOX_DIR")

		cfg, err := Load("", envFile)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.LogLines != 25 {
			t.Errorf("log lines = %d, want 25", cfg.LogLines)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("mode: [unclosed"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path, noEnvFile(t)); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("unknown mode rejected", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_MODE", "staging")
		t.Setenv("PANEL_SANDBOX_DIR", t.TempDir())
		_, err := Load("", noEnvFile(t))
		if !panelerrors.Is(err, panelerrors.ErrConfigInvalid) {
			t.Errorf("expected config error, got %v", err)
		}
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config { return New(ModeDevelopment, t.TempDir()) }

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }},
		{"empty web root", func(c *Config) { c.Paths.WebRoot = "" }},
		{"empty reload command", func(c *Config) { c.ReloadCommand = "   " }},
		{"unterminated quote", func(c *Config) { c.CertbotCommand = `certbot "--apache` }},
		{"zero timeout", func(c *Config) { c.CertbotTimeout = 0 }},
		{"zero log lines", func(c *Config) { c.LogLines = 0 }},
		{"huge log lines", func(c *Config) { c.LogLines = 1_000_000 }},
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCertbotArgv(t *testing.T) {
	cfg := New(ModeProduction, "")
	argv, err := cfg.CertbotArgv()
	if err != nil {
		t.Fatalf("CertbotArgv failed: %v", err)
	}
	want := []string{"sudo", "certbot", "--apache"}
	if strings.Join(argv, " ") != strings.Join(want, " ") {
		t.Errorf("argv = %v, want %v", argv, want)
	}

	cfg.CertbotCommand = `echo "Simulating Certbot"`
	argv, _ = cfg.CertbotArgv()
	if len(argv) != 2 || argv[1] != "Simulating Certbot" {
		t.Errorf("quoted argument not preserved: %v", argv)
	}
}

func TestEnsureDirs(t *testing.T) {
	sandbox := filepath.Join(t.TempDir(), "mock_fs")
	cfg := New(ModeDevelopment, sandbox)

	if err := cfg.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.Available, cfg.Paths.Enabled, cfg.Paths.Logs, cfg.Paths.WebRoot} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("directory %s was not created", dir)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := New(ModeDevelopment, dir)
	cfg.Addr = "127.0.0.1:5050"
	cfg.StrictReload = true

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := Load(path, noEnvFile(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Addr != cfg.Addr || !loaded.StrictReload {
		t.Errorf("round trip lost values: %+v", loaded)
	}
	if loaded.ReloadTimeout != cfg.ReloadTimeout {
		t.Errorf("reload timeout = %v, want %v", loaded.ReloadTimeout, cfg.ReloadTimeout)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath failed: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join(".config", "vhostpanel", "config.yaml")) {
		t.Errorf("unexpected path %s", path)
	}
}
