package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/shlex"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	panelerrors "github.com/ksyq12/vhostpanel/internal/errors"
	"github.com/ksyq12/vhostpanel/internal/platform"
)

// Deployment modes
const (
	ModeProduction  = "production"
	ModeDevelopment = "development"
)

// Paths holds the directories the panel reads and mutates.
type Paths struct {
	Available string `yaml:"available" env:"PANEL_SITES_AVAILABLE"`
	Enabled   string `yaml:"enabled" env:"PANEL_SITES_ENABLED"`
	Logs      string `yaml:"logs" env:"PANEL_LOG_DIR"`
	WebRoot   string `yaml:"web_root" env:"PANEL_WEB_ROOT"`
}

// Config represents the application configuration
type Config struct {
	Mode           string        `yaml:"mode" env:"APP_MODE"`
	Addr           string        `yaml:"addr" env:"PANEL_ADDR"`
	SecretKey      string        `yaml:"secret_key" env:"SECRET_KEY"`
	SandboxDir     string        `yaml:"sandbox_dir" env:"PANEL_SANDBOX_DIR"`
	Paths          Paths         `yaml:"paths"`
	ReloadCommand  string        `yaml:"reload_command" env:"PANEL_RELOAD_CMD"`
	CertbotCommand string        `yaml:"certbot_command" env:"PANEL_CERTBOT_CMD"`
	ReloadTimeout  time.Duration `yaml:"reload_timeout" env:"PANEL_RELOAD_TIMEOUT"`
	CertbotTimeout time.Duration `yaml:"certbot_timeout" env:"PANEL_CERTBOT_TIMEOUT"`
	StrictReload   bool          `yaml:"strict_reload" env:"PANEL_STRICT_RELOAD"`
	LogLines       int           `yaml:"log_lines" env:"PANEL_LOG_LINES"`
	Verbose        bool          `yaml:"verbose" env:"PANEL_VERBOSE"`
	PanelName      string        `yaml:"panel_name" env:"PANEL_NAME"`
}

const (
	configDir  = ".config/vhostpanel"
	configFile = "config.yaml"

	defaultSandboxDir = "mock_fs"
	minSecretLength   = 32
	maxLogLines       = 100000
	defaultPanelName  = "vhostpanel"

	// devSecretKey only protects flash cookies of a local sandbox.
	devSecretKey = "dev-secret-key-not-for-production-use"
)

// New creates a Config with the defaults of the given mode.
// sandboxDir is only used in development mode; empty means ./mock_fs.
func New(mode, sandboxDir string) *Config {
	cfg := &Config{
		Mode:           mode,
		Addr:           ":5000",
		ReloadTimeout:  30 * time.Second,
		CertbotTimeout: 5 * time.Minute,
		LogLines:       50,
		PanelName:      defaultPanelName,
	}

	if mode == ModeProduction {
		layout := platform.DetectApacheLayout()
		cfg.Paths = Paths{
			Available: layout.Available,
			Enabled:   layout.Enabled,
			Logs:      layout.LogDir,
			WebRoot:   layout.WebRoot,
		}
		cfg.ReloadCommand = layout.ReloadCommand
		cfg.CertbotCommand = "sudo certbot --apache"
		return cfg
	}

	cfg.Mode = ModeDevelopment
	if sandboxDir == "" {
		sandboxDir = defaultSandboxDir
	}
	if abs, err := filepath.Abs(sandboxDir); err == nil {
		sandboxDir = abs
	}
	cfg.SandboxDir = sandboxDir
	cfg.SecretKey = devSecretKey
	cfg.Paths = Paths{
		Available: filepath.Join(sandboxDir, "sites-available"),
		Enabled:   filepath.Join(sandboxDir, "sites-enabled"),
		Logs:      filepath.Join(sandboxDir, "logs"),
		WebRoot:   filepath.Join(sandboxDir, "www"),
	}
	cfg.ReloadCommand = `echo "Simulating Apache Reload"`
	cfg.CertbotCommand = `echo "Simulating Certbot"`
	return cfg
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// DefaultPath returns the default config file path
func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load builds the configuration once at startup. Sources are applied in
// order of increasing precedence: mode defaults, the YAML file at path,
// dotenv files, then the process environment. A missing YAML or dotenv
// file is not an error.
func Load(path string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// godotenv never overrides variables that are already set
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, panelerrors.Wrap(panelerrors.ErrCodeConfig, "failed to load "+f, err)
		}
	}

	var data []byte
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, panelerrors.Wrap(panelerrors.ErrCodeConfig, "failed to read config", err)
		}
		data = raw
	}

	// Mode and sandbox decide the defaults, so resolve them first.
	var boot struct {
		Mode       string `yaml:"mode" env:"APP_MODE"`
		SandboxDir string `yaml:"sandbox_dir" env:"PANEL_SANDBOX_DIR"`
	}
	if err := yaml.Unmarshal(data, &boot); err != nil {
		return nil, panelerrors.Wrap(panelerrors.ErrCodeConfig, "failed to parse config", err)
	}
	if err := env.Parse(&boot); err != nil {
		return nil, panelerrors.Wrap(panelerrors.ErrCodeConfig, "failed to parse environment", err)
	}

	cfg := New(boot.Mode, boot.SandboxDir)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, panelerrors.Wrap(panelerrors.ErrCodeConfig, "failed to parse config", err)
	}
	if err := env.Parse(cfg); err != nil {
		return nil, panelerrors.Wrap(panelerrors.ErrCodeConfig, "failed to parse environment", err)
	}

	if cfg.Mode == "" {
		cfg.Mode = ModeDevelopment
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the merged configuration for values no component can work with.
func (c *Config) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return panelerrors.Wrap(panelerrors.ErrCodeConfig, "invalid configuration", fmt.Errorf(format, args...))
	}

	if c.Mode != ModeProduction && c.Mode != ModeDevelopment {
		return invalid("unknown mode %q (want %s or %s)", c.Mode, ModeProduction, ModeDevelopment)
	}
	if c.Addr == "" {
		return invalid("addr cannot be empty")
	}
	for name, p := range map[string]string{
		"paths.available": c.Paths.Available,
		"paths.enabled":   c.Paths.Enabled,
		"paths.logs":      c.Paths.Logs,
		"paths.web_root":  c.Paths.WebRoot,
	} {
		if p == "" {
			return invalid("%s cannot be empty", name)
		}
	}
	if _, err := c.ReloadArgv(); err != nil {
		return invalid("reload_command: %v", err)
	}
	if _, err := c.CertbotArgv(); err != nil {
		return invalid("certbot_command: %v", err)
	}
	if c.ReloadTimeout <= 0 || c.CertbotTimeout <= 0 {
		return invalid("timeouts must be > 0")
	}
	if c.LogLines <= 0 || c.LogLines > maxLogLines {
		return invalid("log_lines must be between 1 and %d", maxLogLines)
	}
	return nil
}

// RequireSecret fails unless a session secret long enough for cookie
// encryption is configured. Only the HTTP front end needs one.
func (c *Config) RequireSecret() error {
	if len(c.SecretKey) < minSecretLength {
		return panelerrors.Wrap(panelerrors.ErrCodeConfig, "invalid configuration",
			fmt.Errorf("secret_key must be at least %d characters", minSecretLength))
	}
	return nil
}

// IsProduction reports whether real system paths and commands are in use.
func (c *Config) IsProduction() bool {
	return c.Mode == ModeProduction
}

// ReloadArgv returns the reload command split into an argument vector.
func (c *Config) ReloadArgv() ([]string, error) {
	return splitCommand(c.ReloadCommand)
}

// CertbotArgv returns the base certificate client command as an argument vector.
func (c *Config) CertbotArgv() ([]string, error) {
	return splitCommand(c.CertbotCommand)
}

func splitCommand(command string) ([]string, error) {
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, err
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("command cannot be empty")
	}
	return argv, nil
}

// EnsureDirs creates the sandbox directories in development mode.
// Production directories belong to the web server and are never created here.
func (c *Config) EnsureDirs() error {
	if c.IsProduction() {
		return nil
	}
	for _, dir := range []string{c.Paths.Available, c.Paths.Enabled, c.Paths.Logs, c.Paths.WebRoot} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return panelerrors.Wrap(panelerrors.ErrCodeIO, "failed to create "+dir, err)
		}
	}
	return nil
}

// Save writes the config to path as YAML
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// May contain the secret key.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
