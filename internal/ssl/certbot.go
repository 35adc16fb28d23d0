package ssl

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/ksyq12/vhostpanel/internal/domain"
	"github.com/ksyq12/vhostpanel/internal/executor"
	"github.com/ksyq12/vhostpanel/internal/logger"
)

// Cert represents an SSL certificate
type Cert struct {
	Domain   string `json:"domain"`
	CertPath string `json:"cert_path"`
	KeyPath  string `json:"key_path"`
}

// letsencryptDir is the base directory for Let's Encrypt certificates
const letsencryptDir = "/etc/letsencrypt/live"

const defaultTimeout = 5 * time.Minute

// Installer obtains certificates by running certbot with the Apache plugin.
type Installer struct {
	base    []string
	timeout time.Duration
	exec    executor.CommandExecutor
}

// Option configures an Installer
type Option func(*Installer)

// WithExecutor sets the command executor (for testing)
func WithExecutor(exec executor.CommandExecutor) Option {
	return func(i *Installer) {
		i.exec = exec
	}
}

// WithTimeout bounds a single certbot run
func WithTimeout(d time.Duration) Option {
	return func(i *Installer) {
		if d > 0 {
			i.timeout = d
		}
	}
}

// NewInstaller creates an installer. base is the tokenized certbot command,
// for example ["sudo", "certbot", "--apache"].
func NewInstaller(base []string, opts ...Option) *Installer {
	i := &Installer{
		base:    append([]string(nil), base...),
		timeout: defaultTimeout,
		exec:    executor.NewSystemExecutor(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Args returns the full argument vector used for domain and email.
func (i *Installer) Args(domainName, email string) []string {
	args := append([]string(nil), i.base...)
	return append(args,
		"-d", domainName,
		"--non-interactive",
		"--agree-tos",
		"-m", email,
		"--redirect",
	)
}

// Install runs certbot for domainName and reports whether it succeeded along
// with a message for the operator: certbot's stdout on success, its stderr on
// failure, or the launch error when certbot could not be started.
func (i *Installer) Install(ctx context.Context, domainName, email string) (bool, string) {
	if err := domain.Validate(domainName); err != nil {
		return false, err.Error()
	}
	if err := domain.ValidateEmail(email); err != nil {
		return false, err.Error()
	}
	if len(i.base) == 0 {
		return false, "System Error: no certbot command configured"
	}

	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	args := i.Args(domainName, email)
	logger.DebugFields("running certbot", logger.Fields{"argv": strings.Join(args, " ")})

	res, err := i.exec.Execute(ctx, args[0], args[1:]...)
	if err != nil {
		logger.ErrorFields("certbot could not run", logger.Fields{"domain": domainName, "error": err.Error()})
		return false, "System Error: " + err.Error()
	}
	if res.ExitCode != 0 {
		logger.WarnFields("certbot failed", logger.Fields{"domain": domainName, "exit_code": res.ExitCode})
		return false, "SSL Installation Failed:\n" + res.Stderr
	}

	logger.InfoFields("certificate installed", logger.Fields{"domain": domainName})
	return true, "SSL Installed successfully!\n" + res.Stdout
}

// Binary returns the certbot executable named in the base command,
// skipping a leading sudo.
func (i *Installer) Binary() string {
	for idx, tok := range i.base {
		if idx == 0 && tok == "sudo" {
			continue
		}
		if strings.HasPrefix(tok, "-") {
			continue
		}
		return tok
	}
	return ""
}

// IsInstalled checks if the certbot executable can be found on PATH
func (i *Installer) IsInstalled() bool {
	bin := i.Binary()
	if bin == "" {
		return false
	}
	_, err := i.exec.LookPath(bin)
	return err == nil
}

// GetCertPaths returns the certificate paths for a domain
func GetCertPaths(domainName string) *Cert {
	return &Cert{
		Domain:   domainName,
		CertPath: filepath.Join(letsencryptDir, domainName, "fullchain.pem"),
		KeyPath:  filepath.Join(letsencryptDir, domainName, "privkey.pem"),
	}
}
