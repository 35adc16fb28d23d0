package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ksyq12/vhostpanel/internal/config"
	"github.com/ksyq12/vhostpanel/internal/domain"
	"github.com/ksyq12/vhostpanel/internal/driver"
	panelerrors "github.com/ksyq12/vhostpanel/internal/errors"
	"github.com/ksyq12/vhostpanel/internal/executor"
	"github.com/ksyq12/vhostpanel/internal/logger"
	"github.com/ksyq12/vhostpanel/internal/platform"
	"github.com/ksyq12/vhostpanel/internal/template"
)

// IndexFile is the placeholder document written into every new document root.
const IndexFile = "index.html"

const defaultReloadTimeout = 30 * time.Second

// Actions reported in Result.Action.
const (
	ActionCreate  = "create"
	ActionEnable  = "enable"
	ActionDisable = "disable"
	ActionDelete  = "delete"
)

// Site is one managed definition as seen in the stores.
type Site struct {
	Domain  string `json:"domain"`
	File    string `json:"file"`
	Enabled bool   `json:"enabled"`
}

// ReloadResult is the outcome of asking the web server to reload.
type ReloadResult struct {
	OK  bool  `json:"ok"`
	Err error `json:"-"`
}

// Result describes what a mutating operation did.
type Result struct {
	Domain  string        `json:"domain"`
	Action  string        `json:"action"`
	Message string        `json:"message"`
	Changed bool          `json:"changed"`
	Reload  *ReloadResult `json:"reload,omitempty"`
}

// ReloadFailed reports whether a reload was attempted and failed.
func (r Result) ReloadFailed() bool {
	return r.Reload != nil && !r.Reload.OK
}

// Repository creates, toggles, lists and deletes sites.
type Repository struct {
	drv           driver.Driver
	webRoot       string
	panelName     string
	reloadTimeout time.Duration
	strictReload  bool
}

// Option configures a Repository
type Option func(*Repository)

// WithReloadTimeout bounds each reload command
func WithReloadTimeout(d time.Duration) Option {
	return func(r *Repository) {
		if d > 0 {
			r.reloadTimeout = d
		}
	}
}

// WithStrictReload makes a failed reload fail the operation that triggered it.
// The file-system change is kept either way.
func WithStrictReload(strict bool) Option {
	return func(r *Repository) {
		r.strictReload = strict
	}
}

// WithPanelName sets the name shown in placeholder index pages
func WithPanelName(name string) Option {
	return func(r *Repository) {
		if name != "" {
			r.panelName = name
		}
	}
}

// NewRepository creates a repository over drv with document roots under webRoot.
func NewRepository(drv driver.Driver, webRoot string, opts ...Option) *Repository {
	r := &Repository{
		drv:           drv,
		webRoot:       webRoot,
		panelName:     template.DefaultPanelName,
		reloadTimeout: defaultReloadTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open builds the Apache driver described by cfg and wraps it in a Repository.
// The symlink capability is probed here, once.
func Open(cfg *config.Config, exec executor.CommandExecutor) (*Repository, error) {
	reloadArgv, err := cfg.ReloadArgv()
	if err != nil {
		return nil, err
	}

	probeDir := cfg.Paths.Enabled
	if info, err := os.Stat(probeDir); err != nil || !info.IsDir() {
		probeDir = ""
	}
	linker := driver.NewLinker(platform.SupportsSymlink(probeDir))

	drv := driver.NewApache(driver.Paths{
		Available: cfg.Paths.Available,
		Enabled:   cfg.Paths.Enabled,
	}, reloadArgv, driver.WithLinker(linker), driver.WithExecutor(exec))

	logger.DebugFields("site repository ready", logger.Fields{
		"available": cfg.Paths.Available,
		"enabled":   cfg.Paths.Enabled,
		"web_root":  cfg.Paths.WebRoot,
		"linker":    linker.Name(),
	})

	return NewRepository(drv, cfg.Paths.WebRoot,
		WithReloadTimeout(cfg.ReloadTimeout),
		WithStrictReload(cfg.StrictReload),
		WithPanelName(cfg.PanelName),
	), nil
}

// WebRoot returns the directory holding document roots
func (r *Repository) WebRoot() string {
	return r.webRoot
}

// DocumentRoot returns the confined document root for a valid domain.
func (r *Repository) DocumentRoot(domainName string) (string, error) {
	if err := domain.Validate(domainName); err != nil {
		return "", err
	}
	return domain.Within(r.webRoot, domainName)
}

// List scans the available store. Sites are sorted by domain.
func (r *Repository) List() ([]Site, error) {
	entries, err := r.drv.List()
	if err != nil {
		return nil, err
	}

	sites := make([]Site, 0, len(entries))
	for _, e := range entries {
		sites = append(sites, Site{Domain: e.Domain, File: e.File, Enabled: e.Enabled})
	}
	sort.Slice(sites, func(i, j int) bool {
		return sites[i].Domain < sites[j].Domain
	})
	return sites, nil
}

// Get returns a single site, or a not-found error when it has no definition.
func (r *Repository) Get(domainName string) (Site, error) {
	if err := domain.Validate(domainName); err != nil {
		return Site{}, err
	}
	exists, err := r.drv.Exists(domainName)
	if err != nil {
		return Site{}, err
	}
	if !exists {
		return Site{}, panelerrors.NotFound(domainName)
	}
	enabled, err := r.drv.IsEnabled(domainName)
	if err != nil {
		return Site{}, err
	}
	return Site{Domain: domainName, File: domainName + ".conf", Enabled: enabled}, nil
}

// Create writes the document root, its placeholder page and the site
// definition. The new site is left disabled.
func (r *Repository) Create(ctx context.Context, domainName, email string) (Result, error) {
	if err := domain.Validate(domainName); err != nil {
		return Result{}, err
	}
	if err := domain.ValidateEmail(email); err != nil {
		return Result{}, err
	}

	docRoot, err := domain.Within(r.webRoot, domainName)
	if err != nil {
		return Result{}, err
	}

	conf, err := template.RenderVHost(template.VHostData{
		Domain:       domainName,
		Email:        email,
		DocumentRoot: docRoot,
		Port:         template.DefaultPort,
	})
	if err != nil {
		return Result{}, panelerrors.WrapDomain(panelerrors.ErrCodeInternal, domainName, "failed to render config", err)
	}
	index, err := template.RenderIndex(template.IndexData{Domain: domainName, PanelName: r.panelName})
	if err != nil {
		return Result{}, panelerrors.WrapDomain(panelerrors.ErrCodeInternal, domainName, "failed to render index page", err)
	}

	if err := os.MkdirAll(docRoot, 0755); err != nil {
		return Result{}, panelerrors.WrapDomain(panelerrors.ErrCodeIO, domainName, "failed to create document root", err)
	}
	if err := os.WriteFile(filepath.Join(docRoot, IndexFile), []byte(index), 0644); err != nil {
		return Result{}, panelerrors.WrapDomain(panelerrors.ErrCodeIO, domainName, "failed to write index page", err)
	}
	if err := r.drv.Write(domainName, conf); err != nil {
		return Result{}, err
	}

	logger.InfoFields("site created", logger.Fields{"domain": domainName, "document_root": docRoot})
	return Result{
		Domain:  domainName,
		Action:  ActionCreate,
		Message: "Domain created successfully",
		Changed: true,
	}, nil
}

// ParseAction maps the form value of a toggle request to enable/disable.
func ParseAction(action string) (bool, error) {
	switch action {
	case ActionEnable:
		return true, nil
	case ActionDisable:
		return false, nil
	default:
		return false, panelerrors.Validation(fmt.Sprintf("Invalid action %q", action))
	}
}

// Toggle enables or disables a site. Repeating the current state is not an
// error and does not reload the web server.
func (r *Repository) Toggle(ctx context.Context, domainName string, enable bool) (Result, error) {
	if err := domain.Validate(domainName); err != nil {
		return Result{}, err
	}

	exists, err := r.drv.Exists(domainName)
	if err != nil {
		return Result{}, err
	}
	if !exists {
		return Result{}, panelerrors.NotFound(domainName)
	}

	res := Result{Domain: domainName}
	if enable {
		res.Action = ActionEnable
		res.Changed, err = r.drv.Enable(domainName)
		res.Message = pick(res.Changed, "Domain enabled", "Domain already enabled")
	} else {
		res.Action = ActionDisable
		res.Changed, err = r.drv.Disable(domainName)
		res.Message = pick(res.Changed, "Domain disabled", "Domain already disabled")
	}
	if err != nil {
		return Result{}, err
	}

	logger.InfoFields("site toggled", logger.Fields{"domain": domainName, "action": res.Action, "changed": res.Changed})

	if !res.Changed {
		return res, nil
	}
	return res, r.reload(ctx, &res)
}

// Delete removes the enabled entry, then the definition, then the document
// root. A failing step aborts the rest; earlier steps are not rolled back.
func (r *Repository) Delete(ctx context.Context, domainName string) (Result, error) {
	if err := domain.Validate(domainName); err != nil {
		return Result{}, err
	}

	docRoot, err := domain.Within(r.webRoot, domainName)
	if err != nil {
		return Result{}, err
	}

	disabled, err := r.drv.Disable(domainName)
	if err != nil {
		return Result{}, err
	}
	removed, err := r.drv.Remove(domainName)
	if err != nil {
		return Result{}, err
	}

	contentRemoved := false
	if _, err := os.Lstat(docRoot); err == nil {
		if err := os.RemoveAll(docRoot); err != nil {
			return Result{}, panelerrors.WrapDomain(panelerrors.ErrCodeIO, domainName, "failed to remove document root", err)
		}
		contentRemoved = true
	} else if !os.IsNotExist(err) {
		return Result{}, panelerrors.WrapDomain(panelerrors.ErrCodeIO, domainName, "failed to check document root", err)
	}

	logger.InfoFields("site deleted", logger.Fields{
		"domain":          domainName,
		"was_enabled":     disabled,
		"config_removed":  removed,
		"content_removed": contentRemoved,
	})

	res := Result{
		Domain:  domainName,
		Action:  ActionDelete,
		Message: "Domain deleted",
		Changed: disabled || removed || contentRemoved,
	}
	return res, r.reload(ctx, &res)
}

// reload runs the driver reload and records its outcome on res.
func (r *Repository) reload(ctx context.Context, res *Result) error {
	ctx, cancel := context.WithTimeout(ctx, r.reloadTimeout)
	defer cancel()

	err := r.drv.Reload(ctx)
	res.Reload = &ReloadResult{OK: err == nil, Err: err}
	if err == nil {
		return nil
	}

	logger.WarnFields("web server reload failed", logger.Fields{"domain": res.Domain, "action": res.Action, "error": err.Error()})
	if r.strictReload {
		return panelerrors.WrapDomain(panelerrors.ErrCodeReload, res.Domain, "web server reload failed", err)
	}
	return nil
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
