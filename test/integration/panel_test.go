//go:build integration

package integration

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ksyq12/vhostpanel/internal/config"
	"github.com/ksyq12/vhostpanel/internal/executor"
	"github.com/ksyq12/vhostpanel/internal/httpserver"
	"github.com/ksyq12/vhostpanel/internal/logs"
	"github.com/ksyq12/vhostpanel/internal/site"
	"github.com/ksyq12/vhostpanel/internal/ssl"
	"github.com/ksyq12/vhostpanel/internal/stats"
)

// newSandboxConfig returns a development config whose reload and certbot
// commands are real binaries that always succeed.
func newSandboxConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.New(config.ModeDevelopment, t.TempDir())
	cfg.ReloadCommand = "true"
	cfg.CertbotCommand = `echo "Simulating Certbot"`
	if err := cfg.EnsureDirs(); err != nil {
		t.Fatalf("Failed to create sandbox: %v", err)
	}
	return cfg
}

func TestSiteLifecycle(t *testing.T) {
	cfg := newSandboxConfig(t)
	repo, err := site.Open(cfg, executor.NewSystemExecutor())
	if err != nil {
		t.Fatalf("Failed to open repository: %v", err)
	}
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		if _, err := repo.Create(ctx, "test.local", "admin@test.local"); err != nil {
			t.Fatalf("Failed to create site: %v", err)
		}
		if _, err := os.Stat(filepath.Join(cfg.Paths.WebRoot, "test.local", site.IndexFile)); err != nil {
			t.Errorf("Index page was not created: %v", err)
		}
	})

	t.Run("Enable reloads", func(t *testing.T) {
		res, err := repo.Toggle(ctx, "test.local", true)
		if err != nil {
			t.Fatalf("Failed to enable site: %v", err)
		}
		if res.Reload == nil || !res.Reload.OK {
			t.Errorf("Expected a successful reload, got %+v", res.Reload)
		}

		s, err := repo.Get("test.local")
		if err != nil || !s.Enabled {
			t.Errorf("Site should be enabled: %+v, %v", s, err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if _, err := repo.Delete(ctx, "test.local"); err != nil {
			t.Fatalf("Failed to delete site: %v", err)
		}
		sites, err := repo.List()
		if err != nil {
			t.Fatalf("Failed to list sites: %v", err)
		}
		if len(sites) != 0 {
			t.Errorf("Expected no sites, got %+v", sites)
		}
	})

	t.Run("Failing reload", func(t *testing.T) {
		cfg.ReloadCommand = "false"
		failing, err := site.Open(cfg, executor.NewSystemExecutor())
		if err != nil {
			t.Fatalf("Failed to open repository: %v", err)
		}
		if _, err := failing.Create(ctx, "broken.local", "admin@broken.local"); err != nil {
			t.Fatalf("Failed to create site: %v", err)
		}

		res, err := failing.Toggle(ctx, "broken.local", true)
		if err != nil {
			t.Fatalf("Lenient reload should not fail: %v", err)
		}
		if !res.ReloadFailed() {
			t.Error("Expected reload failure to be reported")
		}
	})
}

func TestPanelOverHTTP(t *testing.T) {
	cfg := newSandboxConfig(t)
	exec := executor.NewSystemExecutor()

	repo, err := site.Open(cfg, exec)
	if err != nil {
		t.Fatalf("Failed to open repository: %v", err)
	}
	certbot, err := cfg.CertbotArgv()
	if err != nil {
		t.Fatalf("Bad certbot command: %v", err)
	}

	srv, err := httpserver.New(httpserver.Deps{
		Sites: repo,
		Certs: ssl.NewInstaller(certbot, ssl.WithExecutor(exec)),
		Logs:  logs.NewReader(cfg.Paths.Logs, false, cfg.LogLines),
		Stats: stats.NewCollector(stats.WithInterval(0)),
	}, cfg.SecretKey, "vhostpanel")
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar}

	post := func(path string, form url.Values) string {
		t.Helper()
		resp, err := client.PostForm(ts.URL+path, form)
		if err != nil {
			t.Fatalf("POST %s: %v", path, err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return string(body)
	}
	get := func(path string) string {
		t.Helper()
		resp, err := client.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return string(body)
	}

	body := post("/domains/add", url.Values{"domain": {"test.local"}, "email": {"admin@test.local"}})
	if !strings.Contains(body, "Domain test.local created successfully!") {
		t.Errorf("Missing create flash after redirect:\n%s", body)
	}

	body = post("/domains/toggle", url.Values{"domain": {"test.local"}, "action": {"enable"}})
	if !strings.Contains(body, "Domain enabled") {
		t.Errorf("Missing enable flash:\n%s", body)
	}

	body = post("/ssl/install", url.Values{"domain": {"test.local"}, "email": {"admin@test.local"}})
	if !strings.Contains(body, "Simulating Certbot") {
		t.Errorf("Missing certbot output:\n%s", body)
	}

	body = get("/logs")
	if !strings.Contains(body, "This is a mock access log.") {
		t.Errorf("Missing placeholder log:\n%s", body)
	}

	body = get("/")
	if strings.Contains(body, "Domain enabled") {
		t.Error("Flash should only be shown once")
	}
}
