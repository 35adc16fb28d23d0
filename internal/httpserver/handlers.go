package httpserver

import (
	"fmt"
	"net/http"
	"strings"

	panelerrors "github.com/ksyq12/vhostpanel/internal/errors"
	"github.com/ksyq12/vhostpanel/internal/logger"
	"github.com/ksyq12/vhostpanel/internal/logs"
	"github.com/ksyq12/vhostpanel/internal/site"
	"github.com/ksyq12/vhostpanel/internal/stats"
)

var missingFields = Flash{Category: FlashWarning, Message: "Missing required fields"}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := s.deps.Stats.Snapshot(r.Context())
	var flashes []Flash
	if err != nil {
		flashes = append(flashes, Flash{Category: FlashWarning, Message: "Some system stats are unavailable"})
	}
	if snap == nil {
		snap = &stats.Snapshot{}
	}
	s.render(w, r, "dashboard", "Dashboard", flashes, snap)
}

func (s *Server) listSites() ([]site.Site, []Flash) {
	sites, err := s.deps.Sites.List()
	if err != nil {
		logger.LogError(err, "failed to list sites")
		return nil, []Flash{{Category: FlashDanger, Message: "Error listing domains: " + err.Error()}}
	}
	return sites, nil
}

func (s *Server) handleDomains(w http.ResponseWriter, r *http.Request) {
	sites, flashes := s.listSites()
	s.render(w, r, "domains", "Domains", flashes, sites)
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}

func (s *Server) handleAddDomain(w http.ResponseWriter, r *http.Request) {
	domainName, email := formValue(r, "domain"), formValue(r, "email")
	if domainName == "" || email == "" {
		s.redirect(w, r, "/domains", missingFields)
		return
	}

	if _, err := s.deps.Sites.Create(r.Context(), domainName, email); err != nil {
		s.redirect(w, r, "/domains", Flash{Category: flashCategory(err), Message: "Error creating domain: " + err.Error()})
		return
	}
	s.redirect(w, r, "/domains", Flash{Category: FlashSuccess, Message: fmt.Sprintf("Domain %s created successfully!", domainName)})
}

func (s *Server) handleToggleDomain(w http.ResponseWriter, r *http.Request) {
	domainName, action := formValue(r, "domain"), formValue(r, "action")
	if domainName == "" || action == "" {
		s.redirect(w, r, "/domains", missingFields)
		return
	}

	enable, err := site.ParseAction(action)
	if err != nil {
		s.redirect(w, r, "/domains", Flash{Category: FlashWarning, Message: "Error: " + err.Error()})
		return
	}

	res, err := s.deps.Sites.Toggle(r.Context(), domainName, enable)
	if err != nil {
		s.redirect(w, r, "/domains", Flash{Category: flashCategory(err), Message: "Error: " + err.Error()})
		return
	}
	s.redirect(w, r, "/domains", withReloadWarning(res, Flash{Category: FlashSuccess, Message: res.Message})...)
}

func (s *Server) handleDeleteDomain(w http.ResponseWriter, r *http.Request) {
	domainName := formValue(r, "domain")
	if domainName == "" {
		s.redirect(w, r, "/domains", missingFields)
		return
	}

	res, err := s.deps.Sites.Delete(r.Context(), domainName)
	if err != nil {
		s.redirect(w, r, "/domains", Flash{Category: flashCategory(err), Message: "Error deleting domain: " + err.Error()})
		return
	}
	s.redirect(w, r, "/domains", withReloadWarning(res, Flash{Category: FlashSuccess, Message: fmt.Sprintf("Domain %s deleted.", domainName)})...)
}

// withReloadWarning appends a warning when the change landed on disk but the
// web server did not pick it up.
func withReloadWarning(res site.Result, ok Flash) []Flash {
	flashes := []Flash{ok}
	if res.ReloadFailed() {
		flashes = append(flashes, Flash{
			Category: FlashWarning,
			Message:  "Web server reload failed: " + res.Reload.Err.Error(),
		})
	}
	return flashes
}

type logView struct {
	Title string
	Lines []string
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	views := make([]logView, 0, len(logs.Kinds))
	for _, kind := range logs.Kinds {
		views = append(views, logView{
			Title: strings.ToUpper(string(kind[:1])) + string(kind[1:]) + " log",
			Lines: s.deps.Logs.Read(kind, 0),
		})
	}
	s.render(w, r, "logs", "Logs", nil, views)
}

type sslView struct {
	Sites        []site.Site
	Output       string
	CertbotFound bool
}

func (s *Server) handleSSL(w http.ResponseWriter, r *http.Request) {
	sites, flashes := s.listSites()
	s.render(w, r, "ssl", "SSL", flashes, sslView{
		Sites:        sites,
		CertbotFound: s.deps.Certs.IsInstalled(),
	})
}

func (s *Server) handleSSLInstall(w http.ResponseWriter, r *http.Request) {
	domainName, email := formValue(r, "domain"), formValue(r, "email")

	var (
		flashes []Flash
		output  string
	)
	if domainName != "" && email != "" {
		ok, msg := s.deps.Certs.Install(r.Context(), domainName, email)
		if ok {
			flashes = append(flashes, Flash{Category: FlashSuccess, Message: "SSL Certificate installed for " + domainName})
		} else {
			flashes = append(flashes, Flash{Category: FlashWarning, Message: "SSL Installation encountered issues."})
		}
		output = msg
	}

	sites, listFlashes := s.listSites()
	s.render(w, r, "ssl", "SSL", append(flashes, listFlashes...), sslView{
		Sites:        sites,
		Output:       output,
		CertbotFound: s.deps.Certs.IsInstalled(),
	})
}

// flashCategory shows rejected input as a warning and everything else as danger.
func flashCategory(err error) string {
	if panelerrors.IsValidation(err) {
		return FlashWarning
	}
	return FlashDanger
}
