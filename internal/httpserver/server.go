// Package httpserver is the browser front end of the panel.
//
// Every mutating route is a form POST that redirects back to a listing page
// with a flash message, except certificate installation, which renders the
// certbot output in place. There is no authentication layer; bind the
// listener to a trusted address.
package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrymomot/foundation/core/cookie"
	"github.com/dmitrymomot/foundation/core/server"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ksyq12/vhostpanel/internal/logger"
	"github.com/ksyq12/vhostpanel/internal/logs"
	"github.com/ksyq12/vhostpanel/internal/site"
	"github.com/ksyq12/vhostpanel/internal/stats"
)

const shutdownTimeout = 10 * time.Second

// Sites is the part of the site repository the front end uses.
type Sites interface {
	List() ([]site.Site, error)
	Create(ctx context.Context, domain, email string) (site.Result, error)
	Toggle(ctx context.Context, domain string, enable bool) (site.Result, error)
	Delete(ctx context.Context, domain string) (site.Result, error)
}

// Certs installs certificates.
type Certs interface {
	Install(ctx context.Context, domain, email string) (bool, string)
	IsInstalled() bool
}

// Logs reads log tails.
type Logs interface {
	Read(kind logs.Kind, maxLines int) []string
}

// Deps holds the components behind the pages.
type Deps struct {
	Sites Sites
	Certs Certs
	Logs  Logs
	Stats stats.Collector
}

// Server renders the panel pages.
type Server struct {
	deps      Deps
	cookies   *cookie.Manager
	pages     pageSet
	panelName string
	handler   http.Handler
}

// New creates the front end. secret keys the flash cookies and must be at
// least 32 characters.
func New(deps Deps, secret, panelName string) (*Server, error) {
	cookies, err := cookie.New([]string{secret})
	if err != nil {
		return nil, err
	}

	pages, err := loadPages()
	if err != nil {
		return nil, err
	}

	s := &Server{
		deps:      deps,
		cookies:   cookies,
		pages:     pages,
		panelName: panelName,
	}
	s.handler = s.routes()
	return s, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/", s.handleDashboard)

	r.Route("/domains", func(r chi.Router) {
		r.Get("/", s.handleDomains)
		r.Post("/add", s.handleAddDomain)
		r.Post("/toggle", s.handleToggleDomain)
		r.Post("/delete", s.handleDeleteDomain)
	})

	r.Get("/logs", s.handleLogs)
	r.Get("/ssl", s.handleSSL)
	r.Post("/ssl/install", s.handleSSLInstall)

	return r
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := server.New(addr,
		server.WithLogger(logger.Slog()),
		server.WithShutdownTimeout(shutdownTimeout),
	)
	logger.InfoFields("panel listening", logger.Fields{"addr": addr})
	return srv.Run(ctx, s.handler)()
}
