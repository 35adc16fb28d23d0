package httpserver

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/ksyq12/vhostpanel/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

type pageSet map[string]*template.Template

var pageNames = []string{"dashboard", "domains", "logs", "ssl"}

func loadPages() (pageSet, error) {
	set := make(pageSet, len(pageNames))
	for _, name := range pageNames {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, err
		}
		set[name] = t
	}
	return set, nil
}

type pageData struct {
	Title     string
	Active    string
	PanelName string
	Flashes   []Flash
	Data      any
}

// render executes a page into a buffer first so a template error never
// leaves a half-written response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, page, title string, flashes []Flash, data any) {
	t, ok := s.pages[page]
	if !ok {
		http.Error(w, "page not found", http.StatusInternalServerError)
		return
	}

	pd := pageData{
		Title:     title,
		Active:    page,
		PanelName: s.panelName,
		Flashes:   append(s.takeFlashes(w, r), flashes...),
		Data:      data,
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", pd); err != nil {
		logger.ErrorFields("template render failed", logger.Fields{"page": page, "error": err.Error()})
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
