package httpserver

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/foundation/core/cookie"

	"github.com/ksyq12/vhostpanel/internal/logger"
)

const flashKey = "messages"

// Flash categories, matching the page styles.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashWarning = "warning"
)

// Flash is a one-time status message shown on the next page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// redirect stores flashes in an encrypted cookie and sends the browser to path.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, path string, flashes ...Flash) {
	if len(flashes) > 0 {
		if err := s.cookies.SetFlash(w, r, flashKey, flashes); err != nil {
			logger.WarnFields("failed to set flash", logger.Fields{"error": err.Error()})
		}
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// takeFlashes reads and clears pending flashes.
func (s *Server) takeFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	var flashes []Flash
	if err := s.cookies.GetFlash(w, r, flashKey, &flashes); err != nil {
		if !errors.Is(err, cookie.ErrCookieNotFound) {
			logger.DebugFields("discarding unreadable flash", logger.Fields{"error": err.Error()})
			s.cookies.Delete(w, "__flash_"+flashKey)
		}
		return nil
	}
	return flashes
}
