package server

import (
	"net/http"
	"net/url"

	perrors "github.com/jrsteele09/cds-portal/internal/errors"
	"github.com/jrsteele09/cds-portal/portal"
	"github.com/rs/zerolog/log"
)

// portalSessionCookieName identifies the browser's portal controller
const portalSessionCookieName = "portalSessionId"

func (s *Server) SetPortalSessionCookie(w http.ResponseWriter, sessionID string, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     portalSessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.config.GetCookieSecure() || getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.config.GetMaxSessionAge().Seconds()),
	})
}

// controllerFor returns the browser's controller, starting a new session when the cookie is
// missing or no longer known.
func (s *Server) controllerFor(w http.ResponseWriter, r *http.Request) (*portal.Controller, error) {
	if cookie, err := r.Cookie(portalSessionCookieName); err == nil && cookie.Value != "" {
		c, err := s.portals.Get(cookie.Value)
		if err == nil {
			s.SetPortalSessionCookie(w, c.ID(), r)
			return c, nil
		}
		if !perrors.Is(err, perrors.ErrSessionNotFound) {
			return nil, err
		}
	}

	c, err := s.portals.Create()
	if err != nil {
		return nil, perrors.Wrapf(err, "[Server controllerFor] create session")
	}
	log.Debug().Str("session", c.ID()).Msg("Started portal session")
	s.SetPortalSessionCookie(w, c.ID(), r)
	return c, nil
}

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectWithError helper for htmx-aware error redirects
func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string) {
	fullPath := path + "?error=" + url.QueryEscape(errorMsg)

	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", fullPath)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, fullPath, http.StatusSeeOther)
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
