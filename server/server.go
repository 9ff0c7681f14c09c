package server

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/jrsteele09/cds-portal/internal/config"
	"github.com/jrsteele09/cds-portal/internal/metrics"
	"github.com/jrsteele09/cds-portal/portal"
	"github.com/jrsteele09/cds-portal/recipes"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env        string // Environment (e.g., "DEV", "PROD")
	mux        *http.ServeMux
	routes     []string
	config     config.Config
	portals    portal.Repo
	searcher   recipes.Searcher
	recorder   metrics.Recorder
	gatherer   prometheus.Gatherer
	portalPage *template.Template
}

// New builds the HTTP surface. searcher backs the JSON recipe API; each portal controller holds
// its own browser. gatherer may be nil, in which case /metrics is not served.
func New(config config.Config, portals portal.Repo, searcher recipes.Searcher, recorder metrics.Recorder, gatherer prometheus.Gatherer) (*Server, error) {
	page, err := ParseTemplate("portal.html")
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse portal template: %w", err)
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}

	s := &Server{
		env:        config.GetEnv(),
		mux:        http.NewServeMux(),
		config:     config,
		portals:    portals,
		searcher:   searcher,
		recorder:   recorder,
		gatherer:   gatherer,
		portalPage: page,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func colouredMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colouredMethod(method), path)
}

func logError(method, path string, err error) {
	log.Error().Err(err).Msgf("[%-19s] %s", colouredMethod(method), Red+path+ResetColor)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
