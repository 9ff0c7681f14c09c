// Package metrics collects and exposes Prometheus metrics for the portal.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the controller and handlers report into.
type Recorder interface {
	RecordRender(screen string)
	RecordTransition(to string)
	RecordLogin(mode, outcome string)
	RecordSearch(outcome string)
}

// Collector records portal events into Prometheus metrics.
type Collector struct {
	renders     *prometheus.CounterVec
	transitions *prometheus.CounterVec
	logins      *prometheus.CounterVec
	searches    *prometheus.CounterVec
}

var _ Recorder = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cds_portal_renders_total",
			Help: "Screens rendered, by screen",
		}, []string{"screen"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cds_portal_view_transitions_total",
			Help: "View transitions requested, by target view",
		}, []string{"view"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cds_portal_login_attempts_total",
			Help: "Login attempts, by mode (form, oidc) and outcome",
		}, []string{"mode", "outcome"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cds_portal_recipe_searches_total",
			Help: "Recipe searches, by outcome",
		}, []string{"outcome"}),
	}

	reg.MustRegister(c.renders, c.transitions, c.logins, c.searches)
	return c
}

func (c *Collector) RecordRender(screen string) {
	c.renders.WithLabelValues(screen).Inc()
}

func (c *Collector) RecordTransition(to string) {
	c.transitions.WithLabelValues(to).Inc()
}

func (c *Collector) RecordLogin(mode, outcome string) {
	c.logins.WithLabelValues(mode, outcome).Inc()
}

func (c *Collector) RecordSearch(outcome string) {
	c.searches.WithLabelValues(outcome).Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything.
type Nop struct{}

var _ Recorder = Nop{}

func (Nop) RecordRender(string)        {}
func (Nop) RecordTransition(string)    {}
func (Nop) RecordLogin(string, string) {}
func (Nop) RecordSearch(string)        {}
