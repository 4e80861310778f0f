// Package metrics collects and exposes Prometheus metrics for the
// authentication flows.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics interface used by the service layer.
type Recorder interface {
	RecordSignIn(outcome string)
	RecordRefresh(outcome string)
	RecordProviderRejection(operation string)
}

// Collector is the Prometheus-backed Recorder implementation.
type Collector struct {
	signIns            *prometheus.CounterVec
	refreshes          *prometheus.CounterVec
	providerRejections *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with the
// given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		signIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authserver_signin_total",
			Help: "Sign-in attempts by outcome.",
		}, []string{"outcome"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authserver_refresh_total",
			Help: "Session refresh attempts by outcome.",
		}, []string{"outcome"}),
		providerRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authserver_provider_rejection_total",
			Help: "Provider rejections by operation.",
		}, []string{"operation"}),
	}

	reg.MustRegister(c.signIns, c.refreshes, c.providerRejections)
	return c
}

func (c *Collector) RecordSignIn(outcome string) {
	c.signIns.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordRefresh(outcome string) {
	c.refreshes.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordProviderRejection(operation string) {
	c.providerRejections.WithLabelValues(operation).Inc()
}

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Discard is a Recorder that drops every observation. Used in tests.
type Discard struct{}

func (Discard) RecordSignIn(string)            {}
func (Discard) RecordRefresh(string)           {}
func (Discard) RecordProviderRejection(string) {}
