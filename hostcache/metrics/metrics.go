// Package metrics exposes the demo host's cache counters, grounded on the
// teacher's Registerer-injection pattern (pkg/kache/kache.go, pkg/server/server.go):
// the caller supplies the prometheus.Registerer so the host, not this
// package, owns the registry's lifetime.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the counters tracking policy outcomes.
type Collector struct {
	Fresh       prometheus.Counter
	Stale       prometheus.Counter
	Revalidated prometheus.Counter
	Bypass      prometheus.Counter
}

// NewCollector registers and returns a Collector's counters against reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		Fresh: factory.NewCounter(prometheus.CounterOpts{
			Name: "cache_fresh_total",
			Help: "Total number of BeforeRequest evaluations that returned Fresh.",
		}),
		Stale: factory.NewCounter(prometheus.CounterOpts{
			Name: "cache_stale_total",
			Help: "Total number of BeforeRequest evaluations that returned Stale.",
		}),
		Revalidated: factory.NewCounter(prometheus.CounterOpts{
			Name: "cache_revalidated_total",
			Help: "Total number of revalidation exchanges resolved as NotModified.",
		}),
		Bypass: factory.NewCounter(prometheus.CounterOpts{
			Name: "cache_bypass_total",
			Help: "Total number of requests that bypassed the cache entirely (excluded path or non-cacheable method).",
		}),
	}
}

// ObserveFresh records a BeforeRequest verdict of Fresh.
func (c *Collector) ObserveFresh() {
	c.Fresh.Inc()
}

// ObserveStale records a BeforeRequest verdict of Stale.
func (c *Collector) ObserveStale() {
	c.Stale.Inc()
}

// ObserveRevalidated records an AfterResponse outcome of NotModified.
func (c *Collector) ObserveRevalidated() {
	c.Revalidated.Inc()
}

// ObserveBypass records a request that never reached the policy engine.
func (c *Collector) ObserveBypass() {
	c.Bypass.Inc()
}
