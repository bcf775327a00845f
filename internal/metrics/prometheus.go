package metrics

import (
	"github.com/icnsim/icnsim/internal/network"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector mirrors CacheHitRatioCollector, LatencyCollector, and
// OverheadCollector as gauges on a dedicated registry, for long-running
// parameter sweeps that want to scrape progress rather than wait for a
// final Results() snapshot.
type PrometheusCollector struct {
	BaseCollector
	registry *prometheus.Registry

	hitRatio  *prometheus.GaugeVec
	meanHops  prometheus.Gauge
	satRate   prometheus.Gauge
	totalHops prometheus.Counter

	content network.Cid
	hits    map[network.Cid]int
	misses  map[network.Cid]int
	hops    int
	samples int
	hopSum  int
	sat     int
}

// NewPrometheusCollector builds a collector bound to its own registry
// (callers expose it via promhttp.HandlerFor, not the global DefaultRegisterer,
// so multiple simulation runs in one process never collide on metric names).
func NewPrometheusCollector() *PrometheusCollector {
	c := &PrometheusCollector{
		registry: prometheus.NewRegistry(),
		hits:     make(map[network.Cid]int),
		misses:   make(map[network.Cid]int),
		hitRatio: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "icnsim",
			Name:      "cache_hit_ratio",
			Help:      "Fraction of sessions resolved by a cache hit, per content id.",
		}, []string{"content"}),
		meanHops: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "icnsim",
			Name:      "mean_request_hops",
			Help:      "Mean request-hop count per session.",
		}),
		satRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "icnsim",
			Name:      "satisfied_session_rate",
			Help:      "Fraction of sessions that observed a hit event.",
		}),
		totalHops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "icnsim",
			Name:      "request_hops_total",
			Help:      "Cumulative request hops charged across the run.",
		}),
	}
	c.registry.MustRegister(c.hitRatio, c.meanHops, c.satRate, c.totalHops)
	return c
}

// Registry exposes the collector's private registry for promhttp.HandlerFor.
func (c *PrometheusCollector) Registry() *prometheus.Registry { return c.registry }

func (c *PrometheusCollector) Name() string { return "prometheus" }

func (c *PrometheusCollector) StartSession(_ float64, _ network.NodeID, content network.Cid) {
	c.content = content
	c.hops = 0
}

func (c *PrometheusCollector) CacheHit(network.NodeID) {
	c.hits[c.content]++
	c.sat++
}

func (c *PrometheusCollector) ServerHit(network.NodeID) {
	c.misses[c.content]++
	c.sat++
}

func (c *PrometheusCollector) RequestHop(network.NodeID, network.NodeID, bool) {
	c.hops++
	c.totalHops.Inc()
}

func (c *PrometheusCollector) EndSession(bool) {
	c.samples++
	c.hopSum += c.hops

	total := c.hits[c.content] + c.misses[c.content]
	if total > 0 {
		c.hitRatio.WithLabelValues(cidKey(c.content)).Set(float64(c.hits[c.content]) / float64(total))
	}
	if c.samples > 0 {
		c.meanHops.Set(float64(c.hopSum) / float64(c.samples))
		c.satRate.Set(float64(c.sat) / float64(c.samples))
	}
}

func (c *PrometheusCollector) Results() map[string]any {
	return map[string]any{
		"samples":   c.samples,
		"mean_hops": float64(c.hopSum) / float64(max(c.samples, 1)),
	}
}
