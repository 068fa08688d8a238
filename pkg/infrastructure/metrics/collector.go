package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/WangYihang/site-probe/pkg/domain/entity"
	"github.com/WangYihang/site-probe/pkg/domain/service"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "site_probe"

// Collector holds the probe metrics on its own registry
type Collector struct {
	registry *prometheus.Registry
	probes   *prometheus.CounterVec
	statuses *prometheus.CounterVec
	duration prometheus.Histogram
	inflight prometheus.Gauge
}

// NewCollector creates a collector and registers its metrics
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "probes_total",
			Help:      "Probes issued, by outcome.",
		}, []string{"outcome"}),
		statuses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_status_total",
			Help:      "HTTP responses received, by status class.",
		}, []string{"class"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "probe_duration_seconds",
			Help:      "Wall-clock duration of probes, redirects included.",
			Buckets:   prometheus.DefBuckets,
		}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "probes_inflight",
			Help:      "Probes currently running.",
		}),
	}
	c.registry.MustRegister(c.probes, c.statuses, c.duration, c.inflight)
	return c
}

// Registry returns the registry the metrics live on
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Observe records a finished probe
func (c *Collector) Observe(result entity.ProbeResult, elapsed time.Duration) {
	c.probes.WithLabelValues(result.Outcome()).Inc()
	c.duration.Observe(elapsed.Seconds())
	if s, ok := result.(*entity.Success); ok {
		c.statuses.WithLabelValues(statusClass(s.StatusCode)).Inc()
	}
}

func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "other"
	}
	return fmt.Sprintf("%dxx", code/100)
}

// InstrumentedProber records metrics around another prober
type InstrumentedProber struct {
	next      service.Prober
	collector *Collector
}

// NewInstrumentedProber wraps next
func NewInstrumentedProber(next service.Prober, collector *Collector) *InstrumentedProber {
	return &InstrumentedProber{next: next, collector: collector}
}

// Probe implements service.Prober
func (p *InstrumentedProber) Probe(ctx context.Context, req entity.ProbeRequest) entity.ProbeResult {
	p.collector.inflight.Inc()
	defer p.collector.inflight.Dec()

	start := time.Now()
	result := p.next.Probe(ctx, req)
	p.collector.Observe(result, time.Since(start))
	return result
}
