// Package metrics provides the Prometheus instrumentation of the dashboard.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "crypto_dashboard"

// Recorder holds all collectors. A nil *Recorder is valid and records nothing,
// so components can be constructed without metrics in tests.
type Recorder struct {
	gatherer prometheus.Gatherer

	upstreamLatency *prometheus.HistogramVec
	upstreamErrors  *prometheus.CounterVec
	lastPrice       *prometheus.GaugeVec
	alerts          *prometheus.CounterVec
	passes          *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in tests
// to avoid duplicate registration on the default registry.
func New(reg *prometheus.Registry) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		gatherer: reg,
		upstreamLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Duration of exchange API requests in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"operation"},
		),
		upstreamErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_errors_total",
				Help:      "Total number of failed exchange API requests",
			},
			[]string{"operation"},
		),
		lastPrice: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_price",
				Help:      "Last ticker price fetched for a pair",
			},
			[]string{"pair"},
		),
		alerts: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "zscore_alerts_total",
				Help:      "Dashboard passes whose latest z-score exceeded the threshold",
			},
			[]string{"pair"},
		),
		passes: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pipeline_passes_total",
				Help:      "Dashboard pipeline passes by sampling mode and result",
			},
			[]string{"sampling", "result"},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"route", "method"},
		),
	}
}

// ObserveUpstream records one exchange API call.
func (r *Recorder) ObserveUpstream(op string, d time.Duration, err error) {
	if r == nil {
		return
	}
	r.upstreamLatency.WithLabelValues(op).Observe(d.Seconds())
	if err != nil {
		r.upstreamErrors.WithLabelValues(op).Inc()
	}
}

// RecordLastPrice records the last ticker price for a pair.
func (r *Recorder) RecordLastPrice(pair string, price float64) {
	if r == nil {
		return
	}
	r.lastPrice.WithLabelValues(pair).Set(price)
}

// RecordPass records one pipeline pass and whether it raised an alert.
func (r *Recorder) RecordPass(pair, sampling string, err error, alert bool) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.passes.WithLabelValues(sampling, result).Inc()
	if alert {
		r.alerts.WithLabelValues(pair).Inc()
	}
}

// ObserveHTTP records one served HTTP request.
func (r *Recorder) ObserveHTTP(route, method, status string, d time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, method, status).Inc()
	r.httpDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// Handler exposes the collectors of this recorder for scraping.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
