package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors exported by the API.
type Metrics struct {
	registry        *prometheus.Registry
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	DanglingSteps   prometheus.Gauge
}

// New creates a private registry with Go runtime collectors and the API metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "skillsharing_http_requests_total",
			Help: "HTTP requests by route template, method and status code",
		}, []string{"route", "method", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "skillsharing_http_request_duration_seconds",
			Help:    "HTTP request latency by route template and method",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		DanglingSteps: factory.NewGauge(prometheus.GaugeOpts{
			Name: "skillsharing_dangling_steps",
			Help: "Steps whose plan no longer exists, as of the last audit run",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
