// FilePath: internal/monitoring/monitoring.go
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	nuts "github.com/vaudience/go-nuts"
)

// Metrics holds the Prometheus collectors for the fleet service.
type Metrics struct {
	registry *prometheus.Registry

	ReportsBuiltTotal *prometheus.CounterVec
	ReportDuration    *prometheus.HistogramVec
	LogsIngestedTotal *prometheus.CounterVec
	HTTPRequestsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors on a private registry,
// alongside the default Go and process collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		ReportsBuiltTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "aquatech",
				Subsystem: "reports",
				Name:      "built_total",
				Help:      "Total number of reports built",
			},
			[]string{"type", "status"},
		),
		ReportDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "aquatech",
				Subsystem: "reports",
				Name:      "duration_seconds",
				Help:      "Time spent building a report, store round trip included",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"type"},
		),
		LogsIngestedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "aquatech",
				Subsystem: "ingest",
				Name:      "logs_total",
				Help:      "Total number of telemetry logs ingested",
			},
			[]string{"status"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "aquatech",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"method", "path", "status"},
		),
	}

	registry.MustRegister(m.ReportsBuiltTotal, m.ReportDuration, m.LogsIngestedTotal, m.HTTPRequestsTotal)
	return m
}

// Handler exposes the registry for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// ObserveReport records one report build.
func (m *Metrics) ObserveReport(reportType string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	elapsed := time.Since(start)
	m.ReportsBuiltTotal.WithLabelValues(reportType, status).Inc()
	m.ReportDuration.WithLabelValues(reportType).Observe(elapsed.Seconds())
	if elapsed > 5*time.Second {
		nuts.L.Warnf("[Monitoring] Slow %s report build: %v", reportType, elapsed)
	}
}

// ObserveHTTPRequest records one served HTTP request. Path should be the
// route template, not the raw URL, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// ObserveIngestion records one log ingestion attempt.
func (m *Metrics) ObserveIngestion(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.LogsIngestedTotal.WithLabelValues(status).Inc()
}
