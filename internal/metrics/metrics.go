package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Snapshot load outcomes used as the "result" label.
const (
	LoadOK      = "ok"
	LoadMissing = "missing"
	LoadInvalid = "invalid"
	LoadFailed  = "failed"
)

// Rendering surfaces used as the "surface" label.
const (
	SurfaceWeb = "web"
	SurfaceAPI = "api"
	SurfaceCLI = "cli"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Dashboard metrics
	snapshotLoads        *prometheus.CounterVec
	snapshotLoadDuration prometheus.Histogram
	snapshotInstruments  prometheus.Gauge
	chartLinksBackfilled prometheus.Counter
	dashboardRenders     *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	r.snapshotLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ichimoku_snapshot_loads_total",
			Help: "Total number of snapshot loads by outcome",
		},
		[]string{"result"},
	)
	r.snapshotLoadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ichimoku_snapshot_load_duration_seconds",
			Help:    "Time spent reading and decoding the snapshot",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
	)
	r.snapshotInstruments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ichimoku_snapshot_instruments",
			Help: "Number of instruments in the last successfully loaded snapshot",
		},
	)
	r.chartLinksBackfilled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ichimoku_chart_links_backfilled_total",
			Help: "Chart links derived for results that arrived without one",
		},
	)
	r.dashboardRenders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ichimoku_dashboard_renders_total",
			Help: "Dashboard renders by surface and page state",
		},
		[]string{"surface", "state"},
	)

	reg.MustRegister(r.snapshotLoads)
	reg.MustRegister(r.snapshotLoadDuration)
	reg.MustRegister(r.snapshotInstruments)
	reg.MustRegister(r.chartLinksBackfilled)
	reg.MustRegister(r.dashboardRenders)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordSnapshotLoad records one snapshot load. instruments and backfilled
// are only applied when result is LoadOK.
func (r *Registry) RecordSnapshotLoad(result string, duration float64, instruments, backfilled int) {
	r.snapshotLoads.WithLabelValues(result).Inc()
	r.snapshotLoadDuration.Observe(duration)
	if result == LoadOK {
		r.snapshotInstruments.Set(float64(instruments))
		r.chartLinksBackfilled.Add(float64(backfilled))
	}
}

// RecordRender records a rendered dashboard.
func (r *Registry) RecordRender(surface, state string) {
	r.dashboardRenders.WithLabelValues(surface, state).Inc()
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
