package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder is what services and middleware record against.
type Recorder interface {
	// RecordPage counts one served page of a listing.
	RecordPage(listing string, pageSize int, outOfRange, empty bool)
	// RecordFetchError counts a listing whose backing fetch failed.
	RecordFetchError(listing string)
}

// Ensure Metrics implements Recorder interface at compile time
var _ Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Pagination
	PagesServedTotal    *prometheus.CounterVec
	PagesOutOfRange     *prometheus.CounterVec
	PagesEmpty          *prometheus.CounterVec
	PageSize            *prometheus.HistogramVec
	PageFetchErrorTotal *prometheus.CounterVec

	// HTTP Request Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init returns the process-wide Prometheus recorder, or a Noop when disabled.
// Registration with the default registry happens once.
func Init(enabled bool) Recorder {
	if !enabled {
		return NewNoopMetrics()
	}
	once.Do(func() {
		defaultMetrics = New(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// New registers a fresh metric set with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		PagesServedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_pages_served_total",
				Help: "Pages served per listing",
			},
			[]string{"listing"},
		),
		PagesOutOfRange: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_pages_out_of_range_total",
				Help: "Requests for a page past the last one",
			},
			[]string{"listing"},
		),
		PagesEmpty: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_pages_empty_total",
				Help: "Pages served for an empty collection",
			},
			[]string{"listing"},
		),
		PageSize: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_page_size",
				Help:    "Effective page size after clamping",
				Buckets: []float64{1, 5, 10, 20, 50, 100},
			},
			[]string{"listing"},
		),
		PageFetchErrorTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_page_fetch_errors_total",
				Help: "Listings whose data fetch failed",
			},
			[]string{"listing"},
		),

		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
	}
}

// RecordPage records one served page
func (m *Metrics) RecordPage(listing string, pageSize int, outOfRange, empty bool) {
	m.PagesServedTotal.WithLabelValues(listing).Inc()
	m.PageSize.WithLabelValues(listing).Observe(float64(pageSize))
	if outOfRange {
		m.PagesOutOfRange.WithLabelValues(listing).Inc()
	}
	if empty {
		m.PagesEmpty.WithLabelValues(listing).Inc()
	}
}

// RecordFetchError records a failed listing fetch
func (m *Metrics) RecordFetchError(listing string) {
	m.PageFetchErrorTotal.WithLabelValues(listing).Inc()
}
