package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ssargent/bindb/pkg/codec"
)

// Decode outcomes used as the result label
const (
	resultSuccess    = "success"
	resultTruncated  = "truncated"
	resultUnknownTag = "unknown_tag"
	resultTrailing   = "trailing_bytes"
	resultTooLarge   = "too_large"
	resultError      = "error"
)

// Metrics holds all Prometheus metrics for the API
type Metrics struct {
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	decodeTotal      *prometheus.CounterVec
	decodeBytesTotal prometheus.Counter
	decodeRecords    prometheus.Histogram

	storedDatabases prometheus.Gauge
}

// NewMetrics creates all metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bindb_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bindb_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "bindb_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		decodeTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bindb_decode_total",
				Help: "Total number of decode attempts by result",
			},
			[]string{"result"},
		),

		decodeBytesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "bindb_decode_bytes_total",
				Help: "Total number of bytes successfully decoded",
			},
		),

		decodeRecords: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bindb_decode_records",
				Help:    "Number of distinct ids per decoded database",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
		),

		storedDatabases: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "bindb_stored_databases",
				Help: "Number of databases in the store",
			},
		),
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordDecode records the outcome of decoding a buffer
func (m *Metrics) RecordDecode(size int, db *codec.Database, err error) {
	result := decodeResult(err)
	m.decodeTotal.WithLabelValues(result).Inc()
	if err == nil {
		m.decodeBytesTotal.Add(float64(size))
		m.decodeRecords.Observe(float64(db.Len()))
	}
}

// RecordOversized records a body rejected before decoding
func (m *Metrics) RecordOversized() {
	m.decodeTotal.WithLabelValues(resultTooLarge).Inc()
}

// SetStoredDatabases updates the store size gauge
func (m *Metrics) SetStoredDatabases(n int) {
	m.storedDatabases.Set(float64(n))
}

func decodeResult(err error) string {
	switch {
	case err == nil:
		return resultSuccess
	case errors.Is(err, codec.ErrTruncatedInput):
		return resultTruncated
	case errors.Is(err, codec.ErrUnknownTypeTag):
		return resultUnknownTag
	case errors.Is(err, codec.ErrTrailingBytes):
		return resultTrailing
	}
	return resultError
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
