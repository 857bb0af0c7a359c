package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	uploadsTotal         *prometheus.CounterVec
	uploadBytes          *prometheus.HistogramVec
	analysisTotal        *prometheus.CounterVec
	analysisDuration     *prometheus.HistogramVec
	analysisTextLength   *prometheus.HistogramVec
	categoryMatchesTotal *prometheus.CounterVec
	documentTypesTotal   *prometheus.CounterVec
	rateLimitedTotal     *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "briefsight",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "briefsight",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "briefsight",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	uploadsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "briefsight",
			Subsystem: "upload",
			Name:      "briefs_total",
			Help:      "Total accepted brief uploads by extension.",
		},
		[]string{"service", "extension"},
	)
	uploadBytes := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "briefsight",
			Subsystem: "upload",
			Name:      "bytes",
			Help:      "Distribution of uploaded brief sizes in bytes.",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		},
		[]string{"service"},
	)
	analysisTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "briefsight",
			Subsystem: "analysis",
			Name:      "requests_total",
			Help:      "Total synchronous text analysis requests.",
		},
		[]string{"service", "status"},
	)
	analysisDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "briefsight",
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "Insight extraction duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	analysisTextLength := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "briefsight",
			Subsystem: "analysis",
			Name:      "text_length_chars",
			Help:      "Distribution of analyzed text lengths.",
			Buckets:   []float64{100, 500, 1000, 5000, 10000, 50000, 100000},
		},
		[]string{"service"},
	)
	categoryMatchesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "briefsight",
			Subsystem: "analysis",
			Name:      "category_matches_total",
			Help:      "Total extracted items by insight category.",
		},
		[]string{"service", "category"},
	)
	documentTypesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "briefsight",
			Subsystem: "analysis",
			Name:      "document_types_total",
			Help:      "Total classified documents by detected type.",
		},
		[]string{"service", "type"},
	)
	rateLimitedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "briefsight",
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Total requests rejected by the rate limiter.",
		},
		[]string{"service", "path"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		uploadsTotal,
		uploadBytes,
		analysisTotal,
		analysisDuration,
		analysisTextLength,
		categoryMatchesTotal,
		documentTypesTotal,
		rateLimitedTotal,
	)

	return &HTTPServerMetrics{
		registry:             registry,
		requestTotal:         requestTotal,
		requestDuration:      requestDuration,
		requestInFlight:      requestInFlight,
		uploadsTotal:         uploadsTotal,
		uploadBytes:          uploadBytes,
		analysisTotal:        analysisTotal,
		analysisDuration:     analysisDuration,
		analysisTextLength:   analysisTextLength,
		categoryMatchesTotal: categoryMatchesTotal,
		documentTypesTotal:   documentTypesTotal,
		rateLimitedTotal:     rateLimitedTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/briefs/"):
		return "/v1/briefs/{brief_id}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordUpload(service, extension string, size int64) {
	if extension == "" {
		extension = "unknown"
	}
	m.uploadsTotal.WithLabelValues(service, extension).Inc()
	if size > 0 {
		m.uploadBytes.WithLabelValues(service).Observe(float64(size))
	}
}

func (m *HTTPServerMetrics) RecordAnalysis(service, endpoint string, err error, textLength int, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.analysisTotal.WithLabelValues(service, status).Inc()
	m.analysisDuration.WithLabelValues(service, endpoint).Observe(duration.Seconds())
	if textLength > 0 {
		m.analysisTextLength.WithLabelValues(service).Observe(float64(textLength))
	}
}

func (m *HTTPServerMetrics) RecordCategoryMatches(service, category string, count int) {
	if count <= 0 {
		return
	}
	m.categoryMatchesTotal.WithLabelValues(service, category).Add(float64(count))
}

func (m *HTTPServerMetrics) RecordDocumentType(service, docType string) {
	if docType == "" {
		docType = "Unknown"
	}
	m.documentTypesTotal.WithLabelValues(service, docType).Inc()
}

func (m *HTTPServerMetrics) RecordRateLimited(service, path string) {
	m.rateLimitedTotal.WithLabelValues(service, normalizePath(path)).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
