package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics carries the HTTP server metrics plus the match pipeline
// observations on one registry.
type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	matchTotal         *prometheus.CounterVec
	matchDuration      *prometheus.HistogramVec
	matchScore         *prometheus.HistogramVec
	extractionStrategy *prometheus.CounterVec
	lowConfidenceTotal *prometheus.CounterVec
}

func New(service string) *Metrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumematch",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resumematch",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "resumematch",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	matchTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumematch",
			Subsystem: "pipeline",
			Name:      "match_total",
			Help:      "Total match requests by outcome.",
		},
		[]string{"service", "status"},
	)
	matchDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resumematch",
			Subsystem: "pipeline",
			Name:      "match_duration_seconds",
			Help:      "Full match pipeline duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	matchScore := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resumematch",
			Subsystem: "pipeline",
			Name:      "combined_score",
			Help:      "Distribution of combined match scores.",
			Buckets:   []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
		[]string{"service"},
	)
	extractionStrategy := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumematch",
			Subsystem: "pipeline",
			Name:      "extraction_strategy_total",
			Help:      "Winning extraction strategy per match request.",
		},
		[]string{"service", "strategy"},
	)
	lowConfidenceTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumematch",
			Subsystem: "pipeline",
			Name:      "low_confidence_total",
			Help:      "Total reports built from under-threshold resume text.",
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		matchTotal,
		matchDuration,
		matchScore,
		extractionStrategy,
		lowConfidenceTotal,
	)

	return &Metrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		matchTotal:         matchTotal,
		matchDuration:      matchDuration,
		matchScore:         matchScore,
		extractionStrategy: extractionStrategy,
		lowConfidenceTotal: lowConfidenceTotal,
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
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
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

// RecordMatchSuccess observes a completed match: duration, score
// distribution, winning extraction strategy and confidence.
func (m *Metrics) RecordMatchSuccess(service string, duration time.Duration, combinedScore float64, strategy string, lowConfidence bool) {
	m.matchTotal.WithLabelValues(service, "success").Inc()
	m.matchDuration.WithLabelValues(service).Observe(duration.Seconds())
	m.matchScore.WithLabelValues(service).Observe(combinedScore)
	if strategy == "" {
		strategy = "unknown"
	}
	m.extractionStrategy.WithLabelValues(service, strategy).Inc()
	if lowConfidence {
		m.lowConfidenceTotal.WithLabelValues(service).Inc()
	}
}

func (m *Metrics) RecordMatchFailure(service, status string) {
	if status == "" {
		status = "error"
	}
	m.matchTotal.WithLabelValues(service, status).Inc()
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
