package service

import (
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/limaJavier/classgrid/pkg/model"
)

// MetricsService owns the Prometheus registry for request and generation metrics.
type MetricsService struct {
	registry           *prometheus.Registry
	handler            http.Handler
	requestDuration    *prometheus.HistogramVec
	requestTotal       *prometheus.CounterVec
	generationTotal    *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	unplacedHours      *prometheus.HistogramVec
	drawsTotal         *prometheus.CounterVec
	cellEdits          *prometheus.CounterVec
}

func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	generationTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_generations_total",
		Help: "Generated timetables by strategy and completeness",
	}, []string{"strategy", "complete"})

	generationDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "timetable_generation_duration_seconds",
		Help:    "Time spent building a timetable",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
	}, []string{"strategy"})

	unplacedHours := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "timetable_unplaced_hours",
		Help:    "Requested hours left unplaced per generation",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
	}, []string{"strategy"})

	drawsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_draws_total",
		Help: "Slot draws spent by the random strategy, by demand kind",
	}, []string{"kind"})

	cellEdits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_cell_edits_total",
		Help: "Manual cell edits by outcome",
	}, []string{"applied"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, generationTotal, generationDuration, unplacedHours, drawsTotal, cellEdits, goroutines)

	return &MetricsService{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		generationTotal:    generationTotal,
		generationDuration: generationDuration,
		unplacedHours:      unplacedHours,
		drawsTotal:         drawsTotal,
		cellEdits:          cellEdits,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveGeneration records one Build and its report.
func (m *MetricsService) ObserveGeneration(strategy model.Strategy, report model.Report, duration time.Duration) {
	if m == nil {
		return
	}
	label := string(strategy)
	m.generationTotal.WithLabelValues(label, strconv.FormatBool(report.Complete())).Inc()
	m.generationDuration.WithLabelValues(label).Observe(duration.Seconds())
	m.unplacedHours.WithLabelValues(label).Observe(float64(report.Unplaced()))
	for _, result := range report.Results {
		if result.Draws > 0 {
			m.drawsTotal.WithLabelValues(string(result.Kind)).Add(float64(result.Draws))
		}
	}
}

func (m *MetricsService) ObserveCellEdit(applied bool) {
	if m == nil {
		return
	}
	m.cellEdits.WithLabelValues(strconv.FormatBool(applied)).Inc()
}
