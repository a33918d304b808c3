// Package metrics exposes tutor and HTTP counters to Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "algebrix"

// Submission results.
const (
	ResultCorrect   = "correct"
	ResultIncorrect = "incorrect"
	ResultInvalid   = "invalid"
)

// Metrics owns a private registry so tests and multiple servers don't
// collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	Submissions     *prometheus.CounterVec
	Hints           *prometheus.CounterVec
	Completions     *prometheus.CounterVec
	QuizScores      *prometheus.CounterVec
	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Step submissions by equation kind and result",
			},
			[]string{"kind", "result"},
		),
		Hints: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "hints_total",
				Help:      "Hints issued by equation kind and hint source",
			},
			[]string{"kind", "source"},
		),
		Completions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "completions_total",
				Help:      "Equations completed by kind",
			},
			[]string{"kind"},
		),
		QuizScores: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quiz_scores_total",
				Help:      "Scored diagnostic quizzes by performance level",
			},
			[]string{"level"},
		),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests",
				Buckets:   []float64{0.005, 0.025, 0.1, 0.5, 1, 5},
			},
			[]string{"method", "endpoint"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Submissions,
		m.Hints,
		m.Completions,
		m.QuizScores,
		m.RequestCounter,
		m.RequestDuration,
	)
	return m
}

// Registry returns the registry backing these metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveSubmission(kind, result string) {
	m.Submissions.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) ObserveHint(kind, source string) {
	m.Hints.WithLabelValues(kind, source).Inc()
}

func (m *Metrics) ObserveCompletion(kind string) {
	m.Completions.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveQuiz(level string) {
	m.QuizScores.WithLabelValues(level).Inc()
}

// Middleware records request count and latency per route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		m.RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		m.RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
