// Package metrics exposes Prometheus instruments for HTTP traffic, LLM
// calls and question generation.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/abhishek622/mockmate/internal/llm"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mockmate"

type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	httpInFlight prometheus.Gauge

	llmCalls   *prometheus.CounterVec
	llmLatency *prometheus.HistogramVec

	questionSets *prometheus.CounterVec
	cacheCleaned prometheus.Counter
}

// New registers every instrument on reg. Tests pass a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests received",
		}, []string{"method", "path", "status"}),
		httpLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		httpInFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "Current number of in-flight HTTP requests",
		}),
		llmCalls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_calls_total",
			Help:      "LLM chat completions by model and outcome",
		}, []string{"model", "outcome"}),
		llmLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_call_duration_seconds",
			Help:      "Duration of LLM chat completions in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		}, []string{"model"}),
		questionSets: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "question_sets_served_total",
			Help:      "Question sets returned by source (fast_path, cache, llm, template)",
		}, []string{"source"}),
		cacheCleaned: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "question_cache_rows_deleted_total",
			Help:      "Question cache rows removed by cleanup",
		}),
	}
}

// Default is New on a registry that also carries the Go runtime and
// process collectors.
func Default() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return New(reg)
}

func (m *Metrics) QuestionSetServed(source string) {
	m.questionSets.WithLabelValues(source).Inc()
}

func (m *Metrics) CacheRowsDeleted(n int64) {
	if n > 0 {
		m.cacheCleaned.Add(float64(n))
	}
}

// Middleware records request metrics. The path label is the route pattern
// so ids do not explode cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpLatency.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// InstrumentLLM wraps client so every Chat call is counted and timed.
func (m *Metrics) InstrumentLLM(client llm.Client) llm.Client {
	return &instrumentedLLM{next: client, m: m}
}

type instrumentedLLM struct {
	next llm.Client
	m    *Metrics
}

func (i *instrumentedLLM) Chat(ctx context.Context, req llm.ChatRequest) (string, error) {
	start := time.Now()
	out, err := i.next.Chat(ctx, req)
	i.m.llmLatency.WithLabelValues(req.Model).Observe(time.Since(start).Seconds())

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	i.m.llmCalls.WithLabelValues(req.Model, outcome).Inc()
	return out, err
}
