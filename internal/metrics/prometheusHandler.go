package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var indexBuildsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "index_builds_total",
	Help: "How many times the knowledge index was built from a crawl",
})

var answerResultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "answer_results_total",
	Help: "Answer outcomes by kind (Answered, Insufficient, Failed)",
}, []string{"kind"})

var escalationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "escalations_total",
	Help: "Consent flow outcomes (prompted, affirmed, declined, reprompted)",
}, []string{"outcome"})

var fallbackRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "fallback_runs_total",
	Help: "Fallback research pipeline runs by result (ok, degraded)",
}, []string{"result"})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IncrementIndexBuilds() {
	indexBuildsTotal.Inc()
}

func CountAnswerResult(kind string) {
	answerResultsTotal.WithLabelValues(kind).Inc()
}

func CountEscalation(outcome string) {
	escalationsTotal.WithLabelValues(outcome).Inc()
}

func CountFallbackRun(result string) {
	fallbackRunsTotal.WithLabelValues(result).Inc()
}

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30, 120},
}, []string{"service"})

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}
