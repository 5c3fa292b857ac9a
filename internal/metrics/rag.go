package metrics

import "github.com/prometheus/client_golang/prometheus"

// RAG pipeline Prometheus metrics.
var (
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homescout",
			Name:      "queries_total",
			Help:      "Total number of RAG queries by outcome",
		},
		[]string{"status"}, // "success" / "invalid" / "embedding_error" / "retrieval_error" / "generation_error"
	)

	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "homescout",
			Name:      "query_duration_seconds",
			Help:      "End-to-end RAG query duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"stage"}, // "embed" / "retrieve" / "generate" / "total"
	)

	ChunksRetrieved = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "homescout",
			Name:      "chunks_retrieved",
			Help:      "Number of chunks returned per retrieval",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20},
		},
	)

	LLMTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homescout",
			Name:      "llm_tokens_total",
			Help:      "Total LLM tokens consumed",
		},
		[]string{"model", "type"}, // type: "prompt" / "completion" / "total"
	)

	LLMRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homescout",
			Name:      "llm_requests_total",
			Help:      "Total LLM completion requests",
		},
		[]string{"model", "status"},
	)

	LLMRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "homescout",
			Name:      "llm_request_duration_seconds",
			Help:      "LLM completion request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"model"},
	)
)

var ragMetricsRegistered bool

// RegisterRAGMetrics registers Prometheus RAG metrics. Must be called once from main.
func RegisterRAGMetrics() {
	if ragMetricsRegistered {
		return
	}
	prometheus.MustRegister(QueriesTotal)
	prometheus.MustRegister(QueryDuration)
	prometheus.MustRegister(ChunksRetrieved)
	prometheus.MustRegister(LLMTokensTotal)
	prometheus.MustRegister(LLMRequestsTotal)
	prometheus.MustRegister(LLMRequestDuration)
	ragMetricsRegistered = true
}
