package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "survey"

var (
	registry = prometheus.NewRegistry()

	evaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Forward-chaining evaluations by outcome",
		},
		[]string{"outcome"},
	)

	evaluationMatches = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_matches",
			Help:      "Subgoals concluded per evaluation",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
		},
	)

	submissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Survey submissions by status",
		},
		[]string{"status"},
	)

	logicMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logic_mutations_total",
			Help:      "Rule base writes by operation",
		},
		[]string{"op"},
	)
)

// Submission statuses.
const (
	StatusOK       = "ok"
	StatusRejected = "rejected"
	StatusError    = "error"
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		evaluationsTotal,
		evaluationMatches,
		submissionsTotal,
		logicMutationsTotal,
	)
}

// ObserveEvaluation records one evaluation that concluded the given number of subgoals.
func ObserveEvaluation(matches int) {
	outcome := "none"
	if matches > 0 {
		outcome = "matched"
	}
	evaluationsTotal.WithLabelValues(outcome).Inc()
	evaluationMatches.Observe(float64(matches))
}

// IncSubmission counts a submission attempt.
func IncSubmission(status string) {
	submissionsTotal.WithLabelValues(status).Inc()
}

// IncLogicMutation counts a successful rule base write.
func IncLogicMutation(op string) {
	logicMutationsTotal.WithLabelValues(op).Inc()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
}
