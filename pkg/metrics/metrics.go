package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sortingnets/netcert/pkg/solver"
)

const (
	VerdictLabel  = "verdict"
	StrategyLabel = "strategy"
	StatusLabel   = "status"
	Outcome       = "outcome"
	Succeeded     = "succeeded"
	Failed        = "failed"
)

// To add new metrics:
// 1. Register new metrics in Register() below.
// 2. Add an emitter next to the existing ones.
var (
	certificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netcert_certifications_total",
			Help: "Monotonic count of finished certifications by verdict",
		},
		[]string{VerdictLabel},
	)

	certificationDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "netcert_certification_duration_seconds",
			Help:       "The duration of a certification attempt",
			Objectives: map[float64]float64{0.95: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{Outcome},
	)

	formulaClauses = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netcert_formula_clauses",
			Help:    "Number of clauses in encoded networks",
			Buckets: prometheus.ExponentialBuckets(16, 4, 10),
		},
	)

	solvesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netcert_solves_total",
			Help: "Monotonic count of solver runs by strategy and status",
		},
		[]string{StrategyLabel, StatusLabel},
	)
)

// Register adds every collector to r.
func Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		certificationsTotal,
		certificationDuration,
		formulaClauses,
		solvesTotal,
	} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func RegisterCertificationSuccess(duration time.Duration) {
	certificationDuration.WithLabelValues(Succeeded).Observe(duration.Seconds())
}

func RegisterCertificationFailure(duration time.Duration) {
	certificationDuration.WithLabelValues(Failed).Observe(duration.Seconds())
}

// EmitResult counts a certification verdict and records its formula size.
func EmitResult(verdict string, clauses int) {
	certificationsTotal.WithLabelValues(verdict).Inc()
	formulaClauses.Observe(float64(clauses))
}

// SolveTracer counts solver runs. It can be chained in front of another
// tracer.
type SolveTracer struct {
	Next solver.Tracer
}

var _ solver.Tracer = SolveTracer{}

func (t SolveTracer) Trace(e solver.Event) {
	solvesTotal.WithLabelValues(e.Strategy, e.Status.String()).Inc()
	if t.Next != nil {
		t.Next.Trace(e)
	}
}
