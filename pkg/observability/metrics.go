package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/hexsim/pkg/domain"
)

// Metrics records step counts, branch fan-out and failures in Prometheus.
type Metrics struct {
	steps    *prometheus.CounterVec
	failures *prometheus.CounterVec
	branches *prometheus.HistogramVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hexsim_steps_total",
				Help: "Total number of actions applied",
			},
			[]string{"action"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hexsim_branch_failures_total",
				Help: "Branches that failed, by action and error kind",
			},
			[]string{"action", "error"},
		),
		branches: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hexsim_branches",
				Help:    "Number of branches after each action",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"action"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "hexsim_step_duration_seconds",
				Help: "Duration of action application",
			},
			[]string{"action"},
		),
	}
	for _, c := range []prometheus.Collector{m.steps, m.failures, m.branches, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnd: func(ctx context.Context, e *domain.StepEvent) {
			m.steps.WithLabelValues(e.Action).Inc()
			m.branches.WithLabelValues(e.Action).Observe(float64(e.BranchesOut))
			m.duration.WithLabelValues(e.Action).Observe(e.Duration.Seconds())
			for kind, n := range e.NewFailures {
				m.failures.WithLabelValues(e.Action, kind.Code()).Add(float64(n))
			}
		},
	}
}
