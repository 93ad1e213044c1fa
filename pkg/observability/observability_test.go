package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hexsim"
	"github.com/aretw0/hexsim/pkg/actions"
	"github.com/aretw0/hexsim/pkg/domain"
	"github.com/aretw0/hexsim/pkg/observability"
)

func divideByUnknown(t *testing.T, hooks domain.LifecycleHooks) *hexsim.StackManager {
	t.Helper()
	mgr := hexsim.Start(
		domain.NewStackState([]domain.Iota{domain.KnownDouble(13), domain.UnknownDouble()}, nil),
		hexsim.WithLifecycleHooks(hooks),
	)
	require.NoError(t, mgr.Run(context.Background(),
		domain.Lift(actions.Divide{}),
		domain.Lift(actions.Duplicate{}),
	))
	return mgr
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	divideByUnknown(t, metrics.Hooks())

	families, err := reg.Gather()
	require.NoError(t, err)

	var steps, failures float64
	var series int
	for _, f := range families {
		switch f.GetName() {
		case "hexsim_steps_total":
			for _, m := range f.GetMetric() {
				series++
				steps += m.GetCounter().GetValue()
			}
		case "hexsim_branch_failures_total":
			for _, m := range f.GetMetric() {
				failures += m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 2, series)
	assert.Equal(t, 2.0, steps)
	assert.Equal(t, 1.0, failures)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err, "registering twice must fail")
}

func TestRecorder(t *testing.T) {
	rec := observability.NewRecorder()
	divideByUnknown(t, rec.Hooks())

	steps := rec.Steps()
	require.Len(t, steps, 2)
	assert.Equal(t, "div", steps[0].Action)
	assert.Equal(t, [][]int{{0, 1}}, steps[0].Lineage)
	assert.Equal(t, map[domain.ActionError]int{domain.ErrDivByZero: 1}, steps[0].NewFailures)
	assert.Equal(t, "dup", steps[1].Action)
	assert.Equal(t, [][]int{{0}, {1}}, steps[1].Lineage)
	assert.Equal(t, 2, steps[1].Output.Len())

	rec.Reset()
	assert.Empty(t, rec.Steps())
}

func TestChainAndLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	rec := observability.NewRecorder()

	var started int
	counter := domain.LifecycleHooks{
		OnStepStart: func(ctx context.Context, e *domain.StepEvent) { started++ },
	}

	divideByUnknown(t, observability.Chain(counter, rec.Hooks(), observability.LogHooks(logger)))

	assert.Equal(t, 2, started)
	assert.Len(t, rec.Steps(), 2)
	assert.Contains(t, buf.String(), "action=div")
	assert.Contains(t, buf.String(), "failed_div_by_zero=1")
}
