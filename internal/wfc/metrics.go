package wfc

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/samdwyer/wavecollapse/internal/telemetry"
)

var (
	runsTotal      metric.Int64Counter
	contradictions metric.Int64Counter
	runIterations  metric.Int64Histogram
	runDuration    metric.Float64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics creates the solver instruments on the global meter. Safe to
// call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		meter := telemetry.Meter("wfc")
		var err error

		runsTotal, err = meter.Int64Counter(
			"wfc_runs_total",
			metric.WithDescription("Total number of solver runs"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		contradictions, err = meter.Int64Counter(
			"wfc_contradictions_total",
			metric.WithDescription("Contradictions hit during propagation, including recovered ones"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		runIterations, err = meter.Int64Histogram(
			"wfc_run_iterations",
			metric.WithDescription("Collapse iterations per run"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		runDuration, err = meter.Float64Histogram(
			"wfc_run_duration_seconds",
			metric.WithDescription("Duration of solver runs"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordRunMetrics records the outcome of one Run call.
func recordRunMetrics(ctx context.Context, outcome string, stats Stats, duration time.Duration) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	runsTotal.Add(ctx, 1, attrs)
	runIterations.Record(ctx, int64(stats.Iterations), attrs)
	runDuration.Record(ctx, duration.Seconds(), attrs)
	if stats.Contradictions > 0 {
		contradictions.Add(ctx, int64(stats.Contradictions))
	}
}
