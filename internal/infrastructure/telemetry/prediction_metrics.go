package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/carebox/diabetes-risk/internal/infrastructure/telemetry"

// Instrument names.
const (
	MetricPredictions        = "predictions_total"
	MetricPredictionFailures = "prediction_failures_total"
	MetricPredictionDuration = "prediction_duration_seconds"
)

// PredictionMetrics implements port.PredictionMetrics with OpenTelemetry
// instruments.
type PredictionMetrics struct {
	predictions metric.Int64Counter
	failures    metric.Int64Counter
	duration    metric.Float64Histogram
}

// NewPredictionMetrics registers the prediction instruments on provider.
func NewPredictionMetrics(provider metric.MeterProvider) (*PredictionMetrics, error) {
	meter := provider.Meter(meterName)

	predictions, err := meter.Int64Counter(MetricPredictions,
		metric.WithDescription("Successful predictions by label and risk level."))
	if err != nil {
		return nil, fmt.Errorf("telemetry: %s: %w", MetricPredictions, err)
	}

	failures, err := meter.Int64Counter(MetricPredictionFailures,
		metric.WithDescription("Failed predictions by failure kind."))
	if err != nil {
		return nil, fmt.Errorf("telemetry: %s: %w", MetricPredictionFailures, err)
	}

	duration, err := meter.Float64Histogram(MetricPredictionDuration,
		metric.WithDescription("Time spent running the prediction pipeline."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: %s: %w", MetricPredictionDuration, err)
	}

	return &PredictionMetrics{
		predictions: predictions,
		failures:    failures,
		duration:    duration,
	}, nil
}

// RecordPrediction counts a successful prediction and observes its latency.
func (m *PredictionMetrics) RecordPrediction(ctx context.Context, label, tier string, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("prediction", label),
		attribute.String("risk_level", tier),
	)
	m.predictions.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordFailure counts a failed prediction.
func (m *PredictionMetrics) RecordFailure(ctx context.Context, kind string) {
	m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) RecordPrediction(context.Context, string, string, time.Duration) {}
func (NopMetrics) RecordFailure(context.Context, string)                           {}
