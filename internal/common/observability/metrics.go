package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability owns the OpenTelemetry meter and tracer providers for the process.
type Observability struct {
	meterProvider  *metric.MeterProvider
	meter          otelmetric.Meter
	refreshCounter otelmetric.Int64Counter
	stageDuration  otelmetric.Float64Histogram
	tracing        *Tracing
}

type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

// New registers a Prometheus-backed meter provider. Failures degrade to a no-op recorder.
func New(serviceName string, log Logger) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Warn("failed to create prometheus exporter", map[string]interface{}{"error": err.Error()})
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	refreshCounter, _ := meter.Int64Counter(
		"dashboard.refreshes",
		otelmetric.WithDescription("Number of dashboard refreshes served"),
	)

	stageDuration, _ := meter.Float64Histogram(
		"dashboard.stage.duration",
		otelmetric.WithDescription("Duration of each pipeline stage"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:  provider,
		meter:          meter,
		refreshCounter: refreshCounter,
		stageDuration:  stageDuration,
	}
}

// RecordRefresh counts one dashboard refresh with its final status.
func (o *Observability) RecordRefresh(ctx context.Context, status string) {
	if o == nil || o.refreshCounter == nil {
		return
	}
	o.refreshCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("status", status),
	))
}

// RecordStage records how long one pipeline stage (fetch, sentiment, entities, categories, render) took.
func (o *Observability) RecordStage(ctx context.Context, stage string, duration time.Duration) {
	if o == nil || o.stageDuration == nil {
		return
	}
	o.stageDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
		attribute.String("stage", stage),
	))
}

// AttachTracing makes Shutdown flush the given tracer provider as well.
func (o *Observability) AttachTracing(t *Tracing) {
	o.tracing = t
}

func (o *Observability) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
	if o.tracing != nil {
		_ = o.tracing.Shutdown(ctx)
	}
}
