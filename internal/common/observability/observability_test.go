package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlp-dashboard/internal/common/config"
	"nlp-dashboard/internal/common/logger"
)

func TestObservability_RecordAndShutdown(t *testing.T) {
	obs := New("nlp-dashboard-test", logger.NewTestLogger(t))
	ctx := context.Background()

	assert.NotPanics(t, func() {
		obs.RecordRefresh(ctx, "ok")
		obs.RecordStage(ctx, "fetch", 12*time.Millisecond)
		obs.Shutdown()
	})
}

func TestObservability_NilSafe(t *testing.T) {
	var obs *Observability
	assert.NotPanics(t, func() {
		obs.RecordRefresh(context.Background(), "ok")
		obs.RecordStage(context.Background(), "fetch", time.Millisecond)
	})
}

func TestSetupTracing_Disabled(t *testing.T) {
	tr, err := SetupTracing(config.TracingConfig{Enabled: false}, "svc", "test")
	require.NoError(t, err)
	assert.NoError(t, tr.Shutdown(context.Background()))

	_, span := Tracer().Start(context.Background(), "noop")
	span.End()
}

func TestSetupTracing_Enabled(t *testing.T) {
	tr, err := SetupTracing(config.TracingConfig{
		Enabled:           true,
		CollectorEndpoint: "http://127.0.0.1:14268/api/traces",
		SampleRatio:       1,
	}, "svc", "test")
	require.NoError(t, err)

	_, span := Tracer().Start(context.Background(), "exported")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = tr.Shutdown(ctx)
}
