package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitLogger_JSONWithTraceContext(t *testing.T) {
	var buf bytes.Buffer
	initLogger(&buf, "clinic", "production", "debug")

	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	LoggerFromContext(ctx).Info().Msg("saved")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "clinic", line["service"])
	assert.Equal(t, "saved", line["message"])
	assert.Equal(t, span.SpanContext().TraceID().String(), line["trace_id"])
}

func TestInitLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	initLogger(&buf, "clinic", "production", "verbose")

	GetLogger().Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	GetLogger().Info().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestMetricsHelpers_NoopProvider(t *testing.T) {
	metrics, err := InitMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordRequestMetric(ctx, metrics, "GET", "/api/patients", 200, time.Millisecond)
		RecordDBMetric(ctx, metrics, "insert", "patients", time.Millisecond)
		RecordConflict(ctx, metrics, 5)
		RecordDBMetric(ctx, nil, "insert", "patients", time.Millisecond)
	})
}
