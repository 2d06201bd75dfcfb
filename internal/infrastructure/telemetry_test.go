package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"featprep/internal/config"
)

func newTestTelemetry(t *testing.T, cfg config.TelemetryConfig) *Telemetry {
	t.Helper()
	var buf bytes.Buffer
	tel, err := InitializeTelemetry(context.Background(), cfg, NewLogger(&buf, "debug"))
	require.NoError(t, err)
	t.Cleanup(func() { tel.Shutdown(context.Background()) })
	return tel
}

func findFamily(t *testing.T, tel *Telemetry, prefix string) *dto.MetricFamily {
	t.Helper()
	families, err := tel.Registry.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if strings.HasPrefix(f.GetName(), prefix) {
			return f
		}
	}
	return nil
}

func TestInitializeTelemetryWithoutExporter(t *testing.T) {
	tel := newTestTelemetry(t, config.TelemetryConfig{TraceExporter: "none"})

	assert.NotNil(t, tel.TracerProvider)
	assert.NotNil(t, tel.Tracer)
	assert.NotNil(t, tel.MeterProvider)
	assert.NotNil(t, tel.Meter)
	assert.NotNil(t, tel.Registry)
	assert.NotNil(t, tel.Metrics)
	assert.NotNil(t, tel.Runtime)

	ctx, end := tel.StartStage(context.Background(), "fit")
	assert.NotEmpty(t, TraceIDFromContext(ctx))
	end(nil)
}

func TestInitializeTelemetryUnsupportedExporter(t *testing.T) {
	_, err := InitializeTelemetry(context.Background(), config.TelemetryConfig{TraceExporter: "otlp"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported trace exporter")
}

func TestStdoutTraceExporterWritesSpans(t *testing.T) {
	traceFile := filepath.Join(t.TempDir(), "out", "trace.json")

	var buf bytes.Buffer
	tel, err := InitializeTelemetry(context.Background(),
		config.TelemetryConfig{TraceExporter: "stdout", TraceFile: traceFile}, NewLogger(&buf, "info"))
	require.NoError(t, err)

	_, end := tel.StartStage(context.Background(), "transform")
	end(errors.New("boom"))

	require.NoError(t, tel.Shutdown(context.Background()))

	content, err := os.ReadFile(traceFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "featprep.transform")
	assert.Contains(t, string(content), "boom")
}

func TestPipelineMetricsRecorded(t *testing.T) {
	tel := newTestTelemetry(t, config.TelemetryConfig{TraceExporter: "none"})
	ctx := context.Background()

	tel.Metrics.ObserveRows(ctx, "fit", 4)
	tel.Metrics.ObserveRows(ctx, "transform", 2)
	tel.Metrics.ObserveUnseen(ctx, "cat", 1)
	tel.Metrics.ObserveUnseen(ctx, "cat", 0)
	tel.Metrics.RecordRun(ctx, nil)

	rows := findFamily(t, tel, "featprep_rows_processed")
	require.NotNil(t, rows)
	var total float64
	for _, m := range rows.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	assert.Equal(t, 6.0, total)

	unseen := findFamily(t, tel, "featprep_categories_unseen")
	require.NotNil(t, unseen)
	require.Len(t, unseen.GetMetric(), 1)
	assert.Equal(t, 1.0, unseen.GetMetric()[0].GetCounter().GetValue())

	assert.NotNil(t, findFamily(t, tel, "featprep_runs"))
}

func TestStageErrorsCounted(t *testing.T) {
	tel := newTestTelemetry(t, config.TelemetryConfig{TraceExporter: "none"})

	_, end := tel.StartStage(context.Background(), "load")
	end(errors.New("bad file"))

	assert.NotNil(t, findFamily(t, tel, "featprep_stage_duration"))
	assert.NotNil(t, findFamily(t, tel, "featprep_stage_errors"))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *PipelineMetrics
	ctx := context.Background()
	m.ObserveRows(ctx, "fit", 1)
	m.ObserveUnseen(ctx, "c", 1)
	m.RecordStage(ctx, "fit", 0, nil)
	m.RecordRun(ctx, nil)

	var tel *Telemetry
	assert.NoError(t, tel.WriteMetrics(filepath.Join(t.TempDir(), "m.prom")))
	assert.NoError(t, tel.Shutdown(ctx))

	_, end := tel.StartStage(ctx, "fit")
	end(nil)
}

func TestWriteMetrics(t *testing.T) {
	tel := newTestTelemetry(t, config.TelemetryConfig{TraceExporter: "none"})
	tel.Metrics.ObserveRows(context.Background(), "fit", 10)

	path := filepath.Join(t.TempDir(), "nested", "metrics.prom")
	require.NoError(t, tel.WriteMetrics(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "featprep_rows_processed")
}

func TestRuntimeMetricsCollect(t *testing.T) {
	tel := newTestTelemetry(t, config.TelemetryConfig{TraceExporter: "none"})

	stats := tel.Runtime.Collect(context.Background())
	require.NotNil(t, stats)
	assert.Greater(t, stats.GoRoutines, int64(0))
	assert.Greater(t, stats.MemorySystem, int64(0))
	assert.NotNil(t, findFamily(t, tel, "featprep_runtime_goroutines"))

	var nilRuntime *RuntimeMetrics
	assert.NotNil(t, nilRuntime.Collect(context.Background()))
}
