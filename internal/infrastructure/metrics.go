package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var timeNow = time.Now

// PipelineMetrics holds the preprocessing instruments
type PipelineMetrics struct {
	RowsProcessed    metric.Int64Counter
	UnseenCategories metric.Int64Counter
	StageDuration    metric.Float64Histogram
	StageErrors      metric.Int64Counter
	Runs             metric.Int64Counter
}

// NewPipelineMetrics creates the preprocessing instruments on meter
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	rowsProcessed, err := meter.Int64Counter(
		"featprep.rows.processed",
		metric.WithDescription("Rows passed through fit or transform"),
	)
	if err != nil {
		return nil, err
	}

	unseenCategories, err := meter.Int64Counter(
		"featprep.categories.unseen",
		metric.WithDescription("Categorical cells replaced by the fallback class at transform time"),
	)
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram(
		"featprep.stage.duration",
		metric.WithDescription("Pipeline stage duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	stageErrors, err := meter.Int64Counter(
		"featprep.stage.errors",
		metric.WithDescription("Pipeline stages that returned an error"),
	)
	if err != nil {
		return nil, err
	}

	runs, err := meter.Int64Counter(
		"featprep.runs",
		metric.WithDescription("Completed pipeline runs by status"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		RowsProcessed:    rowsProcessed,
		UnseenCategories: unseenCategories,
		StageDuration:    stageDuration,
		StageErrors:      stageErrors,
		Runs:             runs,
	}, nil
}

// ObserveRows records rows handled in the given mode ("fit" or "transform")
func (m *PipelineMetrics) ObserveRows(ctx context.Context, mode string, rows int) {
	if m == nil {
		return
	}
	m.RowsProcessed.Add(ctx, int64(rows), metric.WithAttributes(attribute.String("mode", mode)))
}

// ObserveUnseen records cells of column that fell back to the default class
func (m *PipelineMetrics) ObserveUnseen(ctx context.Context, column string, count int) {
	if m == nil || count == 0 {
		return
	}
	m.UnseenCategories.Add(ctx, int64(count), metric.WithAttributes(attribute.String("column", column)))
}

// RecordStage records the duration and outcome of a pipeline stage
func (m *PipelineMetrics) RecordStage(ctx context.Context, stage string, duration time.Duration, err error) {
	if m == nil {
		return
	}

	attrs := []attribute.KeyValue{attribute.String("stage", stage), statusAttr(err)}
	m.StageDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))

	if err != nil {
		m.StageErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage)))
	}
}

// RecordRun counts one finished pipeline run
func (m *PipelineMetrics) RecordRun(ctx context.Context, err error) {
	if m == nil {
		return
	}
	m.Runs.Add(ctx, 1, metric.WithAttributes(statusAttr(err)))
}

func statusAttr(err error) attribute.KeyValue {
	if err != nil {
		return attribute.String("status", "failure")
	}
	return attribute.String("status", "success")
}
