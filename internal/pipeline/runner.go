package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"featprep/internal/config"
	"featprep/internal/dataset"
	apperrors "featprep/internal/errors"
	"featprep/internal/exporter"
	"featprep/internal/infrastructure"
	"featprep/internal/preprocess"
	"featprep/internal/validation"
	"featprep/pkg/contracts/domain"
)

// Stage names used for spans, metrics and the manifest
const (
	StageValidate  = "validate"
	StageLoad      = "load"
	StageSplit     = "split"
	StageFit       = "fit"
	StageTransform = "transform"
	StageExport    = "export"
)

// Request describes one run
type Request struct {
	DataPath string
	// Target is split off before fitting; empty keeps every column a feature
	Target string
	// OutputDir overrides the configured output directory when set
	OutputDir string
}

// Result summarises a completed run
type Result struct {
	RunID        string
	Rows         map[string]int
	FeatureNames []string
	Files        []string
	Summary      []domain.ColumnSummary
	Manifest     *Manifest
}

// Runner executes preprocessing runs against one configuration
type Runner struct {
	cfg       *config.Config
	telemetry *infrastructure.Telemetry
	logger    *slog.Logger
	validator *validation.FileValidator
}

// NewRunner creates a runner. telemetry may be nil.
func NewRunner(cfg *config.Config, telemetry *infrastructure.Telemetry, logger *slog.Logger) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	logger = infrastructure.WithComponent(logger, "pipeline")
	return &Runner{
		cfg:       cfg,
		telemetry: telemetry,
		logger:    logger,
		validator: validation.NewFileValidator(logger),
	}
}

func (r *Runner) observer() preprocess.Observer {
	if r.telemetry == nil {
		return nil
	}
	return r.telemetry.Metrics
}

func (r *Runner) splitOptions() dataset.SplitOptions {
	s := r.cfg.Settings
	return dataset.SplitOptions{
		TestSize:       s.Float(config.KeyTestSize, 0.2),
		ValidationSize: s.Float(config.KeyValidationSize, 0.2),
		Seed:           int64(s.Int(config.KeyRandomState, 42)),
	}
}

func (r *Runner) resolvePaths(outputDir string) (*config.Paths, error) {
	pathsCfg := r.cfg.Paths
	if outputDir != "" {
		pathsCfg.OutputDir = outputDir
	}
	paths, err := config.GetPaths("", pathsCfg)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to resolve paths", err)
	}
	return paths, nil
}

// stage runs fn inside a span and records it in the manifest
func (r *Runner) stage(ctx context.Context, m *Manifest, name string, fn func(ctx context.Context) error) error {
	ctx, end := r.telemetry.StartStage(ctx, name, attribute.String("run_id", m.RunID))
	start := time.Now()

	err := fn(ctx)

	end(err)
	m.recordStage(name, start, err)
	if err != nil {
		infrastructure.WithError(r.logger, err).ErrorContext(ctx, "Stage failed",
			slog.String("stage", name),
			slog.String("error_type", string(apperrors.TypeOf(err))))
	} else {
		r.logger.DebugContext(ctx, "Stage completed",
			slog.String("stage", name),
			slog.Duration("duration", time.Since(start)))
	}
	return err
}

// Run validates, loads, splits, fits, transforms and exports req.DataPath
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	runID := infrastructure.GetRunID(ctx)
	m := newManifest(runID, req)

	r.logger.InfoContext(ctx, "Starting preprocessing run",
		slog.String("data_path", req.DataPath),
		slog.String("target", req.Target))

	result, err := r.run(ctx, req, m)
	m.finish(err)

	if r.telemetry != nil {
		r.telemetry.Runtime.Collect(ctx)
		r.telemetry.Metrics.RecordRun(ctx, err)
		if path := r.cfg.Telemetry.MetricsFile; path != "" {
			if werr := r.telemetry.WriteMetrics(path); werr != nil {
				r.logger.WarnContext(ctx, "Failed to write metrics file",
					slog.String("path", path),
					slog.String("error", werr.Error()))
			}
		}
	}

	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "Preprocessing run completed",
		slog.Any("rows", result.Rows),
		slog.Int("features", len(result.FeatureNames)),
		slog.Int("files", len(result.Files)))
	return result, nil
}

func (r *Runner) run(ctx context.Context, req Request, m *Manifest) (*Result, error) {
	paths, err := r.resolvePaths(req.OutputDir)
	if err != nil {
		return nil, err
	}
	// The manifest is written even when a later stage fails
	defer func() {
		path := paths.GetOutputPath(ManifestFileName)
		if err := m.Save(path); err != nil {
			r.logger.WarnContext(ctx, "Failed to save run manifest",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
	}()

	err = r.stage(ctx, m, StageValidate, func(ctx context.Context) error {
		if err := r.validator.ValidateDataFile(req.DataPath); err != nil {
			return err
		}
		return r.validator.ValidateOutputDirectory(paths.OutputDir)
	})
	if err != nil {
		return nil, err
	}

	var (
		features *dataset.Frame
		target   *dataset.Target
	)
	err = r.stage(ctx, m, StageLoad, func(ctx context.Context) error {
		loader := dataset.NewLoader(r.logger)
		loader.Sheet = r.cfg.Settings.String(config.KeySheet, "")
		features, target, err = loader.Load(ctx, req.DataPath, req.Target)
		return err
	})
	if err != nil {
		return nil, err
	}

	var splits *dataset.Splits
	err = r.stage(ctx, m, StageSplit, func(ctx context.Context) error {
		opts := r.splitOptions()
		splits, err = dataset.Split(features, target, opts)
		if err != nil {
			return err
		}
		for _, p := range splits.Partitions() {
			m.setRows(p.Name, len(p.Rows))
		}
		r.logger.InfoContext(ctx, "Split data",
			slog.Int(config.SplitTrain, len(splits.Train.Rows)),
			slog.Int(config.SplitValidation, len(splits.Validation.Rows)),
			slog.Int(config.SplitTest, len(splits.Test.Rows)),
			slog.Int64("seed", opts.Seed))
		return nil
	})
	if err != nil {
		return nil, err
	}

	prep := preprocess.New(preprocess.WithLogger(r.logger), preprocess.WithObserver(r.observer()))
	outputs := make(map[string]*preprocess.Output, 3)

	err = r.stage(ctx, m, StageFit, func(ctx context.Context) error {
		out, err := prep.Preprocess(ctx, splits.Train.Features, true)
		if err != nil {
			return err
		}
		outputs[config.SplitTrain] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	fitted, _ := prep.Fitted()
	m.FeatureNames = fitted.FeatureNames()

	err = r.stage(ctx, m, StageTransform, func(ctx context.Context) error {
		held := []dataset.Partition{splits.Validation, splits.Test}
		results := make([]*preprocess.Output, len(held))

		g, gctx := errgroup.WithContext(ctx)
		for i, p := range held {
			g.Go(func() error {
				out, err := prep.Preprocess(gctx, p.Features, false)
				if err != nil {
					return fmt.Errorf("%s split: %w", p.Name, err)
				}
				results[i] = out
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		for i, p := range held {
			outputs[p.Name] = results[i]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, m, StageExport, func(ctx context.Context) error {
		exp := exporter.NewFeatureExporter(paths, r.logger)
		for _, p := range splits.Partitions() {
			path, err := exp.ExportOutput(ctx, paths.GetSplitPath(p.Name), outputs[p.Name])
			if err != nil {
				return err
			}
			m.addFile(path)

			if p.Target == nil {
				continue
			}
			path, err = exp.ExportTarget(ctx, paths.GetTargetPath(p.Name), p.Target)
			if err != nil {
				return err
			}
			m.addFile(path)
		}

		path, err := exp.ExportSummary(ctx, paths.FeatureSummaryCSV, fitted)
		if err != nil {
			return err
		}
		m.addFile(path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.addFile(paths.GetOutputPath(ManifestFileName))

	return &Result{
		RunID:        m.RunID,
		Rows:         copyRows(m),
		FeatureNames: fitted.FeatureNames(),
		Files:        append([]string(nil), m.Files...),
		Summary:      fitted.Summary(),
		Manifest:     m,
	}, nil
}

func copyRows(m *Manifest) map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := make(map[string]int, len(m.Rows))
	for k, v := range m.Rows {
		rows[k] = v
	}
	return rows
}

// Describe loads path, fits on every row and returns the fitted column
// summaries without writing anything
func (r *Runner) Describe(ctx context.Context, path, target string) ([]domain.ColumnSummary, error) {
	ctx = infrastructure.EnsureRunID(ctx)

	if err := r.validator.ValidateDataFile(path); err != nil {
		return nil, err
	}

	loader := dataset.NewLoader(r.logger)
	loader.Sheet = r.cfg.Settings.String(config.KeySheet, "")

	loadCtx, end := r.telemetry.StartStage(ctx, StageLoad)
	features, _, err := loader.Load(loadCtx, path, target)
	end(err)
	if err != nil {
		return nil, err
	}

	fitCtx, end := r.telemetry.StartStage(ctx, StageFit)
	fitted, _, err := preprocess.Fit(fitCtx, features, preprocess.WithLogger(r.logger), preprocess.WithObserver(r.observer()))
	end(err)
	if err != nil {
		return nil, err
	}

	return fitted.Summary(), nil
}
