package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"featprep/internal/config"
	"featprep/internal/infrastructure"
	"featprep/pkg/contracts"
)

// globalOptions are the flags shared by every subcommand
type globalOptions struct {
	configPath string
	logLevel   string
	logFile    string
	trace      string
}

// session holds what a subcommand needs once flags and config are resolved
type session struct {
	cfg       *config.Config
	logger    *slog.Logger
	telemetry *infrastructure.Telemetry
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Fit and apply tabular feature preprocessing",
		Long: `featprep imputes missing values, label-encodes categorical columns and
standardises numeric columns. Statistics are learned on the training split
only and replayed on the validation and test splits.`,
		Version:       contracts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate(contracts.GetFullVersionString() + "\n")

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Also write logs to this file")
	cmd.PersistentFlags().StringVar(&opts.trace, "trace", "", "Write spans as JSON to this file")

	cmd.AddCommand(newRunCmd(opts))
	cmd.AddCommand(newDescribeCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig reads the config file and applies flag overrides
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.logFile != "" {
		cfg.Logging.Output = "both"
		cfg.Logging.FilePath = o.logFile
	}
	if o.trace != "" {
		cfg.Telemetry.TraceExporter = "stdout"
		cfg.Telemetry.TraceFile = o.trace
	}
	return cfg, nil
}

// open loads config and starts logging and telemetry
func (o *globalOptions) open(ctx context.Context) (*session, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	tel, err := infrastructure.InitializeTelemetry(ctx, cfg.Telemetry, logger)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, logger: logger, telemetry: tel}, nil
}

// close flushes telemetry and the log file
func (s *session) close(ctx context.Context) {
	if err := s.telemetry.Shutdown(context.WithoutCancel(ctx)); err != nil {
		s.logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
	}
	infrastructure.CloseLogFile()
}
