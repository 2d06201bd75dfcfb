package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths
// This is the single source of truth for every file a run writes
type Paths struct {
	BaseDir   string
	OutputDir string
	LogsDir   string

	// Well-known output files
	FeatureSummaryCSV string
}

// GetPaths resolves the configured directories against baseDir. Absolute
// configured paths are used as-is.
func GetPaths(baseDir string, cfg PathsConfig) (*Paths, error) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		baseDir = wd
	}

	base, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}

	outputDir := resolve(cfg.OutputDir)

	return &Paths{
		BaseDir:   base,
		OutputDir: outputDir,
		LogsDir:   resolve(cfg.LogsDir),

		FeatureSummaryCSV: filepath.Join(outputDir, FeatureSummaryFileName),
	}, nil
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.OutputDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// GetOutputPath returns the path for an output file
func (p *Paths) GetOutputPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// GetSplitPath returns the processed feature file for a named split.
func (p *Paths) GetSplitPath(split string) string {
	return filepath.Join(p.OutputDir, split+".csv")
}

// GetTargetPath returns the label file written next to a split.
func (p *Paths) GetTargetPath(split string) string {
	return filepath.Join(p.OutputDir, "targets_"+split+".csv")
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs the resolved directories
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("base", p.BaseDir),
			slog.String("output", p.OutputDir),
			slog.String("logs", p.LogsDir),
		))
}
