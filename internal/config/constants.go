package config

// Application constants
const (
	// Application Info
	AppName    = "featprep"
	AppVersion = "1.0.0"

	// File Paths (relative to the base directory)
	DefaultOutputDir = "data/processed"
	DefaultLogsDir   = "logs"

	// Output files
	FeatureSummaryFileName = "feature_summary.csv"

	// Log Settings
	DefaultLogLevel = "info"

	// Split names
	SplitTrain      = "train"
	SplitValidation = "validation"
	SplitTest       = "test"

	// Settings keys read by the pipeline
	KeyTestSize       = "data.test_size"
	KeyValidationSize = "data.validation_size"
	KeyRandomState    = "data.random_state"
	KeySheet          = "data.sheet"
)
