// Package config provides configuration management for featprep.
// It loads typed process settings and the free-form nested settings tree used
// by the pipeline, and resolves the directories a run writes to.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. Configuration file (YAML)
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern FEATPREP_<SECTION>_<FIELD>:
//
//	FEATPREP_LOGGING_LEVEL=debug
//	FEATPREP_LOGGING_OUTPUT=console
//	FEATPREP_PATHS_OUTPUT_DIR=/tmp/out
//	FEATPREP_TELEMETRY_METRICS_FILE=/var/lib/node_exporter/featprep.prom
//
// # Settings Tree
//
// Sections the typed Config does not model (data, models, evaluation) are
// kept in a Store and read by dotted path with a default:
//
//	testSize := cfg.Settings.Float("data.test_size", 0.2)
//	trees := cfg.Settings.Int("models.random_forest.n_estimators", 100)
//
// A section present in the file replaces the whole built-in section of the
// same name.
//
// # Usage
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths, err := config.GetPaths("", cfg.Paths)
package config
