// Package config provides configuration management for pwcdb.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation failures are reported through slog warnings and
// leave the config in a valid state.
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// defaults.
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: dir, main_file, eval_file, batch_size, stage_timeout_min
//   - Ingest: data_dir
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Build.Targets, Build.WithClean (per-command)
//   - Clean.Apply, Clean.Categories (per-command)
//   - Relink.PapersFile (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use PWCDB_ prefix with underscores for nesting:
//
//	PWCDB_DATABASE_DIR=/var/lib/pwcdb
//	PWCDB_DATABASE_BATCH_SIZE=5000
//	PWCDB_LOG_LEVEL=info
//	PWCDB_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete pwcdb configuration.
type Config struct {
	// Database contains SQLite store settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Ingest contains settings for locating snapshot files.
	Ingest IngestConfig `mapstructure:"ingest" yaml:"ingest"`

	// Build contains settings specific to the build command.
	Build BuildConfig `mapstructure:"-" yaml:"-"`

	// Clean contains settings specific to the clean command.
	Clean CleanConfig `mapstructure:"-" yaml:"-"`

	// Relink contains settings specific to the relink command.
	Relink RelinkConfig `mapstructure:"-" yaml:"-"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for CPU-bound
	// map phases (JSON decode, spam classification, mention matching).
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories
	// reside. It is set by the CLI during init, there is no default.
	HomeDir string `mapstructure:"-" yaml:"-"`
}

// DatabaseConfig contains SQLite target store parameters.
type DatabaseConfig struct {
	// Dir is the directory where the database files are created.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// MainFile is the file name of the main catalog database.
	MainFile string `mapstructure:"main_file" yaml:"main_file"`

	// EvalFile is the file name of the evaluation database.
	EvalFile string `mapstructure:"eval_file" yaml:"eval_file"`

	// BatchSize defines the number of records committed per
	// transaction during ingestion. A crash mid-file loses at most one
	// batch. Larger batches are faster but lose more work on failure.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// StageTimeoutMin is the deadline, in minutes, applied to every
	// orchestrated stage. A stuck stage fails the run instead of
	// hanging it.
	StageTimeoutMin int `mapstructure:"stage_timeout_min" yaml:"stage_timeout_min"`
}

// IngestConfig contains settings for locating input snapshot files.
type IngestConfig struct {
	// DataDir is the directory holding the downloaded JSON snapshot
	// files. Individual file names come from sources.yaml.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
}

// BuildConfig contains runtime settings for the build command.
type BuildConfig struct {
	// Targets lists the database targets to build. Empty means all
	// targets from sources.yaml.
	Targets []string

	// WithClean enables the spam-removal stage in apply mode during
	// build. Default is off: classification runs dry, reporting only.
	WithClean bool
}

// CleanConfig contains runtime settings for the clean command.
type CleanConfig struct {
	// Apply performs deletions. When false (default) classification
	// runs in dry-run mode: counting and reporting without mutation.
	Apply bool

	// Categories restricts classification to the named rule
	// categories. Empty means all categories plus the structural rule.
	Categories []string
}

// RelinkConfig contains runtime settings for the relink command.
type RelinkConfig struct {
	// PapersFile overrides the papers snapshot file used to rebuild
	// paper-method relationships.
	PapersFile string
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'.
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or
	// STDOUT.
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Dir:             ".",
			MainFile:        "papers.db",
			EvalFile:        "evaluations.db",
			BatchSize:       1000,
			StageTimeoutMin: 60,
		},
		Ingest: IngestConfig{
			DataDir: "raw_data",
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
