package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseDir sets the directory where database files are created.
func OptDatabaseDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Dir", s) {
			c.Database.Dir = s
		}
	}
}

// OptDatabaseMainFile sets the file name of the main catalog database.
func OptDatabaseMainFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database MainFile", s) {
			c.Database.MainFile = s
		}
	}
}

// OptDatabaseEvalFile sets the file name of the evaluation database.
func OptDatabaseEvalFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database EvalFile", s) {
			c.Database.EvalFile = s
		}
	}
}

// OptDatabaseBatchSize sets the number of records committed per
// transaction during ingestion.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptDatabaseStageTimeoutMin sets the per-stage deadline in minutes.
func OptDatabaseStageTimeoutMin(i int) Option {
	return func(c *Config) {
		if isValidInt("Stage Timeout", i) {
			c.Database.StageTimeoutMin = i
		}
	}
}

// OptIngestDataDir sets the directory holding the JSON snapshot files.
func OptIngestDataDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Ingest DataDir", s) {
			c.Ingest.DataDir = s
		}
	}
}

// OptBuildTargets sets the database targets to build.
func OptBuildTargets(targets []string) Option {
	return func(c *Config) {
		c.Build.Targets = targets
	}
}

// OptBuildWithClean enables the spam-removal stage during build.
func OptBuildWithClean(b bool) Option {
	return func(c *Config) {
		c.Build.WithClean = b
	}
}

// OptCleanApply switches the clean command from dry-run to apply mode.
func OptCleanApply(b bool) Option {
	return func(c *Config) {
		c.Clean.Apply = b
	}
}

// OptCleanCategories restricts classification to the named categories.
func OptCleanCategories(cats []string) Option {
	return func(c *Config) {
		c.Clean.Categories = cats
	}
}

// OptRelinkPapersFile overrides the papers snapshot used by relink.
func OptRelinkPapersFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Relink PapersFile", s) {
			c.Relink.PapersFile = s
		}
	}
}

// OptLogFormat sets the log output format ('json' or 'text').
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogLevel sets the log level ('debug', 'info', 'warn', 'error').
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogDestination sets where logs are written
// ('file', 'stdout', 'stderr').
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for CPU-bound
// map phases.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory used to derive config, cache and
// log locations.
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Dir", s) {
			c.HomeDir = s
		}
	}
}
