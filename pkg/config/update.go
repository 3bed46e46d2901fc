package config

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in a
// valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Build, Clean, Relink).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	s = c.Database.Dir
	if s != "" {
		res = append(res, OptDatabaseDir(s))
	}
	s = c.Database.MainFile
	if s != "" {
		res = append(res, OptDatabaseMainFile(s))
	}
	s = c.Database.EvalFile
	if s != "" {
		res = append(res, OptDatabaseEvalFile(s))
	}
	i = c.Database.BatchSize
	if i > 0 {
		res = append(res, OptDatabaseBatchSize(i))
	}
	i = c.Database.StageTimeoutMin
	if i > 0 {
		res = append(res, OptDatabaseStageTimeoutMin(i))
	}

	s = c.Ingest.DataDir
	if s != "" {
		res = append(res, OptIngestDataDir(s))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		slog.Warn("Empty config value, ignoring", "field", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		slog.Warn("Config value has to be a positive number, ignoring",
			"field", name, "value", i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stdout": s, "stderr": s},
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	slog.Warn(
		fmt.Sprintf("%s does not support '%s', valid values: %s. Ignoring",
			name, val, strings.Join(vals, ", ")),
	)
	return false
}
