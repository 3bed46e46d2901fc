// Package iosources loads and resolves the sources.yaml registry.
package iosources

import (
	"os"
	"path/filepath"

	"github.com/pwcdb/pwcdb/pkg/config"
	"github.com/pwcdb/pwcdb/pkg/sources"
	"gopkg.in/yaml.v3"
)

type iosources struct {
	cfg *config.Config
}

func New(cfg *config.Config) sources.Sources {
	res := iosources{cfg: cfg}
	return &res
}

// Load reads sources.yaml from the config directory. A missing file is
// not an error: the built-in defaults match the published snapshots.
func (s *iosources) Load() (*sources.SourcesConfig, error) {
	sourcesPath := config.SourcesFilePath(s.cfg.HomeDir)

	data, err := os.ReadFile(sourcesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return sources.Default(), nil
		}
		return nil, SourcesConfigError(sourcesPath, err)
	}

	var sc sources.SourcesConfig
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, SourcesConfigError(sourcesPath, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, SourcesConfigError(sourcesPath, err)
	}
	return &sc, nil
}

// Resolve filters targets by name and resolves each source file
// against the ingest data directory, checking that the files exist.
func (s *iosources) Resolve(
	sc *sources.SourcesConfig, names []string,
) ([]sources.TargetConfig, error) {
	targets, err := sources.FilterTargets(sc, names)
	if err != nil {
		return nil, UnknownTargetError(err)
	}

	for ti := range targets {
		for fi := range targets[ti].Files {
			f := &targets[ti].Files[fi]
			path := f.File
			if !filepath.IsAbs(path) {
				path = filepath.Join(s.cfg.Ingest.DataDir, path)
			}
			if _, err := os.Stat(path); err != nil {
				return nil, MissingFileError(path, err)
			}
			f.Path = path
		}
	}
	return targets, nil
}
