// Package sources describes the snapshot files and database targets
// listed in sources.yaml. The package is pure; loading the file is
// done by internal/iosources.
package sources

import (
	"fmt"
	"strings"
)

// Sources loads the registry file and resolves targets to on-disk
// snapshot files.
type Sources interface {
	Load() (*SourcesConfig, error)
	Resolve(sc *SourcesConfig, names []string) ([]TargetConfig, error)
}

// Kind identifies the record schema of a snapshot file.
type Kind string

const (
	// KindPapers is the papers-with-abstracts snapshot.
	KindPapers Kind = "papers"
	// KindMethods is the methods catalog snapshot.
	KindMethods Kind = "methods"
	// KindDatasets is the datasets catalog snapshot.
	KindDatasets Kind = "datasets"
	// KindEvaluations is the evaluation-tables snapshot ingested into
	// the main target as flat task summaries.
	KindEvaluations Kind = "evaluations"
	// KindCodeLinks is the links-between-papers-and-code snapshot.
	KindCodeLinks Kind = "code_links"
	// KindEvalTables is the evaluation-tables snapshot ingested into
	// the evaluation target with full leaderboard detail.
	KindEvalTables Kind = "eval_tables"
)

// Valid reports whether k names a known snapshot schema.
func (k Kind) Valid() bool {
	switch k {
	case KindPapers, KindMethods, KindDatasets, KindEvaluations,
		KindCodeLinks, KindEvalTables:
		return true
	}
	return false
}

// SourceFile is one snapshot file of a target.
type SourceFile struct {
	Kind Kind   `yaml:"kind"`
	File string `yaml:"file"`

	// Path is the resolved absolute location, filled in by the loader.
	Path string `yaml:"-"`
}

// TargetConfig describes one database target and its snapshot files.
type TargetConfig struct {
	// Name identifies the target ("main", "eval").
	Name string `yaml:"name"`

	// DBFile is the database file name, relative to Database.Dir.
	DBFile string `yaml:"db_file"`

	Files []SourceFile `yaml:"files"`
}

// SourcesConfig is the parsed content of sources.yaml.
type SourcesConfig struct {
	Targets []TargetConfig `yaml:"targets"`
}

// Validate checks target names and file kinds for obvious mistakes.
func (sc *SourcesConfig) Validate() error {
	if len(sc.Targets) == 0 {
		return fmt.Errorf("sources config lists no targets")
	}
	seen := make(map[string]bool)
	for _, t := range sc.Targets {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return fmt.Errorf("target with empty name")
		}
		if seen[name] {
			return fmt.Errorf("duplicate target %q", name)
		}
		seen[name] = true
		if strings.TrimSpace(t.DBFile) == "" {
			return fmt.Errorf("target %q has no db_file", name)
		}
		for _, f := range t.Files {
			if !f.Kind.Valid() {
				return fmt.Errorf(
					"target %q: unknown source kind %q", name, f.Kind)
			}
			if strings.TrimSpace(f.File) == "" {
				return fmt.Errorf(
					"target %q: source of kind %q has no file", name, f.Kind)
			}
		}
	}
	return nil
}

// FilterTargets returns the targets matching the requested names, in
// config order. Empty names means all targets.
func FilterTargets(
	sc *SourcesConfig, names []string,
) ([]TargetConfig, error) {
	if len(names) == 0 {
		return sc.Targets, nil
	}

	wanted := make(map[string]bool)
	for _, n := range names {
		wanted[strings.TrimSpace(n)] = true
	}

	var res []TargetConfig
	for _, t := range sc.Targets {
		if wanted[t.Name] {
			res = append(res, t)
			delete(wanted, t.Name)
		}
	}

	if len(wanted) > 0 {
		missing := make([]string, 0, len(wanted))
		for n := range wanted {
			missing = append(missing, n)
		}
		return nil, fmt.Errorf(
			"unknown targets: %s", strings.Join(missing, ", "))
	}
	return res, nil
}

// Default returns the built-in sources configuration matching the
// published snapshot file names.
func Default() *SourcesConfig {
	return &SourcesConfig{
		Targets: []TargetConfig{
			{
				Name:   "main",
				DBFile: "papers.db",
				Files: []SourceFile{
					{Kind: KindPapers, File: "papers-with-abstracts.json"},
					{Kind: KindMethods, File: "methods.json"},
					{Kind: KindDatasets, File: "datasets.json"},
					{Kind: KindEvaluations, File: "evaluation-tables.json"},
					{Kind: KindCodeLinks, File: "links-between-papers-and-code.json"},
				},
			},
			{
				Name:   "eval",
				DBFile: "evaluations.db",
				Files: []SourceFile{
					{Kind: KindEvalTables, File: "evaluation-tables.json"},
				},
			},
		},
	}
}
