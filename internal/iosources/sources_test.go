package iosources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pwcdb/pwcdb/internal/iofs"
	"github.com/pwcdb/pwcdb/pkg/config"
	"github.com/pwcdb/pwcdb/pkg/errcode"
	"github.com/pwcdb/pwcdb/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	home := t.TempDir()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(home),
		config.OptIngestDataDir(filepath.Join(home, "raw_data")),
	})
	require.NoError(t, os.MkdirAll(cfg.Ingest.DataDir, 0755))
	return cfg
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg := testConfig(t)

	sc, err := New(cfg).Load()
	require.NoError(t, err)
	require.Len(t, sc.Targets, 2)
	assert.Equal(t, "main", sc.Targets[0].Name)
	assert.Equal(t, "eval", sc.Targets[1].Name)
}

func TestLoadFromFile(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, iofs.EnsureDirs(cfg.HomeDir))

	yml := `targets:
  - name: tiny
    db_file: tiny.db
    files:
      - kind: papers
        file: p.json
`
	path := config.SourcesFilePath(cfg.HomeDir)
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	sc, err := New(cfg).Load()
	require.NoError(t, err)
	require.Len(t, sc.Targets, 1)
	assert.Equal(t, "tiny", sc.Targets[0].Name)
	assert.Equal(t, sources.KindPapers, sc.Targets[0].Files[0].Kind)
}

func TestLoadRejectsBadKind(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, iofs.EnsureDirs(cfg.HomeDir))

	yml := `targets:
  - name: tiny
    db_file: tiny.db
    files:
      - kind: nope
        file: p.json
`
	path := config.SourcesFilePath(cfg.HomeDir)
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	_, err := New(cfg).Load()
	require.Error(t, err)
	assert.Equal(t, errcode.SourcesConfigError, errcode.CodeOf(err))
}

func TestResolve(t *testing.T) {
	cfg := testConfig(t)
	s := New(cfg)

	sc := &sources.SourcesConfig{
		Targets: []sources.TargetConfig{
			{
				Name:   "main",
				DBFile: "papers.db",
				Files: []sources.SourceFile{
					{Kind: sources.KindPapers, File: "p.json"},
				},
			},
		},
	}

	// File absent: resolution fails with a missing-file code.
	_, err := s.Resolve(sc, nil)
	require.Error(t, err)
	assert.Equal(t, errcode.SourcesMissingFileError, errcode.CodeOf(err))

	// File present: path is filled in.
	p := filepath.Join(cfg.Ingest.DataDir, "p.json")
	require.NoError(t, os.WriteFile(p, []byte("[]"), 0644))

	targets, err := s.Resolve(sc, nil)
	require.NoError(t, err)
	assert.Equal(t, p, targets[0].Files[0].Path)
}

func TestResolveUnknownTarget(t *testing.T) {
	cfg := testConfig(t)
	s := New(cfg)

	_, err := s.Resolve(sources.Default(), []string{"nope"})
	require.Error(t, err)
	assert.Equal(t, errcode.SourcesUnknownTargetError, errcode.CodeOf(err))
}
