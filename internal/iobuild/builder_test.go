package iobuild_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pwcdb/pwcdb/internal/iobuild"
	"github.com/pwcdb/pwcdb/internal/iosources"
	"github.com/pwcdb/pwcdb/internal/iotesting"
	"github.com/pwcdb/pwcdb/pkg/errcode"
	"github.com/pwcdb/pwcdb/pkg/pwcdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func writeSnapshots(t *testing.T, dataDir string) {
	t.Helper()
	writeFile(t, dataDir, "papers-with-abstracts.json", `[
		{
			"paper_url": "https://pwc/paper/attention",
			"title": "Attention Is All You Need",
			"date": "2017-06-12",
			"authors": ["Ashish Vaswani"],
			"tasks": ["Machine Translation"],
			"methods": [
				{"url": "https://pwc/method/transformer",
				 "name": "Transformer"}
			]
		}
	]`)
	writeFile(t, dataDir, "methods.json", `[
		{
			"url": "https://pwc/method/transformer",
			"name": "Transformer",
			"introduced_year": 2017,
			"collections": [
				{"area_id": "general", "area": "General",
				 "collection": "Attention Mechanisms"}
			]
		}
	]`)
	writeFile(t, dataDir, "datasets.json", `[
		{"url": "https://pwc/dataset/wmt14", "name": "WMT 2014",
		 "homepage": "https://statmt.org/wmt14"}
	]`)
	writeFile(t, dataDir, "evaluation-tables.json", `[
		{
			"task": "Machine Translation",
			"categories": ["Natural Language Processing"],
			"datasets": [
				{
					"dataset": "WMT2014 English-German",
					"sota": {
						"metrics": ["BLEU"],
						"rows": [
							{
								"paper_url": "https://pwc/paper/attention",
								"paper_title": "Attention Is All You Need",
								"model_name": "Transformer Big",
								"metrics": {"BLEU": 28.4}
							}
						]
					}
				}
			]
		}
	]`)
	writeFile(t, dataDir, "links-between-papers-and-code.json", `[
		{"paper_url": "https://pwc/paper/attention",
		 "repo_url": "https://github.com/tensorflow/tensor2tensor",
		 "is_official": true}
	]`)
}

func TestBuildAllTargets(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.TestConfig(t)
	writeSnapshots(t, cfg.Ingest.DataDir)

	b := iobuild.New(cfg, iosources.New(cfg))
	rep, err := b.Build(ctx)
	require.NoError(t, err)

	require.Len(t, rep.Targets, 2)
	assert.NotEmpty(t, rep.RunID)
	assert.True(t, rep.Succeeded())

	for _, tr := range rep.Targets {
		assert.Equal(t, pwcdb.StateDone, tr.State, tr.Target)
		for _, st := range tr.Stages {
			assert.False(t, st.Failed(),
				"%s stage %s: %v", tr.Target, st.Stage, st.Err)
		}
	}

	// Main target: schema, five ingest files, relink, clean, index,
	// stats.
	main := rep.Targets[0]
	assert.Equal(t, "main", main.Target)
	assert.Len(t, main.Stages, 10)

	// Eval target has no papers snapshot and no method catalog, so
	// relink and clean are skipped.
	eval := rep.Targets[1]
	assert.Equal(t, "eval", eval.Target)
	assert.Len(t, eval.Stages, 4)

	assert.FileExists(t, filepath.Join(cfg.Database.Dir, "papers.db"))
	assert.FileExists(t,
		filepath.Join(cfg.Database.Dir, "evaluations.db"))
}

func TestBuildSelectedTarget(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.TestConfig(t)
	writeSnapshots(t, cfg.Ingest.DataDir)
	cfg.Build.Targets = []string{"eval"}

	rep, err := iobuild.New(cfg, iosources.New(cfg)).Build(ctx)
	require.NoError(t, err)

	require.Len(t, rep.Targets, 1)
	assert.Equal(t, "eval", rep.Targets[0].Target)
	assert.NoFileExists(t,
		filepath.Join(cfg.Database.Dir, "papers.db"))
}

func TestBuildPartialFailure(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.TestConfig(t)
	writeSnapshots(t, cfg.Ingest.DataDir)

	// A truncated papers snapshot fails the main target at ingest;
	// the eval target does not depend on it and must still complete.
	writeFile(t, cfg.Ingest.DataDir, "papers-with-abstracts.json",
		`[{"paper_url": "https://pwc/paper/broken",`)

	rep, err := iobuild.New(cfg, iosources.New(cfg)).Build(ctx)
	require.Error(t, err)
	assert.Equal(t, errcode.BuildTargetsFailedError, errcode.CodeOf(err))

	require.NotNil(t, rep)
	require.Len(t, rep.Targets, 2)
	assert.False(t, rep.Succeeded())

	main := rep.Targets[0]
	assert.Equal(t, pwcdb.StateFailed, main.State)
	assert.Equal(t, pwcdb.StageIngest, main.FailedStage)

	eval := rep.Targets[1]
	assert.Equal(t, pwcdb.StateDone, eval.State)
	assert.FileExists(t,
		filepath.Join(cfg.Database.Dir, "evaluations.db"))
}

func TestBuildUnknownTarget(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.TestConfig(t)
	writeSnapshots(t, cfg.Ingest.DataDir)
	cfg.Build.Targets = []string{"nope"}

	_, err := iobuild.New(cfg, iosources.New(cfg)).Build(ctx)
	require.Error(t, err)
}

func TestBuildMissingSnapshot(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.TestConfig(t)
	// Data dir exists but holds no snapshot files.
	require.NoError(t, os.MkdirAll(cfg.Ingest.DataDir, 0755))

	_, err := iobuild.New(cfg, iosources.New(cfg)).Build(ctx)
	require.Error(t, err)
}
