package ioingest_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pwcdb/pwcdb/internal/ioingest"
	"github.com/pwcdb/pwcdb/internal/iotesting"
	"github.com/pwcdb/pwcdb/pkg/config"
	"github.com/pwcdb/pwcdb/pkg/db"
	"github.com/pwcdb/pwcdb/pkg/pwcdb"
	"github.com/pwcdb/pwcdb/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSnapshot writes records as a JSON array file and returns the
// matching source descriptor.
func writeSnapshot(
	t *testing.T, cfg *config.Config, kind sources.Kind,
	name string, records any,
) sources.SourceFile {
	t.Helper()
	require.NoError(t, os.MkdirAll(cfg.Ingest.DataDir, 0755))
	path := filepath.Join(cfg.Ingest.DataDir, name)
	data, err := json.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return sources.SourceFile{Kind: kind, File: name, Path: path}
}

func ingest(
	t *testing.T, cfg *config.Config, op db.Operator,
	src sources.SourceFile,
) *pwcdb.IngestReport {
	t.Helper()
	rep, err := ioingest.New(cfg, op).Ingest(context.Background(), src)
	require.NoError(t, err)
	return rep
}

func TestIngestPapers(t *testing.T) {
	cfg := iotesting.TestConfig(t)
	op := iotesting.OpenTarget(t, cfg, "main")

	papers := []map[string]any{
		{
			"paper_url": "https://paperswithcode.com/paper/attention",
			"arxiv_id":  "1706.03762",
			"title":     "Attention Is All You Need",
			"authors":   []string{"Ashish Vaswani", "Noam Shazeer"},
			"tasks":     []string{"Machine Translation"},
			"methods": []map[string]any{
				{
					"url":  "https://paperswithcode.com/method/transformer",
					"name": "Transformer",
				},
			},
		},
		{
			"paper_url": "https://paperswithcode.com/paper/bert",
			"title":     "BERT",
			"authors":   []string{"Noam Shazeer"},
			"tasks":     []string{"Machine Translation", "Question Answering"},
		},
		{
			// No natural key: skipped, not fatal.
			"title": "orphan",
		},
	}
	src := writeSnapshot(t, cfg, sources.KindPapers, "papers.json", papers)

	rep := ingest(t, cfg, op, src)
	assert.Equal(t, 3, rep.Records)
	assert.Equal(t, 1, rep.Skipped)

	assert.Equal(t, 2, iotesting.Count(t, op, "papers"))
	assert.Equal(t, 2, iotesting.Count(t, op, "authors"))
	assert.Equal(t, 2, iotesting.Count(t, op, "tasks"))
	assert.Equal(t, 1, iotesting.Count(t, op, "methods"))
	assert.Equal(t, 3, iotesting.Count(t, op, "paper_authors"))
	assert.Equal(t, 3, iotesting.Count(t, op, "paper_tasks"))
	assert.Equal(t, 1, iotesting.Count(t, op, "paper_methods"))

	// Author order preserves the byline position.
	var order int
	err := op.DB().QueryRow(`
		SELECT pa.author_order FROM paper_authors pa
		JOIN authors a ON a.id = pa.author_id
		JOIN papers p ON p.id = pa.paper_id
		WHERE a.name = 'Noam Shazeer'
		AND p.paper_url = 'https://paperswithcode.com/paper/attention'
	`).Scan(&order)
	require.NoError(t, err)
	assert.Equal(t, 1, order)
}

func TestIngestPapersIdempotent(t *testing.T) {
	cfg := iotesting.TestConfig(t)
	op := iotesting.OpenTarget(t, cfg, "main")

	papers := []map[string]any{
		{
			"paper_url": "https://paperswithcode.com/paper/attention",
			"title":     "Attention Is All You Need",
			"authors":   []string{"Ashish Vaswani"},
			"tasks":     []string{"Machine Translation"},
		},
	}
	src := writeSnapshot(t, cfg, sources.KindPapers, "papers.json", papers)

	first := ingest(t, cfg, op, src)
	assert.Positive(t, first.Entities)
	assert.Positive(t, first.Links)

	second := ingest(t, cfg, op, src)
	assert.Zero(t, second.Entities)
	assert.Zero(t, second.Links)

	assert.Equal(t, 1, iotesting.Count(t, op, "papers"))
	assert.Equal(t, 1, iotesting.Count(t, op, "authors"))
	assert.Equal(t, 1, iotesting.Count(t, op, "paper_authors"))
}

func TestIngestMethods(t *testing.T) {
	cfg := iotesting.TestConfig(t)
	op := iotesting.OpenTarget(t, cfg, "main")

	year := 2017
	claimed := 9999
	methods := []ioingest.MethodRecord{
		{
			URL:            "https://paperswithcode.com/method/transformer",
			Name:           "Transformer",
			FullName:       "Transformer",
			IntroducedYear: &year,
			NumPapers:      &claimed,
			Paper: &ioingest.MethodPaperRef{
				Title: "Attention Is All You Need",
				URL:   "https://paperswithcode.com/paper/attention",
			},
			Collections: []ioingest.CollectionRecord{
				{
					AreaID:     "general",
					Area:       "General",
					Collection: "Attention Mechanisms",
				},
			},
		},
		{Name: "no url, skipped"},
	}
	src := writeSnapshot(t, cfg, sources.KindMethods, "methods.json", methods)

	rep := ingest(t, cfg, op, src)
	assert.Equal(t, 2, rep.Records)
	assert.Equal(t, 1, rep.Skipped)

	assert.Equal(t, 1, iotesting.Count(t, op, "methods"))
	assert.Equal(t, 1, iotesting.Count(t, op, "method_areas"))
	assert.Equal(t, 1, iotesting.Count(t, op, "method_categories"))
	assert.Equal(t, 1, iotesting.Count(t, op, "method_categories_rel"))

	// num_papers is derived later, the snapshot value is ignored.
	var numPapers, introYear int
	err := op.DB().QueryRow(`
		SELECT num_papers, introduced_year FROM methods
		WHERE url = 'https://paperswithcode.com/method/transformer'
	`).Scan(&numPapers, &introYear)
	require.NoError(t, err)
	assert.Zero(t, numPapers)
	assert.Equal(t, 2017, introYear)
}

func TestIngestDatasets(t *testing.T) {
	cfg := iotesting.TestConfig(t)
	op := iotesting.OpenTarget(t, cfg, "main")

	datasets := []ioingest.DatasetRecord{
		{
			URL:      "https://paperswithcode.com/dataset/imagenet",
			Name:     "ImageNet",
			Homepage: "https://image-net.org",
		},
		{
			URL:           "https://paperswithcode.com/dataset/imagenet-c",
			Name:          "ImageNet-C",
			ParentDataset: "ImageNet",
		},
		{Name: "no url"},
	}
	src := writeSnapshot(
		t, cfg, sources.KindDatasets, "datasets.json", datasets)

	rep := ingest(t, cfg, op, src)
	assert.Equal(t, 2, rep.Entities)
	assert.Equal(t, 1, rep.Skipped)
	assert.Equal(t, 2, iotesting.Count(t, op, "datasets"))
}

func TestIngestCodeLinks(t *testing.T) {
	cfg := iotesting.TestConfig(t)
	op := iotesting.OpenTarget(t, cfg, "main")

	links := []ioingest.CodeLinkRecord{
		{
			PaperURL:   "https://paperswithcode.com/paper/attention",
			RepoURL:    "https://github.com/tensorflow/tensor2tensor",
			IsOfficial: true,
		},
		{
			// Same pair again: deduplicated.
			PaperURL: "https://paperswithcode.com/paper/attention",
			RepoURL:  "https://github.com/tensorflow/tensor2tensor",
		},
		{
			PaperURL: "https://paperswithcode.com/paper/attention",
			RepoURL:  "https://github.com/pytorch/fairseq",
		},
	}
	src := writeSnapshot(
		t, cfg, sources.KindCodeLinks, "links.json", links)

	rep := ingest(t, cfg, op, src)
	assert.Equal(t, 3, rep.Records)
	assert.Equal(t, 2, rep.Links)
	assert.Equal(t, 2, iotesting.Count(t, op, "code_links"))
}

func TestIngestEvaluations(t *testing.T) {
	cfg := iotesting.TestConfig(t)
	op := iotesting.OpenTarget(t, cfg, "main")

	evals := []map[string]any{
		{"task": "Image Classification", "description": "d"},
		{"task": "Image Classification"},
		{"description": "no task"},
	}
	src := writeSnapshot(
		t, cfg, sources.KindEvaluations, "eval.json", evals)

	rep := ingest(t, cfg, op, src)
	assert.Equal(t, 1, rep.Entities)
	assert.Equal(t, 1, rep.Skipped)
	assert.Equal(t, 1, iotesting.Count(t, op, "evaluations"))
}

func TestIngestEvalTables(t *testing.T) {
	cfg := iotesting.TestConfig(t)
	op := iotesting.OpenTarget(t, cfg, "eval")

	evals := []map[string]any{
		{
			"task":       "Image Classification",
			"categories": []string{"Computer Vision"},
			"subtasks": []map[string]any{
				{"name": "Fine-Grained Image Classification"},
			},
			"datasets": []map[string]any{
				{
					"dataset": "ImageNet",
					"sota": map[string]any{
						"rows": []map[string]any{
							{
								"model_name": "ViT-G/14",
								"paper_url":  "https://paperswithcode.com/paper/vit",
								"metrics": map[string]any{
									"Top 1 Accuracy": "90.45%",
									"Params":         1843.0,
								},
								"code_links": []map[string]any{
									{"url": "https://github.com/google-research/vision_transformer"},
								},
							},
						},
					},
				},
			},
		},
	}
	src := writeSnapshot(
		t, cfg, sources.KindEvalTables, "eval.json", evals)

	rep := ingest(t, cfg, op, src)
	assert.Equal(t, 1, rep.Records)

	assert.Equal(t, 1, iotesting.Count(t, op, "tasks"))
	assert.Equal(t, 1, iotesting.Count(t, op, "subtasks"))
	assert.Equal(t, 1, iotesting.Count(t, op, "datasets"))
	assert.Equal(t, 1, iotesting.Count(t, op, "result_rows"))
	assert.Equal(t, 2, iotesting.Count(t, op, "metrics"))
	assert.Equal(t, 1, iotesting.Count(t, op, "code_links"))

	var value string
	err := op.DB().QueryRow(
		"SELECT value FROM metrics WHERE name = 'Params'").Scan(&value)
	require.NoError(t, err)
	assert.Equal(t, "1843", value)

	var cats string
	err = op.DB().QueryRow(
		"SELECT categories FROM tasks").Scan(&cats)
	require.NoError(t, err)
	assert.JSONEq(t, `["Computer Vision"]`, cats)

	// Re-ingest adds nothing.
	rep = ingest(t, cfg, op, src)
	assert.Zero(t, rep.Entities)
	assert.Zero(t, rep.Links)
}
