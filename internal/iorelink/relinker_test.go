package iorelink_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pwcdb/pwcdb/internal/iorelink"
	"github.com/pwcdb/pwcdb/internal/iotesting"
	"github.com/pwcdb/pwcdb/pkg/config"
	"github.com/pwcdb/pwcdb/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPaper(t *testing.T, op db.Operator, url, title string) int64 {
	t.Helper()
	res, err := op.DB().Exec(
		"INSERT INTO papers (paper_url, title) VALUES (?, ?)", url, title)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func seedMethod(t *testing.T, op db.Operator, url, name, fullName string) int64 {
	t.Helper()
	res, err := op.DB().Exec(`
		INSERT INTO methods (url, name, full_name, num_papers)
		VALUES (?, ?, ?, 0)`, url, name, fullName)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func writePapers(t *testing.T, cfg *config.Config, papers any) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(cfg.Ingest.DataDir, 0755))
	path := filepath.Join(cfg.Ingest.DataDir, "papers.json")
	data, err := json.Marshal(papers)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestRelink(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.TestConfig(t)
	op := iotesting.OpenTarget(t, cfg, "main")

	p1 := seedPaper(t, op, "https://pwc/paper/a", "A")
	p2 := seedPaper(t, op, "https://pwc/paper/b", "B")
	dropout := seedMethod(t, op, "https://pwc/method/dropout",
		"Dropout", "Dropout")
	seedMethod(t, op, "https://pwc/method/adam", "Adam",
		"Adam Optimizer")

	// A stale link that resolution no longer supports.
	_, err := op.DB().Exec(`
		INSERT INTO paper_methods (paper_id, method_id) VALUES (?, ?)`,
		p2, dropout)
	require.NoError(t, err)

	papers := []map[string]any{
		{
			"paper_url": "https://pwc/paper/a",
			"methods": []map[string]any{
				// Mention matches by case-insensitive name.
				{"name": "dropout"},
				// Matches by full name when the short name misses.
				{"name": "AdamOpt", "full_name": "Adam Optimizer"},
				// Repeated mention dedups into one pair.
				{"name": "Dropout"},
				// Unknown mentions are counted, never inserted.
				{"name": "Quantum Telepathy"},
			},
		},
		{
			"paper_url": "https://pwc/paper/b",
			"methods": []map[string]any{
				{"full_name": "Dropout"},
			},
		},
		{
			// Not in the database: scanned and ignored.
			"paper_url": "https://pwc/paper/ghost",
			"methods":   []map[string]any{{"name": "Dropout"}},
		},
	}
	path := writePapers(t, cfg, papers)

	rep, err := iorelink.New(cfg, op).Relink(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, 3, rep.PapersScanned)
	assert.Equal(t, 5, rep.MentionsSeen)
	assert.Equal(t, 1, rep.Unresolved)
	assert.Equal(t, 3, rep.UniquePairs)
	assert.Equal(t, 2, rep.MethodsRelinked)

	// Rebuild replaced the stale link set entirely.
	assert.Equal(t, 3, iotesting.Count(t, op, "paper_methods"))

	var n int
	require.NoError(t, op.DB().QueryRow(`
		SELECT count(*) FROM paper_methods WHERE paper_id = ?`, p1).
		Scan(&n))
	assert.Equal(t, 2, n)

	// num_papers reflects the rebuilt links.
	var numPapers int
	require.NoError(t, op.DB().QueryRow(`
		SELECT num_papers FROM methods WHERE name = 'Dropout'`).
		Scan(&numPapers))
	assert.Equal(t, 2, numPapers)

	require.NoError(t, op.DB().QueryRow(`
		SELECT num_papers FROM methods WHERE name = 'Adam'`).
		Scan(&numPapers))
	assert.Equal(t, 1, numPapers)
}

func TestRelinkNameCollisionFirstWins(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.TestConfig(t)
	op := iotesting.OpenTarget(t, cfg, "main")

	p := seedPaper(t, op, "https://pwc/paper/a", "A")
	first := seedMethod(t, op, "https://pwc/method/bn-1",
		"Batch Normalization", "")
	seedMethod(t, op, "https://pwc/method/bn-2",
		"batch normalization", "")

	path := writePapers(t, cfg, []map[string]any{
		{
			"paper_url": "https://pwc/paper/a",
			"methods": []map[string]any{
				{"name": "Batch Normalization"},
			},
		},
	})

	rep, err := iorelink.New(cfg, op).Relink(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.UniquePairs)

	var methodID int64
	require.NoError(t, op.DB().QueryRow(`
		SELECT method_id FROM paper_methods WHERE paper_id = ?`, p).
		Scan(&methodID))
	assert.Equal(t, first, methodID)
}

func TestRelinkEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.TestConfig(t)
	op := iotesting.OpenTarget(t, cfg, "main")

	seedPaper(t, op, "https://pwc/paper/a", "A")
	path := writePapers(t, cfg, []map[string]any{
		{
			"paper_url": "https://pwc/paper/a",
			"methods":   []map[string]any{{"name": "Dropout"}},
		},
	})

	rep, err := iorelink.New(cfg, op).Relink(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Unresolved)
	assert.Zero(t, rep.UniquePairs)
	assert.Zero(t, iotesting.Count(t, op, "paper_methods"))
}
