package ioindex_test

import (
	"context"
	"testing"

	"github.com/pwcdb/pwcdb/internal/ioindex"
	"github.com/pwcdb/pwcdb/internal/iotesting"
	"github.com/pwcdb/pwcdb/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hasIndex(t *testing.T, op db.Operator, name string) bool {
	t.Helper()
	var n int
	err := op.DB().QueryRow(`
		SELECT count(*) FROM sqlite_master
		WHERE type = 'index' AND name = ?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestIndexMain(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.TestConfig(t)
	op := iotesting.OpenTarget(t, cfg, "main")

	require.NoError(t, ioindex.New(op, "main").Index(ctx))

	for _, name := range []string{
		"idx_papers_title",
		"idx_methods_num_papers",
		"idx_paper_methods_method",
		"idx_code_links_paper_url",
	} {
		assert.True(t, hasIndex(t, op, name), name)
	}
	assert.False(t, hasIndex(t, op, "idx_result_rows_paper_title"))
}

func TestIndexEval(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.TestConfig(t)
	op := iotesting.OpenTarget(t, cfg, "eval")

	require.NoError(t, ioindex.New(op, "eval").Index(ctx))

	for _, name := range []string{
		"idx_result_rows_paper_title",
		"idx_result_rows_paper_date",
		"idx_metrics_name",
	} {
		assert.True(t, hasIndex(t, op, name), name)
	}
	assert.False(t, hasIndex(t, op, "idx_papers_title"))
}

func TestIndexIdempotent(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.TestConfig(t)
	op := iotesting.OpenTarget(t, cfg, "main")

	x := ioindex.New(op, "main")
	require.NoError(t, x.Index(ctx))
	require.NoError(t, x.Index(ctx))
}
