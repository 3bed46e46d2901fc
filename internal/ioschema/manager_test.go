package ioschema

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pwcdb/pwcdb/internal/iodb"
	"github.com/pwcdb/pwcdb/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T, file string) db.Operator {
	t.Helper()
	op := iodb.NewSQLiteOperator()
	err := op.Connect(context.Background(),
		filepath.Join(t.TempDir(), file))
	require.NoError(t, err)
	t.Cleanup(func() { op.Close() })
	return op
}

func TestCreateMainSchema(t *testing.T) {
	ctx := context.Background()
	op := connect(t, "papers.db")

	m := NewManager(op, "main")
	require.NoError(t, m.Create(ctx))

	for _, table := range []string{
		"papers", "authors", "paper_authors", "tasks", "paper_tasks",
		"method_areas", "method_categories", "methods",
		"method_categories_rel", "paper_methods", "datasets",
		"evaluations", "code_links",
	} {
		exists, err := op.TableExists(ctx, table)
		require.NoError(t, err, table)
		assert.True(t, exists, table)
	}

	// Create is additive and safe to repeat.
	require.NoError(t, m.Create(ctx))
}

func TestCreateEvalSchema(t *testing.T) {
	ctx := context.Background()
	op := connect(t, "evaluations.db")

	m := NewManager(op, "eval")
	require.NoError(t, m.Create(ctx))

	for _, table := range []string{
		"tasks", "subtasks", "datasets", "result_rows", "metrics",
		"code_links", "model_links",
	} {
		exists, err := op.TableExists(ctx, table)
		require.NoError(t, err, table)
		assert.True(t, exists, table)
	}
}

func TestDrop(t *testing.T) {
	ctx := context.Background()
	op := connect(t, "papers.db")

	m := NewManager(op, "main")
	require.NoError(t, m.Create(ctx))
	require.NoError(t, m.Drop(ctx))

	has, err := op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}
