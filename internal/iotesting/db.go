// Package iotesting provides shared test utilities for integration
// tests. This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pwcdb/pwcdb/internal/iodb"
	"github.com/pwcdb/pwcdb/internal/ioschema"
	"github.com/pwcdb/pwcdb/pkg/config"
	"github.com/pwcdb/pwcdb/pkg/db"
	"github.com/stretchr/testify/require"
)

// TestConfig returns a configuration rooted in a per-test temporary
// directory, so tests never touch real databases or the home config.
func TestConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(dir),
		config.OptDatabaseDir(dir),
		config.OptIngestDataDir(filepath.Join(dir, "raw_data")),
		config.OptDatabaseBatchSize(100),
	})
	return cfg
}

// OpenTarget connects an operator to a fresh database file and
// creates the schema of the given target. The connection closes with
// the test.
func OpenTarget(t *testing.T, cfg *config.Config, target string) db.Operator {
	t.Helper()
	ctx := context.Background()

	file := cfg.Database.MainFile
	if target == "eval" {
		file = cfg.Database.EvalFile
	}

	op := iodb.NewSQLiteOperator()
	err := op.Connect(ctx, filepath.Join(cfg.Database.Dir, file))
	require.NoError(t, err)
	t.Cleanup(func() { op.Close() })

	require.NoError(t, ioschema.NewManager(op, target).Create(ctx))
	return op
}

// Count returns the number of rows of a table.
func Count(t *testing.T, op db.Operator, table string) int {
	t.Helper()
	var n int
	err := op.DB().QueryRow("SELECT count(*) FROM " + table).Scan(&n)
	require.NoError(t, err)
	return n
}
