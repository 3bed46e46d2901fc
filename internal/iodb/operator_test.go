package iodb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pwcdb/pwcdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectCreatesFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "papers.db")

	op := NewSQLiteOperator()
	err := op.Connect(ctx, path)
	require.NoError(t, err)
	defer op.Close()

	assert.Equal(t, path, op.Path())
	require.NotNil(t, op.DB())

	var fk int
	err = op.DB().QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk)
}

func TestNotConnected(t *testing.T) {
	ctx := context.Background()
	op := NewSQLiteOperator()

	_, err := op.HasTables(ctx)
	require.Error(t, err)
	assert.Equal(t, errcode.DBNotConnectedError, errcode.CodeOf(err))

	_, err = op.TableExists(ctx, "papers")
	require.Error(t, err)
	assert.Equal(t, errcode.DBNotConnectedError, errcode.CodeOf(err))

	err = op.DropAllTables(ctx)
	require.Error(t, err)
	assert.Equal(t, errcode.DBNotConnectedError, errcode.CodeOf(err))
}

func TestTableLifecycle(t *testing.T) {
	ctx := context.Background()
	op := NewSQLiteOperator()
	require.NoError(t, op.Connect(ctx,
		filepath.Join(t.TempDir(), "test.db")))
	defer op.Close()

	has, err := op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = op.DB().ExecContext(ctx,
		"CREATE TABLE papers (id INTEGER PRIMARY KEY, title TEXT)")
	require.NoError(t, err)
	_, err = op.DB().ExecContext(ctx,
		`CREATE TABLE paper_tasks (
			paper_id INTEGER REFERENCES papers(id),
			task TEXT)`)
	require.NoError(t, err)

	has, err = op.HasTables(ctx)
	require.NoError(t, err)
	assert.True(t, has)

	exists, err := op.TableExists(ctx, "papers")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = op.TableExists(ctx, "methods")
	require.NoError(t, err)
	assert.False(t, exists)

	err = op.DropAllTables(ctx)
	require.NoError(t, err)

	has, err = op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}
