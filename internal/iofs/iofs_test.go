package iofs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pwcdb/pwcdb/pkg/config"
	"github.com/pwcdb/pwcdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirs(t *testing.T) {
	home := t.TempDir()

	err := EnsureDirs(home)
	require.NoError(t, err)

	for _, dir := range []string{
		config.ConfigDir(home),
		config.CacheDir(home),
		config.LogDir(home),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}

	// Idempotent on existing directories.
	err = EnsureDirs(home)
	assert.NoError(t, err)
}

func TestEnsureConfigFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, EnsureDirs(home))

	err := EnsureConfigFile(home)
	require.NoError(t, err)

	path := config.ConfigFilePath(home)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "batch_size")

	// An existing file is never overwritten.
	require.NoError(t, os.WriteFile(path, []byte("custom: true\n"), 0644))
	require.NoError(t, EnsureConfigFile(home))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom: true\n", string(data))
}

func TestEnsureSourcesFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, EnsureDirs(home))

	err := EnsureSourcesFile(home)
	require.NoError(t, err)

	data, err := os.ReadFile(config.SourcesFilePath(home))
	require.NoError(t, err)
	assert.Contains(t, string(data), "papers-with-abstracts.json")
	assert.Contains(t, string(data), "evaluations.db")
}

func TestCreateDirErrorCode(t *testing.T) {
	// A file blocking the directory path triggers MkdirAll failure.
	home := t.TempDir()
	blocker := filepath.Join(home, ".config")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := EnsureDirs(home)
	require.Error(t, err)
	assert.Equal(t, errcode.CreateDirError, errcode.CodeOf(err))

	var e *errcode.Error
	require.True(t, errors.As(err, &e))
	assert.Contains(t, e.Error(), "cannot create directory")
}
