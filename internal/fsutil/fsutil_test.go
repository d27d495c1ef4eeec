package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceFileCreates(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "new.png")
	require.NoError(t, ReplaceFile(path, []byte("content")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), data)
}

func TestReplaceFileKeepsMode(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("file modes are not preserved on windows")
	}

	path := filepath.Join(t.TempDir(), "image.png")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))
	require.NoError(t, os.Chmod(path, 0o600))

	require.NoError(t, ReplaceFile(path, []byte("new content")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("new content"), data)

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
}

func TestReplaceFileRejectsDirectory(t *testing.T) {
	t.Parallel()

	assert.Error(t, ReplaceFile(t.TempDir(), []byte("x")))
}

func TestReplaceFileLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "image.png")
	require.NoError(t, ReplaceFile(path, []byte("one")))
	require.NoError(t, ReplaceFile(path, []byte("two")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "image.png", entries[0].Name())
}
