package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMove(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "src.json")
	dst := filepath.Join(tempDir, "nested", "dst.json")

	require.NoError(t, os.WriteFile(src, []byte(`{"ok":true}`), FileModeDefault))

	require.NoError(t, Move(src, dst))

	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err), "source should be gone after move")

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(data))
}

func TestMoveMissingSource(t *testing.T) {
	tempDir := t.TempDir()
	err := Move(filepath.Join(tempDir, "missing"), filepath.Join(tempDir, "dst"))
	assert.Error(t, err)
}

func TestMoveEmptyPaths(t *testing.T) {
	assert.Error(t, Move("", "dst"))
	assert.Error(t, Move("src", ""))
}

func TestCopy(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "a.txt")
	dst := filepath.Join(tempDir, "b.txt")

	require.NoError(t, os.WriteFile(src, []byte("hello"), FileModeDefault))
	require.NoError(t, Copy(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	// Source is left in place.
	_, err = os.Stat(src)
	assert.NoError(t, err)
}
