package tokenstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	s := NewFileStore(path)

	require.NoError(t, s.Set("abc.def.ghi"))

	got, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "token"))

	got, err := s.Get()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	s := NewFileStore(path)
	require.NoError(t, s.Set("abc"))

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear(), "clearing twice is fine")

	got, err := s.Get()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileStoreTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("abc\n"), 0600))
	s := NewFileStore(path)

	got, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	got, err := s.Get()
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.Set("abc"))
	got, err = s.Get()
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	require.NoError(t, s.Clear())
	got, err = s.Get()
	require.NoError(t, err)
	assert.Empty(t, got)
}
