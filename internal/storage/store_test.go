package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both backends must behave identically through the Store interface.
func runStoreContract(t *testing.T, s Store) {
	t.Helper()

	// Missing key: not found, no error.
	_, found, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, found)

	has, err := s.Has("missing")
	require.NoError(t, err)
	assert.False(t, has)

	// Round trip.
	require.NoError(t, s.Set("k", []byte(`{"a":1}`)))
	data, found, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `{"a":1}`, string(data))

	has, err = s.Has("k")
	require.NoError(t, err)
	assert.True(t, has)

	// Overwrite.
	require.NoError(t, s.Set("k", []byte(`{"a":2}`)))
	data, _, err = s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(data))

	// Remove is idempotent.
	require.NoError(t, s.Remove("k"))
	require.NoError(t, s.Remove("k"))
	_, found, err = s.Get("k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemStore_Contract(t *testing.T) {
	runStoreContract(t, NewMemStore())
}

func TestFileStore_Contract(t *testing.T) {
	runStoreContract(t, NewFileStore(t.TempDir()))
}

func TestFileStore_CreatesDirOnFirstWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	fs := NewFileStore(dir)

	// Reads against a missing directory are clean misses.
	_, found, err := fs.Get("settings")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, fs.Set("settings", []byte(`{}`)))
	has, err := fs.Has("settings")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestMemStore_CopiesValues(t *testing.T) {
	m := NewMemStore()
	buf := []byte("original")
	require.NoError(t, m.Set("k", buf))
	buf[0] = 'X'

	data, _, err := m.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(data), "stored value must not alias the caller's buffer")
}
