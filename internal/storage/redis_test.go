package storage

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	srv := miniredis.RunT(t)
	rs, err := NewRedisStore(srv.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { rs.Close() })
	return rs
}

func TestRedisStore_Contract(t *testing.T) {
	runStoreContract(t, newTestRedisStore(t))
}

func TestRedisStore_KeysArePrefixed(t *testing.T) {
	srv := miniredis.RunT(t)
	rs, err := NewRedisStore(srv.Addr())
	require.NoError(t, err)
	defer rs.Close()

	require.NoError(t, rs.Set("highscores", []byte(`{}`)))
	got, err := srv.Get("flipmatch:highscores")
	require.NoError(t, err)
	assert.Equal(t, `{}`, got)
}

func TestNewRedisStore_ConnectFailure(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	_, err := NewRedisStore(addr)
	assert.Error(t, err)
}
