package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)

	b, err := NewRedisBackend(context.Background(), RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })

	testBackend(t, b)

	stored, err := mr.Get("progress")
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalHours":5}`, stored)
	assert.Zero(t, mr.TTL("progress"))
}

func TestRedisBackend_ConnectFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisBackend(context.Background(), RedisConfig{Address: addr})
	assert.ErrorContains(t, err, "failed to connect to redis")
}
