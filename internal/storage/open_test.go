package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsphere/learner-store/internal/config"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	tests := []struct {
		name string
		cfg  config.Config
		want Driver
	}{
		{
			name: "memory",
			cfg:  config.Config{Storage: config.StorageConfig{Driver: config.DriverMemory}},
			want: &MemoryBackend{},
		},
		{
			name: "sqlite",
			cfg: config.Config{
				Storage: config.StorageConfig{Driver: config.DriverSQLite},
				SQLite:  config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "open.db")},
			},
			want: &SQLiteBackend{},
		},
		{
			name: "redis",
			cfg: config.Config{
				Storage: config.StorageConfig{Driver: config.DriverRedis},
				Redis:   config.RedisConfig{Address: mr.Addr()},
			},
			want: &RedisBackend{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Open(ctx, &tt.cfg)
			require.NoError(t, err)
			t.Cleanup(func() { d.Close() })

			assert.IsType(t, tt.want, d)
			assert.NoError(t, d.Ping(ctx))
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Storage: config.StorageConfig{Driver: "etcd"}})
	assert.ErrorContains(t, err, "unknown storage driver")
}
