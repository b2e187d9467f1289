package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"recshelf/internal/config"
	"recshelf/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Env:          "test",
		DBDriver:     "sqlite",
		DBSQLitePath: filepath.Join(t.TempDir(), "recshelf.db"),
	}
}

func TestInitRuntime_SeedsFictionTypesOnce(t *testing.T) {
	cfg := sqliteConfig(t)
	ctx := context.Background()

	rt, err := InitRuntime(ctx, cfg, Options{SeedFictionTypes: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close(ctx) })

	assert.Nil(t, rt.Redis, "no REDIS_URL means no client")
	require.NoError(t, EnsureFictionTypes(ctx, rt.DB))

	var types []models.FictionType
	require.NoError(t, rt.DB.Order("id").Find(&types).Error)
	require.Len(t, types, 4)
	assert.Equal(t, "movie", types[0].Slug)
	assert.Equal(t, "game", types[3].Slug)
}

func TestInitRuntime_WithoutSeeding(t *testing.T) {
	cfg := sqliteConfig(t)
	ctx := context.Background()

	rt, err := InitRuntime(ctx, cfg, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close(ctx) })

	var n int64
	require.NoError(t, rt.DB.Model(&models.FictionType{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestInitRuntime_ConnectsRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := sqliteConfig(t)
	cfg.RedisURL = mr.Addr()
	ctx := context.Background()

	rt, err := InitRuntime(ctx, cfg, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close(ctx) })

	require.NotNil(t, rt.Redis)
	assert.NoError(t, rt.Redis.Ping(ctx).Err())
}
