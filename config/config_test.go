package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no stray .env
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("REDIS_ADDR", "")
	require.NoError(t, os.Unsetenv("REDIS_ADDR")) // restored by t.Setenv cleanup

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Store.Kind)
	assert.Equal(t, "memory", cfg.Discover.GeoMode)
	assert.Equal(t, 2000, cfg.Limits.DailyQuota)
	assert.Empty(t, cfg.Redis.Addr, "quota stays off unless REDIS_ADDR is set")
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "events.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9000"
store:
  kind: memory
discovery:
  geo_mode: store
limits:
  rps: 5
  burst: 10
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Server.Port, "env wins over file")
	assert.Equal(t, "memory", cfg.Store.Kind)
	assert.Equal(t, "store", cfg.Discover.GeoMode)
	assert.Equal(t, 5.0, cfg.Limits.RPS)
	assert.Equal(t, 10, cfg.Limits.Burst)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_FORMAT=json\n"), 0o600))
	t.Setenv("CONFIG_FILE", "")
	t.Cleanup(func() { os.Unsetenv("LOG_FORMAT") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_FILE", "")

	t.Setenv("STORE", "cassandra")
	_, err := Load()
	assert.ErrorContains(t, err, "unknown store")

	t.Setenv("STORE", "memory")
	t.Setenv("RATE_BURST", "lots")
	_, err = Load()
	assert.ErrorContains(t, err, "RATE_BURST")
}
