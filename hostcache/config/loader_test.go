package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoaderLoadsConfig(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\ncache:\n  shared: true\n  overrides:\n    - path_prefix: /static\n      ttl_seconds: 3600\n")

	l, err := NewLoader(path, false, time.Second)
	require.NoError(t, err)

	cfg := l.Config()
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Cache.Shared)
	require.Len(t, cfg.Cache.Overrides, 1)
	assert.Equal(t, "/static", cfg.Cache.Overrides[0].PathPrefix)
	assert.Equal(t, int64(3600), cfg.Cache.Overrides[0].TTLSeconds)
}

func TestLoaderReloadSkipsUnchangedContent(t *testing.T) {
	path := writeConfig(t, "log:\n  level: info\n")

	l, err := NewLoader(path, false, time.Second)
	require.NoError(t, err)

	changed, err := l.Load()
	require.NoError(t, err)
	assert.False(t, changed, "re-loading identical bytes must not report a change")
}

func TestLoaderReloadDetectsChange(t *testing.T) {
	path := writeConfig(t, "log:\n  level: info\n")

	l, err := NewLoader(path, false, time.Second)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))

	changed, err := l.Load()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "debug", l.Config().Log.Level)
}

func TestLoaderRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "not_a_real_field: true\n")

	_, err := NewLoader(path, false, time.Second)
	assert.Error(t, err)
}
