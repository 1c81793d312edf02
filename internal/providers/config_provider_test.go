package providers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visitors/internal/structures"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewConfigProvider_ReadsFile(t *testing.T) {
	path := writeConfig(t, `
webServer:
  host: 127.0.0.1
  port: 9090
store:
  root: /srv/visitors
logger:
  level: debug
  dir: /tmp/logs
cache:
  enabled: true
  size: 4
  ttl: 10s
metrics:
  enabled: true
`)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", conf.WebServer.Host)
	assert.Equal(t, 9090, conf.WebServer.Port)
	assert.Equal(t, "/srv/visitors", conf.Store.Root)
	assert.Equal(t, uint32(0o755), conf.Store.DirMode)
	assert.Equal(t, uint32(0o644), conf.Store.FileMode)
	assert.Equal(t, "debug", conf.Logger.Level)
	assert.True(t, conf.Cache.Enabled)
	assert.Equal(t, 10*time.Second, conf.Cache.TTL)
	assert.True(t, conf.Metrics.Enabled)
	assert.True(t, conf.Debug)
	assert.Equal(t, path, conf.Path)
	assert.Equal(t, "VisitorRecordStore", conf.AppName)
}

func TestNewConfigProvider_Defaults(t *testing.T) {
	path := writeConfig(t, "logger:\n  dir: /tmp/logs\n")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", conf.WebServer.Host)
	assert.Equal(t, 8080, conf.WebServer.Port)
	assert.Equal(t, ".", conf.Store.Root)
	assert.Equal(t, "info", conf.Logger.Level)
	assert.False(t, conf.Cache.Enabled)
	assert.Equal(t, 30*time.Second, conf.Cache.TTL)
}

func TestNewConfigProvider_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "logger:\n  dir: /tmp/logs\n")
	t.Setenv("VISITORS_LOG_LEVEL", "warn")
	t.Setenv("VISITORS_STORE_ROOT", "/data")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "warn", conf.Logger.Level)
	assert.Equal(t, "/data", conf.Store.Root)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, err)
}

func TestNewConfigProvider_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "logger:\n  dir: /tmp/logs\n  level: loud\n")

	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}

func TestNewFsProvider_RootsAtStoreRoot(t *testing.T) {
	root := t.TempDir()
	conf := &structures.Config{Store: structures.StoreConfig{Root: root}}

	fs, err := NewFsProvider(conf)
	require.NoError(t, err)

	require.NoError(t, fs.MkdirAll("visitors", 0o755))
	info, err := os.Stat(filepath.Join(root, "visitors"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
