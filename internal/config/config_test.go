package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://api-rs.dexcelerate.com", cfg.API.RestURL)
	assert.Equal(t, "wss://api-rs.dexcelerate.com/ws", cfg.API.WsURL)
	assert.Equal(t, 10, cfg.Scanner.LoadThresholdRows)
	assert.Equal(t, 2000, cfg.Subs.MaxPairs)
	assert.Equal(t, ":8080", cfg.Dash.ListenAddr)
	assert.Equal(t, "scanner:ranked", cfg.Redis.RankedKey)
	assert.Equal(t, "scanner:pair:", cfg.Redis.MetaNS)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  rest_url: https://scanner.example.test
  ws_url: wss://scanner.example.test/ws
scanner:
  load_threshold_rows: 25
subs:
  max_pairs: 500
dash:
  listen_addr: ":9000"
metrics:
  listen_addr: ":9100"
redis:
  enabled: true
  addr: 10.0.0.5:6379
  db: 3
logging:
  level: debug
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://scanner.example.test", cfg.API.RestURL)
	assert.Equal(t, "wss://scanner.example.test/ws", cfg.API.WsURL)
	assert.Equal(t, 25, cfg.Scanner.LoadThresholdRows)
	assert.Equal(t, 500, cfg.Subs.MaxPairs)
	assert.Equal(t, ":9000", cfg.Dash.ListenAddr)
	assert.Equal(t, ":9100", cfg.Metrics.ListenAddr)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "10.0.0.5:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// unset fields still get defaults
	assert.Equal(t, "scanner:ranked", cfg.Redis.RankedKey)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  rest_url: https://from-file.test
redis:
  addr: file:6379
  db: 1
`), 0o600))

	t.Setenv("SCANNER_REST_URL", "https://from-env.test")
	t.Setenv("REDIS_ADDR", "env:6379")
	t.Setenv("REDIS_DB", "7")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://from-env.test", cfg.API.RestURL)
	assert.Equal(t, "env:6379", cfg.Redis.Addr)
	assert.Equal(t, 7, cfg.Redis.DB)
}

func TestMalformedYamlIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [not, a, mapping"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
