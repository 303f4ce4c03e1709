package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON_OverlaysOnlyPresentKeys(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"server_endpoint_addr": "10.0.0.1:7000",
		"timeout":              "30s",
	})

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseJSON(cfg, []string{"-c", path}))

	assert.Equal(t, "10.0.0.1:7000", cfg.ServerEndpointAddr)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "v2", cfg.APIVersion)
	assert.Equal(t, "vaultkeeper-history.db", cfg.HistoryDB)
}

func Test_parseJSON_NoFileRequested(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseJSON(cfg, []string{"-a", "x:1"}))
	assert.Equal(t, "127.0.0.1:50051", cfg.ServerEndpointAddr)
}

func Test_parseJSON_Errors(t *testing.T) {
	cfg := &Config{}

	err := parseJSON(cfg, []string{"-config", filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{nope"), 0o600))
	require.Error(t, parseJSON(cfg, []string{"-c", bad}))
}
