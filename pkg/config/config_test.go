package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Mause/tuya-graphing/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Settings.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Settings.HTTPTimeout)
	assert.Equal(t, 5, cfg.Settings.MaxConcurrent)
	assert.Equal(t, DefaultHost, cfg.Cloud.Host)
	assert.Equal(t, "Australia/Perth", cfg.Series.Timezone)
	assert.Equal(t, []string{"switch_1", "countdown_1", "switch"}, cfg.Series.ExcludedCodes)
}

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	configContent := `cloud:
  access_id: test-id
  access_key: test-key
  host: https://openapi.tuyaeu.com
series:
  timezone: Europe/Berlin
  excluded_codes:
    - switch
settings:
  log_level: debug
  max_concurrent_fetches: 3`

	err := os.WriteFile(configPath, []byte(configContent), fsutil.FileModeDefault)
	require.NoError(t, err)

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "test-id", cfg.Cloud.AccessID)
	assert.Equal(t, "https://openapi.tuyaeu.com", cfg.Cloud.Host)
	assert.Equal(t, "Europe/Berlin", cfg.Series.Timezone)
	assert.Equal(t, []string{"switch"}, cfg.Series.ExcludedCodes)
	assert.Equal(t, "debug", cfg.Settings.LogLevel)
	assert.Equal(t, 3, cfg.Settings.MaxConcurrent)

	// Unset fields fall back to defaults.
	assert.Equal(t, DefaultHTTPTimeout, cfg.Settings.HTTPTimeout)
	assert.Equal(t, DefaultDataDump, cfg.Settings.DataDump)
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultHost, cfg.Cloud.Host)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestSaveConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.LogLevel = "debug"
	cfg.Cloud.Host = "https://openapi.tuyaeu.com"

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test-config.yaml")

	err := cfg.SaveConfig(configPath)
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)

	loadedCfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	require.NotNil(t, loadedCfg)

	assert.Equal(t, "debug", loadedCfg.Settings.LogLevel)
	assert.Equal(t, "https://openapi.tuyaeu.com", loadedCfg.Cloud.Host)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TUYA_ACCESS_ID", "env-id")
	t.Setenv("TUYA_ACCESS_KEY", "env-key")

	cfg, err := LoadConfigFromReader(strings.NewReader("cloud:\n  access_id: file-id\n"))
	require.NoError(t, err)

	assert.Equal(t, "env-id", cfg.Cloud.AccessID)
	assert.Equal(t, "env-key", cfg.Cloud.AccessKey)
	assert.NoError(t, cfg.RequireCredentials())
}

func TestRequireCredentials(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.RequireCredentials())

	cfg.Cloud.AccessID = "id"
	assert.Error(t, cfg.RequireCredentials())

	cfg.Cloud.AccessKey = "key"
	assert.NoError(t, cfg.RequireCredentials())
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "bad timezone",
			mutate:  func(c *Config) { c.Series.Timezone = "Atlantis/Underwater" },
			wantErr: "unknown timezone",
		},
		{
			name:    "bad host",
			mutate:  func(c *Config) { c.Cloud.Host = "openapi.tuyaus.com" },
			wantErr: "http(s)",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Settings.HTTPTimeout = -time.Second },
			wantErr: "http_timeout",
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Settings.MaxConcurrent = 0 },
			wantErr: "max_concurrent_fetches",
		},
		{
			name:    "bad output format",
			mutate:  func(c *Config) { c.Settings.OutputFormat = "xml" },
			wantErr: "output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := DefaultConfig()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Australia/Perth", loc.String())

	cfg.Series.Timezone = ""
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestPathHelpers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.CacheDir = "/tmp/tick-cache"
	cfg.Settings.ReportDir = "/tmp/tick-reports"
	cfg.Settings.DataDump = "dump.json"

	assert.Equal(t, filepath.Join("/tmp/tick-cache", "devices"), cfg.GetDeviceCacheDir())
	assert.Equal(t, filepath.Join("/tmp/tick-cache", "logs"), cfg.GetLogCacheDir())
	assert.Equal(t, filepath.Join("/tmp/tick-reports", "dump.json"), cfg.GetDataDumpPath())
}
