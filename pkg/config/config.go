// Package config provides configuration management for the tick CLI. It
// handles loading, validating, and saving application settings: Tuya cloud
// credentials and region endpoint, series transformation options, report
// output locations, cache behavior, and the hook manifest location. Settings
// come from a YAML file with sensible defaults; credentials may also be
// supplied through environment variables.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Mause/tuya-graphing/pkg/errors"
	"github.com/Mause/tuya-graphing/pkg/fsutil"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Cloud  CloudConfig  `yaml:"cloud"`
	Series SeriesConfig `yaml:"series"`
	Hooks  HooksConfig  `yaml:"hooks"`

	// General settings
	Settings Settings `yaml:"settings"`
}

// CloudConfig holds the Tuya OpenAPI connection settings.
type CloudConfig struct {
	// AccessID and AccessKey are the cloud project credentials. They may be
	// left empty in the file and provided via TUYA_ACCESS_ID / TUYA_ACCESS_KEY.
	AccessID  string `yaml:"access_id,omitempty"`
	AccessKey string `yaml:"access_key,omitempty"`

	// Host is the regional API endpoint.
	Host string `yaml:"host,omitempty"`
}

// SeriesConfig controls how report-log events become typed series.
type SeriesConfig struct {
	// Timezone is the IANA zone event times are localized to.
	Timezone string `yaml:"timezone,omitempty"`

	// ExcludedCodes lists status codes that are never plotted.
	ExcludedCodes []string `yaml:"excluded_codes,omitempty"`
}

// HooksConfig locates the hook manifest and the hook script directory.
type HooksConfig struct {
	ManifestPath string `yaml:"manifest_path,omitempty"`
	ScriptDir    string `yaml:"script_dir,omitempty"`
}

// Settings represents general application settings.
type Settings struct {
	// Cache settings
	CacheDir string        `yaml:"cache_dir,omitempty"`
	CacheTTL time.Duration `yaml:"cache_ttl"`

	// Report output settings
	ReportDir string `yaml:"report_dir,omitempty"`
	DataDump  string `yaml:"data_dump,omitempty"` // filename of the raw JSON dump within ReportDir

	// Network settings
	HTTPTimeout   time.Duration `yaml:"http_timeout"`
	MaxConcurrent int           `yaml:"max_concurrent_fetches"`

	// Output settings
	OutputFormat string `yaml:"output_format"` // json, text
	LogLevel     string `yaml:"log_level"`     // error, warn, info, debug
}

// Default configuration values.
const (
	// DefaultHost is the regional endpoint used when none is configured.
	DefaultHost = "https://openapi.tuyaus.com"

	// DefaultTimezone localizes event times when no zone is configured.
	DefaultTimezone = "Australia/Perth"

	// DefaultCacheTTL is the default time-to-live for cached cloud responses.
	DefaultCacheTTL = 24 * time.Hour

	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultMaxConcurrent is the default maximum number of concurrent log fetches.
	DefaultMaxConcurrent = 5

	// DefaultDataDump is the filename of the raw event dump.
	DefaultDataDump = "data.json"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultExcludedCodes are status codes that are never plotted: plain switch
// state and countdown timers produce step noise rather than useful series.
func DefaultExcludedCodes() []string {
	return []string{"switch_1", "countdown_1", "switch"}
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	cacheDir, err := fsutil.GetCacheDir()
	if err != nil {
		cacheDir = filepath.Join(os.TempDir(), fsutil.AppName)
	}
	dataDir, err := fsutil.GetDataDir()
	if err != nil {
		dataDir = "."
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}

	return &Config{
		Cloud: CloudConfig{
			Host: DefaultHost,
		},
		Series: SeriesConfig{
			Timezone:      DefaultTimezone,
			ExcludedCodes: DefaultExcludedCodes(),
		},
		Hooks: HooksConfig{
			ManifestPath: filepath.Join(configDir, fsutil.AppName, "hooks.yaml"),
			ScriptDir:    filepath.Join(configDir, fsutil.AppName, "hooks"),
		},
		Settings: Settings{
			CacheDir:      cacheDir,
			CacheTTL:      DefaultCacheTTL,
			ReportDir:     filepath.Join(dataDir, "reports"),
			DataDump:      DefaultDataDump,
			HTTPTimeout:   DefaultHTTPTimeout,
			MaxConcurrent: DefaultMaxConcurrent,
			OutputFormat:  "text",
			LogLevel:      "info",
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()
	config.applyEnvOverrides()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}

	return &config, nil
}

// SaveConfig saves configuration to a file.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	// Write to a temp file first so a failed encode never truncates the
	// existing config.
	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeSecure)
	if err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := fsutil.Move(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigFileRename, err.Error())
	}

	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if err := validateCloud(c.Cloud); err != nil {
		return err
	}
	if err := validateSeries(c.Series); err != nil {
		return err
	}
	return validateSettings(c.Settings)
}

func validateCloud(cc CloudConfig) error {
	if cc.Host == "" {
		return errors.Wrap(errors.ErrConfigValidation, "cloud host cannot be empty")
	}
	if !strings.HasPrefix(cc.Host, "https://") && !strings.HasPrefix(cc.Host, "http://") {
		return errors.Wrapf(errors.ErrConfigValidation, "cloud host must be an http(s) URL: %s", cc.Host)
	}
	return nil
}

func validateSeries(sc SeriesConfig) error {
	if sc.Timezone == "" {
		return nil
	}
	if _, err := time.LoadLocation(sc.Timezone); err != nil {
		return errors.Wrapf(errors.ErrBadTimezone, "%s", sc.Timezone)
	}
	return nil
}

func validateSettings(s Settings) error {
	if s.HTTPTimeout < 0 {
		return errors.Wrap(errors.ErrConfigValidation, "http_timeout cannot be negative")
	}
	if s.CacheTTL < 0 {
		return errors.Wrap(errors.ErrConfigValidation, "cache_ttl cannot be negative")
	}
	if s.MaxConcurrent < 1 {
		return errors.Wrap(errors.ErrConfigValidation, "max_concurrent_fetches must be at least 1")
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[s.OutputFormat] {
		return errors.Wrapf(errors.ErrConfigValidation, "invalid output format: %s", s.OutputFormat)
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(s.LogLevel)] {
		return errors.Wrapf(errors.ErrConfigValidation, "invalid log level: %s", s.LogLevel)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	return fsutil.GetConfigPath()
}

// Location returns the configured timezone, falling back to UTC when unset.
func (c *Config) Location() (*time.Location, error) {
	if c.Series.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Series.Timezone)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrBadTimezone, "%s", c.Series.Timezone)
	}
	return loc, nil
}

// GetDeviceCacheDir returns the path to the device list cache directory.
func (c *Config) GetDeviceCacheDir() string {
	return filepath.Join(c.Settings.CacheDir, "devices")
}

// GetLogCacheDir returns the path to the report-log cache directory.
func (c *Config) GetLogCacheDir() string {
	return filepath.Join(c.Settings.CacheDir, "logs")
}

// GetDataDumpPath returns the absolute path of the raw event dump.
func (c *Config) GetDataDumpPath() string {
	return filepath.Join(c.Settings.ReportDir, c.Settings.DataDump)
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Cloud.Host == "" {
		c.Cloud.Host = defaults.Cloud.Host
	}
	if c.Series.Timezone == "" {
		c.Series.Timezone = defaults.Series.Timezone
	}
	if c.Series.ExcludedCodes == nil {
		c.Series.ExcludedCodes = defaults.Series.ExcludedCodes
	}
	if c.Hooks.ManifestPath == "" {
		c.Hooks.ManifestPath = defaults.Hooks.ManifestPath
	}
	if c.Hooks.ScriptDir == "" {
		c.Hooks.ScriptDir = defaults.Hooks.ScriptDir
	}
	if c.Settings.CacheDir == "" {
		c.Settings.CacheDir = defaults.Settings.CacheDir
	}
	if c.Settings.CacheTTL == 0 {
		c.Settings.CacheTTL = defaults.Settings.CacheTTL
	}
	if c.Settings.ReportDir == "" {
		c.Settings.ReportDir = defaults.Settings.ReportDir
	}
	if c.Settings.DataDump == "" {
		c.Settings.DataDump = defaults.Settings.DataDump
	}
	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = defaults.Settings.HTTPTimeout
	}
	if c.Settings.MaxConcurrent == 0 {
		c.Settings.MaxConcurrent = defaults.Settings.MaxConcurrent
	}
	if c.Settings.OutputFormat == "" {
		c.Settings.OutputFormat = defaults.Settings.OutputFormat
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
}

// applyEnvOverrides lets environment variables supply or replace credentials
// so they never have to live in the config file.
func (c *Config) applyEnvOverrides() {
	if id := os.Getenv("TUYA_ACCESS_ID"); id != "" {
		c.Cloud.AccessID = id
	}
	if key := os.Getenv("TUYA_ACCESS_KEY"); key != "" {
		c.Cloud.AccessKey = key
	}
	if host := os.Getenv("TUYA_API_HOST"); host != "" {
		c.Cloud.Host = host
	}
}

// RequireCredentials returns an error unless both credential halves are set.
func (c *Config) RequireCredentials() error {
	if c.Cloud.AccessID == "" || c.Cloud.AccessKey == "" {
		return errors.ErrMissingCredentials
	}
	return nil
}
