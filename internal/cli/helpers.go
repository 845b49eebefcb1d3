package cli

import (
	"fmt"
	"os"

	"github.com/Mause/tuya-graphing/internal/logger"
	"github.com/Mause/tuya-graphing/pkg/cache"
	"github.com/Mause/tuya-graphing/pkg/config"
	"github.com/Mause/tuya-graphing/pkg/fsutil"
	"github.com/Mause/tuya-graphing/pkg/hook"
	"github.com/Mause/tuya-graphing/pkg/tuya"
)

// These variables will be set by the main package
var (
	ConfigPath   *string
	Verbose      *bool
	OutputFormat *string
)

// loadConfig loads the configuration, applies CLI flag overrides and
// initializes the logger. Every command goes through here first.
func loadConfig() (*config.Config, error) {
	configPath := ""
	if ConfigPath != nil {
		configPath = *ConfigPath
	}

	if configPath == "" {
		defaultPath, err := fsutil.GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get default config path: %w", err)
		}
		configPath = defaultPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with CLI flags if provided
	if OutputFormat != nil && *OutputFormat != "" {
		cfg.Settings.OutputFormat = *OutputFormat
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}

	logger.InitLogger(cfg.Settings.LogLevel, logFormat(cfg))
	return cfg, nil
}

func logFormat(cfg *config.Config) logger.OutputFormat {
	if cfg.Settings.OutputFormat == "json" {
		return logger.FormatJSON
	}
	return logger.FormatText
}

// newClient creates a cloud client from the loaded configuration.
func newClient(cfg *config.Config) (*tuya.Client, error) {
	if err := cfg.RequireCredentials(); err != nil {
		return nil, err
	}
	return tuya.NewClient(cfg.Cloud.AccessID, cfg.Cloud.AccessKey,
		tuya.WithHost(cfg.Cloud.Host),
		tuya.WithTimeout(cfg.Settings.HTTPTimeout),
	)
}

// newCacheManager creates the response cache from the loaded configuration.
func newCacheManager(cfg *config.Config) (*cache.Manager, error) {
	if cfg.Settings.CacheDir != "" {
		return cache.NewManager(cfg.Settings.CacheDir, cfg.Settings.CacheTTL)
	}
	return cache.NewDefaultManager(cfg.Settings.CacheTTL)
}

// newHookRunner loads the hook manifest and scripts, if configured. A
// missing manifest yields a no-op runner.
func newHookRunner(cfg *config.Config) (*hook.Runner, error) {
	executor := hook.NewTengoExecutor()

	manifestPath := cfg.Hooks.ManifestPath
	if manifestPath == "" {
		return hook.NewRunner(nil, executor), nil
	}
	if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
		logger.Debug("Hook manifest not found, hooks disabled", logger.Fields{"path": manifestPath})
		return hook.NewRunner(nil, executor), nil
	}

	manifest, err := hook.LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	if err := hook.LoadScripts(executor, cfg.Hooks.ScriptDir); err != nil {
		return nil, err
	}
	return hook.NewRunner(manifest, executor), nil
}
