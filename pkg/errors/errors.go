package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath    = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath  = fmt.Errorf("invalid config file path")
	ErrConfigParse        = fmt.Errorf("failed to parse config")
	ErrConfigValidation   = fmt.Errorf("invalid configuration")
	ErrConfigEncode       = fmt.Errorf("failed to encode config")
	ErrConfigDirectory    = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate   = fmt.Errorf("failed to create config file")
	ErrConfigFileRename   = fmt.Errorf("failed to replace config file")
	ErrMissingCredentials = fmt.Errorf("cloud access id and access key are required")

	// Cloud API errors.
	ErrAPIRequest      = fmt.Errorf("cloud API request failed")
	ErrTokenGrant      = fmt.Errorf("failed to obtain access token")
	ErrDeviceNotFound  = fmt.Errorf("device not found")
	ErrInvalidTimeSpan = fmt.Errorf("start time must be before end time")

	// Series errors.
	ErrUnparsableValue = fmt.Errorf("status value is neither boolean nor numeric")
	ErrBadTimezone     = fmt.Errorf("unknown timezone")

	// Cache errors.
	ErrCacheClean     = fmt.Errorf("failed to clean cache")
	ErrCacheInfo      = fmt.Errorf("failed to get cache info")
	ErrCacheDirectory = fmt.Errorf("cache directory cannot be empty")
	ErrCacheMiss      = fmt.Errorf("cache entry missing or expired")

	// Hook errors.
	ErrHookExecution    = fmt.Errorf("error executing hook")
	ErrHookScript       = fmt.Errorf("hook script error")
	ErrHookLoad         = fmt.Errorf("failed to load hook")
	ErrManifestParse    = fmt.Errorf("failed to parse hook manifest")
	ErrManifestValidate = fmt.Errorf("invalid hook manifest")

	// Export errors.
	ErrExportWrite  = fmt.Errorf("failed to write export file")
	ErrBundleCreate = fmt.Errorf("failed to create report bundle")

	// Generic errors.
	ErrInvalidPath = fmt.Errorf("invalid path")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
