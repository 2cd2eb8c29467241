// Package errors defines the sentinel errors shared across the pika core
// and small helpers for wrapping them with context.
package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")

	// Record errors.
	ErrNoDestination   = fmt.Errorf("package has no destination bound")
	ErrInvalidPath     = fmt.Errorf("invalid path")
	ErrUnknownOperator = fmt.Errorf("unknown version constraint operator")

	// Verification errors. ErrNotDownloaded is the soft variant: the
	// archive simply is not there yet and the caller may download it.
	ErrNotDownloaded     = fmt.Errorf("package archive not downloaded")
	ErrSizeMismatch      = fmt.Errorf("package size mismatch")
	ErrChecksumMissing   = fmt.Errorf("package has no usable checksum")
	ErrChecksumMismatch  = fmt.Errorf("package checksum mismatch")
	ErrSignatureMissing  = fmt.Errorf("package signature not available")
	ErrSignatureMismatch = fmt.Errorf("package signature verification failed")

	// File-list errors.
	ErrFilelistExtract = fmt.Errorf("failed to extract file list from archive")

	// Hook errors.
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")
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
