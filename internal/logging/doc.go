// Package logging provides structured logging for the aidp CLI using slog.
//
// The package supports both text and JSON output formats, configurable log
// levels, and helpers for testing. The text handler colorizes output on
// TTYs and masks attribute values that look like credentials, since aider
// profiles routinely reference API keys.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("starting", "version", "1.0.0")
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework.
// Use [NewDiscard] when log output should be suppressed entirely.
package logging
