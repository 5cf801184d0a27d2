// Package logging provides structured logging using Go's standard library log/slog.
// It outputs JSON by default, with an optional human-readable text format.
package logging
