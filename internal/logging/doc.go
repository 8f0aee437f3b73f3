// Package logging provides structured logging helpers built on log/slog.
//
// It defines the canonical attribute keys used across the application
// (operation, service, action, status, error) so that log output stays
// queryable, plus a small Logger interface that capability clients accept
// instead of depending on a concrete logger implementation.
//
// Email addresses are PII; log them through UserHash or Domain rather than
// verbatim.
package logging
