// Package logging defines the structured-logging interface used across the
// client. The only implementation wraps log/slog.
package logging

import "context"

// Logger writes leveled records with key/value attributes:
//
//	log.Debug(ctx, "page fetched", "page", n, "items", len(items))
type Logger interface {
	// Debug is for wire-level detail such as requests, pages and cache writes.
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	// Warn reports failures the caller recovered from.
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that adds args to every record.
	With(args ...any) Logger
}
