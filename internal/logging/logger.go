// Package logging defines the structured-logging interface used across volt.
// The console belongs to the user, so diagnostics go to a log file.
package logging

import "context"

// Logger writes leveled records with alternating key/value attributes:
//
//	log.Warn(ctx, "skipping credential line", "line", 7, "error", err)
//
// Stores and the session controller receive a Logger in their constructors
// and narrow it with With (store name, session id, user).
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a Logger that adds args to every record.
	With(args ...any) Logger
}
