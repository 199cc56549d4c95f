// Package logging declares the structured logger the server and client code
// log through, keeping the concrete backend (slog here) out of call sites.
package logging

import "context"

// Logger logs leveled, context-aware messages. Variadic args are alternating
// key-value pairs:
//
//	logger.Info(ctx, "Starting HTTP server", "address", addr)
type Logger interface {
	// Debug logs fine-grained diagnostics.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs normal operational events.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a derived logger whose entries always carry the given
	// key-value pairs, e.g. With("module", "http_server").
	With(args ...any) Logger
}
