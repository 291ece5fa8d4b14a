// Package runctx annotates contexts with the identifiers of the current
// consolidation run so logging and history can correlate their output.
package runctx

import "context"

type contextKey string

const (
	runIDKey      contextKey = "run_id"
	sourceFileKey contextKey = "source_file"
)

// WithRunID annotates context with the run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithSourceFile annotates context with the source file being consolidated.
func WithSourceFile(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, sourceFileKey, name)
}

// SourceFileFromContext returns the source file name if present.
func SourceFileFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(sourceFileKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
