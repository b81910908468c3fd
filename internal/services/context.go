package services

import "context"

type contextKey string

const (
	runIDKey     contextKey = "run_id"
	mediaPathKey contextKey = "media_path"
)

// WithRunID annotates context with the detection run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the detection run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(runIDKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithMediaPath annotates context with the file currently being analyzed.
func WithMediaPath(ctx context.Context, path string) context.Context {
	if path == "" {
		return ctx
	}
	return context.WithValue(ctx, mediaPathKey, path)
}

// MediaPathFromContext returns the media path if present.
func MediaPathFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(mediaPathKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}
