package infrastructure

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is a type for context keys
type contextKey string

// runIDContextKey is the key for storing the pipeline run ID in context
const runIDContextKey contextKey = "run_id"

// NewRunID generates a unique identifier for one pipeline run
func NewRunID() string {
	return uuid.New().String()
}

// WithRunID returns a context carrying the given run ID
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDContextKey, runID)
}

// RunIDFromContext extracts the run ID from context, or "" if absent
func RunIDFromContext(ctx context.Context) string {
	if runID, ok := ctx.Value(runIDContextKey).(string); ok {
		return runID
	}
	return ""
}
