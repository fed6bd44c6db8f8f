package services

import "context"

type contextKey string

const (
	runIDKey     contextKey = "run_id"
	stepIndexKey contextKey = "step_index"
	imageKey     contextKey = "image"
)

// WithRunID annotates context with the assembly run identifier.
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

// WithStepIndex annotates context with the sequence index currently being assembled.
func WithStepIndex(ctx context.Context, index int) context.Context {
	return context.WithValue(ctx, stepIndexKey, index)
}

// StepIndexFromContext returns the step index if present.
func StepIndexFromContext(ctx context.Context) (int, bool) {
	v := ctx.Value(stepIndexKey)
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	default:
		return 0, false
	}
}

// WithImage annotates context with the identifier of the image being assembled.
func WithImage(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, imageKey, id)
}

// ImageFromContext returns the image identifier if present.
func ImageFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(imageKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
