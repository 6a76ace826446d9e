package auth

import (
	"context"
)

// Outcome is the per-request authentication verdict produced by the Annotate
// middleware and consumed once by the guard. It is never persisted. Passing
// it as a typed context value keeps the verdict off shared request state.
type Outcome struct {
	Success  bool
	Message  string // set when Success is false
	Username string // set when Success is true
}

// contextKey is a custom type for context keys, preventing collisions with
// keys defined in other packages.
type contextKey string

const outcomeContextKey contextKey = "auth_outcome"

// NewContextWithOutcome returns a child context carrying the authentication
// outcome.
func NewContextWithOutcome(ctx context.Context, outcome Outcome) context.Context {
	return context.WithValue(ctx, outcomeContextKey, outcome)
}

// OutcomeFromContext extracts the authentication outcome from the context.
// The bool reports whether an outcome was present, i.e. whether the Annotate
// middleware ran for this request.
func OutcomeFromContext(ctx context.Context) (Outcome, bool) {
	outcome, ok := ctx.Value(outcomeContextKey).(Outcome)
	return outcome, ok
}
