// Package session carries the data-access scope of a request in its context.
// Stores attach their scope with With and look it up with From; lazy
// references created inside a scope stay resolvable only while it is open.
package session

import "context"

// Scope is an open unit of work owned by one store.
type Scope interface {
	Open() bool
}

type ctxKey struct{}

var scopeKey = ctxKey{}

// With stores a scope in ctx for downstream repositories.
func With(ctx context.Context, s Scope) context.Context {
	if s == nil {
		return ctx
	}
	return context.WithValue(ctx, scopeKey, s)
}

// From extracts the scope from ctx if present.
func From(ctx context.Context) (Scope, bool) {
	s, ok := ctx.Value(scopeKey).(Scope)
	return s, ok
}
