// Package identity carries the acting principal supplied by the external
// identity provider. Core services take an AccessControl as an explicit
// argument; the context helpers exist only for transport middleware.
package identity

import "context"

// RoleUser is assumed when a token names no role.
const RoleUser = "user"

// AccessControl describes who is acting. It is read-only for the core.
type AccessControl struct {
	UserID string
	Role   string
}


type ctxKey struct{}

// NewContext returns a copy of ctx carrying ac.
func NewContext(ctx context.Context, ac AccessControl) context.Context {
	return context.WithValue(ctx, ctxKey{}, ac)
}

// FromContext returns the AccessControl stored by NewContext.
func FromContext(ctx context.Context) (AccessControl, bool) {
	ac, ok := ctx.Value(ctxKey{}).(AccessControl)
	return ac, ok
}
