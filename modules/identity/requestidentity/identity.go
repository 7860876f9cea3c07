// Package requestidentity holds the request-scoped identity value and its
// context helpers. It exists below both package identity and the identity
// HTTP infrastructure so the middleware can use it without importing the
// module root; package identity re-exports everything here, so consumers
// outside the module keep using the identity package.
package requestidentity

import (
	"context"

	"github.com/RobuxEmperium/robux-site/modules/identity/domain"
)

// Identity describes the authenticated caller of a request.
type Identity struct {
	UserID int64
	Email  string
	Role   domain.Role
}

// IsSeller reports whether the caller holds the seller role.
func (i Identity) IsSeller() bool { return i.Role == domain.RoleSeller }

// ctxKey is the context key for the request identity.
type ctxKey struct{}

// WithIdentity embeds the caller's identity in the context.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, ident)
}

// FromContext extracts the caller's identity from the context.
// Returns (Identity{}, false) for anonymous requests.
func FromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(ctxKey{}).(Identity)
	return ident, ok
}
