// Package identity provides registration, login and request identity for
// the marketplace. Other modules consume it through the Identity value the
// authentication middleware places in the request context.
package identity

import (
	"context"

	"github.com/RobuxEmperium/robux-site/modules/identity/requestidentity"
)

// Identity describes the authenticated caller of a request.
//
// It is an alias for requestidentity.Identity; the definitions live in
// that subpackage so the identity HTTP infrastructure can use them
// without creating an import cycle through this package.
type Identity = requestidentity.Identity

// WithIdentity embeds the caller's identity in the context.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return requestidentity.WithIdentity(ctx, ident)
}

// FromContext extracts the caller's identity from the context.
// Returns (Identity{}, false) for anonymous requests.
func FromContext(ctx context.Context) (Identity, bool) {
	return requestidentity.FromContext(ctx)
}
