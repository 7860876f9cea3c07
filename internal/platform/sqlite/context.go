package sqlite

import (
	"context"

	"zombiezen.com/go/sqlite"
)

// ctxKey is the context key for storing connections.
type ctxKey struct{}

// WithConn embeds a borrowed connection in the context. Used by the
// transaction scope so repositories participate in the scope's
// transaction instead of taking their own connection.
func WithConn(ctx context.Context, conn *sqlite.Conn) context.Context {
	return context.WithValue(ctx, ctxKey{}, conn)
}

// ConnFromContext extracts a connection from context.
// Returns (nil, false) if no connection is present.
func ConnFromContext(ctx context.Context) (*sqlite.Conn, bool) {
	conn, ok := ctx.Value(ctxKey{}).(*sqlite.Conn)
	return conn, ok
}
