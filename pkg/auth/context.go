package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Identity is the caller resolved by the session layer: who is acting and
// whether they hold the administrator role. Every lending operation takes it
// as an explicit argument; nothing below the HTTP layer reads identity from
// ambient state.
type Identity struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const identityKey contextKey = "identity"

// ErrIdentityNotFound is returned when no Identity exists in the request
// context. Handlers should return 401 when this error occurs.
var ErrIdentityNotFound = errors.New("identity not found in context")

// IdentityFromCtx extracts the authenticated caller from the request context.
// Returns a zero Identity and ErrIdentityNotFound for unauthenticated requests.
func IdentityFromCtx(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok || id.UserID == uuid.Nil {
		return Identity{}, ErrIdentityNotFound
	}
	return id, nil
}

// WithIdentity returns a new context with the given caller attached.
// Used by the session middleware after validating the cookie.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}
