package auth

import (
	"context"
	"errors"
)

var ErrUnauthenticated = errors.New("unauthenticated")

type ownerKey struct{}

// WithOwner returns a context carrying the authenticated user id.
func WithOwner(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ownerKey{}, userID)
}

// OwnerFrom returns the authenticated user id stored in ctx, or
// ErrUnauthenticated if there is none.
func OwnerFrom(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(ownerKey{}).(string)
	if !ok || userID == "" {
		return "", ErrUnauthenticated
	}
	return userID, nil
}
