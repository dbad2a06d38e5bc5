package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerContext(t *testing.T) {
	_, err := OwnerFrom(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = OwnerFrom(WithOwner(context.Background(), ""))
	assert.ErrorIs(t, err, ErrUnauthenticated)

	owner, err := OwnerFrom(WithOwner(context.Background(), "user-1"))
	require.NoError(t, err)
	assert.Equal(t, "user-1", owner)
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("user-1", secret, time.Hour)
	require.NoError(t, err)

	userID, err := UserIDFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("user-1", []byte("a"), time.Hour)
	require.NoError(t, err)

	_, err = UserIDFromToken(token, []byte("b"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsExpired(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateToken("user-1", secret, -time.Minute)
	require.NoError(t, err)

	_, err = UserIDFromToken(token, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsGarbage(t *testing.T) {
	_, err := UserIDFromToken("not-a-token", []byte("secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
