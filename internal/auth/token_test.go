package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sol-storefront/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret")
	userID := uuid.New()

	token, err := tm.Generate(userID, "buyer@example.com", time.Hour)
	require.NoError(t, err)

	ident, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, ident.UserID)
	assert.Equal(t, "buyer@example.com", ident.Email)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a").Generate(uuid.New(), "x@y.co", time.Hour)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b").Validate(token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestTokenExpired(t *testing.T) {
	tm := NewTokenManager("test-secret")
	token, err := tm.Generate(uuid.New(), "x@y.co", -time.Minute)
	require.NoError(t, err)

	_, err = tm.Validate(token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestTokenGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret")

	_, err := tm.Validate("not.a.token")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
