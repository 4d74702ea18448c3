// Package auth issues and validates the bearer tokens that gate checkout
// and admin operations.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"sol-storefront/internal/domain"
)

// Claims extends the registered JWT claims with the customer email used as
// the preferred email on recorded orders.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Generate creates a signed HS256 token for a user.
func (tm *TokenManager) Generate(userID uuid.UUID, email string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "sol-storefront",
		},
		Email: email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Validate parses a token string into the caller identity. Any parse or
// signature problem maps to ErrUnauthenticated; the detail stays server-side.
func (tm *TokenManager) Validate(tokenString string) (*domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrUnauthenticated
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	return &domain.Identity{UserID: userID, Email: claims.Email}, nil
}
