// Package auth mints and parses the signed assertions behind the session
// token pair. Persistence of the current refresh token lives in the user
// repository; this package only covers signature, expiry, and token kind.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every parse failure: bad signature, expired,
// malformed, wrong claims shape, wrong token kind. Callers must not
// distinguish the causes to the outside.
var ErrInvalidToken = errors.New("invalid token")

// TokenKind discriminates access from refresh tokens inside the claims.
// Each kind also has its own signing secret; the claim makes the
// separation hold even if the secrets were ever configured identical.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// Claims carries the authenticated user ID and token kind alongside the
// registered claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Kind   string `json:"typ"`
}

// Generate mints an HS256 token of the given kind asserting userID for the
// given validity window.
func Generate(userID uuid.UUID, kind TokenKind, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID.String(),
		Kind:   string(kind),
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Parse verifies signature, expiry, and token kind, and returns the
// asserted user ID. All failures return ErrInvalidToken.
func Parse(tokenString string, kind TokenKind, secret []byte) (uuid.UUID, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	if claims.Kind != string(kind) {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}
