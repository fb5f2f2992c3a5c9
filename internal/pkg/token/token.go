// Package token implements the session token codec: a signed, self-contained
// credential embedding the user id and an expiry instant. Tokens are the only
// session state the system keeps; there is no server-side session store.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// SessionClaims represents the session token claims
type SessionClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with a fixed secret and TTL.
// Both are loaded once at startup; a Codec is immutable and safe for
// concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a session token codec
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Generate creates a signed session token for the user
func (c *Codec) Generate(userID uint) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "transit-backoffice",
			ID:        uuid.New().String(),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify validates a session token and returns its claims. It rejects
// tokens with a missing or mismatched signature, a non-HMAC signing
// method in the header, a malformed payload, or an expiry at or before
// the current instant.
func (c *Codec) Verify(tokenString string) (*SessionClaims, error) {
	t, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return c.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := t.Claims.(*SessionClaims); ok && t.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}
