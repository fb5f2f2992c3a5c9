package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	signed, err := codec.Generate(42)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := codec.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.NotEmpty(t, claims.ID, "token should carry a unique id")
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestCodec_Expired(t *testing.T) {
	// Negative TTL produces a token that is already past its expiry
	codec := NewCodec("test-secret", -time.Second)

	signed, err := codec.Generate(7)
	require.NoError(t, err)

	claims, err := codec.Verify(signed)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestCodec_TamperedSignature(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	signed, err := codec.Generate(42)
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)

	// Flip one character of the signature
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	claims, err := codec.Verify(tampered)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestCodec_TamperedPayload(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	signed, err := codec.Generate(42)
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)

	// Swap in the payload of a token for another user; the signature no
	// longer matches
	other, err := codec.Generate(43)
	require.NoError(t, err)
	otherParts := strings.Split(other, ".")

	spliced := parts[0] + "." + otherParts[1] + "." + parts[2]

	claims, err := codec.Verify(spliced)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestCodec_WrongSecret(t *testing.T) {
	signed, err := NewCodec("secret-a", time.Hour).Generate(1)
	require.NoError(t, err)

	claims, err := NewCodec("secret-b", time.Hour).Verify(signed)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestCodec_RejectsUnsignedToken(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	// A "none"-algorithm token must never verify, regardless of payload
	claims := SessionClaims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	got, err := codec.Verify(unsigned)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestCodec_Malformed(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	for _, bad := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		claims, err := codec.Verify(bad)
		assert.Nil(t, claims, "input %q", bad)
		assert.ErrorIs(t, err, ErrTokenInvalid, "input %q", bad)
	}
}
