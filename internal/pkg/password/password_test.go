package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, Verify("s3cret-pass", hash))
	assert.False(t, Verify("wrong-pass", hash))
	assert.False(t, Verify("", hash))
}

func TestVerify_MalformedHash(t *testing.T) {
	assert.False(t, Verify("anything", ""))
	assert.False(t, Verify("anything", "not-a-bcrypt-hash"))
}

func TestHash_ProducesDistinctHashes(t *testing.T) {
	a, err := Hash("same-password")
	require.NoError(t, err)
	b, err := Hash("same-password")
	require.NoError(t, err)

	// bcrypt salts per call
	assert.NotEqual(t, a, b)
	assert.True(t, Verify("same-password", a))
	assert.True(t, Verify("same-password", b))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid", "longenough", true},
		{"minimum length", "12345678", true},
		{"too short", "short", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePassword(tt.password))
		})
	}
}
