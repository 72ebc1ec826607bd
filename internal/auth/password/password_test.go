package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	dErrors "talenthub/pkg/domain-errors"
)

// Low cost keeps the suite fast; correctness is cost-independent.
var hasher = New(bcrypt.MinCost)

func TestHashVerifyRoundTrip(t *testing.T) {
	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "correct horse", "hash must not embed the plaintext")

	assert.True(t, hasher.Verify("correct horse battery staple", hash))
	assert.False(t, hasher.Verify("correct horse battery stable", hash))
}

func TestHashIsSalted(t *testing.T) {
	h1, err := hasher.Hash("password1")
	require.NoError(t, err)
	h2, err := hasher.Hash("password1")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "two hashes of the same password must differ by salt")
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	_, err := hasher.Hash("")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestHashRejectsOverlongPassword(t *testing.T) {
	// bcrypt caps input at 72 bytes
	long := make([]byte, 80)
	for i := range long {
		long[i] = 'a'
	}
	_, err := hasher.Hash(string(long))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestVerifyMalformedHashReturnsFalse(t *testing.T) {
	assert.False(t, hasher.Verify("password1", ""))
	assert.False(t, hasher.Verify("password1", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Verify("password1", "$2a$broken"))
}

func TestDefaultCostFallback(t *testing.T) {
	h := New(-1)
	hash, err := h.Hash("password1")
	require.NoError(t, err)
	assert.True(t, h.Verify("password1", hash))
}
