package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashSecret_RoundTrip(t *testing.T) {
	hash, err := HashSecret("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.True(t, VerifySecret(hash, "correct horse battery staple"))
	assert.False(t, VerifySecret(hash, "wrong password"))
}

func TestHashSecret_SaltIsRandom(t *testing.T) {
	first, err := HashSecret("same secret")
	require.NoError(t, err)
	second, err := HashSecret("same secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, VerifySecret(first, "same secret"))
	assert.True(t, VerifySecret(second, "same secret"))
}

func TestVerifySecret_MalformedHash(t *testing.T) {
	assert.False(t, VerifySecret("", "secret"))
	assert.False(t, VerifySecret("not a hash", "secret"))
	assert.False(t, VerifySecret("$argon2id$v=19$m=65536,t=3,p=4$!!!$!!!", "secret"))
	assert.False(t, VerifySecret("$argon2id$v=19$garbage$c2FsdA$aGFzaA", "secret"))
}
