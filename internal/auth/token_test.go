package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPasetoKey = []byte("0123456789abcdef0123456789abcdef")

func newTestServices(t *testing.T) []TokenService {
	t.Helper()
	pasetoSvc, err := NewPasetoService(testPasetoKey)
	require.NoError(t, err)
	return []TokenService{pasetoSvc, NewJWTService([]byte("jwt-test-secret"))}
}

func TestTokenService_RoundTrip(t *testing.T) {
	userID := uuid.New()

	for _, svc := range newTestServices(t) {
		token, err := svc.CreateToken(userID, "alice@example.com", time.Hour)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "alice@example.com", claims.Email)
		assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
	}
}

func TestTokenService_Expired(t *testing.T) {
	for _, svc := range newTestServices(t) {
		token, err := svc.CreateToken(uuid.New(), "alice@example.com", -time.Minute)
		require.NoError(t, err)

		_, err = svc.VerifyToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	}
}

func TestTokenService_Garbage(t *testing.T) {
	for _, svc := range newTestServices(t) {
		_, err := svc.VerifyToken("not a token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestPasetoService_WrongKey(t *testing.T) {
	svc, err := NewPasetoService(testPasetoKey)
	require.NoError(t, err)
	other, err := NewPasetoService([]byte("ffffffffffffffffffffffffffffffff"))
	require.NoError(t, err)

	token, err := svc.CreateToken(uuid.New(), "alice@example.com", time.Hour)
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewPasetoService_RejectsBadKeyLength(t *testing.T) {
	_, err := NewPasetoService([]byte("too short"))
	assert.Error(t, err)
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc := NewJWTService([]byte("secret-a"))
	other := NewJWTService([]byte("secret-b"))

	token, err := svc.CreateToken(uuid.New(), "alice@example.com", time.Hour)
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
