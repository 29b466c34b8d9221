package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const valid32ByteKey = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TOKEN_KEY", valid32ByteKey)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "dev", cfg.Server.Env)
	assert.True(t, cfg.Server.IsDevelopment())
	assert.Equal(t, TokenBackendPaseto, cfg.Auth.TokenBackend)
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.TrustedOrigins)
}

func TestLoad_PasetoKeyLength(t *testing.T) {
	t.Setenv("TOKEN_BACKEND", "paseto")
	t.Setenv("TOKEN_KEY", "too short")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_JWTBackend(t *testing.T) {
	t.Setenv("TOKEN_BACKEND", "jwt")
	t.Setenv("TOKEN_KEY", "any-length-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, TokenBackendJWT, cfg.Auth.TokenBackend)

	t.Setenv("TOKEN_KEY", "")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("TOKEN_BACKEND", "tarot")
	t.Setenv("TOKEN_KEY", valid32ByteKey)

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_DurationInSeconds(t *testing.T) {
	t.Setenv("TOKEN_KEY", valid32ByteKey)
	t.Setenv("TOKEN_DURATION", "3600")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.Auth.TokenDuration)
}

func TestLoad_TrustedOrigins(t *testing.T) {
	t.Setenv("TOKEN_KEY", valid32ByteKey)
	t.Setenv("TRUSTED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"https://app.example.com", "https://staging.example.com"},
		cfg.Server.TrustedOrigins,
	)
}

func TestConnectionString(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "postgres",
		DBName:   "launchpair",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=launchpair sslmode=disable",
		db.ConnectionString(),
	)

	db.ChannelBinding = "require"
	assert.Contains(t, db.ConnectionString(), "channel_binding=require")
}

func TestRedisAddress(t *testing.T) {
	r := RedisConfig{Host: "localhost", Port: "6379"}
	assert.Equal(t, "localhost:6379", r.Address())
}
