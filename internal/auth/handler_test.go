package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchpair/launchpair/internal/httputil"
	"github.com/launchpair/launchpair/internal/logging"
)

type fakeRateLimiter struct {
	exceeded bool
	checked  []string
	recorded []string
}

func (f *fakeRateLimiter) CheckIPRateLimit(ctx context.Context, ip string) (bool, error) {
	return f.exceeded, nil
}

func (f *fakeRateLimiter) RecordIPRequest(ctx context.Context, ip string) error {
	return nil
}

func (f *fakeRateLimiter) CheckIPRateLimitWithPurpose(ctx context.Context, ip, purpose string) (bool, error) {
	f.checked = append(f.checked, purpose)
	return f.exceeded, nil
}

func (f *fakeRateLimiter) RecordIPRequestWithPurpose(ctx context.Context, ip, purpose string) error {
	f.recorded = append(f.recorded, purpose)
	return nil
}

func (f *fakeRateLimiter) CheckEmailCooldown(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (f *fakeRateLimiter) SetEmailCooldown(ctx context.Context, email string) error {
	return nil
}

func newTestHandler(t *testing.T, limiter RateLimiter) *Handler {
	t.Helper()
	svc, _ := newTestService(t)
	return NewHandler(svc, limiter, logging.NewLogger(true))
}

func TestGoogleLogin_RateLimited(t *testing.T) {
	limiter := &fakeRateLimiter{exceeded: true}
	h := newTestHandler(t, limiter)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/google",
		strings.NewReader(`{"email":"carol@example.com","name":"Carol"}`))
	rec := httptest.NewRecorder()

	h.GoogleLogin(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	var resp httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, httputil.CodeTooManyRequests, resp.Code)

	assert.Equal(t, []string{"google"}, limiter.checked)
	assert.Empty(t, limiter.recorded)
}

func TestGoogleLogin_RecordsRequestWhenAllowed(t *testing.T) {
	limiter := &fakeRateLimiter{}
	h := newTestHandler(t, limiter)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/google",
		strings.NewReader(`{"email":"carol@example.com","name":"Carol"}`))
	rec := httptest.NewRecorder()

	h.GoogleLogin(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "carol@example.com", resp.User.Email)

	assert.Equal(t, []string{"google"}, limiter.recorded)
}
