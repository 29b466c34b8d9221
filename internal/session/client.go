package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client is the HTTP Syncer implementation against the backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type externalLoginRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profilePicture"`
}

type externalLoginResponse struct {
	User  Profile `json:"user"`
	Token string  `json:"token"`
}

// ExternalLogin exchanges the provider identity for a local session via
// POST /api/auth/google.
func (c *Client) ExternalLogin(ctx context.Context, identity Identity) (*Session, error) {
	body, err := json.Marshal(externalLoginRequest{
		Name:           identity.Name,
		Email:          identity.Email,
		ProfilePicture: identity.ProfilePicture,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/google", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("login request returned status %d", resp.StatusCode)
	}

	var decoded externalLoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}

	return &Session{
		Profile:   decoded.User,
		Token:     decoded.Token,
		FetchedAt: time.Now(),
	}, nil
}
