package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// tokenExpiryMargin is subtracted from the reported token lifetime so a
// token is refreshed slightly before the API would reject it.
const tokenExpiryMargin = 5 * time.Second

type tokenResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// getAccessToken returns a valid bearer token, refreshing the cached one
// via the client-credentials exchange when it is missing or expired. The
// mutex makes the refresh single-flight; concurrent searches share one
// exchange instead of racing.
func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.expiresAt) {
		return c.accessToken, nil
	}

	if err := c.fetchToken(ctx); err != nil {
		return "", err
	}
	return c.accessToken, nil
}

// fetchToken exchanges the client credentials for a fresh access token.
// Caller must hold c.mu.
func (c *Client) fetchToken(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create token request: %w", err)
	}

	credential := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+credential)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	requestAt := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var result tokenResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode token response: %w", err)
	}
	if result.AccessToken == "" {
		return fmt.Errorf("token endpoint returned empty access_token")
	}

	// The slot is overwritten whole; never partially updated.
	c.accessToken = result.AccessToken
	c.expiresAt = requestAt.Add(time.Duration(result.ExpiresIn)*time.Second - tokenExpiryMargin)
	return nil
}
