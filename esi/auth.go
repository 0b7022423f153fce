package esi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// authToken is the per-refresh-token state: absent until first use, then
// valid until expiry, then refreshed on demand. The mutex is held across the
// refresh HTTP call — refreshes are rare next to data fetches, and
// serializing them keeps concurrent handlers from hammering the token
// endpoint with the same refresh token.
type authToken struct {
	mu          sync.Mutex
	accessToken string
	expiry      time.Time
}

// bearer returns a valid access token for refreshToken, refreshing it first
// if it is absent or expired. An empty refreshToken means the endpoint needs
// no authentication and yields an empty bearer.
func (c *Client) bearer(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", nil
	}

	tok, ok := c.tokens[refreshToken]
	if !ok {
		return "", fmt.Errorf("refresh token not registered at startup")
	}

	tok.mu.Lock()
	defer tok.mu.Unlock()

	if tok.accessToken != "" && time.Now().Before(tok.expiry) {
		return tok.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+c.basicAuth)
	req.Header.Set("User-Agent", c.userAgent)

	now := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		log.Printf("Auth: token refresh failed with status %d", resp.StatusCode)
		return "", &AuthStatusError{StatusCode: resp.StatusCode}
	}

	var data authResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}

	tok.accessToken = data.AccessToken
	tok.expiry = now.Add(time.Duration(data.ExpiresIn) * time.Second)
	log.Printf("Auth: refreshed access token, valid for %ds", data.ExpiresIn)

	return tok.accessToken, nil
}
