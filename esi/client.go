// Package esi is the typed client for the EVE ESI HTTP API and its OAuth
// token endpoint. Every fetch returns the payload together with the absolute
// expiry the upstream advertised, which the cache layer turns into TTLs.
package esi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/wevetools/weve-market/config"
)

const (
	defaultBaseURL = "https://esi.evetech.net/latest"
	defaultAuthURL = "https://login.eveonline.com/v2/oauth/token"

	datasource = "tranquility"
)

// ESI tolerates up to 150 error-free requests per second; stay well below.
const (
	requestsPerSecond = 50
	requestBurst      = 50
)

// Client talks to ESI. It is safe for concurrent use; one instance is shared
// by every service.
type Client struct {
	http      *http.Client
	baseURL   string
	authURL   string
	userAgent string
	basicAuth string
	limiter   *rate.Limiter
	retry     retryOptions
	tokens    map[string]*authToken
}

// NewClient builds the shared ESI client from configuration. An auth slot is
// created for every distinct configured refresh token; tokens start out
// absent and are refreshed on first use.
func NewClient(cfg *config.Config) *Client {
	baseURL := defaultBaseURL
	if cfg.OverrideEsiBaseURL != "" {
		baseURL = cfg.OverrideEsiBaseURL
	}
	authURL := defaultAuthURL
	if cfg.OverrideAuthURL != "" {
		authURL = cfg.OverrideAuthURL
	}

	tokens := make(map[string]*authToken)
	for _, refreshToken := range cfg.Markets().RefreshTokens() {
		tokens[refreshToken] = &authToken{}
	}

	credentials := cfg.ClientID + ":" + cfg.ClientSecret

	return &Client{
		http:      &http.Client{Timeout: cfg.ClientTimeout()},
		baseURL:   baseURL,
		authURL:   authURL,
		userAgent: cfg.UserAgent,
		basicAuth: base64.StdEncoding.EncodeToString([]byte(credentials)),
		limiter:   rate.NewLimiter(requestsPerSecond, requestBurst),
		retry:     defaultRetryOptions(),
		tokens:    tokens,
	}
}

func (c *Client) newRequest(ctx context.Context, method, url, bearer string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return req, nil
}

// get fetches url, decodes the JSON body into dst and returns the response
// expiry. bearer may be empty for unauthenticated endpoints.
func (c *Client) get(ctx context.Context, url, bearer string, dst interface{}) (time.Time, error) {
	resp, err := c.doWithRetries(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodGet, url, bearer)
	})
	if err != nil {
		return time.Time{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return time.Time{}, &StatusError{URL: url, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return time.Time{}, fmt.Errorf("decoding %s: %w", url, err)
	}
	return parseExpires(resp), nil
}

// pageCount issues the HEAD probe for page 1 of a paginated endpoint and
// reads the X-Pages header. Endpoints that fit in one page omit the header.
func (c *Client) pageCount(ctx context.Context, url, bearer string) (int, error) {
	resp, err := c.doWithRetries(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodHead, url, bearer)
	})
	if err != nil {
		return 0, err
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	pages := 1
	if v := resp.Header.Get("X-Pages"); v != "" {
		pages, err = strconv.Atoi(v)
		if err != nil || pages < 1 {
			return 0, fmt.Errorf("bad X-Pages header %q from %s", v, url)
		}
	}
	return pages, nil
}

// parseExpires reads the response's Expires header. A zero time is returned
// when the header is missing or malformed; the cache layer's minimum TTL
// then governs alone.
func parseExpires(resp *http.Response) time.Time {
	v := resp.Header.Get("Expires")
	if v == "" {
		return time.Time{}
	}
	if t, err := http.ParseTime(v); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC1123Z, v); err == nil {
		return t
	}
	return time.Time{}
}
