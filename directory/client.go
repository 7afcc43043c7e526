// Package directory resolves SSO usernames to email addresses via the
// portal's user API. Lookups are cached in-process; the portal's user set is
// small and usernames never remap mid-deploy.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Client looks up user emails against the SSO portal API.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client

	mu    sync.Mutex
	cache map[string]string
}

// NewClient creates a directory client. An empty serverURL or apiKey
// disables lookups; LookupEmail then always falls back to the username.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL:  strings.TrimRight(serverURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      make(map[string]string),
	}
}

type userResult struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type usersResponse struct {
	Results []userResult `json:"results"`
}

// LookupEmail resolves a username to an email address. Any failure — portal
// unconfigured, unreachable, or username unknown — falls back to returning
// the username itself, so submissions are never blocked on the portal.
func (c *Client) LookupEmail(ctx context.Context, username string) string {
	if c.serverURL == "" || c.apiKey == "" {
		return username
	}

	c.mu.Lock()
	if email, ok := c.cache[username]; ok {
		c.mu.Unlock()
		return email
	}
	c.mu.Unlock()

	email, err := c.fetchEmail(ctx, username)
	if err != nil || email == "" {
		return username
	}

	c.mu.Lock()
	c.cache[username] = email
	c.mu.Unlock()

	return email
}

// fetchEmail queries the portal user API for an exact username match
func (c *Client) fetchEmail(ctx context.Context, username string) (string, error) {
	endpoint := fmt.Sprintf("%s/__api__/v1/users?prefix=%s", c.serverURL, url.QueryEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build directory request: %w", err)
	}
	req.Header.Set("Authorization", "Key "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("directory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("directory API returned status %d", resp.StatusCode)
	}

	var payload usersResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode directory response: %w", err)
	}

	// The prefix query may match more than one user; only exact wins.
	for _, user := range payload.Results {
		if user.Username == username {
			return user.Email, nil
		}
	}

	return "", nil
}
