package connect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jswitzer/pulse/internal/auth"
	"github.com/jswitzer/pulse/internal/version"
)

// TokenSource supplies bearer tokens for API requests. Implemented by
// *auth.Manager.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Client talks to the fitness service's REST API. All fetchers return
// (nil, nil) when the service has no data for the requested day.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	tokens    TokenSource
	userAgent string

	mu          sync.Mutex
	displayName string
}

const requestTimeout = 30 * time.Second

// NewClient builds a Client for the given API base URL.
func NewClient(apiBase string, tokens TokenSource, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	if tokens == nil {
		return nil, fmt.Errorf("token source is required")
	}
	if timeout <= 0 {
		timeout = requestTimeout
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		tokens:    tokens,
		userAgent: version.UserAgent(),
	}, nil
}

// errNoData marks responses that carry no payload for the requested day.
var errNoData = fmt.Errorf("no data")

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return err
	}

	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: api %s returned status %d", auth.ErrSessionExpired, rel.Path, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent:
		return errNoData
	case resp.StatusCode >= 400:
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return errNoData
	}
	if err := json.Unmarshal(trimmed, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// displayUserName returns the account's display name, fetching the profile on
// first use. Some wellness endpoints embed it in the request path.
func (c *Client) displayUserName(ctx context.Context) (string, error) {
	c.mu.Lock()
	cached := c.displayName
	c.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	profile, err := c.FetchUserProfile(ctx)
	if err != nil {
		return "", err
	}
	if profile == nil || strings.TrimSpace(profile.DisplayName) == "" {
		return "", fmt.Errorf("profile has no display name")
	}

	c.mu.Lock()
	c.displayName = profile.DisplayName
	c.mu.Unlock()
	return profile.DisplayName, nil
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		return nil, fmt.Errorf("api base is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("api_base %q missing host", apiBase)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// checkDate validates a calendar date in YYYY-MM-DD form.
func checkDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return nil
}
