package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jswitzer/pulse/internal/version"
)

// ErrNotAuthenticated indicates no saved session exists. The user must log in.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrSessionExpired indicates the remote service rejected the stored session.
// The user must log in again.
var ErrSessionExpired = errors.New("session expired")

const (
	loginPath   = "/oauth-service/oauth/login"
	refreshPath = "/oauth-service/oauth/refresh"

	defaultTimeout = 30 * time.Second
)

// Manager owns the session lifecycle: credential login, token persistence,
// and transparent refresh of expired access tokens.
type Manager struct {
	authBase  *url.URL
	http      *http.Client
	tokenPath string
	userAgent string

	mu     sync.Mutex
	tokens *TokenSet
	now    func() time.Time
}

// NewManager builds a Manager persisting tokens at tokenPath.
func NewManager(authBase, tokenPath string, timeout time.Duration) (*Manager, error) {
	base, err := url.Parse(strings.TrimSpace(authBase))
	if err != nil {
		return nil, fmt.Errorf("parse auth base %q: %w", authBase, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("auth base %q missing scheme or host", authBase)
	}
	if strings.TrimSpace(tokenPath) == "" {
		return nil, fmt.Errorf("token path is empty")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Manager{
		authBase:  base,
		http:      &http.Client{Timeout: timeout},
		tokenPath: tokenPath,
		userAgent: version.UserAgent(),
		now:       time.Now,
	}, nil
}

// TokenPath returns where the credential blob is persisted.
func (m *Manager) TokenPath() string {
	return m.tokenPath
}

// Login exchanges credentials for a token set and saves it.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	tokens, err := m.postTokenForm(ctx, loginPath, form)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = tokens
	if err := saveTokens(m.tokenPath, *tokens); err != nil {
		return err
	}
	return nil
}

// Resume loads a previously saved token set.
// Returns ErrNotAuthenticated when no usable blob exists.
func (m *Manager) Resume() error {
	tokens, err := loadTokens(m.tokenPath)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = tokens
	return nil
}

// Logout drops the in-memory session and deletes the saved blob.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.tokens = nil
	m.mu.Unlock()

	err := os.Remove(m.tokenPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete token file: %w", err)
	}
	return nil
}

// Authenticated reports whether a session (possibly stale) is loaded or saved.
func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	loaded := m.tokens != nil
	m.mu.Unlock()
	if loaded {
		return true
	}
	return m.Resume() == nil
}

// SessionExpiry reports when the loaded session's access token lapses. The
// bool is false when no session is loaded or the token carries no expiry.
func (m *Manager) SessionExpiry() (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokens == nil {
		return time.Time{}, false
	}
	at := m.tokens.ExpiresAt
	if at == 0 {
		at = jwtExpiry(m.tokens.AccessToken)
	}
	if at == 0 {
		return time.Time{}, false
	}
	return time.Unix(at, 0), true
}

// AccessToken returns a live bearer token, refreshing an expired one first.
// Returns ErrNotAuthenticated when no session exists and ErrSessionExpired
// when the remote rejects the refresh.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tokens == nil {
		tokens, err := loadTokens(m.tokenPath)
		if err != nil {
			return "", err
		}
		m.tokens = tokens
	}

	if !m.tokens.Expired(m.now()) {
		return m.tokens.AccessToken, nil
	}
	if err := m.refreshLocked(ctx); err != nil {
		return "", err
	}
	return m.tokens.AccessToken, nil
}

// Refresh forces a token refresh and re-saves the blob, regardless of expiry.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tokens == nil {
		tokens, err := loadTokens(m.tokenPath)
		if err != nil {
			return err
		}
		m.tokens = tokens
	}
	return m.refreshLocked(ctx)
}

func (m *Manager) refreshLocked(ctx context.Context) error {
	if strings.TrimSpace(m.tokens.RefreshToken) == "" {
		m.tokens = nil
		return fmt.Errorf("%w: no refresh token", ErrSessionExpired)
	}

	form := url.Values{}
	form.Set("refresh_token", m.tokens.RefreshToken)

	tokens, err := m.postTokenForm(ctx, refreshPath, form)
	if err != nil {
		if errors.Is(err, errRejected) {
			m.tokens = nil
			return fmt.Errorf("%w: refresh rejected", ErrSessionExpired)
		}
		return err
	}
	if strings.TrimSpace(tokens.RefreshToken) == "" {
		tokens.RefreshToken = m.tokens.RefreshToken
	}

	m.tokens = tokens
	if err := saveTokens(m.tokenPath, *tokens); err != nil {
		return err
	}
	return nil
}

// errRejected marks 4xx responses from the token endpoints.
var errRejected = errors.New("token request rejected")

func (m *Manager) postTokenForm(ctx context.Context, path string, form url.Values) (*TokenSet, error) {
	reqURL := m.authBase.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", m.userAgent)

	resp, err := m.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute token request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return nil, fmt.Errorf("%w: status %d", errRejected, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("token endpoint %s returned status %d", path, resp.StatusCode)
	}

	var payload struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
		ExpiresIn    int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if strings.TrimSpace(payload.AccessToken) == "" {
		return nil, fmt.Errorf("token response missing access token")
	}

	tokens := &TokenSet{
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
		TokenType:    payload.TokenType,
	}
	if payload.ExpiresIn > 0 {
		tokens.ExpiresAt = m.now().Add(time.Duration(payload.ExpiresIn) * time.Second).Unix()
	}
	return tokens, nil
}
