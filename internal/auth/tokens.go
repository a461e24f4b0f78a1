package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSet is the flat credential blob persisted between runs.
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresAt    int64  `json:"expires_at"` // unix seconds; zero falls back to the JWT exp claim
}

// expirySkew refreshes tokens slightly before they lapse so in-flight
// requests never carry a token that dies mid-call.
const expirySkew = 30 * time.Second

// Expired reports whether the access token should be refreshed.
func (t TokenSet) Expired(now time.Time) bool {
	if strings.TrimSpace(t.AccessToken) == "" {
		return true
	}
	expires := t.ExpiresAt
	if expires == 0 {
		expires = jwtExpiry(t.AccessToken)
	}
	if expires == 0 {
		// No expiry anywhere; treat as live and let the API reject it.
		return false
	}
	return !now.Add(expirySkew).Before(time.Unix(expires, 0))
}

// jwtExpiry extracts the exp claim from a JWT access token without verifying
// the signature. Returns zero when the token is not a parseable JWT.
func jwtExpiry(token string) int64 {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return 0
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0
	}
	return exp.Unix()
}

// loadTokens reads the credential blob at path.
func loadTokens(path string) (*TokenSet, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("read token file: %w", err)
	}
	var tokens TokenSet
	if err := json.Unmarshal(bytes, &tokens); err != nil {
		return nil, fmt.Errorf("%w: token file is corrupt", ErrNotAuthenticated)
	}
	if strings.TrimSpace(tokens.AccessToken) == "" {
		return nil, fmt.Errorf("%w: token file has no access token", ErrNotAuthenticated)
	}
	return &tokens, nil
}

// saveTokens writes the credential blob, creating parent directories as needed.
func saveTokens(path string, tokens TokenSet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	bytes, err := json.MarshalIndent(tokens, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tokens: %w", err)
	}
	if err := os.WriteFile(path, bytes, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}
