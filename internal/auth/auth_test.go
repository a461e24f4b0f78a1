package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestManager(t *testing.T, baseURL string) *Manager {
	t.Helper()
	tokenPath := filepath.Join(t.TempDir(), "tokens.json")
	m, err := NewManager(baseURL, tokenPath, time.Second)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestLoginSavesTokens(t *testing.T) {
	var gotPath, gotUsername string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotUsername = r.PostForm.Get("username")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","refresh_token":"rt-1","token_type":"Bearer","expires_in":3600}`))
	}))
	defer server.Close()

	m := newTestManager(t, server.URL)
	if err := m.Login(context.Background(), "someone@example.com", "hunter2"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if gotPath != loginPath {
		t.Fatalf("expected login request to %s, got %s", loginPath, gotPath)
	}
	if gotUsername != "someone@example.com" {
		t.Fatalf("unexpected username %q", gotUsername)
	}

	saved, err := loadTokens(m.TokenPath())
	if err != nil {
		t.Fatalf("loadTokens after login: %v", err)
	}
	if saved.AccessToken != "at-1" || saved.RefreshToken != "rt-1" {
		t.Fatalf("unexpected saved tokens: %+v", saved)
	}
	if saved.ExpiresAt == 0 {
		t.Fatal("expected saved tokens to carry an expiry")
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	m := newTestManager(t, "https://auth.example.com")
	if err := m.Login(context.Background(), "", "secret"); err == nil {
		t.Fatal("expected error for empty email")
	}
	if err := m.Login(context.Background(), "a@b.c", ""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestAccessTokenWithoutSession(t *testing.T) {
	m := newTestManager(t, "https://auth.example.com")
	_, err := m.AccessToken(context.Background())
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestAccessTokenReturnsLiveToken(t *testing.T) {
	m := newTestManager(t, "https://auth.example.com")
	now := time.Now()
	m.now = func() time.Time { return now }
	if err := saveTokens(m.TokenPath(), TokenSet{
		AccessToken:  "at-live",
		RefreshToken: "rt",
		ExpiresAt:    now.Add(time.Hour).Unix(),
	}); err != nil {
		t.Fatalf("saveTokens: %v", err)
	}

	got, err := m.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("AccessToken: %v", err)
	}
	if got != "at-live" {
		t.Fatalf("expected at-live, got %q", got)
	}
}

func TestAccessTokenRefreshesExpiredToken(t *testing.T) {
	var refreshed bool
	var gotRefreshToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != refreshPath {
			t.Fatalf("unexpected request path %s", r.URL.Path)
		}
		refreshed = true
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotRefreshToken = r.PostForm.Get("refresh_token")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-new","refresh_token":"rt-new","token_type":"Bearer","expires_in":3600}`))
	}))
	defer server.Close()

	m := newTestManager(t, server.URL)
	now := time.Now()
	m.now = func() time.Time { return now }
	if err := saveTokens(m.TokenPath(), TokenSet{
		AccessToken:  "at-stale",
		RefreshToken: "rt-old",
		ExpiresAt:    now.Add(-time.Minute).Unix(),
	}); err != nil {
		t.Fatalf("saveTokens: %v", err)
	}

	got, err := m.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("AccessToken: %v", err)
	}
	if !refreshed {
		t.Fatal("expected a refresh request")
	}
	if gotRefreshToken != "rt-old" {
		t.Fatalf("expected refresh with rt-old, got %q", gotRefreshToken)
	}
	if got != "at-new" {
		t.Fatalf("expected at-new, got %q", got)
	}

	saved, err := loadTokens(m.TokenPath())
	if err != nil {
		t.Fatalf("loadTokens after refresh: %v", err)
	}
	if saved.AccessToken != "at-new" || saved.RefreshToken != "rt-new" {
		t.Fatalf("refreshed tokens not persisted: %+v", saved)
	}
}

func TestRefreshRejectionExpiresSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid_grant", http.StatusUnauthorized)
	}))
	defer server.Close()

	m := newTestManager(t, server.URL)
	now := time.Now()
	m.now = func() time.Time { return now }
	if err := saveTokens(m.TokenPath(), TokenSet{
		AccessToken:  "at-stale",
		RefreshToken: "rt-dead",
		ExpiresAt:    now.Add(-time.Minute).Unix(),
	}); err != nil {
		t.Fatalf("saveTokens: %v", err)
	}

	_, err := m.AccessToken(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestRefreshWithoutRefreshToken(t *testing.T) {
	m := newTestManager(t, "https://auth.example.com")
	now := time.Now()
	m.now = func() time.Time { return now }
	if err := saveTokens(m.TokenPath(), TokenSet{
		AccessToken: "at-stale",
		ExpiresAt:   now.Add(-time.Minute).Unix(),
	}); err != nil {
		t.Fatalf("saveTokens: %v", err)
	}

	_, err := m.AccessToken(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestRefreshKeepsOldRefreshTokenWhenOmitted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-new","token_type":"Bearer","expires_in":3600}`))
	}))
	defer server.Close()

	m := newTestManager(t, server.URL)
	now := time.Now()
	m.now = func() time.Time { return now }
	if err := saveTokens(m.TokenPath(), TokenSet{
		AccessToken:  "at-stale",
		RefreshToken: "rt-keep",
		ExpiresAt:    now.Add(-time.Minute).Unix(),
	}); err != nil {
		t.Fatalf("saveTokens: %v", err)
	}
	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	saved, err := loadTokens(m.TokenPath())
	if err != nil {
		t.Fatalf("loadTokens: %v", err)
	}
	if saved.RefreshToken != "rt-keep" {
		t.Fatalf("expected rt-keep preserved, got %q", saved.RefreshToken)
	}
}

func TestLogoutRemovesTokenFile(t *testing.T) {
	m := newTestManager(t, "https://auth.example.com")
	if err := saveTokens(m.TokenPath(), TokenSet{AccessToken: "at"}); err != nil {
		t.Fatalf("saveTokens: %v", err)
	}
	if err := m.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := os.Stat(m.TokenPath()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected token file removed, stat err %v", err)
	}
	// Logout with nothing saved is not an error.
	if err := m.Logout(); err != nil {
		t.Fatalf("second Logout: %v", err)
	}
}

func TestAuthenticated(t *testing.T) {
	m := newTestManager(t, "https://auth.example.com")
	if m.Authenticated() {
		t.Fatal("expected not authenticated with no blob")
	}
	if err := saveTokens(m.TokenPath(), TokenSet{AccessToken: "at"}); err != nil {
		t.Fatalf("saveTokens: %v", err)
	}
	if !m.Authenticated() {
		t.Fatal("expected authenticated after blob saved")
	}
}
