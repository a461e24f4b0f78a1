package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsNewer(t *testing.T) {
	tests := []struct {
		latest  string
		current string
		want    bool
	}{
		{"v0.4.0", "0.3.0", true},
		{"0.3.0", "0.3.0", false},
		{"v0.3.0", "0.3.1", false},
		{"1.0.0", "0.9.9", true},
		{"v0.3.0.1", "0.3.0", true},
		{"v0.4.0-rc1", "0.3.0", true},
		{"garbage", "0.3.0", false},
	}
	for _, tt := range tests {
		if got := isNewer(tt.latest, tt.current); got != tt.want {
			t.Errorf("isNewer(%q, %q) = %v, want %v", tt.latest, tt.current, got, tt.want)
		}
	}
}

func TestFetchLatestRelease(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tag_name":"v0.4.0","html_url":"https://example.com/v0.4.0"}`))
	}))
	defer server.Close()

	rel, err := fetchLatestRelease(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("fetchLatestRelease: %v", err)
	}
	if rel.TagName != "v0.4.0" {
		t.Fatalf("TagName = %q, want v0.4.0", rel.TagName)
	}
	if rel.HTMLURL != "https://example.com/v0.4.0" {
		t.Fatalf("HTMLURL = %q", rel.HTMLURL)
	}
}

func TestFetchLatestRelease_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	if _, err := fetchLatestRelease(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 503 response")
	}
}

func TestFetchLatestRelease_MissingTag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	if _, err := fetchLatestRelease(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for feed without tag name")
	}
}
