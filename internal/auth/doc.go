// Package auth manages the session with the fitness service's OAuth
// endpoints.
//
// A Manager exchanges credentials for a token set, persists it as a JSON blob
// under the user's config directory, and hands out live access tokens to API
// clients, refreshing behind the scenes when the stored token has expired.
// Two sentinel errors cover the failure modes callers care about:
// ErrNotAuthenticated when no saved session exists, and ErrSessionExpired when
// the service rejects the stored session and a fresh login is required.
package auth
