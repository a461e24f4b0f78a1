// Package connect is a typed client for the fitness service's REST API.
//
// A Client wraps an authenticated HTTP session and exposes one fetcher per
// metric: daily summary, sleep, heart rate, stress, body battery, steps,
// weight and body composition, hydration, respiration, activities, and the
// account's profile and devices. Fetchers take calendar dates in YYYY-MM-DD
// form and return (nil, nil) when the service recorded nothing for that day,
// so callers can distinguish absent data from transport failures.
//
// Rejected credentials surface as auth.ErrSessionExpired so callers can
// prompt for a fresh login.
package connect
