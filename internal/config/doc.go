// Package config loads pulse configuration from ~/.config/pulse/config.toml.
//
// All fields are optional; a missing config file yields usable defaults that
// point at the public Garmin Connect endpoints. Paths support ~ expansion and
// are returned absolute.
//
// Recognized keys:
//
//	api_base        Connect API origin (default https://connectapi.garmin.com)
//	auth_base       SSO/token origin (default https://connect.garmin.com)
//	token_path      credential blob location (default ~/.config/pulse/tokens.json)
//	export_dir      default directory for export bundles
//	timeout_seconds per-request HTTP timeout (default 30)
package config
