// Package version records build identity shared by the CLI and HTTP clients.
package version

// Version is the semantic version of this build. Release tooling overrides it
// via -ldflags "-X github.com/jswitzer/pulse/internal/version.Version=...".
var Version = "0.3.0"

// UserAgent identifies pulse in outbound HTTP requests.
func UserAgent() string {
	return "pulse/" + Version
}
