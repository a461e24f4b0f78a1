package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/jswitzer/pulse/internal/version"
)

// releaseFeedURL is the latest-release endpoint checked by `pulse update`.
var releaseFeedURL = "https://api.github.com/repos/jswitzer/pulse/releases/latest"

type release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

func cmdVersion(ctx context.Context, e *env, args []string) error {
	fmt.Fprintf(e.stdout, "pulse %s\n", version.Version)
	return nil
}

func cmdUpdate(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	latest, err := fetchLatestRelease(ctx, releaseFeedURL)
	if err != nil {
		return fmt.Errorf("check releases: %w", err)
	}

	current := version.Version
	if !isNewer(latest.TagName, current) {
		fmt.Fprintf(e.stdout, "pulse %s is up to date\n", current)
		return nil
	}
	fmt.Fprintf(e.stdout, "pulse %s is available (running %s)\n", latest.TagName, current)
	if latest.HTMLURL != "" {
		fmt.Fprintf(e.stdout, "  %s\n", latest.HTMLURL)
	}
	fmt.Fprintln(e.stdout, "Upgrade with: go install github.com/jswitzer/pulse/cmd/pulse@latest")
	return nil
}

func fetchLatestRelease(ctx context.Context, feedURL string) (*release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release feed returned %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	var rel release
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, fmt.Errorf("decode release feed: %w", err)
	}
	if rel.TagName == "" {
		return nil, fmt.Errorf("release feed had no tag name")
	}
	return &rel, nil
}

// isNewer compares dotted version strings numerically, ignoring a leading
// "v". Malformed segments compare as zero.
func isNewer(latest, current string) bool {
	a := versionParts(latest)
	b := versionParts(current)
	for i := 0; i < len(a) || i < len(b); i++ {
		var av, bv int
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			return av > bv
		}
	}
	return false
}

func versionParts(v string) []int {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}
	fields := strings.Split(v, ".")
	parts := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			n = 0
		}
		parts = append(parts, n)
	}
	return parts
}
