package cli

import (
	"context"
	"flag"

	"github.com/jswitzer/pulse/internal/app"
)

func cmdDash(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("dash", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	poll := fs.Int("poll", 0, "refresh interval in seconds (optional)")
	prefsPath := fs.String("prefs", "", "preferences file path (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return app.Run(ctx, app.Options{
		ConfigPath: e.configPath,
		PrefsPath:  *prefsPath,
		PollEvery:  *poll,
	})
}
