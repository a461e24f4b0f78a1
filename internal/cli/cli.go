package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/jswitzer/pulse/internal/auth"
	"github.com/jswitzer/pulse/internal/config"
	"github.com/jswitzer/pulse/internal/connect"
	"github.com/jswitzer/pulse/internal/report"
)

// env carries everything a command needs: resolved config, streams, and
// lazily-built service handles.
type env struct {
	cfg        config.Config
	configPath string
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer

	mgr *auth.Manager
	api *connect.Client
}

func (e *env) manager() (*auth.Manager, error) {
	if e.mgr != nil {
		return e.mgr, nil
	}
	mgr, err := auth.NewManager(e.cfg.AuthBase, e.cfg.TokenPath, e.cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("init auth: %w", err)
	}
	e.mgr = mgr
	return mgr, nil
}

func (e *env) client() (*connect.Client, error) {
	if e.api != nil {
		return e.api, nil
	}
	mgr, err := e.manager()
	if err != nil {
		return nil, err
	}
	api, err := connect.NewClient(e.cfg.APIBase, mgr, e.cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("init client: %w", err)
	}
	e.api = api
	return api, nil
}

func (e *env) builder() (*report.Builder, error) {
	api, err := e.client()
	if err != nil {
		return nil, err
	}
	return report.NewBuilder(api), nil
}

const usage = `pulse — Garmin Connect health metrics from the terminal

Usage:
  pulse [-config path] <command> [flags]

Commands:
  login       Sign in and save a session
  logout      Delete the saved session
  status      Show session, profile, and registered devices
  summary     Daily health summary (-d date, --with-sleep, --week)
  sleep       Sleep session detail (-d date)
  activities  List recent activities
  activity    Show one activity (--laps, --zones)
  snapshot    Full single-day report across all metrics
  export      Write a date-range export bundle to disk
  dash        Interactive dashboard
  update      Check for a newer release
  version     Print the version

Most commands accept --json for machine-readable output.
`

// Run parses arguments, dispatches to a subcommand, and returns the process
// exit code.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := flag.NewFlagSet("pulse", flag.ContinueOnError)
	root.SetOutput(stderr)
	root.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := root.String("config", "", "config file path (optional)")
	if err := root.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	rest := root.Args()
	if len(rest) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	name, rest := rest[0], rest[1:]

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "pulse: %v\n", err)
		return 1
	}
	e := &env{cfg: cfg, configPath: *configPath, stdin: stdin, stdout: stdout, stderr: stderr}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "pulse: unknown command %q\n\n", name)
		fmt.Fprint(stderr, usage)
		return 2
	}

	if err := cmd(ctx, e, rest); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		switch {
		case errors.Is(err, auth.ErrNotAuthenticated):
			fmt.Fprintln(stderr, "pulse: not signed in — run `pulse login`")
		case errors.Is(err, auth.ErrSessionExpired):
			fmt.Fprintln(stderr, "pulse: session expired — run `pulse login` again")
		default:
			fmt.Fprintf(stderr, "pulse: %v\n", err)
		}
		return 1
	}
	return 0
}

var commands = map[string]func(context.Context, *env, []string) error{
	"login":      cmdLogin,
	"logout":     cmdLogout,
	"status":     cmdStatus,
	"summary":    cmdSummary,
	"sleep":      cmdSleep,
	"activities": cmdActivities,
	"activity":   cmdActivity,
	"snapshot":   cmdSnapshot,
	"export":     cmdExport,
	"dash":       cmdDash,
	"update":     cmdUpdate,
	"version":    cmdVersion,
}
