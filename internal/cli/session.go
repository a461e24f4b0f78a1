package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"strings"
)

func cmdLogin(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	email := fs.String("email", "", "account email (prompted when omitted)")
	password := fs.String("password", "", "account password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	reader := bufio.NewReader(e.stdin)
	if *email == "" {
		fmt.Fprint(e.stdout, "Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read email: %w", err)
		}
		*email = strings.TrimSpace(line)
	}
	if *password == "" {
		fmt.Fprint(e.stdout, "Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		*password = strings.TrimRight(line, "\r\n")
	}

	mgr, err := e.manager()
	if err != nil {
		return err
	}
	if err := mgr.Login(ctx, *email, *password); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "Signed in. Session saved to %s\n", mgr.TokenPath())
	return nil
}

func cmdLogout(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	mgr, err := e.manager()
	if err != nil {
		return err
	}
	if err := mgr.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, "Signed out.")
	return nil
}

func cmdStatus(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	asJSON := fs.Bool("json", false, "emit JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mgr, err := e.manager()
	if err != nil {
		return err
	}
	if !mgr.Authenticated() {
		fmt.Fprintln(e.stdout, "Not signed in. Run `pulse login`.")
		return nil
	}

	api, err := e.client()
	if err != nil {
		return err
	}
	profile, err := api.FetchUserProfile(ctx)
	if err != nil {
		return err
	}
	devices, err := api.FetchDevices(ctx)
	if err != nil {
		return err
	}

	if *asJSON {
		return writeJSON(e.stdout, struct {
			Profile any `json:"profile"`
			Devices any `json:"devices"`
		}{profile, devices})
	}

	r := newRenderer(e.stdout)
	r.title("Session")
	if at, ok := mgr.SessionExpiry(); ok {
		r.field("Token expires", at.Local().Format("2006-01-02 15:04:05"))
	} else {
		r.field("Token expires", "unknown")
	}
	if profile != nil {
		r.title("Profile")
		r.field("Name", profile.FullName)
		r.field("Display name", profile.DisplayName)
		if profile.Location != "" {
			r.field("Location", profile.Location)
		}
		if profile.UserLevel > 0 {
			r.field("Level", fmt.Sprintf("%d", profile.UserLevel))
		}
	}
	if len(devices) > 0 {
		r.title("Devices")
		for _, d := range devices {
			detail := d.CurrentFirmwareVersion
			if detail != "" {
				detail = "firmware " + detail
			}
			r.field(d.ProductDisplayName, detail)
		}
	}
	return nil
}
