package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/jswitzer/pulse/internal/report"
)

func cmdExport(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	days := fs.Int("days", 7, "number of days ending yesterday")
	start := fs.String("start", "", "range start (YYYY-MM-DD)")
	end := fs.String("end", "", "range end (YYYY-MM-DD)")
	output := fs.String("output", "", "output directory (defaults to the configured export dir)")
	noActivities := fs.Bool("no-activities", false, "skip the activities section")
	noSleep := fs.Bool("no-sleep", false, "skip the sleep section")
	noDaily := fs.Bool("no-daily", false, "skip the daily summaries section")
	asJSON := fs.Bool("json", false, "print the bundle instead of writing a file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	from, to, err := rangeFromFlags(*days, *start, *end, time.Now())
	if err != nil {
		return err
	}

	builder, err := e.builder()
	if err != nil {
		return err
	}
	bundle, err := builder.Export(ctx, from, to, report.ExportOptions{
		Activities: !*noActivities,
		Sleep:      !*noSleep,
		Daily:      !*noDaily,
	})
	if err != nil {
		return err
	}

	if *asJSON {
		return writeJSON(e.stdout, bundle)
	}

	dir := *output
	if dir == "" {
		dir = e.cfg.ExportDir
	}
	path, err := report.WriteExport(dir, bundle)
	if err != nil {
		return err
	}

	r := newRenderer(e.stdout)
	r.title("Export " + bundle.Manifest.ID)
	r.field("Range", from+" — "+to)
	r.field("Sections", fmt.Sprintf("%v", bundle.Manifest.Sections))
	r.field("Written to", path)
	for _, w := range bundle.Warnings {
		r.warn(w)
	}
	return nil
}
