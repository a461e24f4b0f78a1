package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/jswitzer/pulse/internal/connect"
)

func cmdActivities(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("activities", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	limit := fs.Int("limit", 20, "maximum number of activities")
	start := fs.String("start", "", "earliest date filter (YYYY-MM-DD)")
	end := fs.String("end", "", "latest date filter (YYYY-MM-DD)")
	kind := fs.String("type", "", "sport filter (running, cycling, ...)")
	asJSON := fs.Bool("json", false, "emit JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	api, err := e.client()
	if err != nil {
		return err
	}
	activities, err := api.FetchActivities(ctx, connect.ActivityQuery{
		Limit:        *limit,
		StartDate:    *start,
		EndDate:      *end,
		ActivityType: *kind,
	})
	if err != nil {
		return err
	}
	if *asJSON {
		return writeJSON(e.stdout, activities)
	}
	if len(activities) == 0 {
		fmt.Fprintln(e.stdout, "No activities found")
		return nil
	}

	r := newRenderer(e.stdout)
	r.title(fmt.Sprintf("Activities (%d)", len(activities)))
	for _, a := range activities {
		date := a.StartTimeLocal
		if len(date) >= 10 {
			date = date[:10]
		}
		line := fmt.Sprintf("%s  %s  %.1f km  %.0f kcal  (id %d)",
			pad(a.TypeKey(), 14), pad(fmt.Sprintf("%.0f min", a.DurationMinutes()), 8),
			a.DistanceKm(), a.Calories, a.ActivityID)
		r.field(date, line)
	}
	return nil
}

func cmdActivity(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("activity", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	withLaps := fs.Bool("laps", false, "include lap splits")
	withZones := fs.Bool("zones", false, "include heart rate zones")
	asJSON := fs.Bool("json", false, "emit JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: pulse activity [flags] <id>")
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid activity id %q", fs.Arg(0))
	}

	api, err := e.client()
	if err != nil {
		return err
	}
	activity, err := api.FetchActivity(ctx, id)
	if err != nil {
		return err
	}
	if activity == nil {
		return fmt.Errorf("activity %d not found", id)
	}

	var laps []connect.Lap
	if *withLaps {
		if laps, err = api.FetchActivityLaps(ctx, id); err != nil {
			return err
		}
	}
	var zones []connect.HRZone
	if *withZones {
		if zones, err = api.FetchActivityHRZones(ctx, id); err != nil {
			return err
		}
	}

	if *asJSON {
		return writeJSON(e.stdout, struct {
			Activity *connect.Activity `json:"activity"`
			Laps     []connect.Lap     `json:"laps,omitempty"`
			HRZones  []connect.HRZone  `json:"hrZones,omitempty"`
		}{activity, laps, zones})
	}

	r := newRenderer(e.stdout)
	renderActivity(r, activity)
	if len(laps) > 0 {
		r.blank()
		r.title("Laps")
		for _, lap := range laps {
			r.field(fmt.Sprintf("Lap %d", lap.LapIndex),
				fmt.Sprintf("%.2f km in %.1f min", lap.DistanceKm(), lap.DurationMinutes()))
		}
	}
	if len(zones) > 0 {
		r.blank()
		r.title("Heart rate zones")
		for _, z := range zones {
			r.field(fmt.Sprintf("Zone %d", z.ZoneNumber),
				fmt.Sprintf("%.1f min (from %d bpm)", z.Minutes(), z.ZoneLowBoundary))
		}
	}
	return nil
}

func renderActivity(r *renderer, a *connect.Activity) {
	name := a.ActivityName
	if name == "" {
		name = a.TypeKey()
	}
	r.title(name)
	r.field("Type", a.TypeKey())
	r.field("Started", a.StartTimeLocal)
	r.field("Duration", fmt.Sprintf("%.1f min", a.DurationMinutes()))
	if a.Distance > 0 {
		r.field("Distance", fmt.Sprintf("%.2f km", a.DistanceKm()))
	}
	if pace, ok := a.PacePerKm(); ok {
		mins := int(pace)
		secs := int((pace-float64(mins))*60 + 0.5)
		r.field("Pace", fmt.Sprintf("%d:%02d /km", mins, secs))
	}
	r.field("Calories", fmt.Sprintf("%.0f kcal", a.Calories))
	if a.AverageHR != nil {
		hr := fmt.Sprintf("%.0f bpm avg", *a.AverageHR)
		if a.MaxHR != nil {
			hr += fmt.Sprintf(", %.0f max", *a.MaxHR)
		}
		r.field("Heart rate", hr)
	}
	if a.ElevationGain != nil {
		r.field("Elevation", fmt.Sprintf("%.0f m gain", *a.ElevationGain))
	}
	if a.AvgPower != nil {
		r.field("Power", fmt.Sprintf("%.0f W avg", *a.AvgPower))
	}
	if a.AerobicTrainingEffect != nil {
		te := fmt.Sprintf("%.1f aerobic", *a.AerobicTrainingEffect)
		if a.AnaerobicTrainingEffect != nil {
			te += fmt.Sprintf(", %.1f anaerobic", *a.AnaerobicTrainingEffect)
		}
		r.field("Training effect", te)
	}
	if a.Steps != nil {
		r.field("Steps", fmt.Sprintf("%d", *a.Steps))
	}
}
