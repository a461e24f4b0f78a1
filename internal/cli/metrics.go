package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/jswitzer/pulse/internal/connect"
	"github.com/jswitzer/pulse/internal/report"
)

func cmdSummary(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("summary", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	date := fs.String("d", "", "date (YYYY-MM-DD, defaults to yesterday)")
	withSleep := fs.Bool("with-sleep", false, "include the night's sleep")
	week := fs.Bool("week", false, "seven-day aggregate ending on the date")
	asJSON := fs.Bool("json", false, "emit JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	day, err := resolveDate(*date, time.Now())
	if err != nil {
		return err
	}

	if *week {
		builder, err := e.builder()
		if err != nil {
			return err
		}
		weekly, err := builder.Weekly(ctx, day)
		if err != nil {
			return err
		}
		if *asJSON {
			return writeJSON(e.stdout, weekly)
		}
		renderWeekly(newRenderer(e.stdout), weekly)
		return nil
	}

	api, err := e.client()
	if err != nil {
		return err
	}
	summary, err := api.FetchDailySummary(ctx, day)
	if err != nil {
		return err
	}

	var sleep *connect.Sleep
	if *withSleep && summary != nil {
		if sleep, err = api.FetchSleep(ctx, day); err != nil {
			return err
		}
	}

	if *asJSON {
		if *withSleep {
			return writeJSON(e.stdout, struct {
				Summary *connect.DailySummary `json:"summary"`
				Sleep   *connect.Sleep        `json:"sleep,omitempty"`
			}{summary, sleep})
		}
		return writeJSON(e.stdout, summary)
	}

	r := newRenderer(e.stdout)
	if summary == nil {
		fmt.Fprintf(e.stdout, "No data for %s\n", day)
		return nil
	}
	renderSummary(r, summary)
	if sleep != nil {
		r.blank()
		renderSleep(r, sleep)
	}
	return nil
}

func renderSummary(r *renderer, s *connect.DailySummary) {
	r.title("Daily summary — " + s.CalendarDate)

	steps := fmt.Sprintf("%d / %d (%.0f%%)", s.TotalSteps, s.DailyStepGoal, s.StepGoalPercent())
	if s.DailyStepGoal > 0 && s.TotalSteps >= s.DailyStepGoal {
		r.good("Steps", steps)
	} else {
		r.field("Steps", steps)
	}
	r.field("Distance", fmt.Sprintf("%.2f km", s.TotalDistanceMeters/1000))
	r.field("Calories", fmt.Sprintf("%.0f kcal (%.0f active)", s.TotalKilocalories, s.ActiveKilocalories))
	r.field("Intensity", fmt.Sprintf("%d min", s.TotalIntensityMinutes()))
	if s.RestingHeartRate != nil {
		hr := fmt.Sprintf("%d bpm resting", *s.RestingHeartRate)
		if s.MinHeartRate != nil && s.MaxHeartRate != nil {
			hr += fmt.Sprintf(" (%d–%d)", *s.MinHeartRate, *s.MaxHeartRate)
		}
		r.field("Heart rate", hr)
	}
	if s.AverageStressLevel != nil {
		r.field("Stress", fmt.Sprintf("%d avg (%s)", *s.AverageStressLevel, connect.StressCategory(*s.AverageStressLevel)))
	}
	if net, ok := s.BodyBatteryNetChange(); ok {
		r.field("Body battery", fmt.Sprintf("%+d net", net))
	}
	if s.AverageSpO2 != nil {
		r.field("SpO2", fmt.Sprintf("%.0f%% avg", *s.AverageSpO2))
	}
	if s.FloorsAscended > 0 {
		r.field("Floors", fmt.Sprintf("%.0f ascended", s.FloorsAscended))
	}
}

func cmdSleep(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("sleep", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	date := fs.String("d", "", "date (YYYY-MM-DD, defaults to yesterday)")
	asJSON := fs.Bool("json", false, "emit JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	day, err := resolveDate(*date, time.Now())
	if err != nil {
		return err
	}
	api, err := e.client()
	if err != nil {
		return err
	}
	sleep, err := api.FetchSleep(ctx, day)
	if err != nil {
		return err
	}
	if *asJSON {
		return writeJSON(e.stdout, sleep)
	}
	if sleep == nil {
		fmt.Fprintf(e.stdout, "No sleep recorded for %s\n", day)
		return nil
	}
	renderSleep(newRenderer(e.stdout), sleep)
	return nil
}

func renderSleep(r *renderer, sleep *connect.Sleep) {
	s := sleep.Summary
	r.title("Sleep — " + s.CalendarDate)

	r.field("Duration", fmt.Sprintf("%.1f h", s.TotalSleepHours()))
	if score, ok := s.OverallScore(); ok {
		r.field("Score", fmt.Sprintf("%d / 100", score))
	}
	r.field("Deep", fmt.Sprintf("%.1f h (%.0f%%)", s.DeepSleepHours(), s.DeepSleepPercent()))
	r.field("Light", fmt.Sprintf("%.1f h", s.LightSleepHours()))
	r.field("REM", fmt.Sprintf("%.1f h (%.0f%%)", s.RemSleepHours(), s.RemSleepPercent()))
	if eff, ok := s.Efficiency(); ok {
		r.field("Efficiency", fmt.Sprintf("%.0f%%", eff))
	}
	if s.AverageSleepHeartRate != nil {
		r.field("Avg heart rate", fmt.Sprintf("%d bpm", *s.AverageSleepHeartRate))
	}
	if s.AverageSleepRespiration != nil {
		r.field("Respiration", fmt.Sprintf("%.1f brpm", *s.AverageSleepRespiration))
	}
	if s.AvgSleepHRV != nil {
		hrv := fmt.Sprintf("%.0f ms", *s.AvgSleepHRV)
		if s.HRVStatus != "" {
			hrv += " (" + s.HRVStatus + ")"
		}
		r.field("HRV", hrv)
	}
	if sleep.RestlessMomentsCount > 0 {
		r.field("Restless", fmt.Sprintf("%d moments", sleep.RestlessMomentsCount))
	}
}

func cmdSnapshot(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	date := fs.String("d", "", "date (YYYY-MM-DD, defaults to yesterday)")
	asJSON := fs.Bool("json", false, "emit JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	day, err := resolveDate(*date, time.Now())
	if err != nil {
		return err
	}
	builder, err := e.builder()
	if err != nil {
		return err
	}
	snap, err := builder.Snapshot(ctx, day)
	if err != nil {
		return err
	}
	if *asJSON {
		return writeJSON(e.stdout, snap)
	}

	r := newRenderer(e.stdout)
	if snap.DailySummary != nil {
		renderSummary(r, snap.DailySummary)
		r.blank()
	}
	if snap.Sleep != nil {
		renderSleep(r, snap.Sleep)
		r.blank()
	}
	if snap.Stress != nil {
		renderStress(r, snap.Stress)
		r.blank()
	}
	if snap.Hydration != nil {
		renderHydration(r, snap.Hydration)
		r.blank()
	}
	if snap.Respiration != nil {
		renderRespiration(r, snap.Respiration)
		r.blank()
	}
	for _, w := range snap.Warnings {
		r.warn(w)
	}
	return nil
}

func renderStress(r *renderer, s *connect.StressSummary) {
	r.title("Stress — " + s.CalendarDate)
	if s.Values.AvgStressLevel != nil {
		r.field("Average", fmt.Sprintf("%d (%s)", *s.Values.AvgStressLevel, connect.StressCategory(*s.Values.AvgStressLevel)))
	}
	if s.Values.MaxStressLevel != nil {
		r.field("Max", fmt.Sprintf("%d", *s.Values.MaxStressLevel))
	}
	r.field("Rest", fmt.Sprintf("%.1f h", s.RestHours()))
	r.field("Low / Med / High", fmt.Sprintf("%.1f / %.1f / %.1f h",
		s.LowStressHours(), s.MediumStressHours(), s.HighStressHours()))
}

func renderHydration(r *renderer, h *connect.Hydration) {
	r.title("Hydration — " + h.CalendarDate)
	intake := fmt.Sprintf("%.2f L of %.2f L goal (%.0f%%)", h.IntakeLiters(), h.GoalLiters(), h.GoalPercent())
	if h.GoalReached() {
		r.good("Intake", intake)
	} else {
		r.field("Intake", intake)
	}
	if h.Values.SweatLossInML > 0 {
		r.field("Sweat loss", fmt.Sprintf("%.0f ml", h.Values.SweatLossInML))
	}
}

func renderRespiration(r *renderer, resp *connect.DailyRespiration) {
	r.title("Respiration — " + resp.CalendarDate)
	if resp.AvgWakingRespirationValue != nil {
		r.field("Waking avg", fmt.Sprintf("%.1f brpm", *resp.AvgWakingRespirationValue))
	}
	if resp.AvgSleepingRespirationValue != nil {
		r.field("Sleeping avg", fmt.Sprintf("%.1f brpm", *resp.AvgSleepingRespirationValue))
	}
	if resp.LowestRespirationValue != nil && resp.HighestRespirationValue != nil {
		r.field("Range", fmt.Sprintf("%.1f–%.1f brpm", *resp.LowestRespirationValue, *resp.HighestRespirationValue))
	}
}

func renderWeekly(r *renderer, w *report.Weekly) {
	r.title(fmt.Sprintf("Week %s — %s", w.Start, w.End))
	if w.Steps != nil {
		r.field("Steps", fmt.Sprintf("%d total, %.0f avg, %d goal days", w.Steps.Total, w.Steps.AvgDaily, w.Steps.DaysGoalReached))
	}
	if w.Sleep != nil {
		sleep := fmt.Sprintf("%.1f h avg over %d nights", w.Sleep.AvgHours, w.Sleep.DaysWithData)
		if w.Sleep.AvgScore != nil {
			sleep += fmt.Sprintf(", score %.0f", *w.Sleep.AvgScore)
		}
		r.field("Sleep", sleep)
	}
	if w.HeartRate != nil {
		r.field("Resting HR", fmt.Sprintf("%.0f avg (%d–%d)", w.HeartRate.AvgResting, w.HeartRate.MinResting, w.HeartRate.MaxResting))
	}
	if w.Stress != nil {
		r.field("Stress", fmt.Sprintf("%.0f avg, %.1f h rest/day", w.Stress.AvgLevel, w.Stress.AvgRestHours))
	}
	if w.Activities != nil {
		r.field("Activities", fmt.Sprintf("%d (%.1f km, %.1f h, %.0f kcal)",
			w.Activities.Count, w.Activities.TotalDistanceKm, w.Activities.TotalDurationHours, w.Activities.TotalCalories))
		if len(w.Activities.Types) > 0 {
			r.field("Types", fmt.Sprintf("%v", w.Activities.Types))
		}
	}
	for _, warn := range w.Warnings {
		r.warn(warn)
	}
}
