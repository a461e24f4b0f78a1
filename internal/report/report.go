package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jswitzer/pulse/internal/auth"
	"github.com/jswitzer/pulse/internal/connect"
)

// Fetcher is the slice of the API client the report builder needs.
// Implemented by *connect.Client.
type Fetcher interface {
	FetchDailySummary(ctx context.Context, date string) (*connect.DailySummary, error)
	FetchSleep(ctx context.Context, date string) (*connect.Sleep, error)
	FetchHeartRate(ctx context.Context, date string) (*connect.DailyHeartRate, error)
	FetchStress(ctx context.Context, date string) (*connect.StressSummary, error)
	FetchSteps(ctx context.Context, date string) (*connect.DailySteps, error)
	FetchHydration(ctx context.Context, date string) (*connect.Hydration, error)
	FetchRespiration(ctx context.Context, date string) (*connect.DailyRespiration, error)
	FetchActivities(ctx context.Context, query connect.ActivityQuery) ([]connect.Activity, error)
}

// Builder assembles cross-domain reports from individual metric fetches.
type Builder struct {
	client Fetcher
	now    func() time.Time
}

// NewBuilder builds a Builder on top of an API client.
func NewBuilder(client Fetcher) *Builder {
	return &Builder{client: client, now: time.Now}
}

// Snapshot is a single day's health picture. Sections the service had no data
// for are nil; sections that failed to fetch are nil with a note in Warnings.
type Snapshot struct {
	Date string `json:"date"`

	DailySummary *connect.DailySummary     `json:"dailySummary,omitempty"`
	Sleep        *connect.Sleep            `json:"sleep,omitempty"`
	HeartRate    *connect.DailyHeartRate   `json:"heartRate,omitempty"`
	Stress       *connect.StressSummary    `json:"stress,omitempty"`
	Steps        *connect.DailySteps       `json:"steps,omitempty"`
	Hydration    *connect.Hydration        `json:"hydration,omitempty"`
	Respiration  *connect.DailyRespiration `json:"respiration,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}

// Snapshot fetches every metric for one date. Individual sections degrade to
// nil on failure; only authentication problems abort the whole snapshot,
// since every remaining section would fail the same way.
func (b *Builder) Snapshot(ctx context.Context, date string) (*Snapshot, error) {
	snap := &Snapshot{Date: date}

	sections := []struct {
		name  string
		fetch func() error
	}{
		{"daily summary", func() (err error) { snap.DailySummary, err = b.client.FetchDailySummary(ctx, date); return }},
		{"sleep", func() (err error) { snap.Sleep, err = b.client.FetchSleep(ctx, date); return }},
		{"heart rate", func() (err error) { snap.HeartRate, err = b.client.FetchHeartRate(ctx, date); return }},
		{"stress", func() (err error) { snap.Stress, err = b.client.FetchStress(ctx, date); return }},
		{"steps", func() (err error) { snap.Steps, err = b.client.FetchSteps(ctx, date); return }},
		{"hydration", func() (err error) { snap.Hydration, err = b.client.FetchHydration(ctx, date); return }},
		{"respiration", func() (err error) { snap.Respiration, err = b.client.FetchRespiration(ctx, date); return }},
	}
	for _, s := range sections {
		if err := s.fetch(); err != nil {
			if errors.Is(err, auth.ErrNotAuthenticated) || errors.Is(err, auth.ErrSessionExpired) {
				return nil, err
			}
			snap.Warnings = append(snap.Warnings, fmt.Sprintf("%s: %v", s.name, err))
		}
	}
	return snap, nil
}

// Weekly is a seven-day aggregate report ending on its End date.
type Weekly struct {
	Start string `json:"start"`
	End   string `json:"end"`

	Activities *ActivityStats  `json:"activities,omitempty"`
	Sleep      *SleepStats     `json:"sleep,omitempty"`
	Steps      *StepStats      `json:"steps,omitempty"`
	HeartRate  *HeartRateStats `json:"heartRate,omitempty"`
	Stress     *StressStats    `json:"stress,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}

// ActivityStats totals the week's workouts.
type ActivityStats struct {
	Count              int      `json:"count"`
	TotalDurationHours float64  `json:"totalDurationHours"`
	TotalDistanceKm    float64  `json:"totalDistanceKm"`
	TotalCalories      float64  `json:"totalCalories"`
	Types              []string `json:"types"`
}

// SleepStats averages the week's recorded nights.
type SleepStats struct {
	DaysWithData int      `json:"daysWithData"`
	AvgHours     float64  `json:"avgHours"`
	AvgDeepHours float64  `json:"avgDeepHours"`
	AvgRemHours  float64  `json:"avgRemHours"`
	AvgScore     *float64 `json:"avgScore,omitempty"`
}

// StepStats totals the week's steps.
type StepStats struct {
	Total           int     `json:"total"`
	AvgDaily        float64 `json:"avgDaily"`
	MaxDay          int     `json:"maxDay"`
	DaysGoalReached int     `json:"daysGoalReached"`
}

// HeartRateStats summarizes the week's resting heart rate.
type HeartRateStats struct {
	AvgResting float64 `json:"avgResting"`
	MinResting int     `json:"minResting"`
	MaxResting int     `json:"maxResting"`
}

// StressStats averages the week's stress levels.
type StressStats struct {
	AvgLevel     float64 `json:"avgLevel"`
	AvgRestHours float64 `json:"avgRestHours"`
}

// Weekly builds the aggregate report for the seven days ending on end.
func (b *Builder) Weekly(ctx context.Context, end string) (*Weekly, error) {
	dates, err := datesEndingOn(end, 7)
	if err != nil {
		return nil, err
	}
	report := &Weekly{Start: dates[0], End: dates[len(dates)-1]}

	activities, err := b.client.FetchActivities(ctx, connect.ActivityQuery{
		Limit:     100,
		StartDate: report.Start,
		EndDate:   report.End,
	})
	switch {
	case isAuthErr(err):
		return nil, err
	case err != nil:
		report.Warnings = append(report.Warnings, fmt.Sprintf("activities: %v", err))
	case len(activities) > 0:
		report.Activities = summarizeActivities(activities)
	}

	var summaries []*connect.DailySummary
	var nights []*connect.Sleep
	for _, date := range dates {
		summary, err := b.client.FetchDailySummary(ctx, date)
		switch {
		case isAuthErr(err):
			return nil, err
		case err != nil:
			report.Warnings = append(report.Warnings, fmt.Sprintf("daily summary %s: %v", date, err))
		case summary != nil:
			summaries = append(summaries, summary)
		}

		sleep, err := b.client.FetchSleep(ctx, date)
		switch {
		case isAuthErr(err):
			return nil, err
		case err != nil:
			report.Warnings = append(report.Warnings, fmt.Sprintf("sleep %s: %v", date, err))
		case sleep != nil:
			nights = append(nights, sleep)
		}
	}

	report.Sleep = summarizeSleep(nights)
	report.Steps = summarizeSteps(summaries)
	report.HeartRate = summarizeRestingHR(summaries)
	report.Stress = summarizeStress(summaries)
	return report, nil
}

func isAuthErr(err error) bool {
	return errors.Is(err, auth.ErrNotAuthenticated) || errors.Is(err, auth.ErrSessionExpired)
}

func summarizeActivities(activities []connect.Activity) *ActivityStats {
	stats := &ActivityStats{Count: len(activities)}
	seen := map[string]bool{}
	for i := range activities {
		a := &activities[i]
		stats.TotalDurationHours += a.Duration / 3600
		stats.TotalDistanceKm += a.DistanceKm()
		stats.TotalCalories += a.Calories
		if key := a.TypeKey(); !seen[key] {
			seen[key] = true
			stats.Types = append(stats.Types, key)
		}
	}
	sort.Strings(stats.Types)
	return stats
}

func summarizeSleep(nights []*connect.Sleep) *SleepStats {
	if len(nights) == 0 {
		return nil
	}
	stats := &SleepStats{DaysWithData: len(nights)}
	var totalSec, deepSec, remSec int
	var scoreSum, scoreN int
	for _, n := range nights {
		totalSec += n.Summary.SleepTimeSeconds
		deepSec += n.Summary.DeepSleepSeconds
		remSec += n.Summary.RemSleepSeconds
		if score, ok := n.Summary.OverallScore(); ok {
			scoreSum += score
			scoreN++
		}
	}
	days := float64(len(nights))
	stats.AvgHours = float64(totalSec) / days / 3600
	stats.AvgDeepHours = float64(deepSec) / days / 3600
	stats.AvgRemHours = float64(remSec) / days / 3600
	if scoreN > 0 {
		avg := float64(scoreSum) / float64(scoreN)
		stats.AvgScore = &avg
	}
	return stats
}

func summarizeSteps(summaries []*connect.DailySummary) *StepStats {
	if len(summaries) == 0 {
		return nil
	}
	stats := &StepStats{}
	for _, s := range summaries {
		stats.Total += s.TotalSteps
		if s.TotalSteps > stats.MaxDay {
			stats.MaxDay = s.TotalSteps
		}
		if s.DailyStepGoal > 0 && s.TotalSteps >= s.DailyStepGoal {
			stats.DaysGoalReached++
		}
	}
	stats.AvgDaily = float64(stats.Total) / float64(len(summaries))
	return stats
}

func summarizeRestingHR(summaries []*connect.DailySummary) *HeartRateStats {
	var sum, n int
	stats := &HeartRateStats{}
	for _, s := range summaries {
		if s.RestingHeartRate == nil {
			continue
		}
		rhr := *s.RestingHeartRate
		sum += rhr
		n++
		if stats.MinResting == 0 || rhr < stats.MinResting {
			stats.MinResting = rhr
		}
		if rhr > stats.MaxResting {
			stats.MaxResting = rhr
		}
	}
	if n == 0 {
		return nil
	}
	stats.AvgResting = float64(sum) / float64(n)
	return stats
}

func summarizeStress(summaries []*connect.DailySummary) *StressStats {
	var levelSum, levelN, restSec int
	for _, s := range summaries {
		if s.AverageStressLevel != nil {
			levelSum += *s.AverageStressLevel
			levelN++
		}
		restSec += s.RestStressDuration
	}
	if levelN == 0 {
		return nil
	}
	return &StressStats{
		AvgLevel:     float64(levelSum) / float64(levelN),
		AvgRestHours: float64(restSec) / float64(len(summaries)) / 3600,
	}
}

// ExportOptions selects the sections of an export bundle.
type ExportOptions struct {
	Activities bool
	Sleep      bool
	Daily      bool
}

// Export is a date-range data bundle suitable for backup or analysis.
type Export struct {
	Manifest       Manifest               `json:"manifest"`
	Activities     []connect.Activity     `json:"activities,omitempty"`
	Sleep          []connect.Sleep        `json:"sleep,omitempty"`
	DailySummaries []connect.DailySummary `json:"dailySummaries,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}

// Manifest identifies an export bundle.
type Manifest struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generatedAt"`
	Start       string    `json:"start"`
	End         string    `json:"end"`
	Sections    []string  `json:"sections"`
}

// Export collects the selected sections for [start, end] into one bundle.
func (b *Builder) Export(ctx context.Context, start, end string, opts ExportOptions) (*Export, error) {
	dates, err := datesBetween(start, end)
	if err != nil {
		return nil, err
	}

	out := &Export{Manifest: Manifest{
		ID:          uuid.NewString(),
		GeneratedAt: b.now().UTC(),
		Start:       start,
		End:         end,
	}}

	if opts.Activities {
		out.Manifest.Sections = append(out.Manifest.Sections, "activities")
		activities, err := b.client.FetchActivities(ctx, connect.ActivityQuery{
			Limit:     1000,
			StartDate: start,
			EndDate:   end,
		})
		switch {
		case isAuthErr(err):
			return nil, err
		case err != nil:
			out.Warnings = append(out.Warnings, fmt.Sprintf("activities: %v", err))
		default:
			out.Activities = activities
		}
	}

	for _, date := range dates {
		if opts.Sleep {
			sleep, err := b.client.FetchSleep(ctx, date)
			switch {
			case isAuthErr(err):
				return nil, err
			case err != nil:
				out.Warnings = append(out.Warnings, fmt.Sprintf("sleep %s: %v", date, err))
			case sleep != nil:
				out.Sleep = append(out.Sleep, *sleep)
			}
		}
		if opts.Daily {
			summary, err := b.client.FetchDailySummary(ctx, date)
			switch {
			case isAuthErr(err):
				return nil, err
			case err != nil:
				out.Warnings = append(out.Warnings, fmt.Sprintf("daily summary %s: %v", date, err))
			case summary != nil:
				out.DailySummaries = append(out.DailySummaries, *summary)
			}
		}
	}
	if opts.Sleep {
		out.Manifest.Sections = append(out.Manifest.Sections, "sleep")
	}
	if opts.Daily {
		out.Manifest.Sections = append(out.Manifest.Sections, "dailySummaries")
	}
	return out, nil
}

// WriteExport saves a bundle under dir as pulse_export_<start>_<end>.json and
// returns the file path.
func WriteExport(dir string, export *Export) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	name := fmt.Sprintf("pulse_export_%s_%s.json", export.Manifest.Start, export.Manifest.End)
	path := filepath.Join(dir, name)

	bytes, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal export: %w", err)
	}
	if err := os.WriteFile(path, bytes, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

func datesBetween(start, end string) ([]string, error) {
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", start)
	}
	to, err := time.Parse("2006-01-02", end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: expected YYYY-MM-DD", end)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates, nil
}

func datesEndingOn(end string, days int) ([]string, error) {
	to, err := time.Parse("2006-01-02", end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: expected YYYY-MM-DD", end)
	}
	from := to.AddDate(0, 0, -(days - 1))
	return datesBetween(from.Format("2006-01-02"), end)
}
