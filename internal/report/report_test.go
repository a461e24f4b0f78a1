package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jswitzer/pulse/internal/auth"
	"github.com/jswitzer/pulse/internal/connect"
)

type fakeFetcher struct {
	summaries   map[string]*connect.DailySummary
	sleeps      map[string]*connect.Sleep
	activities  []connect.Activity
	failSummary error
	failSleep   error
	failStress  error

	summaryCalls int
}

func (f *fakeFetcher) FetchDailySummary(ctx context.Context, date string) (*connect.DailySummary, error) {
	f.summaryCalls++
	if f.failSummary != nil {
		return nil, f.failSummary
	}
	return f.summaries[date], nil
}

func (f *fakeFetcher) FetchSleep(ctx context.Context, date string) (*connect.Sleep, error) {
	if f.failSleep != nil {
		return nil, f.failSleep
	}
	return f.sleeps[date], nil
}

func (f *fakeFetcher) FetchHeartRate(ctx context.Context, date string) (*connect.DailyHeartRate, error) {
	return &connect.DailyHeartRate{CalendarDate: date}, nil
}

func (f *fakeFetcher) FetchStress(ctx context.Context, date string) (*connect.StressSummary, error) {
	if f.failStress != nil {
		return nil, f.failStress
	}
	return &connect.StressSummary{CalendarDate: date}, nil
}

func (f *fakeFetcher) FetchSteps(ctx context.Context, date string) (*connect.DailySteps, error) {
	return &connect.DailySteps{CalendarDate: date}, nil
}

func (f *fakeFetcher) FetchHydration(ctx context.Context, date string) (*connect.Hydration, error) {
	return nil, nil
}

func (f *fakeFetcher) FetchRespiration(ctx context.Context, date string) (*connect.DailyRespiration, error) {
	return &connect.DailyRespiration{CalendarDate: date}, nil
}

func (f *fakeFetcher) FetchActivities(ctx context.Context, query connect.ActivityQuery) ([]connect.Activity, error) {
	return f.activities, nil
}

func intPtr(v int) *int { return &v }

func TestSnapshot_SectionsDegradeIndependently(t *testing.T) {
	fetcher := &fakeFetcher{
		summaries:  map[string]*connect.DailySummary{"2026-03-14": {CalendarDate: "2026-03-14", TotalSteps: 9000}},
		failStress: fmt.Errorf("stats endpoint down"),
	}
	b := NewBuilder(fetcher)

	snap, err := b.Snapshot(context.Background(), "2026-03-14")
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}
	if snap.DailySummary == nil || snap.DailySummary.TotalSteps != 9000 {
		t.Fatalf("dailySummary = %#v", snap.DailySummary)
	}
	if snap.Stress != nil {
		t.Fatal("failed section should be nil")
	}
	if len(snap.Warnings) != 1 || !strings.Contains(snap.Warnings[0], "stress") {
		t.Fatalf("warnings = %v", snap.Warnings)
	}
	// Sections with no data stay nil without a warning.
	if snap.Hydration != nil {
		t.Fatal("hydration should be nil")
	}
}

func TestSnapshot_AuthErrorsAbort(t *testing.T) {
	fetcher := &fakeFetcher{failSummary: auth.ErrSessionExpired}
	b := NewBuilder(fetcher)

	_, err := b.Snapshot(context.Background(), "2026-03-14")
	if !errors.Is(err, auth.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestWeekly_Aggregates(t *testing.T) {
	fetcher := &fakeFetcher{
		summaries: map[string]*connect.DailySummary{},
		sleeps:    map[string]*connect.Sleep{},
		activities: []connect.Activity{
			{ActivityType: connect.ActivityType{TypeKey: "running"}, Duration: 3600, Distance: 10000, Calories: 700},
			{ActivityType: connect.ActivityType{TypeKey: "cycling"}, Duration: 7200, Distance: 40000, Calories: 1100},
			{ActivityType: connect.ActivityType{TypeKey: "running"}, Duration: 1800, Distance: 5000, Calories: 350},
		},
	}
	dates := []string{"2026-03-08", "2026-03-09", "2026-03-10", "2026-03-11", "2026-03-12", "2026-03-13", "2026-03-14"}
	for i, d := range dates {
		fetcher.summaries[d] = &connect.DailySummary{
			CalendarDate:       d,
			TotalSteps:         8000 + i*1000,
			DailyStepGoal:      10000,
			RestingHeartRate:   intPtr(50 + i),
			AverageStressLevel: intPtr(30),
			RestStressDuration: 3600,
		}
	}
	fetcher.sleeps["2026-03-13"] = &connect.Sleep{Summary: connect.SleepSummary{ID: 1, SleepTimeSeconds: 25200, DeepSleepSeconds: 7200, RemSleepSeconds: 3600}}
	fetcher.sleeps["2026-03-14"] = &connect.Sleep{Summary: connect.SleepSummary{ID: 2, SleepTimeSeconds: 28800, DeepSleepSeconds: 7200, RemSleepSeconds: 7200}}

	b := NewBuilder(fetcher)
	weekly, err := b.Weekly(context.Background(), "2026-03-14")
	if err != nil {
		t.Fatalf("Weekly returned error: %v", err)
	}
	if weekly.Start != "2026-03-08" || weekly.End != "2026-03-14" {
		t.Fatalf("period = %s..%s", weekly.Start, weekly.End)
	}

	if weekly.Activities == nil || weekly.Activities.Count != 3 {
		t.Fatalf("activities = %#v", weekly.Activities)
	}
	if math.Abs(weekly.Activities.TotalDistanceKm-55) > 1e-6 {
		t.Fatalf("TotalDistanceKm = %v, want 55", weekly.Activities.TotalDistanceKm)
	}
	if len(weekly.Activities.Types) != 2 {
		t.Fatalf("types = %v", weekly.Activities.Types)
	}

	if weekly.Steps == nil || weekly.Steps.Total != 77000 {
		t.Fatalf("steps = %#v", weekly.Steps)
	}
	// Days at 10000 or more steps: the last five.
	if weekly.Steps.DaysGoalReached != 5 {
		t.Fatalf("DaysGoalReached = %d, want 5", weekly.Steps.DaysGoalReached)
	}
	if weekly.Steps.MaxDay != 14000 {
		t.Fatalf("MaxDay = %d, want 14000", weekly.Steps.MaxDay)
	}

	if weekly.HeartRate == nil || weekly.HeartRate.MinResting != 50 || weekly.HeartRate.MaxResting != 56 {
		t.Fatalf("heartRate = %#v", weekly.HeartRate)
	}

	if weekly.Sleep == nil || weekly.Sleep.DaysWithData != 2 {
		t.Fatalf("sleep = %#v", weekly.Sleep)
	}
	if math.Abs(weekly.Sleep.AvgHours-7.5) > 1e-6 {
		t.Fatalf("AvgHours = %v, want 7.5", weekly.Sleep.AvgHours)
	}

	if weekly.Stress == nil || math.Abs(weekly.Stress.AvgLevel-30) > 1e-6 {
		t.Fatalf("stress = %#v", weekly.Stress)
	}
}

func TestExport_BundlesSelectedSections(t *testing.T) {
	fetcher := &fakeFetcher{
		summaries: map[string]*connect.DailySummary{
			"2026-03-13": {CalendarDate: "2026-03-13"},
			"2026-03-14": {CalendarDate: "2026-03-14"},
		},
		sleeps: map[string]*connect.Sleep{
			"2026-03-14": {Summary: connect.SleepSummary{ID: 9, SleepTimeSeconds: 25200}},
		},
		activities: []connect.Activity{{ActivityID: 1}},
	}
	b := NewBuilder(fetcher)

	export, err := b.Export(context.Background(), "2026-03-13", "2026-03-14", ExportOptions{
		Activities: true,
		Sleep:      true,
		Daily:      true,
	})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if export.Manifest.ID == "" {
		t.Fatal("manifest id missing")
	}
	if export.Manifest.GeneratedAt.IsZero() {
		t.Fatal("manifest timestamp missing")
	}
	if len(export.Manifest.Sections) != 3 {
		t.Fatalf("sections = %v", export.Manifest.Sections)
	}
	if len(export.Activities) != 1 || len(export.Sleep) != 1 || len(export.DailySummaries) != 2 {
		t.Fatalf("bundle sizes = %d/%d/%d", len(export.Activities), len(export.Sleep), len(export.DailySummaries))
	}
}

func TestExport_RejectsInvertedRange(t *testing.T) {
	b := NewBuilder(&fakeFetcher{})
	if _, err := b.Export(context.Background(), "2026-03-14", "2026-03-13", ExportOptions{Daily: true}); err == nil {
		t.Fatal("expected error for inverted range")
	}
}

func TestWriteExport_RoundTrips(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	export := &Export{
		Manifest:       Manifest{ID: "abc", Start: "2026-03-13", End: "2026-03-14"},
		DailySummaries: []connect.DailySummary{{CalendarDate: "2026-03-14", TotalSteps: 12}},
	}

	path, err := WriteExport(dir, export)
	if err != nil {
		t.Fatalf("WriteExport returned error: %v", err)
	}
	if filepath.Base(path) != "pulse_export_2026-03-13_2026-03-14.json" {
		t.Fatalf("file name = %s", filepath.Base(path))
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var got Export
	if err := json.Unmarshal(bytes, &got); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if got.Manifest.ID != "abc" || len(got.DailySummaries) != 1 {
		t.Fatalf("round trip = %#v", got)
	}
}
