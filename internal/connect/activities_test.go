package connect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestFetchActivities_EncodesQuery(t *testing.T) {
	t.Parallel()

	const fixture = `[{
		"activityId": 123456,
		"activityName": "Morning Run",
		"activityType": {"typeId": 1, "typeKey": "running"},
		"startTimeLocal": "2026-03-14 07:01:00",
		"duration": 1800.0,
		"distance": 6000.0,
		"averageHR": 141.0,
		"calories": 412.0
	}]`

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/activitylist-service/activities/search/activities" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fixture))
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)
	activities, err := c.FetchActivities(context.Background(), ActivityQuery{
		Start:        5,
		Limit:        10,
		StartDate:    "2026-03-01",
		EndDate:      "2026-03-14",
		ActivityType: "running",
	})
	if err != nil {
		t.Fatalf("FetchActivities returned error: %v", err)
	}
	if gotQuery.Get("start") != "5" || gotQuery.Get("limit") != "10" {
		t.Fatalf("paging query = %v", gotQuery)
	}
	if gotQuery.Get("startDate") != "2026-03-01" || gotQuery.Get("endDate") != "2026-03-14" {
		t.Fatalf("date query = %v", gotQuery)
	}
	if gotQuery.Get("activityType") != "running" {
		t.Fatalf("activityType query = %q", gotQuery.Get("activityType"))
	}

	if len(activities) != 1 {
		t.Fatalf("activities = %d, want 1", len(activities))
	}
	a := activities[0]
	if a.TypeKey() != "running" {
		t.Fatalf("TypeKey = %q, want running", a.TypeKey())
	}
	pace, ok := a.PacePerKm()
	if !ok || !almostEqual(pace, 5) {
		t.Fatalf("PacePerKm = %v,%v want 5,true", pace, ok)
	}
	if !almostEqual(a.DistanceKm(), 6) {
		t.Fatalf("DistanceKm = %v, want 6", a.DistanceKm())
	}
}

func TestFetchActivities_DefaultsLimit(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)
	if _, err := c.FetchActivities(context.Background(), ActivityQuery{}); err != nil {
		t.Fatalf("FetchActivities returned error: %v", err)
	}
	if gotQuery.Get("limit") != "20" || gotQuery.Get("start") != "0" {
		t.Fatalf("default paging = %v", gotQuery)
	}
	if gotQuery.Has("startDate") || gotQuery.Has("activityType") {
		t.Fatalf("unset filters leaked into query: %v", gotQuery)
	}
}

func TestFetchActivity_ByID(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/activity-service/activity/123456" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"activityId": 123456, "activityName": "Tempo", "activityType": {"typeKey": "running"}, "duration": 2400.0, "distance": 8000.0}`))
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)
	a, err := c.FetchActivity(context.Background(), 123456)
	if err != nil {
		t.Fatalf("FetchActivity returned error: %v", err)
	}
	if a.ActivityID != 123456 || a.ActivityName != "Tempo" {
		t.Fatalf("activity = %#v", a)
	}

	if _, err := c.FetchActivity(context.Background(), 0); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestFetchActivityLaps_UnwrapsEnvelope(t *testing.T) {
	t.Parallel()

	const fixture = `{
		"activityId": 123456,
		"lapDTOs": [
			{"lapIndex": 1, "duration": 300.0, "distance": 1000.0, "averageHR": 138.0},
			{"lapIndex": 2, "duration": 295.0, "distance": 1000.0, "averageHR": 144.0}
		]
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/activity-service/activity/123456/splits" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fixture))
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)
	laps, err := c.FetchActivityLaps(context.Background(), 123456)
	if err != nil {
		t.Fatalf("FetchActivityLaps returned error: %v", err)
	}
	if len(laps) != 2 {
		t.Fatalf("laps = %d, want 2", len(laps))
	}
	if laps[1].LapIndex != 2 || !almostEqual(laps[1].DistanceKm(), 1) {
		t.Fatalf("lap = %#v", laps[1])
	}
}

func TestFetchActivityHRZones(t *testing.T) {
	t.Parallel()

	const fixture = `[
		{"zoneNumber": 1, "secsInZone": 600.0, "zoneLowBoundary": 95},
		{"zoneNumber": 2, "secsInZone": 900.0, "zoneLowBoundary": 114}
	]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/activity-service/activity/123456/hrTimeInZones" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fixture))
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)
	zones, err := c.FetchActivityHRZones(context.Background(), 123456)
	if err != nil {
		t.Fatalf("FetchActivityHRZones returned error: %v", err)
	}
	if len(zones) != 2 {
		t.Fatalf("zones = %d, want 2", len(zones))
	}
	if !almostEqual(zones[1].Minutes(), 15) {
		t.Fatalf("Minutes = %v, want 15", zones[1].Minutes())
	}
}
