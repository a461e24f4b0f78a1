package connect

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Activity is a recorded workout. Distances are meters, durations seconds,
// speeds meters per second.
type Activity struct {
	ActivityID   int64        `json:"activityId"`
	ActivityName string       `json:"activityName"`
	ActivityType ActivityType `json:"activityType"`

	StartTimeLocal  string  `json:"startTimeLocal,omitempty"`
	StartTimeGMT    string  `json:"startTimeGMT,omitempty"`
	Duration        float64 `json:"duration"`
	ElapsedDuration float64 `json:"elapsedDuration"`
	MovingDuration  float64 `json:"movingDuration"`

	Distance     float64  `json:"distance"`
	AverageSpeed *float64 `json:"averageSpeed,omitempty"`
	MaxSpeed     *float64 `json:"maxSpeed,omitempty"`

	AverageHR *float64 `json:"averageHR,omitempty"`
	MaxHR     *float64 `json:"maxHR,omitempty"`
	MinHR     *float64 `json:"minHR,omitempty"`

	Calories float64 `json:"calories"`

	ElevationGain *float64 `json:"elevationGain,omitempty"`
	ElevationLoss *float64 `json:"elevationLoss,omitempty"`
	MinElevation  *float64 `json:"minElevation,omitempty"`
	MaxElevation  *float64 `json:"maxElevation,omitempty"`

	AverageRunningCadenceInStepsPerMinute *float64 `json:"averageRunningCadenceInStepsPerMinute,omitempty"`
	MaxRunningCadenceInStepsPerMinute     *float64 `json:"maxRunningCadenceInStepsPerMinute,omitempty"`
	AvgPower                              *float64 `json:"avgPower,omitempty"`
	MaxPower                              *float64 `json:"maxPower,omitempty"`
	NormPower                             *float64 `json:"normPower,omitempty"`

	AerobicTrainingEffect   *float64 `json:"aerobicTrainingEffect,omitempty"`
	AnaerobicTrainingEffect *float64 `json:"anaerobicTrainingEffect,omitempty"`
	TrainingEffectLabel     string   `json:"trainingEffectLabel,omitempty"`

	StartLatitude  *float64 `json:"startLatitude,omitempty"`
	StartLongitude *float64 `json:"startLongitude,omitempty"`
	EndLatitude    *float64 `json:"endLatitude,omitempty"`
	EndLongitude   *float64 `json:"endLongitude,omitempty"`

	Steps *int `json:"steps,omitempty"`

	AvgStrokes *float64 `json:"avgStrokes,omitempty"`
	Strokes    *float64 `json:"strokes,omitempty"`
	PoolLength *float64 `json:"poolLength,omitempty"`
	AvgSwolf   *float64 `json:"avgSwolf,omitempty"`

	DeviceID *int64 `json:"deviceId,omitempty"`
}

// ActivityType is the service's nested sport descriptor.
type ActivityType struct {
	TypeID  int64  `json:"typeId,omitempty"`
	TypeKey string `json:"typeKey"`
}

// TypeKey returns the sport key, "other" when the service sent none.
func (a *Activity) TypeKey() string {
	if key := strings.TrimSpace(a.ActivityType.TypeKey); key != "" {
		return key
	}
	return "other"
}

// DistanceKm converts distance to kilometers.
func (a *Activity) DistanceKm() float64 {
	return a.Distance / 1000
}

// DistanceMiles converts distance to miles.
func (a *Activity) DistanceMiles() float64 {
	return a.Distance / 1609.344
}

// DurationMinutes converts duration to minutes.
func (a *Activity) DurationMinutes() float64 {
	return a.Duration / 60
}

// PacePerKm returns minutes per kilometer. ok is false for stationary
// activities.
func (a *Activity) PacePerKm() (float64, bool) {
	if a.Distance <= 0 || a.Duration <= 0 {
		return 0, false
	}
	return a.Duration / 60 / a.DistanceKm(), true
}

// PacePerMile returns minutes per mile. ok is false for stationary
// activities.
func (a *Activity) PacePerMile() (float64, bool) {
	if a.Distance <= 0 || a.Duration <= 0 {
		return 0, false
	}
	return a.Duration / 60 / a.DistanceMiles(), true
}

// Lap is one lap of an activity.
type Lap struct {
	LapIndex     int     `json:"lapIndex"`
	StartTimeGMT string  `json:"startTimeGMT,omitempty"`
	Duration     float64 `json:"duration"`
	Distance     float64 `json:"distance"`
	Calories     float64 `json:"calories"`

	AverageHR         *float64 `json:"averageHR,omitempty"`
	MaxHR             *float64 `json:"maxHR,omitempty"`
	AverageSpeed      *float64 `json:"averageSpeed,omitempty"`
	MaxSpeed          *float64 `json:"maxSpeed,omitempty"`
	AverageRunCadence *float64 `json:"averageRunCadence,omitempty"`
	ElevationGain     *float64 `json:"elevationGain,omitempty"`
	ElevationLoss     *float64 `json:"elevationLoss,omitempty"`
}

// DistanceKm converts lap distance to kilometers.
func (l *Lap) DistanceKm() float64 {
	return l.Distance / 1000
}

// DurationMinutes converts lap duration to minutes.
func (l *Lap) DurationMinutes() float64 {
	return l.Duration / 60
}

// HRZone is time spent in one heart rate training zone during an activity.
type HRZone struct {
	ZoneNumber      int     `json:"zoneNumber"`
	SecsInZone      float64 `json:"secsInZone"`
	ZoneLowBoundary int     `json:"zoneLowBoundary"`
}

// Minutes converts zone time to minutes.
func (z *HRZone) Minutes() float64 {
	return z.SecsInZone / 60
}

// ActivityQuery filters and pages the activity list.
type ActivityQuery struct {
	Start        int
	Limit        int
	StartDate    string
	EndDate      string
	ActivityType string
}

// FetchActivities retrieves activities matching the query, newest first.
func (c *Client) FetchActivities(ctx context.Context, query ActivityQuery) ([]Activity, error) {
	values := url.Values{}
	values.Set("start", strconv.Itoa(query.Start))
	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}
	values.Set("limit", strconv.Itoa(limit))
	if query.StartDate != "" {
		if err := checkDate(query.StartDate); err != nil {
			return nil, err
		}
		values.Set("startDate", query.StartDate)
	}
	if query.EndDate != "" {
		if err := checkDate(query.EndDate); err != nil {
			return nil, err
		}
		values.Set("endDate", query.EndDate)
	}
	if t := strings.TrimSpace(query.ActivityType); t != "" {
		values.Set("activityType", t)
	}
	rel := &url.URL{Path: "/activitylist-service/activities/search/activities", RawQuery: values.Encode()}

	var payload []Activity
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		if errors.Is(err, errNoData) {
			return nil, nil
		}
		return nil, err
	}
	return payload, nil
}

// FetchActivity retrieves a single activity by ID. Returns (nil, nil) when
// the service has no activity with that ID.
func (c *Client) FetchActivity(ctx context.Context, activityID int64) (*Activity, error) {
	if activityID <= 0 {
		return nil, fmt.Errorf("activity id required")
	}
	path := "/activity-service/activity/" + strconv.FormatInt(activityID, 10)

	var payload Activity
	if err := c.do(ctx, http.MethodGet, path, &payload); err != nil {
		if errors.Is(err, errNoData) {
			return nil, nil
		}
		return nil, err
	}
	return &payload, nil
}

type activityLapsResponse struct {
	ActivityID int64 `json:"activityId"`
	LapDTOs    []Lap `json:"lapDTOs"`
}

// FetchActivityLaps retrieves the lap breakdown of an activity.
func (c *Client) FetchActivityLaps(ctx context.Context, activityID int64) ([]Lap, error) {
	if activityID <= 0 {
		return nil, fmt.Errorf("activity id required")
	}
	path := "/activity-service/activity/" + strconv.FormatInt(activityID, 10) + "/splits"

	var payload activityLapsResponse
	if err := c.do(ctx, http.MethodGet, path, &payload); err != nil {
		if errors.Is(err, errNoData) {
			return nil, nil
		}
		return nil, err
	}
	return payload.LapDTOs, nil
}

// FetchActivityHRZones retrieves per-zone heart rate time for an activity.
func (c *Client) FetchActivityHRZones(ctx context.Context, activityID int64) ([]HRZone, error) {
	if activityID <= 0 {
		return nil, fmt.Errorf("activity id required")
	}
	path := "/activity-service/activity/" + strconv.FormatInt(activityID, 10) + "/hrTimeInZones"

	var payload []HRZone
	if err := c.do(ctx, http.MethodGet, path, &payload); err != nil {
		if errors.Is(err, errNoData) {
			return nil, nil
		}
		return nil, err
	}
	return payload, nil
}
