package connect

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// DailySummary aggregates a day's wellness metrics: steps, calories, heart
// rate, stress, body battery, intensity minutes, respiration, and SpO2.
type DailySummary struct {
	CalendarDate      string `json:"calendarDate"`
	StartTimestampGMT string `json:"startTimestampGMT,omitempty"`
	EndTimestampGMT   string `json:"endTimestampGMT,omitempty"`

	TotalSteps          int     `json:"totalSteps"`
	DailyStepGoal       int     `json:"dailyStepGoal"`
	TotalDistanceMeters float64 `json:"totalDistanceMeters"`

	TotalKilocalories     float64  `json:"totalKilocalories"`
	ActiveKilocalories    float64  `json:"activeKilocalories"`
	BMRKilocalories       float64  `json:"bmrKilocalories"`
	ConsumedKilocalories  *float64 `json:"consumedKilocalories,omitempty"`
	NetCalorieGoal        *float64 `json:"netCalorieGoal,omitempty"`
	RemainingKilocalories *float64 `json:"remainingKilocalories,omitempty"`

	RestingHeartRate *int `json:"restingHeartRate,omitempty"`
	MinHeartRate     *int `json:"minHeartRate,omitempty"`
	MaxHeartRate     *int `json:"maxHeartRate,omitempty"`
	AverageHeartRate *int `json:"averageHeartRate,omitempty"`

	AverageStressLevel *int `json:"averageStressLevel,omitempty"`
	MaxStressLevel     *int `json:"maxStressLevel,omitempty"`
	StressDuration     int  `json:"stressDuration"`
	RestStressDuration int  `json:"restStressDuration"`

	BodyBatteryChargedValue    *int `json:"bodyBatteryChargedValue,omitempty"`
	BodyBatteryDrainedValue    *int `json:"bodyBatteryDrainedValue,omitempty"`
	BodyBatteryHighestValue    *int `json:"bodyBatteryHighestValue,omitempty"`
	BodyBatteryLowestValue     *int `json:"bodyBatteryLowestValue,omitempty"`
	BodyBatteryMostRecentValue *int `json:"bodyBatteryMostRecentValue,omitempty"`

	FloorsAscended     float64 `json:"floorsAscended"`
	FloorsDescended    float64 `json:"floorsDescended"`
	FloorsAscendedGoal int     `json:"floorsAscendedGoal"`

	ModerateIntensityMinutes int `json:"moderateIntensityMinutes"`
	VigorousIntensityMinutes int `json:"vigorousIntensityMinutes"`
	IntensityMinutesGoal     int `json:"intensityMinutesGoal"`

	HighlyActiveSeconds int `json:"highlyActiveSeconds"`
	ActiveSeconds       int `json:"activeSeconds"`
	SedentarySeconds    int `json:"sedentarySeconds"`
	SleepingSeconds     int `json:"sleepingSeconds"`

	AvgWakingRespirationValue *float64 `json:"avgWakingRespirationValue,omitempty"`
	HighestRespirationValue   *float64 `json:"highestRespirationValue,omitempty"`
	LowestRespirationValue    *float64 `json:"lowestRespirationValue,omitempty"`

	AverageSpO2 *float64 `json:"averageSpO2,omitempty"`
	LowestSpO2  *float64 `json:"lowestSpO2,omitempty"`
	LatestSpO2  *float64 `json:"latestSpO2,omitempty"`

	HRVStatus string `json:"hrvStatus,omitempty"`

	ActivitiesCount    int    `json:"activitiesCount"`
	UserDailySummaryID *int64 `json:"userDailySummaryId,omitempty"`
}

// StepGoalPercent reports progress toward the daily step goal as a
// percentage.
func (s *DailySummary) StepGoalPercent() float64 {
	if s.DailyStepGoal <= 0 {
		return 0
	}
	return float64(s.TotalSteps) / float64(s.DailyStepGoal) * 100
}

// TotalIntensityMinutes weights vigorous minutes double, matching how the
// service scores the weekly intensity goal.
func (s *DailySummary) TotalIntensityMinutes() int {
	return s.ModerateIntensityMinutes + 2*s.VigorousIntensityMinutes
}

// BodyBatteryNetChange returns charged minus drained body battery for the
// day. ok is false when either side was not measured.
func (s *DailySummary) BodyBatteryNetChange() (int, bool) {
	if s.BodyBatteryChargedValue == nil || s.BodyBatteryDrainedValue == nil {
		return 0, false
	}
	return *s.BodyBatteryChargedValue - *s.BodyBatteryDrainedValue, true
}

// FetchDailySummary retrieves the wellness summary for a calendar date.
func (c *Client) FetchDailySummary(ctx context.Context, date string) (*DailySummary, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	values := url.Values{}
	values.Set("calendarDate", date)
	rel := &url.URL{Path: "/usersummary-service/usersummary/daily/", RawQuery: values.Encode()}

	var payload DailySummary
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		if errors.Is(err, errNoData) {
			return nil, nil
		}
		return nil, err
	}
	if payload.CalendarDate == "" {
		payload.CalendarDate = date
	}
	return &payload, nil
}
