package connect

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// DailySteps is the movement slice of a day's wellness summary: steps,
// distance, floors, intensity minutes, and activity-level durations.
type DailySteps struct {
	CalendarDate string `json:"calendarDate"`

	TotalSteps          int     `json:"totalSteps"`
	DailyStepGoal       int     `json:"dailyStepGoal"`
	TotalDistanceMeters float64 `json:"totalDistanceMeters"`

	HighlyActiveSeconds int `json:"highlyActiveSeconds"`
	ActiveSeconds       int `json:"activeSeconds"`
	SedentarySeconds    int `json:"sedentarySeconds"`
	SleepingSeconds     int `json:"sleepingSeconds"`

	FloorsAscended     float64 `json:"floorsAscended"`
	FloorsDescended    float64 `json:"floorsDescended"`
	FloorsAscendedGoal int     `json:"floorsAscendedGoal"`

	ModerateIntensityMinutes int `json:"moderateIntensityMinutes"`
	VigorousIntensityMinutes int `json:"vigorousIntensityMinutes"`
	IntensityMinutesGoal     int `json:"intensityMinutesGoal"`
}

// GoalPercent reports progress toward the step goal as a percentage.
func (s *DailySteps) GoalPercent() float64 {
	if s.DailyStepGoal <= 0 {
		return 0
	}
	return float64(s.TotalSteps) / float64(s.DailyStepGoal) * 100
}

// GoalReached reports whether the step goal was met.
func (s *DailySteps) GoalReached() bool {
	return s.TotalSteps >= s.DailyStepGoal
}

// DistanceKm converts total distance to kilometers.
func (s *DailySteps) DistanceKm() float64 {
	return s.TotalDistanceMeters / 1000
}

// DistanceMiles converts total distance to miles.
func (s *DailySteps) DistanceMiles() float64 {
	return s.TotalDistanceMeters / 1609.344
}

// HighlyActiveMinutes converts highly active time to minutes.
func (s *DailySteps) HighlyActiveMinutes() float64 {
	return float64(s.HighlyActiveSeconds) / 60
}

// ActiveMinutes converts active time to minutes.
func (s *DailySteps) ActiveMinutes() float64 {
	return float64(s.ActiveSeconds) / 60
}

// SedentaryHours converts sedentary time to hours.
func (s *DailySteps) SedentaryHours() float64 {
	return float64(s.SedentarySeconds) / 3600
}

// TotalIntensityMinutes weights vigorous minutes double.
func (s *DailySteps) TotalIntensityMinutes() int {
	return s.ModerateIntensityMinutes + 2*s.VigorousIntensityMinutes
}

// FloorsGoalReached reports whether the floors climbed goal was met.
func (s *DailySteps) FloorsGoalReached() bool {
	return s.FloorsAscended >= float64(s.FloorsAscendedGoal)
}

// FetchSteps retrieves the step metrics for a calendar date. The service
// serves them from the same feed as the daily summary.
func (c *Client) FetchSteps(ctx context.Context, date string) (*DailySteps, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	values := url.Values{}
	values.Set("calendarDate", date)
	rel := &url.URL{Path: "/usersummary-service/usersummary/daily/", RawQuery: values.Encode()}

	var payload DailySteps
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
