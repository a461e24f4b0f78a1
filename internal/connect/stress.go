package connect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// StressSummary is a day's entry from the stress stats feed.
type StressSummary struct {
	CalendarDate string       `json:"calendarDate"`
	Values       StressValues `json:"values"`
}

// StressValues breaks the day down by stress band. Durations are seconds.
type StressValues struct {
	AvgStressLevel *int `json:"avgStressLevel,omitempty"`
	MaxStressLevel *int `json:"maxStressLevel,omitempty"`

	TotalStressDuration         int `json:"totalStressDuration"`
	RestStressDuration          int `json:"restStressDuration"`
	LowStressDuration           int `json:"lowStressDuration"`
	MediumStressDuration        int `json:"mediumStressDuration"`
	HighStressDuration          int `json:"highStressDuration"`
	ActivityStressDuration      int `json:"activityStressDuration"`
	UncategorizedStressDuration int `json:"uncategorizedStressDuration"`

	BodyBatteryChargedValue *int `json:"bodyBatteryChargedValue,omitempty"`
	BodyBatteryDrainedValue *int `json:"bodyBatteryDrainedValue,omitempty"`
}

// RestHours converts rest-band time to hours.
func (s *StressSummary) RestHours() float64 {
	return float64(s.Values.RestStressDuration) / 3600
}

// LowStressHours converts low-band time to hours.
func (s *StressSummary) LowStressHours() float64 {
	return float64(s.Values.LowStressDuration) / 3600
}

// MediumStressHours converts medium-band time to hours.
func (s *StressSummary) MediumStressHours() float64 {
	return float64(s.Values.MediumStressDuration) / 3600
}

// HighStressHours converts high-band time to hours.
func (s *StressSummary) HighStressHours() float64 {
	return float64(s.Values.HighStressDuration) / 3600
}

// MeasuredHours totals the time the device classified into a stress band.
func (s *StressSummary) MeasuredHours() float64 {
	total := s.Values.RestStressDuration +
		s.Values.LowStressDuration +
		s.Values.MediumStressDuration +
		s.Values.HighStressDuration
	return float64(total) / 3600
}

// StressCategory names the band a 0-100 stress level falls in. Negative
// levels mean the device could not measure.
func StressCategory(level int) string {
	switch {
	case level < 0:
		return "unmeasured"
	case level <= 25:
		return "rest"
	case level <= 50:
		return "low"
	case level <= 75:
		return "medium"
	default:
		return "high"
	}
}

// FetchStress retrieves the stress summary for a calendar date.
func (c *Client) FetchStress(ctx context.Context, date string) (*StressSummary, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	path := "/usersummary-service/stats/stress/daily/" + date + "/" + date

	var payload []StressSummary
	if err := c.do(ctx, http.MethodGet, path, &payload); err != nil {
		if errors.Is(err, errNoData) {
			return nil, nil
		}
		return nil, err
	}
	if len(payload) == 0 {
		return nil, nil
	}
	return &payload[0], nil
}

// BodyBatteryReport is one day from the body battery feed.
type BodyBatteryReport struct {
	Date              string `json:"date"`
	Charged           *int   `json:"charged,omitempty"`
	Drained           *int   `json:"drained,omitempty"`
	StartTimestampGMT string `json:"startTimestampGMT,omitempty"`
	EndTimestampGMT   string `json:"endTimestampGMT,omitempty"`

	BodyBatteryValuesArray []BodyBatterySample `json:"bodyBatteryValuesArray,omitempty"`
}

// BodyBatterySample is one reading from the body battery series. The wire
// format is [timestamp, status, level, version].
type BodyBatterySample struct {
	Timestamp int64
	Status    string
	Level     int
}

// UnmarshalJSON decodes the array form.
func (s *BodyBatterySample) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("body battery sample: %w", err)
	}
	if len(fields) > 0 {
		var ts float64
		if err := json.Unmarshal(fields[0], &ts); err == nil {
			s.Timestamp = int64(ts)
		}
	}
	if len(fields) > 1 {
		_ = json.Unmarshal(fields[1], &s.Status)
	}
	if len(fields) > 2 {
		var level float64
		if err := json.Unmarshal(fields[2], &level); err == nil {
			s.Level = int(level)
		}
	}
	return nil
}

// MarshalJSON re-emits the array form.
func (s BodyBatterySample) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]any{s.Timestamp, s.Status, s.Level, 1.0})
}

// Time returns the sample timestamp.
func (s BodyBatterySample) Time() time.Time {
	return time.UnixMilli(s.Timestamp).UTC()
}

// FetchBodyBattery retrieves body battery reports for the inclusive date
// range [start, end].
func (c *Client) FetchBodyBattery(ctx context.Context, start, end string) ([]BodyBatteryReport, error) {
	if err := checkDate(start); err != nil {
		return nil, err
	}
	if err := checkDate(end); err != nil {
		return nil, err
	}
	values := url.Values{}
	values.Set("startDate", start)
	values.Set("endDate", end)
	rel := &url.URL{Path: "/wellness-service/wellness/bodyBattery/reports/daily", RawQuery: values.Encode()}

	var payload []BodyBatteryReport
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		if errors.Is(err, errNoData) {
			return nil, nil
		}
		return nil, err
	}
	return payload, nil
}
