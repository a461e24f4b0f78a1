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

// DailyRespiration is a day's breathing rate record. Rates are breaths per
// minute.
type DailyRespiration struct {
	CalendarDate      string `json:"calendarDate"`
	StartTimestampGMT string `json:"startTimestampGMT,omitempty"`
	EndTimestampGMT   string `json:"endTimestampGMT,omitempty"`

	AvgWakingRespirationValue   *float64 `json:"avgWakingRespirationValue,omitempty"`
	AvgSleepingRespirationValue *float64 `json:"avgSleepingRespirationValue,omitempty"`
	HighestRespirationValue     *float64 `json:"highestRespirationValue,omitempty"`
	LowestRespirationValue      *float64 `json:"lowestRespirationValue,omitempty"`

	RespirationValuesArray []RespirationSample `json:"respirationValuesArray,omitempty"`
}

// RespirationSample is one reading from the day's series. The wire format is
// [timestamp, breaths per minute], with null or negative values for gaps.
type RespirationSample struct {
	Timestamp int64
	Value     *float64
}

// UnmarshalJSON decodes the array form.
func (s *RespirationSample) UnmarshalJSON(data []byte) error {
	var pair []*float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("respiration sample: %w", err)
	}
	if len(pair) > 0 && pair[0] != nil {
		s.Timestamp = int64(*pair[0])
	}
	if len(pair) > 1 {
		s.Value = pair[1]
	}
	return nil
}

// MarshalJSON re-emits the array form.
func (s RespirationSample) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{s.Timestamp, s.Value})
}

// Time returns the sample timestamp.
func (s RespirationSample) Time() time.Time {
	return time.UnixMilli(s.Timestamp).UTC()
}

// Valid reports whether the sample carries a measurement.
func (s RespirationSample) Valid() bool {
	return s.Value != nil && *s.Value > 0
}

// ValidSamples returns only the readings that carry a measurement.
func (d *DailyRespiration) ValidSamples() []RespirationSample {
	var out []RespirationSample
	for _, s := range d.RespirationValuesArray {
		if s.Valid() {
			out = append(out, s)
		}
	}
	return out
}

// Range returns the spread between the day's highest and lowest rates.
func (d *DailyRespiration) Range() (float64, bool) {
	if d.HighestRespirationValue == nil || d.LowestRespirationValue == nil {
		return 0, false
	}
	return *d.HighestRespirationValue - *d.LowestRespirationValue, true
}

// FetchRespiration retrieves the respiration record for a calendar date.
func (c *Client) FetchRespiration(ctx context.Context, date string) (*DailyRespiration, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	values := url.Values{}
	values.Set("date", date)
	rel := &url.URL{Path: "/wellness-service/wellness/dailyRespiration/", RawQuery: values.Encode()}

	var payload DailyRespiration
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		if errors.Is(err, errNoData) {
			return nil, nil
		}
		return nil, err
	}
	return &payload, nil
}
