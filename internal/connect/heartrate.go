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

// DailyHeartRate is a day's heart rate record: summary values plus the
// measurement series.
type DailyHeartRate struct {
	CalendarDate      string `json:"calendarDate"`
	StartTimestampGMT string `json:"startTimestampGMT,omitempty"`
	EndTimestampGMT   string `json:"endTimestampGMT,omitempty"`

	RestingHeartRate                 *int `json:"restingHeartRate,omitempty"`
	MinHeartRate                     *int `json:"minHeartRate,omitempty"`
	MaxHeartRate                     *int `json:"maxHeartRate,omitempty"`
	LastSevenDaysAvgRestingHeartRate *int `json:"lastSevenDaysAvgRestingHeartRate,omitempty"`

	HeartRateValues []HeartRateSample `json:"heartRateValues,omitempty"`
}

// HeartRateSample is one reading from the day's series. The wire format is a
// two-element array of unix-millisecond timestamp and beats per minute, with
// null standing in for gaps.
type HeartRateSample struct {
	Timestamp int64
	Value     int
}

// UnmarshalJSON decodes the [timestamp, bpm] array form.
func (s *HeartRateSample) UnmarshalJSON(data []byte) error {
	var pair []*float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("heart rate sample: %w", err)
	}
	if len(pair) > 0 && pair[0] != nil {
		s.Timestamp = int64(*pair[0])
	}
	if len(pair) > 1 && pair[1] != nil {
		s.Value = int(*pair[1])
	}
	return nil
}

// MarshalJSON re-emits the array form.
func (s HeartRateSample) MarshalJSON() ([]byte, error) {
	if s.Value <= 0 {
		return json.Marshal([2]any{s.Timestamp, nil})
	}
	return json.Marshal([2]any{s.Timestamp, s.Value})
}

// Time returns the sample timestamp.
func (s HeartRateSample) Time() time.Time {
	return time.UnixMilli(s.Timestamp).UTC()
}

// Valid reports whether the sample carries a measurement.
func (s HeartRateSample) Valid() bool {
	return s.Value > 0
}

// SamplesBetween returns the measurements taken in [start, end].
func (d *DailyHeartRate) SamplesBetween(start, end time.Time) []HeartRateSample {
	var out []HeartRateSample
	for _, s := range d.HeartRateValues {
		t := s.Time()
		if !t.Before(start) && !t.After(end) {
			out = append(out, s)
		}
	}
	return out
}

// AverageBetween averages valid measurements in [start, end]. ok is false
// when the window holds none.
func (d *DailyHeartRate) AverageBetween(start, end time.Time) (float64, bool) {
	var sum, n int
	for _, s := range d.SamplesBetween(start, end) {
		if s.Valid() {
			sum += s.Value
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

// FetchHeartRate retrieves the heart rate record for a calendar date.
func (c *Client) FetchHeartRate(ctx context.Context, date string) (*DailyHeartRate, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	values := url.Values{}
	values.Set("date", date)
	rel := &url.URL{Path: "/wellness-service/wellness/dailyHeartRate/", RawQuery: values.Encode()}

	var payload DailyHeartRate
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		if errors.Is(err, errNoData) {
			return nil, nil
		}
		return nil, err
	}
	return &payload, nil
}
