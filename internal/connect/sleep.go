package connect

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// Sleep is a night's sleep session: the summary record plus the phase and
// movement series recorded alongside it.
type Sleep struct {
	Summary              SleepSummary    `json:"dailySleepDTO"`
	Levels               []SleepPhase    `json:"sleepLevels,omitempty"`
	Movement             []SleepMovement `json:"sleepMovement,omitempty"`
	RestlessMomentsCount int             `json:"restlessMomentsCount"`
	RestingHeartRate     *int            `json:"restingHeartRate,omitempty"`
}

// SleepSummary carries duration, score, and overnight vitals for one sleep
// session. Timestamps are unix milliseconds.
type SleepSummary struct {
	ID            int64  `json:"id"`
	UserProfilePK int64  `json:"userProfilePK"`
	CalendarDate  string `json:"calendarDate"`

	SleepStartTimestampGMT   int64 `json:"sleepStartTimestampGMT"`
	SleepEndTimestampGMT     int64 `json:"sleepEndTimestampGMT"`
	SleepStartTimestampLocal int64 `json:"sleepStartTimestampLocal"`
	SleepEndTimestampLocal   int64 `json:"sleepEndTimestampLocal"`

	SleepTimeSeconds         int `json:"sleepTimeSeconds"`
	DeepSleepSeconds         int `json:"deepSleepSeconds"`
	LightSleepSeconds        int `json:"lightSleepSeconds"`
	RemSleepSeconds          int `json:"remSleepSeconds"`
	AwakeSleepSeconds        int `json:"awakeSleepSeconds"`
	UnmeasurableSleepSeconds int `json:"unmeasurableSleepSeconds"`

	SleepScores *SleepScores `json:"sleepScores,omitempty"`

	AverageSleepHeartRate *int `json:"averageSleepHeartRate,omitempty"`
	LowestSleepHeartRate  *int `json:"lowestSleepHeartRate,omitempty"`
	HighestSleepHeartRate *int `json:"highestSleepHeartRate,omitempty"`

	AverageSleepRespiration *float64 `json:"averageSleepRespiration,omitempty"`
	LowestSleepRespiration  *float64 `json:"lowestSleepRespiration,omitempty"`
	HighestSleepRespiration *float64 `json:"highestSleepRespiration,omitempty"`

	AverageSpO2 *float64 `json:"averageSpO2,omitempty"`
	LowestSpO2  *float64 `json:"lowestSpO2,omitempty"`

	AverageSleepStress *float64 `json:"averageSleepStress,omitempty"`
	AvgSleepHRV        *float64 `json:"avgSleepHrv,omitempty"`
	HRVStatus          string   `json:"hrvStatus,omitempty"`
	BodyBatteryChange  *int     `json:"bodyBatteryChange,omitempty"`

	SleepFeedback string `json:"sleepFeedback,omitempty"`
}

// SleepScores is the nested per-aspect score block.
type SleepScores struct {
	Overall  SleepScore `json:"overall"`
	Quality  SleepScore `json:"quality"`
	Recovery SleepScore `json:"recovery"`
	Deep     SleepScore `json:"deep"`
	Light    SleepScore `json:"light"`
	Rem      SleepScore `json:"rem"`
}

// SleepScore is a single 0-100 score. Value is nil when the aspect was not
// scored.
type SleepScore struct {
	Value *int `json:"value,omitempty"`
}

// SleepPhase is one contiguous stretch at a single sleep level.
type SleepPhase struct {
	StartGMT   string `json:"startGMT"`
	EndGMT     string `json:"endGMT"`
	SleepLevel string `json:"sleepLevel"`
}

// SleepMovement is a movement intensity reading during sleep.
type SleepMovement struct {
	StartGMT      string  `json:"startGMT"`
	EndGMT        string  `json:"endGMT"`
	ActivityLevel float64 `json:"activityLevel"`
}

// OverallScore returns the overall sleep score when the service computed one.
func (s *SleepSummary) OverallScore() (int, bool) {
	if s.SleepScores == nil || s.SleepScores.Overall.Value == nil {
		return 0, false
	}
	return *s.SleepScores.Overall.Value, true
}

// TotalSleepHours converts total sleep time to hours.
func (s *SleepSummary) TotalSleepHours() float64 {
	return float64(s.SleepTimeSeconds) / 3600
}

// DeepSleepHours converts deep sleep time to hours.
func (s *SleepSummary) DeepSleepHours() float64 {
	return float64(s.DeepSleepSeconds) / 3600
}

// LightSleepHours converts light sleep time to hours.
func (s *SleepSummary) LightSleepHours() float64 {
	return float64(s.LightSleepSeconds) / 3600
}

// RemSleepHours converts REM sleep time to hours.
func (s *SleepSummary) RemSleepHours() float64 {
	return float64(s.RemSleepSeconds) / 3600
}

// Efficiency reports time asleep over time in bed as a percentage. ok is
// false when the session has no usable start and end timestamps.
func (s *SleepSummary) Efficiency() (float64, bool) {
	inBedMillis := s.SleepEndTimestampGMT - s.SleepStartTimestampGMT
	if s.SleepStartTimestampGMT == 0 || inBedMillis <= 0 {
		return 0, false
	}
	return float64(s.SleepTimeSeconds) / (float64(inBedMillis) / 1000) * 100, true
}

// DeepSleepPercent reports deep sleep as a share of total sleep.
func (s *SleepSummary) DeepSleepPercent() float64 {
	if s.SleepTimeSeconds <= 0 {
		return 0
	}
	return float64(s.DeepSleepSeconds) / float64(s.SleepTimeSeconds) * 100
}

// RemSleepPercent reports REM sleep as a share of total sleep.
func (s *SleepSummary) RemSleepPercent() float64 {
	if s.SleepTimeSeconds <= 0 {
		return 0
	}
	return float64(s.RemSleepSeconds) / float64(s.SleepTimeSeconds) * 100
}

// FetchSleep retrieves the sleep session that ended on the given date, the
// previous night's sleep. Returns (nil, nil) when no sleep was recorded.
func (c *Client) FetchSleep(ctx context.Context, date string) (*Sleep, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	name, err := c.displayUserName(ctx)
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("nonSleepBufferMinutes", "60")
	values.Set("date", date)
	rel := &url.URL{
		Path:     "/wellness-service/wellness/dailySleepData/" + name,
		RawQuery: values.Encode(),
	}

	var payload Sleep
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		if errors.Is(err, errNoData) {
			return nil, nil
		}
		return nil, err
	}
	// An empty session record means the device logged nothing that night.
	if payload.Summary.ID == 0 && payload.Summary.SleepTimeSeconds == 0 {
		return nil, nil
	}
	return &payload, nil
}
