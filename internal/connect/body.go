package connect

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"
)

// WeightMeasurement is a single weigh-in. Weight is grams on the wire.
type WeightMeasurement struct {
	SamplePK     int64   `json:"samplePk,omitempty"`
	CalendarDate string  `json:"calendarDate"`
	TimestampGMT int64   `json:"timestampGMT,omitempty"`
	Weight       float64 `json:"weight"`
	SourceType   string  `json:"sourceType,omitempty"`
}

// Kilograms converts the measurement to kilograms.
func (w *WeightMeasurement) Kilograms() float64 {
	return w.Weight / 1000
}

// Pounds converts the measurement to pounds.
func (w *WeightMeasurement) Pounds() float64 {
	return w.Weight / 1000 * 2.20462
}

// Time returns when the measurement was taken.
func (w *WeightMeasurement) Time() time.Time {
	return time.UnixMilli(w.TimestampGMT).UTC()
}

// BodyComposition is a weigh-in with scale-reported composition metrics.
// Masses are grams, percentages 0-100.
type BodyComposition struct {
	SamplePK     int64   `json:"samplePk,omitempty"`
	CalendarDate string  `json:"calendarDate"`
	TimestampGMT int64   `json:"timestampGMT,omitempty"`
	Weight       float64 `json:"weight"`

	BodyFat      *float64 `json:"bodyFat,omitempty"`
	BodyWater    *float64 `json:"bodyWater,omitempty"`
	BoneMass     *float64 `json:"boneMass,omitempty"`
	MuscleMass   *float64 `json:"muscleMass,omitempty"`
	VisceralFat  *int     `json:"visceralFat,omitempty"`
	MetabolicAge *int     `json:"metabolicAge,omitempty"`
	BMI          *float64 `json:"bMI,omitempty"`

	SourceType string `json:"sourceType,omitempty"`
}

// Kilograms converts the weigh-in to kilograms.
func (b *BodyComposition) Kilograms() float64 {
	return b.Weight / 1000
}

// Pounds converts the weigh-in to pounds.
func (b *BodyComposition) Pounds() float64 {
	return b.Weight / 1000 * 2.20462
}

// BoneMassKg converts bone mass to kilograms.
func (b *BodyComposition) BoneMassKg() (float64, bool) {
	if b.BoneMass == nil {
		return 0, false
	}
	return *b.BoneMass / 1000, true
}

// MuscleMassKg converts muscle mass to kilograms.
func (b *BodyComposition) MuscleMassKg() (float64, bool) {
	if b.MuscleMass == nil {
		return 0, false
	}
	return *b.MuscleMass / 1000, true
}

// LeanBodyMassKg derives lean mass from weight and body fat percentage.
func (b *BodyComposition) LeanBodyMassKg() (float64, bool) {
	if b.BodyFat == nil {
		return 0, false
	}
	kg := b.Kilograms()
	return kg - kg*(*b.BodyFat/100), true
}

type weightRangeResponse struct {
	DailyWeightSummaries []BodyComposition `json:"dailyWeightSummaries"`
}

type weightDayViewResponse struct {
	TotalAverage *WeightMeasurement `json:"totalAverage"`
}

// FetchBodyComposition retrieves the weigh-in recorded on a calendar date.
func (c *Client) FetchBodyComposition(ctx context.Context, date string) (*BodyComposition, error) {
	summaries, err := c.fetchWeightRange(ctx, date, date)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, nil
	}
	return &summaries[0], nil
}

// FetchWeight retrieves the day's average weight for a calendar date.
func (c *Client) FetchWeight(ctx context.Context, date string) (*WeightMeasurement, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	var payload weightDayViewResponse
	if err := c.do(ctx, http.MethodGet, "/weight-service/weight/dayview/"+date, &payload); err != nil {
		if errors.Is(err, errNoData) {
			return nil, nil
		}
		return nil, err
	}
	if payload.TotalAverage == nil || payload.TotalAverage.Weight == 0 {
		return nil, nil
	}
	if payload.TotalAverage.CalendarDate == "" {
		payload.TotalAverage.CalendarDate = date
	}
	return payload.TotalAverage, nil
}

// FetchWeightRange retrieves weigh-ins for the inclusive range [start, end].
func (c *Client) FetchWeightRange(ctx context.Context, start, end string) ([]WeightMeasurement, error) {
	summaries, err := c.fetchWeightRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]WeightMeasurement, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, WeightMeasurement{
			SamplePK:     s.SamplePK,
			CalendarDate: s.CalendarDate,
			TimestampGMT: s.TimestampGMT,
			Weight:       s.Weight,
			SourceType:   s.SourceType,
		})
	}
	return out, nil
}

// FetchLatestWeight retrieves the most recent weigh-in on record.
func (c *Client) FetchLatestWeight(ctx context.Context) (*WeightMeasurement, error) {
	var payload WeightMeasurement
	if err := c.do(ctx, http.MethodGet, "/weight-service/weight/latest", &payload); err != nil {
		if errors.Is(err, errNoData) {
			return nil, nil
		}
		return nil, err
	}
	if payload.Weight == 0 {
		return nil, nil
	}
	return &payload, nil
}

func (c *Client) fetchWeightRange(ctx context.Context, start, end string) ([]BodyComposition, error) {
	if err := checkDate(start); err != nil {
		return nil, err
	}
	if err := checkDate(end); err != nil {
		return nil, err
	}
	values := url.Values{}
	values.Set("startDate", start)
	values.Set("endDate", end)
	rel := &url.URL{Path: "/weight-service/weight/dateRange", RawQuery: values.Encode()}

	var payload weightRangeResponse
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		if errors.Is(err, errNoData) {
			return nil, nil
		}
		return nil, err
	}
	return payload.DailyWeightSummaries, nil
}

// Hydration is a day's entry from the hydration stats feed. Volumes are
// milliliters.
type Hydration struct {
	CalendarDate string          `json:"calendarDate"`
	Values       HydrationValues `json:"values"`
}

// HydrationValues carries the day's intake against its goal.
type HydrationValues struct {
	ValueInML          float64 `json:"valueInML"`
	GoalInML           float64 `json:"goalInML"`
	SweatLossInML      float64 `json:"sweatLossInML"`
	ActivityIntakeInML float64 `json:"activityIntakeInML"`
}

// IntakeLiters converts total intake to liters.
func (h *Hydration) IntakeLiters() float64 {
	return h.Values.ValueInML / 1000
}

// IntakeOunces converts total intake to fluid ounces.
func (h *Hydration) IntakeOunces() float64 {
	return h.Values.ValueInML / 29.5735
}

// GoalLiters converts the goal to liters.
func (h *Hydration) GoalLiters() float64 {
	return h.Values.GoalInML / 1000
}

// GoalPercent reports progress toward the hydration goal as a percentage.
func (h *Hydration) GoalPercent() float64 {
	if h.Values.GoalInML <= 0 {
		return 0
	}
	return h.Values.ValueInML / h.Values.GoalInML * 100
}

// GoalReached reports whether the hydration goal was met.
func (h *Hydration) GoalReached() bool {
	return h.Values.ValueInML >= h.Values.GoalInML
}

// NetIntakeML is intake minus sweat loss.
func (h *Hydration) NetIntakeML() float64 {
	return h.Values.ValueInML - h.Values.SweatLossInML
}

// RemainingML is the intake still needed to reach the goal.
func (h *Hydration) RemainingML() float64 {
	if rem := h.Values.GoalInML - h.Values.ValueInML; rem > 0 {
		return rem
	}
	return 0
}

// FetchHydration retrieves the hydration record for a calendar date.
func (c *Client) FetchHydration(ctx context.Context, date string) (*Hydration, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	path := "/usersummary-service/stats/hydration/daily/" + date + "/" + date

	var payload []Hydration
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
