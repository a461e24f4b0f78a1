package cli

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// defaultDate is yesterday: the most recent day the service has complete
// data for.
func defaultDate(now time.Time) string {
	return now.AddDate(0, 0, -1).Format(dateLayout)
}

// resolveDate validates an explicit -d value or falls back to yesterday.
func resolveDate(flagValue string, now time.Time) (string, error) {
	if flagValue == "" {
		return defaultDate(now), nil
	}
	if _, err := time.Parse(dateLayout, flagValue); err != nil {
		return "", fmt.Errorf("invalid date %q: want YYYY-MM-DD", flagValue)
	}
	return flagValue, nil
}

// rangeFromFlags turns either -days or an explicit -start/-end pair into an
// inclusive date range ending yesterday.
func rangeFromFlags(days int, start, end string, now time.Time) (string, string, error) {
	if start != "" || end != "" {
		if start == "" || end == "" {
			return "", "", fmt.Errorf("-start and -end must be given together")
		}
		for _, d := range []string{start, end} {
			if _, err := time.Parse(dateLayout, d); err != nil {
				return "", "", fmt.Errorf("invalid date %q: want YYYY-MM-DD", d)
			}
		}
		if start > end {
			return "", "", fmt.Errorf("start %s is after end %s", start, end)
		}
		return start, end, nil
	}
	if days <= 0 {
		days = 7
	}
	endDay := now.AddDate(0, 0, -1)
	startDay := endDay.AddDate(0, 0, -(days - 1))
	return startDay.Format(dateLayout), endDay.Format(dateLayout), nil
}
