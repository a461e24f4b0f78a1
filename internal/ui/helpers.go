package ui

import "fmt"

// padRight pads s with spaces to width, truncating if it is longer.
func padRight(s string, width int) string {
	if len(s) >= width {
		return truncate(s, width-1) + " "
	}
	for len(s) < width {
		s += " "
	}
	return s
}

// truncate shortens s to at most width runes, ellipsized.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

// bpm renders an optional heart rate value.
func bpm(v *int) string {
	if v == nil {
		return "--"
	}
	return fmt.Sprintf("%d bpm", *v)
}

// formatMinutes renders a duration in minutes as "1h 23m" or "42m".
func formatMinutes(minutes float64) string {
	total := int(minutes + 0.5)
	if total >= 60 {
		return fmt.Sprintf("%dh %02dm", total/60, total%60)
	}
	return fmt.Sprintf("%dm", total)
}

// formatPace renders a decimal minutes-per-unit pace as "m:ss".
func formatPace(pace float64) string {
	mins := int(pace)
	secs := int((pace-float64(mins))*60 + 0.5)
	if secs == 60 {
		mins++
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}
