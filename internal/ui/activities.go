package ui

import (
	"fmt"
	"strings"

	"github.com/jswitzer/pulse/internal/connect"
)

// renderActivities renders the recent activity table with one selectable row
// per workout.
func (m Model) renderActivities() string {
	activities := m.snapshot.Activities
	if len(activities) == 0 {
		return m.styles.MutedText.Render("  No recent activities")
	}

	var b strings.Builder
	header := padRight("DATE", 12) + padRight("TYPE", 16) + padRight("NAME", 28) +
		padRight("DURATION", 10) + padRight("DISTANCE", 10) + "CALORIES"
	b.WriteString("  " + m.styles.MutedText.Render(header))
	b.WriteString("\n")

	for i, a := range activities {
		line := m.activityRow(&a)
		if i == m.selectedRow {
			b.WriteString("> " + m.styles.Selected.Render(line))
		} else {
			b.WriteString("  " + m.styles.Text.Render(line))
		}
		b.WriteString("\n")
	}

	if selected := m.selectedActivity(); selected != nil {
		b.WriteString("\n")
		b.WriteString(m.activityDetail(selected))
	}
	return b.String()
}

func (m Model) activityRow(a *connect.Activity) string {
	date := a.StartTimeLocal
	if len(date) >= 10 {
		date = date[:10]
	}
	distance := fmt.Sprintf("%.1f km", a.DistanceKm())
	if m.units == "statute" {
		distance = fmt.Sprintf("%.1f mi", a.DistanceMiles())
	}
	return padRight(date, 12) +
		padRight(a.TypeKey(), 16) +
		padRight(truncate(a.ActivityName, 26), 28) +
		padRight(formatMinutes(a.DurationMinutes()), 10) +
		padRight(distance, 10) +
		fmt.Sprintf("%.0f", a.Calories)
}

// activityDetail renders the expanded card for the selected activity.
func (m Model) activityDetail(a *connect.Activity) string {
	lines := []string{
		m.metricLine("Started", a.StartTimeLocal),
		m.metricLine("Moving", formatMinutes(a.MovingDuration/60)),
	}
	if pace, ok := a.PacePerKm(); ok {
		paceStr := formatPace(pace) + " /km"
		if m.units == "statute" {
			if mi, ok := a.PacePerMile(); ok {
				paceStr = formatPace(mi) + " /mi"
			}
		}
		lines = append(lines, m.metricLine("Pace", paceStr))
	}
	if a.AverageHR != nil {
		hr := fmt.Sprintf("%.0f bpm", *a.AverageHR)
		if a.MaxHR != nil {
			hr += fmt.Sprintf(" (max %.0f)", *a.MaxHR)
		}
		lines = append(lines, m.metricLine("Heart rate", hr))
	}
	if a.ElevationGain != nil {
		lines = append(lines, m.metricLine("Elev. gain", fmt.Sprintf("%.0f m", *a.ElevationGain)))
	}
	if a.AvgPower != nil {
		lines = append(lines, m.metricLine("Avg power", fmt.Sprintf("%.0f W", *a.AvgPower)))
	}
	title := a.ActivityName
	if title == "" {
		title = a.TypeKey()
	}
	return m.panel(title, lines)
}

func (m Model) selectedActivity() *connect.Activity {
	if m.selectedRow < 0 || m.selectedRow >= len(m.snapshot.Activities) {
		return nil
	}
	return &m.snapshot.Activities[m.selectedRow]
}
