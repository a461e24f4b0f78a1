package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jswitzer/pulse/internal/report"
)

// renderMain renders the full UI: header, content, footer.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.currentView {
	case ViewOverview:
		b.WriteString(m.renderOverview())
	case ViewActivities:
		b.WriteString(m.renderActivities())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	logo := m.styles.Logo.Render("PULSE")
	date := m.styles.Text.Render(m.currentDate())

	status := m.styles.SuccessText.Render("● LIVE")
	switch {
	case m.snapshot.IsOffline():
		status = m.styles.DangerText.Render("● OFFLINE")
	case m.snapshot.LastError != nil:
		status = m.styles.WarningText.Render("● RETRYING")
	case m.viewDate != "":
		status = m.styles.InfoText.Render("● HISTORY")
	}

	updated := ""
	if !m.snapshot.LastUpdated.IsZero() {
		updated = m.styles.MutedText.Render("updated " + m.snapshot.LastUpdated.Format("15:04:05"))
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top,
		logo, "  ", date, "  ", status, "  ", updated)
	return m.styles.Header.Width(max(m.width, 0)).Render(line)
}

func (m Model) renderFooter() string {
	view := "overview"
	if m.currentView == ViewActivities {
		view = "activities"
	}
	hint := fmt.Sprintf("[%s]  tab switch view · ←/→ change day · t today · T theme · h help · q quit", view)
	if m.snapshot.LastError != nil {
		hint += "  ·  " + truncate(m.snapshot.LastError.Error(), 60)
	}
	return m.styles.Footer.Width(max(m.width, 0)).Render(hint)
}

// renderOverview lays the metric panels out in two columns.
func (m Model) renderOverview() string {
	health := m.health()
	if health == nil {
		if m.fetching {
			return "  " + m.spinner.View() + m.styles.MutedText.Render(" Fetching "+m.currentDate()+"...")
		}
		if m.dayErr != nil {
			return m.styles.DangerText.Render("  " + truncate(m.dayErr.Error(), 80))
		}
		return "  " + m.spinner.View() + m.styles.MutedText.Render(" Waiting for data...")
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.stepsPanel(health),
		m.heartRatePanel(health),
		m.stressPanel(health),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.sleepPanel(health),
		m.caloriesPanel(health),
		m.hydrationPanel(health),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	if len(health.Warnings) > 0 {
		warn := truncate("! "+strings.Join(health.Warnings, "; "), max(m.width-4, 20))
		body = lipgloss.JoinVertical(lipgloss.Left, body, "  "+m.styles.WarningText.Render(warn))
	}
	return body
}

func (m Model) panel(title string, lines []string) string {
	content := m.styles.PanelTitle.Render(title)
	for _, line := range lines {
		content += "\n" + line
	}
	width := m.width/2 - 4
	if width < 24 {
		width = 24
	}
	return m.styles.Panel.Width(width).Render(content)
}

func (m Model) metricLine(label, value string) string {
	return m.styles.MutedText.Render(padRight(label, 12)) + m.styles.Text.Render(value)
}

func (m Model) stepsPanel(h *report.Snapshot) string {
	if h.Steps == nil {
		return m.panel("Steps", []string{m.styles.FaintText.Render("no data")})
	}
	s := h.Steps

	goal := fmt.Sprintf("%d / %d (%.0f%%)", s.TotalSteps, s.DailyStepGoal, s.GoalPercent())
	if s.GoalReached() {
		goal = m.styles.SuccessText.Render(goal)
	}
	distance := fmt.Sprintf("%.2f km", s.DistanceKm())
	if m.units == "statute" {
		distance = fmt.Sprintf("%.2f mi", s.DistanceMiles())
	}
	lines := []string{
		m.metricLine("Steps", goal),
		m.metricLine("Distance", distance),
		m.metricLine("Floors", fmt.Sprintf("%.0f / %d", s.FloorsAscended, s.FloorsAscendedGoal)),
		m.metricLine("Intensity", fmt.Sprintf("%d min", s.TotalIntensityMinutes())),
	}
	return m.panel("Steps", lines)
}

func (m Model) heartRatePanel(h *report.Snapshot) string {
	if h.HeartRate == nil {
		return m.panel("Heart Rate", []string{m.styles.FaintText.Render("no data")})
	}
	hr := h.HeartRate

	lines := []string{
		m.metricLine("Resting", bpm(hr.RestingHeartRate)),
		m.metricLine("Min / Max", bpm(hr.MinHeartRate)+" / "+bpm(hr.MaxHeartRate)),
		m.metricLine("7-day avg", bpm(hr.LastSevenDaysAvgRestingHeartRate)),
	}
	return m.panel("Heart Rate", lines)
}

func (m Model) stressPanel(h *report.Snapshot) string {
	if h.Stress == nil {
		return m.panel("Stress", []string{m.styles.FaintText.Render("no data")})
	}
	s := h.Stress

	avg := "--"
	if s.Values.AvgStressLevel != nil {
		avg = fmt.Sprintf("%d", *s.Values.AvgStressLevel)
	}
	lines := []string{
		m.metricLine("Average", avg),
		m.metricLine("Rest", fmt.Sprintf("%.1f h", s.RestHours())),
		m.metricLine("High", fmt.Sprintf("%.1f h", s.HighStressHours())),
	}
	if h.DailySummary != nil {
		if net, ok := h.DailySummary.BodyBatteryNetChange(); ok {
			lines = append(lines, m.metricLine("Body batt.", fmt.Sprintf("%+d", net)))
		}
	}
	return m.panel("Stress", lines)
}

func (m Model) sleepPanel(h *report.Snapshot) string {
	if h.Sleep == nil {
		return m.panel("Sleep", []string{m.styles.FaintText.Render("no data")})
	}
	s := h.Sleep.Summary

	score := "--"
	if v, ok := s.OverallScore(); ok {
		score = fmt.Sprintf("%d / 100", v)
	}
	lines := []string{
		m.metricLine("Duration", fmt.Sprintf("%.1f h", s.TotalSleepHours())),
		m.metricLine("Score", score),
		m.metricLine("Deep / REM", fmt.Sprintf("%.1f h / %.1f h", s.DeepSleepHours(), s.RemSleepHours())),
	}
	if eff, ok := s.Efficiency(); ok {
		lines = append(lines, m.metricLine("Efficiency", fmt.Sprintf("%.0f%%", eff)))
	}
	return m.panel("Sleep", lines)
}

func (m Model) caloriesPanel(h *report.Snapshot) string {
	if h.DailySummary == nil {
		return m.panel("Calories", []string{m.styles.FaintText.Render("no data")})
	}
	d := h.DailySummary

	lines := []string{
		m.metricLine("Total", fmt.Sprintf("%.0f kcal", d.TotalKilocalories)),
		m.metricLine("Active", fmt.Sprintf("%.0f kcal", d.ActiveKilocalories)),
		m.metricLine("BMR", fmt.Sprintf("%.0f kcal", d.BMRKilocalories)),
	}
	return m.panel("Calories", lines)
}

func (m Model) hydrationPanel(h *report.Snapshot) string {
	if h.Hydration == nil {
		return m.panel("Hydration", []string{m.styles.FaintText.Render("no data")})
	}
	hy := h.Hydration

	intake := fmt.Sprintf("%.2f L", hy.IntakeLiters())
	if m.units == "statute" {
		intake = fmt.Sprintf("%.0f oz", hy.IntakeOunces())
	}
	goal := fmt.Sprintf("%.2f L (%.0f%%)", hy.GoalLiters(), hy.GoalPercent())
	if hy.GoalReached() {
		goal = m.styles.SuccessText.Render(goal)
	}
	lines := []string{
		m.metricLine("Intake", intake),
		m.metricLine("Goal", goal),
	}
	return m.panel("Hydration", lines)
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.PanelTitle.Render("Pulse — keys"))
	b.WriteString("\n\n")
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			b.WriteString(m.styles.AccentText.Render(padRight(binding.Help().Key, 12)))
			b.WriteString(m.styles.Text.Render(binding.Help().Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.MutedText.Render("Press any key to close"))
	return m.styles.Panel.Render(b.String())
}
