package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/tempohq/daybrief/internal/tempo"
)

// renderBriefing renders the daily briefing view.
func (m Model) renderBriefing() string {
	s := m.styles
	b := m.snapshot.Briefing
	if b == nil {
		return s.MutedText.Render("  No briefing for this day.")
	}

	var out strings.Builder

	if b.Headline != "" {
		out.WriteString("  " + s.AccentText.Render(b.Headline) + "\n")
	}

	status := []string{s.BadgeText(b.Badge())}
	if b.CapacityScore != nil {
		status = append(status, s.Text.Render("capacity "+fmtScore(*b.CapacityScore)))
	}
	out.WriteString("  " + strings.Join(status, "  ") + "\n\n")

	if b.Summary != "" {
		out.WriteString("  " + s.Text.Render(b.Summary) + "\n\n")
	}

	if e := b.Energy; e != nil {
		row := []string{s.MutedText.Render("Energy")}
		for _, part := range []struct {
			label string
			value *float64
		}{{"morning", e.Morning}, {"afternoon", e.Afternoon}, {"evening", e.Evening}} {
			if part.value != nil {
				row = append(row, s.Text.Render(part.label+" "+fmtScore(*part.value)))
			}
		}
		if e.Trajectory != "" {
			row = append(row, s.InfoText.Render(e.Trajectory))
		}
		out.WriteString("  " + strings.Join(row, "  ") + "\n")
		if e.Note != "" {
			out.WriteString("  " + s.FaintText.Render(e.Note) + "\n")
		}
		out.WriteString("\n")
	}

	if mm := b.Meetings; mm != nil {
		row := []string{s.MutedText.Render("Meetings")}
		row = append(row, s.Text.Render(fmt.Sprintf("%d today", mm.EffectiveMeetingsCount())))
		if mm.BackToBackCount != nil && *mm.BackToBackCount > 0 {
			row = append(row, s.WarningText.Render(fmt.Sprintf("%d back-to-back", *mm.BackToBackCount)))
		}
		if mm.MeetingHours != nil {
			row = append(row, s.Text.Render(fmtFloat(*mm.MeetingHours)+"h booked"))
		}
		if mm.LongestFocusBlock != nil {
			row = append(row, s.SuccessText.Render(fmt.Sprintf("focus block %dm", *mm.LongestFocusBlock)))
		}
		out.WriteString("  " + strings.Join(row, "  ") + "\n\n")
	}

	for _, insight := range b.Insights {
		out.WriteString(m.renderInsight(insight))
	}

	return strings.TrimRight(out.String(), "\n")
}

func (m Model) renderInsight(in tempo.Insight) string {
	s := m.styles

	var out strings.Builder
	title := in.Title
	if title == "" {
		title = in.Kind
	}
	line := "  " + s.BadgeText(in.Badge()) + "  " + s.Text.Render(title)
	if in.Confidence.Known() {
		line += "  " + s.BadgeStyle(tempo.ConfidenceBadge(in.Confidence.Level)).
			Render(string(in.Confidence.Level))
	}
	out.WriteString(line + "\n")
	if in.Detail != "" {
		out.WriteString("     " + s.MutedText.Render(in.Detail) + "\n")
	}
	if len(in.Tags) > 0 {
		out.WriteString("     " + s.FaintText.Render(strings.Join(in.Tags, " · ")) + "\n")
	}
	return out.String()
}

// renderTimeline renders the day's events and gaps with a selectable list
// and a detail block for the highlighted event.
func (m Model) renderTimeline() string {
	s := m.styles
	tl := m.snapshot.Timeline
	if tl == nil || len(tl.Items) == 0 {
		return s.MutedText.Render("  Nothing scheduled.")
	}

	var out strings.Builder
	if tl.Summary != "" {
		out.WriteString("  " + s.MutedText.Render(tl.Summary) + "\n\n")
	}

	for i, item := range tl.Items {
		line := m.timelineLine(item)
		if i == m.selectedRow {
			out.WriteString(s.Selected.Render("> "+line) + "\n")
		} else {
			out.WriteString("  " + line + "\n")
		}
	}

	if m.selectedRow < len(tl.Items) {
		if detail := m.timelineDetail(tl.Items[m.selectedRow]); detail != "" {
			out.WriteString("\n" + detail)
		}
	}

	return strings.TrimRight(out.String(), "\n")
}

func (m Model) timelineLine(item tempo.TimelineItem) string {
	s := m.styles

	if item.IsGap() {
		g := item.Gap
		line := s.SuccessText.Render("free " + humanizeDuration(g.Duration()))
		if !g.Start.IsZero() {
			line = s.FaintText.Render(g.Start.Format("15:04")) + "  " + line
		}
		if g.Suggestion != "" {
			line += "  " + s.MutedText.Render(g.Suggestion)
		}
		return line
	}

	e := item.Event
	parts := []string{
		s.MutedText.Render(fmt.Sprintf("%-11s", eventTimeRange(*e))),
		s.Text.Render(e.Title),
	}
	if e.Calendar != "" {
		parts = append(parts, s.FaintText.Render("["+e.Calendar+"]"))
	}
	if e.VideoLink != "" {
		parts = append(parts, s.InfoText.Render("video"))
	}
	if e.Location != nil && e.Location.Name != "" {
		parts = append(parts, s.FaintText.Render("@ "+e.Location.Name))
	}
	if e.Clash != nil {
		parts = append(parts, s.BadgeText(e.Clash.Badge()))
	}
	return strings.Join(parts, "  ")
}

func (m Model) timelineDetail(item tempo.TimelineItem) string {
	if item.IsGap() {
		return ""
	}
	s := m.styles
	e := item.Event

	var rows []string
	if e.Notes != "" {
		rows = append(rows, s.Text.Render(truncate(e.Notes, 200)))
	}
	if len(e.Attendees) > 0 {
		names := make([]string, 0, len(e.Attendees))
		for _, a := range e.Attendees {
			label := a.Name
			if label == "" {
				label = a.Email
			}
			if a.Organizer {
				label += "*"
			}
			names = append(names, label)
		}
		rows = append(rows, s.MutedText.Render(fmt.Sprintf("%d attending: %s",
			len(e.Attendees), truncate(strings.Join(names, ", "), 120))))
	}
	if e.Recurrence != nil && e.Recurrence.Rule != "" {
		rows = append(rows, s.FaintText.Render("repeats: "+e.Recurrence.Rule))
	}
	if e.Clash != nil && e.Clash.Note != "" {
		rows = append(rows, s.BadgeStyle(e.Clash.Badge()).Render(e.Clash.Note))
	}
	if len(rows) == 0 {
		return ""
	}
	return s.CardFocus.Render(strings.Join(rows, "\n"))
}

// renderTasks renders the task list.
func (m Model) renderTasks() string {
	s := m.styles
	tasks := m.snapshot.Tasks
	if len(tasks) == 0 {
		return s.MutedText.Render("  No tasks due.")
	}

	var out strings.Builder
	for i, task := range tasks {
		line := m.taskLine(task)
		if i == m.selectedRow {
			out.WriteString(s.Selected.Render("> "+line) + "\n")
		} else {
			out.WriteString("  " + line + "\n")
		}
	}
	return strings.TrimRight(out.String(), "\n")
}

func (m Model) taskLine(task tempo.Task) string {
	s := m.styles

	titleStyle := s.Text
	if task.Done() {
		titleStyle = s.FaintText.Strikethrough(true)
	}

	parts := []string{
		s.BadgeText(tempo.TaskStatusBadge(task.Status)),
		titleStyle.Render(task.Title),
	}
	if task.Priority != "" {
		parts = append(parts, s.BadgeText(tempo.PriorityBadge(task.Priority)))
	}
	if due := task.ParsedDue(); !due.IsZero() && !task.Done() {
		style := s.MutedText
		if due.Before(time.Now()) {
			style = s.DangerText
		}
		parts = append(parts, style.Render(humanizeDue(due)))
	}
	if task.Project != "" {
		parts = append(parts, s.FaintText.Render("#"+task.Project))
	}
	return strings.Join(parts, "  ")
}

// renderHealth renders the day's health metrics grouped by category, hiding
// anything the server did not send.
func (m Model) renderHealth() string {
	s := m.styles
	h := m.snapshot.Health
	if h == nil {
		return s.MutedText.Render("  No health data for this day.")
	}

	var out strings.Builder

	if h.Summary != "" {
		out.WriteString("  " + s.Text.Render(h.Summary) + "\n")
	}
	if h.Score != nil {
		out.WriteString("  " + s.MutedText.Render("score") + " " + s.AccentText.Render(fmtScore(*h.Score)) + "\n")
	}
	if h.Summary != "" || h.Score != nil {
		out.WriteString("\n")
	}

	groups := []struct {
		name string
		rows []metricRow
	}{
		{"Activity", []metricRow{
			{"steps", fmtIntPtr(h.Steps, "")},
			{"active energy", fmtFloatPtr(h.ActiveEnergy, " kcal")},
			{"exercise", fmtIntPtr(h.ExerciseMinutes, "m")},
			{"stand hours", fmtIntPtr(h.StandHours, "")},
			{"distance", fmtFloatPtr(h.DistanceKM, " km")},
		}},
		{"Heart", []metricRow{
			{"resting HR", fmtIntPtr(h.RestingHeartRate, " bpm")},
			{"avg HR", fmtIntPtr(h.HeartRateAvg, " bpm")},
			{"HRV", fmtFloatPtr(h.HRV, " ms")},
			{"VO2 max", fmtFloatPtr(h.VO2Max, "")},
		}},
		{"Sleep", []metricRow{
			{"duration", fmtFloatPtr(h.SleepHours, "h")},
			{"efficiency", fmtFloatPtr(h.SleepEfficiency, "%")},
			{"bedtime", h.BedtimeAt},
			{"wake", h.WakeAt},
		}},
		{"Nutrition", []metricRow{
			{"calories", fmtFloatPtr(h.CaloriesIn, " kcal")},
			{"protein", fmtFloatPtr(h.ProteinGrams, "g")},
			{"carbs", fmtFloatPtr(h.CarbsGrams, "g")},
			{"fat", fmtFloatPtr(h.FatGrams, "g")},
			{"fiber", fmtFloatPtr(h.FiberGrams, "g")},
			{"water", fmtFloatPtr(h.WaterLiters, "L")},
		}},
		{"Body", []metricRow{
			{"weight", fmtFloatPtr(h.WeightKG, " kg")},
			{"body fat", fmtFloatPtr(h.BodyFatPercent, "%")},
			{"mindful", fmtIntPtr(h.MindfulMinutes, "m")},
			{"stress", fmtFloatPtr(h.StressLevel, "")},
			{"readiness", h.ReadinessRating},
		}},
	}

	for _, group := range groups {
		var lines []string
		for _, row := range group.rows {
			if row.value == "" {
				continue
			}
			lines = append(lines, fmt.Sprintf("    %s %s",
				s.MutedText.Render(fmt.Sprintf("%-12s", row.label)),
				s.Text.Render(row.value)))
		}
		if len(lines) == 0 {
			continue
		}
		out.WriteString("  " + s.AccentText.Render(group.name) + "\n")
		out.WriteString(strings.Join(lines, "\n") + "\n\n")
	}

	rendered := strings.TrimRight(out.String(), "\n")
	if rendered == "" {
		return s.MutedText.Render("  No health data for this day.")
	}
	return rendered
}

type metricRow struct {
	label string
	value string
}

// renderWeek renders the weekly drift review.
func (m Model) renderWeek() string {
	s := m.styles
	w := m.snapshot.Week
	if w == nil {
		return s.MutedText.Render("  No week review yet.")
	}

	var out strings.Builder

	header := []string{s.BadgeText(w.Badge())}
	if w.DriftScore != nil {
		header = append(header, s.Text.Render("drift "+fmtScore(*w.DriftScore)))
	}
	if w.Start != "" {
		span := w.Start
		if w.End != "" {
			span += " to " + w.End
		}
		header = append(header, s.FaintText.Render(span))
	}
	out.WriteString("  " + strings.Join(header, "  ") + "\n\n")

	if w.Summary != "" {
		out.WriteString("  " + s.Text.Render(w.Summary) + "\n\n")
	}

	for _, sig := range w.Signals {
		line := "  " + s.BadgeText(tempo.SeverityBadge(sig.Severity))
		label := sig.Label
		if label == "" {
			label = sig.Kind
		}
		line += "  " + s.Text.Render(label)
		if sig.Delta != nil {
			style := s.SuccessText
			if *sig.Delta < 0 {
				style = s.DangerText
			}
			line += "  " + style.Render(fmt.Sprintf("%+.1f", *sig.Delta))
		}
		out.WriteString(line + "\n")
	}

	return strings.TrimRight(out.String(), "\n")
}
