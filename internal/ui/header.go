package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/tempohq/daybrief/internal/tempo"
)

// renderHeader renders the status bar: logo, date, connection state and the
// last error if any.
func (m Model) renderHeader() string {
	s := m.styles
	sep := "  "

	var parts []string
	parts = append(parts, s.Logo.Render("daybrief"))
	parts = append(parts, s.Text.Render(m.headerDate()))

	switch {
	case m.snapshot.IsOffline():
		parts = append(parts, s.DangerText.Render("● OFFLINE"))
	case m.snapshot.FromCache:
		parts = append(parts, s.WarningText.Render("● CACHED"))
	case m.snapshot.HasData():
		parts = append(parts, s.SuccessText.Render("● LIVE"))
	default:
		parts = append(parts, s.MutedText.Render("● CONNECTING"))
	}

	if m.loading {
		parts = append(parts, m.spin.View()+s.InfoText.Render("refreshing"))
	}

	if ts := m.formatTimestamp(); ts != "" {
		parts = append(parts, s.MutedText.Render(ts))
	}

	// A fetch failure with content on screen degrades silently; the dot
	// above already reads CACHED or OFFLINE. The error text only shows when
	// there is nothing to render instead.
	if m.snapshot.LastError != nil && !m.snapshot.HasData() {
		maxErr := 80
		if m.width > 0 && m.width < 100 {
			maxErr = 40
		}
		parts = append(parts,
			s.DangerText.Render("ERROR")+" "+
				s.MutedText.Render(truncate(m.snapshot.LastError.Error(), maxErr)))
	}

	return s.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// headerDate shows the selected date with its weekday, marking today.
func (m Model) headerDate() string {
	if m.date == nil {
		return ""
	}
	raw := m.date.Get()
	day, ok := tempo.ParseDate(raw)
	if !ok {
		return raw
	}
	label := day.Format("Mon Jan 2")
	if raw == time.Now().Format("2006-01-02") {
		label += " (today)"
	}
	return label
}

// formatTimestamp formats the last update time with relative indicator.
func (m Model) formatTimestamp() string {
	if m.snapshot.LastUpdated.IsZero() {
		return ""
	}

	since := time.Since(m.snapshot.LastUpdated)
	timeStr := m.snapshot.LastUpdated.Format("15:04:05")

	if since < time.Minute {
		timeStr += " (now)"
	} else if since < time.Hour {
		timeStr += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	} else if since < 24*time.Hour {
		timeStr += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}

	return timeStr
}

// renderTabs renders the view selector line.
func (m Model) renderTabs() string {
	s := m.styles

	segments := make([]string, 0, len(viewOrder))
	for i, v := range viewOrder {
		label := fmt.Sprintf("%d %s", i+1, v.Name())
		if v == m.currentView {
			segments = append(segments, s.AccentText.Render(label))
		} else {
			segments = append(segments, s.MutedText.Render(label))
		}
	}

	return s.Footer.Width(m.width).Render(strings.Join(segments, "  "))
}

// renderCommandBar renders the key hints bar.
func (m Model) renderCommandBar() string {
	s := m.styles

	type cmd struct{ key, desc string }
	commands := []cmd{
		{"[/]", "Prev/Next day"},
		{"t", "Today"},
		{"r", "Refresh"},
		{"Tab", "Next view"},
		{"j/k", "Navigate"},
		{"?", "Help"},
		{"q", "Quit"},
	}

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, s.AccentText.Render(c.key)+":"+s.MutedText.Render(c.desc))
	}

	// Theme indicator
	segments = append(segments, s.AccentText.Render("T")+":"+s.FaintText.Render(m.theme.Name))

	return s.Footer.Width(m.width).Render(strings.Join(segments, "  "))
}

// renderEmpty is shown before any data has loaded for the selected date.
func (m Model) renderEmpty() string {
	s := m.styles

	if m.snapshot.LastError != nil {
		return s.Card.Render(
			s.DangerText.Render("Could not reach the Tempo server") + "\n" +
				s.MutedText.Render(truncate(m.snapshot.LastError.Error(), 100)) + "\n\n" +
				s.Text.Render("Press ") + s.AccentText.Render("r") + s.Text.Render(" to retry."))
	}
	if m.loading {
		return s.MutedText.Render("  Loading " + m.dateOrBlank() + "...")
	}
	return s.MutedText.Render("  No data for " + m.dateOrBlank() + " yet. Press r to fetch.")
}

func (m Model) dateOrBlank() string {
	if m.date == nil {
		return ""
	}
	return m.date.Get()
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	s := m.styles

	rows := []struct{ key, desc string }{
		{"1-5", "Jump to view (Briefing, Timeline, Tasks, Health, Week)"},
		{"Tab / Shift+Tab", "Cycle views"},
		{"[ / ]", "Previous / next day"},
		{"t", "Jump to today"},
		{"r", "Refresh the selected day"},
		{"j/k", "Move selection"},
		{"g / G", "First / last row"},
		{"T", "Cycle theme"},
		{"?", "Toggle this help"},
		{"q, Ctrl+C", "Quit"},
	}

	var b strings.Builder
	b.WriteString(s.AccentText.Render("daybrief keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			s.AccentText.Render(fmt.Sprintf("%-16s", r.key)),
			s.Text.Render(r.desc)))
	}
	b.WriteString("\n")
	b.WriteString(s.MutedText.Render("  Press any key to close."))

	return s.Card.Render(b.String())
}
