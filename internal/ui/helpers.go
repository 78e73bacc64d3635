package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tempohq/daybrief/internal/tempo"
)

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// humanizeDuration formats a duration in compact form.
func humanizeDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "0m"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// eventTimeRange formats an event's slot in the timeline column.
func eventTimeRange(e tempo.Event) string {
	if e.AllDay {
		return "all day"
	}
	if e.Start.IsZero() {
		return ""
	}
	if e.End.IsZero() || !e.End.After(e.Start) {
		return e.Start.Format("15:04")
	}
	return e.Start.Format("15:04") + "-" + e.End.Format("15:04")
}

// humanizeDue formats a task's due timestamp relative to now.
func humanizeDue(due time.Time) string {
	if due.IsZero() {
		return ""
	}
	now := time.Now()
	if due.Before(now) {
		return "overdue " + humanizeDuration(now.Sub(due))
	}
	return "in " + humanizeDuration(due.Sub(now))
}

// fmtFloat renders a float with trailing zeros trimmed.
func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// fmtScore renders a 0..1 fraction as a percentage; fractions above 1 are
// assumed to be already on a percent scale.
func fmtScore(f float64) string {
	if f <= 1 {
		f *= 100
	}
	return fmt.Sprintf("%.0f%%", f)
}

func fmtIntPtr(p *int, unit string) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p) + unit
}

func fmtFloatPtr(p *float64, unit string) string {
	if p == nil {
		return ""
	}
	return fmtFloat(*p) + unit
}
