package tempo

// Badge is a presentation tuple derived from an opaque server classification.
// Color names are abstract; the UI layer maps them to theme colors.
type Badge struct {
	Color string
	Icon  string
	Label string
}

// SeverityBadge maps an insight or clash severity to its presentation.
// Total: unrecognized severities get the muted default.
func SeverityBadge(severity string) Badge {
	switch severity {
	case "critical":
		return Badge{Color: "danger", Icon: "▲", Label: "Critical"}
	case "warning":
		return Badge{Color: "warning", Icon: "●", Label: "Warning"}
	case "info":
		return Badge{Color: "info", Icon: "○", Label: "Info"}
	case "positive":
		return Badge{Color: "success", Icon: "✓", Label: "Good"}
	default:
		return Badge{Color: "muted", Icon: "·", Label: "Note"}
	}
}

// MoodBadge maps the briefing mood classification to its presentation.
func MoodBadge(mood string) Badge {
	switch mood {
	case "focus_day":
		return Badge{Color: "accent", Icon: "◆", Label: "Focus day"}
	case "light_day":
		return Badge{Color: "success", Icon: "◇", Label: "Light day"}
	case "heavy_day":
		return Badge{Color: "warning", Icon: "■", Label: "Heavy day"}
	case "recovery_day":
		return Badge{Color: "info", Icon: "□", Label: "Recovery day"}
	default:
		return Badge{Color: "muted", Icon: "·", Label: "Regular day"}
	}
}

// PriorityBadge maps a task priority to its presentation.
func PriorityBadge(priority string) Badge {
	switch priority {
	case "urgent":
		return Badge{Color: "danger", Icon: "!!", Label: "Urgent"}
	case "high":
		return Badge{Color: "warning", Icon: "!", Label: "High"}
	case "medium":
		return Badge{Color: "info", Icon: "-", Label: "Medium"}
	case "low":
		return Badge{Color: "muted", Icon: "·", Label: "Low"}
	default:
		return Badge{Color: "muted", Icon: "·", Label: "None"}
	}
}

// TaskStatusBadge maps a task status to its presentation.
func TaskStatusBadge(status string) Badge {
	switch status {
	case "done", "completed":
		return Badge{Color: "success", Icon: "✓", Label: "Done"}
	case "in_progress":
		return Badge{Color: "accent", Icon: "▸", Label: "In progress"}
	case "snoozed":
		return Badge{Color: "muted", Icon: "z", Label: "Snoozed"}
	case "pending":
		return Badge{Color: "info", Icon: "○", Label: "Pending"}
	default:
		return Badge{Color: "muted", Icon: "○", Label: "Open"}
	}
}

// TrendBadge maps a weekly drift trend to its presentation.
func TrendBadge(trend string) Badge {
	switch trend {
	case "improving":
		return Badge{Color: "success", Icon: "↑", Label: "Improving"}
	case "steady":
		return Badge{Color: "info", Icon: "→", Label: "Steady"}
	case "drifting":
		return Badge{Color: "warning", Icon: "↓", Label: "Drifting"}
	default:
		return Badge{Color: "muted", Icon: "·", Label: "Unknown"}
	}
}

// ConfidenceBadge maps a confidence level to its presentation.
func ConfidenceBadge(level ConfidenceLevel) Badge {
	switch level {
	case ConfidenceHigh:
		return Badge{Color: "success", Icon: "●●●", Label: "High confidence"}
	case ConfidenceMedium:
		return Badge{Color: "info", Icon: "●●○", Label: "Medium confidence"}
	case ConfidenceLow:
		return Badge{Color: "muted", Icon: "●○○", Label: "Low confidence"}
	default:
		return Badge{Color: "muted", Icon: "○○○", Label: "Unrated"}
	}
}

// Badge returns the insight's severity presentation.
func (i Insight) Badge() Badge { return SeverityBadge(i.Severity) }

// Badge returns the briefing's mood presentation.
func (b DailyBriefing) Badge() Badge { return MoodBadge(b.Mood) }

// Badge returns the clash's severity presentation.
func (c ClashInfo) Badge() Badge { return SeverityBadge(c.Severity) }

// Badge returns the review's trend presentation.
func (w WeekReview) Badge() Badge { return TrendBadge(w.Trend) }
