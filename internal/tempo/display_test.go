package tempo

import "testing"

func TestSeverityBadge_TotalWithDefault(t *testing.T) {
	if b := SeverityBadge("critical"); b.Color != "danger" {
		t.Fatalf("critical = %#v", b)
	}
	if b := SeverityBadge("warning"); b.Color != "warning" {
		t.Fatalf("warning = %#v", b)
	}
	if b := SeverityBadge("info"); b.Color != "info" {
		t.Fatalf("info = %#v", b)
	}
	// Unrecognized severities must still produce a usable badge.
	for _, s := range []string{"", "catastrophic", "UNKNOWN"} {
		b := SeverityBadge(s)
		if b.Color == "" || b.Icon == "" || b.Label == "" {
			t.Fatalf("SeverityBadge(%q) = %#v, want complete default", s, b)
		}
	}
}

func TestMoodBadge_TotalWithDefault(t *testing.T) {
	if b := MoodBadge("focus_day"); b.Label != "Focus day" {
		t.Fatalf("focus_day = %#v", b)
	}
	if b := MoodBadge("light_day"); b.Color != "success" {
		t.Fatalf("light_day = %#v", b)
	}
	if b := MoodBadge("someday_mode"); b.Label != "Regular day" {
		t.Fatalf("default = %#v", b)
	}
}

func TestPriorityAndStatusBadges(t *testing.T) {
	if b := PriorityBadge("urgent"); b.Color != "danger" {
		t.Fatalf("urgent = %#v", b)
	}
	if b := PriorityBadge("whatever"); b.Label != "None" {
		t.Fatalf("default priority = %#v", b)
	}
	if b := TaskStatusBadge("done"); b.Color != "success" {
		t.Fatalf("done = %#v", b)
	}
	if b := TaskStatusBadge("completed"); b.Color != "success" {
		t.Fatalf("completed = %#v", b)
	}
	if b := TaskStatusBadge(""); b.Label != "Open" {
		t.Fatalf("default status = %#v", b)
	}
}

func TestTrendAndConfidenceBadges(t *testing.T) {
	if b := TrendBadge("improving"); b.Icon != "↑" {
		t.Fatalf("improving = %#v", b)
	}
	if b := TrendBadge("sideways"); b.Label != "Unknown" {
		t.Fatalf("default trend = %#v", b)
	}
	if b := ConfidenceBadge(ConfidenceHigh); b.Color != "success" {
		t.Fatalf("high = %#v", b)
	}
	if b := ConfidenceBadge(ConfidenceUnknown); b.Label != "Unrated" {
		t.Fatalf("unknown = %#v", b)
	}
}

func TestRecordBadgeMethods(t *testing.T) {
	i := Insight{Severity: "critical"}
	if i.Badge().Color != "danger" {
		t.Fatalf("insight badge = %#v", i.Badge())
	}
	b := DailyBriefing{Mood: "heavy_day"}
	if b.Badge().Label != "Heavy day" {
		t.Fatalf("briefing badge = %#v", b.Badge())
	}
	w := WeekReview{Trend: "drifting"}
	if w.Badge().Color != "warning" {
		t.Fatalf("week badge = %#v", w.Badge())
	}
}
