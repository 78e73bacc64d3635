package tempo

import (
	"fmt"
	"time"
)

// DailyBriefing mirrors /api/v1/briefing. Every score and classification in
// it is computed server-side and carried through unchanged.
type DailyBriefing struct {
	Date          string
	Headline      string
	Summary       string
	Mood          string
	CapacityScore *float64
	Energy        *EnergyBudget
	Meetings      *MeetingMetrics
	Insights      []Insight
	GeneratedAt   string
	Metadata      Value
}

// UnmarshalJSON decodes the briefing tolerantly; only a non-object payload
// fails the decode.
func (b *DailyBriefing) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data)
	if err != nil {
		return fmt.Errorf("briefing: %w", err)
	}
	*b = DailyBriefing{
		Date:          obj.str("date"),
		Headline:      obj.str("headline"),
		Summary:       obj.str("summary"),
		Mood:          obj.str("mood"),
		CapacityScore: obj.num("capacity_score"),
		GeneratedAt:   obj.str("generated_at"),
	}
	var energy EnergyBudget
	if obj.into("energy_budget", &energy) {
		b.Energy = &energy
	}
	var meetings MeetingMetrics
	if obj.into("meeting_metrics", &meetings) {
		b.Meetings = &meetings
	}
	obj.into("insights", &b.Insights)
	if len(b.Insights) == 0 {
		b.Insights = nil
	}
	obj.into("metadata", &b.Metadata)
	return nil
}

// ParsedDate returns the briefing date, zero when absent or malformed.
func (b DailyBriefing) ParsedDate() time.Time {
	t, _ := ParseDate(b.Date)
	return t
}

// ParsedGeneratedAt returns the server generation timestamp when parseable.
func (b DailyBriefing) ParsedGeneratedAt() time.Time {
	return optionalTime(b.GeneratedAt)
}

// EnergyBudget is the server's energy forecast for the day, opaque to the
// client beyond display.
type EnergyBudget struct {
	Morning    *float64
	Afternoon  *float64
	Evening    *float64
	Trajectory string
	Note       string
}

func (e *EnergyBudget) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data)
	if err != nil {
		return fmt.Errorf("energy budget: %w", err)
	}
	*e = EnergyBudget{
		Morning:    obj.num("morning"),
		Afternoon:  obj.num("afternoon"),
		Evening:    obj.num("evening"),
		Trajectory: obj.str("trajectory"),
		Note:       obj.str("note"),
	}
	return nil
}

// MeetingMetrics keeps both the current and the legacy field spellings the
// backend has shipped; EffectiveMeetingsCount resolves between them.
type MeetingMetrics struct {
	MeetingsTodayCount *int // current field
	TotalMeetings      *int // legacy field, pre-v2 responses
	BackToBackCount    *int
	MeetingHours       *float64
	LongestFocusBlock  *int
}

func (m *MeetingMetrics) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data)
	if err != nil {
		return fmt.Errorf("meeting metrics: %w", err)
	}
	*m = MeetingMetrics{
		MeetingsTodayCount: obj.intPtr("meetingsTodayCount"),
		TotalMeetings:      obj.intPtr("total_meetings"),
		BackToBackCount:    obj.intPtr("back_to_back_count"),
		MeetingHours:       obj.num("meeting_hours"),
		LongestFocusBlock:  obj.intPtr("longest_focus_block_minutes"),
	}
	return nil
}

// EffectiveMeetingsCount prefers the current field over the legacy one and
// is zero when neither was sent.
func (m MeetingMetrics) EffectiveMeetingsCount() int {
	if m.MeetingsTodayCount != nil {
		return *m.MeetingsTodayCount
	}
	if m.TotalMeetings != nil {
		return *m.TotalMeetings
	}
	return 0
}

// Insight is one risk/opportunity card in the briefing.
type Insight struct {
	Kind       string
	Severity   string
	Title      string
	Detail     string
	Confidence Confidence
	Tags       []string
}

func (i *Insight) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data)
	if err != nil {
		return fmt.Errorf("insight: %w", err)
	}
	*i = Insight{
		Kind:     obj.str("kind"),
		Severity: obj.str("severity"),
		Title:    obj.str("title"),
		Detail:   obj.str("detail"),
	}
	obj.into("confidence", &i.Confidence)
	obj.into("tags", &i.Tags)
	if len(i.Tags) == 0 {
		i.Tags = nil
	}
	return nil
}
