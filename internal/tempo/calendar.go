package tempo

import (
	"encoding/json"
	"fmt"
	"time"
)

// Timeline mirrors /api/v1/timeline: the day's schedule as an ordered list
// of events and free gaps.
type Timeline struct {
	Date    string
	Summary string
	Items   []TimelineItem
}

// UnmarshalJSON decodes the timeline, salvaging what it can: items that
// match neither known shape are skipped rather than failing the payload.
func (t *Timeline) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data)
	if err != nil {
		return fmt.Errorf("timeline: %w", err)
	}
	*t = Timeline{
		Date:    obj.str("date"),
		Summary: obj.str("summary"),
	}
	raw, ok := obj.field("items")
	if !ok {
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}
	for _, elem := range elems {
		var item TimelineItem
		if err := item.UnmarshalJSON(elem); err != nil {
			continue
		}
		t.Items = append(t.Items, item)
	}
	return nil
}

// Events returns just the event entries, in timeline order.
func (t *Timeline) Events() []Event {
	if t == nil {
		return nil
	}
	var events []Event
	for _, item := range t.Items {
		if item.Event != nil {
			events = append(events, *item.Event)
		}
	}
	return events
}

// TimelineItem is a discriminated union: exactly one of Event or Gap is set.
// The variant is chosen by inspecting which keys are present; when the key
// set is ambiguous the event shape is tried first, then the gap shape.
type TimelineItem struct {
	Event *Event
	Gap   *Gap
}

// IsGap reports whether this entry is free time rather than an event.
func (i TimelineItem) IsGap() bool { return i.Gap != nil }

// UnmarshalJSON dispatches on the raw key set before attempting a decode.
func (i *TimelineItem) UnmarshalJSON(data []byte) error {
	*i = TimelineItem{}
	obj, err := parseObject(data)
	if err != nil {
		return fmt.Errorf("timeline item: %w", err)
	}
	hasIdentity := obj.has("id") || obj.has("title")
	hasDuration := obj.has("duration_minutes")

	if hasIdentity {
		var ev Event
		if err := ev.UnmarshalJSON(data); err == nil {
			i.Event = &ev
			return nil
		}
	}
	if hasDuration && !hasIdentity {
		var gap Gap
		if err := gap.UnmarshalJSON(data); err == nil {
			i.Gap = &gap
			return nil
		}
	}
	// Ambiguous key set: try each variant in order.
	var ev Event
	if err := ev.UnmarshalJSON(data); err == nil {
		i.Event = &ev
		return nil
	}
	var gap Gap
	if err := gap.UnmarshalJSON(data); err == nil {
		i.Gap = &gap
		return nil
	}
	return fmt.Errorf("timeline item matches neither event nor gap")
}

// Event is one calendar entry. Times are decoded eagerly because the start
// has no safe absence: an unparseable start falls back to the decode time.
type Event struct {
	ID         string
	Title      string
	Start      time.Time
	End        time.Time
	AllDay     bool
	Calendar   string
	Notes      string
	VideoLink  string
	Location   *Location
	Attendees  []Attendee
	Recurrence *Recurrence
	Clash      *ClashInfo
	Metadata   Value
}

// UnmarshalJSON decodes an event. A missing id is the one condition treated
// as a corrupt payload; every other field degrades to its zero value.
func (e *Event) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data)
	if err != nil {
		return fmt.Errorf("event: %w", err)
	}
	id := obj.str("id")
	if id == "" {
		return fmt.Errorf("event missing id")
	}
	start := obj.str("start_time")
	if start == "" {
		start = obj.str("start")
	}
	end := obj.str("end_time")
	if end == "" {
		end = obj.str("end")
	}
	*e = Event{
		ID:        id,
		Title:     obj.str("title"),
		Start:     requiredTime(start, time.Now),
		End:       optionalTime(end),
		Calendar:  obj.str("calendar"),
		Notes:     obj.str("notes"),
		VideoLink: obj.str("video_link"),
		Attendees: decodeAttendees(obj, "attendees"),
	}
	if b := obj.boolPtr("all_day"); b != nil {
		e.AllDay = *b
	}
	if loc := decodeLocation(obj, "location"); loc != nil {
		e.Location = loc
	}
	var rec Recurrence
	if obj.into("recurrence", &rec) {
		e.Recurrence = &rec
	}
	var clash ClashInfo
	if obj.into("clash", &clash) {
		e.Clash = &clash
	}
	var meta Value
	if obj.into("metadata", &meta) {
		e.Metadata = meta
	}
	return nil
}

// Duration returns the event length, zero when the end is unknown.
func (e Event) Duration() time.Duration {
	if e.End.IsZero() || e.End.Before(e.Start) {
		return 0
	}
	return e.End.Sub(e.Start)
}

// Gap is a free block between events.
type Gap struct {
	DurationMinutes int
	Start           time.Time
	Suggestion      string
}

// UnmarshalJSON decodes a gap; a non-positive duration is a corrupt entry.
func (g *Gap) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data)
	if err != nil {
		return fmt.Errorf("gap: %w", err)
	}
	minutes := obj.intPtr("duration_minutes")
	if minutes == nil || *minutes <= 0 {
		return fmt.Errorf("gap missing duration")
	}
	*g = Gap{
		DurationMinutes: *minutes,
		Start:           obj.timeField("start_time"),
		Suggestion:      obj.str("suggestion"),
	}
	return nil
}

// Duration returns the gap length.
func (g Gap) Duration() time.Duration {
	return time.Duration(g.DurationMinutes) * time.Minute
}

// Location is a structured event location. The backend sometimes sends a
// bare string instead; it becomes the name.
type Location struct {
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func decodeLocation(obj rawObject, key string) *Location {
	raw, ok := obj.field(key)
	if !ok {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return nil
		}
		return &Location{Name: s}
	}
	inner, err := parseObject(raw)
	if err != nil {
		return nil
	}
	loc := Location{
		Name:      inner.str("name"),
		Address:   inner.str("address"),
		Latitude:  inner.num("latitude"),
		Longitude: inner.num("longitude"),
	}
	if loc == (Location{}) {
		return nil
	}
	return &loc
}

// Attendee is one meeting participant.
type Attendee struct {
	Email     string
	Name      string
	Response  string
	Organizer bool
}

// decodeAttendees implements the attendee polymorphism policy: structured
// objects first, then bare email strings, then element-by-element salvage.
// Null, absent, and empty lists all normalize to nil.
func decodeAttendees(obj rawObject, key string) []Attendee {
	raw, ok := obj.field(key)
	if !ok {
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}
	var out []Attendee
	for _, elem := range elems {
		a, ok := decodeAttendee(elem)
		if !ok {
			continue
		}
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func decodeAttendee(raw json.RawMessage) (Attendee, bool) {
	var email string
	if err := json.Unmarshal(raw, &email); err == nil {
		if email == "" {
			return Attendee{}, false
		}
		return Attendee{Email: email}, true
	}
	inner, err := parseObject(raw)
	if err != nil {
		return Attendee{}, false
	}
	a := Attendee{
		Email:    inner.str("email"),
		Response: inner.str("response_status"),
	}
	if a.Response == "" {
		a.Response = inner.str("response")
	}
	a.Name = inner.str("name")
	if a.Name == "" {
		a.Name = inner.str("display_name")
	}
	if b := inner.boolPtr("organizer"); b != nil {
		a.Organizer = *b
	}
	if a.Email == "" && a.Name == "" {
		return Attendee{}, false
	}
	return a, true
}

// Recurrence carries the server's recurrence metadata unchanged. The client
// never expands recurrences.
type Recurrence struct {
	Rule     string `json:"rule"`
	Until    string `json:"until"`
	Count    *int   `json:"count"`
	Original string `json:"original_start"`
}

// ClashInfo is the server's meeting-clash verdict for an event.
type ClashInfo struct {
	Severity string   `json:"severity"`
	With     []string `json:"with"`
	Note     string   `json:"note"`
}
