package tempo

import (
	"encoding/json"
	"strings"
	"time"
	"unicode"
)

// Timestamp layouts the backend is known to emit, tried in order. The two
// naive layouts carry no zone information and are parsed in naiveLocation.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

var naiveTimestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

const dateLayout = "2006-01-02"

var naiveLocation = time.Local

// SetNaiveLocation sets the location used for timestamps that arrive without
// zone information. Called once at startup from configuration; defaults to
// the device's local zone.
func SetNaiveLocation(loc *time.Location) {
	if loc != nil {
		naiveLocation = loc
	}
}

// ParseTimestamp parses a backend timestamp string, trying each known layout
// in order. The second return is false when no layout matched.
func ParseTimestamp(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	for _, layout := range naiveTimestampLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, naiveLocation); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDate parses a YYYY-MM-DD date string in the naive location.
func ParseDate(value string) (time.Time, bool) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(value), naiveLocation)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// rawObject is a decoded JSON object supporting casing-tolerant field lookup.
// Every accessor treats a missing key, a null value, and an unparseable value
// the same way: the field is absent.
type rawObject map[string]json.RawMessage

func parseObject(data []byte) (rawObject, error) {
	var obj rawObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// field looks up key, then its alternate casing. Explicit nulls read as
// absent.
func (o rawObject) field(key string) (json.RawMessage, bool) {
	for _, k := range []string{key, altCase(key)} {
		raw, ok := o[k]
		if !ok {
			continue
		}
		if isNull(raw) {
			return nil, false
		}
		return raw, true
	}
	return nil, false
}

func (o rawObject) has(key string) bool {
	_, ok := o.field(key)
	return ok
}

func (o rawObject) str(key string) string {
	raw, ok := o.field(key)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func (o rawObject) strPtr(key string) *string {
	raw, ok := o.field(key)
	if !ok {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

func (o rawObject) num(key string) *float64 {
	raw, ok := o.field(key)
	if !ok {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	return &f
}

func (o rawObject) intPtr(key string) *int {
	f := o.num(key)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

func (o rawObject) boolPtr(key string) *bool {
	raw, ok := o.field(key)
	if !ok {
		return nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil
	}
	return &b
}

// timeField parses an optional timestamp field; zero time when absent or in
// no known layout.
func (o rawObject) timeField(key string) time.Time {
	t, _ := ParseTimestamp(o.str(key))
	return t
}

// requiredTime parses a timestamp that has no safe absence. When the value
// is missing or matches no known layout the current time is used.
func requiredTime(value string, now func() time.Time) time.Time {
	if t, ok := ParseTimestamp(value); ok {
		return t
	}
	return now()
}

// optionalTime parses a timestamp, zero when absent or unrecognized.
func optionalTime(value string) time.Time {
	t, _ := ParseTimestamp(value)
	return t
}

// into decodes a field into dest, reporting whether the decode succeeded.
func (o rawObject) into(key string, dest any) bool {
	raw, ok := o.field(key)
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// altCase converts snake_case to camelCase and vice versa, so each field can
// be declared once under its documented spelling and still match the other
// convention.
func altCase(key string) string {
	if strings.Contains(key, "_") {
		return snakeToCamel(key)
	}
	return camelToSnake(key)
}

func snakeToCamel(key string) string {
	parts := strings.Split(key, "_")
	var b strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 {
			b.WriteString(part)
			continue
		}
		r := []rune(part)
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(string(r[1:]))
	}
	return b.String()
}

func camelToSnake(key string) string {
	var b strings.Builder
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ConfidenceLevel classifies how certain the server is about an insight.
type ConfidenceLevel string

const (
	ConfidenceUnknown ConfidenceLevel = ""
	ConfidenceLow     ConfidenceLevel = "low"
	ConfidenceMedium  ConfidenceLevel = "medium"
	ConfidenceHigh    ConfidenceLevel = "high"
)

// Confidence tolerates the two shapes the backend sends: a level string
// ("high") or a fraction (0.82). When neither shape matches the value stays
// unknown; decoding never fails.
type Confidence struct {
	Level    ConfidenceLevel
	Fraction *float64
}

// Known reports whether either shape decoded successfully.
func (c Confidence) Known() bool {
	return c.Level != ConfidenceUnknown
}

// UnmarshalJSON tries the string shape first, then the numeric shape.
func (c *Confidence) UnmarshalJSON(data []byte) error {
	*c = Confidence{}
	if isNull(data) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "low":
			c.Level = ConfidenceLow
		case "medium", "med":
			c.Level = ConfidenceMedium
		case "high":
			c.Level = ConfidenceHigh
		}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		c.Fraction = &f
		c.Level = levelForFraction(f)
	}
	return nil
}

// MarshalJSON re-emits the shape that was received, preferring the fraction.
func (c Confidence) MarshalJSON() ([]byte, error) {
	if c.Fraction != nil {
		return json.Marshal(*c.Fraction)
	}
	if c.Level == ConfidenceUnknown {
		return []byte("null"), nil
	}
	return json.Marshal(string(c.Level))
}

func levelForFraction(f float64) ConfidenceLevel {
	switch {
	case f >= 0.75:
		return ConfidenceHigh
	case f >= 0.4:
		return ConfidenceMedium
	case f >= 0:
		return ConfidenceLow
	default:
		return ConfidenceUnknown
	}
}
