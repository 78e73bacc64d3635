package tempo

import (
	"fmt"
	"time"
)

// WeekReview mirrors /api/v1/week: the server's weekly drift analysis.
type WeekReview struct {
	Start      string
	End        string
	DriftScore *float64
	Trend      string
	Summary    string
	Signals    []DriftSignal
}

func (w *WeekReview) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data)
	if err != nil {
		return fmt.Errorf("week review: %w", err)
	}
	*w = WeekReview{
		Start:      obj.str("start"),
		End:        obj.str("end"),
		DriftScore: obj.num("drift_score"),
		Trend:      obj.str("trend"),
		Summary:    obj.str("summary"),
	}
	obj.into("signals", &w.Signals)
	if len(w.Signals) == 0 {
		w.Signals = nil
	}
	return nil
}

// ParsedStart returns the week start date, zero when malformed.
func (w WeekReview) ParsedStart() time.Time {
	t, _ := ParseDate(w.Start)
	return t
}

// DriftSignal is one contributor to the weekly drift score.
type DriftSignal struct {
	Kind     string
	Severity string
	Label    string
	Delta    *float64
}

func (s *DriftSignal) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data)
	if err != nil {
		return fmt.Errorf("drift signal: %w", err)
	}
	*s = DriftSignal{
		Kind:     obj.str("kind"),
		Severity: obj.str("severity"),
		Label:    obj.str("label"),
		Delta:    obj.num("delta"),
	}
	return nil
}

// ServerStatus mirrors /api/v1/status. This endpoint is consistently cased,
// so plain tags suffice.
type ServerStatus struct {
	Version    string            `json:"version"`
	Uptime     string            `json:"uptime"`
	Healthy    bool              `json:"healthy"`
	Components []ComponentHealth `json:"components"`
}

// ComponentHealth reports one server subsystem's readiness.
type ComponentHealth struct {
	Name   string `json:"name"`
	Ready  bool   `json:"ready"`
	Detail string `json:"detail"`
}
