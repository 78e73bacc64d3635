// Package export serializes fetched calendar data to iCalendar documents.
// It is a pure re-encoding of server data; no schedule logic runs here.
package export

import (
	"errors"
	"fmt"
	"strings"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/tempohq/daybrief/internal/tempo"
)

const prodID = "-//daybrief//tempo export//EN"

// ICS renders the given events as an iCalendar document. Gap entries are
// not events and must be filtered out by the caller (Timeline.Events does).
func ICS(events []tempo.Event) ([]byte, error) {
	if len(events) == 0 {
		return nil, errors.New("no events to export")
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(prodID)

	for _, ev := range events {
		vevent := cal.AddEvent(eventUID(ev))
		vevent.SetDtStampTime(ev.Start)
		if ev.AllDay {
			vevent.SetAllDayStartAt(ev.Start)
			if !ev.End.IsZero() {
				vevent.SetAllDayEndAt(ev.End)
			}
		} else {
			vevent.SetStartAt(ev.Start)
			if !ev.End.IsZero() {
				vevent.SetEndAt(ev.End)
			}
		}
		vevent.SetSummary(ev.Title)
		if loc := locationLine(ev.Location); loc != "" {
			vevent.SetLocation(loc)
		}
		if desc := descriptionLine(ev); desc != "" {
			vevent.SetDescription(desc)
		}
		for _, a := range ev.Attendees {
			if a.Email == "" {
				continue
			}
			if a.Name != "" {
				vevent.AddAttendee(a.Email, ics.WithCN(a.Name))
			} else {
				vevent.AddAttendee(a.Email)
			}
		}
	}

	return []byte(cal.Serialize()), nil
}

func eventUID(ev tempo.Event) string {
	if ev.ID != "" {
		return ev.ID + "@tempo"
	}
	return uuid.NewString() + "@tempo"
}

func locationLine(loc *tempo.Location) string {
	if loc == nil {
		return ""
	}
	parts := make([]string, 0, 2)
	if loc.Name != "" {
		parts = append(parts, loc.Name)
	}
	if loc.Address != "" {
		parts = append(parts, loc.Address)
	}
	return strings.Join(parts, ", ")
}

func descriptionLine(ev tempo.Event) string {
	parts := make([]string, 0, 2)
	if ev.Notes != "" {
		parts = append(parts, ev.Notes)
	}
	if ev.VideoLink != "" {
		parts = append(parts, fmt.Sprintf("Join: %s", ev.VideoLink))
	}
	return strings.Join(parts, "\n")
}
