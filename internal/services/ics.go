package services

import (
	"fmt"
	"strings"
	"time"

	"eventscheduling/internal/domain"
)

const icsTimestamp = "20060102T150405"

// activityInvite builds an iCalendar attachment for the activity's slot. Times are floating
// local times, as stored.
func activityInvite(a *domain.Activity, eventName string, now time.Time) *domain.Attachment {
	start := a.Date.Add(time.Duration(a.StartTime) * time.Second)
	end := a.Date.Add(time.Duration(a.EndTime) * time.Second)
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//eventscheduling//activities//EN\r\n")
	b.WriteString("METHOD:PUBLISH\r\n")
	b.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(&b, "UID:%s@eventscheduling\r\n", a.ID)
	fmt.Fprintf(&b, "DTSTAMP:%sZ\r\n", now.UTC().Format(icsTimestamp))
	fmt.Fprintf(&b, "DTSTART:%s\r\n", start.Format(icsTimestamp))
	fmt.Fprintf(&b, "DTEND:%s\r\n", end.Format(icsTimestamp))
	fmt.Fprintf(&b, "SUMMARY:%s\r\n", icsEscape(a.Title))
	fmt.Fprintf(&b, "LOCATION:%s\r\n", icsEscape(a.Room))
	fmt.Fprintf(&b, "DESCRIPTION:%s\r\n", icsEscape(eventName))
	b.WriteString("END:VEVENT\r\n")
	b.WriteString("END:VCALENDAR\r\n")
	return &domain.Attachment{
		Filename:    "activity.ics",
		ContentType: "text/calendar; charset=utf-8",
		Content:     []byte(b.String()),
	}
}

var icsReplacer = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)

func icsEscape(s string) string { return icsReplacer.Replace(s) }
