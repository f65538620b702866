package services

import "eventscheduling/internal/domain"

// Template names under internal/adapters/email/templates.
const (
	tmplEventCancelled      = "event_cancelled"
	tmplEventStatus         = "event_status"
	tmplEventUpdated        = "event_updated"
	tmplEventReminder       = "event_reminder"
	tmplActivityCancelled   = "activity_cancelled"
	tmplActivityUpdated     = "activity_updated"
	tmplActivityAssigned    = "activity_assigned"
	tmplOrganizerAssigned   = "organizer_assigned"
	tmplEnrollmentConfirmed = "enrollment_confirmed"
)

// EventStatusData feeds event_status and event_cancelled.
type EventStatusData struct {
	EventName string
	Status    string
	Activated bool
}

// EventUpdatedData feeds event_updated.
type EventUpdatedData struct {
	EventName string
	Changes   []domain.FieldChange
}

// ActivityData feeds activity_cancelled and activity_assigned.
type ActivityData struct {
	ActivityTitle string
	EventName     string
	Room          string
	Date          string
	StartTime     string
	EndTime       string
}

// ActivityUpdatedData feeds activity_updated.
type ActivityUpdatedData struct {
	ActivityTitle string
	Changes       []domain.FieldChange
}

// OrganizerAssignedData feeds organizer_assigned.
type OrganizerAssignedData struct {
	EventName string
}

// ScheduleRow is one line of the schedule listing in enrollment_confirmed.
type ScheduleRow struct {
	Title       string
	Description string
	Room        string
	Date        string
	StartTime   string
	EndTime     string
}

// EnrollmentConfirmedData feeds enrollment_confirmed.
type EnrollmentConfirmedData struct {
	EventName       string
	StartDate       string
	FirstActivityAt string
	CredentialToken string
	Schedule        []ScheduleRow
}

// EventReminderData feeds event_reminder.
type EventReminderData struct {
	EventName       string
	Location        string
	FirstActivityAt string
}

func newActivityData(a *domain.Activity, eventName string) ActivityData {
	return ActivityData{
		ActivityTitle: a.Title,
		EventName:     eventName,
		Room:          a.Room,
		Date:          formatDate(a.Date),
		StartTime:     a.StartTime.String(),
		EndTime:       a.EndTime.String(),
	}
}

// scheduleRows lists scheduled activities in date/time order.
func scheduleRows(activities []*domain.Activity) []ScheduleRow {
	rows := make([]ScheduleRow, 0, len(activities))
	for _, a := range activities {
		if a.Status == domain.ActivityCancelled {
			continue
		}
		rows = append(rows, ScheduleRow{
			Title:       a.Title,
			Description: a.Description,
			Room:        a.Room,
			Date:        formatDate(a.Date),
			StartTime:   a.StartTime.String(),
			EndTime:     a.EndTime.String(),
		})
	}
	return rows
}

// firstActivityAt returns the earliest start time of a scheduled activity on the event's first
// day, or "" when there is none.
func firstActivityAt(ev *domain.Event, activities []*domain.Activity) string {
	var first *domain.Activity
	for _, a := range activities {
		if a.Status == domain.ActivityCancelled || !domain.SameDate(a.Date, ev.StartDate) {
			continue
		}
		if first == nil || a.StartTime < first.StartTime {
			first = a
		}
	}
	if first == nil {
		return ""
	}
	return first.StartTime.String()
}
