package services

import (
	"strconv"
	"time"

	"eventscheduling/internal/domain"
)

// Field names reported in FieldChange.
const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldStartDate   = "start_date"
	fieldEndDate     = "end_date"
	fieldLocation    = "location"
	fieldCapacity    = "capacity"
	fieldTitle       = "title"
	fieldPresenter   = "presenter_id"
	fieldRoom        = "room"
	fieldDate        = "date"
	fieldStartTime   = "start_time"
	fieldEndTime     = "end_time"
)

func formatDate(t time.Time) string { return t.Format(time.DateOnly) }

// diffEvent keeps only the patch fields whose value differs from ev.
func diffEvent(ev *domain.Event, patch domain.EventPatch) (domain.EventPatch, []domain.FieldChange) {
	var out domain.EventPatch
	var changes []domain.FieldChange
	if patch.Name != nil && *patch.Name != ev.Name {
		out.Name = patch.Name
		changes = append(changes, domain.FieldChange{Field: fieldName, OldValue: ev.Name, NewValue: *patch.Name})
	}
	if patch.Description != nil && *patch.Description != ev.Description {
		out.Description = patch.Description
		changes = append(changes, domain.FieldChange{Field: fieldDescription, OldValue: ev.Description, NewValue: *patch.Description})
	}
	if patch.StartDate != nil && !domain.SameDate(*patch.StartDate, ev.StartDate) {
		d := domain.DateOnly(*patch.StartDate)
		out.StartDate = &d
		changes = append(changes, domain.FieldChange{Field: fieldStartDate, OldValue: formatDate(ev.StartDate), NewValue: formatDate(d)})
	}
	if patch.EndDate != nil && !domain.SameDate(*patch.EndDate, ev.EndDate) {
		d := domain.DateOnly(*patch.EndDate)
		out.EndDate = &d
		changes = append(changes, domain.FieldChange{Field: fieldEndDate, OldValue: formatDate(ev.EndDate), NewValue: formatDate(d)})
	}
	if patch.Location != nil && *patch.Location != ev.Location {
		out.Location = patch.Location
		changes = append(changes, domain.FieldChange{Field: fieldLocation, OldValue: ev.Location, NewValue: *patch.Location})
	}
	if patch.Capacity != nil && *patch.Capacity != ev.Capacity {
		out.Capacity = patch.Capacity
		changes = append(changes, domain.FieldChange{Field: fieldCapacity, OldValue: strconv.Itoa(ev.Capacity), NewValue: strconv.Itoa(*patch.Capacity)})
	}
	return out, changes
}

// applyEventPatch returns a copy of ev with patch applied.
func applyEventPatch(ev *domain.Event, patch domain.EventPatch) *domain.Event {
	out := *ev
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.Description != nil {
		out.Description = *patch.Description
	}
	if patch.StartDate != nil {
		out.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		out.EndDate = *patch.EndDate
	}
	if patch.Location != nil {
		out.Location = *patch.Location
	}
	if patch.Capacity != nil {
		out.Capacity = *patch.Capacity
	}
	return &out
}

// hasKeyEventChange reports whether attendees must hear about the edit.
func hasKeyEventChange(changes []domain.FieldChange) bool {
	for _, c := range changes {
		switch c.Field {
		case fieldStartDate, fieldEndDate, fieldLocation:
			return true
		}
	}
	return false
}

// diffActivity keeps only the patch fields whose value differs from a.
func diffActivity(a *domain.Activity, patch domain.ActivityPatch) (domain.ActivityPatch, []domain.FieldChange) {
	var out domain.ActivityPatch
	var changes []domain.FieldChange
	if patch.Title != nil && *patch.Title != a.Title {
		out.Title = patch.Title
		changes = append(changes, domain.FieldChange{Field: fieldTitle, OldValue: a.Title, NewValue: *patch.Title})
	}
	if patch.Description != nil && *patch.Description != a.Description {
		out.Description = patch.Description
		changes = append(changes, domain.FieldChange{Field: fieldDescription, OldValue: a.Description, NewValue: *patch.Description})
	}
	if patch.PresenterID != nil && *patch.PresenterID != a.Presenter() {
		out.PresenterID = patch.PresenterID
		changes = append(changes, domain.FieldChange{Field: fieldPresenter, OldValue: a.Presenter(), NewValue: *patch.PresenterID})
	}
	if patch.Room != nil && *patch.Room != a.Room {
		out.Room = patch.Room
		changes = append(changes, domain.FieldChange{Field: fieldRoom, OldValue: a.Room, NewValue: *patch.Room})
	}
	if patch.Date != nil && !domain.SameDate(*patch.Date, a.Date) {
		d := domain.DateOnly(*patch.Date)
		out.Date = &d
		changes = append(changes, domain.FieldChange{Field: fieldDate, OldValue: formatDate(a.Date), NewValue: formatDate(d)})
	}
	if patch.StartTime != nil && *patch.StartTime != a.StartTime {
		out.StartTime = patch.StartTime
		changes = append(changes, domain.FieldChange{Field: fieldStartTime, OldValue: a.StartTime.String(), NewValue: patch.StartTime.String()})
	}
	if patch.EndTime != nil && *patch.EndTime != a.EndTime {
		out.EndTime = patch.EndTime
		changes = append(changes, domain.FieldChange{Field: fieldEndTime, OldValue: a.EndTime.String(), NewValue: patch.EndTime.String()})
	}
	return out, changes
}

// movesSlot reports whether the patch touches anything the conflict checker looks at.
func movesSlot(p domain.ActivityPatch) bool {
	return p.PresenterID != nil || p.Room != nil || p.Date != nil || p.StartTime != nil || p.EndTime != nil
}
