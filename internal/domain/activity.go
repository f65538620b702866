package domain

import (
	"context"
	"time"
)

// Activity is a time-boxed talk or session of an event, held in a room on one date.
// swagger:model Activity
type Activity struct {
	ID          string         `json:"id"`
	EventID     string         `json:"event_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	PresenterID *string        `json:"presenter_id,omitempty"`
	Room        string         `json:"room"`
	Date        time.Time      `json:"date"`
	StartTime   TimeOfDay      `json:"start_time"`
	EndTime     TimeOfDay      `json:"end_time"`
	Status      ActivityStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewActivity returns a scheduled Activity. ID is typically set by the repository on create.
func NewActivity(eventID, title, description string, presenterID *string, room string, date time.Time, start, end TimeOfDay, createdAt, updatedAt time.Time) *Activity {
	return &Activity{
		EventID:     eventID,
		Title:       title,
		Description: description,
		PresenterID: presenterID,
		Room:        room,
		Date:        DateOnly(date),
		StartTime:   start,
		EndTime:     end,
		Status:      ActivityScheduled,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// Interval returns the activity's [start, end) window.
func (a *Activity) Interval() Interval {
	return Interval{Start: a.StartTime, End: a.EndTime}
}

// Presenter returns the presenter id or "" when unset.
func (a *Activity) Presenter() string {
	if a.PresenterID == nil {
		return ""
	}
	return *a.PresenterID
}

// Validate checks required fields and start < end.
func (a *Activity) Validate() error {
	if a.EventID == "" {
		return NewValidationError("event_id", "is required")
	}
	if a.Title == "" {
		return NewValidationError("title", "is required")
	}
	if a.Room == "" {
		return NewValidationError("room", "is required")
	}
	if a.Date.IsZero() {
		return NewValidationError("date", "is required")
	}
	if !a.Interval().Valid() {
		return NewValidationError("end_time", "must be after start_time")
	}
	return nil
}

// ActivityPatch holds the fields to write on an activity. Nil fields are left untouched.
type ActivityPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	PresenterID *string    `json:"presenter_id"`
	Room        *string    `json:"room"`
	Date        *time.Time `json:"date"`
	StartTime   *TimeOfDay `json:"start_time"`
	EndTime     *TimeOfDay `json:"end_time"`
}

// Empty reports whether the patch writes nothing.
func (p ActivityPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.PresenterID == nil && p.Room == nil &&
		p.Date == nil && p.StartTime == nil && p.EndTime == nil
}

// Apply returns a copy of a with the patch applied.
func (p ActivityPatch) Apply(a *Activity) *Activity {
	out := *a
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.PresenterID != nil {
		id := *p.PresenterID
		out.PresenterID = &id
	}
	if p.Room != nil {
		out.Room = *p.Room
	}
	if p.Date != nil {
		out.Date = DateOnly(*p.Date)
	}
	if p.StartTime != nil {
		out.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		out.EndTime = *p.EndTime
	}
	return &out
}

// ActivityRepository defines the interface for activity storage.
type ActivityRepository interface {
	Create(ctx context.Context, activity *Activity) error
	GetByID(ctx context.Context, id string) (*Activity, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Activity, error)
	// ListByRoomAndDate returns non-cancelled activities of the event in room on date.
	ListByRoomAndDate(ctx context.Context, eventID, room string, date time.Time) ([]*Activity, error)
	// ListByPresenterAndDate returns non-cancelled activities of the presenter on date, in any event.
	ListByPresenterAndDate(ctx context.Context, presenterID string, date time.Time) ([]*Activity, error)
	// ListByPresenterID returns every activity of the presenter, cancelled ones included,
	// ordered by date and start time.
	ListByPresenterID(ctx context.Context, presenterID string) ([]*Activity, error)
	UpdateFields(ctx context.Context, id string, patch ActivityPatch) (*Activity, error)
	UpdateStatus(ctx context.Context, id string, status ActivityStatus) error
}
