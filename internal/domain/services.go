package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ConflictResult is the outcome of a conflict check. An empty ActivityIDs means no conflict.
type ConflictResult struct {
	ActivityIDs []string
}

// HasConflict reports whether any activity collided.
func (r ConflictResult) HasConflict() bool { return len(r.ActivityIDs) > 0 }

// ConflictChecker detects room and presenter double-bookings. Read-only.
type ConflictChecker interface {
	CheckRoomConflict(ctx context.Context, eventID, room string, date time.Time, window Interval, excludeActivityID string) (ConflictResult, error)
	CheckPresenterConflict(ctx context.Context, presenterID string, date time.Time, window Interval, excludeActivityID string) (ConflictResult, error)
}

// Dispatcher fans a message out to an audience, isolating per-recipient failures.
type Dispatcher interface {
	Dispatch(ctx context.Context, recipients Audience, category Category, render RenderFunc) *DispatchReport
}

// ActivityUpdate is the result of an in-place activity edit.
type ActivityUpdate struct {
	Activity *Activity    `json:"activity"`
	Changes  []FieldChange `json:"changes"`
}

// EventUpdate is the result of an event field edit.
type EventUpdate struct {
	Event   *Event        `json:"event"`
	Changes []FieldChange `json:"changes"`
}

// ScheduleService is the write surface for events, activities and organizers. Every successful
// write returns before its notifications are delivered.
type ScheduleService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	UpdateEvent(ctx context.Context, eventID string, patch EventPatch) (*EventUpdate, error)
	ChangeEventStatus(ctx context.Context, eventID string, status EventStatus) (*EventTransition, error)
	AssignOrganizer(ctx context.Context, eventID, userID string) (created bool, err error)

	ValidateAndCreateActivity(ctx context.Context, activity *Activity) error
	ValidateAndUpdateActivity(ctx context.Context, activityID string, patch ActivityPatch) (*ActivityUpdate, error)
	ChangeActivityStatus(ctx context.Context, activityID string, status ActivityStatus) (*ActivityTransition, error)
	ListActivitiesByEvent(ctx context.Context, eventID string) ([]*Activity, error)

	// GetPresenterProfile returns NotFound when the user is missing or lacks the presenter role.
	GetPresenterProfile(ctx context.Context, userID string) (*PresenterProfile, error)
}

// EnrollmentService registers attendees for events.
type EnrollmentService interface {
	Enroll(ctx context.Context, userID, eventID, enrollmentType string, fee decimal.Decimal) (*Enrollment, error)
	EnrollOnBehalf(ctx context.Context, userID, eventID, enrollmentType string, fee decimal.Decimal) (*Enrollment, error)
	ListMyEnrollments(ctx context.Context, userID string) ([]*EnrollmentWithEvent, error)
}

// ReminderService announces events starting the next day.
type ReminderService interface {
	SendEventReminders(ctx context.Context, now time.Time) (*DispatchReport, error)
}

// Metrics receives counters from the core. Implementations must be safe for concurrent use.
type Metrics interface {
	ObserveDelivery(category Category, delivered bool)
	ObserveConflict(kind ConflictKind)
}
