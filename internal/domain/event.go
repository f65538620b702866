package domain

import (
	"context"
	"time"
)

// Event is a scheduled gathering that owns activities, enrollments and organizers.
// swagger:model Event
type Event struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Location    string      `json:"location"`
	Capacity    int         `json:"capacity"`
	Status      EventStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewEvent returns a new Event in the planning state. ID is typically set by the repository on create.
func NewEvent(name, description, location string, startDate, endDate time.Time, capacity int, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:        name,
		Description: description,
		StartDate:   DateOnly(startDate),
		EndDate:     DateOnly(endDate),
		Location:    location,
		Capacity:    capacity,
		Status:      EventPlanning,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// Validate checks the invariants of a new or edited event.
func (e *Event) Validate() error {
	if e.Name == "" {
		return NewValidationError("name", "is required")
	}
	if e.StartDate.IsZero() || e.EndDate.IsZero() {
		return NewValidationError("start_date", "start_date and end_date are required")
	}
	if e.EndDate.Before(e.StartDate) {
		return NewValidationError("end_date", "must not be before start_date")
	}
	if e.Capacity < 0 {
		return NewValidationError("capacity", "must not be negative")
	}
	if !e.Status.Valid() {
		return NewValidationError("status", "unknown event status "+string(e.Status))
	}
	return nil
}

// EventPatch holds the fields to write on an event. Nil fields are left untouched.
type EventPatch struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Location    *string    `json:"location"`
	Capacity    *int       `json:"capacity"`
}

// Empty reports whether the patch writes nothing.
func (p EventPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.StartDate == nil && p.EndDate == nil && p.Location == nil && p.Capacity == nil
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	// ListStartingOn returns events whose start date is the given calendar date.
	ListStartingOn(ctx context.Context, date time.Time) ([]*Event, error)
	UpdateFields(ctx context.Context, id string, patch EventPatch) (*Event, error)
	UpdateStatus(ctx context.Context, id string, status EventStatus) error
}
