package domain

import "context"

// OrganizerAssignment links a user to an event they organize. At most one row per pair.
// swagger:model OrganizerAssignment
type OrganizerAssignment struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
}

// OrganizerRepository defines storage for organizer assignments.
type OrganizerRepository interface {
	// Assign inserts the pair unless it already exists. created is false for an existing pair.
	Assign(ctx context.Context, eventID, userID string) (created bool, err error)
	ListUserIDsByEventID(ctx context.Context, eventID string) ([]string, error)
}
