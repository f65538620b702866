package domain

import (
	"context"
	"slices"
)

// Role codes recognised by the scheduling core.
const (
	RoleAdmin     = "admin"
	RoleOrganizer = "organizer"
	RolePresenter = "presenter"
	RoleAttendee  = "attendee"
)

// User is an identity known to the store. Authentication happens elsewhere.
// swagger:model User
type User struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// HasRole reports whether the user holds the role code.
func (u *User) HasRole(code string) bool {
	return slices.Contains(u.Roles, code)
}

// PresenterProfile is the public view of a presenter with the activities they run.
// swagger:model PresenterProfile
type PresenterProfile struct {
	ID         string      `json:"id"`
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	Activities []*Activity `json:"activities"`
}

// UserRepository defines the read side of user storage needed by the core.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
}

// TokenVerifier verifies a bearer token and returns the authenticated user id and roles.
type TokenVerifier interface {
	Verify(token string) (userID string, roles []string, err error)
}
