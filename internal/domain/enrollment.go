package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Enrollment is an attendee's registration for an event. Immutable once created.
// swagger:model Enrollment
type Enrollment struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	EventID         string          `json:"event_id"`
	EnrollmentType  string          `json:"enrollment_type"`
	Fee             decimal.Decimal `json:"fee"`
	CredentialToken string          `json:"credential_token"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewEnrollment creates a new Enrollment. ID is typically set by the repository on create.
func NewEnrollment(userID, eventID, enrollmentType string, fee decimal.Decimal, createdAt time.Time) *Enrollment {
	return &Enrollment{
		UserID:         userID,
		EventID:        eventID,
		EnrollmentType: enrollmentType,
		Fee:            fee,
		CreatedAt:      createdAt,
	}
}

// EnrollmentWithEvent bundles an enrollment with the name of its event.
type EnrollmentWithEvent struct {
	Enrollment *Enrollment `json:"enrollment"`
	EventName  string      `json:"event_name"`
}

// EnrollmentRepository defines storage operations for enrollments.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *Enrollment) error
	ListByEventID(ctx context.Context, eventID string) ([]*Enrollment, error)
	ListByUserID(ctx context.Context, userID string) ([]*EnrollmentWithEvent, error)
}

// CredentialIssuer signs the access credential handed to an enrolled attendee.
type CredentialIssuer interface {
	IssueCredential(userID, eventID string) (string, error)
}
