package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"eventscheduling/internal/domain"
)

type enrollmentService struct {
	tx             domain.TxManager
	eventRepo      domain.EventRepository
	activityRepo   domain.ActivityRepository
	enrollmentRepo domain.EnrollmentRepository
	userRepo       domain.UserRepository
	credentials    domain.CredentialIssuer
	announcer      *Announcer
	contextTimeout time.Duration
	now            func() time.Time
}

// NewEnrollmentService creates an EnrollmentService with the given repositories. tx must cover
// eventRepo and enrollmentRepo so a cancellation cannot slip between the status check and the insert.
func NewEnrollmentService(
	tx domain.TxManager,
	eventRepo domain.EventRepository,
	activityRepo domain.ActivityRepository,
	enrollmentRepo domain.EnrollmentRepository,
	userRepo domain.UserRepository,
	credentials domain.CredentialIssuer,
	announcer *Announcer,
	timeout time.Duration,
) domain.EnrollmentService {
	return &enrollmentService{
		tx:             tx,
		eventRepo:      eventRepo,
		activityRepo:   activityRepo,
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
		credentials:    credentials,
		announcer:      announcer,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

// Enroll registers the authenticated attendee for the event.
func (s *enrollmentService) Enroll(ctx context.Context, userID, eventID, enrollmentType string, fee decimal.Decimal) (*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.enroll(ctx, userID, eventID, enrollmentType, fee)
}

// EnrollOnBehalf registers another user, who must exist and hold the attendee role.
func (s *enrollmentService) EnrollOnBehalf(ctx context.Context, userID, eventID, enrollmentType string, fee decimal.Decimal) (*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	u, err := loadUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if !u.HasRole(domain.RoleAttendee) {
		return nil, domain.NewValidationError("user_id", "only attendees can be enrolled")
	}
	return s.enroll(ctx, userID, eventID, enrollmentType, fee)
}

func (s *enrollmentService) enroll(ctx context.Context, userID, eventID, enrollmentType string, fee decimal.Decimal) (*domain.Enrollment, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.NewValidationError("user_id", "is required")
	}
	if fee.IsNegative() {
		return nil, domain.NewValidationError("fee", "must not be negative")
	}

	var (
		ev         *domain.Event
		enrollment *domain.Enrollment
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		ev, err = loadEvent(ctx, s.eventRepo, eventID)
		if err != nil {
			return err
		}
		if ev.Status == domain.EventCancelled {
			return domain.NewValidationError("event_id", "cannot enroll in a cancelled event")
		}

		token, err := s.credentials.IssueCredential(userID, eventID)
		if err != nil {
			return domain.WrapStoreError("issue credential", err)
		}
		enrollment = domain.NewEnrollment(userID, eventID, enrollmentType, fee, s.now())
		enrollment.CredentialToken = token
		if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
			return domain.WrapStoreError("create enrollment", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	token := enrollment.CredentialToken

	// The confirmation lists the schedule; failing to read it only drops the listing.
	activities, err := s.activityRepo.ListByEventID(ctx, eventID)
	if err != nil {
		activities = nil
	}
	s.announcer.AnnounceTo(ctx, domain.NewAudience(userID), Notice{
		Category: domain.CategoryEnrollmentConfirmed,
		Template: tmplEnrollmentConfirmed,
		Data: EnrollmentConfirmedData{
			EventName:       ev.Name,
			StartDate:       ev.StartDate.Format("02/01/2006"),
			FirstActivityAt: firstActivityAt(ev, activities),
			CredentialToken: token,
			Schedule:        scheduleRows(activities),
		},
	})
	return enrollment, nil
}

func (s *enrollmentService) ListMyEnrollments(ctx context.Context, userID string) ([]*domain.EnrollmentWithEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	out, err := s.enrollmentRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, domain.WrapStoreError("list enrollments", err)
	}
	if out == nil {
		out = []*domain.EnrollmentWithEvent{}
	}
	return out, nil
}
