package services

import (
	"context"
	"fmt"

	"eventscheduling/internal/domain"
)

type audienceResolver struct {
	activityRepo   domain.ActivityRepository
	enrollmentRepo domain.EnrollmentRepository
	organizerRepo  domain.OrganizerRepository
}

// NewAudienceResolver returns an AudienceResolver backed by the given repositories.
func NewAudienceResolver(activityRepo domain.ActivityRepository, enrollmentRepo domain.EnrollmentRepository, organizerRepo domain.OrganizerRepository) domain.AudienceResolver {
	return &audienceResolver{
		activityRepo:   activityRepo,
		enrollmentRepo: enrollmentRepo,
		organizerRepo:  organizerRepo,
	}
}

func (r *audienceResolver) ResolveAudience(ctx context.Context, req domain.AudienceRequest) (domain.Audience, error) {
	switch req.Kind {
	case domain.TransitionEventCancelled, domain.TransitionEventUpdated:
		return r.attendees(ctx, req.EventID)
	case domain.TransitionEventActivated, domain.TransitionEventFinished:
		presenters, err := r.presenters(ctx, req.EventID)
		if err != nil {
			return nil, err
		}
		organizers, err := r.organizers(ctx, req.EventID)
		if err != nil {
			return nil, err
		}
		presenters.Union(organizers)
		return presenters, nil
	case domain.TransitionActivityCancelled, domain.TransitionActivityUpdated:
		audience, err := r.attendees(ctx, req.EventID)
		if err != nil {
			return nil, err
		}
		// The set absorbs a presenter who is also enrolled.
		audience.Add(req.PresenterID)
		return audience, nil
	default:
		return nil, domain.NewValidationError("transition", "unknown transition kind "+string(req.Kind))
	}
}

func (r *audienceResolver) attendees(ctx context.Context, eventID string) (domain.Audience, error) {
	enrollments, err := r.enrollmentRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	audience := domain.NewAudience()
	for _, e := range enrollments {
		audience.Add(e.UserID)
	}
	return audience, nil
}

func (r *audienceResolver) presenters(ctx context.Context, eventID string) (domain.Audience, error) {
	activities, err := r.activityRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	audience := domain.NewAudience()
	for _, a := range activities {
		audience.Add(a.Presenter())
	}
	return audience, nil
}

func (r *audienceResolver) organizers(ctx context.Context, eventID string) (domain.Audience, error) {
	ids, err := r.organizerRepo.ListUserIDsByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list organizers: %w", err)
	}
	return domain.NewAudience(ids...), nil
}
