package services

import (
	"context"
	"log/slog"
	"time"

	"eventscheduling/internal/domain"
)

type reminderService struct {
	eventRepo      domain.EventRepository
	activityRepo   domain.ActivityRepository
	enrollmentRepo domain.EnrollmentRepository
	announcer      *Announcer
	logger         *slog.Logger
}

// NewReminderService returns a ReminderService for events starting the next day.
func NewReminderService(eventRepo domain.EventRepository, activityRepo domain.ActivityRepository, enrollmentRepo domain.EnrollmentRepository, announcer *Announcer, logger *slog.Logger) domain.ReminderService {
	return &reminderService{
		eventRepo:      eventRepo,
		activityRepo:   activityRepo,
		enrollmentRepo: enrollmentRepo,
		announcer:      announcer,
		logger:         logger,
	}
}

// SendEventReminders notifies the attendees of every non-cancelled event starting the day after
// now. Events are processed one after another; the returned report aggregates all of them.
func (s *reminderService) SendEventReminders(ctx context.Context, now time.Time) (*domain.DispatchReport, error) {
	tomorrow := domain.DateOnly(now).AddDate(0, 0, 1)
	events, err := s.eventRepo.ListStartingOn(ctx, tomorrow)
	if err != nil {
		return nil, domain.WrapStoreError("list events starting tomorrow", err)
	}
	total := &domain.DispatchReport{
		Category:  domain.CategoryEventReminder,
		Succeeded: []string{},
		Failed:    map[string]string{},
	}
	for _, ev := range events {
		if ev.Status == domain.EventCancelled {
			continue
		}
		report, err := s.remind(ctx, ev)
		if err != nil {
			s.logger.ErrorContext(ctx, "event reminder failed", "event_id", ev.ID, "err", err)
			continue
		}
		total.Succeeded = append(total.Succeeded, report.Succeeded...)
		for id, msg := range report.Failed {
			total.Failed[id] = msg
		}
	}
	s.logger.InfoContext(ctx, "event reminders sent", "events", len(events), "succeeded", len(total.Succeeded), "failed", len(total.Failed))
	return total, nil
}

func (s *reminderService) remind(ctx context.Context, ev *domain.Event) (*domain.DispatchReport, error) {
	enrollments, err := s.enrollmentRepo.ListByEventID(ctx, ev.ID)
	if err != nil {
		return nil, err
	}
	audience := domain.NewAudience()
	for _, e := range enrollments {
		audience.Add(e.UserID)
	}
	if audience.Len() == 0 {
		return &domain.DispatchReport{Failed: map[string]string{}}, nil
	}
	activities, err := s.activityRepo.ListByEventID(ctx, ev.ID)
	if err != nil {
		return nil, err
	}
	return s.announcer.DeliverNow(ctx, audience, Notice{
		Category: domain.CategoryEventReminder,
		Template: tmplEventReminder,
		Data: EventReminderData{
			EventName:       ev.Name,
			Location:        ev.Location,
			FirstActivityAt: firstActivityAt(ev, activities),
		},
	})
}
