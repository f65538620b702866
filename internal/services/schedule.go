package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"eventscheduling/internal/domain"
)

type scheduleService struct {
	tx             domain.TxManager
	eventRepo      domain.EventRepository
	activityRepo   domain.ActivityRepository
	organizerRepo  domain.OrganizerRepository
	userRepo       domain.UserRepository
	checker        domain.ConflictChecker
	announcer      *Announcer
	metrics        domain.Metrics
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewScheduleService wires the scheduling core. metrics may be nil.
func NewScheduleService(
	tx domain.TxManager,
	eventRepo domain.EventRepository,
	activityRepo domain.ActivityRepository,
	organizerRepo domain.OrganizerRepository,
	userRepo domain.UserRepository,
	checker domain.ConflictChecker,
	announcer *Announcer,
	metrics domain.Metrics,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ScheduleService {
	return &scheduleService{
		tx:             tx,
		eventRepo:      eventRepo,
		activityRepo:   activityRepo,
		organizerRepo:  organizerRepo,
		userRepo:       userRepo,
		checker:        checker,
		announcer:      announcer,
		metrics:        metrics,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *scheduleService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.Status == "" {
		event.Status = domain.EventPlanning
	}
	event.StartDate = domain.DateOnly(event.StartDate)
	event.EndDate = domain.DateOnly(event.EndDate)
	if err := event.Validate(); err != nil {
		return err
	}
	now := s.now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return domain.WrapStoreError("create event", err)
	}
	return nil
}

func (s *scheduleService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return loadEvent(ctx, s.eventRepo, eventID)
}

func (s *scheduleService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, domain.WrapStoreError("list events", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *scheduleService) UpdateEvent(ctx context.Context, eventID string, patch domain.EventPatch) (*domain.EventUpdate, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if patch.Empty() {
		return nil, domain.NewValidationError("", "no fields to update")
	}
	var result *domain.EventUpdate
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := loadEvent(ctx, s.eventRepo, eventID)
		if err != nil {
			return err
		}
		changed, changes := diffEvent(current, patch)
		if len(changes) == 0 {
			return domain.NewValidationError("", "no changes in the submitted fields")
		}
		if err := applyEventPatch(current, changed).Validate(); err != nil {
			return err
		}
		updated, err := s.eventRepo.UpdateFields(ctx, eventID, changed)
		if err != nil {
			return domain.WrapStoreError("update event", err)
		}
		result = &domain.EventUpdate{Event: updated, Changes: changes}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if hasKeyEventChange(result.Changes) {
		s.announcer.AnnounceTransition(ctx,
			domain.AudienceRequest{Kind: domain.TransitionEventUpdated, EventID: eventID},
			Notice{
				Category: domain.CategoryEventUpdated,
				Template: tmplEventUpdated,
				Data:     EventUpdatedData{EventName: result.Event.Name, Changes: result.Changes},
			})
	}
	return result, nil
}

// ChangeEventStatus moves the event to status and, when the status actually changed, notifies
// the audience of the transition.
func (s *scheduleService) ChangeEventStatus(ctx context.Context, eventID string, status domain.EventStatus) (*domain.EventTransition, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !status.Valid() {
		return nil, domain.NewValidationError("status", "unknown event status "+string(status))
	}
	var (
		transition *domain.EventTransition
		eventName  string
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ev, err := loadEvent(ctx, s.eventRepo, eventID)
		if err != nil {
			return err
		}
		if err := domain.ValidateEventTransition(ev.Status, status); err != nil {
			return err
		}
		if err := s.eventRepo.UpdateStatus(ctx, eventID, status); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return &domain.NotFoundError{Entity: "event", ID: eventID}
			}
			return domain.WrapStoreError("update event status", err)
		}
		transition = &domain.EventTransition{EventID: eventID, OldStatus: ev.Status, NewStatus: status}
		eventName = ev.Name
		return nil
	})
	if err != nil {
		return nil, err
	}

	if kind, ok := domain.EventStatusTransitionKind(status); ok && transition.Changed() {
		s.announcer.AnnounceTransition(ctx,
			domain.AudienceRequest{Kind: kind, EventID: eventID},
			eventStatusNotice(kind, eventName, status))
	}
	return transition, nil
}

func eventStatusNotice(kind domain.TransitionKind, eventName string, status domain.EventStatus) Notice {
	data := EventStatusData{
		EventName: eventName,
		Status:    string(status),
		Activated: status == domain.EventActive,
	}
	switch kind {
	case domain.TransitionEventCancelled:
		return Notice{Category: domain.CategoryEventCancelled, Template: tmplEventCancelled, Data: data}
	case domain.TransitionEventActivated:
		return Notice{Category: domain.CategoryEventActivated, Template: tmplEventStatus, Data: data}
	default:
		return Notice{Category: domain.CategoryEventFinished, Template: tmplEventStatus, Data: data}
	}
}

// AssignOrganizer records the (event, user) pair. Assigning an existing pair succeeds without
// writing a second row or notifying again.
func (s *scheduleService) AssignOrganizer(ctx context.Context, eventID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(userID) == "" {
		return false, domain.NewValidationError("user_id", "is required")
	}
	ev, err := loadEvent(ctx, s.eventRepo, eventID)
	if err != nil {
		return false, err
	}
	if _, err := loadUser(ctx, s.userRepo, userID); err != nil {
		return false, err
	}
	created, err := s.organizerRepo.Assign(ctx, eventID, userID)
	if err != nil {
		return false, domain.WrapStoreError("assign organizer", err)
	}
	if created {
		s.announcer.AnnounceTo(ctx, domain.NewAudience(userID), Notice{
			Category: domain.CategoryOrganizerAssigned,
			Template: tmplOrganizerAssigned,
			Data:     OrganizerAssignedData{EventName: ev.Name},
		})
	}
	return created, nil
}

// ValidateAndCreateActivity checks the activity for room and presenter collisions and inserts
// it in the same transaction.
func (s *scheduleService) ValidateAndCreateActivity(ctx context.Context, activity *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	activity.Status = domain.ActivityScheduled
	activity.Date = domain.DateOnly(activity.Date)
	if err := activity.Validate(); err != nil {
		return err
	}
	now := s.now()
	activity.CreatedAt = now
	activity.UpdatedAt = now

	var eventName string
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ev, err := loadEvent(ctx, s.eventRepo, activity.EventID)
		if err != nil {
			return err
		}
		eventName = ev.Name
		if err := s.validatePresenter(ctx, activity.Presenter()); err != nil {
			return err
		}
		return s.insertActivityIfNoConflict(ctx, activity)
	})
	if err != nil {
		return err
	}

	if p := activity.Presenter(); p != "" {
		s.announcer.AnnounceTo(ctx, domain.NewAudience(p), Notice{
			Category:   domain.CategoryActivityAssigned,
			Template:   tmplActivityAssigned,
			Data:       newActivityData(activity, eventName),
			Attachment: activityInvite(activity, eventName, now),
		})
	}
	return nil
}

// insertActivityIfNoConflict must run inside WithinTx.
func (s *scheduleService) insertActivityIfNoConflict(ctx context.Context, activity *domain.Activity) error {
	if err := s.checkConflicts(ctx, activity, ""); err != nil {
		return err
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return domain.WrapStoreError("create activity", err)
	}
	return nil
}

func (s *scheduleService) checkConflicts(ctx context.Context, activity *domain.Activity, excludeID string) error {
	err := checkActivity(ctx, s.checker, activity, excludeID)
	if err == nil {
		return nil
	}
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		if s.metrics != nil {
			s.metrics.ObserveConflict(conflict.Kind)
		}
		return conflict
	}
	return domain.WrapStoreError("check conflicts", err)
}

func (s *scheduleService) validatePresenter(ctx context.Context, presenterID string) error {
	if presenterID == "" {
		return nil
	}
	u, err := loadUser(ctx, s.userRepo, presenterID)
	if err != nil {
		return err
	}
	if !u.HasRole(domain.RolePresenter) {
		return domain.NewValidationError("presenter_id", "user is not a presenter")
	}
	return nil
}

// ValidateAndUpdateActivity writes only the fields that differ from the stored row. A change to
// room, date, times or presenter is re-checked for conflicts, ignoring the activity itself.
func (s *scheduleService) ValidateAndUpdateActivity(ctx context.Context, activityID string, patch domain.ActivityPatch) (*domain.ActivityUpdate, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if patch.Empty() {
		return nil, domain.NewValidationError("", "no fields to update")
	}
	var (
		result   *domain.ActivityUpdate
		oldTitle string
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := loadActivity(ctx, s.activityRepo, activityID)
		if err != nil {
			return err
		}
		changed, changes := diffActivity(current, patch)
		if len(changes) == 0 {
			return domain.NewValidationError("", "no changes in the submitted fields")
		}
		next := changed.Apply(current)
		if err := next.Validate(); err != nil {
			return err
		}
		if changed.PresenterID != nil {
			if err := s.validatePresenter(ctx, next.Presenter()); err != nil {
				return err
			}
		}
		if movesSlot(changed) && next.Status == domain.ActivityScheduled {
			if err := s.checkConflicts(ctx, next, activityID); err != nil {
				return err
			}
		}
		updated, err := s.activityRepo.UpdateFields(ctx, activityID, changed)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return &domain.NotFoundError{Entity: "activity", ID: activityID}
			}
			return domain.WrapStoreError("update activity", err)
		}
		oldTitle = current.Title
		result = &domain.ActivityUpdate{Activity: updated, Changes: changes}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.announcer.AnnounceTransition(ctx,
		domain.AudienceRequest{
			Kind:        domain.TransitionActivityUpdated,
			EventID:     result.Activity.EventID,
			PresenterID: result.Activity.Presenter(),
		},
		Notice{
			Category: domain.CategoryActivityUpdated,
			Template: tmplActivityUpdated,
			Data:     ActivityUpdatedData{ActivityTitle: oldTitle, Changes: result.Changes},
		})
	return result, nil
}

// ChangeActivityStatus moves the activity to status. Cancelling notifies the presenter and the
// event's attendees; bringing a cancelled activity back re-checks its slot.
func (s *scheduleService) ChangeActivityStatus(ctx context.Context, activityID string, status domain.ActivityStatus) (*domain.ActivityTransition, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !status.Valid() {
		return nil, domain.NewValidationError("status", "unknown activity status "+string(status))
	}
	var (
		transition *domain.ActivityTransition
		data       ActivityData
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		a, err := loadActivity(ctx, s.activityRepo, activityID)
		if err != nil {
			return err
		}
		if err := domain.ValidateActivityTransition(a.Status, status); err != nil {
			return err
		}
		if a.Status == domain.ActivityCancelled && status == domain.ActivityScheduled {
			if err := s.checkConflicts(ctx, a, activityID); err != nil {
				return err
			}
		}
		ev, err := loadEvent(ctx, s.eventRepo, a.EventID)
		if err != nil {
			return err
		}
		if err := s.activityRepo.UpdateStatus(ctx, activityID, status); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return &domain.NotFoundError{Entity: "activity", ID: activityID}
			}
			return domain.WrapStoreError("update activity status", err)
		}
		transition = &domain.ActivityTransition{
			ActivityID:  activityID,
			EventID:     a.EventID,
			PresenterID: a.PresenterID,
			OldStatus:   a.Status,
			NewStatus:   status,
		}
		data = newActivityData(a, ev.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if status == domain.ActivityCancelled && transition.Changed() {
		presenter := ""
		if transition.PresenterID != nil {
			presenter = *transition.PresenterID
		}
		s.announcer.AnnounceTransition(ctx,
			domain.AudienceRequest{
				Kind:        domain.TransitionActivityCancelled,
				EventID:     transition.EventID,
				PresenterID: presenter,
			},
			Notice{
				Category: domain.CategoryActivityCancelled,
				Template: tmplActivityCancelled,
				Data:     data,
			})
	}
	return transition, nil
}

func (s *scheduleService) GetPresenterProfile(ctx context.Context, userID string) (*domain.PresenterProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	u, err := loadUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if !u.HasRole(domain.RolePresenter) {
		return nil, &domain.NotFoundError{Entity: "presenter", ID: userID}
	}
	activities, err := s.activityRepo.ListByPresenterID(ctx, userID)
	if err != nil {
		return nil, domain.WrapStoreError("list presenter activities", err)
	}
	if activities == nil {
		activities = []*domain.Activity{}
	}
	return &domain.PresenterProfile{ID: u.ID, Username: u.Username, Email: u.Email, Activities: activities}, nil
}

func (s *scheduleService) ListActivitiesByEvent(ctx context.Context, eventID string) ([]*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := loadEvent(ctx, s.eventRepo, eventID); err != nil {
		return nil, err
	}
	activities, err := s.activityRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, domain.WrapStoreError("list activities", err)
	}
	if activities == nil {
		activities = []*domain.Activity{}
	}
	return activities, nil
}
