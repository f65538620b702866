// Package memory is an in-process store for development and tests. Transactions serialize on a
// single mutex, which makes every check-then-write inside WithinTx atomic.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"eventscheduling/internal/domain"
)

// Store holds every collection behind one RWMutex.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	events        map[string]*domain.Event
	activities    map[string]*domain.Activity
	enrollments   []*domain.Enrollment
	organizers    map[domain.OrganizerAssignment]struct{}
	organizerList []domain.OrganizerAssignment
	users         map[string]*domain.User
	notifications []*domain.Notification
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		events:     make(map[string]*domain.Event),
		activities: make(map[string]*domain.Activity),
		organizers: make(map[domain.OrganizerAssignment]struct{}),
		users:      make(map[string]*domain.User),
	}
}

func newID() string { return uuid.NewString() }

type txKey struct{}

// WithinTx runs fn while holding the store's transaction lock. Nested calls reuse the lock.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(bool); ok {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}

// PutUser inserts or replaces a user.
func (s *Store) PutUser(u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	cp.Roles = append([]string(nil), u.Roles...)
	s.users[u.ID] = &cp
}

// Notifications returns a copy of the notification log.
func (s *Store) Notifications() []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Notification, len(s.notifications))
	for i, n := range s.notifications {
		out[i] = *n
	}
	return out
}

// Events returns the event repository view.
func (s *Store) Events() domain.EventRepository { return eventRepo{s} }

// Activities returns the activity repository view.
func (s *Store) Activities() domain.ActivityRepository { return activityRepo{s} }

// Enrollments returns the enrollment repository view.
func (s *Store) Enrollments() domain.EnrollmentRepository { return enrollmentRepo{s} }

// Organizers returns the organizer repository view.
func (s *Store) Organizers() domain.OrganizerRepository { return organizerRepo{s} }

// Users returns the user repository view.
func (s *Store) Users() domain.UserRepository { return userRepo{s} }

// NotificationLog returns the notification repository view.
func (s *Store) NotificationLog() domain.NotificationRepository { return notificationRepo{s} }

type eventRepo struct{ s *Store }

func cloneEvent(e *domain.Event) *domain.Event {
	cp := *e
	return &cp
}

func (r eventRepo) Create(_ context.Context, e *domain.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = newID()
	r.s.events[e.ID] = cloneEvent(e)
	return nil
}

func (r eventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneEvent(e), nil
}

func (r eventRepo) List(_ context.Context) ([]*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Event, 0, len(r.s.events))
	for _, e := range r.s.events {
		out = append(out, cloneEvent(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (r eventRepo) ListStartingOn(_ context.Context, date time.Time) ([]*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.Event
	for _, e := range r.s.events {
		if domain.SameDate(e.StartDate, date) {
			out = append(out, cloneEvent(e))
		}
	}
	return out, nil
}

func (r eventRepo) UpdateFields(_ context.Context, id string, p domain.EventPatch) (*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.StartDate != nil {
		e.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		e.EndDate = *p.EndDate
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Capacity != nil {
		e.Capacity = *p.Capacity
	}
	e.UpdatedAt = time.Now()
	return cloneEvent(e), nil
}

func (r eventRepo) UpdateStatus(_ context.Context, id string, status domain.EventStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Status = status
	e.UpdatedAt = time.Now()
	return nil
}

type activityRepo struct{ s *Store }

func cloneActivity(a *domain.Activity) *domain.Activity {
	cp := *a
	if a.PresenterID != nil {
		p := *a.PresenterID
		cp.PresenterID = &p
	}
	return &cp
}

func sortActivities(out []*domain.Activity) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime < out[j].StartTime
	})
}

func (r activityRepo) Create(_ context.Context, a *domain.Activity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[a.EventID]; !ok {
		return domain.ErrNotFound
	}
	a.ID = newID()
	r.s.activities[a.ID] = cloneActivity(a)
	return nil
}

func (r activityRepo) GetByID(_ context.Context, id string) (*domain.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.activities[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneActivity(a), nil
}

func (r activityRepo) filter(keep func(a *domain.Activity) bool) []*domain.Activity {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.Activity
	for _, a := range r.s.activities {
		if keep(a) {
			out = append(out, cloneActivity(a))
		}
	}
	sortActivities(out)
	return out
}

func (r activityRepo) ListByEventID(_ context.Context, eventID string) ([]*domain.Activity, error) {
	return r.filter(func(a *domain.Activity) bool { return a.EventID == eventID }), nil
}

func (r activityRepo) ListByRoomAndDate(_ context.Context, eventID, room string, date time.Time) ([]*domain.Activity, error) {
	return r.filter(func(a *domain.Activity) bool {
		return a.EventID == eventID && a.Room == room && domain.SameDate(a.Date, date) && a.Status != domain.ActivityCancelled
	}), nil
}

func (r activityRepo) ListByPresenterAndDate(_ context.Context, presenterID string, date time.Time) ([]*domain.Activity, error) {
	return r.filter(func(a *domain.Activity) bool {
		return a.Presenter() == presenterID && domain.SameDate(a.Date, date) && a.Status != domain.ActivityCancelled
	}), nil
}

func (r activityRepo) ListByPresenterID(_ context.Context, presenterID string) ([]*domain.Activity, error) {
	return r.filter(func(a *domain.Activity) bool { return a.Presenter() == presenterID }), nil
}

func (r activityRepo) UpdateFields(_ context.Context, id string, p domain.ActivityPatch) (*domain.Activity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.activities[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	next := p.Apply(a)
	next.UpdatedAt = time.Now()
	r.s.activities[id] = next
	return cloneActivity(next), nil
}

func (r activityRepo) UpdateStatus(_ context.Context, id string, status domain.ActivityStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.activities[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	return nil
}

type enrollmentRepo struct{ s *Store }

func (r enrollmentRepo) Create(_ context.Context, e *domain.Enrollment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[e.EventID]; !ok {
		return domain.ErrNotFound
	}
	e.ID = newID()
	cp := *e
	r.s.enrollments = append(r.s.enrollments, &cp)
	return nil
}

func (r enrollmentRepo) ListByEventID(_ context.Context, eventID string) ([]*domain.Enrollment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.Enrollment
	for _, e := range r.s.enrollments {
		if e.EventID == eventID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r enrollmentRepo) ListByUserID(_ context.Context, userID string) ([]*domain.EnrollmentWithEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.EnrollmentWithEvent
	for _, e := range r.s.enrollments {
		if e.UserID != userID {
			continue
		}
		cp := *e
		name := ""
		if ev, ok := r.s.events[e.EventID]; ok {
			name = ev.Name
		}
		out = append(out, &domain.EnrollmentWithEvent{Enrollment: &cp, EventName: name})
	}
	return out, nil
}

type organizerRepo struct{ s *Store }

func (r organizerRepo) Assign(_ context.Context, eventID, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := domain.OrganizerAssignment{EventID: eventID, UserID: userID}
	if _, ok := r.s.organizers[key]; ok {
		return false, nil
	}
	r.s.organizers[key] = struct{}{}
	r.s.organizerList = append(r.s.organizerList, key)
	return true, nil
}

func (r organizerRepo) ListUserIDsByEventID(_ context.Context, eventID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []string
	for _, k := range r.s.organizerList {
		if k.EventID == eventID {
			out = append(out, k.UserID)
		}
	}
	return out, nil
}

type userRepo struct{ s *Store }

func (r userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	cp.Roles = append([]string(nil), u.Roles...)
	return &cp, nil
}

type notificationRepo struct{ s *Store }

func (r notificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n.ID = newID()
	cp := *n
	r.s.notifications = append(r.s.notifications, &cp)
	return nil
}
