package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"eventscheduling/internal/domain"
	"eventscheduling/internal/repository/memory"
)

var testDay = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type sentMessage struct {
	recipientID string
	msg         domain.Message
}

// recordingNotifier records every send attempt. Recipients in failFor are rejected.
type recordingNotifier struct {
	mu      sync.Mutex
	sent    []sentMessage
	failFor map[string]error
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{failFor: map[string]error{}}
}

func (n *recordingNotifier) Send(_ context.Context, recipientID string, msg *domain.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{recipientID: recipientID, msg: *msg})
	return n.failFor[recipientID]
}

func (n *recordingNotifier) attempts() []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentMessage(nil), n.sent...)
}

func (n *recordingNotifier) recipients(category domain.Category) []string {
	var out []string
	for _, s := range n.attempts() {
		if s.msg.Category == category {
			out = append(out, s.recipientID)
		}
	}
	return out
}

func (n *recordingNotifier) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = nil
}

// stubRenderer names the template in the subject and dumps the data into the text body.
type stubRenderer struct {
	err error
}

func (r stubRenderer) Render(name string, data any) (string, string, string, error) {
	if r.err != nil {
		return "", "", "", r.err
	}
	return "subject:" + name, "", fmt.Sprintf("%+v", data), nil
}

type fakeMetrics struct {
	mu        sync.Mutex
	delivered map[domain.Category]int
	failed    map[domain.Category]int
	conflicts map[domain.ConflictKind]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		delivered: map[domain.Category]int{},
		failed:    map[domain.Category]int{},
		conflicts: map[domain.ConflictKind]int{},
	}
}

func (m *fakeMetrics) ObserveDelivery(category domain.Category, delivered bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if delivered {
		m.delivered[category]++
	} else {
		m.failed[category]++
	}
}

func (m *fakeMetrics) ObserveConflict(kind domain.ConflictKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts[kind]++
}

type fakeCredentials struct {
	err error
}

func (c fakeCredentials) IssueCredential(userID, eventID string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return "cred-" + userID + "-" + eventID, nil
}

var errStoreDown = errors.New("store down")

type harness struct {
	store       *memory.Store
	notifier    *recordingNotifier
	metrics     *fakeMetrics
	announcer   *Announcer
	schedule    domain.ScheduleService
	enrollments domain.EnrollmentService
	reminders   domain.ReminderService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := memory.New()
	notifier := newRecordingNotifier()
	metrics := newFakeMetrics()
	logger := discardLogger()
	resolver := NewAudienceResolver(store.Activities(), store.Enrollments(), store.Organizers())
	dispatcher := NewDispatcher(notifier, metrics, logger, 2)
	announcer := NewAnnouncer(resolver, dispatcher, stubRenderer{}, logger)
	h := &harness{
		store:     store,
		notifier:  notifier,
		metrics:   metrics,
		announcer: announcer,
		schedule: NewScheduleService(store, store.Events(), store.Activities(), store.Organizers(), store.Users(),
			NewConflictChecker(store.Activities()), announcer, metrics, logger, 2*time.Second),
		enrollments: NewEnrollmentService(store, store.Events(), store.Activities(), store.Enrollments(), store.Users(),
			fakeCredentials{}, announcer, 2*time.Second),
		reminders: NewReminderService(store.Events(), store.Activities(), store.Enrollments(), announcer, logger),
	}
	t.Cleanup(announcer.Wait)
	return h
}

func (h *harness) user(id string, roles ...string) {
	h.store.PutUser(&domain.User{ID: id, Email: id + "@example.com", Username: id, Roles: roles})
}

func (h *harness) event(t *testing.T, name string) *domain.Event {
	t.Helper()
	ev := domain.NewEvent(name, "", "Main hall", testDay, testDay.AddDate(0, 0, 2), 100, time.Time{}, time.Time{})
	require.NoError(t, h.schedule.CreateEvent(context.Background(), ev))
	return ev
}

func (h *harness) activity(t *testing.T, eventID, room, start, end string, presenter *string) *domain.Activity {
	t.Helper()
	a := domain.NewActivity(eventID, "Talk "+start, "", presenter, room, testDay,
		domain.MustTimeOfDay(start), domain.MustTimeOfDay(end), time.Time{}, time.Time{})
	require.NoError(t, h.schedule.ValidateAndCreateActivity(context.Background(), a))
	return a
}

// enroll writes the enrollment row directly, skipping the confirmation mail.
func (h *harness) enroll(t *testing.T, userID, eventID string) {
	t.Helper()
	e := domain.NewEnrollment(userID, eventID, "general", decimal.Zero, time.Now())
	require.NoError(t, h.store.Enrollments().Create(context.Background(), e))
}

// settle waits for background deliveries and clears the recorded sends.
func (h *harness) settle() {
	h.announcer.Wait()
	h.notifier.reset()
}

func strPtr(s string) *string { return &s }
