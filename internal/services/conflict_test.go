package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventscheduling/internal/domain"
)

func window(start, end string) domain.Interval {
	return domain.Interval{Start: domain.MustTimeOfDay(start), End: domain.MustTimeOfDay(end)}
}

// seedActivity inserts a row straight into the store, bypassing the conflict check.
func seedActivity(t *testing.T, h *harness, eventID, room, start, end string, presenter *string, status domain.ActivityStatus) *domain.Activity {
	t.Helper()
	a := domain.NewActivity(eventID, "Seeded", "", presenter, room, testDay,
		domain.MustTimeOfDay(start), domain.MustTimeOfDay(end), time.Now(), time.Now())
	a.Status = status
	require.NoError(t, h.store.Activities().Create(context.Background(), a))
	return a
}

func TestConflictChecker_CheckRoomConflict(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		window    domain.Interval
		room      string
		excludeID func(existing *domain.Activity) string
		wantHit   bool
	}{
		{name: "adjacent after", window: window("11:00", "12:00"), room: "A", wantHit: false},
		{name: "adjacent before", window: window("09:00", "10:00"), room: "A", wantHit: false},
		{name: "partial overlap", window: window("10:30", "11:30"), room: "A", wantHit: true},
		{name: "contained", window: window("10:15", "10:45"), room: "A", wantHit: true},
		{name: "containing", window: window("09:00", "12:00"), room: "A", wantHit: true},
		{name: "identical", window: window("10:00", "11:00"), room: "A", wantHit: true},
		{name: "other room", window: window("10:00", "11:00"), room: "B", wantHit: false},
		{
			name:      "excludes itself",
			window:    window("10:00", "11:00"),
			room:      "A",
			excludeID: func(existing *domain.Activity) string { return existing.ID },
			wantHit:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			ev := h.event(t, "Conf")
			existing := seedActivity(t, h, ev.ID, "A", "10:00", "11:00", nil, domain.ActivityScheduled)
			checker := NewConflictChecker(h.store.Activities())

			exclude := ""
			if tt.excludeID != nil {
				exclude = tt.excludeID(existing)
			}
			got, err := checker.CheckRoomConflict(ctx, ev.ID, tt.room, testDay, tt.window, exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHit, got.HasConflict())
			if tt.wantHit {
				assert.Equal(t, []string{existing.ID}, got.ActivityIDs)
			}
		})
	}
}

func TestConflictChecker_IgnoresCancelledActivities(t *testing.T) {
	h := newHarness(t)
	ev := h.event(t, "Conf")
	seedActivity(t, h, ev.ID, "A", "10:00", "11:00", nil, domain.ActivityCancelled)

	got, err := NewConflictChecker(h.store.Activities()).CheckRoomConflict(context.Background(), ev.ID, "A", testDay, window("10:00", "11:00"), "")
	require.NoError(t, err)
	assert.False(t, got.HasConflict())
}

func TestConflictChecker_PresenterAcrossRoomsAndEvents(t *testing.T) {
	h := newHarness(t)
	first := h.event(t, "First")
	second := h.event(t, "Second")
	busy := seedActivity(t, h, first.ID, "A", "14:00", "15:00", strPtr("p1"), domain.ActivityScheduled)
	seedActivity(t, h, second.ID, "B", "16:00", "17:00", strPtr("p1"), domain.ActivityScheduled)
	checker := NewConflictChecker(h.store.Activities())

	got, err := checker.CheckPresenterConflict(context.Background(), "p1", testDay, window("14:30", "15:30"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{busy.ID}, got.ActivityIDs)

	got, err = checker.CheckPresenterConflict(context.Background(), "p2", testDay, window("14:30", "15:30"), "")
	require.NoError(t, err)
	assert.False(t, got.HasConflict())
}

func TestCheckActivity_ReportsKindAndDistinctIDs(t *testing.T) {
	h := newHarness(t)
	ev := h.event(t, "Conf")
	both := seedActivity(t, h, ev.ID, "A", "10:00", "11:00", strPtr("p1"), domain.ActivityScheduled)
	checker := NewConflictChecker(h.store.Activities())

	candidate := domain.NewActivity(ev.ID, "New", "", strPtr("p1"), "A", testDay,
		domain.MustTimeOfDay("10:30"), domain.MustTimeOfDay("11:30"), time.Now(), time.Now())
	err := checkActivity(context.Background(), checker, candidate, "")
	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, domain.ConflictRoom, conflict.Kind)
	assert.Equal(t, []string{both.ID}, conflict.ActivityIDs)
	assert.ErrorIs(t, err, domain.ErrConflict)

	candidate.Room = "B"
	err = checkActivity(context.Background(), checker, candidate, "")
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, domain.ConflictPresenter, conflict.Kind)

	candidate.PresenterID = nil
	assert.NoError(t, checkActivity(context.Background(), checker, candidate, ""))
}

type failingActivityRepo struct {
	domain.ActivityRepository
}

func (failingActivityRepo) ListByRoomAndDate(context.Context, string, string, time.Time) ([]*domain.Activity, error) {
	return nil, errStoreDown
}

func TestConflictChecker_PropagatesStoreError(t *testing.T) {
	checker := NewConflictChecker(failingActivityRepo{})
	_, err := checker.CheckRoomConflict(context.Background(), "ev", "A", testDay, window("10:00", "11:00"), "")
	assert.ErrorIs(t, err, errStoreDown)
}
