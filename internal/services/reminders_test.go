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

func TestReminderService_SendEventReminders(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	tomorrow := h.event(t, "Tomorrow")
	h.activity(t, tomorrow.ID, "A", "08:30", "09:30", nil)
	h.enroll(t, "a1", tomorrow.ID)
	h.enroll(t, "a2", tomorrow.ID)
	h.enroll(t, "a2", tomorrow.ID)

	cancelled := h.event(t, "Cancelled")
	h.enroll(t, "a3", cancelled.ID)
	_, err := h.schedule.ChangeEventStatus(ctx, cancelled.ID, domain.EventCancelled)
	require.NoError(t, err)

	later := domain.NewEvent("Later", "", "", testDay.AddDate(0, 0, 5), testDay.AddDate(0, 0, 6), 0, time.Time{}, time.Time{})
	require.NoError(t, h.schedule.CreateEvent(ctx, later))
	h.enroll(t, "a4", later.ID)
	h.settle()

	h.notifier.failFor["a2"] = errors.New("bounced")
	report, err := h.reminders.SendEventReminders(ctx, testDay.AddDate(0, 0, -1).Add(20*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryEventReminder, report.Category)
	assert.Equal(t, []string{"a1"}, report.Succeeded)
	assert.Contains(t, report.Failed, "a2")
	assert.Equal(t, 2, report.Attempts())

	sends := h.notifier.attempts()
	require.Len(t, sends, 2)
	assert.Contains(t, sends[0].msg.TextBody, "FirstActivityAt:08:30")
}

func TestReminderService_NothingTomorrow(t *testing.T) {
	h := newHarness(t)
	h.event(t, "Today")
	report, err := h.reminders.SendEventReminders(context.Background(), testDay)
	require.NoError(t, err)
	assert.Zero(t, report.Attempts())
}
