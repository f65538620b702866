package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventscheduling/internal/domain"
)

func TestDiffEvent(t *testing.T) {
	ev := domain.NewEvent("Conf", "desc", "Hall", testDay, testDay.AddDate(0, 0, 1), 10, time.Time{}, time.Time{})
	sameDay := testDay.Add(9 * time.Hour)
	newCap := 20

	patch, changes := diffEvent(ev, domain.EventPatch{
		Name:      strPtr("Conf"),
		StartDate: &sameDay,
		Capacity:  &newCap,
	})
	require.Len(t, changes, 1)
	assert.Equal(t, domain.FieldChange{Field: "capacity", OldValue: "10", NewValue: "20"}, changes[0])
	assert.Nil(t, patch.Name)
	assert.Nil(t, patch.StartDate)
	assert.False(t, hasKeyEventChange(changes))

	_, changes = diffEvent(ev, domain.EventPatch{Location: strPtr("Annex")})
	assert.True(t, hasKeyEventChange(changes))
}

func TestDiffActivity(t *testing.T) {
	a := domain.NewActivity("ev", "Talk", "", nil, "A", testDay,
		domain.MustTimeOfDay("10:00"), domain.MustTimeOfDay("11:00"), time.Time{}, time.Time{})
	start := domain.MustTimeOfDay("10:00")

	patch, changes := diffActivity(a, domain.ActivityPatch{StartTime: &start, Title: strPtr("Keynote")})
	require.Len(t, changes, 1)
	assert.Equal(t, "title", changes[0].Field)
	assert.False(t, movesSlot(patch))

	patch, changes = diffActivity(a, domain.ActivityPatch{PresenterID: strPtr("p1")})
	require.Len(t, changes, 1)
	assert.Equal(t, "", changes[0].OldValue)
	assert.True(t, movesSlot(patch))
}

func TestActivityInvite(t *testing.T) {
	a := domain.NewActivity("ev", "Go, fast; safe", "", nil, "Room 1", testDay,
		domain.MustTimeOfDay("10:00"), domain.MustTimeOfDay("11:30"), time.Time{}, time.Time{})
	a.ID = "act-1"
	inv := activityInvite(a, "Conf", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	body := string(inv.Content)
	assert.Equal(t, "activity.ics", inv.Filename)
	assert.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR\r\n"))
	assert.Contains(t, body, "DTSTART:20260310T100000\r\n")
	assert.Contains(t, body, "DTEND:20260310T113000\r\n")
	assert.Contains(t, body, `SUMMARY:Go\, fast\; safe`)
	assert.Contains(t, body, "UID:act-1@eventscheduling")
}
