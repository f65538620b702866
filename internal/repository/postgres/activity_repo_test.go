package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"eventscheduling/internal/domain"
)

var activityCols = []string{"id", "event_id", "title", "description", "presenter_id", "room", "date", "start_time", "end_time", "status", "created_at", "updated_at"}

func TestActivityRepository_Create(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	presenter := "user-1"

	tests := []struct {
		name     string
		activity *domain.Activity
		mock     func(mock sqlmock.Sqlmock)
		wantID   string
		wantErr  error
	}{
		{
			name: "with presenter",
			activity: domain.NewActivity("ev-1", "Keynote", "", &presenter, "A", day,
				domain.MustTimeOfDay("09:00"), domain.MustTimeOfDay("10:00"), now, now),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO activities`).
					WithArgs("ev-1", "Keynote", "", "user-1", "A", day, "09:00:00", "10:00:00", "scheduled", now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("act-1"))
			},
			wantID: "act-1",
		},
		{
			name: "without presenter",
			activity: domain.NewActivity("ev-1", "Break", "", nil, "A", day,
				domain.MustTimeOfDay("10:00"), domain.MustTimeOfDay("10:30"), now, now),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO activities`).
					WithArgs("ev-1", "Break", "", nil, "A", day, "10:00:00", "10:30:00", "scheduled", now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("act-2"))
			},
			wantID: "act-2",
		},
		{
			name: "unknown event",
			activity: domain.NewActivity("missing", "Talk", "", nil, "A", day,
				domain.MustTimeOfDay("10:00"), domain.MustTimeOfDay("10:30"), now, now),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO activities`).
					WillReturnError(&pq.Error{Code: "23503"})
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = NewActivityRepository(db).Create(ctx, tt.activity)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.activity.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestActivityRepository_ListByRoomAndDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`WHERE event_id = \$1 AND room = \$2 AND date = \$3 AND status <> 'cancelled'`).
		WithArgs("ev-1", "A", day).
		WillReturnRows(sqlmock.NewRows(activityCols).
			AddRow("act-1", "ev-1", "Keynote", "", "user-1", "A", day, "09:00:00", "10:00:00", "scheduled", day, day).
			AddRow("act-2", "ev-1", "Break", "", nil, "A", day, []byte("10:00:00"), []byte("10:30:00"), "scheduled", day, day))

	got, err := NewActivityRepository(db).ListByRoomAndDate(context.Background(), "ev-1", "A", day.Add(8*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "user-1", got[0].Presenter())
	require.Equal(t, domain.MustTimeOfDay("09:00"), got[0].StartTime)
	require.Nil(t, got[1].PresenterID)
	require.Equal(t, domain.MustTimeOfDay("10:30"), got[1].EndTime)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityRepository_ListByPresenterAndDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`WHERE presenter_id = \$1 AND date = \$2 AND status <> 'cancelled'`).
		WithArgs("user-1", day).
		WillReturnRows(sqlmock.NewRows(activityCols))

	got, err := NewActivityRepository(db).ListByPresenterAndDate(context.Background(), "user-1", day)
	require.NoError(t, err)
	require.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityRepository_ListByPresenterID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`WHERE presenter_id = \$1\s+ORDER BY date, start_time`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(activityCols).
			AddRow("act-1", "ev-1", "Keynote", "", "user-1", "A", day, "09:00:00", "10:00:00", "scheduled", day, day).
			AddRow("act-2", "ev-2", "Panel", "", "user-1", "B", day.AddDate(0, 0, 1), "14:00:00", "15:00:00", "cancelled", day, day))

	got, err := NewActivityRepository(db).ListByPresenterID(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "act-1", got[0].ID)
	require.Equal(t, domain.ActivityCancelled, got[1].Status)
	require.Equal(t, "ev-2", got[1].EventID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityRepository_UpdateFields(t *testing.T) {
	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("room and start time", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		room := "B"
		start := domain.MustTimeOfDay("09:30")
		mock.ExpectQuery(`UPDATE activities SET updated_at = NOW\(\), room = \$1, start_time = \$2\s+WHERE id = \$3`).
			WithArgs("B", "09:30:00", "act-1").
			WillReturnRows(sqlmock.NewRows(activityCols).
				AddRow("act-1", "ev-1", "Keynote", "", nil, "B", day, "09:30:00", "10:00:00", "scheduled", day, day))

		got, err := NewActivityRepository(db).UpdateFields(context.Background(), "act-1", domain.ActivityPatch{Room: &room, StartTime: &start})
		require.NoError(t, err)
		require.Equal(t, "B", got.Room)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		title := "x"
		mock.ExpectQuery(`UPDATE activities SET`).WillReturnError(sql.ErrNoRows)
		_, err = NewActivityRepository(db).UpdateFields(context.Background(), "nope", domain.ActivityPatch{Title: &title})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestActivityRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE activities SET status = \$1`).
		WithArgs("cancelled", "act-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewActivityRepository(db).UpdateStatus(context.Background(), "act-1", domain.ActivityCancelled)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
