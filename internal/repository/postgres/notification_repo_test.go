package postgres

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"eventscheduling/internal/domain"
)

func TestNotificationRepository_Create(t *testing.T) {
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		n    *domain.Notification
		args []driver.Value
	}{
		{
			name: "sent",
			n:    &domain.Notification{RecipientID: "u1", Category: domain.CategoryEventCancelled, Body: "b", Sent: true, SentAt: &now, CreatedAt: now},
			args: []driver.Value{"u1", "event_cancelled", "b", true, now, now},
		},
		{
			name: "failed",
			n:    &domain.Notification{RecipientID: "u1", Category: domain.CategoryEventCancelled, Body: "b", CreatedAt: now},
			args: []driver.Value{"u1", "event_cancelled", "b", false, nil, now},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(`INSERT INTO notifications \(user_id, category, body, sent, sent_at, created_at\)`).
				WithArgs(tt.args...).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("n-1"))

			require.NoError(t, NewNotificationRepository(db).Create(context.Background(), tt.n))
			require.Equal(t, "n-1", tt.n.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
