package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"eventscheduling/internal/domain"
)

func TestUserRepository_GetByID(t *testing.T) {
	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.User
		wantErr error
	}{
		{
			name: "with roles",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM users u\s+LEFT JOIN user_roles ur`).
					WithArgs("user-1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username", "roles"}).
						AddRow("user-1", "a@example.com", "ana", "{attendee,presenter}"))
			},
			want: &domain.User{ID: "user-1", Email: "a@example.com", Username: "ana", Roles: []string{"attendee", "presenter"}},
		},
		{
			name: "no roles",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM users u`).
					WithArgs("user-1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username", "roles"}).
						AddRow("user-1", "a@example.com", "ana", "{}"))
			},
			want: &domain.User{ID: "user-1", Email: "a@example.com", Username: "ana", Roles: []string{}},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM users u`).WillReturnError(sql.ErrNoRows)
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
			got, err := NewUserRepository(db).GetByID(context.Background(), "user-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
