package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"eventscheduling/internal/domain"
)

func newTestTxManager(t *testing.T) (*TxManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTxManager(db, slog.New(slog.NewTextHandler(io.Discard, nil))), mock
}

func TestTxManager_CommitsAndRoutesQueriesThroughTx(t *testing.T) {
	m, mock := newTestTxManager(t)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE events SET status`).
		WithArgs("active", "ev-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewEventRepository(m.DB)
	err := m.WithinTx(context.Background(), func(ctx context.Context) error {
		return repo.UpdateStatus(ctx, "ev-1", domain.EventActive)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	m, mock := newTestTxManager(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	conflict := &domain.ConflictError{Kind: domain.ConflictRoom, ActivityIDs: []string{"a"}}
	err := m.WithinTx(context.Background(), func(ctx context.Context) error { return conflict })
	require.ErrorIs(t, err, domain.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RetriesSerializationFailure(t *testing.T) {
	m, mock := newTestTxManager(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := m.WithinTx(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_GivesUpAfterMaxAttempts(t *testing.T) {
	m, mock := newTestTxManager(t)
	m.MaxAttempts = 2
	for range 2 {
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(&pq.Error{Code: "40001"})
	}

	err := m.WithinTx(context.Background(), func(ctx context.Context) error { return nil })
	require.ErrorIs(t, err, domain.ErrPersistence)
	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_NestedCallsShareTransaction(t *testing.T) {
	m, mock := newTestTxManager(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := m.WithinTx(context.Background(), func(ctx context.Context) error {
		return m.WithinTx(ctx, func(context.Context) error { return nil })
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
