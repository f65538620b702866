package postgres

import (
	"context"
	"database/sql"

	"eventscheduling/internal/domain"
)

type enrollmentRepository struct {
	DB *sql.DB
}

func NewEnrollmentRepository(db *sql.DB) domain.EnrollmentRepository {
	return &enrollmentRepository{
		DB: db,
	}
}

func (r *enrollmentRepository) Create(ctx context.Context, e *domain.Enrollment) error {
	query := `
		INSERT INTO enrollments (user_id, event_id, enrollment_type, fee, credential_token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := executor(ctx, r.DB).QueryRowContext(ctx, query,
		e.UserID, e.EventID, e.EnrollmentType, e.Fee, e.CredentialToken, e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		if pqCode(err) == codeForeignKeyViolation {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *enrollmentRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Enrollment, error) {
	query := `
		SELECT id, user_id, event_id, enrollment_type, fee, credential_token, created_at
		FROM enrollments
		WHERE event_id = $1
		ORDER BY created_at
	`
	rows, err := executor(ctx, r.DB).QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*domain.Enrollment, 0)
	for rows.Next() {
		e := &domain.Enrollment{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.EventID, &e.EnrollmentType, &e.Fee, &e.CredentialToken, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *enrollmentRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.EnrollmentWithEvent, error) {
	query := `
		SELECT en.id, en.user_id, en.event_id, en.enrollment_type, en.fee, en.credential_token, en.created_at, ev.name
		FROM enrollments en
		JOIN events ev ON ev.id = en.event_id
		WHERE en.user_id = $1
		ORDER BY en.created_at DESC
	`
	rows, err := executor(ctx, r.DB).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*domain.EnrollmentWithEvent, 0)
	for rows.Next() {
		e := &domain.Enrollment{}
		row := &domain.EnrollmentWithEvent{Enrollment: e}
		if err := rows.Scan(&e.ID, &e.UserID, &e.EventID, &e.EnrollmentType, &e.Fee, &e.CredentialToken, &e.CreatedAt, &row.EventName); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
