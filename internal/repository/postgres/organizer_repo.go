package postgres

import (
	"context"
	"database/sql"

	"eventscheduling/internal/domain"
)

type organizerRepository struct {
	DB *sql.DB
}

func NewOrganizerRepository(db *sql.DB) domain.OrganizerRepository {
	return &organizerRepository{
		DB: db,
	}
}

// Assign inserts the pair unless it already exists. created reports whether a row was written.
func (r *organizerRepository) Assign(ctx context.Context, eventID, userID string) (bool, error) {
	query := `
		INSERT INTO event_organizers (event_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`
	result, err := executor(ctx, r.DB).ExecContext(ctx, query, eventID, userID)
	if err != nil {
		if pqCode(err) == codeForeignKeyViolation {
			return false, domain.ErrNotFound
		}
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *organizerRepository) ListUserIDsByEventID(ctx context.Context, eventID string) ([]string, error) {
	query := `
		SELECT user_id
		FROM event_organizers
		WHERE event_id = $1
		ORDER BY created_at
	`
	rows, err := executor(ctx, r.DB).QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
