package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventscheduling/internal/domain"
)

const activityColumns = `id, event_id, title, description, presenter_id, room, date, start_time, end_time, status, created_at, updated_at`

type activityRepository struct {
	DB *sql.DB
}

func NewActivityRepository(db *sql.DB) domain.ActivityRepository {
	return &activityRepository{
		DB: db,
	}
}

func scanActivity(row rowScanner) (*domain.Activity, error) {
	a := &domain.Activity{}
	var presenter sql.NullString
	err := row.Scan(&a.ID, &a.EventID, &a.Title, &a.Description, &presenter, &a.Room, &a.Date,
		&a.StartTime, &a.EndTime, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if presenter.Valid {
		a.PresenterID = &presenter.String
	}
	return a, nil
}

// nullable turns an empty optional id into SQL NULL.
func nullable(id *string) any {
	if id == nil || *id == "" {
		return nil
	}
	return *id
}

func (r *activityRepository) Create(ctx context.Context, a *domain.Activity) error {
	query := `
		INSERT INTO activities (event_id, title, description, presenter_id, room, date, start_time, end_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err := executor(ctx, r.DB).QueryRowContext(ctx, query,
		a.EventID, a.Title, a.Description, nullable(a.PresenterID), a.Room, a.Date,
		a.StartTime, a.EndTime, a.Status, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		if pqCode(err) == codeForeignKeyViolation {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *activityRepository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = $1`
	a, err := scanActivity(executor(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *activityRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Activity, error) {
	query := `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE event_id = $1
		ORDER BY date, start_time
	`
	return r.list(ctx, query, eventID)
}

// ListByRoomAndDate returns the scheduled activities occupying room on date. Run inside a
// serializable transaction, the read also guards the slot against concurrent inserts.
func (r *activityRepository) ListByRoomAndDate(ctx context.Context, eventID, room string, date time.Time) ([]*domain.Activity, error) {
	query := `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE event_id = $1 AND room = $2 AND date = $3 AND status <> 'cancelled'
		ORDER BY start_time
	`
	return r.list(ctx, query, eventID, room, domain.DateOnly(date))
}

func (r *activityRepository) ListByPresenterAndDate(ctx context.Context, presenterID string, date time.Time) ([]*domain.Activity, error) {
	query := `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE presenter_id = $1 AND date = $2 AND status <> 'cancelled'
		ORDER BY start_time
	`
	return r.list(ctx, query, presenterID, domain.DateOnly(date))
}

func (r *activityRepository) ListByPresenterID(ctx context.Context, presenterID string) ([]*domain.Activity, error) {
	query := `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE presenter_id = $1
		ORDER BY date, start_time
	`
	return r.list(ctx, query, presenterID)
}

func (r *activityRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Activity, error) {
	rows, err := executor(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	activities := make([]*domain.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (r *activityRepository) UpdateFields(ctx context.Context, id string, p domain.ActivityPatch) (*domain.Activity, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	add := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if p.Title != nil {
		add("title", *p.Title)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.PresenterID != nil {
		add("presenter_id", nullable(p.PresenterID))
	}
	if p.Room != nil {
		add("room", *p.Room)
	}
	if p.Date != nil {
		add("date", domain.DateOnly(*p.Date))
	}
	if p.StartTime != nil {
		add("start_time", *p.StartTime)
	}
	if p.EndTime != nil {
		add("end_time", *p.EndTime)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE activities SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, activityColumns)
	a, err := scanActivity(executor(ctx, r.DB).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *activityRepository) UpdateStatus(ctx context.Context, id string, status domain.ActivityStatus) error {
	query := `UPDATE activities SET status = $1, updated_at = NOW() WHERE id = $2`
	result, err := executor(ctx, r.DB).ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
