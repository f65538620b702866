package postgres

import (
	"context"
	"database/sql"

	"eventscheduling/internal/domain"
)

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) domain.NotificationRepository {
	return &notificationRepository{DB: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (user_id, category, body, sent, sent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var sentAt any
	if n.SentAt != nil {
		sentAt = *n.SentAt
	}
	return executor(ctx, r.DB).QueryRowContext(ctx, query,
		n.RecipientID, n.Category, n.Body, n.Sent, sentAt, n.CreatedAt,
	).Scan(&n.ID)
}
