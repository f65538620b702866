package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventscheduling/internal/domain"
)

type emailNotifier struct {
	userRepo         domain.UserRepository
	notificationRepo domain.NotificationRepository
	mailer           domain.Mailer
	logger           *slog.Logger
	now              func() time.Time
}

// NewEmailNotifier returns a Notifier that emails the recipient and appends every attempt to
// the notification log.
func NewEmailNotifier(userRepo domain.UserRepository, notificationRepo domain.NotificationRepository, mailer domain.Mailer, logger *slog.Logger) domain.Notifier {
	return &emailNotifier{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		mailer:           mailer,
		logger:           logger,
		now:              time.Now,
	}
}

func (n *emailNotifier) Send(ctx context.Context, recipientID string, msg *domain.Message) error {
	user, err := n.userRepo.GetByID(ctx, recipientID)
	if err != nil {
		return fmt.Errorf("get recipient: %w", err)
	}
	subject := msg.Subject
	if subject == "" {
		subject = fmt.Sprintf("Notification: %s", msg.Category)
	}
	sendErr := n.mailer.Send(ctx, domain.OutgoingEmail{
		To:         user.Email,
		Subject:    subject,
		HTML:       msg.HTMLBody,
		Text:       msg.TextBody,
		Attachment: msg.Attachment,
	})

	record := &domain.Notification{
		RecipientID: recipientID,
		Category:    msg.Category,
		Body:        msg.Body(),
		Sent:        sendErr == nil,
		CreatedAt:   n.now(),
	}
	if sendErr == nil {
		sentAt := record.CreatedAt
		record.SentAt = &sentAt
	}
	if err := n.notificationRepo.Create(ctx, record); err != nil {
		// The mail already left; a missing audit row does not turn it into a failure.
		n.logger.WarnContext(ctx, "append notification log failed", "recipient_id", recipientID, "err", err)
	}
	if sendErr != nil {
		return fmt.Errorf("send email: %w", sendErr)
	}
	return nil
}
