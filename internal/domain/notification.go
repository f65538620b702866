package domain

import (
	"context"
	"time"
)

// Category names the kind of message sent to a recipient.
type Category string

const (
	CategoryEventCancelled      Category = "event_cancelled"
	CategoryEventActivated      Category = "event_activated"
	CategoryEventFinished       Category = "event_finished"
	CategoryEventUpdated        Category = "event_updated"
	CategoryEventReminder       Category = "event_reminder"
	CategoryActivityCancelled   Category = "activity_cancelled"
	CategoryActivityUpdated     Category = "activity_updated"
	CategoryActivityAssigned    Category = "activity_assigned"
	CategoryOrganizerAssigned   Category = "organizer_assigned"
	CategoryEnrollmentConfirmed Category = "enrollment_confirmed"
)

// Notification is the append-only audit record of one delivery attempt.
type Notification struct {
	ID          string     `json:"id"`
	RecipientID string     `json:"recipient_id"`
	Category    Category   `json:"category"`
	Body        string     `json:"body"`
	Sent        bool       `json:"sent"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NotificationRepository appends to the notification log.
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
}

// Attachment is an optional file delivered with a message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is what a Notifier delivers to a single recipient.
type Message struct {
	Category   Category
	Subject    string
	HTMLBody   string
	TextBody   string
	Attachment *Attachment
}

// IsHTML reports whether the message carries an HTML body.
func (m *Message) IsHTML() bool { return m.HTMLBody != "" }

// Body returns the HTML body when present, otherwise the text body.
func (m *Message) Body() string {
	if m.IsHTML() {
		return m.HTMLBody
	}
	return m.TextBody
}

// Notifier delivers one message to one recipient. It does not retry.
type Notifier interface {
	Send(ctx context.Context, recipientID string, msg *Message) error
}

// RenderFunc builds the message for a given recipient.
type RenderFunc func(recipientID string) (*Message, error)

// DispatchReport records which recipients were reached. Observability only.
type DispatchReport struct {
	Category  Category          `json:"category"`
	Succeeded []string          `json:"succeeded"`
	Failed    map[string]string `json:"failed"`
}

// Attempts is the number of recipients a send was attempted for.
func (r *DispatchReport) Attempts() int { return len(r.Succeeded) + len(r.Failed) }
