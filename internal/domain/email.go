package domain

import "context"

// OutgoingEmail is one rendered message addressed to a single recipient.
type OutgoingEmail struct {
	To         string
	Subject    string
	HTML       string
	Text       string
	Attachment *Attachment
}

// Mailer delivers an OutgoingEmail (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, email OutgoingEmail) error
}

// TemplateRenderer renders message content from a named template with the given data.
type TemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}
