package domain

import "context"

// ContactMessage is a message submitted through the contact page.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Mailer sends an email. Implementations may use SES or a no-op for development.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders a named email template into subject, HTML, and text bodies.
type EmailTemplateRenderer interface {
	Render(templateName string, data interface{}) (subject, htmlBody, textBody string, err error)
}

// ContactService delivers contact page messages to the site owner.
type ContactService interface {
	Submit(ctx context.Context, msg ContactMessage) error
}
