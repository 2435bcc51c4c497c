package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"portfoliocms/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const maxMessageLen = 8000

type contactService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	to       string
}

// NewContactService creates the service that forwards contact page messages
// to the site owner's inbox.
func NewContactService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, to string) domain.ContactService {
	return &contactService{
		mailer:   mailer,
		renderer: renderer,
		to:       to,
	}
}

func (s *contactService) Submit(ctx context.Context, msg domain.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(strings.ToLower(msg.Email))
	msg.Message = strings.TrimSpace(msg.Message)

	if msg.Name == "" || msg.Message == "" {
		return domain.ErrInvalidInput
	}
	if !emailRegexp.MatchString(msg.Email) {
		return domain.ErrInvalidInput
	}
	if len(msg.Message) > maxMessageLen {
		return domain.ErrInvalidInput
	}
	if s.to == "" {
		return fmt.Errorf("contact email not configured")
	}

	subject, html, text, err := s.renderer.Render("contact", msg)
	if err != nil {
		return fmt.Errorf("render contact email: %w", err)
	}
	if err := s.mailer.Send(s.to, subject, html, text); err != nil {
		return fmt.Errorf("send contact email: %w", err)
	}
	return nil
}
