package email

import (
	"testing"

	"github.com/stretchr/testify/require"

	"portfoliocms/internal/domain"
)

func TestTemplateRenderer_Contact(t *testing.T) {
	r := NewTemplateRenderer()

	msg := domain.ContactMessage{
		Name:    "Ada",
		Email:   "ada@example.com",
		Message: "Hi there,\nnice site.",
	}
	subject, html, text, err := r.Render("contact", msg)
	require.NoError(t, err)
	require.Equal(t, "Portfolio contact from Ada", subject)
	require.Contains(t, html, "ada@example.com")
	require.Contains(t, html, "Hi there,")
	require.Contains(t, text, "From: Ada <ada@example.com>")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	r := NewTemplateRenderer()
	_, _, _, err := r.Render("nope", nil)
	require.Error(t, err)
}
