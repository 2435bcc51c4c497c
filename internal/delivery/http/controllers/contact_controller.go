package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"portfoliocms/internal/delivery/http/helpers"
	"portfoliocms/internal/domain"
)

// ContactController serves the contact page form.
type ContactController struct {
	Logger  *slog.Logger
	Service domain.ContactService
}

func NewContactController(logger *slog.Logger, svc domain.ContactService) *ContactController {
	return &ContactController{
		Logger:  logger,
		Service: svc,
	}
}

// ContactRequest is the request body for POST /contact.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate implements Validator.
func (c ContactRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.Email == "" {
		errs = append(errs, "email is required")
	}
	if c.Message == "" {
		errs = append(errs, "message is required")
	}
	return errs
}

// Submit godoc
// @Summary Submit a contact message
// @Description Forwards a contact page message to the site owner by email. Messages are not persisted.
// @Tags contact
// @Accept json
// @Produce json
// @Param message body ContactRequest true "Contact message"
// @Success 202 {object} helpers.APIResponse "data contains {success: true}"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 502 {object} helpers.APIResponse "error.code: mail_failed"
// @Router /contact [post]
func (c *ContactController) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	msg := domain.ContactMessage{Name: req.Name, Email: req.Email, Message: req.Message}
	if err := c.Service.Submit(r.Context(), msg); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid contact message")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusBadGateway, helpers.ErrCodeMailFailed, "failed to deliver message")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusAccepted, map[string]bool{"success": true})
}
