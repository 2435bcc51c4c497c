package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"portfoliocms/internal/delivery/http/helpers"
	"portfoliocms/internal/domain"
)

// ContentController serves the public read path.
type ContentController struct {
	Logger  *slog.Logger
	Service domain.ContentService
}

func NewContentController(logger *slog.Logger, svc domain.ContentService) *ContentController {
	return &ContentController{
		Logger:  logger,
		Service: svc,
	}
}

// ListSections godoc
// @Summary List recognized sections
// @Description Returns the section names entries can belong to, in display order.
// @Tags portfolio
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the section names"
// @Router /portfolio [get]
func (c *ContentController) ListSections(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, domain.Sections)
}

// ListSection godoc
// @Summary List entries for a section
// @Description Returns all entries of the given section, ascending by sort_order. No pagination; a portfolio section stays small.
// @Tags portfolio
// @Produce json
// @Param section path string true "Section name" Enums(projects, experience, certifications, achievements, events)
// @Success 200 {object} helpers.APIResponse "data contains the entries"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /portfolio/{section} [get]
func (c *ContentController) ListSection(w http.ResponseWriter, r *http.Request) {
	section := r.PathValue("section")
	entries, err := c.Service.ListSection(r.Context(), section)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "unknown section")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to load entries")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, entries)
}
