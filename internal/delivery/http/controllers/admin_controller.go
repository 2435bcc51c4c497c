package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"portfoliocms/internal/delivery/http/helpers"
	"portfoliocms/internal/domain"
)

// maxImageBytes caps multipart image uploads.
const maxImageBytes = 10 << 20

// AdminController serves credential verification, the privileged boundary
// endpoint, the REST mutation surface, and image upload.
type AdminController struct {
	Logger      *slog.Logger
	Content     domain.ContentService
	Service     domain.AdminService
	Verifier    domain.CredentialVerifier
	Tokens      domain.TokenIssuer
	Uploader    domain.ImageUploader
	TokenExpiry time.Duration
}

func NewAdminController(
	logger *slog.Logger,
	content domain.ContentService,
	svc domain.AdminService,
	verifier domain.CredentialVerifier,
	tokens domain.TokenIssuer,
	uploader domain.ImageUploader,
	tokenExpiry time.Duration,
) *AdminController {
	return &AdminController{
		Logger:      logger,
		Content:     content,
		Service:     svc,
		Verifier:    verifier,
		Tokens:      tokens,
		Uploader:    uploader,
		TokenExpiry: tokenExpiry,
	}
}

// VerifyRequest is the request body for POST /admin/verify.
type VerifyRequest struct {
	Password string `json:"password"`
}

// Validate implements Validator.
func (v VerifyRequest) Validate() []string {
	if v.Password == "" {
		return []string{"password is required"}
	}
	return nil
}

// VerifyResponse is the success payload for POST /admin/verify.
type VerifyResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Verify godoc
// @Summary Verify the admin credential
// @Description Checks the shared admin secret without touching stored data and returns a short-lived capability token. Replaces the old probe flow that wrote and deleted a sentinel entry.
// @Tags admin
// @Accept json
// @Produce json
// @Param credentials body VerifyRequest true "Admin credential"
// @Success 200 {object} helpers.APIResponse "data contains token and expires_at"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /admin/verify [post]
func (c *AdminController) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Verifier.Verify(req.Password); err != nil {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid credential")
		return
	}
	token, expiresAt, err := c.Tokens.Issue(c.TokenExpiry)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to issue token")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, VerifyResponse{Token: token, ExpiresAt: expiresAt})
}

// EntryPayload carries the entry fields shared by the boundary and REST surfaces.
type EntryPayload struct {
	ID          string   `json:"id"`
	Section     string   `json:"section"`
	Title       string   `json:"title"`
	Subtitle    *string  `json:"subtitle"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	Link        *string  `json:"link"`
	ImageURL    *string  `json:"image_url"`
	SortOrder   int      `json:"sort_order"`
}

func (p EntryPayload) draft() domain.EntryDraft {
	return domain.EntryDraft{
		Section:     p.Section,
		Title:       p.Title,
		Subtitle:    p.Subtitle,
		Description: p.Description,
		Tags:        p.Tags,
		Link:        p.Link,
		ImageURL:    p.ImageURL,
		SortOrder:   p.SortOrder,
	}
}

// BoundaryRequest is the request body for POST /admin/portfolio. This is the
// original boundary-function wire contract and is kept verbatim for existing
// clients: the credential rides in the body and is re-validated per call.
type BoundaryRequest struct {
	Action   string       `json:"action"`
	Password string       `json:"password"`
	Item     EntryPayload `json:"item"`
}

// Boundary godoc
// @Summary Privileged content mutation (legacy contract)
// @Description Performs create, update, or delete with the shared admin secret in the body. Success responses are the bare entry (create/update) or {"success":true} (delete); errors are {"error": message}. This endpoint does not use the standard envelope.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body BoundaryRequest true "Action, credential, and entry fields"
// @Success 200 {object} domain.Entry
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /admin/portfolio [post]
func (c *AdminController) Boundary(w http.ResponseWriter, r *http.Request) {
	var req BoundaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBoundaryError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := c.Verifier.Verify(req.Password); err != nil {
		writeBoundaryError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	switch req.Action {
	case "create":
		entry, err := c.Service.CreateEntry(r.Context(), req.Item.draft())
		if err != nil {
			c.writeBoundaryFailure(w, r, err)
			return
		}
		writeBoundaryJSON(w, http.StatusOK, entry)
	case "update":
		entry, err := c.Service.UpdateEntry(r.Context(), req.Item.ID, req.Item.draft())
		if err != nil {
			c.writeBoundaryFailure(w, r, err)
			return
		}
		writeBoundaryJSON(w, http.StatusOK, entry)
	case "delete":
		if err := c.Service.DeleteEntry(r.Context(), req.Item.ID); err != nil {
			c.writeBoundaryFailure(w, r, err)
			return
		}
		writeBoundaryJSON(w, http.StatusOK, map[string]bool{"success": true})
	default:
		writeBoundaryError(w, http.StatusBadRequest, "Invalid action")
	}
}

func (c *AdminController) writeBoundaryFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeBoundaryError(w, http.StatusBadRequest, "invalid entry")
	case errors.Is(err, domain.ErrNotFound):
		writeBoundaryError(w, http.StatusNotFound, "entry not found")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		writeBoundaryError(w, http.StatusInternalServerError, "store error")
	}
}

func writeBoundaryJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func writeBoundaryError(w http.ResponseWriter, statusCode int, message string) {
	writeBoundaryJSON(w, statusCode, map[string]string{"error": message})
}

// CreateEntryRequest is the request body for POST /admin/entries.
type CreateEntryRequest struct {
	EntryPayload
}

// Validate implements Validator.
func (c CreateEntryRequest) Validate() []string {
	var errs []string
	if c.Section == "" {
		errs = append(errs, "section is required")
	} else if !domain.ValidSection(c.Section) {
		errs = append(errs, "unknown section")
	}
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	return errs
}

// ListEntries godoc
// @Summary List every entry
// @Description Returns all entries across sections, ordered by section then sort_order. Admin panel listing.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the entries"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/entries [get]
func (c *AdminController) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := c.Content.ListAll(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to load entries")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, entries)
}

// CreateEntry godoc
// @Summary Create an entry
// @Description Creates a portfolio entry. Section and title are required; other fields optional, with empty strings stored as null.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entry body CreateEntryRequest true "Entry fields"
// @Success 201 {object} helpers.APIResponse "data contains the created entry"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/entries [post]
func (c *AdminController) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	entry, err := c.Service.CreateEntry(r.Context(), req.draft())
	if err != nil {
		c.writeFailure(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, entry)
}

// UpdateEntryRequest is the request body for PUT /admin/entries/{id}. Update
// is full replacement: omitted optional fields become null.
type UpdateEntryRequest struct {
	EntryPayload
}

// Validate implements Validator.
func (u UpdateEntryRequest) Validate() []string {
	return CreateEntryRequest{EntryPayload: u.EntryPayload}.Validate()
}

// UpdateEntry godoc
// @Summary Update an entry
// @Description Replaces every mutable field of the entry, including section. There is no partial merge; omitted optional fields become null.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param entry body UpdateEntryRequest true "Replacement fields"
// @Success 200 {object} helpers.APIResponse "data contains the updated entry"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/entries/{id} [put]
func (c *AdminController) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing id")
		return
	}
	var req UpdateEntryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	entry, err := c.Service.UpdateEntry(r.Context(), id, req.draft())
	if err != nil {
		c.writeFailure(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, entry)
}

// DeleteEntry godoc
// @Summary Delete an entry
// @Description Removes the entry permanently. Deleting an unknown id succeeds; the operation is idempotent.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} helpers.APIResponse "data contains {success: true}"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/entries/{id} [delete]
func (c *AdminController) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing id")
		return
	}
	if err := c.Service.DeleteEntry(r.Context(), id); err != nil {
		c.writeFailure(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"success": true})
}

// UploadImageResponse is the success payload for POST /admin/images.
type UploadImageResponse struct {
	URL string `json:"url"`
}

// UploadImage godoc
// @Summary Upload an image
// @Description Stores a multipart image (field "image") in the object store under a timestamp-derived name and returns its public URL for a later create or update. An upload never linked to an entry leaves an orphaned blob.
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image payload"
// @Success 201 {object} helpers.APIResponse "data contains the public URL"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 502 {object} helpers.APIResponse "error.code: upload_failed"
// @Router /admin/images [post]
func (c *AdminController) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing image file")
		return
	}
	defer file.Close()

	url, err := c.Uploader.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusBadGateway, helpers.ErrCodeUploadFailed, "image upload failed")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, UploadImageResponse{URL: url})
}

func (c *AdminController) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid entry")
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "entry not found")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "operation failed")
	}
}
