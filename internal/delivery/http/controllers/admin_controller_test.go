package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfoliocms/internal/delivery/http/helpers"
	"portfoliocms/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeAdminService implements domain.AdminService for handler tests.
type fakeAdminService struct {
	createErr    error
	updateErr    error
	deleteErr    error
	createResult *domain.Entry
	updateResult *domain.Entry

	lastCreateDraft domain.EntryDraft
	lastUpdateID    string
	lastUpdateDraft domain.EntryDraft
	lastDeleteID    string
	deleteCalls     int
}

func (f *fakeAdminService) CreateEntry(ctx context.Context, draft domain.EntryDraft) (*domain.Entry, error) {
	f.lastCreateDraft = draft
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createResult, nil
}

func (f *fakeAdminService) UpdateEntry(ctx context.Context, id string, draft domain.EntryDraft) (*domain.Entry, error) {
	f.lastUpdateID = id
	f.lastUpdateDraft = draft
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateResult, nil
}

func (f *fakeAdminService) DeleteEntry(ctx context.Context, id string) error {
	f.deleteCalls++
	f.lastDeleteID = id
	return f.deleteErr
}

// fakeContentService implements domain.ContentService.
type fakeContentService struct {
	sectionErr   error
	allErr       error
	sections     map[string][]*domain.Entry
	all          []*domain.Entry
	lastSection  string
	sectionCalls int
}

func (f *fakeContentService) ListSection(ctx context.Context, section string) ([]*domain.Entry, error) {
	f.sectionCalls++
	f.lastSection = section
	if f.sectionErr != nil {
		return nil, f.sectionErr
	}
	if !domain.ValidSection(section) {
		return nil, domain.ErrInvalidInput
	}
	entries := f.sections[section]
	if entries == nil {
		entries = []*domain.Entry{}
	}
	return entries, nil
}

func (f *fakeContentService) ListAll(ctx context.Context) ([]*domain.Entry, error) {
	if f.allErr != nil {
		return nil, f.allErr
	}
	return f.all, nil
}

type fakeVerifier struct {
	secret      string
	verifyCalls int
}

func (f *fakeVerifier) Verify(candidate string) error {
	f.verifyCalls++
	if candidate == f.secret {
		return nil
	}
	return domain.ErrUnauthorized
}

type fakeIssuer struct {
	issueErr error
}

func (f *fakeIssuer) Issue(expiry time.Duration) (string, time.Time, error) {
	if f.issueErr != nil {
		return "", time.Time{}, f.issueErr
	}
	return "capability-token", time.Now().Add(expiry), nil
}

type fakeUploader struct {
	uploadErr    error
	lastFilename string
	url          string
}

func (f *fakeUploader) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	f.lastFilename = filename
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return f.url, nil
}

func newTestAdminController(svc *fakeAdminService, content *fakeContentService, verifier *fakeVerifier, uploader *fakeUploader) *AdminController {
	if content == nil {
		content = &fakeContentService{}
	}
	if uploader == nil {
		uploader = &fakeUploader{url: "https://img.test/1.png"}
	}
	return NewAdminController(testLogger, content, svc, verifier, &fakeIssuer{}, uploader, time.Hour)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAdminController_Verify(t *testing.T) {
	t.Run("correct secret issues capability token without touching data", func(t *testing.T) {
		svc := &fakeAdminService{}
		verifier := &fakeVerifier{secret: "hunter2"}
		ctrl := newTestAdminController(svc, nil, verifier, nil)

		rec := postJSON(t, ctrl.Verify, "/admin/verify", VerifyRequest{Password: "hunter2"})

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Data VerifyResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "capability-token", resp.Data.Token)
		assert.False(t, resp.Data.ExpiresAt.IsZero())
		// The read-only check must not create or delete anything.
		assert.Zero(t, svc.deleteCalls)
		assert.Empty(t, svc.lastCreateDraft.Section)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		ctrl := newTestAdminController(&fakeAdminService{}, nil, &fakeVerifier{secret: "hunter2"}, nil)
		rec := postJSON(t, ctrl.Verify, "/admin/verify", VerifyRequest{Password: "guess"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing password rejected", func(t *testing.T) {
		ctrl := newTestAdminController(&fakeAdminService{}, nil, &fakeVerifier{secret: "hunter2"}, nil)
		rec := postJSON(t, ctrl.Verify, "/admin/verify", VerifyRequest{})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdminController_Boundary(t *testing.T) {
	entry := &domain.Entry{ID: "e-1", Section: "projects", Title: "Demo"}

	t.Run("create returns bare entry", func(t *testing.T) {
		svc := &fakeAdminService{createResult: entry}
		ctrl := newTestAdminController(svc, nil, &fakeVerifier{secret: "hunter2"}, nil)

		rec := postJSON(t, ctrl.Boundary, "/admin/portfolio", BoundaryRequest{
			Action:   "create",
			Password: "hunter2",
			Item:     EntryPayload{Section: "projects", Title: "Demo"},
		})

		require.Equal(t, http.StatusOK, rec.Code)
		var got domain.Entry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "e-1", got.ID)
		assert.Equal(t, "projects", svc.lastCreateDraft.Section)
	})

	t.Run("update routes id and fields", func(t *testing.T) {
		svc := &fakeAdminService{updateResult: entry}
		ctrl := newTestAdminController(svc, nil, &fakeVerifier{secret: "hunter2"}, nil)

		rec := postJSON(t, ctrl.Boundary, "/admin/portfolio", BoundaryRequest{
			Action:   "update",
			Password: "hunter2",
			Item:     EntryPayload{ID: "e-1", Section: "projects", Title: "Demo2"},
		})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "e-1", svc.lastUpdateID)
		assert.Equal(t, "Demo2", svc.lastUpdateDraft.Title)
	})

	t.Run("delete returns success object", func(t *testing.T) {
		svc := &fakeAdminService{}
		ctrl := newTestAdminController(svc, nil, &fakeVerifier{secret: "hunter2"}, nil)

		rec := postJSON(t, ctrl.Boundary, "/admin/portfolio", BoundaryRequest{
			Action:   "delete",
			Password: "hunter2",
			Item:     EntryPayload{ID: "e-1"},
		})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
		assert.Equal(t, "e-1", svc.lastDeleteID)
	})

	t.Run("wrong password gets 401 error object", func(t *testing.T) {
		svc := &fakeAdminService{}
		ctrl := newTestAdminController(svc, nil, &fakeVerifier{secret: "hunter2"}, nil)

		rec := postJSON(t, ctrl.Boundary, "/admin/portfolio", BoundaryRequest{
			Action:   "create",
			Password: "guess",
			Item:     EntryPayload{Section: "projects", Title: "Demo"},
		})

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid password"}`, rec.Body.String())
		assert.Zero(t, svc.deleteCalls)
	})

	t.Run("unknown action rejected", func(t *testing.T) {
		ctrl := newTestAdminController(&fakeAdminService{}, nil, &fakeVerifier{secret: "hunter2"}, nil)
		rec := postJSON(t, ctrl.Boundary, "/admin/portfolio", BoundaryRequest{Action: "upsert", Password: "hunter2"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update of unknown id gets 404", func(t *testing.T) {
		svc := &fakeAdminService{updateErr: domain.ErrNotFound}
		ctrl := newTestAdminController(svc, nil, &fakeVerifier{secret: "hunter2"}, nil)
		rec := postJSON(t, ctrl.Boundary, "/admin/portfolio", BoundaryRequest{
			Action:   "update",
			Password: "hunter2",
			Item:     EntryPayload{ID: "missing", Section: "projects", Title: "X"},
		})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("store failure gets 500", func(t *testing.T) {
		svc := &fakeAdminService{createErr: errors.New("db down")}
		ctrl := newTestAdminController(svc, nil, &fakeVerifier{secret: "hunter2"}, nil)
		rec := postJSON(t, ctrl.Boundary, "/admin/portfolio", BoundaryRequest{
			Action:   "create",
			Password: "hunter2",
			Item:     EntryPayload{Section: "projects", Title: "X"},
		})
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestAdminController_CreateEntry(t *testing.T) {
	t.Run("valid request returns 201 with entry", func(t *testing.T) {
		svc := &fakeAdminService{createResult: &domain.Entry{ID: "e-1", Section: "projects", Title: "Demo"}}
		ctrl := newTestAdminController(svc, nil, &fakeVerifier{}, nil)

		rec := postJSON(t, ctrl.CreateEntry, "/admin/entries", map[string]any{
			"section": "projects",
			"title":   "Demo",
			"tags":    []string{"go"},
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp struct {
			Data  *domain.Entry     `json:"data"`
			Error *helpers.APIError `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Nil(t, resp.Error)
		assert.Equal(t, "e-1", resp.Data.ID)
		assert.Equal(t, []string{"go"}, svc.lastCreateDraft.Tags)
	})

	t.Run("unknown section rejected before the service", func(t *testing.T) {
		svc := &fakeAdminService{}
		ctrl := newTestAdminController(svc, nil, &fakeVerifier{}, nil)
		rec := postJSON(t, ctrl.CreateEntry, "/admin/entries", map[string]any{"section": "blog", "title": "x"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, svc.lastCreateDraft.Section)
	})

	t.Run("missing title rejected", func(t *testing.T) {
		ctrl := newTestAdminController(&fakeAdminService{}, nil, &fakeVerifier{}, nil)
		rec := postJSON(t, ctrl.CreateEntry, "/admin/entries", map[string]any{"section": "projects"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdminController_UpdateEntry(t *testing.T) {
	t.Run("replaces fields by id", func(t *testing.T) {
		svc := &fakeAdminService{updateResult: &domain.Entry{ID: "e-1", Section: "projects", Title: "Demo2"}}
		ctrl := newTestAdminController(svc, nil, &fakeVerifier{}, nil)

		raw, _ := json.Marshal(map[string]any{"section": "projects", "title": "Demo2"})
		req := httptest.NewRequest(http.MethodPut, "/admin/entries/e-1", bytes.NewReader(raw))
		req.SetPathValue("id", "e-1")
		rec := httptest.NewRecorder()
		ctrl.UpdateEntry(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "e-1", svc.lastUpdateID)
	})

	t.Run("unknown id gets 404", func(t *testing.T) {
		svc := &fakeAdminService{updateErr: domain.ErrNotFound}
		ctrl := newTestAdminController(svc, nil, &fakeVerifier{}, nil)

		raw, _ := json.Marshal(map[string]any{"section": "projects", "title": "X"})
		req := httptest.NewRequest(http.MethodPut, "/admin/entries/missing", bytes.NewReader(raw))
		req.SetPathValue("id", "missing")
		rec := httptest.NewRecorder()
		ctrl.UpdateEntry(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAdminController_DeleteEntry(t *testing.T) {
	svc := &fakeAdminService{}
	ctrl := newTestAdminController(svc, nil, &fakeVerifier{}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/admin/entries/e-1", nil)
	req.SetPathValue("id", "e-1")
	rec := httptest.NewRecorder()
	ctrl.DeleteEntry(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "e-1", svc.lastDeleteID)
}

func TestAdminController_ListEntries(t *testing.T) {
	content := &fakeContentService{all: []*domain.Entry{
		{ID: "e-1", Section: "achievements", Title: "A"},
		{ID: "e-2", Section: "projects", Title: "B"},
	}}
	ctrl := newTestAdminController(&fakeAdminService{}, content, &fakeVerifier{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/entries", nil)
	rec := httptest.NewRecorder()
	ctrl.ListEntries(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data []*domain.Entry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
}

func multipartImage(t *testing.T, field, filename, payload string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = io.Copy(fw, strings.NewReader(payload))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestAdminController_UploadImage(t *testing.T) {
	t.Run("stores payload and returns public url", func(t *testing.T) {
		uploader := &fakeUploader{url: "https://img.test/1700000000000.png"}
		ctrl := newTestAdminController(&fakeAdminService{}, nil, &fakeVerifier{}, uploader)

		body, contentType := multipartImage(t, "image", "photo.png", "bytes")
		req := httptest.NewRequest(http.MethodPost, "/admin/images", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		ctrl.UploadImage(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp struct {
			Data UploadImageResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "https://img.test/1700000000000.png", resp.Data.URL)
		assert.Equal(t, "photo.png", uploader.lastFilename)
	})

	t.Run("missing file field rejected", func(t *testing.T) {
		ctrl := newTestAdminController(&fakeAdminService{}, nil, &fakeVerifier{}, &fakeUploader{})
		body, contentType := multipartImage(t, "other", "photo.png", "bytes")
		req := httptest.NewRequest(http.MethodPost, "/admin/images", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		ctrl.UploadImage(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store failure surfaces as upload_failed", func(t *testing.T) {
		uploader := &fakeUploader{uploadErr: errors.New("bucket down")}
		ctrl := newTestAdminController(&fakeAdminService{}, nil, &fakeVerifier{}, uploader)
		body, contentType := multipartImage(t, "image", "photo.png", "bytes")
		req := httptest.NewRequest(http.MethodPost, "/admin/images", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		ctrl.UploadImage(rec, req)
		require.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
