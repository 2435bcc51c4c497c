package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"portfoliocms/internal/domain"
)

type adminService struct {
	entryRepo      domain.EntryRepository
	contextTimeout time.Duration
}

// NewAdminService creates the privileged mutation service. Credential checks
// are the delivery layer's job; this service assumes an authorized caller.
func NewAdminService(entryRepo domain.EntryRepository, timeout time.Duration) domain.AdminService {
	return &adminService{
		entryRepo:      entryRepo,
		contextTimeout: timeout,
	}
}

func (s *adminService) CreateEntry(ctx context.Context, draft domain.EntryDraft) (*domain.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	normalizeDraft(&draft)
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	now := time.Now()
	entry := domain.NewEntry(draft, now, now)
	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return entry, nil
}

// UpdateEntry replaces every mutable field of the entry, including section.
// Fields absent from the draft become null; there is no partial merge.
func (s *adminService) UpdateEntry(ctx context.Context, id string, draft domain.EntryDraft) (*domain.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	normalizeDraft(&draft)
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	entry := domain.NewEntry(draft, time.Time{}, time.Time{})
	entry.ID = id
	if err := s.entryRepo.Update(ctx, entry); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update entry: %w", err)
	}
	return entry, nil
}

// DeleteEntry removes the entry permanently. Deleting an unknown id is a
// no-op, matching the store contract.
func (s *adminService) DeleteEntry(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if id == "" {
		return domain.ErrInvalidInput
	}
	if err := s.entryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// normalizeDraft trims the title and collapses empty optional strings and
// empty tag lists to nil, so "no value" is always null, never "".
func normalizeDraft(d *domain.EntryDraft) {
	d.Section = strings.TrimSpace(d.Section)
	d.Title = strings.TrimSpace(d.Title)
	d.Subtitle = emptyToNil(d.Subtitle)
	d.Description = emptyToNil(d.Description)
	d.Link = emptyToNil(d.Link)
	d.ImageURL = emptyToNil(d.ImageURL)
	if len(d.Tags) == 0 {
		d.Tags = nil
	}
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

func validateDraft(d domain.EntryDraft) error {
	if !domain.ValidSection(d.Section) {
		return domain.ErrInvalidInput
	}
	if d.Title == "" {
		return domain.ErrInvalidInput
	}
	return nil
}
