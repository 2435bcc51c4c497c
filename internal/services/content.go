package services

import (
	"context"
	"fmt"
	"time"

	"portfoliocms/internal/domain"
)

type contentService struct {
	entryRepo      domain.EntryRepository
	contextTimeout time.Duration
}

// NewContentService creates the read-only content service used by public pages.
func NewContentService(entryRepo domain.EntryRepository, timeout time.Duration) domain.ContentService {
	return &contentService{
		entryRepo:      entryRepo,
		contextTimeout: timeout,
	}
}

func (s *contentService) ListSection(ctx context.Context, section string) ([]*domain.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.ValidSection(section) {
		return nil, domain.ErrInvalidInput
	}
	entries, err := s.entryRepo.ListBySection(ctx, section)
	if err != nil {
		return nil, fmt.Errorf("list section %s: %w", section, err)
	}
	if entries == nil {
		entries = []*domain.Entry{}
	}
	return entries, nil
}

func (s *contentService) ListAll(ctx context.Context) ([]*domain.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	entries, err := s.entryRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	if entries == nil {
		entries = []*domain.Entry{}
	}
	return entries, nil
}
