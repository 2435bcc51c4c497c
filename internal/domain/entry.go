package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for content operations.
var (
	ErrNotFound     = errors.New("entry not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

// Recognized section values. An entry whose section is not one of these is
// unreachable by any page.
const (
	SectionProjects       = "projects"
	SectionExperience     = "experience"
	SectionCertifications = "certifications"
	SectionAchievements   = "achievements"
	SectionEvents         = "events"
)

// Sections lists the recognized section values in display order.
var Sections = []string{
	SectionProjects,
	SectionExperience,
	SectionCertifications,
	SectionAchievements,
	SectionEvents,
}

// ValidSection reports whether s is one of the recognized section values.
func ValidSection(s string) bool {
	for _, v := range Sections {
		if s == v {
			return true
		}
	}
	return false
}

// Entry represents one portfolio content record shown on a public page.
// Optional fields are nil when absent; an empty string is never used to mean
// "no value".
// swagger:model Entry
type Entry struct {
	ID          string    `json:"id"`
	Section     string    `json:"section"`
	Title       string    `json:"title"`
	Subtitle    *string   `json:"subtitle"`
	Description *string   `json:"description"`
	Tags        []string  `json:"tags"`
	Link        *string   `json:"link"`
	ImageURL    *string   `json:"image_url"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EntryDraft carries the mutable fields of an entry for create and update.
// Update semantics are full replacement: every field here overwrites the
// stored value, including nils.
type EntryDraft struct {
	Section     string
	Title       string
	Subtitle    *string
	Description *string
	Tags        []string
	Link        *string
	ImageURL    *string
	SortOrder   int
}

// NewEntry returns a new Entry built from a draft. ID is set by the
// repository on create.
func NewEntry(draft EntryDraft, createdAt, updatedAt time.Time) *Entry {
	return &Entry{
		Section:     draft.Section,
		Title:       draft.Title,
		Subtitle:    draft.Subtitle,
		Description: draft.Description,
		Tags:        draft.Tags,
		Link:        draft.Link,
		ImageURL:    draft.ImageURL,
		SortOrder:   draft.SortOrder,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EntryRepository defines the interface for entry storage
type EntryRepository interface {
	Create(ctx context.Context, entry *Entry) error
	GetByID(ctx context.Context, id string) (*Entry, error)
	ListBySection(ctx context.Context, section string) ([]*Entry, error)
	ListAll(ctx context.Context) ([]*Entry, error)
	Update(ctx context.Context, entry *Entry) error
	// Delete is idempotent: removing an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}

// ContentService defines the read path used by public pages.
type ContentService interface {
	ListSection(ctx context.Context, section string) ([]*Entry, error)
	ListAll(ctx context.Context) ([]*Entry, error)
}

// AdminService defines privileged content mutations. Credential checks happen
// at the delivery layer; callers reach this service only with a verified
// capability.
type AdminService interface {
	CreateEntry(ctx context.Context, draft EntryDraft) (*Entry, error)
	UpdateEntry(ctx context.Context, id string, draft EntryDraft) (*Entry, error)
	DeleteEntry(ctx context.Context, id string) error
}
