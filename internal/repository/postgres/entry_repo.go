package postgres

import (
	"context"
	"database/sql"
	"errors"

	"portfoliocms/internal/domain"

	"github.com/lib/pq"
)

type entryRepository struct {
	DB *sql.DB
}

// NewEntryRepository returns a domain.EntryRepository implemented with Postgres.
func NewEntryRepository(db *sql.DB) domain.EntryRepository {
	return &entryRepository{DB: db}
}

const entryColumns = `id, section, title, subtitle, description, tags, link, image_url, sort_order, created_at, updated_at`

func (r *entryRepository) Create(ctx context.Context, e *domain.Entry) error {
	query := `
		INSERT INTO portfolio_entries (section, title, subtitle, description, tags, link, image_url, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Section, e.Title, e.Subtitle, e.Description, tagsArg(e.Tags), e.Link, e.ImageURL, e.SortOrder, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *entryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM portfolio_entries WHERE id = $1`
	e, err := scanEntry(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *entryRepository) ListBySection(ctx context.Context, section string) ([]*domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM portfolio_entries
		WHERE section = $1
		ORDER BY sort_order ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, section)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (r *entryRepository) ListAll(ctx context.Context) ([]*domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM portfolio_entries
		ORDER BY section ASC, sort_order ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

// Update replaces every mutable field of the entry identified by e.ID.
func (r *entryRepository) Update(ctx context.Context, e *domain.Entry) error {
	query := `
		UPDATE portfolio_entries
		SET section = $2, title = $3, subtitle = $4, description = $5, tags = $6, link = $7, image_url = $8, sort_order = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + entryColumns + `
	`
	updated, err := scanEntry(r.DB.QueryRowContext(ctx, query,
		e.ID, e.Section, e.Title, e.Subtitle, e.Description, tagsArg(e.Tags), e.Link, e.ImageURL, e.SortOrder,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	*e = *updated
	return nil
}

// Delete removes the entry. Deleting an unknown id is a no-op.
func (r *entryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM portfolio_entries WHERE id = $1`, id)
	return err
}

// tagsArg maps nil tags to a NULL column rather than an empty array.
func tagsArg(tags []string) interface{} {
	if tags == nil {
		return nil
	}
	return pq.Array(tags)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*domain.Entry, error) {
	e := &domain.Entry{}
	var subtitle, description, link, imageURL sql.NullString
	var tags pq.StringArray
	err := row.Scan(
		&e.ID, &e.Section, &e.Title, &subtitle, &description, &tags, &link, &imageURL,
		&e.SortOrder, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if subtitle.Valid {
		e.Subtitle = &subtitle.String
	}
	if description.Valid {
		e.Description = &description.String
	}
	if link.Valid {
		e.Link = &link.String
	}
	if imageURL.Valid {
		e.ImageURL = &imageURL.String
	}
	if tags != nil {
		e.Tags = []string(tags)
	}
	return e, nil
}

func collectEntries(rows *sql.Rows) ([]*domain.Entry, error) {
	entries := make([]*domain.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
