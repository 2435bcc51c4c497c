package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"portfoliocms/internal/domain"
)

type imageUploader struct {
	store domain.ImageStore
	now   func() time.Time
}

// NewImageUploader creates the helper that names and stores uploaded images.
// Names are millisecond timestamps plus the original extension, so a saved
// entry can reference the returned public URL. An upload whose URL is never
// linked to an entry leaves an orphaned blob behind; there is no sweeper.
func NewImageUploader(store domain.ImageStore) domain.ImageUploader {
	return &imageUploader{store: store, now: time.Now}
}

func (u *imageUploader) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	name := objectName(filename, u.now())
	url, err := u.store.Put(ctx, name, contentType, r)
	if err != nil {
		return "", fmt.Errorf("upload image %s: %w", name, err)
	}
	return url, nil
}

func objectName(filename string, t time.Time) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%d%s", t.UnixMilli(), ext)
}
