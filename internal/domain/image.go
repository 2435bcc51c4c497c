package domain

import (
	"context"
	"io"
)

// ImageStore writes uploaded images to the object store bucket and returns
// publicly resolvable URLs. There is no garbage collection: an uploaded blob
// whose URL is never linked to an entry stays in the bucket.
type ImageStore interface {
	Put(ctx context.Context, name, contentType string, r io.Reader) (publicURL string, err error)
}

// ImageUploader derives collision-resistant object names and stores image
// payloads.
type ImageUploader interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (publicURL string, err error)
}
