package blob

import (
	"context"
	"io"
)

// Store accepts a file and returns a durable public URL. The job board treats
// stored files (resumes, images) as opaque: only the URL is persisted.
type Store interface {
	Upload(ctx context.Context, folder, filename string, r io.Reader) (url string, err error)
}
