package storage

import (
	"context"
	"errors"
	"io"
)

// ErrUploaderDisabled is returned when object storage is not configured
// and an upload endpoint is hit anyway.
var ErrUploaderDisabled = errors.New("object storage is not configured")

// FileUploader stores member avatars and course photos.
type FileUploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error

	Delete(ctx context.Context, key string) error

	PublicURL(key string) string
}
