package domain

import (
	"context"
	"errors"
	"io"
)

var (
	ErrUnsupportedImage = errors.New("unsupported or corrupt image")
	ErrForeignURL       = errors.New("url does not belong to this storage")
)

// FileStorage is implemented by the S3 and local filesystem backends.
type FileStorage interface {
	// UploadFile stores the content under key and returns its public URL.
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
	// GetKeyFromURL reverses UploadFile's URL. ErrForeignURL for URLs it did not produce.
	GetKeyFromURL(url string) (string, error)
}

// StoredFile is the result of an upload.
type StoredFile struct {
	Key         string
	URL         string
	ContentType string
	Size        int64
}
