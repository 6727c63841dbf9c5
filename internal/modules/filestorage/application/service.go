package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/celebnet/backend/internal/modules/filestorage/domain"
)

const (
	// Uploaded images are fit inside this box, keeping aspect ratio.
	MaxImageDimension = 500
	jpegQuality       = 80
	// MaxImageUploadBytes bounds what is read from an upload before decoding.
	MaxImageUploadBytes = 10 << 20
)

// FileService provides high-level file operations
type FileService struct {
	storage domain.FileStorage
}

func NewFileService(storage domain.FileStorage) *FileService {
	return &FileService{storage: storage}
}

// UploadImage decodes any format imaging understands, shrinks it to fit
// MaxImageDimension and stores it as JPEG under folder/<uuid>.jpg.
func (s *FileService) UploadImage(ctx context.Context, file io.Reader, folder string) (*domain.StoredFile, error) {
	src, err := imaging.Decode(io.LimitReader(file, MaxImageUploadBytes), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedImage, err)
	}

	dst := imaging.Fit(src, MaxImageDimension, MaxImageDimension, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, dst, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	size := int64(buf.Len())
	key := path.Join(folder, uuid.New().String()+".jpg")
	// S3 needs a seekable body to sign payloads over plain HTTP.
	url, err := s.storage.UploadFile(ctx, key, bytes.NewReader(buf.Bytes()), "image/jpeg")
	if err != nil {
		return nil, err
	}

	return &domain.StoredFile{Key: key, URL: url, ContentType: "image/jpeg", Size: size}, nil
}

// DeleteByURL removes a file previously returned by an upload. URLs that
// point elsewhere are ignored.
func (s *FileService) DeleteByURL(ctx context.Context, fileURL string) error {
	key, err := s.storage.GetKeyFromURL(fileURL)
	if errors.Is(err, domain.ErrForeignURL) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.storage.DeleteFile(ctx, key)
}
