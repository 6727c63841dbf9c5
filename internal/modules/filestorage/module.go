package filestorage

import (
	"context"
	"fmt"

	"github.com/celebnet/backend/internal/modules/filestorage/application"
	"github.com/celebnet/backend/internal/modules/filestorage/domain"
	"github.com/celebnet/backend/internal/modules/filestorage/infrastructure/local"
	"github.com/celebnet/backend/internal/modules/filestorage/infrastructure/s3"
	"github.com/celebnet/backend/internal/shared/infrastructure/config"
)

// Module represents the FileStorage module
type Module struct {
	service *application.FileService
	// localDir is set when files live on disk and must be served by the gateway.
	localDir string
}

func NewModule(ctx context.Context, cfg config.FileStorageConfig) (*Module, error) {
	var storage domain.FileStorage
	var localDir string

	if cfg.UseS3 {
		st, err := s3.NewS3Storage(ctx, s3.S3Config{
			BucketName:     cfg.S3BucketName,
			Region:         cfg.S3Region,
			Endpoint:       cfg.S3Endpoint,
			PublicEndpoint: cfg.S3PublicEndpoint,
			AccessKey:      cfg.S3AccessKey,
			SecretKey:      cfg.S3SecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		storage = st
	} else {
		st, err := local.NewLocalStorage(cfg.LocalPath, cfg.LocalBaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		storage = st
		localDir = st.BasePath()
	}

	return &Module{service: application.NewFileService(storage), localDir: localDir}, nil
}

func (m *Module) Service() *application.FileService {
	return m.service
}

// LocalDir returns the upload directory, or "" when files are stored in S3.
func (m *Module) LocalDir() string {
	return m.localDir
}
