package application

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/celebnet/backend/internal/modules/celebrity/domain"
	fileDomain "github.com/celebnet/backend/internal/modules/filestorage/domain"
)

const imageFolder = "celebrities"

// ImageStore is the file storage surface used for profile images.
type ImageStore interface {
	UploadImage(ctx context.Context, file io.Reader, folder string) (*fileDomain.StoredFile, error)
	DeleteByURL(ctx context.Context, fileURL string) error
}

type CelebrityService struct {
	repo   domain.Repository
	images ImageStore
	logger *slog.Logger
}

func NewCelebrityService(repo domain.Repository, images ImageStore, logger *slog.Logger) *CelebrityService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CelebrityService{repo: repo, images: images, logger: logger.With("component", "celebrity")}
}

// Create validates and stores a new profile. Absent lists become empty.
func (s *CelebrityService) Create(ctx context.Context, c *domain.Celebrity) (*domain.Celebrity, error) {
	c.Normalize()
	c.Clean()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c.ID = uuid.New()
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "celebrity created", "celebrity_id", c.ID)
	return c, nil
}

func (s *CelebrityService) FindAll(ctx context.Context) ([]domain.Celebrity, error) {
	return s.repo.List(ctx)
}

func (s *CelebrityService) FindOne(ctx context.Context, id uuid.UUID) (*domain.Celebrity, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CelebrityService) FindByName(ctx context.Context, name string) (*domain.Celebrity, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *CelebrityService) Update(ctx context.Context, id uuid.UUID, patch domain.Patch) (*domain.Celebrity, error) {
	patch = patch.Clean()
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, patch)
}

// Remove deletes the profile. Follow edges pointing at it are left in place.
func (s *CelebrityService) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "celebrity removed", "celebrity_id", id)
	return nil
}

// UploadImage stores a resized copy of the image and points the profile at it.
// The previously stored image, if it came from this storage, is removed.
func (s *CelebrityService) UploadImage(ctx context.Context, id uuid.UUID, image io.Reader) (*domain.Celebrity, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stored, err := s.images.UploadImage(ctx, image, imageFolder)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, domain.Patch{ProfileImageURL: &stored.URL})
	if err != nil {
		if delErr := s.images.DeleteByURL(context.WithoutCancel(ctx), stored.URL); delErr != nil {
			s.logger.WarnContext(ctx, "failed to remove orphaned image", "key", stored.Key, "error", delErr)
		}
		return nil, err
	}

	if current.ProfileImageURL != nil && *current.ProfileImageURL != "" {
		if err := s.images.DeleteByURL(ctx, *current.ProfileImageURL); err != nil {
			s.logger.WarnContext(ctx, "failed to remove previous image", "celebrity_id", id, "error", err)
		}
	}
	return updated, nil
}
