package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	celebrity "github.com/celebnet/backend/internal/modules/celebrity/domain"
	"github.com/celebnet/backend/internal/modules/follow/domain"
)

// Outcome labels for the follow counter.
const (
	OutcomeFollowed   = "followed"
	OutcomeConflict   = "conflict"
	OutcomeUnfollowed = "unfollowed"
	OutcomeNotFound   = "not_found"
)

type Metrics interface {
	RecordFollow(outcome string)
}

// FollowResult is the created edge together with the followed profile.
type FollowResult struct {
	Follow    *domain.Follow
	Celebrity *celebrity.Celebrity
}

type FollowService struct {
	repo      domain.Repository
	celebrity celebrity.CelebrityFinder
	metrics   Metrics
	logger    *slog.Logger
	now       func() time.Time
}

func NewFollowService(repo domain.Repository, finder celebrity.CelebrityFinder, metrics Metrics, logger *slog.Logger) *FollowService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FollowService{
		repo:      repo,
		celebrity: finder,
		metrics:   metrics,
		logger:    logger.With("component", "follow"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Follow creates the edge userID -> celebrityID. The pre-check gives the common
// case a clean error; the primary key settles concurrent attempts.
func (s *FollowService) Follow(ctx context.Context, userID, celebrityID uuid.UUID) (*FollowResult, error) {
	c, err := s.celebrity.FindByID(ctx, celebrityID)
	if errors.Is(err, celebrity.ErrCelebrityNotFound) {
		s.metrics.RecordFollow(OutcomeNotFound)
		return nil, domain.ErrCelebrityNotFound
	}
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, userID, celebrityID)
	if err != nil {
		return nil, err
	}
	if exists {
		s.metrics.RecordFollow(OutcomeConflict)
		return nil, domain.ErrAlreadyFollowing
	}

	f := &domain.Follow{UserID: userID, CelebrityID: celebrityID, CreatedAt: s.now()}
	if err := s.repo.Create(ctx, f); err != nil {
		if errors.Is(err, domain.ErrAlreadyFollowing) {
			s.metrics.RecordFollow(OutcomeConflict)
		}
		return nil, err
	}

	s.metrics.RecordFollow(OutcomeFollowed)
	s.logger.InfoContext(ctx, "celebrity followed", "user_id", userID, "celebrity_id", celebrityID)
	return &FollowResult{Follow: f, Celebrity: c}, nil
}

func (s *FollowService) Unfollow(ctx context.Context, userID, celebrityID uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, celebrityID); err != nil {
		return err
	}
	s.metrics.RecordFollow(OutcomeUnfollowed)
	return nil
}

func (s *FollowService) ListFollowed(ctx context.Context, userID uuid.UUID) ([]celebrity.Celebrity, error) {
	return s.repo.ListCelebrities(ctx, userID)
}

func (s *FollowService) IsFollowing(ctx context.Context, userID, celebrityID uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, userID, celebrityID)
}
