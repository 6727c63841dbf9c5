package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	celebrity "github.com/celebnet/backend/internal/modules/celebrity/domain"
	"github.com/celebnet/backend/internal/modules/pdf/domain"
)

const (
	outcomeOK       = "ok"
	outcomeError    = "error"
	outcomeCanceled = "canceled"
)

// Renderer turns an HTML document into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, html []byte) ([]byte, error)
}

// ImageFetcher loads a profile image and returns it as a data URI.
type ImageFetcher interface {
	FetchDataURI(ctx context.Context, url string) (string, error)
}

type Metrics interface {
	RecordPDFRender(outcome string, d time.Duration)
}

type Config struct {
	// MaxConcurrentRenders bounds simultaneous browser processes. Zero means 1.
	MaxConcurrentRenders int
	// RenderTimeout bounds a single render, including waiting for a slot.
	RenderTimeout time.Duration
}

type ExportService struct {
	celebrities celebrity.CelebrityFinder
	renderer    Renderer
	images      ImageFetcher
	metrics     Metrics
	logger      *slog.Logger
	policy      *bluemonday.Policy
	slots       chan struct{}
	timeout     time.Duration
}

func NewExportService(finder celebrity.CelebrityFinder, renderer Renderer, images ImageFetcher, metrics Metrics, cfg Config, logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	n := cfg.MaxConcurrentRenders
	if n <= 0 {
		n = 1
	}
	return &ExportService{
		celebrities: finder,
		renderer:    renderer,
		images:      images,
		metrics:     metrics,
		logger:      logger.With("component", "pdf"),
		policy:      bluemonday.UGCPolicy(),
		slots:       make(chan struct{}, n),
		timeout:     cfg.RenderTimeout,
	}
}

// RenderProfile renders the profile of celebrityID. The renderer is not
// invoked when the profile does not exist.
func (s *ExportService) RenderProfile(ctx context.Context, celebrityID uuid.UUID) (*domain.Document, error) {
	c, err := s.celebrities.FindByID(ctx, celebrityID)
	if errors.Is(err, celebrity.ErrCelebrityNotFound) {
		return nil, domain.ErrCelebrityNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	html, err := renderHTML(c, s.imageSrc(ctx, c), s.policy)
	if err != nil {
		return nil, fmt.Errorf("%w: template: %v", domain.ErrRenderFailed, err)
	}

	select {
	case s.slots <- struct{}{}:
		defer func() { <-s.slots }()
	case <-ctx.Done():
		s.metrics.RecordPDFRender(outcomeCanceled, 0)
		return nil, ctx.Err()
	}

	start := time.Now()
	content, err := s.renderer.Render(ctx, html)
	elapsed := time.Since(start)
	if err != nil && errors.Is(ctx.Err(), context.Canceled) {
		s.metrics.RecordPDFRender(outcomeCanceled, elapsed)
		return nil, ctx.Err()
	}
	if err != nil {
		s.metrics.RecordPDFRender(outcomeError, elapsed)
		s.logger.ErrorContext(ctx, "pdf render failed", "celebrity_id", celebrityID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}
	s.metrics.RecordPDFRender(outcomeOK, elapsed)

	return &domain.Document{Filename: domain.Filename(c.Name), Content: content}, nil
}

// imageSrc embeds the profile image. A failed fetch drops the image rather
// than the document.
func (s *ExportService) imageSrc(ctx context.Context, c *celebrity.Celebrity) string {
	if c.ProfileImageURL == nil || *c.ProfileImageURL == "" || s.images == nil {
		return ""
	}
	src, err := s.images.FetchDataURI(ctx, *c.ProfileImageURL)
	if err != nil {
		s.logger.WarnContext(ctx, "profile image omitted from pdf", "celebrity_id", c.ID, "error", err)
		return ""
	}
	return src
}
