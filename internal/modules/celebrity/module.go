package celebrity

import (
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/celebnet/backend/internal/modules/celebrity/application"
	"github.com/celebnet/backend/internal/modules/celebrity/domain"
	"github.com/celebnet/backend/internal/modules/celebrity/infrastructure/persistence/postgres"
	celebrity_http "github.com/celebnet/backend/internal/modules/celebrity/interfaces/http"
)

// Module represents the Celebrity module
type Module struct {
	service *application.CelebrityService
	finder  domain.CelebrityFinder
	handler *celebrity_http.CelebrityHandler
}

func NewModule(db *sqlx.DB, images application.ImageStore, logger *slog.Logger) *Module {
	repository := postgres.NewCelebrityRepository(db)
	service := application.NewCelebrityService(repository, images, logger)

	return &Module{
		service: service,
		finder:  repository,
		handler: celebrity_http.NewCelebrityHandler(service, logger),
	}
}

func (m *Module) Service() *application.CelebrityService {
	return m.service
}

// Finder exposes read access for the follow and pdf modules.
func (m *Module) Finder() domain.CelebrityFinder {
	return m.finder
}

func (m *Module) HTTPHandler() *celebrity_http.CelebrityHandler {
	return m.handler
}
