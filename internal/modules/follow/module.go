package follow

import (
	"log/slog"

	"github.com/jmoiron/sqlx"

	celebrity "github.com/celebnet/backend/internal/modules/celebrity/domain"
	"github.com/celebnet/backend/internal/modules/follow/application"
	"github.com/celebnet/backend/internal/modules/follow/infrastructure/persistence/postgres"
	follow_http "github.com/celebnet/backend/internal/modules/follow/interfaces/http"
)

// Module represents the Follow module
type Module struct {
	service *application.FollowService
	handler *follow_http.FollowHandler
}

func NewModule(db *sqlx.DB, celebrities celebrity.CelebrityFinder, metrics application.Metrics, logger *slog.Logger) *Module {
	repository := postgres.NewFollowRepository(db)
	service := application.NewFollowService(repository, celebrities, metrics, logger)

	return &Module{
		service: service,
		handler: follow_http.NewFollowHandler(service, logger),
	}
}

func (m *Module) Service() *application.FollowService {
	return m.service
}

func (m *Module) HTTPHandler() *follow_http.FollowHandler {
	return m.handler
}
