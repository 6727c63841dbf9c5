package ai

import (
	"log/slog"

	"github.com/celebnet/backend/internal/modules/ai/application"
	ai_http "github.com/celebnet/backend/internal/modules/ai/interfaces/http"
)

// Module represents the AI assist module
type Module struct {
	service *application.AIService
	handler *ai_http.AIHandler
}

// NewModule wires the service around generator. Pass
// application.DisabledGenerator{} when no API key is configured.
func NewModule(generator application.Generator, metrics application.Metrics, logger *slog.Logger) *Module {
	service := application.NewAIService(generator, metrics, logger)
	return &Module{
		service: service,
		handler: ai_http.NewAIHandler(service, logger),
	}
}

func (m *Module) Service() *application.AIService {
	return m.service
}

func (m *Module) HTTPHandler() *ai_http.AIHandler {
	return m.handler
}
