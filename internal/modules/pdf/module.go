package pdf

import (
	"log/slog"

	celebrity "github.com/celebnet/backend/internal/modules/celebrity/domain"
	"github.com/celebnet/backend/internal/modules/pdf/application"
	pdf_http "github.com/celebnet/backend/internal/modules/pdf/interfaces/http"
)

// Module represents the PDF export module
type Module struct {
	service *application.ExportService
	handler *pdf_http.PDFHandler
}

func NewModule(
	celebrities celebrity.CelebrityFinder,
	renderer application.Renderer,
	images application.ImageFetcher,
	metrics application.Metrics,
	cfg application.Config,
	logger *slog.Logger,
) *Module {
	service := application.NewExportService(celebrities, renderer, images, metrics, cfg, logger)
	return &Module{
		service: service,
		handler: pdf_http.NewPDFHandler(service, logger),
	}
}

func (m *Module) Service() *application.ExportService {
	return m.service
}

func (m *Module) HTTPHandler() *pdf_http.PDFHandler {
	return m.handler
}
