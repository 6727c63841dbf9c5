package http

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/celebnet/backend/internal/modules/pdf/domain"
	"github.com/celebnet/backend/internal/shared/utils"
)

type ExportService interface {
	RenderProfile(ctx context.Context, celebrityID uuid.UUID) (*domain.Document, error)
}

type PDFHandler struct {
	service ExportService
	logger  *slog.Logger
}

func NewPDFHandler(service ExportService, logger *slog.Logger) *PDFHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFHandler{service: service, logger: logger}
}

// statusClientClosedRequest follows the nginx convention for a request the
// client abandoned.
const statusClientClosedRequest = 499

// Export handles GET /celebrities/{id}/pdf
func (h *PDFHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid celebrity id")
		return
	}

	doc, err := h.service.RenderProfile(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCelebrityNotFound):
			utils.WriteError(w, http.StatusNotFound, "Celebrity not found")
		case errors.Is(err, context.Canceled):
			// client went away; nobody reads the body
			h.logger.DebugContext(r.Context(), "pdf export canceled", "celebrity_id", id)
			utils.WriteError(w, statusClientClosedRequest, "request canceled")
		case errors.Is(err, context.DeadlineExceeded):
			utils.WriteError(w, http.StatusServiceUnavailable, "PDF rendering is busy, try again later")
		default:
			h.logger.ErrorContext(r.Context(), "pdf export failed", "celebrity_id", id, "error", err)
			utils.WriteError(w, http.StatusInternalServerError, "Failed to generate PDF for celebrity profile.")
		}
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Content); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write pdf", "error", err)
	}
}
