package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/celebnet/backend/internal/modules/ai/domain"
	"github.com/celebnet/backend/internal/shared/utils"
)

type AIService interface {
	SuggestNames(ctx context.Context, query string) ([]string, error)
	AutofillProfile(ctx context.Context, name string) (*domain.ProfileDraft, error)
}

type AIHandler struct {
	service AIService
	logger  *slog.Logger
}

func NewAIHandler(service AIService, logger *slog.Logger) *AIHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AIHandler{service: service, logger: logger}
}

// Suggest handles GET /ai/suggest-celebrities?q=
func (h *AIHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.SuggestNames(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, names)
}

// Autofill handles GET /ai/autofill-celebrity/{name}
func (h *AIHandler) Autofill(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	draft, err := h.service.AutofillProfile(r.Context(), name)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if draft == nil {
		utils.WriteError(w, http.StatusNotFound,
			fmt.Sprintf("Could not generate autofill data for celebrity: %q. Please try a different name or provide more details.", name))
		return
	}
	utils.WriteJSON(w, http.StatusOK, draft)
}

func (h *AIHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		utils.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrMalformedResponse):
		utils.WriteError(w, http.StatusBadGateway, domain.ErrMalformedResponse.Error())
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		utils.WriteError(w, http.StatusServiceUnavailable, domain.ErrUpstreamUnavailable.Error())
	default:
		h.logger.ErrorContext(r.Context(), "ai request failed", "path", r.URL.Path, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
