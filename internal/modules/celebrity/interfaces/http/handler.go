package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/celebnet/backend/internal/modules/celebrity/domain"
	fileApp "github.com/celebnet/backend/internal/modules/filestorage/application"
	fileDomain "github.com/celebnet/backend/internal/modules/filestorage/domain"
	"github.com/celebnet/backend/internal/shared/utils"
)

// CelebrityService defines the operations behind /celebrities.
type CelebrityService interface {
	Create(ctx context.Context, c *domain.Celebrity) (*domain.Celebrity, error)
	FindAll(ctx context.Context) ([]domain.Celebrity, error)
	FindOne(ctx context.Context, id uuid.UUID) (*domain.Celebrity, error)
	FindByName(ctx context.Context, name string) (*domain.Celebrity, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.Patch) (*domain.Celebrity, error)
	Remove(ctx context.Context, id uuid.UUID) error
	UploadImage(ctx context.Context, id uuid.UUID, image io.Reader) (*domain.Celebrity, error)
}

type CelebrityHandler struct {
	service CelebrityService
	logger  *slog.Logger
}

func NewCelebrityHandler(service CelebrityService, logger *slog.Logger) *CelebrityHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CelebrityHandler{service: service, logger: logger}
}

// Create handles POST /celebrities
func (h *CelebrityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCelebrityRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.service.Create(r.Context(), req.toDomain())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, ToResponse(c))
}

// List handles GET /celebrities
func (h *CelebrityHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ToResponseList(list))
}

// Get handles GET /celebrities/{id}
func (h *CelebrityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	c, err := h.service.FindOne(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ToResponse(c))
}

// GetByName handles GET /celebrities/by-name/{name}
func (h *CelebrityHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		utils.WriteError(w, http.StatusBadRequest, "name is required")
		return
	}
	c, err := h.service.FindByName(r.Context(), name)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ToResponse(c))
}

// Update handles PUT /celebrities/{id}
func (h *CelebrityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req UpdateCelebrityRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.service.Update(r.Context(), id, req.toPatch())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ToResponse(c))
}

// Delete handles DELETE /celebrities/{id}
func (h *CelebrityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.Remove(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage handles POST /celebrities/{id}/image with a multipart "image" field.
func (h *CelebrityHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, fileApp.MaxImageUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(fileApp.MaxImageUploadBytes); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "image too large or malformed form")
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	c, err := h.service.UploadImage(r.Context(), id, file)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ToResponse(c))
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid celebrity id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *CelebrityHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrCelebrityNotFound):
		utils.WriteError(w, http.StatusNotFound, "Celebrity not found")
	case errors.Is(err, domain.ErrCelebrityNameTaken):
		utils.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidCelebrity):
		utils.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, fileDomain.ErrUnsupportedImage):
		utils.WriteError(w, http.StatusBadRequest, "unsupported image format")
	default:
		h.logger.ErrorContext(r.Context(), "celebrity request failed", "path", r.URL.Path, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
