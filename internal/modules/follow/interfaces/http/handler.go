package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	celebrity "github.com/celebnet/backend/internal/modules/celebrity/domain"
	celebrity_http "github.com/celebnet/backend/internal/modules/celebrity/interfaces/http"
	"github.com/celebnet/backend/internal/modules/follow/application"
	"github.com/celebnet/backend/internal/modules/follow/domain"
	"github.com/celebnet/backend/internal/shared/identity"
	"github.com/celebnet/backend/internal/shared/utils"
)

type FollowService interface {
	Follow(ctx context.Context, userID, celebrityID uuid.UUID) (*application.FollowResult, error)
	Unfollow(ctx context.Context, userID, celebrityID uuid.UUID) error
	ListFollowed(ctx context.Context, userID uuid.UUID) ([]celebrity.Celebrity, error)
	IsFollowing(ctx context.Context, userID, celebrityID uuid.UUID) (bool, error)
}

type FollowResponse struct {
	UserID      uuid.UUID                        `json:"userId"`
	CelebrityID uuid.UUID                        `json:"celebrityId"`
	CreatedAt   time.Time                        `json:"createdAt"`
	Celebrity   celebrity_http.CelebrityResponse `json:"celebrity"`
}

type FollowCreatedResponse struct {
	Message string         `json:"message"`
	Follow  FollowResponse `json:"follow"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type FollowStatusResponse struct {
	IsFollowing bool `json:"isFollowing"`
}

type FollowHandler struct {
	service FollowService
	logger  *slog.Logger
}

func NewFollowHandler(service FollowService, logger *slog.Logger) *FollowHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FollowHandler{service: service, logger: logger}
}

// Follow handles POST /follows/{celebrityId}
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireFan(w, r, "Only fan users can follow celebrities.")
	if !ok {
		return
	}
	celebrityID, ok := parseCelebrityID(w, r)
	if !ok {
		return
	}

	res, err := h.service.Follow(r.Context(), caller.UserID, celebrityID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, FollowCreatedResponse{
		Message: "Successfully followed celebrity",
		Follow: FollowResponse{
			UserID:      res.Follow.UserID,
			CelebrityID: res.Follow.CelebrityID,
			CreatedAt:   res.Follow.CreatedAt,
			Celebrity:   celebrity_http.ToResponse(res.Celebrity),
		},
	})
}

// Unfollow handles DELETE /follows/{celebrityId}
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireFan(w, r, "Only fan users can unfollow celebrities.")
	if !ok {
		return
	}
	celebrityID, ok := parseCelebrityID(w, r)
	if !ok {
		return
	}

	if err := h.service.Unfollow(r.Context(), caller.UserID, celebrityID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Successfully unfollowed celebrity"})
}

// List handles GET /follows
func (h *FollowHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireFan(w, r, "Only fan users can view followed celebrities.")
	if !ok {
		return
	}

	list, err := h.service.ListFollowed(r.Context(), caller.UserID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, celebrity_http.ToResponseList(list))
}

// Status handles GET /follows/status/{celebrityId}. Any role may ask.
func (h *FollowHandler) Status(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	celebrityID, ok := parseCelebrityID(w, r)
	if !ok {
		return
	}

	following, err := h.service.IsFollowing(r.Context(), caller.UserID, celebrityID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, FollowStatusResponse{IsFollowing: following})
}

func requireFan(w http.ResponseWriter, r *http.Request, msg string) (identity.Identity, bool) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return identity.Identity{}, false
	}
	if !caller.IsFan() {
		utils.WriteError(w, http.StatusBadRequest, msg)
		return identity.Identity{}, false
	}
	return caller, true
}

func parseCelebrityID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("celebrityId"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid celebrity id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *FollowHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrCelebrityNotFound):
		utils.WriteError(w, http.StatusNotFound, "Celebrity not found")
	case errors.Is(err, domain.ErrFollowNotFound):
		utils.WriteError(w, http.StatusNotFound, "Follow relationship not found")
	case errors.Is(err, domain.ErrAlreadyFollowing):
		utils.WriteError(w, http.StatusConflict, "You are already following this celebrity.")
	default:
		h.logger.ErrorContext(r.Context(), "follow request failed", "path", r.URL.Path, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
