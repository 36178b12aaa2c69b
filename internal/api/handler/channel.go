package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/viewly-dev/viewly/internal/api/middleware"
	"github.com/viewly-dev/viewly/internal/domain/model"
	"github.com/viewly-dev/viewly/internal/domain/repository"
	"github.com/viewly-dev/viewly/internal/usecase"
)

// ChannelHandler handles channel-profile HTTP requests.
type ChannelHandler struct {
	svc usecase.ChannelService
}

// NewChannelHandler creates a new ChannelHandler.
func NewChannelHandler(svc usecase.ChannelService) *ChannelHandler {
	return &ChannelHandler{svc: svc}
}

type ChannelProfileResponse struct {
	ID                uuid.UUID `json:"id"`
	Username          string    `json:"username"`
	FullName          string    `json:"full_name"`
	AvatarURL         string    `json:"avatar_url,omitempty"`
	CoverURL          string    `json:"cover_url,omitempty"`
	SubscriberCount   int64     `json:"subscriber_count"`
	SubscribedToCount int64     `json:"subscribed_to_count"`
	IsSubscribed      bool      `json:"is_subscribed"`
}

type UpdateAccountRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// GetProfile handles GET /v1/channels/{username}. Subscription counts and
// the viewer flag are computed per request, never cached.
func (h *ChannelHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	viewerID, _ := middleware.Viewer(r.Context())

	profile, err := h.svc.GetProfile(r.Context(), username, viewerID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			Error(w, http.StatusNotFound, "channel_not_found", "Channel not found")
		case errors.Is(err, model.ErrEmptyUsername):
			Error(w, http.StatusBadRequest, "invalid_request", "Username is required")
		default:
			Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		}
		return
	}

	JSON(w, http.StatusOK, ChannelProfileResponse{
		ID:                profile.ID,
		Username:          profile.Username,
		FullName:          profile.FullName,
		AvatarURL:         profile.AvatarURL,
		CoverURL:          profile.CoverURL,
		SubscriberCount:   profile.SubscriberCount,
		SubscribedToCount: profile.SubscribedToCount,
		IsSubscribed:      profile.ViewerSubscribed,
	})
}

// UpdateAccount handles PATCH /v1/me.
func (h *ChannelHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.Viewer(r.Context())
	if !ok {
		Unauthorized(w)
		return
	}

	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	user, err := h.svc.UpdateAccount(r.Context(), viewerID, req.Email, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			Error(w, http.StatusNotFound, "user_not_found", "User not found")
		default:
			Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		}
		return
	}

	JSON(w, http.StatusOK, toUserResponse(user))
}
