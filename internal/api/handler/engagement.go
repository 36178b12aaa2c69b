package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/viewly-dev/viewly/internal/api/middleware"
	"github.com/viewly-dev/viewly/internal/domain/model"
	"github.com/viewly-dev/viewly/internal/usecase"
)

// EngagementHandler handles like and subscription toggle requests.
type EngagementHandler struct {
	svc usecase.EngagementService
}

// NewEngagementHandler creates a new EngagementHandler.
func NewEngagementHandler(svc usecase.EngagementService) *EngagementHandler {
	return &EngagementHandler{svc: svc}
}

type LikeResponse struct {
	IsLiked bool `json:"is_liked"`
}

type SubscribeResponse struct {
	IsSubscribed bool `json:"is_subscribed"`
}

// ToggleVideoLike handles POST /v1/like/video/{videoId}
func (h *EngagementHandler) ToggleVideoLike(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, "videoId", model.KindVideoLike)
}

// ToggleCommentLike handles POST /v1/like/comment/{commentId}
func (h *EngagementHandler) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, "commentId", model.KindCommentLike)
}

// ToggleTweetLike handles POST /v1/like/tweet/{tweetId}
func (h *EngagementHandler) ToggleTweetLike(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, "tweetId", model.KindTweetLike)
}

// ToggleSubscription handles POST /v1/subscribe/{channelId}
func (h *EngagementHandler) ToggleSubscription(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.Viewer(r.Context())
	if !ok {
		Unauthorized(w)
		return
	}

	channelID, err := uuid.Parse(chi.URLParam(r, "channelId"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_id", "Invalid channel ID")
		return
	}

	result, err := h.svc.Toggle(r.Context(), viewerID, channelID, model.KindSubscription)
	if err != nil {
		if errors.Is(err, model.ErrSelfTarget) {
			Error(w, http.StatusBadRequest, "self_subscription", "Cannot subscribe to your own channel")
			return
		}
		h.handleToggleError(w, err)
		return
	}

	JSON(w, http.StatusOK, SubscribeResponse{IsSubscribed: result.Active})
}

func (h *EngagementHandler) toggleLike(w http.ResponseWriter, r *http.Request, param string, kind model.Kind) {
	viewerID, ok := middleware.Viewer(r.Context())
	if !ok {
		Unauthorized(w)
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_id", "Invalid target ID")
		return
	}

	result, err := h.svc.Toggle(r.Context(), viewerID, targetID, kind)
	if err != nil {
		h.handleToggleError(w, err)
		return
	}

	JSON(w, http.StatusOK, LikeResponse{IsLiked: result.Active})
}

func (h *EngagementHandler) handleToggleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidTarget), errors.Is(err, model.ErrInvalidKind):
		Error(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
