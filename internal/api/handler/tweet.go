package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/viewly-dev/viewly/internal/api/middleware"
	"github.com/viewly-dev/viewly/internal/domain/model"
	"github.com/viewly-dev/viewly/internal/domain/repository"
	"github.com/viewly-dev/viewly/internal/usecase"
)

// TweetHandler handles tweet HTTP requests.
type TweetHandler struct {
	svc usecase.TweetService
}

// NewTweetHandler creates a new TweetHandler.
func NewTweetHandler(svc usecase.TweetService) *TweetHandler {
	return &TweetHandler{svc: svc}
}

type TweetRequest struct {
	Content string `json:"content"`
}

type TweetResponse struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type TweetViewResponse struct {
	TweetResponse
	LikeCount int64 `json:"like_count"`
	IsLiked   bool  `json:"is_liked"`
}

// Create handles POST /v1/tweets.
func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.Viewer(r.Context())
	if !ok {
		Unauthorized(w)
		return
	}

	var req TweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	tweet, err := h.svc.Create(r.Context(), ownerID, req.Content)
	if err != nil {
		h.handleError(w, err)
		return
	}

	JSON(w, http.StatusCreated, toTweetResponse(tweet))
}

// ListByOwner handles GET /v1/users/{userId}/tweets.
func (h *TweetHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_id", "Invalid user ID")
		return
	}

	viewerID, _ := middleware.Viewer(r.Context())

	views, err := h.svc.ListByOwner(r.Context(), ownerID, viewerID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	out := make([]TweetViewResponse, 0, len(views))
	for _, v := range views {
		out = append(out, TweetViewResponse{
			TweetResponse: toTweetResponse(v.Tweet),
			LikeCount:     v.LikeCount,
			IsLiked:       v.ViewerLiked,
		})
	}
	JSON(w, http.StatusOK, out)
}

// Update handles PATCH /v1/tweets/{tweetId}.
func (h *TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.Viewer(r.Context())
	if !ok {
		Unauthorized(w)
		return
	}

	tweetID, err := uuid.Parse(chi.URLParam(r, "tweetId"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_id", "Invalid tweet ID")
		return
	}

	var req TweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	tweet, err := h.svc.Update(r.Context(), tweetID, requesterID, req.Content)
	if err != nil {
		h.handleError(w, err)
		return
	}

	JSON(w, http.StatusOK, toTweetResponse(tweet))
}

// Delete handles DELETE /v1/tweets/{tweetId}.
func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.Viewer(r.Context())
	if !ok {
		Unauthorized(w)
		return
	}

	tweetID, err := uuid.Parse(chi.URLParam(r, "tweetId"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_id", "Invalid tweet ID")
		return
	}

	if err := h.svc.Delete(r.Context(), tweetID, requesterID); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TweetHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrTweetNotFound):
		Error(w, http.StatusNotFound, "tweet_not_found", "Tweet not found")
	case errors.Is(err, usecase.ErrNotOwner):
		Error(w, http.StatusForbidden, "forbidden", "You do not own this tweet")
	case errors.Is(err, model.ErrEmptyContent), errors.Is(err, model.ErrContentTooLong):
		Error(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

func toTweetResponse(t *model.Tweet) TweetResponse {
	return TweetResponse{
		ID:        t.ID,
		OwnerID:   t.OwnerID,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
	}
}
