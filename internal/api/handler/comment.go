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

// CommentHandler handles comment HTTP requests.
type CommentHandler struct {
	svc usecase.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(svc usecase.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

type CommentRequest struct {
	Content string `json:"content"`
}

type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	VideoID   uuid.UUID `json:"video_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentViewResponse struct {
	CommentResponse
	LikeCount int64 `json:"like_count"`
	IsLiked   bool  `json:"is_liked"`
}

// Add handles POST /v1/videos/{videoId}/comments.
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.Viewer(r.Context())
	if !ok {
		Unauthorized(w)
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "videoId"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_id", "Invalid video ID")
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	comment, err := h.svc.Add(r.Context(), videoID, ownerID, req.Content)
	if err != nil {
		h.handleError(w, err)
		return
	}

	JSON(w, http.StatusCreated, toCommentResponse(comment))
}

// ListByVideo handles GET /v1/videos/{videoId}/comments. Like aggregates
// are relative to the (possibly anonymous) viewer.
func (h *CommentHandler) ListByVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "videoId"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_id", "Invalid video ID")
		return
	}

	viewerID, _ := middleware.Viewer(r.Context())

	views, err := h.svc.ListByVideo(r.Context(), videoID, viewerID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	out := make([]CommentViewResponse, 0, len(views))
	for _, v := range views {
		out = append(out, CommentViewResponse{
			CommentResponse: toCommentResponse(v.Comment),
			LikeCount:       v.LikeCount,
			IsLiked:         v.ViewerLiked,
		})
	}
	JSON(w, http.StatusOK, out)
}

// Update handles PATCH /v1/comments/{commentId}.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.Viewer(r.Context())
	if !ok {
		Unauthorized(w)
		return
	}

	commentID, err := uuid.Parse(chi.URLParam(r, "commentId"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_id", "Invalid comment ID")
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	comment, err := h.svc.Update(r.Context(), commentID, requesterID, req.Content)
	if err != nil {
		h.handleError(w, err)
		return
	}

	JSON(w, http.StatusOK, toCommentResponse(comment))
}

// Delete handles DELETE /v1/comments/{commentId}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.Viewer(r.Context())
	if !ok {
		Unauthorized(w)
		return
	}

	commentID, err := uuid.Parse(chi.URLParam(r, "commentId"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_id", "Invalid comment ID")
		return
	}

	if err := h.svc.Delete(r.Context(), commentID, requesterID); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CommentHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrCommentNotFound):
		Error(w, http.StatusNotFound, "comment_not_found", "Comment not found")
	case errors.Is(err, repository.ErrVideoNotFound):
		Error(w, http.StatusNotFound, "video_not_found", "Video not found")
	case errors.Is(err, usecase.ErrNotOwner):
		Error(w, http.StatusForbidden, "forbidden", "You do not own this comment")
	case errors.Is(err, model.ErrEmptyContent), errors.Is(err, model.ErrContentTooLong):
		Error(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

func toCommentResponse(c *model.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		VideoID:   c.VideoID,
		OwnerID:   c.OwnerID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}
