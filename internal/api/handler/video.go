package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/viewly-dev/viewly/internal/api/middleware"
	"github.com/viewly-dev/viewly/internal/domain/model"
	"github.com/viewly-dev/viewly/internal/domain/repository"
	"github.com/viewly-dev/viewly/internal/usecase"
)

// maxUploadSize limits multipart video uploads to 2 GiB.
const maxUploadSize = 2 << 30

// VideoHandler handles video HTTP requests.
type VideoHandler struct {
	svc usecase.VideoService
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(svc usecase.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

type VideoResponse struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	MediaURL        string    `json:"media_url"`
	ThumbnailURL    string    `json:"thumbnail_url,omitempty"`
	DurationSeconds float64   `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}

type VideoViewResponse struct {
	VideoResponse
	LikeCount        int64  `json:"like_count"`
	IsLiked          bool   `json:"is_liked"`
	OwnerUsername    string `json:"owner_username"`
	SubscriberCount  int64  `json:"subscriber_count"`
	IsSubscribed     bool   `json:"is_subscribed"`
}

// Publish handles POST /v1/videos (multipart form upload).
func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.Viewer(r.Context())
	if !ok {
		Unauthorized(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("media")
	if err != nil {
		Error(w, http.StatusBadRequest, "missing_media", "Media file is required")
		return
	}
	defer file.Close()

	duration, _ := strconv.ParseFloat(r.FormValue("duration_seconds"), 64)

	video, err := h.svc.Publish(r.Context(), usecase.PublishVideoInput{
		OwnerID:         ownerID,
		Title:           r.FormValue("title"),
		Description:     r.FormValue("description"),
		FileName:        header.Filename,
		ContentType:     header.Header.Get("Content-Type"),
		Size:            header.Size,
		Reader:          file,
		DurationSeconds: duration,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	JSON(w, http.StatusCreated, toVideoResponse(video))
}

// Get handles GET /v1/videos/{videoId}. The response includes aggregates
// relative to the (possibly anonymous) viewer.
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "videoId"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_id", "Invalid video ID")
		return
	}

	// Anonymous viewers get uuid.Nil, which yields false viewer flags.
	viewerID, _ := middleware.Viewer(r.Context())

	view, err := h.svc.GetView(r.Context(), videoID, viewerID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	JSON(w, http.StatusOK, VideoViewResponse{
		VideoResponse:   toVideoResponse(view.Video),
		LikeCount:       view.LikeCount,
		IsLiked:         view.ViewerLiked,
		OwnerUsername:   view.OwnerUsername,
		SubscriberCount: view.SubscriberCount,
		IsSubscribed:    view.ViewerSubscribed,
	})
}

// ListByOwner handles GET /v1/users/{userId}/videos.
func (h *VideoHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_id", "Invalid user ID")
		return
	}

	videos, err := h.svc.ListByOwner(r.Context(), ownerID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	out := make([]VideoResponse, 0, len(videos))
	for _, v := range videos {
		out = append(out, toVideoResponse(v))
	}
	JSON(w, http.StatusOK, out)
}

// Delete handles DELETE /v1/videos/{videoId}.
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.Viewer(r.Context())
	if !ok {
		Unauthorized(w)
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "videoId"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_id", "Invalid video ID")
		return
	}

	if err := h.svc.Delete(r.Context(), videoID, requesterID); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *VideoHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrVideoNotFound):
		Error(w, http.StatusNotFound, "video_not_found", "Video not found")
	case errors.Is(err, usecase.ErrNotOwner):
		Error(w, http.StatusForbidden, "forbidden", "You do not own this video")
	case errors.Is(err, model.ErrEmptyTitle),
		errors.Is(err, model.ErrTitleTooLong),
		errors.Is(err, model.ErrEmptyMediaURL):
		Error(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

func toVideoResponse(v *model.Video) VideoResponse {
	return VideoResponse{
		ID:              v.ID,
		OwnerID:         v.OwnerID,
		Title:           v.Title,
		Description:     v.Description,
		MediaURL:        v.MediaURL,
		ThumbnailURL:    v.ThumbnailURL,
		DurationSeconds: v.DurationSeconds,
		CreatedAt:       v.CreatedAt,
	}
}
