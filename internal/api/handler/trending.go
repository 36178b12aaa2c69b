package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/viewly-dev/viewly/internal/domain/model"
	"github.com/viewly-dev/viewly/internal/usecase"
)

// TrendingHandler serves the daily engagement leaderboards.
type TrendingHandler struct {
	svc usecase.TrendingService
}

// NewTrendingHandler creates a new TrendingHandler.
func NewTrendingHandler(svc usecase.TrendingService) *TrendingHandler {
	return &TrendingHandler{svc: svc}
}

// trendingCategories maps URL categories to the engagement kind whose
// leaderboard backs them.
var trendingCategories = map[string]model.Kind{
	"videos":   model.KindVideoLike,
	"comments": model.KindCommentLike,
	"tweets":   model.KindTweetLike,
	"channels": model.KindSubscription,
}

type TrendingResponse struct {
	Category string      `json:"category"`
	Day      string      `json:"day"`
	IDs      []uuid.UUID `json:"ids"`
}

// Top handles GET /v1/trending/{category}. Optional query parameters:
// day (YYYY-MM-DD, defaults to today UTC) and limit.
func (h *TrendingHandler) Top(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	kind, ok := trendingCategories[category]
	if !ok {
		Error(w, http.StatusBadRequest, "invalid_request", "Unknown trending category")
		return
	}

	day := time.Now().UTC()
	if raw := r.URL.Query().Get("day"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			Error(w, http.StatusBadRequest, "invalid_request", "Day must be formatted YYYY-MM-DD")
			return
		}
		day = parsed
	}

	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			Error(w, http.StatusBadRequest, "invalid_request", "Limit must be an integer")
			return
		}
		limit = parsed
	}

	ids, err := h.svc.Top(r.Context(), kind, day, limit)
	if err != nil {
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	if ids == nil {
		ids = []uuid.UUID{}
	}

	JSON(w, http.StatusOK, TrendingResponse{
		Category: category,
		Day:      day.Format("2006-01-02"),
		IDs:      ids,
	})
}
