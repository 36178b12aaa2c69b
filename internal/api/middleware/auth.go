package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/viewly-dev/viewly/internal/usecase"
)

const viewerKey ctxKey = iota + 1

// AccessTokenCookie is the cookie carrying the access token for browser
// clients that don't set the Authorization header.
const AccessTokenCookie = "accessToken"

// RequireAuth rejects requests that do not carry a valid access token.
// Missing, expired, malformed, and mismatched tokens all produce the same
// 401 body; the cause is never surfaced.
func RequireAuth(svc usecase.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				unauthorized(w)
				return
			}

			viewerID, err := svc.ValidateAccess(token)
			if err != nil {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(withViewer(r.Context(), viewerID)))
		})
	}
}

// OptionalAuth resolves the viewer if a valid access token is present and
// proceeds anonymously otherwise. Read paths use it so anonymous requests
// still get counts, just with viewer flags false.
func OptionalAuth(svc usecase.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			viewerID, err := svc.ValidateAccess(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withViewer(r.Context(), viewerID)))
		})
	}
}

// Viewer retrieves the authenticated viewer ID from context.
// Returns uuid.Nil and false for anonymous requests.
func Viewer(ctx context.Context) (uuid.UUID, bool) {
	if id, ok := ctx.Value(viewerKey).(uuid.UUID); ok {
		return id, true
	}
	return uuid.Nil, false
}

func withViewer(ctx context.Context, viewerID uuid.UUID) context.Context {
	return context.WithValue(ctx, viewerKey, viewerID)
}

// extractToken reads the access token from the Authorization header or,
// failing that, the access-token cookie.
func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	cookie, err := r.Cookie(AccessTokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "unauthorized",
		"message": "Authentication required",
	})
}
