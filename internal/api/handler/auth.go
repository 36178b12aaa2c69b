package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/viewly-dev/viewly/internal/api/middleware"
	"github.com/viewly-dev/viewly/internal/domain/model"
	"github.com/viewly-dev/viewly/internal/domain/repository"
	"github.com/viewly-dev/viewly/internal/infrastructure/metrics"
	"github.com/viewly-dev/viewly/internal/usecase"
)

const refreshTokenCookie = "refreshToken"

// Request/Response types

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	CoverURL  string `json:"cover_url,omitempty"`
	CreatedAt string `json:"created_at"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// AuthHandler handles identity and session HTTP requests.
type AuthHandler struct {
	svc          usecase.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc usecase.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{svc: svc, cookieSecure: cookieSecure}
}

// Register handles POST /v1/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if req.Password == "" {
		Error(w, http.StatusBadRequest, "invalid_password", "Password is required")
		return
	}

	user, err := h.svc.Register(r.Context(), usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		metrics.AuthOperationsTotal.WithLabelValues(metrics.AuthOpRegister, metrics.AuthStatusError).Inc()
		h.handleServiceError(w, err)
		return
	}

	metrics.AuthOperationsTotal.WithLabelValues(metrics.AuthOpRegister, metrics.AuthStatusSuccess).Inc()
	JSON(w, http.StatusCreated, toUserResponse(user))
}

// Login handles POST /v1/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if req.Login == "" {
		Error(w, http.StatusBadRequest, "invalid_login", "Username or email is required")
		return
	}

	user, pair, err := h.svc.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			metrics.AuthOperationsTotal.WithLabelValues(metrics.AuthOpLogin, metrics.AuthStatusUnauthorized).Inc()
			Error(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
			return
		}
		metrics.AuthOperationsTotal.WithLabelValues(metrics.AuthOpLogin, metrics.AuthStatusError).Inc()
		h.handleServiceError(w, err)
		return
	}

	metrics.AuthOperationsTotal.WithLabelValues(metrics.AuthOpLogin, metrics.AuthStatusSuccess).Inc()
	h.setTokenCookies(w, pair)
	JSON(w, http.StatusOK, LoginResponse{
		User:         toUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh handles POST /v1/refresh-token
// The token is taken from the cookie or, for non-cookie clients, the body.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token := ""
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
		token = cookie.Value
	}
	if token == "" {
		var req RefreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			token = req.RefreshToken
		}
	}

	if token == "" {
		metrics.AuthOperationsTotal.WithLabelValues(metrics.AuthOpRefresh, metrics.AuthStatusUnauthorized).Inc()
		Unauthorized(w)
		return
	}

	pair, err := h.svc.Refresh(r.Context(), token)
	if err != nil {
		if errors.Is(err, usecase.ErrUnauthorized) {
			metrics.AuthOperationsTotal.WithLabelValues(metrics.AuthOpRefresh, metrics.AuthStatusUnauthorized).Inc()
			Unauthorized(w)
			return
		}
		metrics.AuthOperationsTotal.WithLabelValues(metrics.AuthOpRefresh, metrics.AuthStatusError).Inc()
		h.handleServiceError(w, err)
		return
	}

	metrics.AuthOperationsTotal.WithLabelValues(metrics.AuthOpRefresh, metrics.AuthStatusSuccess).Inc()
	h.setTokenCookies(w, pair)
	JSON(w, http.StatusOK, TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout handles POST /v1/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.Viewer(r.Context())
	if !ok {
		Unauthorized(w)
		return
	}

	if err := h.svc.Logout(r.Context(), viewerID); err != nil {
		metrics.AuthOperationsTotal.WithLabelValues(metrics.AuthOpLogout, metrics.AuthStatusError).Inc()
		h.handleServiceError(w, err)
		return
	}

	metrics.AuthOperationsTotal.WithLabelValues(metrics.AuthOpLogout, metrics.AuthStatusSuccess).Inc()
	h.clearTokenCookies(w)
	JSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// ChangePassword handles POST /v1/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.Viewer(r.Context())
	if !ok {
		Unauthorized(w)
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if req.NewPassword == "" {
		Error(w, http.StatusBadRequest, "invalid_password", "New password is required")
		return
	}

	if err := h.svc.ChangePassword(r.Context(), viewerID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			Error(w, http.StatusBadRequest, "invalid_password", "Old password is incorrect")
			return
		}
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]string{"message": "Password changed"})
}

// Me handles GET /v1/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.Viewer(r.Context())
	if !ok {
		Unauthorized(w)
		return
	}

	user, err := h.svc.CurrentUser(r.Context(), viewerID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toUserResponse(user))
}

// setTokenCookies sets both token cookies, http-only and secure, matching
// the tokens carried in the response body for non-cookie clients.
func (h *AuthHandler) setTokenCookies(w http.ResponseWriter, pair *usecase.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearTokenCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrDuplicateUser):
		Error(w, http.StatusConflict, "duplicate_user", "Username or email already exists")
	case errors.Is(err, repository.ErrUserNotFound):
		Error(w, http.StatusNotFound, "user_not_found", "User not found")
	case errors.Is(err, model.ErrEmptyUsername),
		errors.Is(err, model.ErrUsernameTooLong),
		errors.Is(err, model.ErrInvalidEmail),
		errors.Is(err, model.ErrEmptyFullName):
		Error(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		CoverURL:  u.CoverURL,
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
